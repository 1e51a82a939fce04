package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/storytime-app/backend/internal/discovery"
	"github.com/storytime-app/backend/internal/repositories"
)

// DiscoveryHandler handles discovery and ranking HTTP requests
type DiscoveryHandler struct {
	service *discovery.Service
}

// NewDiscoveryHandler creates a new DiscoveryHandler
func NewDiscoveryHandler(service *discovery.Service) *DiscoveryHandler {
	return &DiscoveryHandler{service: service}
}

// RegisterDiscoveryRoutes registers discovery-related routes
func (h *DiscoveryHandler) RegisterDiscoveryRoutes(g *echo.Group) {
	g.GET("/discovery", h.ListDiscovery)
	g.GET("/discovery/hot", h.ListHot)
	g.GET("/discovery/featured", h.ListFeatured)
	g.GET("/discovery/suggestions", h.ListSuggestions)
	g.GET("/stories/:slug", h.GetStory)
	g.GET("/metrics", h.GetMetrics)
}

// ListDiscovery returns the filtered discovery feed (newest or algo mode)
func (h *DiscoveryHandler) ListDiscovery(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	sinceDays, _ := strconv.Atoi(c.QueryParam("since_days"))

	items, err := h.service.FetchDiscoveryItems(c.Request().Context(), discovery.Filters{
		Query:            c.QueryParam("q"),
		Mode:             c.QueryParam("mode"),
		OnlyPublicDomain: parseBool(c.QueryParam("public_domain")),
		Genre:            c.QueryParam("genre"),
		LengthClass:      c.QueryParam("length"),
		Limit:            limit,
		Window:           discovery.Window{SinceDays: sinceDays},
	})
	if err != nil {
		return storeError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data":    echo.Map{"items": items},
	})
}

// ListHot returns the top trending stories for a month or year window
func (h *DiscoveryHandler) ListHot(c echo.Context) error {
	items, err := h.service.HotFeed(c.Request().Context(), discovery.HotOptions{
		Window:      c.QueryParam("window"),
		Genre:       c.QueryParam("genre"),
		LengthClass: c.QueryParam("length"),
	})
	if err != nil {
		return storeError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data":    echo.Map{"items": items},
	})
}

// ListFeatured returns the live featured stories in curator order
func (h *DiscoveryHandler) ListFeatured(c echo.Context) error {
	items, err := h.service.FeaturedFeed(c.Request().Context())
	if err != nil {
		return storeError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data":    echo.Map{"items": items},
	})
}

// ListSuggestions returns the rolling editorial picks in curator order
func (h *DiscoveryHandler) ListSuggestions(c echo.Context) error {
	items, err := h.service.SuggestionsFeed(c.Request().Context())
	if err != nil {
		return storeError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data":    echo.Map{"items": items},
	})
}

// GetStory returns a single enriched story by slug
func (h *DiscoveryHandler) GetStory(c echo.Context) error {
	sinceDays, _ := strconv.Atoi(c.QueryParam("since_days"))

	item, err := h.service.GetStoryBySlug(c.Request().Context(), c.Param("slug"), discovery.Window{SinceDays: sinceDays})
	if err != nil {
		if errors.Is(err, repositories.ErrStoryNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Story not found")
		}
		return storeError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data":    item,
	})
}

// GetMetrics returns per-story engagement metrics for a comma-separated id
// list, optionally windowed
func (h *DiscoveryHandler) GetMetrics(c echo.Context) error {
	var storyIDs []string
	for _, id := range strings.Split(c.QueryParam("story_ids"), ",") {
		if id = strings.TrimSpace(id); id != "" {
			storyIDs = append(storyIDs, id)
		}
	}
	sinceDays, _ := strconv.Atoi(c.QueryParam("since_days"))

	metrics, err := h.service.ComputeMetrics(c.Request().Context(), storyIDs, discovery.Window{SinceDays: sinceDays})
	if err != nil {
		return storeError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data":    echo.Map{"metrics": metrics},
	})
}

func parseBool(value string) bool {
	return value == "true" || value == "1"
}

// storeError maps a failed backing-store call to an HTTP error. An expired
// request deadline is reported as 504 so clients know to retry.
func storeError(err error) *echo.HTTPError {
	if errors.Is(err, context.DeadlineExceeded) {
		return echo.NewHTTPError(http.StatusGatewayTimeout, "Backing store timed out, retry the request")
	}
	return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
}
