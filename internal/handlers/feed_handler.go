package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/storytime-app/backend/internal/discovery"
	"github.com/storytime-app/backend/internal/middleware"
	"github.com/storytime-app/backend/internal/models"
	"github.com/storytime-app/backend/internal/repositories"
)

const defaultSnoozeDuration = 24 * time.Hour

// FeedHandler handles personalized feed and feed action HTTP requests
type FeedHandler struct {
	service    *discovery.Service
	events     repositories.EngagementEventRepository
	shelves    repositories.ShelfRepository
	visibility repositories.VisibilityRepository
}

// NewFeedHandler creates a new FeedHandler
func NewFeedHandler(
	service *discovery.Service,
	events repositories.EngagementEventRepository,
	shelves repositories.ShelfRepository,
	visibility repositories.VisibilityRepository,
) *FeedHandler {
	return &FeedHandler{
		service:    service,
		events:     events,
		shelves:    shelves,
		visibility: visibility,
	}
}

// RegisterFeedRoutes registers feed-related routes
func (h *FeedHandler) RegisterFeedRoutes(g *echo.Group) {
	g.GET("/feed", h.GetFeed)
	g.POST("/feed/actions", h.PostAction)
	g.POST("/events", h.RecordEvent)
}

// GetFeed returns the viewer's personalized feed
func (h *FeedHandler) GetFeed(c echo.Context) error {
	viewer := middleware.ViewerFromContext(c)
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	items, err := h.service.PersonalFeed(c.Request().Context(), viewer, discovery.PersonalOptions{
		Mode:  c.QueryParam("mode"),
		Query: c.QueryParam("q"),
		Limit: limit,
	})
	if err != nil {
		return storeError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data":    echo.Map{"items": items},
	})
}

// PostAction applies a feed card action: open logs an engagement event, save
// shelves the story, dismiss and snooze update the viewer's visibility
// record. Open never changes visibility state.
func (h *FeedHandler) PostAction(c echo.Context) error {
	var req models.FeedActionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid action payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	ctx := c.Request().Context()
	viewer := middleware.ViewerFromContext(c)

	switch req.Action {
	case models.FeedActionOpen:
		event := &models.StoryEvent{StoryID: req.StoryID, EventType: models.EventOpen}
		if viewer.IsAuthenticated() {
			event.UserID = viewer.UserID
		} else {
			event.AnonSessionID = viewer.AnonSessionID
		}
		if err := h.events.RecordEvent(ctx, event); err != nil {
			return storeError(err)
		}

	case models.FeedActionSave:
		if !viewer.IsAuthenticated() {
			return echo.NewHTTPError(http.StatusUnauthorized, "Sign in required to save to shelf")
		}
		if err := h.shelves.SaveToShelf(ctx, viewer.UserID, req.StoryID, req.ShelfID, req.ShelfName); err != nil {
			return storeError(err)
		}

	case models.FeedActionDismiss:
		if err := h.visibility.SetDismissed(ctx, viewer, req.StoryID); err != nil {
			return storeError(err)
		}

	case models.FeedActionSnooze:
		until := time.Now().Add(defaultSnoozeDuration)
		if req.SnoozeUntil != nil {
			until = *req.SnoozeUntil
		}
		if err := h.visibility.SetSnoozed(ctx, viewer, req.StoryID, until); err != nil {
			return storeError(err)
		}
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

// RecordEvent logs a raw engagement event (impression, open, complete)
func (h *FeedHandler) RecordEvent(c echo.Context) error {
	var req models.RecordEventRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid event payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	viewer := middleware.ViewerFromContext(c)
	event := &models.StoryEvent{StoryID: req.StoryID, EventType: req.EventType}
	if viewer.IsAuthenticated() {
		event.UserID = viewer.UserID
	} else {
		event.AnonSessionID = viewer.AnonSessionID
	}

	if err := h.events.RecordEvent(c.Request().Context(), event); err != nil {
		return storeError(err)
	}

	return c.JSON(http.StatusCreated, echo.Map{"success": true})
}
