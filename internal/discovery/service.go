package discovery

import (
	"context"
	"fmt"
	"log"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/storytime-app/backend/internal/models"
	"github.com/storytime-app/backend/internal/repositories"
)

// DefaultLimit is the candidate-set cap for filtered discovery queries.
const DefaultLimit = 180

const (
	unknownAuthor  = "Unknown author"
	noSynopsis     = "No synopsis available."
	synopsisMaxLen = 140
)

// Discovery modes.
const (
	ModeNewest = "newest"
	ModeAlgo   = "algo"
)

// Item is a story enriched with its resolved author name, a synopsis, the
// engagement metrics for the requested window, and a ranking score.
type Item struct {
	models.Story
	AuthorName string `json:"author_name"`
	Synopsis   string `json:"synopsis"`
	Metrics
	Score float64 `json:"score"`
}

// Filters selects and orders the candidate set for a discovery listing.
type Filters struct {
	Query            string
	Mode             string // newest | algo; anything else falls back to newest
	OnlyPublicDomain bool
	Genre            string
	LengthClass      string
	Limit            int
	PublishedSince   *time.Time
	Window           Window
}

// Service is the discovery query service: it fetches published stories,
// joins author names, computes metrics and scores, and returns enriched,
// ordered discovery items.
type Service struct {
	stories    repositories.StoryRepository
	profiles   repositories.ProfileRepository
	follows    repositories.FollowRepository
	visibility repositories.VisibilityRepository
	editorial  repositories.EditorialRepository
	metrics    *Aggregator
}

// NewService creates a new Service
func NewService(
	stories repositories.StoryRepository,
	profiles repositories.ProfileRepository,
	follows repositories.FollowRepository,
	visibility repositories.VisibilityRepository,
	editorial repositories.EditorialRepository,
	metrics *Aggregator,
) *Service {
	return &Service{
		stories:    stories,
		profiles:   profiles,
		follows:    follows,
		visibility: visibility,
		editorial:  editorial,
		metrics:    metrics,
	}
}

// ParseMode normalizes a ranking mode, defaulting unknown values to newest.
func ParseMode(mode string) string {
	if mode == ModeAlgo {
		return ModeAlgo
	}
	return ModeNewest
}

// ComputeMetrics exposes the metrics aggregator to callers.
func (s *Service) ComputeMetrics(ctx context.Context, storyIDs []string, window Window) (map[string]Metrics, error) {
	return s.metrics.ComputeMetrics(ctx, storyIDs, window)
}

// FetchDiscoveryItems returns enriched published stories matching the
// filters. Newest mode keeps publish-date-descending order; algo mode
// re-ranks by algo score with length-pool interleaving. A story query
// failure is fatal and propagates.
func (s *Service) FetchDiscoveryItems(ctx context.Context, f Filters) ([]Item, error) {
	limit := f.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}

	stories, err := s.stories.FindPublished(ctx, repositories.StoryQuery{
		Search:           f.Query,
		OnlyPublicDomain: f.OnlyPublicDomain,
		PublishedSince:   f.PublishedSince,
		Genre:            f.Genre,
		LengthClass:      f.LengthClass,
		Limit:            limit,
	})
	if err != nil {
		return nil, fmt.Errorf("unable to load stories: %w", err)
	}

	items := s.enrich(ctx, stories, f.Window, time.Now())
	if ParseMode(f.Mode) == ModeAlgo {
		items = InterleaveByLength(items)
	}
	return items, nil
}

// FetchDiscoveryItemsByStoryIDs fetches exactly the given published stories
// (deduplicated), enriches them identically to the filtered variant, and
// returns them in the caller-specified order. Unpublished or unknown ids are
// skipped.
func (s *Service) FetchDiscoveryItemsByStoryIDs(ctx context.Context, storyIDs []string, window Window) ([]Item, error) {
	if len(storyIDs) == 0 {
		return []Item{}, nil
	}

	seen := make(map[string]bool, len(storyIDs))
	unique := make([]string, 0, len(storyIDs))
	for _, id := range storyIDs {
		if !seen[id] {
			seen[id] = true
			unique = append(unique, id)
		}
	}

	stories, err := s.stories.FindPublishedByIDs(ctx, unique)
	if err != nil {
		return nil, fmt.Errorf("unable to load selected stories: %w", err)
	}

	items := s.enrich(ctx, stories, window, time.Now())
	byID := make(map[string]Item, len(items))
	for _, item := range items {
		byID[item.ID] = item
	}

	ordered := make([]Item, 0, len(unique))
	for _, id := range unique {
		if item, ok := byID[id]; ok {
			ordered = append(ordered, item)
		}
	}
	return ordered, nil
}

// GetStoryBySlug returns a single enriched published story, or
// repositories.ErrStoryNotFound.
func (s *Service) GetStoryBySlug(ctx context.Context, slug string, window Window) (*Item, error) {
	story, err := s.stories.GetPublishedBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	items := s.enrich(ctx, []models.Story{*story}, window, time.Now())
	return &items[0], nil
}

// enrich joins author names and metrics onto the story rows and computes the
// algo score. Profiles and metrics load concurrently; either lookup failing
// degrades its fields to fallbacks instead of aborting the response.
func (s *Service) enrich(ctx context.Context, stories []models.Story, window Window, now time.Time) []Item {
	if len(stories) == 0 {
		return []Item{}
	}

	storyIDs := make([]string, len(stories))
	authorIDSet := make(map[string]bool)
	for i, story := range stories {
		storyIDs[i] = story.ID
		if story.AuthorID != nil {
			authorIDSet[*story.AuthorID] = true
		}
	}
	authorIDs := make([]string, 0, len(authorIDSet))
	for id := range authorIDSet {
		authorIDs = append(authorIDs, id)
	}

	var (
		wg           sync.WaitGroup
		profileNames map[string]string
		metricsByID  map[string]Metrics
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		names, err := s.profiles.GetDisplayNames(ctx, authorIDs)
		if err != nil {
			log.Printf("discovery: profile lookup degraded: %v", err)
			names = map[string]string{}
		}
		profileNames = names
	}()
	go func() {
		defer wg.Done()
		m, err := s.metrics.ComputeMetrics(ctx, storyIDs, window)
		if err != nil {
			log.Printf("discovery: metrics degraded to zero: %v", err)
			m = map[string]Metrics{}
		}
		metricsByID = m
	}()
	wg.Wait()

	items := make([]Item, len(stories))
	for i, story := range stories {
		m := metricsByID[story.ID]
		items[i] = Item{
			Story:      story,
			AuthorName: resolveAuthorName(story, profileNames),
			Synopsis:   storySynopsis(story),
			Metrics:    m,
			Score:      AlgoScore(story, m, now),
		}
	}
	return items
}

// resolveAuthorName picks the display name: original_author for
// public-domain reposts, else the author's profile, else a fallback.
func resolveAuthorName(story models.Story, profileNames map[string]string) string {
	if story.IsPublicDomain {
		if story.OriginalAuthor != "" {
			return story.OriginalAuthor
		}
		return unknownAuthor
	}
	if story.AuthorID != nil {
		if name := profileNames[*story.AuthorID]; name != "" {
			return name
		}
	}
	return unknownAuthor
}

var (
	whitespaceRe = regexp.MustCompile(`\s+`)
	sentenceRe   = regexp.MustCompile(`[^.!?]+[.!?]`)
)

// storySynopsis prefers the explicit one-liner, else extracts the first
// sentence of the body, truncated to 140 characters with an ellipsis.
func storySynopsis(story models.Story) string {
	if preferred := strings.TrimSpace(story.Synopsis1); preferred != "" {
		return preferred
	}

	clean := strings.TrimSpace(whitespaceRe.ReplaceAllString(story.Body, " "))
	if clean == "" {
		return noSynopsis
	}

	sentence := sentenceRe.FindString(clean)
	if sentence == "" {
		sentence = clean
	}

	runes := []rune(sentence)
	if len(runes) > synopsisMaxLen {
		return string(runes[:synopsisMaxLen-3]) + "..."
	}
	return sentence
}
