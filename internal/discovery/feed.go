package discovery

import (
	"context"
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/storytime-app/backend/internal/models"
)

// Personal feed modes. Following-only requires an authenticated viewer.
const (
	PersonalModeFeed         = "feed"
	PersonalModeFollowing    = "following"
	PersonalModePublicDomain = "public-domain"
)

// Hot window selectors.
const (
	HotWindowMonth = "month"
	HotWindowYear  = "year"
)

const (
	hotFeedSize       = 10
	hotCandidateLimit = 320
)

// lengthPools is the fixed pool drain order for the algo feed.
var lengthPools = []string{models.LengthFlash, models.LengthShort, models.LengthStorytime}

// HotOptions configures the hot feed.
type HotOptions struct {
	Window      string // month (30d) | year (365d); anything else means month
	Genre       string
	LengthClass string
}

// PersonalOptions configures the personalized feed.
type PersonalOptions struct {
	Mode  string // feed | following | public-domain; anything else means feed
	Query string
	Limit int
}

// ParsePersonalMode normalizes a personal feed mode, defaulting unknown
// values to the unrestricted feed.
func ParsePersonalMode(mode string) string {
	switch mode {
	case PersonalModeFollowing, PersonalModePublicDomain:
		return mode
	}
	return PersonalModeFeed
}

// InterleaveByLength partitions scored items into length-class pools, sorts
// each pool by score descending, and drains them round-robin in fixed order
// (flash, short, storytime) so no single length class dominates the top of
// the feed.
func InterleaveByLength(items []Item) []Item {
	pools := make(map[string][]Item, len(lengthPools))
	for _, item := range items {
		pools[item.LengthClass] = append(pools[item.LengthClass], item)
	}
	for _, class := range lengthPools {
		pool := pools[class]
		sort.SliceStable(pool, func(i, j int) bool {
			return pool[i].Score > pool[j].Score
		})
		pools[class] = pool
	}

	ranked := make([]Item, 0, len(items))
	for {
		drained := true
		for _, class := range lengthPools {
			if pool := pools[class]; len(pool) > 0 {
				ranked = append(ranked, pool[0])
				pools[class] = pool[1:]
				drained = false
			}
		}
		if drained {
			return ranked
		}
	}
}

// HotFeed returns the top trending stories for a month or year window. The
// window restricts both story eligibility and metric computation. Stories
// under the MinHotViews floor are dropped; ties break toward the more recent
// publish date.
func (s *Service) HotFeed(ctx context.Context, opts HotOptions) ([]Item, error) {
	days := 30
	if opts.Window == HotWindowYear {
		days = 365
	}
	window := Window{SinceDays: days}

	items, err := s.FetchDiscoveryItems(ctx, Filters{
		Mode:           ModeNewest,
		Genre:          opts.Genre,
		LengthClass:    opts.LengthClass,
		Limit:          hotCandidateLimit,
		PublishedSince: window.Since(time.Now()),
		Window:         window,
	})
	if err != nil {
		return nil, err
	}

	hot := make([]Item, 0, len(items))
	for _, item := range items {
		if item.Views < MinHotViews {
			continue
		}
		item.Score = HotScore(item.Metrics)
		hot = append(hot, item)
	}

	sort.SliceStable(hot, func(i, j int) bool {
		if hot[i].Score != hot[j].Score {
			return hot[i].Score > hot[j].Score
		}
		return publishedAfter(hot[i].PublishedAt, hot[j].PublishedAt)
	})

	if len(hot) > hotFeedSize {
		hot = hot[:hotFeedSize]
	}
	return hot, nil
}

// PersonalFeed returns the viewer's personalized feed: the candidate set is
// narrowed by mode (all, following-only, public-domain-only), per-viewer
// visibility suppression, and text search, then ordered by engagement score
// with zero-signal items excluded. An anonymous viewer or an empty follow
// graph yields an empty following feed, not an error.
func (s *Service) PersonalFeed(ctx context.Context, viewer models.Identity, opts PersonalOptions) ([]Item, error) {
	mode := ParsePersonalMode(opts.Mode)
	if mode == PersonalModeFollowing && !viewer.IsAuthenticated() {
		return []Item{}, nil
	}

	var followingIDs map[string]bool
	if mode == PersonalModeFollowing {
		ids, err := s.follows.GetFollowingIDs(ctx, viewer.UserID)
		if err != nil {
			return nil, fmt.Errorf("unable to load follow graph: %w", err)
		}
		if len(ids) == 0 {
			return []Item{}, nil
		}
		followingIDs = make(map[string]bool, len(ids))
		for _, id := range ids {
			followingIDs[id] = true
		}
	}

	now := time.Now()
	hidden := s.hiddenStoryIDs(ctx, viewer, now)

	limit := opts.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}

	items, err := s.FetchDiscoveryItems(ctx, Filters{
		Query:            opts.Query,
		Mode:             ModeNewest,
		OnlyPublicDomain: mode == PersonalModePublicDomain,
		Limit:            limit,
	})
	if err != nil {
		return nil, err
	}

	feed := make([]Item, 0, len(items))
	for _, item := range items {
		if hidden[item.ID] {
			continue
		}
		if followingIDs != nil && (item.AuthorID == nil || !followingIDs[*item.AuthorID]) {
			continue
		}
		score := PersonalScore(item.Metrics)
		if score == 0 {
			continue
		}
		item.Score = score
		feed = append(feed, item)
	}

	sort.SliceStable(feed, func(i, j int) bool {
		return feed[i].Score > feed[j].Score
	})
	return feed, nil
}

// FeaturedFeed returns the live featured stories in curator order.
func (s *Service) FeaturedFeed(ctx context.Context) ([]Item, error) {
	ids, err := s.editorial.GetActiveFeaturedIDs(ctx, time.Now())
	if err != nil {
		return nil, fmt.Errorf("unable to load featured stories: %w", err)
	}
	return s.FetchDiscoveryItemsByStoryIDs(ctx, ids, Window{})
}

// SuggestionsFeed returns the rolling editorial picks in curator order.
func (s *Service) SuggestionsFeed(ctx context.Context) ([]Item, error) {
	ids, err := s.editorial.GetCurrentPickIDs(ctx, time.Now())
	if err != nil {
		return nil, fmt.Errorf("unable to load suggestions: %w", err)
	}
	return s.FetchDiscoveryItemsByStoryIDs(ctx, ids, Window{})
}

// hiddenStoryIDs resolves the viewer's dismissed and currently-snoozed
// stories. A visibility lookup failure degrades to nothing hidden; snooze
// expiry is evaluated here against now, never via stored transitions.
func (s *Service) hiddenStoryIDs(ctx context.Context, viewer models.Identity, now time.Time) map[string]bool {
	rows, err := s.visibility.GetForViewer(ctx, viewer)
	if err != nil {
		log.Printf("discovery: visibility lookup degraded: %v", err)
		return map[string]bool{}
	}

	hidden := make(map[string]bool)
	for _, row := range rows {
		if row.HiddenAt(now) {
			hidden[row.StoryID] = true
		}
	}
	return hidden
}

func publishedAfter(a, b *time.Time) bool {
	if a == nil {
		return false
	}
	if b == nil {
		return true
	}
	return a.After(*b)
}
