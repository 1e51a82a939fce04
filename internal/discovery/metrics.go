package discovery

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/storytime-app/backend/internal/models"
	"github.com/storytime-app/backend/internal/repositories"
)

// Window is an optional recency cutoff for metric computation. The zero
// value means all-time.
type Window struct {
	SinceDays int
}

// Since converts the window into an absolute cutoff, or nil for all-time.
func (w Window) Since(now time.Time) *time.Time {
	if w.SinceDays <= 0 {
		return nil
	}
	t := now.AddDate(0, 0, -w.SinceDays)
	return &t
}

// Metrics is a story's normalized engagement record within a window.
// CompletionRate and LikeRatio are always in [0,1]; SampleSize is floored at
// 1 so callers can divide by it safely.
type Metrics struct {
	Views          int64   `json:"views"`
	Impressions    int64   `json:"impressions"`
	Opens          int64   `json:"opens"`
	Likes          int64   `json:"likes"`
	Dislikes       int64   `json:"dislikes"`
	Saves          int64   `json:"saves"`
	Completions    int64   `json:"completions"`
	CompletionRate float64 `json:"completion_rate"`
	LikeRatio      float64 `json:"like_ratio"`
	SampleSize     int64   `json:"sample_size"`
}

// Aggregator reduces the five raw signal sources into one Metrics record per
// story. It is read-only and safe for concurrent use.
type Aggregator struct {
	events      repositories.EngagementEventRepository
	reactions   repositories.ReactionRepository
	legacyLikes repositories.LegacyLikeRepository
	shelves     repositories.ShelfRepository
	completions repositories.CompletionRepository
}

// NewAggregator creates a new Aggregator
func NewAggregator(
	events repositories.EngagementEventRepository,
	reactions repositories.ReactionRepository,
	legacyLikes repositories.LegacyLikeRepository,
	shelves repositories.ShelfRepository,
	completions repositories.CompletionRepository,
) *Aggregator {
	return &Aggregator{
		events:      events,
		reactions:   reactions,
		legacyLikes: legacyLikes,
		shelves:     shelves,
		completions: completions,
	}
}

// ComputeMetrics fetches the five signal sources concurrently and reduces
// them into a per-story Metrics map. Every requested id appears in the
// result, zero-filled when no rows exist. A failing source degrades to empty
// with a log line rather than failing the whole aggregation; the error
// return is reserved for future fatal conditions and is currently always
// nil.
func (a *Aggregator) ComputeMetrics(ctx context.Context, storyIDs []string, window Window) (map[string]Metrics, error) {
	metrics := make(map[string]Metrics, len(storyIDs))
	if len(storyIDs) == 0 {
		return metrics, nil
	}

	since := window.Since(time.Now())

	var (
		eventCounts      map[string]models.EventCounts
		reactionCounts   map[string]models.ReactionCounts
		legacyLikes      map[string]int64
		saves            map[string]int64
		legacyCompletion map[string]int64
	)

	var wg sync.WaitGroup
	fetch := func(source string, load func() error) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := load(); err != nil {
				log.Printf("metrics: %s source degraded to empty: %v", source, err)
			}
		}()
	}

	fetch("events", func() (err error) {
		eventCounts, err = a.events.CountEventsByStory(ctx, storyIDs, since)
		return err
	})
	fetch("reactions", func() (err error) {
		reactionCounts, err = a.reactions.CountReactionsByStory(ctx, storyIDs, since)
		return err
	})
	fetch("legacy likes", func() (err error) {
		legacyLikes, err = a.legacyLikes.CountLikesByStory(ctx, storyIDs, since)
		return err
	})
	fetch("saves", func() (err error) {
		saves, err = a.shelves.CountSavesByStory(ctx, storyIDs, since)
		return err
	})
	fetch("legacy completions", func() (err error) {
		legacyCompletion, err = a.completions.CountCompletionsByStory(ctx, storyIDs, since)
		return err
	})
	wg.Wait()

	for _, storyID := range storyIDs {
		events := eventCounts[storyID]
		reactions := reactionCounts[storyID]

		likes := reconcileLikes(reactions.Likes, legacyLikes[storyID])
		completions := reconcileCompletions(events.Completes, legacyCompletion[storyID])
		views := events.Opens
		sampleSize := views
		if sampleSize < 1 {
			sampleSize = 1
		}

		// Legacy completions can outnumber tracked opens, so cap the rate.
		completionRate := float64(completions) / float64(sampleSize)
		if completionRate > 1 {
			completionRate = 1
		}

		likeRatio := 0.0
		if total := likes + reactions.Dislikes; total > 0 {
			likeRatio = float64(likes) / float64(total)
		}

		metrics[storyID] = Metrics{
			Views:          views,
			Impressions:    events.Impressions,
			Opens:          events.Opens,
			Likes:          likes,
			Dislikes:       reactions.Dislikes,
			Saves:          saves[storyID],
			Completions:    completions,
			CompletionRate: completionRate,
			LikeRatio:      likeRatio,
			SampleSize:     sampleSize,
		}
	}

	return metrics, nil
}

// reconcileLikes: the unified reactions table takes precedence whenever it
// has any rows for the story; otherwise the legacy count stands.
func reconcileLikes(unified, legacy int64) int64 {
	if unified > 0 {
		return unified
	}
	return legacy
}

// reconcileCompletions: the event stream and the legacy table overlap for
// part of history, so take whichever counted more.
func reconcileCompletions(unified, legacy int64) int64 {
	if unified > legacy {
		return unified
	}
	return legacy
}
