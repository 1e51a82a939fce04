package discovery

import (
	"context"
	"fmt"
	"time"

	"github.com/storytime-app/backend/internal/models"
	"github.com/storytime-app/backend/internal/repositories"
)

// In-memory repository fakes for exercising the discovery core without a
// database.

type fakeEventRepo struct {
	counts    map[string]models.EventCounts
	err       error
	calls     int
	lastSince *time.Time
	recorded  []models.StoryEvent
}

func (f *fakeEventRepo) RecordEvent(ctx context.Context, event *models.StoryEvent) error {
	f.recorded = append(f.recorded, *event)
	return nil
}

func (f *fakeEventRepo) CountEventsByStory(ctx context.Context, storyIDs []string, since *time.Time) (map[string]models.EventCounts, error) {
	f.calls++
	f.lastSince = since
	if f.err != nil {
		return nil, f.err
	}
	return f.counts, nil
}

type fakeReactionRepo struct {
	counts map[string]models.ReactionCounts
	err    error
	calls  int
}

func (f *fakeReactionRepo) CountReactionsByStory(ctx context.Context, storyIDs []string, since *time.Time) (map[string]models.ReactionCounts, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.counts, nil
}

type fakeLegacyLikeRepo struct {
	counts map[string]int64
	err    error
	calls  int
}

func (f *fakeLegacyLikeRepo) CountLikesByStory(ctx context.Context, storyIDs []string, since *time.Time) (map[string]int64, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.counts, nil
}

type fakeShelfRepo struct {
	counts map[string]int64
	err    error
	calls  int
}

func (f *fakeShelfRepo) CountSavesByStory(ctx context.Context, storyIDs []string, since *time.Time) (map[string]int64, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.counts, nil
}

func (f *fakeShelfRepo) SaveToShelf(ctx context.Context, userID, storyID, shelfID, shelfName string) error {
	return nil
}

type fakeCompletionRepo struct {
	counts map[string]int64
	err    error
	calls  int
}

func (f *fakeCompletionRepo) CountCompletionsByStory(ctx context.Context, storyIDs []string, since *time.Time) (map[string]int64, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.counts, nil
}

type fakeStoryRepo struct {
	stories   []models.Story
	err       error
	lastQuery repositories.StoryQuery
}

func (f *fakeStoryRepo) FindPublished(ctx context.Context, q repositories.StoryQuery) ([]models.Story, error) {
	f.lastQuery = q
	if f.err != nil {
		return nil, f.err
	}
	return f.stories, nil
}

func (f *fakeStoryRepo) FindPublishedByIDs(ctx context.Context, ids []string) ([]models.Story, error) {
	if f.err != nil {
		return nil, f.err
	}
	requested := make(map[string]bool, len(ids))
	for _, id := range ids {
		requested[id] = true
	}
	var out []models.Story
	for _, story := range f.stories {
		if requested[story.ID] {
			out = append(out, story)
		}
	}
	return out, nil
}

func (f *fakeStoryRepo) GetPublishedBySlug(ctx context.Context, slug string) (*models.Story, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, story := range f.stories {
		if story.Slug == slug {
			s := story
			return &s, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", repositories.ErrStoryNotFound, slug)
}

type fakeProfileRepo struct {
	names map[string]string
	err   error
}

func (f *fakeProfileRepo) GetDisplayNames(ctx context.Context, ids []string) (map[string]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.names, nil
}

type fakeFollowRepo struct {
	ids []string
	err error
}

func (f *fakeFollowRepo) GetFollowingIDs(ctx context.Context, followerID string) ([]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.ids, nil
}

type fakeVisibilityRepo struct {
	rows []models.StoryVisibility
	err  error
}

func (f *fakeVisibilityRepo) GetForViewer(ctx context.Context, viewer models.Identity) ([]models.StoryVisibility, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.rows, nil
}

func (f *fakeVisibilityRepo) SetDismissed(ctx context.Context, viewer models.Identity, storyID string) error {
	return nil
}

func (f *fakeVisibilityRepo) SetSnoozed(ctx context.Context, viewer models.Identity, storyID string, until time.Time) error {
	return nil
}

type fakeEditorialRepo struct {
	pickIDs     []string
	featuredIDs []string
	err         error
}

func (f *fakeEditorialRepo) GetCurrentPickIDs(ctx context.Context, now time.Time) ([]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.pickIDs, nil
}

func (f *fakeEditorialRepo) GetActiveFeaturedIDs(ctx context.Context, now time.Time) ([]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.featuredIDs, nil
}

// testDeps bundles every fake behind a service for feed and service tests.
type testDeps struct {
	stories     *fakeStoryRepo
	profiles    *fakeProfileRepo
	follows     *fakeFollowRepo
	visibility  *fakeVisibilityRepo
	editorial   *fakeEditorialRepo
	events      *fakeEventRepo
	reactions   *fakeReactionRepo
	legacyLikes *fakeLegacyLikeRepo
	shelves     *fakeShelfRepo
	completions *fakeCompletionRepo
}

func newTestDeps() *testDeps {
	return &testDeps{
		stories:     &fakeStoryRepo{},
		profiles:    &fakeProfileRepo{names: map[string]string{}},
		follows:     &fakeFollowRepo{},
		visibility:  &fakeVisibilityRepo{},
		editorial:   &fakeEditorialRepo{},
		events:      &fakeEventRepo{counts: map[string]models.EventCounts{}},
		reactions:   &fakeReactionRepo{counts: map[string]models.ReactionCounts{}},
		legacyLikes: &fakeLegacyLikeRepo{counts: map[string]int64{}},
		shelves:     &fakeShelfRepo{counts: map[string]int64{}},
		completions: &fakeCompletionRepo{counts: map[string]int64{}},
	}
}

func (d *testDeps) service() *Service {
	aggregator := NewAggregator(d.events, d.reactions, d.legacyLikes, d.shelves, d.completions)
	return NewService(d.stories, d.profiles, d.follows, d.visibility, d.editorial, aggregator)
}

func timePtr(t time.Time) *time.Time {
	return &t
}

func strPtr(s string) *string {
	return &s
}

func publishedStory(id, lengthClass string, publishedAt time.Time) models.Story {
	return models.Story{
		ID:          id,
		Title:       "Story " + id,
		Slug:        "story-" + id,
		Body:        "A first sentence. And a second one.",
		LengthClass: lengthClass,
		Genre:       "Literary",
		Status:      models.StoryStatusPublished,
		PublishedAt: timePtr(publishedAt),
	}
}
