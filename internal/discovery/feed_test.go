package discovery

import (
	"context"
	"testing"
	"time"

	"github.com/storytime-app/backend/internal/models"
)

func TestParseMode(t *testing.T) {
	if got := ParseMode("algo"); got != ModeAlgo {
		t.Errorf("ParseMode(algo) = %q", got)
	}
	for _, raw := range []string{"", "newest", "hot", "garbage"} {
		if got := ParseMode(raw); got != ModeNewest {
			t.Errorf("ParseMode(%q) = %q, want newest", raw, got)
		}
	}
}

func TestParsePersonalMode(t *testing.T) {
	for raw, want := range map[string]string{
		"following":     PersonalModeFollowing,
		"public-domain": PersonalModePublicDomain,
		"feed":          PersonalModeFeed,
		"":              PersonalModeFeed,
		"bogus":         PersonalModeFeed,
	} {
		if got := ParsePersonalMode(raw); got != want {
			t.Errorf("ParsePersonalMode(%q) = %q, want %q", raw, got, want)
		}
	}
}

func TestInterleaveByLength(t *testing.T) {
	item := func(id, lengthClass string, score float64) Item {
		return Item{Story: models.Story{ID: id, LengthClass: lengthClass}, Score: score}
	}

	t.Run("empty input", func(t *testing.T) {
		if got := InterleaveByLength(nil); len(got) != 0 {
			t.Errorf("expected empty output, got %d items", len(got))
		}
	})

	t.Run("two flash one short", func(t *testing.T) {
		got := InterleaveByLength([]Item{
			item("f1", models.LengthFlash, 10),
			item("f2", models.LengthFlash, 20),
			item("s1", models.LengthShort, 99),
		})
		if len(got) != 3 {
			t.Fatalf("output length = %d, want 3", len(got))
		}
		// Round one drains flash then short; flash pool leads with its
		// higher-scored item despite the short item's top score overall.
		wantOrder := []string{"f2", "s1", "f1"}
		for i, want := range wantOrder {
			if got[i].ID != want {
				t.Errorf("position %d = %q, want %q", i, got[i].ID, want)
			}
		}
	})

	t.Run("one per pool follows fixed pool order", func(t *testing.T) {
		got := InterleaveByLength([]Item{
			item("st", models.LengthStorytime, 114),
			item("sh", models.LengthShort, 32),
			item("fl", models.LengthFlash, 94.4),
		})
		wantOrder := []string{"fl", "sh", "st"}
		for i, want := range wantOrder {
			if got[i].ID != want {
				t.Errorf("position %d = %q, want %q", i, got[i].ID, want)
			}
		}
	})

	t.Run("pools drain by score descending", func(t *testing.T) {
		got := InterleaveByLength([]Item{
			item("a", models.LengthShort, 1),
			item("b", models.LengthShort, 3),
			item("c", models.LengthShort, 2),
		})
		wantOrder := []string{"b", "c", "a"}
		for i, want := range wantOrder {
			if got[i].ID != want {
				t.Errorf("position %d = %q, want %q", i, got[i].ID, want)
			}
		}
	})
}

func TestHotFeed(t *testing.T) {
	now := time.Now()

	t.Run("excludes stories under the view floor", func(t *testing.T) {
		d := newTestDeps()
		d.stories.stories = []models.Story{
			publishedStory("loud", models.LengthShort, now.AddDate(0, 0, -2)),
			publishedStory("quiet", models.LengthShort, now.AddDate(0, 0, -1)),
		}
		d.events.counts["loud"] = models.EventCounts{Opens: 50, Completes: 10}
		// Perfect completion but only 4 opens: raw score would rank first.
		d.events.counts["quiet"] = models.EventCounts{Opens: 4, Completes: 4}
		d.reactions.counts["quiet"] = models.ReactionCounts{Likes: 40}

		feed, err := d.service().HotFeed(context.Background(), HotOptions{})
		if err != nil {
			t.Fatalf("HotFeed() error = %v", err)
		}
		if len(feed) != 1 || feed[0].ID != "loud" {
			t.Fatalf("feed = %v, want only the story above the floor", feedIDs(feed))
		}
	})

	t.Run("window restricts eligibility and metrics", func(t *testing.T) {
		d := newTestDeps()
		d.stories.stories = []models.Story{publishedStory("x", models.LengthShort, now.AddDate(0, 0, -1))}
		if _, err := d.service().HotFeed(context.Background(), HotOptions{Window: HotWindowYear}); err != nil {
			t.Fatalf("HotFeed() error = %v", err)
		}
		if d.stories.lastQuery.PublishedSince == nil {
			t.Error("story eligibility should be windowed")
		}
		if d.events.lastSince == nil {
			t.Error("metric sources should be windowed")
		}
		want := now.AddDate(0, 0, -365)
		if diff := d.events.lastSince.Sub(want); diff < -time.Minute || diff > time.Minute {
			t.Errorf("metric cutoff = %v, want about %v", d.events.lastSince, want)
		}
	})

	t.Run("ties break toward the newer story", func(t *testing.T) {
		d := newTestDeps()
		older := publishedStory("older", models.LengthShort, now.AddDate(0, 0, -20))
		newer := publishedStory("newer", models.LengthShort, now.AddDate(0, 0, -5))
		d.stories.stories = []models.Story{older, newer}
		for _, id := range []string{"older", "newer"} {
			d.events.counts[id] = models.EventCounts{Opens: 10, Completes: 5}
		}

		feed, err := d.service().HotFeed(context.Background(), HotOptions{})
		if err != nil {
			t.Fatalf("HotFeed() error = %v", err)
		}
		if len(feed) != 2 || feed[0].ID != "newer" {
			t.Errorf("feed = %v, want newer first on tie", feedIDs(feed))
		}
	})

	t.Run("caps the feed at ten", func(t *testing.T) {
		d := newTestDeps()
		for i := 0; i < 14; i++ {
			id := string(rune('a' + i))
			d.stories.stories = append(d.stories.stories, publishedStory(id, models.LengthShort, now.AddDate(0, 0, -i)))
			d.events.counts[id] = models.EventCounts{Opens: 10, Completes: int64(i)}
		}
		feed, err := d.service().HotFeed(context.Background(), HotOptions{})
		if err != nil {
			t.Fatalf("HotFeed() error = %v", err)
		}
		if len(feed) != 10 {
			t.Errorf("feed length = %d, want 10", len(feed))
		}
	})
}

func TestPersonalFeed(t *testing.T) {
	now := time.Now()
	viewer := models.AuthenticatedIdentity("user-1")

	engaged := func(d *testDeps, id string, likes, completions int64) {
		d.reactions.counts[id] = models.ReactionCounts{Likes: likes}
		d.events.counts[id] = models.EventCounts{Opens: 10, Completes: completions}
	}

	t.Run("following mode for anonymous viewer is empty", func(t *testing.T) {
		d := newTestDeps()
		d.stories.stories = []models.Story{publishedStory("a", models.LengthFlash, now)}
		feed, err := d.service().PersonalFeed(context.Background(), models.AnonymousIdentity("anon_x"), PersonalOptions{Mode: PersonalModeFollowing})
		if err != nil {
			t.Fatalf("PersonalFeed() error = %v", err)
		}
		if len(feed) != 0 {
			t.Errorf("feed = %v, want empty", feedIDs(feed))
		}
	})

	t.Run("empty follow graph yields empty feed", func(t *testing.T) {
		d := newTestDeps()
		d.stories.stories = []models.Story{publishedStory("a", models.LengthFlash, now)}
		feed, err := d.service().PersonalFeed(context.Background(), viewer, PersonalOptions{Mode: PersonalModeFollowing})
		if err != nil {
			t.Fatalf("PersonalFeed() error = %v", err)
		}
		if len(feed) != 0 {
			t.Errorf("feed = %v, want empty", feedIDs(feed))
		}
	})

	t.Run("following mode keeps only followed authors", func(t *testing.T) {
		d := newTestDeps()
		followed := publishedStory("followed", models.LengthFlash, now)
		followed.AuthorID = strPtr("author-1")
		other := publishedStory("other", models.LengthFlash, now)
		other.AuthorID = strPtr("author-2")
		anonymous := publishedStory("anon", models.LengthFlash, now)
		d.stories.stories = []models.Story{followed, other, anonymous}
		d.follows.ids = []string{"author-1"}
		for _, id := range []string{"followed", "other", "anon"} {
			engaged(d, id, 1, 0)
		}

		feed, err := d.service().PersonalFeed(context.Background(), viewer, PersonalOptions{Mode: PersonalModeFollowing})
		if err != nil {
			t.Fatalf("PersonalFeed() error = %v", err)
		}
		if len(feed) != 1 || feed[0].ID != "followed" {
			t.Errorf("feed = %v, want [followed]", feedIDs(feed))
		}
	})

	t.Run("public domain mode narrows the story query", func(t *testing.T) {
		d := newTestDeps()
		if _, err := d.service().PersonalFeed(context.Background(), viewer, PersonalOptions{Mode: PersonalModePublicDomain}); err != nil {
			t.Fatalf("PersonalFeed() error = %v", err)
		}
		if !d.stories.lastQuery.OnlyPublicDomain {
			t.Error("expected OnlyPublicDomain on the story query")
		}
	})

	t.Run("zero-signal stories are cold-start filtered", func(t *testing.T) {
		d := newTestDeps()
		d.stories.stories = []models.Story{
			publishedStory("cold", models.LengthFlash, now),
			publishedStory("warm", models.LengthFlash, now),
		}
		engaged(d, "warm", 2, 1)

		feed, err := d.service().PersonalFeed(context.Background(), viewer, PersonalOptions{})
		if err != nil {
			t.Fatalf("PersonalFeed() error = %v", err)
		}
		if len(feed) != 1 || feed[0].ID != "warm" {
			t.Errorf("feed = %v, want [warm]", feedIDs(feed))
		}
	})

	t.Run("ordered by engagement score descending", func(t *testing.T) {
		d := newTestDeps()
		d.stories.stories = []models.Story{
			publishedStory("low", models.LengthFlash, now),
			publishedStory("high", models.LengthFlash, now.AddDate(0, 0, -9)),
		}
		engaged(d, "low", 1, 0)  // score 1
		engaged(d, "high", 2, 3) // score 8

		feed, err := d.service().PersonalFeed(context.Background(), viewer, PersonalOptions{})
		if err != nil {
			t.Fatalf("PersonalFeed() error = %v", err)
		}
		want := []string{"high", "low"}
		for i, id := range want {
			if feed[i].ID != id {
				t.Errorf("position %d = %q, want %q", i, feed[i].ID, id)
			}
		}
		if feed[0].Score != 8 {
			t.Errorf("score = %v, want 8", feed[0].Score)
		}
	})

	t.Run("visibility suppression", func(t *testing.T) {
		d := newTestDeps()
		for _, id := range []string{"dismissed", "snoozed", "expired", "visible"} {
			d.stories.stories = append(d.stories.stories, publishedStory(id, models.LengthFlash, now))
			engaged(d, id, 1, 0)
		}
		d.visibility.rows = []models.StoryVisibility{
			{StoryID: "dismissed", Dismissed: true},
			{StoryID: "snoozed", SnoozeUntil: timePtr(now.Add(12 * time.Hour))},
			{StoryID: "expired", SnoozeUntil: timePtr(now.Add(-12 * time.Hour))},
		}

		feed, err := d.service().PersonalFeed(context.Background(), viewer, PersonalOptions{})
		if err != nil {
			t.Fatalf("PersonalFeed() error = %v", err)
		}
		got := map[string]bool{}
		for _, item := range feed {
			got[item.ID] = true
		}
		if got["dismissed"] {
			t.Error("dismissed story should be suppressed")
		}
		if got["snoozed"] {
			t.Error("actively snoozed story should be suppressed")
		}
		if !got["expired"] {
			t.Error("expired snooze should no longer suppress")
		}
		if !got["visible"] {
			t.Error("untouched story should be visible")
		}
	})
}

func TestCuratedFeedsPreservePickOrder(t *testing.T) {
	now := time.Now()
	d := newTestDeps()
	d.stories.stories = []models.Story{
		publishedStory("a", models.LengthFlash, now.AddDate(0, 0, -1)),
		publishedStory("b", models.LengthShort, now.AddDate(0, 0, -2)),
		publishedStory("c", models.LengthStorytime, now.AddDate(0, 0, -3)),
	}
	d.editorial.featuredIDs = []string{"c", "a"}
	d.editorial.pickIDs = []string{"b", "c", "a"}
	svc := d.service()

	featured, err := svc.FeaturedFeed(context.Background())
	if err != nil {
		t.Fatalf("FeaturedFeed() error = %v", err)
	}
	if ids := feedIDs(featured); len(ids) != 2 || ids[0] != "c" || ids[1] != "a" {
		t.Errorf("featured = %v, want [c a]", ids)
	}

	picks, err := svc.SuggestionsFeed(context.Background())
	if err != nil {
		t.Fatalf("SuggestionsFeed() error = %v", err)
	}
	if ids := feedIDs(picks); len(ids) != 3 || ids[0] != "b" || ids[1] != "c" || ids[2] != "a" {
		t.Errorf("suggestions = %v, want [b c a]", ids)
	}
}

func feedIDs(items []Item) []string {
	ids := make([]string, len(items))
	for i, item := range items {
		ids[i] = item.ID
	}
	return ids
}
