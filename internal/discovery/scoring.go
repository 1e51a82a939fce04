package discovery

import (
	"time"

	"github.com/storytime-app/backend/internal/models"
)

// MinHotViews is the anti-noise floor for the hot ranking: stories with
// fewer opens are excluded regardless of score.
const MinHotViews = 5

// AlgoScore is the completion-first ranking formula used by the algo and
// suggestions feeds. Pure: time enters only through now.
func AlgoScore(story models.Story, m Metrics, now time.Time) float64 {
	return m.CompletionRate*100 +
		float64(m.Saves)*1.8 +
		float64(m.Likes)*1.2 -
		float64(m.Dislikes)*0.8 +
		FreshnessBonus(story.PublishedAt, now)
}

// FreshnessBonus rewards recent publication: 12 within 3 days, 7 within 14,
// 3 within 30, 0 beyond.
func FreshnessBonus(publishedAt *time.Time, now time.Time) float64 {
	switch {
	case publishedWithinDays(publishedAt, now, 3):
		return 12
	case publishedWithinDays(publishedAt, now, 14):
		return 7
	case publishedWithinDays(publishedAt, now, 30):
		return 3
	}
	return 0
}

// HotScore is the trending formula. The MinHotViews floor and the
// publish-date tiebreak are applied by the hot feed policy, not here.
func HotScore(m Metrics) float64 {
	return float64(m.Completions)*2 +
		m.LikeRatio*20 +
		float64(m.Likes) -
		float64(m.Dislikes)*0.5
}

// PersonalScore is the simple engagement ordering for personalized feeds.
// Items scoring zero (no likes and no completions) are cold-start filtered
// by the personal feed policy.
func PersonalScore(m Metrics) float64 {
	return float64(m.Likes) + float64(m.Completions)*2
}

func publishedWithinDays(publishedAt *time.Time, now time.Time, days int) bool {
	if publishedAt == nil {
		return false
	}
	return !publishedAt.Before(now.AddDate(0, 0, -days))
}
