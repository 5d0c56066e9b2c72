package flashcards

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/example/hamstudy/pkg/models"
)

var recommendNow = time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

func TestRecommendExploreWithNoHistory(t *testing.T) {
	rec := RecommendMode(nil, "", recommendNow)
	assert.Equal(t, ModeExplore, rec.Mode)
}

func TestRecommendReviewAfterSessionGap(t *testing.T) {
	categories := []*models.CategoryProgress{
		studiedCategory("T1A", 20, 15, recommendNow.Add(-24*time.Hour)),
	}
	rec := RecommendMode(categories, "2026-08-25", recommendNow)
	assert.Equal(t, ModeReview, rec.Mode)
	assert.NotEmpty(t, rec.Reason)
}

func TestRecommendReviewBeatsExploreWhenRusty(t *testing.T) {
	// One rusty category and one unexplored one: review wins the tie.
	categories := []*models.CategoryProgress{
		studiedCategory("T1A", 20, 15, recommendNow.Add(-10*24*time.Hour)),
		{Key: models.GroupKey("T2B")},
	}
	rec := RecommendMode(categories, "2026-08-30", recommendNow)
	assert.Equal(t, ModeReview, rec.Mode)
}

func TestRecommendExploreBeatsAdaptive(t *testing.T) {
	categories := []*models.CategoryProgress{
		studiedCategory("T1A", 20, 15, recommendNow.Add(-24*time.Hour)),
		{Key: models.GroupKey("T2B")},
	}
	rec := RecommendMode(categories, "2026-08-30", recommendNow)
	assert.Equal(t, ModeExplore, rec.Mode)
}

func TestRecommendFocusOnWeakCategory(t *testing.T) {
	categories := []*models.CategoryProgress{
		studiedCategory("T1A", 20, 4, recommendNow.Add(-24*time.Hour)),
		studiedCategory("T2B", 20, 18, recommendNow.Add(-24*time.Hour)),
	}
	rec := RecommendMode(categories, "2026-08-30", recommendNow)
	assert.Equal(t, ModeFocus, rec.Mode)
	assert.Contains(t, rec.Reason, "T1A")
}

func TestRecommendAdaptiveWhenBalanced(t *testing.T) {
	categories := []*models.CategoryProgress{
		studiedCategory("T1A", 20, 15, recommendNow.Add(-24*time.Hour)),
		studiedCategory("T2B", 20, 16, recommendNow.Add(-24*time.Hour)),
	}
	rec := RecommendMode(categories, "2026-08-30", recommendNow)
	assert.Equal(t, ModeAdaptive, rec.Mode)
}
