package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/hamstudy/pkg/models"
)

var summaryNow = time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

func result(group string, cardType models.CardType, correct bool, timeMs int64) models.CardResult {
	return models.CardResult{
		CardID:     group + "-card",
		CardType:   cardType,
		Subelement: group[:2],
		Group:      group,
		Correct:    correct,
		TimeMs:     timeMs,
	}
}

func TestBuildSummaryEmpty(t *testing.T) {
	summary := BuildSummary(nil, nil, summaryNow)

	assert.Equal(t, 0, summary.TotalCards)
	assert.NotEmpty(t, summary.SessionID)
	assert.Empty(t, summary.CategoryPerformance)
}

func TestBuildSummaryAccuracies(t *testing.T) {
	results := []models.CardResult{
		result("T1A", models.CardLearning, true, 3000),
		result("T1A", models.CardLearning, false, 5000),
		result("T2B", models.CardQuestion, true, 2000),
		result("T2B", models.CardQuestion, true, 2000),
	}
	summary := BuildSummary(results, nil, summaryNow)

	assert.Equal(t, 4, summary.TotalCards)
	assert.InDelta(t, 0.5, summary.LearningAccuracy, 1e-9)
	assert.InDelta(t, 1.0, summary.QuestionAccuracy, 1e-9)
	assert.Equal(t, int64(12000), summary.TimeSpentMs)
	assert.Equal(t, int64(3000), summary.AverageTimePerCard)
}

func TestBuildSummaryCategoryCallouts(t *testing.T) {
	results := []models.CardResult{
		result("T1A", models.CardLearning, false, 0),
		result("T1A", models.CardLearning, false, 0),
		result("T2B", models.CardLearning, true, 0),
		result("T3C", models.CardLearning, true, 0),
		result("T3C", models.CardLearning, false, 0),
	}
	summary := BuildSummary(results, nil, summaryNow)

	require.Len(t, summary.CategoryPerformance, 3)
	assert.Equal(t, "T1A", summary.WeakestCategory)
	assert.Equal(t, "T2B", summary.StrongestCategory)

	byID := map[string]models.CategoryPerformance{}
	for _, p := range summary.CategoryPerformance {
		byID[p.CategoryID] = p
	}
	assert.InDelta(t, 0.5, byID["T3C"].Accuracy, 1e-9)
}

func TestBuildSummarySingleCategoryNoCallouts(t *testing.T) {
	results := []models.CardResult{
		result("T1A", models.CardLearning, true, 0),
		result("T1A", models.CardLearning, false, 0),
	}
	summary := BuildSummary(results, nil, summaryNow)

	assert.Empty(t, summary.WeakestCategory)
	assert.Empty(t, summary.StrongestCategory)
}

func TestBuildSummaryImprovement(t *testing.T) {
	previous := BuildSummary([]models.CardResult{
		result("T1A", models.CardLearning, false, 0),
		result("T1A", models.CardLearning, true, 0),
	}, nil, summaryNow.Add(-24*time.Hour))

	summary := BuildSummary([]models.CardResult{
		result("T1A", models.CardLearning, true, 0),
		result("T1A", models.CardLearning, true, 0),
	}, previous, summaryNow)

	assert.InDelta(t, 0.5, summary.Improvement, 1e-9)
}

func TestBuildSummaryTracksPoolCounts(t *testing.T) {
	results := []models.CardResult{
		result("T1A", models.CardLearning, true, 0),
		result("T1A", models.CardLearning, false, 0),
		result("T2B", models.CardQuestion, true, 0),
	}
	summary := BuildSummary(results, nil, summaryNow)

	assert.Equal(t, 2, summary.LearningCount)
	assert.Equal(t, 1, summary.QuestionCount)
}

func TestBuildSummaryImprovementFromZeroAccuracy(t *testing.T) {
	// A previous session answered entirely wrong counts as 0.0 accuracy,
	// not as a missing pool.
	previous := BuildSummary([]models.CardResult{
		result("T1A", models.CardQuestion, false, 0),
		result("T1A", models.CardQuestion, false, 0),
	}, nil, summaryNow.Add(-24*time.Hour))

	summary := BuildSummary([]models.CardResult{
		result("T1A", models.CardQuestion, true, 0),
		result("T1A", models.CardQuestion, false, 0),
	}, previous, summaryNow)

	assert.InDelta(t, 0.5, summary.Improvement, 1e-9)
}

func TestBuildSummaryImprovementWeightsPools(t *testing.T) {
	// 1/1 learning and 0/3 question blend to 0.25, not a flat average.
	previous := BuildSummary([]models.CardResult{
		result("T1A", models.CardLearning, true, 0),
		result("T2B", models.CardQuestion, false, 0),
		result("T2B", models.CardQuestion, false, 0),
		result("T2B", models.CardQuestion, false, 0),
	}, nil, summaryNow.Add(-24*time.Hour))

	summary := BuildSummary([]models.CardResult{
		result("T2B", models.CardQuestion, true, 0),
		result("T2B", models.CardQuestion, true, 0),
	}, previous, summaryNow)

	assert.InDelta(t, 0.75, summary.Improvement, 1e-9)
}
