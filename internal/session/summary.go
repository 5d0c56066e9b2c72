// Package session reduces a finished study batch into the summary shown to
// the learner, and assembles graded practice exams.
package session

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/example/hamstudy/pkg/models"
)

// BuildSummary reduces a completed batch of card results into accuracy
// rollups and category callouts. Pure computation: results are taken in
// answer order and nothing is read from storage. previous may be nil; when
// present it feeds the improvement delta.
func BuildSummary(results []models.CardResult, previous *models.SessionSummary, completedAt time.Time) *models.SessionSummary {
	summary := &models.SessionSummary{
		SessionID:   uuid.NewString(),
		CompletedAt: completedAt,
		TotalCards:  len(results),
	}
	if len(results) == 0 {
		return summary
	}

	var learningTotal, learningCorrect, questionTotal, questionCorrect int
	for _, result := range results {
		summary.TimeSpentMs += result.TimeMs
		if result.CardType == models.CardLearning {
			learningTotal++
			if result.Correct {
				learningCorrect++
			}
		} else {
			questionTotal++
			if result.Correct {
				questionCorrect++
			}
		}
	}
	summary.LearningCount = learningTotal
	summary.QuestionCount = questionTotal
	if learningTotal > 0 {
		summary.LearningAccuracy = float64(learningCorrect) / float64(learningTotal)
	}
	if questionTotal > 0 {
		summary.QuestionAccuracy = float64(questionCorrect) / float64(questionTotal)
	}
	summary.AverageTimePerCard = summary.TimeSpentMs / int64(len(results))

	summary.CategoryPerformance = categoryBreakdown(results)
	summary.WeakestCategory, summary.StrongestCategory = callouts(summary.CategoryPerformance)

	if previous != nil {
		summary.Improvement = overallAccuracy(summary) - overallAccuracy(previous)
	}
	return summary
}

// categoryBreakdown rolls results up by group code, sorted by code
func categoryBreakdown(results []models.CardResult) []models.CategoryPerformance {
	byGroup := lo.GroupBy(results, func(result models.CardResult) string {
		return result.Group
	})

	codes := lo.Keys(byGroup)
	sort.Strings(codes)

	performance := make([]models.CategoryPerformance, 0, len(codes))
	for _, code := range codes {
		group := byGroup[code]
		correct := lo.CountBy(group, func(result models.CardResult) bool {
			return result.Correct
		})
		performance = append(performance, models.CategoryPerformance{
			CategoryID: code,
			Correct:    correct,
			Total:      len(group),
			Accuracy:   float64(correct) / float64(len(group)),
		})
	}
	return performance
}

// callouts names the weakest and strongest categories. With a single
// category both callouts are empty: one data point is not a comparison.
func callouts(performance []models.CategoryPerformance) (weakest, strongest string) {
	if len(performance) < 2 {
		return "", ""
	}
	weak, strong := performance[0], performance[0]
	for _, p := range performance[1:] {
		if p.Accuracy < weak.Accuracy {
			weak = p
		}
		if p.Accuracy > strong.Accuracy {
			strong = p
		}
	}
	return weak.CategoryID, strong.CategoryID
}

// overallAccuracy blends both pools of a summary back into one number,
// weighted by the per-pool card counts
func overallAccuracy(summary *models.SessionSummary) float64 {
	total := summary.LearningCount + summary.QuestionCount
	if total == 0 {
		return 0
	}
	weighted := summary.LearningAccuracy*float64(summary.LearningCount) +
		summary.QuestionAccuracy*float64(summary.QuestionCount)
	return weighted / float64(total)
}
