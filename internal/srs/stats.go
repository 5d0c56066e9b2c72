package srs

import (
	"sort"

	"github.com/samber/lo"

	"github.com/example/hamstudy/pkg/models"
)

// PassingScore is the fraction of correct answers required on a US amateur
// license exam (26 of 35 and 37 of 50 both round to 74%)
const PassingScore = 0.74

// GetQuestionsBySubelement returns the pool questions belonging to one
// subelement, e.g. "T1"
func (s *Scheduler) GetQuestionsBySubelement(level models.ExamLevel, subelement string) ([]models.Question, error) {
	pool, err := s.pools.QuestionPool(level)
	if err != nil {
		return nil, err
	}
	return lo.Filter(pool, func(q models.Question, _ int) bool {
		return q.Subelement == subelement
	}), nil
}

// GetQuestionsByStatus returns the pool questions currently in the given
// lifecycle stage. StatusNew matches questions with no record at all.
func (s *Scheduler) GetQuestionsByStatus(level models.ExamLevel, status models.QuestionStatus) ([]models.Question, error) {
	pool, seen, err := s.poolWithProgress(level)
	if err != nil {
		return nil, err
	}
	return lo.Filter(pool, func(q models.Question, _ int) bool {
		progress, ok := seen[q.ID]
		if !ok {
			return status == models.StatusNew
		}
		return progress.Status == status
	}), nil
}

// GetSubelements returns the sorted distinct subelement codes in the pool
func (s *Scheduler) GetSubelements(level models.ExamLevel) ([]string, error) {
	pool, err := s.pools.QuestionPool(level)
	if err != nil {
		return nil, err
	}
	codes := lo.Uniq(lo.Map(pool, func(q models.Question, _ int) string {
		return q.Subelement
	}))
	sort.Strings(codes)
	return codes, nil
}

// GetProgressBySubelement aggregates per-subelement progress for dashboards
func (s *Scheduler) GetProgressBySubelement(level models.ExamLevel) ([]models.SubelementProgress, error) {
	pool, seen, err := s.poolWithProgress(level)
	if err != nil {
		return nil, err
	}

	byCode := make(map[string]*models.SubelementProgress)
	var attempts, correct map[string]int
	attempts = make(map[string]int)
	correct = make(map[string]int)

	for _, q := range pool {
		agg, ok := byCode[q.Subelement]
		if !ok {
			agg = &models.SubelementProgress{Subelement: q.Subelement}
			byCode[q.Subelement] = agg
		}
		agg.Total++
		progress, answered := seen[q.ID]
		if !answered {
			continue
		}
		agg.Seen++
		if progress.Status == models.StatusMastered {
			agg.Mastered++
		}
		attempts[q.Subelement] += progress.Attempts
		correct[q.Subelement] += progress.CorrectCount
	}

	codes := lo.Keys(byCode)
	sort.Strings(codes)

	result := make([]models.SubelementProgress, 0, len(codes))
	for _, code := range codes {
		agg := byCode[code]
		if attempts[code] > 0 {
			agg.Accuracy = float64(correct[code]) / float64(attempts[code])
		}
		result = append(result, *agg)
	}
	return result, nil
}

// GetProgressStats returns the pool-wide dashboard stats for one exam level
func (s *Scheduler) GetProgressStats(level models.ExamLevel) (*models.ProgressStats, error) {
	pool, seen, err := s.poolWithProgress(level)
	if err != nil {
		return nil, err
	}
	now := s.now()

	stats := &models.ProgressStats{Total: len(pool)}
	var attempts, correct int
	for _, q := range pool {
		progress, ok := seen[q.ID]
		if !ok {
			stats.New++
			continue
		}
		switch progress.Status {
		case models.StatusLearning:
			stats.Learning++
		case models.StatusReview:
			stats.Review++
		case models.StatusMastered:
			stats.Mastered++
		}
		if progress.Due(now) {
			stats.DueCount++
		}
		attempts += progress.Attempts
		correct += progress.CorrectCount
	}
	if attempts > 0 {
		stats.Accuracy = float64(correct) / float64(attempts)
	}
	return stats, nil
}

// ExamReadiness estimates how a learner would fare on the real exam today
type ExamReadiness struct {
	Level           models.ExamLevel            `json:"level"`
	EstimatedScore  float64                     `json:"estimated_score"`
	Ready           bool                        `json:"ready"`
	WeakSubelements []models.SubelementProgress `json:"weak_subelements"`
}

// GetExamReadiness scores readiness from per-subelement accuracy, weighting
// each subelement by its share of the pool (real exams draw one question per
// group, which pool share approximates)
func (s *Scheduler) GetExamReadiness(level models.ExamLevel) (*ExamReadiness, error) {
	bySubelement, err := s.GetProgressBySubelement(level)
	if err != nil {
		return nil, err
	}

	readiness := &ExamReadiness{Level: level}
	var total, weighted float64
	for _, sub := range bySubelement {
		total += float64(sub.Total)
		// Unseen questions count as misses
		seenShare := 0.0
		if sub.Total > 0 {
			seenShare = float64(sub.Seen) / float64(sub.Total)
		}
		weighted += float64(sub.Total) * sub.Accuracy * seenShare
		if seenShare > 0 && sub.Accuracy < PassingScore {
			readiness.WeakSubelements = append(readiness.WeakSubelements, sub)
		}
	}
	if total > 0 {
		readiness.EstimatedScore = weighted / total
	}
	readiness.Ready = readiness.EstimatedScore >= PassingScore
	return readiness, nil
}
