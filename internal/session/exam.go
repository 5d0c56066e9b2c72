package session

import (
	"math/rand"
	"sort"
	"time"

	"github.com/samber/lo"

	"github.com/example/hamstudy/pkg/models"
)

// Question counts on the real exams: 35 for technician and general, 50 for
// extra
func ExamSize(level models.ExamLevel) int {
	if level == models.ExamExtra {
		return 50
	}
	return 35
}

// PracticeExam is one assembled exam attempt
type PracticeExam struct {
	Level     models.ExamLevel  `json:"level"`
	Questions []models.Question `json:"questions"`
	StartedAt time.Time         `json:"started_at"`
}

// ExamResult is a graded practice exam
type ExamResult struct {
	Level   models.ExamLevel `json:"level"`
	Total   int              `json:"total"`
	Correct int              `json:"correct"`
	Score   float64          `json:"score"`
	Passed  bool             `json:"passed"`
	Missed  []string         `json:"missed"` // question ids answered wrong
}

// examPassingScore mirrors the VEC grading rule (74% to pass)
const examPassingScore = 0.74

// BuildPracticeExam draws an exam from the pool the way a VEC does: one
// question per group where the pool allows, topped up at random when there
// are fewer groups than exam slots. The draw comes from the caller's random
// source so tests can pin it.
func BuildPracticeExam(level models.ExamLevel, pool []models.Question, rng *rand.Rand, startedAt time.Time) *PracticeExam {
	size := ExamSize(level)

	byGroup := lo.GroupBy(pool, func(q models.Question) string {
		return q.Group
	})
	codes := lo.Keys(byGroup)
	sort.Strings(codes)

	var drawn []models.Question
	taken := make(map[string]bool)
	for _, code := range codes {
		group := byGroup[code]
		q := group[rng.Intn(len(group))]
		drawn = append(drawn, q)
		taken[q.ID] = true
	}

	if len(drawn) > size {
		rng.Shuffle(len(drawn), func(i, j int) {
			drawn[i], drawn[j] = drawn[j], drawn[i]
		})
		drawn = drawn[:size]
	} else if len(drawn) < size {
		var rest []models.Question
		for _, q := range pool {
			if !taken[q.ID] {
				rest = append(rest, q)
			}
		}
		rng.Shuffle(len(rest), func(i, j int) {
			rest[i], rest[j] = rest[j], rest[i]
		})
		need := size - len(drawn)
		if need > len(rest) {
			need = len(rest)
		}
		drawn = append(drawn, rest[:need]...)
	}

	rng.Shuffle(len(drawn), func(i, j int) {
		drawn[i], drawn[j] = drawn[j], drawn[i]
	})

	return &PracticeExam{Level: level, Questions: drawn, StartedAt: startedAt}
}

// Grade scores the learner's answer sheet against the exam. answers holds
// the chosen answer index per question, -1 for unanswered.
func (exam *PracticeExam) Grade(answers []int) *ExamResult {
	result := &ExamResult{Level: exam.Level, Total: len(exam.Questions)}
	for i, q := range exam.Questions {
		if i < len(answers) && answers[i] == q.CorrectAnswer {
			result.Correct++
		} else {
			result.Missed = append(result.Missed, q.ID)
		}
	}
	if result.Total > 0 {
		result.Score = float64(result.Correct) / float64(result.Total)
	}
	result.Passed = result.Score >= examPassingScore
	return result
}
