package session

import (
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/hamstudy/pkg/models"
)

// examPool builds groups à 4 questions across the given group codes
func examPool(groups ...string) []models.Question {
	var pool []models.Question
	for _, group := range groups {
		for i := 1; i <= 4; i++ {
			pool = append(pool, models.Question{
				ID:            fmt.Sprintf("%s%02d", group, i),
				Subelement:    group[:2],
				Group:         group,
				CorrectAnswer: i % 4,
			})
		}
	}
	return pool
}

var examNow = time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

func TestExamSize(t *testing.T) {
	assert.Equal(t, 35, ExamSize(models.ExamTechnician))
	assert.Equal(t, 35, ExamSize(models.ExamGeneral))
	assert.Equal(t, 50, ExamSize(models.ExamExtra))
}

func TestBuildPracticeExamOnePerGroup(t *testing.T) {
	pool := examPool("T1A", "T1B", "T2A", "T3C")
	rng := rand.New(rand.NewSource(3))

	exam := BuildPracticeExam(models.ExamTechnician, pool, rng, examNow)

	// 4 groups + 12 leftover questions = the full pool of 16, still under
	// the 35-question target, with every group represented.
	require.Len(t, exam.Questions, 16)
	groups := map[string]bool{}
	ids := map[string]bool{}
	for _, q := range exam.Questions {
		groups[q.Group] = true
		assert.False(t, ids[q.ID], "duplicate question %s", q.ID)
		ids[q.ID] = true
	}
	assert.Len(t, groups, 4)
}

func TestBuildPracticeExamCapsAtExamSize(t *testing.T) {
	var groups []string
	for i := 0; i < 40; i++ {
		groups = append(groups, fmt.Sprintf("T%dX", i))
	}
	pool := examPool(groups...)
	rng := rand.New(rand.NewSource(3))

	exam := BuildPracticeExam(models.ExamTechnician, pool, rng, examNow)
	assert.Len(t, exam.Questions, 35)
}

func TestGrade(t *testing.T) {
	pool := examPool("T1A")
	rng := rand.New(rand.NewSource(3))
	exam := BuildPracticeExam(models.ExamTechnician, pool, rng, examNow)
	require.Len(t, exam.Questions, 4)

	answers := make([]int, len(exam.Questions))
	for i, q := range exam.Questions {
		answers[i] = q.CorrectAnswer
	}
	// Miss the last one.
	answers[len(answers)-1] = (exam.Questions[len(answers)-1].CorrectAnswer + 1) % 4

	result := exam.Grade(answers)
	assert.Equal(t, 3, result.Correct)
	assert.InDelta(t, 0.75, result.Score, 1e-9)
	assert.True(t, result.Passed)
	require.Len(t, result.Missed, 1)
	assert.Equal(t, exam.Questions[len(answers)-1].ID, result.Missed[0])
}

func TestGradeUnansweredCountsAsMiss(t *testing.T) {
	pool := examPool("T1A")
	rng := rand.New(rand.NewSource(3))
	exam := BuildPracticeExam(models.ExamTechnician, pool, rng, examNow)

	result := exam.Grade(nil)
	assert.Equal(t, 0, result.Correct)
	assert.False(t, result.Passed)
	assert.Len(t, result.Missed, 4)
}
