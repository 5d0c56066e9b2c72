// Package srs schedules exam-pool questions with an ease-factor/interval
// model in the SM-2 family. Correct answers grow the review interval
// multiplicatively through the ease factor; a miss drops the ease factor and
// sends the question back to a one-day interval.
package srs

import (
	"math/rand"
	"time"

	"github.com/example/hamstudy/pkg/models"
)

// Scheduling constants. The multipliers are product tuning values, not
// SM-2 gospel; change them here, not inline.
const (
	InitialEase = 2.5
	MinEase     = 1.3
	easeGain    = 0.1
	easeLoss    = 0.2

	lapseInterval = 1   // days after an incorrect answer
	maxInterval   = 365 // cap of 1 year

	// Status thresholds: learning until the interval clears reviewDays,
	// mastered once it clears masteryDays with consistently high accuracy.
	reviewDays         = 7
	masteryDays        = 21
	masteryMinAccuracy = 0.9
	masteryMinAttempts = 3
)

// earlyIntervals walks a question through short fixed steps before the
// multiplicative growth takes over
var earlyIntervals = []int{1, 3, 7}

// ProgressStore is the persistence capability the scheduler needs. Absent
// records come back as (nil, nil); a question with no record is "new".
type ProgressStore interface {
	Get(questionID string) (*models.QuestionProgress, error)
	Put(progress *models.QuestionProgress) error
	ByExamPrefix(prefix string) ([]models.QuestionProgress, error)
}

// PoolProvider supplies the validated question pool for an exam level
type PoolProvider interface {
	QuestionPool(level models.ExamLevel) ([]models.Question, error)
}

// Scheduler decides which questions to present and keeps each question's
// review schedule current
type Scheduler struct {
	store ProgressStore
	pools PoolProvider
	rng   *rand.Rand
	now   func() time.Time
}

// NewScheduler creates a scheduler over the given store and pool source.
// The shuffle source is seeded from crypto/rand when available.
func NewScheduler(store ProgressStore, pools PoolProvider) *Scheduler {
	return &Scheduler{
		store: store,
		pools: pools,
		rng:   rand.New(rand.NewSource(cryptoSeed())),
		now:   time.Now,
	}
}

// SetRand replaces the shuffle source, so tests can supply a fixed seed
func (s *Scheduler) SetRand(rng *rand.Rand) {
	s.rng = rng
}

// SetClock replaces the time source for tests
func (s *Scheduler) SetClock(now func() time.Time) {
	s.now = now
}

// GetNewQuestions returns up to count questions from the exam pool that have
// never been answered, in uniform random order. The whole unseen set is
// shuffled before truncation so every unseen question has an equal chance of
// appearing.
func (s *Scheduler) GetNewQuestions(level models.ExamLevel, count int) ([]models.Question, error) {
	pool, seen, err := s.poolWithProgress(level)
	if err != nil {
		return nil, err
	}

	fresh := make([]models.Question, 0, len(pool))
	for _, q := range pool {
		if _, ok := seen[q.ID]; !ok {
			fresh = append(fresh, q)
		}
	}

	s.rng.Shuffle(len(fresh), func(i, j int) {
		fresh[i], fresh[j] = fresh[j], fresh[i]
	})

	if count >= 0 && len(fresh) > count {
		fresh = fresh[:count]
	}
	return fresh, nil
}

// GetPracticeQuestions returns up to count unique questions mixing new and
// due-for-review questions, topped up with not-yet-due questions when the
// pool runs short. Asking for more than the pool holds yields the whole pool
// exactly once.
func (s *Scheduler) GetPracticeQuestions(level models.ExamLevel, count int) ([]models.Question, error) {
	pool, seen, err := s.poolWithProgress(level)
	if err != nil {
		return nil, err
	}
	now := s.now()

	var ready, rest []models.Question
	for _, q := range pool {
		progress, ok := seen[q.ID]
		if !ok || progress.Due(now) {
			ready = append(ready, q)
		} else {
			rest = append(rest, q)
		}
	}

	s.rng.Shuffle(len(ready), func(i, j int) {
		ready[i], ready[j] = ready[j], ready[i]
	})
	s.rng.Shuffle(len(rest), func(i, j int) {
		rest[i], rest[j] = rest[j], rest[i]
	})

	selected := append(ready, rest...)
	if count >= 0 && len(selected) > count {
		selected = selected[:count]
	}
	return selected, nil
}

// SaveQuestionProgress records one answer: it fetches or creates the
// question's record, applies the ease-factor update, and persists it.
// The updated record is returned even when persistence fails, so the caller
// can keep the session going and retry the write; the error reports what
// didn't stick. A failed read skips the write, since the fresh record built
// in its place would overwrite the stored history. Malformed ids are a no-op.
func (s *Scheduler) SaveQuestionProgress(questionID string, correct bool) (*models.QuestionProgress, error) {
	if !models.ValidQuestionID(questionID) {
		return nil, nil
	}

	progress, readErr := s.store.Get(questionID)
	if progress == nil {
		progress = &models.QuestionProgress{
			QuestionID: questionID,
			EaseFactor: InitialEase,
		}
	}

	s.applyAnswer(progress, correct)

	if readErr != nil {
		return progress, readErr
	}
	return progress, s.store.Put(progress)
}

// applyAnswer mutates progress with the update rule for one answer
func (s *Scheduler) applyAnswer(progress *models.QuestionProgress, correct bool) {
	now := s.now()
	progress.Attempts++
	if correct {
		progress.CorrectCount++
		progress.EaseFactor += easeGain
		progress.Interval = nextInterval(progress.Interval, progress.EaseFactor)
	} else {
		progress.EaseFactor -= easeLoss
		if progress.EaseFactor < MinEase {
			progress.EaseFactor = MinEase
		}
		progress.Interval = lapseInterval
	}

	progress.LastAttempt = now
	progress.NextReview = now.AddDate(0, 0, progress.Interval)
	progress.Status = deriveStatus(progress)
}

// nextInterval steps through the early fixed intervals, then grows
// multiplicatively with the ease factor
func nextInterval(current int, ease float64) int {
	for _, step := range earlyIntervals {
		if current < step {
			return step
		}
	}
	next := int(float64(current) * ease)
	if next > maxInterval {
		next = maxInterval
	}
	return next
}

// deriveStatus computes the lifecycle stage from the record itself. It is
// never stored independently of the fields it derives from.
func deriveStatus(progress *models.QuestionProgress) models.QuestionStatus {
	switch {
	case progress.Interval > masteryDays &&
		progress.Accuracy() >= masteryMinAccuracy &&
		progress.Attempts >= masteryMinAttempts:
		return models.StatusMastered
	case progress.Interval > reviewDays:
		return models.StatusReview
	default:
		return models.StatusLearning
	}
}

// poolWithProgress loads the pool and joins it with stored progress
func (s *Scheduler) poolWithProgress(level models.ExamLevel) ([]models.Question, map[string]*models.QuestionProgress, error) {
	pool, err := s.pools.QuestionPool(level)
	if err != nil {
		return nil, nil, err
	}
	records, err := s.store.ByExamPrefix(level.Prefix())
	if err != nil {
		return nil, nil, err
	}
	seen := make(map[string]*models.QuestionProgress, len(records))
	for i := range records {
		seen[records[i].QuestionID] = &records[i]
	}
	return pool, seen, nil
}
