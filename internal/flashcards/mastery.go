// Package flashcards tracks Leitner-box progress for study cards, keeps the
// per-category accuracy aggregates current, and picks which cards a session
// should show next.
package flashcards

import (
	"errors"
	"math"
	"time"

	"github.com/example/hamstudy/pkg/models"
)

// CardStore is the persistence capability for per-card Leitner records
type CardStore interface {
	Get(cardID string) (*models.FlashcardProgress, error)
	Put(progress *models.FlashcardProgress) error
	All() (map[string]*models.FlashcardProgress, error)
}

// CategoryStore is the persistence capability for category aggregates
type CategoryStore interface {
	Get(key models.CategoryKey) (*models.CategoryProgress, error)
	Put(progress *models.CategoryProgress) error
	All() ([]*models.CategoryProgress, error)
}

// Tracker applies card results to the card record and both of its category
// aggregates (subelement and group)
type Tracker struct {
	cards      CardStore
	categories CategoryStore
	now        func() time.Time
}

// NewTracker creates a tracker over the given stores
func NewTracker(cards CardStore, categories CategoryStore) *Tracker {
	return &Tracker{cards: cards, categories: categories, now: time.Now}
}

// SetClock replaces the time source for tests
func (t *Tracker) SetClock(now func() time.Time) {
	t.now = now
}

// trendBand is the dead zone around prior accuracy within which a category
// counts as stable
const trendBand = 0.1

// RecordCardResult records one card interaction: the card's Leitner record
// and the subelement and group aggregates all move together. The aggregates
// are incremental (each update reads the previous one), so results must be
// recorded in the order the learner answered. A record that fails to read
// is updated in memory only; writing the fresh record built in its place
// would overwrite the stored history.
func (t *Tracker) RecordCardResult(result models.CardResult) (*models.FlashcardProgress, error) {
	now := t.now()

	progress, readErr := t.cards.Get(result.CardID)
	if progress == nil {
		progress = &models.FlashcardProgress{
			CardID:     result.CardID,
			CardType:   result.CardType,
			Subelement: result.Subelement,
			Group:      result.Group,
			Box:        1,
		}
	}

	applyCardResult(progress, result.Correct, result.TimeMs, now)

	cardErr := readErr
	if cardErr == nil {
		cardErr = t.cards.Put(progress)
	}
	subErr := t.bumpCategory(models.SubelementKey(result.Subelement), result.Correct, now)
	groupErr := t.bumpCategory(models.GroupKey(result.Group), result.Correct, now)

	return progress, errors.Join(cardErr, subErr, groupErr)
}

// applyCardResult mutates a card record with one pass/fail outcome
func applyCardResult(progress *models.FlashcardProgress, passed bool, timeMs int64, now time.Time) {
	progress.Attempts++
	if passed {
		progress.CorrectCount++
		progress.Streak++
		if progress.Box < 5 {
			progress.Box++
		}
	} else {
		progress.Streak = 0
		progress.Box = 1
	}

	progress.MasteryScore = masteryScore(progress)
	progress.LastSeen = now
	progress.NextReview = now.AddDate(0, 0, models.BoxIntervals[progress.Box-1])

	if timeMs > 0 {
		progress.TimedAttempts++
		progress.TotalTimeMs += timeMs
	}
}

// masteryScore blends accuracy, streak, and box height into a 0..100 score
func masteryScore(progress *models.FlashcardProgress) int {
	streakBonus := float64(progress.Streak * 5)
	if streakBonus > 20 {
		streakBonus = 20
	}
	score := progress.Accuracy()*40 + streakBonus + float64(progress.Box-1)*10
	return int(math.Round(score))
}

// bumpCategory folds one outcome into a category aggregate. A failed read
// aborts the bump; the aggregate cannot be advanced without its prior value.
func (t *Tracker) bumpCategory(key models.CategoryKey, passed bool, now time.Time) error {
	progress, err := t.categories.Get(key)
	if err != nil {
		return err
	}
	if progress == nil {
		progress = &models.CategoryProgress{Key: key, Trend: models.TrendStable}
	}

	priorOverall := progress.OverallAccuracy()
	hadHistory := progress.TotalAttempts > 0

	progress.TotalAttempts++
	if passed {
		progress.TotalCorrect++
	}
	progress.RecentOutcomes = append(progress.RecentOutcomes, passed)
	if len(progress.RecentOutcomes) > models.RecentWindow {
		progress.RecentOutcomes = progress.RecentOutcomes[1:]
	}
	progress.LastStudied = now

	if hadHistory {
		recent := progress.RecentAccuracy()
		switch {
		case recent > priorOverall+trendBand:
			progress.Trend = models.TrendImproving
		case recent < priorOverall-trendBand:
			progress.Trend = models.TrendDeclining
		default:
			progress.Trend = models.TrendStable
		}
	}

	return t.categories.Put(progress)
}

// CardProgress returns the Leitner record for one card, or nil if unseen
func (t *Tracker) CardProgress(cardID string) (*models.FlashcardProgress, error) {
	return t.cards.Get(cardID)
}

// AllCardProgress returns every card record keyed by id
func (t *Tracker) AllCardProgress() (map[string]*models.FlashcardProgress, error) {
	return t.cards.All()
}

// CategoryProgress returns every category aggregate
func (t *Tracker) CategoryProgress() ([]*models.CategoryProgress, error) {
	return t.categories.All()
}
