// Package streak maintains the daily study streak with freeze-token
// forgiveness. Days are local calendar days; a session at 23:59 belongs to
// the day the learner saw on the wall clock.
package streak

import (
	"time"

	"github.com/example/hamstudy/internal/dateutil"
	"github.com/example/hamstudy/pkg/models"
)

// Store is the persistence capability for the streak state
type Store interface {
	Get() (*models.StreakState, error)
	Put(state *models.StreakState) error
}

// milestoneDays is the streak length between freeze-token awards
const milestoneDays = 7

// Tracker applies session-day transitions to the streak state
type Tracker struct {
	store Store
	now   func() time.Time
}

// NewTracker creates a tracker over the given store
func NewTracker(store Store) *Tracker {
	return &Tracker{store: store, now: time.Now}
}

// SetClock replaces the time source for tests
func (t *Tracker) SetClock(now func() time.Time) {
	t.now = now
}

// RecordSession notes that the learner studied today and resolves the
// streak. Calling it again on the same local day changes nothing. A single
// freeze token bridges exactly one missed day; longer absences reset the
// streak no matter how many tokens are held. A failed read resolves the
// streak in memory only; writing the fresh state built in its place would
// overwrite the stored streak.
func (t *Tracker) RecordSession() (*models.StreakState, error) {
	state, readErr := t.store.Get()
	if state == nil {
		state = &models.StreakState{}
	}

	today := dateutil.LocalDay(t.now())
	changed, applyErr := Apply(state, today)
	if applyErr != nil {
		// A corrupt stored date can't be diffed; start the streak over
		// rather than wedging every future session.
		state.CurrentStreak = 1
		state.LastSessionDate = today
		changed = true
	}

	if readErr != nil {
		return state, readErr
	}
	var writeErr error
	if changed {
		writeErr = t.store.Put(state)
	}
	return state, writeErr
}

// Apply runs the streak state machine for a session on the given local day,
// mutating state in place. It returns false when the state is unchanged
// (repeat session on the same day). Pure apart from the mutation: storage
// stays out of it so tests can drive day sequences directly.
func Apply(state *models.StreakState, today string) (bool, error) {
	if state.LastSessionDate == today {
		return false, nil
	}

	switch {
	case state.LastSessionDate == "":
		// First session ever.
		state.CurrentStreak = 1
	default:
		gap, err := dateutil.DaysBetween(state.LastSessionDate, today)
		if err != nil {
			return false, err
		}
		switch {
		case gap <= 0:
			// Clock moved backwards across a day boundary; treat as a
			// same-day repeat.
			return false, nil
		case gap == 1:
			state.CurrentStreak++
		case gap == 2 && state.FreezeTokens > 0:
			// One missed day, forgiven by a token.
			state.FreezeTokens--
			state.LastFreezeUsed = today
			state.CurrentStreak++
		default:
			state.CurrentStreak = 1
		}
	}

	state.LastSessionDate = today

	// Milestone award: every 7th consecutive day earns a token, capped.
	if state.CurrentStreak > 0 && state.CurrentStreak%milestoneDays == 0 &&
		state.FreezeTokens < models.MaxFreezeTokens {
		state.FreezeTokens++
		state.FreezeTokensEarned++
	}

	if state.CurrentStreak > state.LongestStreak {
		state.LongestStreak = state.CurrentStreak
	}
	return true, nil
}

// Current returns the stored streak state without modifying it
func (t *Tracker) Current() (*models.StreakState, error) {
	return t.store.Get()
}

// AtRisk reports whether the streak will break if the learner doesn't study
// today (last session was yesterday or, token in hand, the day before)
func AtRisk(state *models.StreakState, now time.Time) bool {
	if state == nil || state.CurrentStreak == 0 || state.LastSessionDate == "" {
		return false
	}
	gap, err := dateutil.DaysAgo(state.LastSessionDate, now)
	if err != nil {
		return false
	}
	if gap == 1 {
		return true
	}
	return gap == 2 && state.FreezeTokens > 0
}
