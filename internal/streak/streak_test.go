package streak

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/hamstudy/pkg/models"
)

type memStreakStore struct {
	state  *models.StreakState
	getErr error
}

func (m *memStreakStore) Get() (*models.StreakState, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	if m.state == nil {
		return &models.StreakState{}, nil
	}
	copied := *m.state
	return &copied, nil
}

func (m *memStreakStore) Put(state *models.StreakState) error {
	copied := *state
	m.state = &copied
	return nil
}

func applyDay(t *testing.T, state *models.StreakState, day string) {
	t.Helper()
	_, err := Apply(state, day)
	require.NoError(t, err)
}

func TestFirstSessionStartsStreak(t *testing.T) {
	state := &models.StreakState{}
	applyDay(t, state, "2026-08-30")

	assert.Equal(t, 1, state.CurrentStreak)
	assert.Equal(t, 1, state.LongestStreak)
	assert.Equal(t, "2026-08-30", state.LastSessionDate)
}

func TestSameDayIsIdempotent(t *testing.T) {
	state := &models.StreakState{}
	applyDay(t, state, "2026-08-30")

	changed, err := Apply(state, "2026-08-30")
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, 1, state.CurrentStreak)
}

func TestConsecutiveDaysExtendStreak(t *testing.T) {
	state := &models.StreakState{}
	applyDay(t, state, "2026-08-28")
	applyDay(t, state, "2026-08-29")
	applyDay(t, state, "2026-08-30")

	assert.Equal(t, 3, state.CurrentStreak)
	assert.Equal(t, 3, state.LongestStreak)
}

func TestTwoDayGapConsumesToken(t *testing.T) {
	state := &models.StreakState{
		CurrentStreak:   5,
		LongestStreak:   5,
		LastSessionDate: "2026-08-28",
		FreezeTokens:    1,
	}
	applyDay(t, state, "2026-08-30")

	assert.Equal(t, 6, state.CurrentStreak)
	assert.Equal(t, 0, state.FreezeTokens)
	assert.Equal(t, "2026-08-30", state.LastFreezeUsed)
}

func TestTwoDayGapWithoutTokenResets(t *testing.T) {
	state := &models.StreakState{
		CurrentStreak:   5,
		LongestStreak:   5,
		LastSessionDate: "2026-08-28",
	}
	applyDay(t, state, "2026-08-30")

	assert.Equal(t, 1, state.CurrentStreak)
	assert.Equal(t, 5, state.LongestStreak)
}

func TestThreeDayGapResetsEvenWithTokens(t *testing.T) {
	state := &models.StreakState{
		CurrentStreak:   10,
		LongestStreak:   10,
		LastSessionDate: "2026-08-26",
		FreezeTokens:    2,
	}
	applyDay(t, state, "2026-08-30")

	// Tokens forgive a single missed day, never longer absences.
	assert.Equal(t, 1, state.CurrentStreak)
	assert.Equal(t, 2, state.FreezeTokens)
}

func TestMilestoneAwardsToken(t *testing.T) {
	state := &models.StreakState{
		CurrentStreak:   6,
		LongestStreak:   6,
		LastSessionDate: "2026-08-29",
	}
	applyDay(t, state, "2026-08-30")

	assert.Equal(t, 7, state.CurrentStreak)
	assert.Equal(t, 1, state.FreezeTokens)
	assert.Equal(t, 1, state.FreezeTokensEarned)
}

func TestTokensCappedAtTwo(t *testing.T) {
	state := &models.StreakState{
		CurrentStreak:      13,
		LongestStreak:      13,
		LastSessionDate:    "2026-08-29",
		FreezeTokens:       2,
		FreezeTokensEarned: 2,
	}
	applyDay(t, state, "2026-08-30")

	assert.Equal(t, 14, state.CurrentStreak)
	// At the cap: the milestone passes without an award, and the lifetime
	// counter doesn't move either.
	assert.Equal(t, 2, state.FreezeTokens)
	assert.Equal(t, 2, state.FreezeTokensEarned)
}

func TestFreezeThenMilestoneBothApply(t *testing.T) {
	// Day 6 of a streak, one token, one missed day: the token bridge makes
	// today day 7, which immediately earns the token back.
	state := &models.StreakState{
		CurrentStreak:   6,
		LongestStreak:   6,
		LastSessionDate: "2026-08-28",
		FreezeTokens:    1,
	}
	applyDay(t, state, "2026-08-30")

	assert.Equal(t, 7, state.CurrentStreak)
	assert.Equal(t, 1, state.FreezeTokens)
	assert.Equal(t, 1, state.FreezeTokensEarned)
}

func TestRecordSessionPersists(t *testing.T) {
	store := &memStreakStore{}
	tracker := NewTracker(store)
	tracker.SetClock(func() time.Time {
		return time.Date(2026, 8, 30, 9, 0, 0, 0, time.Local)
	})

	state, err := tracker.RecordSession()
	require.NoError(t, err)
	assert.Equal(t, 1, state.CurrentStreak)

	// Second call the same day: no change, idempotent.
	state, err = tracker.RecordSession()
	require.NoError(t, err)
	assert.Equal(t, 1, state.CurrentStreak)
	assert.Equal(t, 1, store.state.CurrentStreak)
}

func TestRecordSessionReadFailureKeepsStoredStreak(t *testing.T) {
	store := &memStreakStore{state: &models.StreakState{
		CurrentStreak:   14,
		LongestStreak:   14,
		LastSessionDate: "2026-08-29",
		FreezeTokens:    2,
	}}
	store.getErr = errors.New("db locked")
	tracker := NewTracker(store)
	tracker.SetClock(func() time.Time {
		return time.Date(2026, 8, 30, 9, 0, 0, 0, time.Local)
	})

	state, err := tracker.RecordSession()
	assert.Error(t, err)

	// The caller gets a fresh in-memory streak; the unreadable stored
	// state must not be replaced by it.
	require.NotNil(t, state)
	assert.Equal(t, 1, state.CurrentStreak)
	assert.Equal(t, 14, store.state.CurrentStreak)
	assert.Equal(t, 2, store.state.FreezeTokens)
}

func TestRecordSessionRecoversFromCorruptDate(t *testing.T) {
	store := &memStreakStore{state: &models.StreakState{
		CurrentStreak:   4,
		LastSessionDate: "garbage",
	}}
	tracker := NewTracker(store)
	tracker.SetClock(func() time.Time {
		return time.Date(2026, 8, 30, 9, 0, 0, 0, time.Local)
	})

	state, err := tracker.RecordSession()
	require.NoError(t, err)
	assert.Equal(t, 1, state.CurrentStreak)
	assert.Equal(t, "2026-08-30", state.LastSessionDate)
}

func TestAtRisk(t *testing.T) {
	now := time.Date(2026, 8, 30, 9, 0, 0, 0, time.Local)

	assert.False(t, AtRisk(nil, now))
	assert.False(t, AtRisk(&models.StreakState{}, now))
	assert.True(t, AtRisk(&models.StreakState{
		CurrentStreak: 3, LastSessionDate: "2026-08-29",
	}, now))
	assert.False(t, AtRisk(&models.StreakState{
		CurrentStreak: 3, LastSessionDate: "2026-08-28",
	}, now))
	assert.True(t, AtRisk(&models.StreakState{
		CurrentStreak: 3, LastSessionDate: "2026-08-28", FreezeTokens: 1,
	}, now))
	assert.False(t, AtRisk(&models.StreakState{
		CurrentStreak: 3, LastSessionDate: "2026-08-30",
	}, now))
}
