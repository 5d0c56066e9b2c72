package reminder

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/example/hamstudy/pkg/models"
)

type fakeNotifier struct {
	messages []string
}

func (f *fakeNotifier) Notify(message string) error {
	f.messages = append(f.messages, message)
	return nil
}

type fakeStats struct{ due int }

func (f *fakeStats) DueCount() (int, error) { return f.due, nil }

type fakeStreaks struct{ state *models.StreakState }

func (f *fakeStreaks) Current() (*models.StreakState, error) { return f.state, nil }

func reminderAt(hour int, notifier *fakeNotifier, stats *fakeStats, streaks *fakeStreaks) *Reminder {
	r := New(notifier, stats, streaks, 8, 22)
	r.SetClock(func() time.Time {
		return time.Date(2026, 8, 30, hour, 0, 0, 0, time.Local)
	})
	return r
}

func TestCheckQuietHours(t *testing.T) {
	notifier := &fakeNotifier{}
	r := reminderAt(3, notifier, &fakeStats{due: 10}, &fakeStreaks{state: &models.StreakState{}})

	r.Check()
	assert.Empty(t, notifier.messages)
}

func TestCheckStreakAtRiskWinsOverDue(t *testing.T) {
	notifier := &fakeNotifier{}
	streaks := &fakeStreaks{state: &models.StreakState{
		CurrentStreak:   4,
		LastSessionDate: "2026-08-29",
	}}
	r := reminderAt(12, notifier, &fakeStats{due: 10}, streaks)

	r.Check()
	if assert.Len(t, notifier.messages, 1) {
		assert.Contains(t, notifier.messages[0], "streak")
	}
}

func TestCheckDueQuestions(t *testing.T) {
	notifier := &fakeNotifier{}
	r := reminderAt(12, notifier, &fakeStats{due: 3}, &fakeStreaks{state: &models.StreakState{}})

	r.Check()
	if assert.Len(t, notifier.messages, 1) {
		assert.Contains(t, notifier.messages[0], "due")
	}
}

func TestCheckNothingToSay(t *testing.T) {
	notifier := &fakeNotifier{}
	r := reminderAt(12, notifier, &fakeStats{}, &fakeStreaks{state: &models.StreakState{}})

	r.Check()
	assert.Empty(t, notifier.messages)
}
