// Package reminder nudges the learner when reviews pile up or the streak is
// about to break. The study engine itself is event-driven; this is a side
// channel that only reads state.
package reminder

import (
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"

	"github.com/example/hamstudy/internal/streak"
	"github.com/example/hamstudy/pkg/models"
)

// Notifier delivers a reminder to whatever surface is attached (terminal,
// desktop notification, a future bot)
type Notifier interface {
	Notify(message string) error
}

// StatsSource reports how many questions are currently due
type StatsSource interface {
	DueCount() (int, error)
}

// StreakSource reads the current streak state
type StreakSource interface {
	Current() (*models.StreakState, error)
}

// Reminder runs the hourly reminder check
type Reminder struct {
	scheduler *gocron.Scheduler
	notifier  Notifier
	stats     StatsSource
	streaks   StreakSource
	startHour int
	endHour   int
	now       func() time.Time
}

// New creates a reminder that fires only between startHour and endHour local
// time
func New(notifier Notifier, stats StatsSource, streaks StreakSource, startHour, endHour int) *Reminder {
	return &Reminder{
		scheduler: gocron.NewScheduler(time.Local),
		notifier:  notifier,
		stats:     stats,
		streaks:   streaks,
		startHour: startHour,
		endHour:   endHour,
		now:       time.Now,
	}
}

// SetClock replaces the time source for tests
func (r *Reminder) SetClock(now func() time.Time) {
	r.now = now
}

// Start begins the hourly check in the background
func (r *Reminder) Start() {
	r.scheduler.Every(1).Hour().Do(r.Check)
	r.scheduler.StartAsync()
}

// Stop terminates the background check
func (r *Reminder) Stop() {
	r.scheduler.Stop()
}

// Check runs one reminder pass. Exported so a manual "check now" action can
// reuse it.
func (r *Reminder) Check() {
	hour := r.now().Hour()
	if hour < r.startHour || hour > r.endHour {
		return
	}

	state, err := r.streaks.Current()
	if err != nil {
		logrus.WithError(err).Warn("reminder: could not read streak state")
	} else if streak.AtRisk(state, r.now()) {
		message := "Your study streak is at risk - a quick session today keeps it alive"
		if err := r.notifier.Notify(message); err != nil {
			logrus.WithError(err).Warn("reminder: notify failed")
		}
		return
	}

	due, err := r.stats.DueCount()
	if err != nil {
		logrus.WithError(err).Warn("reminder: could not count due questions")
		return
	}
	if due > 0 {
		message := "You have questions due for review"
		if err := r.notifier.Notify(message); err != nil {
			logrus.WithError(err).Warn("reminder: notify failed")
		}
	}
}
