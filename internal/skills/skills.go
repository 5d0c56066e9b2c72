// Package skills levels four procedural operating drills (phonetic alphabet,
// band plan, call signs, Q codes) from attempt and accuracy totals.
package skills

import (
	"time"

	"github.com/example/hamstudy/pkg/models"
)

// Store is the persistence capability for skill mastery records
type Store interface {
	Get(skill models.Skill) (*models.SkillMastery, error)
	Put(mastery *models.SkillMastery) error
	All() ([]models.SkillMastery, error)
}

// levelRule is one rung of the leveling ladder
type levelRule struct {
	level       int
	minAttempts int
	minAccuracy float64
}

// levelRules are checked highest first; the first satisfied rung wins
var levelRules = []levelRule{
	{level: 5, minAttempts: 100, minAccuracy: 0.90},
	{level: 4, minAttempts: 50, minAccuracy: 0.85},
	{level: 3, minAttempts: 25, minAccuracy: 0.75},
	{level: 2, minAttempts: 10, minAccuracy: 0.60},
}

// Leveler tracks drill results and derives skill levels
type Leveler struct {
	store Store
	now   func() time.Time
}

// NewLeveler creates a leveler over the given store
func NewLeveler(store Store) *Leveler {
	return &Leveler{store: store, now: time.Now}
}

// SetClock replaces the time source for tests
func (l *Leveler) SetClock(now func() time.Time) {
	l.now = now
}

// LevelFor derives the 1..5 level from attempt/correct totals alone. The
// level is a pure function of the totals, so it can drop when accuracy does.
func LevelFor(attempts, correct int) int {
	if attempts <= 0 {
		return 1
	}
	accuracy := float64(correct) / float64(attempts)
	for _, rule := range levelRules {
		if attempts >= rule.minAttempts && accuracy >= rule.minAccuracy {
			return rule.level
		}
	}
	return 1
}

// UpdateSkillProgress records one drill outcome and recomputes the level
// from the new totals. The updated record is returned even when persistence
// fails so the session can continue. A failed read skips the write; the
// fresh record built in its place would overwrite the stored totals.
func (l *Leveler) UpdateSkillProgress(skill models.Skill, passed bool) (*models.SkillMastery, error) {
	mastery, readErr := l.store.Get(skill)
	if mastery == nil {
		mastery = &models.SkillMastery{Skill: skill, Level: 1}
	}

	mastery.Attempts++
	if passed {
		mastery.Correct++
	}
	mastery.Level = LevelFor(mastery.Attempts, mastery.Correct)
	mastery.LastPracticed = l.now()

	if readErr != nil {
		return mastery, readErr
	}
	return mastery, l.store.Put(mastery)
}

// AllSkills returns a record for every tracked skill, including level-1 zero
// records for skills never practiced
func (l *Leveler) AllSkills() ([]models.SkillMastery, error) {
	stored, err := l.store.All()
	if err != nil {
		return nil, err
	}
	byID := make(map[models.Skill]models.SkillMastery, len(stored))
	for _, mastery := range stored {
		byID[mastery.Skill] = mastery
	}

	result := make([]models.SkillMastery, 0, len(models.AllSkills))
	for _, skill := range models.AllSkills {
		if mastery, ok := byID[skill]; ok {
			result = append(result, mastery)
		} else {
			result = append(result, models.SkillMastery{Skill: skill, Level: 1})
		}
	}
	return result, nil
}
