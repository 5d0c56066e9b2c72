package database

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/example/hamstudy/pkg/models"
)

// SkillRepository handles database operations for procedural skill drills
type SkillRepository struct{}

// NewSkillRepository creates a new repository instance
func NewSkillRepository() *SkillRepository {
	return &SkillRepository{}
}

// Get returns the mastery record for a skill, or nil if never practiced
func (r *SkillRepository) Get(skill models.Skill) (*models.SkillMastery, error) {
	var mastery models.SkillMastery
	err := DB.Get(&mastery, "SELECT * FROM skill_mastery WHERE skill = $1", string(skill))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get skill mastery: %v", err)
	}
	return &mastery, nil
}

// Put creates or replaces the mastery record for a skill
func (r *SkillRepository) Put(mastery *models.SkillMastery) error {
	query := `
		INSERT INTO skill_mastery (skill, attempts, correct, level, last_practiced)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (skill) DO UPDATE SET
			attempts = EXCLUDED.attempts,
			correct = EXCLUDED.correct,
			level = EXCLUDED.level,
			last_practiced = EXCLUDED.last_practiced
	`
	_, err := DB.Exec(query, string(mastery.Skill), mastery.Attempts,
		mastery.Correct, mastery.Level, mastery.LastPracticed)
	if err != nil {
		return fmt.Errorf("failed to save skill mastery: %v", err)
	}
	return nil
}

// All returns every skill mastery record
func (r *SkillRepository) All() ([]models.SkillMastery, error) {
	var records []models.SkillMastery
	if err := DB.Select(&records, "SELECT * FROM skill_mastery ORDER BY skill"); err != nil {
		return nil, fmt.Errorf("failed to scan skill mastery: %v", err)
	}
	return records, nil
}

// Clear removes every skill mastery record (full reset)
func (r *SkillRepository) Clear() error {
	if _, err := DB.Exec("DELETE FROM skill_mastery"); err != nil {
		return fmt.Errorf("failed to clear skill mastery: %v", err)
	}
	return nil
}
