package database

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/example/hamstudy/pkg/models"
)

// QuestionProgressRepository handles database operations for question
// scheduling records
type QuestionProgressRepository struct{}

// NewQuestionProgressRepository creates a new repository instance
func NewQuestionProgressRepository() *QuestionProgressRepository {
	return &QuestionProgressRepository{}
}

// Get returns the progress record for a question, or nil if the question has
// never been answered. Absence is not an error: a question with no record is
// simply "new".
func (r *QuestionProgressRepository) Get(questionID string) (*models.QuestionProgress, error) {
	var progress models.QuestionProgress
	err := DB.Get(&progress, "SELECT * FROM question_progress WHERE question_id = $1", questionID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get question progress: %v", err)
	}
	return &progress, nil
}

// Put creates or replaces the progress record for a question
func (r *QuestionProgressRepository) Put(progress *models.QuestionProgress) error {
	query := `
		INSERT INTO question_progress (
			question_id, attempts, correct_count, last_attempt, next_review,
			ease_factor, interval, status
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (question_id) DO UPDATE SET
			attempts = EXCLUDED.attempts,
			correct_count = EXCLUDED.correct_count,
			last_attempt = EXCLUDED.last_attempt,
			next_review = EXCLUDED.next_review,
			ease_factor = EXCLUDED.ease_factor,
			interval = EXCLUDED.interval,
			status = EXCLUDED.status
	`
	_, err := DB.Exec(
		query,
		progress.QuestionID,
		progress.Attempts,
		progress.CorrectCount,
		progress.LastAttempt,
		progress.NextReview,
		progress.EaseFactor,
		progress.Interval,
		progress.Status,
	)
	if err != nil {
		return fmt.Errorf("failed to save question progress: %v", err)
	}
	return nil
}

// ByExamPrefix returns every progress record whose question id starts with
// the exam's prefix letter (e.g. "T" for technician)
func (r *QuestionProgressRepository) ByExamPrefix(prefix string) ([]models.QuestionProgress, error) {
	var records []models.QuestionProgress
	err := DB.Select(&records,
		"SELECT * FROM question_progress WHERE question_id LIKE $1 ORDER BY question_id",
		prefix+"%")
	if err != nil {
		return nil, fmt.Errorf("failed to scan question progress: %v", err)
	}
	return records, nil
}

// Clear removes every question progress record (full reset)
func (r *QuestionProgressRepository) Clear() error {
	if _, err := DB.Exec("DELETE FROM question_progress"); err != nil {
		return fmt.Errorf("failed to clear question progress: %v", err)
	}
	return nil
}
