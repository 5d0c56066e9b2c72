package database

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/example/hamstudy/pkg/models"
)

// CardProgressRepository handles database operations for flashcard Leitner
// records
type CardProgressRepository struct{}

// NewCardProgressRepository creates a new repository instance
func NewCardProgressRepository() *CardProgressRepository {
	return &CardProgressRepository{}
}

// Get returns the progress record for a card, or nil if the card has never
// been flipped
func (r *CardProgressRepository) Get(cardID string) (*models.FlashcardProgress, error) {
	var progress models.FlashcardProgress
	err := DB.Get(&progress, "SELECT * FROM card_progress WHERE card_id = $1", cardID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get card progress: %v", err)
	}
	return &progress, nil
}

// Put creates or replaces the progress record for a card
func (r *CardProgressRepository) Put(progress *models.FlashcardProgress) error {
	query := `
		INSERT INTO card_progress (
			card_id, card_type, subelement, group_code, box, attempts,
			correct_count, streak, mastery_score, last_seen, next_review,
			timed_attempts, total_time_ms
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (card_id) DO UPDATE SET
			card_type = EXCLUDED.card_type,
			subelement = EXCLUDED.subelement,
			group_code = EXCLUDED.group_code,
			box = EXCLUDED.box,
			attempts = EXCLUDED.attempts,
			correct_count = EXCLUDED.correct_count,
			streak = EXCLUDED.streak,
			mastery_score = EXCLUDED.mastery_score,
			last_seen = EXCLUDED.last_seen,
			next_review = EXCLUDED.next_review,
			timed_attempts = EXCLUDED.timed_attempts,
			total_time_ms = EXCLUDED.total_time_ms
	`
	_, err := DB.Exec(
		query,
		progress.CardID,
		progress.CardType,
		progress.Subelement,
		progress.Group,
		progress.Box,
		progress.Attempts,
		progress.CorrectCount,
		progress.Streak,
		progress.MasteryScore,
		progress.LastSeen,
		progress.NextReview,
		progress.TimedAttempts,
		progress.TotalTimeMs,
	)
	if err != nil {
		return fmt.Errorf("failed to save card progress: %v", err)
	}
	return nil
}

// All returns every card progress record keyed by card id
func (r *CardProgressRepository) All() (map[string]*models.FlashcardProgress, error) {
	var records []models.FlashcardProgress
	err := DB.Select(&records, "SELECT * FROM card_progress")
	if err != nil {
		return nil, fmt.Errorf("failed to scan card progress: %v", err)
	}
	byID := make(map[string]*models.FlashcardProgress, len(records))
	for i := range records {
		byID[records[i].CardID] = &records[i]
	}
	return byID, nil
}

// Clear removes every card progress record (full reset)
func (r *CardProgressRepository) Clear() error {
	if _, err := DB.Exec("DELETE FROM card_progress"); err != nil {
		return fmt.Errorf("failed to clear card progress: %v", err)
	}
	return nil
}
