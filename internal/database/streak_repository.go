package database

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/example/hamstudy/pkg/models"
)

// StreakRepository handles database operations for the single-row streak
// state
type StreakRepository struct{}

// NewStreakRepository creates a new repository instance
func NewStreakRepository() *StreakRepository {
	return &StreakRepository{}
}

type streakRow struct {
	ID int `db:"id"`
	models.StreakState
}

// Get returns the streak state, or a zero state if none has been recorded
func (r *StreakRepository) Get() (*models.StreakState, error) {
	var row streakRow
	err := DB.Get(&row, "SELECT * FROM streak_state WHERE id = 1")
	if errors.Is(err, sql.ErrNoRows) {
		return &models.StreakState{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get streak state: %v", err)
	}
	state := row.StreakState
	return &state, nil
}

// Put replaces the streak state
func (r *StreakRepository) Put(state *models.StreakState) error {
	query := `
		INSERT INTO streak_state (
			id, current_streak, longest_streak, last_session_date,
			freeze_tokens, freeze_tokens_earned, last_freeze_used
		) VALUES (1, $1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET
			current_streak = EXCLUDED.current_streak,
			longest_streak = EXCLUDED.longest_streak,
			last_session_date = EXCLUDED.last_session_date,
			freeze_tokens = EXCLUDED.freeze_tokens,
			freeze_tokens_earned = EXCLUDED.freeze_tokens_earned,
			last_freeze_used = EXCLUDED.last_freeze_used
	`
	_, err := DB.Exec(query, state.CurrentStreak, state.LongestStreak,
		state.LastSessionDate, state.FreezeTokens, state.FreezeTokensEarned,
		state.LastFreezeUsed)
	if err != nil {
		return fmt.Errorf("failed to save streak state: %v", err)
	}
	return nil
}

// Clear resets the streak state (full reset)
func (r *StreakRepository) Clear() error {
	if _, err := DB.Exec("DELETE FROM streak_state"); err != nil {
		return fmt.Errorf("failed to clear streak state: %v", err)
	}
	return nil
}
