package database

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/example/hamstudy/pkg/models"
)

// SessionResultRepository stores completed session summaries, append-only
type SessionResultRepository struct{}

// NewSessionResultRepository creates a new repository instance
func NewSessionResultRepository() *SessionResultRepository {
	return &SessionResultRepository{}
}

type sessionRow struct {
	SessionID           string    `db:"session_id"`
	CompletedAt         time.Time `db:"completed_at"`
	TotalCards          int       `db:"total_cards"`
	LearningCount       int       `db:"learning_count"`
	QuestionCount       int       `db:"question_count"`
	LearningAccuracy    float64   `db:"learning_accuracy"`
	QuestionAccuracy    float64   `db:"question_accuracy"`
	TimeSpentMs         int64     `db:"time_spent_ms"`
	AverageTimePerCard  int64     `db:"average_time_per_card"`
	CategoryPerformance string    `db:"category_performance"`
	WeakestCategory     string    `db:"weakest_category"`
	StrongestCategory   string    `db:"strongest_category"`
	Improvement         float64   `db:"improvement"`
}

// Insert appends a completed session summary
func (r *SessionResultRepository) Insert(summary *models.SessionSummary) error {
	perf, err := json.Marshal(summary.CategoryPerformance)
	if err != nil {
		return fmt.Errorf("failed to encode category performance: %v", err)
	}
	query := `
		INSERT INTO session_results (
			session_id, completed_at, total_cards, learning_count,
			question_count, learning_accuracy, question_accuracy,
			time_spent_ms, average_time_per_card, category_performance,
			weakest_category, strongest_category, improvement
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`
	_, err = DB.Exec(query, summary.SessionID, summary.CompletedAt,
		summary.TotalCards, summary.LearningCount, summary.QuestionCount,
		summary.LearningAccuracy, summary.QuestionAccuracy,
		summary.TimeSpentMs, summary.AverageTimePerCard, string(perf),
		summary.WeakestCategory, summary.StrongestCategory, summary.Improvement)
	if err != nil {
		return fmt.Errorf("failed to save session result: %v", err)
	}
	return nil
}

// Recent returns the latest session summaries, newest first
func (r *SessionResultRepository) Recent(limit int) ([]models.SessionSummary, error) {
	var rows []sessionRow
	err := DB.Select(&rows,
		"SELECT * FROM session_results ORDER BY completed_at DESC LIMIT $1", limit)
	if err != nil {
		return nil, fmt.Errorf("failed to scan session results: %v", err)
	}
	summaries := make([]models.SessionSummary, 0, len(rows))
	for _, row := range rows {
		var perf []models.CategoryPerformance
		if err := json.Unmarshal([]byte(row.CategoryPerformance), &perf); err != nil {
			return nil, fmt.Errorf("corrupt category performance for %s: %v", row.SessionID, err)
		}
		summaries = append(summaries, models.SessionSummary{
			SessionID:           row.SessionID,
			CompletedAt:         row.CompletedAt,
			TotalCards:          row.TotalCards,
			LearningCount:       row.LearningCount,
			QuestionCount:       row.QuestionCount,
			LearningAccuracy:    row.LearningAccuracy,
			QuestionAccuracy:    row.QuestionAccuracy,
			TimeSpentMs:         row.TimeSpentMs,
			AverageTimePerCard:  row.AverageTimePerCard,
			CategoryPerformance: perf,
			WeakestCategory:     row.WeakestCategory,
			StrongestCategory:   row.StrongestCategory,
			Improvement:         row.Improvement,
		})
	}
	return summaries, nil
}

// Clear removes every stored session summary (full reset)
func (r *SessionResultRepository) Clear() error {
	if _, err := DB.Exec("DELETE FROM session_results"); err != nil {
		return fmt.Errorf("failed to clear session results: %v", err)
	}
	return nil
}
