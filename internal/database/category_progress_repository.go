package database

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/example/hamstudy/pkg/models"
)

// CategoryProgressRepository handles database operations for the per-category
// accuracy aggregates
type CategoryProgressRepository struct{}

// NewCategoryProgressRepository creates a new repository instance
func NewCategoryProgressRepository() *CategoryProgressRepository {
	return &CategoryProgressRepository{}
}

type categoryRow struct {
	Kind           string    `db:"kind"`
	Code           string    `db:"code"`
	TotalAttempts  int       `db:"total_attempts"`
	TotalCorrect   int       `db:"total_correct"`
	RecentOutcomes string    `db:"recent_outcomes"`
	LastStudied    time.Time `db:"last_studied"`
	Trend          string    `db:"trend"`
}

func (row *categoryRow) toModel() (*models.CategoryProgress, error) {
	var outcomes []bool
	if err := json.Unmarshal([]byte(row.RecentOutcomes), &outcomes); err != nil {
		return nil, fmt.Errorf("corrupt recent outcomes for %s:%s: %v", row.Kind, row.Code, err)
	}
	return &models.CategoryProgress{
		Key:            models.CategoryKey{Kind: models.CategoryKind(row.Kind), Code: row.Code},
		TotalAttempts:  row.TotalAttempts,
		TotalCorrect:   row.TotalCorrect,
		RecentOutcomes: outcomes,
		LastStudied:    row.LastStudied,
		Trend:          models.Trend(row.Trend),
	}, nil
}

// Get returns the aggregate for a category key, or nil if never studied
func (r *CategoryProgressRepository) Get(key models.CategoryKey) (*models.CategoryProgress, error) {
	var row categoryRow
	err := DB.Get(&row, "SELECT * FROM category_progress WHERE kind = $1 AND code = $2",
		string(key.Kind), key.Code)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get category progress: %v", err)
	}
	return row.toModel()
}

// Put creates or replaces the aggregate for a category
func (r *CategoryProgressRepository) Put(progress *models.CategoryProgress) error {
	outcomes, err := json.Marshal(progress.RecentOutcomes)
	if err != nil {
		return fmt.Errorf("failed to encode recent outcomes: %v", err)
	}
	query := `
		INSERT INTO category_progress (
			kind, code, total_attempts, total_correct, recent_outcomes,
			last_studied, trend
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (kind, code) DO UPDATE SET
			total_attempts = EXCLUDED.total_attempts,
			total_correct = EXCLUDED.total_correct,
			recent_outcomes = EXCLUDED.recent_outcomes,
			last_studied = EXCLUDED.last_studied,
			trend = EXCLUDED.trend
	`
	_, err = DB.Exec(
		query,
		string(progress.Key.Kind),
		progress.Key.Code,
		progress.TotalAttempts,
		progress.TotalCorrect,
		string(outcomes),
		progress.LastStudied,
		string(progress.Trend),
	)
	if err != nil {
		return fmt.Errorf("failed to save category progress: %v", err)
	}
	return nil
}

// All returns every category aggregate
func (r *CategoryProgressRepository) All() ([]*models.CategoryProgress, error) {
	var rows []categoryRow
	if err := DB.Select(&rows, "SELECT * FROM category_progress ORDER BY kind, code"); err != nil {
		return nil, fmt.Errorf("failed to scan category progress: %v", err)
	}
	result := make([]*models.CategoryProgress, 0, len(rows))
	for i := range rows {
		progress, err := rows[i].toModel()
		if err != nil {
			return nil, err
		}
		result = append(result, progress)
	}
	return result, nil
}

// Clear removes every category aggregate (full reset)
func (r *CategoryProgressRepository) Clear() error {
	if _, err := DB.Exec("DELETE FROM category_progress"); err != nil {
		return fmt.Errorf("failed to clear category progress: %v", err)
	}
	return nil
}
