package models

import "time"

// CardResult is one answered card within a study session
type CardResult struct {
	CardID     string   `json:"card_id"`
	CardType   CardType `json:"card_type"`
	Subelement string   `json:"subelement"`
	Group      string   `json:"group"`
	Correct    bool     `json:"correct"`
	TimeMs     int64    `json:"time_ms"`
}

// CategoryPerformance is the per-category rollup inside a session summary
type CategoryPerformance struct {
	CategoryID string  `json:"category_id"`
	Correct    int     `json:"correct"`
	Total      int     `json:"total"`
	Accuracy   float64 `json:"accuracy"`
}

// SessionSummary is the report produced when a study session completes
type SessionSummary struct {
	SessionID           string                `json:"session_id" db:"session_id"`
	CompletedAt         time.Time             `json:"completed_at" db:"completed_at"`
	TotalCards          int                   `json:"total_cards" db:"total_cards"`
	LearningCount       int                   `json:"learning_count" db:"learning_count"`
	QuestionCount       int                   `json:"question_count" db:"question_count"`
	LearningAccuracy    float64               `json:"learning_accuracy" db:"learning_accuracy"`
	QuestionAccuracy    float64               `json:"question_accuracy" db:"question_accuracy"`
	TimeSpentMs         int64                 `json:"time_spent_ms" db:"time_spent_ms"`
	AverageTimePerCard  int64                 `json:"average_time_per_card" db:"average_time_per_card"`
	CategoryPerformance []CategoryPerformance `json:"category_performance"`
	WeakestCategory     string                `json:"weakest_category,omitempty" db:"weakest_category"`
	StrongestCategory   string                `json:"strongest_category,omitempty" db:"strongest_category"`
	Improvement         float64               `json:"improvement,omitempty" db:"improvement"`
}
