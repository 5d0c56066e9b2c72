package models

import "time"

// QuestionStatus is the scheduling lifecycle stage of a question
type QuestionStatus string

const (
	StatusNew      QuestionStatus = "new"
	StatusLearning QuestionStatus = "learning"
	StatusReview   QuestionStatus = "review"
	StatusMastered QuestionStatus = "mastered"
)

// QuestionProgress tracks scheduling state for one question using an
// ease-factor/interval model. A question the learner has never answered has
// no record at all; "new" is the absence of a row, never a stored status.
type QuestionProgress struct {
	QuestionID   string         `json:"question_id" db:"question_id"`
	Attempts     int            `json:"attempts" db:"attempts"`
	CorrectCount int            `json:"correct_count" db:"correct_count"`
	LastAttempt  time.Time      `json:"last_attempt" db:"last_attempt"`
	NextReview   time.Time      `json:"next_review" db:"next_review"`
	EaseFactor   float64        `json:"ease_factor" db:"ease_factor"` // SM-2 style EF, floor 1.3
	Interval     int            `json:"interval" db:"interval"`       // days until next review
	Status       QuestionStatus `json:"status" db:"status"`
}

// Accuracy returns the lifetime correct ratio for the question
func (p *QuestionProgress) Accuracy() float64 {
	if p.Attempts == 0 {
		return 0
	}
	return float64(p.CorrectCount) / float64(p.Attempts)
}

// Due reports whether the question's next review is at or before now
func (p *QuestionProgress) Due(now time.Time) bool {
	return !p.NextReview.After(now)
}

// ProgressStats is the pool-wide dashboard aggregate for one exam level
type ProgressStats struct {
	Total    int     `json:"total"`
	New      int     `json:"new"`
	Learning int     `json:"learning"`
	Review   int     `json:"review"`
	Mastered int     `json:"mastered"`
	Accuracy float64 `json:"accuracy"`
	DueCount int     `json:"due_count"`
}

// SubelementProgress summarizes progress within one subelement
type SubelementProgress struct {
	Subelement string  `json:"subelement"`
	Total      int     `json:"total"`
	Seen       int     `json:"seen"`
	Mastered   int     `json:"mastered"`
	Accuracy   float64 `json:"accuracy"`
}
