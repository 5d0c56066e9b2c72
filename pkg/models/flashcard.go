package models

import "time"

// CardType distinguishes concept cards from question-drill cards
type CardType string

const (
	CardLearning CardType = "learning"
	CardQuestion CardType = "question"
)

// Flashcard is one study card from the learning or question inventory
type Flashcard struct {
	ID         string   `json:"id" db:"id"`
	Type       CardType `json:"type" db:"card_type"`
	Subelement string   `json:"subelement" db:"subelement"`
	Group      string   `json:"group" db:"group_code"`
	Front      string   `json:"front" db:"front"`
	Back       string   `json:"back" db:"back"`
}

// BoxIntervals gives the review delay in days for each Leitner box (1..5)
var BoxIntervals = [5]int{0, 1, 3, 7, 21}

// FlashcardProgress is the per-card Leitner state. Box advances on a pass
// (capped at 5) and resets to 1 on any failure.
type FlashcardProgress struct {
	CardID       string    `json:"card_id" db:"card_id"`
	CardType     CardType  `json:"card_type" db:"card_type"`
	Subelement   string    `json:"subelement" db:"subelement"`
	Group        string    `json:"group" db:"group_code"`
	Box          int       `json:"box" db:"box"`
	Attempts     int       `json:"attempts" db:"attempts"`
	CorrectCount int       `json:"correct_count" db:"correct_count"`
	Streak       int       `json:"streak" db:"streak"`
	MasteryScore int       `json:"mastery_score" db:"mastery_score"` // 0..100
	LastSeen     time.Time `json:"last_seen" db:"last_seen"`
	NextReview   time.Time `json:"next_review" db:"next_review"`

	// Incremental mean of response latency. Count/total rather than a
	// repeatedly-halved two-point average, so no history is lost.
	TimedAttempts int   `json:"timed_attempts" db:"timed_attempts"`
	TotalTimeMs   int64 `json:"total_time_ms" db:"total_time_ms"`
}

// Accuracy returns the lifetime pass ratio for the card
func (p *FlashcardProgress) Accuracy() float64 {
	if p.Attempts == 0 {
		return 0
	}
	return float64(p.CorrectCount) / float64(p.Attempts)
}

// AverageTimeMs returns the mean response latency, or 0 if never timed
func (p *FlashcardProgress) AverageTimeMs() int64 {
	if p.TimedAttempts == 0 {
		return 0
	}
	return p.TotalTimeMs / int64(p.TimedAttempts)
}

// Due reports whether the card's next review is at or before now
func (p *FlashcardProgress) Due(now time.Time) bool {
	return !p.NextReview.After(now)
}
