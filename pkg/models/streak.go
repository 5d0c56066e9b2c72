package models

// MaxFreezeTokens caps how many unused freeze tokens can be held at once
const MaxFreezeTokens = 2

// StreakState is the process-wide daily study streak. Dates are local
// calendar-day strings ("YYYY-MM-DD"), never UTC, so a late-night session
// counts toward the day the learner experienced.
type StreakState struct {
	CurrentStreak      int    `json:"current_streak" db:"current_streak"`
	LongestStreak      int    `json:"longest_streak" db:"longest_streak"`
	LastSessionDate    string `json:"last_session_date" db:"last_session_date"`
	FreezeTokens       int    `json:"freeze_tokens" db:"freeze_tokens"`
	FreezeTokensEarned int    `json:"freeze_tokens_earned" db:"freeze_tokens_earned"`
	LastFreezeUsed     string `json:"last_freeze_used" db:"last_freeze_used"`
}
