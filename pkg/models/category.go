package models

import (
	"fmt"
	"time"
)

// CategoryKind tags a category key as a subelement or a group. The two were
// once told apart by string length alone; the tag makes the distinction
// explicit.
type CategoryKind string

const (
	KindSubelement CategoryKind = "subelement"
	KindGroup      CategoryKind = "group"
)

// CategoryKey identifies one progress aggregate: a 2-character subelement
// code (e.g. "T1") or a 3-character group code (e.g. "T1A").
type CategoryKey struct {
	Kind CategoryKind `json:"kind" db:"kind"`
	Code string       `json:"code" db:"code"`
}

// SubelementKey builds a subelement category key from a code like "T1"
func SubelementKey(code string) CategoryKey {
	return CategoryKey{Kind: KindSubelement, Code: code}
}

// GroupKey builds a group category key from a code like "T1A"
func GroupKey(code string) CategoryKey {
	return CategoryKey{Kind: KindGroup, Code: code}
}

// String renders the key for logs and storage, e.g. "subelement:T1"
func (k CategoryKey) String() string {
	return fmt.Sprintf("%s:%s", k.Kind, k.Code)
}

// Trend classifies how a category's recent accuracy compares to its history
type Trend string

const (
	TrendImproving Trend = "improving"
	TrendStable    Trend = "stable"
	TrendDeclining Trend = "declining"
)

// RecentWindow is how many of the latest outcomes feed recent accuracy
const RecentWindow = 20

// CategoryProgress is the rolling accuracy aggregate for one category.
// It is updated incrementally with each card result, never rebuilt from
// scratch, so it must change in the same transaction as the card record.
type CategoryProgress struct {
	Key            CategoryKey `json:"key"`
	TotalAttempts  int         `json:"total_attempts" db:"total_attempts"`
	TotalCorrect   int         `json:"total_correct" db:"total_correct"`
	RecentOutcomes []bool      `json:"recent_outcomes"` // newest last, capped at RecentWindow
	LastStudied    time.Time   `json:"last_studied" db:"last_studied"`
	Trend          Trend       `json:"trend" db:"trend"`
}

// OverallAccuracy is the lifetime correct ratio for the category
func (c *CategoryProgress) OverallAccuracy() float64 {
	if c.TotalAttempts == 0 {
		return 0
	}
	return float64(c.TotalCorrect) / float64(c.TotalAttempts)
}

// RecentAccuracy is the correct ratio over the rolling window
func (c *CategoryProgress) RecentAccuracy() float64 {
	if len(c.RecentOutcomes) == 0 {
		return 0
	}
	correct := 0
	for _, ok := range c.RecentOutcomes {
		if ok {
			correct++
		}
	}
	return float64(correct) / float64(len(c.RecentOutcomes))
}

// WeaknessScore is 1 minus recent accuracy; higher means more in need of work
func (c *CategoryProgress) WeaknessScore() float64 {
	return 1 - c.RecentAccuracy()
}
