package models

import "time"

// Skill identifies one of the four procedural operating skills tracked
// independently of any flashcard or pool question.
type Skill string

const (
	SkillPhoneticAlphabet Skill = "phonetic_alphabet"
	SkillFrequencyBands   Skill = "frequency_bands"
	SkillCallSigns        Skill = "call_signs"
	SkillQCodes           Skill = "q_codes"
)

// AllSkills lists every tracked skill
var AllSkills = []Skill{SkillPhoneticAlphabet, SkillFrequencyBands, SkillCallSigns, SkillQCodes}

// SkillMastery accumulates drill attempts for one skill. Level is always
// recomputed from the totals, so it can move down as well as up.
type SkillMastery struct {
	Skill         Skill     `json:"skill" db:"skill"`
	Attempts      int       `json:"attempts" db:"attempts"`
	Correct       int       `json:"correct" db:"correct"`
	Level         int       `json:"level" db:"level"` // 1..5
	LastPracticed time.Time `json:"last_practiced" db:"last_practiced"`
}

// Accuracy returns the lifetime correct ratio for the skill
func (s *SkillMastery) Accuracy() float64 {
	if s.Attempts == 0 {
		return 0
	}
	return float64(s.Correct) / float64(s.Attempts)
}
