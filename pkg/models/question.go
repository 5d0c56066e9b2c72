package models

import (
	"fmt"
	"strings"
)

// ExamLevel identifies one of the three US amateur-radio license exams
type ExamLevel string

const (
	ExamTechnician ExamLevel = "technician"
	ExamGeneral    ExamLevel = "general"
	ExamExtra      ExamLevel = "extra"
)

// AllExamLevels lists the supported exam levels in license order
var AllExamLevels = []ExamLevel{ExamTechnician, ExamGeneral, ExamExtra}

// Prefix returns the question-id prefix letter for the exam level
func (e ExamLevel) Prefix() string {
	switch e {
	case ExamTechnician:
		return "T"
	case ExamGeneral:
		return "G"
	case ExamExtra:
		return "E"
	}
	return ""
}

// Question is one entry from an exam question pool.
// IDs follow the NCVEC convention: subelement (2 chars) + group letter +
// two-digit number, e.g. "T1A01".
type Question struct {
	ID            string   `json:"id" db:"id"`
	Subelement    string   `json:"subelement" db:"subelement"`
	Group         string   `json:"group" db:"group_code"`
	Question      string   `json:"question" db:"question"`
	Answers       []string `json:"answers" db:"-"`
	CorrectAnswer int      `json:"correct_answer" db:"correct_answer"`
	Figure        string   `json:"figure,omitempty" db:"figure"`
	Refs          string   `json:"refs,omitempty" db:"refs"`
}

// ValidQuestionID reports whether id has the pool id shape (e.g. "T1A01")
func ValidQuestionID(id string) bool {
	if len(id) < 5 {
		return false
	}
	if !strings.ContainsAny(id[:1], "TGE") {
		return false
	}
	if id[1] < '0' || id[1] > '9' {
		return false
	}
	if id[2] < 'A' || id[2] > 'Z' {
		return false
	}
	return true
}

// SubelementOf extracts the 2-character subelement code from a question id
func SubelementOf(id string) string {
	if len(id) < 2 {
		return ""
	}
	return id[:2]
}

// GroupOf extracts the 3-character group code from a question id
func GroupOf(id string) string {
	if len(id) < 3 {
		return ""
	}
	return id[:3]
}

// ParseExamLevel converts a user-supplied string to an ExamLevel
func ParseExamLevel(s string) (ExamLevel, error) {
	switch ExamLevel(strings.ToLower(s)) {
	case ExamTechnician:
		return ExamTechnician, nil
	case ExamGeneral:
		return ExamGeneral, nil
	case ExamExtra:
		return ExamExtra, nil
	}
	return "", fmt.Errorf("unknown exam level: %q", s)
}
