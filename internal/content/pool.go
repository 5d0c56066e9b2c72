// Package content loads and validates exam question pools. Pools are static
// content, so each level is read and validated once and memoized.
package content

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/example/hamstudy/pkg/models"
)

// Loader reads question pools from a directory of per-level JSON files
// (technician.json, general.json, extra.json)
type Loader struct {
	dir string

	mu    sync.Mutex
	pools map[models.ExamLevel][]models.Question
}

// NewLoader creates a loader rooted at the given pool directory
func NewLoader(dir string) *Loader {
	return &Loader{
		dir:   dir,
		pools: make(map[models.ExamLevel][]models.Question),
	}
}

// QuestionPool returns the validated pool for an exam level, reading it from
// disk on first use. A malformed pool is a content defect: the load fails
// outright instead of skipping bad entries.
func (l *Loader) QuestionPool(level models.ExamLevel) ([]models.Question, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if pool, ok := l.pools[level]; ok {
		return pool, nil
	}

	path := filepath.Join(l.dir, string(level)+".json")
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not load %s question pool: %v", level, err)
	}

	var pool []models.Question
	if err := json.Unmarshal(raw, &pool); err != nil {
		return nil, fmt.Errorf("could not parse %s question pool: %v", level, err)
	}
	if err := ValidatePool(level, pool); err != nil {
		return nil, err
	}

	l.pools[level] = pool
	return pool, nil
}

// ValidatePool checks the structural invariants of a question pool
func ValidatePool(level models.ExamLevel, pool []models.Question) error {
	if len(pool) == 0 {
		return fmt.Errorf("%s question pool is empty", level)
	}
	seen := make(map[string]bool, len(pool))
	for i, q := range pool {
		if !models.ValidQuestionID(q.ID) {
			return fmt.Errorf("%s pool entry %d: malformed question id %q", level, i, q.ID)
		}
		if q.ID[:1] != level.Prefix() {
			return fmt.Errorf("%s pool entry %s: id belongs to another exam", level, q.ID)
		}
		if seen[q.ID] {
			return fmt.Errorf("%s pool: duplicate question id %s", level, q.ID)
		}
		seen[q.ID] = true
		if q.Question == "" {
			return fmt.Errorf("%s pool entry %s: empty question text", level, q.ID)
		}
		if len(q.Answers) != 4 {
			return fmt.Errorf("%s pool entry %s: expected 4 answers, got %d", level, q.ID, len(q.Answers))
		}
		if q.CorrectAnswer < 0 || q.CorrectAnswer > 3 {
			return fmt.Errorf("%s pool entry %s: correct answer index %d out of range", level, q.ID, q.CorrectAnswer)
		}
		if q.Subelement != models.SubelementOf(q.ID) || q.Group != models.GroupOf(q.ID) {
			return fmt.Errorf("%s pool entry %s: subelement/group does not match id", level, q.ID)
		}
	}
	return nil
}
