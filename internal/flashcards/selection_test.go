package flashcards

import (
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/hamstudy/pkg/models"
)

var selectNow = time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

func testSelector() *Selector {
	s := NewSelector()
	s.SetRand(rand.New(rand.NewSource(7)))
	s.SetClock(func() time.Time { return selectNow })
	return s
}

// makeInventory builds n learning and n question cards spread over the
// given group codes
func makeInventory(n int, groups ...string) Inventory {
	var inv Inventory
	for i := 0; i < n; i++ {
		group := groups[i%len(groups)]
		inv.LearningCards = append(inv.LearningCards, models.Flashcard{
			ID:         fmt.Sprintf("L-%s-%d", group, i),
			Type:       models.CardLearning,
			Subelement: group[:2],
			Group:      group,
		})
		inv.QuestionCards = append(inv.QuestionCards, models.Flashcard{
			ID:         fmt.Sprintf("Q-%s-%d", group, i),
			Type:       models.CardQuestion,
			Subelement: group[:2],
			Group:      group,
		})
	}
	return inv
}

func studiedCategory(group string, attempts, correct int, lastStudied time.Time) *models.CategoryProgress {
	recent := make([]bool, 0, attempts)
	for i := 0; i < attempts && i < models.RecentWindow; i++ {
		recent = append(recent, i < correct)
	}
	return &models.CategoryProgress{
		Key:            models.GroupKey(group),
		TotalAttempts:  attempts,
		TotalCorrect:   correct,
		RecentOutcomes: recent,
		LastStudied:    lastStudied,
		Trend:          models.TrendStable,
	}
}

func TestSelectRespectsRequestedCounts(t *testing.T) {
	s := testSelector()
	inv := makeInventory(20, "T1A", "T2B")

	sel := s.SelectCards(inv, nil, nil, SessionOptions{
		LearningCount: 5, QuestionCount: 3, Mode: ModeAdaptive,
	})

	assert.Len(t, sel.LearningCards, 5)
	assert.Len(t, sel.QuestionCards, 3)
}

func TestSelectNeverDuplicatesCards(t *testing.T) {
	s := testSelector()
	inv := makeInventory(30, "T1A", "T2B", "T3C")

	sel := s.SelectCards(inv, nil, nil, SessionOptions{
		LearningCount: 30, QuestionCount: 30, Mode: ModeAdaptive,
	})

	seen := make(map[string]bool)
	for _, card := range append(sel.LearningCards, sel.QuestionCards...) {
		assert.False(t, seen[card.ID], "card %s selected twice", card.ID)
		seen[card.ID] = true
	}
}

func TestSelectExhaustedInventoryReturnsShort(t *testing.T) {
	s := testSelector()
	inv := makeInventory(3, "T1A")

	sel := s.SelectCards(inv, nil, nil, SessionOptions{
		LearningCount: 10, QuestionCount: 10, Mode: ModeAdaptive,
	})

	assert.Len(t, sel.LearningCards, 3)
	assert.Len(t, sel.QuestionCards, 3)
}

func TestSelectEmptyInventory(t *testing.T) {
	s := testSelector()

	sel := s.SelectCards(Inventory{}, nil, nil, SessionOptions{
		LearningCount: 5, QuestionCount: 5, Mode: ModeAdaptive,
	})

	assert.Empty(t, sel.LearningCards)
	assert.Empty(t, sel.QuestionCards)
}

func TestFocusModeOnlyPicksFocusCategories(t *testing.T) {
	s := testSelector()
	inv := makeInventory(30, "T1A", "T2B", "T3C")

	sel := s.SelectCards(inv, nil, nil, SessionOptions{
		LearningCount: 8, QuestionCount: 8,
		Mode:            ModeFocus,
		FocusCategories: []string{"T2B"},
	})

	for _, card := range append(sel.LearningCards, sel.QuestionCards...) {
		assert.Equal(t, "T2B", card.Group)
	}
}

func TestFocusModeAcceptsSubelementCodes(t *testing.T) {
	s := testSelector()
	inv := makeInventory(30, "T1A", "T1B", "T2A")

	sel := s.SelectCards(inv, nil, nil, SessionOptions{
		LearningCount: 10, QuestionCount: 0,
		Mode:            ModeFocus,
		FocusCategories: []string{"T1"},
	})

	require.NotEmpty(t, sel.LearningCards)
	for _, card := range sel.LearningCards {
		assert.Equal(t, "T1", card.Subelement)
	}
}

func TestFocusModeFallsBackWhenCategoryEmpty(t *testing.T) {
	s := testSelector()
	inv := makeInventory(10, "T1A")

	sel := s.SelectCards(inv, nil, nil, SessionOptions{
		LearningCount: 4, QuestionCount: 0,
		Mode:            ModeFocus,
		FocusCategories: []string{"T9Z"},
	})

	// No cards in the requested category; the session must not be empty.
	assert.Len(t, sel.LearningCards, 4)
}

func TestAdaptiveModeFavorsWeakCategories(t *testing.T) {
	s := testSelector()
	inv := makeInventory(60, "T1A", "T2B")

	categories := []*models.CategoryProgress{
		// T1A weak: 30% recent accuracy.
		studiedCategory("T1A", 20, 6, selectNow.Add(-24*time.Hour)),
		// T2B strong: high accuracy, plenty of attempts.
		studiedCategory("T2B", 40, 38, selectNow.Add(-24*time.Hour)),
	}

	weak, strong := 0, 0
	for trial := 0; trial < 20; trial++ {
		sel := s.SelectCards(inv, nil, categories, SessionOptions{
			LearningCount: 10, QuestionCount: 0, Mode: ModeAdaptive,
		})
		for _, card := range sel.LearningCards {
			if card.Group == "T1A" {
				weak++
			} else {
				strong++
			}
		}
	}
	assert.Greater(t, weak, strong, "weak category should dominate selection")
}

func TestReviewModePrefersDueCards(t *testing.T) {
	s := testSelector()
	inv := makeInventory(20, "T1A", "T2B")

	// Mark a handful of learning cards due, the rest seen-but-not-due.
	progress := make(map[string]*models.FlashcardProgress)
	dueIDs := make(map[string]bool)
	for i, card := range inv.LearningCards {
		record := &models.FlashcardProgress{
			CardID:     card.ID,
			Box:        3,
			Attempts:   4,
			LastSeen:   selectNow.Add(-48 * time.Hour),
			NextReview: selectNow.Add(24 * time.Hour),
		}
		if i < 5 {
			record.NextReview = selectNow.Add(-time.Hour)
			dueIDs[card.ID] = true
		}
		progress[card.ID] = record
	}

	sel := s.SelectCards(inv, progress, nil, SessionOptions{
		LearningCount: 5, QuestionCount: 0, Mode: ModeReview,
	})

	require.Len(t, sel.LearningCards, 5)
	for _, card := range sel.LearningCards {
		assert.True(t, dueIDs[card.ID], "expected only due cards, got %s", card.ID)
	}
}

func TestUnseenBeatsNotDue(t *testing.T) {
	s := testSelector()
	inv := makeInventory(10, "T1A")

	// All but two cards seen and scheduled for the future.
	progress := make(map[string]*models.FlashcardProgress)
	for i, card := range inv.LearningCards {
		if i < 2 {
			continue
		}
		progress[card.ID] = &models.FlashcardProgress{
			CardID:     card.ID,
			Box:        2,
			Attempts:   1,
			NextReview: selectNow.Add(24 * time.Hour),
		}
	}

	sel := s.SelectCards(inv, progress, nil, SessionOptions{
		LearningCount: 2, QuestionCount: 0, Mode: ModeAdaptive,
	})

	require.Len(t, sel.LearningCards, 2)
	for _, card := range sel.LearningCards {
		assert.Nil(t, progress[card.ID], "unseen cards should be chosen before not-due ones")
	}
}

func TestExploreModeFavorsLeastPracticed(t *testing.T) {
	s := testSelector()
	inv := makeInventory(60, "T1A", "T2B")

	categories := []*models.CategoryProgress{
		studiedCategory("T1A", 100, 90, selectNow.Add(-24*time.Hour)),
		studiedCategory("T2B", 2, 1, selectNow.Add(-24*time.Hour)),
	}

	practiced, fresh := 0, 0
	for trial := 0; trial < 20; trial++ {
		sel := s.SelectCards(inv, nil, categories, SessionOptions{
			LearningCount: 10, QuestionCount: 0, Mode: ModeExplore,
		})
		for _, card := range sel.LearningCards {
			if card.Group == "T1A" {
				practiced++
			} else {
				fresh++
			}
		}
	}
	assert.Greater(t, fresh, practiced, "explore mode should favor the less practiced category")
}
