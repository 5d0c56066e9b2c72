package flashcards

import (
	"math/rand"
	"sort"
	"strings"
	"time"

	"github.com/samber/lo"

	"github.com/example/hamstudy/pkg/models"
)

// Mode is the session operating mode
type Mode string

const (
	// ModeAdaptive weights categories by weakness, rust, and exploration
	ModeAdaptive Mode = "adaptive"
	// ModeReview favors cards whose review is due, ignoring categories
	ModeReview Mode = "review"
	// ModeExplore favors the least-practiced categories
	ModeExplore Mode = "explore"
	// ModeFocus restricts selection to the requested categories
	ModeFocus Mode = "focus"
)

// SessionOptions sizes and shapes one session's selection
type SessionOptions struct {
	LearningCount   int
	QuestionCount   int
	Mode            Mode
	FocusCategories []string // subelement or group codes, focus mode only
}

// Inventory is the full card content for one exam level
type Inventory struct {
	LearningCards []models.Flashcard
	QuestionCards []models.Flashcard
}

// Selection is one session's worth of cards. No card id appears twice.
type Selection struct {
	LearningCards []models.Flashcard
	QuestionCards []models.Flashcard
}

// Category weighting constants for adaptive mode
const (
	weightNormal  = 1.0
	weightWeak    = 3.0
	weightRusty   = 2.0
	weightExplore = 2.5
	weightStrong  = 0.5

	weakThreshold     = 0.4 // weakness score above this is "weak"
	rustyAfterDays    = 7
	strongAccuracy    = 0.85
	strongMinAttempts = 20
)

// Selector picks a session's cards. It is a pure computation over its
// inputs apart from the injected random source.
type Selector struct {
	rng *rand.Rand
	now func() time.Time
}

// NewSelector creates a selector with a time-seeded random source
func NewSelector() *Selector {
	return &Selector{
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
		now: time.Now,
	}
}

// SetRand replaces the sampling source, so tests can fix the seed
func (s *Selector) SetRand(rng *rand.Rand) {
	s.rng = rng
}

// SetClock replaces the time source for tests
func (s *Selector) SetClock(now func() time.Time) {
	s.now = now
}

// SelectCards fills a session from the inventory, biased toward weak, rusty,
// and unexplored categories. It never returns the same card twice, never
// duplicates to pad a short inventory, and falls back to unweighted sampling
// rather than returning an empty session while cards remain.
func (s *Selector) SelectCards(inv Inventory, progress map[string]*models.FlashcardProgress,
	categories []*models.CategoryProgress, opts SessionOptions) Selection {

	weights := s.categoryWeights(categories, opts)
	used := make(map[string]bool)

	return Selection{
		LearningCards: s.fillPool(inv.LearningCards, progress, weights, opts, opts.LearningCount, used),
		QuestionCards: s.fillPool(inv.QuestionCards, progress, weights, opts, opts.QuestionCount, used),
	}
}

// categoryWeights computes the sampling weight for every group code
// mentioned by the category aggregates. Codes absent from the map get the
// explore weight (never studied).
func (s *Selector) categoryWeights(categories []*models.CategoryProgress, opts SessionOptions) map[string]float64 {
	now := s.now()
	weights := make(map[string]float64)

	for _, cat := range categories {
		if cat.Key.Kind != models.KindGroup {
			continue
		}
		weights[cat.Key.Code] = s.weightFor(cat, now, opts.Mode)
	}
	return weights
}

// weightFor scores one studied category for the given mode
func (s *Selector) weightFor(cat *models.CategoryProgress, now time.Time, mode Mode) float64 {
	switch mode {
	case ModeExplore:
		// Fewest attempts first, accuracy ignored.
		return weightExplore / float64(1+cat.TotalAttempts)
	case ModeReview:
		// Due-ness is handled per card; categories are flat.
		return weightNormal
	}

	daysSince := now.Sub(cat.LastStudied).Hours() / 24
	switch {
	case cat.TotalAttempts == 0:
		return weightExplore
	case cat.WeaknessScore() > weakThreshold:
		return weightWeak
	case daysSince > rustyAfterDays:
		return weightRusty
	case cat.RecentAccuracy() >= strongAccuracy && cat.TotalAttempts >= strongMinAttempts:
		return weightStrong
	default:
		return weightNormal
	}
}

// groupBucket is one category's cards split by urgency
type groupBucket struct {
	code   string
	due    []models.Flashcard
	unseen []models.Flashcard
	rest   []models.Flashcard
}

func (b *groupBucket) empty() bool {
	return len(b.due) == 0 && len(b.unseen) == 0 && len(b.rest) == 0
}

// pop takes the most urgent remaining card: due, then never-seen, then
// not-yet-due, guaranteeing forward progress when nothing is strictly due
func (b *groupBucket) pop() (models.Flashcard, bool) {
	switch {
	case len(b.due) > 0:
		card := b.due[0]
		b.due = b.due[1:]
		return card, true
	case len(b.unseen) > 0:
		card := b.unseen[0]
		b.unseen = b.unseen[1:]
		return card, true
	case len(b.rest) > 0:
		card := b.rest[0]
		b.rest = b.rest[1:]
		return card, true
	}
	return models.Flashcard{}, false
}

// fillPool samples count cards from one pool without replacement
func (s *Selector) fillPool(pool []models.Flashcard, progress map[string]*models.FlashcardProgress,
	weights map[string]float64, opts SessionOptions, count int, used map[string]bool) []models.Flashcard {

	if count <= 0 || len(pool) == 0 {
		return nil
	}
	now := s.now()

	inFocus := func(card models.Flashcard) bool {
		if opts.Mode != ModeFocus {
			return true
		}
		return lo.SomeBy(opts.FocusCategories, func(code string) bool {
			return card.Group == code || strings.HasPrefix(card.Group, code)
		})
	}

	buckets := make(map[string]*groupBucket)
	for _, card := range pool {
		if used[card.ID] || !inFocus(card) {
			continue
		}
		bucket, ok := buckets[card.Group]
		if !ok {
			bucket = &groupBucket{code: card.Group}
			buckets[card.Group] = bucket
		}
		record := progress[card.ID]
		switch {
		case record == nil:
			bucket.unseen = append(bucket.unseen, card)
		case record.Due(now):
			bucket.due = append(bucket.due, card)
		default:
			bucket.rest = append(bucket.rest, card)
		}
	}

	if len(buckets) == 0 && opts.Mode == ModeFocus {
		// Requested categories have no cards; fall back to unweighted
		// sampling over the whole pool so the session isn't empty while
		// cards exist.
		unfocused := opts
		unfocused.Mode = ModeAdaptive
		return s.fillPool(pool, progress, map[string]float64{}, unfocused, count, used)
	}

	for _, bucket := range buckets {
		s.shuffleCards(bucket.due)
		s.shuffleCards(bucket.unseen)
		s.shuffleCards(bucket.rest)
	}

	if opts.Mode == ModeReview {
		return s.fillByDueness(buckets, count, used)
	}

	var selected []models.Flashcard
	for len(selected) < count {
		bucket := s.pickBucket(buckets, weights)
		if bucket == nil {
			break
		}
		card, ok := bucket.pop()
		if !ok {
			delete(buckets, bucket.code)
			continue
		}
		if bucket.empty() {
			delete(buckets, bucket.code)
		}
		used[card.ID] = true
		selected = append(selected, card)
	}
	return selected
}

// pickBucket draws one non-empty bucket by category weight. When every
// weight is zero it degrades to uniform sampling so a session is never
// starved by pathological weights.
func (s *Selector) pickBucket(buckets map[string]*groupBucket, weights map[string]float64) *groupBucket {
	codes := lo.Keys(buckets)
	if len(codes) == 0 {
		return nil
	}
	// Map order isn't seedable; sort so an injected source is deterministic.
	sort.Strings(codes)

	weightOf := func(code string) float64 {
		if w, ok := weights[code]; ok {
			return w
		}
		return weightExplore // group never studied
	}

	total := 0.0
	for _, code := range codes {
		total += weightOf(code)
	}
	if total <= 0 {
		return buckets[codes[s.rng.Intn(len(codes))]]
	}

	roll := s.rng.Float64() * total
	for _, code := range codes {
		roll -= weightOf(code)
		if roll < 0 {
			return buckets[code]
		}
	}
	return buckets[codes[len(codes)-1]]
}

// fillByDueness flattens the buckets and takes due cards first, then unseen,
// then the remainder. Review mode ignores category weights entirely.
func (s *Selector) fillByDueness(buckets map[string]*groupBucket, count int, used map[string]bool) []models.Flashcard {
	codes := lo.Keys(buckets)
	sort.Strings(codes)

	var due, unseen, rest []models.Flashcard
	for _, code := range codes {
		bucket := buckets[code]
		due = append(due, bucket.due...)
		unseen = append(unseen, bucket.unseen...)
		rest = append(rest, bucket.rest...)
	}
	s.shuffleCards(due)
	s.shuffleCards(unseen)
	s.shuffleCards(rest)

	ordered := append(append(due, unseen...), rest...)
	if len(ordered) > count {
		ordered = ordered[:count]
	}
	for _, card := range ordered {
		used[card.ID] = true
	}
	return ordered
}

// shuffleCards shuffles a card slice in place
func (s *Selector) shuffleCards(cards []models.Flashcard) {
	s.rng.Shuffle(len(cards), func(i, j int) {
		cards[i], cards[j] = cards[j], cards[i]
	})
}
