package flashcards

import (
	"fmt"
	"time"

	"github.com/example/hamstudy/internal/dateutil"
	"github.com/example/hamstudy/pkg/models"
)

// Recommendation is a suggested session mode with a human-readable reason
type Recommendation struct {
	Mode   Mode   `json:"mode"`
	Reason string `json:"reason"`
}

// sessionGapDays is how many days without a session before a review pass is
// suggested
const sessionGapDays = 3

// RecommendMode inspects the category aggregates and the recency of the last
// session, and suggests what kind of session to run next. Pure: it touches
// no storage. Competing signals resolve review first, then explore, then
// adaptive.
func RecommendMode(categories []*models.CategoryProgress, lastSessionDate string, now time.Time) Recommendation {
	if len(categories) == 0 {
		return Recommendation{
			Mode:   ModeExplore,
			Reason: "no study history yet; explore the material to build a baseline",
		}
	}

	// Review signal: a gap since the last session, or rusty categories.
	if lastSessionDate != "" {
		if gap, err := dateutil.DaysAgo(lastSessionDate, now); err == nil && gap >= sessionGapDays {
			return Recommendation{
				Mode:   ModeReview,
				Reason: fmt.Sprintf("no sessions in %d days; reviewing due cards protects what you've learned", gap),
			}
		}
	}
	rusty := 0
	for _, cat := range categories {
		if cat.TotalAttempts > 0 && now.Sub(cat.LastStudied).Hours()/24 > rustyAfterDays {
			rusty++
		}
	}
	if rusty > 0 {
		return Recommendation{
			Mode:   ModeReview,
			Reason: fmt.Sprintf("%d categories haven't been touched in over a week", rusty),
		}
	}

	// Explore signal: untouched categories.
	unexplored := 0
	for _, cat := range categories {
		if cat.TotalAttempts == 0 {
			unexplored++
		}
	}
	if unexplored > 0 {
		return Recommendation{
			Mode:   ModeExplore,
			Reason: fmt.Sprintf("%d categories are still unexplored", unexplored),
		}
	}

	// Focus signal: a clearly weak category with real history behind it.
	for _, cat := range categories {
		if cat.TotalAttempts >= 10 && cat.WeaknessScore() > weakThreshold {
			return Recommendation{
				Mode:   ModeFocus,
				Reason: fmt.Sprintf("%s needs work (recent accuracy %.0f%%)", cat.Key.Code, cat.RecentAccuracy()*100),
			}
		}
	}

	return Recommendation{
		Mode:   ModeAdaptive,
		Reason: "progress is balanced; adaptive mixing keeps it that way",
	}
}
