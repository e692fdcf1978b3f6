package causal

import (
	"fmt"
	"time"

	"github.com/nabheet/opencausenx/internal/business"
	"github.com/nabheet/opencausenx/internal/event"
)

// maxEventAge is how old an event may be and still be worth mapping.
const maxEventAge = 90 * 24 * time.Hour

// minSourceConfidence is the floor below which a source is too
// unreliable to reason from.
const minSourceConfidence = 0.3

// Relevance is the outcome of the relevance gate. Not being relevant is
// a normal result with a human-readable reason, never an error.
type Relevance struct {
	Relevant bool
	Reason   string
}

// CheckRelevance decides whether an event is in scope for a business.
// Checks run in order and short-circuit on the first failure:
// geography, then recency against now, then source confidence.
func CheckRelevance(ev *event.Event, b *business.Model, now time.Time) Relevance {
	if ev.Region != event.RegionGlobal && !b.ServesRegion(ev.Region) {
		return Relevance{
			Relevant: false,
			Reason: fmt.Sprintf("event region %s is outside the business's operating and customer regions %v",
				ev.Region, b.Regions()),
		}
	}

	age := now.Sub(ev.OccurredAt)
	if age > maxEventAge {
		return Relevance{
			Relevant: false,
			Reason:   fmt.Sprintf("event is %d days old, beyond the 90-day recency window", int(age.Hours()/24)),
		}
	}

	if ev.Confidence < minSourceConfidence {
		return Relevance{
			Relevant: false,
			Reason: fmt.Sprintf("source confidence %.2f is below the %.1f reliability floor",
				ev.Confidence, minSourceConfidence),
		}
	}

	return Relevance{
		Relevant: true,
		Reason:   "event is geographically relevant, recent, and from a sufficiently reliable source",
	}
}
