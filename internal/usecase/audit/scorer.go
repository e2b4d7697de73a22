package audit

import (
	"sort"
	"time"

	"github.com/meetwiselabs/meetwise/internal/domain/entities"
)

// Scoring weights for cancellation candidates. The scale is additive and
// uncapped; 50 is the inclusion cutoff and 80 the point where we stop
// hedging and recommend cancelling outright.
const (
	scoreNoAgenda      = 30
	scoreManyAttendees = 20
	scorePerFlag       = 15
	scoreVeryLong      = 25
	scoreRecurring     = 10

	candidateThreshold = 50
	cancelThreshold    = 80

	manyAttendees    = 10
	veryLongDuration = 120 * time.Minute
)

// ScoreCancellations ranks meetings by how safely they could be cancelled.
// Cancelled meetings are skipped; only meetings at or above the candidate
// threshold are returned, highest score first. Ties keep input order.
func ScoreCancellations(meetings []*entities.Meeting) []entities.CancellationCandidate {
	candidates := make([]entities.CancellationCandidate, 0)

	for _, m := range meetings {
		if m.IsCancelled() {
			continue
		}

		score := 0
		var reasons []string

		if !m.HasAgenda {
			score += scoreNoAgenda
			reasons = append(reasons, "No agenda set")
		}
		if len(m.Attendees) > manyAttendees {
			score += scoreManyAttendees
			reasons = append(reasons, "Too many attendees")
		}
		if unresolved := len(m.UnresolvedFlags()); unresolved > 0 {
			score += scorePerFlag * unresolved
			reasons = append(reasons, "Has efficiency flags")
		}
		if m.Duration() > veryLongDuration {
			score += scoreVeryLong
			reasons = append(reasons, "Very long duration")
		}
		if m.IsRecurring {
			score += scoreRecurring
			reasons = append(reasons, "Recurring meeting (review frequency)")
		}

		if score < candidateThreshold {
			continue
		}

		recommendation := entities.RecommendationReview
		if score >= cancelThreshold {
			recommendation = entities.RecommendationCancel
		}

		candidates = append(candidates, entities.CancellationCandidate{
			Meeting:          m,
			Score:            score,
			Reasons:          reasons,
			EstimatedSavings: m.DurationHours(),
			Recommendation:   recommendation,
		})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Score > candidates[j].Score
	})

	return candidates
}
