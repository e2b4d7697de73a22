package meeting

import (
	"strings"

	"github.com/meetwiselabs/meetwise/internal/domain/entities"
)

// titleSimilarity estimates how alike two meeting titles are, in [0, 1].
// Containment short-circuits to 0.9; otherwise it is the share of common
// significant words (longer than 3 characters) over the union of all words.
func titleSimilarity(a, b string) float64 {
	t1 := strings.ToLower(a)
	t2 := strings.ToLower(b)

	if strings.Contains(t1, t2) || strings.Contains(t2, t1) {
		return 0.9
	}

	words1 := strings.Fields(t1)
	words2 := strings.Fields(t2)

	set2 := make(map[string]struct{}, len(words2))
	for _, w := range words2 {
		set2[w] = struct{}{}
	}

	common := 0
	for _, w := range words1 {
		if len(w) > 3 {
			if _, ok := set2[w]; ok {
				common++
			}
		}
	}

	union := make(map[string]struct{}, len(words1)+len(words2))
	for _, w := range words1 {
		union[w] = struct{}{}
	}
	for _, w := range words2 {
		union[w] = struct{}{}
	}
	if len(union) == 0 {
		return 0
	}

	return float64(common) / float64(len(union))
}

// attendeeOverlap is the Jaccard similarity of the two attendee email sets
func attendeeOverlap(a, b []entities.Attendee) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}

	set1 := make(map[string]struct{}, len(a))
	for _, at := range a {
		set1[at.Email] = struct{}{}
	}

	common := 0
	union := make(map[string]struct{}, len(a)+len(b))
	for email := range set1 {
		union[email] = struct{}{}
	}
	for _, at := range b {
		if _, ok := set1[at.Email]; ok {
			common++
		}
		union[at.Email] = struct{}{}
	}

	return float64(common) / float64(len(union))
}

// hasAttendee reports whether the meeting's attendee list contains the email
func hasAttendee(m *entities.Meeting, email string) bool {
	for _, a := range m.Attendees {
		if a.Email == email {
			return true
		}
	}
	return false
}
