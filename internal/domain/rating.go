package domain

import "strings"

// Rating is a feedback score constrained to 1..5.
type Rating int

const ratingPrefix = "rating_"

// ParseRating parses a raw feedback token of the form "rating_<1..5>".
// Any other encoding (missing prefix, out-of-range or non-numeric suffix)
// is rejected; the caller ignores the message for feedback tallying.
func ParseRating(feedback string) (Rating, bool) {
	feedback = strings.TrimSpace(feedback)
	if !strings.HasPrefix(feedback, ratingPrefix) {
		return 0, false
	}
	switch feedback[len(ratingPrefix):] {
	case "1":
		return 1, true
	case "2":
		return 2, true
	case "3":
		return 3, true
	case "4":
		return 4, true
	case "5":
		return 5, true
	default:
		return 0, false
	}
}
