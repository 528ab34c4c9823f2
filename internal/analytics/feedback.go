package analytics

import "github.com/hermine-app/insights/internal/domain"

// FeedbackSummary is the distribution of user ratings.
type FeedbackSummary struct {
	Counts       map[domain.Rating]int `json:"counts"`
	Total        int                   `json:"total"`
	Mean         float64               `json:"mean"`
	Satisfaction float64               `json:"satisfaction"`
	HasFeedback  bool                  `json:"has_feedback"`
}

// AggregateFeedback tallies ratings over question-bearing messages that
// pass the given criteria. Satisfaction is the share of 4 and 5 star
// ratings. A total of zero leaves Mean and Satisfaction at zero.
func AggregateFeedback(conversations []domain.Conversation, criteria Criteria) FeedbackSummary {
	summary := FeedbackSummary{Counts: make(map[domain.Rating]int)}

	for _, conv := range conversations {
		for _, msg := range conv.Messages {
			if !msg.IsQuestion() {
				continue
			}
			rating, ok := domain.ParseRating(msg.Feedback)
			if !ok {
				continue
			}
			if !criteria.includeMessage(msg) {
				continue
			}
			summary.Counts[rating]++
			summary.Total++
		}
	}

	if summary.Total == 0 {
		return summary
	}

	summary.HasFeedback = true
	var weighted int
	for rating, count := range summary.Counts {
		weighted += int(rating) * count
	}
	summary.Mean = float64(weighted) / float64(summary.Total)
	summary.Satisfaction = float64(summary.Counts[4]+summary.Counts[5]) / float64(summary.Total) * 100
	return summary
}
