package analytics

import "github.com/hermine-app/insights/internal/domain"

// DocUsageCounts splits valid questions by whether documents were
// attached.
type DocUsageCounts struct {
	WithDocs    int `json:"with_docs"`
	WithoutDocs int `json:"without_docs"`
	Total       int `json:"total"`
}

// CountDocQuestions tallies valid questions with and without attached
// documents.
func CountDocQuestions(conversations []domain.Conversation) DocUsageCounts {
	var counts DocUsageCounts
	for _, conv := range conversations {
		for _, msg := range conv.ValidMessages() {
			counts.Total++
			if msg.HasDocs() {
				counts.WithDocs++
			} else {
				counts.WithoutDocs++
			}
		}
	}
	return counts
}

// DocUsageDetail pairs the bucketed question lists with their counts.
type DocUsageDetail struct {
	Counts      DocUsageCounts   `json:"counts"`
	WithDocs    []QuestionRecord `json:"with_docs"`
	WithoutDocs []QuestionRecord `json:"without_docs"`
}

// DetailedDocQuestions buckets every valid question into with-docs and
// without-docs lists.
func DetailedDocQuestions(conversations []domain.Conversation) DocUsageDetail {
	var detail DocUsageDetail
	for _, conv := range conversations {
		for _, msg := range conv.ValidMessages() {
			record := questionRecord(msg)
			detail.Counts.Total++
			if record.HasDocs {
				detail.Counts.WithDocs++
				detail.WithDocs = append(detail.WithDocs, record)
			} else {
				detail.Counts.WithoutDocs++
				detail.WithoutDocs = append(detail.WithoutDocs, record)
			}
		}
	}
	return detail
}
