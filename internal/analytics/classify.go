package analytics

import "github.com/hermine-app/insights/internal/domain"

// QuestionRecord is the per-question view carried by classification and
// long-conversation reports.
type QuestionRecord struct {
	Question  string       `json:"question"`
	Timestamp float64      `json:"timestamp"`
	Model     domain.Model `json:"modele"`
	HasDocs   bool         `json:"has_docs"`
	DocsCount int          `json:"docs_count"`
}

// EmptyConversation is a thread with no valid question.
type EmptyConversation struct {
	ID       string                      `json:"id"`
	Metadata domain.ConversationMetadata `json:"metadata"`
}

// SingleConversation is a thread with exactly one valid question.
type SingleConversation struct {
	ID       string                      `json:"id"`
	Metadata domain.ConversationMetadata `json:"metadata"`
	QuestionRecord
}

// MultiConversation is a thread with two or more valid questions.
type MultiConversation struct {
	ID            string                      `json:"id"`
	Metadata      domain.ConversationMetadata `json:"metadata"`
	MessageCount  int                         `json:"message_count"`
	Questions     []QuestionRecord            `json:"questions"`
	FirstQuestion string                      `json:"first_question"`
	LastQuestion  string                      `json:"last_question"`
}

// ClassificationStats summarizes the shape of a conversation set.
type ClassificationStats struct {
	TotalConversations int     `json:"total_conversations"`
	SingleQuestion     int     `json:"single_question"`
	MultiQuestions     int     `json:"multi_questions"`
	LongConversations  int     `json:"long_conversations"`
	EmptyConversations int     `json:"empty_conversations"`
	TotalMessages      int     `json:"total_messages"`
	AvgMessagesPerConv float64 `json:"avg_messages_per_conv"`
	MaxMessages        int     `json:"max_messages"`
	MinMessages        int     `json:"min_messages"`
}

// Classification partitions conversations into shape buckets. Every
// conversation lands in exactly one of Empty/Single/Multi; Long is the
// subset of Multi with three or more valid questions.
type Classification struct {
	Stats  ClassificationStats  `json:"stats"`
	Empty  []EmptyConversation  `json:"empty_conversations"`
	Single []SingleConversation `json:"single_question"`
	Multi  []MultiConversation  `json:"multi_questions"`
	Long   []MultiConversation  `json:"long_conversations"`
}

func questionRecord(msg domain.Message) QuestionRecord {
	return QuestionRecord{
		Question:  msg.Question,
		Timestamp: msg.Timestamp,
		Model:     msg.ModelID(),
		HasDocs:   msg.HasDocs(),
		DocsCount: len(msg.Docs),
	}
}

// ClassifyConversations buckets conversations by valid-question count and
// computes the summary statistics. Min/max only consider conversations
// with at least one valid message; an all-empty set reports min 0.
func ClassifyConversations(conversations []domain.Conversation) Classification {
	result := Classification{}
	result.Stats.TotalConversations = len(conversations)

	minSeen := false
	for _, conv := range conversations {
		valid := conv.ValidMessages()
		count := len(valid)
		result.Stats.TotalMessages += count

		switch {
		case count == 0:
			result.Stats.EmptyConversations++
			result.Empty = append(result.Empty, EmptyConversation{ID: conv.ID, Metadata: conv.Metadata})
		case count == 1:
			result.Stats.SingleQuestion++
			result.Single = append(result.Single, SingleConversation{
				ID:             conv.ID,
				Metadata:       conv.Metadata,
				QuestionRecord: questionRecord(valid[0]),
			})
		default:
			result.Stats.MultiQuestions++
			multi := MultiConversation{
				ID:            conv.ID,
				Metadata:      conv.Metadata,
				MessageCount:  count,
				FirstQuestion: valid[0].Question,
				LastQuestion:  valid[count-1].Question,
			}
			for _, msg := range valid {
				multi.Questions = append(multi.Questions, questionRecord(msg))
			}
			result.Multi = append(result.Multi, multi)

			if count >= 3 {
				result.Stats.LongConversations++
				result.Long = append(result.Long, multi)
			}
		}

		if count > 0 {
			if count > result.Stats.MaxMessages {
				result.Stats.MaxMessages = count
			}
			if !minSeen || count < result.Stats.MinMessages {
				result.Stats.MinMessages = count
				minSeen = true
			}
		}
	}

	if result.Stats.TotalConversations > 0 {
		result.Stats.AvgMessagesPerConv = float64(result.Stats.TotalMessages) / float64(result.Stats.TotalConversations)
	}
	return result
}
