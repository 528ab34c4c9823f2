package analytics

import (
	"testing"

	"github.com/hermine-app/insights/internal/domain"
)

func conv(id string, questions ...domain.Message) domain.Conversation {
	return domain.Conversation{ID: id, Messages: questions}
}

func q(text string, ts float64) domain.Message {
	return domain.Message{Question: text, Timestamp: ts, Model: "gpt-4"}
}

func TestClassifyConversations_Partition(t *testing.T) {
	conversations := []domain.Conversation{
		conv("empty", domain.Message{Response: "only an answer"}),
		conv("single", q("q1", 100)),
		conv("double", q("q1", 100), q("q2", 200)),
		conv("long", q("q1", 100), q("q2", 200), q("q3", 300)),
	}

	result := ClassifyConversations(conversations)
	stats := result.Stats

	if stats.TotalConversations != 4 {
		t.Errorf("expected 4 conversations, got %d", stats.TotalConversations)
	}
	if stats.EmptyConversations != 1 || stats.SingleQuestion != 1 || stats.MultiQuestions != 2 {
		t.Errorf("unexpected buckets: %+v", stats)
	}
	if stats.LongConversations != 1 {
		t.Errorf("expected 1 long conversation, got %d", stats.LongConversations)
	}

	// Exactly one bucket claims each conversation.
	if stats.SingleQuestion+stats.MultiQuestions+stats.EmptyConversations != stats.TotalConversations {
		t.Error("buckets do not partition the conversation set")
	}
	// Long is a subset of multi.
	if len(result.Long) > len(result.Multi) {
		t.Error("long bucket larger than multi bucket")
	}
	if result.Long[0].ID != "long" {
		t.Errorf("expected long conversation in long bucket, got %s", result.Long[0].ID)
	}
}

func TestClassifyConversations_Stats(t *testing.T) {
	conversations := []domain.Conversation{
		conv("empty"),
		conv("single", q("q1", 100)),
		conv("long", q("q1", 100), q("q2", 200), q("q3", 300)),
	}

	stats := ClassifyConversations(conversations).Stats

	if stats.TotalMessages != 4 {
		t.Errorf("expected 4 valid messages, got %d", stats.TotalMessages)
	}
	// Average divides by all conversations, empties included.
	if want := 4.0 / 3.0; stats.AvgMessagesPerConv != want {
		t.Errorf("expected avg %f, got %f", want, stats.AvgMessagesPerConv)
	}
	// Empty conversation is excluded from min/max.
	if stats.MaxMessages != 3 || stats.MinMessages != 1 {
		t.Errorf("expected max 3 min 1, got max %d min %d", stats.MaxMessages, stats.MinMessages)
	}
}

func TestClassifyConversations_MultiRecords(t *testing.T) {
	msg := q("first", 100)
	msg.Docs = []string{"d1", "d2"}
	conversations := []domain.Conversation{
		conv("c", msg, q("middle", 200), q("last", 300)),
	}

	result := ClassifyConversations(conversations)
	if len(result.Multi) != 1 {
		t.Fatalf("expected 1 multi conversation, got %d", len(result.Multi))
	}
	multi := result.Multi[0]
	if multi.FirstQuestion != "first" || multi.LastQuestion != "last" {
		t.Errorf("unexpected first/last: %q / %q", multi.FirstQuestion, multi.LastQuestion)
	}
	if len(multi.Questions) != 3 {
		t.Fatalf("expected 3 question records, got %d", len(multi.Questions))
	}
	if !multi.Questions[0].HasDocs || multi.Questions[0].DocsCount != 2 {
		t.Errorf("expected docs on first record: %+v", multi.Questions[0])
	}
	if multi.Questions[1].HasDocs {
		t.Error("middle record should have no docs")
	}
}

func TestClassifyConversations_Empty(t *testing.T) {
	stats := ClassifyConversations(nil).Stats
	if stats.TotalConversations != 0 || stats.AvgMessagesPerConv != 0 {
		t.Errorf("expected zero stats for empty input, got %+v", stats)
	}
	if stats.MinMessages != 0 || stats.MaxMessages != 0 {
		t.Errorf("expected zero min/max, got %+v", stats)
	}
}

func TestClassifyConversations_AllEmptyMinIsZero(t *testing.T) {
	stats := ClassifyConversations([]domain.Conversation{conv("a"), conv("b")}).Stats
	if stats.MinMessages != 0 {
		t.Errorf("expected min 0 when no conversation has valid messages, got %d", stats.MinMessages)
	}
	if stats.EmptyConversations != 2 {
		t.Errorf("expected 2 empty conversations, got %d", stats.EmptyConversations)
	}
}
