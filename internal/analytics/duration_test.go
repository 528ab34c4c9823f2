package analytics

import (
	"math"
	"testing"

	"github.com/hermine-app/insights/internal/domain"
)

func assertFloatNear(t *testing.T, got, want float64, label string) {
	t.Helper()
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("%s: expected %f, got %f", label, want, got)
	}
}

func qm(text string, ts float64, model domain.Model, docs ...string) domain.Message {
	return domain.Message{Question: text, Timestamp: ts, Model: model, Docs: docs}
}

func TestConversationDurations(t *testing.T) {
	base := 1_700_000_000.0
	conversations := []domain.Conversation{
		conv("thirty", q("q1", base), q("q2", base+600), q("q3", base+1800)),
		conv("ten", q("q1", base), q("q2", base+600)),
		conv("single", q("q1", base)),
		conv("empty"),
	}

	report := ConversationDurations(conversations)
	if len(report.Conversations) != 2 {
		t.Fatalf("expected 2 measurable conversations, got %d", len(report.Conversations))
	}

	first := report.Conversations[0]
	if first.ID != "thirty" {
		t.Fatalf("unexpected first conversation %s", first.ID)
	}
	assertFloatNear(t, first.DurationSeconds, 1800, "duration seconds")
	assertFloatNear(t, first.DurationMinutes, 30, "duration minutes")
	assertFloatNear(t, first.DurationHours, 0.5, "duration hours")
	assertFloatNear(t, first.FirstTimestamp, base, "first timestamp")
	assertFloatNear(t, first.LastTimestamp, base+1800, "last timestamp")

	assertFloatNear(t, report.Summary.AvgMinutes, 20, "avg minutes")
	assertFloatNear(t, report.Summary.MaxMinutes, 30, "max minutes")
	assertFloatNear(t, report.Summary.MinMinutes, 10, "min minutes")
	if report.Summary.Count != 2 {
		t.Errorf("expected count 2, got %d", report.Summary.Count)
	}
	if report.Summary.AvgReadable != "20m" {
		t.Errorf("expected readable 20m, got %q", report.Summary.AvgReadable)
	}
}

func TestConversationDurations_ReadableHours(t *testing.T) {
	base := 1_700_000_000.0
	conversations := []domain.Conversation{
		conv("long", q("q1", base), q("q2", base+90*60)),
	}

	report := ConversationDurations(conversations)
	if report.Summary.AvgReadable != "1h 30m" {
		t.Errorf("expected 1h 30m, got %q", report.Summary.AvgReadable)
	}
}

func TestConversationDurations_DiscardsUnusableTimestamps(t *testing.T) {
	base := 1_700_000_000.0
	conversations := []domain.Conversation{
		// Only one usable timestamp: cannot measure a duration.
		conv("partial", q("q1", 0), q("q2", base)),
		// Unsorted input still yields a positive duration.
		conv("unsorted", q("q1", base+600), q("q2", base)),
	}

	report := ConversationDurations(conversations)
	if len(report.Conversations) != 1 {
		t.Fatalf("expected 1 measurable conversation, got %d", len(report.Conversations))
	}
	assertFloatNear(t, report.Conversations[0].DurationMinutes, 10, "unsorted duration")
}

func TestConversationDurations_Empty(t *testing.T) {
	report := ConversationDurations(nil)
	if len(report.Conversations) != 0 || report.Summary.Count != 0 {
		t.Errorf("expected empty report, got %+v", report)
	}
}

func TestAnalyzeLongConversations_Intervals(t *testing.T) {
	base := 1_700_000_000.0
	conversations := []domain.Conversation{
		conv("c", q("q1", base), q("q2", base+600), q("q3", base+1800)),
	}

	report := AnalyzeLongConversations(conversations)
	if len(report.Conversations) != 1 {
		t.Fatalf("expected 1 long conversation, got %d", len(report.Conversations))
	}

	long := report.Conversations[0]
	assertFloatNear(t, long.DurationMinutes, 30, "duration minutes")
	if len(long.IntervalsMinutes) != 2 {
		t.Fatalf("expected 2 intervals, got %v", long.IntervalsMinutes)
	}
	assertFloatNear(t, long.IntervalsMinutes[0], 10, "first interval")
	assertFloatNear(t, long.IntervalsMinutes[1], 20, "second interval")
	assertFloatNear(t, long.AvgIntervalMinutes, 15, "avg interval")
	assertFloatNear(t, long.MaxIntervalMinutes, 20, "max interval")
	assertFloatNear(t, long.MinIntervalMinutes, 10, "min interval")
	if len(long.Questions) != 3 {
		t.Errorf("expected 3 question records, got %d", len(long.Questions))
	}
}

func TestAnalyzeLongConversations_ModelsAndDocs(t *testing.T) {
	base := 1_700_000_000.0
	conversations := []domain.Conversation{
		{ID: "c", Messages: []domain.Message{
			qm("q1", base, "gpt-4", "doc1"),
			qm("q2", base+60, "claude"),
			qm("q3", base+120, "gpt-4", "doc2"),
		}},
	}

	report := AnalyzeLongConversations(conversations)
	long := report.Conversations[0]

	if long.DocsUsageCount != 2 {
		t.Errorf("expected 2 docs questions, got %d", long.DocsUsageCount)
	}
	assertFloatNear(t, long.DocsUsagePercent, 200.0/3.0, "docs usage percent")

	if len(long.ModelsUsed) != 2 || long.ModelsUsed[0] != "gpt-4" || long.ModelsUsed[1] != "claude" {
		t.Errorf("expected models in first-seen order, got %v", long.ModelsUsed)
	}
	if long.ModelSwitches != 1 {
		t.Errorf("expected 1 model switch, got %d", long.ModelSwitches)
	}
}

func TestAnalyzeLongConversations_Patterns(t *testing.T) {
	base := 1_700_000_000.0
	doc := []string{"d"}

	tests := []struct {
		name string
		msgs []domain.Message
		want string
	}{
		{"pure analysis", []domain.Message{
			qm("q1", base, "m", doc...), qm("q2", base+60, "m", doc...), qm("q3", base+120, "m", doc...),
		}, PatternPureAnalysis},
		{"pure search", []domain.Message{
			qm("q1", base, "m"), qm("q2", base+60, "m"), qm("q3", base+120, "m"),
		}, PatternPureSearch},
		{"analysis to search", []domain.Message{
			qm("q1", base, "m", doc...), qm("q2", base+60, "m", doc...), qm("q3", base+120, "m"),
		}, PatternAnalysisToSearch},
		{"search to analysis", []domain.Message{
			qm("q1", base, "m"), qm("q2", base+60, "m", doc...), qm("q3", base+120, "m", doc...),
		}, PatternSearchToAnalysis},
		{"mixed", []domain.Message{
			qm("q1", base, "m"), qm("q2", base+60, "m", doc...), qm("q3", base+120, "m"),
		}, PatternMixed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report := AnalyzeLongConversations([]domain.Conversation{{ID: "c", Messages: tt.msgs}})
			if got := report.Conversations[0].Pattern; got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestAnalyzeLongConversations_SummaryAndOrder(t *testing.T) {
	base := 1_700_000_000.0
	conversations := []domain.Conversation{
		conv("short", q("q1", base), q("q2", base+60), q("q3", base+120)),
		conv("longest", q("q1", base), q("q2", base+60), q("q3", base+120), q("q4", base+180)),
		conv("ignored", q("q1", base), q("q2", base+60)),
	}

	report := AnalyzeLongConversations(conversations)
	if report.Summary.TotalCount != 2 {
		t.Fatalf("expected 2 long conversations, got %d", report.Summary.TotalCount)
	}
	if report.Conversations[0].ID != "longest" {
		t.Errorf("expected longest conversation first, got %s", report.Conversations[0].ID)
	}
	if report.Summary.MaxLength != 4 {
		t.Errorf("expected max length 4, got %d", report.Summary.MaxLength)
	}
	assertFloatNear(t, report.Summary.AvgLength, 3.5, "avg length")

	if len(report.Summary.MostActiveModels) != 1 {
		t.Fatalf("expected 1 ranked model, got %v", report.Summary.MostActiveModels)
	}
	top := report.Summary.MostActiveModels[0]
	if top.Model != "gpt-4" || top.Count != 2 {
		t.Errorf("unexpected top model: %+v", top)
	}
}

func TestAnalyzeLongConversations_TopModelsTieBreak(t *testing.T) {
	base := 1_700_000_000.0
	mk := func(id string, models ...domain.Model) domain.Conversation {
		var msgs []domain.Message
		for i, m := range models {
			msgs = append(msgs, qm("q", base+float64(i*60), m))
		}
		// Pad to reach the long-conversation threshold.
		for len(msgs) < 3 {
			msgs = append(msgs, qm("pad", base+float64(len(msgs)*60), models[0]))
		}
		return domain.Conversation{ID: id, Messages: msgs}
	}

	conversations := []domain.Conversation{
		mk("a", "alpha", "beta", "gamma"),
		mk("b", "beta", "delta", "alpha"),
		mk("c", "gamma", "delta", "epsilon"),
	}

	top := AnalyzeLongConversations(conversations).Summary.MostActiveModels
	if len(top) != 3 {
		t.Fatalf("expected 3 ranked models, got %d", len(top))
	}
	// All tied at 2: first-encounter order wins.
	want := []domain.Model{"alpha", "beta", "gamma"}
	for i, model := range want {
		if top[i].Model != model || top[i].Count != 2 {
			t.Errorf("rank %d: expected %s(2), got %s(%d)", i, model, top[i].Model, top[i].Count)
		}
	}
}

func TestAnalyzeLongConversations_Empty(t *testing.T) {
	report := AnalyzeLongConversations(nil)
	if len(report.Conversations) != 0 || report.Summary.TotalCount != 0 {
		t.Errorf("expected empty report, got %+v", report)
	}
}
