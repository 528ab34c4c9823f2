package analytics

import (
	"sort"

	"github.com/hermine-app/insights/internal/domain"
	"github.com/hermine-app/insights/internal/util"
)

// Interaction pattern labels derived from document usage across a long
// conversation, comparing the first and last question's docs flag.
const (
	PatternPureAnalysis     = "pure analysis (documents only)"
	PatternPureSearch       = "pure search (no documents)"
	PatternAnalysisToSearch = "analysis → search"
	PatternSearchToAnalysis = "search → analysis"
	PatternMixed            = "mixed analysis"
)

// DurationStat holds elapsed-time metrics for one multi-question
// conversation.
type DurationStat struct {
	ID              string  `json:"id"`
	MessageCount    int     `json:"message_count"`
	DurationSeconds float64 `json:"duration_seconds"`
	DurationMinutes float64 `json:"duration_minutes"`
	DurationHours   float64 `json:"duration_hours"`
	FirstTimestamp  float64 `json:"first_timestamp"`
	LastTimestamp   float64 `json:"last_timestamp"`
}

// DurationSummary aggregates duration stats across conversations.
type DurationSummary struct {
	Count       int     `json:"count"`
	AvgMinutes  float64 `json:"avg_duration_minutes"`
	MaxMinutes  float64 `json:"max_duration_minutes"`
	MinMinutes  float64 `json:"min_duration_minutes"`
	AvgReadable string  `json:"avg_duration_readable"`
}

// DurationReport pairs per-conversation stats with their summary.
type DurationReport struct {
	Conversations []DurationStat  `json:"conversations"`
	Summary       DurationSummary `json:"summary"`
}

// usableTimestamps collects the positive timestamps of valid messages,
// sorted ascending. Non-positive timestamps are unusable and discarded.
func usableTimestamps(valid []domain.Message) []float64 {
	var ts []float64
	for _, msg := range valid {
		if msg.Timestamp > 0 {
			ts = append(ts, msg.Timestamp)
		}
	}
	sort.Float64s(ts)
	return ts
}

// ConversationDurations computes elapsed time between the first and last
// question of every conversation with at least two valid messages and two
// usable timestamps.
func ConversationDurations(conversations []domain.Conversation) DurationReport {
	var report DurationReport

	for _, conv := range conversations {
		valid := conv.ValidMessages()
		if len(valid) < 2 {
			continue
		}
		ts := usableTimestamps(valid)
		if len(ts) < 2 {
			continue
		}

		seconds := ts[len(ts)-1] - ts[0]
		minutes := seconds / 60
		report.Conversations = append(report.Conversations, DurationStat{
			ID:              conv.ID,
			MessageCount:    len(valid),
			DurationSeconds: seconds,
			DurationMinutes: minutes,
			DurationHours:   minutes / 60,
			FirstTimestamp:  ts[0],
			LastTimestamp:   ts[len(ts)-1],
		})
	}

	if len(report.Conversations) == 0 {
		return report
	}

	summary := DurationSummary{
		Count:      len(report.Conversations),
		MaxMinutes: report.Conversations[0].DurationMinutes,
		MinMinutes: report.Conversations[0].DurationMinutes,
	}
	var total float64
	for _, stat := range report.Conversations {
		total += stat.DurationMinutes
		if stat.DurationMinutes > summary.MaxMinutes {
			summary.MaxMinutes = stat.DurationMinutes
		}
		if stat.DurationMinutes < summary.MinMinutes {
			summary.MinMinutes = stat.DurationMinutes
		}
	}
	summary.AvgMinutes = total / float64(summary.Count)
	summary.AvgReadable = util.FormatMinutes(summary.AvgMinutes)
	report.Summary = summary
	return report
}

// LongConversation is the pattern analysis for a conversation with three
// or more valid questions.
type LongConversation struct {
	ID                 string           `json:"id"`
	MessageCount       int              `json:"message_count"`
	DurationMinutes    float64          `json:"duration_minutes"`
	IntervalsMinutes   []float64        `json:"intervals_minutes"`
	AvgIntervalMinutes float64          `json:"avg_interval_minutes"`
	MaxIntervalMinutes float64          `json:"max_interval_minutes"`
	MinIntervalMinutes float64          `json:"min_interval_minutes"`
	DocsUsageCount     int              `json:"docs_usage_count"`
	DocsUsagePercent   float64          `json:"docs_usage_percentage"`
	ModelsUsed         []domain.Model   `json:"models_used"`
	ModelSwitches      int              `json:"model_switches"`
	Questions          []QuestionRecord `json:"questions"`
	Pattern            string           `json:"conversation_pattern"`
}

// ModelCount pairs a model with its appearance count.
type ModelCount struct {
	Model domain.Model `json:"model"`
	Count int          `json:"count"`
}

// LongSummary aggregates across all long conversations.
type LongSummary struct {
	TotalCount       int          `json:"total_count"`
	AvgLength        float64      `json:"avg_length"`
	MaxLength        int          `json:"max_length"`
	AvgDuration      float64      `json:"avg_duration"`
	AvgDocsUsage     float64      `json:"avg_docs_usage"`
	MostActiveModels []ModelCount `json:"most_active_models"`
}

// LongReport holds the long-conversation analyses, sorted by length
// descending, with their summary.
type LongReport struct {
	Conversations []LongConversation `json:"conversations"`
	Summary       LongSummary        `json:"summary"`
}

// AnalyzeLongConversations inspects conversations with three or more
// valid questions: inter-question intervals, document usage, model
// switching and the overall interaction pattern.
func AnalyzeLongConversations(conversations []domain.Conversation) LongReport {
	var report LongReport

	for _, conv := range conversations {
		valid := conv.ValidMessages()
		if len(valid) < 3 {
			continue
		}
		ts := usableTimestamps(valid)

		var intervals []float64
		for i := 1; i < len(ts); i++ {
			intervals = append(intervals, (ts[i]-ts[i-1])/60)
		}

		docsCount := 0
		for _, msg := range valid {
			if msg.HasDocs() {
				docsCount++
			}
		}

		var models []domain.Model
		seen := make(map[domain.Model]bool)
		for _, msg := range valid {
			model := msg.ModelID()
			if !seen[model] {
				seen[model] = true
				models = append(models, model)
			}
		}

		long := LongConversation{
			ID:               conv.ID,
			MessageCount:     len(valid),
			IntervalsMinutes: intervals,
			DocsUsageCount:   docsCount,
			DocsUsagePercent: float64(docsCount) / float64(len(valid)) * 100,
			ModelsUsed:       models,
			ModelSwitches:    len(models) - 1,
			Pattern:          conversationPattern(valid),
		}
		if len(ts) > 1 {
			long.DurationMinutes = (ts[len(ts)-1] - ts[0]) / 60
		}
		if len(intervals) > 0 {
			long.MaxIntervalMinutes = intervals[0]
			long.MinIntervalMinutes = intervals[0]
			var total float64
			for _, iv := range intervals {
				total += iv
				if iv > long.MaxIntervalMinutes {
					long.MaxIntervalMinutes = iv
				}
				if iv < long.MinIntervalMinutes {
					long.MinIntervalMinutes = iv
				}
			}
			long.AvgIntervalMinutes = total / float64(len(intervals))
		}
		for _, msg := range valid {
			long.Questions = append(long.Questions, questionRecord(msg))
		}

		report.Conversations = append(report.Conversations, long)
	}

	if len(report.Conversations) == 0 {
		return report
	}

	summary := LongSummary{TotalCount: len(report.Conversations)}
	var lengthTotal, durationTotal, docsTotal float64
	for _, c := range report.Conversations {
		lengthTotal += float64(c.MessageCount)
		durationTotal += c.DurationMinutes
		docsTotal += c.DocsUsagePercent
		if c.MessageCount > summary.MaxLength {
			summary.MaxLength = c.MessageCount
		}
	}
	summary.AvgLength = lengthTotal / float64(summary.TotalCount)
	summary.AvgDuration = durationTotal / float64(summary.TotalCount)
	summary.AvgDocsUsage = docsTotal / float64(summary.TotalCount)
	summary.MostActiveModels = mostUsedModels(report.Conversations, 3)
	report.Summary = summary

	sort.SliceStable(report.Conversations, func(i, j int) bool {
		return report.Conversations[i].MessageCount > report.Conversations[j].MessageCount
	})
	return report
}

// conversationPattern labels the document-usage shape of a conversation
// from the first and last question's docs flag.
func conversationPattern(valid []domain.Message) string {
	all, any := true, false
	for _, msg := range valid {
		if msg.HasDocs() {
			any = true
		} else {
			all = false
		}
	}

	switch {
	case all:
		return PatternPureAnalysis
	case !any:
		return PatternPureSearch
	case valid[0].HasDocs() && !valid[len(valid)-1].HasDocs():
		return PatternAnalysisToSearch
	case !valid[0].HasDocs() && valid[len(valid)-1].HasDocs():
		return PatternSearchToAnalysis
	default:
		return PatternMixed
	}
}

// mostUsedModels ranks models by appearance count across conversations,
// ties broken by first-encountered order.
func mostUsedModels(conversations []LongConversation, limit int) []ModelCount {
	counts := make(map[domain.Model]int)
	var order []domain.Model
	for _, conv := range conversations {
		for _, model := range conv.ModelsUsed {
			if counts[model] == 0 {
				order = append(order, model)
			}
			counts[model]++
		}
	}

	ranked := make([]ModelCount, 0, len(order))
	for _, model := range order {
		ranked = append(ranked, ModelCount{Model: model, Count: counts[model]})
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Count > ranked[j].Count })

	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}
