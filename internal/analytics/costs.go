package analytics

import (
	"sort"
	"time"

	"github.com/hermine-app/insights/internal/domain"
)

// CostSummary aggregates spend and token usage across all messages.
// TotalCost is the displayed figure and excludes the free-tier model;
// per-model breakdowns keep every model's real numbers.
type CostSummary struct {
	TotalCost     float64                  `json:"total_cost"`
	TotalTokens   int64                    `json:"total_tokens"`
	ByModelCost   map[domain.Model]float64 `json:"cost_by_model"`
	ByModelTokens map[domain.Model]int64   `json:"tokens_by_model"`
}

// AggregateCosts sums price and tokens over every message, questions or
// not. Missing cost metadata contributes zero.
func AggregateCosts(conversations []domain.Conversation) CostSummary {
	summary := CostSummary{
		ByModelCost:   make(map[domain.Model]float64),
		ByModelTokens: make(map[domain.Model]int64),
	}

	for _, conv := range conversations {
		for _, msg := range conv.Messages {
			model := msg.ModelID()
			price := msg.Metadata.Cost.Price
			tokens := msg.Metadata.Cost.Tokens

			summary.ByModelCost[model] += price
			summary.ByModelTokens[model] += tokens
			summary.TotalTokens += tokens
			if model != domain.FreeTierModel {
				summary.TotalCost += price
			}
		}
	}
	return summary
}

// ModelStat is the per-model usage breakdown.
type ModelStat struct {
	Model             domain.Model `json:"model"`
	Count             int          `json:"count"`
	TotalCost         float64      `json:"total_cost"`
	AvgCost           float64      `json:"avg_cost"`
	TotalTokens       int64        `json:"total_tokens"`
	AvgTokens         float64      `json:"avg_tokens"`
	AvgResponseLength int          `json:"avg_response_length"`
	WithDocs          int          `json:"with_docs"`
	WithCitations     int          `json:"with_citations"`
}

// ModelReport lists per-model stats sorted by message count descending,
// plus the displayed grand total.
type ModelReport struct {
	Models    []ModelStat `json:"models"`
	TotalCost float64     `json:"total_cost"`
}

// ModelStats breaks usage down per model over every message. The grand
// total excludes the free-tier model; each model's own row does not.
func ModelStats(conversations []domain.Conversation) ModelReport {
	type accumulator struct {
		count          int
		cost           float64
		tokens         int64
		responseLength int
		withDocs       int
		withCitations  int
	}
	acc := make(map[domain.Model]*accumulator)
	var order []domain.Model

	for _, conv := range conversations {
		for _, msg := range conv.Messages {
			model := msg.ModelID()
			a, ok := acc[model]
			if !ok {
				a = &accumulator{}
				acc[model] = a
				order = append(order, model)
			}
			a.count++
			a.cost += msg.Metadata.Cost.Price
			a.tokens += msg.Metadata.Cost.Tokens
			a.responseLength += len(msg.Response)
			if msg.HasDocs() {
				a.withDocs++
			}
			if len(msg.Metadata.Citations) > 0 {
				a.withCitations++
			}
		}
	}

	report := ModelReport{Models: make([]ModelStat, 0, len(order))}
	for _, model := range order {
		a := acc[model]
		report.Models = append(report.Models, ModelStat{
			Model:             model,
			Count:             a.count,
			TotalCost:         a.cost,
			AvgCost:           a.cost / float64(a.count),
			TotalTokens:       a.tokens,
			AvgTokens:         float64(a.tokens) / float64(a.count),
			AvgResponseLength: a.responseLength / a.count,
			WithDocs:          a.withDocs,
			WithCitations:     a.withCitations,
		})
		if model != domain.FreeTierModel {
			report.TotalCost += a.cost
		}
	}

	sort.SliceStable(report.Models, func(i, j int) bool {
		return report.Models[i].Count > report.Models[j].Count
	})
	return report
}

// TimelineReport holds per-day, per-model cost series. Days use the ISO
// yyyy-mm-dd form in UTC. The free-tier model appears with zero cost so
// the series stays complete without inflating spend.
type TimelineReport struct {
	Days        []string                            `json:"days"`
	ByDayModel  map[string]map[domain.Model]float64 `json:"cost_by_day_model"`
	DailyTotals map[string]float64                  `json:"daily_totals"`
}

// CostTimeline buckets message cost by calendar day and model. Messages
// without a usable timestamp are skipped.
func CostTimeline(conversations []domain.Conversation) TimelineReport {
	report := TimelineReport{
		ByDayModel:  make(map[string]map[domain.Model]float64),
		DailyTotals: make(map[string]float64),
	}

	for _, conv := range conversations {
		for _, msg := range conv.Messages {
			if msg.Timestamp <= 0 {
				continue
			}
			day := time.Unix(int64(msg.Timestamp), 0).UTC().Format("2006-01-02")
			model := msg.ModelID()
			price := msg.Metadata.Cost.Price
			if model == domain.FreeTierModel {
				price = 0
			}

			if report.ByDayModel[day] == nil {
				report.ByDayModel[day] = make(map[domain.Model]float64)
			}
			report.ByDayModel[day][model] += price
			report.DailyTotals[day] += price
		}
	}

	report.Days = make([]string, 0, len(report.ByDayModel))
	for day := range report.ByDayModel {
		report.Days = append(report.Days, day)
	}
	sort.Strings(report.Days)
	return report
}
