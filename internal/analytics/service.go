package analytics

import (
	"context"
	"fmt"
	"time"
)

// Overview is the front-page aggregate: conversation shape, question
// tally, spend and feedback in one pass.
type Overview struct {
	Stats    ClassificationStats `json:"stats"`
	Tally    QuestionTally       `json:"question_stats"`
	Costs    CostSummary         `json:"costs"`
	Feedback FeedbackSummary     `json:"feedback"`
	Docs     DocUsageCounts      `json:"docs"`
}

// Service provides the aggregation business logic over a conversation
// snapshot.
type Service struct {
	provider SnapshotProvider
	users    UserDirectory
	logger   Logger
	metrics  PassRecorder
	now      func() time.Time
}

// NewService creates a new analytics service.
func NewService(provider SnapshotProvider, users UserDirectory, logger Logger, metrics PassRecorder) *Service {
	return &Service{
		provider: provider,
		users:    users,
		logger:   logger,
		metrics:  metrics,
		now:      time.Now,
	}
}

// filtered fetches the snapshot and applies the criteria.
func (s *Service) filtered(ctx context.Context, criteria Criteria) (FilterResult, error) {
	conversations, err := s.provider.Snapshot(ctx)
	if err != nil {
		s.logger.Error("snapshot fetch failed: " + err.Error())
		return FilterResult{}, fmt.Errorf("fetching snapshot: %w", err)
	}
	return FilterConversations(conversations, criteria, s.now()), nil
}

// GetOverview computes the front-page aggregates and records the pass
// with the metrics exporter.
func (s *Service) GetOverview(ctx context.Context, criteria Criteria) (Overview, error) {
	s.logger.Debug("computing overview")
	start := s.now()

	result, err := s.filtered(ctx, criteria)
	if err != nil {
		return Overview{}, err
	}

	overview := Overview{
		Stats:    ClassifyConversations(result.Conversations).Stats,
		Tally:    result.Tally,
		Costs:    AggregateCosts(result.Conversations),
		Feedback: AggregateFeedback(result.Conversations, criteria),
		Docs:     CountDocQuestions(result.Conversations),
	}

	s.metrics.RecordPass(ctx, PassMetrics{
		Conversations: overview.Stats.TotalConversations,
		Questions:     overview.Tally.TotalQuestions,
		DisplayedCost: overview.Costs.TotalCost,
		Tokens:        overview.Costs.TotalTokens,
		Duration:      s.now().Sub(start),
	})
	return overview, nil
}

// ListConversations returns the filtered conversations with the question
// tally.
func (s *Service) ListConversations(ctx context.Context, criteria Criteria) (FilterResult, error) {
	s.logger.Debug("listing conversations")
	return s.filtered(ctx, criteria)
}

// GetCosts returns the spend and token summary.
func (s *Service) GetCosts(ctx context.Context, criteria Criteria) (CostSummary, error) {
	s.logger.Debug("aggregating costs")
	result, err := s.filtered(ctx, criteria)
	if err != nil {
		return CostSummary{}, err
	}
	return AggregateCosts(result.Conversations), nil
}

// GetModelStats returns the per-model usage breakdown.
func (s *Service) GetModelStats(ctx context.Context, criteria Criteria) (ModelReport, error) {
	s.logger.Debug("computing model stats")
	result, err := s.filtered(ctx, criteria)
	if err != nil {
		return ModelReport{}, err
	}
	return ModelStats(result.Conversations), nil
}

// GetCostTimeline returns the per-day, per-model cost series.
func (s *Service) GetCostTimeline(ctx context.Context, criteria Criteria) (TimelineReport, error) {
	s.logger.Debug("computing cost timeline")
	result, err := s.filtered(ctx, criteria)
	if err != nil {
		return TimelineReport{}, err
	}
	return CostTimeline(result.Conversations), nil
}

// GetDurations returns the duration report for multi-question
// conversations.
func (s *Service) GetDurations(ctx context.Context, criteria Criteria) (DurationReport, error) {
	s.logger.Debug("computing durations")
	result, err := s.filtered(ctx, criteria)
	if err != nil {
		return DurationReport{}, err
	}
	return ConversationDurations(result.Conversations), nil
}

// GetLongConversations returns the pattern analysis for long
// conversations.
func (s *Service) GetLongConversations(ctx context.Context, criteria Criteria) (LongReport, error) {
	s.logger.Debug("analyzing long conversations")
	result, err := s.filtered(ctx, criteria)
	if err != nil {
		return LongReport{}, err
	}
	return AnalyzeLongConversations(result.Conversations), nil
}

// GetFeedback returns the rating distribution.
func (s *Service) GetFeedback(ctx context.Context, criteria Criteria) (FeedbackSummary, error) {
	s.logger.Debug("aggregating feedback")
	result, err := s.filtered(ctx, criteria)
	if err != nil {
		return FeedbackSummary{}, err
	}
	return AggregateFeedback(result.Conversations, criteria), nil
}

// GetDocUsage returns the with/without-documents question breakdown.
func (s *Service) GetDocUsage(ctx context.Context, criteria Criteria) (DocUsageDetail, error) {
	s.logger.Debug("computing document usage")
	result, err := s.filtered(ctx, criteria)
	if err != nil {
		return DocUsageDetail{}, err
	}
	return DetailedDocQuestions(result.Conversations), nil
}

// GetConnections returns per-account login activity.
func (s *Service) GetConnections(ctx context.Context) (ConnectionReport, error) {
	s.logger.Debug("summarizing connections")
	accounts, err := s.users.Users(ctx)
	if err != nil {
		s.logger.Error("user fetch failed: " + err.Error())
		return ConnectionReport{}, fmt.Errorf("fetching users: %w", err)
	}
	return SummarizeConnections(accounts), nil
}

// GetEmailGroups returns conversations grouped by owner email.
func (s *Service) GetEmailGroups(ctx context.Context, criteria Criteria) ([]EmailGroup, error) {
	s.logger.Debug("grouping by email")
	result, err := s.filtered(ctx, criteria)
	if err != nil {
		return nil, err
	}
	return GroupByEmail(result.Conversations), nil
}
