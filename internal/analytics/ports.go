package analytics

import (
	"context"
	"time"

	"github.com/hermine-app/insights/internal/domain"
)

// SnapshotProvider defines the interface for fetching the conversation
// snapshot the aggregation core runs over.
type SnapshotProvider interface {
	// Snapshot retrieves every conversation with its messages ordered
	// ascending by timestamp.
	Snapshot(ctx context.Context) ([]domain.Conversation, error)
}

// UserDirectory defines the interface for account lookups.
type UserDirectory interface {
	// Users retrieves every known user account.
	Users(ctx context.Context) ([]domain.UserAccount, error)
}

// Logger defines the interface for logging.
type Logger interface {
	Debug(msg string)
	Error(msg string)
}

// PassMetrics describes one aggregation pass for the metrics exporter.
type PassMetrics struct {
	Conversations int
	Questions     int
	DisplayedCost float64
	Tokens        int64
	Duration      time.Duration
}

// PassRecorder defines the interface for exporting aggregation metrics.
type PassRecorder interface {
	RecordPass(ctx context.Context, pass PassMetrics)
}
