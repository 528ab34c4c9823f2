// Package mongo implements the snapshot provider and user directory
// ports on top of a MongoDB database.
package mongo

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/hermine-app/insights/internal/domain"
	"github.com/hermine-app/insights/internal/util"
)

const (
	conversationsCollection = "conversations"
	usersCollection         = "users"
)

// Store exposes conversations and user accounts stored in MongoDB.
type Store struct {
	client *mongo.Client
	db     *mongo.Database
}

// Connect opens and pings a MongoDB connection.
func Connect(ctx context.Context, uri, database string) (*Store, error) {
	client, err := mongo.Connect(options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connecting to mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("pinging mongo: %w", err)
	}
	return &Store{client: client, db: client.Database(database)}, nil
}

// Close disconnects the underlying client.
func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// Raw shapes tolerate the loose document structure the assistant writes:
// timestamps arrive as datetimes, floats or strings depending on the
// producer version.

type rawUserInfo struct {
	UserID    *int   `bson:"user_id"`
	UserEmail string `bson:"user_email"`
	Email     string `bson:"email"`
}

type rawCost struct {
	Price  any `bson:"prix"`
	Tokens any `bson:"tokens"`
}

type rawMessageMetadata struct {
	UserID    *int        `bson:"user_id"`
	Email     string      `bson:"email"`
	UserInfo  rawUserInfo `bson:"user_info"`
	Cost      rawCost     `bson:"cout"`
	Citations []string    `bson:"citations"`
}

type rawMessage struct {
	ID        string             `bson:"id"`
	Question  string             `bson:"question"`
	Response  string             `bson:"reponse"`
	Timestamp any                `bson:"timestamp"`
	Model     string             `bson:"modele"`
	Docs      []string           `bson:"docs"`
	Feedback  string             `bson:"feedback"`
	Metadata  rawMessageMetadata `bson:"metadata"`
}

type rawConversationMetadata struct {
	CreatedAt   any    `bson:"created_at"`
	LastUpdated any    `bson:"last_updated"`
	Email       string `bson:"email"`
}

type rawConversation struct {
	ID       string                  `bson:"_id"`
	Metadata rawConversationMetadata `bson:"metadata"`
	Messages []rawMessage            `bson:"messages"`
}

// coerceTimestamp turns whatever the producer stored into epoch seconds.
func coerceTimestamp(v any) float64 {
	if dt, ok := v.(bson.DateTime); ok {
		return float64(dt.Time().UnixMilli()) / 1000
	}
	return util.EpochSeconds(v)
}

func (r rawMessage) toDomain() domain.Message {
	return domain.Message{
		ID:        r.ID,
		Question:  r.Question,
		Response:  r.Response,
		Timestamp: coerceTimestamp(r.Timestamp),
		Model:     domain.Model(r.Model),
		Docs:      r.Docs,
		Feedback:  r.Feedback,
		Metadata: domain.MessageMetadata{
			UserID: r.Metadata.UserID,
			Email:  r.Metadata.Email,
			UserInfo: domain.UserInfo{
				UserID:    r.Metadata.UserInfo.UserID,
				UserEmail: r.Metadata.UserInfo.UserEmail,
				Email:     r.Metadata.UserInfo.Email,
			},
			Cost: domain.Cost{
				Price:  util.ToFloat64(r.Metadata.Cost.Price),
				Tokens: util.ToInt64(r.Metadata.Cost.Tokens),
			},
			Citations: r.Metadata.Citations,
		},
	}
}

func (r rawConversation) toDomain() domain.Conversation {
	conv := domain.Conversation{
		ID: r.ID,
		Metadata: domain.ConversationMetadata{
			CreatedAt:   coerceTimestamp(r.Metadata.CreatedAt),
			LastUpdated: coerceTimestamp(r.Metadata.LastUpdated),
			Email:       r.Metadata.Email,
		},
	}
	for _, msg := range r.Messages {
		conv.Messages = append(conv.Messages, msg.toDomain())
	}
	sort.SliceStable(conv.Messages, func(i, j int) bool {
		return conv.Messages[i].Timestamp < conv.Messages[j].Timestamp
	})
	return conv
}

// Snapshot retrieves every conversation with messages sorted ascending
// by timestamp.
func (s *Store) Snapshot(ctx context.Context) ([]domain.Conversation, error) {
	cursor, err := s.db.Collection(conversationsCollection).Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("finding conversations: %w", err)
	}
	defer cursor.Close(ctx)

	var conversations []domain.Conversation
	for cursor.Next(ctx) {
		var raw rawConversation
		if err := cursor.Decode(&raw); err != nil {
			return nil, fmt.Errorf("decoding conversation: %w", err)
		}
		conversations = append(conversations, raw.toDomain())
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("iterating conversations: %w", err)
	}
	return conversations, nil
}

type rawUser struct {
	Email            string `bson:"email"`
	TotalConnections any    `bson:"total_connections"`
	LastConnection   any    `bson:"last_connection"`
}

// Users retrieves every user account.
func (s *Store) Users(ctx context.Context) ([]domain.UserAccount, error) {
	cursor, err := s.db.Collection(usersCollection).Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("finding users: %w", err)
	}
	defer cursor.Close(ctx)

	var accounts []domain.UserAccount
	for cursor.Next(ctx) {
		var raw rawUser
		if err := cursor.Decode(&raw); err != nil {
			return nil, fmt.Errorf("decoding user: %w", err)
		}
		accounts = append(accounts, domain.UserAccount{
			Email:            raw.Email,
			TotalConnections: util.ToInt64(raw.TotalConnections),
			LastConnection:   coerceTimestamp(raw.LastConnection),
		})
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("iterating users: %w", err)
	}
	return accounts, nil
}

// DedupeResult reports a duplicate-question cleanup pass.
type DedupeResult struct {
	Scanned int
	Deleted int
	DryRun  bool
}

// markDuplicates returns the ids of messages whose normalized question
// was already seen, recording first occurrences in seen. Blank questions
// never count as duplicates.
func markDuplicates(messages []rawMessage, seen map[string]bool) []string {
	var duplicateIDs []string
	for _, msg := range messages {
		question := strings.ToLower(strings.TrimSpace(msg.Question))
		if question == "" {
			continue
		}
		if seen[question] {
			duplicateIDs = append(duplicateIDs, msg.ID)
			continue
		}
		seen[question] = true
	}
	return duplicateIDs
}

// DeleteDuplicateQuestions removes messages whose normalized question was
// already seen earlier in the scan, keeping the first occurrence. With
// dryRun the plan is computed but nothing is written.
func (s *Store) DeleteDuplicateQuestions(ctx context.Context, dryRun bool) (DedupeResult, error) {
	cursor, err := s.db.Collection(conversationsCollection).Find(ctx, bson.M{})
	if err != nil {
		return DedupeResult{}, fmt.Errorf("finding conversations: %w", err)
	}
	defer cursor.Close(ctx)

	result := DedupeResult{DryRun: dryRun}
	seen := make(map[string]bool)

	for cursor.Next(ctx) {
		var raw rawConversation
		if err := cursor.Decode(&raw); err != nil {
			return result, fmt.Errorf("decoding conversation: %w", err)
		}

		duplicateIDs := markDuplicates(raw.Messages, seen)
		result.Scanned += len(raw.Messages)

		if len(duplicateIDs) == 0 {
			continue
		}
		result.Deleted += len(duplicateIDs)

		if dryRun {
			continue
		}
		_, err := s.db.Collection(conversationsCollection).UpdateOne(ctx,
			bson.M{"_id": raw.ID},
			bson.M{"$pull": bson.M{"messages": bson.M{"id": bson.M{"$in": duplicateIDs}}}},
		)
		if err != nil {
			return result, fmt.Errorf("removing duplicates from %s: %w", raw.ID, err)
		}
	}
	if err := cursor.Err(); err != nil {
		return result, fmt.Errorf("iterating conversations: %w", err)
	}
	return result, nil
}
