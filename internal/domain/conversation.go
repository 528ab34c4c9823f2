package domain

import "strings"

// Role identifies the kind of actor behind a message.
type Role int

const (
	RoleAdmin   Role = 0
	RoleRegular Role = 1
)

// Model identifies the LLM that produced an answer.
type Model string

const (
	// ModelUnknown is assumed when a message carries no model identifier.
	ModelUnknown Model = "unknown"

	// FreeTierModel is tracked per model but excluded from displayed
	// cost totals.
	FreeTierModel Model = "gemini-2.0-flash-exp"
)

// Conversation is an ordered thread of messages tied to one identifier.
// Messages are sorted ascending by timestamp by the store; the analytics
// core treats the whole structure as read-only.
type Conversation struct {
	ID       string               `json:"id"`
	Metadata ConversationMetadata `json:"metadata"`
	Messages []Message            `json:"messages"`
}

// ConversationMetadata holds thread-level attributes.
type ConversationMetadata struct {
	CreatedAt   float64 `json:"created_at"`
	LastUpdated float64 `json:"last_updated"`
	Email       string  `json:"email"`
}

// FirstTimestamp returns the timestamp of the first message, or 0 when the
// conversation has no messages or the first message carries none.
func (c Conversation) FirstTimestamp() float64 {
	if len(c.Messages) == 0 {
		return 0
	}
	return c.Messages[0].Timestamp
}

// ValidMessages returns the messages carrying a non-blank question.
func (c Conversation) ValidMessages() []Message {
	var valid []Message
	for _, m := range c.Messages {
		if m.IsQuestion() {
			valid = append(valid, m)
		}
	}
	return valid
}

// Message is one question/answer exchange within a conversation.
type Message struct {
	ID        string          `json:"id"`
	Question  string          `json:"question"`
	Response  string          `json:"reponse"`
	Timestamp float64         `json:"timestamp"`
	Model     Model           `json:"modele"`
	Docs      []string        `json:"docs"`
	Feedback  string          `json:"feedback"`
	Metadata  MessageMetadata `json:"metadata"`
}

// MessageMetadata carries the per-message user, cost and citation data.
// UserID lives either directly on the metadata or nested under user_info
// depending on the writer version; resolution order is fixed in UserRole
// and UserEmail.
type MessageMetadata struct {
	UserID    *int     `json:"user_id"`
	Email     string   `json:"email"`
	UserInfo  UserInfo `json:"user_info"`
	Cost      Cost     `json:"cout"`
	Citations []string `json:"citations"`
}

// UserInfo is the nested user block written by newer clients.
type UserInfo struct {
	UserID    *int   `json:"user_id"`
	UserEmail string `json:"user_email"`
	Email     string `json:"email"`
}

// Cost holds the price and token accounting for a single answer.
type Cost struct {
	Price  float64 `json:"prix"`
	Tokens int64   `json:"tokens"`
}

// IsQuestion reports whether the message carries a non-blank question.
// Blank-question messages are assistant-only artifacts: they never count
// as questions but are preserved in filtered output.
func (m Message) IsQuestion() bool {
	return strings.TrimSpace(m.Question) != ""
}

// HasDocs reports whether the message was answered against documents.
func (m Message) HasDocs() bool {
	return len(m.Docs) > 0
}

// ModelID returns the message model, defaulting to ModelUnknown.
func (m Message) ModelID() Model {
	if m.Model == "" {
		return ModelUnknown
	}
	return m.Model
}

// UserEmail resolves the author email from the metadata, trying
// user_info.user_email, then the flat email, then user_info.email.
// The result is trimmed and lowercased; callers must normalize any
// comparison value the same way.
func (m Message) UserEmail() string {
	email := m.Metadata.UserInfo.UserEmail
	if email == "" {
		email = m.Metadata.Email
	}
	if email == "" {
		email = m.Metadata.UserInfo.Email
	}
	return strings.ToLower(strings.TrimSpace(email))
}

// UserRole resolves the author role: the flat user_id wins, then
// user_info.user_id, then RoleRegular.
func (m Message) UserRole() Role {
	if m.Metadata.UserID != nil {
		return Role(*m.Metadata.UserID)
	}
	if m.Metadata.UserInfo.UserID != nil {
		return Role(*m.Metadata.UserInfo.UserID)
	}
	return RoleRegular
}
