package domain

import "testing"

func intPtr(i int) *int { return &i }

func TestMessage_UserEmail_FallbackOrder(t *testing.T) {
	tests := []struct {
		name     string
		metadata MessageMetadata
		expected string
	}{
		{
			name: "user_info.user_email wins",
			metadata: MessageMetadata{
				Email:    "flat@example.com",
				UserInfo: UserInfo{UserEmail: "nested@example.com", Email: "inner@example.com"},
			},
			expected: "nested@example.com",
		},
		{
			name:     "flat email second",
			metadata: MessageMetadata{Email: "flat@example.com", UserInfo: UserInfo{Email: "inner@example.com"}},
			expected: "flat@example.com",
		},
		{
			name:     "user_info.email last",
			metadata: MessageMetadata{UserInfo: UserInfo{Email: "inner@example.com"}},
			expected: "inner@example.com",
		},
		{
			name:     "no email anywhere",
			metadata: MessageMetadata{},
			expected: "",
		},
		{
			name:     "normalized to trimmed lowercase",
			metadata: MessageMetadata{Email: "  User@Example.COM  "},
			expected: "user@example.com",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := Message{Metadata: tt.metadata}
			if got := msg.UserEmail(); got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestMessage_UserRole(t *testing.T) {
	tests := []struct {
		name     string
		metadata MessageMetadata
		expected Role
	}{
		{"flat user_id wins", MessageMetadata{UserID: intPtr(0), UserInfo: UserInfo{UserID: intPtr(1)}}, RoleAdmin},
		{"nested user_id second", MessageMetadata{UserInfo: UserInfo{UserID: intPtr(0)}}, RoleAdmin},
		{"defaults to regular", MessageMetadata{}, RoleRegular},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := Message{Metadata: tt.metadata}
			if got := msg.UserRole(); got != tt.expected {
				t.Errorf("expected role %d, got %d", tt.expected, got)
			}
		})
	}
}

func TestMessage_IsQuestion(t *testing.T) {
	if (Message{Question: "   "}).IsQuestion() {
		t.Error("whitespace-only question should not count")
	}
	if (Message{}).IsQuestion() {
		t.Error("empty question should not count")
	}
	if !(Message{Question: "what is a SARL?"}).IsQuestion() {
		t.Error("non-blank question should count")
	}
}

func TestMessage_HasDocs(t *testing.T) {
	if (Message{}).HasDocs() {
		t.Error("nil docs should not count as documents")
	}
	if (Message{Docs: []string{}}).HasDocs() {
		t.Error("empty docs should not count as documents")
	}
	if !(Message{Docs: []string{"doc-1"}}).HasDocs() {
		t.Error("non-empty docs should count as documents")
	}
}

func TestMessage_ModelID_Default(t *testing.T) {
	if got := (Message{}).ModelID(); got != ModelUnknown {
		t.Errorf("expected %q, got %q", ModelUnknown, got)
	}
	if got := (Message{Model: "gpt-4"}).ModelID(); got != "gpt-4" {
		t.Errorf("expected gpt-4, got %q", got)
	}
}

func TestConversation_FirstTimestamp(t *testing.T) {
	if got := (Conversation{}).FirstTimestamp(); got != 0 {
		t.Errorf("expected 0 for empty conversation, got %f", got)
	}
	conv := Conversation{Messages: []Message{{Timestamp: 1700000000}, {Timestamp: 1700000600}}}
	if got := conv.FirstTimestamp(); got != 1700000000 {
		t.Errorf("expected first message timestamp, got %f", got)
	}
}

func TestParseRating(t *testing.T) {
	tests := []struct {
		feedback string
		rating   Rating
		ok       bool
	}{
		{"rating_1", 1, true},
		{"rating_5", 5, true},
		{"rating_3", 3, true},
		{"rating_6", 0, false},
		{"rating_0", 0, false},
		{"rating_", 0, false},
		{"rating_abc", 0, false},
		{"thumbs_up", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.feedback, func(t *testing.T) {
			r, ok := ParseRating(tt.feedback)
			if ok != tt.ok || r != tt.rating {
				t.Errorf("ParseRating(%q) = (%d, %v), expected (%d, %v)", tt.feedback, r, ok, tt.rating, tt.ok)
			}
		})
	}
}
