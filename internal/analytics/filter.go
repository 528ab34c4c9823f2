package analytics

import (
	"strings"
	"time"

	"github.com/hermine-app/insights/internal/domain"
)

// RoleFilter selects which actor roles a filter retains.
type RoleFilter int

const (
	RoleAll RoleFilter = iota
	RoleAdminOnly
	RoleUserOnly
)

// Criteria defines the filtering applied before aggregation.
// PreciseDate restricts to one calendar day and takes precedence over
// WindowDays; WindowDays of 0 means all time.
type Criteria struct {
	PreciseDate  *time.Time
	WindowDays   int
	Role         RoleFilter
	ExactEmail   string
	EmailPattern string
}

// normalizedExactEmail returns the exact-email criterion trimmed and
// lowercased, matching the normalization applied by Message.UserEmail.
func (c Criteria) normalizedExactEmail() string {
	return strings.ToLower(strings.TrimSpace(c.ExactEmail))
}

// includeMessage decides whether a question-bearing message passes the
// role, exact-email and pattern criteria. Feedback aggregation applies
// the same predicate so the two surfaces cannot drift.
func (c Criteria) includeMessage(msg domain.Message) bool {
	role := msg.UserRole()
	email := msg.UserEmail()
	exact := c.normalizedExactEmail()

	var include bool
	switch c.Role {
	case RoleAdminOnly:
		include = role == domain.RoleAdmin
	case RoleUserOnly:
		include = role == domain.RoleRegular
	default:
		include = true
	}

	if include && exact != "" && email != exact {
		include = false
	}
	if include && c.EmailPattern != "" {
		include = MatchEmailPattern(email, c.EmailPattern)
	}
	return include
}

// QuestionTally is the side count of question-bearing messages by role.
// It is computed over every question in date-surviving conversations,
// before role/email filtering: the dashboard shows it as a quick stat
// next to the stricter filtered view.
type QuestionTally struct {
	AdminQuestions int `json:"admin_questions"`
	UserQuestions  int `json:"user_questions"`
	TotalQuestions int `json:"total_questions"`
}

// FilterResult holds the surviving conversations and the question tally.
type FilterResult struct {
	Conversations []domain.Conversation `json:"conversations"`
	Tally         QuestionTally         `json:"question_stats"`
}

// FilterConversations applies the date window, then the per-message
// role/email criteria. Retained conversations carry only their retained
// messages; blank-question messages are always retained. A conversation
// survives when at least one message remains.
func FilterConversations(conversations []domain.Conversation, criteria Criteria, now time.Time) FilterResult {
	dated := filterByDate(conversations, criteria, now)

	var result FilterResult
	for _, conv := range dated {
		var retained []domain.Message
		for _, msg := range conv.Messages {
			if !msg.IsQuestion() {
				// Assistant-only artifacts stay untouched.
				retained = append(retained, msg)
				continue
			}

			result.Tally.TotalQuestions++
			if msg.UserRole() == domain.RoleAdmin {
				result.Tally.AdminQuestions++
			} else {
				result.Tally.UserQuestions++
			}

			if criteria.includeMessage(msg) {
				retained = append(retained, msg)
			}
		}

		if len(retained) > 0 {
			filtered := conv
			filtered.Messages = retained
			result.Conversations = append(result.Conversations, filtered)
		}
	}
	return result
}

// filterByDate keeps conversations whose first-message timestamp falls
// inside the precise day or relative window. Conversations without a
// resolvable timestamp are dropped only while a date filter is active.
func filterByDate(conversations []domain.Conversation, criteria Criteria, now time.Time) []domain.Conversation {
	if criteria.PreciseDate != nil {
		day := *criteria.PreciseDate
		start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
		end := start.AddDate(0, 0, 1)

		var kept []domain.Conversation
		for _, conv := range conversations {
			ts := conv.FirstTimestamp()
			if ts <= 0 {
				continue
			}
			at := time.Unix(int64(ts), 0).In(day.Location())
			if !at.Before(start) && at.Before(end) {
				kept = append(kept, conv)
			}
		}
		return kept
	}

	if criteria.WindowDays > 0 {
		cutoff := float64(now.AddDate(0, 0, -criteria.WindowDays).Unix())

		var kept []domain.Conversation
		for _, conv := range conversations {
			ts := conv.FirstTimestamp()
			if ts > 0 && ts >= cutoff {
				kept = append(kept, conv)
			}
		}
		return kept
	}

	return conversations
}
