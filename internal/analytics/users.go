package analytics

import (
	"sort"
	"strings"

	"github.com/hermine-app/insights/internal/domain"
	"github.com/hermine-app/insights/internal/util"
)

// placeholderAccount is the seed account created at provisioning time.
// It never corresponds to a real person.
const placeholderAccount = "admin@chatbot"

// ConnectionStat is one account's login activity.
type ConnectionStat struct {
	Email          string `json:"email"`
	Connections    int64  `json:"connections"`
	LastConnection string `json:"last_connection"`
}

// ConnectionSummary aggregates login activity across accounts.
type ConnectionSummary struct {
	UniqueEmails     int     `json:"unique_emails"`
	TotalConnections int64   `json:"total_connections"`
	AvgPerUser       float64 `json:"avg_per_user"`
}

// ConnectionReport lists accounts by connection count descending.
type ConnectionReport struct {
	Accounts []ConnectionStat  `json:"accounts"`
	Summary  ConnectionSummary `json:"summary"`
}

// SummarizeConnections reports login activity per account, skipping the
// provisioning placeholder.
func SummarizeConnections(accounts []domain.UserAccount) ConnectionReport {
	var report ConnectionReport
	for _, account := range accounts {
		if strings.EqualFold(strings.TrimSpace(account.Email), placeholderAccount) {
			continue
		}

		last := "never"
		if account.LastConnection > 0 {
			last = util.FormatEpoch(account.LastConnection)
		}
		report.Accounts = append(report.Accounts, ConnectionStat{
			Email:          account.Email,
			Connections:    account.TotalConnections,
			LastConnection: last,
		})
		report.Summary.TotalConnections += account.TotalConnections
	}

	report.Summary.UniqueEmails = len(report.Accounts)
	if report.Summary.UniqueEmails > 0 {
		report.Summary.AvgPerUser = float64(report.Summary.TotalConnections) / float64(report.Summary.UniqueEmails)
	}

	sort.SliceStable(report.Accounts, func(i, j int) bool {
		return report.Accounts[i].Connections > report.Accounts[j].Connections
	})
	return report
}

// EmailGroup is the conversation activity attributed to one email.
type EmailGroup struct {
	Email          string  `json:"email"`
	Conversations  int     `json:"conversations"`
	Messages       int     `json:"messages"`
	LatestCreation float64 `json:"latest_creation"`
}

// GroupByEmail groups conversations by their metadata email,
// case-insensitively. Conversations without an email land under
// "unassigned". Groups are sorted by conversation count descending.
func GroupByEmail(conversations []domain.Conversation) []EmailGroup {
	groups := make(map[string]*EmailGroup)
	var order []string

	for _, conv := range conversations {
		email := strings.ToLower(strings.TrimSpace(conv.Metadata.Email))
		if email == "" {
			email = "unassigned"
		}

		group, ok := groups[email]
		if !ok {
			group = &EmailGroup{Email: email}
			groups[email] = group
			order = append(order, email)
		}
		group.Conversations++
		group.Messages += len(conv.Messages)
		if conv.Metadata.CreatedAt > group.LatestCreation {
			group.LatestCreation = conv.Metadata.CreatedAt
		}
	}

	result := make([]EmailGroup, 0, len(order))
	for _, email := range order {
		result = append(result, *groups[email])
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Conversations > result[j].Conversations
	})
	return result
}
