package domain

// UserAccount is one entry from the users collection, tracking login
// activity for an email address.
type UserAccount struct {
	Email            string  `json:"email"`
	TotalConnections int64   `json:"total_connections"`
	LastConnection   float64 `json:"last_connection"`
}
