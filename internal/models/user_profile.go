package models

import "time"

// UserProfile represents a public member profile.
type UserProfile struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Bio       string    `json:"bio"`
	Skills    []string  `json:"skills"`
	CreatedAt time.Time `json:"created_at"`
}

// RecordID returns the store-assigned identifier.
func (p UserProfile) RecordID() string { return p.ID }
