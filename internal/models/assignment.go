package models

import "time"

// Assignment links a gig to the user working on it.
type Assignment struct {
	ID         string    `json:"id"`
	GigID      int       `json:"gig_id"`
	AssigneeID int       `json:"assignee_id"`
	DueDate    time.Time `json:"due_date"`
	Status     string    `json:"status"` // "in_progress", "completed" or "pending"; not validated server-side
	CreatedAt  time.Time `json:"created_at"`
}

// RecordID returns the store-assigned identifier.
func (a Assignment) RecordID() string { return a.ID }
