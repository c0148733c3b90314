package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/KingCuz/GrindLink/internal/apperrors"
	"github.com/KingCuz/GrindLink/internal/models"
	"github.com/KingCuz/GrindLink/internal/store"
	"github.com/KingCuz/GrindLink/internal/websocket"
)

// Publisher pushes an entity-creation event to every connected client.
// Satisfied by *websocket.Hub.
type Publisher interface {
	Publish(event string, data interface{})
}

// AssignmentInput is the caller-supplied part of a new assignment.
type AssignmentInput struct {
	GigID      int    `json:"gig_id"`
	AssigneeID int    `json:"assignee_id"`
	DueDate    string `json:"due_date"`
	Status     string `json:"status"`
}

// AssignmentServiceProvider defines the interface for assignment services.
type AssignmentServiceProvider interface {
	CreateAssignment(ctx context.Context, input AssignmentInput) (models.Assignment, error)
	ListAssignments(ctx context.Context) ([]models.Assignment, error)
}

// AssignmentService provides business logic for assignment records.
type AssignmentService struct {
	store      store.Store
	pub        Publisher
	collection string
}

// NewAssignmentService creates a new AssignmentService. The namespace scopes
// the collection path so multiple deployments can share one store.
func NewAssignmentService(st store.Store, pub Publisher, namespace string) *AssignmentService {
	return &AssignmentService{
		store:      st,
		pub:        pub,
		collection: namespace + "/assignments",
	}
}

// CreateAssignment validates the input, persists the record and broadcasts it.
// The broadcast happens only after the write is acknowledged, so a client
// receiving the event will also find the record in a subsequent list call.
func (s *AssignmentService) CreateAssignment(ctx context.Context, input AssignmentInput) (models.Assignment, error) {
	if input.GigID == 0 || input.AssigneeID == 0 || input.DueDate == "" || input.Status == "" {
		return models.Assignment{}, apperrors.NewValidationError("Missing required fields.")
	}

	dueDate, err := parseDueDate(input.DueDate)
	if err != nil {
		return models.Assignment{}, apperrors.NewValidationError("Invalid due date.")
	}

	assignment := models.Assignment{
		GigID:      input.GigID,
		AssigneeID: input.AssigneeID,
		DueDate:    dueDate,
		Status:     input.Status,
		CreatedAt:  time.Now().UTC(),
	}

	body, err := json.Marshal(assignment)
	if err != nil {
		return models.Assignment{}, err
	}

	id, err := s.store.Put(ctx, s.collection, assignment.CreatedAt, body)
	if err != nil {
		return models.Assignment{}, &apperrors.StorageError{Op: "put", Err: err}
	}
	assignment.ID = id

	s.pub.Publish(websocket.EventNewAssignment, assignment)
	return assignment, nil
}

// ListAssignments returns all assignments, newest first.
func (s *AssignmentService) ListAssignments(ctx context.Context) ([]models.Assignment, error) {
	docs, err := s.store.List(ctx, s.collection)
	if err != nil {
		return nil, &apperrors.StorageError{Op: "list", Err: err}
	}

	assignments := make([]models.Assignment, 0, len(docs))
	for _, doc := range docs {
		var assignment models.Assignment
		if err := json.Unmarshal(doc.Body, &assignment); err != nil {
			return nil, &apperrors.StorageError{Op: "list", Err: err}
		}
		assignment.ID = doc.ID
		assignment.CreatedAt = doc.CreatedAt
		assignments = append(assignments, assignment)
	}
	return assignments, nil
}

// parseDueDate accepts a full timestamp or a plain calendar date.
func parseDueDate(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}
