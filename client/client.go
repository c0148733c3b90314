// Package client is the Go client for the GrindLink API: a thin HTTP client
// for the create/list endpoints plus live list views fed by the server's
// websocket broadcast.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/KingCuz/GrindLink/internal/models"
)

// APIError carries the message from a server error payload.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("server returned %d: %s", e.StatusCode, e.Message)
}

// AssignmentDraft is the caller-supplied input for a new assignment.
type AssignmentDraft struct {
	GigID      int    `json:"gig_id"`
	AssigneeID int    `json:"assignee_id"`
	DueDate    string `json:"due_date"`
	Status     string `json:"status"`
}

// ProfileDraft is the caller-supplied input for a new user profile. Skills is
// the raw comma-separated input; it is split client-side on submit.
type ProfileDraft struct {
	Username string
	Bio      string
	Skills   string
}

// Client talks to one GrindLink server.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a Client for the given base URL, e.g. "http://localhost:8080".
func New(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// CreateAssignment submits a new assignment and returns the canonical record.
func (c *Client) CreateAssignment(ctx context.Context, draft AssignmentDraft) (models.Assignment, error) {
	var resp struct {
		Assignment models.Assignment `json:"assignment"`
	}
	if err := c.post(ctx, "/api/assignments", draft, &resp); err != nil {
		return models.Assignment{}, err
	}
	return resp.Assignment, nil
}

// ListAssignments fetches all assignments, newest first.
func (c *Client) ListAssignments(ctx context.Context) ([]models.Assignment, error) {
	var assignments []models.Assignment
	if err := c.get(ctx, "/api/assignments", &assignments); err != nil {
		return nil, err
	}
	return assignments, nil
}

// CreateUser submits a new user profile and returns the canonical record.
// The draft's comma-separated skills input is split and trimmed here, the
// same way the form view derives it.
func (c *Client) CreateUser(ctx context.Context, draft ProfileDraft) (models.UserProfile, error) {
	payload := struct {
		Username string   `json:"username"`
		Bio      string   `json:"bio"`
		Skills   []string `json:"skills"`
	}{
		Username: draft.Username,
		Bio:      draft.Bio,
		Skills:   SplitSkills(draft.Skills),
	}

	var resp struct {
		User models.UserProfile `json:"user"`
	}
	if err := c.post(ctx, "/api/users", payload, &resp); err != nil {
		return models.UserProfile{}, err
	}
	return resp.User, nil
}

// ListUsers fetches all user profiles, newest first.
func (c *Client) ListUsers(ctx context.Context) ([]models.UserProfile, error) {
	var profiles []models.UserProfile
	if err := c.get(ctx, "/api/users", &profiles); err != nil {
		return nil, err
	}
	return profiles, nil
}

// SplitSkills derives the skills list from a comma-separated input string.
// Entries are trimmed but empty entries are kept, so a trailing comma yields
// a trailing empty skill.
func SplitSkills(input string) []string {
	if input == "" {
		return []string{}
	}
	parts := strings.Split(input, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

func (c *Client) post(ctx context.Context, path string, payload, out interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

func (c *Client) get(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out interface{}) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var payload struct {
			Error string `json:"error"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&payload); err == nil && payload.Error != "" {
			apiErr.Message = payload.Error
		} else {
			apiErr.Message = http.StatusText(resp.StatusCode)
		}
		return apiErr
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
