package client

import (
	"context"
	"errors"
	"sync"
)

// FormState is the lifecycle state of a Form.
type FormState int

const (
	// Idle means no submission is in flight and no outcome is showing.
	Idle FormState = iota
	// Submitting means a submission is in flight.
	Submitting
	// Succeeded means the last submission was accepted; the held value has
	// been reset to its defaults.
	Succeeded
	// Failed means the last submission was rejected; the held value is kept
	// so the caller can correct and resubmit.
	Failed
)

// Form drives one create flow: it holds the value being edited, runs the
// client-side required-field check before the network call, and reflects the
// single most recent outcome. Starting a new submission or editing the value
// clears any prior outcome.
type Form[P any] struct {
	validate   func(P) error
	submit     func(context.Context, P) error
	successMsg string

	mu      sync.Mutex
	state   FormState
	message string
	value   P
}

// NewAssignmentForm creates a form submitting assignments through the client.
func NewAssignmentForm(c *Client) *Form[AssignmentDraft] {
	return &Form[AssignmentDraft]{
		validate: func(d AssignmentDraft) error {
			if d.GigID == 0 || d.AssigneeID == 0 || d.DueDate == "" || d.Status == "" {
				return errors.New("Missing required fields.")
			}
			return nil
		},
		submit: func(ctx context.Context, d AssignmentDraft) error {
			_, err := c.CreateAssignment(ctx, d)
			return err
		},
		successMsg: "Assignment created successfully.",
	}
}

// NewProfileForm creates a form submitting user profiles through the client.
func NewProfileForm(c *Client) *Form[ProfileDraft] {
	return &Form[ProfileDraft]{
		validate: func(d ProfileDraft) error {
			if d.Username == "" {
				return errors.New("Username is required.")
			}
			return nil
		},
		submit: func(ctx context.Context, d ProfileDraft) error {
			_, err := c.CreateUser(ctx, d)
			return err
		},
		successMsg: "User created successfully.",
	}
}

// SetValue replaces the value being edited. Editing clears a prior outcome.
func (f *Form[P]) SetValue(value P) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.value = value
	if f.state == Succeeded || f.state == Failed {
		f.state = Idle
		f.message = ""
	}
}

// Value returns the value currently held by the form.
func (f *Form[P]) Value() P {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.value
}

// State reports the form's lifecycle state.
func (f *Form[P]) State() FormState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Message returns the success or failure text of the most recent outcome.
func (f *Form[P]) Message() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.message
}

// Submit runs the create flow for the held value. The required-field check
// runs first and fails without a network round-trip, presented the same way
// as a server-side validation failure. On success the held value resets to
// its defaults; on failure it is retained and the message comes from the
// server's error payload when one is available.
func (f *Form[P]) Submit(ctx context.Context) error {
	f.mu.Lock()
	// A new attempt clears both prior success and failure messages.
	f.state = Submitting
	f.message = ""
	value := f.value
	f.mu.Unlock()

	if err := f.validate(value); err != nil {
		f.fail(err.Error())
		return err
	}

	if err := f.submit(ctx, value); err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) {
			f.fail(apiErr.Message)
		} else {
			f.fail("Something went wrong. Please try again.")
		}
		return err
	}

	f.mu.Lock()
	var zero P
	f.value = zero
	f.state = Succeeded
	f.message = f.successMsg
	f.mu.Unlock()
	return nil
}

func (f *Form[P]) fail(message string) {
	f.mu.Lock()
	f.state = Failed
	f.message = message
	f.mu.Unlock()
}
