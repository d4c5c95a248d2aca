package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/portfolio/backend/internal/model"
)

// MessageService defines the contact message lifecycle: intake from the public
// form and everything the admin panel does with the stored messages.
type MessageService interface {
	// Submit validates and stores a new message. Returns *ValidationError when a
	// required field is missing; no store call is made in that case.
	Submit(ctx context.Context, sub model.Submission) (*model.Message, error)

	// List fetches all messages and narrows them by query and status.
	List(ctx context.Context, query string, filter model.StatusFilter) ([]*model.Message, error)

	// Dashboard returns aggregate stats over all messages plus the filtered list.
	Dashboard(ctx context.Context, query string, filter model.StatusFilter) (*Dashboard, error)

	// Open loads a message for the detail view and marks it read on first view.
	Open(ctx context.Context, id string) (*model.Message, error)

	// UpdateStatus is the explicit admin status change. Only "read" is accepted.
	UpdateStatus(ctx context.Context, id string, status model.Status) error

	// Delete removes a message. Deleting an unknown id is not an error.
	Delete(ctx context.Context, id string) error

	// ReplyLink returns a mailto: link for answering the message's sender.
	ReplyLink(ctx context.Context, id string) (string, error)
}

// Dashboard is the admin overview.
type Dashboard struct {
	Stats    model.Stats      `json:"stats"`
	Messages []*model.Message `json:"messages"`
}

// FieldError describes one rejected submission field.
type FieldError struct {
	Field string `json:"field"`
	Rule  string `json:"rule"` // "required" | "too_long"
}

// ValidationError is returned by Submit when the payload is incomplete.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+" "+f.Rule)
	}
	return fmt.Sprintf("validation failed: %s", strings.Join(parts, ", "))
}

// Code returns a machine-readable code for the first failing field, e.g. "email_required".
func (e *ValidationError) Code() string {
	if len(e.Fields) == 0 {
		return "invalid_submission"
	}
	return e.Fields[0].Field + "_" + e.Fields[0].Rule
}
