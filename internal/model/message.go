package model

import (
	"fmt"
	"strings"
	"time"
)

// Status is the lifecycle state of a contact message.
type Status string

const (
	StatusUnread Status = "unread"
	StatusRead   Status = "read"
)

// Valid reports whether s is a known message status.
func (s Status) Valid() bool {
	return s == StatusUnread || s == StatusRead
}

// StatusFilter selects messages by status in admin listings.
type StatusFilter string

const (
	FilterAll    StatusFilter = "all"
	FilterUnread StatusFilter = "unread"
	FilterRead   StatusFilter = "read"
)

// ParseStatusFilter parses a status query parameter.
// Empty input is treated as "all".
func ParseStatusFilter(s string) (StatusFilter, error) {
	switch StatusFilter(strings.ToLower(strings.TrimSpace(s))) {
	case "", FilterAll:
		return FilterAll, nil
	case FilterUnread:
		return FilterUnread, nil
	case FilterRead:
		return FilterRead, nil
	}
	return "", fmt.Errorf("unknown status filter %q", s)
}

// Message represents a contact message submitted by a visitor.
// SubmittedAt is nil until the store has acknowledged the write.
type Message struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Email       string     `json:"email"`
	Subject     string     `json:"subject"`
	Body        string     `json:"message"`
	Company     string     `json:"company,omitempty"`
	Phone       string     `json:"phone,omitempty"`
	SubmittedAt *time.Time `json:"timestamp"`
	Status      Status     `json:"status"`
}

// Submission is the visitor-supplied contact form payload.
type Submission struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required"`
	Subject string `json:"subject" validate:"required"`
	Body    string `json:"message" validate:"required,max=5000"`
	Company string `json:"company"`
	Phone   string `json:"phone"`
}

// Stats are the aggregate counters shown on the admin dashboard.
type Stats struct {
	Total    int `json:"total"`
	Unread   int `json:"unread"`
	Read     int `json:"read"`
	ThisWeek int `json:"this_week"`
}
