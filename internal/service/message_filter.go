package service

import (
	"strings"

	"github.com/portfolio/backend/internal/model"
)

// FilterMessages returns the messages matching both the free-text query and the
// status filter, in their original order. The query is matched case-insensitively
// as a substring of name, email, subject or body; an empty query matches everything.
// The input slice is never modified.
func FilterMessages(msgs []*model.Message, query string, filter model.StatusFilter) []*model.Message {
	q := strings.ToLower(query)
	out := make([]*model.Message, 0, len(msgs))
	for _, m := range msgs {
		if !matchesStatus(m, filter) || !matchesQuery(m, q) {
			continue
		}
		out = append(out, m)
	}
	return out
}

func matchesStatus(m *model.Message, filter model.StatusFilter) bool {
	if filter == "" || filter == model.FilterAll {
		return true
	}
	return string(m.Status) == string(filter)
}

// matchesQuery expects q to be lower-cased already.
func matchesQuery(m *model.Message, q string) bool {
	if q == "" {
		return true
	}
	for _, field := range [...]string{m.Name, m.Email, m.Subject, m.Body} {
		if strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	return false
}
