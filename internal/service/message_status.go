package service

import (
	"errors"

	"github.com/portfolio/backend/internal/model"
)

var (
	// ErrInvalidStatus is returned for status values other than unread/read.
	ErrInvalidStatus = errors.New("invalid status")
	// ErrTransitionNotAllowed is returned when asked to move a message back to unread.
	ErrTransitionNotAllowed = errors.New("status transition not allowed")
)

// checkTransition reports whether a message may be set to status.
// Messages only ever move forward to read; read on read is a no-op.
func checkTransition(status model.Status) error {
	if !status.Valid() {
		return ErrInvalidStatus
	}
	if status != model.StatusRead {
		return ErrTransitionNotAllowed
	}
	return nil
}

// markReadOnOpen reports whether loading the detail of m should persist the read status.
func markReadOnOpen(m *model.Message) bool {
	return m.Status == model.StatusUnread
}
