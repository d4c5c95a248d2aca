package repository

import (
	"context"

	"github.com/portfolio/backend/internal/model"
)

// MessageRepository is the persistence boundary for contact messages.
// Implementations return ErrNotFound for unknown ids and *PersistenceError
// for every other failure.
type MessageRepository interface {
	Create(ctx context.Context, sub *model.Submission) (*model.Message, error)
	// ListAll returns every message, newest first.
	ListAll(ctx context.Context) ([]*model.Message, error)
	GetByID(ctx context.Context, id string) (*model.Message, error)
	// UpdateStatus sets the status column only. Setting the current value again succeeds.
	UpdateStatus(ctx context.Context, id string, status model.Status) error
	Delete(ctx context.Context, id string) error
}
