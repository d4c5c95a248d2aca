package service

import (
	"context"
	"errors"
	"log/slog"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/portfolio/backend/internal/model"
	"github.com/portfolio/backend/internal/notify"
	"github.com/portfolio/backend/internal/repository"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report fields by their JSON names so errors match the form.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// messageServiceImpl is the production implementation of MessageService.
type messageServiceImpl struct {
	repo      repository.MessageRepository
	notifier  notify.Notifier
	ownerName string
	now       func() time.Time
}

// NewMessageService creates a MessageService backed by the given repository.
// A nil notifier disables submission notifications.
func NewMessageService(repo repository.MessageRepository, notifier notify.Notifier, ownerName string) MessageService {
	if notifier == nil {
		notifier = notify.Noop{}
	}
	return &messageServiceImpl{
		repo:      repo,
		notifier:  notifier,
		ownerName: ownerName,
		now:       time.Now,
	}
}

func (s *messageServiceImpl) Submit(ctx context.Context, sub model.Submission) (*model.Message, error) {
	sub = normalizeSubmission(sub)
	if err := validateSubmission(sub); err != nil {
		return nil, err
	}

	msg, err := s.repo.Create(ctx, &sub)
	if err != nil {
		slog.ErrorContext(ctx, "failed to store contact message", "error", err)
		return nil, err
	}

	if err := s.notifier.MessageSubmitted(ctx, msg); err != nil {
		slog.WarnContext(ctx, "failed to publish submission notification", "message_id", msg.ID, "error", err)
	}
	return msg, nil
}

func (s *messageServiceImpl) List(ctx context.Context, query string, filter model.StatusFilter) ([]*model.Message, error) {
	all, err := s.repo.ListAll(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "failed to list messages", "error", err)
		return nil, err
	}
	return FilterMessages(all, query, filter), nil
}

func (s *messageServiceImpl) Dashboard(ctx context.Context, query string, filter model.StatusFilter) (*Dashboard, error) {
	all, err := s.repo.ListAll(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "failed to list messages", "error", err)
		return nil, err
	}
	return &Dashboard{
		Stats:    ComputeStats(all, s.now()),
		Messages: FilterMessages(all, query, filter),
	}, nil
}

// Open returns the message even when persisting the read status fails;
// in that case the returned status is the stored one.
func (s *messageServiceImpl) Open(ctx context.Context, id string) (*model.Message, error) {
	msg, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			slog.ErrorContext(ctx, "failed to fetch message", "message_id", id, "error", err)
		}
		return nil, err
	}

	if markReadOnOpen(msg) {
		if err := s.repo.UpdateStatus(ctx, id, model.StatusRead); err != nil {
			slog.WarnContext(ctx, "failed to mark message read", "message_id", id, "error", err)
		} else {
			msg.Status = model.StatusRead
		}
	}
	return msg, nil
}

func (s *messageServiceImpl) UpdateStatus(ctx context.Context, id string, status model.Status) error {
	if err := checkTransition(status); err != nil {
		return err
	}
	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			slog.ErrorContext(ctx, "failed to update message status", "message_id", id, "error", err)
		}
		return err
	}
	return nil
}

func (s *messageServiceImpl) Delete(ctx context.Context, id string) error {
	err := s.repo.Delete(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to delete message", "message_id", id, "error", err)
	}
	return err
}

func (s *messageServiceImpl) ReplyLink(ctx context.Context, id string) (string, error) {
	msg, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	return ReplyLink(msg, s.ownerName), nil
}

func normalizeSubmission(sub model.Submission) model.Submission {
	sub.Name = strings.TrimSpace(sub.Name)
	sub.Email = strings.TrimSpace(sub.Email)
	sub.Subject = strings.TrimSpace(sub.Subject)
	sub.Body = strings.TrimSpace(sub.Body)
	sub.Company = strings.TrimSpace(sub.Company)
	sub.Phone = strings.TrimSpace(sub.Phone)
	return sub
}

func validateSubmission(sub model.Submission) error {
	err := validate.Struct(sub)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	ve := &ValidationError{}
	for _, fe := range verrs {
		rule := fe.Tag()
		if rule == "max" {
			rule = "too_long"
		}
		ve.Fields = append(ve.Fields, FieldError{Field: fe.Field(), Rule: rule})
	}
	return ve
}
