// Package notify announces contact-form activity to other systems.
package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/portfolio/backend/internal/model"
)

// SubjectMessageSubmitted is the NATS subject new contact messages are published on.
const SubjectMessageSubmitted = "portfolio.messages.submitted"

// Notifier is told about newly stored contact messages.
type Notifier interface {
	MessageSubmitted(ctx context.Context, msg *model.Message) error
}

// Noop discards every notification.
type Noop struct{}

func (Noop) MessageSubmitted(context.Context, *model.Message) error { return nil }

// publisher is the subset of *nats.Conn used by NatsNotifier.
type publisher interface {
	Publish(subject string, data []byte) error
}

// NatsNotifier publishes submission events to NATS.
type NatsNotifier struct {
	pub  publisher
	conn *nats.Conn
}

// submittedEvent is the JSON payload published for a new message.
// The body is omitted so subscribers only see routing information.
type submittedEvent struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Subject   string     `json:"subject"`
	Timestamp *time.Time `json:"timestamp"`
}

// NewNatsNotifier connects to the NATS server at url.
func NewNatsNotifier(url string) (*NatsNotifier, error) {
	nc, err := nats.Connect(url,
		nats.Name("portfolio-backend"),
		nats.MaxReconnects(-1),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				slog.Warn("nats disconnected", "error", err)
			}
		}),
		nats.ReconnectHandler(func(c *nats.Conn) {
			slog.Info("nats reconnected", "url", c.ConnectedUrl())
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}
	return &NatsNotifier{pub: nc, conn: nc}, nil
}

// MessageSubmitted publishes a submittedEvent for msg.
func (n *NatsNotifier) MessageSubmitted(_ context.Context, msg *model.Message) error {
	data, err := json.Marshal(submittedEvent{
		ID:        msg.ID,
		Name:      msg.Name,
		Email:     msg.Email,
		Subject:   msg.Subject,
		Timestamp: msg.SubmittedAt,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}
	if err := n.pub.Publish(SubjectMessageSubmitted, data); err != nil {
		return fmt.Errorf("failed to publish to subject '%s': %w", SubjectMessageSubmitted, err)
	}
	return nil
}

// Ping reports an error unless the connection is currently established.
func (n *NatsNotifier) Ping(context.Context) error {
	if n.conn == nil {
		return nil
	}
	if !n.conn.IsConnected() {
		return fmt.Errorf("nats: %s", n.conn.Status())
	}
	return nil
}

// Close drains and closes the NATS connection.
func (n *NatsNotifier) Close() {
	if n.conn != nil {
		_ = n.conn.Drain()
	}
}
