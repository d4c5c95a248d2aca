package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/portfolio/backend/internal/model"
)

const messageColumns = `id::text, name, email, subject, message,
	COALESCE(company, ''), COALESCE(phone, ''), submitted_at, status`

// PgMessageRepository is the PostgreSQL implementation of MessageRepository.
type PgMessageRepository struct {
	pool *pgxpool.Pool
}

// NewPgMessageRepository creates a PgMessageRepository backed by the given pool.
func NewPgMessageRepository(pool *pgxpool.Pool) *PgMessageRepository {
	return &PgMessageRepository{pool: pool}
}

var _ MessageRepository = (*PgMessageRepository)(nil)

// Create inserts a new messages row with status "unread". The id and
// submitted_at are assigned by the database.
func (r *PgMessageRepository) Create(ctx context.Context, sub *model.Submission) (*model.Message, error) {
	row := r.pool.QueryRow(ctx,
		`INSERT INTO messages (name, email, subject, message, company, phone, status)
		 VALUES ($1, $2, $3, $4, NULLIF($5, ''), NULLIF($6, ''), $7)
		 RETURNING `+messageColumns,
		sub.Name, sub.Email, sub.Subject, sub.Body, sub.Company, sub.Phone, string(model.StatusUnread),
	)
	msg, err := scanMessage(row)
	if err != nil {
		return nil, persistenceErr("create", err)
	}
	return msg, nil
}

// ListAll returns every message ordered by submitted_at descending.
// Rows whose timestamp is still NULL sort first, matching an in-flight write.
func (r *PgMessageRepository) ListAll(ctx context.Context) ([]*model.Message, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+messageColumns+` FROM messages ORDER BY submitted_at DESC NULLS FIRST, id`)
	if err != nil {
		return nil, persistenceErr("list", err)
	}
	defer rows.Close()

	messages := []*model.Message{}
	for rows.Next() {
		m, err := scanMessage(rows)
		if err != nil {
			return nil, persistenceErr("list", err)
		}
		messages = append(messages, m)
	}
	if err := rows.Err(); err != nil {
		return nil, persistenceErr("list", err)
	}
	return messages, nil
}

// GetByID returns the message with the given id. Malformed ids resolve to ErrNotFound.
func (r *PgMessageRepository) GetByID(ctx context.Context, id string) (*model.Message, error) {
	key, ok := parseID(id)
	if !ok {
		return nil, ErrNotFound
	}
	msg, err := scanMessage(r.pool.QueryRow(ctx,
		`SELECT `+messageColumns+` FROM messages WHERE id = $1`, key))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, persistenceErr("get", err)
	}
	return msg, nil
}

// UpdateStatus sets the status of a message.
func (r *PgMessageRepository) UpdateStatus(ctx context.Context, id string, status model.Status) error {
	key, ok := parseID(id)
	if !ok {
		return ErrNotFound
	}
	tag, err := r.pool.Exec(ctx, `UPDATE messages SET status = $2 WHERE id = $1`, key, string(status))
	if err != nil {
		return persistenceErr("update_status", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a message permanently.
func (r *PgMessageRepository) Delete(ctx context.Context, id string) error {
	key, ok := parseID(id)
	if !ok {
		return ErrNotFound
	}
	tag, err := r.pool.Exec(ctx, `DELETE FROM messages WHERE id = $1`, key)
	if err != nil {
		return persistenceErr("delete", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func parseID(id string) (string, bool) {
	u, err := uuid.Parse(id)
	if err != nil {
		return "", false
	}
	return u.String(), true
}

func scanMessage(row pgx.Row) (*model.Message, error) {
	var (
		m      model.Message
		ts     pgtype.Timestamptz
		status string
	)
	if err := row.Scan(&m.ID, &m.Name, &m.Email, &m.Subject, &m.Body,
		&m.Company, &m.Phone, &ts, &status); err != nil {
		return nil, err
	}
	m.SubmittedAt = normalizeTimestamp(ts)
	m.Status = model.Status(status)
	return &m, nil
}

// normalizeTimestamp converts the driver's nullable timestamp into the single
// canonical form used past this package: a UTC *time.Time, nil while pending.
func normalizeTimestamp(ts pgtype.Timestamptz) *time.Time {
	if !ts.Valid || ts.InfinityModifier != pgtype.Finite {
		return nil
	}
	t := ts.Time.UTC()
	return &t
}
