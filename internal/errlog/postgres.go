package errlog

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type execer interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
}

// PostgresSink stores each record as a row of the error_events table.
type PostgresSink struct {
	DB      execer
	Timeout time.Duration
}

func NewPostgresSink(pool *pgxpool.Pool) *PostgresSink {
	return &PostgresSink{DB: pool, Timeout: 3 * time.Second}
}

func (s *PostgresSink) Send(ctx context.Context, d Details) error {
	contextJSON := []byte("{}")
	if len(d.Context) > 0 {
		b, err := json.Marshal(d.Context)
		if err != nil {
			return fmt.Errorf("encode error context: %w", err)
		}
		contextJSON = b
	}

	query := `
		INSERT INTO error_events (occurred_at, message, code, status, stack, user_id, request_id, context)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	args := []any{d.Timestamp, d.Message, d.Code, d.Status, d.Stack, d.UserID, d.RequestID, contextJSON}

	if s.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.Timeout)
		defer cancel()
	}

	_, err := s.DB.Exec(ctx, query, args...)
	return err
}
