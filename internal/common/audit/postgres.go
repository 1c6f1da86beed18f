package audit

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"

	"github.com/lib/pq"
)

var tableNamePattern = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

// PostgresSink appends records to a table.
type PostgresSink struct {
	db    *sql.DB
	table string
}

func NewPostgresSink(db *sql.DB, table string) (*PostgresSink, error) {
	if !tableNamePattern.MatchString(table) {
		return nil, fmt.Errorf("invalid audit table name %q", table)
	}
	return &PostgresSink{db: db, table: table}, nil
}

func (s *PostgresSink) Name() string { return "postgres" }

// EnsureSchema creates the audit table when missing.
func (s *PostgresSink) EnsureSchema(ctx context.Context) error {
	query := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
	id UUID PRIMARY KEY,
	tool TEXT NOT NULL,
	status TEXT NOT NULL,
	error_code TEXT,
	fields TEXT[] NOT NULL,
	duration_ms BIGINT NOT NULL,
	submitted_at TIMESTAMPTZ NOT NULL
)`, s.table)

	if _, err := s.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("failed to create audit table: %w", err)
	}
	return nil
}

func (s *PostgresSink) Write(ctx context.Context, rec Record) error {
	query := fmt.Sprintf(
		`INSERT INTO %s (id, tool, status, error_code, fields, duration_ms, submitted_at) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		s.table,
	)

	var errorCode sql.NullString
	if rec.ErrorCode != "" {
		errorCode = sql.NullString{String: rec.ErrorCode, Valid: true}
	}

	_, err := s.db.ExecContext(ctx, query,
		rec.ID, rec.Tool, rec.Status, errorCode, pq.Array(rec.Fields), rec.DurationMs, rec.SubmittedAt,
	)
	if err != nil {
		return fmt.Errorf("postgres audit write failed: %w", err)
	}
	return nil
}
