// Package repository provides persistence implementations for the stub
// webhook's submission archive.
package repository

import (
	"context"
	"database/sql"
	"time"
)

// PostgresArchiveRepository records received submissions in PostgreSQL.
type PostgresArchiveRepository struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
}

// NewPostgresArchiveRepository creates a new PostgresArchiveRepository with
// the given database connection. db must be a valid *sql.DB connected to a
// PostgreSQL instance.
func NewPostgresArchiveRepository(db *sql.DB) *PostgresArchiveRepository {
	return &PostgresArchiveRepository{DB: db}
}

// SaveSubmission stores one received submission payload.
// payload must be valid JSON; the column is JSONB.
func (r *PostgresArchiveRepository) SaveSubmission(ctx context.Context, docType, userEmail, branch string, payload []byte, receivedAt time.Time) error {
	_, err := r.DB.ExecContext(
		ctx,
		`INSERT INTO submissions (doc_type, user_email, branch, payload, received_at) VALUES ($1, $2, $3, $4, $5)`,
		docType, userEmail, branch, payload, receivedAt,
	)
	return err
}

// CountByType returns how many submissions of the given docType have been
// archived.
func (r *PostgresArchiveRepository) CountByType(ctx context.Context, docType string) (int64, error) {
	var count int64
	err := r.DB.QueryRowContext(
		ctx,
		`SELECT COUNT(*) FROM submissions WHERE doc_type = $1`,
		docType,
	).Scan(&count)
	return count, err
}
