package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func setupArchiveMock(t *testing.T) (*PostgresArchiveRepository, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open sqlmock database: %v", err)
	}
	repo := NewPostgresArchiveRepository(db)
	cleanup := func() { db.Close() }
	return repo, mock, cleanup
}

func TestSaveSubmission_Success(t *testing.T) {
	repo, mock, cleanup := setupArchiveMock(t)
	defer cleanup()

	payload := []byte(`{"docType":"quotation"}`)
	receivedAt := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO submissions (doc_type, user_email, branch, payload, received_at) VALUES ($1, $2, $3, $4, $5)`)).
		WithArgs("quotation", "a@b.c", "test", payload, receivedAt).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := repo.SaveSubmission(context.Background(), "quotation", "a@b.c", "test", payload, receivedAt); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestSaveSubmission_Error(t *testing.T) {
	repo, mock, cleanup := setupArchiveMock(t)
	defer cleanup()

	wantErr := errors.New("insert failed")
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO submissions`)).
		WillReturnError(wantErr)

	err := repo.SaveSubmission(context.Background(), "quotation", "a@b.c", "test", []byte(`{}`), time.Now())
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected %v, got %v", wantErr, err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestCountByType(t *testing.T) {
	repo, mock, cleanup := setupArchiveMock(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM submissions WHERE doc_type = $1`)).
		WithArgs("quotation").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(7))

	count, err := repo.CountByType(context.Background(), "quotation")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 7 {
		t.Errorf("count = %d; want 7", count)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}
