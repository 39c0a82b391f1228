package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/desertthunder/pictx/internal/models"
	"github.com/desertthunder/pictx/internal/shared"
)

// UploadHistoryRepository records upload submissions.
type UploadHistoryRepository struct {
	db *sql.DB
}

// NewUploadHistoryRepository creates a new [UploadHistoryRepository] with the given database connection
func NewUploadHistoryRepository(db *sql.DB) *UploadHistoryRepository {
	return &UploadHistoryRepository{db: db}
}

// Create inserts a record, assigning its ID and creation time.
func (r *UploadHistoryRepository) Create(rec *models.UploadRecord) error {
	if rec.SessionID == "" {
		return fmt.Errorf("%w: upload record requires a session id", shared.ErrInvalidInput)
	}
	if rec.FileCount < 0 || rec.SkippedCount < 0 {
		return fmt.Errorf("%w: negative file count", shared.ErrInvalidInput)
	}

	rec.ID = shared.GenerateID()
	rec.CreatedAt = time.Now().UTC()

	query := `
		INSERT INTO upload_history (id, session_id, file_count, skipped_count, success, message, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.Exec(query, rec.ID, rec.SessionID, rec.FileCount, rec.SkippedCount, boolToInt(rec.Success), rec.Message, rec.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert upload record: %w", err)
	}

	return nil
}

// List returns the most recent records first. A zero limit returns all of them.
func (r *UploadHistoryRepository) List(limit int) ([]*models.UploadRecord, error) {
	query := `
		SELECT id, session_id, file_count, skipped_count, success, message, created_at
		FROM upload_history
		ORDER BY created_at DESC, rowid DESC
	`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	return r.query(query, args...)
}

// ListBySession returns the records of one session in submission order.
func (r *UploadHistoryRepository) ListBySession(sessionID string) ([]*models.UploadRecord, error) {
	query := `
		SELECT id, session_id, file_count, skipped_count, success, message, created_at
		FROM upload_history
		WHERE session_id = ?
		ORDER BY created_at ASC, rowid ASC
	`
	return r.query(query, sessionID)
}

func (r *UploadHistoryRepository) query(query string, args ...any) ([]*models.UploadRecord, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query upload history: %w", err)
	}
	defer rows.Close()

	var records []*models.UploadRecord
	for rows.Next() {
		var (
			rec     models.UploadRecord
			success int
		)

		err := rows.Scan(&rec.ID, &rec.SessionID, &rec.FileCount, &rec.SkippedCount, &success, &rec.Message, &rec.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan upload record: %w", err)
		}
		rec.Success = success == 1

		records = append(records, &rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return records, nil
}
