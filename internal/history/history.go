package history

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/sakshya-ai/sakshya-web/internal/report"
)

// Record is one saved analysis summary. Records are written once after a
// successful analysis and never mutated; they belong to exactly one user.
type Record struct {
	ID               uuid.UUID      `json:"id"`
	UserID           uuid.UUID      `json:"user_id"`
	CaseID           string         `json:"case_id"`
	Title            string         `json:"title"`
	PreviewText      string         `json:"preview_text"`
	Actors           []string       `json:"actors"`
	DetectedLanguage string         `json:"detected_language"`
	Summary          report.Summary `json:"summary"`
	CreatedAt        time.Time      `json:"created_at"`
}

// Repository defines history persistence operations.
type Repository interface {
	Save(ctx context.Context, record *Record) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*Record, error)
}

// PostgresRepository implements Repository using PostgreSQL.
type PostgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository creates a new PostgresRepository.
func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Save inserts a new history record.
func (r *PostgresRepository) Save(ctx context.Context, record *Record) error {
	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now()
	}

	query := `
		INSERT INTO analysis_history
			(id, user_id, case_id, title, preview_text, actors, detected_language,
			 critical_count, material_count, minor_count, omission_count, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err := r.db.ExecContext(ctx, query,
		record.ID,
		record.UserID,
		record.CaseID,
		record.Title,
		record.PreviewText,
		pq.Array(record.Actors),
		record.DetectedLanguage,
		record.Summary.Critical,
		record.Summary.Material,
		record.Summary.Minor,
		record.Summary.Omission,
		record.CreatedAt,
	)

	return err
}

// ListByUser retrieves all history records owned by userID, newest first.
// Filtering by owner and the descending creation-time order are both load
// bearing for the history browser.
func (r *PostgresRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*Record, error) {
	query := `
		SELECT id, user_id, case_id, title, preview_text, actors, detected_language,
		       critical_count, material_count, minor_count, omission_count, created_at
		FROM analysis_history
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*Record
	for rows.Next() {
		record := &Record{}
		err := rows.Scan(
			&record.ID,
			&record.UserID,
			&record.CaseID,
			&record.Title,
			&record.PreviewText,
			pq.Array(&record.Actors),
			&record.DetectedLanguage,
			&record.Summary.Critical,
			&record.Summary.Material,
			&record.Summary.Minor,
			&record.Summary.Omission,
			&record.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return records, nil
}
