package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"vetfile-api/internal/domain/entity"
	"vetfile-api/internal/domain/repository"

	"github.com/jmoiron/sqlx"
)

type uploadRepository struct {
	db *sqlx.DB
}

func NewUploadRepository(db *sqlx.DB) repository.UploadRepository {
	return &uploadRepository{db: db}
}

// uploadRow maps the uploads table; files are stored as a JSONB array.
type uploadRow struct {
	ID         string         `db:"id"`
	Files      []byte         `db:"files"`
	Status     string         `db:"status"`
	AnalysisID sql.NullString `db:"analysis_id"`
	Error      sql.NullString `db:"error"`
	UploadedAt time.Time      `db:"uploaded_at"`
	AnalyzedAt sql.NullTime   `db:"analyzed_at"`
}

func (r *uploadRepository) Create(ctx context.Context, up *entity.Upload) error {
	files, err := json.Marshal(up.Files)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO uploads (id, files, status, uploaded_at)
		VALUES ($1, $2, $3, $4)
	`
	_, err = r.db.ExecContext(ctx, query, up.ID, files, up.Status, up.UploadedAt)
	return err
}

func (r *uploadRepository) FindByID(ctx context.Context, id string) (*entity.Upload, error) {
	var row uploadRow
	query := `SELECT id, files, status, analysis_id, error, uploaded_at, analyzed_at FROM uploads WHERE id = $1`
	err := r.db.GetContext(ctx, &row, query, id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	up := &entity.Upload{
		ID:         row.ID,
		Status:     entity.UploadStatus(row.Status),
		AnalysisID: row.AnalysisID.String,
		Error:      row.Error.String,
		UploadedAt: row.UploadedAt,
	}
	if row.AnalyzedAt.Valid {
		at := row.AnalyzedAt.Time
		up.AnalyzedAt = &at
	}
	if err := json.Unmarshal(row.Files, &up.Files); err != nil {
		return nil, err
	}
	return up, nil
}

func (r *uploadRepository) UpdateStatus(ctx context.Context, id string, status entity.UploadStatus) error {
	query := `UPDATE uploads SET status = $1 WHERE id = $2`
	_, err := r.db.ExecContext(ctx, query, status, id)
	return err
}

func (r *uploadRepository) BindAnalysis(ctx context.Context, id, analysisID string, analyzedAt time.Time) error {
	query := `UPDATE uploads SET status = $1, analysis_id = $2, analyzed_at = $3, error = NULL WHERE id = $4`
	_, err := r.db.ExecContext(ctx, query, entity.StatusAnalyzed, analysisID, analyzedAt, id)
	return err
}

func (r *uploadRepository) MarkFailed(ctx context.Context, id, message string) error {
	query := `UPDATE uploads SET status = $1, error = $2, analysis_id = NULL, analyzed_at = NULL WHERE id = $3`
	_, err := r.db.ExecContext(ctx, query, entity.StatusFailed, message, id)
	return err
}
