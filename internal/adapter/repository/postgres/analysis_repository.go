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

type analysisRepository struct {
	db *sqlx.DB
}

func NewAnalysisRepository(db *sqlx.DB) repository.AnalysisRepository {
	return &analysisRepository{db: db}
}

type analysisRow struct {
	ID        string    `db:"id"`
	UploadID  string    `db:"upload_id"`
	Source    string    `db:"source"`
	Payload   []byte    `db:"payload"`
	CreatedAt time.Time `db:"created_at"`
}

func (r *analysisRepository) Create(ctx context.Context, an *entity.Analysis) error {
	payload, err := json.Marshal(an.Payload)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO analyses (id, upload_id, source, payload, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err = r.db.ExecContext(ctx, query, an.ID, an.UploadID, an.Source, payload, an.CreatedAt)
	return err
}

func (r *analysisRepository) FindByID(ctx context.Context, id string) (*entity.Analysis, error) {
	var row analysisRow
	query := `SELECT id, upload_id, source, payload, created_at FROM analyses WHERE id = $1`
	err := r.db.GetContext(ctx, &row, query, id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	an := &entity.Analysis{
		ID:        row.ID,
		UploadID:  row.UploadID,
		Source:    row.Source,
		CreatedAt: row.CreatedAt,
	}
	if err := json.Unmarshal(row.Payload, &an.Payload); err != nil {
		return nil, err
	}
	return an, nil
}
