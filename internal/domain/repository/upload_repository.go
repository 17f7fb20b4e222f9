package repository

import (
	"context"
	"time"

	"vetfile-api/internal/domain/entity"
)

type UploadRepository interface {
	Create(ctx context.Context, up *entity.Upload) error
	FindByID(ctx context.Context, id string) (*entity.Upload, error)
	UpdateStatus(ctx context.Context, id string, status entity.UploadStatus) error
	// BindAnalysis sets status=analyzed, analysisId and analyzedAt in one
	// write so the status/analysisId invariant can never be observed torn.
	BindAnalysis(ctx context.Context, id, analysisID string, analyzedAt time.Time) error
	MarkFailed(ctx context.Context, id, message string) error
}
