package repository

import (
	"context"

	"vetfile-api/internal/domain/entity"
)

type AnalysisRepository interface {
	Create(ctx context.Context, an *entity.Analysis) error
	FindByID(ctx context.Context, id string) (*entity.Analysis, error)
}
