package memory

import (
	"context"
	"sync"

	"vetfile-api/internal/domain/entity"
	"vetfile-api/internal/domain/repository"
)

type analysisRepository struct {
	mu       sync.RWMutex
	analyses map[string]*entity.Analysis
}

func NewAnalysisRepository() repository.AnalysisRepository {
	return &analysisRepository{analyses: map[string]*entity.Analysis{}}
}

func (r *analysisRepository) Create(ctx context.Context, an *entity.Analysis) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := *an
	r.analyses[an.ID] = &stored
	return nil
}

func (r *analysisRepository) FindByID(ctx context.Context, id string) (*entity.Analysis, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	an, ok := r.analyses[id]
	if !ok {
		return nil, nil
	}
	out := *an
	return &out, nil
}
