package memory

import (
	"context"
	"sync"
	"time"

	"vetfile-api/internal/domain/entity"
	"vetfile-api/internal/domain/repository"
	apperrors "vetfile-api/pkg/common/errors"
)

// uploadRepository keeps uploads in a process-wide map. Entries live for the
// process lifetime only; there is no eviction.
type uploadRepository struct {
	mu      sync.RWMutex
	uploads map[string]*entity.Upload
}

func NewUploadRepository() repository.UploadRepository {
	return &uploadRepository{uploads: map[string]*entity.Upload{}}
}

func (r *uploadRepository) Create(ctx context.Context, up *entity.Upload) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.uploads[up.ID] = copyUpload(up)
	return nil
}

func (r *uploadRepository) FindByID(ctx context.Context, id string) (*entity.Upload, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	up, ok := r.uploads[id]
	if !ok {
		return nil, nil
	}
	return copyUpload(up), nil
}

func (r *uploadRepository) UpdateStatus(ctx context.Context, id string, status entity.UploadStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	up, ok := r.uploads[id]
	if !ok {
		return apperrors.ErrNotFound
	}
	up.Status = status
	return nil
}

func (r *uploadRepository) BindAnalysis(ctx context.Context, id, analysisID string, analyzedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	up, ok := r.uploads[id]
	if !ok {
		return apperrors.ErrNotFound
	}
	up.Status = entity.StatusAnalyzed
	up.AnalysisID = analysisID
	at := analyzedAt
	up.AnalyzedAt = &at
	up.Error = ""
	return nil
}

func (r *uploadRepository) MarkFailed(ctx context.Context, id, message string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	up, ok := r.uploads[id]
	if !ok {
		return apperrors.ErrNotFound
	}
	up.Status = entity.StatusFailed
	up.Error = message
	// keep the analysisId/status invariant: only analyzed uploads carry one
	up.AnalysisID = ""
	up.AnalyzedAt = nil
	return nil
}

// copyUpload keeps callers from aliasing the stored record.
func copyUpload(up *entity.Upload) *entity.Upload {
	out := *up
	out.Files = make([]entity.FileRecord, len(up.Files))
	copy(out.Files, up.Files)
	if up.AnalyzedAt != nil {
		at := *up.AnalyzedAt
		out.AnalyzedAt = &at
	}
	return &out
}
