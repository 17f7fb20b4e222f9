package claims

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"vetfile-api/internal/domain/entity"
	"vetfile-api/internal/domain/repository"
	apperrors "vetfile-api/pkg/common/errors"

	"github.com/google/uuid"
)

// Analyzer produces a structured claims analysis from combined document text.
type Analyzer interface {
	Name() string
	Analyze(ctx context.Context, documentText string) (*entity.AnalysisPayload, error)
}

// FileInput describes one already-stored file for CreateUpload.
type FileInput struct {
	OriginalName string
	StoredName   string
	Path         string
	SizeBytes    int64
	MediaType    string
	DocumentType string
}

// Tracker owns the upload and analysis records and arbitrates their status
// transitions. All mutation of either entity goes through it.
type Tracker struct {
	uploads  repository.UploadRepository
	analyses repository.AnalysisRepository

	extractor *TextExtractor
	analyzer  Analyzer
	timeout   time.Duration

	// per-upload locks serialize RunAnalysis for one id, so concurrent
	// retries run in sequence instead of racing the status writes. The map
	// grows with the upload store and is never reclaimed, matching the
	// store's own process-lifetime, no-eviction retention.
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewTracker(
	uploads repository.UploadRepository,
	analyses repository.AnalysisRepository,
	analyzer Analyzer,
	timeout time.Duration,
) *Tracker {
	return &Tracker{
		uploads:   uploads,
		analyses:  analyses,
		extractor: NewTextExtractor(),
		analyzer:  analyzer,
		timeout:   timeout,
		locks:     map[string]*sync.Mutex{},
	}
}

// CreateUpload registers a new batch of stored files.
func (t *Tracker) CreateUpload(ctx context.Context, inputs []FileInput) (*entity.Upload, error) {
	if len(inputs) == 0 {
		return nil, apperrors.NewAppError(http.StatusBadRequest, "no files provided", apperrors.ErrInvalidInput)
	}

	now := time.Now()
	up := &entity.Upload{
		ID:         uuid.New().String(),
		Status:     entity.StatusUploaded,
		UploadedAt: now,
	}

	for _, in := range inputs {
		docType := in.DocumentType
		if docType == "" {
			docType = "unknown"
		}
		up.Files = append(up.Files, entity.FileRecord{
			ID:           uuid.New().String(),
			OriginalName: in.OriginalName,
			StoredName:   in.StoredName,
			Path:         in.Path,
			SizeBytes:    in.SizeBytes,
			MediaType:    in.MediaType,
			DocumentType: docType,
			UploadedAt:   now,
		})
	}

	if err := t.uploads.Create(ctx, up); err != nil {
		return nil, err
	}

	return up, nil
}

// BeginAnalysis moves an upload to the analyzing state. It is re-entrant: a
// repeated call overwrites the status and proceeds.
func (t *Tracker) BeginAnalysis(ctx context.Context, uploadID string) error {
	up, err := t.uploads.FindByID(ctx, uploadID)
	if err != nil {
		return err
	}
	if up == nil {
		return apperrors.NewAppError(http.StatusNotFound, "upload not found", apperrors.ErrNotFound)
	}
	return t.uploads.UpdateStatus(ctx, uploadID, entity.StatusAnalyzing)
}

// RunAnalysis extracts text from every file of the upload, sends the combined
// text to the analyzer and stores the resulting analysis. A provider failure
// is absorbed into the fallback payload; callers always receive a well-formed
// analysis. Each successful run creates a fresh Analysis and rebinds the
// upload's analysisId.
func (t *Tracker) RunAnalysis(ctx context.Context, uploadID string) (*entity.Analysis, error) {
	lock := t.lockFor(uploadID)
	lock.Lock()
	defer lock.Unlock()

	up, err := t.uploads.FindByID(ctx, uploadID)
	if err != nil {
		return nil, err
	}
	if up == nil {
		return nil, apperrors.NewAppError(http.StatusNotFound, "upload not found", apperrors.ErrNotFound)
	}

	if err := t.uploads.UpdateStatus(ctx, uploadID, entity.StatusAnalyzing); err != nil {
		return nil, err
	}
	log.Printf("Starting analysis for upload %s (%d files)", uploadID, len(up.Files))

	combined := t.combineText(up.Files)

	actx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()

	source := t.analyzer.Name()
	payload, aerr := t.analyzer.Analyze(actx, combined)
	if aerr != nil {
		log.Printf("Analysis provider failed for upload %s, substituting fallback: %v", uploadID, aerr)
		payload = fallbackPayload()
		source = entity.SourceFallback
	}

	an := &entity.Analysis{
		ID:        uuid.New().String(),
		UploadID:  uploadID,
		Source:    source,
		Payload:   *payload,
		CreatedAt: time.Now(),
	}

	if err := t.analyses.Create(ctx, an); err != nil {
		return nil, t.failUpload(ctx, uploadID, err)
	}
	if err := t.uploads.BindAnalysis(ctx, uploadID, an.ID, time.Now()); err != nil {
		return nil, t.failUpload(ctx, uploadID, err)
	}

	log.Printf("Analysis %s completed for upload %s (source=%s, %d claims)", an.ID, uploadID, source, len(an.Payload.PotentialClaims))
	return an, nil
}

// GetAnalysis returns the upload together with its current analysis. It
// never mutates either record.
func (t *Tracker) GetAnalysis(ctx context.Context, uploadID string) (*entity.Upload, *entity.Analysis, error) {
	up, err := t.uploads.FindByID(ctx, uploadID)
	if err != nil {
		return nil, nil, err
	}
	if up == nil {
		return nil, nil, apperrors.NewAppError(http.StatusNotFound, "upload not found", apperrors.ErrNotFound)
	}
	if up.AnalysisID == "" {
		msg := fmt.Sprintf("analysis not yet performed (status: %s)", up.Status)
		return nil, nil, apperrors.NewAppError(http.StatusBadRequest, msg, apperrors.ErrNotReady)
	}

	an, err := t.analyses.FindByID(ctx, up.AnalysisID)
	if err != nil {
		return nil, nil, err
	}
	if an == nil {
		// should not happen: BindAnalysis only ever stores an id that was
		// just created
		return nil, nil, apperrors.NewAppError(http.StatusNotFound, "analysis not found", apperrors.ErrNotFound)
	}

	return up, an, nil
}

// BuildForm projects the stored analysis and the caller's selected conditions
// into the disability claim form schema. Pure read; nothing is persisted.
func (t *Tracker) BuildForm(ctx context.Context, uploadID string, selected []string) (*entity.GeneratedForm, error) {
	if len(selected) == 0 {
		return nil, apperrors.NewAppError(http.StatusBadRequest, "no claims selected", apperrors.ErrInvalidInput)
	}

	up, err := t.uploads.FindByID(ctx, uploadID)
	if err != nil {
		return nil, err
	}
	if up == nil {
		return nil, apperrors.NewAppError(http.StatusNotFound, "upload not found", apperrors.ErrNotFound)
	}
	if up.AnalysisID == "" {
		return nil, apperrors.NewAppError(http.StatusNotFound, "no analysis exists for this upload", apperrors.ErrNotFound)
	}

	an, err := t.analyses.FindByID(ctx, up.AnalysisID)
	if err != nil {
		return nil, err
	}
	if an == nil {
		return nil, apperrors.NewAppError(http.StatusNotFound, "analysis not found", apperrors.ErrNotFound)
	}

	return BuildForm(an, selected), nil
}

// combineText extracts every file in original upload order and joins the
// sections under per-document headers, so prompt input is deterministic.
func (t *Tracker) combineText(files []entity.FileRecord) string {
	var sections []string
	for _, f := range files {
		header := fmt.Sprintf("--- Document: %s (%s) ---", f.OriginalName, f.DocumentType)
		sections = append(sections, header+"\n"+t.extractor.Extract(f))
	}
	return strings.Join(sections, "\n\n")
}

func (t *Tracker) failUpload(ctx context.Context, uploadID string, cause error) error {
	log.Printf("Analysis failed for upload %s: %v", uploadID, cause)
	if err := t.uploads.MarkFailed(ctx, uploadID, cause.Error()); err != nil {
		log.Printf("Failed to mark upload %s as failed: %v", uploadID, err)
	}
	return apperrors.NewAppError(http.StatusInternalServerError, "analysis failed", cause)
}

func (t *Tracker) lockFor(uploadID string) *sync.Mutex {
	t.mu.Lock()
	defer t.mu.Unlock()
	lock, ok := t.locks[uploadID]
	if !ok {
		lock = &sync.Mutex{}
		t.locks[uploadID] = lock
	}
	return lock
}
