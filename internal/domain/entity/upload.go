package entity

import "time"

type UploadStatus string

const (
	StatusUploaded  UploadStatus = "uploaded"
	StatusAnalyzing UploadStatus = "analyzing"
	StatusAnalyzed  UploadStatus = "analyzed"
	StatusFailed    UploadStatus = "failed"
)

// FileRecord describes one stored file inside an upload. Path and StoredName
// are server-side details and are never serialized to clients.
type FileRecord struct {
	ID           string    `db:"id" json:"id"`
	OriginalName string    `db:"original_name" json:"originalName"`
	StoredName   string    `db:"stored_name" json:"-"`
	Path         string    `db:"path" json:"-"`
	SizeBytes    int64     `db:"size_bytes" json:"sizeBytes"`
	MediaType    string    `db:"media_type" json:"mediaType"`
	DocumentType string    `db:"document_type" json:"documentType"`
	UploadedAt   time.Time `db:"uploaded_at" json:"uploadedAt"`
}

// Upload is a batch of files submitted together and tracked as one unit.
// AnalysisID is non-empty exactly when Status is StatusAnalyzed.
type Upload struct {
	ID         string       `db:"id" json:"id"`
	Files      []FileRecord `db:"-" json:"files"`
	Status     UploadStatus `db:"status" json:"status"`
	AnalysisID string       `db:"analysis_id" json:"analysisId,omitempty"`
	Error      string       `db:"error" json:"error,omitempty"`
	UploadedAt time.Time    `db:"uploaded_at" json:"uploadedAt"`
	AnalyzedAt *time.Time   `db:"analyzed_at" json:"analyzedAt,omitempty"`
}
