package dto

import (
	"time"

	"vetfile-api/internal/domain/entity"
)

type UploadedFileInfo struct {
	ID           string `json:"id"`
	OriginalName string `json:"originalName"`
	Size         int64  `json:"size"`
	DocumentType string `json:"documentType"`
}

type UploadResponse struct {
	UploadID string             `json:"uploadId"`
	Files    []UploadedFileInfo `json:"files"`
}

type AnalyzeResponse struct {
	UploadID   string                 `json:"uploadId"`
	AnalysisID string                 `json:"analysisId"`
	Analysis   entity.AnalysisPayload `json:"analysis"`
}

type AnalysisResponse struct {
	UploadID   string                 `json:"uploadId"`
	AnalysisID string                 `json:"analysisId"`
	Status     string                 `json:"status"`
	Source     string                 `json:"source"`
	Analysis   entity.AnalysisPayload `json:"analysis"`
	CreatedAt  time.Time              `json:"createdAt"`
}

type GenerateFormRequest struct {
	SelectedClaims []string `json:"selectedClaims"`
}

type FormEnvelope struct {
	FormData *entity.GeneratedForm `json:"formData"`
}

type GenerateFormResponse struct {
	Form FormEnvelope `json:"form"`
}

type HealthResponse struct {
	Status    string    `json:"status"`
	Uptime    float64   `json:"uptime"`
	Timestamp time.Time `json:"timestamp"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
