package handler

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"vetfile-api/internal/delivery/http/dto"
	"vetfile-api/internal/usecase/claims"
	apperrors "vetfile-api/pkg/common/errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

var allowedMediaTypes = map[string]bool{
	"application/pdf": true,
	"image/jpeg":      true,
	"image/png":       true,
}

type DocumentHandler struct {
	tracker     *claims.Tracker
	uploadDir   string
	maxFiles    int
	maxFileSize int64
	startedAt   time.Time
}

func NewDocumentHandler(tracker *claims.Tracker, uploadDir string, maxFiles int, maxFileSize int64) *DocumentHandler {
	return &DocumentHandler{
		tracker:     tracker,
		uploadDir:   uploadDir,
		maxFiles:    maxFiles,
		maxFileSize: maxFileSize,
		startedAt:   time.Now(),
	}
}

// Upload godoc
// @Summary      Upload service documents
// @Description  Upload up to 10 PDF or image files for claims analysis
// @Tags         Documents
// @Accept       multipart/form-data
// @Produce      json
// @Param        documents     formData  file    true   "Files to upload"
// @Param        documentType  formData  string  false  "Per-file classification tag (e.g. DD214)"
// @Success      201  {object}  dto.UploadResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/documents/upload [post]
func (h *DocumentHandler) Upload(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "Invalid multipart form"})
	}

	files := form.File["documents"]
	if len(files) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "No files uploaded"})
	}
	if len(files) > h.maxFiles {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: fmt.Sprintf("Too many files (max %d)", h.maxFiles),
		})
	}

	// validate the whole batch before storing anything
	for _, file := range files {
		mediaType := file.Header.Get("Content-Type")
		if !allowedMediaTypes[mediaType] {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: fmt.Sprintf("Unsupported file type %q for %s", mediaType, file.Filename),
			})
		}
		if file.Size > h.maxFileSize {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: fmt.Sprintf("File %s exceeds the %d byte limit", file.Filename, h.maxFileSize),
			})
		}
	}

	docTypes := form.Value["documentType"]

	var inputs []claims.FileInput
	for i, file := range files {
		storedName := fmt.Sprintf("%d_%s_%s", time.Now().Unix(), uuid.New().String()[:8], sanitizeFilename(file.Filename))
		path := filepath.Join(h.uploadDir, storedName)
		if err := c.SaveFile(file, path); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "Failed to store file"})
		}

		docType := ""
		if i < len(docTypes) {
			docType = docTypes[i]
		}

		inputs = append(inputs, claims.FileInput{
			OriginalName: file.Filename,
			StoredName:   storedName,
			Path:         path,
			SizeBytes:    file.Size,
			MediaType:    file.Header.Get("Content-Type"),
			DocumentType: docType,
		})
	}

	up, err := h.tracker.CreateUpload(c.Context(), inputs)
	if err != nil {
		return handleError(c, err)
	}

	resp := dto.UploadResponse{UploadID: up.ID, Files: []dto.UploadedFileInfo{}}
	for _, f := range up.Files {
		resp.Files = append(resp.Files, dto.UploadedFileInfo{
			ID:           f.ID,
			OriginalName: f.OriginalName,
			Size:         f.SizeBytes,
			DocumentType: f.DocumentType,
		})
	}

	return c.Status(fiber.StatusCreated).JSON(resp)
}

// Analyze godoc
// @Summary      Analyze an upload
// @Description  Extract text from the uploaded documents and run the claims analysis
// @Tags         Documents
// @Produce      json
// @Param        uploadId  path  string  true  "Upload ID"
// @Success      200  {object}  dto.AnalyzeResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/documents/analyze/{uploadId} [post]
func (h *DocumentHandler) Analyze(c *fiber.Ctx) error {
	uploadID := c.Params("uploadId")

	an, err := h.tracker.RunAnalysis(c.Context(), uploadID)
	if err != nil {
		return handleError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(dto.AnalyzeResponse{
		UploadID:   uploadID,
		AnalysisID: an.ID,
		Analysis:   an.Payload,
	})
}

// GetAnalysis godoc
// @Summary      Fetch the analysis of an upload
// @Tags         Documents
// @Produce      json
// @Param        uploadId  path  string  true  "Upload ID"
// @Success      200  {object}  dto.AnalysisResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/documents/analysis/{uploadId} [get]
func (h *DocumentHandler) GetAnalysis(c *fiber.Ctx) error {
	uploadID := c.Params("uploadId")

	up, an, err := h.tracker.GetAnalysis(c.Context(), uploadID)
	if err != nil {
		return handleError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(dto.AnalysisResponse{
		UploadID:   up.ID,
		AnalysisID: an.ID,
		Status:     string(up.Status),
		Source:     an.Source,
		Analysis:   an.Payload,
		CreatedAt:  an.CreatedAt,
	})
}

// GenerateForm godoc
// @Summary      Generate a pre-filled disability claim form
// @Description  Project the selected claims of an analyzed upload into the VA Form 21-526EZ schema
// @Tags         Documents
// @Accept       json
// @Produce      json
// @Param        uploadId  path  string  true  "Upload ID"
// @Param        request   body  dto.GenerateFormRequest  true  "Selected claim conditions"
// @Success      200  {object}  dto.GenerateFormResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/documents/generate-form/{uploadId} [post]
func (h *DocumentHandler) GenerateForm(c *fiber.Ctx) error {
	uploadID := c.Params("uploadId")

	var req dto.GenerateFormRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "Invalid request body"})
	}

	form, err := h.tracker.BuildForm(c.Context(), uploadID, req.SelectedClaims)
	if err != nil {
		return handleError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(dto.GenerateFormResponse{
		Form: dto.FormEnvelope{FormData: form},
	})
}

// Health godoc
// @Summary      Service health
// @Tags         System
// @Produce      json
// @Success      200  {object}  dto.HealthResponse
// @Router       /health [get]
func (h *DocumentHandler) Health(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(dto.HealthResponse{
		Status:    "ok",
		Uptime:    time.Since(h.startedAt).Seconds(),
		Timestamp: time.Now(),
	})
}

func handleError(c *fiber.Ctx, err error) error {
	appErr := apperrors.MapError(err)
	return c.Status(appErr.Code).JSON(dto.ErrorResponse{Error: appErr.Message})
}

// sanitizeFilename keeps stored names flat and shell-safe.
func sanitizeFilename(name string) string {
	base := filepath.Base(name)
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '.', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, base)
}
