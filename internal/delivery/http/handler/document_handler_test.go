package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"
	"time"

	"vetfile-api/internal/adapter/mockai"
	"vetfile-api/internal/adapter/repository/memory"
	"vetfile-api/internal/delivery/http/dto"
	"vetfile-api/internal/usecase/claims"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()

	tracker := claims.NewTracker(
		memory.NewUploadRepository(),
		memory.NewAnalysisRepository(),
		mockai.NewAnalyzer(),
		5*time.Second,
	)
	h := NewDocumentHandler(tracker, t.TempDir(), 10, 20*1024*1024)

	app := fiber.New()
	app.Get("/health", h.Health)
	docs := app.Group("/api/documents")
	docs.Post("/upload", h.Upload)
	docs.Post("/analyze/:uploadId", h.Analyze)
	docs.Get("/analysis/:uploadId", h.GetAnalysis)
	docs.Post("/generate-form/:uploadId", h.GenerateForm)
	return app
}

type uploadFile struct {
	name        string
	contentType string
	data        []byte
}

func multipartBody(t *testing.T, files []uploadFile, docTypes []string) (*bytes.Buffer, string) {
	t.Helper()

	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	for _, f := range files {
		hdr := textproto.MIMEHeader{}
		hdr.Set("Content-Disposition", fmt.Sprintf(`form-data; name="documents"; filename=%q`, f.name))
		hdr.Set("Content-Type", f.contentType)
		part, err := w.CreatePart(hdr)
		require.NoError(t, err)
		_, err = part.Write(f.data)
		require.NoError(t, err)
	}
	for _, dt := range docTypes {
		require.NoError(t, w.WriteField("documentType", dt))
	}
	require.NoError(t, w.Close())
	return body, w.FormDataContentType()
}

func doUpload(t *testing.T, app *fiber.App, files []uploadFile, docTypes []string) (*http.Response, dto.UploadResponse) {
	t.Helper()

	body, contentType := multipartBody(t, files, docTypes)
	req := httptest.NewRequest(http.MethodPost, "/api/documents/upload", body)
	req.Header.Set("Content-Type", contentType)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	var out dto.UploadResponse
	if resp.StatusCode == http.StatusCreated {
		decodeBody(t, resp, &out)
	}
	return resp, out
}

func decodeBody(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, out))
}

func TestHealth(t *testing.T) {
	app := newTestApp(t)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var out dto.HealthResponse
	decodeBody(t, resp, &out)
	assert.Equal(t, "ok", out.Status)
	assert.False(t, out.Timestamp.IsZero())
}

func TestUploadNoFiles(t *testing.T) {
	app := newTestApp(t)

	resp, _ := doUpload(t, app, nil, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestUploadRejectsUnsupportedType(t *testing.T) {
	app := newTestApp(t)

	resp, _ := doUpload(t, app, []uploadFile{
		{name: "notes.txt", contentType: "text/plain", data: []byte("hello")},
	}, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestUploadRejectsTooManyFiles(t *testing.T) {
	app := newTestApp(t)

	var files []uploadFile
	for i := 0; i < 11; i++ {
		files = append(files, uploadFile{
			name:        fmt.Sprintf("doc%d.png", i),
			contentType: "image/png",
			data:        []byte{0x89, 0x50},
		})
	}
	resp, _ := doUpload(t, app, files, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestUploadAnalyzeGenerateFormFlow(t *testing.T) {
	app := newTestApp(t)

	// upload one PDF tagged DD214
	resp, up := doUpload(t, app, []uploadFile{
		{name: "dd214.pdf", contentType: "application/pdf", data: []byte("%PDF-1.4 stub")},
	}, []string{"DD214"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	require.NotEmpty(t, up.UploadID)
	require.Len(t, up.Files, 1)
	assert.Equal(t, "DD214", up.Files[0].DocumentType)
	assert.Equal(t, "dd214.pdf", up.Files[0].OriginalName)

	// analyze with the mock provider
	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/api/documents/analyze/"+up.UploadID, nil), -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var analyzed dto.AnalyzeResponse
	decodeBody(t, resp, &analyzed)
	assert.Equal(t, up.UploadID, analyzed.UploadID)
	assert.NotEmpty(t, analyzed.AnalysisID)
	assert.Equal(t, "John A. Smith", analyzed.Analysis.VeteranInfo.Name)
	assert.Len(t, analyzed.Analysis.PotentialClaims, 3)

	// fetch the stored analysis
	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/api/documents/analysis/"+up.UploadID, nil), -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var fetched dto.AnalysisResponse
	decodeBody(t, resp, &fetched)
	assert.Equal(t, analyzed.AnalysisID, fetched.AnalysisID)
	assert.Equal(t, "analyzed", fetched.Status)
	assert.Equal(t, "mock", fetched.Source)

	// generate the form for a single selected claim
	body := strings.NewReader(`{"selectedClaims":["Tinnitus"]}`)
	req := httptest.NewRequest(http.MethodPost, "/api/documents/generate-form/"+up.UploadID, body)
	req.Header.Set("Content-Type", "application/json")
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var form dto.GenerateFormResponse
	decodeBody(t, resp, &form)
	require.NotNil(t, form.Form.FormData)
	assert.Equal(t, "VA Form 21-526EZ", form.Form.FormData.FormType)
	require.Len(t, form.Form.FormData.Disabilities, 1)
	assert.Equal(t, "Tinnitus", form.Form.FormData.Disabilities[0].Condition)
	assert.Empty(t, form.Form.FormData.Veteran.SSN)
}

func TestAnalyzeUnknownUpload(t *testing.T) {
	app := newTestApp(t)

	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/api/documents/analyze/unknown-id", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestGetAnalysisBeforeAnalyze(t *testing.T) {
	app := newTestApp(t)

	_, up := doUpload(t, app, []uploadFile{
		{name: "record.png", contentType: "image/png", data: []byte{0x89, 0x50}},
	}, nil)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/documents/analysis/"+up.UploadID, nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var out dto.ErrorResponse
	decodeBody(t, resp, &out)
	assert.Contains(t, out.Error, "uploaded")
}

func TestGenerateFormEmptySelection(t *testing.T) {
	app := newTestApp(t)

	_, up := doUpload(t, app, []uploadFile{
		{name: "record.png", contentType: "image/png", data: []byte{0x89, 0x50}},
	}, nil)

	body := strings.NewReader(`{"selectedClaims":[]}`)
	req := httptest.NewRequest(http.MethodPost, "/api/documents/generate-form/"+up.UploadID, body)
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestGenerateFormNeverAnalyzed(t *testing.T) {
	app := newTestApp(t)

	_, up := doUpload(t, app, []uploadFile{
		{name: "record.png", contentType: "image/png", data: []byte{0x89, 0x50}},
	}, nil)

	body := strings.NewReader(`{"selectedClaims":["Tinnitus"]}`)
	req := httptest.NewRequest(http.MethodPost, "/api/documents/generate-form/"+up.UploadID, body)
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
