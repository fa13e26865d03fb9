package http

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apierrors "lavadash/internal/errors"
	"lavadash/internal/services"
	"lavadash/pkg/contracts/domain"
)

type stubReportService struct {
	reports     []services.ReportFile
	listErr     error
	parseResult domain.ParseResult
	parseErr    error
	summary     *domain.DashboardSummary
	summaryErr  error

	lastUploadName string
	lastUploadData []byte
}

func (s *stubReportService) ListReports(ctx context.Context) ([]services.ReportFile, error) {
	return s.reports, s.listErr
}

func (s *stubReportService) ParseReport(ctx context.Context, name string) (domain.ParseResult, error) {
	return s.parseResult, s.parseErr
}

func (s *stubReportService) ParseUpload(ctx context.Context, name string, data []byte) (domain.ParseResult, error) {
	s.lastUploadName = name
	s.lastUploadData = data
	return s.parseResult, s.parseErr
}

func (s *stubReportService) Dashboard(ctx context.Context, name string) (*domain.DashboardSummary, error) {
	return s.summary, s.summaryErr
}

func newTestHandler(svc ReportServiceInterface, maxUpload int64) *ReportHandler {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	return NewReportHandler(svc, logger, apierrors.NewErrorHandler(logger), maxUpload)
}

func TestReportHandler_ListReports(t *testing.T) {
	svc := &stubReportService{reports: []services.ReportFile{
		{Name: "marco.csv", Size: 1024},
		{Name: "abril.xlsx", Size: 2048},
	}}
	h := newTestHandler(svc, 1<<20)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	h.Routes().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Reports []services.ReportFile `json:"reports"`
		Count   int                   `json:"count"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 2, body.Count)
	assert.Equal(t, "marco.csv", body.Reports[0].Name)
}

func TestReportHandler_GetReport(t *testing.T) {
	svc := &stubReportService{parseResult: domain.ParseResult{
		Metadata: domain.DashboardMetadata{
			ReportType: domain.ReportTypeSelfService,
			UnitName:   "Maria",
		},
	}}
	h := newTestHandler(svc, 1<<20)

	req := httptest.NewRequest(http.MethodGet, "/marco.csv", nil)
	rec := httptest.NewRecorder()
	h.Routes().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var result domain.ParseResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, "Maria", result.Metadata.UnitName)
}

func TestReportHandler_GetReport_NotFound(t *testing.T) {
	svc := &stubReportService{parseErr: apierrors.ErrReportNotFound}
	h := newTestHandler(svc, 1<<20)

	req := httptest.NewRequest(http.MethodGet, "/missing.csv", nil)
	rec := httptest.NewRecorder()
	h.Routes().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestReportHandler_GetDashboard(t *testing.T) {
	svc := &stubReportService{summary: &domain.DashboardSummary{
		TotalCount:   3,
		TotalRevenue: 50.40,
	}}
	h := newTestHandler(svc, 1<<20)

	req := httptest.NewRequest(http.MethodGet, "/marco.csv/dashboard", nil)
	rec := httptest.NewRecorder()
	h.Routes().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var summary domain.DashboardSummary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &summary))
	assert.Equal(t, 3, summary.TotalCount)
}

func multipartUpload(t *testing.T, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	return &buf, w.FormDataContentType()
}

func TestReportHandler_ParseUpload(t *testing.T) {
	svc := &stubReportService{parseResult: domain.ParseResult{
		Metadata: domain.DashboardMetadata{ReportType: domain.ReportTypeAttendant},
	}}
	h := newTestHandler(svc, 1<<20)

	body, contentType := multipartUpload(t, "loja.csv", []byte("conteudo"))
	req := httptest.NewRequest(http.MethodPost, "/parse", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	h.Routes().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "loja.csv", svc.lastUploadName)
	assert.Equal(t, []byte("conteudo"), svc.lastUploadData)
}

func TestReportHandler_ParseUpload_MissingFile(t *testing.T) {
	h := newTestHandler(&stubReportService{}, 1<<20)

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	require.NoError(t, w.WriteField("other", "value"))
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/parse", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	rec := httptest.NewRecorder()
	h.Routes().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestReportHandler_ParseUpload_TooLarge(t *testing.T) {
	h := newTestHandler(&stubReportService{}, 64)

	body, contentType := multipartUpload(t, "grande.csv", bytes.Repeat([]byte("x"), 4096))
	req := httptest.NewRequest(http.MethodPost, "/parse", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	h.Routes().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestReportHandler_ReportNameCtx_RejectsTraversal(t *testing.T) {
	h := newTestHandler(&stubReportService{}, 1<<20)

	req := httptest.NewRequest(http.MethodGet, "/..%2fsegredo.csv/dashboard", nil)
	rec := httptest.NewRecorder()
	h.Routes().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHealthHandler(t *testing.T) {
	h := NewHealthHandler()

	rec := httptest.NewRecorder()
	h.HealthCheck(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])
}
