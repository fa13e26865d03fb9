package http

import (
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	apierrors "lavadash/internal/errors"
)

// ReportHandler handles report HTTP requests.
type ReportHandler struct {
	service        ReportServiceInterface
	logger         *slog.Logger
	errorHandler   *apierrors.ErrorHandler
	maxUploadBytes int64
}

// NewReportHandler creates a new report handler.
func NewReportHandler(service ReportServiceInterface, logger *slog.Logger, errorHandler *apierrors.ErrorHandler, maxUploadBytes int64) *ReportHandler {
	return &ReportHandler{
		service:        service,
		logger:         logger.With(slog.String("handler", "reports")),
		errorHandler:   errorHandler,
		maxUploadBytes: maxUploadBytes,
	}
}

// Routes returns the report routes.
func (h *ReportHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Get("/", h.ListReports)
	r.Post("/parse", h.ParseUpload)

	r.Route("/{name}", func(r chi.Router) {
		r.Use(h.ReportNameCtx)
		r.Get("/", h.GetReport)
		r.Get("/dashboard", h.GetDashboard)
	})

	return r
}

// ReportNameCtx validates the report name parameter.
func (h *ReportHandler) ReportNameCtx(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		name := chi.URLParam(r, "name")
		if name == "" {
			h.errorHandler.HandleError(w, r, apierrors.ErrValidation("name", "Report name is required"))
			return
		}
		if name != filepath.Base(name) || strings.Contains(name, "..") {
			h.errorHandler.HandleError(w, r, apierrors.ErrValidation("name", "Report name must not contain path separators"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ListReports handles GET /api/reports.
func (h *ReportHandler) ListReports(w http.ResponseWriter, r *http.Request) {
	reports, err := h.service.ListReports(r.Context())
	if err != nil {
		h.errorHandler.HandleError(w, r, apierrors.FileSystemError("list reports", err))
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"reports": reports,
		"count":   len(reports),
	})
}

// GetReport handles GET /api/reports/{name}. It returns the full parse
// result for the named export.
func (h *ReportHandler) GetReport(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	result, err := h.service.ParseReport(r.Context(), name)
	if err != nil {
		h.errorHandler.HandleError(w, r, apierrors.ErrReportNotFound)
		return
	}

	render.JSON(w, r, result)
}

// GetDashboard handles GET /api/reports/{name}/dashboard.
func (h *ReportHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	summary, err := h.service.Dashboard(r.Context(), name)
	if err != nil {
		h.errorHandler.HandleError(w, r, apierrors.ErrReportNotFound)
		return
	}

	render.JSON(w, r, summary)
}

// ParseUpload handles POST /api/reports/parse. The report is sent as a
// multipart form file named "file"; the filename extension selects the
// spreadsheet or plain text path.
func (h *ReportHandler) ParseUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)

	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		if strings.Contains(err.Error(), "request body too large") {
			h.errorHandler.HandleError(w, r, apierrors.ErrPayloadTooLarge)
			return
		}
		h.errorHandler.HandleError(w, r, apierrors.InvalidRequestWithError(err))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		h.errorHandler.HandleError(w, r, apierrors.ErrValidation("file", "Multipart file field is required"))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		h.errorHandler.HandleError(w, r, apierrors.InvalidRequestWithError(err))
		return
	}

	result, err := h.service.ParseUpload(r.Context(), header.Filename, data)
	if err != nil {
		h.errorHandler.HandleError(w, r, apierrors.InvalidRequestWithError(err))
		return
	}

	h.logger.InfoContext(r.Context(), "upload parsed",
		slog.String("filename", header.Filename),
		slog.Int("transactions", len(result.Transactions)))

	render.JSON(w, r, result)
}
