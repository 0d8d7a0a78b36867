package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"contract-compare/internal/compare/application"
	"contract-compare/internal/compare/interfaces"
	"contract-compare/internal/extraction"
	"contract-compare/internal/observability/metrics"
)

// Handler serves comparison requests.
type Handler struct {
	service        *application.ComparisonService
	maxUploadBytes int64
}

// NewHandler constructs a Handler.
func NewHandler(service *application.ComparisonService, maxUploadBytes int64) (*Handler, error) {
	if service == nil {
		return nil, errors.New("comparison handler: nil service")
	}
	if maxUploadBytes <= 0 {
		return nil, errors.New("comparison handler: max upload bytes must be positive")
	}
	return &Handler{service: service, maxUploadBytes: maxUploadBytes}, nil
}

// ServeHTTP accepts two multipart files (file_a, file_b), runs the
// comparison and responds in the format picked by the format query
// parameter: json (default), pdf or xlsx.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	format := r.URL.Query().Get("format")
	if format == "" {
		format = "json"
	}
	if format != "json" && format != "pdf" && format != "xlsx" {
		http.Error(w, "format must be json, pdf or xlsx", http.StatusBadRequest)
		return
	}

	// Two files plus multipart framing.
	r.Body = http.MaxBytesReader(w, r.Body, 2*h.maxUploadBytes+1<<20)
	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		metrics.IncUploadRejected("bad_multipart")
		http.Error(w, "invalid multipart body", http.StatusBadRequest)
		return
	}

	fileA, ok := h.readUpload(w, r, "file_a")
	if !ok {
		return
	}
	fileB, ok := h.readUpload(w, r, "file_b")
	if !ok {
		return
	}

	report, err := h.service.CompareFiles(r.Context(), fileA, fileB)
	if err != nil {
		respondCompareError(w, err)
		return
	}

	switch format {
	case "pdf":
		h.respondExport(w, report, "pdf")
	case "xlsx":
		h.respondExport(w, report, "xlsx")
	default:
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(report)
	}
}

// readUpload pulls one named file out of the parsed form and enforces the
// per-file size cap and the supported extensions.
func (h *Handler) readUpload(w http.ResponseWriter, r *http.Request, field string) (application.UploadedFile, bool) {
	file, header, err := r.FormFile(field)
	if err != nil {
		metrics.IncUploadRejected("missing_file")
		http.Error(w, field+" is required", http.StatusBadRequest)
		return application.UploadedFile{}, false
	}
	defer file.Close()

	if header.Size > h.maxUploadBytes {
		metrics.IncUploadRejected("too_large")
		http.Error(w, fmt.Sprintf("%s exceeds %d bytes", field, h.maxUploadBytes), http.StatusRequestEntityTooLarge)
		return application.UploadedFile{}, false
	}
	if _, err := extraction.DetectFormat(header.Filename); err != nil {
		metrics.IncUploadRejected("unsupported_format")
		http.Error(w, field+": unsupported file format", http.StatusUnsupportedMediaType)
		return application.UploadedFile{}, false
	}

	data, err := io.ReadAll(io.LimitReader(file, h.maxUploadBytes+1))
	if err != nil {
		http.Error(w, "read upload failed", http.StatusBadRequest)
		return application.UploadedFile{}, false
	}
	if int64(len(data)) > h.maxUploadBytes {
		metrics.IncUploadRejected("too_large")
		http.Error(w, fmt.Sprintf("%s exceeds %d bytes", field, h.maxUploadBytes), http.StatusRequestEntityTooLarge)
		return application.UploadedFile{}, false
	}
	return application.UploadedFile{Name: header.Filename, Data: data}, true
}

func (h *Handler) respondExport(w http.ResponseWriter, report *application.ComparisonReport, format string) {
	started := time.Now()
	var data []byte
	var contentType string
	var err error
	switch format {
	case "pdf":
		data, err = interfaces.BuildComparisonPDF(report)
		contentType = "application/pdf"
	case "xlsx":
		data, err = interfaces.BuildComparisonXLSX(report)
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	if err != nil {
		metrics.ObserveExport(format, metrics.ResultError, time.Since(started))
		http.Error(w, "report export failed", http.StatusInternalServerError)
		return
	}
	metrics.ObserveExport(format, metrics.ResultSuccess, time.Since(started))

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=comparison-%s.%s", report.ComparisonID, format))
	_, _ = w.Write(data)
}

func respondCompareError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, extraction.ErrUnsupportedFormat):
		http.Error(w, "unsupported file format", http.StatusUnsupportedMediaType)
	case errors.Is(err, extraction.ErrNoTable):
		http.Error(w, "no contract table found in document", http.StatusUnprocessableEntity)
	default:
		http.Error(w, "extraction failed", http.StatusBadGateway)
	}
}
