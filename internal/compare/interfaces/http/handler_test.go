package http

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"contract-compare/internal/compare/application"
	compare "contract-compare/internal/compare/domain"
	"contract-compare/internal/extraction"
)

type stubExtractor struct {
	byName map[string][]compare.ContractItem
	err    error
}

func (s *stubExtractor) Extract(_ context.Context, name string, _ []byte) ([]compare.ContractItem, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.byName[name], nil
}

func newTestHandler(t *testing.T, extractor application.Extractor, maxBytes int64) *Handler {
	t.Helper()
	service, err := application.NewComparisonService(extractor, nil)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	handler, err := NewHandler(service, maxBytes)
	if err != nil {
		t.Fatalf("new handler: %v", err)
	}
	return handler
}

func multipartBody(t *testing.T, files map[string][]byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for name, data := range files {
		field := "file_a"
		if strings.HasPrefix(name, "b") {
			field = "file_b"
		}
		part, err := writer.CreateFormFile(field, name)
		if err != nil {
			t.Fatalf("create part: %v", err)
		}
		if _, err := part.Write(data); err != nil {
			t.Fatalf("write part: %v", err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	return &buf, writer.FormDataContentType()
}

func testItem(hotel, price string) compare.ContractItem {
	return compare.ContractItem{
		HotelName:   hotel,
		RoomType:    "Double",
		PeriodStart: "2026-01-01",
		PeriodEnd:   "2026-01-31",
		Price:       compare.AmountFromString(price),
		Currency:    "EUR",
	}
}

func TestHandlerJSONResponse(t *testing.T) {
	extractor := &stubExtractor{byName: map[string][]compare.ContractItem{
		"a.xlsx": {testItem("Grand Hotel", "100")},
		"b.xlsx": {testItem("Grand Hotel", "130")},
	}}
	handler := newTestHandler(t, extractor, 10<<20)

	body, contentType := multipartBody(t, map[string][]byte{
		"a.xlsx": []byte("a"),
		"b.xlsx": []byte("b"),
	})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/comparisons", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var report application.ComparisonReport
	if err := json.Unmarshal(rec.Body.Bytes(), &report); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if report.ComparisonID == "" || report.FileA != "a.xlsx" || report.FileB != "b.xlsx" {
		t.Fatalf("unexpected report header: %+v", report)
	}
	if report.Summary.CountMatches != 1 {
		t.Fatalf("expected 1 match, got %d", report.Summary.CountMatches)
	}
	if report.Matches[0].PriceDelta.String() != "30" {
		t.Fatalf("unexpected delta: %s", report.Matches[0].PriceDelta.String())
	}
}

func TestHandlerMethodNotAllowed(t *testing.T) {
	handler := newTestHandler(t, &stubExtractor{}, 10<<20)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/comparisons", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", rec.Code)
	}
}

func TestHandlerMissingFile(t *testing.T) {
	handler := newTestHandler(t, &stubExtractor{}, 10<<20)
	body, contentType := multipartBody(t, map[string][]byte{"a.xlsx": []byte("a")})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/comparisons", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestHandlerUnsupportedExtension(t *testing.T) {
	handler := newTestHandler(t, &stubExtractor{}, 10<<20)
	body, contentType := multipartBody(t, map[string][]byte{
		"a.txt":  []byte("a"),
		"b.xlsx": []byte("b"),
	})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/comparisons", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnsupportedMediaType {
		t.Fatalf("expected 415, got %d", rec.Code)
	}
}

func TestHandlerFileTooLarge(t *testing.T) {
	handler := newTestHandler(t, &stubExtractor{}, 16)
	body, contentType := multipartBody(t, map[string][]byte{
		"a.xlsx": bytes.Repeat([]byte("x"), 64),
		"b.xlsx": []byte("b"),
	})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/comparisons", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected 413, got %d", rec.Code)
	}
}

func TestHandlerNoTable(t *testing.T) {
	handler := newTestHandler(t, &stubExtractor{err: extraction.ErrNoTable}, 10<<20)
	body, contentType := multipartBody(t, map[string][]byte{
		"a.xlsx": []byte("a"),
		"b.xlsx": []byte("b"),
	})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/comparisons", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
}

func TestHandlerBadFormat(t *testing.T) {
	handler := newTestHandler(t, &stubExtractor{}, 10<<20)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/comparisons?format=csv", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestHandlerPDFExport(t *testing.T) {
	extractor := &stubExtractor{byName: map[string][]compare.ContractItem{
		"a.xlsx": {testItem("Grand Hotel", "100")},
		"b.xlsx": {testItem("Grand Hotel", "130")},
	}}
	handler := newTestHandler(t, extractor, 10<<20)

	body, contentType := multipartBody(t, map[string][]byte{
		"a.xlsx": []byte("a"),
		"b.xlsx": []byte("b"),
	})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/comparisons?format=pdf", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if got := rec.Header().Get("Content-Type"); got != "application/pdf" {
		t.Fatalf("unexpected content type: %q", got)
	}
	if !strings.HasPrefix(rec.Header().Get("Content-Disposition"), "attachment; filename=comparison-") {
		t.Fatalf("unexpected disposition: %q", rec.Header().Get("Content-Disposition"))
	}
	if !bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF")) {
		t.Fatal("expected PDF payload")
	}
}

func TestHandlerXLSXExport(t *testing.T) {
	extractor := &stubExtractor{byName: map[string][]compare.ContractItem{
		"a.xlsx": {testItem("Grand Hotel", "100")},
		"b.xlsx": {testItem("Grand Hotel", "130")},
	}}
	handler := newTestHandler(t, extractor, 10<<20)

	body, contentType := multipartBody(t, map[string][]byte{
		"a.xlsx": []byte("a"),
		"b.xlsx": []byte("b"),
	})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/comparisons?format=xlsx", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if got := rec.Header().Get("Content-Type"); !strings.Contains(got, "spreadsheetml") {
		t.Fatalf("unexpected content type: %q", got)
	}
	// xlsx is a zip archive
	if !bytes.HasPrefix(rec.Body.Bytes(), []byte("PK")) {
		t.Fatal("expected zip payload")
	}
}
