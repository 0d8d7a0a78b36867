package extraction

import (
	"context"
	"errors"
	"testing"

	compare "contract-compare/internal/compare/domain"
)

type stubExtractor struct {
	items []compare.ContractItem
	err   error
	calls int
}

func (s *stubExtractor) Extract(_ context.Context, _ []byte) ([]compare.ContractItem, error) {
	s.calls++
	return s.items, s.err
}

func TestDetectFormat(t *testing.T) {
	cases := []struct {
		name string
		want Format
		ok   bool
	}{
		{"rates.xlsx", FormatXLSX, true},
		{"RATES.XLSX", FormatXLSX, true},
		{"legacy.xls", FormatXLSX, true},
		{"contract.pdf", FormatPDF, true},
		{"contract.PDF", FormatPDF, true},
		{"notes.docx", "", false},
		{"noextension", "", false},
	}
	for _, tc := range cases {
		format, err := DetectFormat(tc.name)
		if tc.ok && (err != nil || format != tc.want) {
			t.Fatalf("DetectFormat(%q) = %v, %v", tc.name, format, err)
		}
		if !tc.ok && !errors.Is(err, ErrUnsupportedFormat) {
			t.Fatalf("DetectFormat(%q): expected ErrUnsupportedFormat, got %v", tc.name, err)
		}
	}
}

func TestRouterDispatch(t *testing.T) {
	spreadsheet := &stubExtractor{items: []compare.ContractItem{{HotelName: "A"}}}
	document := &stubExtractor{items: []compare.ContractItem{{HotelName: "B"}}}
	router, err := NewRouter(spreadsheet, document)
	if err != nil {
		t.Fatalf("new router: %v", err)
	}

	items, err := router.Extract(context.Background(), "a.xlsx", nil)
	if err != nil || len(items) != 1 || items[0].HotelName != "A" {
		t.Fatalf("xlsx dispatch: %v %v", items, err)
	}
	items, err = router.Extract(context.Background(), "b.pdf", nil)
	if err != nil || len(items) != 1 || items[0].HotelName != "B" {
		t.Fatalf("pdf dispatch: %v %v", items, err)
	}
	if spreadsheet.calls != 1 || document.calls != 1 {
		t.Fatalf("unexpected call counts: %d / %d", spreadsheet.calls, document.calls)
	}

	if _, err := router.Extract(context.Background(), "c.txt", nil); !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestNewRouterNilChecks(t *testing.T) {
	if _, err := NewRouter(nil, &stubExtractor{}); err == nil {
		t.Fatal("expected error for nil spreadsheet extractor")
	}
	if _, err := NewRouter(&stubExtractor{}, nil); err == nil {
		t.Fatal("expected error for nil document extractor")
	}
}
