package extraction

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"time"

	compare "contract-compare/internal/compare/domain"
	"contract-compare/internal/observability/metrics"
)

var (
	// ErrUnsupportedFormat is returned for file types no extractor handles.
	ErrUnsupportedFormat = errors.New("extraction: unsupported file format")
	// ErrNoTable is returned when a document contains no recognizable
	// contract table.
	ErrNoTable = errors.New("extraction: no contract table found")
)

// Format identifies a supported upload format.
type Format string

const (
	FormatXLSX Format = "xlsx"
	FormatPDF  Format = "pdf"
)

// DetectFormat maps a file name to a supported format by extension.
func DetectFormat(name string) (Format, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".xlsx", ".xls":
		return FormatXLSX, nil
	case ".pdf":
		return FormatPDF, nil
	default:
		return "", ErrUnsupportedFormat
	}
}

// ItemExtractor pulls contract items out of a raw document.
type ItemExtractor interface {
	Extract(ctx context.Context, data []byte) ([]compare.ContractItem, error)
}

// Router dispatches extraction to a format-specific extractor.
type Router struct {
	spreadsheet ItemExtractor
	document    ItemExtractor
}

// NewRouter builds a router over the spreadsheet and document extractors.
func NewRouter(spreadsheet, document ItemExtractor) (*Router, error) {
	if spreadsheet == nil {
		return nil, errors.New("extraction: nil spreadsheet extractor")
	}
	if document == nil {
		return nil, errors.New("extraction: nil document extractor")
	}
	return &Router{spreadsheet: spreadsheet, document: document}, nil
}

// Extract detects the format from the file name and runs the matching
// extractor.
func (r *Router) Extract(ctx context.Context, name string, data []byte) ([]compare.ContractItem, error) {
	format, err := DetectFormat(name)
	if err != nil {
		return nil, err
	}

	started := time.Now()
	var items []compare.ContractItem
	switch format {
	case FormatXLSX:
		items, err = r.spreadsheet.Extract(ctx, data)
	case FormatPDF:
		items, err = r.document.Extract(ctx, data)
	}

	result := metrics.ResultSuccess
	if err != nil {
		result = metrics.ResultError
	}
	metrics.ObserveExtract(string(format), result, time.Since(started))
	if err != nil {
		return nil, err
	}
	return items, nil
}
