package application

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	compare "contract-compare/internal/compare/domain"
	"contract-compare/internal/observability/metrics"
)

// UploadedFile is one uploaded contract document.
type UploadedFile struct {
	Name string
	Data []byte
}

// Extractor pulls contract items out of an uploaded document.
type Extractor interface {
	Extract(ctx context.Context, name string, data []byte) ([]compare.ContractItem, error)
}

// Clock returns the current time.
type Clock interface {
	Now() time.Time
}

// SystemClock uses time.Now.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// ComparisonReport is a comparison result with request metadata.
type ComparisonReport struct {
	ComparisonID string    `json:"comparison_id"`
	FileA        string    `json:"file_a"`
	FileB        string    `json:"file_b"`
	ComparedAt   time.Time `json:"compared_at"`
	compare.ComparisonResult
}

// ComparisonService runs the extract-and-compare use case.
type ComparisonService struct {
	extractor Extractor
	clock     Clock
}

// NewComparisonService constructs the service.
func NewComparisonService(extractor Extractor, clock Clock) (*ComparisonService, error) {
	if extractor == nil {
		return nil, errors.New("comparison service: nil extractor")
	}
	if clock == nil {
		clock = SystemClock{}
	}
	return &ComparisonService{extractor: extractor, clock: clock}, nil
}

// CompareFiles extracts both documents and compares their contract items.
func (s *ComparisonService) CompareFiles(ctx context.Context, fileA, fileB UploadedFile) (*ComparisonReport, error) {
	started := s.clock.Now()

	itemsA, err := s.extractor.Extract(ctx, fileA.Name, fileA.Data)
	if err != nil {
		metrics.ObserveCompare(metrics.ResultError, time.Since(started))
		return nil, fmt.Errorf("extract %s: %w", fileA.Name, err)
	}
	itemsB, err := s.extractor.Extract(ctx, fileB.Name, fileB.Data)
	if err != nil {
		metrics.ObserveCompare(metrics.ResultError, time.Since(started))
		return nil, fmt.Errorf("extract %s: %w", fileB.Name, err)
	}

	result := compare.Compare(itemsA, itemsB)
	report := &ComparisonReport{
		ComparisonID:     uuid.NewString(),
		FileA:            fileA.Name,
		FileB:            fileB.Name,
		ComparedAt:       s.clock.Now().UTC(),
		ComparisonResult: result,
	}

	metrics.ObserveCompare(metrics.ResultSuccess, time.Since(started))
	metrics.ObserveMatchedPairs(len(result.Matches))
	log.Printf("comparison %s: %d vs %d items, %d matches, %d only in a, %d only in b",
		report.ComparisonID, len(itemsA), len(itemsB),
		len(result.Matches), len(result.OnlyInA), len(result.OnlyInB))
	return report, nil
}
