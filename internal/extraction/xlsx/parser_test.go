package xlsx

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/xuri/excelize/v2"

	"contract-compare/internal/extraction"
)

func buildWorkbook(t *testing.T, sheet string, rows [][]interface{}) []byte {
	t.Helper()
	f := excelize.NewFile()
	if sheet != "Sheet1" {
		f.SetSheetName("Sheet1", sheet)
	}
	for i, row := range rows {
		for j, cell := range row {
			name, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				t.Fatalf("cell name: %v", err)
			}
			if err := f.SetCellValue(sheet, name, cell); err != nil {
				t.Fatalf("set cell: %v", err)
			}
		}
	}
	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatalf("write workbook: %v", err)
	}
	return buf.Bytes()
}

func TestParserExtractsRows(t *testing.T) {
	data := buildWorkbook(t, "Rates", [][]interface{}{
		{"Hotel Name", "Room Type", "Check-in", "Check-out", "Price", "Currency"},
		{"Grand Hotel", "Double", "2026-01-01", "2026-01-31", "120.50", "EUR"},
		{"Grand Hotel", "Suite", "2026-02-01", "2026-02-28", "n/a", "EUR"},
	})

	items, err := NewParser().Extract(context.Background(), data)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	first := items[0]
	if first.HotelName != "Grand Hotel" || first.RoomType != "Double" {
		t.Fatalf("unexpected first item: %+v", first)
	}
	if first.PeriodStart != "2026-01-01" || first.PeriodEnd != "2026-01-31" {
		t.Fatalf("dates must pass through untouched: %+v", first)
	}
	if !first.Price.Valid() || first.Price.String() != "120.5" {
		t.Fatalf("unexpected price: %+v", first.Price)
	}
	if first.Currency != "EUR" {
		t.Fatalf("unexpected currency: %q", first.Currency)
	}
	if items[1].Price.Valid() {
		t.Fatalf("non-numeric price must stay invalid: %+v", items[1].Price)
	}
	if items[1].Price.Raw() != "n/a" {
		t.Fatalf("raw price text lost: %q", items[1].Price.Raw())
	}
}

func TestParserSkipsPreamble(t *testing.T) {
	data := buildWorkbook(t, "Sheet1", [][]interface{}{
		{"Contract rates 2026"},
		{},
		{"Property", "Category", "From", "To", "Rate"},
		{"Sea View Resort", "Twin", "2026-06-01", "2026-06-30", 95},
		{},
	})

	items, err := NewParser().Extract(context.Background(), data)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}
	if items[0].HotelName != "Sea View Resort" {
		t.Fatalf("unexpected hotel: %q", items[0].HotelName)
	}
	if !items[0].Price.Valid() || items[0].Price.String() != "95" {
		t.Fatalf("unexpected price: %+v", items[0].Price)
	}
	if items[0].Currency != "" {
		t.Fatalf("currency column absent, expected empty, got %q", items[0].Currency)
	}
}

func TestParserNoTable(t *testing.T) {
	data := buildWorkbook(t, "Sheet1", [][]interface{}{
		{"Just", "some", "cells"},
		{1, 2, 3},
	})

	_, err := NewParser().Extract(context.Background(), data)
	if !errors.Is(err, extraction.ErrNoTable) {
		t.Fatalf("expected ErrNoTable, got %v", err)
	}
}

func TestParserRejectsGarbage(t *testing.T) {
	if _, err := NewParser().Extract(context.Background(), []byte("not a zip")); err == nil {
		t.Fatal("expected error for corrupt workbook")
	}
}

func TestParserLargeSheet(t *testing.T) {
	rows := [][]interface{}{{"Hotel", "Room", "Start", "End", "Price", "CCY"}}
	for i := 0; i < 50; i++ {
		rows = append(rows, []interface{}{"Hotel " + fmt.Sprint(i), "Double", "2026-01-01", "2026-01-31", 100 + i, "USD"})
	}
	data := buildWorkbook(t, "Sheet1", rows)

	items, err := NewParser().Extract(context.Background(), data)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if len(items) != 50 {
		t.Fatalf("expected 50 items, got %d", len(items))
	}
}
