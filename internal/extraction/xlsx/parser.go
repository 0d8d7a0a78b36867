package xlsx

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	compare "contract-compare/internal/compare/domain"
	"contract-compare/internal/extraction"
)

// columnRoles maps recognized header cells to item fields. Matching is
// case-insensitive and tolerates surrounding noise like "Room Type*".
var columnRoles = map[string]string{
	"hotel":      "hotel",
	"hotel name": "hotel",
	"property":   "hotel",
	"room":       "room",
	"room type":  "room",
	"room name":  "room",
	"category":   "room",
	"rate plan":  "room",
	"start":      "start",
	"from":       "start",
	"check in":   "start",
	"check-in":   "start",
	"valid from": "start",
	"start date": "start",
	"end":        "end",
	"to":         "end",
	"check out":  "end",
	"check-out":  "end",
	"valid to":   "end",
	"end date":   "end",
	"price":      "price",
	"rate":       "price",
	"amount":     "price",
	"currency":   "currency",
	"ccy":        "currency",
}

// Parser extracts contract items from xlsx workbooks.
type Parser struct{}

// NewParser builds a workbook parser.
func NewParser() *Parser {
	return &Parser{}
}

// Extract scans every sheet for a header row naming at least a hotel, a room
// and a price column, then reads each following row as one contract item.
// Cell text is passed through untouched so that downstream validation sees
// the original values.
func (p *Parser) Extract(_ context.Context, data []byte) ([]compare.ContractItem, error) {
	workbook, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer workbook.Close()

	for _, sheet := range workbook.GetSheetList() {
		rows, err := workbook.GetRows(sheet)
		if err != nil {
			return nil, fmt.Errorf("read sheet %s: %w", sheet, err)
		}
		headerIdx, columns := findHeader(rows)
		if columns == nil {
			continue
		}

		var items []compare.ContractItem
		for _, row := range rows[headerIdx+1:] {
			if emptyRow(row) {
				continue
			}
			items = append(items, itemFromRow(row, columns))
		}
		return items, nil
	}
	return nil, extraction.ErrNoTable
}

// findHeader locates the first row that maps to the required columns and
// returns the role of each column position.
func findHeader(rows [][]string) (int, map[int]string) {
	for idx, row := range rows {
		columns := make(map[int]string)
		seen := make(map[string]bool)
		for col, cell := range row {
			role, ok := columnRoles[normalizeHeader(cell)]
			if !ok || seen[role] {
				continue
			}
			columns[col] = role
			seen[role] = true
		}
		if seen["hotel"] && seen["room"] && seen["price"] {
			return idx, columns
		}
	}
	return 0, nil
}

func normalizeHeader(cell string) string {
	cell = strings.ToLower(strings.TrimSpace(cell))
	cell = strings.TrimRight(cell, "*:")
	return strings.TrimSpace(cell)
}

func itemFromRow(row []string, columns map[int]string) compare.ContractItem {
	var item compare.ContractItem
	for col, role := range columns {
		if col >= len(row) {
			continue
		}
		value := strings.TrimSpace(row[col])
		switch role {
		case "hotel":
			item.HotelName = value
		case "room":
			item.RoomType = value
		case "start":
			item.PeriodStart = value
		case "end":
			item.PeriodEnd = value
		case "price":
			item.Price = compare.AmountFromString(value)
		case "currency":
			item.Currency = value
		}
	}
	return item
}

func emptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
