package interfaces

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"

	"contract-compare/internal/compare/application"
	compare "contract-compare/internal/compare/domain"
)

// BuildComparisonPDF renders a comparison report as a PDF.
func BuildComparisonPDF(report *application.ComparisonReport) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetFont("Arial", "", 12)
	pdf.AddPage()

	pdf.Cell(0, 8, "Contract Comparison Report")
	pdf.Ln(10)
	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Comparison: %s", report.ComparisonID))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("File A: %s", report.FileA))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("File B: %s", report.FileB))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Compared: %s", report.ComparedAt.Format(time.RFC3339)))
	pdf.Ln(8)

	pdf.Cell(0, 6, fmt.Sprintf("Matches: %d", report.Summary.CountMatches))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Average Delta: %s", report.Summary.AvgDelta.String()))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Median Delta: %s", report.Summary.MedianDelta.String()))
	pdf.Ln(8)

	// Matches table
	pdf.SetFont("Arial", "B", 9)
	pdf.CellFormat(60, 6, "Hotel", "1", 0, "C", false, 0, "")
	pdf.CellFormat(50, 6, "Room", "1", 0, "C", false, 0, "")
	pdf.CellFormat(25, 6, "Start", "1", 0, "C", false, 0, "")
	pdf.CellFormat(25, 6, "End", "1", 0, "C", false, 0, "")
	pdf.CellFormat(25, 6, "Price A", "1", 0, "C", false, 0, "")
	pdf.CellFormat(25, 6, "Price B", "1", 0, "C", false, 0, "")
	pdf.CellFormat(25, 6, "Delta", "1", 0, "C", false, 0, "")
	pdf.Ln(-1)
	pdf.SetFont("Arial", "", 9)
	for _, match := range report.Matches {
		delta := match.PriceDelta.String()
		if match.CurrencyMismatch {
			delta += " (ccy mismatch)"
		}
		pdf.CellFormat(60, 6, match.HotelName, "1", 0, "L", false, 0, "")
		pdf.CellFormat(50, 6, match.RoomType, "1", 0, "L", false, 0, "")
		pdf.CellFormat(25, 6, match.PeriodStart.String(), "1", 0, "C", false, 0, "")
		pdf.CellFormat(25, 6, match.PeriodEnd.String(), "1", 0, "C", false, 0, "")
		pdf.CellFormat(25, 6, match.PriceA.String(), "1", 0, "R", false, 0, "")
		pdf.CellFormat(25, 6, match.PriceB.String(), "1", 0, "R", false, 0, "")
		pdf.CellFormat(25, 6, delta, "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}

	writeUnmatchedPDF(pdf, "Only in A", report.OnlyInA)
	writeUnmatchedPDF(pdf, "Only in B", report.OnlyInB)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeUnmatchedPDF(pdf *gofpdf.Fpdf, title string, items []compare.UnmatchedItem) {
	if len(items) == 0 {
		return
	}
	pdf.Ln(6)
	pdf.SetFont("Arial", "B", 10)
	pdf.Cell(0, 6, title)
	pdf.Ln(7)
	pdf.SetFont("Arial", "", 9)
	for _, item := range items {
		line := fmt.Sprintf("%s / %s / %s - %s / %s %s",
			item.HotelName, item.RoomType, item.PeriodStart, item.PeriodEnd,
			item.Price.String(), item.Currency)
		if item.Diagnostic != "" {
			line += " [" + item.Diagnostic + "]"
		}
		pdf.Cell(0, 5, line)
		pdf.Ln(5)
	}
}

// BuildComparisonXLSX renders a comparison report as an XLSX workbook.
func BuildComparisonXLSX(report *application.ComparisonReport) ([]byte, error) {
	f := excelize.NewFile()
	summarySheet := "summary"
	matchesSheet := "matches"
	onlyASheet := "only_in_a"
	onlyBSheet := "only_in_b"
	f.SetSheetName("Sheet1", summarySheet)
	f.NewSheet(matchesSheet)
	f.NewSheet(onlyASheet)
	f.NewSheet(onlyBSheet)

	_ = f.SetCellValue(summarySheet, "A1", "Contract Comparison Report")
	_ = f.SetCellValue(summarySheet, "A3", "Comparison")
	_ = f.SetCellValue(summarySheet, "B3", report.ComparisonID)
	_ = f.SetCellValue(summarySheet, "A4", "File A")
	_ = f.SetCellValue(summarySheet, "B4", report.FileA)
	_ = f.SetCellValue(summarySheet, "A5", "File B")
	_ = f.SetCellValue(summarySheet, "B5", report.FileB)
	_ = f.SetCellValue(summarySheet, "A6", "Compared")
	_ = f.SetCellValue(summarySheet, "B6", report.ComparedAt.Format(time.RFC3339))
	_ = f.SetCellValue(summarySheet, "A7", "Matches")
	_ = f.SetCellValue(summarySheet, "B7", report.Summary.CountMatches)
	_ = f.SetCellValue(summarySheet, "A8", "Average Delta")
	_ = f.SetCellValue(summarySheet, "B8", report.Summary.AvgDelta.String())
	_ = f.SetCellValue(summarySheet, "A9", "Median Delta")
	_ = f.SetCellValue(summarySheet, "B9", report.Summary.MedianDelta.String())

	matchHeader := []string{"Hotel", "Room", "Start", "End", "Price A", "Price B", "Delta", "Currency", "Currency Mismatch"}
	for i, title := range matchHeader {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(matchesSheet, cell, title)
	}
	for i, match := range report.Matches {
		row := i + 2
		_ = f.SetCellValue(matchesSheet, fmt.Sprintf("A%d", row), match.HotelName)
		_ = f.SetCellValue(matchesSheet, fmt.Sprintf("B%d", row), match.RoomType)
		_ = f.SetCellValue(matchesSheet, fmt.Sprintf("C%d", row), match.PeriodStart.String())
		_ = f.SetCellValue(matchesSheet, fmt.Sprintf("D%d", row), match.PeriodEnd.String())
		_ = f.SetCellValue(matchesSheet, fmt.Sprintf("E%d", row), match.PriceA.String())
		_ = f.SetCellValue(matchesSheet, fmt.Sprintf("F%d", row), match.PriceB.String())
		_ = f.SetCellValue(matchesSheet, fmt.Sprintf("G%d", row), match.PriceDelta.String())
		_ = f.SetCellValue(matchesSheet, fmt.Sprintf("H%d", row), match.Currency)
		_ = f.SetCellValue(matchesSheet, fmt.Sprintf("I%d", row), match.CurrencyMismatch)
	}

	writeUnmatchedSheet(f, onlyASheet, report.OnlyInA)
	writeUnmatchedSheet(f, onlyBSheet, report.OnlyInB)

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeUnmatchedSheet(f *excelize.File, sheet string, items []compare.UnmatchedItem) {
	header := []string{"Hotel", "Room", "Start", "End", "Price", "Currency", "Diagnostic"}
	for i, title := range header {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, title)
	}
	for i, item := range items {
		row := i + 2
		_ = f.SetCellValue(sheet, fmt.Sprintf("A%d", row), item.HotelName)
		_ = f.SetCellValue(sheet, fmt.Sprintf("B%d", row), item.RoomType)
		_ = f.SetCellValue(sheet, fmt.Sprintf("C%d", row), item.PeriodStart)
		_ = f.SetCellValue(sheet, fmt.Sprintf("D%d", row), item.PeriodEnd)
		_ = f.SetCellValue(sheet, fmt.Sprintf("E%d", row), item.Price.String())
		_ = f.SetCellValue(sheet, fmt.Sprintf("F%d", row), item.Currency)
		_ = f.SetCellValue(sheet, fmt.Sprintf("G%d", row), item.Diagnostic)
	}
}
