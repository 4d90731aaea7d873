// Package export renders simple tables as xlsx workbooks and pdf documents.
package export

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"
)

// Table is a titled grid of already formatted cells. Every row should have
// len(Headers) cells.
type Table struct {
	Title   string
	Headers []string
	Rows    [][]string
	// Footer lines are printed after the rows.
	Footer []string
}

const sheetName = "Sheet1"

// XLSX renders t on a single sheet: the title in A1, headers on row 3 and
// data from row 4.
func XLSX(t Table) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetCellValue(sheetName, "A1", t.Title); err != nil {
		return nil, fmt.Errorf("failed to write title: %w", err)
	}

	if err := writeRow(f, 3, t.Headers); err != nil {
		return nil, err
	}
	for i, row := range t.Rows {
		if err := writeRow(f, 4+i, row); err != nil {
			return nil, err
		}
	}

	footerRow := 4 + len(t.Rows) + 1
	for i, line := range t.Footer {
		cell, _ := excelize.CoordinatesToCellName(1, footerRow+i)
		if err := f.SetCellValue(sheetName, cell, line); err != nil {
			return nil, fmt.Errorf("failed to write footer: %w", err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to encode workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func writeRow(f *excelize.File, row int, values []string) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("failed to address row %d: %w", row, err)
	}
	cells := make([]any, len(values))
	for i, v := range values {
		cells[i] = v
	}
	if err := f.SetSheetRow(sheetName, cell, &cells); err != nil {
		return fmt.Errorf("failed to write row %d: %w", row, err)
	}
	return nil
}

// PDF renders t as an A4 portrait document with equally wide columns.
func PDF(t Table) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, t.Title)
	pdf.Ln(14)

	if len(t.Headers) > 0 {
		pageWidth, _ := pdf.GetPageSize()
		left, _, right, _ := pdf.GetMargins()
		colWidth := (pageWidth - left - right) / float64(len(t.Headers))

		pdf.SetFont("Helvetica", "B", 11)
		for _, h := range t.Headers {
			pdf.CellFormat(colWidth, 8, h, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)

		pdf.SetFont("Helvetica", "", 11)
		for _, row := range t.Rows {
			for _, v := range row {
				pdf.CellFormat(colWidth, 8, v, "1", 0, "L", false, 0, "")
			}
			pdf.Ln(-1)
		}
	}

	if len(t.Footer) > 0 {
		pdf.Ln(6)
		pdf.SetFont("Helvetica", "", 11)
		for _, line := range t.Footer {
			pdf.Cell(0, 7, line)
			pdf.Ln(7)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render pdf: %w", err)
	}
	return buf.Bytes(), nil
}
