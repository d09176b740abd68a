// Package report renders tabular exports as CSV or PDF documents.
package report

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"

	"github.com/go-pdf/fpdf"
)

// Format is an export rendering.
type Format string

const (
	FormatCSV Format = "csv"
	FormatPDF Format = "pdf"
)

// ParseFormat accepts "csv" and "pdf", case-insensitively.
func ParseFormat(s string) (Format, bool) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case FormatCSV:
		return FormatCSV, true
	case FormatPDF:
		return FormatPDF, true
	}
	return "", false
}

// Table is the format-independent content of a report.
type Table struct {
	Name    string // file name stem, e.g. "loans"
	Title   string // heading printed on PDF exports
	Headers []string
	Rows    [][]string
}

// Document is a rendered export ready to be streamed to a client.
type Document struct {
	Content     []byte
	ContentType string
	Filename    string
}

// Render renders t in the given format.
func Render(t Table, format Format) (*Document, error) {
	switch format {
	case FormatCSV:
		content, err := renderCSV(t)
		if err != nil {
			return nil, err
		}
		return &Document{Content: content, ContentType: "text/csv", Filename: t.Name + ".csv"}, nil
	case FormatPDF:
		content, err := renderPDF(t)
		if err != nil {
			return nil, err
		}
		return &Document{Content: content, ContentType: "application/pdf", Filename: t.Name + ".pdf"}, nil
	}
	return nil, fmt.Errorf("unsupported report format %q", format)
}

func renderCSV(t Table) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(t.Headers); err != nil {
		return nil, fmt.Errorf("failed to write csv header: %w", err)
	}
	if err := w.WriteAll(t.Rows); err != nil {
		return nil, fmt.Errorf("failed to write csv rows: %w", err)
	}
	return buf.Bytes(), nil
}

const (
	pdfRowHeight  = 6.0
	pdfFontSize   = 8.0
	pdfTitleSize  = 14.0
	pdfCellMargin = 2.0
)

func renderPDF(t Table) ([]byte, error) {
	pdf := fpdf.New("L", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle(t.Title, true)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", pdfTitleSize)
	pdf.CellFormat(0, 10, tr(t.Title), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pageWidth, _ := pdf.GetPageSize()
	left, _, right, _ := pdf.GetMargins()
	colWidth := (pageWidth - left - right) / float64(max(len(t.Headers), 1))

	pdf.SetFont("Helvetica", "B", pdfFontSize)
	pdf.SetFillColor(230, 230, 230)
	for _, h := range t.Headers {
		pdf.CellFormat(colWidth, pdfRowHeight, tr(fit(pdf, h, colWidth)), "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", pdfFontSize)
	for _, row := range t.Rows {
		for i := range t.Headers {
			var cell string
			if i < len(row) {
				cell = row[i]
			}
			pdf.CellFormat(colWidth, pdfRowHeight, tr(fit(pdf, cell, colWidth)), "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// fit shortens s with an ellipsis until it fits in a cell of the given width.
func fit(pdf *fpdf.Fpdf, s string, width float64) string {
	limit := width - pdfCellMargin
	if pdf.GetStringWidth(s) <= limit {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 && pdf.GetStringWidth(string(runes)+"...") > limit {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "..."
}
