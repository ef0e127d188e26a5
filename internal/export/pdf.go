package export

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"github.com/carson-networks/spendwise/internal/service"
)

const (
	pdfLineHeight = 7.0
	pdfLabelWidth = 60.0
	pdfColWidth   = 40.0
)

// RenderPDF lays the report out on A4 pages using the core Helvetica font.
func RenderPDF(r service.Report) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(fmt.Sprintf("SpendWise %s report", r.Period), false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 12, "SpendWise report", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, pdfLineHeight,
		fmt.Sprintf("%s to %s", r.Current.Start.Format(dayLayout), r.Current.End.Format(dayLayout)),
		"", 1, "L", false, 0, "")
	pdf.Ln(4)

	for _, line := range summaryLines(r) {
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(pdfLabelWidth, pdfLineHeight, line.label, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 11)
		pdf.CellFormat(pdfColWidth, pdfLineHeight, line.value, "", 1, "R", false, 0, "")
	}

	if len(r.Categories) > 0 {
		section(pdf, "Expenses by category")
		tableHeader(pdf, "Category", "Total", "Share %")
		for _, share := range r.Categories {
			tableRow(pdf, share.Category.Label(), share.Total.StringFixed(2), share.Percentage.StringFixed(2))
		}
	}

	if len(r.Daily) > 0 {
		section(pdf, "Daily totals")
		tableHeader(pdf, "Day", "Income", "Expense", "Net")
		for _, day := range r.Daily {
			tableRow(pdf, day.Day.Format(dayLayout),
				day.Income.StringFixed(2), day.Expense.StringFixed(2), day.Net().StringFixed(2))
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("gofpdf.Output: %w", err)
	}
	return buf.Bytes(), nil
}

func section(pdf *gofpdf.Fpdf, title string) {
	pdf.Ln(6)
	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(0, 9, title, "", 1, "L", false, 0, "")
}

func tableHeader(pdf *gofpdf.Fpdf, cols ...string) {
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(45, 52, 54)
	pdf.SetTextColor(255, 255, 255)
	for i, col := range cols {
		pdf.CellFormat(columnWidth(i), pdfLineHeight, col, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)
	pdf.SetTextColor(0, 0, 0)
}

func tableRow(pdf *gofpdf.Fpdf, cols ...string) {
	pdf.SetFont("Helvetica", "", 10)
	for i, col := range cols {
		align := "R"
		if i == 0 {
			align = "L"
		}
		pdf.CellFormat(columnWidth(i), pdfLineHeight, col, "1", 0, align, false, 0, "")
	}
	pdf.Ln(-1)
}

func columnWidth(i int) float64 {
	if i == 0 {
		return pdfLabelWidth
	}
	return pdfColWidth
}
