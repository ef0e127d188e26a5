// Package export renders a report as a spreadsheet or a printable document.
package export

import (
	"fmt"
	"strings"

	"github.com/carson-networks/spendwise/internal/ledger"
	"github.com/carson-networks/spendwise/internal/service"
)

type Format string

const (
	FormatXLSX Format = "xlsx"
	FormatPDF  Format = "pdf"
)

const dayLayout = "2006-01-02"

func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case FormatXLSX:
		return FormatXLSX, nil
	case FormatPDF:
		return FormatPDF, nil
	}
	return "", fmt.Errorf("%w: unknown export format %q", ledger.ErrInvalidInput, s)
}

func (f Format) ContentType() string {
	if f == FormatPDF {
		return "application/pdf"
	}
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

// FileName is named after the period and the last day of the window.
func (f Format) FileName(r service.Report) string {
	return fmt.Sprintf("spendwise-report-%s-%s.%s", r.Period, r.Current.End.Format(dayLayout), f)
}

// Render encodes r in the given format.
func Render(r service.Report, format Format) ([]byte, error) {
	switch format {
	case FormatXLSX:
		return RenderXLSX(r)
	case FormatPDF:
		return RenderPDF(r)
	}
	return nil, fmt.Errorf("%w: unknown export format %q", ledger.ErrInvalidInput, format)
}

type summaryLine struct {
	label string
	value string
}

func summaryLines(r service.Report) []summaryLine {
	return []summaryLine{
		{"Period", r.Period.Label()},
		{"From", r.Current.Start.Format(dayLayout)},
		{"To", r.Current.End.Format(dayLayout)},
		{"Income", r.Income.StringFixed(2)},
		{"Expense", r.Expense.StringFixed(2)},
		{"Savings", r.Savings.StringFixed(2)},
		{"Previous expense", r.PreviousExpense.StringFixed(2)},
		{"Change", r.Comparison.Delta.StringFixed(2)},
		{"Change %", r.Comparison.PercentChange.StringFixed(2)},
	}
}
