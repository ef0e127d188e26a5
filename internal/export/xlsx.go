package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/carson-networks/spendwise/internal/service"
)

const (
	SheetSummary    = "Summary"
	SheetCategories = "Categories"
	SheetDaily      = "Daily"
)

// RenderXLSX writes one sheet each for the summary, the category shares and
// the daily series. Amounts are stored as numbers.
func RenderXLSX(r service.Report) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetSummary); err != nil {
		return nil, fmt.Errorf("excelize.SetSheetName: %w", err)
	}
	for _, name := range []string{SheetCategories, SheetDaily} {
		if _, err := f.NewSheet(name); err != nil {
			return nil, fmt.Errorf("excelize.NewSheet %s: %w", name, err)
		}
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#2D3436"}, Pattern: 1},
	})
	if err != nil {
		return nil, fmt.Errorf("excelize.NewStyle: %w", err)
	}

	summary := [][]any{{"Field", "Value"}}
	for _, line := range summaryLines(r) {
		summary = append(summary, []any{line.label, line.value})
	}

	categories := [][]any{{"Category", "Total", "Share %"}}
	for _, share := range r.Categories {
		categories = append(categories, []any{
			share.Category.Label(),
			share.Total.Float64(),
			share.Percentage.Round(2).InexactFloat64(),
		})
	}

	daily := [][]any{{"Day", "Income", "Expense", "Net"}}
	for _, day := range r.Daily {
		daily = append(daily, []any{
			day.Day.Format(dayLayout),
			day.Income.Float64(),
			day.Expense.Float64(),
			day.Net().Float64(),
		})
	}

	for _, sheet := range []struct {
		name string
		rows [][]any
	}{
		{SheetSummary, summary},
		{SheetCategories, categories},
		{SheetDaily, daily},
	} {
		if err := writeRows(f, sheet.name, sheet.rows, headerStyle); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("excelize.WriteToBuffer: %w", err)
	}
	return buf.Bytes(), nil
}

func writeRows(f *excelize.File, sheet string, rows [][]any, headerStyle int) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("excelize.SetSheetRow %s!%s: %w", sheet, cell, err)
		}
	}

	last, err := excelize.CoordinatesToCellName(len(rows[0]), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", last, headerStyle); err != nil {
		return fmt.Errorf("excelize.SetCellStyle %s: %w", sheet, err)
	}
	return f.SetColWidth(sheet, "A", "A", 20)
}
