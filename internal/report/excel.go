// server/internal/report/excel.go
package report

import (
	"fmt"
	"math"

	"gesla-logistics-api-server/internal/loads"

	"github.com/xuri/excelize/v2"
)

// BuildDashboardWorkbook renders the dashboard aggregates as an Excel
// workbook for back-office download. Rounding rules match the JSON API:
// currency two decimals, percentages to the nearest integer.
func BuildDashboardWorkbook(summary loads.Summary, carriers, monthly []loads.GroupTotals) (*excelize.File, error) {
	f := excelize.NewFile()

	const sheet = "Summary"
	f.SetSheetName("Sheet1", sheet)

	rows := [][]interface{}{
		{"Total loads", summary.TotalLoads},
		{"Revenue", round2(summary.Revenue)},
		{"Cost", round2(summary.Cost)},
		{"Profit", round2(summary.Profit)},
		{"Margin %", roundPct(summary.MarginPercent)},
		{"SLA %", roundPct(summary.SLAPercent)},
		{"Pending fiscal", summary.PendingFiscal},
	}
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, err
		}
	}

	statusRow := len(rows) + 2
	for status, count := range summary.ByStatus {
		cell, _ := excelize.CoordinatesToCellName(1, statusRow)
		row := []interface{}{string(status), count}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, err
		}
		statusRow++
	}

	if err := writeGroupSheet(f, "Carriers", carriers); err != nil {
		return nil, err
	}
	if err := writeGroupSheet(f, "Monthly", monthly); err != nil {
		return nil, err
	}

	return f, nil
}

func writeGroupSheet(f *excelize.File, name string, groups []loads.GroupTotals) error {
	if _, err := f.NewSheet(name); err != nil {
		return err
	}

	header := []interface{}{"Key", "Loads", "Revenue", "Cost", "Profit", "SLA %"}
	if err := f.SetSheetRow(name, "A1", &header); err != nil {
		return err
	}

	for i, g := range groups {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []interface{}{g.Key, g.Count, round2(g.Revenue), round2(g.Cost), round2(g.Profit), roundPct(g.SLAPercent)}
		if err := f.SetSheetRow(name, cell, &row); err != nil {
			return err
		}
	}
	return nil
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }

func roundPct(v float64) int { return int(math.Round(v)) }

// Filename builds the download name, e.g. "gesla-dashboard-2026-08.xlsx".
func Filename(yearMonth string) string {
	return fmt.Sprintf("gesla-dashboard-%s.xlsx", yearMonth)
}
