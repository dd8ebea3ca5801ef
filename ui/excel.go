package ui

import (
	"bytes"
	"fmt"

	"giftedlens/app"
	"giftedlens/domain/rates"

	"github.com/xuri/excelize/v2"
)

// disparityWorkbook renders an audit report as an XLSX workbook with a
// Disparity sheet and a Funnel sheet. Undefined rates render as "-",
// matching the dashboard tables.
func disparityWorkbook(report *app.AuditReport) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Disparity"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	headers := []interface{}{
		report.Query.GroupBy, "n", "rate",
		"rate_diff_vs_overall", "risk_ratio_vs_overall", "rate_vs_ref", "reference_group",
	}
	if err := f.SetSheetRow(sheet, "A1", &headers); err != nil {
		return nil, fmt.Errorf("failed to write header row: %w", err)
	}

	for i, row := range report.Disparity {
		cells := []interface{}{
			row.Group, row.N,
			rateCell(row.Rate),
			rateCell(row.RateDiffVsOverall),
			rateCell(row.RiskRatioVsOverall),
			rateCell(row.RateVsRef),
			row.ReferenceGroup,
		}
		addr := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(sheet, addr, &cells); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	const funnelSheet = "Funnel"
	if _, err := f.NewSheet(funnelSheet); err != nil {
		return nil, fmt.Errorf("failed to add funnel sheet: %w", err)
	}
	funnelHeaders := []interface{}{"stage", "count"}
	if err := f.SetSheetRow(funnelSheet, "A1", &funnelHeaders); err != nil {
		return nil, fmt.Errorf("failed to write funnel header: %w", err)
	}
	for i, sc := range report.Funnel {
		cells := []interface{}{string(sc.Stage), sc.Count}
		addr := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(funnelSheet, addr, &cells); err != nil {
			return nil, fmt.Errorf("failed to write funnel row %d: %w", i+2, err)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to serialize workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// rateCell maps a Rate to a spreadsheet cell value
func rateCell(r rates.Rate) interface{} {
	if v, ok := r.Value(); ok {
		return v
	}
	return "-"
}
