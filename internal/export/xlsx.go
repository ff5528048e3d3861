package export

import (
	"fmt"

	"sales-forecast/internal/analysis"

	"github.com/xuri/excelize/v2"
)

const (
	SheetForecast  = "Forecast"
	SheetTopMonths = "Top Months"
)

// EncodeXLSX builds a workbook with the forecast table and the top-months ranking.
func EncodeXLSX(rows []Row, top []analysis.RankedMonth) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetForecast); err != nil {
		return nil, err
	}
	if err := writeHeader(f, SheetForecast, csvHeader, 16); err != nil {
		return nil, err
	}
	for i, r := range rows {
		line := i + 2
		cells := []any{fmtDate(r.Date), r.YHat, r.YHatLower, r.YHatUpper}
		if err := writeRow(f, SheetForecast, line, cells); err != nil {
			return nil, err
		}
	}

	if _, err := f.NewSheet(SheetTopMonths); err != nil {
		return nil, err
	}
	if err := writeHeader(f, SheetTopMonths, []string{"Rank", "Month", "Total Sales", "Records"}, 18); err != nil {
		return nil, err
	}
	for i, m := range top {
		cells := []any{m.Rank, m.Label, m.TotalSales.InexactFloat64(), m.Records}
		if err := writeRow(f, SheetTopMonths, i+2, cells); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func writeHeader(f *excelize.File, sheet string, header []string, width float64) error {
	for i, h := range header {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return err
		}
		col, _, err := excelize.SplitCellName(cell)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(sheet, col, col, width); err != nil {
			return err
		}
	}
	return nil
}

func writeRow(f *excelize.File, sheet string, line int, cells []any) error {
	for i, v := range cells {
		cell, err := excelize.CoordinatesToCellName(i+1, line)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			return err
		}
	}
	return nil
}
