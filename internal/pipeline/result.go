package pipeline

import (
	"sales-forecast/internal/analysis"
	"sales-forecast/internal/export"
	"sales-forecast/internal/model"
)

// Result holds every artifact of one run. It is either complete or not returned at all.
type Result struct {
	Records int

	Monthly  model.MonthlySeries
	Forecast *model.ForecastResult

	// Table is the last Horizon forecast rows; CSV is the same table encoded.
	Table []export.Row
	CSV   []byte

	Top        []analysis.RankedMonth
	PriceStock []analysis.PriceStockPoint
	Summary    analysis.SalesSummary
}
