package analysis

import (
	"sort"

	"sales-forecast/internal/model"
)

// RankedMonth is one row of the top-months table.
type RankedMonth struct {
	model.MonthlyTotal
	Rank  int    `json:"rank"`
	Label string `json:"label"`
}

// TopMonths returns the n months with the highest total sales, descending.
// Equal totals keep chronological order. n larger than the series returns every month.
func TopMonths(series model.MonthlySeries, n int) []RankedMonth {
	if n <= 0 || len(series) == 0 {
		return []RankedMonth{}
	}
	sorted := make(model.MonthlySeries, len(series))
	copy(sorted, series)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].TotalSales.GreaterThan(sorted[j].TotalSales)
	})
	if n > len(sorted) {
		n = len(sorted)
	}
	out := make([]RankedMonth, n)
	for i := 0; i < n; i++ {
		out[i] = RankedMonth{
			MonthlyTotal: sorted[i],
			Rank:         i + 1,
			Label:        sorted[i].Label(),
		}
	}
	return out
}
