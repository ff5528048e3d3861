package analysis

import (
	"sort"
	"time"

	"sales-forecast/internal/model"

	"github.com/shopspring/decimal"
)

// AggregateMonthly sums SaleAmount per calendar month and returns the months in
// chronological order. Months with no records do not appear in the output.
func AggregateMonthly(records []model.RawRecord) (model.MonthlySeries, error) {
	byMonth := make(map[time.Time]*model.MonthlyTotal)
	for _, r := range records {
		if r.Date.IsZero() {
			return nil, &model.DataFormatError{Row: r.Row, Column: "data", Reason: "missing date"}
		}
		if r.SaleAmount.IsNegative() {
			return nil, &model.DataFormatError{Row: r.Row, Column: "venda", Value: r.SaleAmount.String(), Reason: "sale amount must be non-negative"}
		}
		key := r.MonthStart()
		m, ok := byMonth[key]
		if !ok {
			m = &model.MonthlyTotal{Month: key, TotalSales: decimal.Zero}
			byMonth[key] = m
		}
		m.TotalSales = m.TotalSales.Add(r.SaleAmount)
		m.Records++
	}

	out := make(model.MonthlySeries, 0, len(byMonth))
	for _, m := range byMonth {
		out = append(out, *m)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Month.Before(out[j].Month)
	})
	return out, nil
}
