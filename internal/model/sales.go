package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// RawRecord is one row of the uploaded sales file.
//
// CSV columns map as:
//
//	data    -> Date
//	venda   -> SaleAmount
//	estoque -> StockLevel
//	preco   -> Price
//
// StockLevel and Price are optional per row; a blank cell leaves them invalid
// and the row shows up as a gap in the price/stock chart.
type RawRecord struct {
	Row int `json:"row"` // 1-based data row in the source file (header excluded)

	Date       time.Time           `json:"data"`
	SaleAmount decimal.Decimal     `json:"venda"`
	StockLevel decimal.NullDecimal `json:"estoque"`
	Price      decimal.NullDecimal `json:"preco"`
}

// MonthStart truncates the record date to the first day of its calendar month (UTC).
func (r RawRecord) MonthStart() time.Time {
	return MonthStart(r.Date)
}

// MonthStart truncates t to the first instant of its calendar month in UTC.
// The calendar fields of t are kept as written in the file, whatever the location.
func MonthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// AddMonths steps a month-start date forward by n calendar months.
func AddMonths(monthStart time.Time, n int) time.Time {
	return time.Date(monthStart.Year(), monthStart.Month()+time.Month(n), 1, 0, 0, 0, 0, time.UTC)
}

// MonthsBetween counts whole calendar months from a to b (b after a gives a positive count).
func MonthsBetween(a, b time.Time) int {
	return (b.Year()-a.Year())*12 + int(b.Month()) - int(a.Month())
}

// MonthlyTotal is the summed sales for one calendar month.
type MonthlyTotal struct {
	Month      time.Time       `json:"month"`
	TotalSales decimal.Decimal `json:"total_sales"`
	Records    int             `json:"records"`
}

// Label renders the month the way the dashboard tables show it ("January 2023").
func (m MonthlyTotal) Label() string {
	return m.Month.Format("January 2006")
}

// MonthlySeries is ordered strictly increasing by Month, one entry per month
// that had at least one record. Months without sales are absent, not zero.
type MonthlySeries []MonthlyTotal

// Times returns the month-start dates in order.
func (s MonthlySeries) Times() []time.Time {
	out := make([]time.Time, len(s))
	for i, m := range s {
		out[i] = m.Month
	}
	return out
}

// Values returns the monthly totals as float64 for model fitting.
func (s MonthlySeries) Values() []float64 {
	out := make([]float64, len(s))
	for i, m := range s {
		out[i] = m.TotalSales.InexactFloat64()
	}
	return out
}

// DistinctMonths counts distinct month keys; for a well-formed series this equals len(s).
func (s MonthlySeries) DistinctMonths() int {
	seen := make(map[time.Time]struct{}, len(s))
	for _, m := range s {
		seen[MonthStart(m.Month)] = struct{}{}
	}
	return len(seen)
}

// Last returns the final month, or the zero time for an empty series.
func (s MonthlySeries) Last() time.Time {
	if len(s) == 0 {
		return time.Time{}
	}
	return s[len(s)-1].Month
}
