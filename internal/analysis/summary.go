package analysis

import (
	"math"
	"sort"
	"time"

	"sales-forecast/internal/model"

	"github.com/shopspring/decimal"
)

// SalesSummary is the headline card shown above the charts.
// Monthly statistics are taken over months present in the series only.
type SalesSummary struct {
	Records int       `json:"records"`
	Months  int       `json:"months"`
	Start   time.Time `json:"start"`
	End     time.Time `json:"end"`

	TotalSales decimal.Decimal `json:"total_sales"`

	MeanMonthly float64 `json:"mean_monthly"`
	MinMonthly  float64 `json:"min_monthly"`
	MaxMonthly  float64 `json:"max_monthly"`
	P05Monthly  float64 `json:"p05_monthly"`
	P95Monthly  float64 `json:"p95_monthly"`
}

func Summarize(records []model.RawRecord, series model.MonthlySeries) SalesSummary {
	s := SalesSummary{TotalSales: decimal.Zero}
	s.Records = len(records)
	for i, r := range records {
		if i == 0 || r.Date.Before(s.Start) {
			s.Start = r.Date
		}
		if i == 0 || r.Date.After(s.End) {
			s.End = r.Date
		}
	}
	if len(series) == 0 {
		return s
	}
	s.Months = len(series)

	minv := math.Inf(1)
	maxv := math.Inf(-1)
	vals := make([]float64, 0, len(series))
	for _, m := range series {
		s.TotalSales = s.TotalSales.Add(m.TotalSales)
		v := m.TotalSales.InexactFloat64()
		vals = append(vals, v)
		if v < minv {
			minv = v
		}
		if v > maxv {
			maxv = v
		}
	}
	sort.Float64s(vals)
	s.MinMonthly = minv
	s.MaxMonthly = maxv
	s.MeanMonthly = s.TotalSales.InexactFloat64() / float64(len(vals))
	s.P05Monthly = percentileSorted(vals, 0.05)
	s.P95Monthly = percentileSorted(vals, 0.95)
	return s
}

func percentileSorted(sorted []float64, q float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if q <= 0 {
		return sorted[0]
	}
	if q >= 1 {
		return sorted[len(sorted)-1]
	}
	// Linear interpolation between order stats.
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}
