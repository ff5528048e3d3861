package analysis

import (
	"sort"
	"time"

	"sales-forecast/internal/model"
)

// PriceStockPoint is one record's price and stock level. Nil means the cell was blank.
type PriceStockPoint struct {
	Date  time.Time `json:"date"`
	Price *float64  `json:"price"`
	Stock *float64  `json:"stock"`
}

// PriceStock returns price and stock per record ordered by date (stable for equal dates).
func PriceStock(records []model.RawRecord) []PriceStockPoint {
	out := make([]PriceStockPoint, 0, len(records))
	for _, r := range records {
		p := PriceStockPoint{Date: r.Date}
		if r.Price.Valid {
			v := r.Price.Decimal.InexactFloat64()
			p.Price = &v
		}
		if r.StockLevel.Valid {
			v := r.StockLevel.Decimal.InexactFloat64()
			p.Stock = &v
		}
		out = append(out, p)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.Before(out[j].Date)
	})
	return out
}
