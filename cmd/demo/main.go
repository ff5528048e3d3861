package main

import (
	"flag"
	"fmt"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"sales-forecast/internal/config"
	"sales-forecast/internal/data"
	"sales-forecast/internal/model"
	"sales-forecast/internal/pipeline"

	"github.com/shopspring/decimal"
)

// Demo:
// - Generate a synthetic sales file (trend + yearly season + noise, with restocks)
// - Write it as CSV in the upload format
// - Run the full pipeline on it and print the tail table and top months
func main() {
	months := flag.Int("months", 36, "Number of months to generate")
	seed := flag.Int64("seed", 42, "Random seed")
	outCSV := flag.String("out", "examples/sales/demo.csv", "Where to write the generated sales CSV")
	cfgPath := flag.String("config", "", "Path to YAML config (optional)")
	horizon := flag.Int("horizon", 0, "Months to forecast (default from config)")
	modelName := flag.String("model", "", "Forecast model (default from config)")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		panic(err)
	}

	records := generate(*months, rand.New(rand.NewSource(*seed)))

	if err := os.MkdirAll(filepath.Dir(*outCSV), 0o755); err != nil {
		panic(err)
	}
	f, err := os.Create(*outCSV)
	if err != nil {
		panic(err)
	}
	if err := data.WriteRecordsCSV(f, records); err != nil {
		panic(err)
	}
	if err := f.Close(); err != nil {
		panic(err)
	}
	fmt.Printf("Wrote %d records over %d months to %s\n", len(records), *months, *outCSV)

	// Re-read through the upload parser so the demo exercises the same path as the API.
	loaded, err := data.LoadRecordsFile(*outCSV)
	if err != nil {
		panic(err)
	}

	fc := config.MergeForecast(cfg.Forecast, config.ForecastConfig{DefaultHorizon: *horizon, Model: *modelName})
	engine := &pipeline.Engine{MinHorizon: cfg.Forecast.MinHorizon, MaxHorizon: cfg.Forecast.MaxHorizon}
	res, err := engine.Run(loaded, pipeline.Options{
		Horizon:  fc.DefaultHorizon,
		TopN:     fc.TopN,
		Model:    fc.Model,
		Interval: fc.IntervalWidth,
	})
	if err != nil {
		panic(err)
	}

	fmt.Printf("Model=%s  months=%d  total sales=%s\n\n", res.Forecast.Model, len(res.Monthly), res.Summary.TotalSales.StringFixed(2))
	for _, r := range res.Table {
		fmt.Printf("%s  yhat=%10.2f  [%10.2f, %10.2f]\n", r.Date.Format("2006-01"), r.YHat, r.YHatLower, r.YHatUpper)
	}
	fmt.Println()
	for _, m := range res.Top {
		fmt.Printf("#%d %-16s %s\n", m.Rank, m.Label, m.TotalSales.StringFixed(2))
	}
}

func generate(months int, rng *rand.Rand) []model.RawRecord {
	start := time.Date(time.Now().Year()-months/12-1, time.January, 1, 0, 0, 0, 0, time.UTC)
	var out []model.RawRecord
	stock := 500.0
	price := 20.0
	row := 0
	for m := 0; m < months; m++ {
		monthStart := model.AddMonths(start, m)
		days := monthStart.AddDate(0, 1, -1).Day()
		n := 4 + rng.Intn(6)
		level := 1200 + 35*float64(m) + 400*math.Sin(2*math.Pi*float64(monthStart.Month()-1)/12)
		for i := 0; i < n; i++ {
			row++
			amount := math.Max(0, level/float64(n)+rng.NormFloat64()*40)
			price = math.Max(1, price+rng.NormFloat64()*0.3)
			stock -= amount / price
			if stock < 50 {
				stock += 600
			}
			r := model.RawRecord{
				Row:        row,
				Date:       monthStart.AddDate(0, 0, rng.Intn(days)),
				SaleAmount: decimal.NewFromFloat(amount).Round(2),
				StockLevel: decimal.NewNullDecimal(decimal.NewFromFloat(stock).Round(0)),
				Price:      decimal.NewNullDecimal(decimal.NewFromFloat(price).Round(2)),
			}
			// Occasional blank cells, as in real exports.
			if rng.Intn(15) == 0 {
				r.Price = decimal.NullDecimal{}
			}
			out = append(out, r)
		}
	}
	return out
}
