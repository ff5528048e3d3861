package pipeline

import (
	"fmt"
	"io"
	"log"
	"time"

	"sales-forecast/internal/analysis"
	"sales-forecast/internal/data"
	"sales-forecast/internal/export"
	"sales-forecast/internal/forecast"
	"sales-forecast/internal/model"
)

const (
	DefaultMinHorizon = 1
	DefaultMaxHorizon = 24
	DefaultTopN       = 3
)

type Options struct {
	Horizon int
	// TopN is the ranking size; zero means DefaultTopN.
	TopN     int
	Model    string
	Interval float64
}

type Engine struct {
	MinHorizon int
	MaxHorizon int
}

func New() *Engine {
	return &Engine{MinHorizon: DefaultMinHorizon, MaxHorizon: DefaultMaxHorizon}
}

// RunCSV parses an uploaded sales file and runs it.
func (e *Engine) RunCSV(r io.Reader, opts Options) (*Result, error) {
	records, err := data.LoadRecordsCSV(r)
	if err != nil {
		return nil, err
	}
	return e.Run(records, opts)
}

// Run aggregates records by month, forecasts opts.Horizon months ahead and
// builds the ranking and download table.
func (e *Engine) Run(records []model.RawRecord, opts Options) (*Result, error) {
	if opts.Horizon < e.MinHorizon || opts.Horizon > e.MaxHorizon {
		return nil, fmt.Errorf("%w: %d is outside %d..%d months", model.ErrInvalidHorizon, opts.Horizon, e.MinHorizon, e.MaxHorizon)
	}
	topN := opts.TopN
	if topN == 0 {
		topN = DefaultTopN
	}

	fc, err := forecast.New(opts.Model, forecast.Options{Interval: opts.Interval})
	if err != nil {
		return nil, err
	}

	began := time.Now()
	monthly, err := analysis.AggregateMonthly(records)
	if err != nil {
		return nil, fmt.Errorf("aggregate: %w", err)
	}
	log.Printf("[Pipeline] %d records aggregated into %d months", len(records), len(monthly))

	res, err := fc.FitAndPredict(monthly, opts.Horizon)
	if err != nil {
		return nil, fmt.Errorf("forecast (%s): %w", fc.Name(), err)
	}

	table := export.Tail(res, opts.Horizon)
	csvBytes, err := export.EncodeCSV(table)
	if err != nil {
		return nil, fmt.Errorf("encode csv: %w", err)
	}

	out := &Result{
		Records:    len(records),
		Monthly:    monthly,
		Forecast:   res,
		Table:      table,
		CSV:        csvBytes,
		Top:        analysis.TopMonths(monthly, topN),
		PriceStock: analysis.PriceStock(records),
		Summary:    analysis.Summarize(records, monthly),
	}
	log.Printf("[Pipeline] model=%s horizon=%d points=%d took=%s", res.Model, opts.Horizon, len(res.Points), time.Since(began))
	return out, nil
}
