package forecast

import (
	"fmt"
	"log"
	"math"
	"time"

	"sales-forecast/internal/model"

	"github.com/sartorproj/goarima/sarima"
	"github.com/sartorproj/goarima/stats"
	"github.com/sartorproj/goarima/timeseries"
)

const SARIMAName = "sarima"

const (
	period = 12
	// Minimum lengths accepted by sarima.Model.Fit for the two orders used here.
	seasonalMinLen = 1 + 1 + period + period + 20
	arimaMinLen    = 1 + 1 + 20
	stlRobustIters = 2
)

// SARIMA wraps goarima's seasonal ARIMA. Histories the model cannot take
// (too short, or with missing months) are handed to the additive model.
type SARIMA struct {
	opts     Options
	fallback *Additive
}

func NewSARIMA(opts Options) *SARIMA {
	return &SARIMA{opts: opts, fallback: NewAdditive(opts)}
}

func (s *SARIMA) Name() string { return SARIMAName }

func (s *SARIMA) FitAndPredict(series model.MonthlySeries, horizon int) (*model.ForecastResult, error) {
	if err := validate(series, horizon); err != nil {
		return nil, err
	}
	if hasGaps(series) {
		log.Printf("[Forecast] sarima: %d months with gaps, using %s", len(series), AdditiveName)
		return s.fallback.FitAndPredict(series, horizon)
	}

	var m *sarima.Model
	switch n := len(series); {
	case n >= seasonalMinLen:
		m = sarima.New(1, 1, 0, 1, 1, 0, period)
	case n >= arimaMinLen:
		m = sarima.New(1, 1, 0, 0, 0, 0, 0)
	default:
		log.Printf("[Forecast] sarima: %d months is below %d, using %s", n, arimaMinLen, AdditiveName)
		return s.fallback.FitAndPredict(series, horizon)
	}

	res, err := s.fit(m, series, horizon)
	if err != nil {
		log.Printf("[Forecast] sarima: %v, using %s", err, AdditiveName)
		return s.fallback.FitAndPredict(series, horizon)
	}
	return res, nil
}

func (s *SARIMA) fit(m *sarima.Model, series model.MonthlySeries, horizon int) (*model.ForecastResult, error) {
	ys := series.Values()
	ts, err := timeseries.NewWithTimestamps(series.Times(), ys)
	if err != nil {
		return nil, err
	}
	if err := m.Fit(ts); err != nil {
		return nil, fmt.Errorf("fit: %w", err)
	}

	interval := s.opts.interval()
	fc, lo, hi, err := m.PredictWithInterval(horizon, interval)
	if err != nil {
		return nil, fmt.Errorf("predict: %w", err)
	}

	n := len(ys)
	half := zScore(interval) * math.Sqrt(m.Variance)
	if !finite(half, m.Variance) {
		return nil, fmt.Errorf("non-finite residual variance")
	}

	res := &model.ForecastResult{
		Model:      SARIMAName,
		Points:     make([]model.ForecastPoint, 0, n+horizon),
		HistoryLen: n,
		Horizon:    horizon,
		Interval:   interval,
	}

	// Residuals are on the differenced scale and cover the tail of the history.
	// A one-step residual is the same on either scale, so fitted = observed - residual.
	resid := m.Residuals()
	offset := n - len(resid)
	if offset < 0 {
		return nil, fmt.Errorf("%d residuals for %d months", len(resid), n)
	}
	for i, mt := range series {
		yhat := ys[i]
		if i >= offset {
			yhat = ys[i] - resid[i-offset]
		}
		p := model.ForecastPoint{
			Date:      mt.Month,
			YHat:      yhat,
			YHatLower: yhat - half,
			YHatUpper: yhat + half,
			Observed:  observed(ys[i]),
		}
		if !finite(p.YHat, p.YHatLower, p.YHatUpper) {
			return nil, fmt.Errorf("non-finite fit at %s", mt.Month.Format(time.DateOnly))
		}
		orderBand(&p)
		res.Points = append(res.Points, p)
	}
	for h, ds := range futureMonths(series.Last(), horizon) {
		p := model.ForecastPoint{
			Date:      ds,
			YHat:      fc[h],
			YHatLower: lo[h],
			YHatUpper: hi[h],
			Forecast:  true,
		}
		if !finite(p.YHat, p.YHatLower, p.YHatUpper) {
			return nil, fmt.Errorf("non-finite forecast at %s", ds.Format(time.DateOnly))
		}
		orderBand(&p)
		res.Points = append(res.Points, p)
	}

	res.Components, res.Yearly = decompose(ts, series, res.Points)
	return res, nil
}

// decompose splits the history with STL and carries the last seasonal cycle
// over the horizon. Short histories get the fitted line as trend and no seasonality.
func decompose(ts *timeseries.Series, series model.MonthlySeries, points []model.ForecastPoint) ([]model.ComponentPoint, []model.SeasonalEffect) {
	out := make([]model.ComponentPoint, len(points))
	n := len(series)

	stl := stats.STL(ts, period, stlRobustIters)
	if stl == nil || !finite(stl.Trend.Values...) || !finite(stl.Seasonal.Values...) {
		for i, p := range points {
			out[i] = model.ComponentPoint{Date: p.Date, Trend: p.YHat}
		}
		return out, nil
	}

	seasonal := stl.Seasonal.Values
	for i, p := range points {
		if i < n {
			out[i] = model.ComponentPoint{Date: p.Date, Trend: stl.Trend.Values[i], Seasonal: seasonal[i]}
			continue
		}
		s := seasonal[n-period+(i-n)%period]
		out[i] = model.ComponentPoint{Date: p.Date, Trend: p.YHat - s, Seasonal: s}
	}

	yearly := make([]model.SeasonalEffect, period)
	for i := n - period; i < n; i++ {
		mo := series[i].Month.Month()
		yearly[mo-1] = model.SeasonalEffect{Month: mo, Effect: seasonal[i]}
	}
	return out, yearly
}
