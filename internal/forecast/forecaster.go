package forecast

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"sales-forecast/internal/model"
)

// DefaultInterval is the central coverage of the uncertainty band.
const DefaultInterval = 0.80

// MinMonths is the fewest distinct months any forecaster will fit.
const MinMonths = 2

var ErrUnknownModel = errors.New("unknown forecast model")

// Forecaster fits a monthly series and predicts horizon months past its last month.
// The returned points cover every historical month followed by the horizon months.
type Forecaster interface {
	Name() string
	FitAndPredict(series model.MonthlySeries, horizon int) (*model.ForecastResult, error)
}

type Options struct {
	// Interval is the band coverage in (0, 1). Zero means DefaultInterval.
	Interval float64
}

func (o Options) interval() float64 {
	if o.Interval <= 0 || o.Interval >= 1 {
		return DefaultInterval
	}
	return o.Interval
}

// Info describes a registered forecaster for listings.
type Info struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	MinMonths   int    `json:"min_months"`
}

type factory func(Options) Forecaster

var registry = map[string]struct {
	info Info
	make factory
}{
	AdditiveName: {
		info: Info{
			Name:        AdditiveName,
			Description: "Linear trend plus month-of-year seasonality (enabled from 24 months of history). Fast, works from two months.",
			MinMonths:   MinMonths,
		},
		make: func(o Options) Forecaster { return NewAdditive(o) },
	},
	SARIMAName: {
		info: Info{
			Name:        SARIMAName,
			Description: "Seasonal ARIMA(1,1,0)(1,1,0)[12]; ARIMA(1,1,0) for shorter histories. Falls back to additive when the history is too short or has gaps.",
			MinMonths:   MinMonths,
		},
		make: func(o Options) Forecaster { return NewSARIMA(o) },
	},
}

// New returns the named forecaster. An empty name selects the additive model.
func New(name string, opts Options) (Forecaster, error) {
	if name == "" {
		name = AdditiveName
	}
	entry, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownModel, name)
	}
	return entry.make(opts), nil
}

// Available lists registered forecasters sorted by name.
func Available() []Info {
	out := make([]Info, 0, len(registry))
	for _, e := range registry {
		out = append(out, e.info)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func validate(series model.MonthlySeries, horizon int) error {
	if horizon < 1 {
		return model.ErrInvalidHorizon
	}
	if n := series.DistinctMonths(); n < MinMonths {
		return &model.InsufficientDataError{Months: n, Required: MinMonths}
	}
	return nil
}

// zScore returns the two-sided normal quantile for the given coverage.
func zScore(interval float64) float64 {
	return math.Sqrt2 * math.Erfinv(interval)
}

func futureMonths(last time.Time, horizon int) []time.Time {
	out := make([]time.Time, horizon)
	for h := 1; h <= horizon; h++ {
		out[h-1] = model.AddMonths(last, h)
	}
	return out
}

// hasGaps reports whether any calendar month between the first and last is missing.
func hasGaps(series model.MonthlySeries) bool {
	if len(series) < 2 {
		return false
	}
	return model.MonthsBetween(series[0].Month, series.Last())+1 != len(series)
}

func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// orderBand keeps lower <= yhat <= upper.
func orderBand(p *model.ForecastPoint) {
	if p.YHatLower > p.YHatUpper {
		p.YHatLower, p.YHatUpper = p.YHatUpper, p.YHatLower
	}
	if p.YHat < p.YHatLower {
		p.YHatLower = p.YHat
	}
	if p.YHat > p.YHatUpper {
		p.YHatUpper = p.YHat
	}
}

func observed(v float64) *float64 {
	return &v
}
