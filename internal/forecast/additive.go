package forecast

import (
	"math"
	"time"

	"sales-forecast/internal/model"
)

const AdditiveName = "additive"

const (
	// seasonalMinSpan is the history span in months from which yearly seasonality is fitted.
	seasonalMinSpan = 24
	backfitIters    = 10
)

// Additive models sales as a least-squares linear trend over the month index
// plus a centered month-of-year effect. Gaps in the series keep their real
// spacing on the time axis.
type Additive struct {
	opts Options
}

func NewAdditive(opts Options) *Additive {
	return &Additive{opts: opts}
}

func (a *Additive) Name() string { return AdditiveName }

func (a *Additive) FitAndPredict(series model.MonthlySeries, horizon int) (*model.ForecastResult, error) {
	if err := validate(series, horizon); err != nil {
		return nil, err
	}
	fit := fitAdditive(series)
	return fit.result(series, horizon, a.opts.interval()), nil
}

type additiveFit struct {
	origin     time.Time
	intercept  float64
	slope      float64
	seasonal   [12]float64
	seasonalOn bool

	n     int
	sigma float64
	tMean float64
	sxx   float64
}

func fitAdditive(series model.MonthlySeries) additiveFit {
	n := len(series)
	ys := series.Values()
	ts := make([]float64, n)
	months := make([]int, n)
	for i, m := range series {
		ts[i] = float64(model.MonthsBetween(series[0].Month, m.Month))
		months[i] = int(m.Month.Month()) - 1
	}

	f := additiveFit{
		origin:     series[0].Month,
		n:          n,
		seasonalOn: ts[n-1]+1 >= seasonalMinSpan,
	}

	adj := make([]float64, n)
	observedMonths := 0
	for iter := 0; ; iter++ {
		for i := range ys {
			adj[i] = ys[i] - f.seasonal[months[i]]
		}
		f.intercept, f.slope, f.tMean, f.sxx = ols(ts, adj)
		if !f.seasonalOn || iter == backfitIters {
			break
		}

		var sum [12]float64
		var cnt [12]int
		for i := range ys {
			sum[months[i]] += ys[i] - (f.intercept + f.slope*ts[i])
			cnt[months[i]]++
		}
		total := 0.0
		observedMonths = 0
		for m := 0; m < 12; m++ {
			f.seasonal[m] = 0
			if cnt[m] > 0 {
				f.seasonal[m] = sum[m] / float64(cnt[m])
				total += f.seasonal[m]
				observedMonths++
			}
		}
		mean := total / float64(observedMonths)
		for m := 0; m < 12; m++ {
			if cnt[m] > 0 {
				f.seasonal[m] -= mean
			}
		}
	}

	sse := 0.0
	for i := range ys {
		r := ys[i] - f.predict(ts[i], months[i])
		sse += r * r
	}
	params := 2
	if f.seasonalOn {
		params += observedMonths - 1
	}
	dof := n - params
	if dof < 1 {
		dof = 1
	}
	f.sigma = math.Sqrt(sse / float64(dof))
	return f
}

// ols fits y = a + b*t. The caller guarantees at least two distinct t values.
func ols(ts, ys []float64) (intercept, slope, tMean, sxx float64) {
	n := float64(len(ts))
	yMean := 0.0
	for i := range ts {
		tMean += ts[i]
		yMean += ys[i]
	}
	tMean /= n
	yMean /= n

	sxy := 0.0
	for i := range ts {
		dt := ts[i] - tMean
		sxx += dt * dt
		sxy += dt * (ys[i] - yMean)
	}
	slope = sxy / sxx
	intercept = yMean - slope*tMean
	return intercept, slope, tMean, sxx
}

func (f additiveFit) trend(t float64) float64 {
	return f.intercept + f.slope*t
}

func (f additiveFit) predict(t float64, month int) float64 {
	return f.trend(t) + f.seasonal[month]
}

// stderr is the OLS prediction standard error at t.
func (f additiveFit) stderr(t float64) float64 {
	d := t - f.tMean
	return f.sigma * math.Sqrt(1+1/float64(f.n)+d*d/f.sxx)
}

func (f additiveFit) point(ds time.Time, z float64) (model.ForecastPoint, model.ComponentPoint) {
	t := float64(model.MonthsBetween(f.origin, ds))
	month := int(ds.Month()) - 1
	yhat := f.predict(t, month)
	half := z * f.stderr(t)
	p := model.ForecastPoint{
		Date:      ds,
		YHat:      yhat,
		YHatLower: yhat - half,
		YHatUpper: yhat + half,
	}
	orderBand(&p)
	return p, model.ComponentPoint{Date: ds, Trend: f.trend(t), Seasonal: f.seasonal[month]}
}

func (f additiveFit) result(series model.MonthlySeries, horizon int, interval float64) *model.ForecastResult {
	z := zScore(interval)
	res := &model.ForecastResult{
		Model:      AdditiveName,
		Points:     make([]model.ForecastPoint, 0, len(series)+horizon),
		Components: make([]model.ComponentPoint, 0, len(series)+horizon),
		HistoryLen: len(series),
		Horizon:    horizon,
		Interval:   interval,
	}
	for _, m := range series {
		p, c := f.point(m.Month, z)
		p.Observed = observed(m.TotalSales.InexactFloat64())
		res.Points = append(res.Points, p)
		res.Components = append(res.Components, c)
	}
	for _, ds := range futureMonths(series.Last(), horizon) {
		p, c := f.point(ds, z)
		p.Forecast = true
		res.Points = append(res.Points, p)
		res.Components = append(res.Components, c)
	}
	if f.seasonalOn {
		res.Yearly = make([]model.SeasonalEffect, 12)
		for m := 0; m < 12; m++ {
			res.Yearly[m] = model.SeasonalEffect{Month: time.Month(m + 1), Effect: f.seasonal[m]}
		}
	}
	return res
}
