package model

import "time"

// ForecastPoint is one monthly period of a fitted/forecast series.
// Invariant: YHatLower <= YHat <= YHatUpper.
type ForecastPoint struct {
	Date      time.Time `json:"ds"`
	YHat      float64   `json:"yhat"`
	YHatLower float64   `json:"yhat_lower"`
	YHatUpper float64   `json:"yhat_upper"`

	// Observed is the historical monthly total; nil for horizon points.
	Observed *float64 `json:"y,omitempty"`
	Forecast bool     `json:"forecast"`
}

// ComponentPoint carries the decomposed trend and seasonal parts for one period.
// Used for visualization only.
type ComponentPoint struct {
	Date     time.Time `json:"ds"`
	Trend    float64   `json:"trend"`
	Seasonal float64   `json:"seasonal"`
}

// SeasonalEffect is the additive yearly effect of one calendar month.
type SeasonalEffect struct {
	Month  time.Month `json:"month"`
	Effect float64    `json:"effect"`
}

// ForecastResult covers the historical months followed by Horizon future months.
type ForecastResult struct {
	Model      string           `json:"model"`
	Points     []ForecastPoint  `json:"points"`
	Components []ComponentPoint `json:"components"`
	Yearly     []SeasonalEffect `json:"yearly_seasonality"`

	HistoryLen int     `json:"history_len"`
	Horizon    int     `json:"horizon"`
	Interval   float64 `json:"interval_width"`
}

// History returns the in-sample points.
func (r *ForecastResult) History() []ForecastPoint {
	if r == nil {
		return nil
	}
	return r.Points[:r.HistoryLen]
}

// Future returns the horizon-only points.
func (r *ForecastResult) Future() []ForecastPoint {
	if r == nil {
		return nil
	}
	return r.Points[r.HistoryLen:]
}
