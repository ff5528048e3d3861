package models

import (
	"time"

	"sales-forecast/internal/analysis"
	"sales-forecast/internal/export"
	"sales-forecast/internal/model"
)

// ForecastResponse is the full dashboard payload for one upload.
type ForecastResponse struct {
	Model    string  `json:"model"`
	Horizon  int     `json:"horizon"`
	Interval float64 `json:"interval_width"`

	Summary analysis.SalesSummary `json:"summary"`
	Monthly model.MonthlySeries   `json:"monthly"`

	Points     []model.ForecastPoint  `json:"forecast"`
	Components []model.ComponentPoint `json:"components"`
	Yearly     []model.SeasonalEffect `json:"yearly_seasonality,omitempty"`

	Table       []export.Row `json:"forecast_table"`
	ForecastCSV string       `json:"forecast_csv"`

	TopMonths  []analysis.RankedMonth     `json:"top_months"`
	PriceStock []analysis.PriceStockPoint `json:"price_stock"`
}

// ModelInfo describes a forecaster the API can run
type ModelInfo struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	MinMonths   int             `json:"min_months"`
	Default     bool            `json:"default"`
	Parameters  []ParameterInfo `json:"parameters"`
}

// ParameterInfo describes a request parameter
type ParameterInfo struct {
	Name        string      `json:"name"`
	Type        string      `json:"type"` // "float", "int", "string"
	Description string      `json:"description"`
	Default     interface{} `json:"default,omitempty"`
}

// SettingsResponse exposes the limits the UI needs to build its controls
type SettingsResponse struct {
	Horizon       HorizonRange `json:"horizon"`
	TopN          int          `json:"top_n"`
	Model         string       `json:"model"`
	IntervalWidth float64      `json:"interval_width"`
	MaxUploadMB   int64        `json:"max_upload_mb"`
	Charts        []string     `json:"charts"`
}

type HorizonRange struct {
	Min     int `json:"min"`
	Max     int `json:"max"`
	Default int `json:"default"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information
type ErrorDetail struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// SampleInfo describes a bundled sales file
type SampleInfo struct {
	ID      string     `json:"id"`
	File    string     `json:"file"`
	Records int        `json:"records"`
	Months  int        `json:"months"`
	Window  TimeWindow `json:"window"`
}

// TimeWindow represents a time range
type TimeWindow struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}
