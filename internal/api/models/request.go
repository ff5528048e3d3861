package models

import "encoding/json"

// ForecastRequest holds the optional run settings. Multipart uploads send
// them as form fields next to the "file" part; JSON bodies carry the rows
// in Records using the CSV column names.
type ForecastRequest struct {
	Horizon  int     `form:"horizon" json:"horizon"`
	TopN     int     `form:"top" json:"top"`
	Model    string  `form:"model" json:"model"`
	Interval float64 `form:"interval" json:"interval"`

	Records json.RawMessage `form:"-" json:"records"`
}
