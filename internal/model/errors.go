package model

import (
	"errors"
	"fmt"
)

// ErrInvalidHorizon is returned when the requested horizon is below one month
// or outside the configured range.
var ErrInvalidHorizon = errors.New("invalid forecast horizon")

// DataFormatError reports a missing or malformed required column or cell.
// Row is the 1-based data row (0 when the problem is in the header).
type DataFormatError struct {
	Row    int
	Column string
	Value  string
	Reason string
}

func (e *DataFormatError) Error() string {
	if e.Column == "" {
		return fmt.Sprintf("data format: row %d: %s", e.Row, e.Reason)
	}
	if e.Row == 0 {
		return fmt.Sprintf("data format: column %q: %s", e.Column, e.Reason)
	}
	if e.Value == "" {
		return fmt.Sprintf("data format: row %d, column %q: %s", e.Row, e.Column, e.Reason)
	}
	return fmt.Sprintf("data format: row %d, column %q, value %q: %s", e.Row, e.Column, e.Value, e.Reason)
}

// InsufficientDataError is returned when the history has too few distinct months to fit a trend.
type InsufficientDataError struct {
	Months   int
	Required int
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("insufficient data: %d distinct month(s) of history, need at least %d", e.Months, e.Required)
}

// IsDataFormat reports whether err wraps a *DataFormatError.
func IsDataFormat(err error) bool {
	var de *DataFormatError
	return errors.As(err, &de)
}

// IsInsufficientData reports whether err wraps an *InsufficientDataError.
func IsInsufficientData(err error) bool {
	var ie *InsufficientDataError
	return errors.As(err, &ie)
}
