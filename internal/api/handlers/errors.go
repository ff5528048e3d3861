package handlers

import (
	"errors"
	"log"
	"net/http"

	"sales-forecast/internal/api/models"
	"sales-forecast/internal/forecast"
	"sales-forecast/internal/model"

	"github.com/gin-gonic/gin"
)

func respondError(c *gin.Context, status int, code, message string, details map[string]interface{}) {
	c.JSON(status, models.ErrorResponse{
		Error: models.ErrorDetail{
			Code:    code,
			Message: message,
			Details: details,
		},
	})
}

func invalidRequest(c *gin.Context, message string) {
	respondError(c, http.StatusBadRequest, "INVALID_REQUEST", message, nil)
}

// respondRunError maps pipeline errors onto status codes.
func respondRunError(c *gin.Context, err error) {
	var de *model.DataFormatError
	var ie *model.InsufficientDataError
	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &de):
		details := map[string]interface{}{"reason": de.Reason}
		if de.Row > 0 {
			details["row"] = de.Row
		}
		if de.Column != "" {
			details["column"] = de.Column
		}
		if de.Value != "" {
			details["value"] = de.Value
		}
		respondError(c, http.StatusBadRequest, "DATA_FORMAT_ERROR", de.Error(), details)
	case errors.As(err, &ie):
		respondError(c, http.StatusUnprocessableEntity, "INSUFFICIENT_DATA", ie.Error(), map[string]interface{}{
			"months":   ie.Months,
			"required": ie.Required,
		})
	case errors.Is(err, model.ErrInvalidHorizon):
		invalidRequest(c, err.Error())
	case errors.Is(err, forecast.ErrUnknownModel):
		respondError(c, http.StatusBadRequest, "UNKNOWN_MODEL", err.Error(), nil)
	case errors.As(err, &tooLarge):
		respondError(c, http.StatusRequestEntityTooLarge, "PAYLOAD_TOO_LARGE", err.Error(), map[string]interface{}{
			"limit_bytes": tooLarge.Limit,
		})
	default:
		log.Printf("ForecastHandler: run failed: %v", err)
		respondError(c, http.StatusInternalServerError, "FORECAST_ERROR", err.Error(), nil)
	}
}
