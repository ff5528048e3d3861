package middleware

import (
	"log"
	"net/http"

	"sales-forecast/internal/api/models"

	"github.com/gin-gonic/gin"
)

// ErrorHandler middleware turns panics into a 500 JSON error
func ErrorHandler() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		log.Printf("[API] panic recovered id=%s: %v", c.GetString(RequestIDKey), recovered)
		msg := "An unexpected error occurred"
		switch v := recovered.(type) {
		case string:
			msg = v
		case error:
			msg = v.Error()
		}
		c.AbortWithStatusJSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INTERNAL_ERROR",
				Message: msg,
			},
		})
	})
}
