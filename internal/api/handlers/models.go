package handlers

import (
	"log"
	"net/http"

	"sales-forecast/internal/api/models"
	"sales-forecast/internal/config"
	"sales-forecast/internal/forecast"

	"github.com/gin-gonic/gin"
)

// ModelHandler lists forecasters and the dashboard settings
type ModelHandler struct {
	cfg *config.Config
}

// NewModelHandler creates a new model handler
func NewModelHandler(cfg *config.Config) *ModelHandler {
	return &ModelHandler{cfg: cfg}
}

// ListModels handles GET /api/v1/models
func (h *ModelHandler) ListModels(c *gin.Context) {
	params := []models.ParameterInfo{
		{
			Name:        "horizon",
			Type:        "int",
			Description: "Months to forecast past the last month of history",
			Default:     h.cfg.Forecast.DefaultHorizon,
		},
		{
			Name:        "interval",
			Type:        "float",
			Description: "Coverage of the uncertainty band, between 0 and 1",
			Default:     h.cfg.Forecast.IntervalWidth,
		},
	}

	available := forecast.Available()
	out := make([]models.ModelInfo, 0, len(available))
	for _, info := range available {
		out = append(out, models.ModelInfo{
			Name:        info.Name,
			Description: info.Description,
			MinMonths:   info.MinMonths,
			Default:     info.Name == h.cfg.Forecast.Model,
			Parameters:  params,
		})
	}

	log.Printf("ModelHandler: Returning %d models", len(out))
	c.JSON(http.StatusOK, gin.H{"models": out})
}

// GetSettings handles GET /api/v1/settings
func (h *ModelHandler) GetSettings(c *gin.Context) {
	f := h.cfg.Forecast
	c.JSON(http.StatusOK, models.SettingsResponse{
		Horizon: models.HorizonRange{
			Min:     f.MinHorizon,
			Max:     f.MaxHorizon,
			Default: f.DefaultHorizon,
		},
		TopN:          f.TopN,
		Model:         f.Model,
		IntervalWidth: f.IntervalWidth,
		MaxUploadMB:   h.cfg.Server.MaxUploadMB,
		Charts:        Charts,
	})
}
