package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"log"
	"net/http"

	"sales-forecast/internal/api/models"
	"sales-forecast/internal/config"
	"sales-forecast/internal/data"
	"sales-forecast/internal/export"
	"sales-forecast/internal/model"
	"sales-forecast/internal/pipeline"
	"sales-forecast/internal/render"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

const (
	ChartForecast   = "forecast"
	ChartComponents = "components"
	ChartPriceStock = "price-stock"

	mimeCSV  = "text/csv"
	mimeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// Charts lists the names accepted by RenderChart.
var Charts = []string{ChartForecast, ChartComponents, ChartPriceStock}

// ForecastHandler runs the upload -> aggregate -> forecast -> present pipeline.
// Each request gets its own run; nothing is kept between requests.
type ForecastHandler struct {
	cfg    *config.Config
	engine *pipeline.Engine
	theme  render.Theme
}

// NewForecastHandler creates a new forecast handler
func NewForecastHandler(cfg *config.Config) (*ForecastHandler, error) {
	th, err := cfg.Theme.Render()
	if err != nil {
		return nil, fmt.Errorf("theme: %w", err)
	}
	return &ForecastHandler{
		cfg: cfg,
		engine: &pipeline.Engine{
			MinHorizon: cfg.Forecast.MinHorizon,
			MaxHorizon: cfg.Forecast.MaxHorizon,
		},
		theme: th,
	}, nil
}

// RunForecast handles POST /api/v1/forecast
func (h *ForecastHandler) RunForecast(c *gin.Context) {
	res, ok := h.run(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, buildResponse(res))
}

// DownloadCSV handles POST /api/v1/forecast/csv
func (h *ForecastHandler) DownloadCSV(c *gin.Context) {
	res, ok := h.run(c)
	if !ok {
		return
	}
	c.Header("Content-Disposition", `attachment; filename="forecast.csv"`)
	c.Data(http.StatusOK, mimeCSV+"; charset=utf-8", res.CSV)
}

// DownloadXLSX handles POST /api/v1/forecast/xlsx
func (h *ForecastHandler) DownloadXLSX(c *gin.Context) {
	res, ok := h.run(c)
	if !ok {
		return
	}
	b, err := export.EncodeXLSX(res.Table, res.Top)
	if err != nil {
		respondRunError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="forecast.xlsx"`)
	c.Data(http.StatusOK, mimeXLSX, b)
}

// RenderChart handles POST /api/v1/forecast/charts/:chart
func (h *ForecastHandler) RenderChart(c *gin.Context) {
	name := c.Param("chart")
	if !knownChart(name) {
		respondError(c, http.StatusNotFound, "UNKNOWN_CHART", fmt.Sprintf("unknown chart %q", name), map[string]interface{}{
			"charts": Charts,
		})
		return
	}
	res, ok := h.run(c)
	if !ok {
		return
	}
	b, err := renderChart(name, res, h.theme)
	if err != nil {
		respondRunError(c, err)
		return
	}
	c.Data(http.StatusOK, "image/png", b)
}

func knownChart(name string) bool {
	for _, ch := range Charts {
		if ch == name {
			return true
		}
	}
	return false
}

func renderChart(name string, res *pipeline.Result, th render.Theme) ([]byte, error) {
	switch name {
	case ChartForecast:
		return render.ForecastChart(res.Forecast, th)
	case ChartComponents:
		return render.ComponentsChart(res.Forecast, th)
	case ChartPriceStock:
		return render.PriceStockChart(res.PriceStock, th)
	}
	return nil, fmt.Errorf("unknown chart %q", name)
}

// run reads the request, runs the pipeline and writes any error response.
// Accepted bodies: multipart with a "file" part, raw text/csv, or JSON with "records".
func (h *ForecastHandler) run(c *gin.Context) (*pipeline.Result, bool) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.cfg.Server.MaxUploadBytes())

	var (
		req     models.ForecastRequest
		records []model.RawRecord
		err     error
	)
	switch c.ContentType() {
	case binding.MIMEJSON:
		if err := c.ShouldBindJSON(&req); err != nil {
			h.bindError(c, err)
			return nil, false
		}
		if len(req.Records) == 0 {
			invalidRequest(c, "records is required")
			return nil, false
		}
		records, err = data.LoadRecordsJSON(bytes.NewReader(req.Records))
	case mimeCSV:
		if err := c.ShouldBindQuery(&req); err != nil {
			h.bindError(c, err)
			return nil, false
		}
		records, err = data.LoadRecordsCSV(c.Request.Body)
	default:
		if err := c.ShouldBind(&req); err != nil {
			h.bindError(c, err)
			return nil, false
		}
		fh, ferr := c.FormFile("file")
		if ferr != nil {
			h.bindError(c, fmt.Errorf("file is required: %w", ferr))
			return nil, false
		}
		f, ferr := fh.Open()
		if ferr != nil {
			invalidRequest(c, ferr.Error())
			return nil, false
		}
		defer f.Close()
		records, err = data.LoadRecordsCSV(f)
	}
	if err != nil {
		respondRunError(c, err)
		return nil, false
	}

	opts, err := h.options(req)
	if err != nil {
		invalidRequest(c, err.Error())
		return nil, false
	}
	log.Printf("ForecastHandler: %d records, horizon=%d top=%d model=%q", len(records), opts.Horizon, opts.TopN, opts.Model)

	res, err := h.engine.Run(records, opts)
	if err != nil {
		respondRunError(c, err)
		return nil, false
	}
	return res, true
}

func (h *ForecastHandler) bindError(c *gin.Context, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		respondRunError(c, err)
		return
	}
	invalidRequest(c, err.Error())
}

// options applies the request overrides on top of the configured defaults.
func (h *ForecastHandler) options(req models.ForecastRequest) (pipeline.Options, error) {
	if req.Interval < 0 || req.Interval >= 1 {
		return pipeline.Options{}, fmt.Errorf("interval must be in (0, 1), got %v", req.Interval)
	}
	if req.TopN < 0 {
		return pipeline.Options{}, fmt.Errorf("top must be positive, got %d", req.TopN)
	}
	fc := config.MergeForecast(h.cfg.Forecast, config.ForecastConfig{
		DefaultHorizon: req.Horizon,
		TopN:           req.TopN,
		Model:          req.Model,
		IntervalWidth:  req.Interval,
	})
	return pipeline.Options{
		Horizon:  fc.DefaultHorizon,
		TopN:     fc.TopN,
		Model:    fc.Model,
		Interval: fc.IntervalWidth,
	}, nil
}

func buildResponse(res *pipeline.Result) models.ForecastResponse {
	return models.ForecastResponse{
		Model:       res.Forecast.Model,
		Horizon:     res.Forecast.Horizon,
		Interval:    res.Forecast.Interval,
		Summary:     res.Summary,
		Monthly:     res.Monthly,
		Points:      res.Forecast.Points,
		Components:  res.Forecast.Components,
		Yearly:      res.Forecast.Yearly,
		Table:       res.Table,
		ForecastCSV: string(res.CSV),
		TopMonths:   res.Top,
		PriceStock:  res.PriceStock,
	}
}
