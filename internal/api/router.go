package api

import (
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"sales-forecast/internal/api/handlers"
	"sales-forecast/internal/api/middleware"
	"sales-forecast/internal/config"

	"github.com/gin-gonic/gin"
)

// NewRouter wires middleware, API routes and, when the build exists, the SPA.
func NewRouter(cfg *config.Config) (*gin.Engine, error) {
	if cfg.Server.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.MaxMultipartMemory = cfg.Server.MaxUploadBytes()

	router.Use(middleware.CORS(cfg.Server.CORSOrigins))
	router.Use(middleware.Logger())
	router.Use(middleware.ErrorHandler())

	forecastHandler, err := handlers.NewForecastHandler(cfg)
	if err != nil {
		return nil, err
	}
	modelHandler := handlers.NewModelHandler(cfg)
	sampleHandler := handlers.NewSampleHandler(cfg.Server.SamplesDir)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api/v1")
	{
		api.GET("/settings", modelHandler.GetSettings)
		api.GET("/models", modelHandler.ListModels)

		api.POST("/forecast", forecastHandler.RunForecast)
		api.POST("/forecast/csv", forecastHandler.DownloadCSV)
		api.POST("/forecast/xlsx", forecastHandler.DownloadXLSX)
		api.POST("/forecast/charts/:chart", forecastHandler.RenderChart)

		api.GET("/samples", sampleHandler.ListSamples)
		api.GET("/samples/:id", sampleHandler.DownloadSample)
	}

	serveStatic(router, cfg.Server.StaticDir)
	return router, nil
}

func serveStatic(router *gin.Engine, staticDir string) {
	notFound := func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": gin.H{"code": "NOT_FOUND", "message": "Not found"}})
	}
	if _, err := os.Stat(staticDir); err != nil {
		log.Printf("Static directory %s not found, skipping static file serving", staticDir)
		router.NoRoute(notFound)
		return
	}

	router.Static("/assets", filepath.Join(staticDir, "assets"))
	router.StaticFile("/favicon.ico", filepath.Join(staticDir, "favicon.ico"))

	// index.html for all non-API routes (SPA routing)
	index := filepath.Join(staticDir, "index.html")
	router.NoRoute(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api") {
			notFound(c)
			return
		}
		c.File(index)
	})
	log.Printf("Serving static files from %s", staticDir)
}
