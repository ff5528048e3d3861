package handlers

import (
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"sales-forecast/internal/analysis"
	"sales-forecast/internal/api/models"
	"sales-forecast/internal/data"

	"github.com/gin-gonic/gin"
)

// SampleHandler serves the sales CSVs shipped in the samples directory
type SampleHandler struct {
	samplesDir string
}

// NewSampleHandler creates a new sample handler
func NewSampleHandler(dir string) *SampleHandler {
	if abs, err := filepath.Abs(dir); err == nil {
		dir = abs
	}
	log.Printf("SampleHandler: Using samples directory: %s", dir)
	return &SampleHandler{samplesDir: dir}
}

// ListSamples handles GET /api/v1/samples
func (h *SampleHandler) ListSamples(c *gin.Context) {
	samples := []models.SampleInfo{}

	entries, err := os.ReadDir(h.samplesDir)
	if err != nil {
		log.Printf("SampleHandler: Failed to read samples directory %s: %v", h.samplesDir, err)
		c.JSON(http.StatusOK, gin.H{"samples": samples})
		return
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".csv") {
			continue
		}
		info, err := h.loadSampleInfo(entry.Name())
		if err != nil {
			log.Printf("SampleHandler: Skipping %s: %v", entry.Name(), err)
			continue
		}
		samples = append(samples, *info)
	}

	log.Printf("SampleHandler: Returning %d samples", len(samples))
	c.JSON(http.StatusOK, gin.H{"samples": samples})
}

// DownloadSample handles GET /api/v1/samples/:id
func (h *SampleHandler) DownloadSample(c *gin.Context) {
	path, ok := h.samplePath(c.Param("id"))
	if !ok {
		respondError(c, http.StatusNotFound, "NOT_FOUND", "sample not found", nil)
		return
	}
	c.FileAttachment(path, filepath.Base(path))
}

// samplePath resolves an ID to a CSV inside the samples directory.
func (h *SampleHandler) samplePath(id string) (string, bool) {
	if id == "" || id != filepath.Base(id) || strings.HasPrefix(id, ".") {
		return "", false
	}
	path := filepath.Join(h.samplesDir, id+".csv")
	if info, err := os.Stat(path); err != nil || info.IsDir() {
		return "", false
	}
	return path, true
}

func (h *SampleHandler) loadSampleInfo(filename string) (*models.SampleInfo, error) {
	records, err := data.LoadRecordsFile(filepath.Join(h.samplesDir, filename))
	if err != nil {
		return nil, err
	}
	series, err := analysis.AggregateMonthly(records)
	if err != nil {
		return nil, err
	}
	s := analysis.Summarize(records, series)
	return &models.SampleInfo{
		ID:      strings.TrimSuffix(filename, ".csv"),
		File:    filename,
		Records: s.Records,
		Months:  s.Months,
		Window: models.TimeWindow{
			Start: s.Start.Truncate(24 * time.Hour),
			End:   s.End.Truncate(24 * time.Hour),
		},
	}, nil
}
