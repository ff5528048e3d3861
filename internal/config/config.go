package config

import (
	"errors"
	"fmt"
	"image/color"
	"os"
	"strconv"
	"strings"

	"sales-forecast/internal/forecast"
	"sales-forecast/internal/render"

	"gonum.org/v1/plot/vg"
	"gopkg.in/yaml.v3"
)

// Config is the on-disk configuration shape (YAML).
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Forecast ForecastConfig `yaml:"forecast"`
	Theme    ThemeConfig    `yaml:"theme"`
}

type ServerConfig struct {
	Port        string   `yaml:"port"`
	Env         string   `yaml:"env"`
	StaticDir   string   `yaml:"static_dir"`
	SamplesDir  string   `yaml:"samples_dir"`
	CORSOrigins []string `yaml:"cors_origins"`
	MaxUploadMB int64    `yaml:"max_upload_mb"`
}

type ForecastConfig struct {
	DefaultHorizon int     `yaml:"default_horizon"`
	MinHorizon     int     `yaml:"min_horizon"`
	MaxHorizon     int     `yaml:"max_horizon"`
	TopN           int     `yaml:"top_n"`
	Model          string  `yaml:"model"`
	IntervalWidth  float64 `yaml:"interval_width"`
}

// ThemeConfig holds chart colors as "#rrggbb" or "#rrggbbaa". Blank fields keep the default palette.
type ThemeConfig struct {
	Background string  `yaml:"background"`
	Foreground string  `yaml:"foreground"`
	Grid       string  `yaml:"grid"`
	Observed   string  `yaml:"observed"`
	Forecast   string  `yaml:"forecast"`
	Band       string  `yaml:"band"`
	Price      string  `yaml:"price"`
	Stock      string  `yaml:"stock"`
	WidthIn    float64 `yaml:"width_in"`
	HeightIn   float64 `yaml:"height_in"`
}

func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:        "8080",
			Env:         "development",
			StaticDir:   "./web/dist",
			SamplesDir:  "./examples/sales",
			CORSOrigins: []string{"*"},
			MaxUploadMB: 10,
		},
		Forecast: ForecastConfig{
			DefaultHorizon: 12,
			MinHorizon:     1,
			MaxHorizon:     24,
			TopN:           3,
			Model:          forecast.AdditiveName,
			IntervalWidth:  forecast.DefaultInterval,
		},
		Theme: ThemeConfig{WidthIn: 10, HeightIn: 6},
	}
}

// Load reads path over the defaults, applies environment overrides and validates.
// An empty path uses the defaults alone.
func Load(path string) (*Config, error) {
	c, err := LoadUnchecked(path)
	if err != nil {
		return nil, err
	}
	c.ApplyEnv(os.Getenv)
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadUnchecked reads the YAML without env overrides or validation.
func LoadUnchecked(path string) (*Config, error) {
	c := Default()
	if path == "" {
		return c, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(raw, c); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return c, nil
}

// ApplyEnv overlays API_PORT, API_ENV, STATIC_DIR, SAMPLES_DIR, CORS_ORIGINS
// and FORECAST_MODEL.
func (c *Config) ApplyEnv(getenv func(string) string) {
	if v := getenv("API_PORT"); v != "" {
		c.Server.Port = v
	}
	if v := getenv("API_ENV"); v != "" {
		c.Server.Env = v
	}
	if v := getenv("STATIC_DIR"); v != "" {
		c.Server.StaticDir = v
	}
	if v := getenv("SAMPLES_DIR"); v != "" {
		c.Server.SamplesDir = v
	}
	if v := getenv("CORS_ORIGINS"); v != "" {
		var origins []string
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
		c.Server.CORSOrigins = origins
	}
	if v := getenv("FORECAST_MODEL"); v != "" {
		c.Forecast.Model = v
	}
}

func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if _, err := strconv.Atoi(c.Server.Port); err != nil {
		return fmt.Errorf("server.port %q is not a number", c.Server.Port)
	}
	if c.Server.MaxUploadMB <= 0 {
		return errors.New("server.max_upload_mb must be positive")
	}

	f := c.Forecast
	if f.MinHorizon < 1 || f.MaxHorizon > 24 || f.MinHorizon > f.MaxHorizon {
		return fmt.Errorf("forecast horizon range %d..%d must lie within 1..24", f.MinHorizon, f.MaxHorizon)
	}
	if f.DefaultHorizon < f.MinHorizon || f.DefaultHorizon > f.MaxHorizon {
		return fmt.Errorf("forecast.default_horizon %d outside %d..%d", f.DefaultHorizon, f.MinHorizon, f.MaxHorizon)
	}
	if f.TopN < 1 {
		return errors.New("forecast.top_n must be at least 1")
	}
	if f.IntervalWidth <= 0 || f.IntervalWidth >= 1 {
		return fmt.Errorf("forecast.interval_width %v must be in (0, 1)", f.IntervalWidth)
	}
	if _, err := forecast.New(f.Model, forecast.Options{}); err != nil {
		return fmt.Errorf("forecast.model: %w", err)
	}

	if _, err := c.Theme.Render(); err != nil {
		return fmt.Errorf("theme: %w", err)
	}
	return nil
}

// IsProduction reports whether gin should run in release mode.
func (s ServerConfig) IsProduction() bool {
	return s.Env == "production"
}

// MaxUploadBytes is the multipart memory limit for uploads.
func (s ServerConfig) MaxUploadBytes() int64 {
	return s.MaxUploadMB << 20
}

// Render converts the theme section into a render.Theme over the default palette.
func (t ThemeConfig) Render() (render.Theme, error) {
	th := render.DefaultTheme()
	for _, f := range []struct {
		hex string
		dst *color.Color
	}{
		{t.Background, &th.Background},
		{t.Foreground, &th.Foreground},
		{t.Grid, &th.Grid},
		{t.Observed, &th.Observed},
		{t.Forecast, &th.Forecast},
		{t.Band, &th.Band},
		{t.Price, &th.Price},
		{t.Stock, &th.Stock},
	} {
		if f.hex == "" {
			continue
		}
		c, err := render.ParseHex(f.hex)
		if err != nil {
			return render.Theme{}, err
		}
		*f.dst = c
	}
	if t.WidthIn > 0 {
		th.Width = vg.Length(t.WidthIn) * vg.Inch
	}
	if t.HeightIn > 0 {
		th.Height = vg.Length(t.HeightIn) * vg.Inch
	}
	return th, nil
}

// MergeForecast overlays non-zero fields from override onto base.
// Used to apply per-request settings over the configured defaults.
func MergeForecast(base, override ForecastConfig) ForecastConfig {
	out := base
	if override.DefaultHorizon != 0 {
		out.DefaultHorizon = override.DefaultHorizon
	}
	if override.TopN != 0 {
		out.TopN = override.TopN
	}
	if override.Model != "" {
		out.Model = override.Model
	}
	if override.IntervalWidth != 0 {
		out.IntervalWidth = override.IntervalWidth
	}
	return out
}
