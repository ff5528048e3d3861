package commands

import (
	"errors"
	"os"

	"github.com/spf13/cobra"

	"sales-forecast/internal/config"
	"sales-forecast/internal/data"
	"sales-forecast/internal/model"
	"sales-forecast/internal/pipeline"
)

var (
	cfgPath  string
	dataPath string
	cfg      *config.Config
)

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "sales-forecast",
		Short:        "Monthly sales aggregation, forecasting and ranking",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cfgPath == "" {
				cfgPath = os.Getenv("CONFIG_PATH")
			}
			c, err := config.Load(cfgPath)
			if err != nil {
				return err
			}
			cfg = c
			return nil
		},
	}

	root.PersistentFlags().StringVar(&cfgPath, "config", "", "YAML config (default $CONFIG_PATH, else built-in defaults)")
	root.PersistentFlags().StringVar(&dataPath, "data", "", "sales CSV with data, venda, estoque, preco columns")

	root.AddCommand(forecastCmd(), topCmd(), chartsCmd())
	return root
}

func loadRecords() ([]model.RawRecord, error) {
	if dataPath == "" {
		return nil, errors.New("--data is required")
	}
	return data.LoadRecordsFile(dataPath)
}

func newEngine() *pipeline.Engine {
	return &pipeline.Engine{
		MinHorizon: cfg.Forecast.MinHorizon,
		MaxHorizon: cfg.Forecast.MaxHorizon,
	}
}

// runOptions fills unset flags from the config.
func runOptions(horizon int, modelName string) pipeline.Options {
	fc := config.MergeForecast(cfg.Forecast, config.ForecastConfig{
		DefaultHorizon: horizon,
		Model:          modelName,
	})
	return pipeline.Options{
		Horizon:  fc.DefaultHorizon,
		TopN:     fc.TopN,
		Model:    fc.Model,
		Interval: fc.IntervalWidth,
	}
}

func run(horizon int, modelName string) (*pipeline.Result, error) {
	records, err := loadRecords()
	if err != nil {
		return nil, err
	}
	return newEngine().Run(records, runOptions(horizon, modelName))
}
