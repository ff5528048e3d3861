package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"sales-forecast/internal/render"
)

func chartsCmd() *cobra.Command {
	var (
		horizon   int
		modelName string
		outDir    string
	)
	cmd := &cobra.Command{
		Use:   "charts",
		Short: "Render forecast, components and price/stock charts as PNG",
		RunE: func(cmd *cobra.Command, args []string) error {
			th, err := cfg.Theme.Render()
			if err != nil {
				return err
			}
			res, err := run(horizon, modelName)
			if err != nil {
				return err
			}
			if err := os.MkdirAll(outDir, 0o755); err != nil {
				return err
			}

			charts := []struct {
				name   string
				render func() ([]byte, error)
			}{
				{"forecast", func() ([]byte, error) { return render.ForecastChart(res.Forecast, th) }},
				{"components", func() ([]byte, error) { return render.ComponentsChart(res.Forecast, th) }},
				{"price-stock", func() ([]byte, error) { return render.PriceStockChart(res.PriceStock, th) }},
			}
			for _, ch := range charts {
				b, err := ch.render()
				if err != nil {
					return fmt.Errorf("%s chart: %w", ch.name, err)
				}
				path := filepath.Join(outDir, ch.name+".png")
				if err := os.WriteFile(path, b, 0o644); err != nil {
					return err
				}
				fmt.Printf("Wrote %s\n", path)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&horizon, "horizon", 0, "months to forecast (default from config)")
	cmd.Flags().StringVar(&modelName, "model", "", "forecast model (default from config)")
	cmd.Flags().StringVar(&outDir, "dir", "results/charts", "output directory")
	return cmd
}
