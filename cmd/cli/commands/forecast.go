package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"sales-forecast/internal/export"
)

func forecastCmd() *cobra.Command {
	var (
		horizon   int
		modelName string
		outPath   string
		xlsxPath  string
	)
	cmd := &cobra.Command{
		Use:   "forecast",
		Short: "Forecast monthly sales and write forecast.csv",
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := run(horizon, modelName)
			if err != nil {
				return err
			}

			if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
				return err
			}
			if err := export.WriteCSVFile(outPath, res.Table); err != nil {
				return err
			}
			fmt.Printf("Wrote %d rows to %s\n", len(res.Table), outPath)

			if xlsxPath != "" {
				b, err := export.EncodeXLSX(res.Table, res.Top)
				if err != nil {
					return err
				}
				if err := os.WriteFile(xlsxPath, b, 0o644); err != nil {
					return err
				}
				fmt.Printf("Wrote workbook to %s\n", xlsxPath)
			}

			fmt.Printf("model=%s months=%d horizon=%d total sales=%s\n",
				res.Forecast.Model, len(res.Monthly), res.Forecast.Horizon, res.Summary.TotalSales.StringFixed(2))
			fmt.Printf("%-12s %-14s %-14s %-14s\n", "ds", "yhat", "yhat_lower", "yhat_upper")
			for _, r := range res.Table {
				fmt.Printf("%-12s %-14.2f %-14.2f %-14.2f\n", r.Date.Format("2006-01-02"), r.YHat, r.YHatLower, r.YHatUpper)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&horizon, "horizon", 0, "months to forecast (default from config)")
	cmd.Flags().StringVar(&modelName, "model", "", "forecast model: additive or sarima (default from config)")
	cmd.Flags().StringVar(&outPath, "out", "results/forecast.csv", "output CSV path")
	cmd.Flags().StringVar(&xlsxPath, "xlsx", "", "optional XLSX workbook path")
	return cmd
}
