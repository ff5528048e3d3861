package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"sales-forecast/internal/analysis"
)

func topCmd() *cobra.Command {
	var n int
	cmd := &cobra.Command{
		Use:   "top",
		Short: "Rank the best selling months",
		RunE: func(cmd *cobra.Command, args []string) error {
			records, err := loadRecords()
			if err != nil {
				return err
			}
			series, err := analysis.AggregateMonthly(records)
			if err != nil {
				return err
			}
			if n == 0 {
				n = cfg.Forecast.TopN
			}

			fmt.Printf("%-4s %-16s %-14s %-8s\n", "rank", "month", "sales", "records")
			for _, m := range analysis.TopMonths(series, n) {
				fmt.Printf("%-4d %-16s %-14s %-8d\n", m.Rank, m.Label, m.TotalSales.StringFixed(2), m.Records)
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&n, "count", "n", 0, "number of months (default from config)")
	return cmd
}
