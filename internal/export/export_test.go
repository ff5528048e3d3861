package export

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"sales-forecast/internal/analysis"
	"sales-forecast/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func sampleResult(history, horizon int) *model.ForecastResult {
	start := time.Date(2023, time.January, 1, 0, 0, 0, 0, time.UTC)
	res := &model.ForecastResult{HistoryLen: history, Horizon: horizon}
	for i := 0; i < history+horizon; i++ {
		v := float64(100 + i)
		res.Points = append(res.Points, model.ForecastPoint{
			Date:      model.AddMonths(start, i),
			YHat:      v,
			YHatLower: v - 1.5,
			YHatUpper: v + 1.5,
			Forecast:  i >= history,
		})
	}
	return res
}

func TestTail(t *testing.T) {
	res := sampleResult(12, 3)

	rows := Tail(res, 3)
	require.Len(t, rows, 3)
	for i, r := range rows {
		assert.Equal(t, res.Future()[i].Date, r.Date)
	}
	assert.Equal(t, time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC), rows[2].Date)

	assert.Len(t, Tail(res, 100), 15)
	assert.Empty(t, Tail(res, 0))
	assert.Empty(t, Tail(res, -2))
	assert.Empty(t, Tail(nil, 3))
}

func TestEncodeCSV(t *testing.T) {
	rows := Tail(sampleResult(2, 2), 2)
	b, err := EncodeCSV(rows)
	require.NoError(t, err)
	want := "ds,yhat,yhat_lower,yhat_upper\n" +
		"2023-03-01,102.000000,100.500000,103.500000\n" +
		"2023-04-01,103.000000,101.500000,104.500000\n"
	assert.Equal(t, want, string(b))

	b, err = EncodeCSV(nil)
	require.NoError(t, err)
	assert.Equal(t, "ds,yhat,yhat_lower,yhat_upper\n", string(b))
}

func TestWriteCSVFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "forecast.csv")
	rows := Tail(sampleResult(3, 1), 1)
	require.NoError(t, WriteCSVFile(path, rows))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	want, err := EncodeCSV(rows)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestEncodeXLSX(t *testing.T) {
	rows := Tail(sampleResult(4, 2), 2)
	top := []analysis.RankedMonth{{
		MonthlyTotal: model.MonthlyTotal{
			Month:      time.Date(2023, time.May, 1, 0, 0, 0, 0, time.UTC),
			TotalSales: decimal.RequireFromString("1234.5"),
			Records:    7,
		},
		Rank:  1,
		Label: "May 2023",
	}}

	b, err := EncodeXLSX(rows, top)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(b))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SheetForecast, SheetTopMonths}, f.GetSheetList())

	fc, err := f.GetRows(SheetForecast)
	require.NoError(t, err)
	require.Len(t, fc, 3)
	assert.Equal(t, csvHeader, fc[0])
	assert.Equal(t, "2023-05-01", fc[1][0])
	assert.Equal(t, "104", fc[1][1])

	tm, err := f.GetRows(SheetTopMonths)
	require.NoError(t, err)
	require.Len(t, tm, 2)
	assert.Equal(t, []string{"1", "May 2023", "1234.5", "7"}, tm[1])
}
