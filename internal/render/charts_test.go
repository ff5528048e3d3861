package render

import (
	"bytes"
	"image/color"
	"testing"
	"time"

	"sales-forecast/internal/analysis"
	"sales-forecast/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/plot/vg"
)

var pngMagic = []byte("\x89PNG\r\n\x1a\n")

func smallTheme() Theme {
	th := DefaultTheme()
	th.Width = 4 * vg.Inch
	th.Height = 3 * vg.Inch
	return th
}

func sampleForecast(withYearly bool) *model.ForecastResult {
	start := time.Date(2022, time.January, 1, 0, 0, 0, 0, time.UTC)
	res := &model.ForecastResult{HistoryLen: 6, Horizon: 3}
	for i := 0; i < 9; i++ {
		d := model.AddMonths(start, i)
		v := 100 + float64(i)*3
		p := model.ForecastPoint{Date: d, YHat: v, YHatLower: v - 5, YHatUpper: v + 5, Forecast: i >= 6}
		if i < 6 {
			obs := v + 1
			p.Observed = &obs
		}
		res.Points = append(res.Points, p)
		res.Components = append(res.Components, model.ComponentPoint{Date: d, Trend: v})
	}
	if withYearly {
		for m := time.January; m <= time.December; m++ {
			res.Yearly = append(res.Yearly, model.SeasonalEffect{Month: m, Effect: float64(m) - 6.5})
		}
	}
	return res
}

func TestForecastChart(t *testing.T) {
	b, err := ForecastChart(sampleForecast(false), smallTheme())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(b, pngMagic))

	_, err = ForecastChart(&model.ForecastResult{}, smallTheme())
	assert.ErrorIs(t, err, ErrNoData)
}

func TestComponentsChart(t *testing.T) {
	for _, yearly := range []bool{false, true} {
		b, err := ComponentsChart(sampleForecast(yearly), smallTheme())
		require.NoError(t, err)
		assert.True(t, bytes.HasPrefix(b, pngMagic))
	}
	_, err := ComponentsChart(nil, smallTheme())
	assert.ErrorIs(t, err, ErrNoData)
}

func TestPriceStockChart(t *testing.T) {
	f := func(v float64) *float64 { return &v }
	start := time.Date(2023, time.January, 1, 0, 0, 0, 0, time.UTC)
	pts := []analysis.PriceStockPoint{
		{Date: start, Price: f(10), Stock: f(100)},
		{Date: start.AddDate(0, 0, 7), Price: nil, Stock: f(90)},
		{Date: start.AddDate(0, 0, 14), Price: f(11), Stock: nil},
		{Date: start.AddDate(0, 0, 21), Price: f(12), Stock: f(70)},
	}
	b, err := PriceStockChart(pts, smallTheme())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(b, pngMagic))

	_, err = PriceStockChart(nil, smallTheme())
	assert.ErrorIs(t, err, ErrNoData)

	segs := segments(pts, func(p analysis.PriceStockPoint) *float64 { return p.Price })
	require.Len(t, segs, 2)
	assert.Len(t, segs[0], 1)
	assert.Len(t, segs[1], 2)
}

func TestParseHex(t *testing.T) {
	c, err := ParseHex("#0e1117")
	require.NoError(t, err)
	assert.Equal(t, color.NRGBA{R: 0x0e, G: 0x11, B: 0x17, A: 0xff}, c)

	c, err = ParseHex("21c8f640")
	require.NoError(t, err)
	assert.Equal(t, color.NRGBA{R: 0x21, G: 0xc8, B: 0xf6, A: 0x40}, c)

	for _, bad := range []string{"", "#fff", "#zzzzzz"} {
		_, err := ParseHex(bad)
		assert.Error(t, err, bad)
	}
}
