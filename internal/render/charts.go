package render

import (
	"bytes"
	"errors"
	"image/color"
	"time"

	"sales-forecast/internal/analysis"
	"sales-forecast/internal/model"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

var ErrNoData = errors.New("nothing to plot")

const timeFormat = "2006-01"

func unix(t time.Time) float64 { return float64(t.Unix()) }

// ForecastChart draws observed months as dots, the fitted and predicted
// line, and the uncertainty band behind them.
func ForecastChart(res *model.ForecastResult, th Theme) ([]byte, error) {
	if res == nil || len(res.Points) == 0 {
		return nil, ErrNoData
	}
	p := th.newPlot("Sales forecast")
	p.X.Tick.Marker = plot.TimeTicks{Format: timeFormat}
	p.Y.Label.Text = "Sales"
	p.Add(gridFor(th))

	n := len(res.Points)
	band := make(plotter.XYs, 0, 2*n)
	line := make(plotter.XYs, n)
	var obs plotter.XYs
	for i, pt := range res.Points {
		x := unix(pt.Date)
		line[i] = plotter.XY{X: x, Y: pt.YHat}
		band = append(band, plotter.XY{X: x, Y: pt.YHatUpper})
		if pt.Observed != nil {
			obs = append(obs, plotter.XY{X: x, Y: *pt.Observed})
		}
	}
	for i := n - 1; i >= 0; i-- {
		band = append(band, plotter.XY{X: unix(res.Points[i].Date), Y: res.Points[i].YHatLower})
	}

	poly, err := plotter.NewPolygon(band)
	if err != nil {
		return nil, err
	}
	poly.Color = th.Band
	poly.LineStyle.Width = 0

	l, err := plotter.NewLine(line)
	if err != nil {
		return nil, err
	}
	l.Color = th.Forecast
	l.Width = vg.Points(2)

	p.Add(poly, l)
	p.Legend.Add("Forecast", l)
	p.Legend.Add("Interval", poly)

	if len(obs) > 0 {
		s, err := plotter.NewScatter(obs)
		if err != nil {
			return nil, err
		}
		s.GlyphStyle.Color = th.Observed
		s.GlyphStyle.Radius = vg.Points(2.5)
		s.GlyphStyle.Shape = draw.CircleGlyph{}
		p.Add(s)
		p.Legend.Add("Observed", s)
	}
	return writePNG(p, th)
}

// ComponentsChart draws the trend and, when the model fitted one, the yearly
// seasonal effect per calendar month.
func ComponentsChart(res *model.ForecastResult, th Theme) ([]byte, error) {
	if res == nil || len(res.Components) == 0 {
		return nil, ErrNoData
	}
	trend := th.newPlot("Trend")
	trend.X.Tick.Marker = plot.TimeTicks{Format: timeFormat}
	trend.Add(gridFor(th))

	xys := make(plotter.XYs, len(res.Components))
	for i, c := range res.Components {
		xys[i] = plotter.XY{X: unix(c.Date), Y: c.Trend}
	}
	l, err := plotter.NewLine(xys)
	if err != nil {
		return nil, err
	}
	l.Color = th.Forecast
	l.Width = vg.Points(2)
	trend.Add(l)

	if len(res.Yearly) == 0 {
		return writePNG(trend, th)
	}

	yearly := th.newPlot("Yearly seasonality")
	yearly.Add(gridFor(th))
	vals := make(plotter.Values, len(res.Yearly))
	names := make([]string, len(res.Yearly))
	for i, e := range res.Yearly {
		vals[i] = e.Effect
		names[i] = e.Month.String()[:3]
	}
	bars, err := plotter.NewBarChart(vals, vg.Points(14))
	if err != nil {
		return nil, err
	}
	bars.Color = th.Forecast
	bars.LineStyle.Width = 0
	yearly.Add(bars)
	yearly.NominalX(names...)

	return writePanels(th, trend, yearly)
}

// PriceStockChart draws price and stock on two stacked panels sharing the
// time range. Blank cells break the line.
func PriceStockChart(points []analysis.PriceStockPoint, th Theme) ([]byte, error) {
	if len(points) == 0 {
		return nil, ErrNoData
	}
	minX, maxX := unix(points[0].Date), unix(points[len(points)-1].Date)

	price := th.newPlot("Price")
	stock := th.newPlot("Stock")
	price.Y.Label.Text = "Price"
	stock.Y.Label.Text = "Stock"

	for _, panel := range []struct {
		p   *plot.Plot
		get func(analysis.PriceStockPoint) *float64
		col color.Color
	}{
		{price, func(pt analysis.PriceStockPoint) *float64 { return pt.Price }, th.Price},
		{stock, func(pt analysis.PriceStockPoint) *float64 { return pt.Stock }, th.Stock},
	} {
		panel.p.X.Tick.Marker = plot.TimeTicks{Format: timeFormat}
		panel.p.X.Min, panel.p.X.Max = minX, maxX
		panel.p.Y.Label.TextStyle.Color = panel.col
		panel.p.Add(gridFor(th))

		for _, seg := range segments(points, panel.get) {
			l, err := plotter.NewLine(seg)
			if err != nil {
				return nil, err
			}
			l.Color = panel.col
			l.Width = vg.Points(1.5)
			panel.p.Add(l)
		}
	}
	return writePanels(th, price, stock)
}

// segments splits the series at nil values.
func segments(points []analysis.PriceStockPoint, get func(analysis.PriceStockPoint) *float64) []plotter.XYs {
	var out []plotter.XYs
	var cur plotter.XYs
	for _, pt := range points {
		v := get(pt)
		if v == nil {
			if len(cur) > 0 {
				out = append(out, cur)
				cur = nil
			}
			continue
		}
		cur = append(cur, plotter.XY{X: unix(pt.Date), Y: *v})
	}
	if len(cur) > 0 {
		out = append(out, cur)
	}
	return out
}

func gridFor(th Theme) *plotter.Grid {
	g := plotter.NewGrid()
	g.Vertical.Color = th.Grid
	g.Horizontal.Color = th.Grid
	return g
}

func writePNG(p *plot.Plot, th Theme) ([]byte, error) {
	wt, err := p.WriterTo(th.Width, th.Height, "png")
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if _, err := wt.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// writePanels stacks plots vertically with aligned axes.
func writePanels(th Theme, plots ...*plot.Plot) ([]byte, error) {
	img := vgimg.NewWith(vgimg.UseWH(th.Width, th.Height), vgimg.UseBackgroundColor(th.Background))
	dc := draw.New(img)

	rows := make([][]*plot.Plot, len(plots))
	for i, p := range plots {
		rows[i] = []*plot.Plot{p}
	}
	tiles := draw.Tiles{Rows: len(plots), Cols: 1, PadY: vg.Millimeter * 4}
	canvases := plot.Align(rows, tiles, dc)
	for i, p := range plots {
		p.Draw(canvases[i][0])
	}

	var buf bytes.Buffer
	if _, err := (vgimg.PngCanvas{Canvas: img}).WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
