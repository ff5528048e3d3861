package render

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
)

// Theme carries every style decision a chart needs. Renderers never read global state.
type Theme struct {
	Background color.Color
	Foreground color.Color
	Grid       color.Color

	Observed color.Color
	Forecast color.Color
	Band     color.Color

	Price color.Color
	Stock color.Color

	Width  vg.Length
	Height vg.Length
}

// DefaultTheme is the dark dashboard palette.
func DefaultTheme() Theme {
	return Theme{
		Background: mustHex("#0e1117"),
		Foreground: color.White,
		Grid:       color.RGBA{R: 0x44, G: 0x48, B: 0x52, A: 0xff},
		Observed:   color.White,
		Forecast:   mustHex("#21c8f6"),
		Band:       color.NRGBA{R: 0x21, G: 0xc8, B: 0xf6, A: 0x40},
		Price:      mustHex("#00ff00"),
		Stock:      mustHex("#00ffff"),
		Width:      10 * vg.Inch,
		Height:     6 * vg.Inch,
	}
}

// ParseHex reads "#rrggbb" or "#rrggbbaa".
func ParseHex(s string) (color.NRGBA, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) != 6 && len(h) != 8 {
		return color.NRGBA{}, fmt.Errorf("invalid hex color %q", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid hex color %q: %w", s, err)
	}
	if len(h) == 6 {
		v = v<<8 | 0xff
	}
	return color.NRGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}

func mustHex(s string) color.NRGBA {
	c, err := ParseHex(s)
	if err != nil {
		panic(err)
	}
	return c
}

func (th Theme) newPlot(title string) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.Title.TextStyle.Font.Size = vg.Points(14)
	p.Title.TextStyle.Color = th.Foreground
	p.BackgroundColor = th.Background

	for _, ax := range []*plot.Axis{&p.X, &p.Y} {
		ax.Color = th.Foreground
		ax.Label.TextStyle.Color = th.Foreground
		ax.Tick.Color = th.Foreground
		ax.Tick.Label.Color = th.Foreground
	}
	p.Legend.TextStyle.Color = th.Foreground
	p.Legend.Top = true
	return p
}
