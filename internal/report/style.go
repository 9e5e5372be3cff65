package report

import (
	"image/color"

	"github.com/go-playground/validator/v10"
	"github.com/rxtech-lab/argo-report/pkg/errors"
	"gonum.org/v1/plot/vg"
)

// ChartStyle configures a single chart rendering. It is passed to every Render call
// instead of living in package state.
type ChartStyle struct {
	Width  vg.Length `validate:"gt=0"`
	Height vg.Length `validate:"gt=0"`
	// PriceRatio is the share of the height given to the price panel.
	PriceRatio float64 `validate:"gt=0,lt=1"`
	// DateFormat is the time layout of the x axis ticks.
	DateFormat string    `validate:"required"`
	LineWidth  vg.Length `validate:"gt=0"`
	// Alpha is applied to every series line.
	Alpha           uint8
	PriceColor      color.Color
	MAColors        []color.Color `validate:"min=1"`
	VolatilityColor color.Color
	GridColor       color.Color
}

// DefaultChartStyle returns a 15x10 inch chart with a 2:1 price to volatility split.
func DefaultChartStyle() ChartStyle {
	return ChartStyle{
		Width:      15 * vg.Inch,
		Height:     10 * vg.Inch,
		PriceRatio: 2.0 / 3.0,
		DateFormat: "2006-01",
		LineWidth:  vg.Points(1.5),
		Alpha:      178,
		PriceColor: color.RGBA{R: 0x1f, G: 0x77, B: 0xb4, A: 0xff},
		MAColors: []color.Color{
			color.RGBA{R: 0xff, G: 0x7f, B: 0x0e, A: 0xff},
			color.RGBA{R: 0x2c, G: 0xa0, B: 0x2c, A: 0xff},
			color.RGBA{R: 0x94, G: 0x67, B: 0xbd, A: 0xff},
		},
		VolatilityColor: color.RGBA{R: 0xff, A: 0xff},
		GridColor:       color.Gray{Y: 0xdd},
	}
}

// Validate checks the style dimensions.
func (s ChartStyle) Validate() error {
	if err := validator.New().Struct(s); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid chart style", err)
	}

	return nil
}

// maColor returns the colour for the i-th moving average, cycling through MAColors.
func (s ChartStyle) maColor(i int) color.Color {
	return s.MAColors[i%len(s.MAColors)]
}

// withAlpha returns c with its alpha channel replaced.
func withAlpha(c color.Color, alpha uint8) color.Color {
	if c == nil {
		return color.NRGBA{A: alpha}
	}

	r, g, b, _ := c.RGBA()

	return color.NRGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: alpha}
}
