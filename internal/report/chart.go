package report

import (
	"fmt"
	"image/color"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rxtech-lab/argo-report/internal/logger"
	"github.com/rxtech-lab/argo-report/internal/types"
	"github.com/rxtech-lab/argo-report/pkg/errors"
	"go.uber.org/zap"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// ChartRequest is the data drawn on one chart.
type ChartRequest struct {
	Series     types.PriceSeries
	Indicators types.IndicatorSet
	// VolatilityWindow labels the volatility panel title.
	VolatilityWindow int
}

// ChartRenderer draws a price panel and a volatility panel into a PNG image.
type ChartRenderer struct {
	logger *logger.Logger
}

// NewChartRenderer creates a ChartRenderer.
func NewChartRenderer(logger *logger.Logger) *ChartRenderer {
	return &ChartRenderer{
		logger: logger,
	}
}

// ChartFileName returns the image file name for ticker.
func ChartFileName(ticker string) string {
	return fmt.Sprintf("%s_analysis.png", ticker)
}

// RenderFile renders the chart for req into dir/<TICKER>_analysis.png and returns the path.
func (r *ChartRenderer) RenderFile(req ChartRequest, style ChartStyle, dir string) (string, error) {
	path := filepath.Join(dir, ChartFileName(req.Series.Symbol))

	file, err := os.Create(path)
	if err != nil {
		return "", errors.Wrapf(errors.ErrCodeChartRenderFailed, err, "failed to create chart file %s", path)
	}
	defer file.Close()

	if err := r.Render(req, style, file); err != nil {
		return "", err
	}

	if err := file.Close(); err != nil {
		return "", errors.Wrapf(errors.ErrCodeChartRenderFailed, err, "failed to close chart file %s", path)
	}

	r.logger.Debug("Chart written", zap.String("symbol", req.Series.Symbol), zap.String("path", path))

	return path, nil
}

// Render draws the chart for req as PNG into w.
func (r *ChartRenderer) Render(req ChartRequest, style ChartStyle, w io.Writer) error {
	if err := style.Validate(); err != nil {
		return err
	}

	pricePlot, err := r.pricePlot(req, style)
	if err != nil {
		return err
	}

	volatilityPlot, err := r.volatilityPlot(req, style)
	if err != nil {
		return err
	}

	img := vgimg.New(style.Width, style.Height)
	dc := draw.New(img)

	volatilityHeight := style.Height * vg.Length(1-style.PriceRatio)
	priceHeight := style.Height - volatilityHeight

	pricePlot.Draw(draw.Crop(dc, 0, 0, volatilityHeight, 0))
	volatilityPlot.Draw(draw.Crop(dc, 0, 0, 0, -priceHeight))

	png := vgimg.PngCanvas{Canvas: img}
	if _, err := png.WriteTo(w); err != nil {
		return errors.Wrap(errors.ErrCodeChartRenderFailed, "failed to encode chart", err)
	}

	return nil
}

func (r *ChartRenderer) pricePlot(req ChartRequest, style ChartStyle) (*plot.Plot, error) {
	ticker := req.Series.Symbol
	times := req.Series.Times()

	p := newPanel(style, times)
	p.Title.Text = fmt.Sprintf("%s Stock Price and Moving Averages", ticker)
	p.Y.Label.Text = "Price (USD)"

	if err := addSeries(p, "Close Price", times, req.Series.Closes(), withAlpha(style.PriceColor, style.Alpha), style.LineWidth); err != nil {
		return nil, err
	}

	maIndex := 0

	for _, name := range req.Indicators.Names() {
		window, ok := maWindow(name)
		if !ok {
			continue
		}

		values, _ := req.Indicators.Get(name)
		label := fmt.Sprintf("%d-day MA", window)

		if err := addSeries(p, label, times, values, withAlpha(style.maColor(maIndex), style.Alpha), style.LineWidth); err != nil {
			return nil, err
		}

		maIndex++
	}

	return p, nil
}

func (r *ChartRenderer) volatilityPlot(req ChartRequest, style ChartStyle) (*plot.Plot, error) {
	times := req.Series.Times()

	p := newPanel(style, times)
	p.Title.Text = fmt.Sprintf("%s Rolling Volatility (%d-day)", req.Series.Symbol, req.VolatilityWindow)
	p.Y.Label.Text = "Volatility"

	values, ok := req.Indicators.Get(string(types.IndicatorTypeVolatility))
	if !ok {
		r.logger.Warn("No volatility values to plot", zap.String("symbol", req.Series.Symbol))

		values = make([]float64, len(times))
		for i := range values {
			values[i] = math.NaN()
		}
	}

	if err := addSeries(p, "Volatility", times, values, withAlpha(style.VolatilityColor, style.Alpha), style.LineWidth); err != nil {
		return nil, err
	}

	return p, nil
}

// newPanel creates a plot with a date axis spanning times, a grid and a top-left legend.
func newPanel(style ChartStyle, times []time.Time) *plot.Plot {
	p := plot.New()
	p.X.Label.Text = "Date"
	p.X.Tick.Marker = plot.TimeTicks{Format: style.DateFormat}
	p.Legend.Top = true
	p.Legend.Left = true

	if len(times) > 0 {
		p.X.Min = float64(times[0].Unix())
		p.X.Max = float64(times[len(times)-1].Unix())
	}

	grid := plotter.NewGrid()
	grid.Vertical.Color = style.GridColor
	grid.Horizontal.Color = style.GridColor
	p.Add(grid)

	return p
}

// addSeries plots values against times. Every run of defined values becomes its own line
// so undefined entries show as gaps. The legend entry is added even when nothing is defined.
func addSeries(p *plot.Plot, label string, times []time.Time, values []float64, c color.Color, width vg.Length) error {
	var legend *plotter.Line

	for _, segment := range segments(times, values) {
		line, err := plotter.NewLine(segment)
		if err != nil {
			return errors.Wrapf(errors.ErrCodeChartRenderFailed, err, "failed to plot %s", label)
		}

		styleLine(line, c, width)
		p.Add(line)

		if legend == nil {
			legend = line
		}
	}

	if legend == nil {
		line, err := plotter.NewLine(plotter.XYs{})
		if err != nil {
			return errors.Wrapf(errors.ErrCodeChartRenderFailed, err, "failed to plot %s", label)
		}

		styleLine(line, c, width)
		legend = line
	}

	p.Legend.Add(label, legend)

	return nil
}

func styleLine(line *plotter.Line, c color.Color, width vg.Length) {
	line.LineStyle.Color = c
	line.LineStyle.Width = width
}

// segments splits the defined points of values into contiguous runs.
func segments(times []time.Time, values []float64) []plotter.XYs {
	var (
		result  []plotter.XYs
		current plotter.XYs
	)

	for i, v := range values {
		if i >= len(times) {
			break
		}

		if math.IsNaN(v) || math.IsInf(v, 0) {
			if len(current) > 0 {
				result = append(result, current)
				current = nil
			}

			continue
		}

		current = append(current, plotter.XY{X: float64(times[i].Unix()), Y: v})
	}

	if len(current) > 0 {
		result = append(result, current)
	}

	return result
}

// maWindow parses the window of a moving average indicator name such as "MA_20".
func maWindow(name string) (int, bool) {
	prefix := string(types.IndicatorTypeMA) + "_"
	if !strings.HasPrefix(name, prefix) {
		return 0, false
	}

	var window int
	if _, err := fmt.Sscanf(strings.TrimPrefix(name, prefix), "%d", &window); err != nil {
		return 0, false
	}

	return window, true
}
