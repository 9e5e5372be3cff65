package report

import (
	"fmt"
	"io"
	"math"

	"github.com/charmbracelet/lipgloss"
	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-report/internal/stats"
	"github.com/rxtech-lab/argo-report/pkg/errors"
	"github.com/shopspring/decimal"
)

// ConsoleWriter prints per-ticker progress and statistics as plain text lines.
type ConsoleWriter struct {
	out        io.Writer
	titleStyle lipgloss.Style
}

// NewConsoleWriter creates a ConsoleWriter on out. Styling is dropped when out is not a terminal.
func NewConsoleWriter(out io.Writer) *ConsoleWriter {
	renderer := lipgloss.NewRenderer(out)

	return &ConsoleWriter{
		out:        out,
		titleStyle: renderer.NewStyle().Bold(true),
	}
}

// Analyzing announces that ticker is being processed.
func (c *ConsoleWriter) Analyzing(ticker string) error {
	return c.printf("\n%s\n", c.titleStyle.Render(fmt.Sprintf("Analyzing %s...", ticker)))
}

// Summary prints the statistics block for one ticker.
func (c *ConsoleWriter) Summary(summary stats.Summary) error {
	lines := []string{
		"\n" + c.titleStyle.Render(fmt.Sprintf("%s Statistics:", summary.Symbol)),
		"Current Price: " + FormatCurrency(summary.CurrentPrice),
		"52-week High: " + FormatCurrency(summary.PeriodHigh),
		"52-week Low: " + FormatCurrency(summary.PeriodLow),
		"Current Volatility: " + FormatRatioPercent(summary.CurrentVolatility),
		"Total Return: " + FormatPercent(summary.TotalReturn),
	}

	for _, line := range lines {
		if err := c.printf("%s\n", line); err != nil {
			return err
		}
	}

	return nil
}

func (c *ConsoleWriter) printf(format string, args ...any) error {
	if _, err := fmt.Fprintf(c.out, format, args...); err != nil {
		return errors.Wrap(errors.ErrCodeReportWriteFailed, "failed to write report", err)
	}

	return nil
}

// FormatCurrency formats v as dollars with two decimals, e.g. "$123.45".
func FormatCurrency(v float64) string {
	return "$" + fixed2(v)
}

// FormatPercent formats a value already expressed in percent, e.g. 12.345 -> "12.35%".
func FormatPercent(v float64) string {
	return fixed2(v) + "%"
}

// FormatRatioPercent formats a ratio as a percentage, e.g. 0.4567 -> "45.67%".
// A missing value prints as "NaN%".
func FormatRatioPercent(v optional.Option[float64]) string {
	if v.IsNone() {
		return FormatPercent(math.NaN())
	}

	ratio := v.Unwrap()
	if math.IsNaN(ratio) || math.IsInf(ratio, 0) {
		return FormatPercent(ratio)
	}

	return decimal.NewFromFloat(ratio).Mul(decimal.NewFromInt(100)).StringFixed(2) + "%"
}

// fixed2 rounds v half up to two decimals, starting from the shortest decimal that
// round-trips to v, so 2.675 prints as 2.68. Non-finite values are printed as they are.
func fixed2(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Sprintf("%v", v)
	}

	return decimal.NewFromFloat(v).StringFixed(2)
}
