package benchchart

import (
	"fmt"
	"io"
	"strconv"

	"github.com/sirupsen/logrus"
	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// GoChartBackend renders with github.com/wcharczuk/go-chart. It only
// produces PNG and needs at least one data row.
type GoChartBackend struct {
	LineWidth float64

	logger logrus.FieldLogger
}

func NewGoChartBackend() *GoChartBackend {
	return &GoChartBackend{
		LineWidth: 3,
		logger:    logrus.WithField("tag", "GoChartBackend"),
	}
}

func (b *GoChartBackend) Name() string {
	return "go-chart"
}

func (b *GoChartBackend) Render(spec ChartSpec, dataset *Dataset, format ImageFormat, w io.Writer) error {
	if format != FormatPNG {
		return fmt.Errorf("%w: %s backend only writes png, not %q", ErrUnsupportedFormat, b.Name(), string(format))
	}

	xs, ys := dataset.Points()
	if len(xs) == 0 {
		return fmt.Errorf("%s backend cannot draw an empty dataset", b.Name())
	}

	textStyle := chart.Style{FontSize: spec.FontSize}

	ch := chart.Chart{
		Title:      spec.Title,
		TitleStyle: textStyle,
		Width:      spec.Width,
		Height:     spec.Height,
		DPI:        72,
		Background: chart.Style{Padding: chart.Box{Top: 80, Left: 24, Right: 40, Bottom: 24}},
		XAxis: chart.XAxis{
			Name:      spec.X.Label,
			NameStyle: textStyle,
			Style:     chart.Style{FontSize: spec.FontSize, TextRotationDegrees: 90},
			Range:     &chart.ContinuousRange{Min: spec.X.Min, Max: spec.X.Max},
			Ticks:     goChartTicks(spec.X.Ticks),
		},
		YAxis: chart.YAxis{
			Name:      spec.Y.Label,
			NameStyle: textStyle,
			Style:     textStyle,
			Range:     &chart.ContinuousRange{Min: spec.Y.Min, Max: spec.Y.Max},
			Ticks:     goChartTicks(spec.Y.Ticks),
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    spec.Y.Column,
				XValues: xs,
				YValues: ys,
				Style: chart.Style{
					StrokeColor: drawing.ColorFromHex("377eb8"),
					StrokeWidth: b.LineWidth,
				},
			},
		},
	}

	if err := ch.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("go-chart render failed: %w", err)
	}

	b.logger.WithField("points", len(xs)).Debug("rendered chart")

	return nil
}

func goChartTicks(values []float64) []chart.Tick {
	ticks := make([]chart.Tick, len(values))
	for i, v := range values {
		ticks[i] = chart.Tick{Value: v, Label: strconv.FormatFloat(v, 'f', -1, 64)}
	}
	return ticks
}
