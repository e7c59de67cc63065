package benchchart

import (
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/brewer"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// Pixels map one to one onto points at this resolution, so the spec's pixel
// sizes can be used as vg lengths directly.
const gonumDPI = 72

// GonumBackend renders with gonum.org/v1/plot. It is the default backend.
type GonumBackend struct {
	LineWidth float64

	logger logrus.FieldLogger
}

func NewGonumBackend() *GonumBackend {
	return &GonumBackend{
		LineWidth: 3,
		logger:    logrus.WithField("tag", "GonumBackend"),
	}
}

func (b *GonumBackend) Name() string {
	return "gonum"
}

func (b *GonumBackend) Render(spec ChartSpec, dataset *Dataset, format ImageFormat, w io.Writer) error {
	p, err := b.buildPlot(spec, dataset)
	if err != nil {
		return err
	}

	c := vgimg.NewWith(
		vgimg.UseWH(vg.Points(float64(spec.Width)), vg.Points(float64(spec.Height))),
		vgimg.UseDPI(gonumDPI),
	)
	p.Draw(draw.New(c))

	var writer io.WriterTo
	switch format {
	case FormatPNG:
		writer = vgimg.PngCanvas{Canvas: c}
	case FormatJPEG:
		writer = vgimg.JpegCanvas{Canvas: c}
	case FormatTIFF:
		writer = vgimg.TiffCanvas{Canvas: c}
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, string(format))
	}

	n, err := writer.WriteTo(w)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", format, err)
	}

	b.logger.WithFields(logrus.Fields{
		"format": format,
		"bytes":  n,
	}).Debug("encoded chart")

	return nil
}

func (b *GonumBackend) buildPlot(spec ChartSpec, dataset *Dataset) (*plot.Plot, error) {
	p := plot.New()

	fontSize := vg.Points(spec.FontSize)

	p.Title.Text = spec.Title
	p.Title.TextStyle.Font.Size = fontSize
	p.X.Label.Text = spec.X.Label
	p.X.Label.TextStyle.Font.Size = fontSize
	p.Y.Label.Text = spec.Y.Label
	p.Y.Label.TextStyle.Font.Size = fontSize
	p.X.Tick.Label.Font.Size = fontSize
	p.Y.Tick.Label.Font.Size = fontSize

	// Too many x ticks to fit side by side at this font size.
	p.X.Tick.Label.Rotation = math.Pi / 2
	p.X.Tick.Label.XAlign = text.XRight
	p.X.Tick.Label.YAlign = text.YCenter

	p.X.Tick.Marker = plot.ConstantTicks(constantTicks(spec.X.Ticks))
	p.Y.Tick.Marker = plot.ConstantTicks(constantTicks(spec.Y.Ticks))

	if len(dataset.Rows) > 0 {
		xs, ys := dataset.Points()
		xys := make(plotter.XYs, len(xs))
		for i := range xs {
			xys[i].X = xs[i]
			xys[i].Y = ys[i]
		}

		line, err := plotter.NewLine(xys)
		if err != nil {
			return nil, fmt.Errorf("failed to create line: %w", err)
		}

		palette, err := brewer.GetPalette(brewer.TypeQualitative, "Set1", 3)
		if err != nil {
			return nil, err
		}
		line.LineStyle.Color = palette.Colors()[1]
		line.LineStyle.Width = vg.Points(b.LineWidth)

		p.Add(line)
	} else {
		b.logger.Warn("dataset is empty, drawing axes only")
	}

	// Add widens the axes to fit the data, so the fixed window goes last.
	p.X.Min, p.X.Max = spec.X.Min, spec.X.Max
	p.Y.Min, p.Y.Max = spec.Y.Min, spec.Y.Max

	return p, nil
}

func constantTicks(values []float64) []plot.Tick {
	ticks := make([]plot.Tick, len(values))
	for i, v := range values {
		ticks[i] = plot.Tick{
			Value: v,
			Label: strconv.FormatFloat(v, 'f', -1, 64),
		}
	}
	return ticks
}
