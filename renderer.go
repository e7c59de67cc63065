package benchchart

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
)

const (
	DefaultInputPath  = "./results.csv"
	DefaultOutputPath = "./benchmark.png"
)

// ChartRenderer turns a benchmark results table into a line chart image.
type ChartRenderer struct {
	Input   string
	Output  string
	Spec    ChartSpec
	Backend Backend

	logger logrus.FieldLogger
}

// NewChartRenderer returns a renderer reading the fixed input path and writing
// the fixed output path with the default chart and the gonum backend.
func NewChartRenderer() *ChartRenderer {
	return &ChartRenderer{
		Input:   DefaultInputPath,
		Output:  DefaultOutputPath,
		Spec:    DefaultChartSpec(),
		Backend: NewGonumBackend(),
		logger:  logrus.WithField("tag", "ChartRenderer"),
	}
}

// Render loads the table, converts time to seconds, draws the chart and
// writes it to Output. Output is only touched once the image is fully
// encoded.
func (r *ChartRenderer) Render(ctx context.Context) error {
	logger := r.logger
	if logger == nil {
		logger = logrus.WithField("tag", "ChartRenderer")
	}

	format, err := FormatFromPath(r.Output)
	if err != nil {
		return err
	}

	dataset, err := LoadDatasetFile(ctx, r.Input)
	if err != nil {
		return err
	}

	if err := dataset.ConvertTimeUnit(Second); err != nil {
		return fmt.Errorf("failed to convert time column: %w", err)
	}

	outside := Filter(dataset.Rows, func(row DataRow) bool {
		return !r.Spec.Contains(row)
	})
	if len(outside) > 0 {
		logger.WithField("rows", len(outside)).Warn("some points fall outside the chart window and will be clipped")
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := r.Backend.Render(r.Spec, dataset, format, &buf); err != nil {
		return fmt.Errorf("%s backend: %w", r.Backend.Name(), err)
	}

	if err := os.WriteFile(r.Output, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write chart: %w", err)
	}

	logger.WithFields(logrus.Fields{
		"input":   r.Input,
		"output":  r.Output,
		"rows":    len(dataset.Rows),
		"backend": r.Backend.Name(),
		"bytes":   buf.Len(),
	}).Info("chart written")

	return nil
}
