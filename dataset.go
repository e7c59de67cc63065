package benchchart

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
)

var ErrAlreadyConverted = errors.New("time column already converted")

type TimeUnit string

const (
	Nanosecond TimeUnit = "ns"
	Second     TimeUnit = "s"
)

// SecondsFactor is the multiplier that converts a value in this unit to
// seconds.
func (u TimeUnit) SecondsFactor() (float64, error) {
	switch u {
	case Nanosecond:
		return 1e-9, nil
	case Second:
		return 1, nil
	default:
		return 0, fmt.Errorf("unknown time unit %q", string(u))
	}
}

// One row of benchmark results.
type DataRow struct {
	Threads int
	Time    float64
}

// Dataset is the whole results table, in file order.
type Dataset struct {
	Rows     []DataRow
	TimeUnit TimeUnit
}

type Operator func(DataRow) (DataRow, error)

// ScaleTime multiplies the time column by factor.
func ScaleTime(factor float64) Operator {
	return func(row DataRow) (DataRow, error) {
		row.Time = row.Time * factor
		return row, nil
	}
}

// Apply runs every operator, in order, over every row. The dataset is left
// untouched if any operator fails.
func (d *Dataset) Apply(operators ...Operator) error {
	rows := make([]DataRow, len(d.Rows))
	copy(rows, d.Rows)

	for i := range rows {
		for _, operator := range operators {
			row, err := operator(rows[i])
			if err != nil {
				return fmt.Errorf("row %d: %w", i, err)
			}
			rows[i] = row
		}
	}

	d.Rows = rows
	return nil
}

// ConvertTimeUnit rescales the time column into the target unit. Only
// conversion to seconds is supported, and only once.
func (d *Dataset) ConvertTimeUnit(target TimeUnit) error {
	if target != Second {
		return fmt.Errorf("cannot convert to %q: only seconds are supported", string(target))
	}

	if d.TimeUnit == target {
		return ErrAlreadyConverted
	}

	factor, err := d.TimeUnit.SecondsFactor()
	if err != nil {
		return err
	}

	if err := d.Apply(ScaleTime(factor)); err != nil {
		return err
	}

	logrus.WithFields(logrus.Fields{
		"tag":    "Dataset",
		"from":   d.TimeUnit,
		"to":     target,
		"factor": factor,
		"rows":   len(d.Rows),
	}).Debug("converted time column")

	d.TimeUnit = target
	return nil
}

// Points returns the (threads, time) pairs in row order.
func (d *Dataset) Points() (xs []float64, ys []float64) {
	xs = make([]float64, 0, len(d.Rows))
	ys = make([]float64, 0, len(d.Rows))
	for _, row := range d.Rows {
		xs = append(xs, float64(row.Threads))
		ys = append(ys, row.Time)
	}
	return xs, ys
}
