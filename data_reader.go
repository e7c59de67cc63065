package benchchart

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
)

var (
	ErrMissingColumn = errors.New("missing required column")
	ErrInvalidValue  = errors.New("invalid value")
)

const (
	ThreadsColumn = "threads"
	TimeColumn    = "time"
)

// When Read is called, return an array of strings which are the columns.
type StringReader interface {
	Read(context.Context) ([]string, error)
}

// This implements a StringReader and reads an io.Reader using the Golang csv
// module. The input data must strictly conform to CSV; parse errors are
// returned, not skipped.
type CsvStringReader struct {
	input     io.Reader
	csvReader *csv.Reader

	lineCount int
}

func NewCsvStringReader(input io.Reader) *CsvStringReader {
	csvReader := csv.NewReader(input)
	csvReader.TrimLeadingSpace = true

	return &CsvStringReader{
		input:     input,
		csvReader: csvReader,
		lineCount: 0,
	}
}

func (r *CsvStringReader) Read(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	line, err := r.csvReader.Read()
	if err == io.EOF {
		return nil, io.EOF
	}

	r.lineCount++

	if err != nil {
		logrus.WithFields(logrus.Fields{
			"tag":     "CsvString",
			"line":    line,
			"lineNum": r.lineCount,
		}).WithError(err).Error("unable to read CSV")
		return nil, err
	}

	return line, nil
}

// LineCount is the number of records read so far, header included.
func (r *CsvStringReader) LineCount() int {
	return r.lineCount
}

// Reads a results table with a header row into a Dataset. The header must
// name a threads column and a time column; any other columns are ignored.
// Time values are taken to be nanoseconds.
type TableReader struct {
	Input StringReader

	threadsIndex int
	timeIndex    int
	rowCount     int

	logger logrus.FieldLogger
}

func NewTableReader(input StringReader) *TableReader {
	return &TableReader{
		Input:        input,
		threadsIndex: -1,
		timeIndex:    -1,
		logger:       logrus.WithField("tag", "TableReader"),
	}
}

// ReadHeader consumes the header row and locates the required columns.
func (r *TableReader) ReadHeader(ctx context.Context) error {
	header, err := r.Input.Read(ctx)
	if err == io.EOF {
		return fmt.Errorf("no header row: %w", ErrMissingColumn)
	}
	if err != nil {
		return err
	}

	r.threadsIndex, r.timeIndex = -1, -1
	for i, name := range header {
		switch strings.TrimSpace(name) {
		case ThreadsColumn:
			r.threadsIndex = i
		case TimeColumn:
			r.timeIndex = i
		}
	}

	if r.threadsIndex < 0 {
		return fmt.Errorf("%w %q in header %v", ErrMissingColumn, ThreadsColumn, header)
	}
	if r.timeIndex < 0 {
		return fmt.Errorf("%w %q in header %v", ErrMissingColumn, TimeColumn, header)
	}

	r.logger.WithFields(logrus.Fields{
		"header":       header,
		"threadsIndex": r.threadsIndex,
		"timeIndex":    r.timeIndex,
	}).Debug("resolved columns")

	return nil
}

// Read returns the next data row. ReadHeader must have been called first.
func (r *TableReader) Read(ctx context.Context) (DataRow, error) {
	if r.threadsIndex < 0 || r.timeIndex < 0 {
		return DataRow{}, errors.New("header has not been read")
	}

	line, err := r.Input.Read(ctx)
	if err != nil {
		return DataRow{}, err
	}

	r.rowCount++

	if len(line) <= r.threadsIndex || len(line) <= r.timeIndex {
		return DataRow{}, fmt.Errorf("row %d: %w: expected at least %d fields, got %d", r.rowCount, ErrInvalidValue, max(r.threadsIndex, r.timeIndex)+1, len(line))
	}

	threads, err := strconv.Atoi(strings.TrimSpace(line[r.threadsIndex]))
	if err != nil {
		return DataRow{}, fmt.Errorf("row %d: %w: %s %q is not an integer", r.rowCount, ErrInvalidValue, ThreadsColumn, line[r.threadsIndex])
	}

	value, err := strconv.ParseFloat(strings.TrimSpace(line[r.timeIndex]), 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return DataRow{}, fmt.Errorf("row %d: %w: %s %q is not a finite number", r.rowCount, ErrInvalidValue, TimeColumn, line[r.timeIndex])
	}

	return DataRow{Threads: threads, Time: value}, nil
}

// LoadDataset reads the whole table from input.
func LoadDataset(ctx context.Context, input io.Reader) (*Dataset, error) {
	reader := NewTableReader(NewCsvStringReader(input))
	if err := reader.ReadHeader(ctx); err != nil {
		return nil, err
	}

	dataset := &Dataset{TimeUnit: Nanosecond}
	for {
		row, err := reader.Read(ctx)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		dataset.Rows = append(dataset.Rows, row)
	}

	reader.logger.WithFields(logrus.Fields{
		"rows":  len(dataset.Rows),
		"first": dataset.Rows[:Min(len(dataset.Rows), 3)],
	}).Debug("loaded dataset")

	return dataset, nil
}

// LoadDatasetFile opens path and loads the table from it.
func LoadDatasetFile(ctx context.Context, path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open results: %w", err)
	}
	defer f.Close()

	dataset, err := LoadDataset(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}

	return dataset, nil
}
