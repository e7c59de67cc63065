package benchchart

type AxisSpec struct {
	Column string
	Label  string
	Min    float64
	Max    float64
	Ticks  []float64
}

// ChartSpec is everything a backend needs to draw the chart apart from the
// data itself. Sizes are in pixels.
type ChartSpec struct {
	Title    string
	X        AxisSpec
	Y        AxisSpec
	FontSize float64
	Width    int
	Height   int
}

func DefaultChartSpec() ChartSpec {
	return ChartSpec{
		Title: "Transformation Time Per Number of Threads",
		X: AxisSpec{
			Column: ThreadsColumn,
			Label:  "Number of Threads",
			Min:    2,
			Max:    1024,
			Ticks:  Arange[float64](2, 1025, 14),
		},
		Y: AxisSpec{
			Column: TimeColumn,
			Label:  "Duration (seconds)",
			Min:    0,
			Max:    30,
			Ticks:  Arange[float64](0, 31, 2),
		},
		FontSize: 22,
		Width:    2500,
		Height:   1000,
	}
}

// Contains reports whether the row falls inside both axis ranges.
func (s ChartSpec) Contains(row DataRow) bool {
	x := float64(row.Threads)
	return x >= s.X.Min && x <= s.X.Max && row.Time >= s.Y.Min && row.Time <= s.Y.Max
}
