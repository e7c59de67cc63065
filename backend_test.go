package benchchart

import (
	"bytes"
	"errors"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"testing"

	_ "golang.org/x/image/tiff"
)

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path string
		want ImageFormat
	}{
		{"./benchmark.png", FormatPNG},
		{"out/CHART.PNG", FormatPNG},
		{"a.jpg", FormatJPEG},
		{"a.jpeg", FormatJPEG},
		{"a.tif", FormatTIFF},
		{"a.tiff", FormatTIFF},
	}
	for _, tc := range tests {
		got, err := FormatFromPath(tc.path)
		if err != nil {
			t.Fatalf("FormatFromPath(%q): unexpected error %v", tc.path, err)
		}
		if got != tc.want {
			t.Fatalf("FormatFromPath(%q) = %q, want %q", tc.path, got, tc.want)
		}
	}

	for _, path := range []string{"a.svg", "a.pdf", "noext"} {
		if _, err := FormatFromPath(path); !errors.Is(err, ErrUnsupportedFormat) {
			t.Fatalf("FormatFromPath(%q): expected ErrUnsupportedFormat, got %v", path, err)
		}
	}
}

func secondsDataset() *Dataset {
	return &Dataset{
		Rows:     []DataRow{{2, 2}, {4, 4}, {8, 8}, {512, 12}, {1024, 25}},
		TimeUnit: Second,
	}
}

func decodeConfig(t *testing.T, data []byte) (image.Config, string) {
	t.Helper()
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode rendered image: %v", err)
	}
	return cfg, format
}

func TestGonumBackend(t *testing.T) {
	formats := map[ImageFormat]string{
		FormatPNG:  "png",
		FormatJPEG: "jpeg",
		FormatTIFF: "tiff",
	}
	for format, decoded := range formats {
		t.Run(string(format), func(t *testing.T) {
			var buf bytes.Buffer
			if err := NewGonumBackend().Render(DefaultChartSpec(), secondsDataset(), format, &buf); err != nil {
				t.Fatalf("render: %v", err)
			}
			cfg, name := decodeConfig(t, buf.Bytes())
			if name != decoded {
				t.Fatalf("decoded as %q, want %q", name, decoded)
			}
			if cfg.Width != 2500 || cfg.Height != 1000 {
				t.Fatalf("unexpected size %dx%d", cfg.Width, cfg.Height)
			}
		})
	}

	t.Run("OutOfRangeData", func(t *testing.T) {
		ds := &Dataset{Rows: []DataRow{{1, -5}, {4096, 100}, {64, 10}}, TimeUnit: Second}
		var buf bytes.Buffer
		if err := NewGonumBackend().Render(DefaultChartSpec(), ds, FormatPNG, &buf); err != nil {
			t.Fatalf("render: %v", err)
		}
		if buf.Len() == 0 {
			t.Fatalf("expected image bytes")
		}
	})

	t.Run("EmptyDataset", func(t *testing.T) {
		var buf bytes.Buffer
		if err := NewGonumBackend().Render(DefaultChartSpec(), &Dataset{TimeUnit: Second}, FormatPNG, &buf); err != nil {
			t.Fatalf("render: %v", err)
		}
		cfg, _ := decodeConfig(t, buf.Bytes())
		if cfg.Width != 2500 || cfg.Height != 1000 {
			t.Fatalf("unexpected size %dx%d", cfg.Width, cfg.Height)
		}
	})

	t.Run("AxisWindowIsFixed", func(t *testing.T) {
		ds := &Dataset{Rows: []DataRow{{1, -5}, {4096, 100}}, TimeUnit: Second}
		p, err := NewGonumBackend().buildPlot(DefaultChartSpec(), ds)
		if err != nil {
			t.Fatalf("build: %v", err)
		}
		if p.X.Min != 2 || p.X.Max != 1024 || p.Y.Min != 0 || p.Y.Max != 30 {
			t.Fatalf("unexpected window x=[%v,%v] y=[%v,%v]", p.X.Min, p.X.Max, p.Y.Min, p.Y.Max)
		}
	})

	t.Run("UnknownFormat", func(t *testing.T) {
		var buf bytes.Buffer
		err := NewGonumBackend().Render(DefaultChartSpec(), secondsDataset(), ImageFormat("bmp"), &buf)
		if !errors.Is(err, ErrUnsupportedFormat) {
			t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
		}
	})
}

func TestGoChartBackend(t *testing.T) {
	t.Run("PNG", func(t *testing.T) {
		var buf bytes.Buffer
		if err := NewGoChartBackend().Render(DefaultChartSpec(), secondsDataset(), FormatPNG, &buf); err != nil {
			t.Fatalf("render: %v", err)
		}
		cfg, name := decodeConfig(t, buf.Bytes())
		if name != "png" {
			t.Fatalf("decoded as %q, want png", name)
		}
		if cfg.Width != 2500 || cfg.Height != 1000 {
			t.Fatalf("unexpected size %dx%d", cfg.Width, cfg.Height)
		}
	})

	t.Run("OnlyPNG", func(t *testing.T) {
		var buf bytes.Buffer
		err := NewGoChartBackend().Render(DefaultChartSpec(), secondsDataset(), FormatJPEG, &buf)
		if !errors.Is(err, ErrUnsupportedFormat) {
			t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
		}
		if buf.Len() != 0 {
			t.Fatalf("nothing should be written on error")
		}
	})

	t.Run("EmptyDataset", func(t *testing.T) {
		var buf bytes.Buffer
		if err := NewGoChartBackend().Render(DefaultChartSpec(), &Dataset{TimeUnit: Second}, FormatPNG, &buf); err == nil {
			t.Fatalf("expected error for empty dataset")
		}
	})
}
