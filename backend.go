package benchchart

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

var ErrUnsupportedFormat = errors.New("unsupported image format")

type ImageFormat string

const (
	FormatPNG  ImageFormat = "png"
	FormatJPEG ImageFormat = "jpeg"
	FormatTIFF ImageFormat = "tiff"
)

// FormatFromPath picks the raster format from the file extension.
func FormatFromPath(path string) (ImageFormat, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	switch ext {
	case "png":
		return FormatPNG, nil
	case "jpg", "jpeg":
		return FormatJPEG, nil
	case "tif", "tiff":
		return FormatTIFF, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// A Backend draws a line chart of the dataset per spec and writes the encoded
// image to w.
type Backend interface {
	Name() string
	Render(spec ChartSpec, dataset *Dataset, format ImageFormat, w io.Writer) error
}
