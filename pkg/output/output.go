// Package output encodes rendered frames to image files.
package output

import (
	"image"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/lmittmann/ppm"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
)

// Format names an output encoding
type Format string

// Supported output formats
const (
	FormatPNG  Format = "png"
	FormatPPM  Format = "ppm"
	FormatJPEG Format = "jpeg"
)

// ErrUnknownFormat is returned for an output format that cannot be written
var ErrUnknownFormat = errors.New("unknown output format")

// ParseFormat resolves a format name, accepting "jpg" for JPEG
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(name, ".")) {
	case "png":
		return FormatPNG, nil
	case "ppm":
		return FormatPPM, nil
	case "jpg", "jpeg":
		return FormatJPEG, nil
	}
	return "", errors.Wrapf(ErrUnknownFormat, "%q", name)
}

// FormatFromPath picks the format from a file name's extension
func FormatFromPath(path string) (Format, error) {
	return ParseFormat(filepath.Ext(path))
}

// Encode writes img to w in the given format
func Encode(w io.Writer, img image.Image, format Format) error {
	switch format {
	case FormatPNG:
		return imaging.Encode(w, img, imaging.PNG)
	case FormatJPEG:
		return imaging.Encode(w, img, imaging.JPEG, imaging.JPEGQuality(95))
	case FormatPPM:
		return ppm.Encode(w, img)
	}
	return errors.Wrapf(ErrUnknownFormat, "%q", format)
}

// WriteImage encodes img to path, creating parent directories as needed. An
// empty format is taken from the path's extension.
func WriteImage(path string, img image.Image, format Format) (err error) {
	if format == "" {
		if format, err = FormatFromPath(path); err != nil {
			return err
		}
	}
	if _, err := ParseFormat(string(format)); err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrapf(err, "creating output directory %s", dir)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "creating %s", path)
	}
	defer func() {
		err = multierr.Combine(err, f.Close())
	}()

	return errors.Wrapf(Encode(f, img, format), "encoding %s", path)
}
