package loaders

import (
	"image"
	"image/color"
	"math"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/pkg/errors"

	"github.com/df07/go-lighttransport/pkg/core"
)

func writeTestImage(t *testing.T, name string) string {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.NRGBA{R: 255, G: 255, B: 255, A: 255}) // Top-left: white
	img.Set(1, 0, color.NRGBA{R: 255, G: 0, B: 0, A: 255})     // Top-right: red
	img.Set(0, 1, color.NRGBA{R: 0, G: 255, B: 0, A: 255})     // Bottom-left: green
	img.Set(1, 1, color.NRGBA{R: 0, G: 0, B: 255, A: 255})     // Bottom-right: blue

	path := filepath.Join(t.TempDir(), name)
	if err := imaging.Save(img, path); err != nil {
		t.Fatalf("Failed to save test image: %v", err)
	}
	return path
}

func TestLoadImageTexture(t *testing.T) {
	tex, err := LoadImageTexture(writeTestImage(t, "test.png"))
	if err != nil {
		t.Fatalf("LoadImageTexture failed: %v", err)
	}

	if tex.Width != 2 || tex.Height != 2 {
		t.Fatalf("Expected 2x2 texture, got %dx%d", tex.Width, tex.Height)
	}

	checkColor := func(name string, got, expected core.Color) {
		const tolerance = 0.01
		if math.Abs(got.R-expected.R) > tolerance ||
			math.Abs(got.G-expected.G) > tolerance ||
			math.Abs(got.B-expected.B) > tolerance {
			t.Errorf("%s: expected %v, got %v", name, expected, got)
		}
	}

	// Row-major, top row first
	checkColor("Top-left (white)", tex.Pixels[0], core.NewColor(1, 1, 1))
	checkColor("Top-right (red)", tex.Pixels[1], core.NewColor(1, 0, 0))
	checkColor("Bottom-left (green)", tex.Pixels[2], core.NewColor(0, 1, 0))
	checkColor("Bottom-right (blue)", tex.Pixels[3], core.NewColor(0, 0, 1))

	// V=1 is the top of the image
	checkColor("UV top-right", tex.Value(0.75, 0.75, core.Vec3{}), core.NewColor(1, 0, 0))
	checkColor("UV bottom-left", tex.Value(0.25, 0.25, core.Vec3{}), core.NewColor(0, 1, 0))
}

func TestLoadImageTexture_JPEG(t *testing.T) {
	tex, err := LoadImageTexture(writeTestImage(t, "test.jpg"))
	if err != nil {
		t.Fatalf("LoadImageTexture failed: %v", err)
	}
	if tex.Width != 2 || tex.Height != 2 {
		t.Errorf("Expected 2x2 texture, got %dx%d", tex.Width, tex.Height)
	}
}

func TestLoadImageTexture_Errors(t *testing.T) {
	tests := []struct {
		name string
		path string
	}{
		{"Missing file", filepath.Join(t.TempDir(), "missing.png")},
		{"Unsupported extension", filepath.Join(t.TempDir(), "texture.xyz")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadImageTexture(tt.path)
			if !errors.Is(err, ErrImageLoad) {
				t.Errorf("Expected ErrImageLoad, got %v", err)
			}
		})
	}
}
