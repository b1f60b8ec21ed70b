package output

import (
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/lmittmann/ppm"
	"github.com/pkg/errors"
)

func testImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 3, 2))
	img.SetRGBA(0, 0, color.RGBA{255, 0, 0, 255})
	img.SetRGBA(1, 0, color.RGBA{0, 255, 0, 255})
	img.SetRGBA(2, 0, color.RGBA{0, 0, 255, 255})
	img.SetRGBA(0, 1, color.RGBA{10, 20, 30, 255})
	img.SetRGBA(1, 1, color.RGBA{255, 255, 255, 255})
	img.SetRGBA(2, 1, color.RGBA{0, 0, 0, 255})
	return img
}

func assertSamePixels(t *testing.T, want image.Image, got image.Image) {
	t.Helper()
	if got.Bounds().Size() != want.Bounds().Size() {
		t.Fatalf("Expected size %v, got %v", want.Bounds().Size(), got.Bounds().Size())
	}
	for y := 0; y < want.Bounds().Dy(); y++ {
		for x := 0; x < want.Bounds().Dx(); x++ {
			wr, wg, wb, _ := want.At(x, y).RGBA()
			gr, gg, gb, _ := got.At(got.Bounds().Min.X+x, got.Bounds().Min.Y+y).RGBA()
			if wr>>8 != gr>>8 || wg>>8 != gg>>8 || wb>>8 != gb>>8 {
				t.Errorf("Pixel (%d,%d): expected %v, got %v", x, y, want.At(x, y), got.At(x, y))
			}
		}
	}
}

func TestWriteImage_PNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "frame.png")
	img := testImage()

	if err := WriteImage(path, img, FormatPNG); err != nil {
		t.Fatalf("WriteImage failed: %v", err)
	}

	decoded, err := imaging.Open(path)
	if err != nil {
		t.Fatalf("Reading back PNG failed: %v", err)
	}
	assertSamePixels(t, img, decoded)
}

func TestWriteImage_PPM(t *testing.T) {
	path := filepath.Join(t.TempDir(), "frame.ppm")
	img := testImage()

	// Format comes from the extension
	if err := WriteImage(path, img, ""); err != nil {
		t.Fatalf("WriteImage failed: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	decoded, err := ppm.Decode(f)
	if err != nil {
		t.Fatalf("Reading back PPM failed: %v", err)
	}
	assertSamePixels(t, img, decoded)
}

func TestWriteImage_JPEG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "frame.jpg")
	if err := WriteImage(path, testImage(), ""); err != nil {
		t.Fatalf("WriteImage failed: %v", err)
	}
	decoded, err := imaging.Open(path)
	if err != nil {
		t.Fatalf("Reading back JPEG failed: %v", err)
	}
	if decoded.Bounds().Dx() != 3 || decoded.Bounds().Dy() != 2 {
		t.Errorf("Expected 3x2 image, got %v", decoded.Bounds())
	}
}

func TestWriteImage_UnknownFormat(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name   string
		path   string
		format Format
	}{
		{"Unknown extension", filepath.Join(dir, "frame.tiff"), ""},
		{"No extension", filepath.Join(dir, "frame"), ""},
		{"Unknown explicit format", filepath.Join(dir, "frame.png"), Format("bmp")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := WriteImage(tt.path, testImage(), tt.format)
			if !errors.Is(err, ErrUnknownFormat) {
				t.Errorf("Expected ErrUnknownFormat, got %v", err)
			}
			if _, statErr := os.Stat(tt.path); !os.IsNotExist(statErr) {
				t.Error("Expected no file to be created")
			}
		})
	}
}

func TestParseFormat(t *testing.T) {
	tests := map[string]Format{
		"png":  FormatPNG,
		".PNG": FormatPNG,
		"ppm":  FormatPPM,
		"jpg":  FormatJPEG,
		"jpeg": FormatJPEG,
	}
	for name, expected := range tests {
		got, err := ParseFormat(name)
		if err != nil || got != expected {
			t.Errorf("ParseFormat(%q): expected %q, got %q (%v)", name, expected, got, err)
		}
	}
}
