package texture

import (
	"math"

	"github.com/pkg/errors"

	"github.com/df07/go-lighttransport/pkg/core"
)

// Filter selects how an image texture is sampled between pixel centers
type Filter int

const (
	Nearest Filter = iota
	Bilinear
)

// Image provides color from an already-decoded 2D image
type Image struct {
	Width  int
	Height int
	Pixels []core.Color // Row-major: Pixels[y*Width + x], row 0 is the top of the image
	Filter Filter
}

// NewImage creates a new image texture using nearest-neighbor lookup
func NewImage(width, height int, pixels []core.Color) *Image {
	return &Image{
		Width:  width,
		Height: height,
		Pixels: pixels,
		Filter: Nearest,
	}
}

// NewImageFromRGB creates an image texture from a packed 8-bit RGB buffer
func NewImageFromRGB(data []byte, width, height int) (*Image, error) {
	if width <= 0 || height <= 0 {
		return nil, errors.Errorf("invalid image dimensions %dx%d", width, height)
	}
	if len(data) != width*height*3 {
		return nil, errors.Errorf("RGB buffer has %d bytes, want %d for %dx%d", len(data), width*height*3, width, height)
	}

	pixels := make([]core.Color, width*height)
	for i := range pixels {
		pixels[i] = core.NewColor(
			float64(data[3*i])/255.0,
			float64(data[3*i+1])/255.0,
			float64(data[3*i+2])/255.0,
		)
	}
	return NewImage(width, height, pixels), nil
}

// WithFilter returns the texture set to use the given filter
func (t *Image) WithFilter(filter Filter) *Image {
	t.Filter = filter
	return t
}

// Value samples the texture at UV coordinates. U wraps around the seam; V is
// clamped to the bottom and top rows.
func (t *Image) Value(u, v float64, p core.Vec3) core.Color {
	if len(t.Pixels) == 0 {
		// No data: solid cyan makes a missing texture obvious in renders
		return core.NewColor(0, 1, 1)
	}

	u = wrap(u)
	v = math.Max(0, math.Min(1, v))

	// V=0 is bottom, V=1 is top (flip V for image coordinates where origin is top-left)
	x := u * float64(t.Width)
	y := (1.0 - v) * float64(t.Height)

	if t.Filter == Bilinear {
		return t.bilinear(x-0.5, y-0.5)
	}
	return t.pixel(int(x), int(y))
}

func (t *Image) bilinear(x, y float64) core.Color {
	x0 := math.Floor(x)
	y0 := math.Floor(y)
	fx := x - x0
	fy := y - y0
	ix, iy := int(x0), int(y0)

	top := t.pixel(ix, iy).Scale(1 - fx).Add(t.pixel(ix+1, iy).Scale(fx))
	bottom := t.pixel(ix, iy+1).Scale(1 - fx).Add(t.pixel(ix+1, iy+1).Scale(fx))
	return top.Scale(1 - fy).Add(bottom.Scale(fy))
}

// pixel returns the texel at (x, y); x wraps horizontally and y clamps to the image
func (t *Image) pixel(x, y int) core.Color {
	x %= t.Width
	if x < 0 {
		x += t.Width
	}
	if y < 0 {
		y = 0
	} else if y >= t.Height {
		y = t.Height - 1
	}
	return t.Pixels[y*t.Width+x]
}

func wrap(x float64) float64 {
	x -= math.Floor(x)
	if x >= 1 {
		x = 0
	}
	return x
}
