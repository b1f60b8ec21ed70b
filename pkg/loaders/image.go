// Package loaders decodes files on disk into scene resources.
package loaders

import (
	"image"

	"github.com/disintegration/imaging"
	"github.com/pkg/errors"

	"github.com/df07/go-lighttransport/pkg/texture"
)

// ErrImageLoad is wrapped by every failure to turn a file into a texture
var ErrImageLoad = errors.New("failed to load image texture")

// LoadImageTexture opens and decodes an image file (PNG, JPEG, GIF, TIFF, BMP)
// into an image texture. EXIF orientation is applied.
func LoadImageTexture(filename string) (*texture.Image, error) {
	img, err := imaging.Open(filename, imaging.AutoOrientation(true))
	if err != nil {
		return nil, errors.Wrapf(ErrImageLoad, "%s: %v", filename, err)
	}

	tex, err := ImageTexture(img)
	if err != nil {
		return nil, errors.Wrapf(ErrImageLoad, "%s: %v", filename, err)
	}
	return tex, nil
}

// ImageTexture converts a decoded image to a texture, dropping alpha
func ImageTexture(img image.Image) (*texture.Image, error) {
	nrgba := imaging.Clone(img)
	width := nrgba.Bounds().Dx()
	height := nrgba.Bounds().Dy()

	rgb := make([]byte, 0, width*height*3)
	for y := 0; y < height; y++ {
		row := nrgba.Pix[y*nrgba.Stride : y*nrgba.Stride+width*4]
		for x := 0; x < width; x++ {
			rgb = append(rgb, row[4*x], row[4*x+1], row[4*x+2])
		}
	}

	return texture.NewImageFromRGB(rgb, width, height)
}
