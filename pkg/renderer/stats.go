package renderer

import (
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/montanaflynn/stats"

	"github.com/df07/go-lighttransport/pkg/core"
)

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	TotalPixels    int     // Total number of pixels rendered
	TotalSamples   int     // Total number of samples taken
	AverageSamples float64 // Average samples per pixel
	MaxSamples     int     // Maximum samples allowed per pixel
	MinSamples     int     // Minimum samples taken per pixel
	MaxSamplesUsed int     // Maximum samples actually used by any pixel
	NoiseEstimate  float64 // Median relative standard error of pixel luminance
}

// PixelStats tracks sampling statistics for a single pixel
type PixelStats struct {
	ColorAccum       core.Color // Linear RGB accumulator for final result
	LuminanceAccum   float64    // Luminance accumulator for convergence
	LuminanceSqAccum float64    // Luminance squared for variance
	SampleCount      int        // Number of samples taken
}

// AddSample adds a new color sample to the pixel statistics
func (ps *PixelStats) AddSample(c core.Color) {
	ps.ColorAccum = ps.ColorAccum.Add(c)
	luminance := c.Luminance()
	ps.LuminanceAccum += luminance
	ps.LuminanceSqAccum += luminance * luminance
	ps.SampleCount++
}

// GetColor returns the current average color for this pixel
func (ps *PixelStats) GetColor() core.Color {
	if ps.SampleCount == 0 {
		return core.Color{}
	}
	return ps.ColorAccum.Scale(1.0 / float64(ps.SampleCount))
}

// RelativeError returns the standard error of the mean luminance divided by the
// mean. It is undefined for fewer than two samples or a black pixel.
func (ps *PixelStats) RelativeError() (float64, bool) {
	if ps.SampleCount < 2 {
		return 0, false
	}
	n := float64(ps.SampleCount)
	mean := ps.LuminanceAccum / n
	if mean <= 1e-8 {
		return 0, false
	}
	variance := math.Max(0, ps.LuminanceSqAccum/n-mean*mean)
	return math.Sqrt(variance/n) / mean, true
}

// EstimateNoise returns the median relative error over all pixels where it is defined,
// or zero when there are none
func EstimateNoise(pixelStats [][]PixelStats) float64 {
	var errs []float64
	for y := range pixelStats {
		for x := range pixelStats[y] {
			if e, ok := pixelStats[y][x].RelativeError(); ok {
				errs = append(errs, e)
			}
		}
	}
	if len(errs) == 0 {
		return 0
	}
	median, err := stats.Median(errs)
	if err != nil {
		return 0
	}
	return median
}

// DisplayColor encodes linear radiance as an opaque 8-bit sRGB pixel, clamping
// anything outside [0, 1]
func DisplayColor(c core.Color) color.RGBA {
	r, g, b := colorful.LinearRgb(math.Max(0, c.R), math.Max(0, c.G), math.Max(0, c.B)).Clamped().RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}
