package renderer

import (
	"context"
	"image"

	"github.com/df07/go-lighttransport/pkg/core"
	"github.com/df07/go-lighttransport/pkg/integrator"
	"github.com/df07/go-lighttransport/pkg/scene"
)

// TileRenderer handles the actual rendering of individual tiles using an integrator
type TileRenderer struct {
	scene      *scene.Scene
	integrator integrator.Integrator
	seed       int64
}

// NewTileRenderer creates a new tile renderer with the given scene and integrator
func NewTileRenderer(s *scene.Scene, integratorInst integrator.Integrator, seed int64) *TileRenderer {
	return &TileRenderer{
		scene:      s,
		integrator: integratorInst,
		seed:       seed,
	}
}

// RenderTileBounds brings every pixel within bounds up to targetSamples. It checks
// ctx between rows and returns the statistics of the rows it finished.
func (tr *TileRenderer) RenderTileBounds(ctx context.Context, bounds image.Rectangle, pixelStats [][]PixelStats, pass, targetSamples int) (RenderStats, error) {
	stats := tr.initRenderStatsForBounds(bounds, targetSamples)

	for j := bounds.Min.Y; j < bounds.Max.Y; j++ {
		if err := ctx.Err(); err != nil {
			tr.finalizeStats(&stats)
			return stats, err
		}
		for i := bounds.Min.X; i < bounds.Max.X; i++ {
			samplesUsed := tr.samplePixel(i, j, &pixelStats[j][i], pass, targetSamples)
			tr.updateStats(&stats, samplesUsed)
		}
	}

	tr.finalizeStats(&stats)
	return stats, nil
}

// samplePixel draws the pixel's missing samples from a sampler stream seeded by
// (seed, x, y, pass), so results do not depend on which worker ran the tile
func (tr *TileRenderer) samplePixel(x, y int, ps *PixelStats, pass, targetSamples int) int {
	initialSampleCount := ps.SampleCount
	if ps.SampleCount >= targetSamples {
		return 0
	}

	camera := tr.scene.Camera
	width := float64(tr.scene.SamplingConfig.Width)
	height := tr.scene.SamplingConfig.Height
	sampler := core.NewPixelSampler(tr.seed, x, y, pass)

	for ps.SampleCount < targetSamples {
		// Image rows run top to bottom; the camera's t runs bottom to top
		s := (float64(x) + sampler.Get1D()) / width
		t := (float64(height-1-y) + sampler.Get1D()) / float64(height)

		ray := camera.GetRay(s, t, sampler)
		ps.AddSample(tr.integrator.RayColor(ray, tr.scene, sampler))
	}

	return ps.SampleCount - initialSampleCount
}

// initRenderStatsForBounds initializes the render statistics tracking for specific bounds
func (tr *TileRenderer) initRenderStatsForBounds(bounds image.Rectangle, maxSamples int) RenderStats {
	return RenderStats{
		TotalPixels:    bounds.Dx() * bounds.Dy(),
		MaxSamples:     maxSamples,
		MinSamples:     maxSamples, // Start with max, will be reduced
		MaxSamplesUsed: 0,
	}
}

// updateStats updates the render statistics with data from a single pixel
func (tr *TileRenderer) updateStats(stats *RenderStats, samplesUsed int) {
	stats.TotalSamples += samplesUsed
	stats.MinSamples = min(stats.MinSamples, samplesUsed)
	stats.MaxSamplesUsed = max(stats.MaxSamplesUsed, samplesUsed)
}

// finalizeStats calculates final statistics after all pixels are rendered
func (tr *TileRenderer) finalizeStats(stats *RenderStats) {
	if stats.TotalPixels > 0 {
		stats.AverageSamples = float64(stats.TotalSamples) / float64(stats.TotalPixels)
	}
}
