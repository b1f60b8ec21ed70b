// Package renderer turns a preprocessed scene into images, one progressive pass at a time.
package renderer

import (
	"context"
	"image"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/atomic"

	"github.com/df07/go-lighttransport/pkg/core"
	"github.com/df07/go-lighttransport/pkg/integrator"
	"github.com/df07/go-lighttransport/pkg/scene"
)

// ErrSceneNotPreprocessed is returned when rendering starts before Scene.Preprocess
var ErrSceneNotPreprocessed = errors.New("scene must be preprocessed before rendering")

// ProgressiveConfig contains configuration for progressive rendering
type ProgressiveConfig struct {
	TileSize           int   // Size of each tile (64x64 recommended)
	InitialSamples     int   // Samples for first pass (1 recommended)
	MaxSamplesPerPixel int   // Maximum total samples per pixel; 0 uses the scene's SamplesPerPixel
	MaxPasses          int   // Maximum number of passes
	NumWorkers         int   // Number of parallel workers (0 = use CPU count)
	Seed               int64 // Base seed for every pixel's sampler stream
}

// DefaultProgressiveConfig returns sensible default values
func DefaultProgressiveConfig() ProgressiveConfig {
	return ProgressiveConfig{
		TileSize:           64,
		InitialSamples:     1,
		MaxSamplesPerPixel: 50,
		MaxPasses:          7,
		NumWorkers:         0, // Auto-detect CPU count
		Seed:               42,
	}
}

// ProgressiveRaytracer manages progressive rendering with multiple passes
type ProgressiveRaytracer struct {
	scene         *scene.Scene
	width, height int
	config        ProgressiveConfig
	tiles         []*Tile        // Tile management
	pixelStats    [][]PixelStats // Shared pixel statistics array (global image coordinates)
	tileRenderer  *TileRenderer
	workerPool    *WorkerPool
	logger        core.Logger

	samplesTaken *atomic.Int64 // Camera samples across all passes
	tilesDone    *atomic.Int64 // Tiles finished in the current pass
}

// NewProgressiveRaytracer creates a progressive raytracer for a preprocessed scene.
// Image size and bounce depth come from the scene's SamplingConfig.
func NewProgressiveRaytracer(s *scene.Scene, config ProgressiveConfig, logger core.Logger) *ProgressiveRaytracer {
	width, height := s.SamplingConfig.Width, s.SamplingConfig.Height
	if config.MaxSamplesPerPixel <= 0 {
		config.MaxSamplesPerPixel = s.SamplingConfig.SamplesPerPixel
	}
	if config.InitialSamples <= 0 {
		config.InitialSamples = 1
	}
	if config.MaxPasses <= 0 {
		config.MaxPasses = 1
	}
	if config.TileSize <= 0 {
		config.TileSize = DefaultProgressiveConfig().TileSize
	}

	// Initialize shared pixel statistics array (global image coordinates)
	pixelStats := make([][]PixelStats, height)
	for y := range pixelStats {
		pixelStats[y] = make([]PixelStats, width)
	}

	return &ProgressiveRaytracer{
		scene:        s,
		width:        width,
		height:       height,
		config:       config,
		tiles:        NewTileGrid(width, height, config.TileSize),
		pixelStats:   pixelStats,
		tileRenderer: NewTileRenderer(s, integrator.NewPathTracingIntegrator(s.SamplingConfig), config.Seed),
		workerPool:   NewWorkerPool(config.NumWorkers),
		logger:       logger,
		samplesTaken: atomic.NewInt64(0),
		tilesDone:    atomic.NewInt64(0),
	}
}

// getSamplesForPass calculates the target total samples for a given pass
func (pr *ProgressiveRaytracer) getSamplesForPass(passNumber int) int {
	// Special case: if only 1 pass, use all samples
	if pr.config.MaxPasses == 1 {
		return pr.config.MaxSamplesPerPixel
	}

	// For multiple passes: first pass is quick preview
	if passNumber == 1 {
		return min(pr.config.InitialSamples, pr.config.MaxSamplesPerPixel)
	}

	// For the final pass, use all remaining samples
	if passNumber >= pr.config.MaxPasses {
		return pr.config.MaxSamplesPerPixel
	}

	// Divide remaining samples evenly across remaining passes
	remainingSamples := pr.config.MaxSamplesPerPixel - pr.config.InitialSamples
	samplesPerPass := max(0, remainingSamples/(pr.config.MaxPasses-1))

	return min(pr.config.InitialSamples+(passNumber-1)*samplesPerPass, pr.config.MaxSamplesPerPixel)
}

// SamplesTaken returns the number of camera samples taken so far
func (pr *ProgressiveRaytracer) SamplesTaken() int64 {
	return pr.samplesTaken.Load()
}

// RenderPass renders a single progressive pass using parallel processing.
// Cancelling ctx stops the pass between pixel rows and returns ctx's error.
func (pr *ProgressiveRaytracer) RenderPass(ctx context.Context, passNumber int) (*image.RGBA, RenderStats, error) {
	if pr.scene.World == nil {
		return nil, RenderStats{}, ErrSceneNotPreprocessed
	}

	targetSamples := pr.getSamplesForPass(passNumber)
	pr.logger.Infof("Pass %d: target %d samples per pixel (using %d workers)",
		passNumber, targetSamples, pr.workerPool.GetNumWorkers())

	pr.tilesDone.Store(0)
	err := pr.workerPool.Run(ctx, pr.tiles, func(ctx context.Context, tile *Tile) error {
		stats, err := pr.tileRenderer.RenderTileBounds(ctx, tile.Bounds, pr.pixelStats, passNumber, targetSamples)
		pr.samplesTaken.Add(int64(stats.TotalSamples))
		if err != nil {
			return err
		}

		// Each tile is owned by one goroutine per pass
		tile.PassesCompleted++
		done := pr.tilesDone.Inc()
		pr.logger.Debugf("Pass %d: tile %d done (%d/%d)", passNumber, tile.ID, done, len(pr.tiles))
		return nil
	})
	if err != nil {
		return nil, RenderStats{}, err
	}

	img, stats := pr.assembleCurrentImage(targetSamples)
	return img, stats, nil
}

// PassResult contains the result of a single pass
type PassResult struct {
	PassNumber int
	Image      *image.RGBA
	Stats      RenderStats
	IsLast     bool
}

// RenderProgressive renders passes until the sample target is met, sending each
// finished pass on the first channel. The error channel receives at most one
// error, including ctx's error on cancellation. Both channels are closed when
// rendering stops.
func (pr *ProgressiveRaytracer) RenderProgressive(ctx context.Context) (<-chan PassResult, <-chan error) {
	passChan := make(chan PassResult, 1)
	errChan := make(chan error, 1)

	go func() {
		defer close(passChan)
		defer close(errChan)

		pr.logger.Infof("Starting progressive rendering with %d passes", pr.config.MaxPasses)

		for pass := 1; pass <= pr.config.MaxPasses; pass++ {
			// Check for cancellation before starting this pass
			if err := ctx.Err(); err != nil {
				pr.logger.Warnf("Rendering cancelled before pass %d", pass)
				errChan <- err
				return
			}

			startTime := time.Now()
			img, stats, err := pr.RenderPass(ctx, pass)
			if err != nil {
				if ctx.Err() != nil {
					pr.logger.Warnf("Rendering cancelled during pass %d", pass)
				}
				errChan <- err
				return
			}

			actualSamples := stats.MinSamples
			pr.logger.Infof("Pass %d completed in %v (%.1f samples/pixel, noise %.4f)",
				pass, time.Since(startTime), stats.AverageSamples, stats.NoiseEstimate)

			isLast := pass == pr.config.MaxPasses || actualSamples >= pr.config.MaxSamplesPerPixel
			select {
			case passChan <- PassResult{PassNumber: pass, Image: img, Stats: stats, IsLast: isLast}:
			case <-ctx.Done():
				errChan <- ctx.Err()
				return
			}

			if isLast {
				pr.logger.Infof("Reached %d samples per pixel after %d samples in total",
					pr.config.MaxSamplesPerPixel, pr.SamplesTaken())
				return
			}
		}
	}()

	return passChan, errChan
}

// assembleCurrentImage creates an image from the current state of the shared pixel stats
// and calculates render statistics in a single pass
func (pr *ProgressiveRaytracer) assembleCurrentImage(targetSamples int) (*image.RGBA, RenderStats) {
	img := image.NewRGBA(image.Rect(0, 0, pr.width, pr.height))

	stats := RenderStats{
		TotalPixels:    pr.width * pr.height,
		MaxSamples:     targetSamples,
		MinSamples:     pr.config.MaxSamplesPerPixel, // Start high, will be reduced
		MaxSamplesUsed: 0,
	}

	for y := 0; y < pr.height; y++ {
		for x := 0; x < pr.width; x++ {
			pixel := &pr.pixelStats[y][x]
			img.SetRGBA(x, y, DisplayColor(pixel.GetColor()))

			stats.TotalSamples += pixel.SampleCount
			stats.MinSamples = min(stats.MinSamples, pixel.SampleCount)
			stats.MaxSamplesUsed = max(stats.MaxSamplesUsed, pixel.SampleCount)
		}
	}

	if stats.TotalPixels > 0 {
		stats.AverageSamples = float64(stats.TotalSamples) / float64(stats.TotalPixels)
	}
	stats.NoiseEstimate = EstimateNoise(pr.pixelStats)

	return img, stats
}

// Tile represents a rectangular region of the image to be rendered
type Tile struct {
	ID              int             // Unique tile identifier
	Bounds          image.Rectangle // Pixel bounds (x0,y0,x1,y1)
	PassesCompleted int             // Number of passes completed for this tile
}

// NewTile creates a new tile with the specified bounds
func NewTile(id int, bounds image.Rectangle) *Tile {
	return &Tile{
		ID:     id,
		Bounds: bounds,
	}
}

// NewTileGrid creates a grid of tiles covering the entire image
func NewTileGrid(width, height, tileSize int) []*Tile {
	var tiles []*Tile
	tileID := 0

	tilesX := (width + tileSize - 1) / tileSize // Ceiling division
	tilesY := (height + tileSize - 1) / tileSize

	for tileY := 0; tileY < tilesY; tileY++ {
		for tileX := 0; tileX < tilesX; tileX++ {
			x0 := tileX * tileSize
			y0 := tileY * tileSize
			x1 := min(x0+tileSize, width) // Don't exceed image bounds
			y1 := min(y0+tileSize, height)

			tiles = append(tiles, NewTile(tileID, image.Rect(x0, y0, x1, y1)))
			tileID++
		}
	}

	return tiles
}
