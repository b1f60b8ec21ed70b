package renderer

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"go.uber.org/zap/zaptest"

	"github.com/df07/go-lighttransport/pkg/core"
	"github.com/df07/go-lighttransport/pkg/scene"
)

func TestProgressiveSampleCalculation(t *testing.T) {
	config := DefaultProgressiveConfig()
	config.InitialSamples = 1
	config.MaxSamplesPerPixel = 50
	config.MaxPasses = 7

	pr := &ProgressiveRaytracer{config: config}

	// Pass 1: 1 sample
	// Pass 2-6: (50-1)/6 = 8 samples per pass -> 9, 17, 25, 33, 41
	// Pass 7: 50 (final pass gets all remaining)
	expectedTotalSamples := []int{1, 9, 17, 25, 33, 41, 50}

	for pass := 1; pass <= 7; pass++ {
		if got := pr.getSamplesForPass(pass); got != expectedTotalSamples[pass-1] {
			t.Errorf("Pass %d: expected %d total samples, got %d", pass, expectedTotalSamples[pass-1], got)
		}
	}
}

func TestProgressiveSampleCalculation_EdgeCases(t *testing.T) {
	tests := []struct {
		name     string
		config   ProgressiveConfig
		pass     int
		expected int
	}{
		{"Single pass uses everything", ProgressiveConfig{InitialSamples: 1, MaxSamplesPerPixel: 16, MaxPasses: 1}, 1, 16},
		{"More passes than samples", ProgressiveConfig{InitialSamples: 1, MaxSamplesPerPixel: 3, MaxPasses: 10}, 5, 1},
		{"More passes than samples, last pass", ProgressiveConfig{InitialSamples: 1, MaxSamplesPerPixel: 3, MaxPasses: 10}, 10, 3},
		{"Initial above maximum", ProgressiveConfig{InitialSamples: 8, MaxSamplesPerPixel: 4, MaxPasses: 3}, 1, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pr := &ProgressiveRaytracer{config: tt.config}
			if got := pr.getSamplesForPass(tt.pass); got != tt.expected {
				t.Errorf("Expected %d samples, got %d", tt.expected, got)
			}
		})
	}
}

func TestProgressiveConfig(t *testing.T) {
	config := DefaultProgressiveConfig()

	if config.TileSize != 64 {
		t.Errorf("Expected default tile size 64, got %d", config.TileSize)
	}
	if config.InitialSamples != 1 {
		t.Errorf("Expected default initial samples 1, got %d", config.InitialSamples)
	}
	if config.MaxSamplesPerPixel != 50 {
		t.Errorf("Expected default max samples 50, got %d", config.MaxSamplesPerPixel)
	}
	if config.MaxPasses != 7 {
		t.Errorf("Expected default max passes 7, got %d", config.MaxPasses)
	}
}

func TestNewTileGrid(t *testing.T) {
	// Test tile grid generation for a 400x225 image with 64x64 tiles
	width, height, tileSize := 400, 225, 64
	tiles := NewTileGrid(width, height, tileSize)

	expectedTilesX := (width + tileSize - 1) / tileSize   // 7 tiles
	expectedTilesY := (height + tileSize - 1) / tileSize  // 4 tiles
	expectedTotalTiles := expectedTilesX * expectedTilesY // 28 tiles

	if len(tiles) != expectedTotalTiles {
		t.Errorf("Expected %d tiles, got %d", expectedTotalTiles, len(tiles))
	}

	// Tiles cover the entire image without gaps or overlaps
	covered := make([][]bool, height)
	for y := range covered {
		covered[y] = make([]bool, width)
	}

	for _, tile := range tiles {
		for y := tile.Bounds.Min.Y; y < tile.Bounds.Max.Y; y++ {
			for x := tile.Bounds.Min.X; x < tile.Bounds.Max.X; x++ {
				if x >= width || y >= height {
					t.Errorf("Tile %d extends beyond image bounds at (%d,%d)", tile.ID, x, y)
					continue
				}
				if covered[y][x] {
					t.Errorf("Pixel (%d,%d) is covered by multiple tiles", x, y)
				}
				covered[y][x] = true
			}
		}
	}

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if !covered[y][x] {
				t.Errorf("Pixel (%d,%d) is not covered by any tile", x, y)
			}
		}
	}
}

func TestRenderPass_IndependentOfWorkerCount(t *testing.T) {
	render := func(workers int) []byte {
		s := createTestScene(t, 24, 16)
		config := ProgressiveConfig{TileSize: 8, InitialSamples: 2, MaxSamplesPerPixel: 2, MaxPasses: 1, NumWorkers: workers, Seed: 7}
		pr := NewProgressiveRaytracer(s, config, zaptest.NewLogger(t).Sugar())

		img, stats, err := pr.RenderPass(context.Background(), 1)
		if err != nil {
			t.Fatalf("RenderPass failed: %v", err)
		}
		if stats.TotalSamples != 24*16*2 {
			t.Errorf("Expected %d samples, got %d", 24*16*2, stats.TotalSamples)
		}
		if pr.SamplesTaken() != int64(stats.TotalSamples) {
			t.Errorf("Expected counter %d, got %d", stats.TotalSamples, pr.SamplesTaken())
		}
		return img.Pix
	}

	single := render(1)
	parallel := render(4)
	if len(single) != len(parallel) {
		t.Fatalf("Image sizes differ: %d vs %d", len(single), len(parallel))
	}
	for i := range single {
		if single[i] != parallel[i] {
			t.Fatalf("Images differ at byte %d: %d vs %d", i, single[i], parallel[i])
		}
	}
}

func TestRenderPass_LitSceneIsNotBlack(t *testing.T) {
	s := createTestScene(t, 16, 16)
	config := ProgressiveConfig{TileSize: 8, InitialSamples: 4, MaxSamplesPerPixel: 4, MaxPasses: 1, NumWorkers: 2, Seed: 1}
	pr := NewProgressiveRaytracer(s, config, zaptest.NewLogger(t).Sugar())

	img, _, err := pr.RenderPass(context.Background(), 1)
	if err != nil {
		t.Fatalf("RenderPass failed: %v", err)
	}

	// Center pixel looks straight at the light-facing sphere
	center := img.RGBAAt(8, 8)
	if center.R == 0 && center.G == 0 && center.B == 0 {
		t.Error("Expected a lit center pixel")
	}
	if center.A != 255 {
		t.Errorf("Expected opaque pixels, got alpha %d", center.A)
	}
}

func TestRenderPass_RequiresPreprocessedScene(t *testing.T) {
	s := &scene.Scene{
		Camera:         scene.NewCamera(scene.CameraConfig{LookAt: core.NewVec3(0, 0, -1), VFov: 45}),
		SamplingConfig: scene.SamplingConfig{Width: 4, Height: 4, SamplesPerPixel: 1, MaxDepth: 1},
	}
	pr := NewProgressiveRaytracer(s, DefaultProgressiveConfig(), zaptest.NewLogger(t).Sugar())

	if _, _, err := pr.RenderPass(context.Background(), 1); !errors.Is(err, ErrSceneNotPreprocessed) {
		t.Errorf("Expected ErrSceneNotPreprocessed, got %v", err)
	}
}

func TestRenderPass_Cancelled(t *testing.T) {
	s := createTestScene(t, 32, 32)
	pr := NewProgressiveRaytracer(s, DefaultProgressiveConfig(), zaptest.NewLogger(t).Sugar())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, _, err := pr.RenderPass(ctx, 1); !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}

func TestRenderProgressive_PassesIncreaseSamples(t *testing.T) {
	s := createTestScene(t, 16, 8)
	config := ProgressiveConfig{TileSize: 8, InitialSamples: 1, MaxSamplesPerPixel: 7, MaxPasses: 4, NumWorkers: 2, Seed: 3}
	pr := NewProgressiveRaytracer(s, config, zaptest.NewLogger(t).Sugar())

	passChan, errChan := pr.RenderProgressive(context.Background())

	var results []PassResult
	for result := range passChan {
		results = append(results, result)
	}
	for err := range errChan {
		t.Fatalf("Unexpected error: %v", err)
	}

	if len(results) != 4 {
		t.Fatalf("Expected 4 passes, got %d", len(results))
	}
	expected := []int{1, 3, 5, 7}
	for i, result := range results {
		if result.PassNumber != i+1 {
			t.Errorf("Expected pass %d, got %d", i+1, result.PassNumber)
		}
		if result.Stats.MinSamples != expected[i] || result.Stats.MaxSamplesUsed != expected[i] {
			t.Errorf("Pass %d: expected %d samples per pixel, got %d..%d",
				result.PassNumber, expected[i], result.Stats.MinSamples, result.Stats.MaxSamplesUsed)
		}
		if result.IsLast != (i == len(results)-1) {
			t.Errorf("Pass %d: unexpected IsLast %v", result.PassNumber, result.IsLast)
		}
	}
	if pr.SamplesTaken() != 16*8*7 {
		t.Errorf("Expected %d samples in total, got %d", 16*8*7, pr.SamplesTaken())
	}
}

func TestRenderProgressive_CancelledBeforeStart(t *testing.T) {
	s := createTestScene(t, 8, 8)
	pr := NewProgressiveRaytracer(s, DefaultProgressiveConfig(), zaptest.NewLogger(t).Sugar())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	passChan, errChan := pr.RenderProgressive(ctx)
	for range passChan {
		t.Error("Expected no passes after cancellation")
	}
	if err := <-errChan; !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}
