package renderer

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// WorkerPool renders tiles in parallel with a bounded number of goroutines
type WorkerPool struct {
	numWorkers int
}

// NewWorkerPool creates a worker pool with the specified number of workers
func NewWorkerPool(numWorkers int) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	return &WorkerPool{numWorkers: numWorkers}
}

// GetNumWorkers returns the number of workers in the pool
func (wp *WorkerPool) GetNumWorkers() int {
	return wp.numWorkers
}

// Run calls render once for every tile and waits for all of them. The first
// error cancels the context passed to the remaining tiles and is returned.
// Tiles must not overlap: each render call owns the pixels inside its tile.
func (wp *WorkerPool) Run(ctx context.Context, tiles []*Tile, render func(ctx context.Context, tile *Tile) error) error {
	g, groupCtx := errgroup.WithContext(ctx)
	g.SetLimit(wp.numWorkers)

	for _, tile := range tiles {
		if groupCtx.Err() != nil {
			break
		}
		tile := tile
		g.Go(func() error {
			return render(groupCtx, tile)
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	// Cancellation may land after the last tile was scheduled but before it ran
	return ctx.Err()
}
