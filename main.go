package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"github.com/df07/go-lighttransport/pkg/config"
	"github.com/df07/go-lighttransport/pkg/logging"
	"github.com/df07/go-lighttransport/pkg/output"
	"github.com/df07/go-lighttransport/pkg/renderer"
	"github.com/df07/go-lighttransport/pkg/scene"
)

const (
	flagConfig        = "config"
	flagScene         = "scene"
	flagWidth         = "width"
	flagHeight        = "height"
	flagSamples       = "samples"
	flagDepth         = "depth"
	flagLightSampling = "light-sampling"
	flagPasses        = "passes"
	flagTileSize      = "tile-size"
	flagWorkers       = "workers"
	flagSeed          = "seed"
	flagOutput        = "output"
	flagFormat        = "format"
	flagTexture       = "texture"
	flagVerbose       = "verbose"
	flagJSON          = "json"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newApp().RunContext(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		stop()
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "lighttransport",
		Usage: "progressive Monte Carlo path tracer",
		Commands: []*cli.Command{
			{
				Name:   "render",
				Usage:  "render a built-in scene to an image file",
				Flags:  renderFlags(),
				Action: renderAction,
			},
			{
				Name:  "scenes",
				Usage: "list the built-in scenes",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: flagJSON, Usage: "print the list as JSON"},
				},
				Action: scenesAction,
			},
		},
	}
}

func renderFlags() []cli.Flag {
	defaults := config.Default()
	return []cli.Flag{
		&cli.StringFlag{Name: flagConfig, Aliases: []string{"c"}, Usage: "JSON config file; flags override its values"},
		&cli.StringFlag{Name: flagScene, Aliases: []string{"s"}, Value: defaults.Scene, Usage: "scene to render (see the scenes command)"},
		&cli.IntFlag{Name: flagWidth, Usage: "image width (0 keeps the scene's default)"},
		&cli.IntFlag{Name: flagHeight, Usage: "image height (0 follows the scene's aspect ratio)"},
		&cli.IntFlag{Name: flagSamples, Usage: "samples per pixel (0 keeps the scene's default)"},
		&cli.IntFlag{Name: flagDepth, Usage: "maximum bounce depth (0 keeps the scene's default)"},
		&cli.BoolFlag{Name: flagLightSampling, Usage: "mix light importance sampling into diffuse bounces"},
		&cli.IntFlag{Name: flagPasses, Value: defaults.Passes, Usage: "number of progressive passes"},
		&cli.IntFlag{Name: flagTileSize, Value: defaults.TileSize, Usage: "tile edge in pixels"},
		&cli.IntFlag{Name: flagWorkers, Usage: "parallel workers (0 uses every CPU)"},
		&cli.Int64Flag{Name: flagSeed, Value: defaults.Seed, Usage: "seed for sampling and random scene content"},
		&cli.StringFlag{Name: flagOutput, Aliases: []string{"o"}, Value: defaults.Output, Usage: "output image path"},
		&cli.StringFlag{Name: flagFormat, Usage: "png, ppm or jpeg (default: from the output extension)"},
		&cli.StringFlag{Name: flagTexture, Usage: "image texture for scenes that show one"},
		&cli.BoolFlag{Name: flagVerbose, Aliases: []string{"v"}, Usage: "debug logging"},
	}
}

// loadConfig starts from the defaults or the config file, then applies the flags
// given on the command line
func loadConfig(c *cli.Context) (config.RenderConfig, error) {
	cfg := config.Default()
	if path := c.String(flagConfig); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
	}

	if c.IsSet(flagScene) {
		cfg.Scene = c.String(flagScene)
	}
	if c.IsSet(flagWidth) {
		cfg.Width = c.Int(flagWidth)
	}
	if c.IsSet(flagHeight) {
		cfg.Height = c.Int(flagHeight)
	}
	if c.IsSet(flagSamples) {
		cfg.SamplesPerPixel = c.Int(flagSamples)
	}
	if c.IsSet(flagDepth) {
		cfg.MaxDepth = c.Int(flagDepth)
	}
	if c.IsSet(flagLightSampling) {
		lightSampling := c.Bool(flagLightSampling)
		cfg.LightSampling = &lightSampling
	}
	if c.IsSet(flagPasses) {
		cfg.Passes = c.Int(flagPasses)
	}
	if c.IsSet(flagTileSize) {
		cfg.TileSize = c.Int(flagTileSize)
	}
	if c.IsSet(flagWorkers) {
		cfg.Workers = c.Int(flagWorkers)
	}
	if c.IsSet(flagSeed) {
		cfg.Seed = c.Int64(flagSeed)
	}
	if c.IsSet(flagOutput) {
		cfg.Output = c.String(flagOutput)
	}
	if c.IsSet(flagFormat) {
		cfg.Format = c.String(flagFormat)
	}
	if c.IsSet(flagTexture) {
		cfg.ImageTexture = c.String(flagTexture)
	}

	return cfg, errors.Wrap(cfg.Validate(), "invalid configuration")
}

func renderAction(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	format, err := cfg.OutputFormat()
	if err != nil {
		return err
	}

	logger := logging.NewLogger("render", c.Bool(flagVerbose))
	defer func() {
		_ = logger.Sync()
	}()

	s, err := scene.Build(cfg.Scene, cfg.SceneOptions())
	if err != nil {
		return err
	}
	cfg.ApplySampling(s)

	sampling := s.SamplingConfig
	logger.Infof("Rendering %q at %dx%d, %d samples per pixel, depth %d, light sampling %v",
		cfg.Scene, sampling.Width, sampling.Height, sampling.SamplesPerPixel, sampling.MaxDepth, sampling.LightSampling)
	logger.Debugf("Scene has %d primitives, BVH depth %d", s.GetPrimitiveCount(), s.World.Depth())

	pr := renderer.NewProgressiveRaytracer(s, cfg.Progressive(sampling.SamplesPerPixel), logger)

	ctx, cancel := context.WithCancel(c.Context)
	defer cancel()

	startTime := time.Now()
	passChan, errChan := pr.RenderProgressive(ctx)

	// Each finished pass replaces the image on disk with a less noisy one
	written := false
	for result := range passChan {
		if err := output.WriteImage(cfg.Output, result.Image, format); err != nil {
			return err
		}
		written = true
		logger.Debugf("Pass %d written to %s", result.PassNumber, cfg.Output)
	}

	if err := <-errChan; err != nil {
		if written {
			logger.Warnf("Stopped early; %s holds the last finished pass", cfg.Output)
		}
		return errors.Wrap(err, "rendering")
	}

	logger.Infof("Render saved as %s in %v", cfg.Output, time.Since(startTime))
	return nil
}

func scenesAction(c *cli.Context) error {
	scenes := scene.ListScenes()
	if c.Bool(flagJSON) {
		encoder := json.NewEncoder(c.App.Writer)
		encoder.SetIndent("", "  ")
		return encoder.Encode(scenes)
	}
	for _, info := range scenes {
		fmt.Fprintf(c.App.Writer, "%-14s %s\n", info.Name, info.Description)
	}
	return nil
}
