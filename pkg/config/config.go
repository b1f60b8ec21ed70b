// Package config holds the settings for a render and reads them from JSON files.
package config

import (
	"encoding/json"
	"os"

	"github.com/go-viper/mapstructure/v2"
	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"github.com/df07/go-lighttransport/pkg/output"
	"github.com/df07/go-lighttransport/pkg/renderer"
	"github.com/df07/go-lighttransport/pkg/scene"
)

// RenderConfig describes one render. Zero sizes, sample counts and depth keep
// the chosen scene's defaults.
type RenderConfig struct {
	Scene           string `json:"scene"`
	Width           int    `json:"width"`
	Height          int    `json:"height"`
	SamplesPerPixel int    `json:"samples_per_pixel"`
	MaxDepth        int    `json:"max_depth"`
	LightSampling   *bool  `json:"light_sampling,omitempty"`
	Passes          int    `json:"passes"`
	TileSize        int    `json:"tile_size"`
	Workers         int    `json:"workers"`
	Seed            int64  `json:"seed"`
	Output          string `json:"output"`
	Format          string `json:"format"`
	ImageTexture    string `json:"image_texture"`
}

// Default returns the settings used when nothing else is given
func Default() RenderConfig {
	return RenderConfig{
		Scene:    "cornell",
		Passes:   renderer.DefaultProgressiveConfig().MaxPasses,
		TileSize: renderer.DefaultProgressiveConfig().TileSize,
		Seed:     42,
		Output:   "output/render.png",
	}
}

// Load reads a JSON config file over the defaults. Values may be given as
// strings ("400" for a width); unknown keys are an error.
func Load(path string) (RenderConfig, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, errors.Wrap(err, "reading config")
	}

	var raw map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return cfg, errors.Wrapf(err, "parsing config %s", path)
	}
	if err := Decode(raw, &cfg); err != nil {
		return cfg, errors.Wrapf(err, "decoding config %s", path)
	}
	return cfg, nil
}

// Decode applies the values in raw to cfg, leaving fields raw does not name untouched
func Decode(raw map[string]interface{}, cfg *RenderConfig) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		Result:           cfg,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
	})
	if err != nil {
		return err
	}
	return decoder.Decode(raw)
}

// Validate reports every invalid field at once
func (c RenderConfig) Validate() error {
	var err error
	if c.Scene == "" {
		err = multierr.Append(err, errors.New("scene is required"))
	} else if !sceneRegistered(c.Scene) {
		err = multierr.Append(err, errors.Wrapf(scene.ErrUnknownScene, "%q", c.Scene))
	}
	if c.Width < 0 || c.Height < 0 {
		err = multierr.Append(err, errors.Errorf("image size must not be negative, got %dx%d", c.Width, c.Height))
	}
	if c.SamplesPerPixel < 0 {
		err = multierr.Append(err, errors.Errorf("samples per pixel must not be negative, got %d", c.SamplesPerPixel))
	}
	if c.MaxDepth < 0 {
		err = multierr.Append(err, errors.Errorf("max depth must not be negative, got %d", c.MaxDepth))
	}
	if c.Passes < 1 {
		err = multierr.Append(err, errors.Errorf("passes must be at least 1, got %d", c.Passes))
	}
	if c.TileSize < 1 {
		err = multierr.Append(err, errors.Errorf("tile size must be at least 1, got %d", c.TileSize))
	}
	if c.Workers < 0 {
		err = multierr.Append(err, errors.Errorf("workers must not be negative, got %d", c.Workers))
	}
	if c.Output == "" {
		err = multierr.Append(err, errors.New("output path is required"))
	} else if _, formatErr := c.OutputFormat(); formatErr != nil {
		err = multierr.Append(err, formatErr)
	}
	return err
}

// OutputFormat returns the explicit format, or the one implied by the output path
func (c RenderConfig) OutputFormat() (output.Format, error) {
	if c.Format != "" {
		return output.ParseFormat(c.Format)
	}
	return output.FormatFromPath(c.Output)
}

// SceneOptions returns the options for building the configured scene
func (c RenderConfig) SceneOptions() scene.Options {
	return scene.Options{
		Width:     c.Width,
		Height:    c.Height,
		Seed:      c.Seed,
		ImagePath: c.ImageTexture,
	}
}

// ApplySampling overrides a built scene's sampling settings with any the config sets
func (c RenderConfig) ApplySampling(s *scene.Scene) {
	if c.SamplesPerPixel > 0 {
		s.SamplingConfig.SamplesPerPixel = c.SamplesPerPixel
	}
	if c.MaxDepth > 0 {
		s.SamplingConfig.MaxDepth = c.MaxDepth
	}
	if c.LightSampling != nil {
		s.SamplingConfig.LightSampling = *c.LightSampling
	}
}

// Progressive returns the renderer settings for a scene with the given samples per pixel
func (c RenderConfig) Progressive(samplesPerPixel int) renderer.ProgressiveConfig {
	config := renderer.DefaultProgressiveConfig()
	config.MaxSamplesPerPixel = samplesPerPixel
	config.MaxPasses = c.Passes
	config.TileSize = c.TileSize
	config.NumWorkers = c.Workers
	config.Seed = c.Seed
	return config
}

func sceneRegistered(name string) bool {
	for _, info := range scene.ListScenes() {
		if info.Name == name {
			return true
		}
	}
	return false
}
