package scene

import (
	"sort"

	"github.com/pkg/errors"
)

// ErrUnknownScene is returned when a scene name is not registered
var ErrUnknownScene = errors.New("unknown scene")

// Builder constructs a scene. The result has not been preprocessed.
type Builder func(opts Options) (*Scene, error)

// SceneInfo describes a registered scene
type SceneInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type registration struct {
	info  SceneInfo
	build Builder
}

var registry = map[string]registration{}

func register(name, description string, build Builder) {
	registry[name] = registration{info: SceneInfo{Name: name, Description: description}, build: build}
}

func init() {
	register("cornell", "Cornell box with two rotated blocks", NewCornellScene)
	register("cornell-smoke", "Cornell box with blocks of smoke and fog", NewCornellSmokeScene)
	register("cornell-glass", "Cornell box with a glass sphere sampled as a light", NewCornellGlassScene)
	register("spheres", "Random spheres with motion blur and depth of field", NewSpheresScene)
	register("perlin", "Marble noise textures under area lights", NewPerlinScene)
	register("final", "Blocks, volumes, textures and transformed instances", NewFinalScene)
}

// ListScenes returns the registered scenes sorted by name
func ListScenes() []SceneInfo {
	scenes := make([]SceneInfo, 0, len(registry))
	for _, r := range registry {
		scenes = append(scenes, r.info)
	}
	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].Name < scenes[j].Name
	})
	return scenes
}

// Build constructs the named scene and prepares it for rendering
func Build(name string, opts Options) (*Scene, error) {
	r, ok := registry[name]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownScene, "%q", name)
	}

	s, err := r.build(opts)
	if err != nil {
		return nil, errors.Wrapf(err, "building scene %q", name)
	}
	if err := s.Preprocess(); err != nil {
		return nil, errors.Wrapf(err, "preparing scene %q", name)
	}
	return s, nil
}
