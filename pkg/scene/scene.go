// Package scene assembles objects, lights, a camera and sampling settings
// into something the integrator can render.
package scene

import (
	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"github.com/df07/go-lighttransport/pkg/core"
	"github.com/df07/go-lighttransport/pkg/geometry"
	"github.com/df07/go-lighttransport/pkg/pdf"
)

// Scene contains all the elements needed for rendering
type Scene struct {
	Camera         *Camera
	Objects        []geometry.Hittable // Objects in the scene
	Lights         []geometry.Light    // Importance sampling targets; each must also appear in Objects
	Background     Background          // Radiance for rays that escape; nil is black
	SamplingConfig SamplingConfig

	World       *geometry.BVH  // Acceleration structure built by Preprocess
	lightTarget *geometry.List // Lights gathered for sampling
}

// SamplingConfig contains rendering configuration
type SamplingConfig struct {
	Width           int  // Image width
	Height          int  // Image height
	SamplesPerPixel int  // Number of rays per pixel
	MaxDepth        int  // Maximum ray bounce depth
	LightSampling   bool // Mix light importance sampling into diffuse bounces
}

// Add appends objects to the scene
func (s *Scene) Add(objects ...geometry.Hittable) {
	s.Objects = append(s.Objects, objects...)
}

// AddLight adds an object that is both rendered and importance sampled
func (s *Scene) AddLight(light geometry.Light) {
	s.Objects = append(s.Objects, light)
	s.Lights = append(s.Lights, light)
}

// Validate reports every problem that would prevent the scene from rendering
func (s *Scene) Validate() error {
	var err error
	if s.Camera == nil {
		err = multierr.Append(err, errors.New("scene has no camera"))
	}
	if len(s.Objects) == 0 {
		err = multierr.Append(err, errors.New("scene has no objects"))
	}
	if s.SamplingConfig.Width <= 0 || s.SamplingConfig.Height <= 0 {
		err = multierr.Append(err, errors.Errorf("invalid image size %dx%d", s.SamplingConfig.Width, s.SamplingConfig.Height))
	}
	if s.SamplingConfig.SamplesPerPixel <= 0 {
		err = multierr.Append(err, errors.Errorf("samples per pixel must be positive, got %d", s.SamplingConfig.SamplesPerPixel))
	}
	if s.SamplingConfig.MaxDepth < 0 {
		err = multierr.Append(err, errors.Errorf("max depth must not be negative, got %d", s.SamplingConfig.MaxDepth))
	}
	return err
}

// Preprocess validates the scene and builds the acceleration structure. It must
// complete before rendering starts; the scene is read-only afterwards.
func (s *Scene) Preprocess() error {
	if err := s.Validate(); err != nil {
		return errors.Wrap(err, "invalid scene")
	}

	t0, t1 := s.Camera.ShutterInterval()
	world, err := geometry.NewBVH(s.Objects, t0, t1)
	if err != nil {
		return errors.Wrap(err, "building scene BVH")
	}
	s.World = world

	s.lightTarget = nil
	if len(s.Lights) > 0 {
		s.lightTarget = geometry.NewList()
		for _, light := range s.Lights {
			s.lightTarget.Add(light)
		}
	}
	return nil
}

// LightTarget returns the lights as a single sampling target, or nil when the scene has none
func (s *Scene) LightTarget() pdf.Target {
	if s.lightTarget == nil {
		return nil
	}
	return s.lightTarget
}

// BackgroundColor returns the radiance seen along a ray that hits nothing
func (s *Scene) BackgroundColor(ray core.Ray) core.Color {
	if s.Background == nil {
		return core.Color{}
	}
	return s.Background.Color(ray)
}

// GetPrimitiveCount returns the number of top-level objects in the scene, counting
// the members of nested hierarchies and lists
func (s *Scene) GetPrimitiveCount() int {
	count := 0
	for _, object := range s.Objects {
		count += countPrimitives(object)
	}
	return count
}

func countPrimitives(object geometry.Hittable) int {
	switch obj := object.(type) {
	case *geometry.BVH:
		return obj.Len()
	case *geometry.List:
		count := 0
		for _, member := range obj.Objects {
			count += countPrimitives(member)
		}
		return count
	case *geometry.Translate:
		return countPrimitives(obj.Object)
	case *geometry.Rotate:
		return countPrimitives(obj.Object)
	case *geometry.FlipNormals:
		return countPrimitives(obj.Object)
	default:
		return 1
	}
}
