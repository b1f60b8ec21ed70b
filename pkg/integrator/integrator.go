// Package integrator estimates the radiance arriving along a ray.
package integrator

import (
	"github.com/df07/go-lighttransport/pkg/core"
	"github.com/df07/go-lighttransport/pkg/scene"
)

// Integrator defines the interface for light transport algorithms
type Integrator interface {
	// RayColor returns one radiance estimate for the ray. The scene must have been preprocessed.
	RayColor(ray core.Ray, scene *scene.Scene, sampler core.Sampler) core.Color
}
