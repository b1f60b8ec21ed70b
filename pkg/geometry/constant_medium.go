package geometry

import (
	"math"

	"github.com/df07/go-lighttransport/pkg/core"
	"github.com/df07/go-lighttransport/pkg/material"
	"github.com/df07/go-lighttransport/pkg/texture"
)

// mediumExitOffset separates the entry hit from the search for the exit hit
const mediumExitOffset = 0.0001

// ConstantMedium is a volume of uniform density bounded by a closed object.
// Rays passing through scatter after an exponentially distributed distance.
type ConstantMedium struct {
	Boundary      Hittable
	Density       float64
	PhaseFunction material.Material
}

// NewConstantMedium fills boundary with a medium of the given density whose albedo is albedo
func NewConstantMedium(boundary Hittable, density float64, albedo texture.Texture) *ConstantMedium {
	return &ConstantMedium{
		Boundary:      boundary,
		Density:       density,
		PhaseFunction: material.NewTexturedIsotropic(albedo),
	}
}

// NewConstantMediumColor fills boundary with a medium of a uniform albedo
func NewConstantMediumColor(boundary Hittable, density float64, albedo core.Color) *ConstantMedium {
	return NewConstantMedium(boundary, density, texture.NewConstantColor(albedo))
}

// Hit reports a scattering event inside the boundary, or nothing if the ray
// passes through. A nil sampler never scatters.
func (m *ConstantMedium) Hit(ray core.Ray, tMin, tMax float64, sampler core.Sampler) (*material.HitRecord, bool) {
	if sampler == nil || m.Density <= 0 {
		return nil, false
	}

	entry, ok := m.Boundary.Hit(ray, math.Inf(-1), math.Inf(1), sampler)
	if !ok {
		return nil, false
	}
	exit, ok := m.Boundary.Hit(ray, entry.T+mediumExitOffset, math.Inf(1), sampler)
	if !ok {
		return nil, false
	}

	t0 := math.Max(entry.T, tMin)
	t1 := math.Min(exit.T, tMax)
	if t0 >= t1 {
		return nil, false
	}
	t0 = math.Max(t0, 0)

	rayLength := ray.Direction.Norm()
	distanceInside := (t1 - t0) * rayLength
	hitDistance := -math.Log(sampler.Get1D()) / m.Density
	if hitDistance > distanceInside {
		return nil, false
	}

	t := t0 + hitDistance/rayLength
	return &material.HitRecord{
		T:        t,
		Point:    ray.At(t),
		Normal:   core.NewVec3(1, 0, 0), // arbitrary
		Material: m.PhaseFunction,
	}, true
}

// BoundingBox returns the boundary's box
func (m *ConstantMedium) BoundingBox(t0, t1 float64) (core.AABB, bool) {
	return m.Boundary.BoundingBox(t0, t1)
}
