// Package geometry holds the intersectable shapes, their transforms and the
// acceleration structures built over them.
package geometry

import (
	"github.com/pkg/errors"

	"github.com/df07/go-lighttransport/pkg/core"
	"github.com/df07/go-lighttransport/pkg/material"
	"github.com/df07/go-lighttransport/pkg/pdf"
)

// Hittable is anything a ray can be tested against
type Hittable interface {
	// Hit returns the closest intersection with t in [tMin, tMax].
	// sampler is only consulted by volumes; surfaces accept nil.
	Hit(ray core.Ray, tMin, tMax float64, sampler core.Sampler) (*material.HitRecord, bool)
	// BoundingBox returns the box enclosing the object over the time interval [t0, t1],
	// or false when the object has no finite bounds
	BoundingBox(t0, t1 float64) (core.AABB, bool)
}

// Light is a hittable that can also be importance sampled from a point
type Light interface {
	Hittable
	pdf.Target
}

var (
	// ErrEmptyBVH is returned when a hierarchy is built from no objects
	ErrEmptyBVH = errors.New("cannot build BVH from an empty object list")
	// ErrNoBoundingBox is returned when an object without finite bounds is put in a hierarchy
	ErrNoBoundingBox = errors.New("object has no bounding box")
)

// shadowEpsilon is the offset used when re-casting rays from a shading point to a target
const shadowEpsilon = 0.001
