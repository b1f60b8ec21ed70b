package geometry

import (
	"math"

	"github.com/df07/go-lighttransport/pkg/core"
	"github.com/df07/go-lighttransport/pkg/material"
	"github.com/df07/go-lighttransport/pkg/pdf"
)

// List is an unordered collection of objects queried as one
type List struct {
	Objects []Hittable
}

// NewList creates a list over the given objects
func NewList(objects ...Hittable) *List {
	return &List{Objects: objects}
}

// Add appends an object to the list
func (l *List) Add(object Hittable) {
	l.Objects = append(l.Objects, object)
}

// Len returns the number of objects in the list
func (l *List) Len() int {
	return len(l.Objects)
}

// Hit returns the closest hit among all members. On exactly equal t the
// first member found wins.
func (l *List) Hit(ray core.Ray, tMin, tMax float64, sampler core.Sampler) (*material.HitRecord, bool) {
	var closest *material.HitRecord
	closestSoFar := tMax

	for _, object := range l.Objects {
		hit, ok := object.Hit(ray, tMin, closestSoFar, sampler)
		if !ok || (closest != nil && hit.T >= closest.T) {
			continue
		}
		closest = hit
		closestSoFar = hit.T
	}

	return closest, closest != nil
}

// BoundingBox returns the envelope of every member's box. An empty list, or any
// member without bounds, has no box.
func (l *List) BoundingBox(t0, t1 float64) (core.AABB, bool) {
	if len(l.Objects) == 0 {
		return core.AABB{}, false
	}

	var box core.AABB
	for i, object := range l.Objects {
		objectBox, ok := object.BoundingBox(t0, t1)
		if !ok {
			return core.AABB{}, false
		}
		if i == 0 {
			box = objectBox
		} else {
			box = core.Surrounding(box, objectBox)
		}
	}
	return box, true
}

// PDFValue averages the members' densities. Members that cannot be importance
// sampled are treated as uniform over the sphere of directions.
func (l *List) PDFValue(origin, direction core.Vec3) float64 {
	if len(l.Objects) == 0 {
		return 0
	}

	weight := 1.0 / float64(len(l.Objects))
	sum := 0.0
	for _, object := range l.Objects {
		if target, ok := object.(pdf.Target); ok {
			sum += weight * target.PDFValue(origin, direction)
		} else {
			sum += weight / (4 * math.Pi)
		}
	}
	return sum
}

// Random samples a direction toward a uniformly chosen member
func (l *List) Random(origin core.Vec3, sampler core.Sampler) core.Vec3 {
	if len(l.Objects) == 0 {
		return core.SampleOnUnitSphere(sampler.Get2D())
	}

	index := int(sampler.Get1D() * float64(len(l.Objects)))
	if index >= len(l.Objects) {
		index = len(l.Objects) - 1
	}

	if target, ok := l.Objects[index].(pdf.Target); ok {
		return target.Random(origin, sampler)
	}
	return core.SampleOnUnitSphere(sampler.Get2D())
}
