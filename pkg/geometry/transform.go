package geometry

import (
	"math"

	"github.com/df07/go-lighttransport/pkg/core"
	"github.com/df07/go-lighttransport/pkg/material"
	"github.com/df07/go-lighttransport/pkg/pdf"
)

// Translate moves the wrapped object by Offset
type Translate struct {
	Object Hittable
	Offset core.Vec3
}

// NewTranslate wraps object so that it appears moved by offset
func NewTranslate(object Hittable, offset core.Vec3) *Translate {
	return &Translate{Object: object, Offset: offset}
}

// Hit moves the ray into object space and the hit point back out
func (tr *Translate) Hit(ray core.Ray, tMin, tMax float64, sampler core.Sampler) (*material.HitRecord, bool) {
	moved := core.NewRayAtTime(ray.Origin.Sub(tr.Offset), ray.Direction, ray.Time)
	hit, ok := tr.Object.Hit(moved, tMin, tMax, sampler)
	if !ok {
		return nil, false
	}
	hit.Point = hit.Point.Add(tr.Offset)
	return hit, true
}

// BoundingBox returns the wrapped object's box shifted by Offset
func (tr *Translate) BoundingBox(t0, t1 float64) (core.AABB, bool) {
	box, ok := tr.Object.BoundingBox(t0, t1)
	if !ok {
		return core.AABB{}, false
	}
	return core.AABB{Min: box.Min.Add(tr.Offset), Max: box.Max.Add(tr.Offset)}, true
}

// PDFValue delegates to the wrapped object in its own space
func (tr *Translate) PDFValue(origin, direction core.Vec3) float64 {
	if target, ok := tr.Object.(pdf.Target); ok {
		return target.PDFValue(origin.Sub(tr.Offset), direction)
	}
	return 0
}

// Random delegates to the wrapped object in its own space
func (tr *Translate) Random(origin core.Vec3, sampler core.Sampler) core.Vec3 {
	if target, ok := tr.Object.(pdf.Target); ok {
		return target.Random(origin.Sub(tr.Offset), sampler)
	}
	return core.SampleOnUnitSphere(sampler.Get2D())
}

// Axis selects the rotation axis of a Rotate
type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

// Rotate turns the wrapped object about one coordinate axis through the origin
type Rotate struct {
	Object   Hittable
	Axis     Axis
	Degrees  float64
	sinTheta float64
	cosTheta float64
}

// NewRotate wraps object rotated counterclockwise by degrees about axis
func NewRotate(object Hittable, axis Axis, degrees float64) *Rotate {
	radians := degrees * math.Pi / 180
	return &Rotate{
		Object:   object,
		Axis:     axis,
		Degrees:  degrees,
		sinTheta: math.Sin(radians),
		cosTheta: math.Cos(radians),
	}
}

// NewRotateY is shorthand for a rotation about the Y axis
func NewRotateY(object Hittable, degrees float64) *Rotate {
	return NewRotate(object, AxisY, degrees)
}

// rotate applies the rotation with the given sine to v; the axis component is unchanged
func (r *Rotate) rotate(v core.Vec3, sinTheta float64) core.Vec3 {
	c := r.cosTheta
	switch r.Axis {
	case AxisX:
		return core.NewVec3(v.X, c*v.Y-sinTheta*v.Z, sinTheta*v.Y+c*v.Z)
	case AxisY:
		return core.NewVec3(c*v.X+sinTheta*v.Z, v.Y, -sinTheta*v.X+c*v.Z)
	default:
		return core.NewVec3(c*v.X-sinTheta*v.Y, sinTheta*v.X+c*v.Y, v.Z)
	}
}

func (r *Rotate) toObject(v core.Vec3) core.Vec3 { return r.rotate(v, -r.sinTheta) }
func (r *Rotate) toWorld(v core.Vec3) core.Vec3  { return r.rotate(v, r.sinTheta) }

// Hit rotates the ray into object space and the hit point and normal back out
func (r *Rotate) Hit(ray core.Ray, tMin, tMax float64, sampler core.Sampler) (*material.HitRecord, bool) {
	rotated := core.NewRayAtTime(r.toObject(ray.Origin), r.toObject(ray.Direction), ray.Time)
	hit, ok := r.Object.Hit(rotated, tMin, tMax, sampler)
	if !ok {
		return nil, false
	}
	hit.Point = r.toWorld(hit.Point)
	hit.Normal = r.toWorld(hit.Normal)
	return hit, true
}

// BoundingBox bounds the eight rotated corners of the wrapped object's box
func (r *Rotate) BoundingBox(t0, t1 float64) (core.AABB, bool) {
	box, ok := r.Object.BoundingBox(t0, t1)
	if !ok {
		return core.AABB{}, false
	}

	corners := box.Corners()
	for i := range corners {
		corners[i] = r.toWorld(corners[i])
	}
	return core.NewAABBFromPoints(corners[:]...), true
}

// PDFValue evaluates the wrapped object's density with origin and direction in object space
func (r *Rotate) PDFValue(origin, direction core.Vec3) float64 {
	if target, ok := r.Object.(pdf.Target); ok {
		return target.PDFValue(r.toObject(origin), r.toObject(direction))
	}
	return 0
}

// Random samples the wrapped object in object space and turns the direction back out
func (r *Rotate) Random(origin core.Vec3, sampler core.Sampler) core.Vec3 {
	if target, ok := r.Object.(pdf.Target); ok {
		return r.toWorld(target.Random(r.toObject(origin), sampler))
	}
	return core.SampleOnUnitSphere(sampler.Get2D())
}

// FlipNormals reverses the normal reported by the wrapped object
type FlipNormals struct {
	Object Hittable
}

// NewFlipNormals wraps object so its normals point the other way
func NewFlipNormals(object Hittable) *FlipNormals {
	return &FlipNormals{Object: object}
}

// Hit negates the wrapped object's normal
func (f *FlipNormals) Hit(ray core.Ray, tMin, tMax float64, sampler core.Sampler) (*material.HitRecord, bool) {
	hit, ok := f.Object.Hit(ray, tMin, tMax, sampler)
	if !ok {
		return nil, false
	}
	hit.Normal = hit.Normal.Mul(-1)
	return hit, true
}

// BoundingBox returns the wrapped object's box
func (f *FlipNormals) BoundingBox(t0, t1 float64) (core.AABB, bool) {
	return f.Object.BoundingBox(t0, t1)
}

// PDFValue delegates to the wrapped object
func (f *FlipNormals) PDFValue(origin, direction core.Vec3) float64 {
	if target, ok := f.Object.(pdf.Target); ok {
		return target.PDFValue(origin, direction)
	}
	return 0
}

// Random delegates to the wrapped object
func (f *FlipNormals) Random(origin core.Vec3, sampler core.Sampler) core.Vec3 {
	if target, ok := f.Object.(pdf.Target); ok {
		return target.Random(origin, sampler)
	}
	return core.SampleOnUnitSphere(sampler.Get2D())
}
