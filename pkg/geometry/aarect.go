package geometry

import (
	"math"

	"github.com/df07/go-lighttransport/pkg/core"
	"github.com/df07/go-lighttransport/pkg/material"
)

// Plane names the pair of axes an axis-aligned rectangle spans
type Plane int

const (
	PlaneXY Plane = iota // spans X and Y, normal +Z
	PlaneYZ              // spans Y and Z, normal +X
	PlaneZX              // spans Z and X, normal +Y
)

// axes returns the two spanned axes and the constant axis of the plane
func (p Plane) axes() (a, b, k int) {
	switch p {
	case PlaneYZ:
		return 1, 2, 0
	case PlaneZX:
		return 2, 0, 1
	default:
		return 0, 1, 2
	}
}

// String returns the plane name
func (p Plane) String() string {
	switch p {
	case PlaneXY:
		return "xy"
	case PlaneYZ:
		return "yz"
	case PlaneZX:
		return "zx"
	}
	return "unknown"
}

// rectPadding keeps the bounding box of a flat rectangle from having zero thickness
const rectPadding = 0.0001

// AARect is a rectangle lying in an axis-aligned plane at K on the constant axis,
// covering [A0,A1]x[B0,B1] on the two spanned axes
type AARect struct {
	Plane    Plane
	A0, A1   float64
	B0, B1   float64
	K        float64
	Material material.Material
}

// NewXYRect creates a rectangle in the plane z = k
func NewXYRect(x0, x1, y0, y1, k float64, mat material.Material) *AARect {
	return &AARect{Plane: PlaneXY, A0: x0, A1: x1, B0: y0, B1: y1, K: k, Material: mat}
}

// NewYZRect creates a rectangle in the plane x = k
func NewYZRect(y0, y1, z0, z1, k float64, mat material.Material) *AARect {
	return &AARect{Plane: PlaneYZ, A0: y0, A1: y1, B0: z0, B1: z1, K: k, Material: mat}
}

// NewZXRect creates a rectangle in the plane y = k
func NewZXRect(z0, z1, x0, x1, k float64, mat material.Material) *AARect {
	return &AARect{Plane: PlaneZX, A0: z0, A1: z1, B0: x0, B1: x1, K: k, Material: mat}
}

// Normal returns the rectangle's fixed unit normal, pointing along the positive constant axis
func (r *AARect) Normal() core.Vec3 {
	_, _, k := r.Plane.axes()
	return r.compose(0, 0, 1, k)
}

// Area returns the rectangle's area
func (r *AARect) Area() float64 {
	return (r.A1 - r.A0) * (r.B1 - r.B0)
}

// Hit intersects the ray with the plane and checks the rectangle bounds
func (r *AARect) Hit(ray core.Ray, tMin, tMax float64, sampler core.Sampler) (*material.HitRecord, bool) {
	a, b, k := r.Plane.axes()

	dk := core.Component(ray.Direction, k)
	if dk == 0 {
		return nil, false
	}
	t := (r.K - core.Component(ray.Origin, k)) / dk
	if t < tMin || t > tMax {
		return nil, false
	}

	pa := core.Component(ray.Origin, a) + t*core.Component(ray.Direction, a)
	pb := core.Component(ray.Origin, b) + t*core.Component(ray.Direction, b)
	if pa < r.A0 || pa > r.A1 || pb < r.B0 || pb > r.B1 {
		return nil, false
	}

	return &material.HitRecord{
		T:        t,
		U:        (pa - r.A0) / (r.A1 - r.A0),
		V:        (pb - r.B0) / (r.B1 - r.B0),
		Point:    ray.At(t),
		Normal:   r.Normal(),
		Material: r.Material,
	}, true
}

// BoundingBox returns the rectangle's box, padded along the constant axis
func (r *AARect) BoundingBox(t0, t1 float64) (core.AABB, bool) {
	_, _, k := r.Plane.axes()
	return core.NewAABB(
		r.compose(r.A0, r.B0, r.K-rectPadding, k),
		r.compose(r.A1, r.B1, r.K+rectPadding, k),
	), true
}

// PDFValue converts the uniform area density of the rectangle to solid angle as seen from origin
func (r *AARect) PDFValue(origin, direction core.Vec3) float64 {
	hit, ok := r.Hit(core.NewRay(origin, direction), shadowEpsilon, math.Inf(1), nil)
	if !ok {
		return 0
	}

	length := direction.Norm()
	distanceSquared := hit.T * hit.T * length * length
	cosine := math.Abs(direction.Dot(hit.Normal) / length)
	if cosine == 0 {
		return 0
	}
	return distanceSquared / (cosine * r.Area())
}

// Random returns the direction from origin to a uniformly chosen point on the rectangle
func (r *AARect) Random(origin core.Vec3, sampler core.Sampler) core.Vec3 {
	_, _, k := r.Plane.axes()
	sample := sampler.Get2D()
	point := r.compose(
		r.A0+sample.X*(r.A1-r.A0),
		r.B0+sample.Y*(r.B1-r.B0),
		r.K,
		k,
	)
	return point.Sub(origin)
}

// compose builds a world vector from coordinates on the spanned axes and the constant axis k
func (r *AARect) compose(a, b, kv float64, k int) core.Vec3 {
	switch k {
	case 0: // YZ: a=y, b=z
		return core.NewVec3(kv, a, b)
	case 1: // ZX: a=z, b=x
		return core.NewVec3(b, kv, a)
	default: // XY
		return core.NewVec3(a, b, kv)
	}
}
