package geometry

import (
	"github.com/df07/go-lighttransport/pkg/core"
	"github.com/df07/go-lighttransport/pkg/material"
)

// Box is an axis-aligned box made up of six rectangles whose normals all face outward
type Box struct {
	Min, Max core.Vec3
	faces    *List
}

// NewBox creates a box spanning the two opposite corners
func NewBox(p0, p1 core.Vec3, mat material.Material) *Box {
	bounds := core.NewAABB(p0, p1)
	lo, hi := bounds.Min, bounds.Max

	faces := NewList(
		NewXYRect(lo.X, hi.X, lo.Y, hi.Y, hi.Z, mat),
		NewFlipNormals(NewXYRect(lo.X, hi.X, lo.Y, hi.Y, lo.Z, mat)),
		NewZXRect(lo.Z, hi.Z, lo.X, hi.X, hi.Y, mat),
		NewFlipNormals(NewZXRect(lo.Z, hi.Z, lo.X, hi.X, lo.Y, mat)),
		NewYZRect(lo.Y, hi.Y, lo.Z, hi.Z, hi.X, mat),
		NewFlipNormals(NewYZRect(lo.Y, hi.Y, lo.Z, hi.Z, lo.X, mat)),
	)

	return &Box{Min: lo, Max: hi, faces: faces}
}

// Hit tests the ray against all six faces
func (b *Box) Hit(ray core.Ray, tMin, tMax float64, sampler core.Sampler) (*material.HitRecord, bool) {
	return b.faces.Hit(ray, tMin, tMax, sampler)
}

// BoundingBox returns the box itself
func (b *Box) BoundingBox(t0, t1 float64) (core.AABB, bool) {
	return core.AABB{Min: b.Min, Max: b.Max}, true
}
