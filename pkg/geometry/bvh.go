package geometry

import (
	"sort"

	"github.com/pkg/errors"

	"github.com/df07/go-lighttransport/pkg/core"
	"github.com/df07/go-lighttransport/pkg/material"
)

// BVHNode is an internal node of the hierarchy. Each child is either another
// node or a single object.
type BVHNode struct {
	Box   core.AABB
	Left  Hittable
	Right Hittable
}

// BVH represents a Bounding Volume Hierarchy for fast ray-object intersection
type BVH struct {
	Root  Hittable
	box   core.AABB
	count int
}

// bvhEntry pairs an object with its box so boxes are computed once during construction
type bvhEntry struct {
	object Hittable
	box    core.AABB
}

// NewBVH builds a hierarchy over objects whose boxes cover the time interval [t0, t1].
// Every object must have a bounding box.
func NewBVH(objects []Hittable, t0, t1 float64) (*BVH, error) {
	if len(objects) == 0 {
		return nil, ErrEmptyBVH
	}

	// Work on a copy so the caller's slice order is untouched
	entries := make([]bvhEntry, len(objects))
	for i, object := range objects {
		box, ok := object.BoundingBox(t0, t1)
		if !ok {
			return nil, errors.Wrapf(ErrNoBoundingBox, "object %d (%T)", i, object)
		}
		entries[i] = bvhEntry{object: object, box: box}
	}

	root, box := buildBVH(entries)
	return &BVH{Root: root, box: box, count: len(objects)}, nil
}

// buildBVH sorts the entries by box centroid along the longest axis of their
// centroid spread and splits at the median, so the tree is balanced and each leaf
// is a single object
func buildBVH(entries []bvhEntry) (Hittable, core.AABB) {
	if len(entries) == 1 {
		return entries[0].object, entries[0].box
	}

	centroids := make([]core.Vec3, len(entries))
	for i, entry := range entries {
		centroids[i] = entry.box.Center()
	}
	axis := core.NewAABBFromPoints(centroids...).LongestAxis()

	sort.SliceStable(entries, func(i, j int) bool {
		return core.Component(entries[i].box.Center(), axis) < core.Component(entries[j].box.Center(), axis)
	})

	mid := len(entries) / 2
	left, leftBox := buildBVH(entries[:mid])
	right, rightBox := buildBVH(entries[mid:])

	box := core.Surrounding(leftBox, rightBox)
	return &BVHNode{Box: box, Left: left, Right: right}, box
}

// Hit tests if a ray intersects any object in the hierarchy
func (bvh *BVH) Hit(ray core.Ray, tMin, tMax float64, sampler core.Sampler) (*material.HitRecord, bool) {
	return bvh.Root.Hit(ray, tMin, tMax, sampler)
}

// BoundingBox returns the box of the root node
func (bvh *BVH) BoundingBox(t0, t1 float64) (core.AABB, bool) {
	return bvh.box, true
}

// Len returns the number of objects in the hierarchy
func (bvh *BVH) Len() int {
	return bvh.count
}

// Depth returns the number of levels in the tree; a single object has depth 1
func (bvh *BVH) Depth() int {
	return nodeDepth(bvh.Root)
}

func nodeDepth(object Hittable) int {
	node, ok := object.(*BVHNode)
	if !ok {
		return 1
	}
	return 1 + max(nodeDepth(node.Left), nodeDepth(node.Right))
}

// Hit prunes on the node box, then returns the closer of the two children's hits
func (n *BVHNode) Hit(ray core.Ray, tMin, tMax float64, sampler core.Sampler) (*material.HitRecord, bool) {
	if !n.Box.Hit(ray, tMin, tMax) {
		return nil, false
	}

	leftHit, hitLeft := n.Left.Hit(ray, tMin, tMax, sampler)
	if hitLeft {
		tMax = leftHit.T
	}

	rightHit, hitRight := n.Right.Hit(ray, tMin, tMax, sampler)
	if hitRight && (!hitLeft || rightHit.T < leftHit.T) {
		return rightHit, true
	}
	return leftHit, hitLeft
}

// BoundingBox returns the precomputed box covering both children
func (n *BVHNode) BoundingBox(t0, t1 float64) (core.AABB, bool) {
	return n.Box, true
}
