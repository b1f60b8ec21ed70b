// Package pdf provides samplable probability densities over directions,
// used to importance sample scattering and lights.
package pdf

import (
	"math"

	"github.com/df07/go-lighttransport/pkg/core"
)

// PDF is a density over outgoing directions that can also be sampled
type PDF interface {
	// Value returns the density of the given direction
	Value(direction core.Vec3) float64
	// Generate draws a direction distributed according to the density
	Generate(sampler core.Sampler) core.Vec3
}

// Target is anything that can be importance sampled by solid angle from a point,
// typically a light-emitting shape
type Target interface {
	PDFValue(origin, direction core.Vec3) float64
	Random(origin core.Vec3, sampler core.Sampler) core.Vec3
}

// Cosine is the cosine-weighted hemisphere density about a surface normal
type Cosine struct {
	uvw core.ONB
}

// NewCosine creates a cosine density about w
func NewCosine(w core.Vec3) *Cosine {
	return &Cosine{uvw: core.NewONB(w)}
}

// Value returns cos(θ)/π above the surface. Directions below the surface
// report 1.0 rather than 0 so that mixtures can still renormalize against them.
func (c *Cosine) Value(direction core.Vec3) float64 {
	cosine := direction.Normalize().Dot(c.uvw.W)
	if cosine > 0 {
		return cosine / math.Pi
	}
	return 1.0
}

// Generate draws a cosine-weighted direction in the local frame
func (c *Cosine) Generate(sampler core.Sampler) core.Vec3 {
	return c.uvw.Local(core.RandomCosineDirection(sampler.Get2D()))
}

// Hittable samples directions toward a target shape as seen from origin
type Hittable struct {
	origin core.Vec3
	target Target
}

// NewHittable creates a density toward target from origin
func NewHittable(target Target, origin core.Vec3) *Hittable {
	return &Hittable{origin: origin, target: target}
}

// Value delegates to the target's solid angle density
func (h *Hittable) Value(direction core.Vec3) float64 {
	return h.target.PDFValue(h.origin, direction)
}

// Generate delegates to the target's direction sampler
func (h *Hittable) Generate(sampler core.Sampler) core.Vec3 {
	return h.target.Random(h.origin, sampler)
}

// Mixture is an equal-weight blend of two densities. It references its
// operands and must not outlive the evaluation that created them.
type Mixture struct {
	p, q PDF
}

// NewMixture creates a 50/50 mixture of p and q
func NewMixture(p, q PDF) *Mixture {
	return &Mixture{p: p, q: q}
}

// Value averages the two densities
func (m *Mixture) Value(direction core.Vec3) float64 {
	return 0.5*m.p.Value(direction) + 0.5*m.q.Value(direction)
}

// Generate flips a fair coin to choose which operand to sample
func (m *Mixture) Generate(sampler core.Sampler) core.Vec3 {
	if sampler.GetBool() {
		return m.p.Generate(sampler)
	}
	return m.q.Generate(sampler)
}
