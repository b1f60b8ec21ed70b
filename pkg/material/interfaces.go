// Package material defines how surfaces and volumes scatter and emit light.
package material

import (
	"github.com/df07/go-lighttransport/pkg/core"
	"github.com/df07/go-lighttransport/pkg/pdf"
)

// Material interface for objects that can scatter rays
type Material interface {
	// Scatter returns the scattered ray and its attenuation, or false when the ray is absorbed
	Scatter(rayIn core.Ray, hit *HitRecord, sampler core.Sampler) (ScatterResult, bool)
}

// Emitter is implemented by materials that emit light. Materials that don't emit nothing.
type Emitter interface {
	Emitted(u, v float64, p core.Vec3) core.Color
}

// ImportanceSampled is implemented by materials whose scattering has a density
// that can be mixed with light sampling
type ImportanceSampled interface {
	// ScatteringPDF returns the density of scattering rayIn into scattered
	ScatteringPDF(rayIn core.Ray, hit *HitRecord, scattered core.Ray) float64
}

// ScatterResult contains the result of material scattering
type ScatterResult struct {
	Scattered   core.Ray   // The scattered ray
	Attenuation core.Color // Color attenuation
	PDF         pdf.PDF    // Density the direction was drawn from; nil for specular scattering
}

// IsSpecular returns true if this is specular scattering (no PDF)
func (s ScatterResult) IsSpecular() bool {
	return s.PDF == nil
}

// HitRecord contains information about a ray-object intersection.
// It is only valid for the duration of the hit query that produced it.
type HitRecord struct {
	T        float64   // Parameter t along the ray
	U, V     float64   // Surface coordinates
	Point    core.Vec3 // Point of intersection
	Normal   core.Vec3 // Unit surface normal, oriented by the primitive
	Material Material  // Material of the hit object
}

// Emitted returns the light emitted by m at the hit, or black when m does not emit
func Emitted(m Material, hit *HitRecord) core.Color {
	if emitter, ok := m.(Emitter); ok {
		return emitter.Emitted(hit.U, hit.V, hit.Point)
	}
	return core.Color{}
}
