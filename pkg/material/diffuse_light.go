package material

import (
	"github.com/df07/go-lighttransport/pkg/core"
	"github.com/df07/go-lighttransport/pkg/texture"
)

// DiffuseLight represents a light-emitting material
type DiffuseLight struct {
	Emit texture.Texture // Emitted radiance, possibly varying over the surface
}

// NewDiffuseLight creates a new light with a uniform emission
func NewDiffuseLight(emission core.Color) *DiffuseLight {
	return &DiffuseLight{Emit: texture.NewConstantColor(emission)}
}

// NewTexturedDiffuseLight creates a new light whose emission is given by a texture
func NewTexturedDiffuseLight(emit texture.Texture) *DiffuseLight {
	return &DiffuseLight{Emit: emit}
}

// Scatter implements the Material interface for lights.
// Lights don't scatter rays, they only emit.
func (d *DiffuseLight) Scatter(rayIn core.Ray, hit *HitRecord, sampler core.Sampler) (ScatterResult, bool) {
	return ScatterResult{}, false
}

// Emitted returns the emitted radiance at the given surface point
func (d *DiffuseLight) Emitted(u, v float64, p core.Vec3) core.Color {
	return d.Emit.Value(u, v, p)
}
