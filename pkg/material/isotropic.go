package material

import (
	"github.com/df07/go-lighttransport/pkg/core"
	"github.com/df07/go-lighttransport/pkg/texture"
)

// Isotropic is the phase function of a participating medium: it scatters
// uniformly in every direction from the hit point
type Isotropic struct {
	Albedo texture.Texture
}

// NewIsotropic creates a new isotropic phase function with a uniform albedo
func NewIsotropic(albedo core.Color) *Isotropic {
	return &Isotropic{Albedo: texture.NewConstantColor(albedo)}
}

// NewTexturedIsotropic creates a new isotropic phase function from a texture
func NewTexturedIsotropic(albedo texture.Texture) *Isotropic {
	return &Isotropic{Albedo: albedo}
}

// Scatter picks a random direction; the result is treated as specular
func (i *Isotropic) Scatter(rayIn core.Ray, hit *HitRecord, sampler core.Sampler) (ScatterResult, bool) {
	direction := core.SamplePointInUnitSphere(sampler.Get3D())
	return ScatterResult{
		Scattered:   core.NewRayAtTime(hit.Point, direction, rayIn.Time),
		Attenuation: i.Albedo.Value(hit.U, hit.V, hit.Point),
	}, true
}
