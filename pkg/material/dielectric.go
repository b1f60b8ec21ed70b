package material

import (
	"math"

	"github.com/df07/go-lighttransport/pkg/core"
)

// Dielectric represents a transparent material like glass that can both reflect and refract
type Dielectric struct {
	RefractiveIndex float64 // Index of refraction (e.g., 1.5 for glass)
}

// NewDielectric creates a new dielectric material
func NewDielectric(refractiveIndex float64) *Dielectric {
	return &Dielectric{RefractiveIndex: refractiveIndex}
}

// Scatter reflects or refracts; a dielectric never absorbs
func (d *Dielectric) Scatter(rayIn core.Ray, hit *HitRecord, sampler core.Sampler) (ScatterResult, bool) {
	// Dielectrics always attenuate by 1.0 (no color absorption for clear glass)
	attenuation := core.NewColor(1.0, 1.0, 1.0)

	// Index 1 has no interface: the ray continues exactly as it came
	if d.RefractiveIndex == 1.0 {
		return ScatterResult{
			Scattered:   core.NewRayAtTime(hit.Point, rayIn.Direction, rayIn.Time),
			Attenuation: attenuation,
		}, true
	}

	unitDirection := rayIn.Direction.Normalize()

	// The primitive's normal may face either way; orient it against the ray
	normal := hit.Normal
	refractionRatio := 1.0 / d.RefractiveIndex // entering the material (from air to glass)
	if unitDirection.Dot(normal) > 0 {
		normal = normal.Mul(-1)
		refractionRatio = d.RefractiveIndex // exiting the material (from glass to air)
	}

	cosTheta := math.Min(-unitDirection.Dot(normal), 1.0)

	var direction core.Vec3
	refracted, canRefract := core.Refract(unitDirection, normal, refractionRatio)
	if !canRefract || Reflectance(cosTheta, refractionRatio) > sampler.Get1D() {
		direction = core.Reflect(unitDirection, normal)
	} else {
		direction = refracted
	}

	return ScatterResult{
		Scattered:   core.NewRayAtTime(hit.Point, direction, rayIn.Time),
		Attenuation: attenuation,
	}, true
}

// Reflectance calculates the Fresnel reflectance using Schlick's approximation
func Reflectance(cosine, refractionRatio float64) float64 {
	r0 := (1 - refractionRatio) / (1 + refractionRatio)
	r0 = r0 * r0
	return r0 + (1-r0)*math.Pow(1-cosine, 5)
}
