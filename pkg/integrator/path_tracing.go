package integrator

import (
	"math"

	"github.com/df07/go-lighttransport/pkg/core"
	"github.com/df07/go-lighttransport/pkg/material"
	"github.com/df07/go-lighttransport/pkg/pdf"
	"github.com/df07/go-lighttransport/pkg/scene"
)

// rayEpsilon keeps a scattered ray from hitting the surface it left
const rayEpsilon = 0.001

// PathTracingIntegrator implements unidirectional path tracing
type PathTracingIntegrator struct {
	config scene.SamplingConfig
}

// NewPathTracingIntegrator creates a new path tracing integrator
func NewPathTracingIntegrator(config scene.SamplingConfig) *PathTracingIntegrator {
	return &PathTracingIntegrator{
		config: config,
	}
}

// RayColor computes the radiance along a ray. Samples that come out NaN or
// infinite are dropped to black.
func (pt *PathTracingIntegrator) RayColor(ray core.Ray, scene *scene.Scene, sampler core.Sampler) core.Color {
	return pt.rayColor(ray, scene, sampler, 0).Sanitize()
}

// rayColor terminates on a miss, on absorption, or once depth reaches MaxDepth;
// in the last case the surface still contributes its emission
func (pt *PathTracingIntegrator) rayColor(ray core.Ray, scene *scene.Scene, sampler core.Sampler, depth int) core.Color {
	hit, isHit := scene.World.Hit(ray, rayEpsilon, math.Inf(1), sampler)
	if !isHit {
		return scene.BackgroundColor(ray)
	}

	emitted := material.Emitted(hit.Material, hit)
	if depth >= pt.config.MaxDepth {
		return emitted
	}

	scatter, didScatter := hit.Material.Scatter(ray, hit, sampler)
	if !didScatter {
		return emitted
	}

	if scatter.IsSpecular() {
		return emitted.Add(pt.calculateSpecularColor(scatter, scene, sampler, depth))
	}
	return emitted.Add(pt.calculateDiffuseColor(ray, scatter, hit, scene, sampler, depth))
}

// calculateSpecularColor follows the single scattered ray
func (pt *PathTracingIntegrator) calculateSpecularColor(scatter material.ScatterResult, scene *scene.Scene, sampler core.Sampler, depth int) core.Color {
	return scatter.Attenuation.Mul(pt.rayColor(scatter.Scattered, scene, sampler, depth+1))
}

// calculateDiffuseColor samples the next direction from an even mixture of the
// material's density and a density toward the scene's lights, then weights the
// incoming light by scattering density over sampling density
func (pt *PathTracingIntegrator) calculateDiffuseColor(ray core.Ray, scatter material.ScatterResult, hit *material.HitRecord, scene *scene.Scene, sampler core.Sampler, depth int) core.Color {
	importance, ok := hit.Material.(material.ImportanceSampled)
	lights := scene.LightTarget()
	if !ok || lights == nil || !pt.config.LightSampling {
		// Scattered ray was drawn from the material's own density, which cancels
		return pt.calculateSpecularColor(scatter, scene, sampler, depth)
	}

	mixture := pdf.NewMixture(pdf.NewHittable(lights, hit.Point), scatter.PDF)
	scattered := core.NewRayAtTime(hit.Point, mixture.Generate(sampler), ray.Time)

	pdfValue := mixture.Value(scattered.Direction)
	if pdfValue <= 0 {
		return core.Color{}
	}
	scatteringPDF := importance.ScatteringPDF(ray, hit, scattered)
	if scatteringPDF <= 0 {
		return core.Color{}
	}

	incoming := pt.rayColor(scattered, scene, sampler, depth+1)
	return scatter.Attenuation.Mul(incoming).Scale(scatteringPDF / pdfValue)
}
