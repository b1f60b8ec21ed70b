package scene

import (
	"math/rand"

	"github.com/df07/go-lighttransport/pkg/core"
	"github.com/df07/go-lighttransport/pkg/geometry"
	"github.com/df07/go-lighttransport/pkg/material"
	"github.com/df07/go-lighttransport/pkg/texture"
)

// NewSpheresScene creates a field of small random spheres on a checkered ground,
// with the diffuse ones bouncing during the shutter interval
func NewSpheresScene(opts Options) (*Scene, error) {
	width, height := opts.size(400, 16.0/9.0)
	random := rand.New(rand.NewSource(opts.Seed))

	s := &Scene{
		Camera: NewCamera(CameraConfig{
			LookFrom:      core.NewVec3(13, 2, 3),
			LookAt:        core.NewVec3(0, 0, 0),
			Up:            core.NewVec3(0, 1, 0),
			VFov:          20.0,
			AspectRatio:   float64(width) / float64(height),
			Aperture:      0.1,
			FocusDistance: 10.0,
			Time0:         0,
			Time1:         1,
		}),
		Background: NewGradientBackground(core.NewColor(0.5, 0.7, 1.0), core.NewColor(1.0, 1.0, 1.0)),
		SamplingConfig: SamplingConfig{
			Width:           width,
			Height:          height,
			SamplesPerPixel: 100,
			MaxDepth:        50,
		},
	}

	checker := texture.NewChecker(
		texture.NewConstant(0.2, 0.3, 0.1),
		texture.NewConstant(0.9, 0.9, 0.9),
	)
	s.Add(geometry.NewSphere(core.NewVec3(0, -1000, 0), 1000, material.NewTexturedLambertian(checker)))

	for a := -11; a < 11; a++ {
		for b := -11; b < 11; b++ {
			chooseMaterial := random.Float64()
			center := core.NewVec3(float64(a)+0.9*random.Float64(), 0.2, float64(b)+0.9*random.Float64())
			if center.Sub(core.NewVec3(4, 0.2, 0)).Norm() <= 0.9 {
				continue
			}

			switch {
			case chooseMaterial < 0.8:
				// Diffuse, moving upward while the shutter is open
				albedo := core.NewColor(
					random.Float64()*random.Float64(),
					random.Float64()*random.Float64(),
					random.Float64()*random.Float64(),
				)
				end := center.Add(core.NewVec3(0, 0.5*random.Float64(), 0))
				s.Add(geometry.NewMovingSphere(center, end, 0, 1, 0.2, material.NewLambertian(albedo)))
			case chooseMaterial < 0.95:
				albedo := core.NewColor(
					0.5*(1+random.Float64()),
					0.5*(1+random.Float64()),
					0.5*(1+random.Float64()),
				)
				s.Add(geometry.NewSphere(center, 0.2, material.NewMetal(albedo, 0.5*random.Float64())))
			default:
				s.Add(geometry.NewSphere(center, 0.2, material.NewDielectric(1.5)))
			}
		}
	}

	s.Add(
		geometry.NewSphere(core.NewVec3(0, 1, 0), 1.0, material.NewDielectric(1.5)),
		geometry.NewSphere(core.NewVec3(-4, 1, 0), 1.0, material.NewLambertian(core.NewColor(0.4, 0.2, 0.1))),
		geometry.NewSphere(core.NewVec3(4, 1, 0), 1.0, material.NewMetal(core.NewColor(0.7, 0.6, 0.5), 0.0)),
	)
	return s, nil
}

// NewPerlinScene shows marble noise on a sphere and a ground plane, lit by
// a rectangle and a sphere light against a black sky
func NewPerlinScene(opts Options) (*Scene, error) {
	width, height := opts.size(400, 16.0/9.0)
	random := rand.New(rand.NewSource(opts.Seed))

	s := &Scene{
		Camera: NewCamera(CameraConfig{
			LookFrom:    core.NewVec3(26, 3, 6),
			LookAt:      core.NewVec3(0, 2, 0),
			Up:          core.NewVec3(0, 1, 0),
			VFov:        20.0,
			AspectRatio: float64(width) / float64(height),
		}),
		SamplingConfig: SamplingConfig{
			Width:           width,
			Height:          height,
			SamplesPerPixel: 200,
			MaxDepth:        50,
			LightSampling:   true,
		},
	}

	marble := material.NewTexturedLambertian(texture.NewNoise(4, random))
	s.Add(
		geometry.NewSphere(core.NewVec3(0, -1000, 0), 1000, marble),
		geometry.NewSphere(core.NewVec3(0, 2, 0), 2, marble),
	)

	light := material.NewDiffuseLight(core.NewColor(4, 4, 4))
	s.AddLight(geometry.NewXYRect(3, 5, 1, 3, -2, light))
	s.AddLight(geometry.NewSphere(core.NewVec3(0, 7, 0), 2, light))
	return s, nil
}
