package scene

import (
	"github.com/df07/go-lighttransport/pkg/core"
	"github.com/df07/go-lighttransport/pkg/geometry"
	"github.com/df07/go-lighttransport/pkg/material"
)

// Cornell box dimensions (standard 555x555x555 units)
const boxSize = 555.0

func cornellCamera(width, height int) *Camera {
	return NewCamera(CameraConfig{
		LookFrom:    core.NewVec3(278, 278, -800), // Position camera outside the box looking in
		LookAt:      core.NewVec3(278, 278, 0),
		Up:          core.NewVec3(0, 1, 0),
		VFov:        40.0,
		AspectRatio: float64(width) / float64(height),
		Time0:       0,
		Time1:       1,
	})
}

// addCornellWalls adds the five walls. Walls whose natural normal faces out of
// the box are flipped so every wall faces the interior.
func addCornellWalls(s *Scene) {
	white := material.NewLambertian(core.NewColor(0.73, 0.73, 0.73))
	red := material.NewLambertian(core.NewColor(0.65, 0.05, 0.05))
	green := material.NewLambertian(core.NewColor(0.12, 0.45, 0.15))

	s.Add(
		geometry.NewFlipNormals(geometry.NewYZRect(0, boxSize, 0, boxSize, boxSize, green)), // right
		geometry.NewYZRect(0, boxSize, 0, boxSize, 0, red),                                   // left
		geometry.NewFlipNormals(geometry.NewZXRect(0, boxSize, 0, boxSize, boxSize, white)), // ceiling
		geometry.NewZXRect(0, boxSize, 0, boxSize, 0, white),                                 // floor
		geometry.NewFlipNormals(geometry.NewXYRect(0, boxSize, 0, boxSize, boxSize, white)), // back
	)
}

// cornellBoxes returns the short and tall blocks, rotated and placed
func cornellBoxes(mat material.Material) (geometry.Hittable, geometry.Hittable) {
	short := geometry.NewTranslate(
		geometry.NewRotateY(geometry.NewBox(core.NewVec3(0, 0, 0), core.NewVec3(165, 165, 165), mat), -18),
		core.NewVec3(130, 0, 65),
	)
	tall := geometry.NewTranslate(
		geometry.NewRotateY(geometry.NewBox(core.NewVec3(0, 0, 0), core.NewVec3(165, 330, 165), mat), 15),
		core.NewVec3(265, 0, 295),
	)
	return short, tall
}

func cornellScene(opts Options, samples int) *Scene {
	width, height := opts.size(400, 1.0)
	return &Scene{
		Camera: cornellCamera(width, height),
		SamplingConfig: SamplingConfig{
			Width:           width,
			Height:          height,
			SamplesPerPixel: samples,
			MaxDepth:        50,
			LightSampling:   true,
		},
	}
}

// NewCornellScene creates the classic Cornell box with two rotated blocks and a ceiling light
func NewCornellScene(opts Options) (*Scene, error) {
	s := cornellScene(opts, 200)
	addCornellWalls(s)

	// Ceiling light faces down into the box
	light := material.NewDiffuseLight(core.NewColor(15, 15, 15))
	s.AddLight(geometry.NewFlipNormals(geometry.NewZXRect(227, 332, 213, 343, boxSize-1, light)))

	short, tall := cornellBoxes(material.NewLambertian(core.NewColor(0.73, 0.73, 0.73)))
	s.Add(short, tall)
	return s, nil
}

// NewCornellSmokeScene fills the two blocks with smoke and fog under a larger, dimmer light
func NewCornellSmokeScene(opts Options) (*Scene, error) {
	s := cornellScene(opts, 200)
	addCornellWalls(s)

	light := material.NewDiffuseLight(core.NewColor(7, 7, 7))
	s.AddLight(geometry.NewFlipNormals(geometry.NewZXRect(127, 432, 113, 443, boxSize-1, light)))

	short, tall := cornellBoxes(material.NewLambertian(core.NewColor(0.73, 0.73, 0.73)))
	s.Add(
		geometry.NewConstantMediumColor(short, 0.01, core.NewColor(1, 1, 1)),
		geometry.NewConstantMediumColor(tall, 0.01, core.NewColor(0, 0, 0)),
	)
	return s, nil
}

// NewCornellGlassScene replaces the short block with a glass sphere and samples
// both the light and the sphere directly
func NewCornellGlassScene(opts Options) (*Scene, error) {
	s := cornellScene(opts, 100)
	addCornellWalls(s)

	light := material.NewDiffuseLight(core.NewColor(15, 15, 15))
	s.AddLight(geometry.NewFlipNormals(geometry.NewZXRect(227, 332, 213, 343, boxSize-1, light)))

	aluminum := material.NewMetal(core.NewColor(0.8, 0.85, 0.88), 0.0)
	_, tall := cornellBoxes(aluminum)
	s.Add(tall)

	s.AddLight(geometry.NewSphere(core.NewVec3(190, 90, 190), 90, material.NewDielectric(1.5)))
	return s, nil
}
