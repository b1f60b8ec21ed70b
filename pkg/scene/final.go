package scene

import (
	"math/rand"

	"github.com/pkg/errors"

	"github.com/df07/go-lighttransport/pkg/core"
	"github.com/df07/go-lighttransport/pkg/geometry"
	"github.com/df07/go-lighttransport/pkg/loaders"
	"github.com/df07/go-lighttransport/pkg/material"
	"github.com/df07/go-lighttransport/pkg/texture"
)

// NewFinalScene creates the showcase scene: a field of ground blocks, a moving
// sphere, glass, metal, subsurface and fog volumes, an image-textured globe,
// a marble sphere and a rotated cluster of small spheres
func NewFinalScene(opts Options) (*Scene, error) {
	width, height := opts.size(400, 1.0)
	random := rand.New(rand.NewSource(opts.Seed))

	s := &Scene{
		Camera: NewCamera(CameraConfig{
			LookFrom:    core.NewVec3(478, 278, -600),
			LookAt:      core.NewVec3(278, 278, 0),
			Up:          core.NewVec3(0, 1, 0),
			VFov:        40.0,
			AspectRatio: float64(width) / float64(height),
			Time0:       0,
			Time1:       1,
		}),
		SamplingConfig: SamplingConfig{
			Width:           width,
			Height:          height,
			SamplesPerPixel: 200,
			MaxDepth:        50,
			LightSampling:   true,
		},
	}

	// Ground: 20x20 blocks of random height in their own hierarchy
	ground := material.NewLambertian(core.NewColor(0.48, 0.83, 0.53))
	blocks := make([]geometry.Hittable, 0, 400)
	const blocksPerSide = 20
	for i := 0; i < blocksPerSide; i++ {
		for j := 0; j < blocksPerSide; j++ {
			const w = 100.0
			x0 := -1000.0 + float64(i)*w
			z0 := -1000.0 + float64(j)*w
			y1 := 1 + 100*random.Float64()
			blocks = append(blocks, geometry.NewBox(core.NewVec3(x0, 0, z0), core.NewVec3(x0+w, y1, z0+w), ground))
		}
	}
	groundBVH, err := geometry.NewBVH(blocks, 0, 1)
	if err != nil {
		return nil, errors.Wrap(err, "building ground blocks")
	}
	s.Add(groundBVH)

	light := material.NewDiffuseLight(core.NewColor(7, 7, 7))
	s.AddLight(geometry.NewFlipNormals(geometry.NewZXRect(123, 423, 147, 412, 554, light)))

	center := core.NewVec3(400, 400, 200)
	s.Add(geometry.NewMovingSphere(center, center.Add(core.NewVec3(30, 0, 0)), 0, 1, 50,
		material.NewLambertian(core.NewColor(0.7, 0.3, 0.1))))

	s.Add(
		geometry.NewSphere(core.NewVec3(260, 150, 45), 50, material.NewDielectric(1.5)),
		geometry.NewSphere(core.NewVec3(0, 150, 145), 50, material.NewMetal(core.NewColor(0.8, 0.8, 0.9), 1.0)),
	)

	// Glass shell around a blue subsurface volume
	boundary := geometry.NewSphere(core.NewVec3(360, 150, 145), 70, material.NewDielectric(1.5))
	s.Add(boundary, geometry.NewConstantMediumColor(boundary, 0.2, core.NewColor(0.2, 0.4, 0.9)))

	// Thin fog over everything
	fog := geometry.NewSphere(core.NewVec3(0, 0, 0), 5000, material.NewDielectric(1.5))
	s.Add(geometry.NewConstantMediumColor(fog, 0.0001, core.NewColor(1, 1, 1)))

	globe, err := globeTexture(opts.ImagePath)
	if err != nil {
		return nil, err
	}
	s.Add(geometry.NewSphere(core.NewVec3(400, 200, 400), 100, material.NewTexturedLambertian(globe)))

	s.Add(geometry.NewSphere(core.NewVec3(220, 280, 300), 80,
		material.NewTexturedLambertian(texture.NewNoise(0.1, random))))

	white := material.NewLambertian(core.NewColor(0.73, 0.73, 0.73))
	cluster := make([]geometry.Hittable, 0, 1000)
	for i := 0; i < 1000; i++ {
		p := core.NewVec3(165*random.Float64(), 165*random.Float64(), 165*random.Float64())
		cluster = append(cluster, geometry.NewSphere(p, 10, white))
	}
	clusterBVH, err := geometry.NewBVH(cluster, 0, 1)
	if err != nil {
		return nil, errors.Wrap(err, "building sphere cluster")
	}
	s.Add(geometry.NewTranslate(geometry.NewRotateY(clusterBVH, 15), core.NewVec3(-100, 270, 395)))

	return s, nil
}

// globeTexture loads the image at path, or falls back to a UV grid when no path is given
func globeTexture(path string) (texture.Texture, error) {
	if path == "" {
		return texture.NewUVDebugImage(256, 128), nil
	}
	img, err := loaders.LoadImageTexture(path)
	if err != nil {
		return nil, err
	}
	return img.WithFilter(texture.Bilinear), nil
}
