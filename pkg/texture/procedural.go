package texture

import (
	"math"
	"math/rand"

	"github.com/df07/go-lighttransport/pkg/core"
)

const perlinPointCount = 256

// Perlin is a gradient noise generator with random unit gradients on a lattice
type Perlin struct {
	gradients [perlinPointCount]core.Vec3
	permX     [perlinPointCount]int
	permY     [perlinPointCount]int
	permZ     [perlinPointCount]int
}

// NewPerlin creates a noise generator whose lattice is drawn from random
func NewPerlin(random *rand.Rand) *Perlin {
	p := &Perlin{}
	for i := range p.gradients {
		p.gradients[i] = core.SampleOnUnitSphere(core.NewVec2(random.Float64(), random.Float64()))
	}
	for _, perm := range []*[perlinPointCount]int{&p.permX, &p.permY, &p.permZ} {
		for i := range perm {
			perm[i] = i
		}
		random.Shuffle(perlinPointCount, func(i, j int) {
			perm[i], perm[j] = perm[j], perm[i]
		})
	}
	return p
}

// Noise returns smooth noise in roughly [-1, 1] at point p
func (p *Perlin) Noise(point core.Vec3) float64 {
	u := point.X - math.Floor(point.X)
	v := point.Y - math.Floor(point.Y)
	w := point.Z - math.Floor(point.Z)
	i := int(math.Floor(point.X))
	j := int(math.Floor(point.Y))
	k := int(math.Floor(point.Z))

	var c [2][2][2]core.Vec3
	for di := 0; di < 2; di++ {
		for dj := 0; dj < 2; dj++ {
			for dk := 0; dk < 2; dk++ {
				c[di][dj][dk] = p.gradients[p.permX[(i+di)&255]^p.permY[(j+dj)&255]^p.permZ[(k+dk)&255]]
			}
		}
	}
	return perlinInterp(c, u, v, w)
}

// Turbulence sums depth octaves of noise with halving weight and doubling frequency
func (p *Perlin) Turbulence(point core.Vec3, depth int) float64 {
	accum := 0.0
	weight := 1.0
	for i := 0; i < depth; i++ {
		accum += weight * p.Noise(point)
		weight *= 0.5
		point = point.Mul(2)
	}
	return math.Abs(accum)
}

// perlinInterp blends the lattice gradients with Hermite-smoothed trilinear weights
func perlinInterp(c [2][2][2]core.Vec3, u, v, w float64) float64 {
	uu := u * u * (3 - 2*u)
	vv := v * v * (3 - 2*v)
	ww := w * w * (3 - 2*w)

	accum := 0.0
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			for k := 0; k < 2; k++ {
				fi, fj, fk := float64(i), float64(j), float64(k)
				weight := core.NewVec3(u-fi, v-fj, w-fk)
				accum += (fi*uu + (1-fi)*(1-uu)) *
					(fj*vv + (1-fj)*(1-vv)) *
					(fk*ww + (1-fk)*(1-ww)) *
					c[i][j][k].Dot(weight)
			}
		}
	}
	return accum
}

// Noise is a marble-like procedural texture driven by Perlin turbulence
type Noise struct {
	Perlin *Perlin
	Scale  float64
	Color  core.Color
}

// NewNoise creates a grey marble texture with the given spatial scale
func NewNoise(scale float64, random *rand.Rand) *Noise {
	return &Noise{Perlin: NewPerlin(random), Scale: scale, Color: core.NewColor(1, 1, 1)}
}

// Value returns the marble pattern: a sine of z phase-shifted by turbulence
func (n *Noise) Value(u, v float64, p core.Vec3) core.Color {
	t := 0.5 * (1 + math.Sin(n.Scale*p.Z+10*n.Perlin.Turbulence(p, 7)))
	return n.Color.Scale(t)
}

// NewCheckerboardImage creates a checkerboard pattern image texture
func NewCheckerboardImage(width, height, checkSize int, color1, color2 core.Color) *Image {
	pixels := make([]core.Color, width*height)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if (x/checkSize+y/checkSize)%2 == 0 {
				pixels[y*width+x] = color1
			} else {
				pixels[y*width+x] = color2
			}
		}
	}

	return NewImage(width, height, pixels)
}

// NewUVDebugImage creates a texture showing UV coordinates as colors
// U maps to red channel, V maps to green channel
func NewUVDebugImage(width, height int) *Image {
	pixels := make([]core.Color, width*height)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			u := float64(x) / float64(width-1)
			v := float64(height-1-y) / float64(height-1)
			pixels[y*width+x] = core.NewColor(u, v, 0.0)
		}
	}

	return NewImage(width, height, pixels)
}
