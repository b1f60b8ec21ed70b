// Package texture maps surface coordinates and hit positions to colors.
package texture

import (
	"math"

	"github.com/df07/go-lighttransport/pkg/core"
)

// Texture provides spatially-varying colors for materials
type Texture interface {
	// Value returns the color at surface coordinates (u, v) and world position p.
	// UV is used for image textures, the position for procedural textures.
	Value(u, v float64, p core.Vec3) core.Color
}

// Constant provides a uniform color
type Constant struct {
	Color core.Color
}

// NewConstant creates a new constant texture
func NewConstant(r, g, b float64) *Constant {
	return &Constant{Color: core.NewColor(r, g, b)}
}

// NewConstantColor creates a constant texture from an existing color
func NewConstantColor(color core.Color) *Constant {
	return &Constant{Color: color}
}

// Value returns the solid color regardless of UV or position
func (c *Constant) Value(u, v float64, p core.Vec3) core.Color {
	return c.Color
}

// Checker alternates between two textures in a 3D checker pattern
type Checker struct {
	Odd   Texture
	Even  Texture
	Scale float64 // Spatial frequency of the checks
}

// NewChecker creates a checker texture with the classic frequency of 10
func NewChecker(odd, even Texture) *Checker {
	return &Checker{Odd: odd, Even: even, Scale: 10}
}

// Value picks Odd or Even from the sign of a product of sines of the position
func (c *Checker) Value(u, v float64, p core.Vec3) core.Color {
	sines := math.Sin(c.Scale*p.X) * math.Sin(c.Scale*p.Y) * math.Sin(c.Scale*p.Z)
	if sines < 0 {
		return c.Odd.Value(u, v, p)
	}
	return c.Even.Value(u, v, p)
}
