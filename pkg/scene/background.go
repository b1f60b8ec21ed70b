package scene

import "github.com/df07/go-lighttransport/pkg/core"

// Background gives the radiance arriving along rays that leave the scene
type Background interface {
	Color(ray core.Ray) core.Color
}

// ConstantBackground is the same radiance in every direction
type ConstantBackground struct {
	Emission core.Color
}

// NewConstantBackground creates a uniform background
func NewConstantBackground(emission core.Color) *ConstantBackground {
	return &ConstantBackground{Emission: emission}
}

// Color returns the constant emission
func (b *ConstantBackground) Color(ray core.Ray) core.Color {
	return b.Emission
}

// GradientBackground blends from Bottom to Top with the height of the ray direction
type GradientBackground struct {
	Top    core.Color
	Bottom core.Color
}

// NewGradientBackground creates a sky-style gradient background
func NewGradientBackground(top, bottom core.Color) *GradientBackground {
	return &GradientBackground{Top: top, Bottom: bottom}
}

// Color returns the gradient for the ray's direction
func (b *GradientBackground) Color(ray core.Ray) core.Color {
	// Map the y-component from [-1,1] to [0,1]
	unitDirection := ray.Direction.Normalize()
	t := 0.5 * (unitDirection.Y + 1.0)
	return b.Bottom.Scale(1.0 - t).Add(b.Top.Scale(t))
}
