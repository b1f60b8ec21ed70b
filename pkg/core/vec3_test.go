package core

import (
	"math"
	"testing"
)

func TestReflect(t *testing.T) {
	tests := []struct {
		name     string
		v        Vec3
		n        Vec3
		expected Vec3
	}{
		{"straight down", NewVec3(0, -1, 0), NewVec3(0, 1, 0), NewVec3(0, 1, 0)},
		{"45 degrees", NewVec3(1, -1, 0), NewVec3(0, 1, 0), NewVec3(1, 1, 0)},
		{"grazing", NewVec3(1, 0, 0), NewVec3(0, 1, 0), NewVec3(1, 0, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Reflect(tt.v, tt.n)
			if got != tt.expected {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestRefract_TotalInternalReflection(t *testing.T) {
	// Leaving glass at a grazing angle cannot refract
	uv := NewVec3(1, -0.1, 0).Normalize()
	n := NewVec3(0, 1, 0)
	if _, ok := Refract(uv, n, 1.5); ok {
		t.Error("Expected total internal reflection")
	}
}

func TestRefract_UnitRatioKeepsDirection(t *testing.T) {
	uv := NewVec3(0.3, -0.8, 0.2).Normalize()
	n := NewVec3(0, 1, 0)
	refracted, ok := Refract(uv, n, 1.0)
	if !ok {
		t.Fatal("Expected refraction with ratio 1")
	}
	if refracted.Sub(uv).Norm() > 1e-12 {
		t.Errorf("Expected %v, got %v", uv, refracted)
	}
}

func TestColor_Operations(t *testing.T) {
	a := NewColor(0.5, 1, 2)
	b := NewColor(2, 0.5, 0.25)

	if got := a.Mul(b); got != NewColor(1, 0.5, 0.5) {
		t.Errorf("Mul: got %v", got)
	}
	if got := a.Add(b); got != NewColor(2.5, 1.5, 2.25) {
		t.Errorf("Add: got %v", got)
	}
	if got := a.Scale(2); got != NewColor(1, 2, 4) {
		t.Errorf("Scale: got %v", got)
	}
	if !(Color{}).IsBlack() || a.IsBlack() {
		t.Error("IsBlack mismatch")
	}
}

func TestColor_Sanitize(t *testing.T) {
	c := NewColor(math.NaN(), math.Inf(1), 3).Sanitize()
	if c != NewColor(0, 0, 3) {
		t.Errorf("Expected NaN and Inf replaced with zero, got %v", c)
	}
}

func TestRay_At(t *testing.T) {
	ray := NewRayAtTime(NewVec3(1, 2, 3), NewVec3(0, 0, 2), 0.5)
	if got := ray.At(1.5); got != NewVec3(1, 2, 6) {
		t.Errorf("Expected (1,2,6), got %v", got)
	}
	if ray.Time != 0.5 {
		t.Errorf("Expected time 0.5, got %f", ray.Time)
	}
}
