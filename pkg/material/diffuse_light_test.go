package material

import (
	"testing"

	"github.com/df07/go-lighttransport/pkg/core"
	"github.com/df07/go-lighttransport/pkg/texture"
)

func TestDiffuseLight_NeverScatters(t *testing.T) {
	tests := []struct {
		name     string
		emission core.Color
	}{
		{"Red emission", core.NewColor(1.0, 0.0, 0.0)},
		{"White emission", core.NewColor(1.0, 1.0, 1.0)},
		{"Zero emission", core.NewColor(0.0, 0.0, 0.0)},
		{"High intensity emission", core.NewColor(10.0, 5.0, 2.0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			light := NewDiffuseLight(tt.emission)

			ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0))
			hit := &HitRecord{
				Point:  core.NewVec3(1, 0, 0),
				Normal: core.NewVec3(-1, 0, 0),
				T:      1.0,
			}
			sampler := core.NewSeededSampler(42)

			if _, scattered := light.Scatter(ray, hit, sampler); scattered {
				t.Error("Light should not scatter rays")
			}
			if got := light.Emitted(0.5, 0.5, hit.Point); got != tt.emission {
				t.Errorf("Expected emission %v, got %v", tt.emission, got)
			}
		})
	}
}

func TestDiffuseLight_TexturedEmission(t *testing.T) {
	img := texture.NewImage(2, 1, []core.Color{core.NewColor(4, 0, 0), core.NewColor(0, 0, 4)})
	light := NewTexturedDiffuseLight(img)

	if got := light.Emitted(0.25, 0.5, core.Vec3{}); got != core.NewColor(4, 0, 0) {
		t.Errorf("Expected left texel, got %v", got)
	}
	if got := light.Emitted(0.75, 0.5, core.Vec3{}); got != core.NewColor(0, 0, 4) {
		t.Errorf("Expected right texel, got %v", got)
	}
}

func TestEmitted_NonEmitter(t *testing.T) {
	hit := &HitRecord{Material: NewLambertian(core.NewColor(1, 1, 1))}
	if got := Emitted(hit.Material, hit); !got.IsBlack() {
		t.Errorf("Non-emitting material should emit black, got %v", got)
	}

	hit.Material = NewDiffuseLight(core.NewColor(7, 7, 7))
	if got := Emitted(hit.Material, hit); got != core.NewColor(7, 7, 7) {
		t.Errorf("Expected (7,7,7), got %v", got)
	}
}

func TestIsotropic_ScattersEverywhere(t *testing.T) {
	albedo := core.NewColor(0.2, 0.4, 0.6)
	iso := NewIsotropic(albedo)
	sampler := core.NewSeededSampler(17)
	hit := &HitRecord{Point: core.NewVec3(1, 1, 1), Normal: core.NewVec3(1, 0, 0)}
	ray := core.NewRayAtTime(core.Vec3{}, core.NewVec3(1, 1, 1), 0.75)

	negative := 0
	for i := 0; i < 500; i++ {
		result, scattered := iso.Scatter(ray, hit, sampler)
		if !scattered {
			t.Fatal("Isotropic should always scatter")
		}
		if result.Attenuation != albedo {
			t.Fatalf("Expected attenuation %v, got %v", albedo, result.Attenuation)
		}
		if !result.IsSpecular() {
			t.Fatal("Isotropic scattering carries no PDF")
		}
		if result.Scattered.Origin != hit.Point || result.Scattered.Time != 0.75 {
			t.Fatalf("Unexpected scattered ray %v", result.Scattered)
		}
		if result.Scattered.Direction.X < 0 {
			negative++
		}
	}
	// Directions are not confined to the normal's hemisphere
	if negative < 150 || negative > 350 {
		t.Errorf("Expected roughly half the directions behind the normal, got %d/500", negative)
	}
}
