package pdf

import (
	"math"
	"testing"

	"github.com/montanaflynn/stats"

	"github.com/df07/go-lighttransport/pkg/core"
)

// uniformSphere is a target whose density is uniform over all directions
type uniformSphere struct{}

func (uniformSphere) PDFValue(origin, direction core.Vec3) float64 {
	return 1 / (4 * math.Pi)
}

func (uniformSphere) Random(origin core.Vec3, sampler core.Sampler) core.Vec3 {
	return core.SampleOnUnitSphere(sampler.Get2D())
}

func mean(t *testing.T, data []float64) float64 {
	t.Helper()
	m, err := stats.Mean(data)
	if err != nil {
		t.Fatalf("stats.Mean: %v", err)
	}
	return m
}

func TestCosine_EstimatorConverges(t *testing.T) {
	const n = 100000
	w := core.NewVec3(0.3, 0.5, -0.8)
	cosine := NewCosine(w)
	sampler := core.NewSeededSampler(42)
	unitW := w.Normalize()

	ratios := make([]float64, 0, n)
	cosines := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		d := cosine.Generate(sampler)
		c := d.Normalize().Dot(unitW)
		if c < 0 {
			t.Fatalf("Sample %v below hemisphere", d)
		}
		// cos(θ)/density estimates ∫cos dω = π over the hemisphere
		ratios = append(ratios, c/(math.Pi*cosine.Value(d)))
		cosines = append(cosines, c)
	}

	if got := mean(t, ratios); math.Abs(got-1) > 0.01 {
		t.Errorf("Expected normalized estimator to converge to 1, got %f", got)
	}
	// Under cosine sampling E[cos θ] = 2/3
	if got := mean(t, cosines); math.Abs(got-2.0/3.0) > 0.01 {
		t.Errorf("Expected mean cosine 2/3, got %f", got)
	}
}

func TestCosine_IntegratesToOne(t *testing.T) {
	// Uniform hemisphere sampling: E[p(d) * 2π] = ∫ p dω
	const n = 100000
	cosine := NewCosine(core.NewVec3(0, 0, 1))
	sampler := core.NewSeededSampler(7)

	values := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		d := core.SampleOnUnitSphere(sampler.Get2D())
		if d.Z < 0 {
			d.Z = -d.Z
		}
		values = append(values, cosine.Value(d)*2*math.Pi)
	}

	if got := mean(t, values); math.Abs(got-1) > 0.01 {
		t.Errorf("Expected density to integrate to 1, got %f", got)
	}
}

func TestCosine_BelowSurfaceSentinel(t *testing.T) {
	cosine := NewCosine(core.NewVec3(0, 1, 0))
	if got := cosine.Value(core.NewVec3(0, -1, 0)); got != 1.0 {
		t.Errorf("Expected sentinel density 1.0 below the surface, got %f", got)
	}
	if got := cosine.Value(core.NewVec3(0, 2, 0)); math.Abs(got-1/math.Pi) > 1e-12 {
		t.Errorf("Expected 1/π along the normal, got %f", got)
	}
}

func TestHittable_Delegates(t *testing.T) {
	h := NewHittable(uniformSphere{}, core.NewVec3(1, 2, 3))
	if got := h.Value(core.NewVec3(0, 0, 1)); got != 1/(4*math.Pi) {
		t.Errorf("Expected target density, got %f", got)
	}
	d := h.Generate(core.NewSeededSampler(1))
	if math.Abs(d.Norm()-1) > 1e-9 {
		t.Errorf("Expected unit direction from target, got %v", d)
	}
}

func TestMixture_ValueIsExactAverage(t *testing.T) {
	p := NewCosine(core.NewVec3(0, 0, 1))
	q := NewHittable(uniformSphere{}, core.Vec3{})
	m := NewMixture(p, q)

	sampler := core.NewSeededSampler(3)
	for i := 0; i < 1000; i++ {
		d := core.SampleOnUnitSphere(sampler.Get2D())
		expected := 0.5*p.Value(d) + 0.5*q.Value(d)
		if got := m.Value(d); got != expected {
			t.Fatalf("Direction %v: expected %v, got %v", d, expected, got)
		}
	}
}

func TestMixture_SampleHistogram(t *testing.T) {
	// Histogram cos θ of mixture samples against the mixed distribution:
	// cosine part has density 2z on [0,1], uniform part 1/2 on [-1,1]
	const n = 200000
	const bins = 8
	m := NewMixture(NewCosine(core.NewVec3(0, 0, 1)), NewHittable(uniformSphere{}, core.Vec3{}))
	sampler := core.NewSeededSampler(11)

	var counts [bins]float64
	for i := 0; i < n; i++ {
		z := m.Generate(sampler).Normalize().Z
		bin := int((z + 1) / 2 * bins)
		if bin == bins {
			bin--
		}
		counts[bin]++
	}

	for b := 0; b < bins; b++ {
		lo := -1 + 2*float64(b)/bins
		hi := lo + 2.0/bins
		expected := 0.25 * (hi - lo)
		if lo >= 0 {
			expected += 0.5 * (hi*hi - lo*lo)
		}
		got := counts[b] / n
		if math.Abs(got-expected) > 0.01 {
			t.Errorf("Bin [%.2f,%.2f): expected fraction %.4f, got %.4f", lo, hi, expected, got)
		}
	}
}
