package metrics

import (
	"math"
	"testing"

	"scflab/internal/scf"
)

func observeSeries(m Metric, residuals []float64) {
	for i, r := range residuals {
		m.Observe(scf.Iteration{N: i + 1, ResidualNorm: r})
	}
}

func TestRateGeometricSequence(t *testing.T) {
	m := NewRate()
	observeSeries(m, []float64{1.0, 0.5, 0.25, 0.125})

	if math.Abs(m.Value()-0.5) > 1e-12 {
		t.Errorf("expected rate 0.5, got %g", m.Value())
	}
}

func TestRateBeforeData(t *testing.T) {
	m := NewRate()
	if m.Value() != 1.0 {
		t.Errorf("expected neutral rate 1.0, got %g", m.Value())
	}
	m.Observe(scf.Iteration{N: 1, ResidualNorm: 0.7})
	if m.Value() != 1.0 {
		t.Errorf("one sample is not a ratio, got %g", m.Value())
	}
}

func TestRateReset(t *testing.T) {
	m := NewRate()
	observeSeries(m, []float64{1.0, 0.1})
	m.Reset()
	if m.Value() != 1.0 {
		t.Errorf("expected 1.0 after reset, got %g", m.Value())
	}
}

func TestStability(t *testing.T) {
	m := NewStability(1e6)

	m.Observe(scf.Iteration{N: 1, Rho: scf.Density{0.5, 0.2}})
	m.Observe(scf.Iteration{N: 2, Rho: scf.Density{2e6, 0.2}})
	m.Observe(scf.Iteration{N: 3, Rho: scf.Density{math.NaN(), 0.2}})
	m.Observe(scf.Iteration{N: 4, Rho: scf.Density{0.1, 0.1}})

	if math.Abs(m.Value()-0.5) > 1e-12 {
		t.Errorf("expected 0.5, got %g", m.Value())
	}

	m.Reset()
	if m.Value() != 1.0 {
		t.Errorf("expected 1.0 after reset, got %g", m.Value())
	}
}

func TestReduction(t *testing.T) {
	m := NewReduction()
	observeSeries(m, []float64{1.0, 0.1, 1e-4})

	if math.Abs(m.Value()-4.0) > 1e-12 {
		t.Errorf("expected 4 orders of magnitude, got %g", m.Value())
	}

	m.Reset()
	observeSeries(m, []float64{1e-3, 1e-1})
	if math.Abs(m.Value()+2.0) > 1e-12 {
		t.Errorf("worsening solve should be negative, got %g", m.Value())
	}
}

func TestReductionBeforeData(t *testing.T) {
	m := NewReduction()
	if m.Value() != 0 {
		t.Errorf("expected 0 before data, got %g", m.Value())
	}
}

func TestMonotonicity(t *testing.T) {
	m := NewMonotonicity()
	observeSeries(m, []float64{1.0, 0.5, 0.8, 0.4, 0.2})

	// Three of four transitions decrease.
	if math.Abs(m.Value()-0.75) > 1e-12 {
		t.Errorf("expected 0.75, got %g", m.Value())
	}

	m.Reset()
	observeSeries(m, []float64{1.0, 2.0, 4.0})
	if m.Value() != 0 {
		t.Errorf("diverging series should score 0, got %g", m.Value())
	}
}
