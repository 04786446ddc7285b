package store

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"scflab/internal/lab"
	"scflab/internal/scf"
)

func testRun() (lab.Config, *lab.RunResult) {
	cfg := lab.Config{
		Model:   "silicon",
		Solver:  "damped",
		Mixer:   "simple",
		Alpha:   0.6,
		Tol:     1e-6,
		MaxIter: 200,
	}
	res := &lab.RunResult{
		Result: &scf.Result{
			Fixpoint:     scf.Density{0.5, 0.2},
			Converged:    true,
			Status:       scf.Converged,
			Iterations:   42,
			ResidualNorm: 3.2e-7,
			Residuals:    []float64{0.5, 0.1, 3.2e-7},
		},
		Metrics: map[string]float64{"rate": 0.58},
		Elapsed: 5 * time.Millisecond,
	}
	return cfg, res
}

func TestSaveAndLoad(t *testing.T) {
	s := New(t.TempDir())
	if err := s.Init(); err != nil {
		t.Fatal(err)
	}

	cfg, res := testRun()
	runID, err := s.Save(cfg, res)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if !strings.HasPrefix(runID, "silicon_") {
		t.Errorf("unexpected run id %q", runID)
	}

	meta, err := s.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if meta.Solver != "damped" || meta.Alpha != 0.6 {
		t.Errorf("metadata mismatch: %+v", meta)
	}
	if !meta.Converged || meta.Iterations != 42 {
		t.Errorf("outcome mismatch: %+v", meta)
	}
	if meta.Metrics["rate"] != 0.58 {
		t.Errorf("metrics not persisted: %+v", meta.Metrics)
	}
}

func TestLoadResiduals(t *testing.T) {
	s := New(t.TempDir())
	if err := s.Init(); err != nil {
		t.Fatal(err)
	}

	cfg, res := testRun()
	runID, err := s.Save(cfg, res)
	if err != nil {
		t.Fatal(err)
	}

	residuals, err := s.LoadResiduals(runID)
	if err != nil {
		t.Fatalf("load residuals failed: %v", err)
	}
	if len(residuals) != 3 {
		t.Fatalf("expected 3 residuals, got %d", len(residuals))
	}
	if residuals[0] != 0.5 || residuals[2] != 3.2e-7 {
		t.Errorf("residuals mismatch: %v", residuals)
	}
}

func TestListEmptyAndPopulated(t *testing.T) {
	s := New(t.TempDir())

	runs, err := s.List()
	if err != nil {
		t.Fatalf("list on missing dir failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected no runs, got %d", len(runs))
	}

	if err := s.Init(); err != nil {
		t.Fatal(err)
	}
	cfg, res := testRun()
	if _, err := s.Save(cfg, res); err != nil {
		t.Fatal(err)
	}

	runs, err = s.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("expected one run, got %d", len(runs))
	}
	if runs[0].Model != "silicon" {
		t.Errorf("unexpected run: %+v", runs[0])
	}
}

func TestExportJSON(t *testing.T) {
	s := New(t.TempDir())
	if err := s.Init(); err != nil {
		t.Fatal(err)
	}

	cfg, res := testRun()
	runID, err := s.Save(cfg, res)
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := s.ExportJSON(&buf, runID); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	var out struct {
		ID        string    `json:"id"`
		Residuals []float64 `json:"residuals"`
	}
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("export is not valid json: %v", err)
	}
	if out.ID != runID {
		t.Errorf("id mismatch: %s != %s", out.ID, runID)
	}
	if len(out.Residuals) != 3 {
		t.Errorf("expected 3 residuals in export, got %d", len(out.Residuals))
	}
}

func TestExportCSV(t *testing.T) {
	s := New(t.TempDir())
	if err := s.Init(); err != nil {
		t.Fatal(err)
	}

	cfg, res := testRun()
	runID, err := s.Save(cfg, res)
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := s.ExportCSV(&buf, runID); err != nil {
		t.Fatalf("export failed: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected header plus 3 rows, got %d lines", len(lines))
	}
	if lines[0] != "iter,residual" {
		t.Errorf("unexpected header %q", lines[0])
	}
}

func TestLoadUnknownRun(t *testing.T) {
	s := New(t.TempDir())
	if _, err := s.Load("nope"); err == nil {
		t.Error("expected error for unknown run")
	}
}
