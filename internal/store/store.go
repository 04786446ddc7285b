package store

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"scflab/internal/lab"
)

// Store keeps solved runs on disk, one directory per run holding a
// metadata.json and the residual history as residuals.csv.
type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID           string             `json:"id"`
	Model        string             `json:"model"`
	Solver       string             `json:"solver"`
	Mixer        string             `json:"mixer"`
	Alpha        float64            `json:"alpha"`
	Tol          float64            `json:"tol"`
	MaxIter      int                `json:"max_iter"`
	Timestamp    time.Time          `json:"timestamp"`
	Converged    bool               `json:"converged"`
	Iterations   int                `json:"iterations"`
	ResidualNorm float64            `json:"residual_norm"`
	Metrics      map[string]float64 `json:"metrics"`
}

func (s *Store) Save(cfg lab.Config, result *lab.RunResult) (string, error) {
	runID := fmt.Sprintf("%s_%d", cfg.Model, time.Now().UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:           runID,
		Model:        cfg.Model,
		Solver:       cfg.Solver,
		Mixer:        cfg.Mixer,
		Alpha:        cfg.Alpha,
		Tol:          cfg.Tol,
		MaxIter:      cfg.MaxIter,
		Timestamp:    time.Now(),
		Converged:    result.Converged,
		Iterations:   result.Iterations,
		ResidualNorm: result.ResidualNorm,
		Metrics:      result.Metrics,
	}

	metaPath := filepath.Join(runDir, "metadata.json")
	metaFile, err := os.Create(metaPath)
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvPath := filepath.Join(runDir, "residuals.csv")
	csvFile, err := os.Create(csvPath)
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	if err := w.Write([]string{"iter", "residual"}); err != nil {
		return "", err
	}
	for i, r := range result.Residuals {
		row := []string{
			strconv.Itoa(i + 1),
			strconv.FormatFloat(r, 'e', 8, 64),
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	return runID, nil
}

func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		metaPath := filepath.Join(s.baseDir, entry.Name(), "metadata.json")
		data, err := os.ReadFile(metaPath)
		if err != nil {
			continue
		}

		var meta RunMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}

		runs = append(runs, meta)
	}

	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	metaPath := filepath.Join(s.baseDir, runID, "metadata.json")
	data, err := os.ReadFile(metaPath)
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

// LoadResiduals reads back the per-iteration residual norms of a saved run.
func (s *Store) LoadResiduals(runID string) ([]float64, error) {
	csvPath := filepath.Join(s.baseDir, runID, "residuals.csv")
	file, err := os.Open(csvPath)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	residuals := make([]float64, 0, len(records))
	for i := 1; i < len(records); i++ {
		record := records[i]
		if len(record) < 2 {
			continue
		}
		val, err := strconv.ParseFloat(record[1], 64)
		if err != nil {
			continue
		}
		residuals = append(residuals, val)
	}

	return residuals, nil
}

// ExportJSON writes the run metadata together with its residual history as
// indented json.
func (s *Store) ExportJSON(w io.Writer, runID string) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}
	residuals, err := s.LoadResiduals(runID)
	if err != nil {
		return err
	}

	out := struct {
		RunMetadata
		Residuals []float64 `json:"residuals"`
	}{*meta, residuals}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// ExportCSV copies the stored residual history to the writer.
func (s *Store) ExportCSV(w io.Writer, runID string) error {
	csvPath := filepath.Join(s.baseDir, runID, "residuals.csv")
	file, err := os.Open(csvPath)
	if err != nil {
		return err
	}
	defer file.Close()

	_, err = io.Copy(w, file)
	return err
}
