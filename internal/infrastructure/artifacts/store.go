// Package artifacts loads and holds the trained model and its column schema.
// Both are read once per process and immutable afterwards.
package artifacts

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/chetannimbolkar25/Maharashtra-Home-Price-Prediction/internal/core/domain"
)

// columnsDocument is the on-disk schema format: an ordered list of feature
// names. The first two entries are the numeric area and room slots, the rest
// are lowercase one-hot locality indicators.
type columnsDocument struct {
	DataColumns []string `json:"data_columns"`
}

// Store lazily loads the schema document and the serialized linear model.
type Store struct {
	columnsPath string
	modelPath   string

	once    sync.Once
	loadErr error
	schema  []string
	model   domain.Model
}

func NewStore(columnsPath, modelPath string) *Store {
	return &Store{columnsPath: columnsPath, modelPath: modelPath}
}

// Load reads both artifact files. It is idempotent: only the first call does
// any work, repeated calls return the recorded outcome. A missing or
// malformed file surfaces domain.ErrArtifactLoad, which is fatal because no
// prediction can be served without the artifacts.
func (s *Store) Load() error {
	s.once.Do(func() {
		s.loadErr = s.load()
	})
	return s.loadErr
}

func (s *Store) load() error {
	raw, err := os.ReadFile(s.columnsPath)
	if err != nil {
		return fmt.Errorf("%w: read columns: %v", domain.ErrArtifactLoad, err)
	}
	var cols columnsDocument
	if err := json.Unmarshal(raw, &cols); err != nil {
		return fmt.Errorf("%w: parse columns: %v", domain.ErrArtifactLoad, err)
	}
	if len(cols.DataColumns) < 2 {
		return fmt.Errorf("%w: schema needs at least the area and room slots, got %d columns", domain.ErrArtifactLoad, len(cols.DataColumns))
	}

	raw, err = os.ReadFile(s.modelPath)
	if err != nil {
		return fmt.Errorf("%w: read model: %v", domain.ErrArtifactLoad, err)
	}
	var model domain.LinearModel
	if err := json.Unmarshal(raw, &model); err != nil {
		return fmt.Errorf("%w: parse model: %v", domain.ErrArtifactLoad, err)
	}
	if len(model.Coefficients) != len(cols.DataColumns) {
		return fmt.Errorf("%w: model has %d coefficients, schema has %d columns", domain.ErrArtifactLoad, len(model.Coefficients), len(cols.DataColumns))
	}

	s.schema = cols.DataColumns
	s.model = &model
	return nil
}

// Schema returns the ordered feature names. Load must have succeeded first.
func (s *Store) Schema() []string {
	return s.schema
}

// Localities returns the locality indicator names (schema entries from
// index 2 on, indices 0-1 being the reserved numeric slots).
func (s *Store) Localities() []string {
	if len(s.schema) <= 2 {
		return nil
	}
	return s.schema[2:]
}

// Predict delegates to the loaded model.
func (s *Store) Predict(x []float64) (float64, error) {
	if s.model == nil {
		return 0, fmt.Errorf("%w: model not loaded", domain.ErrArtifactLoad)
	}
	return s.model.Predict(x)
}
