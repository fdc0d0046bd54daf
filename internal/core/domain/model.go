package domain

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Model is the single capability the estimator needs from a trained
// predictor: map one feature vector to one scalar.
type Model interface {
	Predict(x []float64) (float64, error)
}

// LinearModel is a trained linear regression: intercept + coefficients · x.
// It is immutable after loading.
type LinearModel struct {
	Intercept    float64   `json:"intercept"`
	Coefficients []float64 `json:"coefficients"`
}

// Predict evaluates the regression for a single feature vector. The vector
// length must match the coefficient count.
func (m *LinearModel) Predict(x []float64) (float64, error) {
	if len(x) != len(m.Coefficients) {
		return 0, fmt.Errorf("feature vector has %d dimensions, model expects %d", len(x), len(m.Coefficients))
	}
	coef := mat.NewVecDense(len(m.Coefficients), m.Coefficients)
	vec := mat.NewVecDense(len(x), x)
	return m.Intercept + mat.Dot(coef, vec), nil
}
