package ports

import "context"

// ArtifactStore exposes the immutable column schema and the trained model.
type ArtifactStore interface {
	// Schema returns the ordered feature names. Index 0 is area, index 1 is
	// room count, the rest are lowercase one-hot locality indicators.
	Schema() []string
	// Localities returns the locality names (schema entries from index 2 on).
	Localities() []string
	// Predict evaluates the model for one feature vector.
	Predict(x []float64) (float64, error)
}

// EstimatorService computes a price estimate from raw property attributes.
type EstimatorService interface {
	// Estimate is deterministic for identical inputs. An unknown locality is
	// not an error: the vector simply carries no locality signal.
	Estimate(ctx context.Context, locality string, area float64, rooms int) (float64, error)
}
