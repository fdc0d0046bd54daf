package service

import (
	"context"
	"math"
	"strings"

	"github.com/rs/zerolog"

	"github.com/chetannimbolkar25/Maharashtra-Home-Price-Prediction/internal/core/ports"
)

// EstimatorService builds feature vectors per the loaded schema and asks the
// model for a price.
type EstimatorService struct {
	artifacts ports.ArtifactStore
	logger    zerolog.Logger
}

func NewEstimatorService(artifacts ports.ArtifactStore, logger zerolog.Logger) *EstimatorService {
	return &EstimatorService{artifacts: artifacts, logger: logger}
}

// Estimate encodes (locality, area, rooms) into the model's input shape and
// returns the estimate rounded to 2 decimals. Schema indices 0 and 1 are the
// numeric area and room slots; the locality activates its one-hot indicator
// when present. An unseen locality is not an error: the model then predicts
// from area and rooms alone.
func (s *EstimatorService) Estimate(ctx context.Context, locality string, area float64, rooms int) (float64, error) {
	schema := s.artifacts.Schema()

	x := make([]float64, len(schema))
	x[0] = area
	x[1] = float64(rooms)

	known := false
	needle := strings.ToLower(locality)
	for i := 2; i < len(schema); i++ {
		if schema[i] == needle {
			x[i] = 1
			known = true
			break
		}
	}
	if !known {
		s.logger.Debug().Str("locality", locality).Msg("unknown locality, predicting without locality signal")
	}

	price, err := s.artifacts.Predict(x)
	if err != nil {
		return 0, err
	}
	return math.Round(price*100) / 100, nil
}
