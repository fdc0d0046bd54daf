package ports

import (
	"context"

	"github.com/chetannimbolkar25/Maharashtra-Home-Price-Prediction/internal/core/domain"
)

// UserSummary is the per-user dashboard view.
type UserSummary struct {
	Count     int
	LastPrice float64 // 0 when the user has no predictions yet
}

// AdminSummary aggregates the whole store for administration.
type AdminSummary struct {
	TotalUsers       int
	TotalPredictions int
}

// HistoryService appends prediction records and derives read views.
type HistoryService interface {
	Record(ctx context.Context, username, locality string, area float64, rooms int, price float64) (*domain.PredictionRecord, error)
	History(ctx context.Context, username string) ([]domain.PredictionRecord, error)
	Summarize(ctx context.Context, username string) (*UserSummary, error)
	AdminSummary(ctx context.Context) (*AdminSummary, error)
}
