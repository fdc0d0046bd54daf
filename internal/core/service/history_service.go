package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/chetannimbolkar25/Maharashtra-Home-Price-Prediction/internal/core/domain"
	"github.com/chetannimbolkar25/Maharashtra-Home-Price-Prediction/internal/core/ports"
)

// historyTimeFormat matches the timestamps already present in stored histories.
const historyTimeFormat = "2006-01-02 15:04"

// HistoryService appends prediction records and derives the dashboard and
// admin read views.
type HistoryService struct {
	repo   ports.UserRepository
	now    func() time.Time
	logger zerolog.Logger
}

func NewHistoryService(repo ports.UserRepository, logger zerolog.Logger) *HistoryService {
	return &HistoryService{repo: repo, now: time.Now, logger: logger}
}

// Record appends a timestamped prediction to the user's history.
func (s *HistoryService) Record(ctx context.Context, username, locality string, area float64, rooms int, price float64) (*domain.PredictionRecord, error) {
	rec := domain.PredictionRecord{
		Location: locality,
		Sqft:     area,
		BHK:      rooms,
		Price:    price,
		Time:     s.now().Format(historyTimeFormat),
	}
	if err := s.repo.AppendHistory(ctx, username, rec); err != nil {
		s.logger.Error().Err(err).Str("username", username).Msg("failed to append prediction history")
		return nil, err
	}

	s.logger.Info().Str("username", username).Str("locality", locality).Float64("price", price).Msg("prediction recorded")
	return &rec, nil
}

// History returns the user's predictions in insertion order.
func (s *HistoryService) History(ctx context.Context, username string) ([]domain.PredictionRecord, error) {
	user, err := s.repo.Get(ctx, username)
	if err != nil {
		return nil, err
	}
	return user.History, nil
}

// Summarize returns the per-user dashboard view. LastPrice is 0 when the
// user has no predictions yet.
func (s *HistoryService) Summarize(ctx context.Context, username string) (*ports.UserSummary, error) {
	user, err := s.repo.Get(ctx, username)
	if err != nil {
		return nil, err
	}

	summary := &ports.UserSummary{Count: len(user.History)}
	if n := len(user.History); n > 0 {
		summary.LastPrice = user.History[n-1].Price
	}
	return summary, nil
}

// AdminSummary aggregates totals across all users.
func (s *HistoryService) AdminSummary(ctx context.Context) (*ports.AdminSummary, error) {
	users, err := s.repo.LoadAll(ctx)
	if err != nil {
		return nil, err
	}

	summary := &ports.AdminSummary{TotalUsers: len(users)}
	for _, u := range users {
		summary.TotalPredictions += len(u.History)
	}
	return summary, nil
}
