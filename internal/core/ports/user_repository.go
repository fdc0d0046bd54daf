package ports

import (
	"context"

	"github.com/chetannimbolkar25/Maharashtra-Home-Price-Prediction/internal/core/domain"
)

// UserRepository is the credential vault: it persists the full mapping of
// username to user record. Implementations follow a load-modify-save cycle,
// so callers must not assume partial updates are visible mid-operation.
type UserRepository interface {
	// LoadAll reads and deserializes the whole store. A malformed document
	// surfaces domain.ErrStoreCorrupt.
	LoadAll(ctx context.Context) (map[string]*domain.User, error)
	// SaveAll overwrites the whole store. No partial-write state may be
	// observable to a subsequent LoadAll.
	SaveAll(ctx context.Context, users map[string]*domain.User) error
	// Create stores a new record; domain.ErrUserExists when the username is taken.
	Create(ctx context.Context, user *domain.User) error
	// Get returns a single record; domain.ErrUserNotFound when absent.
	Get(ctx context.Context, username string) (*domain.User, error)
	// AppendHistory appends one prediction record to the user's history and persists.
	AppendHistory(ctx context.Context, username string, rec domain.PredictionRecord) error
}
