// Package file implements the user store as a single JSON document: a
// top-level mapping of username to account record. The format is shared
// with earlier deployments, so it must stay stable.
package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/chetannimbolkar25/Maharashtra-Home-Price-Prediction/internal/core/domain"
)

// UserRepository persists users via whole-document load-modify-save cycles.
// A process-local mutex serializes writers; cross-process writers are out of
// scope (single active writer assumed).
type UserRepository struct {
	path string
	mu   sync.Mutex
}

// NewUserRepository opens the store at path, creating an empty document on
// first run.
func NewUserRepository(path string) (*UserRepository, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := writeDocument(path, map[string]*domain.User{}); err != nil {
			return nil, fmt.Errorf("initialize user store: %w", err)
		}
	} else if err != nil {
		return nil, fmt.Errorf("stat user store: %w", err)
	}
	return &UserRepository{path: path}, nil
}

// LoadAll reads and deserializes the whole document.
func (r *UserRepository) LoadAll(ctx context.Context) (map[string]*domain.User, error) {
	raw, err := os.ReadFile(r.path)
	if err != nil {
		return nil, fmt.Errorf("read user store: %w", err)
	}

	users := make(map[string]*domain.User)
	if err := json.Unmarshal(raw, &users); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreCorrupt, err)
	}
	for username, u := range users {
		u.Username = username
	}
	return users, nil
}

// SaveAll atomically overwrites the whole document: the new content is
// written to a temporary file and renamed into place, so a reader never
// observes a partial write.
func (r *UserRepository) SaveAll(ctx context.Context, users map[string]*domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return writeDocument(r.path, users)
}

// Create stores a new record, leaving the document untouched when the
// username is already taken.
func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	users, err := r.LoadAll(ctx)
	if err != nil {
		return err
	}
	if _, exists := users[user.Username]; exists {
		return domain.ErrUserExists
	}
	users[user.Username] = user
	return writeDocument(r.path, users)
}

// Get returns a single record.
func (r *UserRepository) Get(ctx context.Context, username string) (*domain.User, error) {
	users, err := r.LoadAll(ctx)
	if err != nil {
		return nil, err
	}
	user, ok := users[username]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}

// AppendHistory appends one prediction record and persists the document.
func (r *UserRepository) AppendHistory(ctx context.Context, username string, rec domain.PredictionRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	users, err := r.LoadAll(ctx)
	if err != nil {
		return err
	}
	user, ok := users[username]
	if !ok {
		return domain.ErrUserNotFound
	}
	user.History = append(user.History, rec)
	return writeDocument(r.path, users)
}

func writeDocument(path string, users map[string]*domain.User) error {
	data, err := json.Marshal(users)
	if err != nil {
		return fmt.Errorf("marshal user store: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".users-*.json")
	if err != nil {
		return fmt.Errorf("write user store: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write user store: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("write user store: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("write user store: %w", err)
	}
	return nil
}
