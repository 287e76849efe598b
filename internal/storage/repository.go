package storage

import (
	"context"
	"errors"

	"github.com/sandeepkv93/todotree/internal/model"
)

var (
	ErrNotFound        = errors.New("storage: not found")
	ErrInvalidDocument = errors.New("storage: invalid document")
)

// Repository persists the two aggregates: the lookup registry and the group
// store. Loaders return data exactly as stored; callers run Store.Sync before
// trusting indices.
type Repository interface {
	LoadRegistry(ctx context.Context) (*model.Registry, error)
	SaveRegistry(ctx context.Context, reg *model.Registry) error
	LoadStore(ctx context.Context) (*model.Store, error)
	SaveStore(ctx context.Context, store *model.Store) error
}

// Load reads both aggregates and runs the reindex-then-sync protocol.
func Load(ctx context.Context, repo Repository) (*model.Registry, *model.Store, error) {
	reg, err := repo.LoadRegistry(ctx)
	if err != nil {
		return nil, nil, err
	}
	store, err := repo.LoadStore(ctx)
	if err != nil {
		return nil, nil, err
	}
	store.Sync(reg)
	return reg, store, nil
}

// Save writes both aggregates.
func Save(ctx context.Context, repo Repository, reg *model.Registry, store *model.Store) error {
	if err := repo.SaveRegistry(ctx, reg); err != nil {
		return err
	}
	return repo.SaveStore(ctx, store)
}
