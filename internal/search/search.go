package search

import (
	"context"

	"github.com/Skotchmaster/product_catalog/internal/models"
)

const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// Searcher keeps a product index in step with the store and answers
// free-text queries against it.
type Searcher interface {
	Index(ctx context.Context, p models.Product) error
	Remove(ctx context.Context, id uint) error
	Search(ctx context.Context, q string, limit int) ([]models.Product, error)
}

type ProductFinder interface {
	SearchProducts(ctx context.Context, q string, limit int) ([]models.Product, error)
}

// Store answers queries straight from the database; there is no separate
// index to maintain.
type Store struct {
	Repo ProductFinder
}

func (s *Store) Index(context.Context, models.Product) error { return nil }
func (s *Store) Remove(context.Context, uint) error           { return nil }

func (s *Store) Search(ctx context.Context, q string, limit int) ([]models.Product, error) {
	return s.Repo.SearchProducts(ctx, q, limit)
}

func ClampLimit(limit int) int {
	if limit < 1 {
		return DefaultLimit
	}
	if limit > MaxLimit {
		return MaxLimit
	}
	return limit
}
