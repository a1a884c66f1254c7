package memory

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Apurer/go-commerce-api/internal/domains/catalog/domain"
	"github.com/Apurer/go-commerce-api/internal/domains/catalog/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory product persistence adapter.
type Repository struct {
	mu       sync.RWMutex
	products map[string]*domain.Product
}

func NewRepository() *Repository {
	return &Repository{products: map[string]*domain.Product{}}
}

func (r *Repository) Save(_ context.Context, product *domain.Product) (*domain.Product, error) {
	if product == nil {
		return nil, errors.New("product is nil")
	}
	clone := *product
	if err := clone.Validate(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now()
	if clone.ID == "" {
		clone.ID = uuid.NewString()
		clone.CreatedAt = now
	}
	clone.UpdatedAt = now
	r.products[clone.ID] = &clone
	copied := clone
	return &copied, nil
}

func (r *Repository) FindByName(_ context.Context, name string) (*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, product := range r.products {
		if strings.EqualFold(product.Name, name) {
			clone := *product
			return &clone, nil
		}
	}
	return nil, ports.ErrNotFound
}

func (r *Repository) FindAllByIDs(_ context.Context, ids []string) ([]*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	found := make([]*domain.Product, 0, len(ids))
	seen := map[string]bool{}
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		if product, ok := r.products[id]; ok {
			clone := *product
			found = append(found, &clone)
		}
	}
	return found, nil
}

// DecrementStock verifies the whole batch against current stock before
// touching anything, so a failing delta leaves every quantity untouched.
func (r *Repository) DecrementStock(_ context.Context, deltas []ports.StockDelta) ([]*domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	required := map[string]int{}
	for _, delta := range deltas {
		product, ok := r.products[delta.ProductID]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ports.ErrNotFound, delta.ProductID)
		}
		required[delta.ProductID] += delta.Quantity
		if product.Quantity < required[delta.ProductID] {
			return nil, fmt.Errorf("%w: product %q has only %d units available", ports.ErrStockConflict, product.Name, product.Quantity)
		}
	}
	now := time.Now()
	updated := make([]*domain.Product, 0, len(deltas))
	for _, delta := range deltas {
		product := r.products[delta.ProductID]
		product.Quantity -= delta.Quantity
		product.UpdatedAt = now
		clone := *product
		updated = append(updated, &clone)
	}
	return updated, nil
}
