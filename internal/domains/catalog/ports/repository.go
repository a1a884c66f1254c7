package ports

import (
	"context"
	"errors"

	"github.com/Apurer/go-commerce-api/internal/domains/catalog/domain"
)

var (
	ErrNotFound = errors.New("product not found")
	// ErrStockConflict signals that applying a decrement would drive a
	// product's quantity below zero. The whole batch is rejected.
	ErrStockConflict = errors.New("insufficient stock")
)

// StockDelta names a product and the amount to subtract from its stock.
type StockDelta struct {
	ProductID string
	Quantity  int
}

// Repository persists products and owns every stock mutation.
type Repository interface {
	Save(ctx context.Context, product *domain.Product) (*domain.Product, error)
	FindByName(ctx context.Context, name string) (*domain.Product, error)
	// FindAllByIDs resolves the given ids in one round trip. Absent ids are
	// simply missing from the result; no ordering is guaranteed, so callers
	// must key the result by id.
	FindAllByIDs(ctx context.Context, ids []string) ([]*domain.Product, error)
	// DecrementStock subtracts each delta from the stored quantity as a
	// single all-or-nothing batch. A delta that would leave a quantity
	// negative fails the whole batch with ErrStockConflict and nothing is
	// applied. Returns the updated products.
	DecrementStock(ctx context.Context, deltas []StockDelta) ([]*domain.Product, error)
}
