package ports

import (
	"context"
	"errors"

	"github.com/Apurer/go-commerce-api/internal/domains/orders/domain"
)

var ErrNotFound = errors.New("order not found")

// Repository persists orders. Create commits the order header, its line
// items, and the matching stock decrement as one atomic unit: when any
// product lacks stock at commit time the whole write is discarded and
// catalog/ports.ErrStockConflict surfaces. The repository assigns the order
// identifier.
type Repository interface {
	Create(ctx context.Context, order *domain.Order) (*domain.Order, error)
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	List(ctx context.Context) ([]*domain.Order, error)
}
