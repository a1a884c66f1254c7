package ports

import (
	"context"

	"github.com/Apurer/go-commerce-api/internal/domains/orders/domain"
)

// ItemRequest names a product and the quantity the caller wants to buy.
type ItemRequest struct {
	ProductID string
	Quantity  int
}

// CreateOrderInput is the ephemeral order-placement request.
type CreateOrderInput struct {
	CustomerID string
	Items      []ItemRequest
}

// Service exposes order use cases to adapters.
type Service interface {
	CreateOrder(ctx context.Context, input CreateOrderInput) (*domain.Order, error)
	GetOrderByID(ctx context.Context, id string) (*domain.Order, error)
}
