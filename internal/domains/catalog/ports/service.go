package ports

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/Apurer/go-commerce-api/internal/domains/catalog/domain"
)

// Service exposes catalog use cases to adapters.
type Service interface {
	CreateProduct(ctx context.Context, name string, price decimal.Decimal, quantity int) (*domain.Product, error)
	GetByName(ctx context.Context, name string) (*domain.Product, error)
}
