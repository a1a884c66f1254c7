package ports

import (
	"context"

	catalogdomain "github.com/Apurer/go-commerce-api/internal/domains/catalog/domain"
	catalogports "github.com/Apurer/go-commerce-api/internal/domains/catalog/ports"
	customerdomain "github.com/Apurer/go-commerce-api/internal/domains/customers/domain"
)

// CustomerDirectory is the narrow slice of the customers context the order
// workflow depends on.
type CustomerDirectory interface {
	FindByID(ctx context.Context, id string) (*customerdomain.Customer, error)
}

// Inventory is the narrow slice of the catalog context the order workflow
// depends on: batch lookup for validation and pricing, guarded batch
// decrement for commit.
type Inventory interface {
	FindAllByIDs(ctx context.Context, ids []string) ([]*catalogdomain.Product, error)
	DecrementStock(ctx context.Context, deltas []catalogports.StockDelta) ([]*catalogdomain.Product, error)
}
