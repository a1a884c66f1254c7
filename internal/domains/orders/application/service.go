package application

import (
	"context"
	"errors"
	"fmt"

	catalogdomain "github.com/Apurer/go-commerce-api/internal/domains/catalog/domain"
	customerports "github.com/Apurer/go-commerce-api/internal/domains/customers/ports"
	"github.com/Apurer/go-commerce-api/internal/domains/orders/domain"
	"github.com/Apurer/go-commerce-api/internal/domains/orders/ports"
)

// Service orchestrates order placement: it validates the request against the
// customer directory and the catalog, snapshots line item prices, and hands
// the priced order to the repository, which commits the write together with
// the stock decrement.
type Service struct {
	repo      ports.Repository
	customers ports.CustomerDirectory
	inventory ports.Inventory
}

func NewService(repo ports.Repository, customers ports.CustomerDirectory, inventory ports.Inventory) *Service {
	return &Service{repo: repo, customers: customers, inventory: inventory}
}

// CreateOrder runs the check-then-commit workflow. Every validation happens
// before any write; the first violation aborts the whole request.
func (s *Service) CreateOrder(ctx context.Context, input ports.CreateOrderInput) (*domain.Order, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	if _, err := s.customers.FindByID(ctx, input.CustomerID); err != nil {
		if errors.Is(err, customerports.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrInvalidCustomer, input.CustomerID)
		}
		return nil, err
	}

	resolved, err := s.resolveProducts(ctx, input.Items)
	if err != nil {
		return nil, err
	}

	items := make([]domain.LineItem, 0, len(input.Items))
	for _, item := range input.Items {
		product := resolved[item.ProductID]
		if product.Quantity < item.Quantity {
			return nil, insufficientStock(product.Name, product.Quantity)
		}
		items = append(items, domain.LineItem{
			ProductID: product.ID,
			UnitPrice: product.Price,
			Quantity:  item.Quantity,
		})
	}

	order := &domain.Order{CustomerID: input.CustomerID, Items: items}
	created, err := s.repo.Create(ctx, order)
	if err != nil {
		return nil, mapError(err)
	}
	return created, nil
}

func (s *Service) GetOrderByID(ctx context.Context, id string) (*domain.Order, error) {
	return s.repo.GetByID(ctx, id)
}

// resolveProducts batch-loads the requested products in one round trip and
// keys them by id, so validation never depends on lookup ordering.
func (s *Service) resolveProducts(ctx context.Context, items []ports.ItemRequest) (map[string]*catalogdomain.Product, error) {
	ids := make([]string, 0, len(items))
	seen := make(map[string]bool, len(items))
	for _, item := range items {
		if seen[item.ProductID] {
			return nil, fmt.Errorf("%w: duplicate product id %s", ErrInvalidProduct, item.ProductID)
		}
		seen[item.ProductID] = true
		ids = append(ids, item.ProductID)
	}

	products, err := s.inventory.FindAllByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	resolved := make(map[string]*catalogdomain.Product, len(products))
	for _, product := range products {
		resolved[product.ID] = product
	}
	for _, id := range ids {
		if _, ok := resolved[id]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrInvalidProduct, id)
		}
	}
	return resolved, nil
}

func validateInput(input ports.CreateOrderInput) error {
	if input.CustomerID == "" {
		return mapError(domain.ErrEmptyCustomerID)
	}
	if len(input.Items) == 0 {
		return mapError(domain.ErrNoLineItems)
	}
	for _, item := range input.Items {
		if item.Quantity <= 0 {
			return mapError(domain.ErrInvalidQuantity)
		}
	}
	return nil
}

var _ ports.Service = (*Service)(nil)
