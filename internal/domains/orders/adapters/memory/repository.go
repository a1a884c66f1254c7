package memory

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	catalogports "github.com/Apurer/go-commerce-api/internal/domains/catalog/ports"
	"github.com/Apurer/go-commerce-api/internal/domains/orders/domain"
	"github.com/Apurer/go-commerce-api/internal/domains/orders/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory order persistence adapter. It honors the
// Create contract by applying the guarded stock decrement through the
// inventory port before registering the order, so a rejected decrement
// leaves no order behind.
type Repository struct {
	mu        sync.RWMutex
	orders    map[string]*domain.Order
	inventory ports.Inventory
}

func NewRepository(inventory ports.Inventory) *Repository {
	return &Repository{orders: map[string]*domain.Order{}, inventory: inventory}
}

func (r *Repository) Create(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	if order == nil {
		return nil, errors.New("order is nil")
	}
	clone := *order
	clone.Items = append([]domain.LineItem(nil), order.Items...)
	if err := clone.Validate(); err != nil {
		return nil, err
	}

	deltas := make([]catalogports.StockDelta, 0, len(clone.Items))
	for _, item := range clone.Items {
		deltas = append(deltas, catalogports.StockDelta{ProductID: item.ProductID, Quantity: item.Quantity})
	}
	if _, err := r.inventory.DecrementStock(ctx, deltas); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now()
	clone.ID = uuid.NewString()
	clone.CreatedAt = now
	clone.UpdatedAt = now
	r.orders[clone.ID] = &clone
	copied := clone
	copied.Items = append([]domain.LineItem(nil), clone.Items...)
	return &copied, nil
}

func (r *Repository) GetByID(_ context.Context, id string) (*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	order, ok := r.orders[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	clone := *order
	clone.Items = append([]domain.LineItem(nil), order.Items...)
	return &clone, nil
}

func (r *Repository) List(_ context.Context) ([]*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]*domain.Order, 0, len(r.orders))
	for _, order := range r.orders {
		clone := *order
		clone.Items = append([]domain.LineItem(nil), order.Items...)
		list = append(list, &clone)
	}
	return list, nil
}
