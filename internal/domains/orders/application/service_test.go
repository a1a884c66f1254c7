package application

import (
	"context"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	catalogdomain "github.com/Apurer/go-commerce-api/internal/domains/catalog/domain"
	catalogports "github.com/Apurer/go-commerce-api/internal/domains/catalog/ports"
	customerdomain "github.com/Apurer/go-commerce-api/internal/domains/customers/domain"
	customerports "github.com/Apurer/go-commerce-api/internal/domains/customers/ports"
	ordersdomain "github.com/Apurer/go-commerce-api/internal/domains/orders/domain"
	"github.com/Apurer/go-commerce-api/internal/domains/orders/ports"
)

type fakeCustomerDirectory struct {
	customers map[string]*customerdomain.Customer
	lookups   int
}

func (f *fakeCustomerDirectory) FindByID(_ context.Context, id string) (*customerdomain.Customer, error) {
	f.lookups++
	if customer, ok := f.customers[id]; ok {
		copy := *customer
		return &copy, nil
	}
	return nil, customerports.ErrNotFound
}

type fakeInventory struct {
	products map[string]*catalogdomain.Product
	lookups  int
}

func (f *fakeInventory) FindAllByIDs(_ context.Context, ids []string) ([]*catalogdomain.Product, error) {
	f.lookups++
	var found []*catalogdomain.Product
	for _, id := range ids {
		if product, ok := f.products[id]; ok {
			copy := *product
			found = append(found, &copy)
		}
	}
	return found, nil
}

func (f *fakeInventory) DecrementStock(_ context.Context, deltas []catalogports.StockDelta) ([]*catalogdomain.Product, error) {
	for _, delta := range deltas {
		product, ok := f.products[delta.ProductID]
		if !ok {
			return nil, catalogports.ErrNotFound
		}
		if product.Quantity < delta.Quantity {
			return nil, fmt.Errorf("%w: product %q has only %d units available", catalogports.ErrStockConflict, product.Name, product.Quantity)
		}
	}
	var updated []*catalogdomain.Product
	for _, delta := range deltas {
		product := f.products[delta.ProductID]
		product.Quantity -= delta.Quantity
		copy := *product
		updated = append(updated, &copy)
	}
	return updated, nil
}

// fakeOrderRepo honors the repository contract: the stock decrement commits
// together with the order, so a rejected decrement registers nothing.
type fakeOrderRepo struct {
	inventory *fakeInventory
	orders    []*ordersdomain.Order
	createErr error
	nextID    int
}

func (f *fakeOrderRepo) Create(ctx context.Context, order *ordersdomain.Order) (*ordersdomain.Order, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	deltas := make([]catalogports.StockDelta, 0, len(order.Items))
	for _, item := range order.Items {
		deltas = append(deltas, catalogports.StockDelta{ProductID: item.ProductID, Quantity: item.Quantity})
	}
	if _, err := f.inventory.DecrementStock(ctx, deltas); err != nil {
		return nil, err
	}
	f.nextID++
	clone := *order
	clone.ID = fmt.Sprintf("order-%d", f.nextID)
	f.orders = append(f.orders, &clone)
	return &clone, nil
}

func (f *fakeOrderRepo) GetByID(_ context.Context, id string) (*ordersdomain.Order, error) {
	for _, order := range f.orders {
		if order.ID == id {
			copy := *order
			return &copy, nil
		}
	}
	return nil, ports.ErrNotFound
}

func (f *fakeOrderRepo) List(_ context.Context) ([]*ordersdomain.Order, error) {
	return f.orders, nil
}

func newFixture() (*Service, *fakeCustomerDirectory, *fakeInventory, *fakeOrderRepo) {
	customers := &fakeCustomerDirectory{customers: map[string]*customerdomain.Customer{
		"c1": {ID: "c1", Name: "Ada", Email: "ada@example.com"},
	}}
	inventory := &fakeInventory{products: map[string]*catalogdomain.Product{
		"p1": {ID: "p1", Name: "Widget", Price: decimal.RequireFromString("9.99"), Quantity: 5},
		"p2": {ID: "p2", Name: "Gadget", Price: decimal.RequireFromString("24.50"), Quantity: 8},
	}}
	repo := &fakeOrderRepo{inventory: inventory}
	return NewService(repo, customers, inventory), customers, inventory, repo
}

func TestCreateOrder_InvalidCustomer(t *testing.T) {
	svc, _, inventory, repo := newFixture()

	_, err := svc.CreateOrder(context.Background(), ports.CreateOrderInput{
		CustomerID: "missing",
		Items:      []ports.ItemRequest{{ProductID: "p1", Quantity: 1}},
	})
	require.ErrorIs(t, err, ErrInvalidCustomer)
	require.Zero(t, inventory.lookups, "no product read after a failed customer lookup")
	require.Empty(t, repo.orders)
	require.Equal(t, 5, inventory.products["p1"].Quantity)
}

func TestCreateOrder_UnknownProduct(t *testing.T) {
	svc, _, inventory, repo := newFixture()

	_, err := svc.CreateOrder(context.Background(), ports.CreateOrderInput{
		CustomerID: "c1",
		Items: []ports.ItemRequest{
			{ProductID: "p1", Quantity: 1},
			{ProductID: "ghost", Quantity: 1},
		},
	})
	require.ErrorIs(t, err, ErrInvalidProduct)
	require.Empty(t, repo.orders)
	require.Equal(t, 5, inventory.products["p1"].Quantity)
}

func TestCreateOrder_DuplicateProductIDs(t *testing.T) {
	svc, _, inventory, _ := newFixture()

	_, err := svc.CreateOrder(context.Background(), ports.CreateOrderInput{
		CustomerID: "c1",
		Items: []ports.ItemRequest{
			{ProductID: "p1", Quantity: 1},
			{ProductID: "p1", Quantity: 2},
		},
	})
	require.ErrorIs(t, err, ErrInvalidProduct)
	require.Zero(t, inventory.lookups)
}

func TestCreateOrder_InsufficientStock(t *testing.T) {
	svc, _, inventory, repo := newFixture()

	_, err := svc.CreateOrder(context.Background(), ports.CreateOrderInput{
		CustomerID: "c1",
		Items:      []ports.ItemRequest{{ProductID: "p1", Quantity: 10}},
	})
	require.ErrorIs(t, err, ErrInsufficientStock)
	require.Contains(t, err.Error(), "Widget")
	require.Contains(t, err.Error(), "5 units")
	require.Empty(t, repo.orders)
	require.Equal(t, 5, inventory.products["p1"].Quantity)
}

func TestCreateOrder_Success(t *testing.T) {
	svc, _, inventory, repo := newFixture()

	order, err := svc.CreateOrder(context.Background(), ports.CreateOrderInput{
		CustomerID: "c1",
		Items: []ports.ItemRequest{
			{ProductID: "p1", Quantity: 3},
			{ProductID: "p2", Quantity: 2},
		},
	})
	require.NoError(t, err)
	require.NotEmpty(t, order.ID)
	require.Equal(t, "c1", order.CustomerID)
	require.Len(t, order.Items, 2)
	require.Equal(t, "p1", order.Items[0].ProductID)
	require.True(t, order.Items[0].UnitPrice.Equal(decimal.RequireFromString("9.99")))
	require.Equal(t, 3, order.Items[0].Quantity)
	require.True(t, order.Total().Equal(decimal.RequireFromString("78.97")))

	require.Equal(t, 2, inventory.products["p1"].Quantity)
	require.Equal(t, 6, inventory.products["p2"].Quantity)
	require.Len(t, repo.orders, 1)
}

func TestCreateOrder_PriceSnapshotSurvivesPriceChange(t *testing.T) {
	svc, _, inventory, _ := newFixture()

	order, err := svc.CreateOrder(context.Background(), ports.CreateOrderInput{
		CustomerID: "c1",
		Items:      []ports.ItemRequest{{ProductID: "p1", Quantity: 1}},
	})
	require.NoError(t, err)

	inventory.products["p1"].Price = decimal.RequireFromString("199.99")
	require.True(t, order.Items[0].UnitPrice.Equal(decimal.RequireFromString("9.99")))
}

func TestCreateOrder_NotIdempotent(t *testing.T) {
	svc, _, inventory, repo := newFixture()

	input := ports.CreateOrderInput{
		CustomerID: "c1",
		Items:      []ports.ItemRequest{{ProductID: "p1", Quantity: 2}},
	}
	first, err := svc.CreateOrder(context.Background(), input)
	require.NoError(t, err)
	second, err := svc.CreateOrder(context.Background(), input)
	require.NoError(t, err)

	require.NotEqual(t, first.ID, second.ID)
	require.Len(t, repo.orders, 2)
	require.Equal(t, 1, inventory.products["p1"].Quantity)
}

func TestCreateOrder_StockConflictAtCommitMapsToInsufficientStock(t *testing.T) {
	svc, _, _, repo := newFixture()
	repo.createErr = fmt.Errorf("%w: product %q has only %d units available", catalogports.ErrStockConflict, "Widget", 1)

	_, err := svc.CreateOrder(context.Background(), ports.CreateOrderInput{
		CustomerID: "c1",
		Items:      []ports.ItemRequest{{ProductID: "p1", Quantity: 2}},
	})
	require.ErrorIs(t, err, ErrInsufficientStock)
	require.Contains(t, err.Error(), "Widget")
}

func TestCreateOrder_RejectsEmptyAndNonPositiveInput(t *testing.T) {
	svc, customers, _, _ := newFixture()

	_, err := svc.CreateOrder(context.Background(), ports.CreateOrderInput{CustomerID: "c1"})
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.CreateOrder(context.Background(), ports.CreateOrderInput{
		CustomerID: "c1",
		Items:      []ports.ItemRequest{{ProductID: "p1", Quantity: 0}},
	})
	require.ErrorIs(t, err, ErrInvalidInput)
	require.Zero(t, customers.lookups, "shape validation happens before any lookup")
}

func TestGetOrderByID_NotFound(t *testing.T) {
	svc, _, _, _ := newFixture()

	_, err := svc.GetOrderByID(context.Background(), "missing")
	require.ErrorIs(t, err, ports.ErrNotFound)
}
