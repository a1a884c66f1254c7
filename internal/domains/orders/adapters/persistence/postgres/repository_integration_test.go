//go:build integration
// +build integration

package postgres

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	catalogpostgres "github.com/Apurer/go-commerce-api/internal/domains/catalog/adapters/persistence/postgres"
	catalogdomain "github.com/Apurer/go-commerce-api/internal/domains/catalog/domain"
	catalogports "github.com/Apurer/go-commerce-api/internal/domains/catalog/ports"
	customerpostgres "github.com/Apurer/go-commerce-api/internal/domains/customers/adapters/persistence/postgres"
	customerdomain "github.com/Apurer/go-commerce-api/internal/domains/customers/domain"
	ordersdomain "github.com/Apurer/go-commerce-api/internal/domains/orders/domain"
	"github.com/Apurer/go-commerce-api/internal/platform/migrations"
)

func setupPostgresContainer(t *testing.T) (*gorm.DB, func()) {
	ctx := context.Background()

	pgContainer, err := tcpostgres.Run(ctx, "postgres:15-alpine",
		tcpostgres.WithDatabase("commerce_test"),
		tcpostgres.WithUsername("test"),
		tcpostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	err = migrations.Run(db)
	require.NoError(t, err)

	cleanup := func() {
		sqlDB, _ := db.DB()
		if sqlDB != nil {
			sqlDB.Close()
		}
		pgContainer.Terminate(ctx)
	}

	return db, cleanup
}

func seedCatalog(t *testing.T, db *gorm.DB, name string, price string, quantity int) *catalogdomain.Product {
	t.Helper()
	repo := catalogpostgres.NewRepository(db)
	product, err := catalogdomain.NewProduct(name, decimal.RequireFromString(price), quantity)
	require.NoError(t, err)
	saved, err := repo.Save(context.Background(), product)
	require.NoError(t, err)
	return saved
}

func seedCustomer(t *testing.T, db *gorm.DB) *customerdomain.Customer {
	t.Helper()
	repo := customerpostgres.NewRepository(db)
	customer, err := customerdomain.NewCustomer("Ada Lovelace", "ada@example.com")
	require.NoError(t, err)
	saved, err := repo.Save(context.Background(), customer)
	require.NoError(t, err)
	return saved
}

func TestPostgresRepository_CreateDecrementsStock(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	widget := seedCatalog(t, db, "Widget", "9.99", 5)
	customer := seedCustomer(t, db)
	repo := NewRepository(db)
	ctx := context.Background()

	created, err := repo.Create(ctx, &ordersdomain.Order{
		CustomerID: customer.ID,
		Items:      []ordersdomain.LineItem{{ProductID: widget.ID, UnitPrice: widget.Price, Quantity: 3}},
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	require.Len(t, created.Items, 1)
	assert.True(t, created.Items[0].UnitPrice.Equal(decimal.RequireFromString("9.99")))

	remaining, err := catalogpostgres.NewRepository(db).FindAllByIDs(ctx, []string{widget.ID})
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, 2, remaining[0].Quantity)

	loaded, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, customer.ID, loaded.CustomerID)
	assert.True(t, loaded.Total().Equal(decimal.RequireFromString("29.97")))
}

func TestPostgresRepository_StockConflictRollsBackOrder(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	widget := seedCatalog(t, db, "Widget", "9.99", 5)
	gadget := seedCatalog(t, db, "Gadget", "24.50", 1)
	customer := seedCustomer(t, db)
	repo := NewRepository(db)
	ctx := context.Background()

	_, err := repo.Create(ctx, &ordersdomain.Order{
		CustomerID: customer.ID,
		Items: []ordersdomain.LineItem{
			{ProductID: widget.ID, UnitPrice: widget.Price, Quantity: 3},
			{ProductID: gadget.ID, UnitPrice: gadget.Price, Quantity: 2},
		},
	})
	require.ErrorIs(t, err, catalogports.ErrStockConflict)
	assert.Contains(t, err.Error(), "Gadget")

	orders, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, orders, "the whole transaction rolls back")

	remaining, err := catalogpostgres.NewRepository(db).FindAllByIDs(ctx, []string{widget.ID, gadget.ID})
	require.NoError(t, err)
	for _, product := range remaining {
		switch product.ID {
		case widget.ID:
			assert.Equal(t, 5, product.Quantity)
		case gadget.ID:
			assert.Equal(t, 1, product.Quantity)
		}
	}
}

// Concurrent orders racing for the same stock: the guarded update must only
// accept as many orders as the starting quantity covers and never drive the
// stored quantity negative.
func TestPostgresRepository_ConcurrentOrdersNeverOversell(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	widget := seedCatalog(t, db, "Widget", "9.99", 5)
	customer := seedCustomer(t, db)
	repo := NewRepository(db)
	ctx := context.Background()

	const buyers = 20
	var accepted atomic.Int64
	var wg sync.WaitGroup
	wg.Add(buyers)
	for i := 0; i < buyers; i++ {
		go func() {
			defer wg.Done()
			_, err := repo.Create(ctx, &ordersdomain.Order{
				CustomerID: customer.ID,
				Items:      []ordersdomain.LineItem{{ProductID: widget.ID, UnitPrice: widget.Price, Quantity: 1}},
			})
			if err == nil {
				accepted.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(5), accepted.Load())

	remaining, err := catalogpostgres.NewRepository(db).FindAllByIDs(ctx, []string{widget.ID})
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, 0, remaining[0].Quantity)

	orders, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, orders, 5, "losers leave no order rows behind")
}
