package ports

import (
	"context"
	"errors"

	"github.com/Apurer/go-commerce-api/internal/domains/customers/domain"
)

var ErrNotFound = errors.New("customer not found")

type Repository interface {
	Save(ctx context.Context, customer *domain.Customer) (*domain.Customer, error)
	FindByID(ctx context.Context, id string) (*domain.Customer, error)
	FindByEmail(ctx context.Context, email string) (*domain.Customer, error)
}
