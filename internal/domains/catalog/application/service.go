package application

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"github.com/Apurer/go-commerce-api/internal/domains/catalog/domain"
	"github.com/Apurer/go-commerce-api/internal/domains/catalog/ports"
)

// Service orchestrates catalog use cases.
type Service struct {
	repo ports.Repository
}

func NewService(repo ports.Repository) *Service {
	return &Service{repo: repo}
}

// CreateProduct registers a new product, rejecting duplicate names.
func (s *Service) CreateProduct(ctx context.Context, name string, price decimal.Decimal, quantity int) (*domain.Product, error) {
	product, err := domain.NewProduct(name, price, quantity)
	if err != nil {
		return nil, mapError(err)
	}
	existing, err := s.repo.FindByName(ctx, product.Name)
	if err != nil && !errors.Is(err, ports.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, ErrProductExists
	}
	return s.repo.Save(ctx, product)
}

func (s *Service) GetByName(ctx context.Context, name string) (*domain.Product, error) {
	return s.repo.FindByName(ctx, name)
}

var _ ports.Service = (*Service)(nil)
