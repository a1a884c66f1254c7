package application

import (
	"errors"
	"fmt"

	catalogports "github.com/Apurer/go-commerce-api/internal/domains/catalog/ports"
	"github.com/Apurer/go-commerce-api/internal/domains/orders/domain"
)

var (
	// ErrInvalidInput signals the request violated a domain invariant.
	ErrInvalidInput = errors.New("invalid order input")
	// ErrInvalidCustomer signals the customer id does not resolve.
	ErrInvalidCustomer = errors.New("customer is not valid")
	// ErrInvalidProduct signals at least one requested product id does not
	// resolve, or the same id was requested more than once.
	ErrInvalidProduct = errors.New("one or more products are invalid")
	// ErrInsufficientStock signals a product cannot cover the requested
	// quantity. The message names the product and its available units.
	ErrInsufficientStock = errors.New("insufficient stock")
)

func insufficientStock(name string, available int) error {
	return fmt.Errorf("%w: product %q has only %d units available", ErrInsufficientStock, name, available)
}

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrEmptyCustomerID) ||
		errors.Is(err, domain.ErrNoLineItems) ||
		errors.Is(err, domain.ErrInvalidQuantity) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	// A guard trip at commit time means another order won the race for the
	// same stock; it is the same user-facing kind as the upfront check.
	if errors.Is(err, catalogports.ErrStockConflict) {
		return fmt.Errorf("%w: %w", ErrInsufficientStock, err)
	}
	return err
}
