package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrEmptyCustomerID = errors.New("customer id is required")
	ErrNoLineItems     = errors.New("order requires at least one line item")
	ErrInvalidQuantity = errors.New("line item quantity must be greater than zero")
)

// LineItem is a priced (product, quantity) entry attached to an order.
// UnitPrice is snapshotted from the catalog when the order is placed and is
// never re-read afterwards, so later price changes leave existing orders
// untouched.
type LineItem struct {
	ProductID string
	UnitPrice decimal.Decimal
	Quantity  int
}

// Subtotal returns unit price times quantity.
func (li LineItem) Subtotal() decimal.Decimal {
	return li.UnitPrice.Mul(decimal.NewFromInt(int64(li.Quantity)))
}

// Order models a placed purchase order. Created once, immutable thereafter.
type Order struct {
	ID         string
	CustomerID string
	Items      []LineItem
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Validate enforces invariants on the aggregate.
func (o *Order) Validate() error {
	if o.CustomerID == "" {
		return ErrEmptyCustomerID
	}
	if len(o.Items) == 0 {
		return ErrNoLineItems
	}
	for _, item := range o.Items {
		if item.Quantity <= 0 {
			return ErrInvalidQuantity
		}
	}
	return nil
}

// Total sums the line item subtotals.
func (o *Order) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range o.Items {
		total = total.Add(item.Subtotal())
	}
	return total
}
