package domain

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrEmptyName    = errors.New("customer name is required")
	ErrEmptyEmail   = errors.New("customer email is required")
	ErrInvalidEmail = errors.New("email must contain '@'")
)

// Customer represents a registered buyer.
type Customer struct {
	ID        string
	Name      string
	Email     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewCustomer builds a customer ensuring required invariants.
func NewCustomer(name, email string) (*Customer, error) {
	customer := &Customer{}
	if err := customer.SetName(name); err != nil {
		return nil, err
	}
	if err := customer.SetEmail(email); err != nil {
		return nil, err
	}
	return customer, nil
}

// SetName trims and validates the display name.
func (c *Customer) SetName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}
	c.Name = name
	return nil
}

// SetEmail applies a minimal shape check; real validation happens upstream.
func (c *Customer) SetEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return ErrEmptyEmail
	}
	if !strings.Contains(email, "@") {
		return ErrInvalidEmail
	}
	c.Email = strings.ToLower(email)
	return nil
}

// Validate re-applies core invariants for persistence.
func (c *Customer) Validate() error {
	if err := c.SetName(c.Name); err != nil {
		return err
	}
	return c.SetEmail(c.Email)
}
