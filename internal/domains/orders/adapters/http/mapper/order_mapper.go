package mapper

import (
	"time"

	ordersdomain "github.com/Apurer/go-commerce-api/internal/domains/orders/domain"
	ordersports "github.com/Apurer/go-commerce-api/internal/domains/orders/ports"
)

// CreateOrderRequest is the transport-level order placement payload.
type CreateOrderRequest struct {
	CustomerID string        `json:"customer_id" binding:"required"`
	Products   []ItemRequest `json:"products" binding:"required,min=1,dive"`
}

// ItemRequest names a product and quantity in the request payload.
type ItemRequest struct {
	ID       string `json:"id" binding:"required"`
	Quantity int    `json:"quantity" binding:"required,gt=0"`
}

// Order is the transport-level order representation.
type Order struct {
	ID         string     `json:"id"`
	CustomerID string     `json:"customer_id"`
	Items      []LineItem `json:"line_items"`
	Total      string     `json:"total"`
	CreatedAt  time.Time  `json:"created_at"`
}

// LineItem carries the price snapshot captured at order time.
type LineItem struct {
	ProductID string `json:"product_id"`
	UnitPrice string `json:"unit_price"`
	Quantity  int    `json:"quantity"`
}

// ToServiceInput converts the transport request into the service input.
func ToServiceInput(req CreateOrderRequest) ordersports.CreateOrderInput {
	input := ordersports.CreateOrderInput{CustomerID: req.CustomerID}
	for _, item := range req.Products {
		input.Items = append(input.Items, ordersports.ItemRequest{ProductID: item.ID, Quantity: item.Quantity})
	}
	return input
}

// FromDomainOrder converts a domain order to the transport representation.
func FromDomainOrder(order *ordersdomain.Order) Order {
	if order == nil {
		return Order{}
	}
	result := Order{
		ID:         order.ID,
		CustomerID: order.CustomerID,
		Total:      order.Total().StringFixed(2),
		CreatedAt:  order.CreatedAt,
	}
	for _, item := range order.Items {
		result.Items = append(result.Items, LineItem{
			ProductID: item.ProductID,
			UnitPrice: item.UnitPrice.StringFixed(2),
			Quantity:  item.Quantity,
		})
	}
	return result
}
