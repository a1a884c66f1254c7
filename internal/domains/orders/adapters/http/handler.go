package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Apurer/go-commerce-api/internal/domains/orders/adapters/http/mapper"
	"github.com/Apurer/go-commerce-api/internal/domains/orders/application"
	ordersports "github.com/Apurer/go-commerce-api/internal/domains/orders/ports"
	apierrors "github.com/Apurer/go-commerce-api/internal/shared/errors"
)

// Handler exposes order use cases over HTTP.
type Handler struct {
	service   ordersports.Service
	responder *apierrors.ChainedResponder
}

func NewHandler(service ordersports.Service) *Handler {
	return &Handler{
		service:   service,
		responder: apierrors.NewChainedResponder("", mapOrderError),
	}
}

// Register mounts the order routes on the given router.
func (h *Handler) Register(r gin.IRouter) {
	r.POST("/orders", h.createOrder)
	r.GET("/orders/:id", h.getOrder)
}

func (h *Handler) createOrder(c *gin.Context) {
	var req mapper.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.Respond(c, apierrors.ErrBadRequest.WithDetail(err.Error()))
		return
	}
	order, err := h.service.CreateOrder(c.Request.Context(), mapper.ToServiceInput(req))
	if err != nil {
		h.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, mapper.FromDomainOrder(order))
}

func (h *Handler) getOrder(c *gin.Context) {
	order, err := h.service.GetOrderByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, ordersports.ErrNotFound) {
			h.responder.NotFound(c, "order", c.Param("id"))
			return
		}
		h.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapper.FromDomainOrder(order))
}

// mapOrderError translates the order placement error kinds into problem
// details: bad input and unresolved references are client mistakes, a
// stock shortage is a conflict with current inventory state.
func mapOrderError(err error) (apierrors.ProblemDetail, bool) {
	switch {
	case errors.Is(err, application.ErrInvalidInput),
		errors.Is(err, application.ErrInvalidCustomer),
		errors.Is(err, application.ErrInvalidProduct):
		return apierrors.ErrBadRequest.WithDetail(err.Error()), true
	case errors.Is(err, application.ErrInsufficientStock):
		return apierrors.ErrConflict.WithDetail(err.Error()), true
	default:
		return apierrors.ProblemDetail{}, false
	}
}
