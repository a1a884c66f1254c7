package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Apurer/go-commerce-api/internal/domains/customers/application"
	customerdomain "github.com/Apurer/go-commerce-api/internal/domains/customers/domain"
	customerports "github.com/Apurer/go-commerce-api/internal/domains/customers/ports"
	apierrors "github.com/Apurer/go-commerce-api/internal/shared/errors"
)

// Handler exposes customer use cases over HTTP.
type Handler struct {
	service   customerports.Service
	responder *apierrors.ChainedResponder
}

func NewHandler(service customerports.Service) *Handler {
	return &Handler{
		service:   service,
		responder: apierrors.NewChainedResponder("", mapCustomerError),
	}
}

// Register mounts the customer routes on the given router.
func (h *Handler) Register(r gin.IRouter) {
	r.POST("/customers", h.createCustomer)
	r.GET("/customers/:id", h.getCustomer)
}

type createCustomerRequest struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required,email"`
}

type customerResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

func (h *Handler) createCustomer(c *gin.Context) {
	var req createCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.Respond(c, apierrors.ErrBadRequest.WithDetail(err.Error()))
		return
	}
	customer, err := h.service.CreateCustomer(c.Request.Context(), req.Name, req.Email)
	if err != nil {
		h.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, fromDomain(customer))
}

func (h *Handler) getCustomer(c *gin.Context) {
	customer, err := h.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, customerports.ErrNotFound) {
			h.responder.NotFound(c, "customer", c.Param("id"))
			return
		}
		h.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, fromDomain(customer))
}

func fromDomain(customer *customerdomain.Customer) customerResponse {
	if customer == nil {
		return customerResponse{}
	}
	return customerResponse{
		ID:        customer.ID,
		Name:      customer.Name,
		Email:     customer.Email,
		CreatedAt: customer.CreatedAt,
	}
}

func mapCustomerError(err error) (apierrors.ProblemDetail, bool) {
	switch {
	case errors.Is(err, application.ErrInvalidInput):
		return apierrors.ErrBadRequest.WithDetail(err.Error()), true
	case errors.Is(err, application.ErrEmailInUse):
		return apierrors.ErrConflict.WithDetail(err.Error()), true
	default:
		return apierrors.ProblemDetail{}, false
	}
}
