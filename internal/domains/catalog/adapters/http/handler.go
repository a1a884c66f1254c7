package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/Apurer/go-commerce-api/internal/domains/catalog/application"
	catalogdomain "github.com/Apurer/go-commerce-api/internal/domains/catalog/domain"
	catalogports "github.com/Apurer/go-commerce-api/internal/domains/catalog/ports"
	apierrors "github.com/Apurer/go-commerce-api/internal/shared/errors"
)

// Handler exposes catalog use cases over HTTP.
type Handler struct {
	service   catalogports.Service
	responder *apierrors.ChainedResponder
}

func NewHandler(service catalogports.Service) *Handler {
	return &Handler{
		service:   service,
		responder: apierrors.NewChainedResponder("", mapCatalogError),
	}
}

// Register mounts the catalog routes on the given router.
func (h *Handler) Register(r gin.IRouter) {
	r.POST("/products", h.createProduct)
}

type createProductRequest struct {
	Name     string          `json:"name" binding:"required"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity" binding:"gte=0"`
}

type productResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Price     string    `json:"price"`
	Quantity  int       `json:"quantity"`
	CreatedAt time.Time `json:"created_at"`
}

func (h *Handler) createProduct(c *gin.Context) {
	var req createProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.Respond(c, apierrors.ErrBadRequest.WithDetail(err.Error()))
		return
	}
	product, err := h.service.CreateProduct(c.Request.Context(), req.Name, req.Price, req.Quantity)
	if err != nil {
		h.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, fromDomain(product))
}

func fromDomain(product *catalogdomain.Product) productResponse {
	if product == nil {
		return productResponse{}
	}
	return productResponse{
		ID:        product.ID,
		Name:      product.Name,
		Price:     product.Price.StringFixed(2),
		Quantity:  product.Quantity,
		CreatedAt: product.CreatedAt,
	}
}

func mapCatalogError(err error) (apierrors.ProblemDetail, bool) {
	switch {
	case errors.Is(err, application.ErrInvalidInput):
		return apierrors.ErrBadRequest.WithDetail(err.Error()), true
	case errors.Is(err, application.ErrProductExists):
		return apierrors.ErrConflict.WithDetail(err.Error()), true
	default:
		return apierrors.ProblemDetail{}, false
	}
}
