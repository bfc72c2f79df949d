// Package handler provides the HTTP handlers for the product feature.
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"shop_backend/internal/api"
	"shop_backend/internal/feature/product/domain/entity"
	"shop_backend/internal/feature/product/usecase"
	userentity "shop_backend/internal/feature/user/domain/entity"
	"shop_backend/internal/platform/db"
	"shop_backend/internal/shared/validation"
)

// ProductUsecase defines the product operations the handler needs.
type ProductUsecase interface {
	Create(ctx context.Context, in usecase.CreateProductInput) (*entity.Product, error)
	FindByID(ctx context.Context, id uint) (*entity.Product, error)
	List(ctx context.Context) ([]entity.Product, error)
	Owner(ctx context.Context, p *entity.Product) (*userentity.User, error)
	Update(ctx context.Context, id uint, in usecase.UpdateProductInput) (*entity.Product, error)
	Delete(ctx context.Context, id uint) error
}

// ProductHandler serves the /products routes.
type ProductHandler struct {
	products ProductUsecase
}

// NewProductHandler creates a ProductHandler.
func NewProductHandler(products ProductUsecase) *ProductHandler {
	return &ProductHandler{products: products}
}

// Create handles POST /products.
// - 400 when the body is malformed or a field is missing
// - 422 when user_id does not reference an existing user
// - 201 with the created product
func (h *ProductHandler) Create(c *gin.Context) {
	var req api.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("create product: invalid request", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}
	p, err := h.products.Create(c.Request.Context(), usecase.CreateProductInput{
		Name:   req.Name,
		Price:  req.Price,
		UserID: req.UserID,
	})
	if err != nil {
		writeError(c, "create product", err)
		return
	}
	slog.Info("product created", "product_id", p.ID, "user_id", p.UserID)
	c.JSON(http.StatusCreated, toProductResponse(p))
}

// List handles GET /products.
func (h *ProductHandler) List(c *gin.Context) {
	products, err := h.products.List(c.Request.Context())
	if err != nil {
		writeError(c, "list products", err)
		return
	}
	res := make([]api.ProductResponse, 0, len(products))
	for i := range products {
		res = append(res, toProductResponse(&products[i]))
	}
	c.JSON(http.StatusOK, res)
}

// Get handles GET /products/:id.
func (h *ProductHandler) Get(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		return
	}
	p, err := h.products.FindByID(c.Request.Context(), id)
	if err != nil {
		writeError(c, "get product", err)
		return
	}
	c.JSON(http.StatusOK, toProductResponse(p))
}

// Update handles PATCH /products/:id.
func (h *ProductHandler) Update(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		return
	}
	var req api.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("update product: invalid request", "error", err, "product_id", id)
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}
	p, err := h.products.Update(c.Request.Context(), id, usecase.UpdateProductInput{
		Name:   req.Name,
		Price:  req.Price,
		UserID: req.UserID,
	})
	if err != nil {
		writeError(c, "update product", err)
		return
	}
	c.JSON(http.StatusOK, toProductResponse(p))
}

// Delete handles DELETE /products/:id.
func (h *ProductHandler) Delete(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		return
	}
	if err := h.products.Delete(c.Request.Context(), id); err != nil {
		writeError(c, "delete product", err)
		return
	}
	slog.Info("product deleted", "product_id", id)
	c.Status(http.StatusNoContent)
}

// Owner handles GET /products/:id/owner.
func (h *ProductHandler) Owner(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	p, err := h.products.FindByID(ctx, id)
	if err != nil {
		writeError(c, "get product owner", err)
		return
	}
	u, err := h.products.Owner(ctx, p)
	if err != nil {
		writeError(c, "get product owner", err)
		return
	}
	c.JSON(http.StatusOK, api.UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	})
}

func bindID(c *gin.Context) (uint, bool) {
	id, err := api.BindID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid id", Fields: []string{"id"}})
		return 0, false
	}
	return id, true
}

// writeError maps usecase and store errors to a status code and a fixed message.
func writeError(c *gin.Context, op string, err error) {
	var (
		status = http.StatusInternalServerError
		body   = api.ErrorResponse{Error: "internal server error"}
	)
	switch {
	case errors.Is(err, validation.ErrInvalid):
		status, body = http.StatusBadRequest, api.ErrorResponse{Error: "validation failed", Fields: validation.Fields(err)}
	case errors.Is(err, usecase.ErrProductNotFound):
		status, body.Error = http.StatusNotFound, "product not found"
	case errors.Is(err, usecase.ErrOwnerNotFound):
		status, body = http.StatusUnprocessableEntity, api.ErrorResponse{Error: "user does not exist", Fields: []string{"user_id"}}
	case errors.Is(err, usecase.ErrIntegrity):
		body.Error = "product owner is missing"
	case errors.Is(err, db.ErrTimeout):
		status, body.Error = http.StatusGatewayTimeout, "store timeout"
	}

	if status >= http.StatusInternalServerError {
		slog.Error(op+" failed", "error", err, "path", c.Request.URL.Path)
	} else {
		slog.Warn(op+" failed", "error", err, "path", c.Request.URL.Path)
	}
	c.JSON(status, body)
}

func toProductResponse(p *entity.Product) api.ProductResponse {
	return api.ProductResponse{
		ID:        p.ID,
		Name:      p.Name,
		Price:     p.Price,
		UserID:    p.UserID,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}
