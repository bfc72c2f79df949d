// Package handler provides the HTTP handlers for the user feature.
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"shop_backend/internal/api"
	productentity "shop_backend/internal/feature/product/domain/entity"
	"shop_backend/internal/feature/user/domain/entity"
	"shop_backend/internal/feature/user/usecase"
	"shop_backend/internal/platform/db"
	"shop_backend/internal/shared/validation"
)

// UserUsecase defines the user operations the handler needs.
// Following Go convention: interfaces are defined by the consumer (handler), not the provider (usecase).
type UserUsecase interface {
	Create(ctx context.Context, in usecase.CreateUserInput) (*entity.User, error)
	FindByID(ctx context.Context, id uint) (*entity.User, error)
	List(ctx context.Context) ([]entity.User, error)
	ListProducts(ctx context.Context, id uint) ([]productentity.Product, error)
	Update(ctx context.Context, id uint, in usecase.UpdateUserInput) (*entity.User, error)
	Delete(ctx context.Context, id uint) error
}

// UserHandler serves the /users routes.
type UserHandler struct {
	users UserUsecase
}

// NewUserHandler creates a UserHandler.
func NewUserHandler(users UserUsecase) *UserHandler {
	return &UserHandler{users: users}
}

// Create handles POST /users.
// - 400 when the body is malformed or a field is missing
// - 409 when the email is taken
// - 201 with the created user
func (h *UserHandler) Create(c *gin.Context) {
	var req api.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("create user: invalid request", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}
	u, err := h.users.Create(c.Request.Context(), usecase.CreateUserInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		writeError(c, "create user", err)
		return
	}
	slog.Info("user created", "user_id", u.ID)
	c.JSON(http.StatusCreated, toUserResponse(u))
}

// List handles GET /users.
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.users.List(c.Request.Context())
	if err != nil {
		writeError(c, "list users", err)
		return
	}
	res := make([]api.UserResponse, 0, len(users))
	for i := range users {
		res = append(res, toUserResponse(&users[i]))
	}
	c.JSON(http.StatusOK, res)
}

// Get handles GET /users/:id.
func (h *UserHandler) Get(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		return
	}
	u, err := h.users.FindByID(c.Request.Context(), id)
	if err != nil {
		writeError(c, "get user", err)
		return
	}
	c.JSON(http.StatusOK, toUserResponse(u))
}

// Update handles PATCH /users/:id.
func (h *UserHandler) Update(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		return
	}
	var req api.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("update user: invalid request", "error", err, "user_id", id)
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}
	in := usecase.UpdateUserInput{Name: req.Name, Email: req.Email, Password: req.Password}
	u, err := h.users.Update(c.Request.Context(), id, in)
	if err != nil {
		writeError(c, "update user", err)
		return
	}
	c.JSON(http.StatusOK, toUserResponse(u))
}

// Delete handles DELETE /users/:id.
// Users that still own products are kept and answered with 409.
func (h *UserHandler) Delete(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		return
	}
	if err := h.users.Delete(c.Request.Context(), id); err != nil {
		writeError(c, "delete user", err)
		return
	}
	slog.Info("user deleted", "user_id", id)
	c.Status(http.StatusNoContent)
}

// ListProducts handles GET /users/:id/products.
func (h *UserHandler) ListProducts(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		return
	}
	products, err := h.users.ListProducts(c.Request.Context(), id)
	if err != nil {
		writeError(c, "list user products", err)
		return
	}
	res := make([]api.ProductResponse, 0, len(products))
	for _, p := range products {
		res = append(res, api.ProductResponse{
			ID:        p.ID,
			Name:      p.Name,
			Price:     p.Price,
			UserID:    p.UserID,
			CreatedAt: p.CreatedAt,
			UpdatedAt: p.UpdatedAt,
		})
	}
	c.JSON(http.StatusOK, res)
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
	case errors.Is(err, usecase.ErrUserNotFound):
		status, body.Error = http.StatusNotFound, "user not found"
	case errors.Is(err, usecase.ErrEmailAlreadyExists):
		status, body.Error = http.StatusConflict, "email already exists"
	case errors.Is(err, usecase.ErrUserHasProducts):
		status, body.Error = http.StatusConflict, "user still owns products"
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

func toUserResponse(u *entity.User) api.UserResponse {
	return api.UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
