package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	productentity "shop_backend/internal/feature/product/domain/entity"
	"shop_backend/internal/feature/user/domain/entity"
	"shop_backend/internal/feature/user/usecase"
	"shop_backend/internal/platform/db"
	"shop_backend/internal/shared/validation"
)

// mockUserUsecase is a mock implementation of the UserUsecase interface.
type mockUserUsecase struct {
	CreateFunc       func(ctx context.Context, in usecase.CreateUserInput) (*entity.User, error)
	FindByIDFunc     func(ctx context.Context, id uint) (*entity.User, error)
	ListFunc         func(ctx context.Context) ([]entity.User, error)
	ListProductsFunc func(ctx context.Context, id uint) ([]productentity.Product, error)
	UpdateFunc       func(ctx context.Context, id uint, in usecase.UpdateUserInput) (*entity.User, error)
	DeleteFunc       func(ctx context.Context, id uint) error
}

func (m *mockUserUsecase) Create(ctx context.Context, in usecase.CreateUserInput) (*entity.User, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, in)
	}
	return nil, errors.New("not implemented")
}

func (m *mockUserUsecase) FindByID(ctx context.Context, id uint) (*entity.User, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, usecase.ErrUserNotFound
}

func (m *mockUserUsecase) List(ctx context.Context) ([]entity.User, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return nil, nil
}

func (m *mockUserUsecase) ListProducts(ctx context.Context, id uint) ([]productentity.Product, error) {
	if m.ListProductsFunc != nil {
		return m.ListProductsFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockUserUsecase) Update(ctx context.Context, id uint, in usecase.UpdateUserInput) (*entity.User, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, id, in)
	}
	return nil, usecase.ErrUserNotFound
}

func (m *mockUserUsecase) Delete(ctx context.Context, id uint) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func newTestRouter(uc UserUsecase) *gin.Engine {
	h := NewUserHandler(uc)
	r := gin.New()
	r.POST("/users", h.Create)
	r.GET("/users", h.List)
	r.GET("/users/:id", h.Get)
	r.PATCH("/users/:id", h.Update)
	r.DELETE("/users/:id", h.Delete)
	r.GET("/users/:id/products", h.ListProducts)
	return r
}

func doJSON(t *testing.T, r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// validatingCreate runs the usecase input validation so the handler's rendering of it is covered.
func validatingCreate(ctx context.Context, in usecase.CreateUserInput) (*entity.User, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	return &entity.User{ID: 1, Name: in.Name, Email: in.Email}, nil
}

func TestUserHandler_Create(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		requestBody    any
		mockCreateFunc func(ctx context.Context, in usecase.CreateUserInput) (*entity.User, error)
		expectedStatus int
		expectedBody   gin.H
	}{
		{
			name:        "success: user created",
			requestBody: gin.H{"name": "Ana", "email": "ana@x.com", "password": "pw"},
			mockCreateFunc: func(ctx context.Context, in usecase.CreateUserInput) (*entity.User, error) {
				return &entity.User{ID: 1, Name: in.Name, Email: in.Email, Password: in.Password}, nil
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "failure: malformed email is named",
			requestBody:    gin.H{"name": "Ana", "email": "not-an-email", "password": "pw"},
			mockCreateFunc: validatingCreate,
			expectedStatus: http.StatusBadRequest,
			expectedBody:   gin.H{"error": "validation failed", "fields": []any{"email"}},
		},
		{
			name:           "failure: empty email is named",
			requestBody:    gin.H{"name": "Ana", "email": "", "password": "pw"},
			mockCreateFunc: validatingCreate,
			expectedStatus: http.StatusBadRequest,
			expectedBody:   gin.H{"error": "validation failed", "fields": []any{"email"}},
		},
		{
			name:           "failure: malformed json",
			requestBody:    "{",
			expectedStatus: http.StatusBadRequest,
			expectedBody:   gin.H{"error": "invalid request"},
		},
		{
			name:        "failure: missing fields are named",
			requestBody: gin.H{"email": "ana@x.com"},
			mockCreateFunc: func(ctx context.Context, in usecase.CreateUserInput) (*entity.User, error) {
				return nil, validation.NewError("name", "password")
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   gin.H{"error": "validation failed", "fields": []any{"name", "password"}},
		},
		{
			name:        "failure: duplicate email",
			requestBody: gin.H{"name": "Ana", "email": "ana@x.com", "password": "pw"},
			mockCreateFunc: func(ctx context.Context, in usecase.CreateUserInput) (*entity.User, error) {
				return nil, fmt.Errorf("%w: %w", usecase.ErrEmailAlreadyExists, db.ErrDuplicateKey)
			},
			expectedStatus: http.StatusConflict,
			expectedBody:   gin.H{"error": "email already exists"},
		},
		{
			name:        "failure: store timeout",
			requestBody: gin.H{"name": "Ana", "email": "ana@x.com", "password": "pw"},
			mockCreateFunc: func(ctx context.Context, in usecase.CreateUserInput) (*entity.User, error) {
				return nil, &db.Error{Kind: db.ErrTimeout, Cause: context.DeadlineExceeded}
			},
			expectedStatus: http.StatusGatewayTimeout,
			expectedBody:   gin.H{"error": "store timeout"},
		},
		{
			name:        "failure: unexpected store error",
			requestBody: gin.H{"name": "Ana", "email": "ana@x.com", "password": "pw"},
			mockCreateFunc: func(ctx context.Context, in usecase.CreateUserInput) (*entity.User, error) {
				return nil, errors.New("disk I/O error")
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   gin.H{"error": "internal server error"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestRouter(&mockUserUsecase{CreateFunc: tt.mockCreateFunc})

			var w *httptest.ResponseRecorder
			if raw, ok := tt.requestBody.(string); ok {
				req := httptest.NewRequest(http.MethodPost, "/users", bytes.NewBufferString(raw))
				req.Header.Set("Content-Type", "application/json")
				w = httptest.NewRecorder()
				r.ServeHTTP(w, req)
			} else {
				w = doJSON(t, r, http.MethodPost, "/users", tt.requestBody)
			}

			assert.Equal(t, tt.expectedStatus, w.Code)

			var responseBody gin.H
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &responseBody))
			if tt.expectedBody != nil {
				assert.Equal(t, tt.expectedBody, responseBody)
				return
			}
			assert.Equal(t, float64(1), responseBody["id"])
			assert.Equal(t, "ana@x.com", responseBody["email"])
			assert.NotContains(t, responseBody, "password", "password must never be rendered")
		})
	}
}

func TestUserHandler_Get(t *testing.T) {
	gin.SetMode(gin.TestMode)

	uc := &mockUserUsecase{FindByIDFunc: func(ctx context.Context, id uint) (*entity.User, error) {
		if id == 1 {
			return &entity.User{ID: 1, Name: "Ana", Email: "ana@x.com"}, nil
		}
		return nil, usecase.ErrUserNotFound
	}}
	r := newTestRouter(uc)

	tests := []struct {
		path           string
		expectedStatus int
	}{
		{"/users/1", http.StatusOK},
		{"/users/2", http.StatusNotFound},
		{"/users/abc", http.StatusBadRequest},
		{"/users/0", http.StatusBadRequest},
		{"/users/-3", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			w := doJSON(t, r, http.MethodGet, tt.path, nil)
			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}

func TestUserHandler_List(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("empty list renders as []", func(t *testing.T) {
		w := doJSON(t, newTestRouter(&mockUserUsecase{}), http.MethodGet, "/users", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, "[]", w.Body.String())
	})

	t.Run("renders every user", func(t *testing.T) {
		uc := &mockUserUsecase{ListFunc: func(ctx context.Context) ([]entity.User, error) {
			return []entity.User{{ID: 1, Email: "a@x.com"}, {ID: 2, Email: "b@x.com"}}, nil
		}}

		w := doJSON(t, newTestRouter(uc), http.MethodGet, "/users", nil)

		var res []gin.H
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
		assert.Len(t, res, 2)
	})
}

func TestUserHandler_Update(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var got usecase.UpdateUserInput
	uc := &mockUserUsecase{UpdateFunc: func(ctx context.Context, id uint, in usecase.UpdateUserInput) (*entity.User, error) {
		got = in
		return &entity.User{ID: id, Name: *in.Name, Email: *in.Email}, nil
	}}

	w := doJSON(t, newTestRouter(uc), http.MethodPatch, "/users/1", gin.H{"name": "Ana Maria", "email": "am@x.com"})

	assert.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, got.Name)
	require.NotNil(t, got.Email)
	assert.Equal(t, "am@x.com", *got.Email)
	assert.Nil(t, got.Password, "omitted fields stay nil")
}

func TestUserHandler_Update_InvalidEmail(t *testing.T) {
	gin.SetMode(gin.TestMode)

	uc := &mockUserUsecase{UpdateFunc: func(ctx context.Context, id uint, in usecase.UpdateUserInput) (*entity.User, error) {
		if err := validation.Struct(in); err != nil {
			return nil, err
		}
		return &entity.User{ID: id}, nil
	}}

	for _, email := range []string{"", "bad"} {
		t.Run(fmt.Sprintf("email=%q", email), func(t *testing.T) {
			w := doJSON(t, newTestRouter(uc), http.MethodPatch, "/users/1", gin.H{"email": email})

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.JSONEq(t, `{"error":"validation failed","fields":["email"]}`, w.Body.String())
		})
	}
}

func TestUserHandler_Delete(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		deleteErr      error
		expectedStatus int
	}{
		{"success: deleted", nil, http.StatusNoContent},
		{"failure: user owns products", usecase.ErrUserHasProducts, http.StatusConflict},
		{"failure: unknown user", usecase.ErrUserNotFound, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &mockUserUsecase{DeleteFunc: func(ctx context.Context, id uint) error { return tt.deleteErr }}

			w := doJSON(t, newTestRouter(uc), http.MethodDelete, "/users/1", nil)

			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}

func TestUserHandler_ListProducts(t *testing.T) {
	gin.SetMode(gin.TestMode)

	uc := &mockUserUsecase{ListProductsFunc: func(ctx context.Context, id uint) ([]productentity.Product, error) {
		if id != 1 {
			return nil, usecase.ErrUserNotFound
		}
		return []productentity.Product{{ID: 1, Name: "Widget", Price: 9.99, UserID: 1}}, nil
	}}
	r := newTestRouter(uc)

	w := doJSON(t, r, http.MethodGet, "/users/1/products", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[{"id":1,"name":"Widget","price":9.99,"user_id":1,"created_at":"0001-01-01T00:00:00Z","updated_at":"0001-01-01T00:00:00Z"}]`, w.Body.String())

	w = doJSON(t, r, http.MethodGet, "/users/9/products", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
