// Package api holds the JSON request/response types of the HTTP API.
package api

import "time"

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error string `json:"error"`

	// Fields names the request fields that failed validation.
	Fields []string `json:"fields,omitempty"`
}

// CreateUserRequest is the body of POST /users.
// Presence and email format are checked by the usecase so that every failing field is reported.
type CreateUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UpdateUserRequest is the body of PATCH /users/:id. Omitted fields are left unchanged.
type UpdateUserRequest struct {
	Name     *string `json:"name,omitempty"`
	Email    *string `json:"email,omitempty"`
	Password *string `json:"password,omitempty"`
}

// UserResponse renders a user. The password is never included.
type UserResponse struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateProductRequest is the body of POST /products.
type CreateProductRequest struct {
	Name   string   `json:"name"`
	Price  *float64 `json:"price"`
	UserID uint     `json:"user_id"`
}

// UpdateProductRequest is the body of PATCH /products/:id. Omitted fields are left unchanged.
type UpdateProductRequest struct {
	Name   *string  `json:"name,omitempty"`
	Price  *float64 `json:"price,omitempty"`
	UserID *uint    `json:"user_id,omitempty"`
}

// ProductResponse renders a product.
type ProductResponse struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Price     float64   `json:"price"`
	UserID    uint      `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
