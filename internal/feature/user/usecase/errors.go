// Package usecase implements the business logic for the user feature.
package usecase

import "errors"

var (
	// ErrUserNotFound is returned when no user has the requested ID.
	ErrUserNotFound = errors.New("user not found")

	// ErrEmailAlreadyExists is returned when another user already has the email.
	ErrEmailAlreadyExists = errors.New("email already exists")

	// ErrUserHasProducts is returned when deleting a user that still owns products.
	ErrUserHasProducts = errors.New("user still owns products")
)
