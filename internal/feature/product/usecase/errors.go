// Package usecase implements the business logic for the product feature.
package usecase

import "errors"

var (
	// ErrProductNotFound is returned when no product has the requested ID.
	ErrProductNotFound = errors.New("product not found")

	// ErrOwnerNotFound is returned when a product references a user that does not exist.
	ErrOwnerNotFound = errors.New("owner does not exist")

	// ErrIntegrity is returned when a stored product has no owner.
	ErrIntegrity = errors.New("product owner is missing")
)
