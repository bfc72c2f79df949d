// Package entity defines the domain entities for the user feature.
package entity

import "time"

// User is an account that can own products.
type User struct {
	// ID is assigned by the store and never reused.
	ID uint

	Name string

	// Email is unique across all users.
	Email string

	// Password is the stored credential. It is never rendered in responses.
	Password string

	CreatedAt time.Time
	UpdatedAt time.Time
}
