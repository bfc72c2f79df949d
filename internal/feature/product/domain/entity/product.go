// Package entity defines the domain entities for the product feature.
package entity

import "time"

// Product is an item that belongs to exactly one user.
type Product struct {
	ID    uint
	Name  string
	Price float64

	// UserID references the owning user. The store rejects ids that do not exist.
	UserID uint

	CreatedAt time.Time
	UpdatedAt time.Time
}
