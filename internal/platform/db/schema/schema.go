// Package schema declares the persisted tables and their constraints.
//
// The foreign key on products.user_id is the only record of the user/product
// relationship; users carry no association field.
package schema

import "time"

// User is the GORM model for the users table.
type User struct {
	ID        uint   `gorm:"primaryKey;autoIncrement"`
	Name      string `gorm:"size:255;not null"`
	Email     string `gorm:"size:255;not null;uniqueIndex"`
	Password  string `gorm:"size:255;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName returns the table name for GORM.
func (User) TableName() string {
	return "users"
}

// Product is the GORM model for the products table.
type Product struct {
	ID     uint    `gorm:"primaryKey;autoIncrement"`
	Name   string  `gorm:"size:255;not null"`
	Price  float64 `gorm:"not null"`
	UserID uint    `gorm:"not null;index"`

	// User only carries the constraint; it is never preloaded.
	User *User `gorm:"foreignKey:UserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName returns the table name for GORM.
func (Product) TableName() string {
	return "products"
}

// Models lists every model in migration order.
func Models() []any {
	return []any{&User{}, &Product{}}
}
