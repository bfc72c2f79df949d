// Package adapters provides the GORM repository for the product feature.
package adapters

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"shop_backend/internal/feature/product/domain/entity"
	"shop_backend/internal/feature/product/usecase"
	"shop_backend/internal/platform/db"
	"shop_backend/internal/platform/db/schema"
)

// productGorm implements usecase.ProductRepository on top of GORM.
type productGorm struct {
	db *gorm.DB
}

// Compile-time check that productGorm implements ProductRepository.
var _ usecase.ProductRepository = (*productGorm)(nil)

// NewProductGorm creates a product repository backed by db.
func NewProductGorm(db *gorm.DB) *productGorm {
	return &productGorm{db: db}
}

// Create inserts p after checking that its owner exists.
// Returns usecase.ErrOwnerNotFound without writing a row when it does not.
func (r *productGorm) Create(ctx context.Context, p *entity.Product) error {
	if p == nil {
		return errors.New("product is nil")
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureOwner(tx, p.UserID); err != nil {
			return err
		}
		row := toProductRow(p)
		if err := tx.Omit("User").Create(row).Error; err != nil {
			return mapWriteError(err)
		}
		*p = toProduct(row)
		return nil
	})
}

// FindByID returns usecase.ErrProductNotFound when no row matches.
func (r *productGorm) FindByID(ctx context.Context, id uint) (*entity.Product, error) {
	row, err := findProduct(r.db.WithContext(ctx), id)
	if err != nil {
		return nil, err
	}
	p := toProduct(row)
	return &p, nil
}

// List returns every product in id order.
func (r *productGorm) List(ctx context.Context) ([]entity.Product, error) {
	var rows []schema.Product
	if err := r.db.WithContext(ctx).Order("id").Find(&rows).Error; err != nil {
		return nil, db.Classify(err)
	}
	products := make([]entity.Product, 0, len(rows))
	for i := range rows {
		products = append(products, toProduct(&rows[i]))
	}
	return products, nil
}

// Update writes the name, price and owner of p and reloads its timestamps.
func (r *productGorm) Update(ctx context.Context, p *entity.Product) error {
	if p == nil {
		return errors.New("product is nil")
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		row, err := findProduct(tx, p.ID)
		if err != nil {
			return err
		}
		if row.UserID != p.UserID {
			if err := ensureOwner(tx, p.UserID); err != nil {
				return err
			}
		}
		row.Name, row.Price, row.UserID = p.Name, p.Price, p.UserID
		if err := tx.Model(row).Select("Name", "Price", "UserID").Updates(row).Error; err != nil {
			return mapWriteError(err)
		}
		if row, err = findProduct(tx, p.ID); err != nil {
			return err
		}
		*p = toProduct(row)
		return nil
	})
}

// Delete returns usecase.ErrProductNotFound when nothing was deleted.
func (r *productGorm) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&schema.Product{}, id)
	if res.Error != nil {
		return db.Classify(res.Error)
	}
	if res.RowsAffected == 0 {
		return usecase.ErrProductNotFound
	}
	return nil
}

func ensureOwner(tx *gorm.DB, userID uint) error {
	var n int64
	if err := tx.Model(&schema.User{}).Where("id = ?", userID).Count(&n).Error; err != nil {
		return db.Classify(err)
	}
	if n == 0 {
		return fmt.Errorf("%w: user %d", usecase.ErrOwnerNotFound, userID)
	}
	return nil
}

func findProduct(tx *gorm.DB, id uint) (*schema.Product, error) {
	var row schema.Product
	if err := tx.Where("id = ?", id).First(&row).Error; err != nil {
		err = db.Classify(err)
		if errors.Is(err, db.ErrNotFound) {
			return nil, usecase.ErrProductNotFound
		}
		return nil, err
	}
	return &row, nil
}

// mapWriteError turns a store foreign key violation into usecase.ErrOwnerNotFound.
func mapWriteError(err error) error {
	err = db.Classify(err)
	if errors.Is(err, db.ErrForeignKeyViolation) {
		return fmt.Errorf("%w: %w", usecase.ErrOwnerNotFound, err)
	}
	return err
}

func toProductRow(p *entity.Product) *schema.Product {
	return &schema.Product{
		ID:        p.ID,
		Name:      p.Name,
		Price:     p.Price,
		UserID:    p.UserID,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func toProduct(row *schema.Product) entity.Product {
	return entity.Product{
		ID:        row.ID,
		Name:      row.Name,
		Price:     row.Price,
		UserID:    row.UserID,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
}
