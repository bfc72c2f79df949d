// Package adapters provides the GORM repository for the user feature.
package adapters

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	productentity "shop_backend/internal/feature/product/domain/entity"
	"shop_backend/internal/feature/user/domain/entity"
	"shop_backend/internal/feature/user/usecase"
	"shop_backend/internal/platform/db"
	"shop_backend/internal/platform/db/schema"
)

// userGorm implements usecase.UserRepository on top of GORM.
type userGorm struct {
	db *gorm.DB
}

// Compile-time check that userGorm implements UserRepository.
var _ usecase.UserRepository = (*userGorm)(nil)

// NewUserGorm creates a user repository backed by db.
func NewUserGorm(db *gorm.DB) *userGorm {
	return &userGorm{db: db}
}

// Create inserts u and fills in its ID and timestamps.
// Returns usecase.ErrEmailAlreadyExists when the email is taken.
func (r *userGorm) Create(ctx context.Context, u *entity.User) error {
	if u == nil {
		return errors.New("user is nil")
	}
	row := toUserRow(u)
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return mapWriteError(err)
	}
	*u = toUser(row)
	return nil
}

// FindByID returns usecase.ErrUserNotFound when no row matches.
func (r *userGorm) FindByID(ctx context.Context, id uint) (*entity.User, error) {
	row, err := findUser(r.db.WithContext(ctx), id)
	if err != nil {
		return nil, err
	}
	u := toUser(row)
	return &u, nil
}

// List returns every user in id order.
func (r *userGorm) List(ctx context.Context) ([]entity.User, error) {
	var rows []schema.User
	if err := r.db.WithContext(ctx).Order("id").Find(&rows).Error; err != nil {
		return nil, db.Classify(err)
	}
	users := make([]entity.User, 0, len(rows))
	for i := range rows {
		users = append(users, toUser(&rows[i]))
	}
	return users, nil
}

// Update writes the name, email and password of u and reloads its timestamps.
func (r *userGorm) Update(ctx context.Context, u *entity.User) error {
	if u == nil {
		return errors.New("user is nil")
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		row, err := findUser(tx, u.ID)
		if err != nil {
			return err
		}
		row.Name, row.Email, row.Password = u.Name, u.Email, u.Password
		if err := tx.Model(row).Select("Name", "Email", "Password").Updates(row).Error; err != nil {
			return mapWriteError(err)
		}
		if row, err = findUser(tx, u.ID); err != nil {
			return err
		}
		*u = toUser(row)
		return nil
	})
}

// Delete removes the user unless products still reference it.
func (r *userGorm) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := findUser(tx, id); err != nil {
			return err
		}
		var owned int64
		if err := tx.Model(&schema.Product{}).Where("user_id = ?", id).Count(&owned).Error; err != nil {
			return db.Classify(err)
		}
		if owned > 0 {
			return fmt.Errorf("%w: %d product(s)", usecase.ErrUserHasProducts, owned)
		}
		if err := tx.Delete(&schema.User{}, id).Error; err != nil {
			// the constraint still guards against a product inserted by another connection
			err = db.Classify(err)
			if errors.Is(err, db.ErrForeignKeyViolation) {
				return fmt.Errorf("%w: %w", usecase.ErrUserHasProducts, err)
			}
			return err
		}
		return nil
	})
}

// productLister implements usecase.ProductLister. It reads the products table directly so the
// user feature does not depend on the product adapters.
type productLister struct {
	db *gorm.DB
}

var _ usecase.ProductLister = (*productLister)(nil)

// NewProductLister creates the reader behind UserUsecase.ListProducts.
func NewProductLister(db *gorm.DB) *productLister {
	return &productLister{db: db}
}

// FindByUserID returns the user's products in insertion (id) order.
func (l *productLister) FindByUserID(ctx context.Context, userID uint) ([]productentity.Product, error) {
	var rows []schema.Product
	if err := l.db.WithContext(ctx).Where("user_id = ?", userID).Order("id").Find(&rows).Error; err != nil {
		return nil, db.Classify(err)
	}
	products := make([]productentity.Product, 0, len(rows))
	for _, p := range rows {
		products = append(products, productentity.Product{
			ID:        p.ID,
			Name:      p.Name,
			Price:     p.Price,
			UserID:    p.UserID,
			CreatedAt: p.CreatedAt,
			UpdatedAt: p.UpdatedAt,
		})
	}
	return products, nil
}

func findUser(tx *gorm.DB, id uint) (*schema.User, error) {
	var row schema.User
	if err := tx.Where("id = ?", id).First(&row).Error; err != nil {
		err = db.Classify(err)
		if errors.Is(err, db.ErrNotFound) {
			return nil, usecase.ErrUserNotFound
		}
		return nil, err
	}
	return &row, nil
}

func mapWriteError(err error) error {
	err = db.Classify(err)
	if errors.Is(err, db.ErrDuplicateKey) {
		return fmt.Errorf("%w: %w", usecase.ErrEmailAlreadyExists, err)
	}
	return err
}

func toUserRow(u *entity.User) *schema.User {
	return &schema.User{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Password:  u.Password,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func toUser(row *schema.User) entity.User {
	return entity.User{
		ID:        row.ID,
		Name:      row.Name,
		Email:     row.Email,
		Password:  row.Password,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
}
