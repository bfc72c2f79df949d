package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"shop_backend/internal/feature/product/domain/entity"
	userentity "shop_backend/internal/feature/user/domain/entity"
	userusecase "shop_backend/internal/feature/user/usecase"
	"shop_backend/internal/shared/validation"
)

// ProductRepository abstracts the persistence layer for products.
type ProductRepository interface {
	Create(ctx context.Context, p *entity.Product) error
	FindByID(ctx context.Context, id uint) (*entity.Product, error)
	List(ctx context.Context) ([]entity.Product, error)
	Update(ctx context.Context, p *entity.Product) error
	Delete(ctx context.Context, id uint) error
}

// OwnerRepository resolves the user a product belongs to.
type OwnerRepository interface {
	FindByID(ctx context.Context, id uint) (*userentity.User, error)
}

// CreateProductInput carries the fields of a new product.
// Price is a pointer so that a missing price is told apart from zero.
type CreateProductInput struct {
	Name   string   `json:"name" validate:"required"`
	Price  *float64 `json:"price" validate:"required"`
	UserID uint     `json:"user_id" validate:"required"`
}

// UpdateProductInput carries a partial update. Nil fields are left unchanged.
type UpdateProductInput struct {
	Name   *string  `json:"name" validate:"omitnil,min=1"`
	Price  *float64 `json:"price"`
	UserID *uint    `json:"user_id" validate:"omitnil,min=1"`
}

type productUsecase struct {
	products ProductRepository
	owners   OwnerRepository
}

// NewProductUsecase wires the product usecase.
func NewProductUsecase(products ProductRepository, owners OwnerRepository) *productUsecase {
	return &productUsecase{products: products, owners: owners}
}

// Create validates the input and stores a product for an existing user.
func (uc *productUsecase) Create(ctx context.Context, in CreateProductInput) (*entity.Product, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	p := &entity.Product{Name: in.Name, Price: *in.Price, UserID: in.UserID}
	if err := uc.products.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (uc *productUsecase) FindByID(ctx context.Context, id uint) (*entity.Product, error) {
	return uc.products.FindByID(ctx, id)
}

func (uc *productUsecase) List(ctx context.Context) ([]entity.Product, error) {
	return uc.products.List(ctx)
}

// Owner resolves the user referenced by p. A missing owner means the stored data is corrupt.
func (uc *productUsecase) Owner(ctx context.Context, p *entity.Product) (*userentity.User, error) {
	u, err := uc.owners.FindByID(ctx, p.UserID)
	if err != nil {
		if errors.Is(err, userusecase.ErrUserNotFound) {
			slog.Error("product references a missing user", "product_id", p.ID, "user_id", p.UserID)
			return nil, fmt.Errorf("%w: product %d, user %d", ErrIntegrity, p.ID, p.UserID)
		}
		return nil, err
	}
	return u, nil
}

// Update applies the provided fields. Moving a product to an unknown user fails with ErrOwnerNotFound.
func (uc *productUsecase) Update(ctx context.Context, id uint, in UpdateProductInput) (*entity.Product, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	p, err := uc.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Name == nil && in.Price == nil && in.UserID == nil {
		return p, nil
	}

	if in.Name != nil {
		p.Name = *in.Name
	}
	if in.Price != nil {
		p.Price = *in.Price
	}
	if in.UserID != nil {
		p.UserID = *in.UserID
	}
	if err := uc.products.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (uc *productUsecase) Delete(ctx context.Context, id uint) error {
	return uc.products.Delete(ctx, id)
}
