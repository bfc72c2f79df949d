package usecase

import (
	"context"
	"fmt"

	productentity "shop_backend/internal/feature/product/domain/entity"
	"shop_backend/internal/feature/user/domain/entity"
	"shop_backend/internal/shared/validation"
)

// UserRepository abstracts the persistence layer for users.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	FindByID(ctx context.Context, id uint) (*entity.User, error)
	List(ctx context.Context) ([]entity.User, error)
	Update(ctx context.Context, u *entity.User) error
	Delete(ctx context.Context, id uint) error
}

// ProductLister reads the products that reference a user.
type ProductLister interface {
	FindByUserID(ctx context.Context, userID uint) ([]productentity.Product, error)
}

// CreateUserInput carries the fields of a new user.
type CreateUserInput struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UpdateUserInput carries a partial update. Nil fields are left unchanged.
type UpdateUserInput struct {
	Name     *string `json:"name" validate:"omitnil,min=1"`
	Email    *string `json:"email" validate:"omitnil,email"`
	Password *string `json:"password" validate:"omitnil,min=1"`
}

func (in UpdateUserInput) empty() bool {
	return in.Name == nil && in.Email == nil && in.Password == nil
}

type userUsecase struct {
	users    UserRepository
	products ProductLister
	encoder  PasswordEncoder
}

// NewUserUsecase wires the user usecase. A nil encoder stores passwords as submitted.
func NewUserUsecase(users UserRepository, products ProductLister, encoder PasswordEncoder) *userUsecase {
	if encoder == nil {
		encoder = PlainPasswordEncoder{}
	}
	return &userUsecase{users: users, products: products, encoder: encoder}
}

// Create validates the input and stores a new user.
func (uc *userUsecase) Create(ctx context.Context, in CreateUserInput) (*entity.User, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	password, err := uc.encoder.Encode(in.Password)
	if err != nil {
		return nil, err
	}

	u := &entity.User{Name: in.Name, Email: in.Email, Password: password}
	if err := uc.users.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (uc *userUsecase) FindByID(ctx context.Context, id uint) (*entity.User, error) {
	return uc.users.FindByID(ctx, id)
}

func (uc *userUsecase) List(ctx context.Context) ([]entity.User, error) {
	return uc.users.List(ctx)
}

// ListProducts returns the products owned by the user, queried fresh on every call.
func (uc *userUsecase) ListProducts(ctx context.Context, id uint) ([]productentity.Product, error) {
	if _, err := uc.users.FindByID(ctx, id); err != nil {
		return nil, err
	}
	products, err := uc.products.FindByUserID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("list products of user %d: %w", id, err)
	}
	return products, nil
}

// Update applies the provided fields to an existing user.
func (uc *userUsecase) Update(ctx context.Context, id uint, in UpdateUserInput) (*entity.User, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	u, err := uc.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.empty() {
		return u, nil
	}

	if in.Name != nil {
		u.Name = *in.Name
	}
	if in.Email != nil {
		u.Email = *in.Email
	}
	if in.Password != nil {
		if u.Password, err = uc.encoder.Encode(*in.Password); err != nil {
			return nil, err
		}
	}
	if err := uc.users.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// Delete removes a user. Users that still own products are kept (ErrUserHasProducts).
func (uc *userUsecase) Delete(ctx context.Context, id uint) error {
	return uc.users.Delete(ctx, id)
}
