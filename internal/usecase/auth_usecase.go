// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"muthurwa/internal/domain/entity"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// RegisterInput defines the data required to open an account.
type RegisterInput struct {
	Name     string      `json:"name" validate:"required,notblank"`
	Phone    string      `json:"phone" validate:"required,notblank"`
	Password string      `json:"password" validate:"required"`
	Role     entity.Role `json:"role" validate:"omitempty,oneof=admin vendor"`
	Location string      `json:"location"`
}

// LoginInput defines the credentials for signing in.
type LoginInput struct {
	Phone    string `json:"phone" validate:"required,notblank"`
	Password string `json:"password" validate:"required"`
}

// UpdateVendorInput holds the vendor profile fields an admin may change.
// Nil fields are left untouched.
type UpdateVendorInput struct {
	Name     *string `json:"name" validate:"omitnil,notblank"`
	Phone    *string `json:"phone" validate:"omitnil,notblank"`
	Location *string `json:"location"`
}

// --- Output DTOs ---

// AuthOutput returns the access token and the signed-in identity.
type AuthOutput struct {
	Token    string           `json:"token"`
	Identity *entity.Identity `json:"user"`
}

// AuthUsecase covers sign-up, sign-in and the admin vendor operations.
type AuthUsecase interface {
	Register(ctx context.Context, input *RegisterInput) (*AuthOutput, error)
	Login(ctx context.Context, input *LoginInput) (*AuthOutput, error)

	// Admin only.
	ListVendors(ctx context.Context, caller entity.Caller) ([]*entity.Identity, error)
	VendorStats(ctx context.Context, caller entity.Caller) ([]*entity.VendorStats, error)
	UpdateVendor(ctx context.Context, caller entity.Caller, vendorID uuid.UUID, input *UpdateVendorInput) (*entity.Identity, error)
	DeleteVendor(ctx context.Context, caller entity.Caller, vendorID uuid.UUID) error
}
