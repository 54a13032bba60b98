package repository

import (
	"context"

	"muthurwa/internal/domain/entity"
	"muthurwa/internal/errors"

	"github.com/google/uuid"
)

var (
	// ErrIdentityNotFound is returned when no identity matches the lookup.
	ErrIdentityNotFound = errors.New("identity not found")
	// ErrPhoneTaken is returned when another identity already uses the phone number.
	ErrPhoneTaken = errors.New("phone number already registered")
)

// IdentityRepository stores admin and vendor accounts.
type IdentityRepository interface {
	// Create persists a new identity. Returns ErrPhoneTaken on a duplicate phone.
	Create(ctx context.Context, identity *entity.Identity) error

	FindByID(ctx context.Context, id uuid.UUID) (*entity.Identity, error)

	// FindByPhone looks up the login identifier.
	FindByPhone(ctx context.Context, phone string) (*entity.Identity, error)

	// ListByRole returns identities holding the role, oldest first.
	ListByRole(ctx context.Context, role entity.Role) ([]*entity.Identity, error)

	// Update writes the profile fields (name, phone, location). Returns ErrPhoneTaken on a duplicate phone.
	Update(ctx context.Context, identity *entity.Identity) error

	Delete(ctx context.Context, id uuid.UUID) error
}
