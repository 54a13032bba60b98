package entity

import (
	"time"

	"github.com/google/uuid"
)

// Identity is an account that can sign in: an admin or a vendor.
type Identity struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Phone        string    `json:"phone"` // Unique across all identities, used as the login identifier.
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	Location     string    `json:"location"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// IsAdmin reports whether the identity holds the admin role.
func (i *Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}

// Caller is the resolved identity behind a request.
type Caller struct {
	IdentityID  uuid.UUID
	Role        Role
	DisplayName string
}

// IsAdmin reports whether the caller holds the admin role.
func (c Caller) IsAdmin() bool {
	return c.Role == RoleAdmin
}

// VendorStats is a vendor profile with its aggregated ledger figures.
type VendorStats struct {
	Identity
	TotalSales      int64   `json:"total_sales"`
	TotalRevenue    float64 `json:"total_revenue"`
	TotalDeliveries int64   `json:"total_deliveries"`
}
