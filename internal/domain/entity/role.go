// Package entity contains the core business objects of the ledger.
package entity

// Role represents the type of role an identity can have in the system.
type Role string

const (
	// RoleAdmin sees every vendor's records and manages vendors.
	RoleAdmin Role = "admin"
	// RoleVendor sees only the records it owns.
	RoleVendor Role = "vendor"
)

// String returns the string representation of the Role.
func (r Role) String() string {
	return string(r)
}

// IsValid checks if the Role is a valid value.
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleVendor:
		return true
	default:
		return false
	}
}
