// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"muthurwa/internal/domain/entity"

	"github.com/google/uuid"
)

// Scope narrows every ledger query to the records a caller may see.
// The zero value matches nothing.
type Scope struct {
	OwnerID      uuid.UUID
	Unrestricted bool
}

// ScopeFor returns an unrestricted scope for admins and an owner scope otherwise.
func ScopeFor(caller entity.Caller) Scope {
	if caller.IsAdmin() {
		return Scope{Unrestricted: true}
	}

	return OwnedBy(caller.IdentityID)
}

// OwnedBy restricts a query to one owner regardless of role.
func OwnedBy(ownerID uuid.UUID) Scope {
	return Scope{OwnerID: ownerID}
}

// Allows reports whether a record owned by ownerID is inside the scope.
func (s Scope) Allows(ownerID uuid.UUID) bool {
	if s.Unrestricted {
		return true
	}

	return s.OwnerID != uuid.Nil && s.OwnerID == ownerID
}
