package repository

import (
	"context"
	"time"

	"muthurwa/internal/domain/entity"
	"muthurwa/internal/errors"

	"github.com/google/uuid"
)

// Domain-specific errors for ledger persistence. A record outside the
// caller's scope is reported with the same not-found error as a missing one.
var (
	ErrBuyerNotFound       = errors.New("buyer not found")
	ErrProductTypeNotFound = errors.New("product type not found")
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrDeliveryNotFound    = errors.New("delivery not found")
	// ErrDeliveryExists is returned when the (owner, transaction) pair already has a delivery.
	ErrDeliveryExists = errors.New("delivery already exists for transaction")
)

// BuyerRepository stores buyers. Every read and write is narrowed by a Scope.
type BuyerRepository interface {
	Create(ctx context.Context, buyer *entity.Buyer) error
	List(ctx context.Context, scope Scope) ([]*entity.Buyer, error)
	FindByID(ctx context.Context, scope Scope, id uuid.UUID) (*entity.Buyer, error)
	// Update writes every mutable field; the owner is never changed.
	Update(ctx context.Context, scope Scope, buyer *entity.Buyer) error
	Delete(ctx context.Context, scope Scope, id uuid.UUID) error
}

// ProductTypeRepository stores the product catalog.
type ProductTypeRepository interface {
	Create(ctx context.Context, productType *entity.ProductType) error
	List(ctx context.Context, scope Scope) ([]*entity.ProductType, error)
	FindByID(ctx context.Context, scope Scope, id uuid.UUID) (*entity.ProductType, error)
	Update(ctx context.Context, scope Scope, productType *entity.ProductType) error
	Delete(ctx context.Context, scope Scope, id uuid.UUID) error
}

// TransactionFilter holds the optional list filters. Nil or empty fields are ignored.
type TransactionFilter struct {
	PaymentStatuses []entity.PaymentStatus
	DeliveryStatus  *entity.DeliveryStatus
	DueOnOrBefore   *time.Time
}

// TransactionRepository stores sales. Reads resolve the buyer and product type.
type TransactionRepository interface {
	Create(ctx context.Context, transaction *entity.Transaction) error
	List(ctx context.Context, scope Scope, filter TransactionFilter) ([]*entity.Transaction, error)
	FindByID(ctx context.Context, scope Scope, id uuid.UUID) (*entity.Transaction, error)
	Update(ctx context.Context, scope Scope, transaction *entity.Transaction) error
	Delete(ctx context.Context, scope Scope, id uuid.UUID) error
}

// DeliveryFilter holds the optional delivery list filters.
type DeliveryFilter struct {
	DeliveryStatus *entity.DeliveryStatus
}

// DeliveryRepository stores deliveries. At most one delivery exists per
// (owner, transaction) pair.
type DeliveryRepository interface {
	// Create persists a delivery. Returns ErrDeliveryExists if the pair is taken.
	Create(ctx context.Context, delivery *entity.Delivery) error

	// CreateIfAbsent inserts the delivery unless the pair is taken, in a single
	// statement. Reports whether a row was inserted.
	CreateIfAbsent(ctx context.Context, delivery *entity.Delivery) (bool, error)

	List(ctx context.Context, scope Scope, filter DeliveryFilter) ([]*entity.Delivery, error)
	FindByID(ctx context.Context, scope Scope, id uuid.UUID) (*entity.Delivery, error)
	Update(ctx context.Context, scope Scope, delivery *entity.Delivery) error
	Delete(ctx context.Context, scope Scope, id uuid.UUID) error

	// MarkDelivered sets the status of the pair's delivery to delivered.
	// Reports false when the pair has no delivery.
	MarkDelivered(ctx context.Context, ownerID, transactionID uuid.UUID) (bool, error)
}

// TransactionTotals aggregates one owner's transactions.
type TransactionTotals struct {
	Count       int64
	TotalAmount float64
}

// StatsRepository runs the grouped queries behind vendor statistics.
type StatsRepository interface {
	// TransactionTotalsByOwner groups transactions of the given owners.
	// Owners without transactions are absent from the map.
	TransactionTotalsByOwner(ctx context.Context, ownerIDs []uuid.UUID) (map[uuid.UUID]TransactionTotals, error)

	// DeliveryCountsByOwner groups deliveries of the given owners.
	DeliveryCountsByOwner(ctx context.Context, ownerIDs []uuid.UUID) (map[uuid.UUID]int64, error)
}
