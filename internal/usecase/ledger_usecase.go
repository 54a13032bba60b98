package usecase

import (
	"context"

	"muthurwa/internal/domain/entity"

	"github.com/google/uuid"
)

// Every ledger operation is performed on behalf of a caller. Records outside
// the caller's scope are reported as not found.

// CreateBuyerInput defines the data required to register a buyer.
type CreateBuyerInput struct {
	Name     string `json:"name" validate:"required,notblank"`
	Phone    string `json:"phone" validate:"required,notblank"`
	IDNumber string `json:"id_number" validate:"required,notblank"`
	Location string `json:"location"`
}

// UpdateBuyerInput is a partial buyer update. Nil fields are left untouched.
type UpdateBuyerInput struct {
	Name     *string `json:"name" validate:"omitnil,notblank"`
	Phone    *string `json:"phone" validate:"omitnil,notblank"`
	IDNumber *string `json:"id_number" validate:"omitnil,notblank"`
	Location *string `json:"location"`
}

// BuyerUsecase manages buyers.
type BuyerUsecase interface {
	CreateBuyer(ctx context.Context, caller entity.Caller, input *CreateBuyerInput) (*entity.Buyer, error)
	ListBuyers(ctx context.Context, caller entity.Caller) ([]*entity.Buyer, error)
	GetBuyer(ctx context.Context, caller entity.Caller, id uuid.UUID) (*entity.Buyer, error)
	UpdateBuyer(ctx context.Context, caller entity.Caller, id uuid.UUID, input *UpdateBuyerInput) (*entity.Buyer, error)
	DeleteBuyer(ctx context.Context, caller entity.Caller, id uuid.UUID) error
}

// CreateProductTypeInput defines a catalog entry.
type CreateProductTypeInput struct {
	Name         string        `json:"name" validate:"required,notblank"`
	Variety      string        `json:"variety" validate:"required,notblank"`
	Unit         string        `json:"unit" validate:"required,notblank"`
	Description  string        `json:"description"`
	DefaultPrice entity.Number `json:"default_price" validate:"required,numeric,gte=0"`
}

// UpdateProductTypeInput is a partial catalog update.
type UpdateProductTypeInput struct {
	Name         *string       `json:"name" validate:"omitnil,notblank"`
	Variety      *string       `json:"variety" validate:"omitnil,notblank"`
	Unit         *string       `json:"unit" validate:"omitnil,notblank"`
	Description  *string       `json:"description"`
	DefaultPrice entity.Number `json:"default_price" validate:"omitempty,numeric,gte=0"`
}

// ProductTypeUsecase manages the product catalog.
type ProductTypeUsecase interface {
	CreateProductType(ctx context.Context, caller entity.Caller, input *CreateProductTypeInput) (*entity.ProductType, error)
	ListProductTypes(ctx context.Context, caller entity.Caller) ([]*entity.ProductType, error)
	GetProductType(ctx context.Context, caller entity.Caller, id uuid.UUID) (*entity.ProductType, error)
	UpdateProductType(ctx context.Context, caller entity.Caller, id uuid.UUID, input *UpdateProductTypeInput) (*entity.ProductType, error)
	DeleteProductType(ctx context.Context, caller entity.Caller, id uuid.UUID) error
}

// CreateTransactionInput records a sale. TotalAmount defaults to
// quantity × unit price, PaidAmount to zero, PaymentStatus to unpaid and
// DeliveryStatus to pending.
type CreateTransactionInput struct {
	BuyerID        string                `json:"buyer_id" validate:"required,uuid"`
	ProductTypeID  string                `json:"product_type_id" validate:"required,uuid"`
	Quantity       entity.Number         `json:"quantity" validate:"required,numeric,gte=0"`
	UnitPrice      entity.Number         `json:"unit_price" validate:"required,numeric,gte=0"`
	TotalAmount    entity.Number         `json:"total_amount" validate:"omitempty,numeric,gte=0"`
	PaidAmount     entity.Number         `json:"paid_amount" validate:"omitempty,numeric,gte=0"`
	PaymentStatus  entity.PaymentStatus  `json:"payment_status" validate:"omitempty,oneof=paid unpaid partial"`
	DeliveryStatus entity.DeliveryStatus `json:"delivery_status" validate:"omitempty,oneof=pending delivered"`
	DeliveryDate   string                `json:"delivery_date" validate:"omitempty,ledger_date"`
	DueDate        string                `json:"due_date" validate:"omitempty,ledger_date"`

	// DeliveryLocation is copied onto the delivery created alongside the sale.
	DeliveryLocation string `json:"delivery_location"`
}

// UpdateTransactionInput is a partial transaction update.
type UpdateTransactionInput struct {
	BuyerID        *string                `json:"buyer_id" validate:"omitnil,uuid"`
	ProductTypeID  *string                `json:"product_type_id" validate:"omitnil,uuid"`
	Quantity       entity.Number          `json:"quantity" validate:"omitempty,numeric,gte=0"`
	UnitPrice      entity.Number          `json:"unit_price" validate:"omitempty,numeric,gte=0"`
	TotalAmount    entity.Number          `json:"total_amount" validate:"omitempty,numeric,gte=0"`
	PaidAmount     entity.Number          `json:"paid_amount" validate:"omitempty,numeric,gte=0"`
	PaymentStatus  *entity.PaymentStatus  `json:"payment_status" validate:"omitnil,oneof=paid unpaid partial"`
	DeliveryStatus *entity.DeliveryStatus `json:"delivery_status" validate:"omitnil,oneof=pending delivered"`
	DeliveryDate   *string                `json:"delivery_date" validate:"omitnil,ledger_date"`
	DueDate        *string                `json:"due_date" validate:"omitnil,ledger_date"`
}

// TransactionQuery holds the optional list filters.
type TransactionQuery struct {
	PaymentStatus  string `json:"paymentStatus" query:"paymentStatus" validate:"omitempty,oneof=paid unpaid partial"`
	DeliveryStatus string `json:"deliveryStatus" query:"deliveryStatus" validate:"omitempty,oneof=pending delivered"`
	DueDate        string `json:"dueDate" query:"dueDate" validate:"omitempty,ledger_date"`
}

// DebtQuery narrows the debt list to debts due on or before DueDate.
type DebtQuery struct {
	DueDate string `json:"dueDate" query:"dueDate" validate:"omitempty,ledger_date"`
}

// TransactionUsecase manages sales. Creating and updating a sale keeps its
// delivery in step.
type TransactionUsecase interface {
	CreateTransaction(ctx context.Context, caller entity.Caller, input *CreateTransactionInput) (*entity.Transaction, error)
	ListTransactions(ctx context.Context, caller entity.Caller, query *TransactionQuery) ([]*entity.Transaction, error)
	GetTransaction(ctx context.Context, caller entity.Caller, id uuid.UUID) (*entity.Transaction, error)
	UpdateTransaction(ctx context.Context, caller entity.Caller, id uuid.UUID, input *UpdateTransactionInput) (*entity.Transaction, error)
	DeleteTransaction(ctx context.Context, caller entity.Caller, id uuid.UUID) error

	// ListDebts returns the caller's own unpaid and partially paid sales, even for admins.
	ListDebts(ctx context.Context, caller entity.Caller, query *DebtQuery) ([]*entity.Transaction, error)

	// Receipt renders the transaction as a QR code PNG.
	Receipt(ctx context.Context, caller entity.Caller, id uuid.UUID) ([]byte, error)
}

// CreateDeliveryInput defines a delivery recorded by hand.
type CreateDeliveryInput struct {
	TransactionID      string                `json:"transaction_id" validate:"required,uuid"`
	BuyerID            string                `json:"buyer_id" validate:"required,uuid"`
	DeliveryPersonName string                `json:"delivery_person_name" validate:"required,notblank"`
	DeliveryLocation   string                `json:"delivery_location" validate:"required,notblank"`
	DeliveryStatus     entity.DeliveryStatus `json:"delivery_status" validate:"omitempty,oneof=pending delivered"`
}

// UpdateDeliveryInput is a partial delivery update.
type UpdateDeliveryInput struct {
	TransactionID      *string                `json:"transaction_id" validate:"omitnil,uuid"`
	BuyerID            *string                `json:"buyer_id" validate:"omitnil,uuid"`
	DeliveryPersonName *string                `json:"delivery_person_name" validate:"omitnil,notblank"`
	DeliveryLocation   *string                `json:"delivery_location" validate:"omitnil,notblank"`
	DeliveryStatus     *entity.DeliveryStatus `json:"delivery_status" validate:"omitnil,oneof=pending delivered"`
}

// DeliveryQuery holds the optional delivery list filters.
type DeliveryQuery struct {
	DeliveryStatus string `json:"deliveryStatus" query:"deliveryStatus" validate:"omitempty,oneof=pending delivered"`
}

// DeliveryUsecase manages deliveries.
type DeliveryUsecase interface {
	CreateDelivery(ctx context.Context, caller entity.Caller, input *CreateDeliveryInput) (*entity.Delivery, error)
	ListDeliveries(ctx context.Context, caller entity.Caller, query *DeliveryQuery) ([]*entity.Delivery, error)
	GetDelivery(ctx context.Context, caller entity.Caller, id uuid.UUID) (*entity.Delivery, error)
	UpdateDelivery(ctx context.Context, caller entity.Caller, id uuid.UUID, input *UpdateDeliveryInput) (*entity.Delivery, error)
	DeleteDelivery(ctx context.Context, caller entity.Caller, id uuid.UUID) error
}
