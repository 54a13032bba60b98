package entity

import (
	"time"

	"github.com/google/uuid"
)

// PaymentStatus tracks how much of a transaction has been settled.
type PaymentStatus string

const (
	PaymentPaid    PaymentStatus = "paid"
	PaymentUnpaid  PaymentStatus = "unpaid"
	PaymentPartial PaymentStatus = "partial"
)

// IsValid checks if the PaymentStatus is a valid value.
func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentPaid, PaymentUnpaid, PaymentPartial:
		return true
	default:
		return false
	}
}

// IsDebt reports whether the status leaves money owed.
func (s PaymentStatus) IsDebt() bool {
	return s == PaymentUnpaid || s == PaymentPartial
}

// DebtStatuses are the payment statuses returned by the debt query.
func DebtStatuses() []PaymentStatus {
	return []PaymentStatus{PaymentUnpaid, PaymentPartial}
}

// DeliveryStatus tracks whether goods reached the buyer.
type DeliveryStatus string

const (
	DeliveryPending   DeliveryStatus = "pending"
	DeliveryDelivered DeliveryStatus = "delivered"
)

// IsValid checks if the DeliveryStatus is a valid value.
func (s DeliveryStatus) IsValid() bool {
	switch s {
	case DeliveryPending, DeliveryDelivered:
		return true
	default:
		return false
	}
}

// Buyer is a customer registered by a vendor.
type Buyer struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	IDNumber  string    `json:"id_number"`
	Location  string    `json:"location"`
	OwnerID   uuid.UUID `json:"owner_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ProductType is an item in a vendor's catalog.
type ProductType struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Variety      string    `json:"variety"`
	Unit         string    `json:"unit"`
	Description  string    `json:"description"`
	DefaultPrice float64   `json:"default_price"`
	OwnerID      uuid.UUID `json:"owner_id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Transaction records a sale to a buyer.
type Transaction struct {
	ID             uuid.UUID      `json:"id"`
	BuyerID        uuid.UUID      `json:"buyer_id"`
	ProductTypeID  uuid.UUID      `json:"product_type_id"`
	Quantity       float64        `json:"quantity"`
	UnitPrice      float64        `json:"unit_price"`
	TotalAmount    float64        `json:"total_amount"`
	PaidAmount     float64        `json:"paid_amount"`
	PaymentStatus  PaymentStatus  `json:"payment_status"`
	DeliveryStatus DeliveryStatus `json:"delivery_status"`
	DeliveryDate   *time.Time     `json:"delivery_date"`
	DueDate        *time.Time     `json:"due_date"`
	OwnerID        uuid.UUID      `json:"owner_id"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`

	// Resolved references, populated on reads.
	Buyer       *Buyer       `json:"buyer,omitempty"`
	ProductType *ProductType `json:"product_type,omitempty"`
}

// Delivery tracks the hand-over of a transaction's goods.
type Delivery struct {
	ID                 uuid.UUID      `json:"id"`
	TransactionID      uuid.UUID      `json:"transaction_id"`
	BuyerID            uuid.UUID      `json:"buyer_id"`
	DeliveryPersonName string         `json:"delivery_person_name"`
	DeliveryLocation   string         `json:"delivery_location"`
	DeliveryStatus     DeliveryStatus `json:"delivery_status"`
	Timestamp          time.Time      `json:"timestamp"`
	OwnerID            uuid.UUID      `json:"owner_id"`
	CreatedAt          time.Time      `json:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at"`

	// Resolved references, populated on reads.
	Transaction *Transaction `json:"transaction,omitempty"`
	Buyer       *Buyer       `json:"buyer,omitempty"`
}
