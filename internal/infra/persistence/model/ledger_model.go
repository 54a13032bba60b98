package model

import (
	"time"

	"github.com/google/uuid"
)

// BuyerModel mirrors the 'buyers' table.
type BuyerModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string    `gorm:"type:varchar(100);not null"`
	Phone     string    `gorm:"type:varchar(32);not null"`
	IDNumber  string    `gorm:"column:id_number;type:varchar(64);not null"`
	Location  string    `gorm:"type:varchar(255);not null"`
	OwnerID   uuid.UUID `gorm:"type:uuid;not null;index"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (BuyerModel) TableName() string {
	return "buyers"
}

// ProductTypeModel mirrors the 'product_types' table.
type ProductTypeModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name         string    `gorm:"type:varchar(100);not null"`
	Variety      string    `gorm:"type:varchar(100)"`
	Unit         string    `gorm:"type:varchar(32);not null"`
	Description  string    `gorm:"type:text"`
	DefaultPrice float64   `gorm:"not null"`
	OwnerID      uuid.UUID `gorm:"type:uuid;not null;index"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName explicitly sets the table name for GORM.
func (ProductTypeModel) TableName() string {
	return "product_types"
}

// TransactionModel mirrors the 'transactions' table. Buyer and ProductType
// are belongs-to associations resolved with Preload.
type TransactionModel struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	BuyerID        uuid.UUID `gorm:"type:uuid;not null;index"`
	ProductTypeID  uuid.UUID `gorm:"type:uuid;not null"`
	Quantity       float64   `gorm:"not null"`
	UnitPrice      float64   `gorm:"not null"`
	TotalAmount    float64   `gorm:"not null"`
	PaidAmount     float64   `gorm:"not null"`
	PaymentStatus  string    `gorm:"type:varchar(16);not null;index"`
	DeliveryStatus string    `gorm:"type:varchar(16);not null"`
	DeliveryDate   *time.Time
	DueDate        *time.Time `gorm:"index"`
	OwnerID        uuid.UUID  `gorm:"type:uuid;not null;index"`
	CreatedAt      time.Time
	UpdatedAt      time.Time

	Buyer       *BuyerModel       `gorm:"foreignKey:BuyerID"`
	ProductType *ProductTypeModel `gorm:"foreignKey:ProductTypeID"`
}

// TableName explicitly sets the table name for GORM.
func (TransactionModel) TableName() string {
	return "transactions"
}

// DeliveryModel mirrors the 'deliveries' table. The composite unique index
// keeps a single delivery per (owner, transaction).
type DeliveryModel struct {
	ID                 uuid.UUID `gorm:"type:uuid;primaryKey"`
	TransactionID      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_deliveries_owner_transaction,priority:2"`
	BuyerID            uuid.UUID `gorm:"type:uuid;not null"`
	DeliveryPersonName string    `gorm:"type:varchar(100);not null"`
	DeliveryLocation   string    `gorm:"type:varchar(255);not null"`
	DeliveryStatus     string    `gorm:"type:varchar(16);not null;index"`
	Timestamp          time.Time `gorm:"not null"`
	OwnerID            uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_deliveries_owner_transaction,priority:1"`
	CreatedAt          time.Time
	UpdatedAt          time.Time

	Transaction *TransactionModel `gorm:"foreignKey:TransactionID"`
	Buyer       *BuyerModel       `gorm:"foreignKey:BuyerID"`
}

// TableName explicitly sets the table name for GORM.
func (DeliveryModel) TableName() string {
	return "deliveries"
}

// All lists every model in migration order.
func All() []any {
	return []any{
		&IdentityModel{},
		&BuyerModel{},
		&ProductTypeModel{},
		&TransactionModel{},
		&DeliveryModel{},
	}
}
