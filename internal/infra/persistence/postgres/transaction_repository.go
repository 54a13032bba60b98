package postgres

import (
	"context"

	"muthurwa/internal/domain/entity"
	"muthurwa/internal/domain/repository"
	"muthurwa/internal/infra/persistence/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// transactionRepository implements the repository.TransactionRepository interface.
type transactionRepository struct {
	store ownedStore[model.TransactionModel]
}

// NewTransactionRepository is the constructor for transactionRepository.
func NewTransactionRepository(db *gorm.DB) repository.TransactionRepository {
	return &transactionRepository{
		store: newOwnedStore[model.TransactionModel](db, repository.ErrTransactionNotFound, "Buyer", "ProductType"),
	}
}

func (repo *transactionRepository) Create(ctx context.Context, transaction *entity.Transaction) error {
	if transaction.ID == uuid.Nil {
		transaction.ID = uuid.New()
	}
	transactionM := fromTransactionDomain(transaction)
	if err := repo.store.create(ctx, transactionM); err != nil {
		return err
	}

	transaction.CreatedAt = transactionM.CreatedAt
	transaction.UpdatedAt = transactionM.UpdatedAt

	return nil
}

func (repo *transactionRepository) List(ctx context.Context, scope repository.Scope, filter repository.TransactionFilter) ([]*entity.Transaction, error) {
	transactionModels, err := repo.store.find(ctx, scope, transactionFilter(filter))
	if err != nil {
		return nil, err
	}

	return mapModels(transactionModels, toTransactionDomain), nil
}

func (repo *transactionRepository) FindByID(ctx context.Context, scope repository.Scope, id uuid.UUID) (*entity.Transaction, error) {
	transactionM, err := repo.store.first(ctx, scope, id)
	if err != nil {
		return nil, err
	}

	return toTransactionDomain(transactionM), nil
}

func (repo *transactionRepository) Update(ctx context.Context, scope repository.Scope, transaction *entity.Transaction) error {
	transactionM := fromTransactionDomain(transaction)
	if err := repo.store.update(ctx, scope, transaction.ID, transactionM); err != nil {
		return err
	}
	transaction.UpdatedAt = transactionM.UpdatedAt

	return nil
}

func (repo *transactionRepository) Delete(ctx context.Context, scope repository.Scope, id uuid.UUID) error {
	return repo.store.delete(ctx, scope, id)
}

func transactionFilter(filter repository.TransactionFilter) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if len(filter.PaymentStatuses) > 0 {
			statuses := make([]string, 0, len(filter.PaymentStatuses))
			for _, s := range filter.PaymentStatuses {
				statuses = append(statuses, string(s))
			}
			db = db.Where("payment_status IN ?", statuses)
		}
		if filter.DeliveryStatus != nil {
			db = db.Where("delivery_status = ?", string(*filter.DeliveryStatus))
		}
		if filter.DueOnOrBefore != nil {
			db = db.Where("due_date IS NOT NULL AND due_date <= ?", filter.DueOnOrBefore.UTC())
		}

		return db
	}
}

// --- Mapper Functions ---

func toTransactionDomain(data *model.TransactionModel) *entity.Transaction {
	if data == nil {
		return nil
	}

	return &entity.Transaction{
		ID:             data.ID,
		BuyerID:        data.BuyerID,
		ProductTypeID:  data.ProductTypeID,
		Quantity:       data.Quantity,
		UnitPrice:      data.UnitPrice,
		TotalAmount:    data.TotalAmount,
		PaidAmount:     data.PaidAmount,
		PaymentStatus:  entity.PaymentStatus(data.PaymentStatus),
		DeliveryStatus: entity.DeliveryStatus(data.DeliveryStatus),
		DeliveryDate:   utcPtr(data.DeliveryDate),
		DueDate:        utcPtr(data.DueDate),
		OwnerID:        data.OwnerID,
		CreatedAt:      data.CreatedAt,
		UpdatedAt:      data.UpdatedAt,
		Buyer:          toBuyerDomain(data.Buyer),
		ProductType:    toProductTypeDomain(data.ProductType),
	}
}

func fromTransactionDomain(data *entity.Transaction) *model.TransactionModel {
	if data == nil {
		return nil
	}

	return &model.TransactionModel{
		ID:             data.ID,
		BuyerID:        data.BuyerID,
		ProductTypeID:  data.ProductTypeID,
		Quantity:       data.Quantity,
		UnitPrice:      data.UnitPrice,
		TotalAmount:    data.TotalAmount,
		PaidAmount:     data.PaidAmount,
		PaymentStatus:  string(data.PaymentStatus),
		DeliveryStatus: string(data.DeliveryStatus),
		DeliveryDate:   utcPtr(data.DeliveryDate),
		DueDate:        utcPtr(data.DueDate),
		OwnerID:        data.OwnerID,
		CreatedAt:      data.CreatedAt,
		UpdatedAt:      data.UpdatedAt,
	}
}
