package postgres

import (
	"context"
	"time"

	"muthurwa/internal/domain/entity"
	domainerrors "muthurwa/internal/domain/errors"
	"muthurwa/internal/domain/repository"
	"muthurwa/internal/infra/persistence/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// deliveryRepository implements the repository.DeliveryRepository interface.
type deliveryRepository struct {
	db    *gorm.DB
	store ownedStore[model.DeliveryModel]
}

// NewDeliveryRepository is the constructor for deliveryRepository.
func NewDeliveryRepository(db *gorm.DB) repository.DeliveryRepository {
	return &deliveryRepository{
		db: db,
		store: newOwnedStore[model.DeliveryModel](db, repository.ErrDeliveryNotFound, "Transaction", "Buyer").
			withConflict(repository.ErrDeliveryExists),
	}
}

func (repo *deliveryRepository) Create(ctx context.Context, delivery *entity.Delivery) error {
	prepareDelivery(delivery)
	deliveryM := fromDeliveryDomain(delivery)
	if err := repo.store.create(ctx, deliveryM); err != nil {
		return err
	}

	delivery.CreatedAt = deliveryM.CreatedAt
	delivery.UpdatedAt = deliveryM.UpdatedAt

	return nil
}

// CreateIfAbsent relies on the (owner_id, transaction_id) unique index, so
// concurrent creates for one transaction leave a single row.
func (repo *deliveryRepository) CreateIfAbsent(ctx context.Context, delivery *entity.Delivery) (bool, error) {
	prepareDelivery(delivery)
	deliveryM := fromDeliveryDomain(delivery)

	result := repo.db.WithContext(ctx).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "owner_id"}, {Name: "transaction_id"}},
			DoNothing: true,
		}).
		Create(deliveryM)
	if result.Error != nil {
		return false, domainerrors.NewDatabaseExecuteError(result.Error, "failed to create delivery")
	}

	if result.RowsAffected == 0 {
		return false, nil
	}

	delivery.CreatedAt = deliveryM.CreatedAt
	delivery.UpdatedAt = deliveryM.UpdatedAt

	return true, nil
}

func (repo *deliveryRepository) List(ctx context.Context, scope repository.Scope, filter repository.DeliveryFilter) ([]*entity.Delivery, error) {
	deliveryModels, err := repo.store.find(ctx, scope, func(db *gorm.DB) *gorm.DB {
		if filter.DeliveryStatus != nil {
			db = db.Where("delivery_status = ?", string(*filter.DeliveryStatus))
		}

		return db
	})
	if err != nil {
		return nil, err
	}

	return mapModels(deliveryModels, toDeliveryDomain), nil
}

func (repo *deliveryRepository) FindByID(ctx context.Context, scope repository.Scope, id uuid.UUID) (*entity.Delivery, error) {
	deliveryM, err := repo.store.first(ctx, scope, id)
	if err != nil {
		return nil, err
	}

	return toDeliveryDomain(deliveryM), nil
}

func (repo *deliveryRepository) Update(ctx context.Context, scope repository.Scope, delivery *entity.Delivery) error {
	deliveryM := fromDeliveryDomain(delivery)
	if err := repo.store.update(ctx, scope, delivery.ID, deliveryM); err != nil {
		return err
	}
	delivery.UpdatedAt = deliveryM.UpdatedAt

	return nil
}

func (repo *deliveryRepository) Delete(ctx context.Context, scope repository.Scope, id uuid.UUID) error {
	return repo.store.delete(ctx, scope, id)
}

// MarkDelivered sets the pair's delivery to delivered with a single UPDATE.
func (repo *deliveryRepository) MarkDelivered(ctx context.Context, ownerID, transactionID uuid.UUID) (bool, error) {
	result := repo.db.WithContext(ctx).
		Model(&model.DeliveryModel{}).
		Where("owner_id = ? AND transaction_id = ?", ownerID, transactionID).
		Update("delivery_status", string(entity.DeliveryDelivered))
	if result.Error != nil {
		return false, domainerrors.NewDatabaseExecuteError(result.Error, "failed to mark delivery delivered")
	}

	return result.RowsAffected > 0, nil
}

func prepareDelivery(delivery *entity.Delivery) {
	if delivery.ID == uuid.Nil {
		delivery.ID = uuid.New()
	}
	if delivery.Timestamp.IsZero() {
		delivery.Timestamp = time.Now().UTC()
	}
}

// --- Mapper Functions ---

func toDeliveryDomain(data *model.DeliveryModel) *entity.Delivery {
	if data == nil {
		return nil
	}

	return &entity.Delivery{
		ID:                 data.ID,
		TransactionID:      data.TransactionID,
		BuyerID:            data.BuyerID,
		DeliveryPersonName: data.DeliveryPersonName,
		DeliveryLocation:   data.DeliveryLocation,
		DeliveryStatus:     entity.DeliveryStatus(data.DeliveryStatus),
		Timestamp:          data.Timestamp.UTC(),
		OwnerID:            data.OwnerID,
		CreatedAt:          data.CreatedAt,
		UpdatedAt:          data.UpdatedAt,
		Transaction:        toTransactionDomain(data.Transaction),
		Buyer:              toBuyerDomain(data.Buyer),
	}
}

func fromDeliveryDomain(data *entity.Delivery) *model.DeliveryModel {
	if data == nil {
		return nil
	}

	return &model.DeliveryModel{
		ID:                 data.ID,
		TransactionID:      data.TransactionID,
		BuyerID:            data.BuyerID,
		DeliveryPersonName: data.DeliveryPersonName,
		DeliveryLocation:   data.DeliveryLocation,
		DeliveryStatus:     string(data.DeliveryStatus),
		Timestamp:          data.Timestamp.UTC(),
		OwnerID:            data.OwnerID,
		CreatedAt:          data.CreatedAt,
		UpdatedAt:          data.UpdatedAt,
	}
}
