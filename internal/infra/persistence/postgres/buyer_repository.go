package postgres

import (
	"context"

	"muthurwa/internal/domain/entity"
	"muthurwa/internal/domain/repository"
	"muthurwa/internal/infra/persistence/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// buyerRepository implements the repository.BuyerRepository interface.
type buyerRepository struct {
	store ownedStore[model.BuyerModel]
}

// NewBuyerRepository is the constructor for buyerRepository.
func NewBuyerRepository(db *gorm.DB) repository.BuyerRepository {
	return &buyerRepository{
		store: newOwnedStore[model.BuyerModel](db, repository.ErrBuyerNotFound),
	}
}

func (repo *buyerRepository) Create(ctx context.Context, buyer *entity.Buyer) error {
	if buyer.ID == uuid.Nil {
		buyer.ID = uuid.New()
	}
	buyerM := fromBuyerDomain(buyer)
	if err := repo.store.create(ctx, buyerM); err != nil {
		return err
	}

	buyer.CreatedAt = buyerM.CreatedAt
	buyer.UpdatedAt = buyerM.UpdatedAt

	return nil
}

func (repo *buyerRepository) List(ctx context.Context, scope repository.Scope) ([]*entity.Buyer, error) {
	buyerModels, err := repo.store.find(ctx, scope)
	if err != nil {
		return nil, err
	}

	return mapModels(buyerModels, toBuyerDomain), nil
}

func (repo *buyerRepository) FindByID(ctx context.Context, scope repository.Scope, id uuid.UUID) (*entity.Buyer, error) {
	buyerM, err := repo.store.first(ctx, scope, id)
	if err != nil {
		return nil, err
	}

	return toBuyerDomain(buyerM), nil
}

func (repo *buyerRepository) Update(ctx context.Context, scope repository.Scope, buyer *entity.Buyer) error {
	buyerM := fromBuyerDomain(buyer)
	if err := repo.store.update(ctx, scope, buyer.ID, buyerM); err != nil {
		return err
	}
	buyer.UpdatedAt = buyerM.UpdatedAt

	return nil
}

func (repo *buyerRepository) Delete(ctx context.Context, scope repository.Scope, id uuid.UUID) error {
	return repo.store.delete(ctx, scope, id)
}

// --- Mapper Functions ---

func toBuyerDomain(data *model.BuyerModel) *entity.Buyer {
	if data == nil {
		return nil
	}

	return &entity.Buyer{
		ID:        data.ID,
		Name:      data.Name,
		Phone:     data.Phone,
		IDNumber:  data.IDNumber,
		Location:  data.Location,
		OwnerID:   data.OwnerID,
		CreatedAt: data.CreatedAt,
		UpdatedAt: data.UpdatedAt,
	}
}

func fromBuyerDomain(data *entity.Buyer) *model.BuyerModel {
	if data == nil {
		return nil
	}

	return &model.BuyerModel{
		ID:        data.ID,
		Name:      data.Name,
		Phone:     data.Phone,
		IDNumber:  data.IDNumber,
		Location:  data.Location,
		OwnerID:   data.OwnerID,
		CreatedAt: data.CreatedAt,
		UpdatedAt: data.UpdatedAt,
	}
}
