package postgres

import (
	"context"

	"muthurwa/internal/domain/entity"
	"muthurwa/internal/domain/repository"
	"muthurwa/internal/infra/persistence/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// productTypeRepository implements the repository.ProductTypeRepository interface.
type productTypeRepository struct {
	store ownedStore[model.ProductTypeModel]
}

// NewProductTypeRepository is the constructor for productTypeRepository.
func NewProductTypeRepository(db *gorm.DB) repository.ProductTypeRepository {
	return &productTypeRepository{
		store: newOwnedStore[model.ProductTypeModel](db, repository.ErrProductTypeNotFound),
	}
}

func (repo *productTypeRepository) Create(ctx context.Context, productType *entity.ProductType) error {
	if productType.ID == uuid.Nil {
		productType.ID = uuid.New()
	}
	productTypeM := fromProductTypeDomain(productType)
	if err := repo.store.create(ctx, productTypeM); err != nil {
		return err
	}

	productType.CreatedAt = productTypeM.CreatedAt
	productType.UpdatedAt = productTypeM.UpdatedAt

	return nil
}

func (repo *productTypeRepository) List(ctx context.Context, scope repository.Scope) ([]*entity.ProductType, error) {
	productTypeModels, err := repo.store.find(ctx, scope)
	if err != nil {
		return nil, err
	}

	return mapModels(productTypeModels, toProductTypeDomain), nil
}

func (repo *productTypeRepository) FindByID(ctx context.Context, scope repository.Scope, id uuid.UUID) (*entity.ProductType, error) {
	productTypeM, err := repo.store.first(ctx, scope, id)
	if err != nil {
		return nil, err
	}

	return toProductTypeDomain(productTypeM), nil
}

func (repo *productTypeRepository) Update(ctx context.Context, scope repository.Scope, productType *entity.ProductType) error {
	productTypeM := fromProductTypeDomain(productType)
	if err := repo.store.update(ctx, scope, productType.ID, productTypeM); err != nil {
		return err
	}
	productType.UpdatedAt = productTypeM.UpdatedAt

	return nil
}

func (repo *productTypeRepository) Delete(ctx context.Context, scope repository.Scope, id uuid.UUID) error {
	return repo.store.delete(ctx, scope, id)
}

// --- Mapper Functions ---

func toProductTypeDomain(data *model.ProductTypeModel) *entity.ProductType {
	if data == nil {
		return nil
	}

	return &entity.ProductType{
		ID:           data.ID,
		Name:         data.Name,
		Variety:      data.Variety,
		Unit:         data.Unit,
		Description:  data.Description,
		DefaultPrice: data.DefaultPrice,
		OwnerID:      data.OwnerID,
		CreatedAt:    data.CreatedAt,
		UpdatedAt:    data.UpdatedAt,
	}
}

func fromProductTypeDomain(data *entity.ProductType) *model.ProductTypeModel {
	if data == nil {
		return nil
	}

	return &model.ProductTypeModel{
		ID:           data.ID,
		Name:         data.Name,
		Variety:      data.Variety,
		Unit:         data.Unit,
		Description:  data.Description,
		DefaultPrice: data.DefaultPrice,
		OwnerID:      data.OwnerID,
		CreatedAt:    data.CreatedAt,
		UpdatedAt:    data.UpdatedAt,
	}
}
