package impl

import (
	"context"
	"log/slog"
	"strings"

	deliverycontext "muthurwa/internal/delivery/context"
	"muthurwa/internal/domain/entity"
	"muthurwa/internal/domain/repository"
	"muthurwa/internal/domain/service"
	"muthurwa/internal/usecase"

	"github.com/google/uuid"
	"go.uber.org/fx"
)

type productTypeService struct {
	productTypeRepo repository.ProductTypeRepository
	validator       service.Validator
	logger          *slog.Logger
}

// ProductTypeServiceParams holds dependencies for ProductTypeService, injected by Fx.
type ProductTypeServiceParams struct {
	fx.In

	ProductTypeRepo repository.ProductTypeRepository
	Validator       service.Validator
	Logger          *slog.Logger
}

// NewProductTypeService creates a new product type service instance
func NewProductTypeService(params ProductTypeServiceParams) usecase.ProductTypeUsecase {
	return &productTypeService{
		productTypeRepo: params.ProductTypeRepo,
		validator:       params.Validator,
		logger:          params.Logger,
	}
}

func (srv *productTypeService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.Logger(ctx, srv.logger)
}

func (srv *productTypeService) CreateProductType(ctx context.Context, caller entity.Caller, input *usecase.CreateProductTypeInput) (*entity.ProductType, error) {
	if err := srv.validator.Struct(input); err != nil {
		return nil, err
	}

	productType := &entity.ProductType{
		Name:         strings.TrimSpace(input.Name),
		Variety:      strings.TrimSpace(input.Variety),
		Unit:         strings.TrimSpace(input.Unit),
		Description:  strings.TrimSpace(input.Description),
		DefaultPrice: input.DefaultPrice.Value,
		OwnerID:      caller.IdentityID,
	}
	if err := srv.productTypeRepo.Create(ctx, productType); err != nil {
		return nil, mapLedgerError(err, "failed to create product type")
	}

	srv.log(ctx).Debug("Product type created", slog.String("productTypeID", productType.ID.String()))

	return productType, nil
}

func (srv *productTypeService) ListProductTypes(ctx context.Context, caller entity.Caller) ([]*entity.ProductType, error) {
	productTypes, err := srv.productTypeRepo.List(ctx, repository.ScopeFor(caller))
	if err != nil {
		return nil, mapLedgerError(err, "failed to list product types")
	}

	return productTypes, nil
}

func (srv *productTypeService) GetProductType(ctx context.Context, caller entity.Caller, id uuid.UUID) (*entity.ProductType, error) {
	productType, err := srv.productTypeRepo.FindByID(ctx, repository.ScopeFor(caller), id)
	if err != nil {
		return nil, mapLedgerError(err, "failed to find product type")
	}

	return productType, nil
}

func (srv *productTypeService) UpdateProductType(ctx context.Context, caller entity.Caller, id uuid.UUID, input *usecase.UpdateProductTypeInput) (*entity.ProductType, error) {
	if err := srv.validator.Struct(input); err != nil {
		return nil, err
	}

	scope := repository.ScopeFor(caller)
	productType, err := srv.productTypeRepo.FindByID(ctx, scope, id)
	if err != nil {
		return nil, mapLedgerError(err, "failed to find product type")
	}

	setString(&productType.Name, input.Name)
	setString(&productType.Variety, input.Variety)
	setString(&productType.Unit, input.Unit)
	setString(&productType.Description, input.Description)
	setNumber(&productType.DefaultPrice, input.DefaultPrice)

	if err := srv.productTypeRepo.Update(ctx, scope, productType); err != nil {
		return nil, mapLedgerError(err, "failed to update product type")
	}

	return productType, nil
}

func (srv *productTypeService) DeleteProductType(ctx context.Context, caller entity.Caller, id uuid.UUID) error {
	if err := srv.productTypeRepo.Delete(ctx, repository.ScopeFor(caller), id); err != nil {
		return mapLedgerError(err, "failed to delete product type")
	}

	return nil
}
