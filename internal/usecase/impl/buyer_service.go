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

type buyerService struct {
	buyerRepo repository.BuyerRepository
	validator service.Validator
	logger    *slog.Logger
}

// BuyerServiceParams holds dependencies for BuyerService, injected by Fx.
type BuyerServiceParams struct {
	fx.In

	BuyerRepo repository.BuyerRepository
	Validator service.Validator
	Logger    *slog.Logger
}

// NewBuyerService creates a new buyer service instance
func NewBuyerService(params BuyerServiceParams) usecase.BuyerUsecase {
	return &buyerService{
		buyerRepo: params.BuyerRepo,
		validator: params.Validator,
		logger:    params.Logger,
	}
}

func (srv *buyerService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.Logger(ctx, srv.logger)
}

func (srv *buyerService) CreateBuyer(ctx context.Context, caller entity.Caller, input *usecase.CreateBuyerInput) (*entity.Buyer, error) {
	if err := srv.validator.Struct(input); err != nil {
		return nil, err
	}

	buyer := &entity.Buyer{
		Name:     strings.TrimSpace(input.Name),
		Phone:    strings.TrimSpace(input.Phone),
		IDNumber: strings.TrimSpace(input.IDNumber),
		Location: strings.TrimSpace(input.Location),
		OwnerID:  caller.IdentityID,
	}
	if err := srv.buyerRepo.Create(ctx, buyer); err != nil {
		return nil, mapLedgerError(err, "failed to create buyer")
	}

	srv.log(ctx).Debug("Buyer created", slog.String("buyerID", buyer.ID.String()))

	return buyer, nil
}

func (srv *buyerService) ListBuyers(ctx context.Context, caller entity.Caller) ([]*entity.Buyer, error) {
	buyers, err := srv.buyerRepo.List(ctx, repository.ScopeFor(caller))
	if err != nil {
		return nil, mapLedgerError(err, "failed to list buyers")
	}

	return buyers, nil
}

func (srv *buyerService) GetBuyer(ctx context.Context, caller entity.Caller, id uuid.UUID) (*entity.Buyer, error) {
	buyer, err := srv.buyerRepo.FindByID(ctx, repository.ScopeFor(caller), id)
	if err != nil {
		return nil, mapLedgerError(err, "failed to find buyer")
	}

	return buyer, nil
}

func (srv *buyerService) UpdateBuyer(ctx context.Context, caller entity.Caller, id uuid.UUID, input *usecase.UpdateBuyerInput) (*entity.Buyer, error) {
	if err := srv.validator.Struct(input); err != nil {
		return nil, err
	}

	scope := repository.ScopeFor(caller)
	buyer, err := srv.buyerRepo.FindByID(ctx, scope, id)
	if err != nil {
		return nil, mapLedgerError(err, "failed to find buyer")
	}

	setString(&buyer.Name, input.Name)
	setString(&buyer.Phone, input.Phone)
	setString(&buyer.IDNumber, input.IDNumber)
	setString(&buyer.Location, input.Location)

	if err := srv.buyerRepo.Update(ctx, scope, buyer); err != nil {
		return nil, mapLedgerError(err, "failed to update buyer")
	}

	return buyer, nil
}

func (srv *buyerService) DeleteBuyer(ctx context.Context, caller entity.Caller, id uuid.UUID) error {
	if err := srv.buyerRepo.Delete(ctx, repository.ScopeFor(caller), id); err != nil {
		return mapLedgerError(err, "failed to delete buyer")
	}

	srv.log(ctx).Debug("Buyer deleted", slog.String("buyerID", id.String()))

	return nil
}
