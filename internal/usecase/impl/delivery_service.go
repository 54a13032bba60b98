package impl

import (
	"context"
	"log/slog"
	"strings"

	deliverycontext "muthurwa/internal/delivery/context"
	"muthurwa/internal/domain/entity"
	domainerrors "muthurwa/internal/domain/errors"
	"muthurwa/internal/domain/repository"
	"muthurwa/internal/domain/service"
	"muthurwa/internal/usecase"

	"github.com/google/uuid"
	"go.uber.org/fx"
)

type deliveryService struct {
	deliveryRepo    repository.DeliveryRepository
	transactionRepo repository.TransactionRepository
	buyerRepo       repository.BuyerRepository
	validator       service.Validator
	logger          *slog.Logger
}

// DeliveryServiceParams holds dependencies for DeliveryService, injected by Fx.
type DeliveryServiceParams struct {
	fx.In

	DeliveryRepo    repository.DeliveryRepository
	TransactionRepo repository.TransactionRepository
	BuyerRepo       repository.BuyerRepository
	Validator       service.Validator
	Logger          *slog.Logger
}

// NewDeliveryService creates a new delivery service instance
func NewDeliveryService(params DeliveryServiceParams) usecase.DeliveryUsecase {
	return &deliveryService{
		deliveryRepo:    params.DeliveryRepo,
		transactionRepo: params.TransactionRepo,
		buyerRepo:       params.BuyerRepo,
		validator:       params.Validator,
		logger:          params.Logger,
	}
}

func (srv *deliveryService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.Logger(ctx, srv.logger)
}

// CreateDelivery records a delivery by hand. A second delivery for the same
// transaction and owner is rejected.
func (srv *deliveryService) CreateDelivery(ctx context.Context, caller entity.Caller, input *usecase.CreateDeliveryInput) (*entity.Delivery, error) {
	inputErr := srv.validator.Struct(input)

	scope := repository.ScopeFor(caller)
	transactionID, buyerID, refErr := srv.resolveReferences(ctx, scope, &input.TransactionID, &input.BuyerID)
	if err := domainerrors.JoinValidation(inputErr, refErr); err != nil {
		return nil, err
	}

	delivery := &entity.Delivery{
		TransactionID:      transactionID,
		BuyerID:            buyerID,
		DeliveryPersonName: strings.TrimSpace(input.DeliveryPersonName),
		DeliveryLocation:   strings.TrimSpace(input.DeliveryLocation),
		DeliveryStatus:     entity.DeliveryPending,
		OwnerID:            caller.IdentityID,
	}
	if input.DeliveryStatus != "" {
		delivery.DeliveryStatus = input.DeliveryStatus
	}

	if err := srv.deliveryRepo.Create(ctx, delivery); err != nil {
		return nil, mapLedgerError(err, "failed to create delivery")
	}

	srv.log(ctx).Debug("Delivery created",
		slog.String("deliveryID", delivery.ID.String()),
		slog.String("transactionID", transactionID.String()),
	)

	return srv.GetDelivery(ctx, caller, delivery.ID)
}

func (srv *deliveryService) ListDeliveries(ctx context.Context, caller entity.Caller, query *usecase.DeliveryQuery) ([]*entity.Delivery, error) {
	if query == nil {
		query = &usecase.DeliveryQuery{}
	}
	if err := srv.validator.Struct(query); err != nil {
		return nil, err
	}

	filter := repository.DeliveryFilter{}
	if query.DeliveryStatus != "" {
		status := entity.DeliveryStatus(query.DeliveryStatus)
		filter.DeliveryStatus = &status
	}

	deliveries, err := srv.deliveryRepo.List(ctx, repository.ScopeFor(caller), filter)
	if err != nil {
		return nil, mapLedgerError(err, "failed to list deliveries")
	}

	return deliveries, nil
}

func (srv *deliveryService) GetDelivery(ctx context.Context, caller entity.Caller, id uuid.UUID) (*entity.Delivery, error) {
	delivery, err := srv.deliveryRepo.FindByID(ctx, repository.ScopeFor(caller), id)
	if err != nil {
		return nil, mapLedgerError(err, "failed to find delivery")
	}

	return delivery, nil
}

func (srv *deliveryService) UpdateDelivery(ctx context.Context, caller entity.Caller, id uuid.UUID, input *usecase.UpdateDeliveryInput) (*entity.Delivery, error) {
	if err := srv.validator.Struct(input); err != nil {
		return nil, err
	}

	scope := repository.ScopeFor(caller)
	delivery, err := srv.deliveryRepo.FindByID(ctx, scope, id)
	if err != nil {
		return nil, mapLedgerError(err, "failed to find delivery")
	}

	if input.TransactionID != nil || input.BuyerID != nil {
		transactionID, buyerID, err := srv.resolveReferences(ctx, scope, input.TransactionID, input.BuyerID)
		if err != nil {
			return nil, err
		}
		if input.TransactionID != nil {
			delivery.TransactionID = transactionID
		}
		if input.BuyerID != nil {
			delivery.BuyerID = buyerID
		}
	}
	setString(&delivery.DeliveryPersonName, input.DeliveryPersonName)
	setString(&delivery.DeliveryLocation, input.DeliveryLocation)
	if input.DeliveryStatus != nil {
		delivery.DeliveryStatus = *input.DeliveryStatus
	}

	if err := srv.deliveryRepo.Update(ctx, scope, delivery); err != nil {
		return nil, mapLedgerError(err, "failed to update delivery")
	}

	return srv.GetDelivery(ctx, caller, id)
}

func (srv *deliveryService) DeleteDelivery(ctx context.Context, caller entity.Caller, id uuid.UUID) error {
	if err := srv.deliveryRepo.Delete(ctx, repository.ScopeFor(caller), id); err != nil {
		return mapLedgerError(err, "failed to delete delivery")
	}

	return nil
}

// resolveReferences parses and checks whichever of the references is given.
// Every unusable reference is reported together.
func (srv *deliveryService) resolveReferences(ctx context.Context, scope repository.Scope, rawTransactionID, rawBuyerID *string) (uuid.UUID, uuid.UUID, error) {
	var (
		transactionID, buyerID   uuid.UUID
		transactionErr, buyerErr error
	)

	if rawTransactionID != nil {
		transactionID, transactionErr = lookupReference(ctx, "transaction_id", *rawTransactionID, repository.ErrTransactionNotFound,
			func(ctx context.Context, id uuid.UUID) error {
				_, err := srv.transactionRepo.FindByID(ctx, scope, id)

				return err
			})
	}
	if rawBuyerID != nil {
		buyerID, buyerErr = lookupReference(ctx, "buyer_id", *rawBuyerID, repository.ErrBuyerNotFound,
			func(ctx context.Context, id uuid.UUID) error {
				_, err := srv.buyerRepo.FindByID(ctx, scope, id)

				return err
			})
	}

	if err := domainerrors.JoinValidation(transactionErr, buyerErr); err != nil {
		return uuid.Nil, uuid.Nil, err
	}

	return transactionID, buyerID, nil
}
