package impl

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"muthurwa/config"
	deliverycontext "muthurwa/internal/delivery/context"
	"muthurwa/internal/domain/constants"
	"muthurwa/internal/domain/entity"
	domainerrors "muthurwa/internal/domain/errors"
	"muthurwa/internal/domain/repository"
	"muthurwa/internal/domain/service"
	"muthurwa/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

type transactionService struct {
	transactionRepo repository.TransactionRepository
	buyerRepo       repository.BuyerRepository
	productTypeRepo repository.ProductTypeRepository
	deliveryRepo    repository.DeliveryRepository
	publisher       service.EventPublisher
	receipts        service.ReceiptService
	validator       service.Validator
	defaultPerson   string
	defaultLocation string
	logger          *slog.Logger
}

// TransactionServiceParams holds dependencies for TransactionService, injected by Fx.
type TransactionServiceParams struct {
	fx.In

	TransactionRepo repository.TransactionRepository
	BuyerRepo       repository.BuyerRepository
	ProductTypeRepo repository.ProductTypeRepository
	DeliveryRepo    repository.DeliveryRepository
	Publisher       service.EventPublisher
	Receipts        service.ReceiptService
	Validator       service.Validator
	Config          *config.Config
	Logger          *slog.Logger
}

// NewTransactionService creates a new transaction service instance
func NewTransactionService(params TransactionServiceParams) usecase.TransactionUsecase {
	srv := &transactionService{
		transactionRepo: params.TransactionRepo,
		buyerRepo:       params.BuyerRepo,
		productTypeRepo: params.ProductTypeRepo,
		deliveryRepo:    params.DeliveryRepo,
		publisher:       params.Publisher,
		receipts:        params.Receipts,
		validator:       params.Validator,
		defaultPerson:   "Me",
		defaultLocation: "N/A",
		logger:          params.Logger,
	}
	if params.Config != nil && params.Config.Ledger != nil {
		srv.defaultPerson = params.Config.Ledger.DefaultDeliveryPerson
		srv.defaultLocation = params.Config.Ledger.DefaultDeliveryLocation
	}

	return srv
}

func (srv *transactionService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.Logger(ctx, srv.logger)
}

// CreateTransaction records the sale, then creates its delivery when a
// delivery status was supplied. The delivery write is best effort: a failure
// is logged and the committed sale is returned.
func (srv *transactionService) CreateTransaction(ctx context.Context, caller entity.Caller, input *usecase.CreateTransactionInput) (*entity.Transaction, error) {
	inputErr := srv.validator.Struct(input)

	scope := repository.ScopeFor(caller)
	buyerID, productTypeID, refErr := srv.resolveReferences(ctx, scope, &input.BuyerID, &input.ProductTypeID)
	if err := domainerrors.JoinValidation(inputErr, refErr); err != nil {
		return nil, err
	}
	deliveryDate, err := optionalDate("delivery_date", input.DeliveryDate)
	if err != nil {
		return nil, err
	}
	dueDate, err := optionalDate("due_date", input.DueDate)
	if err != nil {
		return nil, err
	}

	transaction := &entity.Transaction{
		BuyerID:        buyerID,
		ProductTypeID:  productTypeID,
		Quantity:       input.Quantity.Value,
		UnitPrice:      input.UnitPrice.Value,
		TotalAmount:    numberOr(input.TotalAmount, input.Quantity.Value*input.UnitPrice.Value),
		PaidAmount:     numberOr(input.PaidAmount, 0),
		PaymentStatus:  entity.PaymentUnpaid,
		DeliveryStatus: entity.DeliveryPending,
		DeliveryDate:   deliveryDate,
		DueDate:        dueDate,
		OwnerID:        caller.IdentityID,
	}
	if input.PaymentStatus != "" {
		transaction.PaymentStatus = input.PaymentStatus
	}
	if input.DeliveryStatus != "" {
		transaction.DeliveryStatus = input.DeliveryStatus
	}

	if err := srv.transactionRepo.Create(ctx, transaction); err != nil {
		return nil, mapLedgerError(err, "failed to create transaction")
	}

	srv.log(ctx).Info("Transaction created",
		slog.String("transactionID", transaction.ID.String()),
		slog.String("ownerID", transaction.OwnerID.String()),
	)

	if input.DeliveryStatus.IsValid() {
		srv.createDelivery(ctx, caller, transaction, input.DeliveryLocation)
	}

	srv.publish(ctx, &service.LedgerEvent{
		Type:          constants.EventTransactionCreated,
		OwnerID:       transaction.OwnerID.String(),
		TransactionID: transaction.ID.String(),
		TotalAmount:   transaction.TotalAmount,
	})

	return srv.reload(ctx, transaction)
}

func (srv *transactionService) createDelivery(ctx context.Context, caller entity.Caller, transaction *entity.Transaction, location string) {
	person := strings.TrimSpace(caller.DisplayName)
	if person == "" {
		person = srv.defaultPerson
	}
	location = strings.TrimSpace(location)
	if location == "" {
		location = srv.defaultLocation
	}

	delivery := &entity.Delivery{
		TransactionID:      transaction.ID,
		BuyerID:            transaction.BuyerID,
		DeliveryPersonName: person,
		DeliveryLocation:   location,
		DeliveryStatus:     transaction.DeliveryStatus,
		OwnerID:            transaction.OwnerID,
	}

	created, err := srv.deliveryRepo.CreateIfAbsent(ctx, delivery)
	if err != nil {
		srv.log(ctx).Error("Failed to create delivery for transaction",
			slog.String("transactionID", transaction.ID.String()),
			slog.Any("error", err),
		)

		return
	}
	if !created {
		srv.log(ctx).Debug("Delivery already exists for transaction", slog.String("transactionID", transaction.ID.String()))
	}
}

func (srv *transactionService) ListTransactions(ctx context.Context, caller entity.Caller, query *usecase.TransactionQuery) ([]*entity.Transaction, error) {
	if query == nil {
		query = &usecase.TransactionQuery{}
	}
	if err := srv.validator.Struct(query); err != nil {
		return nil, err
	}

	filter := repository.TransactionFilter{}
	if query.PaymentStatus != "" {
		filter.PaymentStatuses = []entity.PaymentStatus{entity.PaymentStatus(query.PaymentStatus)}
	}
	if query.DeliveryStatus != "" {
		status := entity.DeliveryStatus(query.DeliveryStatus)
		filter.DeliveryStatus = &status
	}
	if err := applyDueDate(&filter, query.DueDate); err != nil {
		return nil, err
	}

	transactions, err := srv.transactionRepo.List(ctx, repository.ScopeFor(caller), filter)
	if err != nil {
		return nil, mapLedgerError(err, "failed to list transactions")
	}

	return transactions, nil
}

// ListDebts is always owner scoped; admins see only their own debts here.
func (srv *transactionService) ListDebts(ctx context.Context, caller entity.Caller, query *usecase.DebtQuery) ([]*entity.Transaction, error) {
	if query == nil {
		query = &usecase.DebtQuery{}
	}
	if err := srv.validator.Struct(query); err != nil {
		return nil, err
	}

	filter := repository.TransactionFilter{PaymentStatuses: entity.DebtStatuses()}
	if err := applyDueDate(&filter, query.DueDate); err != nil {
		return nil, err
	}

	debts, err := srv.transactionRepo.List(ctx, repository.OwnedBy(caller.IdentityID), filter)
	if err != nil {
		return nil, mapLedgerError(err, "failed to list debts")
	}

	return debts, nil
}

func applyDueDate(filter *repository.TransactionFilter, raw string) error {
	if strings.TrimSpace(raw) == "" {
		return nil
	}

	bound, err := entity.ParseDateBound(raw)
	if err != nil {
		return domainerrors.NewFieldError("dueDate", "must be a date (YYYY-MM-DD)")
	}
	filter.DueOnOrBefore = &bound

	return nil
}

func (srv *transactionService) GetTransaction(ctx context.Context, caller entity.Caller, id uuid.UUID) (*entity.Transaction, error) {
	transaction, err := srv.transactionRepo.FindByID(ctx, repository.ScopeFor(caller), id)
	if err != nil {
		return nil, mapLedgerError(err, "failed to find transaction")
	}

	return transaction, nil
}

// UpdateTransaction applies the partial update. Setting the delivery status
// to delivered marks the sale's delivery delivered as well; setting it back
// to pending leaves the delivery alone.
func (srv *transactionService) UpdateTransaction(ctx context.Context, caller entity.Caller, id uuid.UUID, input *usecase.UpdateTransactionInput) (*entity.Transaction, error) {
	if err := srv.validator.Struct(input); err != nil {
		return nil, err
	}

	scope := repository.ScopeFor(caller)
	transaction, err := srv.transactionRepo.FindByID(ctx, scope, id)
	if err != nil {
		return nil, mapLedgerError(err, "failed to find transaction")
	}
	previousStatus := transaction.DeliveryStatus

	if input.BuyerID != nil || input.ProductTypeID != nil {
		buyerID, productTypeID, err := srv.resolveReferences(ctx, scope, input.BuyerID, input.ProductTypeID)
		if err != nil {
			return nil, err
		}
		if input.BuyerID != nil {
			transaction.BuyerID = buyerID
		}
		if input.ProductTypeID != nil {
			transaction.ProductTypeID = productTypeID
		}
	}

	quantityChanged := setNumber(&transaction.Quantity, input.Quantity)
	priceChanged := setNumber(&transaction.UnitPrice, input.UnitPrice)
	if !setNumber(&transaction.TotalAmount, input.TotalAmount) && (quantityChanged || priceChanged) {
		transaction.TotalAmount = transaction.Quantity * transaction.UnitPrice
	}
	setNumber(&transaction.PaidAmount, input.PaidAmount)

	if input.PaymentStatus != nil {
		transaction.PaymentStatus = *input.PaymentStatus
	}
	if input.DeliveryStatus != nil {
		transaction.DeliveryStatus = *input.DeliveryStatus
	}
	if input.DeliveryDate != nil {
		if transaction.DeliveryDate, err = optionalDate("delivery_date", *input.DeliveryDate); err != nil {
			return nil, err
		}
	}
	if input.DueDate != nil {
		if transaction.DueDate, err = optionalDate("due_date", *input.DueDate); err != nil {
			return nil, err
		}
	}

	if err := srv.transactionRepo.Update(ctx, scope, transaction); err != nil {
		return nil, mapLedgerError(err, "failed to update transaction")
	}

	if input.DeliveryStatus != nil {
		srv.syncDelivery(ctx, transaction, previousStatus)
	}

	return srv.reload(ctx, transaction)
}

func (srv *transactionService) syncDelivery(ctx context.Context, transaction *entity.Transaction, previous entity.DeliveryStatus) {
	switch transaction.DeliveryStatus {
	case entity.DeliveryDelivered:
		marked, err := srv.deliveryRepo.MarkDelivered(ctx, transaction.OwnerID, transaction.ID)
		if err != nil {
			srv.log(ctx).Error("Failed to mark delivery delivered",
				slog.String("transactionID", transaction.ID.String()),
				slog.Any("error", err),
			)

			return
		}
		if !marked {
			return
		}

		srv.publish(ctx, &service.LedgerEvent{
			Type:          constants.EventDeliveryDelivered,
			OwnerID:       transaction.OwnerID.String(),
			TransactionID: transaction.ID.String(),
		})
	case entity.DeliveryPending:
		if previous == entity.DeliveryDelivered {
			srv.log(ctx).Warn("Transaction moved from delivered back to pending; delivery left unchanged",
				slog.String("transactionID", transaction.ID.String()),
			)
		}
	}
}

func (srv *transactionService) DeleteTransaction(ctx context.Context, caller entity.Caller, id uuid.UUID) error {
	if err := srv.transactionRepo.Delete(ctx, repository.ScopeFor(caller), id); err != nil {
		return mapLedgerError(err, "failed to delete transaction")
	}

	return nil
}

func (srv *transactionService) Receipt(ctx context.Context, caller entity.Caller, id uuid.UUID) ([]byte, error) {
	transaction, err := srv.GetTransaction(ctx, caller, id)
	if err != nil {
		return nil, err
	}

	png, err := srv.receipts.TransactionReceiptPNG(transaction)
	if err != nil {
		srv.log(ctx).Error("Failed to render receipt", slog.String("transactionID", id.String()), slog.Any("error", err))

		return nil, domainerrors.ErrReceiptGenerationFailed
	}

	return png, nil
}

// resolveReferences parses and checks whichever of the references is given.
// Every unusable reference is reported together.
func (srv *transactionService) resolveReferences(ctx context.Context, scope repository.Scope, rawBuyerID, rawProductTypeID *string) (uuid.UUID, uuid.UUID, error) {
	var (
		buyerID, productTypeID uuid.UUID
		buyerErr, productErr   error
	)

	if rawBuyerID != nil {
		buyerID, buyerErr = lookupReference(ctx, "buyer_id", *rawBuyerID, repository.ErrBuyerNotFound,
			func(ctx context.Context, id uuid.UUID) error {
				_, err := srv.buyerRepo.FindByID(ctx, scope, id)

				return err
			})
	}
	if rawProductTypeID != nil {
		productTypeID, productErr = lookupReference(ctx, "product_type_id", *rawProductTypeID, repository.ErrProductTypeNotFound,
			func(ctx context.Context, id uuid.UUID) error {
				_, err := srv.productTypeRepo.FindByID(ctx, scope, id)

				return err
			})
	}

	if err := domainerrors.JoinValidation(buyerErr, productErr); err != nil {
		return uuid.Nil, uuid.Nil, err
	}

	return buyerID, productTypeID, nil
}

// reload reads the transaction back with its references resolved.
func (srv *transactionService) reload(ctx context.Context, transaction *entity.Transaction) (*entity.Transaction, error) {
	loaded, err := srv.transactionRepo.FindByID(ctx, repository.OwnedBy(transaction.OwnerID), transaction.ID)
	if err != nil {
		return nil, mapLedgerError(err, "failed to reload transaction")
	}

	return loaded, nil
}

func (srv *transactionService) publish(ctx context.Context, event *service.LedgerEvent) {
	event.EventID = uuid.NewString()
	event.RequestID = deliverycontext.RequestIDFrom(ctx)
	event.OccurredAt = time.Now().UTC()

	if err := srv.publisher.PublishLedgerEvent(ctx, event); err != nil {
		srv.log(ctx).Warn("Failed to publish ledger event",
			slog.String("type", event.Type),
			slog.String("transactionID", event.TransactionID),
			slog.Any("error", errors.WithStack(err)),
		)
	}
}
