package impl

import (
	"context"
	"testing"

	"muthurwa/internal/domain/constants"
	"muthurwa/internal/domain/entity"
	domainerrors "muthurwa/internal/domain/errors"
	"muthurwa/internal/domain/repository"
	"muthurwa/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestTransactionService_CreateDefaults(t *testing.T) {
	fx := newLedgerFixture(t, nil)
	vendor := fx.register(t, "Kamau", "0700000001", entity.RoleVendor)
	buyer, productType := fx.seedRefs(t, vendor)

	transaction := fx.sale(t, vendor, buyer, productType, nil)

	assert.Equal(t, vendor.IdentityID, transaction.OwnerID)
	assert.InDelta(t, 150, transaction.TotalAmount, 1e-9)
	assert.Zero(t, transaction.PaidAmount)
	assert.Equal(t, entity.PaymentUnpaid, transaction.PaymentStatus)
	assert.Equal(t, entity.DeliveryPending, transaction.DeliveryStatus)
	require.NotNil(t, transaction.Buyer)
	assert.Equal(t, "Wanjiku", transaction.Buyer.Name)
	require.NotNil(t, transaction.ProductType)
	assert.Equal(t, "Cabbage", transaction.ProductType.Name)

	// Without an explicit delivery status no delivery is derived.
	deliveries, err := fx.deliveries.ListDeliveries(context.Background(), vendor, nil)
	require.NoError(t, err)
	assert.Empty(t, deliveries)

	assert.Equal(t, []string{constants.EventTransactionCreated}, fx.eventTypes())
	assert.Equal(t, transaction.ID.String(), fx.events[0].TransactionID)
	assert.NotEmpty(t, fx.events[0].EventID)
}

func TestTransactionService_CreateWithDeliveryStatusCreatesOneDelivery(t *testing.T) {
	fx := newLedgerFixture(t, nil)
	vendor := fx.register(t, "Kamau", "0700000001", entity.RoleVendor)
	buyer, productType := fx.seedRefs(t, vendor)

	transaction := fx.sale(t, vendor, buyer, productType, func(in *usecase.CreateTransactionInput) {
		in.DeliveryStatus = entity.DeliveryPending
	})

	deliveries, err := fx.deliveries.ListDeliveries(context.Background(), vendor, nil)
	require.NoError(t, err)
	require.Len(t, deliveries, 1)

	delivery := deliveries[0]
	assert.Equal(t, transaction.ID, delivery.TransactionID)
	assert.Equal(t, buyer.ID, delivery.BuyerID)
	assert.Equal(t, "Kamau", delivery.DeliveryPersonName)
	assert.Equal(t, "N/A", delivery.DeliveryLocation)
	assert.Equal(t, entity.DeliveryPending, delivery.DeliveryStatus)
	assert.Equal(t, vendor.IdentityID, delivery.OwnerID)
}

func TestTransactionService_CreateDeliveredUsesGivenLocation(t *testing.T) {
	fx := newLedgerFixture(t, nil)
	vendor := fx.register(t, "Kamau", "0700000001", entity.RoleVendor)
	vendor.DisplayName = ""
	buyer, productType := fx.seedRefs(t, vendor)

	fx.sale(t, vendor, buyer, productType, func(in *usecase.CreateTransactionInput) {
		in.DeliveryStatus = entity.DeliveryDelivered
		in.DeliveryLocation = "Stall 14"
	})

	deliveries, err := fx.deliveries.ListDeliveries(context.Background(), vendor, nil)
	require.NoError(t, err)
	require.Len(t, deliveries, 1)
	assert.Equal(t, "Me", deliveries[0].DeliveryPersonName)
	assert.Equal(t, "Stall 14", deliveries[0].DeliveryLocation)
	assert.Equal(t, entity.DeliveryDelivered, deliveries[0].DeliveryStatus)
}

func TestTransactionService_UpdateToDeliveredSyncsDelivery(t *testing.T) {
	fx := newLedgerFixture(t, nil)
	ctx := context.Background()
	vendor := fx.register(t, "Kamau", "0700000001", entity.RoleVendor)
	buyer, productType := fx.seedRefs(t, vendor)

	transaction := fx.sale(t, vendor, buyer, productType, func(in *usecase.CreateTransactionInput) {
		in.DeliveryStatus = entity.DeliveryPending
	})

	updated, err := fx.transactions.UpdateTransaction(ctx, vendor, transaction.ID, &usecase.UpdateTransactionInput{
		DeliveryStatus: ptr(entity.DeliveryDelivered),
	})
	require.NoError(t, err)
	assert.Equal(t, entity.DeliveryDelivered, updated.DeliveryStatus)

	deliveries, err := fx.deliveries.ListDeliveries(ctx, vendor, nil)
	require.NoError(t, err)
	require.Len(t, deliveries, 1)
	assert.Equal(t, entity.DeliveryDelivered, deliveries[0].DeliveryStatus)
	assert.Equal(t, []string{constants.EventTransactionCreated, constants.EventDeliveryDelivered}, fx.eventTypes())

	// Moving back to pending leaves the delivery as it was.
	_, err = fx.transactions.UpdateTransaction(ctx, vendor, transaction.ID, &usecase.UpdateTransactionInput{
		DeliveryStatus: ptr(entity.DeliveryPending),
	})
	require.NoError(t, err)

	delivery, err := fx.deliveries.GetDelivery(ctx, vendor, deliveries[0].ID)
	require.NoError(t, err)
	assert.Equal(t, entity.DeliveryDelivered, delivery.DeliveryStatus)
}

func TestTransactionService_UpdateToDeliveredWithoutDelivery(t *testing.T) {
	fx := newLedgerFixture(t, nil)
	ctx := context.Background()
	vendor := fx.register(t, "Kamau", "0700000001", entity.RoleVendor)
	buyer, productType := fx.seedRefs(t, vendor)
	transaction := fx.sale(t, vendor, buyer, productType, nil)

	_, err := fx.transactions.UpdateTransaction(ctx, vendor, transaction.ID, &usecase.UpdateTransactionInput{
		DeliveryStatus: ptr(entity.DeliveryDelivered),
	})
	require.NoError(t, err)

	deliveries, err := fx.deliveries.ListDeliveries(ctx, vendor, nil)
	require.NoError(t, err)
	assert.Empty(t, deliveries)
	assert.Equal(t, []string{constants.EventTransactionCreated}, fx.eventTypes())
}

func TestTransactionService_AdminUpdateSyncsOwnersDelivery(t *testing.T) {
	fx := newLedgerFixture(t, nil)
	ctx := context.Background()
	vendor := fx.register(t, "Kamau", "0700000001", entity.RoleVendor)
	admin := fx.register(t, "Admin", "0700000099", entity.RoleAdmin)
	buyer, productType := fx.seedRefs(t, vendor)

	transaction := fx.sale(t, vendor, buyer, productType, func(in *usecase.CreateTransactionInput) {
		in.DeliveryStatus = entity.DeliveryPending
	})

	_, err := fx.transactions.UpdateTransaction(ctx, admin, transaction.ID, &usecase.UpdateTransactionInput{
		DeliveryStatus: ptr(entity.DeliveryDelivered),
	})
	require.NoError(t, err)

	deliveries, err := fx.deliveries.ListDeliveries(ctx, vendor, nil)
	require.NoError(t, err)
	require.Len(t, deliveries, 1)
	assert.Equal(t, entity.DeliveryDelivered, deliveries[0].DeliveryStatus)
}

func TestTransactionService_UpdateRecomputesTotal(t *testing.T) {
	fx := newLedgerFixture(t, nil)
	ctx := context.Background()
	vendor := fx.register(t, "Kamau", "0700000001", entity.RoleVendor)
	buyer, productType := fx.seedRefs(t, vendor)
	transaction := fx.sale(t, vendor, buyer, productType, nil)

	updated, err := fx.transactions.UpdateTransaction(ctx, vendor, transaction.ID, &usecase.UpdateTransactionInput{
		Quantity: entity.NewNumber(4),
	})
	require.NoError(t, err)
	assert.InDelta(t, 200, updated.TotalAmount, 1e-9)

	updated, err = fx.transactions.UpdateTransaction(ctx, vendor, transaction.ID, &usecase.UpdateTransactionInput{
		UnitPrice:     entity.NewNumber(60),
		TotalAmount:   entity.NewNumber(230),
		PaidAmount:    entity.NewNumber(100),
		PaymentStatus: ptr(entity.PaymentPartial),
	})
	require.NoError(t, err)
	assert.InDelta(t, 230, updated.TotalAmount, 1e-9)
	assert.InDelta(t, 100, updated.PaidAmount, 1e-9)
	assert.Equal(t, entity.PaymentPartial, updated.PaymentStatus)
}

func TestTransactionService_ScopeIsolation(t *testing.T) {
	fx := newLedgerFixture(t, nil)
	ctx := context.Background()
	alice := fx.register(t, "Alice", "0700000001", entity.RoleVendor)
	bob := fx.register(t, "Bob", "0700000002", entity.RoleVendor)
	admin := fx.register(t, "Admin", "0700000099", entity.RoleAdmin)

	aliceBuyer, aliceProduct := fx.seedRefs(t, alice)
	bobBuyer, bobProduct := fx.seedRefs(t, bob)
	aliceSale := fx.sale(t, alice, aliceBuyer, aliceProduct, nil)
	fx.sale(t, bob, bobBuyer, bobProduct, nil)

	mine, err := fx.transactions.ListTransactions(ctx, alice, nil)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, aliceSale.ID, mine[0].ID)

	all, err := fx.transactions.ListTransactions(ctx, admin, nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	_, err = fx.transactions.GetTransaction(ctx, bob, aliceSale.ID)
	assert.ErrorIs(t, err, domainerrors.ErrTransactionNotFound)

	_, err = fx.transactions.UpdateTransaction(ctx, bob, aliceSale.ID, &usecase.UpdateTransactionInput{
		PaymentStatus: ptr(entity.PaymentPaid),
	})
	assert.ErrorIs(t, err, domainerrors.ErrTransactionNotFound)

	err = fx.transactions.DeleteTransaction(ctx, bob, aliceSale.ID)
	assert.ErrorIs(t, err, domainerrors.ErrTransactionNotFound)

	got, err := fx.transactions.GetTransaction(ctx, admin, aliceSale.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentUnpaid, got.PaymentStatus)
	assert.Equal(t, alice.IdentityID, got.OwnerID)
}

func TestTransactionService_RejectsForeignReferences(t *testing.T) {
	fx := newLedgerFixture(t, nil)
	alice := fx.register(t, "Alice", "0700000001", entity.RoleVendor)
	bob := fx.register(t, "Bob", "0700000002", entity.RoleVendor)
	aliceBuyer, _ := fx.seedRefs(t, alice)
	_, bobProduct := fx.seedRefs(t, bob)

	_, err := fx.transactions.CreateTransaction(context.Background(), bob, &usecase.CreateTransactionInput{
		BuyerID:       aliceBuyer.ID.String(),
		ProductTypeID: bobProduct.ID.String(),
		Quantity:      entity.NewNumber(1),
		UnitPrice:     entity.NewNumber(10),
	})
	require.Error(t, err)
	assert.Equal(t, []string{"buyer_id"}, fieldNames(t, err))

	_, err = fx.transactions.CreateTransaction(context.Background(), alice, &usecase.CreateTransactionInput{
		BuyerID:       aliceBuyer.ID.String(),
		ProductTypeID: uuid.NewString(),
		Quantity:      entity.NewNumber(1),
		UnitPrice:     entity.NewNumber(10),
	})
	require.Error(t, err)
	assert.Equal(t, []string{"product_type_id"}, fieldNames(t, err))

	_, err = fx.transactions.CreateTransaction(context.Background(), alice, &usecase.CreateTransactionInput{
		BuyerID:       uuid.NewString(),
		ProductTypeID: bobProduct.ID.String(),
		Quantity:      entity.NewNumber(1),
		UnitPrice:     entity.NewNumber(10),
	})
	require.Error(t, err)
	assert.Equal(t, []string{"buyer_id", "product_type_id"}, fieldNames(t, err))

	_, err = fx.transactions.CreateTransaction(context.Background(), bob, &usecase.CreateTransactionInput{
		BuyerID:       aliceBuyer.ID.String(),
		ProductTypeID: bobProduct.ID.String(),
		UnitPrice:     entity.NewNumber(10),
	})
	require.Error(t, err)
	assert.ElementsMatch(t, []string{"quantity", "buyer_id"}, fieldNames(t, err))

	list, err := fx.transactions.ListTransactions(context.Background(), bob, nil)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestTransactionService_CreateValidation(t *testing.T) {
	fx := newLedgerFixture(t, nil)
	vendor := fx.register(t, "Kamau", "0700000001", entity.RoleVendor)

	_, err := fx.transactions.CreateTransaction(context.Background(), vendor, &usecase.CreateTransactionInput{
		BuyerID:        "not-an-id",
		Quantity:       entity.Number{Raw: "ten", Set: true},
		PaymentStatus:  "overdue",
		DeliveryStatus: "lost",
		DueDate:        "tomorrow",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))
	assert.ElementsMatch(t,
		[]string{"buyer_id", "product_type_id", "quantity", "unit_price", "payment_status", "delivery_status", "due_date"},
		fieldNames(t, err),
	)
	assert.Empty(t, fx.events)
}

func TestTransactionService_ListFilters(t *testing.T) {
	fx := newLedgerFixture(t, nil)
	ctx := context.Background()
	vendor := fx.register(t, "Kamau", "0700000001", entity.RoleVendor)
	buyer, productType := fx.seedRefs(t, vendor)

	fx.sale(t, vendor, buyer, productType, func(in *usecase.CreateTransactionInput) {
		in.PaymentStatus = entity.PaymentPaid
		in.DeliveryStatus = entity.DeliveryDelivered
	})
	fx.sale(t, vendor, buyer, productType, func(in *usecase.CreateTransactionInput) {
		in.DueDate = "2026-01-10"
	})

	paid, err := fx.transactions.ListTransactions(ctx, vendor, &usecase.TransactionQuery{PaymentStatus: "paid"})
	require.NoError(t, err)
	require.Len(t, paid, 1)
	assert.Equal(t, entity.DeliveryDelivered, paid[0].DeliveryStatus)

	pending, err := fx.transactions.ListTransactions(ctx, vendor, &usecase.TransactionQuery{DeliveryStatus: "pending"})
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, entity.PaymentUnpaid, pending[0].PaymentStatus)

	due, err := fx.transactions.ListTransactions(ctx, vendor, &usecase.TransactionQuery{DueDate: "2026-01-10"})
	require.NoError(t, err)
	assert.Len(t, due, 1)

	_, err = fx.transactions.ListTransactions(ctx, vendor, &usecase.TransactionQuery{PaymentStatus: "owing"})
	assert.Equal(t, []string{"paymentStatus"}, fieldNames(t, err))
}

func TestTransactionService_ListDebts(t *testing.T) {
	fx := newLedgerFixture(t, nil)
	ctx := context.Background()
	vendor := fx.register(t, "Kamau", "0700000001", entity.RoleVendor)
	admin := fx.register(t, "Admin", "0700000099", entity.RoleAdmin)
	buyer, productType := fx.seedRefs(t, vendor)

	fx.sale(t, vendor, buyer, productType, func(in *usecase.CreateTransactionInput) {
		in.PaymentStatus = entity.PaymentPaid
		in.DueDate = "2026-01-05"
	})
	early := fx.sale(t, vendor, buyer, productType, func(in *usecase.CreateTransactionInput) {
		in.DueDate = "2026-01-10"
	})
	fx.sale(t, vendor, buyer, productType, func(in *usecase.CreateTransactionInput) {
		in.PaymentStatus = entity.PaymentPartial
		in.PaidAmount = entity.NewNumber(20)
		in.DueDate = "2026-02-01"
	})
	fx.sale(t, vendor, buyer, productType, nil)

	debts, err := fx.transactions.ListDebts(ctx, vendor, nil)
	require.NoError(t, err)
	assert.Len(t, debts, 3)
	for _, d := range debts {
		assert.True(t, d.PaymentStatus.IsDebt())
	}

	dueByEndOfJanuary, err := fx.transactions.ListDebts(ctx, vendor, &usecase.DebtQuery{DueDate: "2026-01-31"})
	require.NoError(t, err)
	require.Len(t, dueByEndOfJanuary, 1)
	assert.Equal(t, early.ID, dueByEndOfJanuary[0].ID)

	sameDay, err := fx.transactions.ListDebts(ctx, vendor, &usecase.DebtQuery{DueDate: "2026-01-10"})
	require.NoError(t, err)
	assert.Len(t, sameDay, 1)

	// Debts are always the caller's own, admins included.
	adminDebts, err := fx.transactions.ListDebts(ctx, admin, nil)
	require.NoError(t, err)
	assert.Empty(t, adminDebts)

	_, err = fx.transactions.ListDebts(ctx, vendor, &usecase.DebtQuery{DueDate: "soon"})
	assert.Equal(t, []string{"dueDate"}, fieldNames(t, err))
}

func TestTransactionService_Receipt(t *testing.T) {
	fx := newLedgerFixture(t, nil)
	ctx := context.Background()
	alice := fx.register(t, "Alice", "0700000001", entity.RoleVendor)
	bob := fx.register(t, "Bob", "0700000002", entity.RoleVendor)
	buyer, productType := fx.seedRefs(t, alice)
	transaction := fx.sale(t, alice, buyer, productType, nil)

	fx.receipts.EXPECT().
		TransactionReceiptPNG(mock.MatchedBy(func(tx *entity.Transaction) bool {
			return tx.ID == transaction.ID && tx.Buyer != nil
		})).
		Return([]byte("png"), nil).
		Once()

	png, err := fx.transactions.Receipt(ctx, alice, transaction.ID)
	require.NoError(t, err)
	assert.Equal(t, []byte("png"), png)

	_, err = fx.transactions.Receipt(ctx, bob, transaction.ID)
	assert.ErrorIs(t, err, domainerrors.ErrTransactionNotFound)
}

func TestTransactionService_ReceiptFailure(t *testing.T) {
	fx := newLedgerFixture(t, nil)
	vendor := fx.register(t, "Kamau", "0700000001", entity.RoleVendor)
	buyer, productType := fx.seedRefs(t, vendor)
	transaction := fx.sale(t, vendor, buyer, productType, nil)

	fx.receipts.EXPECT().TransactionReceiptPNG(mock.Anything).Return(nil, errors.New("encoder failed")).Once()

	_, err := fx.transactions.Receipt(context.Background(), vendor, transaction.ID)
	assert.ErrorIs(t, err, domainerrors.ErrReceiptGenerationFailed)
}

func TestTransactionService_PublishFailureDoesNotFailCreate(t *testing.T) {
	fx := newLedgerFixture(t, nil)
	vendor := fx.register(t, "Kamau", "0700000001", entity.RoleVendor)
	buyer, productType := fx.seedRefs(t, vendor)

	fx.publisher.ExpectedCalls = nil
	fx.publisher.EXPECT().PublishLedgerEvent(mock.Anything, mock.Anything).Return(errors.New("broker down")).Once()

	transaction := fx.sale(t, vendor, buyer, productType, nil)

	_, err := fx.transactions.GetTransaction(context.Background(), vendor, transaction.ID)
	assert.NoError(t, err)
}

func TestTransactionService_DeleteKeepsDelivery(t *testing.T) {
	fx := newLedgerFixture(t, nil)
	ctx := context.Background()
	vendor := fx.register(t, "Kamau", "0700000001", entity.RoleVendor)
	buyer, productType := fx.seedRefs(t, vendor)
	transaction := fx.sale(t, vendor, buyer, productType, func(in *usecase.CreateTransactionInput) {
		in.DeliveryStatus = entity.DeliveryPending
	})

	require.NoError(t, fx.transactions.DeleteTransaction(ctx, vendor, transaction.ID))

	_, err := fx.transactions.GetTransaction(ctx, vendor, transaction.ID)
	assert.ErrorIs(t, err, domainerrors.ErrTransactionNotFound)

	deliveries, err := fx.deliveryRepo.List(ctx, repository.OwnedBy(vendor.IdentityID), repository.DeliveryFilter{})
	require.NoError(t, err)
	assert.Len(t, deliveries, 1)
}
