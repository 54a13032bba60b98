package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"muthurwa/config"
	"muthurwa/internal/domain/entity"
	domainerrors "muthurwa/internal/domain/errors"
	"muthurwa/internal/domain/repository"
	"muthurwa/internal/domain/service"
	"muthurwa/internal/infra/auth"
	"muthurwa/internal/infra/persistence/postgres"
	"muthurwa/internal/infra/validation"
	mockservice "muthurwa/internal/mocks/service"
	"muthurwa/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestConfig() *config.Config {
	cfg := &config.Config{
		Auth: &config.AuthConfig{
			BcryptCost:        4,
			MinPasswordLength: 6,
		},
		Ledger: &config.LedgerConfig{
			DefaultDeliveryPerson:   "Me",
			DefaultDeliveryLocation: "N/A",
		},
	}
	cfg.SecretKey.Access = "test-secret"

	return cfg
}

// ledgerFixture wires every service against a private in-memory database.
type ledgerFixture struct {
	publisher    *mockservice.MockEventPublisher
	receipts     *mockservice.MockReceiptService
	events       []*service.LedgerEvent
	deliveryRepo repository.DeliveryRepository
	identityRepo repository.IdentityRepository

	auth         usecase.AuthUsecase
	buyers       usecase.BuyerUsecase
	productTypes usecase.ProductTypeUsecase
	transactions usecase.TransactionUsecase
	deliveries   usecase.DeliveryUsecase
}

func newLedgerFixture(t *testing.T, cfg *config.Config) *ledgerFixture {
	t.Helper()

	if cfg == nil {
		cfg = newTestConfig()
	}
	logger := newDiscardLogger()

	db, err := postgres.OpenSQLite("file:"+uuid.NewString()+"?mode=memory&cache=shared", logger, nil)
	require.NoError(t, err)
	require.NoError(t, postgres.Migrate(db))
	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	tokens, err := auth.NewJWTService(cfg)
	require.NoError(t, err)

	validator := validation.NewService(validation.New())
	buyerRepo := postgres.NewBuyerRepository(db)
	productTypeRepo := postgres.NewProductTypeRepository(db)
	transactionRepo := postgres.NewTransactionRepository(db)

	fx := &ledgerFixture{
		publisher:    mockservice.NewMockEventPublisher(t),
		receipts:     mockservice.NewMockReceiptService(t),
		deliveryRepo: postgres.NewDeliveryRepository(db),
		identityRepo: postgres.NewIdentityRepository(db),
	}
	fx.publisher.EXPECT().
		PublishLedgerEvent(mock.Anything, mock.Anything).
		Run(func(_ context.Context, event *service.LedgerEvent) {
			fx.events = append(fx.events, event)
		}).
		Return(nil).
		Maybe()

	fx.auth = NewAuthService(AuthServiceParams{
		TxManager:    postgres.NewTransactionManager(db),
		IdentityRepo: fx.identityRepo,
		StatsRepo:    postgres.NewStatsRepository(db),
		Hasher:       auth.NewBcryptHasher(cfg),
		TokenService: tokens,
		Validator:    validator,
		Config:       cfg,
		Logger:       logger,
	})
	fx.buyers = NewBuyerService(BuyerServiceParams{
		BuyerRepo: buyerRepo,
		Validator: validator,
		Logger:    logger,
	})
	fx.productTypes = NewProductTypeService(ProductTypeServiceParams{
		ProductTypeRepo: productTypeRepo,
		Validator:       validator,
		Logger:          logger,
	})
	fx.transactions = NewTransactionService(TransactionServiceParams{
		TransactionRepo: transactionRepo,
		BuyerRepo:       buyerRepo,
		ProductTypeRepo: productTypeRepo,
		DeliveryRepo:    fx.deliveryRepo,
		Publisher:       fx.publisher,
		Receipts:        fx.receipts,
		Validator:       validator,
		Config:          cfg,
		Logger:          logger,
	})
	fx.deliveries = NewDeliveryService(DeliveryServiceParams{
		DeliveryRepo:    fx.deliveryRepo,
		TransactionRepo: transactionRepo,
		BuyerRepo:       buyerRepo,
		Validator:       validator,
		Logger:          logger,
	})

	return fx
}

// register signs up an identity and returns it as a request caller.
func (fx *ledgerFixture) register(t *testing.T, name, phone string, role entity.Role) entity.Caller {
	t.Helper()

	var id uuid.UUID
	if role == entity.RoleAdmin {
		hash, err := auth.NewBcryptHasherWithCost(4).Hash("secret123")
		require.NoError(t, err)
		admin := &entity.Identity{Name: name, Phone: phone, PasswordHash: hash, Role: entity.RoleAdmin}
		require.NoError(t, fx.identityRepo.Create(context.Background(), admin))
		id = admin.ID
	} else {
		out, err := fx.auth.Register(context.Background(), &usecase.RegisterInput{
			Name:     name,
			Phone:    phone,
			Password: "secret123",
		})
		require.NoError(t, err)
		id = out.Identity.ID
	}

	return entity.Caller{IdentityID: id, Role: role, DisplayName: name}
}

// seedRefs creates a buyer and a product type owned by the caller.
func (fx *ledgerFixture) seedRefs(t *testing.T, caller entity.Caller) (*entity.Buyer, *entity.ProductType) {
	t.Helper()
	ctx := context.Background()

	buyer, err := fx.buyers.CreateBuyer(ctx, caller, &usecase.CreateBuyerInput{
		Name:     "Wanjiku",
		Phone:    "0711000001",
		IDNumber: "12345678",
		Location: "Gikomba",
	})
	require.NoError(t, err)

	productType, err := fx.productTypes.CreateProductType(ctx, caller, &usecase.CreateProductTypeInput{
		Name:         "Cabbage",
		Variety:      "Gloria",
		Unit:         "head",
		DefaultPrice: entity.NewNumber(50),
	})
	require.NoError(t, err)

	return buyer, productType
}

func (fx *ledgerFixture) sale(t *testing.T, caller entity.Caller, buyer *entity.Buyer, productType *entity.ProductType, mutate func(*usecase.CreateTransactionInput)) *entity.Transaction {
	t.Helper()

	input := &usecase.CreateTransactionInput{
		BuyerID:       buyer.ID.String(),
		ProductTypeID: productType.ID.String(),
		Quantity:      entity.NewNumber(3),
		UnitPrice:     entity.NewNumber(50),
	}
	if mutate != nil {
		mutate(input)
	}

	transaction, err := fx.transactions.CreateTransaction(context.Background(), caller, input)
	require.NoError(t, err)

	return transaction
}

func ptr[T any](v T) *T {
	return &v
}

// eventTypes lists the published event types in order.
func (fx *ledgerFixture) eventTypes() []string {
	types := make([]string, 0, len(fx.events))
	for _, e := range fx.events {
		types = append(types, e.Type)
	}

	return types
}

func fieldNames(t *testing.T, err error) []string {
	t.Helper()

	var vErr *domainerrors.ValidationError
	require.True(t, errors.As(err, &vErr), "expected validation error, got %v", err)

	names := make([]string, 0, len(vErr.Fields()))
	for _, f := range vErr.Fields() {
		names = append(names, f.Field)
	}

	return names
}
