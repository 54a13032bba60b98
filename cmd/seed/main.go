package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"muthurwa/config"
	"muthurwa/internal/domain/entity"
	"muthurwa/internal/domain/repository"
	"muthurwa/internal/domain/service"
	"muthurwa/internal/errors"
	"muthurwa/internal/infra/auth"
	logs "muthurwa/internal/infra/log"
	"muthurwa/internal/infra/persistence/postgres"

	"go.uber.org/fx"
)

const seedPassword = "password123"

type seedParams struct {
	fx.In
	fx.Lifecycle

	TxManager repository.TransactionManager
	Hasher    service.PasswordHasher
	Logger    *slog.Logger
}

type sampleBuyer struct {
	name, phone, idNumber, location string
}

type sampleProduct struct {
	name, variety, unit, description string
	price                            float64
}

//nolint:gochecknoglobals
var (
	sampleBuyers = []sampleBuyer{
		{"Wanjiku Mwangi", "0711000001", "23456781", "Gikomba"},
		{"Otieno Ouma", "0722000002", "23456782", "Westlands"},
		{"Achieng Atieno", "0733000003", "23456783", "Eastleigh"},
	}
	sampleProducts = []sampleProduct{
		{"Tomatoes", "Roma", "crate", "Plum tomatoes for sauces", 3500},
		{"Cabbage", "Gloria", "head", "Firm green heads", 50},
		{"Onions", "Red Creole", "net", "10kg nets", 900},
		{"Sukuma wiki", "Thousand headed", "bunch", "", 20},
	}
)

func main() {
	app := fx.New(
		fx.NopLogger,
		fx.Provide(
			config.New,
			logs.New,
			postgres.New,
			postgres.NewTransactionManager,
			auth.NewBcryptHasher,
		),
		fx.Invoke(registerSeed),
	)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if err := app.Start(ctx); err != nil {
		slog.Error("Seeding failed", slog.Any("error", err))
		os.Exit(1)
	}
	if err := app.Stop(ctx); err != nil {
		slog.Error("Failed to close database", slog.Any("error", err))
		os.Exit(1)
	}
}

// registerSeed loads the sample ledger once the database has answered a ping.
func registerSeed(params seedParams) {
	params.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return seed(ctx, params)
		},
	})
}

func seed(ctx context.Context, params seedParams) error {
	passwordHash, err := params.Hasher.Hash(seedPassword)
	if err != nil {
		return errors.Wrap(err, "hash seed password")
	}

	return params.TxManager.Execute(ctx, func(repos repository.RepositoryFactory) error {
		identities := repos.NewIdentityRepository()

		if _, err := identities.FindByPhone(ctx, "0700000000"); err == nil {
			params.Logger.Info("Sample data already present, nothing to do")

			return nil
		} else if !errors.Is(err, repository.ErrIdentityNotFound) {
			return errors.Wrap(err, "check existing sample data")
		}

		admin := &entity.Identity{Name: "Market Admin", Phone: "0700000000", PasswordHash: passwordHash, Role: entity.RoleAdmin, Location: "Muthurwa"}
		vendor := &entity.Identity{Name: "Jane Njeri", Phone: "0700000001", PasswordHash: passwordHash, Role: entity.RoleVendor, Location: "Stall 14"}
		for _, identity := range []*entity.Identity{admin, vendor} {
			if err := identities.Create(ctx, identity); err != nil {
				return errors.Wrapf(err, "create identity %s", identity.Phone)
			}
		}

		buyers := make([]*entity.Buyer, 0, len(sampleBuyers))
		for _, b := range sampleBuyers {
			buyer := &entity.Buyer{Name: b.name, Phone: b.phone, IDNumber: b.idNumber, Location: b.location, OwnerID: vendor.ID}
			if err := repos.NewBuyerRepository().Create(ctx, buyer); err != nil {
				return errors.Wrapf(err, "create buyer %s", b.name)
			}
			buyers = append(buyers, buyer)
		}

		products := make([]*entity.ProductType, 0, len(sampleProducts))
		for _, p := range sampleProducts {
			product := &entity.ProductType{Name: p.name, Variety: p.variety, Unit: p.unit, Description: p.description, DefaultPrice: p.price, OwnerID: vendor.ID}
			if err := repos.NewProductTypeRepository().Create(ctx, product); err != nil {
				return errors.Wrapf(err, "create product type %s", p.name)
			}
			products = append(products, product)
		}

		today := time.Now().UTC().Truncate(24 * time.Hour)
		for i, buyer := range buyers {
			product := products[i%len(products)]
			quantity := float64(2 + i)
			due := today.AddDate(0, 0, 7*(i+1))

			transaction := &entity.Transaction{
				BuyerID:        buyer.ID,
				ProductTypeID:  product.ID,
				Quantity:       quantity,
				UnitPrice:      product.DefaultPrice,
				TotalAmount:    quantity * product.DefaultPrice,
				PaymentStatus:  entity.PaymentUnpaid,
				DeliveryStatus: entity.DeliveryPending,
				DueDate:        &due,
				OwnerID:        vendor.ID,
			}
			if i == 0 {
				transaction.PaidAmount = transaction.TotalAmount
				transaction.PaymentStatus = entity.PaymentPaid
				transaction.DeliveryStatus = entity.DeliveryDelivered
				transaction.DeliveryDate = &today
			}
			if err := repos.NewTransactionRepository().Create(ctx, transaction); err != nil {
				return errors.Wrapf(err, "create transaction for %s", buyer.Name)
			}

			delivery := &entity.Delivery{
				TransactionID:      transaction.ID,
				BuyerID:            buyer.ID,
				DeliveryPersonName: vendor.Name,
				DeliveryLocation:   buyer.Location,
				DeliveryStatus:     transaction.DeliveryStatus,
				Timestamp:          time.Now().UTC(),
				OwnerID:            vendor.ID,
			}
			if err := repos.NewDeliveryRepository().Create(ctx, delivery); err != nil {
				return errors.Wrapf(err, "create delivery for %s", buyer.Name)
			}
		}

		params.Logger.Info("Seeded sample ledger",
			slog.String("admin_phone", admin.Phone),
			slog.String("vendor_phone", vendor.Phone),
			slog.Int("buyers", len(buyers)),
			slog.Int("product_types", len(products)),
		)

		return nil
	})
}
