package main

import (
	"context"
	"log/slog"
	"os"

	"muthurwa/config"
	"muthurwa/internal/delivery"
	"muthurwa/internal/delivery/api"
	"muthurwa/internal/delivery/api/middleware"
	"muthurwa/internal/delivery/api/router/handler"
	"muthurwa/internal/domain/service"
	"muthurwa/internal/infra/auth"
	logs "muthurwa/internal/infra/log"
	"muthurwa/internal/infra/persistence/postgres"
	"muthurwa/internal/infra/pubsub"
	"muthurwa/internal/infra/qrcode"
	"muthurwa/internal/infra/validation"
	"muthurwa/internal/usecase/impl"

	"go.uber.org/fx"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		injectInfra(),
		injectRepo(),
		injectService(),
		injectUsecase(),
		injectDelivery(),
		injectMiddleware(),
		injectHandler(),
		fx.Invoke(
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Provide(
		config.New,
		logs.New,
		context.Background,
		postgres.New,
	)
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			postgres.NewIdentityRepository,
			postgres.NewBuyerRepository,
			postgres.NewProductTypeRepository,
			postgres.NewTransactionRepository,
			postgres.NewDeliveryRepository,
			postgres.NewStatsRepository,
			postgres.NewTransactionManager,
		),
	)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			auth.NewBcryptHasher,
			auth.NewJWTService,
			validation.New,
			validation.NewService,
			newReceiptService,
		),
		pubsub.Module,
	)
}

// newReceiptService builds the receipt QR renderer from the receipt section
func newReceiptService(cfg *config.Config) service.ReceiptService {
	return qrcode.NewReceiptService(cfg.Receipt.Size, cfg.Receipt.ErrorCorrectionLevel)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewAuthService,
			impl.NewBuyerService,
			impl.NewProductTypeService,
			impl.NewTransactionService,
			impl.NewDeliveryService,
		),
	)
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			middleware.NewAuthMiddleware,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewAuthHandler,
			handler.NewBuyerHandler,
			handler.NewProductTypeHandler,
			handler.NewTransactionHandler,
			handler.NewDeliveryHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				api.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

func startServer(ctx context.Context, params startServerParams) {
	for _, delivery := range params.Deliveries {
		go func() {
			if err := delivery.Serve(ctx); err != nil {
				slog.Error("Failed to start server", slog.Any("error", err))
				os.Exit(1)
			}
		}()
	}
}
