package pubsub

import (
	"context"
	"log/slog"
	"strings"

	"muthurwa/config"
	deliverycontext "muthurwa/internal/delivery/context"
	"muthurwa/internal/domain/constants"
	"muthurwa/internal/domain/service"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// discardPublisher drops ledger events when no provider is configured. The
// drop is still logged against the request that produced the event.
type discardPublisher struct {
	logger *slog.Logger
}

func (p *discardPublisher) PublishLedgerEvent(ctx context.Context, event *service.LedgerEvent) error {
	deliverycontext.Logger(ctx, p.logger).DebugContext(ctx, "Ledger event not published, no provider configured",
		slog.String("event_id", event.EventID),
		slog.String("type", event.Type),
		slog.String("transaction_id", event.TransactionID),
	)

	return nil
}

func (p *discardPublisher) Close() error {
	return nil
}

// PublisherParams holds dependencies for EventPublisher, injected by Fx
type PublisherParams struct {
	fx.In

	Lc     fx.Lifecycle
	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

// NewEventPublisher opens the ledger event sink named by pubsub.provider and
// closes it when the application stops.
func NewEventPublisher(params PublisherParams) (service.EventPublisher, error) {
	publisher, err := openPublisher(params.Ctx, params.Config.PubSub, params.Logger)
	if err != nil {
		return nil, err
	}

	params.Lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			params.Logger.Info("Closing ledger event publisher")

			return publisher.Close()
		},
	})

	return publisher, nil
}

func openPublisher(ctx context.Context, cfg *config.PubSubConfig, logger *slog.Logger) (service.EventPublisher, error) {
	if cfg == nil || cfg.Provider == "" {
		logger.Info("PubSub not configured, ledger events are dropped")

		return &discardPublisher{logger: logger}, nil
	}

	if missing := missingSettings(cfg); len(missing) > 0 {
		return nil, errors.Errorf("pubsub provider %q needs %s", cfg.Provider, strings.Join(missing, ", "))
	}

	switch cfg.Provider {
	case constants.PubSubProviderLocal:
		logger.Info("Publishing ledger events to local endpoint", slog.String("endpoint", cfg.LocalEndpoint))

		return NewLocalHTTPPublisher(cfg.LocalEndpoint, logger), nil

	case constants.PubSubProviderGoogle:
		logger.Info("Publishing ledger events to Google Pub/Sub",
			slog.String("project_id", cfg.ProjectID),
			slog.String("topic_id", cfg.TopicID),
		)

		return NewGooglePubSubPublisher(ctx, cfg.ProjectID, cfg.TopicID, logger)

	default:
		return nil, errors.Errorf("unknown pubsub provider: %s", cfg.Provider)
	}
}

// missingSettings names every setting the chosen provider lacks.
func missingSettings(cfg *config.PubSubConfig) []string {
	var missing []string

	switch cfg.Provider {
	case constants.PubSubProviderLocal:
		if cfg.LocalEndpoint == "" {
			missing = append(missing, "pubsub.localEndpoint")
		}
	case constants.PubSubProviderGoogle:
		if cfg.ProjectID == "" {
			missing = append(missing, "pubsub.projectId")
		}
		if cfg.TopicID == "" {
			missing = append(missing, "pubsub.topicId")
		}
	}

	return missing
}

// Module provides the Pub/Sub FX module
//
//nolint:gochecknoglobals
var Module = fx.Options(
	fx.Provide(NewEventPublisher),
)
