package pubsub

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"muthurwa/config"
	deliverycontext "muthurwa/internal/delivery/context"
	"muthurwa/internal/domain/constants"
	"muthurwa/internal/domain/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx/fxtest"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func sampleEvent() *service.LedgerEvent {
	return &service.LedgerEvent{
		RequestID:     "req-1",
		EventID:       "evt-1",
		Type:          constants.EventTransactionCreated,
		OwnerID:       "owner-1",
		TransactionID: "tx-1",
		TotalAmount:   1200,
		OccurredAt:    time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}
}

func TestLocalHTTPPublisher_PushFormat(t *testing.T) {
	var (
		got       PubSubPushMessage
		requestID string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID = r.Header.Get("X-Request-Id")
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	publisher := NewLocalHTTPPublisher(srv.URL, discardLogger())
	require.NoError(t, publisher.PublishLedgerEvent(context.Background(), sampleEvent()))

	assert.Equal(t, "req-1", requestID)
	assert.Equal(t, "evt-1", got.Message.MessageID)
	assert.Equal(t, constants.EventTransactionCreated, got.Message.Attributes["event_type"])
	assert.Equal(t, "owner-1", got.Message.Attributes["owner_id"])
	assert.Equal(t, "req-1", got.Message.Attributes["request_id"])
	assert.Equal(t, "owner-1", got.Message.OrderingKey)

	raw, err := base64.StdEncoding.DecodeString(got.Message.Data)
	require.NoError(t, err)

	var event service.LedgerEvent
	require.NoError(t, json.Unmarshal(raw, &event))
	assert.Equal(t, *sampleEvent(), event)
}

func TestLocalHTTPPublisher_NonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	publisher := NewLocalHTTPPublisher(srv.URL, discardLogger())
	err := publisher.PublishLedgerEvent(context.Background(), sampleEvent())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}

func TestNewEventPublisher(t *testing.T) {
	tests := []struct {
		name    string
		cfg     *config.PubSubConfig
		wantErr string
		discard bool
	}{
		{name: "unset drops events", cfg: nil, discard: true},
		{name: "empty provider drops events", cfg: &config.PubSubConfig{}, discard: true},
		{name: "local", cfg: &config.PubSubConfig{Provider: constants.PubSubProviderLocal, LocalEndpoint: "http://localhost:9/push"}},
		{name: "local without endpoint", cfg: &config.PubSubConfig{Provider: constants.PubSubProviderLocal}, wantErr: "pubsub.localEndpoint"},
		{
			name:    "google lists every missing setting",
			cfg:     &config.PubSubConfig{Provider: constants.PubSubProviderGoogle},
			wantErr: `pubsub provider "google" needs pubsub.projectId, pubsub.topicId`,
		},
		{
			name:    "google without topic",
			cfg:     &config.PubSubConfig{Provider: constants.PubSubProviderGoogle, ProjectID: "muthurwa-dev"},
			wantErr: `needs pubsub.topicId`,
		},
		{name: "unknown provider", cfg: &config.PubSubConfig{Provider: "kafka"}, wantErr: "unknown pubsub provider"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lc := fxtest.NewLifecycle(t)
			publisher, err := NewEventPublisher(PublisherParams{
				Lc:     lc,
				Ctx:    context.Background(),
				Config: &config.Config{PubSub: tt.cfg},
				Logger: discardLogger(),
			})
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)

				return
			}
			require.NoError(t, err)

			_, isDiscard := publisher.(*discardPublisher)
			assert.Equal(t, tt.discard, isDiscard)
			if tt.discard {
				assert.NoError(t, publisher.PublishLedgerEvent(context.Background(), sampleEvent()))
			}
			lc.RequireStart().RequireStop()
		})
	}
}

func TestDiscardPublisher_LogsAgainstRequest(t *testing.T) {
	var buf bytes.Buffer
	base := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	publisher := &discardPublisher{logger: discardLogger()}

	ctx := deliverycontext.WithRequest(context.Background(), "req-1", base)
	require.NoError(t, publisher.PublishLedgerEvent(ctx, sampleEvent()))

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "req-1", line["request_id"])
	assert.Equal(t, "evt-1", line["event_id"])
	assert.Equal(t, "tx-1", line["transaction_id"])
}
