package pubsub

import (
	"encoding/json"

	"muthurwa/internal/domain/service"

	"github.com/pkg/errors"
)

// ledgerMessage is how a ledger event travels on either transport. The owner
// id is the ordering key, so one vendor's events arrive in commit order.
type ledgerMessage struct {
	data        []byte
	attributes  map[string]string
	orderingKey string
}

func newLedgerMessage(event *service.LedgerEvent) (*ledgerMessage, error) {
	data, err := json.Marshal(event)
	if err != nil {
		return nil, errors.Wrapf(err, "encode ledger event %s", event.EventID)
	}

	attributes := map[string]string{
		"event_type": event.Type,
		"owner_id":   event.OwnerID,
	}
	if event.RequestID != "" {
		attributes["request_id"] = event.RequestID
	}

	return &ledgerMessage{
		data:        data,
		attributes:  attributes,
		orderingKey: event.OwnerID,
	}, nil
}
