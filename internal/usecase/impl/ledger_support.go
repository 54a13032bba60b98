// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"strings"
	"time"

	"muthurwa/internal/domain/entity"
	domainerrors "muthurwa/internal/domain/errors"
	"muthurwa/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// ledgerErrors maps repository sentinels onto their API errors.
var ledgerErrors = []struct {
	repoErr error
	appErr  *domainerrors.BaseError
}{
	{repository.ErrBuyerNotFound, domainerrors.ErrBuyerNotFound},
	{repository.ErrProductTypeNotFound, domainerrors.ErrProductTypeNotFound},
	{repository.ErrTransactionNotFound, domainerrors.ErrTransactionNotFound},
	{repository.ErrDeliveryNotFound, domainerrors.ErrDeliveryNotFound},
	{repository.ErrDeliveryExists, domainerrors.ErrDeliveryAlreadyExists},
}

func mapLedgerError(err error, message string) error {
	if err == nil {
		return nil
	}

	for _, m := range ledgerErrors {
		if errors.Is(err, m.repoErr) {
			return m.appErr
		}
	}

	var appErr domainerrors.AppError
	if errors.As(err, &appErr) {
		return err
	}

	return errors.Wrap(err, message)
}

// lookupReference parses a referenced id and checks it is visible through
// find. A foreign or missing record becomes a field error, so the caller never
// learns which one it was.
func lookupReference(ctx context.Context, field, raw string, notFound error, find func(context.Context, uuid.UUID) error) (uuid.UUID, error) {
	id, err := parseID(field, raw)
	if err != nil {
		return uuid.Nil, err
	}

	if err := find(ctx, id); err != nil {
		if errors.Is(err, notFound) {
			return uuid.Nil, domainerrors.NewFieldError(field, "does not reference an accessible record")
		}

		return uuid.Nil, mapLedgerError(err, "failed to resolve "+field)
	}

	return id, nil
}

// parseID parses a UUID that already passed the uuid rule.
func parseID(field, raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil {
		return uuid.Nil, domainerrors.NewFieldError(field, "must be a valid id")
	}

	return id, nil
}

// optionalDate parses an optional date field that already passed ledger_date.
func optionalDate(field, raw string) (*time.Time, error) {
	t, err := entity.ParseOptionalDate(raw)
	if err != nil {
		return nil, domainerrors.NewFieldError(field, "must be a date (YYYY-MM-DD)")
	}

	return t, nil
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = strings.TrimSpace(*src)
	}
}

func setNumber(dst *float64, src entity.Number) bool {
	if src.Set && src.Valid {
		*dst = src.Value

		return true
	}

	return false
}

func numberOr(n entity.Number, fallback float64) float64 {
	if n.Set && n.Valid {
		return n.Value
	}

	return fallback
}
