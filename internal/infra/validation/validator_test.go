package validation

import (
	"encoding/json"
	"testing"

	"muthurwa/internal/domain/entity"
	domainerrors "muthurwa/internal/domain/errors"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type saleInput struct {
	BuyerID       string               `json:"buyer_id" validate:"required,uuid"`
	Quantity      entity.Number        `json:"quantity" validate:"required,numeric,gte=0"`
	PaidAmount    entity.Number        `json:"paid_amount" validate:"required,numeric,gte=0"`
	Discount      entity.Number        `json:"discount" validate:"omitempty,numeric"`
	PaymentStatus entity.PaymentStatus `json:"payment_status" validate:"omitempty,oneof=paid unpaid partial"`
	DueDate       string               `json:"due_date" validate:"omitempty,ledger_date"`
	Note          *string              `json:"note" validate:"omitempty,notblank"`
}

func decode(t *testing.T, body string) *saleInput {
	t.Helper()

	var in saleInput
	require.NoError(t, json.Unmarshal([]byte(body), &in))

	return &in
}

func fieldMessages(t *testing.T, err error) map[string]string {
	t.Helper()

	var vErr *domainerrors.ValidationError
	require.True(t, errors.As(err, &vErr), "expected validation error, got %v", err)

	out := map[string]string{}
	for _, f := range vErr.Fields() {
		out[f.Field] = f.Message
	}

	return out
}

func TestValidator_AcceptsValidInput(t *testing.T) {
	v := New()
	in := decode(t, `{
		"buyer_id": "9f0b3c1e-8d47-4c36-9a55-2f0d9f1a7e21",
		"quantity": "10",
		"paid_amount": 0,
		"payment_status": "partial",
		"due_date": "2026-11-01"
	}`)

	assert.NoError(t, v.Struct(in))
}

func TestValidator_ListsEveryFailingField(t *testing.T) {
	v := New()
	blank := "   "
	in := decode(t, `{
		"quantity": "ten",
		"paid_amount": -5,
		"discount": "x",
		"payment_status": "overdue",
		"due_date": "next week"
	}`)
	in.Note = &blank

	err := v.Struct(in)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))

	msgs := fieldMessages(t, err)
	assert.Equal(t, "is required", msgs["buyer_id"])
	assert.Equal(t, "must be a number", msgs["quantity"])
	assert.Equal(t, "must be at least 0", msgs["paid_amount"])
	assert.Equal(t, "must be a number", msgs["discount"])
	assert.Equal(t, "must be one of: paid, unpaid, partial", msgs["payment_status"])
	assert.Equal(t, "must be a date (YYYY-MM-DD)", msgs["due_date"])
	assert.Equal(t, "must not be empty", msgs["note"])
}

func TestValidator_MissingNumberIsRequired(t *testing.T) {
	v := New()
	in := decode(t, `{"buyer_id": "9f0b3c1e-8d47-4c36-9a55-2f0d9f1a7e21", "quantity": 3}`)

	msgs := fieldMessages(t, v.Struct(in))
	assert.Equal(t, map[string]string{"paid_amount": "is required"}, msgs)
}

func TestValidator_EchoAdapter(t *testing.T) {
	v := New()
	err := v.Validate(&saleInput{})
	require.Error(t, err)

	var appErr domainerrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, 400, appErr.HTTPCode())
}
