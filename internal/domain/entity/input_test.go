package entity

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNumber_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantSet   bool
		wantValid bool
		wantValue float64
	}{
		{"json number", `12.5`, true, true, 12.5},
		{"numeric string", `"450"`, true, true, 450},
		{"padded numeric string", `" 3 "`, true, true, 3},
		{"null", `null`, false, false, 0},
		{"word", `"ten"`, true, false, 0},
		{"empty string", `""`, true, false, 0},
		{"boolean", `true`, true, false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var payload struct {
				Amount Number `json:"amount"`
			}
			require.NoError(t, json.Unmarshal([]byte(`{"amount":`+tt.input+`}`), &payload))

			assert.Equal(t, tt.wantSet, payload.Amount.Set)
			assert.Equal(t, tt.wantValid, payload.Amount.Valid)
			assert.InDelta(t, tt.wantValue, payload.Amount.Value, 1e-9)
		})
	}
}

func TestNumber_MissingFieldIsUnset(t *testing.T) {
	var payload struct {
		Amount Number `json:"amount"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{}`), &payload))

	assert.False(t, payload.Amount.Set)
}

func TestParseDate(t *testing.T) {
	got, err := ParseDate("2026-03-14")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC), got)

	got, err = ParseDate("2026-03-14T10:30:00+03:00")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 14, 7, 30, 0, 0, time.UTC), got)

	_, err = ParseDate("14/03/2026")
	assert.Error(t, err)
}

func TestParseDateBound_CoversWholeDay(t *testing.T) {
	bound, err := ParseDateBound("2026-03-14")
	require.NoError(t, err)

	assert.False(t, time.Date(2026, 3, 14, 23, 0, 0, 0, time.UTC).After(bound))
	assert.True(t, time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC).After(bound))
}

func TestParseOptionalDate_Empty(t *testing.T) {
	got, err := ParseOptionalDate("  ")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestStatuses(t *testing.T) {
	assert.True(t, PaymentPartial.IsValid())
	assert.False(t, PaymentStatus("overdue").IsValid())
	assert.True(t, PaymentUnpaid.IsDebt())
	assert.False(t, PaymentPaid.IsDebt())
	assert.True(t, DeliveryDelivered.IsValid())
	assert.False(t, DeliveryStatus("lost").IsValid())
	assert.True(t, RoleVendor.IsValid())
	assert.False(t, Role("merchant").IsValid())
	assert.True(t, Caller{Role: RoleAdmin}.IsAdmin())
}
