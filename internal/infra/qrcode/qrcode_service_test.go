package qrcode

import (
	"encoding/json"
	"testing"

	"muthurwa/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/skip2/go-qrcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTransaction() *entity.Transaction {
	return &entity.Transaction{
		ID:            uuid.New(),
		Quantity:      5,
		UnitPrice:     200,
		TotalAmount:   1000,
		PaidAmount:    500,
		PaymentStatus: entity.PaymentPartial,
		Buyer:         &entity.Buyer{Name: "Bob Wilson"},
		ProductType:   &entity.ProductType{Name: "Cherry Tomatoes"},
	}
}

func TestRecoveryLevel(t *testing.T) {
	tests := []struct {
		level string
		want  qrcode.RecoveryLevel
	}{
		{"L", qrcode.Low},
		{"M", qrcode.Medium},
		{"Q", qrcode.High},
		{"H", qrcode.Highest},
		{"invalid", qrcode.Medium},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			assert.Equal(t, tt.want, recoveryLevel(tt.level))
		})
	}
}

func TestReceiptService_TransactionReceiptPNG(t *testing.T) {
	for _, size := range []int{128, 256, 512} {
		service := NewReceiptService(size, "M")

		pngBytes, err := service.TransactionReceiptPNG(sampleTransaction())
		require.NoError(t, err)
		require.Greater(t, len(pngBytes), 4)

		// PNG magic number
		assert.Equal(t, []byte{0x89, 0x50, 0x4E, 0x47}, pngBytes[:4])
	}
}

func TestReceiptService_NilTransaction(t *testing.T) {
	_, err := NewReceiptService(256, "M").TransactionReceiptPNG(nil)
	assert.Error(t, err)
}

func TestNewReceiptData(t *testing.T) {
	tx := sampleTransaction()

	raw, err := json.Marshal(NewReceiptData(tx))
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"transaction_id": "`+tx.ID.String()+`",
		"buyer": "Bob Wilson",
		"product_type": "Cherry Tomatoes",
		"quantity": 5,
		"total_amount": 1000,
		"paid_amount": 500,
		"payment_status": "partial"
	}`, string(raw))

	tx.Buyer, tx.ProductType = nil, nil
	data := NewReceiptData(tx)
	assert.Empty(t, data.Buyer)
	assert.Empty(t, data.ProductType)
}
