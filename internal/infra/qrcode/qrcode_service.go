package qrcode

import (
	"encoding/json"

	"muthurwa/internal/domain/entity"
	"muthurwa/internal/domain/service"

	"github.com/pkg/errors"
	"github.com/skip2/go-qrcode"
)

type receiptService struct {
	size                 int
	errorCorrectionLevel qrcode.RecoveryLevel
}

// ReceiptData is the JSON payload encoded in a transaction receipt.
type ReceiptData struct {
	TransactionID string               `json:"transaction_id"`
	Buyer         string               `json:"buyer,omitempty"`
	ProductType   string               `json:"product_type,omitempty"`
	Quantity      float64              `json:"quantity"`
	TotalAmount   float64              `json:"total_amount"`
	PaidAmount    float64              `json:"paid_amount"`
	PaymentStatus entity.PaymentStatus `json:"payment_status"`
}

// NewReceiptService creates a receipt service rendering PNGs of the given size.
func NewReceiptService(size int, errorCorrectionLevel string) service.ReceiptService {
	return &receiptService{
		size:                 size,
		errorCorrectionLevel: recoveryLevel(errorCorrectionLevel),
	}
}

func recoveryLevel(level string) qrcode.RecoveryLevel {
	switch level {
	case "L":
		return qrcode.Low
	case "M":
		return qrcode.Medium
	case "Q":
		return qrcode.High
	case "H":
		return qrcode.Highest
	default:
		return qrcode.Medium
	}
}

// NewReceiptData summarises a transaction for its receipt.
func NewReceiptData(transaction *entity.Transaction) ReceiptData {
	data := ReceiptData{
		TransactionID: transaction.ID.String(),
		Quantity:      transaction.Quantity,
		TotalAmount:   transaction.TotalAmount,
		PaidAmount:    transaction.PaidAmount,
		PaymentStatus: transaction.PaymentStatus,
	}
	if transaction.Buyer != nil {
		data.Buyer = transaction.Buyer.Name
	}
	if transaction.ProductType != nil {
		data.ProductType = transaction.ProductType.Name
	}

	return data
}

// TransactionReceiptPNG encodes the transaction summary as a QR code PNG.
func (s *receiptService) TransactionReceiptPNG(transaction *entity.Transaction) ([]byte, error) {
	if transaction == nil {
		return nil, errors.New("transaction is required")
	}

	jsonData, err := json.Marshal(NewReceiptData(transaction))
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal receipt data")
	}

	qrCode, err := qrcode.New(string(jsonData), s.errorCorrectionLevel)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create QR code")
	}

	pngBytes, err := qrCode.PNG(s.size)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate PNG")
	}

	return pngBytes, nil
}
