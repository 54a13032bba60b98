package service

import "muthurwa/internal/domain/entity"

// ReceiptService renders a scannable receipt for a transaction.
type ReceiptService interface {
	// TransactionReceiptPNG encodes the transaction summary as a QR code PNG.
	TransactionReceiptPNG(transaction *entity.Transaction) ([]byte, error)
}
