package handler

import (
	"log/slog"
	"net/http"

	"muthurwa/internal/delivery/api/response"
	"muthurwa/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// TransactionHandlerParams holds dependencies for TransactionHandler, injected by Fx.
type TransactionHandlerParams struct {
	fx.In

	TransactionUC usecase.TransactionUsecase
	Logger        *slog.Logger
}

// TransactionHandler holds dependencies for sale handlers
type TransactionHandler struct {
	transactionUC usecase.TransactionUsecase
	logger        *slog.Logger
}

// NewTransactionHandler is the constructor for TransactionHandler
func NewTransactionHandler(params TransactionHandlerParams) *TransactionHandler {
	return &TransactionHandler{
		transactionUC: params.TransactionUC,
		logger:        params.Logger,
	}
}

// CreateTransaction records a sale
func (h *TransactionHandler) CreateTransaction(c echo.Context) error {
	caller, err := callerFrom(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	var input usecase.CreateTransactionInput
	if err := bind(c, &input); err != nil {
		return response.HandleAppError(c, err)
	}

	transaction, err := h.transactionUC.CreateTransaction(c.Request().Context(), caller, &input)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, transaction)
}

// ListTransactions returns the sales visible to the caller, filtered by the query string
func (h *TransactionHandler) ListTransactions(c echo.Context) error {
	caller, err := callerFrom(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	var query usecase.TransactionQuery
	if err := bind(c, &query); err != nil {
		return response.HandleAppError(c, err)
	}

	transactions, err := h.transactionUC.ListTransactions(c.Request().Context(), caller, &query)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, transactions)
}

// GetTransaction returns one sale with its buyer and product type
func (h *TransactionHandler) GetTransaction(c echo.Context) error {
	caller, err := callerFrom(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}
	id, err := pathID(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	transaction, err := h.transactionUC.GetTransaction(c.Request().Context(), caller, id)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, transaction)
}

// UpdateTransaction applies a partial sale update and keeps the delivery in step
func (h *TransactionHandler) UpdateTransaction(c echo.Context) error {
	caller, err := callerFrom(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}
	id, err := pathID(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	var input usecase.UpdateTransactionInput
	if err := bind(c, &input); err != nil {
		return response.HandleAppError(c, err)
	}

	transaction, err := h.transactionUC.UpdateTransaction(c.Request().Context(), caller, id, &input)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, transaction)
}

// DeleteTransaction removes a sale
func (h *TransactionHandler) DeleteTransaction(c echo.Context) error {
	caller, err := callerFrom(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}
	id, err := pathID(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	if err := h.transactionUC.DeleteTransaction(c.Request().Context(), caller, id); err != nil {
		return response.HandleAppError(c, err)
	}

	return deleted(c, "Transaction")
}

// ListDebts returns the caller's unpaid and partially paid sales
func (h *TransactionHandler) ListDebts(c echo.Context) error {
	caller, err := callerFrom(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	var query usecase.DebtQuery
	if err := bind(c, &query); err != nil {
		return response.HandleAppError(c, err)
	}

	debts, err := h.transactionUC.ListDebts(c.Request().Context(), caller, &query)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, debts)
}

// Receipt renders the sale as a QR code image
func (h *TransactionHandler) Receipt(c echo.Context) error {
	caller, err := callerFrom(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}
	id, err := pathID(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	png, err := h.transactionUC.Receipt(c.Request().Context(), caller, id)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.PNG(c, png)
}
