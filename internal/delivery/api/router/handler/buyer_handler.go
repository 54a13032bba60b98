package handler

import (
	"log/slog"
	"net/http"

	"muthurwa/internal/delivery/api/response"
	"muthurwa/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// BuyerHandlerParams holds dependencies for BuyerHandler, injected by Fx.
type BuyerHandlerParams struct {
	fx.In

	BuyerUC usecase.BuyerUsecase
	Logger  *slog.Logger
}

// BuyerHandler holds dependencies for buyer handlers
type BuyerHandler struct {
	buyerUC usecase.BuyerUsecase
	logger  *slog.Logger
}

// NewBuyerHandler is the constructor for BuyerHandler
func NewBuyerHandler(params BuyerHandlerParams) *BuyerHandler {
	return &BuyerHandler{
		buyerUC: params.BuyerUC,
		logger:  params.Logger,
	}
}

// CreateBuyer handles buyer registration
func (h *BuyerHandler) CreateBuyer(c echo.Context) error {
	caller, err := callerFrom(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	var input usecase.CreateBuyerInput
	if err := bind(c, &input); err != nil {
		return response.HandleAppError(c, err)
	}

	buyer, err := h.buyerUC.CreateBuyer(c.Request().Context(), caller, &input)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, buyer)
}

// ListBuyers returns the buyers visible to the caller
func (h *BuyerHandler) ListBuyers(c echo.Context) error {
	caller, err := callerFrom(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	buyers, err := h.buyerUC.ListBuyers(c.Request().Context(), caller)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, buyers)
}

// GetBuyer returns one buyer
func (h *BuyerHandler) GetBuyer(c echo.Context) error {
	caller, err := callerFrom(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}
	id, err := pathID(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	buyer, err := h.buyerUC.GetBuyer(c.Request().Context(), caller, id)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, buyer)
}

// UpdateBuyer applies a partial buyer update
func (h *BuyerHandler) UpdateBuyer(c echo.Context) error {
	caller, err := callerFrom(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}
	id, err := pathID(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	var input usecase.UpdateBuyerInput
	if err := bind(c, &input); err != nil {
		return response.HandleAppError(c, err)
	}

	buyer, err := h.buyerUC.UpdateBuyer(c.Request().Context(), caller, id, &input)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, buyer)
}

// DeleteBuyer removes a buyer
func (h *BuyerHandler) DeleteBuyer(c echo.Context) error {
	caller, err := callerFrom(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}
	id, err := pathID(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	if err := h.buyerUC.DeleteBuyer(c.Request().Context(), caller, id); err != nil {
		return response.HandleAppError(c, err)
	}

	return deleted(c, "Buyer")
}
