package handler

import (
	"log/slog"
	"net/http"

	"muthurwa/internal/delivery/api/response"
	"muthurwa/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// DeliveryHandlerParams holds dependencies for DeliveryHandler, injected by Fx.
type DeliveryHandlerParams struct {
	fx.In

	DeliveryUC usecase.DeliveryUsecase
	Logger     *slog.Logger
}

// DeliveryHandler holds dependencies for delivery handlers
type DeliveryHandler struct {
	deliveryUC usecase.DeliveryUsecase
	logger     *slog.Logger
}

// NewDeliveryHandler is the constructor for DeliveryHandler
func NewDeliveryHandler(params DeliveryHandlerParams) *DeliveryHandler {
	return &DeliveryHandler{
		deliveryUC: params.DeliveryUC,
		logger:     params.Logger,
	}
}

// CreateDelivery records a delivery by hand
func (h *DeliveryHandler) CreateDelivery(c echo.Context) error {
	caller, err := callerFrom(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	var input usecase.CreateDeliveryInput
	if err := bind(c, &input); err != nil {
		return response.HandleAppError(c, err)
	}

	delivery, err := h.deliveryUC.CreateDelivery(c.Request().Context(), caller, &input)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, delivery)
}

// ListDeliveries returns the deliveries visible to the caller, optionally by status
func (h *DeliveryHandler) ListDeliveries(c echo.Context) error {
	caller, err := callerFrom(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	var query usecase.DeliveryQuery
	if err := bind(c, &query); err != nil {
		return response.HandleAppError(c, err)
	}

	deliveries, err := h.deliveryUC.ListDeliveries(c.Request().Context(), caller, &query)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, deliveries)
}

// GetDelivery returns one delivery
func (h *DeliveryHandler) GetDelivery(c echo.Context) error {
	caller, err := callerFrom(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}
	id, err := pathID(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	delivery, err := h.deliveryUC.GetDelivery(c.Request().Context(), caller, id)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, delivery)
}

// UpdateDelivery applies a partial delivery update
func (h *DeliveryHandler) UpdateDelivery(c echo.Context) error {
	caller, err := callerFrom(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}
	id, err := pathID(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	var input usecase.UpdateDeliveryInput
	if err := bind(c, &input); err != nil {
		return response.HandleAppError(c, err)
	}

	delivery, err := h.deliveryUC.UpdateDelivery(c.Request().Context(), caller, id, &input)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, delivery)
}

// DeleteDelivery removes a delivery
func (h *DeliveryHandler) DeleteDelivery(c echo.Context) error {
	caller, err := callerFrom(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}
	id, err := pathID(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	if err := h.deliveryUC.DeleteDelivery(c.Request().Context(), caller, id); err != nil {
		return response.HandleAppError(c, err)
	}

	return deleted(c, "Delivery")
}
