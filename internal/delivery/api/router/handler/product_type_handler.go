package handler

import (
	"log/slog"
	"net/http"

	"muthurwa/internal/delivery/api/response"
	"muthurwa/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// ProductTypeHandlerParams holds dependencies for ProductTypeHandler, injected by Fx.
type ProductTypeHandlerParams struct {
	fx.In

	ProductTypeUC usecase.ProductTypeUsecase
	Logger        *slog.Logger
}

// ProductTypeHandler holds dependencies for product catalog handlers
type ProductTypeHandler struct {
	productTypeUC usecase.ProductTypeUsecase
	logger        *slog.Logger
}

// NewProductTypeHandler is the constructor for ProductTypeHandler
func NewProductTypeHandler(params ProductTypeHandlerParams) *ProductTypeHandler {
	return &ProductTypeHandler{
		productTypeUC: params.ProductTypeUC,
		logger:        params.Logger,
	}
}

// CreateProductType adds a catalog entry
func (h *ProductTypeHandler) CreateProductType(c echo.Context) error {
	caller, err := callerFrom(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	var input usecase.CreateProductTypeInput
	if err := bind(c, &input); err != nil {
		return response.HandleAppError(c, err)
	}

	productType, err := h.productTypeUC.CreateProductType(c.Request().Context(), caller, &input)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, productType)
}

// ListProductTypes returns the product types visible to the caller
func (h *ProductTypeHandler) ListProductTypes(c echo.Context) error {
	caller, err := callerFrom(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	productTypes, err := h.productTypeUC.ListProductTypes(c.Request().Context(), caller)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, productTypes)
}

// GetProductType returns one product type
func (h *ProductTypeHandler) GetProductType(c echo.Context) error {
	caller, err := callerFrom(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}
	id, err := pathID(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	productType, err := h.productTypeUC.GetProductType(c.Request().Context(), caller, id)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, productType)
}

// UpdateProductType applies a partial catalog update
func (h *ProductTypeHandler) UpdateProductType(c echo.Context) error {
	caller, err := callerFrom(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}
	id, err := pathID(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	var input usecase.UpdateProductTypeInput
	if err := bind(c, &input); err != nil {
		return response.HandleAppError(c, err)
	}

	productType, err := h.productTypeUC.UpdateProductType(c.Request().Context(), caller, id, &input)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, productType)
}

// DeleteProductType removes a catalog entry
func (h *ProductTypeHandler) DeleteProductType(c echo.Context) error {
	caller, err := callerFrom(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}
	id, err := pathID(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	if err := h.productTypeUC.DeleteProductType(c.Request().Context(), caller, id); err != nil {
		return response.HandleAppError(c, err)
	}

	return deleted(c, "Product type")
}
