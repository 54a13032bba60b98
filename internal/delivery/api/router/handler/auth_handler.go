package handler

import (
	"log/slog"
	"net/http"

	"muthurwa/internal/delivery/api/response"
	"muthurwa/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// AuthHandlerParams holds dependencies for AuthHandler, injected by Fx.
type AuthHandlerParams struct {
	fx.In

	AuthUC usecase.AuthUsecase
	Logger *slog.Logger
}

// AuthHandler serves sign-up, sign-in and vendor management.
type AuthHandler struct {
	authUC usecase.AuthUsecase
	logger *slog.Logger
}

// NewAuthHandler is the constructor for AuthHandler
func NewAuthHandler(params AuthHandlerParams) *AuthHandler {
	return &AuthHandler{
		authUC: params.AuthUC,
		logger: params.Logger,
	}
}

// Register handles account registration
func (h *AuthHandler) Register(c echo.Context) error {
	var input usecase.RegisterInput
	if err := bind(c, &input); err != nil {
		return response.HandleAppError(c, err)
	}

	output, err := h.authUC.Register(c.Request().Context(), &input)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, output)
}

// Login handles phone and password sign-in
func (h *AuthHandler) Login(c echo.Context) error {
	var input usecase.LoginInput
	if err := bind(c, &input); err != nil {
		return response.HandleAppError(c, err)
	}

	output, err := h.authUC.Login(c.Request().Context(), &input)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, output)
}

// Me echoes the identity resolved from the bearer token
func (h *AuthHandler) Me(c echo.Context) error {
	caller, err := callerFrom(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, map[string]any{
		"id":   caller.IdentityID,
		"role": caller.Role,
		"name": caller.DisplayName,
	})
}

// ListVendors returns every vendor profile
func (h *AuthHandler) ListVendors(c echo.Context) error {
	caller, err := callerFrom(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	vendors, err := h.authUC.ListVendors(c.Request().Context(), caller)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, vendors)
}

// VendorStats returns every vendor with sales and delivery totals
func (h *AuthHandler) VendorStats(c echo.Context) error {
	caller, err := callerFrom(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	stats, err := h.authUC.VendorStats(c.Request().Context(), caller)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, stats)
}

// UpdateVendor applies a partial profile update to a vendor
func (h *AuthHandler) UpdateVendor(c echo.Context) error {
	caller, err := callerFrom(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}
	id, err := pathID(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	var input usecase.UpdateVendorInput
	if err := bind(c, &input); err != nil {
		return response.HandleAppError(c, err)
	}

	vendor, err := h.authUC.UpdateVendor(c.Request().Context(), caller, id, &input)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, vendor)
}

// DeleteVendor removes a vendor account
func (h *AuthHandler) DeleteVendor(c echo.Context) error {
	caller, err := callerFrom(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}
	id, err := pathID(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	if err := h.authUC.DeleteVendor(c.Request().Context(), caller, id); err != nil {
		return response.HandleAppError(c, err)
	}

	return deleted(c, "Vendor")
}
