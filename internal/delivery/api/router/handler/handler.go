// Package handler contains the HTTP handlers for the ledger API.
package handler

import (
	"net/http"
	"strings"

	"muthurwa/internal/delivery/api/response"
	deliverycontext "muthurwa/internal/delivery/context"
	"muthurwa/internal/domain/entity"
	domainerrors "muthurwa/internal/domain/errors"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// bind decodes the request into dst. Malformed input is reported as a
// validation failure so clients get one error shape.
func bind(c echo.Context, dst any) error {
	if err := c.Bind(dst); err != nil {
		return domainerrors.NewFieldError("body", "must be a valid JSON object")
	}

	return nil
}

func callerFrom(c echo.Context) (entity.Caller, error) {
	caller, ok := deliverycontext.CallerFrom(c.Request().Context())
	if !ok {
		return entity.Caller{}, domainerrors.ErrUnauthorized
	}

	return caller, nil
}

func pathID(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(c.Param("id")))
	if err != nil {
		return uuid.Nil, domainerrors.NewFieldError("id", "must be a valid id")
	}

	return id, nil
}

func deleted(c echo.Context, what string) error {
	return response.Success(c, http.StatusOK, map[string]string{"message": what + " deleted successfully"})
}

// HealthCheck is a simple handler to check if the service is up.
func HealthCheck(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]string{"status": "ok"})
}
