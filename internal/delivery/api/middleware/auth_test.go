package middleware

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"muthurwa/config"
	deliverycontext "muthurwa/internal/delivery/context"
	"muthurwa/internal/domain/entity"
	domainerrors "muthurwa/internal/domain/errors"
	"muthurwa/internal/domain/service"
	"muthurwa/internal/infra/auth"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTokenService(t *testing.T) service.TokenService {
	t.Helper()

	cfg := &config.Config{Auth: &config.AuthConfig{TokenTTL: time.Hour}}
	cfg.SecretKey.Access = "middleware-test-secret"
	tokens, err := auth.NewJWTService(cfg)
	require.NoError(t, err)

	return tokens
}

func newContext(req *http.Request) echo.Context {
	return echo.New().NewContext(req, httptest.NewRecorder())
}

func TestAuthMiddleware_AuthenticateTagsRequest(t *testing.T) {
	tokens := newTokenService(t)
	identity := &entity.Identity{ID: uuid.New(), Name: "Jane Njeri", Role: entity.RoleVendor}
	token, err := tokens.IssueToken(identity)
	require.NoError(t, err)

	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	m := NewAuthMiddleware(tokens, logger)

	req := httptest.NewRequest(http.MethodGet, "/api/buyers", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	req = req.WithContext(deliverycontext.WithRequest(req.Context(), "req-7", logger))

	var caller entity.Caller
	err = m.Authenticate(func(c echo.Context) error {
		ctx := c.Request().Context()

		var ok bool
		caller, ok = deliverycontext.CallerFrom(ctx)
		require.True(t, ok)
		deliverycontext.Logger(ctx, nil).InfoContext(ctx, "listing buyers")

		return nil
	})(newContext(req))
	require.NoError(t, err)

	assert.Equal(t, identity.ID, caller.IdentityID)
	assert.Equal(t, entity.RoleVendor, caller.Role)
	assert.Equal(t, "Jane Njeri", caller.DisplayName)

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "listing buyers", line["msg"])
	assert.Equal(t, "req-7", line["request_id"])
	assert.Equal(t, identity.ID.String(), line["identity_id"])
	assert.Equal(t, "vendor", line["role"])
}

func TestAuthMiddleware_AuthenticateRejects(t *testing.T) {
	tokens := newTokenService(t)
	m := NewAuthMiddleware(tokens, slog.New(slog.DiscardHandler))

	tests := []struct {
		name   string
		header string
	}{
		{name: "missing header"},
		{name: "not bearer", header: "Basic abc"},
		{name: "empty token", header: "Bearer  "},
		{name: "garbage token", header: "Bearer not-a-token"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/buyers", nil)
			if tt.header != "" {
				req.Header.Set(echo.HeaderAuthorization, tt.header)
			}

			called := false
			err := m.Authenticate(func(echo.Context) error {
				called = true

				return nil
			})(newContext(req))

			assert.ErrorIs(t, err, domainerrors.ErrUnauthorized)
			assert.False(t, called)
		})
	}
}

func TestAuthMiddleware_RequireRole(t *testing.T) {
	m := NewAuthMiddleware(newTokenService(t), slog.New(slog.DiscardHandler))
	ok := func(echo.Context) error { return nil }

	tests := []struct {
		name    string
		caller  *entity.Caller
		wantErr error
	}{
		{name: "no caller", wantErr: domainerrors.ErrUnauthorized},
		{name: "vendor", caller: &entity.Caller{IdentityID: uuid.New(), Role: entity.RoleVendor}, wantErr: domainerrors.ErrForbidden},
		{name: "admin", caller: &entity.Caller{IdentityID: uuid.New(), Role: entity.RoleAdmin}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/admin/vendors", nil)
			if tt.caller != nil {
				req = req.WithContext(deliverycontext.WithCaller(req.Context(), *tt.caller, slog.New(slog.DiscardHandler)))
			}

			err := m.RequireRole(entity.RoleAdmin)(ok)(newContext(req))
			if tt.wantErr == nil {
				assert.NoError(t, err)

				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
