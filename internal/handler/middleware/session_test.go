//go:build unit

package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"storefront-checkout/internal/handler/middleware"
	"storefront-checkout/internal/pkg/config"
	"storefront-checkout/internal/pkg/cookie"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubValidator struct {
	userID uuid.UUID
	err    error
}

func (v stubValidator) ValidateToken(string) (uuid.UUID, error) {
	return v.userID, v.err
}

func newEngine(validator stubValidator, seen *struct {
	session string
	user    *uuid.UUID
}) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(
		middleware.CartSession(config.CookieConfig{SameSite: "Lax", MaxAge: time.Hour}),
		middleware.NewAuthMiddleware(validator).OptionalAuth(),
	)
	engine.GET("/", func(c *gin.Context) {
		seen.session = middleware.GetCartSession(c)
		seen.user = middleware.UserIDPtr(c)
		c.Status(http.StatusNoContent)
	})
	return engine
}

func TestCartSession(t *testing.T) {
	existing := uuid.NewString()

	tests := []struct {
		name        string
		cookie      string
		wantSession func(t *testing.T, got string)
	}{
		{
			name:   "success: existing session is kept",
			cookie: existing,
			wantSession: func(t *testing.T, got string) {
				assert.Equal(t, existing, got)
			},
		},
		{
			name: "success: missing cookie issues a session",
			wantSession: func(t *testing.T, got string) {
				_, err := uuid.Parse(got)
				assert.NoError(t, err)
			},
		},
		{
			name:   "success: tampered cookie is replaced",
			cookie: "../../etc/passwd",
			wantSession: func(t *testing.T, got string) {
				_, err := uuid.Parse(got)
				assert.NoError(t, err)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var seen struct {
				session string
				user    *uuid.UUID
			}
			engine := newEngine(stubValidator{}, &seen)

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: cookie.CartSessionCookieName, Value: tt.cookie})
			}
			w := httptest.NewRecorder()
			engine.ServeHTTP(w, req)

			require.Equal(t, http.StatusNoContent, w.Code)
			tt.wantSession(t, seen.session)

			var issued *http.Cookie
			for _, c := range w.Result().Cookies() {
				if c.Name == cookie.CartSessionCookieName {
					issued = c
				}
			}
			require.NotNil(t, issued, "session cookie should be refreshed")
			assert.Equal(t, seen.session, issued.Value)
			assert.True(t, issued.HttpOnly)
		})
	}
}

func TestOptionalAuth(t *testing.T) {
	userID := uuid.New()

	tests := []struct {
		name      string
		header    string
		validator stubValidator
		wantUser  *uuid.UUID
	}{
		{name: "success: guest", validator: stubValidator{}},
		{name: "success: bearer token identifies the customer", header: "Bearer good", validator: stubValidator{userID: userID}, wantUser: &userID},
		{name: "success: invalid token is ignored", header: "Bearer bad", validator: stubValidator{err: assert.AnError}},
		{name: "success: non bearer scheme is ignored", header: "Basic abc", validator: stubValidator{userID: userID}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var seen struct {
				session string
				user    *uuid.UUID
			}
			engine := newEngine(tt.validator, &seen)

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			engine.ServeHTTP(w, req)

			require.Equal(t, http.StatusNoContent, w.Code)
			assert.Equal(t, tt.wantUser, seen.user)
		})
	}
}
