package wire

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"yamdb/pkg/database"
	"yamdb/pkg/utils"

	"go.uber.org/zap"
)

type pingDB struct {
	database.PgxIface
	pingErr error
}

func (p pingDB) Ping(context.Context) error { return p.pingErr }

func newTestApp(t *testing.T, db database.PgxIface) *App {
	t.Helper()
	config := &utils.Config{
		JWT:  utils.JWTConfig{Secret: "wire-test-secret", ExpiryHours: 1},
		HTTP: utils.HTTPConfig{CORSAllowedOrigins: []string{"*"}},
	}
	app, err := Wiring(db, config, zap.NewNop())
	if err != nil {
		t.Fatalf("Wiring() error = %v", err)
	}
	return app
}

func TestHealth(t *testing.T) {
	tests := []struct {
		name       string
		pingErr    error
		wantStatus int
	}{
		{"database up", nil, http.StatusOK},
		{"database down", errors.New("dial tcp: refused"), http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newTestApp(t, pingDB{pingErr: tt.pingErr})

			rec := httptest.NewRecorder()
			app.Router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
		})
	}
}

// Requests here are rejected before any handler touches the database.
func TestRouter_AnonymousAccess(t *testing.T) {
	app := newTestApp(t, pingDB{})

	tests := []struct {
		method string
		path   string
		body   string
		want   int
	}{
		{http.MethodGet, "/api/v1/users/", "", http.StatusUnauthorized},
		{http.MethodGet, "/api/v1/users/me", "", http.StatusUnauthorized},
		{http.MethodPatch, "/api/v1/users/me", `{}`, http.StatusUnauthorized},
		{http.MethodPost, "/api/v1/categories/", `{"name":"Film","slug":"film"}`, http.StatusUnauthorized},
		{http.MethodDelete, "/api/v1/genres/drama", "", http.StatusUnauthorized},
		{http.MethodPost, "/api/v1/titles/", `{}`, http.StatusUnauthorized},
		{http.MethodPost, "/api/v1/titles/1/reviews/", `{"text":"x","score":5}`, http.StatusUnauthorized},
		{http.MethodDelete, "/api/v1/titles/1/reviews/2/comments/3", "", http.StatusUnauthorized},
		{http.MethodGet, "/api/v1/nowhere", "", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			app.Router.ServeHTTP(rec, req)

			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d", rec.Code, tt.want)
			}
		})
	}
}

// Auth routes are open: invalid bodies fail validation instead of authentication.
func TestRouter_AuthRoutesAreOpen(t *testing.T) {
	app := newTestApp(t, pingDB{})

	for _, path := range []string{"/api/v1/auth/signup", "/api/v1/auth/token"} {
		t.Run(path, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(`{}`))
			rec := httptest.NewRecorder()
			app.Router.ServeHTTP(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rec.Code)
			}
		})
	}
}

func TestRouter_RejectsMalformedToken(t *testing.T) {
	app := newTestApp(t, pingDB{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/titles/", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestWiring_RequiresJWTSecret(t *testing.T) {
	if _, err := Wiring(pingDB{}, &utils.Config{}, zap.NewNop()); err == nil {
		t.Error("Wiring() should fail without a JWT secret")
	}
}
