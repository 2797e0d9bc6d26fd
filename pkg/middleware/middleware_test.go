package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"yamdb/internal/data/entity"
	"yamdb/internal/data/repository"
	"yamdb/internal/permission"
	"yamdb/pkg/utils"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

type stubTokens struct {
	claims map[string]*utils.Claims
}

func (s stubTokens) ValidateToken(token string) (*utils.Claims, error) {
	if c, ok := s.claims[token]; ok {
		return c, nil
	}
	return nil, errors.New("invalid token")
}

type stubUsers struct {
	repository.UserRepository
	users map[int64]*entity.User
}

func (s stubUsers) FindByID(_ context.Context, id int64) (*entity.User, error) {
	return s.users[id], nil
}

func newAuthFixture() (stubTokens, stubUsers) {
	tokens := stubTokens{claims: map[string]*utils.Claims{
		"good":   {UserID: 1, Username: "bob"},
		"ghost":  {UserID: 99, Username: "ghost"},
		"staffy": {UserID: 2, Username: "ops"},
	}}
	users := stubUsers{users: map[int64]*entity.User{
		1: {ID: 1, Username: "bob", Role: entity.RoleModerator},
		2: {ID: 2, Username: "ops", Role: entity.RoleUser, IsStaff: true},
	}}
	return tokens, users
}

func TestAuthenticate(t *testing.T) {
	tokens, users := newAuthFixture()

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantActor  *permission.Actor
	}{
		{"no header is anonymous", "", http.StatusOK, nil},
		{"valid token", "Bearer good", http.StatusOK, &permission.Actor{ID: 1, Username: "bob", Role: "moderator"}},
		{"staff flag carried", "Bearer staffy", http.StatusOK, &permission.Actor{ID: 2, Username: "ops", Role: "user", IsStaff: true}},
		{"wrong scheme", "Basic good", http.StatusUnauthorized, nil},
		{"bad token", "Bearer nope", http.StatusUnauthorized, nil},
		{"deleted user", "Bearer ghost", http.StatusUnauthorized, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got *permission.Actor
			h := Authenticate(tokens, users, zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				got = utils.GetActorFromContext(r.Context())
			}))

			req := httptest.NewRequest(http.MethodGet, "/api/v1/titles/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if tt.wantActor == nil {
				if got != nil {
					t.Errorf("actor = %+v, want anonymous", got)
				}
				return
			}
			if got == nil || *got != *tt.wantActor {
				t.Errorf("actor = %+v, want %+v", got, tt.wantActor)
			}
		})
	}
}

func TestPermit(t *testing.T) {
	user := &permission.Actor{ID: 1, Role: permission.RoleUser}
	admin := &permission.Actor{ID: 2, Role: permission.RoleAdmin}

	tests := []struct {
		name       string
		actor      *permission.Actor
		method     string
		wantStatus int
	}{
		{"anonymous read", nil, http.MethodGet, http.StatusOK},
		{"anonymous write", nil, http.MethodPost, http.StatusUnauthorized},
		{"user write", user, http.MethodPost, http.StatusForbidden},
		{"admin write", admin, http.MethodDelete, http.StatusOK},
	}

	h := Permit(permission.AdminOrReadOnly, zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/api/v1/genres/", nil)
			if tt.actor != nil {
				req = req.WithContext(utils.SetActorContext(req.Context(), tt.actor))
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
		})
	}
}

func TestRecover(t *testing.T) {
	h := Recover(zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}
}

func TestRequestID(t *testing.T) {
	var seen, chiSeen string
	h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = utils.GetRequestIDFromContext(r.Context())
		chiSeen = chimiddleware.GetReqID(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if seen != "abc-123" || rec.Header().Get(RequestIDHeader) != "abc-123" {
		t.Errorf("caller request id not propagated: ctx=%q header=%q", seen, rec.Header().Get(RequestIDHeader))
	}
	if chiSeen != "abc-123" {
		t.Errorf("chi request id = %q, want abc-123", chiSeen)
	}

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if seen == "" || seen == "abc-123" {
		t.Errorf("expected a generated request id, got %q", seen)
	}
}

func TestRateLimit(t *testing.T) {
	h := RateLimit(2, time.Minute)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/token/", nil)
		req.RemoteAddr = "10.0.0.1:5000"
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}

	if codes[0] != http.StatusOK || codes[1] != http.StatusOK || codes[2] != http.StatusTooManyRequests {
		t.Errorf("codes = %v, want [200 200 429]", codes)
	}
}

func TestRateLimit_Disabled(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})
	h := RateLimit(0, time.Minute)(next)

	for i := 0; i < 5; i++ {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("request %d: status = %d", i, rec.Code)
		}
	}
}
