package adaptor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"yamdb/internal/dto/request"
	"yamdb/internal/dto/response"
	"yamdb/internal/permission"
	"yamdb/internal/usecase"
	"yamdb/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type envelope struct {
	Status  bool              `json:"status"`
	Message string            `json:"message"`
	Data    json.RawMessage   `json:"data"`
	Errors  map[string]string `json:"errors"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	if err := json.NewDecoder(rec.Body).Decode(&env); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return env
}

func TestHandleServiceError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"validation", &usecase.ValidationError{Fields: map[string]string{"score": "too big"}}, http.StatusBadRequest},
		{"not found", usecase.ErrNotFound, http.StatusNotFound},
		{"wrapped not found", fmt.Errorf("title 7: %w", usecase.ErrNotFound), http.StatusNotFound},
		{"unauthenticated", usecase.ErrUnauthenticated, http.StatusUnauthorized},
		{"forbidden", usecase.ErrForbidden, http.StatusForbidden},
		{"conflict", fmt.Errorf("%w: already reviewed", usecase.ErrConflict), http.StatusBadRequest},
		{"duplicate identity", usecase.ErrDuplicateIdentity, http.StatusBadRequest},
		{"invalid code", usecase.ErrInvalidCode, http.StatusBadRequest},
		{"unknown", errors.New("connection reset"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			handleServiceError(rec, zap.NewNop(), tt.err, "test")

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			env := decodeEnvelope(t, rec)
			if env.Status {
				t.Error("error envelope must have status=false")
			}
			if tt.wantStatus == http.StatusInternalServerError && strings.Contains(env.Message, "connection reset") {
				t.Error("internal error detail leaked to client")
			}
		})
	}
}

func TestHandleServiceError_ValidationFields(t *testing.T) {
	rec := httptest.NewRecorder()
	handleServiceError(rec, zap.NewNop(), &usecase.ValidationError{Fields: map[string]string{"genre": "unknown slug"}}, "test")

	env := decodeEnvelope(t, rec)
	if env.Errors["genre"] != "unknown slug" {
		t.Errorf("errors = %v, want genre field", env.Errors)
	}
}

type stubReviewService struct {
	usecase.ReviewService
	gotActor  *permission.Actor
	gotTitle  int64
	gotUpdate *request.UpdateReviewRequest
	err       error
}

func (s *stubReviewService) CreateReview(_ context.Context, actor *permission.Actor, titleID int64, req *request.CreateReviewRequest) (*response.ReviewResponse, error) {
	s.gotActor, s.gotTitle = actor, titleID
	if s.err != nil {
		return nil, s.err
	}
	return &response.ReviewResponse{ID: 1, Text: req.Text, Score: req.Score, Author: actor.Username}, nil
}

func (s *stubReviewService) UpdateReview(_ context.Context, actor *permission.Actor, titleID, reviewID int64, req *request.UpdateReviewRequest) (*response.ReviewResponse, error) {
	s.gotActor, s.gotTitle, s.gotUpdate = actor, titleID, req
	return &response.ReviewResponse{ID: reviewID, Text: *req.Text, Score: *req.Score}, nil
}

func reviewRouter(h *ReviewHandler, actor *permission.Actor) http.Handler {
	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			if actor != nil {
				req = req.WithContext(utils.SetActorContext(req.Context(), actor))
			}
			next.ServeHTTP(w, req)
		})
	})
	r.Post("/titles/{title_id}/reviews/", h.CreateReview)
	r.Put("/titles/{title_id}/reviews/{review_id}", h.ReplaceReview)
	return r
}

func TestReviewHandler_Create(t *testing.T) {
	svc := &stubReviewService{}
	actor := &permission.Actor{ID: 3, Username: "bob", Role: permission.RoleUser}
	router := reviewRouter(NewReviewHandler(svc, zap.NewNop()), actor)

	req := httptest.NewRequest(http.MethodPost, "/titles/12/reviews/", strings.NewReader(`{"text":"great","score":9}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", rec.Code, rec.Body.String())
	}
	if svc.gotTitle != 12 || svc.gotActor != actor {
		t.Errorf("service called with title=%d actor=%v", svc.gotTitle, svc.gotActor)
	}

	var body struct {
		Data response.ReviewResponse `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body.Data.Author != "bob" || body.Data.Score != 9 {
		t.Errorf("unexpected review %+v", body.Data)
	}
}

func TestReviewHandler_CreateConflict(t *testing.T) {
	svc := &stubReviewService{err: usecase.ErrAlreadyReviewed}
	router := reviewRouter(NewReviewHandler(svc, zap.NewNop()), &permission.Actor{ID: 3, Username: "bob"})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/titles/12/reviews/", strings.NewReader(`{"text":"again","score":1}`)))

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestReviewHandler_BadPath(t *testing.T) {
	svc := &stubReviewService{}
	router := reviewRouter(NewReviewHandler(svc, zap.NewNop()), nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/titles/abc/reviews/", strings.NewReader(`{}`)))

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
	if svc.gotTitle != 0 {
		t.Error("service must not be called for a malformed id")
	}
}

func TestReviewHandler_ReplaceRequiresFullBody(t *testing.T) {
	svc := &stubReviewService{}
	router := reviewRouter(NewReviewHandler(svc, zap.NewNop()), &permission.Actor{ID: 3})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/titles/12/reviews/4", strings.NewReader(`{"text":"only text"}`)))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if env := decodeEnvelope(t, rec); env.Errors["score"] == "" {
		t.Errorf("errors = %v, want score", env.Errors)
	}
	if svc.gotUpdate != nil {
		t.Error("service must not be called for an incomplete replacement")
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/titles/12/reviews/4", strings.NewReader(`{"text":"all","score":6}`)))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if svc.gotUpdate == nil || *svc.gotUpdate.Text != "all" || *svc.gotUpdate.Score != 6 {
		t.Errorf("update = %+v", svc.gotUpdate)
	}
}

type stubTitleService struct {
	usecase.TitleService
	gotFilter request.TitleFilterRequest
	gotPage   request.PaginatedRequest
}

func (s *stubTitleService) GetAllTitles(_ context.Context, filter request.TitleFilterRequest, req request.PaginatedRequest) (*response.PaginatedResponse[response.TitleResponse], error) {
	s.gotFilter, s.gotPage = filter, req
	return response.NewPaginatedResponse([]response.TitleResponse{}, req.PageNumber(), req.Limit(), 0), nil
}

func TestTitleHandler_GetTitlesFilters(t *testing.T) {
	svc := &stubTitleService{}
	h := NewTitleHandler(svc, zap.NewNop())

	rec := httptest.NewRecorder()
	h.GetTitles(rec, httptest.NewRequest(http.MethodGet, "/titles/?genre=drama&category=movie&name=god&year=1972&page=2&count=3", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	f := svc.gotFilter
	if f.Genre != "drama" || f.Category != "movie" || f.Name != "god" || f.Year == nil || *f.Year != 1972 {
		t.Errorf("filter = %+v", f)
	}
	if svc.gotPage.PageNumber() != 2 || svc.gotPage.Limit() != 3 {
		t.Errorf("pagination = %+v", svc.gotPage)
	}
}

func TestTitleHandler_GetTitlesBadYear(t *testing.T) {
	h := NewTitleHandler(&stubTitleService{}, zap.NewNop())

	rec := httptest.NewRecorder()
	h.GetTitles(rec, httptest.NewRequest(http.MethodGet, "/titles/?year=soon", nil))

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

type stubUserService struct {
	usecase.UserService
	profileID int64
}

func (s *stubUserService) GetProfile(_ context.Context, userID int64) (*response.UserResponse, error) {
	s.profileID = userID
	return &response.UserResponse{Username: "bob"}, nil
}

func TestUserHandler_ProfileRequiresActor(t *testing.T) {
	svc := &stubUserService{}
	h := NewUserHandler(svc, zap.NewNop())

	rec := httptest.NewRecorder()
	h.GetProfile(rec, httptest.NewRequest(http.MethodGet, "/users/me", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("anonymous: status = %d, want 401", rec.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
	req = req.WithContext(utils.SetActorContext(req.Context(), &permission.Actor{ID: 8, Username: "bob"}))
	rec = httptest.NewRecorder()
	h.GetProfile(rec, req)
	if rec.Code != http.StatusOK || svc.profileID != 8 {
		t.Errorf("status = %d, profile id = %d", rec.Code, svc.profileID)
	}
}

func TestDecodeBody_Malformed(t *testing.T) {
	h := NewAuthHandler(nil, zap.NewNop())

	rec := httptest.NewRecorder()
	h.Signup(rec, httptest.NewRequest(http.MethodPost, "/auth/signup", strings.NewReader(`{"username":`)))

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}
