package adaptor

import (
	"net/http"

	"yamdb/internal/dto/request"
	"yamdb/internal/usecase"
	"yamdb/pkg/utils"

	"go.uber.org/zap"
)

type ReviewHandler struct {
	service usecase.ReviewService
	log     *zap.Logger
}

func NewReviewHandler(service usecase.ReviewService, log *zap.Logger) *ReviewHandler {
	return &ReviewHandler{
		service: service,
		log:     log.With(zap.String("handler", "review")),
	}
}

// GetReviews handles GET /api/v1/titles/{title_id}/reviews/
func (h *ReviewHandler) GetReviews(w http.ResponseWriter, r *http.Request) {
	titleID, ok := pathID(w, r, "title_id")
	if !ok {
		return
	}

	reviews, err := h.service.GetTitleReviews(r.Context(), titleID, pagination(r))
	if err != nil {
		handleServiceError(w, h.log, err, "get reviews")
		return
	}

	utils.ResponseSuccess(w, "success", reviews)
}

func (h *ReviewHandler) GetReview(w http.ResponseWriter, r *http.Request) {
	titleID, reviewID, ok := reviewPath(w, r)
	if !ok {
		return
	}

	review, err := h.service.GetReview(r.Context(), titleID, reviewID)
	if err != nil {
		handleServiceError(w, h.log, err, "get review")
		return
	}

	utils.ResponseSuccess(w, "success", review)
}

// CreateReview handles POST /api/v1/titles/{title_id}/reviews/
func (h *ReviewHandler) CreateReview(w http.ResponseWriter, r *http.Request) {
	titleID, ok := pathID(w, r, "title_id")
	if !ok {
		return
	}

	var req request.CreateReviewRequest
	if !decodeBody(w, r, &req) {
		return
	}

	actor := utils.GetActorFromContext(r.Context())
	review, err := h.service.CreateReview(r.Context(), actor, titleID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create review")
		return
	}

	utils.ResponseCreated(w, "Review created successfully", review)
}

func (h *ReviewHandler) UpdateReview(w http.ResponseWriter, r *http.Request) {
	var req request.UpdateReviewRequest
	if !decodeBody(w, r, &req) {
		return
	}
	h.update(w, r, &req)
}

func (h *ReviewHandler) ReplaceReview(w http.ResponseWriter, r *http.Request) {
	var req request.CreateReviewRequest
	if !decodeReplacement(w, r, &req) {
		return
	}
	update := req.AsUpdate()
	h.update(w, r, &update)
}

func (h *ReviewHandler) update(w http.ResponseWriter, r *http.Request, req *request.UpdateReviewRequest) {
	titleID, reviewID, ok := reviewPath(w, r)
	if !ok {
		return
	}

	actor := utils.GetActorFromContext(r.Context())
	review, err := h.service.UpdateReview(r.Context(), actor, titleID, reviewID, req)
	if err != nil {
		handleServiceError(w, h.log, err, "update review")
		return
	}

	utils.ResponseSuccess(w, "Review updated successfully", review)
}

func (h *ReviewHandler) DeleteReview(w http.ResponseWriter, r *http.Request) {
	titleID, reviewID, ok := reviewPath(w, r)
	if !ok {
		return
	}

	actor := utils.GetActorFromContext(r.Context())
	if err := h.service.DeleteReview(r.Context(), actor, titleID, reviewID); err != nil {
		handleServiceError(w, h.log, err, "delete review")
		return
	}

	utils.ResponseNoContent(w)
}

func reviewPath(w http.ResponseWriter, r *http.Request) (titleID, reviewID int64, ok bool) {
	if titleID, ok = pathID(w, r, "title_id"); !ok {
		return
	}
	reviewID, ok = pathID(w, r, "review_id")
	return
}
