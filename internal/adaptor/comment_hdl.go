package adaptor

import (
	"net/http"

	"yamdb/internal/dto/request"
	"yamdb/internal/usecase"
	"yamdb/pkg/utils"

	"go.uber.org/zap"
)

type CommentHandler struct {
	service usecase.CommentService
	log     *zap.Logger
}

func NewCommentHandler(service usecase.CommentService, log *zap.Logger) *CommentHandler {
	return &CommentHandler{
		service: service,
		log:     log.With(zap.String("handler", "comment")),
	}
}

// GetComments handles GET /api/v1/titles/{title_id}/reviews/{review_id}/comments/
func (h *CommentHandler) GetComments(w http.ResponseWriter, r *http.Request) {
	titleID, reviewID, ok := reviewPath(w, r)
	if !ok {
		return
	}

	comments, err := h.service.GetReviewComments(r.Context(), titleID, reviewID, pagination(r))
	if err != nil {
		handleServiceError(w, h.log, err, "get comments")
		return
	}

	utils.ResponseSuccess(w, "success", comments)
}

func (h *CommentHandler) GetComment(w http.ResponseWriter, r *http.Request) {
	titleID, reviewID, commentID, ok := commentPath(w, r)
	if !ok {
		return
	}

	comment, err := h.service.GetComment(r.Context(), titleID, reviewID, commentID)
	if err != nil {
		handleServiceError(w, h.log, err, "get comment")
		return
	}

	utils.ResponseSuccess(w, "success", comment)
}

func (h *CommentHandler) CreateComment(w http.ResponseWriter, r *http.Request) {
	titleID, reviewID, ok := reviewPath(w, r)
	if !ok {
		return
	}

	var req request.CreateCommentRequest
	if !decodeBody(w, r, &req) {
		return
	}

	actor := utils.GetActorFromContext(r.Context())
	comment, err := h.service.CreateComment(r.Context(), actor, titleID, reviewID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create comment")
		return
	}

	utils.ResponseCreated(w, "Comment created successfully", comment)
}

func (h *CommentHandler) UpdateComment(w http.ResponseWriter, r *http.Request) {
	var req request.UpdateCommentRequest
	if !decodeBody(w, r, &req) {
		return
	}
	h.update(w, r, &req)
}

func (h *CommentHandler) ReplaceComment(w http.ResponseWriter, r *http.Request) {
	var req request.CreateCommentRequest
	if !decodeReplacement(w, r, &req) {
		return
	}
	update := req.AsUpdate()
	h.update(w, r, &update)
}

func (h *CommentHandler) update(w http.ResponseWriter, r *http.Request, req *request.UpdateCommentRequest) {
	titleID, reviewID, commentID, ok := commentPath(w, r)
	if !ok {
		return
	}

	actor := utils.GetActorFromContext(r.Context())
	comment, err := h.service.UpdateComment(r.Context(), actor, titleID, reviewID, commentID, req)
	if err != nil {
		handleServiceError(w, h.log, err, "update comment")
		return
	}

	utils.ResponseSuccess(w, "Comment updated successfully", comment)
}

func (h *CommentHandler) DeleteComment(w http.ResponseWriter, r *http.Request) {
	titleID, reviewID, commentID, ok := commentPath(w, r)
	if !ok {
		return
	}

	actor := utils.GetActorFromContext(r.Context())
	if err := h.service.DeleteComment(r.Context(), actor, titleID, reviewID, commentID); err != nil {
		handleServiceError(w, h.log, err, "delete comment")
		return
	}

	utils.ResponseNoContent(w)
}

func commentPath(w http.ResponseWriter, r *http.Request) (titleID, reviewID, commentID int64, ok bool) {
	if titleID, reviewID, ok = reviewPath(w, r); !ok {
		return
	}
	commentID, ok = pathID(w, r, "comment_id")
	return
}
