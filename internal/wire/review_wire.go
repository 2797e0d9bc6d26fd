package wire

import (
	"yamdb/internal/adaptor"
	"yamdb/internal/permission"
	"yamdb/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Object level checks (author, moderator, admin) happen in the services,
// the router only rejects anonymous writes.
func wireReview(r chi.Router, reviewHandler *adaptor.ReviewHandler, commentHandler *adaptor.CommentHandler, log *zap.Logger) {
	r.Use(middleware.Permit(permission.ContributionAdminModeratorOrReadOnly, log))

	r.Get("/", reviewHandler.GetReviews)
	r.Post("/", reviewHandler.CreateReview)

	r.Route("/{review_id}", func(r chi.Router) {
		r.Get("/", reviewHandler.GetReview)
		r.Patch("/", reviewHandler.UpdateReview)
		r.Put("/", reviewHandler.ReplaceReview)
		r.Delete("/", reviewHandler.DeleteReview)

		r.Route("/comments", func(r chi.Router) {
			r.Get("/", commentHandler.GetComments)
			r.Post("/", commentHandler.CreateComment)
			r.Get("/{comment_id}", commentHandler.GetComment)
			r.Patch("/{comment_id}", commentHandler.UpdateComment)
			r.Put("/{comment_id}", commentHandler.ReplaceComment)
			r.Delete("/{comment_id}", commentHandler.DeleteComment)
		})
	})
}
