package wire

import (
	"yamdb/internal/adaptor"
	"yamdb/internal/permission"
	"yamdb/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireTitle(r chi.Router, handler *adaptor.Handler, log *zap.Logger) {
	r.Route("/titles", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(middleware.Permit(permission.AdminOrReadOnly, log))

			r.Get("/", handler.Title.GetTitles)
			r.Post("/", handler.Title.CreateTitle)
			r.Get("/{title_id}", handler.Title.GetTitle)
			r.Patch("/{title_id}", handler.Title.UpdateTitle)
			r.Put("/{title_id}", handler.Title.ReplaceTitle)
			r.Delete("/{title_id}", handler.Title.DeleteTitle)
		})

		r.Route("/{title_id}/reviews", func(r chi.Router) {
			wireReview(r, handler.Review, handler.Comment, log)
		})
	})
}
