package wire

import (
	"yamdb/internal/adaptor"
	"yamdb/internal/permission"
	"yamdb/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireCatalog(r chi.Router, categoryHandler *adaptor.CategoryHandler, genreHandler *adaptor.GenreHandler, log *zap.Logger) {
	r.Route("/categories", func(r chi.Router) {
		r.Use(middleware.Permit(permission.AdminOrReadOnly, log))

		r.Get("/", categoryHandler.GetCategories)
		r.Post("/", categoryHandler.CreateCategory)
		r.Delete("/{slug}", categoryHandler.DeleteCategory)
	})

	r.Route("/genres", func(r chi.Router) {
		r.Use(middleware.Permit(permission.AdminOrReadOnly, log))

		r.Get("/", genreHandler.GetGenres)
		r.Post("/", genreHandler.CreateGenre)
		r.Delete("/{slug}", genreHandler.DeleteGenre)
	})
}
