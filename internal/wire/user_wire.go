package wire

import (
	"yamdb/internal/adaptor"
	"yamdb/internal/permission"
	"yamdb/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireUser(r chi.Router, userHandler *adaptor.UserHandler, log *zap.Logger) {
	r.Route("/users", func(r chi.Router) {
		// /me is registered before /{username} so it is never read as a username
		r.Group(func(r chi.Router) {
			r.Use(middleware.Permit(permission.Authenticated, log))

			r.Get("/me", userHandler.GetProfile)
			r.Patch("/me", userHandler.UpdateProfile)
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.Permit(permission.All(permission.Authenticated, permission.AdminOnly), log))

			r.Get("/", userHandler.GetUsers)
			r.Post("/", userHandler.CreateUser)
			r.Get("/{username}", userHandler.GetUser)
			r.Patch("/{username}", userHandler.UpdateUser)
			r.Put("/{username}", userHandler.ReplaceUser)
			r.Delete("/{username}", userHandler.DeleteUser)
		})
	})
}
