package wire

import (
	"yamdb/internal/adaptor"
	"yamdb/internal/permission"
	"yamdb/pkg/middleware"
	"yamdb/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireAuth(r chi.Router, authHandler *adaptor.AuthHandler, config *utils.Config, log *zap.Logger) {
	r.Route("/auth", func(r chi.Router) {
		r.Use(middleware.RateLimit(config.HTTP.AuthRateLimit, config.HTTP.AuthRateWindow))
		r.Use(middleware.Permit(permission.AllowAny, log))

		r.Post("/signup", authHandler.Signup)
		r.Post("/token", authHandler.Token)
	})
}
