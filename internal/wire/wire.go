package wire

import (
	"context"
	"net/http"
	"time"

	"yamdb/internal/adaptor"
	"yamdb/internal/data/repository"
	"yamdb/internal/usecase"
	"yamdb/pkg/database"
	"yamdb/pkg/mailer"
	"yamdb/pkg/middleware"
	"yamdb/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type App struct {
	Router *chi.Mux
}

// Wiring builds services, handlers and the router on top of db.
func Wiring(db database.PgxIface, config *utils.Config, logger *zap.Logger) (*App, error) {
	tokens, err := utils.NewJWTManager(config.JWT)
	if err != nil {
		return nil, err
	}

	repo := repository.NewRepository(db, logger)
	service := usecase.NewService(repo, tokens, mailer.New(config.Email, logger), logger)
	handler := adaptor.NewHandler(service, logger)

	router := setupRouter(handler, db, repo, tokens, config, logger)

	return &App{
		Router: router,
	}, nil
}

func setupRouter(
	handler *adaptor.Handler,
	db database.PgxIface,
	repo *repository.Repository,
	tokens middleware.TokenValidator,
	config *utils.Config,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS(config.HTTP.CORSAllowedOrigins))

	r.Get("/health", health(db, logger))

	r.Route("/api/v1", func(r chi.Router) {
		wireAuth(r, handler.Auth, config, logger)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Authenticate(tokens, repo.User, logger))

			wireUser(r, handler.User, logger)
			wireCatalog(r, handler.Category, handler.Genre, logger)
			wireTitle(r, handler, logger)
		})
	})

	return r
}

func health(db database.PgxIface, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := db.Ping(ctx); err != nil {
			logger.Error("Health check failed", zap.Error(err))
			utils.ResponseServiceUnavailable(w, "database unavailable")
			return
		}
		utils.ResponseSuccess(w, "OK", nil)
	}
}
