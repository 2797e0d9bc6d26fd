package usecase

import (
	"time"

	"yamdb/internal/data/repository"
	"yamdb/pkg/mailer"

	"go.uber.org/zap"
)

// TokenIssuer signs access tokens.
type TokenIssuer interface {
	GenerateToken(userID int64, username, role string) (string, time.Time, error)
}

type Service struct {
	Auth     AuthService
	User     UserService
	Category CategoryService
	Genre    GenreService
	Title    TitleService
	Review   ReviewService
	Comment  CommentService
}

func NewService(repo *repository.Repository, tokens TokenIssuer, mail mailer.Mailer, log *zap.Logger) *Service {
	return &Service{
		Auth:     NewAuthService(repo.User, tokens, mail, log),
		User:     NewUserService(repo.User, log),
		Category: NewCategoryService(repo.Category, log),
		Genre:    NewGenreService(repo.Genre, log),
		Title:    NewTitleService(repo, log),
		Review:   NewReviewService(repo, log),
		Comment:  NewCommentService(repo, log),
	}
}
