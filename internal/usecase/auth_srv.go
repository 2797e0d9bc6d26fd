package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"yamdb/internal/data/entity"
	"yamdb/internal/data/repository"
	"yamdb/internal/dto/request"
	"yamdb/internal/dto/response"
	"yamdb/pkg/mailer"
	"yamdb/pkg/utils"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const mailTimeout = 30 * time.Second

type AuthService interface {
	// Signup registers the user when needed and mails a fresh confirmation code.
	Signup(ctx context.Context, req *request.SignupRequest) (*response.SignupResponse, error)
	// Token trades a confirmation code for an access token. Codes work once.
	Token(ctx context.Context, req *request.TokenRequest) (*response.TokenResponse, error)
}

type authService struct {
	users    repository.UserRepository
	tokens   TokenIssuer
	mail     mailer.Mailer
	log      *zap.Logger
	hashCost int
}

func NewAuthService(
	users repository.UserRepository,
	tokens TokenIssuer,
	mail mailer.Mailer,
	log *zap.Logger,
) AuthService {
	return &authService{
		users:    users,
		tokens:   tokens,
		mail:     mail,
		log:      log.With(zap.String("service", "auth")),
		hashCost: bcrypt.DefaultCost,
	}
}

func (s *authService) Signup(ctx context.Context, req *request.SignupRequest) (*response.SignupResponse, error) {
	if err := validateRequest(req); err != nil {
		s.log.Warn("Signup validation failed", zap.Error(err))
		return nil, err
	}

	byName, err := s.users.FindByUsername(ctx, req.Username)
	if err != nil {
		return nil, fmt.Errorf("check username: %w", err)
	}
	byEmail, err := s.users.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}

	code, err := utils.GenerateConfirmationCode()
	if err != nil {
		return nil, fmt.Errorf("generate confirmation code: %w", err)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(code), s.hashCost)
	if err != nil {
		return nil, fmt.Errorf("hash confirmation code: %w", err)
	}
	hashed := string(hash)

	var user *entity.User
	switch {
	case byName == nil && byEmail == nil:
		user = &entity.User{
			Username:         req.Username,
			Email:            req.Email,
			Role:             entity.RoleUser,
			ConfirmationCode: &hashed,
		}
		if err := s.users.Create(ctx, user); err != nil {
			if errors.Is(err, repository.ErrUniqueViolation) {
				return nil, ErrDuplicateIdentity
			}
			return nil, fmt.Errorf("create user: %w", err)
		}
		s.log.Info("User registered",
			zap.Int64("user_id", user.ID),
			zap.String("username", user.Username),
		)

	case byName != nil && byEmail != nil && byName.ID == byEmail.ID:
		user = byName
		if err := s.users.SetConfirmationCode(ctx, user.ID, hashed); err != nil {
			return nil, fmt.Errorf("store confirmation code: %w", err)
		}

	default:
		s.log.Info("Signup rejected, identity already in use",
			zap.String("username", req.Username),
			zap.String("email", req.Email),
		)
		return nil, ErrDuplicateIdentity
	}

	go s.sendCode(user.Email, code)

	return &response.SignupResponse{Username: user.Username, Email: user.Email}, nil
}

// sendCode runs detached from the request, delivery failures are only logged.
func (s *authService) sendCode(to, code string) {
	ctx, cancel := context.WithTimeout(context.Background(), mailTimeout)
	defer cancel()

	body := fmt.Sprintf("Your confirmation code: %s", code)
	if err := s.mail.Send(ctx, to, "YaMDb confirmation code", body); err != nil {
		s.log.Error("Failed to send confirmation code", zap.Error(err), zap.String("to", to))
	}
}

func (s *authService) Token(ctx context.Context, req *request.TokenRequest) (*response.TokenResponse, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	user, err := s.users.FindByUsername(ctx, req.Username)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if user == nil {
		return nil, ErrNotFound
	}

	if user.ConfirmationCode == nil || *user.ConfirmationCode == utils.SpentConfirmationCode {
		return nil, ErrInvalidCode
	}
	stored := *user.ConfirmationCode
	valid := bcrypt.CompareHashAndPassword([]byte(stored), []byte(req.ConfirmationCode)) == nil

	// a code is spent by the first attempt, right or wrong. The swap only
	// succeeds while the hash read above is still stored, so concurrent
	// attempts cannot share it and a code issued meanwhile survives.
	spent, err := s.users.SpendConfirmationCode(ctx, user.ID, stored)
	if err != nil {
		return nil, fmt.Errorf("spend confirmation code: %w", err)
	}

	if !valid || !spent {
		s.log.Warn("Invalid confirmation code",
			zap.String("username", user.Username),
			zap.Bool("already_spent", !spent),
		)
		return nil, ErrInvalidCode
	}

	token, expiresAt, err := s.tokens.GenerateToken(user.ID, user.Username, string(user.Role))
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}

	s.log.Info("Token issued", zap.Int64("user_id", user.ID))

	return &response.TokenResponse{Token: token, ExpiresAt: expiresAt}, nil
}
