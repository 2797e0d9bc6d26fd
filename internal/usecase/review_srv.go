package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"yamdb/internal/data/entity"
	"yamdb/internal/data/repository"
	"yamdb/internal/dto/request"
	"yamdb/internal/dto/response"
	"yamdb/internal/permission"

	"go.uber.org/zap"
)

// ErrAlreadyReviewed is returned when the author already reviewed the title.
var ErrAlreadyReviewed = fmt.Errorf("%w: you have already reviewed this title", ErrConflict)

type ReviewService interface {
	GetTitleReviews(ctx context.Context, titleID int64, req request.PaginatedRequest) (*response.PaginatedResponse[response.ReviewResponse], error)
	GetReview(ctx context.Context, titleID, reviewID int64) (*response.ReviewResponse, error)
	CreateReview(ctx context.Context, actor *permission.Actor, titleID int64, req *request.CreateReviewRequest) (*response.ReviewResponse, error)
	UpdateReview(ctx context.Context, actor *permission.Actor, titleID, reviewID int64, req *request.UpdateReviewRequest) (*response.ReviewResponse, error)
	DeleteReview(ctx context.Context, actor *permission.Actor, titleID, reviewID int64) error
}

type reviewService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewReviewService(repo *repository.Repository, log *zap.Logger) ReviewService {
	return &reviewService{
		repo: repo,
		log:  log.With(zap.String("service", "review")),
	}
}

func (s *reviewService) requireTitle(ctx context.Context, titleID int64) error {
	title, err := s.repo.Title.FindByID(ctx, titleID)
	if err != nil {
		return fmt.Errorf("find title %d: %w", titleID, err)
	}
	if title == nil {
		return ErrNotFound
	}
	return nil
}

func (s *reviewService) findReview(ctx context.Context, titleID, reviewID int64) (*entity.Review, error) {
	review, err := s.repo.Review.FindByTitleAndID(ctx, titleID, reviewID)
	if err != nil {
		return nil, fmt.Errorf("find review %d: %w", reviewID, err)
	}
	if review == nil {
		return nil, ErrNotFound
	}
	return review, nil
}

func (s *reviewService) GetTitleReviews(ctx context.Context, titleID int64, req request.PaginatedRequest) (*response.PaginatedResponse[response.ReviewResponse], error) {
	if err := s.requireTitle(ctx, titleID); err != nil {
		return nil, err
	}

	reviews, err := s.repo.Review.FindByTitleID(ctx, titleID, req.Limit(), req.Offset())
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}

	total, err := s.repo.Review.CountByTitleID(ctx, titleID)
	if err != nil {
		return nil, fmt.Errorf("count reviews: %w", err)
	}

	results := make([]response.ReviewResponse, 0, len(reviews))
	for _, r := range reviews {
		results = append(results, response.ReviewToResponse(r))
	}

	return response.NewPaginatedResponse(results, req.PageNumber(), req.Limit(), total), nil
}

func (s *reviewService) GetReview(ctx context.Context, titleID, reviewID int64) (*response.ReviewResponse, error) {
	review, err := s.findReview(ctx, titleID, reviewID)
	if err != nil {
		return nil, err
	}

	resp := response.ReviewToResponse(review)
	return &resp, nil
}

func (s *reviewService) CreateReview(ctx context.Context, actor *permission.Actor, titleID int64, req *request.CreateReviewRequest) (*response.ReviewResponse, error) {
	if err := authorize(actor, http.MethodPost, nil); err != nil {
		return nil, err
	}
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	if err := s.requireTitle(ctx, titleID); err != nil {
		return nil, err
	}

	existing, err := s.repo.Review.FindByAuthorAndTitle(ctx, actor.ID, titleID)
	if err != nil {
		return nil, fmt.Errorf("check existing review: %w", err)
	}
	if existing != nil {
		return nil, ErrAlreadyReviewed
	}

	review := &entity.Review{
		Contribution: entity.Contribution{
			AuthorID:       actor.ID,
			AuthorUsername: actor.Username,
			Text:           req.Text,
		},
		TitleID: titleID,
		Score:   req.Score,
	}

	if err := s.repo.Review.Create(ctx, review); err != nil {
		// lost a race with a concurrent review by the same author
		if errors.Is(err, repository.ErrUniqueViolation) {
			return nil, ErrAlreadyReviewed
		}
		return nil, fmt.Errorf("create review: %w", err)
	}

	s.log.Info("Review created",
		zap.Int64("review_id", review.ID),
		zap.Int64("author_id", actor.ID),
		zap.Int64("title_id", titleID),
		zap.Int("score", review.Score),
	)

	resp := response.ReviewToResponse(review)
	return &resp, nil
}

func (s *reviewService) UpdateReview(ctx context.Context, actor *permission.Actor, titleID, reviewID int64, req *request.UpdateReviewRequest) (*response.ReviewResponse, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	review, err := s.findReview(ctx, titleID, reviewID)
	if err != nil {
		return nil, err
	}
	if err := authorize(actor, http.MethodPatch, review); err != nil {
		return nil, err
	}

	if req.Text != nil {
		review.Text = *req.Text
	}
	if req.Score != nil {
		review.Score = *req.Score
	}

	if err := s.repo.Review.Update(ctx, review); err != nil {
		return nil, fmt.Errorf("update review: %w", err)
	}

	resp := response.ReviewToResponse(review)
	return &resp, nil
}

func (s *reviewService) DeleteReview(ctx context.Context, actor *permission.Actor, titleID, reviewID int64) error {
	review, err := s.findReview(ctx, titleID, reviewID)
	if err != nil {
		return err
	}
	if err := authorize(actor, http.MethodDelete, review); err != nil {
		return err
	}

	if err := s.repo.Review.Delete(ctx, review.ID); err != nil {
		return fmt.Errorf("delete review: %w", err)
	}

	s.log.Info("Review deleted", zap.Int64("review_id", review.ID), zap.Int64("actor_id", actor.ID))
	return nil
}
