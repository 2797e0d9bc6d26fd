package usecase

import (
	"context"
	"fmt"
	"net/http"

	"yamdb/internal/data/entity"
	"yamdb/internal/data/repository"
	"yamdb/internal/dto/request"
	"yamdb/internal/dto/response"
	"yamdb/internal/permission"

	"go.uber.org/zap"
)

type CommentService interface {
	GetReviewComments(ctx context.Context, titleID, reviewID int64, req request.PaginatedRequest) (*response.PaginatedResponse[response.CommentResponse], error)
	GetComment(ctx context.Context, titleID, reviewID, commentID int64) (*response.CommentResponse, error)
	CreateComment(ctx context.Context, actor *permission.Actor, titleID, reviewID int64, req *request.CreateCommentRequest) (*response.CommentResponse, error)
	UpdateComment(ctx context.Context, actor *permission.Actor, titleID, reviewID, commentID int64, req *request.UpdateCommentRequest) (*response.CommentResponse, error)
	DeleteComment(ctx context.Context, actor *permission.Actor, titleID, reviewID, commentID int64) error
}

type commentService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewCommentService(repo *repository.Repository, log *zap.Logger) CommentService {
	return &commentService{
		repo: repo,
		log:  log.With(zap.String("service", "comment")),
	}
}

// requireReview checks that the review exists and belongs to the title.
func (s *commentService) requireReview(ctx context.Context, titleID, reviewID int64) error {
	review, err := s.repo.Review.FindByTitleAndID(ctx, titleID, reviewID)
	if err != nil {
		return fmt.Errorf("find review %d: %w", reviewID, err)
	}
	if review == nil {
		return ErrNotFound
	}
	return nil
}

func (s *commentService) findComment(ctx context.Context, titleID, reviewID, commentID int64) (*entity.Comment, error) {
	if err := s.requireReview(ctx, titleID, reviewID); err != nil {
		return nil, err
	}

	comment, err := s.repo.Comment.FindByReviewAndID(ctx, reviewID, commentID)
	if err != nil {
		return nil, fmt.Errorf("find comment %d: %w", commentID, err)
	}
	if comment == nil {
		return nil, ErrNotFound
	}
	return comment, nil
}

func (s *commentService) GetReviewComments(ctx context.Context, titleID, reviewID int64, req request.PaginatedRequest) (*response.PaginatedResponse[response.CommentResponse], error) {
	if err := s.requireReview(ctx, titleID, reviewID); err != nil {
		return nil, err
	}

	comments, err := s.repo.Comment.FindByReviewID(ctx, reviewID, req.Limit(), req.Offset())
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}

	total, err := s.repo.Comment.CountByReviewID(ctx, reviewID)
	if err != nil {
		return nil, fmt.Errorf("count comments: %w", err)
	}

	results := make([]response.CommentResponse, 0, len(comments))
	for _, c := range comments {
		results = append(results, response.CommentToResponse(c))
	}

	return response.NewPaginatedResponse(results, req.PageNumber(), req.Limit(), total), nil
}

func (s *commentService) GetComment(ctx context.Context, titleID, reviewID, commentID int64) (*response.CommentResponse, error) {
	comment, err := s.findComment(ctx, titleID, reviewID, commentID)
	if err != nil {
		return nil, err
	}

	resp := response.CommentToResponse(comment)
	return &resp, nil
}

func (s *commentService) CreateComment(ctx context.Context, actor *permission.Actor, titleID, reviewID int64, req *request.CreateCommentRequest) (*response.CommentResponse, error) {
	if err := authorize(actor, http.MethodPost, nil); err != nil {
		return nil, err
	}
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	if err := s.requireReview(ctx, titleID, reviewID); err != nil {
		return nil, err
	}

	comment := &entity.Comment{
		Contribution: entity.Contribution{
			AuthorID:       actor.ID,
			AuthorUsername: actor.Username,
			Text:           req.Text,
		},
		ReviewID: reviewID,
	}

	if err := s.repo.Comment.Create(ctx, comment); err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}

	s.log.Info("Comment created",
		zap.Int64("comment_id", comment.ID),
		zap.Int64("review_id", reviewID),
		zap.Int64("author_id", actor.ID),
	)

	resp := response.CommentToResponse(comment)
	return &resp, nil
}

func (s *commentService) UpdateComment(ctx context.Context, actor *permission.Actor, titleID, reviewID, commentID int64, req *request.UpdateCommentRequest) (*response.CommentResponse, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	comment, err := s.findComment(ctx, titleID, reviewID, commentID)
	if err != nil {
		return nil, err
	}
	if err := authorize(actor, http.MethodPatch, comment); err != nil {
		return nil, err
	}

	if req.Text != nil {
		comment.Text = *req.Text
	}

	if err := s.repo.Comment.Update(ctx, comment); err != nil {
		return nil, fmt.Errorf("update comment: %w", err)
	}

	resp := response.CommentToResponse(comment)
	return &resp, nil
}

func (s *commentService) DeleteComment(ctx context.Context, actor *permission.Actor, titleID, reviewID, commentID int64) error {
	comment, err := s.findComment(ctx, titleID, reviewID, commentID)
	if err != nil {
		return err
	}
	if err := authorize(actor, http.MethodDelete, comment); err != nil {
		return err
	}

	if err := s.repo.Comment.Delete(ctx, comment.ID); err != nil {
		return fmt.Errorf("delete comment: %w", err)
	}

	s.log.Info("Comment deleted", zap.Int64("comment_id", comment.ID), zap.Int64("actor_id", actor.ID))
	return nil
}
