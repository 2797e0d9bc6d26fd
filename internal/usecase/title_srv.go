package usecase

import (
	"context"
	"fmt"

	"yamdb/internal/data/entity"
	"yamdb/internal/data/repository"
	"yamdb/internal/dto/request"
	"yamdb/internal/dto/response"

	"go.uber.org/zap"
)

type TitleService interface {
	GetAllTitles(ctx context.Context, filter request.TitleFilterRequest, req request.PaginatedRequest) (*response.PaginatedResponse[response.TitleResponse], error)
	GetTitle(ctx context.Context, id int64) (*response.TitleResponse, error)
	CreateTitle(ctx context.Context, req *request.CreateTitleRequest) (*response.TitleResponse, error)
	UpdateTitle(ctx context.Context, id int64, req *request.UpdateTitleRequest) (*response.TitleResponse, error)
	DeleteTitle(ctx context.Context, id int64) error
}

type titleService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewTitleService(repo *repository.Repository, log *zap.Logger) TitleService {
	return &titleService{
		repo: repo,
		log:  log.With(zap.String("service", "title")),
	}
}

func (s *titleService) GetAllTitles(ctx context.Context, filter request.TitleFilterRequest, req request.PaginatedRequest) (*response.PaginatedResponse[response.TitleResponse], error) {
	f := repository.TitleFilter{
		CategorySlug: filter.Category,
		GenreSlug:    filter.Genre,
		Name:         filter.Name,
		Year:         filter.Year,
	}

	titles, err := s.repo.Title.FindAll(ctx, f, req.Limit(), req.Offset())
	if err != nil {
		return nil, fmt.Errorf("list titles: %w", err)
	}

	total, err := s.repo.Title.CountAll(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("count titles: %w", err)
	}

	if err := s.attachGenres(ctx, titles...); err != nil {
		return nil, err
	}

	results := make([]response.TitleResponse, 0, len(titles))
	for _, t := range titles {
		results = append(results, response.TitleToResponse(t))
	}

	return response.NewPaginatedResponse(results, req.PageNumber(), req.Limit(), total), nil
}

func (s *titleService) attachGenres(ctx context.Context, titles ...*entity.TitleDetail) error {
	if len(titles) == 0 {
		return nil
	}

	ids := make([]int64, 0, len(titles))
	for _, t := range titles {
		ids = append(ids, t.ID)
	}

	genres, err := s.repo.Genre.FindByTitleIDs(ctx, ids)
	if err != nil {
		return fmt.Errorf("load title genres: %w", err)
	}
	for _, t := range titles {
		t.Genres = genres[t.ID]
	}

	return nil
}

func (s *titleService) GetTitle(ctx context.Context, id int64) (*response.TitleResponse, error) {
	detail, err := s.repo.Title.FindDetailByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find title: %w", err)
	}
	if detail == nil {
		return nil, ErrNotFound
	}

	if err := s.attachGenres(ctx, detail); err != nil {
		return nil, err
	}

	resp := response.TitleToResponse(detail)
	return &resp, nil
}

func (s *titleService) CreateTitle(ctx context.Context, req *request.CreateTitleRequest) (*response.TitleResponse, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	title := &entity.Title{
		Name:        req.Name,
		Year:        req.Year,
		Description: req.Description,
	}

	if req.Category != "" {
		categoryID, err := s.resolveCategory(ctx, req.Category)
		if err != nil {
			return nil, err
		}
		title.CategoryID = &categoryID
	}

	genreIDs, err := s.resolveGenres(ctx, req.Genre)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Title.Create(ctx, title, genreIDs); err != nil {
		return nil, fmt.Errorf("create title: %w", err)
	}

	s.log.Info("Title created", zap.Int64("title_id", title.ID), zap.String("name", title.Name))

	return s.GetTitle(ctx, title.ID)
}

func (s *titleService) UpdateTitle(ctx context.Context, id int64, req *request.UpdateTitleRequest) (*response.TitleResponse, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	title, err := s.repo.Title.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find title: %w", err)
	}
	if title == nil {
		return nil, ErrNotFound
	}

	if req.Name != nil {
		title.Name = *req.Name
	}
	if req.Year != nil {
		title.Year = *req.Year
	}
	if req.Description != nil {
		title.Description = req.Description
	}
	switch {
	case req.Category != nil:
		categoryID, err := s.resolveCategory(ctx, *req.Category)
		if err != nil {
			return nil, err
		}
		title.CategoryID = &categoryID
	case req.ClearCategory:
		title.CategoryID = nil
	}

	var genreIDs []int64
	if req.Genre != nil {
		if genreIDs, err = s.resolveGenres(ctx, *req.Genre); err != nil {
			return nil, err
		}
		if genreIDs == nil {
			genreIDs = []int64{}
		}
	}

	if err := s.repo.Title.Update(ctx, title, genreIDs); err != nil {
		return nil, fmt.Errorf("update title: %w", err)
	}

	s.log.Info("Title updated", zap.Int64("title_id", title.ID))

	return s.GetTitle(ctx, title.ID)
}

func (s *titleService) DeleteTitle(ctx context.Context, id int64) error {
	title, err := s.repo.Title.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("find title: %w", err)
	}
	if title == nil {
		return ErrNotFound
	}

	if err := s.repo.Title.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete title: %w", err)
	}

	s.log.Info("Title deleted", zap.Int64("title_id", id))
	return nil
}

func (s *titleService) resolveCategory(ctx context.Context, slug string) (int64, error) {
	category, err := s.repo.Category.FindBySlug(ctx, slug)
	if err != nil {
		return 0, fmt.Errorf("find category %s: %w", slug, err)
	}
	if category == nil {
		return 0, fieldError("category", fmt.Sprintf("category %q does not exist", slug))
	}
	return category.ID, nil
}

func (s *titleService) resolveGenres(ctx context.Context, slugs []string) ([]int64, error) {
	var ids []int64
	for _, slug := range slugs {
		genre, err := s.repo.Genre.FindBySlug(ctx, slug)
		if err != nil {
			return nil, fmt.Errorf("find genre %s: %w", slug, err)
		}
		if genre == nil {
			return nil, fieldError("genre", fmt.Sprintf("genre %q does not exist", slug))
		}
		ids = append(ids, genre.ID)
	}
	return ids, nil
}
