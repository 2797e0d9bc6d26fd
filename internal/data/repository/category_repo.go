package repository

import (
	"context"

	"yamdb/internal/data/entity"
	"yamdb/pkg/database"

	"go.uber.org/zap"
)

type CategoryRepository interface {
	Create(ctx context.Context, category *entity.Category) error
	FindByID(ctx context.Context, id int64) (*entity.Category, error)
	FindBySlug(ctx context.Context, slug string) (*entity.Category, error)
	FindAll(ctx context.Context, search string, limit, offset int) ([]*entity.Category, error)
	CountAll(ctx context.Context, search string) (int64, error)
	DeleteBySlug(ctx context.Context, slug string) (bool, error)
	BulkInsert(ctx context.Context, categories []*entity.Category, batchSize int) (int64, error)
}

type categoryRepository struct {
	lookupTable
}

func NewCategoryRepository(db database.PgxIface, log *zap.Logger) CategoryRepository {
	return &categoryRepository{lookupTable{
		db:    db,
		log:   log.With(zap.String("repository", "category")),
		table: "categories",
	}}
}

func (r *categoryRepository) Create(ctx context.Context, category *entity.Category) error {
	return r.create(ctx, &category.Lookup)
}

func (r *categoryRepository) FindByID(ctx context.Context, id int64) (*entity.Category, error) {
	item, err := r.findOne(ctx, "id", id)
	if item == nil || err != nil {
		return nil, err
	}
	return &entity.Category{Lookup: *item}, nil
}

func (r *categoryRepository) FindBySlug(ctx context.Context, slug string) (*entity.Category, error) {
	item, err := r.findOne(ctx, "slug", slug)
	if item == nil || err != nil {
		return nil, err
	}
	return &entity.Category{Lookup: *item}, nil
}

func (r *categoryRepository) FindAll(ctx context.Context, search string, limit, offset int) ([]*entity.Category, error) {
	items, err := r.findAll(ctx, search, limit, offset)
	if err != nil {
		return nil, err
	}

	categories := make([]*entity.Category, 0, len(items))
	for _, item := range items {
		categories = append(categories, &entity.Category{Lookup: item})
	}
	return categories, nil
}

func (r *categoryRepository) CountAll(ctx context.Context, search string) (int64, error) {
	return r.count(ctx, search)
}

func (r *categoryRepository) DeleteBySlug(ctx context.Context, slug string) (bool, error) {
	return r.deleteBySlug(ctx, slug)
}

func (r *categoryRepository) BulkInsert(ctx context.Context, categories []*entity.Category, batchSize int) (int64, error) {
	items := make([]entity.Lookup, 0, len(categories))
	for _, c := range categories {
		items = append(items, c.Lookup)
	}
	return r.bulkInsert(ctx, items, batchSize)
}
