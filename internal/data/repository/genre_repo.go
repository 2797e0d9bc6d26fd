package repository

import (
	"context"
	"fmt"

	"yamdb/internal/data/entity"
	"yamdb/pkg/database"

	"go.uber.org/zap"
)

type GenreRepository interface {
	Create(ctx context.Context, genre *entity.Genre) error
	FindByID(ctx context.Context, id int64) (*entity.Genre, error)
	FindBySlug(ctx context.Context, slug string) (*entity.Genre, error)
	FindAll(ctx context.Context, search string, limit, offset int) ([]*entity.Genre, error)
	CountAll(ctx context.Context, search string) (int64, error)
	DeleteBySlug(ctx context.Context, slug string) (bool, error)
	BulkInsert(ctx context.Context, genres []*entity.Genre, batchSize int) (int64, error)

	// FindByTitleIDs groups the genres of several titles by title id.
	FindByTitleIDs(ctx context.Context, titleIDs []int64) (map[int64][]*entity.Genre, error)
}

type genreRepository struct {
	lookupTable
}

func NewGenreRepository(db database.PgxIface, log *zap.Logger) GenreRepository {
	return &genreRepository{lookupTable{
		db:    db,
		log:   log.With(zap.String("repository", "genre")),
		table: "genres",
	}}
}

func (r *genreRepository) Create(ctx context.Context, genre *entity.Genre) error {
	return r.create(ctx, &genre.Lookup)
}

func (r *genreRepository) FindByID(ctx context.Context, id int64) (*entity.Genre, error) {
	item, err := r.findOne(ctx, "id", id)
	if item == nil || err != nil {
		return nil, err
	}
	return &entity.Genre{Lookup: *item}, nil
}

func (r *genreRepository) FindBySlug(ctx context.Context, slug string) (*entity.Genre, error) {
	item, err := r.findOne(ctx, "slug", slug)
	if item == nil || err != nil {
		return nil, err
	}
	return &entity.Genre{Lookup: *item}, nil
}

func (r *genreRepository) FindAll(ctx context.Context, search string, limit, offset int) ([]*entity.Genre, error) {
	items, err := r.findAll(ctx, search, limit, offset)
	if err != nil {
		return nil, err
	}

	genres := make([]*entity.Genre, 0, len(items))
	for _, item := range items {
		genres = append(genres, &entity.Genre{Lookup: item})
	}
	return genres, nil
}

func (r *genreRepository) CountAll(ctx context.Context, search string) (int64, error) {
	return r.count(ctx, search)
}

func (r *genreRepository) DeleteBySlug(ctx context.Context, slug string) (bool, error) {
	return r.deleteBySlug(ctx, slug)
}

func (r *genreRepository) BulkInsert(ctx context.Context, genres []*entity.Genre, batchSize int) (int64, error) {
	items := make([]entity.Lookup, 0, len(genres))
	for _, g := range genres {
		items = append(items, g.Lookup)
	}
	return r.bulkInsert(ctx, items, batchSize)
}

func (r *genreRepository) FindByTitleIDs(ctx context.Context, titleIDs []int64) (map[int64][]*entity.Genre, error) {
	result := make(map[int64][]*entity.Genre, len(titleIDs))
	if len(titleIDs) == 0 {
		return result, nil
	}

	query := `
		SELECT tg.title_id, g.id, g.name, g.slug
		FROM genres g
		INNER JOIN title_genres tg ON g.id = tg.genre_id
		WHERE tg.title_id = ANY($1)
		ORDER BY g.name
	`

	rows, err := r.db.Query(ctx, query, titleIDs)
	if err != nil {
		r.log.Error("Failed to find genres by title IDs", zap.Error(err), zap.Int("titles", len(titleIDs)))
		return nil, fmt.Errorf("find genres by title ids: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var titleID int64
		var genre entity.Genre
		if err := rows.Scan(&titleID, &genre.ID, &genre.Name, &genre.Slug); err != nil {
			r.log.Error("Failed to scan genre row", zap.Error(err))
			return nil, fmt.Errorf("scan genre row: %w", err)
		}
		result[titleID] = append(result[titleID], &genre)
	}

	return result, rows.Err()
}
