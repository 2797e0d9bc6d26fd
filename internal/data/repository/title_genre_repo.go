package repository

import (
	"context"

	"yamdb/internal/data/entity"
	"yamdb/pkg/database"

	"go.uber.org/zap"
)

type TitleGenreRepository interface {
	// BulkInsert links titles to genres. Existing pairs are left alone.
	BulkInsert(ctx context.Context, links []*entity.TitleGenre, batchSize int) (int64, error)
}

type titleGenreRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewTitleGenreRepository(db database.PgxIface, log *zap.Logger) TitleGenreRepository {
	return &titleGenreRepository{
		db:  db,
		log: log.With(zap.String("repository", "title_genre")),
	}
}

func (r *titleGenreRepository) BulkInsert(ctx context.Context, links []*entity.TitleGenre, batchSize int) (int64, error) {
	rows := make([][]any, 0, len(links))
	for _, link := range links {
		rows = append(rows, []any{link.TitleID, link.GenreID})
	}

	return bulkInsert(ctx, r.db, r.log, "title_genres", []string{"title_id", "genre_id"}, rows, batchSize)
}
