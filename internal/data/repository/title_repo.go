package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"yamdb/internal/data/entity"
	"yamdb/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// TitleFilter narrows title listings. Zero values are ignored.
type TitleFilter struct {
	CategorySlug string
	GenreSlug    string
	Name         string
	Year         *int
}

type TitleRepository interface {
	// Create inserts the title and links it to genreIDs in one transaction.
	Create(ctx context.Context, title *entity.Title, genreIDs []int64) error
	FindByID(ctx context.Context, id int64) (*entity.Title, error)
	// FindDetailByID loads the category and rating. Genres are left empty.
	FindDetailByID(ctx context.Context, id int64) (*entity.TitleDetail, error)
	FindAll(ctx context.Context, filter TitleFilter, limit, offset int) ([]*entity.TitleDetail, error)
	CountAll(ctx context.Context, filter TitleFilter) (int64, error)
	// Update rewrites the title. A nil genreIDs keeps the current genre links.
	Update(ctx context.Context, title *entity.Title, genreIDs []int64) error
	Delete(ctx context.Context, id int64) error
	BulkInsert(ctx context.Context, titles []*entity.Title, batchSize int) (int64, error)
}

type titleRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewTitleRepository(db database.PgxIface, log *zap.Logger) TitleRepository {
	return &titleRepository{
		db:  db,
		log: log.With(zap.String("repository", "title")),
	}
}

func (r *titleRepository) Create(ctx context.Context, title *entity.Title, genreIDs []int64) (err error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin create title: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	query := `
		INSERT INTO titles (name, year, description, category_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	err = tx.QueryRow(ctx, query,
		title.Name,
		title.Year,
		title.Description,
		title.CategoryID,
	).Scan(&title.ID)
	if err != nil {
		r.log.Error("Failed to create title", zap.Error(err), zap.String("name", title.Name))
		return fmt.Errorf("create title %s: %w", title.Name, classify(err))
	}

	if err = linkGenres(ctx, tx, title.ID, genreIDs); err != nil {
		r.log.Error("Failed to link genres", zap.Error(err), zap.Int64("title_id", title.ID))
		return err
	}

	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit create title: %w", err)
	}

	return nil
}

func linkGenres(ctx context.Context, tx pgx.Tx, titleID int64, genreIDs []int64) error {
	if len(genreIDs) == 0 {
		return nil
	}

	query := `
		INSERT INTO title_genres (title_id, genre_id)
		SELECT $1, UNNEST($2::bigint[])
		ON CONFLICT DO NOTHING
	`
	if _, err := tx.Exec(ctx, query, titleID, genreIDs); err != nil {
		return fmt.Errorf("link genres to title %d: %w", titleID, classify(err))
	}
	return nil
}

func (r *titleRepository) FindByID(ctx context.Context, id int64) (*entity.Title, error) {
	query := `SELECT id, name, year, description, category_id FROM titles WHERE id = $1`

	var title entity.Title
	err := r.db.QueryRow(ctx, query, id).Scan(
		&title.ID,
		&title.Name,
		&title.Year,
		&title.Description,
		&title.CategoryID,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find title by ID", zap.Error(err), zap.Int64("title_id", id))
		return nil, fmt.Errorf("find title by id %d: %w", id, err)
	}

	return &title, nil
}

const titleDetailSelect = `
		SELECT t.id, t.name, t.year, t.description, t.category_id,
		       c.name, c.slug,
		       (SELECT AVG(rv.score)::float8 FROM reviews rv WHERE rv.title_id = t.id) AS rating
		FROM titles t
		LEFT JOIN categories c ON c.id = t.category_id
`

func scanTitleDetail(row pgx.Row) (*entity.TitleDetail, error) {
	var (
		detail       entity.TitleDetail
		categoryName *string
		categorySlug *string
	)
	err := row.Scan(
		&detail.ID,
		&detail.Name,
		&detail.Year,
		&detail.Description,
		&detail.CategoryID,
		&categoryName,
		&categorySlug,
		&detail.Rating,
	)
	if err != nil {
		return nil, err
	}

	if detail.CategoryID != nil && categoryName != nil && categorySlug != nil {
		detail.Category = &entity.Category{Lookup: entity.Lookup{
			ID:   *detail.CategoryID,
			Name: *categoryName,
			Slug: *categorySlug,
		}}
	}

	return &detail, nil
}

func (r *titleRepository) FindDetailByID(ctx context.Context, id int64) (*entity.TitleDetail, error) {
	detail, err := scanTitleDetail(r.db.QueryRow(ctx, titleDetailSelect+` WHERE t.id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find title detail", zap.Error(err), zap.Int64("title_id", id))
		return nil, fmt.Errorf("find title detail %d: %w", id, err)
	}

	return detail, nil
}

// writeFilter appends the WHERE clause for filter and returns the args it used.
func writeFilter(qb *strings.Builder, filter TitleFilter) []any {
	var (
		conditions []string
		args       []any
	)

	if filter.CategorySlug != "" {
		args = append(args, filter.CategorySlug)
		conditions = append(conditions, fmt.Sprintf(
			"t.category_id = (SELECT id FROM categories WHERE slug = $%d)", len(args)))
	}
	if filter.GenreSlug != "" {
		args = append(args, filter.GenreSlug)
		conditions = append(conditions, fmt.Sprintf(`EXISTS (
			SELECT 1 FROM title_genres tg
			INNER JOIN genres g ON g.id = tg.genre_id
			WHERE tg.title_id = t.id AND g.slug = $%d)`, len(args)))
	}
	if filter.Name != "" {
		args = append(args, containsPattern(filter.Name))
		conditions = append(conditions, fmt.Sprintf(`t.name ILIKE $%d ESCAPE '\'`, len(args)))
	}
	if filter.Year != nil {
		args = append(args, *filter.Year)
		conditions = append(conditions, fmt.Sprintf("t.year = $%d", len(args)))
	}

	if len(conditions) > 0 {
		qb.WriteString(" WHERE ")
		qb.WriteString(strings.Join(conditions, " AND "))
	}

	return args
}

func (r *titleRepository) FindAll(ctx context.Context, filter TitleFilter, limit, offset int) ([]*entity.TitleDetail, error) {
	var qb strings.Builder
	qb.WriteString(titleDetailSelect)
	args := writeFilter(&qb, filter)

	fmt.Fprintf(&qb, " ORDER BY t.name, t.id LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.db.Query(ctx, qb.String(), args...)
	if err != nil {
		r.log.Error("Failed to list titles",
			zap.Error(err),
			zap.Any("filter", filter),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, fmt.Errorf("list titles: %w", err)
	}
	defer rows.Close()

	var titles []*entity.TitleDetail
	for rows.Next() {
		detail, err := scanTitleDetail(rows)
		if err != nil {
			r.log.Error("Failed to scan title row", zap.Error(err))
			return nil, fmt.Errorf("scan title row: %w", err)
		}
		titles = append(titles, detail)
	}

	return titles, rows.Err()
}

func (r *titleRepository) CountAll(ctx context.Context, filter TitleFilter) (int64, error) {
	var qb strings.Builder
	qb.WriteString(`SELECT COUNT(*) FROM titles t`)
	args := writeFilter(&qb, filter)

	var total int64
	if err := r.db.QueryRow(ctx, qb.String(), args...).Scan(&total); err != nil {
		r.log.Error("Failed to count titles", zap.Error(err))
		return 0, fmt.Errorf("count titles: %w", err)
	}

	return total, nil
}

func (r *titleRepository) Update(ctx context.Context, title *entity.Title, genreIDs []int64) (err error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin update title: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	query := `
		UPDATE titles
		SET name = $2, year = $3, description = $4, category_id = $5
		WHERE id = $1
	`
	_, err = tx.Exec(ctx, query,
		title.ID,
		title.Name,
		title.Year,
		title.Description,
		title.CategoryID,
	)
	if err != nil {
		r.log.Error("Failed to update title", zap.Error(err), zap.Int64("title_id", title.ID))
		return fmt.Errorf("update title %d: %w", title.ID, classify(err))
	}

	if genreIDs != nil {
		if _, err = tx.Exec(ctx, `DELETE FROM title_genres WHERE title_id = $1`, title.ID); err != nil {
			return fmt.Errorf("clear genres of title %d: %w", title.ID, err)
		}
		if err = linkGenres(ctx, tx, title.ID, genreIDs); err != nil {
			r.log.Error("Failed to link genres", zap.Error(err), zap.Int64("title_id", title.ID))
			return err
		}
	}

	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit update title: %w", err)
	}

	return nil
}

func (r *titleRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM titles WHERE id = $1`, id); err != nil {
		r.log.Error("Failed to delete title", zap.Error(err), zap.Int64("title_id", id))
		return fmt.Errorf("delete title %d: %w", id, err)
	}

	return nil
}

func (r *titleRepository) BulkInsert(ctx context.Context, titles []*entity.Title, batchSize int) (int64, error) {
	columns := []string{"id", "name", "year", "description", "category_id"}

	rows := make([][]any, 0, len(titles))
	for _, t := range titles {
		rows = append(rows, []any{t.ID, t.Name, t.Year, t.Description, t.CategoryID})
	}

	return bulkInsert(ctx, r.db, r.log, "titles", columns, rows, batchSize)
}
