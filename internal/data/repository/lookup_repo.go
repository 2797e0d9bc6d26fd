package repository

import (
	"context"
	"errors"
	"fmt"

	"yamdb/internal/data/entity"
	"yamdb/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// lookupTable implements the queries shared by the categories and genres tables.
type lookupTable struct {
	db    database.PgxIface
	log   *zap.Logger
	table string
}

func (t *lookupTable) findOne(ctx context.Context, column string, value any) (*entity.Lookup, error) {
	query := fmt.Sprintf(`SELECT id, name, slug FROM %s WHERE %s = $1`, t.table, column)

	var item entity.Lookup
	err := t.db.QueryRow(ctx, query, value).Scan(&item.ID, &item.Name, &item.Slug)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		t.log.Error("Failed to find row",
			zap.Error(err),
			zap.String("column", column),
			zap.Any("value", value),
		)
		return nil, fmt.Errorf("find %s by %s: %w", t.table, column, err)
	}

	return &item, nil
}

// findAll filters on an exact name when search is not empty.
func (t *lookupTable) findAll(ctx context.Context, search string, limit, offset int) ([]entity.Lookup, error) {
	query := fmt.Sprintf(`
		SELECT id, name, slug
		FROM %s
		WHERE $1::text = '' OR name = $1
		ORDER BY name, id
		LIMIT $2 OFFSET $3
	`, t.table)

	rows, err := t.db.Query(ctx, query, search, limit, offset)
	if err != nil {
		t.log.Error("Failed to list rows", zap.Error(err), zap.String("search", search))
		return nil, fmt.Errorf("list %s: %w", t.table, err)
	}
	defer rows.Close()

	var items []entity.Lookup
	for rows.Next() {
		var item entity.Lookup
		if err := rows.Scan(&item.ID, &item.Name, &item.Slug); err != nil {
			t.log.Error("Failed to scan row", zap.Error(err))
			return nil, fmt.Errorf("scan %s row: %w", t.table, err)
		}
		items = append(items, item)
	}

	return items, rows.Err()
}

func (t *lookupTable) count(ctx context.Context, search string) (int64, error) {
	query := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE $1::text = '' OR name = $1`, t.table)

	var total int64
	if err := t.db.QueryRow(ctx, query, search).Scan(&total); err != nil {
		t.log.Error("Failed to count rows", zap.Error(err))
		return 0, fmt.Errorf("count %s: %w", t.table, err)
	}

	return total, nil
}

func (t *lookupTable) create(ctx context.Context, item *entity.Lookup) error {
	query := fmt.Sprintf(`INSERT INTO %s (name, slug) VALUES ($1, $2) RETURNING id`, t.table)

	if err := t.db.QueryRow(ctx, query, item.Name, item.Slug).Scan(&item.ID); err != nil {
		t.log.Error("Failed to create row", zap.Error(err), zap.String("slug", item.Slug))
		return fmt.Errorf("create %s %s: %w", t.table, item.Slug, classify(err))
	}

	return nil
}

// deleteBySlug reports whether a row was removed.
func (t *lookupTable) deleteBySlug(ctx context.Context, slug string) (bool, error) {
	query := fmt.Sprintf(`DELETE FROM %s WHERE slug = $1`, t.table)

	result, err := t.db.Exec(ctx, query, slug)
	if err != nil {
		t.log.Error("Failed to delete row", zap.Error(err), zap.String("slug", slug))
		return false, fmt.Errorf("delete %s %s: %w", t.table, slug, err)
	}

	return result.RowsAffected() > 0, nil
}

func (t *lookupTable) bulkInsert(ctx context.Context, items []entity.Lookup, batchSize int) (int64, error) {
	rows := make([][]any, 0, len(items))
	for _, item := range items {
		rows = append(rows, []any{item.ID, item.Name, item.Slug})
	}

	return bulkInsert(ctx, t.db, t.log, t.table, []string{"id", "name", "slug"}, rows, batchSize)
}
