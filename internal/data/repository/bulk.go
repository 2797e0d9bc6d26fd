package repository

import (
	"context"
	"fmt"
	"strings"

	"yamdb/pkg/database"

	"go.uber.org/zap"
)

// DefaultBatchSize keeps multi-row inserts well below the 65535 bind parameter limit.
const DefaultBatchSize = 500

// bulkInsert writes rows in batches with ON CONFLICT DO NOTHING and returns
// how many rows were actually inserted.
func bulkInsert(ctx context.Context, db database.PgxIface, log *zap.Logger,
	table string, columns []string, rows [][]any, batchSize int) (int64, error) {
	if len(rows) == 0 {
		return 0, nil
	}
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}

	var inserted int64
	for start := 0; start < len(rows); start += batchSize {
		end := min(start+batchSize, len(rows))
		batch := rows[start:end]

		var query strings.Builder
		fmt.Fprintf(&query, "INSERT INTO %s (%s) VALUES ", table, strings.Join(columns, ", "))

		args := make([]any, 0, len(batch)*len(columns))
		for i, row := range batch {
			if i > 0 {
				query.WriteString(", ")
			}
			query.WriteString("(")
			for j := range columns {
				if j > 0 {
					query.WriteString(", ")
				}
				fmt.Fprintf(&query, "$%d", len(args)+j+1)
			}
			query.WriteString(")")
			args = append(args, row...)
		}
		query.WriteString(" ON CONFLICT DO NOTHING")

		result, err := db.Exec(ctx, query.String(), args...)
		if err != nil {
			log.Error("Failed to bulk insert",
				zap.Error(err),
				zap.String("table", table),
				zap.Int("batch_start", start),
				zap.Int("batch_size", len(batch)),
			)
			return inserted, fmt.Errorf("bulk insert into %s: %w", table, classify(err))
		}
		inserted += result.RowsAffected()
	}

	if err := syncSequence(ctx, db, table); err != nil {
		log.Warn("Failed to sync id sequence", zap.Error(err), zap.String("table", table))
	}

	return inserted, nil
}

// syncSequence moves the id sequence past explicitly inserted ids.
func syncSequence(ctx context.Context, db database.PgxIface, table string) error {
	query := fmt.Sprintf(
		`SELECT setval(pg_get_serial_sequence('%[1]s', 'id'), COALESCE((SELECT MAX(id) FROM %[1]s), 0) + 1, false)`,
		table)
	if _, err := db.Exec(ctx, query); err != nil {
		return fmt.Errorf("sync %s id sequence: %w", table, err)
	}
	return nil
}
