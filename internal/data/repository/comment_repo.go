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

type CommentRepository interface {
	Create(ctx context.Context, comment *entity.Comment) error
	// FindByReviewAndID only returns the comment when it belongs to reviewID.
	FindByReviewAndID(ctx context.Context, reviewID, id int64) (*entity.Comment, error)
	FindByReviewID(ctx context.Context, reviewID int64, limit, offset int) ([]*entity.Comment, error)
	CountByReviewID(ctx context.Context, reviewID int64) (int64, error)
	Update(ctx context.Context, comment *entity.Comment) error
	Delete(ctx context.Context, id int64) error
	BulkInsert(ctx context.Context, comments []*entity.Comment, batchSize int) (int64, error)
}

type commentRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewCommentRepository(db database.PgxIface, log *zap.Logger) CommentRepository {
	return &commentRepository{
		db:  db,
		log: log.With(zap.String("repository", "comment")),
	}
}

const commentSelect = `
		SELECT c.id, c.review_id, c.author_id, u.username, c.text, c.pub_date
		FROM comments c
		INNER JOIN users u ON u.id = c.author_id
`

func scanComment(row pgx.Row) (*entity.Comment, error) {
	var comment entity.Comment
	err := row.Scan(
		&comment.ID,
		&comment.ReviewID,
		&comment.AuthorID,
		&comment.AuthorUsername,
		&comment.Text,
		&comment.PubDate,
	)
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

func (r *commentRepository) Create(ctx context.Context, comment *entity.Comment) error {
	query := `
		INSERT INTO comments (review_id, author_id, text)
		VALUES ($1, $2, $3)
		RETURNING id, pub_date
	`

	err := r.db.QueryRow(ctx, query,
		comment.ReviewID,
		comment.AuthorID,
		comment.Text,
	).Scan(&comment.ID, &comment.PubDate)

	if err != nil {
		r.log.Error("Failed to create comment",
			zap.Error(err),
			zap.Int64("author_id", comment.AuthorID),
			zap.Int64("review_id", comment.ReviewID),
		)
		return fmt.Errorf("create comment on review %d: %w", comment.ReviewID, classify(err))
	}

	return nil
}

func (r *commentRepository) FindByReviewAndID(ctx context.Context, reviewID, id int64) (*entity.Comment, error) {
	query := commentSelect + ` WHERE c.id = $1 AND c.review_id = $2`

	comment, err := scanComment(r.db.QueryRow(ctx, query, id, reviewID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find comment",
			zap.Error(err),
			zap.Int64("comment_id", id),
			zap.Int64("review_id", reviewID),
		)
		return nil, fmt.Errorf("find comment %d of review %d: %w", id, reviewID, err)
	}

	return comment, nil
}

func (r *commentRepository) FindByReviewID(ctx context.Context, reviewID int64, limit, offset int) ([]*entity.Comment, error) {
	query := commentSelect + `
		WHERE c.review_id = $1
		ORDER BY c.pub_date DESC, c.id DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, reviewID, limit, offset)
	if err != nil {
		r.log.Error("Failed to find comments by review ID",
			zap.Error(err),
			zap.Int64("review_id", reviewID),
		)
		return nil, fmt.Errorf("find comments by review id %d: %w", reviewID, err)
	}
	defer rows.Close()

	var comments []*entity.Comment
	for rows.Next() {
		comment, err := scanComment(rows)
		if err != nil {
			r.log.Error("Failed to scan comment row", zap.Error(err))
			return nil, fmt.Errorf("scan comment row: %w", err)
		}
		comments = append(comments, comment)
	}

	return comments, rows.Err()
}

func (r *commentRepository) CountByReviewID(ctx context.Context, reviewID int64) (int64, error) {
	var total int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM comments WHERE review_id = $1`, reviewID).Scan(&total)
	if err != nil {
		r.log.Error("Failed to count comments", zap.Error(err), zap.Int64("review_id", reviewID))
		return 0, fmt.Errorf("count comments of review %d: %w", reviewID, err)
	}

	return total, nil
}

func (r *commentRepository) Update(ctx context.Context, comment *entity.Comment) error {
	if _, err := r.db.Exec(ctx, `UPDATE comments SET text = $2 WHERE id = $1`, comment.ID, comment.Text); err != nil {
		r.log.Error("Failed to update comment", zap.Error(err), zap.Int64("comment_id", comment.ID))
		return fmt.Errorf("update comment %d: %w", comment.ID, err)
	}

	return nil
}

func (r *commentRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM comments WHERE id = $1`, id); err != nil {
		r.log.Error("Failed to delete comment", zap.Error(err), zap.Int64("comment_id", id))
		return fmt.Errorf("delete comment %d: %w", id, err)
	}

	return nil
}

func (r *commentRepository) BulkInsert(ctx context.Context, comments []*entity.Comment, batchSize int) (int64, error) {
	columns := []string{"id", "review_id", "author_id", "text", "pub_date"}

	rows := make([][]any, 0, len(comments))
	for _, c := range comments {
		rows = append(rows, []any{c.ID, c.ReviewID, c.AuthorID, c.Text, c.PubDate})
	}

	return bulkInsert(ctx, r.db, r.log, "comments", columns, rows, batchSize)
}
