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

type ReviewRepository interface {
	Create(ctx context.Context, review *entity.Review) error
	FindByID(ctx context.Context, id int64) (*entity.Review, error)
	// FindByTitleAndID only returns the review when it belongs to titleID.
	FindByTitleAndID(ctx context.Context, titleID, id int64) (*entity.Review, error)
	FindByTitleID(ctx context.Context, titleID int64, limit, offset int) ([]*entity.Review, error)
	FindByAuthorAndTitle(ctx context.Context, authorID, titleID int64) (*entity.Review, error)
	CountByTitleID(ctx context.Context, titleID int64) (int64, error)
	Update(ctx context.Context, review *entity.Review) error
	Delete(ctx context.Context, id int64) error
	BulkInsert(ctx context.Context, reviews []*entity.Review, batchSize int) (int64, error)
}

type reviewRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewReviewRepository(db database.PgxIface, log *zap.Logger) ReviewRepository {
	return &reviewRepository{
		db:  db,
		log: log.With(zap.String("repository", "review")),
	}
}

const reviewSelect = `
		SELECT r.id, r.title_id, r.author_id, u.username, r.text, r.score, r.pub_date
		FROM reviews r
		INNER JOIN users u ON u.id = r.author_id
`

func scanReview(row pgx.Row) (*entity.Review, error) {
	var review entity.Review
	err := row.Scan(
		&review.ID,
		&review.TitleID,
		&review.AuthorID,
		&review.AuthorUsername,
		&review.Text,
		&review.Score,
		&review.PubDate,
	)
	if err != nil {
		return nil, err
	}
	return &review, nil
}

func (r *reviewRepository) Create(ctx context.Context, review *entity.Review) error {
	query := `
		INSERT INTO reviews (title_id, author_id, text, score)
		VALUES ($1, $2, $3, $4)
		RETURNING id, pub_date
	`

	err := r.db.QueryRow(ctx, query,
		review.TitleID,
		review.AuthorID,
		review.Text,
		review.Score,
	).Scan(&review.ID, &review.PubDate)

	if err != nil {
		r.log.Error("Failed to create review",
			zap.Error(err),
			zap.Int64("author_id", review.AuthorID),
			zap.Int64("title_id", review.TitleID),
		)
		return fmt.Errorf("create review for title %d by user %d: %w",
			review.TitleID, review.AuthorID, classify(err))
	}

	return nil
}

func (r *reviewRepository) FindByID(ctx context.Context, id int64) (*entity.Review, error) {
	review, err := scanReview(r.db.QueryRow(ctx, reviewSelect+` WHERE r.id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find review by ID", zap.Error(err), zap.Int64("review_id", id))
		return nil, fmt.Errorf("find review by id %d: %w", id, err)
	}

	return review, nil
}

func (r *reviewRepository) FindByTitleAndID(ctx context.Context, titleID, id int64) (*entity.Review, error) {
	query := reviewSelect + ` WHERE r.id = $1 AND r.title_id = $2`

	review, err := scanReview(r.db.QueryRow(ctx, query, id, titleID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find review",
			zap.Error(err),
			zap.Int64("review_id", id),
			zap.Int64("title_id", titleID),
		)
		return nil, fmt.Errorf("find review %d of title %d: %w", id, titleID, err)
	}

	return review, nil
}

func (r *reviewRepository) FindByTitleID(ctx context.Context, titleID int64, limit, offset int) ([]*entity.Review, error) {
	query := reviewSelect + `
		WHERE r.title_id = $1
		ORDER BY r.pub_date DESC, r.id DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, titleID, limit, offset)
	if err != nil {
		r.log.Error("Failed to find reviews by title ID",
			zap.Error(err),
			zap.Int64("title_id", titleID),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, fmt.Errorf("find reviews by title id %d: %w", titleID, err)
	}
	defer rows.Close()

	var reviews []*entity.Review
	for rows.Next() {
		review, err := scanReview(rows)
		if err != nil {
			r.log.Error("Failed to scan review row", zap.Error(err))
			return nil, fmt.Errorf("scan review row: %w", err)
		}
		reviews = append(reviews, review)
	}

	return reviews, rows.Err()
}

func (r *reviewRepository) FindByAuthorAndTitle(ctx context.Context, authorID, titleID int64) (*entity.Review, error) {
	query := reviewSelect + ` WHERE r.author_id = $1 AND r.title_id = $2`

	review, err := scanReview(r.db.QueryRow(ctx, query, authorID, titleID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find review by author and title",
			zap.Error(err),
			zap.Int64("author_id", authorID),
			zap.Int64("title_id", titleID),
		)
		return nil, fmt.Errorf("find review by author %d and title %d: %w", authorID, titleID, err)
	}

	return review, nil
}

func (r *reviewRepository) CountByTitleID(ctx context.Context, titleID int64) (int64, error) {
	var total int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM reviews WHERE title_id = $1`, titleID).Scan(&total)
	if err != nil {
		r.log.Error("Failed to count reviews", zap.Error(err), zap.Int64("title_id", titleID))
		return 0, fmt.Errorf("count reviews of title %d: %w", titleID, err)
	}

	return total, nil
}

func (r *reviewRepository) Update(ctx context.Context, review *entity.Review) error {
	query := `UPDATE reviews SET text = $2, score = $3 WHERE id = $1`

	if _, err := r.db.Exec(ctx, query, review.ID, review.Text, review.Score); err != nil {
		r.log.Error("Failed to update review", zap.Error(err), zap.Int64("review_id", review.ID))
		return fmt.Errorf("update review %d: %w", review.ID, classify(err))
	}

	return nil
}

func (r *reviewRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM reviews WHERE id = $1`, id); err != nil {
		r.log.Error("Failed to delete review", zap.Error(err), zap.Int64("review_id", id))
		return fmt.Errorf("delete review %d: %w", id, err)
	}

	return nil
}

func (r *reviewRepository) BulkInsert(ctx context.Context, reviews []*entity.Review, batchSize int) (int64, error) {
	columns := []string{"id", "title_id", "author_id", "text", "score", "pub_date"}

	rows := make([][]any, 0, len(reviews))
	for _, rv := range reviews {
		rows = append(rows, []any{rv.ID, rv.TitleID, rv.AuthorID, rv.Text, rv.Score, rv.PubDate})
	}

	return bulkInsert(ctx, r.db, r.log, "reviews", columns, rows, batchSize)
}
