package usecase

import (
	"context"
	"errors"
	"testing"

	"yamdb/internal/data/entity"
	"yamdb/internal/data/repository"
	"yamdb/internal/dto/request"
	"yamdb/internal/permission"

	"go.uber.org/zap"
)

var (
	author    = &permission.Actor{ID: 1, Username: "bob", Role: permission.RoleUser}
	stranger  = &permission.Actor{ID: 2, Username: "eve", Role: permission.RoleUser}
	moderator = &permission.Actor{ID: 3, Username: "mod", Role: permission.RoleModerator}
)

func newReviewFixture() (*reviewService, *fakeReviewRepo) {
	reviews := newFakeReviewRepo(&entity.Review{
		Contribution: entity.Contribution{ID: 10, AuthorID: author.ID, AuthorUsername: author.Username, Text: "great"},
		TitleID:      1,
		Score:        8,
	})
	repo := &repository.Repository{
		Title: &fakeTitleRepo{titles: map[int64]*entity.TitleDetail{
			1: {Title: entity.Title{ID: 1, Name: "Dune", Year: 1965}},
			2: {Title: entity.Title{ID: 2, Name: "Solaris", Year: 1961}},
		}},
		Review: reviews,
	}
	return NewReviewService(repo, zap.NewNop()).(*reviewService), reviews
}

func TestCreateReviewOnePerAuthorPerTitle(t *testing.T) {
	svc, _ := newReviewFixture()
	ctx := context.Background()

	for _, score := range []int{1, 8, 10} {
		_, err := svc.CreateReview(ctx, author, 1, &request.CreateReviewRequest{Text: "again", Score: score})
		if !errors.Is(err, ErrConflict) {
			t.Errorf("CreateReview(score=%d) error = %v, want ErrConflict", score, err)
		}
	}

	resp, err := svc.CreateReview(ctx, author, 2, &request.CreateReviewRequest{Text: "fine", Score: 6})
	if err != nil {
		t.Fatalf("CreateReview(other title) error = %v", err)
	}
	if resp.Author != author.Username || resp.Score != 6 {
		t.Errorf("CreateReview() = %+v", resp)
	}
}

func TestCreateReviewChecks(t *testing.T) {
	svc, _ := newReviewFixture()
	ctx := context.Background()

	tests := []struct {
		name    string
		actor   *permission.Actor
		titleID int64
		req     request.CreateReviewRequest
		wantErr error
	}{
		{"anonymous", nil, 2, request.CreateReviewRequest{Text: "x", Score: 5}, ErrUnauthenticated},
		{"missing title", stranger, 99, request.CreateReviewRequest{Text: "x", Score: 5}, ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateReview(ctx, tt.actor, tt.titleID, &tt.req)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("CreateReview() error = %v, want %v", err, tt.wantErr)
			}
		})
	}

	for _, score := range []int{0, 11} {
		_, err := svc.CreateReview(ctx, stranger, 2, &request.CreateReviewRequest{Text: "x", Score: score})
		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Errorf("CreateReview(score=%d) error = %v, want ValidationError", score, err)
		}
	}
}

func TestUpdateAndDeleteReviewPermissions(t *testing.T) {
	ctx := context.Background()
	text := "edited"

	tests := []struct {
		name    string
		actor   *permission.Actor
		wantErr error
	}{
		{"author", author, nil},
		{"moderator", moderator, nil},
		{"stranger", stranger, ErrForbidden},
		{"anonymous", nil, ErrUnauthenticated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, reviews := newReviewFixture()

			_, err := svc.UpdateReview(ctx, tt.actor, 1, 10, &request.UpdateReviewRequest{Text: &text})
			if !errors.Is(err, tt.wantErr) && (err != nil || tt.wantErr != nil) {
				t.Errorf("UpdateReview() error = %v, want %v", err, tt.wantErr)
			}

			err = svc.DeleteReview(ctx, tt.actor, 1, 10)
			if !errors.Is(err, tt.wantErr) && (err != nil || tt.wantErr != nil) {
				t.Errorf("DeleteReview() error = %v, want %v", err, tt.wantErr)
			}

			if wantDeleted := tt.wantErr == nil; (len(reviews.deleted) == 1) != wantDeleted {
				t.Errorf("deleted = %v, want deleted %v", reviews.deleted, wantDeleted)
			}
		})
	}
}

func TestReviewMustBelongToTitle(t *testing.T) {
	svc, _ := newReviewFixture()

	if _, err := svc.GetReview(context.Background(), 2, 10); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetReview(wrong title) error = %v, want ErrNotFound", err)
	}
}

func TestCommentRequiresReviewOfTitle(t *testing.T) {
	reviews := newFakeReviewRepo(&entity.Review{
		Contribution: entity.Contribution{ID: 10, AuthorID: author.ID},
		TitleID:      1,
		Score:        8,
	})
	comments := &fakeCommentRepo{comments: map[int64]*entity.Comment{
		7: {Contribution: entity.Contribution{ID: 7, AuthorID: author.ID, Text: "hi"}, ReviewID: 10},
	}}
	svc := NewCommentService(&repository.Repository{Review: reviews, Comment: comments}, zap.NewNop())
	ctx := context.Background()

	if _, err := svc.CreateComment(ctx, stranger, 2, 10, &request.CreateCommentRequest{Text: "hello"}); !errors.Is(err, ErrNotFound) {
		t.Errorf("CreateComment(wrong title) error = %v, want ErrNotFound", err)
	}

	resp, err := svc.CreateComment(ctx, stranger, 1, 10, &request.CreateCommentRequest{Text: "hello"})
	if err != nil {
		t.Fatalf("CreateComment() error = %v", err)
	}
	if resp.Author != stranger.Username {
		t.Errorf("author = %q, want %q", resp.Author, stranger.Username)
	}

	if _, err := svc.GetComment(ctx, 2, 10, 7); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetComment(wrong title) error = %v, want ErrNotFound", err)
	}
	if err := svc.DeleteComment(ctx, stranger, 1, 10, 7); !errors.Is(err, ErrForbidden) {
		t.Errorf("DeleteComment(stranger) error = %v, want ErrForbidden", err)
	}
}
