package usecase

import (
	"context"
	"errors"
	"testing"

	"yamdb/internal/data/entity"
	"yamdb/internal/data/repository"
	"yamdb/internal/dto/request"

	"go.uber.org/zap"
)

func ptr[T any](v T) *T { return &v }

func newTitleFixture() (TitleService, *fakeTitleRepo) {
	drama := &entity.Genre{Lookup: entity.Lookup{ID: 1, Name: "Drama", Slug: "drama"}}
	titles := &fakeTitleRepo{titles: map[int64]*entity.TitleDetail{
		1: {Title: entity.Title{ID: 1, Name: "Unrated", Year: 2001}},
		2: {Title: entity.Title{ID: 2, Name: "Rated", Year: 1999}, Rating: ptr(7.8)},
	}}
	repo := &repository.Repository{
		Title: titles,
		Genre: &fakeGenreRepo{
			bySlug:  map[string]*entity.Genre{"drama": drama},
			byTitle: map[int64][]*entity.Genre{2: {drama}},
		},
		Category: &fakeCategoryRepo{bySlug: map[string]*entity.Category{
			"film": {Lookup: entity.Lookup{ID: 3, Name: "Film", Slug: "film"}},
		}},
	}
	return NewTitleService(repo, zap.NewNop()), titles
}

func TestGetTitleRating(t *testing.T) {
	svc, _ := newTitleFixture()
	ctx := context.Background()

	unrated, err := svc.GetTitle(ctx, 1)
	if err != nil {
		t.Fatalf("GetTitle(1) error = %v", err)
	}
	if unrated.Rating != nil {
		t.Errorf("rating = %d, want nil without reviews", *unrated.Rating)
	}
	if unrated.Genre == nil || len(unrated.Genre) != 0 {
		t.Errorf("genre = %v, want empty list", unrated.Genre)
	}

	rated, err := svc.GetTitle(ctx, 2)
	if err != nil {
		t.Fatalf("GetTitle(2) error = %v", err)
	}
	if rated.Rating == nil || *rated.Rating != 7 {
		t.Errorf("rating = %v, want 7", rated.Rating)
	}
	if len(rated.Genre) != 1 || rated.Genre[0].Slug != "drama" {
		t.Errorf("genre = %+v", rated.Genre)
	}

	if _, err := svc.GetTitle(ctx, 42); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetTitle(42) error = %v, want ErrNotFound", err)
	}
}

func TestCreateTitleResolvesSlugs(t *testing.T) {
	svc, titles := newTitleFixture()
	ctx := context.Background()

	resp, err := svc.CreateTitle(ctx, &request.CreateTitleRequest{
		Name:     "Stalker",
		Year:     1979,
		Category: "film",
		Genre:    []string{"drama"},
	})
	if err != nil {
		t.Fatalf("CreateTitle() error = %v", err)
	}
	if resp.Name != "Stalker" {
		t.Errorf("name = %q", resp.Name)
	}

	created := titles.created[len(titles.created)-1]
	if created.CategoryID == nil || *created.CategoryID != 3 {
		t.Errorf("category id = %v, want 3", created.CategoryID)
	}
	if got := titles.genres[len(titles.genres)-1]; len(got) != 1 || got[0] != 1 {
		t.Errorf("genre ids = %v, want [1]", got)
	}
}

func TestCreateTitleRejectsUnknownSlugsAndFutureYear(t *testing.T) {
	svc, _ := newTitleFixture()
	ctx := context.Background()

	tests := []struct {
		name  string
		req   request.CreateTitleRequest
		field string
	}{
		{"unknown genre", request.CreateTitleRequest{Name: "X", Year: 2000, Genre: []string{"noir"}}, "genre"},
		{"unknown category", request.CreateTitleRequest{Name: "X", Year: 2000, Category: "book"}, "category"},
		{"future year", request.CreateTitleRequest{Name: "X", Year: 9999}, "year"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateTitle(ctx, &tt.req)
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("CreateTitle() error = %v, want ValidationError", err)
			}
			if _, ok := verr.Fields[tt.field]; !ok {
				t.Errorf("fields = %v, want %q", verr.Fields, tt.field)
			}
		})
	}
}
