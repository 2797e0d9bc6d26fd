package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"yamdb/internal/data/entity"
	"yamdb/internal/data/repository"
	"yamdb/pkg/utils"
)

type fakeUserRepo struct {
	repository.UserRepository
	mu     sync.Mutex
	users  map[int64]*entity.User
	nextID int64
	// createErr is returned by Create instead of storing the user
	createErr error
	// beforeSpend runs right before the compare-and-swap, outside the lock
	beforeSpend func()
}

func newFakeUserRepo(users ...*entity.User) *fakeUserRepo {
	r := &fakeUserRepo{users: map[int64]*entity.User{}, nextID: 100}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (r *fakeUserRepo) Create(_ context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	r.nextID++
	user.ID = r.nextID
	user.DateJoined = time.Now()
	stored := *user
	r.users[user.ID] = &stored
	return nil
}

func (r *fakeUserRepo) find(match func(*entity.User) bool) *entity.User {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if match(u) {
			copied := *u
			return &copied
		}
	}
	return nil
}

func (r *fakeUserRepo) FindByID(_ context.Context, id int64) (*entity.User, error) {
	return r.find(func(u *entity.User) bool { return u.ID == id }), nil
}

func (r *fakeUserRepo) FindByUsername(_ context.Context, username string) (*entity.User, error) {
	return r.find(func(u *entity.User) bool { return u.Username == username }), nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	return r.find(func(u *entity.User) bool { return strings.EqualFold(u.Email, email) }), nil
}

func (r *fakeUserRepo) Update(_ context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := *user
	r.users[user.ID] = &stored
	return nil
}

func (r *fakeUserRepo) SetConfirmationCode(_ context.Context, id int64, code string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return fmt.Errorf("user %d not found", id)
	}
	u.ConfirmationCode = &code
	return nil
}

func (r *fakeUserRepo) SpendConfirmationCode(_ context.Context, id int64, expected string) (bool, error) {
	if r.beforeSpend != nil {
		r.beforeSpend()
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok || u.ConfirmationCode == nil || *u.ConfirmationCode != expected {
		return false, nil
	}
	spent := utils.SpentConfirmationCode
	u.ConfirmationCode = &spent
	return true, nil
}

func (r *fakeUserRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.users)
}

type fakeTitleRepo struct {
	repository.TitleRepository
	titles  map[int64]*entity.TitleDetail
	created []*entity.Title
	genres  [][]int64
}

func (r *fakeTitleRepo) FindByID(_ context.Context, id int64) (*entity.Title, error) {
	if t, ok := r.titles[id]; ok {
		title := t.Title
		return &title, nil
	}
	return nil, nil
}

func (r *fakeTitleRepo) FindDetailByID(_ context.Context, id int64) (*entity.TitleDetail, error) {
	if t, ok := r.titles[id]; ok {
		detail := *t
		return &detail, nil
	}
	return nil, nil
}

func (r *fakeTitleRepo) Create(_ context.Context, title *entity.Title, genreIDs []int64) error {
	title.ID = int64(len(r.titles) + 1)
	r.titles[title.ID] = &entity.TitleDetail{Title: *title}
	r.created = append(r.created, title)
	r.genres = append(r.genres, genreIDs)
	return nil
}

type fakeGenreRepo struct {
	repository.GenreRepository
	bySlug  map[string]*entity.Genre
	byTitle map[int64][]*entity.Genre
}

func (r *fakeGenreRepo) FindBySlug(_ context.Context, slug string) (*entity.Genre, error) {
	return r.bySlug[slug], nil
}

func (r *fakeGenreRepo) FindByTitleIDs(_ context.Context, ids []int64) (map[int64][]*entity.Genre, error) {
	out := map[int64][]*entity.Genre{}
	for _, id := range ids {
		out[id] = r.byTitle[id]
	}
	return out, nil
}

type fakeCategoryRepo struct {
	repository.CategoryRepository
	bySlug map[string]*entity.Category
}

func (r *fakeCategoryRepo) FindBySlug(_ context.Context, slug string) (*entity.Category, error) {
	return r.bySlug[slug], nil
}

type fakeReviewRepo struct {
	repository.ReviewRepository
	reviews map[int64]*entity.Review
	nextID  int64
	deleted []int64
	updated []*entity.Review
}

func newFakeReviewRepo(reviews ...*entity.Review) *fakeReviewRepo {
	r := &fakeReviewRepo{reviews: map[int64]*entity.Review{}, nextID: 50}
	for _, rv := range reviews {
		r.reviews[rv.ID] = rv
	}
	return r
}

func (r *fakeReviewRepo) Create(_ context.Context, review *entity.Review) error {
	r.nextID++
	review.ID = r.nextID
	review.PubDate = time.Now()
	stored := *review
	r.reviews[review.ID] = &stored
	return nil
}

func (r *fakeReviewRepo) FindByTitleAndID(_ context.Context, titleID, id int64) (*entity.Review, error) {
	if rv, ok := r.reviews[id]; ok && rv.TitleID == titleID {
		copied := *rv
		return &copied, nil
	}
	return nil, nil
}

func (r *fakeReviewRepo) FindByAuthorAndTitle(_ context.Context, authorID, titleID int64) (*entity.Review, error) {
	for _, rv := range r.reviews {
		if rv.AuthorID == authorID && rv.TitleID == titleID {
			copied := *rv
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeReviewRepo) Update(_ context.Context, review *entity.Review) error {
	r.updated = append(r.updated, review)
	stored := *review
	r.reviews[review.ID] = &stored
	return nil
}

func (r *fakeReviewRepo) Delete(_ context.Context, id int64) error {
	r.deleted = append(r.deleted, id)
	delete(r.reviews, id)
	return nil
}

type fakeCommentRepo struct {
	repository.CommentRepository
	comments map[int64]*entity.Comment
	created  []*entity.Comment
}

func (r *fakeCommentRepo) Create(_ context.Context, comment *entity.Comment) error {
	comment.ID = int64(len(r.created) + 1)
	r.created = append(r.created, comment)
	return nil
}

func (r *fakeCommentRepo) FindByReviewAndID(_ context.Context, reviewID, id int64) (*entity.Comment, error) {
	if c, ok := r.comments[id]; ok && c.ReviewID == reviewID {
		copied := *c
		return &copied, nil
	}
	return nil, nil
}

type sentMail struct {
	to, subject, body string
}

type fakeMailer struct {
	sent chan sentMail
}

func newFakeMailer() *fakeMailer {
	return &fakeMailer{sent: make(chan sentMail, 8)}
}

func (m *fakeMailer) Send(_ context.Context, to, subject, body string) error {
	m.sent <- sentMail{to: to, subject: subject, body: body}
	return nil
}

type fakeTokens struct{}

func (fakeTokens) GenerateToken(userID int64, username, role string) (string, time.Time, error) {
	return fmt.Sprintf("token-%d-%s-%s", userID, username, role), time.Now().Add(time.Hour), nil
}
