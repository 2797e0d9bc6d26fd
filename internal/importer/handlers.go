package importer

import (
	"context"
	"errors"
	"strconv"
	"time"

	"yamdb/internal/data/entity"

	"go.uber.org/zap"
)

var errMissingReference = errors.New("referenced row does not exist")

type existsFunc func(ctx context.Context, id int64) (bool, error)

func (imp *Importer) rowFailed(report *TagReport, err error) {
	report.Failed++
	imp.log.Warn("Row skipped", zap.Error(err))
}

func parseID(tag Tag, rec Record, field string) (int64, error) {
	raw := rec.Get(field)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, &LookupError{Tag: tag, Line: rec.Line, Field: field, Value: raw, Err: err}
	}
	return id, nil
}

func parseInt(tag Tag, rec Record, field string) (int, error) {
	raw := rec.Get(field)
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &LookupError{Tag: tag, Line: rec.Line, Field: field, Value: raw, Err: err}
	}
	return n, nil
}

func parsePubDate(tag Tag, rec Record) (time.Time, error) {
	raw := rec.Get("pub_date")
	if raw == "" {
		return time.Now(), nil
	}
	t, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return time.Time{}, &LookupError{Tag: tag, Line: rec.Line, Field: "pub_date", Value: raw, Err: err}
	}
	return t, nil
}

func optional(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}

// resolve parses the reference in field and checks that table holds that id.
// Database failures are returned as is, a missing row as *LookupError.
func (imp *Importer) resolve(ctx context.Context, tag Tag, rec Record, field, table string, exists existsFunc) (int64, error) {
	id, err := parseID(tag, rec, field)
	if err != nil {
		return 0, err
	}

	key := table + ":" + strconv.FormatInt(id, 10)
	found, cached := imp.seen[key]
	if !cached {
		if found, err = exists(ctx, id); err != nil {
			return 0, err
		}
		imp.seen[key] = found
	}
	if !found {
		return 0, &LookupError{Tag: tag, Line: rec.Line, Field: field, Value: rec.Get(field), Err: errMissingReference}
	}
	return id, nil
}

func isLookupError(err error) bool {
	var lookup *LookupError
	return errors.As(err, &lookup)
}

func (imp *Importer) userExists(ctx context.Context, id int64) (bool, error) {
	user, err := imp.repo.User.FindByID(ctx, id)
	return user != nil, err
}

func (imp *Importer) categoryExists(ctx context.Context, id int64) (bool, error) {
	category, err := imp.repo.Category.FindByID(ctx, id)
	return category != nil, err
}

func (imp *Importer) genreExists(ctx context.Context, id int64) (bool, error) {
	genre, err := imp.repo.Genre.FindByID(ctx, id)
	return genre != nil, err
}

func (imp *Importer) titleExists(ctx context.Context, id int64) (bool, error) {
	title, err := imp.repo.Title.FindByID(ctx, id)
	return title != nil, err
}

func (imp *Importer) importUsers(ctx context.Context, rows []Record) (TagReport, error) {
	var report TagReport
	users := make([]*entity.User, 0, len(rows))

	for _, rec := range rows {
		id, err := parseID(TagUsers, rec, "id")
		if err != nil {
			imp.rowFailed(&report, err)
			continue
		}

		role := entity.UserRole(rec.Get("role"))
		if role == "" {
			role = entity.RoleUser
		}
		if !role.Valid() {
			imp.rowFailed(&report, &LookupError{Tag: TagUsers, Line: rec.Line, Field: "role", Value: string(role)})
			continue
		}

		users = append(users, &entity.User{
			ID:        id,
			Username:  rec.Get("username"),
			Email:     rec.Get("email"),
			FirstName: rec.Get("first_name"),
			LastName:  rec.Get("last_name"),
			Bio:       optional(rec.Get("bio")),
			Role:      role,
		})
	}

	inserted, err := imp.repo.User.BulkInsert(ctx, users, imp.config.BatchSize)
	report.Inserted = int(inserted)
	return report, err
}

func (imp *Importer) readLookups(tag Tag, rows []Record, report *TagReport) []entity.Lookup {
	items := make([]entity.Lookup, 0, len(rows))
	for _, rec := range rows {
		id, err := parseID(tag, rec, "id")
		if err != nil {
			imp.rowFailed(report, err)
			continue
		}
		items = append(items, entity.Lookup{ID: id, Name: rec.Get("name"), Slug: rec.Get("slug")})
	}
	return items
}

func (imp *Importer) importCategories(ctx context.Context, rows []Record) (TagReport, error) {
	var report TagReport

	var categories []*entity.Category
	for _, item := range imp.readLookups(TagCategory, rows, &report) {
		categories = append(categories, &entity.Category{Lookup: item})
	}

	inserted, err := imp.repo.Category.BulkInsert(ctx, categories, imp.config.BatchSize)
	report.Inserted = int(inserted)
	return report, err
}

func (imp *Importer) importGenres(ctx context.Context, rows []Record) (TagReport, error) {
	var report TagReport

	var genres []*entity.Genre
	for _, item := range imp.readLookups(TagGenre, rows, &report) {
		genres = append(genres, &entity.Genre{Lookup: item})
	}

	inserted, err := imp.repo.Genre.BulkInsert(ctx, genres, imp.config.BatchSize)
	report.Inserted = int(inserted)
	return report, err
}

func (imp *Importer) importTitles(ctx context.Context, rows []Record) (TagReport, error) {
	var report TagReport
	titles := make([]*entity.Title, 0, len(rows))

	for _, rec := range rows {
		id, err := parseID(TagTitles, rec, "id")
		if err != nil {
			imp.rowFailed(&report, err)
			continue
		}
		year, err := parseInt(TagTitles, rec, "year")
		if err != nil {
			imp.rowFailed(&report, err)
			continue
		}

		title := &entity.Title{
			ID:          id,
			Name:        rec.Get("name"),
			Year:        year,
			Description: optional(rec.Get("description")),
		}

		if rec.Get("category") != "" {
			categoryID, err := imp.resolve(ctx, TagTitles, rec, "category", "categories", imp.categoryExists)
			if isLookupError(err) {
				imp.rowFailed(&report, err)
				continue
			}
			if err != nil {
				return report, err
			}
			title.CategoryID = &categoryID
		}

		titles = append(titles, title)
	}

	inserted, err := imp.repo.Title.BulkInsert(ctx, titles, imp.config.BatchSize)
	report.Inserted = int(inserted)
	return report, err
}

func (imp *Importer) importReviews(ctx context.Context, rows []Record) (TagReport, error) {
	var report TagReport
	reviews := make([]*entity.Review, 0, len(rows))

	for _, rec := range rows {
		id, err := parseID(TagReview, rec, "id")
		if err != nil {
			imp.rowFailed(&report, err)
			continue
		}
		titleID, err := parseID(TagReview, rec, "title_id")
		if err != nil {
			imp.rowFailed(&report, err)
			continue
		}
		score, err := parseInt(TagReview, rec, "score")
		if err != nil {
			imp.rowFailed(&report, err)
			continue
		}
		pubDate, err := parsePubDate(TagReview, rec)
		if err != nil {
			imp.rowFailed(&report, err)
			continue
		}

		authorID, err := imp.resolve(ctx, TagReview, rec, "author", "users", imp.userExists)
		if isLookupError(err) {
			imp.rowFailed(&report, err)
			continue
		}
		if err != nil {
			return report, err
		}

		reviews = append(reviews, &entity.Review{
			Contribution: entity.Contribution{
				ID:       id,
				AuthorID: authorID,
				Text:     rec.Get("text"),
				PubDate:  pubDate,
			},
			TitleID: titleID,
			Score:   score,
		})
	}

	inserted, err := imp.repo.Review.BulkInsert(ctx, reviews, imp.config.BatchSize)
	report.Inserted = int(inserted)
	return report, err
}

func (imp *Importer) importComments(ctx context.Context, rows []Record) (TagReport, error) {
	var report TagReport
	comments := make([]*entity.Comment, 0, len(rows))

	for _, rec := range rows {
		id, err := parseID(TagComments, rec, "id")
		if err != nil {
			imp.rowFailed(&report, err)
			continue
		}
		reviewID, err := parseID(TagComments, rec, "review_id")
		if err != nil {
			imp.rowFailed(&report, err)
			continue
		}
		pubDate, err := parsePubDate(TagComments, rec)
		if err != nil {
			imp.rowFailed(&report, err)
			continue
		}

		authorID, err := imp.resolve(ctx, TagComments, rec, "author", "users", imp.userExists)
		if isLookupError(err) {
			imp.rowFailed(&report, err)
			continue
		}
		if err != nil {
			return report, err
		}

		comments = append(comments, &entity.Comment{
			Contribution: entity.Contribution{
				ID:       id,
				AuthorID: authorID,
				Text:     rec.Get("text"),
				PubDate:  pubDate,
			},
			ReviewID: reviewID,
		})
	}

	inserted, err := imp.repo.Comment.BulkInsert(ctx, comments, imp.config.BatchSize)
	report.Inserted = int(inserted)
	return report, err
}

func (imp *Importer) importGenreTitles(ctx context.Context, rows []Record) (TagReport, error) {
	var report TagReport
	links := make([]*entity.TitleGenre, 0, len(rows))

	for _, rec := range rows {
		titleID, err := imp.resolve(ctx, TagGenreTitle, rec, "title_id", "titles", imp.titleExists)
		if isLookupError(err) {
			imp.rowFailed(&report, err)
			continue
		}
		if err != nil {
			return report, err
		}

		genreID, err := imp.resolve(ctx, TagGenreTitle, rec, "genre_id", "genres", imp.genreExists)
		if isLookupError(err) {
			imp.rowFailed(&report, err)
			continue
		}
		if err != nil {
			return report, err
		}

		links = append(links, &entity.TitleGenre{TitleID: titleID, GenreID: genreID})
	}

	inserted, err := imp.repo.TitleGenre.BulkInsert(ctx, links, imp.config.BatchSize)
	report.Inserted = int(inserted)
	return report, err
}
