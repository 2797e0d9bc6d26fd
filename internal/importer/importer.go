// Package importer loads the CSV seed data set into the database.
package importer

import (
	"bufio"
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"yamdb/internal/data/repository"

	"go.uber.org/zap"
)

type Tag string

const (
	TagUsers      Tag = "users"
	TagCategory   Tag = "category"
	TagGenre      Tag = "genre"
	TagTitles     Tag = "titles"
	TagReview     Tag = "review"
	TagComments   Tag = "comments"
	TagGenreTitle Tag = "genre_title"
)

// CommitOrder lists tags so that referenced rows are written first.
var CommitOrder = []Tag{
	TagUsers,
	TagCategory,
	TagGenre,
	TagTitles,
	TagReview,
	TagComments,
	TagGenreTitle,
}

// Record is one CSV row keyed by header name.
type Record struct {
	Line   int
	Fields map[string]string
}

func (r Record) Get(field string) string {
	return strings.TrimSpace(r.Fields[field])
}

// HandlerFunc writes the rows of one tag and reports what happened.
type HandlerFunc func(ctx context.Context, rows []Record) (TagReport, error)

type Config struct {
	// DataDir overrides StaticFilesDir/data.
	DataDir        string
	StaticFilesDir string
	BatchSize      int
}

type TagReport struct {
	Tag      Tag `json:"tag"`
	Parsed   int `json:"parsed"`
	Inserted int `json:"inserted"`
	Failed   int `json:"failed"`
}

type Report struct {
	Dir     string      `json:"dir"`
	Tags    []TagReport `json:"tags"`
	Skipped []string    `json:"skipped,omitempty"`
}

type Importer struct {
	config   Config
	repo     *repository.Repository
	handlers map[Tag]HandlerFunc
	log      *zap.Logger

	// existence of referenced rows, "table:id" -> found
	seen map[string]bool
}

func NewImporter(config Config, repo *repository.Repository, log *zap.Logger) (*Importer, error) {
	imp := &Importer{
		config: config,
		repo:   repo,
		log:    log.With(zap.String("component", "importer")),
		seen:   make(map[string]bool),
	}

	err := imp.register(map[Tag]HandlerFunc{
		TagUsers:      imp.importUsers,
		TagCategory:   imp.importCategories,
		TagGenre:      imp.importGenres,
		TagTitles:     imp.importTitles,
		TagReview:     imp.importReviews,
		TagComments:   imp.importComments,
		TagGenreTitle: imp.importGenreTitles,
	})
	if err != nil {
		return nil, err
	}
	return imp, nil
}

// register fails unless every tag in CommitOrder has a handler.
func (imp *Importer) register(handlers map[Tag]HandlerFunc) error {
	for _, tag := range CommitOrder {
		if handlers[tag] == nil {
			return &MissingHandlerError{Tag: tag}
		}
	}
	imp.handlers = handlers
	return nil
}

func (imp *Importer) resolveDir() (string, error) {
	dir := imp.config.DataDir
	if dir == "" {
		if imp.config.StaticFilesDir == "" {
			return "", &ConfigurationError{Reason: "STATICFILES_DIR is not set and no directory was given"}
		}
		dir = filepath.Join(imp.config.StaticFilesDir, "data")
	}

	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return "", &PathNotFoundError{Path: dir}
	}
	return dir, nil
}

// Run parses every csv file in the data directory and writes the tags in
// CommitOrder. Tags written before a fatal error stay committed.
func (imp *Importer) Run(ctx context.Context) (*Report, error) {
	dir, err := imp.resolveDir()
	if err != nil {
		return nil, err
	}

	report := &Report{Dir: dir}
	imp.seen = make(map[string]bool)

	staged, err := imp.stage(dir, report)
	if err != nil {
		return report, err
	}

	for _, tag := range CommitOrder {
		rows, ok := staged[tag]
		if !ok {
			continue
		}

		tagReport, err := imp.handlers[tag](ctx, rows)
		tagReport.Tag = tag
		tagReport.Parsed = len(rows)
		report.Tags = append(report.Tags, tagReport)

		if err != nil {
			if errors.Is(err, repository.ErrIntegrityViolation) || errors.Is(err, repository.ErrUniqueViolation) {
				err = &DataAlreadyExistsError{Tag: tag, Err: err}
			}
			imp.log.Error("Import aborted", zap.Error(err), zap.String("tag", string(tag)))
			return report, err
		}

		imp.log.Info("Imported",
			zap.String("tag", string(tag)),
			zap.Int("parsed", tagReport.Parsed),
			zap.Int("inserted", tagReport.Inserted),
			zap.Int("failed", tagReport.Failed),
		)
	}

	return report, nil
}

// stage reads all csv files of dir keyed by tag.
func (imp *Importer) stage(dir string, report *Report) (map[Tag][]Record, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read data directory %s: %w", dir, err)
	}

	staged := make(map[Tag][]Record)
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".csv") {
			continue
		}

		tag := Tag(strings.TrimSuffix(name, ".csv"))
		if _, known := imp.handlers[tag]; !known {
			imp.log.Warn("Skipping file", zap.Error(&UnexpectedFileError{Name: name}))
			report.Skipped = append(report.Skipped, name)
			continue
		}

		rows, err := readCSV(filepath.Join(dir, name))
		if err != nil {
			imp.log.Error("Skipping unreadable file", zap.Error(err), zap.String("file", name))
			report.Skipped = append(report.Skipped, name)
			continue
		}
		staged[tag] = rows
	}

	return staged, nil
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// skipBOM drops a leading UTF-8 byte order mark before the csv parser sees
// it, a quoted first header would otherwise be a parse error.
func skipBOM(r *bufio.Reader) error {
	head, err := r.Peek(len(utf8BOM))
	if err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	if bytes.Equal(head, utf8BOM) {
		_, err = r.Discard(len(utf8BOM))
		return err
	}
	return nil
}

func readCSV(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	br := bufio.NewReader(f)
	if err := skipBOM(br); err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	r := csv.NewReader(br)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read header of %s: %w", path, err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	var records []Record
	for {
		values, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}

		line, _ := r.FieldPos(0)
		fields := make(map[string]string, len(header))
		for i, name := range header {
			if i < len(values) {
				fields[name] = values[i]
			}
		}
		records = append(records, Record{Line: line, Fields: fields})
	}

	return records, nil
}
