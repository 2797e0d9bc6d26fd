package importer

import (
	"errors"
	"fmt"
)

// ConfigurationError: no data directory given and no static files directory configured.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return "import is not configured: " + e.Reason
}

type PathNotFoundError struct {
	Path string
}

func (e *PathNotFoundError) Error() string {
	return fmt.Sprintf("data directory not found: %s", e.Path)
}

// UnexpectedFileError is reported for csv files no handler knows about.
type UnexpectedFileError struct {
	Name string
}

func (e *UnexpectedFileError) Error() string {
	return fmt.Sprintf("unexpected file: %s", e.Name)
}

// DataAlreadyExistsError wraps an integrity violation raised while writing a tag.
type DataAlreadyExistsError struct {
	Tag Tag
	Err error
}

func (e *DataAlreadyExistsError) Error() string {
	return fmt.Sprintf("%s: data already exists in the database: %v", e.Tag, e.Err)
}

func (e *DataAlreadyExistsError) Unwrap() error { return e.Err }

type MissingHandlerError struct {
	Tag Tag
}

func (e *MissingHandlerError) Error() string {
	return fmt.Sprintf("no import handler registered for %s", e.Tag)
}

// LookupError fails a single row whose reference could not be resolved.
type LookupError struct {
	Tag   Tag
	Line  int
	Field string
	Value string
	Err   error
}

func (e *LookupError) Error() string {
	msg := fmt.Sprintf("%s line %d: cannot resolve %s=%q", e.Tag, e.Line, e.Field, e.Value)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *LookupError) Unwrap() error { return e.Err }

// IsFatal reports whether err must stop the import and fail the command.
func IsFatal(err error) bool {
	if err == nil {
		return false
	}

	var (
		unexpected *UnexpectedFileError
		lookup     *LookupError
	)
	if errors.As(err, &unexpected) || errors.As(err, &lookup) {
		return false
	}
	return true
}
