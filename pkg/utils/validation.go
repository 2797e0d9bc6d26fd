package utils

import (
	"fmt"
	"regexp"
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// ReservedUsernames cannot be registered, "me" collides with /users/me.
var ReservedUsernames = []string{"me"}

var (
	usernamePattern        = regexp.MustCompile(`^[\p{L}\p{N}_.@+-]+$`)
	usernameForbiddenChars = regexp.MustCompile(`[^\p{L}\p{N}_.@+-]`)
	slugPattern            = regexp.MustCompile(`^[-a-zA-Z0-9_]+$`)
)

var currentYear = func() int { return time.Now().Year() }

// UsernameError explains why value is not a legal username, or returns nil.
func UsernameError(value string) error {
	if slices.Contains(ReservedUsernames, value) {
		return fmt.Errorf("username %q is reserved", value)
	}
	if !usernamePattern.MatchString(value) {
		seen := map[string]bool{}
		for _, ch := range usernameForbiddenChars.FindAllString(value, -1) {
			seen[ch] = true
		}
		chars := make([]string, 0, len(seen))
		for ch := range seen {
			chars = append(chars, ch)
		}
		sort.Strings(chars)
		return fmt.Errorf("username contains forbidden characters: %s", strings.Join(chars, ""))
	}
	return nil
}

// TitleYearError rejects release years in the future.
func TitleYearError(year int) error {
	if limit := currentYear(); year > limit {
		return fmt.Errorf("year %d is greater than the current year %d", year, limit)
	}
	return nil
}

func IsSlug(value string) bool {
	return slugPattern.MatchString(value)
}

func registerDomainValidations(v *validator.Validate) {
	v.RegisterValidation("username", func(fl validator.FieldLevel) bool {
		return UsernameError(fl.Field().String()) == nil
	})
	v.RegisterValidation("notfuture", func(fl validator.FieldLevel) bool {
		return TitleYearError(int(fl.Field().Int())) == nil
	})
	v.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
		return IsSlug(fl.Field().String())
	})
}
