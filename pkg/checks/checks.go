// Package checks validates arguments handed to entity constructors and action builders.
//
// Every check returns a *Error that matches ErrIllegalArgument under errors.Is, so callers can
// tell local validation failures apart from permission or server-side errors.
package checks

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

// ErrIllegalArgument is the sentinel matched by every *Error.
var ErrIllegalArgument = errors.New("illegal argument")

// Error describes a rejected argument.
type Error struct {
	Name   string
	Reason string
}

func (e *Error) Error() string {
	if e.Name == "" {
		return e.Reason
	}
	return e.Name + " " + e.Reason
}

// Is reports whether target is ErrIllegalArgument.
func (e *Error) Is(target error) bool {
	return target == ErrIllegalArgument
}

func fail(name, format string, args ...any) error {
	return &Error{Name: name, Reason: fmt.Sprintf(format, args...)}
}

var validate = sync.OnceValue(func() *validator.Validate {
	return validator.New(validator.WithRequiredStructEnabled())
})

// Check fails with the formatted message when cond is false.
func Check(cond bool, format string, args ...any) error {
	if cond {
		return nil
	}
	return fail("", format, args...)
}

// NotEmpty rejects the empty string.
func NotEmpty(s, name string) error {
	if s == "" {
		return fail(name, "may not be empty")
	}
	return nil
}

// NotBlank rejects strings that are empty or only whitespace.
func NotBlank(s, name string) error {
	if strings.TrimSpace(s) == "" {
		return fail(name, "may not be blank")
	}
	return nil
}

// NotLonger rejects strings with more than max runes.
func NotLonger(s string, max int, name string) error {
	if n := utf8.RuneCountInString(s); n > max {
		return fail(name, "may not be longer than %d characters (provided: %d)", max, n)
	}
	return nil
}

// InRange rejects strings whose rune count is outside [min, max].
func InRange(s string, min, max int, name string) error {
	if n := utf8.RuneCountInString(s); n < min || n > max {
		return fail(name, "must be between %d and %d characters long (provided: %d)", min, max, n)
	}
	return nil
}

// Between rejects n outside [lo, hi].
func Between[N int | int64 | float64](n, lo, hi N, name string) error {
	if n < lo || n > hi {
		return fail(name, "must be between %v and %v (provided: %v)", lo, hi, n)
	}
	return nil
}

// Positive rejects n <= 0.
func Positive[N int | int64 | float64](n N, name string) error {
	if n <= 0 {
		return fail(name, "must be positive (provided: %v)", n)
	}
	return nil
}

// NotNegative rejects n < 0.
func NotNegative[N int | int64 | float64](n N, name string) error {
	if n < 0 {
		return fail(name, "may not be negative (provided: %v)", n)
	}
	return nil
}

// NoWhitespace rejects strings containing any whitespace rune.
func NoWhitespace(s, name string) error {
	if strings.IndexFunc(s, unicode.IsSpace) >= 0 {
		return fail(name, "may not contain whitespace (provided: %q)", s)
	}
	return nil
}

// Matches rejects strings not matching re.
func Matches(s string, re *regexp.Regexp, name string) error {
	if !re.MatchString(s) {
		return fail(name, "must match regex %s (provided: %q)", re, s)
	}
	return nil
}

// Lowercase rejects strings containing upper-case letters.
func Lowercase(s, name string) error {
	if strings.ToLower(s) != s {
		return fail(name, "must be lowercase (provided: %q)", s)
	}
	return nil
}

// URL rejects strings that are not absolute URLs.
func URL(s, name string) error {
	if err := validate().Var(s, "required,url"); err != nil {
		return fail(name, "must be a valid url (provided: %q)", s)
	}
	return nil
}

// HTTPURL rejects strings that are not http(s) or attachment:// URLs, the schemes Discord
// accepts for embed resources.
func HTTPURL(s, name string) error {
	if strings.HasPrefix(s, "attachment://") && len(s) > len("attachment://") {
		return nil
	}
	if err := validate().Var(s, "required,http_url"); err != nil {
		return fail(name, "must be a valid http(s) or attachment url (provided: %q)", s)
	}
	return nil
}

// NotEmptySlice rejects empty slices.
func NotEmptySlice[T any](s []T, name string) error {
	if len(s) == 0 {
		return fail(name, "may not be empty")
	}
	return nil
}

// NotMore rejects slices with more than max elements.
func NotMore[T any](s []T, max int, name string) error {
	if len(s) > max {
		return fail(name, "may not have more than %d elements (provided: %d)", max, len(s))
	}
	return nil
}
