// Package names checks whether a string is usable as a file or folder name
// in any cloudnav backend.
package names

import (
	"strconv"
	"strings"
	"unicode"
)

// DefaultMaxLength is the longest name, in bytes, that every backend accepts.
const DefaultMaxLength = 255

// DefaultForbidden lists characters rejected by at least one backend.
const DefaultForbidden = `\:*?"<>|`

// Code classifies a name.
type Code int

const (
	OK Code = iota
	Empty
	Reserved
	ContainsSeparator
	ForbiddenChars
	TooLong
	TrailingSpaceOrDot
)

func (c Code) String() string {
	switch c {
	case OK:
		return "OK"
	case Empty:
		return "Empty"
	case Reserved:
		return "Reserved"
	case ContainsSeparator:
		return "ContainsSeparator"
	case ForbiddenChars:
		return "ForbiddenChars"
	case TooLong:
		return "TooLong"
	case TrailingSpaceOrDot:
		return "TrailingSpaceOrDot"
	default:
		return "Code(" + strconv.Itoa(int(c)) + ")"
	}
}

// Message returns the user-facing text for c.
func (c Code) Message() string {
	switch c {
	case OK:
		return ""
	case Empty:
		return "Name cannot be empty"
	case Reserved:
		return "Name is reserved"
	case ContainsSeparator:
		return "Name cannot contain /"
	case ForbiddenChars:
		return "Name contains characters that are not allowed"
	case TooLong:
		return "Name is too long"
	case TrailingSpaceOrDot:
		return "Name cannot end with a space or a period"
	default:
		return "Invalid name"
	}
}

// Validator classifies candidate names.
type Validator interface {
	Check(name string) Code
}

// ValidatorFunc adapts a function to Validator.
type ValidatorFunc func(name string) Code

func (f ValidatorFunc) Check(name string) Code { return f(name) }

// Rules is the default Validator.
type Rules struct {
	maxLength int
	forbidden string
}

// Ensure Rules implements Validator.
var _ Validator = (*Rules)(nil)

// Option configures Rules.
type Option func(*Rules)

// WithMaxLength overrides DefaultMaxLength.
func WithMaxLength(n int) Option {
	return func(r *Rules) { r.maxLength = n }
}

// WithForbidden overrides DefaultForbidden.
func WithForbidden(chars string) Option {
	return func(r *Rules) { r.forbidden = chars }
}

// New returns Rules with the given options applied over the defaults.
func New(opts ...Option) *Rules {
	r := &Rules{maxLength: DefaultMaxLength, forbidden: DefaultForbidden}
	for _, o := range opts {
		o(r)
	}
	return r
}

// Check classifies name. The first failing rule wins.
func (r *Rules) Check(name string) Code {
	if name == "" {
		return Empty
	}
	if name == "." || name == ".." {
		return Reserved
	}
	if strings.Contains(name, "/") {
		return ContainsSeparator
	}
	if strings.ContainsAny(name, r.forbidden) || strings.IndexFunc(name, unicode.IsControl) >= 0 {
		return ForbiddenChars
	}
	if r.maxLength > 0 && len(name) > r.maxLength {
		return TooLong
	}
	if strings.HasSuffix(name, " ") || strings.HasSuffix(name, ".") {
		return TrailingSpaceOrDot
	}
	return OK
}
