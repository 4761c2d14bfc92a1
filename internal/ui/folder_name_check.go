package ui

import (
	"strings"

	"cloudnav/internal/names"
)

// NameProblem is the inline verdict shown under the folder-name input.
type NameProblem int

const (
	ProblemNone    NameProblem = iota
	ProblemHidden              // warning only; creation stays allowed
	ProblemInvalid             // rejected by the names.Validator
	ProblemExists              // a sibling already has this name
)

// existsMessage is shown when a sibling already uses the name.
const existsMessage = "A file or folder with this name already exists"

// hiddenMessage warns about dot-prefixed names.
const hiddenMessage = "Names starting with . are hidden"

// NameCheck is the result of CheckFolderName.
type NameCheck struct {
	Name    string // trimmed candidate
	Problem NameProblem
	Code    names.Code // set when Problem is ProblemInvalid
}

// Empty reports whether the trimmed candidate is empty.
func (c NameCheck) Empty() bool { return c.Name == "" }

// CanCreate reports whether the Create button should be enabled.
func (c NameCheck) CanCreate() bool {
	if c.Empty() {
		return false
	}
	return c.Problem == ProblemNone || c.Problem == ProblemHidden
}

// IsWarning reports whether the message is advisory.
func (c NameCheck) IsWarning() bool { return c.Problem == ProblemHidden }

// Message returns the text shown under the input, or "" for none.
func (c NameCheck) Message() string {
	switch c.Problem {
	case ProblemHidden:
		return hiddenMessage
	case ProblemInvalid:
		return c.Code.Message()
	case ProblemExists:
		return existsMessage
	default:
		return ""
	}
}

// CheckFolderName classifies candidate against the validator and the names
// already present in the parent folder. An empty candidate reports nothing;
// a leading dot outranks validator errors, which outrank duplicates.
func CheckFolderName(candidate string, siblings map[string]struct{}, v names.Validator) NameCheck {
	c := NameCheck{Name: strings.TrimSpace(candidate)}
	if c.Empty() {
		return c
	}
	if strings.HasPrefix(c.Name, ".") {
		c.Problem = ProblemHidden
		return c
	}
	if code := v.Check(c.Name); code != names.OK {
		c.Problem = ProblemInvalid
		c.Code = code
		return c
	}
	if _, ok := siblings[c.Name]; ok {
		c.Problem = ProblemExists
	}
	return c
}
