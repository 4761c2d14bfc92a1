package ui

import (
	"strings"
	"testing"

	"cloudnav/internal/names"

	"github.com/stretchr/testify/assert"
)

func siblingSet(ns ...string) map[string]struct{} {
	out := make(map[string]struct{}, len(ns))
	for _, n := range ns {
		out[n] = struct{}{}
	}
	return out
}

func TestCheckFolderName(t *testing.T) {
	v := names.New()
	sibs := siblingSet("docs", "photos", ".git")

	tests := []struct {
		name      string
		candidate string
		problem   NameProblem
		code      names.Code
		canCreate bool
	}{
		{"empty", "", ProblemNone, names.OK, false},
		{"whitespace only", "   ", ProblemNone, names.OK, false},
		{"valid", "music", ProblemNone, names.OK, true},
		{"valid trimmed", "  music ", ProblemNone, names.OK, true},
		{"duplicate", "docs", ProblemExists, names.OK, false},
		{"duplicate after trim", " docs  ", ProblemExists, names.OK, false},
		{"hidden", ".config", ProblemHidden, names.OK, true},
		{"hidden beats duplicate", ".git", ProblemHidden, names.OK, true},
		{"hidden beats format", ".a/b", ProblemHidden, names.OK, true},
		{"format error", "a/b", ProblemInvalid, names.ContainsSeparator, false},
		{"forbidden chars", "what?", ProblemInvalid, names.ForbiddenChars, false},
		{"too long", strings.Repeat("x", 300), ProblemInvalid, names.TooLong, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := CheckFolderName(tt.candidate, sibs, v)
			assert.Equal(t, tt.problem, c.Problem)
			assert.Equal(t, tt.code, c.Code)
			assert.Equal(t, tt.canCreate, c.CanCreate())
		})
	}
}

func TestCheckFolderName_FormatBeatsDuplicate(t *testing.T) {
	v := names.New()
	c := CheckFolderName("bad|name", siblingSet("bad|name"), v)
	assert.Equal(t, ProblemInvalid, c.Problem)
	assert.Equal(t, names.ForbiddenChars.Message(), c.Message())
}

func TestCheckFolderName_EmptySuppressesEverything(t *testing.T) {
	always := names.ValidatorFunc(func(string) names.Code { return names.Reserved })
	c := CheckFolderName("", siblingSet(""), always)
	assert.True(t, c.Empty())
	assert.Equal(t, ProblemNone, c.Problem)
	assert.Empty(t, c.Message())
}

func TestNameCheck_Messages(t *testing.T) {
	assert.Equal(t, hiddenMessage, NameCheck{Name: ".x", Problem: ProblemHidden}.Message())
	assert.True(t, NameCheck{Name: ".x", Problem: ProblemHidden}.IsWarning())
	assert.Equal(t, existsMessage, NameCheck{Name: "x", Problem: ProblemExists}.Message())
	assert.False(t, NameCheck{Name: "x", Problem: ProblemExists}.IsWarning())
	assert.Empty(t, NameCheck{Name: "x"}.Message())
}
