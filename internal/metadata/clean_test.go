// file: internal/metadata/clean_test.go
// version: 1.0.0
// guid: 9d0e1f2a-3b4c-5d6e-7f80-910213243546

package metadata

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanTitleStripsParenthetical(t *testing.T) {
	got := CleanTitle("61 Hours (Jack Reacher, #14)", "Jack Reacher", 14)
	assert.Equal(t, "61 Hours", got)
}

func TestCleanTitleStripsBracketed(t *testing.T) {
	got := CleanTitle("61 Hours [Large Print Edition]", "", 0)
	assert.Equal(t, "61 Hours", got)
}

func TestCleanTitleStripsLeadingSeriesFragment(t *testing.T) {
	got := CleanTitle("Jack Reacher #14: 61 Hours", "Jack Reacher", 14)
	assert.Equal(t, "61 Hours", got)
}

func TestCleanTitleStripsTrailingSeriesFragment(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"61 Hours: Jack Reacher #14", "61 Hours"},
		{"61 Hours - Jack Reacher #14", "61 Hours"},
		{"61 Hours - Jack Reacher 14.0", "61 Hours"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CleanTitle(tt.in, "Jack Reacher", 14), "CleanTitle(%q)", tt.in)
	}
}

func TestCleanTitleNeverEmptiesNonEmptyInput(t *testing.T) {
	// A title that is nothing but the series fragment keeps its
	// original text rather than cleaning down to "".
	got := CleanTitle("Jack Reacher #14", "Jack Reacher", 14)
	assert.Equal(t, "Jack Reacher #14", got)

	got = CleanTitle("(Jack Reacher, #14)", "Jack Reacher", 14)
	assert.Equal(t, "(Jack Reacher, #14)", got)
}

func TestCleanTitleWithoutSeries(t *testing.T) {
	got := CleanTitle("Plain Title", "", 0)
	assert.Equal(t, "Plain Title", got)
}

func TestCleanTitleEmpty(t *testing.T) {
	assert.Equal(t, "", CleanTitle("", "Series", 1))
}

func TestFixCase(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"the lord of the rings", "The Lord of the Rings"},
		{"A TALE OF TWO CITIES", "A TALE OF TWO CITIES"}, // all-caps words left alone
		{"war and peace", "War and Peace"},
		{"of mice and men", "Of Mice and Men"},
		{"the stand", "The Stand"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FixCase(tt.in), "FixCase(%q)", tt.in)
	}
}

func TestFixAuthors(t *testing.T) {
	got := FixAuthors([]string{"  lee   child ", "Child, Lee", "Tolkien, J.R.R.", ""})
	assert.Equal(t, []string{"Lee Child", "Lee Child", "J.R.R. Tolkien"}, got)
}

func TestFixAuthorsPreservesInitials(t *testing.T) {
	got := FixAuthors([]string{"J.K. Rowling"})
	assert.Equal(t, []string{"J.K. Rowling"}, got)
}
