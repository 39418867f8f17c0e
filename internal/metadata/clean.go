// file: internal/metadata/clean.go
// version: 1.0.0
// guid: 3d4e5f6a-7b8c-9d0e-1f2a-3b4c5d6e7f80

package metadata

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	parenthetical = regexp.MustCompile(`\(.*?\)`)
	bracketed     = regexp.MustCompile(`\[.*?\]`)
)

// smallWords stay lowercase in title case unless first or last.
var smallWords = map[string]bool{
	"a": true, "an": true, "the": true, "and": true, "or": true,
	"nor": true, "but": true, "for": true, "of": true, "on": true,
	"in": true, "to": true, "at": true, "by": true, "with": true,
	"from": true, "as": true,
}

var titleCaser = cases.Title(language.English)

// CleanTitle strips series fragments and bracketed or parenthetical
// annotations out of a downloaded title. Goodreads titles routinely
// carry the series suffix, e.g. "61 Hours (Jack Reacher, #14)".
func CleanTitle(title, series string, seriesIndex float64) string {
	if title == "" {
		return title
	}
	cleaned := title
	if series != "" {
		idx := strconv.FormatFloat(seriesIndex, 'f', -1, 64)
		fragment := `\s*` + regexp.QuoteMeta(series) + `\s*#?` + regexp.QuoteMeta(idx) + `(?:\.0)?\s*`
		if leading, err := regexp.Compile(`(?i)` + fragment + `[:-]`); err == nil {
			cleaned = strings.TrimSpace(leading.ReplaceAllString(cleaned, ""))
		}
		// The prefix before the separator is the real title; only the
		// series fragment after it gets dropped.
		if trailing, err := regexp.Compile(`(?i)([^:-]+)[:-]` + fragment + `$`); err == nil {
			cleaned = strings.TrimSpace(trailing.ReplaceAllString(cleaned, "$1"))
		}
	}
	cleaned = strings.TrimSpace(parenthetical.ReplaceAllString(cleaned, ""))
	cleaned = strings.TrimSpace(bracketed.ReplaceAllString(cleaned, ""))
	if cleaned == "" {
		return strings.TrimSpace(title)
	}
	return cleaned
}

// FixCase applies English title casing. Words that already carry
// interior capitals (acronyms, McNames) are left alone.
func FixCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		if hasInteriorUpper(w) {
			continue
		}
		lower := strings.ToLower(w)
		if smallWords[lower] && i != 0 && i != len(words)-1 {
			words[i] = lower
			continue
		}
		words[i] = titleCaser.String(lower)
	}
	return strings.Join(words, " ")
}

// FixAuthors normalizes author names: whitespace collapsed,
// "Last, First" flipped to "First Last", casing fixed.
func FixAuthors(authors []string) []string {
	var out []string
	for _, a := range authors {
		a = strings.Join(strings.Fields(a), " ")
		if a == "" {
			continue
		}
		if parts := strings.SplitN(a, ",", 2); len(parts) == 2 {
			last := strings.TrimSpace(parts[0])
			first := strings.TrimSpace(parts[1])
			if last != "" && first != "" {
				a = first + " " + last
			}
		}
		out = append(out, FixCase(a))
	}
	return out
}

func hasInteriorUpper(w string) bool {
	for i, r := range w {
		if i > 0 && unicode.IsUpper(r) {
			return true
		}
	}
	return false
}
