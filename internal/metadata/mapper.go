// file: internal/metadata/mapper.go
// version: 1.0.0
// guid: 4e5f6a7b-8c9d-0e1f-2a3b-4c5d6e7f8091

package metadata

import (
	"log"
	"strings"

	"github.com/jdfalk/goodreads-metadata/internal/goodreads"
	"github.com/jdfalk/goodreads-metadata/internal/isbn"
)

// Policy holds the normalization flags applied while mapping a book
// record into host metadata.
type Policy struct {
	// NeverReplaceAmazonID keeps the host's amazon identifier untouched.
	NeverReplaceAmazonID bool
	// NeverReplaceISBN keeps the host's isbn identifier untouched; when
	// the input set already carries one, the output's isbn is cleared
	// rather than replaced.
	NeverReplaceISBN bool
	// ExtraTags are unioned into every successful result.
	ExtraTags []string
}

// Mapper converts a Goodreads book record into generic Metadata.
type Mapper struct {
	policy Policy
}

// NewMapper creates a mapper with the given policy.
func NewMapper(policy Policy) *Mapper {
	return &Mapper{policy: policy}
}

// FromBook builds the host metadata for one book record. supplied is
// the caller's identifier set; it is read, never mutated.
func (m *Mapper) FromBook(book *goodreads.Book, supplied map[string]string) *Metadata {
	mi := &Metadata{
		Title:   book.Title(),
		Authors: book.Authors(),
	}
	mi.SetIdentifier("goodreads", book.ID())

	if asin := book.ASIN(); asin != "" && !m.policy.NeverReplaceAmazonID {
		mi.SetIdentifier("amazon", asin)
	}

	m.applyISBN(mi, book, supplied)

	if publisher := book.Publisher(); publisher != "" {
		mi.Publisher = publisher
	}
	if description := book.Description(); description != "" {
		mi.Comments = description
	}
	if rating, ok := book.AverageRating(); ok {
		mi.Rating = rating
	}
	if pubdate, ok := book.PubDate(); ok {
		d := pubdate
		mi.PubDate = &d
	}
	if lang := book.Language(); lang != "" {
		mi.Language = lang
	}
	if u := book.ImageURL(); u != "" {
		mi.CoverURL = u
	}

	if series := book.Series(); series != "" {
		mi.Series = series
		// Series present without an index means index 0.
		if idx, ok := book.SeriesIndex(); ok {
			mi.SeriesIndex = idx
		} else {
			mi.SeriesIndex = 0
		}
	}

	mi.Tags = unionTags(m.policy.ExtraTags, book.Tags())

	m.clean(mi, book.LanguageCode())
	return mi
}

// applyISBN commits the record's ISBN in 13-digit form, unless policy
// forbids overwriting or the value fails validation. A conversion
// failure is logged and the field left unset; it never fails the
// mapping.
func (m *Mapper) applyISBN(mi *Metadata, book *goodreads.Book, supplied map[string]string) {
	if m.policy.NeverReplaceISBN {
		if supplied["isbn"] != "" {
			mi.SetIdentifier("isbn", "")
		}
		return
	}
	raw := book.ISBN()
	if raw == "" {
		return
	}
	thirteen, err := isbn.To13(raw)
	if err != nil {
		log.Printf("[ERROR] ISBN conversion failed for %q: %v", raw, err)
		return
	}
	if !isbn.IsValid13(thirteen) {
		log.Printf("[ERROR] converted ISBN %q failed validation", thirteen)
		return
	}
	mi.SetIdentifier("isbn", thirteen)
}

// clean trims series fragments and annotations from the title and
// normalizes casing. Casing is skipped when the record's language code
// indicates a non-English original title.
func (m *Mapper) clean(mi *Metadata, languageCode string) {
	mi.Title = CleanTitle(mi.Title, mi.Series, mi.SeriesIndex)
	if isEnglish(languageCode) {
		mi.Title = FixCase(mi.Title)
	}
	mi.Authors = FixAuthors(mi.Authors)
}

func isEnglish(languageCode string) bool {
	// An absent language code does not indicate a non-English title.
	return languageCode == "" || strings.HasPrefix(languageCode, "en")
}

func unionTags(extra, shelves []string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, group := range [][]string{extra, shelves} {
		for _, tag := range group {
			tag = strings.TrimSpace(tag)
			if tag == "" || seen[tag] {
				continue
			}
			seen[tag] = true
			out = append(out, tag)
		}
	}
	return out
}
