// file: internal/goodreads/book.go
// version: 1.0.0
// guid: d7e8f9a0-b1c2-3d4e-5f6a-7b8c9d0e1f2a

package goodreads

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jdfalk/goodreads-metadata/internal/xmltree"
)

// Book is a read-only projection of one /book/show response. Every
// accessor is computed from the tree on demand; missing or unparseable
// fields come back absent, never as errors. A Book lives for one lookup
// and is discarded after mapping.
type Book struct {
	root           xmltree.Node
	shelfThreshold int
}

// NewBook wraps a parsed response tree. shelfThreshold is the minimum
// popular-shelf count for a shelf name to qualify as a tag.
func NewBook(root xmltree.Node, shelfThreshold int) *Book {
	if shelfThreshold < 0 {
		shelfThreshold = 0
	}
	return &Book{root: root, shelfThreshold: shelfThreshold}
}

// ID returns the native Goodreads book id.
func (b *Book) ID() string {
	id, _ := xmltree.GetText(b.root, "book.id")
	return id
}

// Title returns the raw title, "" when absent.
func (b *Book) Title() string {
	title, _ := xmltree.GetText(b.root, "book.title")
	return title
}

// Authors returns the author names in document order.
func (b *Book) Authors() []string {
	authorsNode := xmltree.Get(b.root, "book.authors")
	if authorsNode == nil {
		return nil
	}
	var names []string
	for _, author := range authorsNode.Children("author") {
		if name, ok := xmltree.GetText(author, "name"); ok {
			names = append(names, name)
		}
	}
	return names
}

// ASIN prefers the Kindle-specific id over the generic ASIN field.
func (b *Book) ASIN() string {
	if asin, ok := xmltree.GetText(b.root, "book.kindle_asin"); ok {
		return asin
	}
	asin, _ := xmltree.GetText(b.root, "book.asin")
	return asin
}

// ISBN prefers the 13-digit field over the 10-digit one.
func (b *Book) ISBN() string {
	if i, ok := xmltree.GetText(b.root, "book.isbn13"); ok {
		return i
	}
	i, _ := xmltree.GetText(b.root, "book.isbn")
	return i
}

// LanguageCode returns the raw language_code field, "" when absent.
func (b *Book) LanguageCode() string {
	code, _ := xmltree.GetText(b.root, "book.language_code")
	return code
}

// Language maps the Goodreads language_code onto the host's ISO 639-2
// vocabulary. Only en-US is recognized; everything else is absent.
func (b *Book) Language() string {
	if b.LanguageCode() == "en-US" {
		return "eng"
	}
	return ""
}

// ImageURL returns the cover image URL, "" when absent.
func (b *Book) ImageURL() string {
	u, _ := xmltree.GetText(b.root, "book.image_url")
	return u
}

// Publisher returns the publisher name, "" when absent.
func (b *Book) Publisher() string {
	p, _ := xmltree.GetText(b.root, "book.publisher")
	return p
}

// Description returns the free-text description, "" when absent.
func (b *Book) Description() string {
	d, _ := xmltree.GetText(b.root, "book.description")
	return d
}

// AverageRating parses book.average_rating; a parse failure is absent.
func (b *Book) AverageRating() (float64, bool) {
	text, ok := xmltree.GetText(b.root, "book.average_rating")
	if !ok {
		return 0, false
	}
	rating, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, false
	}
	return rating, true
}

// Tags collects every popular shelf whose count attribute meets the
// threshold. A missing shelf list yields an empty slice.
func (b *Book) Tags() []string {
	shelves := xmltree.Get(b.root, "book.popular_shelves")
	if shelves == nil {
		return nil
	}
	var tags []string
	for _, shelf := range shelves.Children("shelf") {
		count, err := strconv.Atoi(shelf.Attr("count"))
		if err != nil {
			continue
		}
		if count >= b.shelfThreshold {
			if name := shelf.Attr("name"); name != "" {
				tags = append(tags, name)
			}
		}
	}
	return tags
}

// Series returns the first series title, "" when absent.
func (b *Book) Series() string {
	s, _ := xmltree.GetText(b.root, "book.series_works.series_work.series.title")
	return s
}

// SeriesIndex parses the user_position of the first series work.
// Non-numeric positions are absent; callers treat "series present,
// index absent" as index 0.
func (b *Book) SeriesIndex() (float64, bool) {
	text, ok := xmltree.GetText(b.root, "book.series_works.series_work.user_position")
	if !ok {
		return 0, false
	}
	idx, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, false
	}
	return idx, true
}

// NumPages parses book.num_pages; a parse failure is absent.
func (b *Book) NumPages() (int, bool) {
	text, ok := xmltree.GetText(b.root, "book.num_pages")
	if !ok {
		return 0, false
	}
	pages, err := strconv.Atoi(text)
	if err != nil {
		return 0, false
	}
	return pages, true
}

// PubDate combines the work's original publication year, month and day.
// All three must be textually present and parse as integers; partial
// dates are absent.
func (b *Book) PubDate() (time.Time, bool) {
	yearText, ok := xmltree.GetText(b.root, "book.work.original_publication_year")
	if !ok {
		return time.Time{}, false
	}
	monthText, ok := xmltree.GetText(b.root, "book.work.original_publication_month")
	if !ok {
		return time.Time{}, false
	}
	dayText, ok := xmltree.GetText(b.root, "book.work.original_publication_day")
	if !ok {
		return time.Time{}, false
	}
	year, err := strconv.Atoi(yearText)
	if err != nil {
		return time.Time{}, false
	}
	month, err := strconv.Atoi(monthText)
	if err != nil {
		return time.Time{}, false
	}
	day, err := strconv.Atoi(dayText)
	if err != nil {
		return time.Time{}, false
	}
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, false
	}
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC), true
}

// String renders a one-line debug summary.
func (b *Book) String() string {
	idx, _ := b.SeriesIndex()
	return fmt.Sprintf("title:%s; authors:%s; series:%s; series_index:%g; asin:%s; isbn:%s",
		b.Title(), strings.Join(b.Authors(), " "), b.Series(), idx, b.ASIN(), b.ISBN())
}
