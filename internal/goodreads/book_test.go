// file: internal/goodreads/book_test.go
// version: 1.0.0
// guid: 0a1b2c3d-4e5f-6a7b-8c9d-0e1f2a3b4c5d

package goodreads

import (
	"strings"
	"testing"

	"github.com/jdfalk/goodreads-metadata/internal/xmltree"
)

const fullBookXML = `<GoodreadsResponse><book>
<id>7669876</id>
<title>61 Hours (Jack Reacher, #14)</title>
<isbn>0385340583</isbn>
<isbn13>9780385340588</isbn13>
<asin>B00345TRVC</asin>
<kindle_asin>B003P2WO5E</kindle_asin>
<language_code>en-US</language_code>
<image_url>https://images.gr-assets.com/books/1344266315l/7669876.jpg</image_url>
<publisher>Delacorte Press</publisher>
<description>Winter in South Dakota.</description>
<num_pages>383</num_pages>
<average_rating>4.12</average_rating>
<authors><author><id>5091</id><name>Lee Child</name></author></authors>
<popular_shelves>
<shelf name="to-read" count="9182"/>
<shelf name="thriller" count="412"/>
<shelf name="abandoned" count="1"/>
<shelf name="broken" count="notanumber"/>
</popular_shelves>
<series_works><series_work>
<user_position>14</user_position>
<series><title>Jack Reacher</title></series>
</series_work></series_works>
<work>
<original_publication_year>2010</original_publication_year>
<original_publication_month>3</original_publication_month>
<original_publication_day>16</original_publication_day>
</work>
</book></GoodreadsResponse>`

func bookFromXML(t *testing.T, doc string, threshold int) *Book {
	t.Helper()
	root, err := xmltree.Parse(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return NewBook(root, threshold)
}

func TestBookFields(t *testing.T) {
	b := bookFromXML(t, fullBookXML, 2)

	if b.ID() != "7669876" {
		t.Errorf("ID = %q", b.ID())
	}
	if b.Title() != "61 Hours (Jack Reacher, #14)" {
		t.Errorf("Title = %q", b.Title())
	}
	if got := b.Authors(); len(got) != 1 || got[0] != "Lee Child" {
		t.Errorf("Authors = %v", got)
	}
	if b.Publisher() != "Delacorte Press" {
		t.Errorf("Publisher = %q", b.Publisher())
	}
	if b.Description() != "Winter in South Dakota." {
		t.Errorf("Description = %q", b.Description())
	}
	if b.ImageURL() == "" {
		t.Error("expected image URL")
	}
	if b.Language() != "eng" {
		t.Errorf("Language = %q", b.Language())
	}
}

func TestBookISBNPrefers13(t *testing.T) {
	b := bookFromXML(t, fullBookXML, 2)
	if b.ISBN() != "9780385340588" {
		t.Errorf("ISBN = %q, want the isbn13 field", b.ISBN())
	}

	only10 := `<GoodreadsResponse><book><isbn>0385340583</isbn></book></GoodreadsResponse>`
	b = bookFromXML(t, only10, 2)
	if b.ISBN() != "0385340583" {
		t.Errorf("ISBN = %q, want fallback to isbn", b.ISBN())
	}
}

func TestBookASINPrefersKindle(t *testing.T) {
	b := bookFromXML(t, fullBookXML, 2)
	if b.ASIN() != "B003P2WO5E" {
		t.Errorf("ASIN = %q, want kindle_asin", b.ASIN())
	}

	generic := `<GoodreadsResponse><book><asin>B00345TRVC</asin></book></GoodreadsResponse>`
	b = bookFromXML(t, generic, 2)
	if b.ASIN() != "B00345TRVC" {
		t.Errorf("ASIN = %q, want fallback to asin", b.ASIN())
	}
}

func TestBookTags(t *testing.T) {
	b := bookFromXML(t, fullBookXML, 2)
	tags := b.Tags()
	if len(tags) != 2 || tags[0] != "to-read" || tags[1] != "thriller" {
		t.Errorf("Tags = %v, want shelves meeting threshold only", tags)
	}

	// Raising the threshold filters more shelves.
	b = bookFromXML(t, fullBookXML, 1000)
	if tags := b.Tags(); len(tags) != 1 || tags[0] != "to-read" {
		t.Errorf("Tags at threshold 1000 = %v", tags)
	}

	// Missing shelf list yields no tags, not an error.
	b = bookFromXML(t, `<GoodreadsResponse><book/></GoodreadsResponse>`, 2)
	if tags := b.Tags(); len(tags) != 0 {
		t.Errorf("Tags without shelves = %v", tags)
	}
}

func TestBookSeries(t *testing.T) {
	b := bookFromXML(t, fullBookXML, 2)
	if b.Series() != "Jack Reacher" {
		t.Errorf("Series = %q", b.Series())
	}
	idx, ok := b.SeriesIndex()
	if !ok || idx != 14 {
		t.Errorf("SeriesIndex = %v, %v", idx, ok)
	}

	nonNumeric := `<GoodreadsResponse><book><series_works><series_work>
<user_position>one</user_position>
<series><title>Oddities</title></series>
</series_work></series_works></book></GoodreadsResponse>`
	b = bookFromXML(t, nonNumeric, 2)
	if b.Series() != "Oddities" {
		t.Errorf("Series = %q", b.Series())
	}
	if _, ok := b.SeriesIndex(); ok {
		t.Error("non-numeric series index must be absent")
	}
}

func TestBookNumericFieldsFailSoft(t *testing.T) {
	doc := `<GoodreadsResponse><book>
<average_rating>four stars</average_rating>
<num_pages>lots</num_pages>
</book></GoodreadsResponse>`
	b := bookFromXML(t, doc, 2)
	if _, ok := b.AverageRating(); ok {
		t.Error("unparseable rating must be absent")
	}
	if _, ok := b.NumPages(); ok {
		t.Error("unparseable page count must be absent")
	}

	b = bookFromXML(t, fullBookXML, 2)
	if r, ok := b.AverageRating(); !ok || r != 4.12 {
		t.Errorf("AverageRating = %v, %v", r, ok)
	}
	if p, ok := b.NumPages(); !ok || p != 383 {
		t.Errorf("NumPages = %v, %v", p, ok)
	}
}

func TestBookPubDate(t *testing.T) {
	b := bookFromXML(t, fullBookXML, 2)
	d, ok := b.PubDate()
	if !ok {
		t.Fatal("expected pubdate")
	}
	if d.Year() != 2010 || int(d.Month()) != 3 || d.Day() != 16 {
		t.Errorf("PubDate = %v", d)
	}

	// Partial dates never default missing components.
	partial := `<GoodreadsResponse><book><work>
<original_publication_year>2010</original_publication_year>
<original_publication_month>3</original_publication_month>
</work></book></GoodreadsResponse>`
	b = bookFromXML(t, partial, 2)
	if _, ok := b.PubDate(); ok {
		t.Error("partial date must be absent")
	}
}

func TestBookLanguageNonEnglish(t *testing.T) {
	doc := `<GoodreadsResponse><book><language_code>fre</language_code></book></GoodreadsResponse>`
	b := bookFromXML(t, doc, 2)
	if b.Language() != "" {
		t.Errorf("Language = %q, want absent for non en-US", b.Language())
	}
	if b.LanguageCode() != "fre" {
		t.Errorf("LanguageCode = %q", b.LanguageCode())
	}
}

func TestBookString(t *testing.T) {
	b := bookFromXML(t, fullBookXML, 2)
	s := b.String()
	for _, want := range []string{"61 Hours", "Lee Child", "Jack Reacher", "9780385340588"} {
		if !strings.Contains(s, want) {
			t.Errorf("String() missing %q: %s", want, s)
		}
	}
}
