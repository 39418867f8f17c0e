// file: internal/metadata/source.go
// version: 1.0.0
// guid: 8c9d0e1f-2a3b-4c5d-6e7f-809102132435

package metadata

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/jdfalk/goodreads-metadata/internal/covers"
	"github.com/jdfalk/goodreads-metadata/internal/goodreads"
)

// ErrUnconfigured is returned when no API key is set; the source
// refuses lookups until it is configured.
var ErrUnconfigured = errors.New("goodreads API key not configured")

// API is the remote capability the source needs; *goodreads.Client
// satisfies it.
type API interface {
	goodreads.IDLookup
	ShowBook(ctx context.Context, id string, shelfThreshold int) (*goodreads.Book, error)
	Configured() bool
}

// Options configures one Source.
type Options struct {
	// ShelfCountThreshold is the minimum popular-shelf count for a
	// shelf to become a tag.
	ShelfCountThreshold int
	// DisableTitleAuthorSearch turns off the fuzzy fallback; only
	// requests carrying identifiers can then match.
	DisableTitleAuthorSearch bool
	// Policy flags for the mapper.
	NeverReplaceAmazonID bool
	NeverReplaceISBN     bool
	ExtraTags            []string
}

// Request is one lookup: optional known identifiers plus optional
// title/authors. The identifier set is read-only.
type Request struct {
	Title       string
	Authors     []string
	Identifiers map[string]string
}

// Source runs the whole lookup: resolve an identifier, fetch the detail
// record once, map it, and deliver the result to a sink. Sources hold
// no per-lookup state and may be shared across goroutines; the cover
// store is the only shared mutable collaborator.
type Source struct {
	api      API
	resolver *goodreads.Resolver
	mapper   *Mapper
	covers   *covers.Store
	opts     Options
}

// NewSource wires a source to its API client and cover store.
func NewSource(api API, store *covers.Store, opts Options) *Source {
	if opts.ShelfCountThreshold <= 0 {
		opts.ShelfCountThreshold = 2
	}
	return &Source{
		api:      api,
		resolver: goodreads.NewResolver(api, opts.DisableTitleAuthorSearch),
		mapper: NewMapper(Policy{
			NeverReplaceAmazonID: opts.NeverReplaceAmazonID,
			NeverReplaceISBN:     opts.NeverReplaceISBN,
			ExtraTags:            opts.ExtraTags,
		}),
		covers: store,
		opts:   opts,
	}
}

// IsConfigured reports whether lookups can run.
func (s *Source) IsConfigured() bool {
	return s.api.Configured()
}

// CoverStore exposes the injected cover store.
func (s *Source) CoverStore() *covers.Store {
	return s.covers
}

// Identify performs one lookup and delivers at most one Metadata record
// to sink. A no-match resolution delivers nothing and returns nil; a
// detail-fetch or parse failure after an id was obtained is logged and
// returned; cancellation surfaces as the context's error.
func (s *Source) Identify(ctx context.Context, req Request, sink func(*Metadata)) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !s.IsConfigured() {
		return ErrUnconfigured
	}

	identifiers := req.Identifiers
	if identifiers == nil {
		identifiers = map[string]string{}
	}

	id, err := s.resolver.Resolve(ctx, identifiers, req.Title, req.Authors)
	if err != nil {
		return err
	}
	if id == "" {
		log.Printf("[INFO] no match for %q", req.Title)
		return nil
	}

	book, err := s.api.ShowBook(ctx, id, s.opts.ShelfCountThreshold)
	if err != nil {
		log.Printf("[ERROR] detail fetch for book %s failed: %v", id, err)
		return fmt.Errorf("fetch book %s: %w", id, err)
	}
	log.Printf("[INFO] matched %s", book)

	mi := s.mapper.FromBook(book, identifiers)
	s.rank(req, mi)
	s.cacheCover(book, identifiers)

	sink(mi)
	return nil
}

// rank scores the mapped title against the requested one. Lower is a
// closer match; an unrankable pair stays at 0.
func (s *Source) rank(req Request, mi *Metadata) {
	if req.Title == "" || mi.Title == "" {
		return
	}
	if distance := fuzzy.RankMatchNormalizedFold(req.Title, mi.Title); distance > 0 {
		mi.Relevance = distance
	}
}

// cacheCover records the book's image URL (and the isbn translation)
// so later cover resolutions need no network access.
func (s *Source) cacheCover(book *goodreads.Book, supplied map[string]string) {
	if s.covers == nil {
		return
	}
	if u := book.ImageURL(); u != "" {
		log.Printf("[INFO] caching cover URL for %s: %s", book.ID(), u)
		s.covers.CacheURL(book.ID(), u)
	}
	if i := supplied["isbn"]; i != "" {
		s.covers.CacheISBNID(i, book.ID())
	}
	if i := book.ISBN(); i != "" {
		s.covers.CacheISBNID(i, book.ID())
	}
}
