// file: internal/goodreads/resolver.go
// version: 1.0.0
// guid: e8f9a0b1-c2d3-4e5f-6a7b-8c9d0e1f2a3b

package goodreads

import (
	"context"
	"log"
)

// IDLookup is the remote capability the resolver needs; *Client
// satisfies it. Network failures on these calls are soft: the resolver
// falls through to the next candidate source.
type IDLookup interface {
	BookIDForISBN(ctx context.Context, identifier string) (string, error)
	Autocomplete(ctx context.Context, query string) ([]Suggestion, error)
}

// Resolver determines which native book id to fetch details for,
// trying candidate identifier sources in a fixed order and
// short-circuiting on the first success:
//
//  1. an amazon identifier, resolved remotely
//  2. a goodreads identifier, used directly
//  3. an isbn identifier, resolved remotely
//  4. a normalized title/author autocomplete search, unless disabled
//
// When nothing resolves the outcome is "no match", not an error.
type Resolver struct {
	api                      IDLookup
	disableTitleAuthorSearch bool
}

// NewResolver wires a resolver to its remote lookup.
func NewResolver(api IDLookup, disableTitleAuthorSearch bool) *Resolver {
	return &Resolver{api: api, disableTitleAuthorSearch: disableTitleAuthorSearch}
}

// Resolve returns the native book id, or "" when no source matched.
// The only error returned is context cancellation, observed at entry.
func (r *Resolver) Resolve(ctx context.Context, identifiers map[string]string, title string, authors []string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if amazon := identifiers["amazon"]; amazon != "" {
		log.Printf("[INFO] resolving amazon id %s", amazon)
		id, err := r.api.BookIDForISBN(ctx, amazon)
		if err == nil && id != "" {
			return id, nil
		}
		if err != nil {
			log.Printf("[WARN] amazon id lookup failed, trying next source: %v", err)
		}
	}

	if id := identifiers["goodreads"]; id != "" {
		return id, nil
	}

	if isbn := identifiers["isbn"]; isbn != "" {
		log.Printf("[INFO] resolving isbn %s", isbn)
		id, err := r.api.BookIDForISBN(ctx, isbn)
		if err == nil && id != "" {
			return id, nil
		}
		if err != nil {
			log.Printf("[WARN] isbn lookup failed, trying next source: %v", err)
		}
	}

	if title != "" && !r.disableTitleAuthorSearch {
		query := SearchTerms(title, authors)
		log.Printf("[INFO] autocomplete search: %s", query)
		suggestions, err := r.api.Autocomplete(ctx, query)
		if err != nil {
			log.Printf("[WARN] autocomplete search failed: %v", err)
			return "", nil
		}
		if len(suggestions) > 0 {
			return suggestions[0].BookID, nil
		}
	}

	return "", nil
}
