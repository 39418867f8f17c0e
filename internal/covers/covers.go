// file: internal/covers/covers.go
// version: 1.0.0
// guid: 5f6a7b8c-9d0e-1f2a-3b4c-5d6e7f809102

// Package covers resolves cached cover-image URLs for identifier sets.
// The store is populated as a side effect of identify lookups; cover
// resolution itself never touches the network.
package covers

import (
	"github.com/jdfalk/goodreads-metadata/internal/cache"
)

// Store maps identifiers to cover URLs. It is owned by the host and
// shared across concurrent lookups; the underlying caches carry their
// own locking.
type Store struct {
	urls *cache.Cache[string] // goodreads id -> cover URL
	ids  *cache.Cache[string] // isbn -> goodreads id
}

// NewStore creates an empty cover store. Entries do not expire.
func NewStore() *Store {
	return &Store{
		urls: cache.New[string](0),
		ids:  cache.New[string](0),
	}
}

// CacheURL records the cover URL identified for a native book id.
func (s *Store) CacheURL(bookID, coverURL string) {
	if bookID == "" || coverURL == "" {
		return
	}
	s.urls.Set(bookID, coverURL)
}

// CacheISBNID records the isbn -> native id translation.
func (s *Store) CacheISBNID(isbn, bookID string) {
	if isbn == "" || bookID == "" {
		return
	}
	s.ids.Set(isbn, bookID)
}

// CachedURL resolves a cover URL for the identifier set: a native id is
// looked up directly; failing that, an isbn is first translated to a
// native id through the same cache. Returns "" when nothing is cached —
// no network access is attempted.
func (s *Store) CachedURL(identifiers map[string]string) string {
	if id := identifiers["goodreads"]; id != "" {
		if u, ok := s.urls.Get(id); ok {
			return u
		}
	}
	if isbn := identifiers["isbn"]; isbn != "" {
		if id, ok := s.ids.Get(isbn); ok {
			if u, ok := s.urls.Get(id); ok {
				return u
			}
		}
	}
	return ""
}
