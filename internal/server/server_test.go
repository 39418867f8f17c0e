// file: internal/server/server_test.go
// version: 1.0.0
// guid: 5d6e7f80-9102-1324-3546-5768798a9bac

package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jdfalk/goodreads-metadata/internal/covers"
	"github.com/jdfalk/goodreads-metadata/internal/goodreads"
	"github.com/jdfalk/goodreads-metadata/internal/metadata"
	"github.com/jdfalk/goodreads-metadata/internal/xmltree"
)

const serverBookXML = `<GoodreadsResponse><book>
<id>7669876</id>
<title>61 Hours (Jack Reacher, #14)</title>
<isbn13>9780385340588</isbn13>
<image_url>https://images.gr-assets.com/books/1.jpg</image_url>
<authors><author><name>Lee Child</name></author></authors>
</book></GoodreadsResponse>`

type stubAPI struct {
	configured bool
	idFor      map[string]string
	bookXML    string
}

func (f *stubAPI) Configured() bool { return f.configured }

func (f *stubAPI) BookIDForISBN(_ context.Context, identifier string) (string, error) {
	if id, ok := f.idFor[identifier]; ok {
		return id, nil
	}
	return "", goodreads.ErrNotFound
}

func (f *stubAPI) Autocomplete(_ context.Context, _ string) ([]goodreads.Suggestion, error) {
	return nil, nil
}

func (f *stubAPI) ShowBook(_ context.Context, _ string, shelfThreshold int) (*goodreads.Book, error) {
	root, err := xmltree.Parse(strings.NewReader(f.bookXML))
	if err != nil {
		return nil, err
	}
	return goodreads.NewBook(root, shelfThreshold), nil
}

func newTestServer(api *stubAPI) *Server {
	src := metadata.NewSource(api, covers.NewStore(), metadata.Options{})
	return NewServer(src)
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(&stubAPI{configured: true})
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestIdentifyEndpoint(t *testing.T) {
	srv := newTestServer(&stubAPI{
		configured: true,
		idFor:      map[string]string{"9780385340588": "7669876"},
		bookXML:    serverBookXML,
	})

	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/identify?isbn=9780385340588", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var mi metadata.Metadata
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &mi))
	assert.Equal(t, "61 Hours", mi.Title)
	assert.Equal(t, []string{"Lee Child"}, mi.Authors)
	assert.Equal(t, "7669876", mi.Identifiers["goodreads"])
}

func TestIdentifyEndpointNoMatch(t *testing.T) {
	srv := newTestServer(&stubAPI{configured: true})
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/identify?isbn=0000000000", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestIdentifyEndpointUnconfigured(t *testing.T) {
	srv := newTestServer(&stubAPI{configured: false})
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/identify?isbn=9780385340588", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestCoverEndpoint(t *testing.T) {
	srv := newTestServer(&stubAPI{
		configured: true,
		idFor:      map[string]string{"9780385340588": "7669876"},
		bookXML:    serverBookXML,
	})

	// Populate the cover cache through an identify call.
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/identify?isbn=9780385340588", nil))
	require.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	srv.Router().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/cover?goodreads=7669876", nil))
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "https://images.gr-assets.com/books/1.jpg", w.Header().Get("Location"))
}

func TestCoverEndpointMiss(t *testing.T) {
	srv := newTestServer(&stubAPI{configured: true})
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/cover?goodreads=42", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}
