// file: internal/goodreads/client.go
// version: 1.0.0
// guid: c6d7e8f9-a0b1-2c3d-4e5f-6a7b8c9d0e1f

package goodreads

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/jdfalk/goodreads-metadata/internal/xmltree"
)

// ErrNotFound is returned when a lookup succeeds at the transport level
// but the API has no record for the identifier.
var ErrNotFound = errors.New("goodreads: no matching book")

// DefaultBaseURL is the production Goodreads endpoint.
const DefaultBaseURL = "https://www.goodreads.com"

// defaultRequestsPerSecond matches the Goodreads API terms (1 req/s).
const defaultRequestsPerSecond = 1

// Client talks to the Goodreads web API. Calls block until response or
// timeout; there is no retry.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	limiter    *rate.Limiter
}

// NewClient creates a Goodreads API client with the given key, per-call
// timeout, and client-side rate limit (requests per second; values <= 0
// fall back to the API default of 1).
func NewClient(apiKey string, timeout time.Duration, requestsPerSecond float64) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	if requestsPerSecond <= 0 {
		requestsPerSecond = defaultRequestsPerSecond
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    DefaultBaseURL,
		apiKey:     apiKey,
		limiter:    rate.NewLimiter(rate.Limit(requestsPerSecond), 1),
	}
}

// NewClientWithBaseURL creates a client against a custom base URL (for
// testing). The rate limiter is effectively disabled.
func NewClientWithBaseURL(apiKey, baseURL string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		limiter:    rate.NewLimiter(rate.Inf, 1),
	}
}

// Configured reports whether an API key is set. Lookups are refused
// without one.
func (c *Client) Configured() bool {
	return c.apiKey != ""
}

// BookIDForISBN resolves an ISBN or ASIN to a native Goodreads book id
// via /book/isbn_to_id. An empty body maps to ErrNotFound.
func (c *Client) BookIDForISBN(ctx context.Context, identifier string) (string, error) {
	endpoint := fmt.Sprintf("%s/book/isbn_to_id/%s?key=%s",
		c.baseURL, url.PathEscape(identifier), url.QueryEscape(c.apiKey))
	body, err := c.get(ctx, endpoint)
	if err != nil {
		return "", err
	}
	id := strings.TrimSpace(string(body))
	if id == "" {
		return "", ErrNotFound
	}
	return id, nil
}

// interElementWhitespace matches whitespace runs between adjacent tags.
// Goodreads pretty-prints its XML; squeezing it keeps element text from
// picking up indentation.
var interElementWhitespace = regexp.MustCompile(`>\s+<`)

// ShowBook fetches the full detail record for a native book id and
// parses it into a Book with the given shelf-count threshold.
func (c *Client) ShowBook(ctx context.Context, id string, shelfThreshold int) (*Book, error) {
	endpoint := fmt.Sprintf("%s/book/show/%s.xml?key=%s",
		c.baseURL, url.PathEscape(id), url.QueryEscape(c.apiKey))
	body, err := c.get(ctx, endpoint)
	if err != nil {
		return nil, err
	}

	cleaned := interElementWhitespace.ReplaceAll(body, []byte("><"))
	cleaned = []byte(strings.ReplaceAll(string(cleaned), "\r\n", ""))

	root, err := xmltree.Parse(strings.NewReader(string(cleaned)))
	if err != nil {
		return nil, fmt.Errorf("parse book %s: %w", id, err)
	}
	return NewBook(root, shelfThreshold), nil
}

// Suggestion is one candidate from the autocomplete search.
type Suggestion struct {
	BookID string `json:"bookId"`
	Title  string `json:"title"`
	Author struct {
		Name string `json:"name"`
	} `json:"author"`
}

// Autocomplete runs the fuzzy title/author search. The query should
// already be normalized with SearchTerms. An empty result set is not an
// error.
func (c *Client) Autocomplete(ctx context.Context, query string) ([]Suggestion, error) {
	endpoint := fmt.Sprintf("%s/book/auto_complete?format=json&q=%s", c.baseURL, query)
	body, err := c.get(ctx, endpoint)
	if err != nil {
		return nil, err
	}
	var suggestions []Suggestion
	if err := json.Unmarshal(body, &suggestions); err != nil {
		return nil, fmt.Errorf("decode autocomplete response: %w", err)
	}
	return suggestions, nil
}

func (c *Client) get(ctx context.Context, endpoint string) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("goodreads request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("goodreads API returned status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

// SearchTerms normalizes title and author tokens for the autocomplete
// endpoint: connective words are dropped, hyphens and repeated spaces
// collapse, and the tokens are joined with '+'.
func SearchTerms(title string, authors []string) string {
	terms := title
	if len(authors) > 0 {
		terms += " " + strings.Join(authors, " ")
	}
	terms = strings.ReplaceAll(terms, " and ", " ")
	terms = strings.ReplaceAll(terms, " or ", " ")
	terms = strings.ReplaceAll(terms, " & ", " ")
	terms = strings.ReplaceAll(terms, "-", " ")
	terms = strings.Join(strings.Fields(terms), " ")
	return strings.ReplaceAll(strings.TrimSpace(terms), " ", "+")
}
