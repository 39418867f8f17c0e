// file: internal/covers/download.go
// version: 1.0.0
// guid: 6a7b8c9d-0e1f-2a3b-4c5d-6e7f80910213

package covers

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Download is the cover image stream returned by Open. The caller must
// Close the Body.
type Download struct {
	Body          io.ReadCloser
	ContentLength int64
	Extension     string
}

// Open starts downloading a cover image. It rejects non-image content
// types and honors ctx for cancellation. Cover fetching is plain HTTP;
// resolution of the URL itself happens through the Store beforehand.
func Open(ctx context.Context, coverURL string, timeout time.Duration) (*Download, error) {
	if coverURL == "" {
		return nil, fmt.Errorf("empty cover URL")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	client := &http.Client{Timeout: timeout}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, coverURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to download cover: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("cover download returned status %d", resp.StatusCode)
	}
	contentType := resp.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		resp.Body.Close()
		return nil, fmt.Errorf("unexpected content type: %s", contentType)
	}

	return &Download{
		Body:          resp.Body,
		ContentLength: resp.ContentLength,
		Extension:     extensionFromContentType(contentType),
	}, nil
}

func extensionFromContentType(ct string) string {
	ct = strings.ToLower(ct)
	switch {
	case strings.Contains(ct, "png"):
		return ".png"
	case strings.Contains(ct, "gif"):
		return ".gif"
	case strings.Contains(ct, "webp"):
		return ".webp"
	default:
		return ".jpg"
	}
}
