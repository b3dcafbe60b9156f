package images

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const userAgent = "versailles/1.0 (compatible; Go)"

// httpClient is a shared HTTP client with reasonable timeouts.
var httpClient = &http.Client{
	Timeout: 30 * time.Second,
}

// IsNetworkURL reports whether the URI is fetched over HTTP or HTTPS.
func IsNetworkURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

// HTTPFetcher returns a fetcher that retrieves network URIs over HTTP and
// hands everything else to next. A nil next restricts the fetcher to
// network URIs.
func HTTPFetcher(next ImageFetcher) ImageFetcher {
	return func(uri string) ([]byte, error) {
		if !IsNetworkURL(uri) {
			if next != nil {
				return next(uri)
			}
			return nil, fmt.Errorf("unsupported URI scheme: %s", uri)
		}

		req, err := http.NewRequest("GET", uri, nil)
		if err != nil {
			return nil, fmt.Errorf("creating request: %w", err)
		}
		req.Header.Set("User-Agent", userAgent)

		resp, err := httpClient.Do(req)
		if err != nil {
			return nil, fmt.Errorf("fetching %s: %w", uri, err)
		}
		defer resp.Body.Close()

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return nil, fmt.Errorf("HTTP %d fetching %s", resp.StatusCode, uri)
		}

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("reading response body: %w", err)
		}
		return body, nil
	}
}
