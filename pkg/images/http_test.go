package images

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

func TestIsNetworkURL(t *testing.T) {
	if !IsNetworkURL("http://example.com/a.png") {
		t.Error("expected true for http")
	}
	if !IsNetworkURL("https://example.com/a.png") {
		t.Error("expected true for https")
	}
	if IsNetworkURL("a.png") {
		t.Error("expected false for relative path")
	}
	if IsNetworkURL("data:image/png;base64,abc") {
		t.Error("expected false for data URI")
	}
}

func TestHTTPFetcher(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/dot.png":
			w.Write(testPNGBytes(4, 6))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	fetcher := HTTPFetcher(nil)
	w, h, err := GetImageDimensionsWithFetcher(srv.URL+"/dot.png", fetcher)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if w != 4 || h != 6 {
		t.Errorf("expected 4x6, got %dx%d", w, h)
	}

	if _, err := fetcher(srv.URL + "/missing.png"); err == nil {
		t.Error("expected error for 404 response")
	}
	if _, err := fetcher("local.png"); err == nil {
		t.Error("expected error for non-network URI with no fallback")
	}
}

func TestHTTPFetcher_FallsBackToNext(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "disc.png"), testPNGBytes(2, 2), 0644); err != nil {
		t.Fatal(err)
	}

	fetcher := HTTPFetcher(FileFetcher(dir))
	raw, err := fetcher("disc.png")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(raw) == 0 {
		t.Error("expected file bytes through the fallback")
	}
}
