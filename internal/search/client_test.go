// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/pdiddy/mention-scan/pkg/types"
)

const sampleSearchJSON = `{
  "success": true,
  "data": {
    "totalHits": 42,
    "hits": [
      {
        "content_preview": "…Jeffrey Epstein attended the…",
        "content": "full page text",
        "file_path": "/dataset/vol1/doc-0001.pdf"
      },
      {
        "content_preview": "",
        "content": "second occurrence with no preview",
        "file_path": "/dataset/vol2/doc-0002.pdf"
      }
    ]
  }
}`

func searchTestServer(statusCode int, body string) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(statusCode)
		fmt.Fprint(w, body)
	}))
}

func testCfg(baseURL string) types.SearchConfig {
	return types.SearchConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   5 * time.Second,
			UserAgent: "mention-scan/test",
		},
		BaseURL: baseURL,
		Indexes: "epstein_files",
	}
}

func TestClientLookup(t *testing.T) {
	var gotQuery, gotIndexes, gotUA string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		gotIndexes = r.URL.Query().Get("indexes")
		gotUA = r.Header.Get("User-Agent")
		fmt.Fprint(w, sampleSearchJSON)
	}))
	defer ts.Close()

	c := NewClient(testCfg(ts.URL))
	out := c.Lookup(context.Background(), types.Contact{FirstName: "Jeffrey", LastName: "Epstein"})

	if out.Failed() {
		t.Fatalf("Lookup failed: %s", out.Err)
	}
	// Exact-phrase query: the full name wrapped in double quotes.
	if gotQuery != `"Jeffrey Epstein"` {
		t.Errorf("q = %q, want quoted full name", gotQuery)
	}
	if gotIndexes != "epstein_files" {
		t.Errorf("indexes = %q, want epstein_files", gotIndexes)
	}
	if gotUA != "mention-scan/test" {
		t.Errorf("User-Agent = %q", gotUA)
	}

	if out.TotalHits != 42 {
		t.Errorf("TotalHits = %d, want 42", out.TotalHits)
	}
	if len(out.Hits) != 2 {
		t.Fatalf("len(Hits) = %d, want 2", len(out.Hits))
	}
	if out.Hits[0].SourceID != "/dataset/vol1/doc-0001.pdf" {
		t.Errorf("SourceID = %q", out.Hits[0].SourceID)
	}
	if out.Hits[0].Snippet != "…Jeffrey Epstein attended the…" {
		t.Errorf("Snippet = %q, want the preview", out.Hits[0].Snippet)
	}
	// No preview → snippet falls back to the content.
	if out.Hits[1].Snippet != "second occurrence with no preview" {
		t.Errorf("Snippet = %q, want content fallback", out.Hits[1].Snippet)
	}
	if !out.Matched() {
		t.Error("Matched() = false, want true")
	}
}

func TestClientLookupSnippetBounded(t *testing.T) {
	long := strings.Repeat("x", 2*maxSnippetLen)
	body := fmt.Sprintf(`{"success":true,"data":{"totalHits":1,"hits":[{"content_preview":"","content":%q,"file_path":"/f.pdf"}]}}`, long)

	ts := searchTestServer(http.StatusOK, body)
	defer ts.Close()

	c := NewClient(testCfg(ts.URL))
	out := c.Lookup(context.Background(), types.Contact{FirstName: "A", LastName: "B"})
	if out.Failed() {
		t.Fatalf("Lookup failed: %s", out.Err)
	}
	if len(out.Hits[0].Snippet) != maxSnippetLen {
		t.Errorf("len(Snippet) = %d, want %d", len(out.Hits[0].Snippet), maxSnippetLen)
	}
}

func TestClientLookupZeroHits(t *testing.T) {
	ts := searchTestServer(http.StatusOK, `{"success":true,"data":{"totalHits":0,"hits":[]}}`)
	defer ts.Close()

	c := NewClient(testCfg(ts.URL))
	out := c.Lookup(context.Background(), types.Contact{FirstName: "John", LastName: "Doe"})

	if out.Failed() {
		t.Fatalf("zero hits must be a success, got failure: %s", out.Err)
	}
	if out.Matched() {
		t.Error("Matched() = true, want false")
	}
}

func TestClientLookupSuccessFalse(t *testing.T) {
	ts := searchTestServer(http.StatusOK, `{"success":false}`)
	defer ts.Close()

	c := NewClient(testCfg(ts.URL))
	out := c.Lookup(context.Background(), types.Contact{FirstName: "John", LastName: "Doe"})

	if out.Failed() {
		t.Fatalf("success=false must map to a zero-hit success, got failure: %s", out.Err)
	}
	if out.TotalHits != 0 || len(out.Hits) != 0 {
		t.Errorf("Outcome = %+v, want empty", out)
	}
}

func TestClientLookupHTTPError(t *testing.T) {
	ts := searchTestServer(http.StatusInternalServerError, "oops")
	defer ts.Close()

	c := NewClient(testCfg(ts.URL))
	out := c.Lookup(context.Background(), types.Contact{FirstName: "John", LastName: "Doe"})

	if !out.Failed() {
		t.Fatal("want failure for HTTP 500")
	}
	if !strings.Contains(out.Err, "HTTP 500") {
		t.Errorf("Err = %q, want HTTP status diagnostic", out.Err)
	}
}

func TestClientLookupMalformedBody(t *testing.T) {
	for name, body := range map[string]string{
		"empty body":  "",
		"not JSON":    "<html>error</html>",
		"wrong shape": `[1,2,3]`,
	} {
		t.Run(name, func(t *testing.T) {
			ts := searchTestServer(http.StatusOK, body)
			defer ts.Close()

			c := NewClient(testCfg(ts.URL))
			out := c.Lookup(context.Background(), types.Contact{FirstName: "John", LastName: "Doe"})
			if !out.Failed() {
				t.Fatalf("want failure for %s", name)
			}
		})
	}
}

func TestClientLookupTimeout(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
	}))
	defer ts.Close()

	cfg := testCfg(ts.URL)
	cfg.Timeout = 20 * time.Millisecond

	c := NewClient(cfg)
	out := c.Lookup(context.Background(), types.Contact{FirstName: "John", LastName: "Doe"})

	if !out.Failed() {
		t.Fatal("want failure on timeout")
	}
}

func TestClientLookupPacing(t *testing.T) {
	var mu sync.Mutex
	var issued []time.Time
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		issued = append(issued, time.Now())
		mu.Unlock()
		fmt.Fprint(w, `{"success":true,"data":{"totalHits":0,"hits":[]}}`)
	}))
	defer ts.Close()

	const min = 50 * time.Millisecond
	cfg := testCfg(ts.URL)
	cfg.RequestDelay = min

	c := NewClient(cfg)
	for i := 0; i < 3; i++ {
		if out := c.Lookup(context.Background(), types.Contact{FirstName: "John", LastName: "Doe"}); out.Failed() {
			t.Fatalf("Lookup %d failed: %s", i, out.Err)
		}
	}

	mu.Lock()
	defer mu.Unlock()
	if len(issued) != 3 {
		t.Fatalf("issued %d requests, want 3", len(issued))
	}
	for i := 1; i < len(issued); i++ {
		if gap := issued[i].Sub(issued[i-1]); gap < min {
			t.Errorf("gap between request %d and %d = %v, want >= %v", i-1, i, gap, min)
		}
	}
}

func TestClientLookupContextCancelled(t *testing.T) {
	ts := searchTestServer(http.StatusOK, sampleSearchJSON)
	defer ts.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := NewClient(testCfg(ts.URL))
	out := c.Lookup(ctx, types.Contact{FirstName: "John", LastName: "Doe"})
	if !out.Failed() {
		t.Fatal("want failure when context is already cancelled")
	}
}

func TestNewClientDefaultBaseURL(t *testing.T) {
	c := NewClient(types.SearchConfig{})
	if c.baseURL != types.DefaultSearchBaseURL {
		t.Errorf("baseURL = %q, want default", c.baseURL)
	}
}
