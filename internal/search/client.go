// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package search issues paced, exact-phrase name queries against the
// remote corpus search API and maps responses into per-record outcomes.
package search

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/pdiddy/mention-scan/internal/httputil"
	"github.com/pdiddy/mention-scan/pkg/types"
)

// maxSnippetLen bounds the excerpt taken from a hit's full content when the
// API sends no short preview.
const maxSnippetLen = 500

// Client queries the search endpoint, one paced request per contact.
// A Client's lifecycle is a single batch run: the pacer state it carries
// must not leak across batches, so construct a fresh Client per run.
type Client struct {
	http      *http.Client
	baseURL   string
	indexes   string
	userAgent string
	pacer     *httputil.Pacer
}

// NewClient builds a Client from cfg. The per-request timeout comes from
// cfg.Timeout and is enforced by the underlying http.Client.
func NewClient(cfg types.SearchConfig) *Client {
	base := cfg.BaseURL
	if base == "" {
		base = types.DefaultSearchBaseURL
	}
	return &Client{
		http:      &http.Client{Timeout: cfg.Timeout},
		baseURL:   base,
		indexes:   cfg.Indexes,
		userAgent: cfg.UserAgent,
		pacer:     httputil.NewPacer(cfg.RequestDelay),
	}
}

// Lookup runs exactly one search for the contact's full name, waiting on
// the pacer before issuing the request. Transport errors, timeouts,
// non-200 statuses, and undecodable bodies are all folded into the
// returned Outcome's Err field: Lookup never panics and never returns an
// error, because one bad record must not abort the batch.
func (c *Client) Lookup(ctx context.Context, contact types.Contact) types.Outcome {
	if err := c.pacer.Wait(ctx); err != nil {
		return types.Outcome{Err: err.Error()}
	}

	// Quote the name for exact-phrase matching.
	params := url.Values{
		"q": {`"` + contact.FullName() + `"`},
	}
	if c.indexes != "" {
		params.Set("indexes", c.indexes)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return types.Outcome{Err: fmt.Sprintf("creating request: %v", err)}
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return types.Outcome{Err: fmt.Sprintf("search request: %v", err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return types.Outcome{Err: fmt.Sprintf("search API returned HTTP %d", resp.StatusCode)}
	}

	var sr searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return types.Outcome{Err: fmt.Sprintf("parsing search response: %v", err)}
	}

	// success=false is a well-formed reply meaning nothing was indexed for
	// this query: a zero-hit success, not a failure.
	if !sr.Success {
		return types.Outcome{}
	}

	out := types.Outcome{TotalHits: sr.Data.TotalHits}
	for _, h := range sr.Data.Hits {
		out.Hits = append(out.Hits, types.MatchHit{
			SourceID: h.FilePath,
			Snippet:  snippet(h),
		})
	}
	if out.TotalHits < len(out.Hits) {
		out.TotalHits = len(out.Hits)
	}
	return out
}

// snippet prefers the API's short preview and falls back to a bounded
// excerpt of the full content.
func snippet(h searchHit) string {
	if h.ContentPreview != "" {
		return h.ContentPreview
	}
	if len(h.Content) > maxSnippetLen {
		return h.Content[:maxSnippetLen]
	}
	return h.Content
}

// Search API JSON structures.
type searchResponse struct {
	Success bool       `json:"success"`
	Data    searchData `json:"data"`
}

type searchData struct {
	TotalHits int         `json:"totalHits"`
	Hits      []searchHit `json:"hits"`
}

type searchHit struct {
	ContentPreview string `json:"content_preview"`
	Content        string `json:"content"`
	FilePath       string `json:"file_path"`
}
