package duckduckgo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"net/http"

	"github.com/PaesslerAG/jsonpath"

	"portfolioadvisor/internal/provider"
)

// Paths into the instant answer document, in the order fragments are read.
// Grouped related topics nest their entries one level deeper under Topics.
var (
	answerPath  = "$.Answer"
	relatedPath = []string{
		"$.RelatedTopics[*].Text",
		"$.RelatedTopics[*].Topics[*].Text",
	}
)

// InstantAnswer runs a search and returns the primary answer text and the
// related topic texts.
//
//	{
//	  "Answer": "Gold price in India is ₹6,230.50 per gram",
//	  "RelatedTopics": [
//	    {"Text": "Gold - ...", "FirstURL": "..."},
//	    {"Name": "Markets", "Topics": [{"Text": "...", "FirstURL": "..."}]}
//	  ]
//	}
func (c *Client) InstantAnswer(ctx context.Context, terms string, opts ...ClientOption) (provider.Answer, error) {
	var override = &Client{
		baseURL:    c.baseURL,
		httpClient: c.httpClient,
		header:     c.header.Clone(),
		query:      c.query,
	}
	for _, opt := range opts {
		opt(override)
	}

	query := maps.Clone(override.query)
	query.Set("q", terms)

	url := fmt.Sprintf("%s/?%s", override.baseURL, query.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return provider.Answer{}, fmt.Errorf("creating request: %w", err)
	}
	req.Header = override.header

	res, err := override.httpClient.Do(req)
	if err != nil {
		return provider.Answer{}, fmt.Errorf("performing request: %w", err)
	}
	defer res.Body.Close()

	switch {
	case res.StatusCode == http.StatusTooManyRequests:
		return provider.Answer{}, fmt.Errorf("rate limited")
	case res.StatusCode < 200 || res.StatusCode >= 300:
		b, _ := io.ReadAll(io.LimitReader(res.Body, 2<<10))
		return provider.Answer{}, fmt.Errorf("unexpected status code %d: %s", res.StatusCode, string(b))
	}

	var doc any
	if err := json.NewDecoder(res.Body).Decode(&doc); err != nil {
		return provider.Answer{}, fmt.Errorf("decoding instant answer: %w", err)
	}

	var answer provider.Answer
	if texts := textsAt(answerPath, doc); len(texts) > 0 {
		answer.Text = texts[0]
	}
	for _, path := range relatedPath {
		answer.Related = append(answer.Related, textsAt(path, doc)...)
	}
	return answer, nil
}

// Query implements provider.LiveSource.
func (c *Client) Query(ctx context.Context, terms string) (provider.Answer, error) {
	return c.InstantAnswer(ctx, terms)
}

// textsAt evaluates path against doc and keeps the non-empty string results.
// A path that does not match yields nothing.
func textsAt(path string, doc any) []string {
	v, err := jsonpath.Get(path, doc)
	if err != nil {
		return nil
	}
	var out []string
	switch v := v.(type) {
	case string:
		if v != "" {
			out = append(out, v)
		}
	case []any:
		for _, item := range v {
			if s, ok := item.(string); ok && s != "" {
				out = append(out, s)
			}
		}
	}
	return out
}

var _ provider.LiveSource = (*Client)(nil)
