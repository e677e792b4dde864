package conceptapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// RawDocument is one document as the concept search API returns it.
// Authors and OtherIds are kept raw: the upstream emits several shapes
// (strings, objects, mixed lists) and normalization happens in the
// search service.
type RawDocument struct {
	DocumentId     *string         `json:"document_id"`
	Title          string          `json:"title"`
	Authors        json.RawMessage `json:"authors"`
	Published      *string         `json:"published"`
	Journal        *string         `json:"journal"`
	OtherIds       json.RawMessage `json:"other_ids"`
	Snippet        *string         `json:"snippet"`
	DocumentType   string          `json:"document_type"`
	RelevanceScore *float64        `json:"relevance_score"`
}

type Suggestion struct {
	Id          string  `json:"id"`
	Name        string  `json:"name"`
	Type        string  `json:"type"`
	Description *string `json:"description"`
}

type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		http: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (c *Client) get(ctx context.Context, path string, params url.Values, out interface{}) error {
	if c.apiKey != "" {
		params.Set("api_key", c.apiKey)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("concept api %s returned %d: %s", path, resp.StatusCode, string(body))
	}

	return json.Unmarshal(body, out)
}

// SearchDocuments sends a compiled boolean query downstream and returns
// the raw document page.
func (c *Client) SearchDocuments(ctx context.Context, query string, page, pageSize int) ([]RawDocument, error) {
	params := url.Values{}
	params.Set("query", query)
	params.Set("page", strconv.Itoa(page))
	params.Set("page_size", strconv.Itoa(pageSize))

	var result struct {
		Data []RawDocument `json:"data"`
	}
	if err := c.get(ctx, "/v1/documents/search", params, &result); err != nil {
		return nil, err
	}
	return result.Data, nil
}

// SuggestConcepts resolves a typed prefix against the ontology
// vocabulary.
func (c *Client) SuggestConcepts(ctx context.Context, prefix string, limit int) ([]Suggestion, error) {
	params := url.Values{}
	params.Set("query", prefix)
	params.Set("limit", strconv.Itoa(limit))

	var result struct {
		Data []Suggestion `json:"data"`
	}
	if err := c.get(ctx, "/v1/concepts/suggest", params, &result); err != nil {
		return nil, err
	}
	return result.Data, nil
}
