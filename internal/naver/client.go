// Package naver wraps the Naver open search APIs (local and blog search).
// https://developers.naver.com/docs/serviceapi/search/local/local.md
package naver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

const defaultBaseURL = "https://openapi.naver.com"

// maxDisplay is the per-call result cap enforced by the local search API.
const maxDisplay = 10

// ErrCredentials is returned when the API rejects the configured client
// id/secret pair. Callers must surface this as a configuration error rather
// than an empty result.
var ErrCredentials = errors.New("naver API rejected credentials")

// Client calls the Naver open search APIs.
type Client struct {
	clientID     string
	clientSecret string
	baseURL      string
	httpClient   *http.Client
}

// NewClient creates a Naver search API client.
func NewClient(clientID, clientSecret string) *Client {
	return &Client{
		clientID:     clientID,
		clientSecret: clientSecret,
		baseURL:      defaultBaseURL,
		httpClient:   &http.Client{Timeout: 10 * time.Second},
	}
}

// SetBaseURL overrides the API endpoint. Used by tests.
func (c *Client) SetBaseURL(u string) {
	c.baseURL = u
}

// LocalItem is one raw business listing from the local search API.
// Title and description arrive HTML-escaped; mapx/mapy are vendor-native
// coordinate strings.
type LocalItem struct {
	Title       string `json:"title"`
	Link        string `json:"link"`
	Category    string `json:"category"`
	Description string `json:"description"`
	Telephone   string `json:"telephone"`
	Address     string `json:"address"`
	RoadAddress string `json:"roadAddress"`
	MapX        string `json:"mapx"`
	MapY        string `json:"mapy"`
}

// BlogItem is one raw blog post from the blog search API.
type BlogItem struct {
	Title       string `json:"title"`
	Link        string `json:"link"`
	Description string `json:"description"`
}

type localSearchResponse struct {
	Items []LocalItem `json:"items"`
}

type blogSearchResponse struct {
	Items []BlogItem `json:"items"`
}

// LocalSearch queries the local search API with a free-text query, sorted by
// review count descending. display is capped at the API limit.
func (c *Client) LocalSearch(ctx context.Context, query string, display int) ([]LocalItem, error) {
	var result localSearchResponse
	if err := c.get(ctx, "/v1/search/local.json", query, display, "comment", &result); err != nil {
		return nil, err
	}
	return result.Items, nil
}

// BlogSearch queries the blog search API sorted by relevance.
func (c *Client) BlogSearch(ctx context.Context, query string, display int) ([]BlogItem, error) {
	var result blogSearchResponse
	if err := c.get(ctx, "/v1/search/blog.json", query, display, "sim", &result); err != nil {
		return nil, err
	}
	return result.Items, nil
}

func (c *Client) get(ctx context.Context, path, query string, display int, sort string, out interface{}) error {
	if display > maxDisplay {
		display = maxDisplay
	}

	params := url.Values{}
	params.Set("query", query)
	params.Set("display", fmt.Sprintf("%d", display))
	params.Set("start", "1")
	params.Set("sort", sort)

	reqURL := fmt.Sprintf("%s%s?%s", c.baseURL, path, params.Encode())

	req, err := http.NewRequestWithContext(ctx, "GET", reqURL, nil)
	if err != nil {
		return fmt.Errorf("request creation failed: %w", err)
	}

	req.Header.Set("X-Naver-Client-Id", c.clientID)
	req.Header.Set("X-Naver-Client-Secret", c.clientSecret)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("network error: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return fmt.Errorf("status %d: %w", resp.StatusCode, ErrCredentials)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("API error: status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("JSON decode error: %w", err)
	}

	return nil
}
