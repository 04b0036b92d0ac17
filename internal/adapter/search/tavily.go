// Package search implements the web search port against the Tavily REST API.
package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/ManojPokuru/course-creator-plugin/internal/domain"
)

const (
	DefaultEndpoint = "https://api.tavily.com/search"
	defaultTimeout  = 15 * time.Second
	searchDepth     = "basic"
)

// TavilyClient is safe for concurrent use.
type TavilyClient struct {
	apiKey     string
	endpoint   string
	httpClient *http.Client
	logger     *zap.Logger
}

var _ domain.SearchService = (*TavilyClient)(nil)

// NewTavilyClient returns nil when apiKey is empty so callers can treat search
// as unconfigured.
func NewTavilyClient(apiKey, endpoint string, logger *zap.Logger) *TavilyClient {
	if strings.TrimSpace(apiKey) == "" {
		return nil
	}
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TavilyClient{
		apiKey:     apiKey,
		endpoint:   endpoint,
		httpClient: &http.Client{},
		logger:     logger,
	}
}

type tavilyRequest struct {
	APIKey      string `json:"api_key"`
	Query       string `json:"query"`
	SearchDepth string `json:"search_depth"`
	MaxResults  int    `json:"max_results"`
}

type tavilyResponse struct {
	Results []struct {
		Title   string  `json:"title"`
		URL     string  `json:"url"`
		Content string  `json:"content"`
		Score   float64 `json:"score"`
	} `json:"results"`
}

// Search runs one query. A non-empty q.Site is appended as a site: filter.
// A nil client returns no results.
func (c *TavilyClient) Search(ctx context.Context, q domain.SearchQuery) ([]domain.SearchResult, error) {
	if c == nil {
		return nil, nil
	}
	timeout := q.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	query := q.Query
	if q.Site != "" {
		query = fmt.Sprintf("%s site:%s", query, q.Site)
	}
	body, err := json.Marshal(tavilyRequest{
		APIKey:      c.apiKey,
		Query:       query,
		SearchDepth: searchDepth,
		MaxResults:  q.MaxResults,
	})
	if err != nil {
		return nil, fmt.Errorf("encode tavily request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create tavily request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("tavily request: %w", err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("read tavily response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("Tavily API error", zap.Int("status", resp.StatusCode), zap.ByteString("body", payload))
		return nil, fmt.Errorf("tavily returned status %d", resp.StatusCode)
	}

	var parsed tavilyResponse
	if err := json.Unmarshal(payload, &parsed); err != nil {
		return nil, fmt.Errorf("decode tavily response: %w", err)
	}

	results := make([]domain.SearchResult, 0, len(parsed.Results))
	for _, r := range parsed.Results {
		results = append(results, domain.SearchResult{
			Title:   r.Title,
			URL:     r.URL,
			Content: r.Content,
			Score:   r.Score,
		})
	}
	return results, nil
}
