// Package generation wraps the text generation and search services behind the
// calls the course pipeline needs.
package generation

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/ManojPokuru/course-creator-plugin/internal/cache"
	"github.com/ManojPokuru/course-creator-plugin/internal/domain"
)

const (
	DefaultLLMTimeout      = 120 * time.Second
	DefaultSearchTimeout   = 15 * time.Second
	DefaultVideoMaxResults = 5
	DefaultVideoCacheTTL   = 24 * time.Hour

	VideoSite = "youtube.com/watch"

	// noVideo marks a cached lookup that found nothing.
	noVideo = "-"
)

// Options tune the client. Zero values take the defaults above.
type Options struct {
	LLMTimeout      time.Duration
	SearchTimeout   time.Duration
	VideoMaxResults int
	VideoCacheTTL   time.Duration
}

func (o Options) withDefaults() Options {
	if o.LLMTimeout <= 0 {
		o.LLMTimeout = DefaultLLMTimeout
	}
	if o.SearchTimeout <= 0 {
		o.SearchTimeout = DefaultSearchTimeout
	}
	if o.VideoMaxResults <= 0 {
		o.VideoMaxResults = DefaultVideoMaxResults
	}
	if o.VideoCacheTTL <= 0 {
		o.VideoCacheTTL = DefaultVideoCacheTTL
	}
	return o
}

// Client is stateless per request and safe for concurrent use.
type Client struct {
	llm     domain.TextGenerator
	search  domain.SearchService
	cache   domain.Cache
	opts    Options
	logger  *zap.Logger
	lookups singleflight.Group
}

var _ domain.ContentGenerator = (*Client)(nil)

// NewClient creates a generation client. search and cache may be nil: without
// search every video lookup returns nothing, without cache lookups are not
// remembered.
func NewClient(llm domain.TextGenerator, search domain.SearchService, c domain.Cache, opts Options, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		llm:    llm,
		search: search,
		cache:  c,
		opts:   opts.withDefaults(),
		logger: logger,
	}
}

func (c *Client) ModelName() string {
	return c.llm.ModelName()
}

func (c *Client) callLLM(ctx context.Context, instructions string, opts domain.GenerateOptions) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.opts.LLMTimeout)
	defer cancel()

	start := time.Now()
	response, err := c.llm.Generate(ctx, instructions, opts)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			c.logger.Error("LLM request timed out", zap.Duration("timeout", c.opts.LLMTimeout))
			return "", domain.NewGenerationFailure("LLM request timed out", err)
		}
		c.logger.Error("LLM call failed", zap.Error(err))
		return "", domain.NewGenerationFailure("LLM call failed", err)
	}

	c.logger.Debug("LLM call completed",
		zap.Int("prompt_length", len(instructions)),
		zap.Int("response_length", len(response)),
		zap.Duration("elapsed", time.Since(start)))
	return response, nil
}

// GenerateStructuredJSON requests JSON output and returns the decoded value.
func (c *Client) GenerateStructuredJSON(ctx context.Context, instructions string, maxOutputTokens int, temperature float64) (any, error) {
	raw, err := c.callLLM(ctx, instructions, domain.GenerateOptions{
		Temperature:     temperature,
		MaxOutputTokens: maxOutputTokens,
		JSONMode:        true,
	})
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(raw) == "" {
		return nil, domain.NewGenerationFailure("LLM returned an empty response", nil)
	}

	value, err := ParseJSON(raw)
	if err != nil {
		c.logger.Error("Failed to parse JSON from LLM response",
			zap.Error(err),
			zap.String("response_preview", preview(raw, 500)))
		return nil, domain.NewGenerationFailure("LLM response is not valid JSON", err)
	}
	return value, nil
}

// GenerateText requests free-form text such as an HTML fragment.
func (c *Client) GenerateText(ctx context.Context, instructions string, maxOutputTokens int, temperature float64) (string, error) {
	raw, err := c.callLLM(ctx, instructions, domain.GenerateOptions{
		Temperature:     temperature,
		MaxOutputTokens: maxOutputTokens,
	})
	if err != nil {
		return "", err
	}
	text := UnwrapFence(StripThinking(raw))
	if text == "" {
		return "", domain.NewGenerationFailure("LLM returned an empty response", nil)
	}
	return text, nil
}

// FindVideoForQuery returns an embeddable video URL for the query, or "".
// It never fails: search errors are logged and treated as no match.
func (c *Client) FindVideoForQuery(ctx context.Context, query string) string {
	query = strings.TrimSpace(query)
	if query == "" || c.search == nil {
		return ""
	}

	key := cache.VideoLookupKey(query)
	if c.cache != nil {
		cached, err := c.cache.Get(ctx, key)
		switch {
		case err == nil:
			if cached == noVideo {
				return ""
			}
			return cached
		case !errors.Is(err, domain.ErrCacheMiss):
			c.logger.Warn("Video cache read failed", zap.String("key", key), zap.Error(err))
		}
	}

	v, _, _ := c.lookups.Do(key, func() (interface{}, error) {
		url, err := c.searchVideo(ctx, query)
		if err != nil {
			c.logger.Warn("Video lookup failed",
				zap.Error(domain.NewVideoLookupFailure(query, err)),
				zap.String("query", query))
			return "", nil
		}
		c.remember(ctx, key, url)
		return url, nil
	})
	return v.(string)
}

func (c *Client) searchVideo(ctx context.Context, query string) (string, error) {
	results, err := c.search.Search(ctx, domain.SearchQuery{
		Query:      query,
		Site:       VideoSite,
		MaxResults: c.opts.VideoMaxResults,
		Timeout:    c.opts.SearchTimeout,
	})
	if err != nil {
		return "", fmt.Errorf("search %q: %w", query, err)
	}
	for _, r := range results {
		if embed := CanonicalEmbedURL(r.URL); embed != "" {
			c.logger.Debug("Found video for query", zap.String("query", query), zap.String("url", embed))
			return embed, nil
		}
	}
	c.logger.Debug("No usable video in search results", zap.String("query", query), zap.Int("results", len(results)))
	return "", nil
}

func (c *Client) remember(ctx context.Context, key, url string) {
	if c.cache == nil {
		return
	}
	value := url
	if value == "" {
		value = noVideo
	}
	if err := c.cache.Set(ctx, key, value, c.opts.VideoCacheTTL); err != nil {
		c.logger.Warn("Video cache write failed", zap.String("key", key), zap.Error(err))
	}
}

func preview(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
