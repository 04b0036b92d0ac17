package domain

import (
	"context"
	"time"
)

// GenerateOptions are the knobs passed to the text generation service.
type GenerateOptions struct {
	Temperature     float64
	MaxOutputTokens int
	JSONMode        bool
}

// TextGenerator is the port to an LLM text generation service.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string, opts GenerateOptions) (string, error)
	ModelName() string
}

// SearchQuery is a web search request. Site restricts results to a domain
// path such as "youtube.com/watch".
type SearchQuery struct {
	Query      string
	Site       string
	MaxResults int
	Timeout    time.Duration
}

// SearchResult is one ordered hit from the search service.
type SearchResult struct {
	Title   string
	URL     string
	Content string
	Score   float64
}

// SearchService is the port to a web search provider.
type SearchService interface {
	Search(ctx context.Context, q SearchQuery) ([]SearchResult, error)
}

// ContentGenerator is the generation client used by the course services.
// Failures are reported as ErrGenerationFailure; video lookups never fail and
// return "" when nothing usable was found.
type ContentGenerator interface {
	GenerateStructuredJSON(ctx context.Context, instructions string, maxOutputTokens int, temperature float64) (any, error)
	GenerateText(ctx context.Context, instructions string, maxOutputTokens int, temperature float64) (string, error)
	FindVideoForQuery(ctx context.Context, query string) string
	ModelName() string
}
