// Package llm adapts langchaingo models to the text generation port.
package llm

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"
	"github.com/tmc/langchaingo/llms/ollama"
	"github.com/tmc/langchaingo/llms/openai"
	"go.uber.org/zap"

	"github.com/ManojPokuru/course-creator-plugin/internal/config"
	"github.com/ManojPokuru/course-creator-plugin/internal/domain"
)

const (
	ProviderGoogleAI = "googleai"
	ProviderOpenAI   = "openai"
	ProviderOllama   = "ollama"
)

// Generator implements domain.TextGenerator over any langchaingo model.
type Generator struct {
	model     llms.Model
	modelName string
	logger    *zap.Logger
}

var _ domain.TextGenerator = (*Generator)(nil)

func NewGenerator(model llms.Model, modelName string, logger *zap.Logger) *Generator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Generator{model: model, modelName: modelName, logger: logger}
}

// New builds the provider selected in cfg.
func New(ctx context.Context, cfg config.LLMConfig, logger *zap.Logger) (*Generator, error) {
	provider := strings.ToLower(strings.TrimSpace(cfg.Provider))
	if provider == "" {
		provider = ProviderGoogleAI
	}

	var (
		model llms.Model
		err   error
	)
	switch provider {
	case ProviderGoogleAI:
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("googleai provider requires an API key")
		}
		model, err = googleai.New(ctx,
			googleai.WithAPIKey(cfg.APIKey),
			googleai.WithDefaultModel(cfg.Model),
		)
	case ProviderOpenAI:
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("openai provider requires an API key")
		}
		opts := []openai.Option{openai.WithToken(cfg.APIKey), openai.WithModel(cfg.Model)}
		if cfg.ServerURL != "" {
			opts = append(opts, openai.WithBaseURL(cfg.ServerURL))
		}
		model, err = openai.New(opts...)
	case ProviderOllama:
		if cfg.ServerURL == "" {
			return nil, fmt.Errorf("ollama provider requires a server URL")
		}
		model, err = ollama.New(
			ollama.WithServerURL(cfg.ServerURL),
			ollama.WithModel(cfg.Model),
			ollama.WithHTTPClient(&http.Client{Timeout: cfg.Timeout}),
		)
	default:
		return nil, fmt.Errorf("unsupported LLM provider %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create %s client: %w", provider, err)
	}

	logger.Info("LLM client initialized", zap.String("provider", provider), zap.String("model", cfg.Model))
	return NewGenerator(model, cfg.Model, logger), nil
}

func (g *Generator) ModelName() string {
	return g.modelName
}

// Generate sends a single prompt. Zero MaxOutputTokens leaves the provider default.
func (g *Generator) Generate(ctx context.Context, prompt string, opts domain.GenerateOptions) (string, error) {
	callOpts := []llms.CallOption{llms.WithTemperature(opts.Temperature)}
	if opts.MaxOutputTokens > 0 {
		callOpts = append(callOpts, llms.WithMaxTokens(opts.MaxOutputTokens))
	}
	if opts.JSONMode {
		callOpts = append(callOpts, llms.WithJSONMode())
	}

	g.logger.Debug("Calling LLM",
		zap.String("model", g.modelName),
		zap.Int("prompt_length", len(prompt)),
		zap.Float64("temperature", opts.Temperature),
		zap.Int("max_tokens", opts.MaxOutputTokens),
		zap.Bool("json_mode", opts.JSONMode))

	out, err := llms.GenerateFromSinglePrompt(ctx, g.model, prompt, callOpts...)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}
	return out, nil
}
