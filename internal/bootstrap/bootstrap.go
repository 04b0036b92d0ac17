package bootstrap

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/ManojPokuru/course-creator-plugin/internal/adapter/llm"
	"github.com/ManojPokuru/course-creator-plugin/internal/adapter/rediscache"
	"github.com/ManojPokuru/course-creator-plugin/internal/adapter/search"
	"github.com/ManojPokuru/course-creator-plugin/internal/cache"
	"github.com/ManojPokuru/course-creator-plugin/internal/config"
	"github.com/ManojPokuru/course-creator-plugin/internal/domain"
	"github.com/ManojPokuru/course-creator-plugin/internal/generation"
	"github.com/ManojPokuru/course-creator-plugin/internal/service"
	"github.com/ManojPokuru/course-creator-plugin/internal/source"
)

// Components is everything the entry points need to serve requests.
type Components struct {
	Courses   domain.CourseService
	Results   domain.CourseResultStore
	Questions domain.QuestionService
	Extractor *source.Extractor
	Cache     domain.Cache // nil when Redis is not configured
	Model     string

	redisClient *redis.Client
}

// Close releases the Redis connection, if any.
func (c *Components) Close() error {
	if c.redisClient == nil {
		return nil
	}
	return c.redisClient.Close()
}

// Build wires adapters, the generation client and the course pipeline from
// configuration. Redis and Tavily are optional; the LLM is not.
func Build(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Components, error) {
	comp := &Components{}

	if cfg.Redis.Address != "" {
		client, err := cache.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			return nil, fmt.Errorf("connect to redis: %w", err)
		}
		comp.redisClient = client
		comp.Cache = rediscache.NewRedisCache(client)
		logger.Info("Successfully connected to Redis", zap.String("address", cfg.Redis.Address))
	} else {
		logger.Info("Redis not configured; video lookups and results are not cached")
	}

	generator, err := llm.New(ctx, cfg.LLM, logger)
	if err != nil {
		_ = comp.Close()
		return nil, fmt.Errorf("create LLM client: %w", err)
	}
	comp.Model = generator.ModelName()

	var searcher domain.SearchService
	if tavily := search.NewTavilyClient(cfg.Search.APIKey, cfg.Search.Endpoint, logger); tavily != nil {
		searcher = tavily
	} else {
		logger.Warn("TAVILY_API_KEY not set; courses will have no videos")
	}

	client := generation.NewClient(generator, searcher, comp.Cache, generation.Options{
		LLMTimeout:      cfg.LLM.Timeout,
		SearchTimeout:   cfg.Search.Timeout,
		VideoMaxResults: cfg.Search.MaxResults,
		VideoCacheTTL:   cfg.CacheTTLs.VideoLookup,
	}, logger)

	assessments := service.NewAssessmentSynthesizer(client, logger)
	comp.Results = service.NewCourseResultStore(comp.Cache, cfg.CacheTTLs.CourseResult, logger)
	comp.Questions = assessments
	comp.Courses = service.NewPipeline(
		service.NewStructureSynthesizer(client, cfg.Generation.ExcerptBudget, logger),
		service.NewContentEnricher(client, service.EnrichOptions{
			Concurrency:        cfg.Generation.Concurrency,
			LearningObjectives: cfg.Generation.LearningObjectives,
			PracticalExercises: cfg.Generation.PracticalExercises,
		}, logger),
		assessments,
		comp.Results,
		cfg.Generation.DefaultAssessmentKinds,
		logger,
	)
	comp.Extractor = source.NewExtractor(cfg.Generation.MaxSourceBytes, logger)

	return comp, nil
}
