package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type Config struct {
	Server     ServerConfig
	Logger     LoggerConfig
	LLM        LLMConfig
	Search     SearchConfig
	Redis      RedisConfig
	Generation GenerationConfig
	CacheTTLs  CacheTTLConfig
	Tracing    TracingConfig
}

type ServerConfig struct {
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	BodyLimitMB  int

	// Requests to /api/generate per client IP and window; 0 disables the limit.
	RateLimitMax    int
	RateLimitWindow time.Duration
}

type LoggerConfig struct {
	Env   string
	Level string
}

type LLMConfig struct {
	Provider  string
	Model     string
	APIKey    string
	ServerURL string
	Timeout   time.Duration
}

type SearchConfig struct {
	APIKey     string
	Endpoint   string
	Timeout    time.Duration
	MaxResults int
}

type RedisConfig struct {
	Address  string
	Password string
	DB       int
}

type GenerationConfig struct {
	Concurrency            int
	ExcerptBudget          int
	IncludeVideos          bool
	LearningObjectives     bool
	PracticalExercises     bool
	MaxSourceBytes         int64
	DefaultAssessmentKinds []string
}

type CacheTTLConfig struct {
	VideoLookup  time.Duration
	CourseResult time.Duration
}

type TracingConfig struct {
	Enabled     bool
	Exporter    string // stdout or otlp
	Endpoint    string
	ServiceName string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8090)
	v.SetDefault("server.read_timeout", 600)
	v.SetDefault("server.write_timeout", 600)
	v.SetDefault("server.body_limit_mb", 20)
	v.SetDefault("server.rate_limit_max", 10)
	v.SetDefault("server.rate_limit_window", 60)

	v.SetDefault("logger.env", "development")
	v.SetDefault("logger.level", "info")

	v.SetDefault("llm.provider", "googleai")
	v.SetDefault("llm.model", "gemini-2.0-flash")
	v.SetDefault("llm.server_url", "")
	v.SetDefault("llm.timeout", 120)

	v.SetDefault("search.endpoint", "https://api.tavily.com/search")
	v.SetDefault("search.timeout", 15)
	v.SetDefault("search.max_results", 5)

	v.SetDefault("redis.address", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("generation.concurrency", 1)
	v.SetDefault("generation.excerpt_budget", 8000)
	v.SetDefault("generation.include_videos", true)
	v.SetDefault("generation.learning_objectives", false)
	v.SetDefault("generation.practical_exercises", false)
	v.SetDefault("generation.max_source_bytes", 10*1024*1024)
	v.SetDefault("generation.default_assessment_kinds", []string{"multiple-choice", "checkbox", "text-input", "dropdown", "numerical"})

	v.SetDefault("cache_ttls.video_lookup", 24*60)
	v.SetDefault("cache_ttls.course_result", 24*60)

	v.SetDefault("tracing.enabled", false)
	v.SetDefault("tracing.exporter", "stdout")
	v.SetDefault("tracing.service_name", "course-creator")
}

// LoadConfig reads config.yaml from the working directory or ./config,
// then applies environment overrides.
func LoadConfig() (*Config, error) {
	return Load(nil)
}

// Load is LoadConfig with optional command line flags bound on top. Flag
// names use the config keys, e.g. "llm.model".
func Load(flags *pflag.FlagSet, paths ...string) (*Config, error) {
	if os.Getenv("ENV") != "production" {
		// A missing .env file is fine outside production too.
		_ = godotenv.Load()
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if len(paths) == 0 {
		paths = []string{".", "./config"}
	}
	for _, p := range paths {
		v.AddConfigPath(p)
	}
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	// Well-known variable names; flags still win over these.
	_ = v.BindEnv("llm.api_key", "LLM_API_KEY", "GEMINI_API_KEY", "OPENAI_API_KEY")
	_ = v.BindEnv("llm.model", "LLM_MODEL")
	_ = v.BindEnv("llm.provider", "LLM_PROVIDER")
	_ = v.BindEnv("llm.server_url", "LLM_SERVER")
	_ = v.BindEnv("search.api_key", "TAVILY_API_KEY")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	} else if configFile := v.ConfigFileUsed(); configFile != "" {
		absPath, _ := filepath.Abs(configFile)
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", absPath)
	}

	if flags != nil {
		flags.VisitAll(func(f *pflag.Flag) {
			if f.Changed {
				_ = v.BindPFlag(f.Name, f)
			}
		})
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:         v.GetInt("server.port"),
			ReadTimeout:  v.GetDuration("server.read_timeout") * time.Second,
			WriteTimeout: v.GetDuration("server.write_timeout") * time.Second,
			BodyLimitMB:  v.GetInt("server.body_limit_mb"),

			RateLimitMax:    v.GetInt("server.rate_limit_max"),
			RateLimitWindow: v.GetDuration("server.rate_limit_window") * time.Second,
		},
		Logger: LoggerConfig{
			Env:   v.GetString("logger.env"),
			Level: v.GetString("logger.level"),
		},
		LLM: LLMConfig{
			Provider:  v.GetString("llm.provider"),
			Model:     v.GetString("llm.model"),
			APIKey:    v.GetString("llm.api_key"),
			ServerURL: v.GetString("llm.server_url"),
			Timeout:   v.GetDuration("llm.timeout") * time.Second,
		},
		Search: SearchConfig{
			APIKey:     v.GetString("search.api_key"),
			Endpoint:   v.GetString("search.endpoint"),
			Timeout:    v.GetDuration("search.timeout") * time.Second,
			MaxResults: v.GetInt("search.max_results"),
		},
		Redis: RedisConfig{
			Address:  v.GetString("redis.address"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
		},
		Generation: GenerationConfig{
			Concurrency:            v.GetInt("generation.concurrency"),
			ExcerptBudget:          v.GetInt("generation.excerpt_budget"),
			IncludeVideos:          v.GetBool("generation.include_videos"),
			LearningObjectives:     v.GetBool("generation.learning_objectives"),
			PracticalExercises:     v.GetBool("generation.practical_exercises"),
			MaxSourceBytes:         v.GetInt64("generation.max_source_bytes"),
			DefaultAssessmentKinds: v.GetStringSlice("generation.default_assessment_kinds"),
		},
		CacheTTLs: CacheTTLConfig{
			VideoLookup:  v.GetDuration("cache_ttls.video_lookup") * time.Minute,
			CourseResult: v.GetDuration("cache_ttls.course_result") * time.Minute,
		},
		Tracing: TracingConfig{
			Enabled:     v.GetBool("tracing.enabled"),
			Exporter:    v.GetString("tracing.exporter"),
			Endpoint:    v.GetString("tracing.endpoint"),
			ServiceName: v.GetString("tracing.service_name"),
		},
	}

	if cfg.Generation.Concurrency < 1 {
		cfg.Generation.Concurrency = 1
	}

	return cfg, nil
}
