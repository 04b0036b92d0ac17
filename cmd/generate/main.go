// Command generate builds one course from the command line and writes it as
// JSON (or an export format) to stdout or a file.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/ManojPokuru/course-creator-plugin/internal/bootstrap"
	"github.com/ManojPokuru/course-creator-plugin/internal/config"
	"github.com/ManojPokuru/course-creator-plugin/internal/domain"
	"github.com/ManojPokuru/course-creator-plugin/internal/dto"
	"github.com/ManojPokuru/course-creator-plugin/internal/logger"
	"github.com/ManojPokuru/course-creator-plugin/internal/service"
	"github.com/ManojPokuru/course-creator-plugin/internal/telemetry"
)

type options struct {
	topic      string
	level      string
	duration   string
	modules    int
	pdfPath    string
	noVideos   bool
	format     string
	outputPath string
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	flags := pflag.NewFlagSet("generate", pflag.ContinueOnError)
	var opts options
	flags.StringVarP(&opts.topic, "topic", "t", "", "course topic (required)")
	flags.StringVarP(&opts.level, "level", "l", domain.DefaultAudience, "target audience")
	flags.StringVarP(&opts.duration, "duration", "d", "", "short, medium or long")
	flags.IntVarP(&opts.modules, "modules", "n", 0, "number of modules; picks the duration when --duration is empty")
	flags.StringVar(&opts.pdfPath, "pdf", "", "reference PDF to ground the course structure")
	flags.BoolVar(&opts.noVideos, "no-videos", false, "skip video lookups")
	flags.StringVarP(&opts.format, "format", "f", "json", "json, modules, olx, olx-xml or plan")
	flags.StringVarP(&opts.outputPath, "output", "o", "", "output file (default stdout)")
	// Config keys may be overridden directly, e.g. --llm.model.
	flags.String("llm.provider", "", "LLM provider: googleai, openai or ollama")
	flags.String("llm.model", "", "LLM model name")
	flags.String("llm.server_url", "", "LLM server URL (ollama, openai-compatible)")
	flags.Int("generation.concurrency", 1, "units enriched in parallel")
	flags.Bool("generation.learning_objectives", false, "generate learning objectives per subsection")
	flags.Bool("generation.practical_exercises", false, "generate practical exercises per unit")
	flags.String("logger.level", "", "log level")
	if err := flags.Parse(args); err != nil {
		return err
	}
	if opts.topic == "" {
		flags.Usage()
		return fmt.Errorf("--topic is required")
	}
	if !formats[opts.format] {
		return fmt.Errorf("unknown --format %q", opts.format)
	}

	cfg, err := config.Load(flags)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := logger.Initialize(cfg.Logger); err != nil {
		return fmt.Errorf("initialize logger: %w", err)
	}
	defer logger.Sync()
	appLogger := logger.Get()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := telemetry.Init(ctx, cfg.Tracing, appLogger)
	if err != nil {
		return fmt.Errorf("initialize tracing: %w", err)
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			appLogger.Warn("Failed to flush traces", zap.Error(err))
		}
	}()

	comp, err := bootstrap.Build(ctx, cfg, appLogger)
	if err != nil {
		return err
	}
	defer comp.Close()

	req, err := buildRequest(opts, cfg, comp)
	if err != nil {
		return err
	}

	course, report, err := comp.Courses.Generate(ctx, req)
	if err != nil {
		return err
	}
	if report.Degraded() {
		appLogger.Warn("Course generated with degraded parts",
			zap.Strings("degraded_units", report.DegradedUnits),
			zap.Strings("missing_assessments", report.MissingAssessments),
		)
	}

	out, err := render(opts, course, report)
	if err != nil {
		return err
	}
	if opts.outputPath == "" {
		_, err = os.Stdout.Write(append(out, '\n'))
		return err
	}
	return os.WriteFile(opts.outputPath, out, 0o644)
}

func buildRequest(opts options, cfg *config.Config, comp *bootstrap.Components) (domain.CourseRequest, error) {
	req := domain.CourseRequest{
		Title:         opts.topic,
		Audience:      opts.level,
		Duration:      domain.Duration(opts.duration),
		IncludeVideos: cfg.Generation.IncludeVideos && !opts.noVideos,
	}
	if opts.duration != "" {
		d, ok := domain.ParseDuration(opts.duration)
		if !ok {
			return req, fmt.Errorf("invalid --duration %q", opts.duration)
		}
		req.Duration = d
	} else if opts.modules > 0 {
		req.Duration = service.DurationForModuleCount(opts.modules)
	}

	if opts.pdfPath != "" {
		f, err := os.Open(opts.pdfPath)
		if err != nil {
			return req, fmt.Errorf("open --pdf: %w", err)
		}
		defer f.Close()
		text, err := comp.Extractor.FromPDF(f)
		if err != nil {
			return req, err
		}
		req.Reference = text
	}
	return req, nil
}

var formats = map[string]bool{
	"json":    true,
	"modules": true,
	"plan":    true,
	"olx":     true,
	"olx-xml": true,
}

func render(opts options, course *domain.Course, report *domain.GenerationReport) ([]byte, error) {
	switch opts.format {
	case "json":
		return json.MarshalIndent(dto.CourseResponse{
			Result:    dto.ResultSuccess,
			RequestID: report.RequestID,
			JSON:      course,
			Report:    report,
		}, "", "  ")
	case "modules":
		return json.MarshalIndent(service.Modules(course, opts.modules), "", "  ")
	case "plan":
		return json.MarshalIndent(service.BuildComponentPlan(course), "", "  ")
	case "olx", "olx-xml":
		olx, err := service.BuildOLX(course)
		if err != nil {
			return nil, err
		}
		if opts.format == "olx-xml" {
			return olx.XML()
		}
		return json.MarshalIndent(olx, "", "  ")
	default:
		return nil, fmt.Errorf("unknown --format %q", opts.format)
	}
}
