package service

import (
	"context"
	"fmt"
	"html"
	"regexp"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ManojPokuru/course-creator-plugin/internal/domain"
	"github.com/ManojPokuru/course-creator-plugin/internal/prompt"
)

const (
	unitTemperature = 0.7
	unitMaxTokens   = 8000

	objectivesTemperature = 0.6
	objectivesMaxTokens   = 3000
	maxObjectives         = 4

	exercisesTemperature = 0.7
	exercisesMaxTokens   = 8000
	maxExercises         = 3

	wordsPerMinute = 200
	minReadingTime = 3
	maxReadingTime = 15
)

const (
	resourceGenerated = "generated_content"
	resourceFallback  = "fallback_content"
	contentStructure  = "text_video_card"
)

var htmlTag = regexp.MustCompile(`<[^>]+>`)

// EnrichOptions controls the enrichment pass.
type EnrichOptions struct {
	Concurrency        int
	LearningObjectives bool
	PracticalExercises bool
}

// UnitOutcome is the result of enriching one unit. It is always produced;
// Diagnostic is set when the unit fell back to placeholder content.
type UnitOutcome struct {
	UnitID      string
	Generated   bool
	ReadingTime int
	Diagnostic  *domain.DomainError
}

// ContentEnricher fills unit bodies with generated HTML.
type ContentEnricher struct {
	gen    domain.ContentGenerator
	opts   EnrichOptions
	logger *zap.Logger
	now    func() time.Time
}

func NewContentEnricher(gen domain.ContentGenerator, opts EnrichOptions, logger *zap.Logger) *ContentEnricher {
	if opts.Concurrency < 1 {
		opts.Concurrency = 1
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ContentEnricher{gen: gen, opts: opts, logger: logger, now: time.Now}
}

// Enrich generates content for every unit in document order, then refreshes
// the time rollups. Unit failures are recorded in the report, never returned.
func (e *ContentEnricher) Enrich(ctx context.Context, course *domain.Course, report *domain.GenerationReport) []UnitOutcome {
	refs := course.Units()
	outcomes := make([]UnitOutcome, len(refs))

	var g errgroup.Group
	g.SetLimit(e.opts.Concurrency)
	for i, ref := range refs {
		g.Go(func() error {
			outcomes[i] = e.EnrichUnit(ctx, course, ref)
			return nil
		})
	}
	_ = g.Wait()

	for _, o := range outcomes {
		if o.Diagnostic != nil && report != nil {
			report.DegradeUnit(o.UnitID, o.Diagnostic)
		}
	}

	if e.opts.LearningObjectives {
		e.addObjectives(ctx, course)
	}

	course.RefreshTimes()
	return outcomes
}

// EnrichUnit writes content, reading time and an audit resource into the
// unit. On failure the unit gets fallback content and the outcome carries
// the diagnostic.
func (e *ContentEnricher) EnrichUnit(ctx context.Context, course *domain.Course, ref domain.UnitRef) UnitOutcome {
	unit := ref.Unit
	instructions := prompt.UnitContent(prompt.UnitContext{
		Course:     course.Title,
		Section:    ref.Section.Title,
		SubSection: ref.SubSection.Title,
		Unit:       unit.Title,
		HasVideo:   unit.VideoURL != "",
	})

	content, err := e.gen.GenerateText(ctx, instructions, unitMaxTokens, unitTemperature)
	if err != nil {
		diag := domain.NewUnitEnrichmentFailure(unit.ID, err)
		e.logger.Warn("Unit enrichment failed, using fallback content",
			zap.String("unit_id", unit.ID),
			zap.String("unit_title", unit.Title),
			zap.Error(err),
		)
		unit.Content = FallbackContent(unit.Title)
		unit.ReadingTime = domain.DefaultReadingTime
		unit.AddResource(map[string]any{
			"type":              resourceFallback,
			"content_structure": contentStructure,
			"generated_at":      e.now().UTC().Format(time.RFC3339),
		})
		return UnitOutcome{UnitID: unit.ID, ReadingTime: unit.ReadingTime, Diagnostic: diag}
	}

	unit.Content = content
	unit.ReadingTime = ReadingTime(content)
	unit.AddResource(map[string]any{
		"type":              resourceGenerated,
		"content_structure": contentStructure,
		"generated_at":      e.now().UTC().Format(time.RFC3339),
	})
	e.logger.Debug("Unit enriched",
		zap.String("unit_id", unit.ID),
		zap.Int("content_length", len(content)),
		zap.Int("reading_time", unit.ReadingTime),
	)

	if e.opts.PracticalExercises {
		unit.Exercises = e.exercises(ctx, unit)
	}
	return UnitOutcome{UnitID: unit.ID, Generated: true, ReadingTime: unit.ReadingTime}
}

// FallbackContent is the placeholder body of a unit whose generation failed.
func FallbackContent(title string) string {
	return fmt.Sprintf("<p><strong>%s</strong> - covering key concepts and practical applications.</p>", html.EscapeString(title))
}

// ReadingTime estimates minutes at 200 words per minute, bounded to 3..15.
func ReadingTime(content string) int {
	minutes := len(strings.Fields(content)) / wordsPerMinute
	return max(minReadingTime, min(maxReadingTime, minutes))
}

func (e *ContentEnricher) addObjectives(ctx context.Context, course *domain.Course) {
	var g errgroup.Group
	g.SetLimit(e.opts.Concurrency)
	for _, section := range course.Sections {
		for _, sub := range section.SubSections {
			g.Go(func() error {
				sub.LearningObjectives = e.objectives(ctx, sub.Title, fmt.Sprintf("%s > %s", course.Title, section.Title))
				return nil
			})
		}
	}
	_ = g.Wait()
}

func (e *ContentEnricher) objectives(ctx context.Context, title, scope string) []string {
	fallback := []string{"Understand key concepts related to " + title}

	text, err := e.gen.GenerateText(ctx, prompt.LearningObjectives(title, scope), objectivesMaxTokens, objectivesTemperature)
	if err != nil {
		e.logger.Warn("Learning objectives generation failed", zap.String("title", title), zap.Error(err))
		return fallback
	}
	if parsed := ParseObjectives(text); len(parsed) > 0 {
		return parsed
	}
	return fallback
}

// ParseObjectives keeps lines phrased as outcomes ("will", "able to"), up to four.
func ParseObjectives(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(htmlTag.ReplaceAllString(line, ""))
		if line == "" {
			continue
		}
		lower := strings.ToLower(line)
		if !strings.Contains(lower, "able to") && !strings.Contains(lower, "will") {
			continue
		}
		out = append(out, line)
		if len(out) == maxObjectives {
			break
		}
	}
	return out
}

func (e *ContentEnricher) exercises(ctx context.Context, unit *domain.Unit) []map[string]any {
	text, err := e.gen.GenerateText(ctx, prompt.Exercises(unit.Title, unit.Content), exercisesMaxTokens, exercisesTemperature)
	if err != nil {
		e.logger.Warn("Exercise generation failed", zap.String("unit_id", unit.ID), zap.Error(err))
		return nil
	}
	return ParseExercises(text)
}

// ParseExercises splits blank-line separated blocks into exercise records.
func ParseExercises(text string) []map[string]any {
	var out []map[string]any
	for _, block := range strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n\n") {
		block = strings.TrimSpace(block)
		if block == "" {
			continue
		}
		n := len(out) + 1
		out = append(out, map[string]any{
			"id":             fmt.Sprintf("exercise_%d", n),
			"title":          fmt.Sprintf("Exercise %d", n),
			"description":    block,
			"difficulty":     "beginner",
			"estimated_time": 15,
			"type":           "practical",
		})
		if len(out) == maxExercises {
			break
		}
	}
	return out
}
