package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cast"
	"go.uber.org/zap"

	"github.com/ManojPokuru/course-creator-plugin/internal/domain"
	"github.com/ManojPokuru/course-creator-plugin/internal/prompt"
)

const (
	structureTemperature = 0.0
	structureMaxTokens   = 9000
)

// StructureSynthesizer turns a course request into an un-enriched skeleton.
type StructureSynthesizer struct {
	gen           domain.ContentGenerator
	excerptBudget int
	logger        *zap.Logger
}

func NewStructureSynthesizer(gen domain.ContentGenerator, excerptBudget int, logger *zap.Logger) *StructureSynthesizer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StructureSynthesizer{gen: gen, excerptBudget: excerptBudget, logger: logger}
}

// Synthesize asks the model for the section/subsection/unit skeleton and
// materializes it with fresh ids. Any failure here is fatal for the request.
func (s *StructureSynthesizer) Synthesize(ctx context.Context, req domain.CourseRequest) (*domain.Course, error) {
	instructions := prompt.Structure(prompt.StructureRequest{
		Title:         req.Title,
		Audience:      req.Audience,
		Duration:      req.Duration,
		Components:    req.Components,
		Reference:     req.Reference,
		ExcerptBudget: s.excerptBudget,
	})

	s.logger.Info("Generating course structure",
		zap.String("request_id", req.RequestID),
		zap.String("title", req.Title),
		zap.String("audience", req.Audience),
		zap.String("duration", string(req.Duration)),
		zap.Int("prompt_length", len(instructions)),
		zap.Bool("has_reference", req.Reference != ""),
	)

	raw, err := s.gen.GenerateStructuredJSON(ctx, instructions, structureMaxTokens, structureTemperature)
	if err != nil {
		return nil, domain.NewStructureGenerationFailure(err)
	}

	data, ok := raw.(map[string]any)
	if !ok {
		return nil, domain.NewStructureGenerationFailure(fmt.Errorf("structure response is %T, not an object", raw))
	}
	sections, ok := data["sections"].([]any)
	if !ok {
		keys := make([]string, 0, len(data))
		for k := range data {
			keys = append(keys, k)
		}
		return nil, domain.NewStructureGenerationFailure(fmt.Errorf("structure response has no sections list (keys: %s)", strings.Join(keys, ", ")))
	}

	course := s.materialize(ctx, req, sections)
	s.logger.Info("Course structure generated",
		zap.String("request_id", req.RequestID),
		zap.Int("sections", len(course.Sections)),
		zap.Int("units", len(course.Units())),
	)
	return course, nil
}

func (s *StructureSynthesizer) materialize(ctx context.Context, req domain.CourseRequest, sections []any) *domain.Course {
	course := domain.NewCourse(req.Title, req.Audience, req.Duration)
	course.Description = fmt.Sprintf("A comprehensive course on %s designed for %s learners.", req.Title, req.Audience)
	course.Metadata["generator_model"] = s.gen.ModelName()
	course.Metadata["request_id"] = req.RequestID
	course.Metadata["duration_label"] = prompt.DurationLabel(req.Duration)
	course.Metadata["source_material"] = req.Reference != ""
	if len(req.Components) > 0 {
		course.Metadata["components"] = req.Components
	}

	contentType := domain.ContentText
	if req.IncludeVideos {
		contentType = domain.ContentTextVideo
	}

	for _, rawSection := range mappings(sections) {
		section := domain.NewSection(cast.ToString(rawSection["title"]), cast.ToString(rawSection["description"]))
		section.Prerequisites = cast.ToStringSlice(rawSection["prerequisites"])

		for _, rawSub := range mappings(rawSection["subsections"]) {
			sub := domain.NewSubSection(cast.ToString(rawSub["title"]), cast.ToString(rawSub["description"]))

			for _, rawUnit := range mappings(rawSub["units"]) {
				unit := domain.NewUnit(cast.ToString(rawUnit["title"]), contentType)
				if req.IncludeVideos {
					unit.VideoURL = s.gen.FindVideoForQuery(ctx, unit.Title+" tutorial")
				}
				sub.AddUnit(unit)
			}
			section.AddSubSection(sub)
		}
		course.AddSection(section)
	}
	return course
}

// mappings keeps the object entries of a JSON array. Anything that is not an
// array yields no entries.
func mappings(v any) []map[string]any {
	items, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]map[string]any, 0, len(items))
	for _, item := range items {
		if m, ok := item.(map[string]any); ok {
			out = append(out, m)
		}
	}
	return out
}
