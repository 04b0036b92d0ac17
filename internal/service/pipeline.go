package service

import (
	"context"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/ManojPokuru/course-creator-plugin/internal/domain"
	"github.com/ManojPokuru/course-creator-plugin/internal/prompt"
	"github.com/ManojPokuru/course-creator-plugin/internal/telemetry"
	"github.com/ManojPokuru/course-creator-plugin/internal/util"
)

// pipeline implements domain.CourseService.
type pipeline struct {
	structure    *StructureSynthesizer
	enricher     *ContentEnricher
	assessments  *AssessmentSynthesizer
	results      domain.CourseResultStore
	defaultKinds []string
	tracer       trace.Tracer
	logger       *zap.Logger
}

// NewPipeline wires the three generation stages. results may be nil.
func NewPipeline(
	structure *StructureSynthesizer,
	enricher *ContentEnricher,
	assessments *AssessmentSynthesizer,
	results domain.CourseResultStore,
	defaultKinds []string,
	logger *zap.Logger,
) domain.CourseService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if len(defaultKinds) == 0 {
		defaultKinds = prompt.QuestionKinds
	}
	return &pipeline{
		structure:    structure,
		enricher:     enricher,
		assessments:  assessments,
		results:      results,
		defaultKinds: defaultKinds,
		tracer:       telemetry.Tracer(),
		logger:       logger,
	}
}

// Generate runs skeleton_building, content_enriching and assessment_building
// in order. Only the skeleton stage can fail the request.
func (p *pipeline) Generate(ctx context.Context, req domain.CourseRequest) (*domain.Course, *domain.GenerationReport, error) {
	req, err := p.normalize(req)
	if err != nil {
		return nil, nil, err
	}

	report := domain.NewGenerationReport(req.RequestID)
	start := time.Now()

	ctx, span := p.tracer.Start(ctx, "course.generate", trace.WithAttributes(
		attribute.String("request.id", req.RequestID),
		attribute.String("course.title", req.Title),
		attribute.String("course.audience", req.Audience),
		attribute.String("course.duration", string(req.Duration)),
	))
	defer span.End()

	report.Enter(domain.StageSkeletonBuilding)
	stageCtx, stageSpan := p.tracer.Start(ctx, string(domain.StageSkeletonBuilding))
	course, err := p.structure.Synthesize(stageCtx, req)
	if err != nil {
		stageSpan.RecordError(err)
		stageSpan.SetStatus(codes.Error, "structure generation failed")
		stageSpan.End()
		span.SetStatus(codes.Error, err.Error())
		report.Enter(domain.StageFailed)
		p.logger.Error("Course generation failed",
			zap.String("request_id", req.RequestID),
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err),
		)
		return nil, report, err
	}
	stageSpan.SetAttributes(attribute.Int("course.units", len(course.Units())))
	stageSpan.End()
	report.Model = p.structure.gen.ModelName()

	report.Enter(domain.StageContentEnriching)
	stageCtx, stageSpan = p.tracer.Start(ctx, string(domain.StageContentEnriching))
	p.enricher.Enrich(stageCtx, course, report)
	stageSpan.SetAttributes(attribute.Int("units.degraded", len(report.DegradedUnits)))
	stageSpan.End()

	report.Enter(domain.StageAssessmentBuilding)
	stageCtx, stageSpan = p.tracer.Start(ctx, string(domain.StageAssessmentBuilding))
	p.buildAssessments(stageCtx, course, req.AssessmentKinds, report)
	stageSpan.SetAttributes(attribute.Int("assessments.missing", len(report.MissingAssessments)))
	stageSpan.End()

	report.Enter(domain.StageDone)

	if p.results != nil {
		if err := p.results.Put(ctx, req.RequestID, course, report); err != nil {
			p.logger.Warn("Failed to store course result", zap.String("request_id", req.RequestID), zap.Error(err))
			report.Note(domain.ErrInternal, "result_cache", err)
		}
	}

	p.logger.Info("Course generation finished",
		zap.String("request_id", req.RequestID),
		zap.String("course_id", course.ID),
		zap.Int("sections", len(course.Sections)),
		zap.Int("assessments", len(course.Assessments)),
		zap.Int("estimated_total_time", course.EstimatedTotalTime()),
		zap.Strings("degraded_units", report.DegradedUnits),
		zap.Strings("missing_assessments", report.MissingAssessments),
		zap.Duration("elapsed", time.Since(start)),
	)
	return course, report, nil
}

// buildAssessments attaches one assessment per section and a final exam.
// Failures are logged and recorded; the course keeps whatever succeeded.
func (p *pipeline) buildAssessments(ctx context.Context, course *domain.Course, kinds []string, report *domain.GenerationReport) {
	for _, section := range course.Sections {
		a, err := p.assessments.ForSection(ctx, course, section, kinds)
		if err != nil {
			p.logger.Warn("Section assessment skipped", zap.String("section_id", section.ID), zap.Error(err))
			report.MissAssessment(SectionTitle(section.Title), err)
			continue
		}
		course.AddAssessment(a)
	}

	final, err := p.assessments.Final(ctx, course, kinds)
	if err != nil {
		p.logger.Warn("Final assessment skipped", zap.String("course_id", course.ID), zap.Error(err))
		report.MissAssessment(FinalTitle(course.Title), err)
		return
	}
	course.AddAssessment(final)
}

func (p *pipeline) normalize(req domain.CourseRequest) (domain.CourseRequest, error) {
	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		return req, domain.NewValidationError(domain.ValidationErrors{domain.NewMissingFieldError("course_topic")})
	}
	req.Audience = strings.TrimSpace(req.Audience)
	if req.Audience == "" {
		req.Audience = domain.DefaultAudience
	}
	if req.Duration == "" {
		req.Duration = domain.DefaultDuration
	}
	if len(req.AssessmentKinds) == 0 {
		req.AssessmentKinds = p.defaultKinds
	}
	if req.RequestID == "" {
		req.RequestID = util.NewULID()
	}
	return req, nil
}
