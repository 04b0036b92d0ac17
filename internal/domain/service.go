package domain

import "context"

// CourseRequest is one course generation request.
type CourseRequest struct {
	RequestID       string
	Title           string
	Audience        string
	Duration        Duration
	Components      []string
	AssessmentKinds []string
	IncludeVideos   bool
	Reference       string // extracted source material, empty when none was supplied
}

// CourseService runs the full generation pipeline for one request.
type CourseService interface {
	// Generate builds a complete course. It fails only when no skeleton could
	// be produced; later stages degrade and record what went wrong in the report.
	Generate(ctx context.Context, req CourseRequest) (*Course, *GenerationReport, error)
}

// CourseResultStore keeps finished courses for later retrieval by request id.
type CourseResultStore interface {
	Put(ctx context.Context, requestID string, course *Course, report *GenerationReport) error
	Get(ctx context.Context, requestID string) (*Course, *GenerationReport, error)
}

// QuestionService produces standalone questions on demand.
type QuestionService interface {
	GenerateQuestion(ctx context.Context, kind, topic, difficulty string) (map[string]any, error)
}
