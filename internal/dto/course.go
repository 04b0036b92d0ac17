package dto

import (
	"github.com/ManojPokuru/course-creator-plugin/internal/domain"
)

// GenerateCourseRequest is the body of POST /api/generate. It is accepted as
// JSON or as multipart form data; a source_pdf file part may accompany the
// form.
// @Description Course generation request
type GenerateCourseRequest struct {
	CourseTopic     string   `json:"course_topic" form:"course_topic" validate:"required,max=200"`
	CourseLevel     string   `json:"course_level" form:"course_level" validate:"required,max=100"`
	Duration        string   `json:"duration,omitempty" form:"duration" validate:"omitempty,oneof=short medium long"`
	NumModules      int      `json:"num_modules,omitempty" form:"num_modules" validate:"omitempty,min=1,max=50"`
	Components      []string `json:"components,omitempty" form:"components" validate:"omitempty,dive,oneof=text video images audio"`
	AssessmentTypes []string `json:"assessment_types,omitempty" form:"assessment_types" validate:"omitempty,dive,oneof=multiple-choice checkbox text-input dropdown numerical"`
	IncludeVideos   *bool    `json:"include_videos,omitempty" form:"include_videos"`
	SourceText      string   `json:"source_text,omitempty" form:"source_text"`
}

// CourseResponse wraps a generated course.
// @Description Generated course envelope
type CourseResponse struct {
	Result    string                   `json:"result"`
	RequestID string                   `json:"request_id"`
	JSON      *domain.Course           `json:"json" swaggertype:"object"`
	Report    *domain.GenerationReport `json:"report,omitempty"`
}

// ModulesResponse is the flattened view of a generated course.
type ModulesResponse struct {
	Result  string         `json:"result"`
	Title   string         `json:"title"`
	Level   string         `json:"level"`
	Modules []ModuleEntity `json:"modules"`
}

type ModuleEntity struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// GenerateQuestionRequest is the body of POST /api/questions.
type GenerateQuestionRequest struct {
	Type       string `json:"type" validate:"required,oneof=multiple-choice checkbox text-input dropdown numerical"`
	Topic      string `json:"topic" validate:"required,max=200"`
	Difficulty string `json:"difficulty,omitempty" validate:"omitempty,oneof=easy medium hard"`
}

type QuestionResponse struct {
	Result   string         `json:"result"`
	Question map[string]any `json:"question"`
}

// ErrorResponse is the error envelope of every endpoint.
type ErrorResponse struct {
	Result  string                   `json:"result"`
	Message string                   `json:"message"`
	Code    string                   `json:"code,omitempty"`
	Errors  []domain.ValidationError `json:"errors,omitempty"`
}

type HealthResponse struct {
	Status string `json:"status"`
	Cache  string `json:"cache"`
	Model  string `json:"model"`
}

const (
	ResultSuccess = "success"
	ResultError   = "error"
)
