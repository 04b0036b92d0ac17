package domain

import (
	"sync"
	"time"
)

// Stage is a pipeline state.
type Stage string

const (
	StageSkeletonBuilding   Stage = "skeleton_building"
	StageContentEnriching   Stage = "content_enriching"
	StageAssessmentBuilding Stage = "assessment_building"
	StageDone               Stage = "done"
	StageFailed             Stage = "failed"
)

// StageTransition records when the pipeline entered a stage.
type StageTransition struct {
	Stage Stage     `json:"stage"`
	At    time.Time `json:"at"`
}

// Diagnostic is a degraded step that did not fail the request.
type Diagnostic struct {
	Code    ErrorCode `json:"code"`
	Subject string    `json:"subject"`
	Message string    `json:"message"`
}

// GenerationReport describes how a course was produced. It is safe for
// concurrent use by enrichment workers.
type GenerationReport struct {
	mu sync.Mutex

	RequestID          string            `json:"request_id"`
	Model              string            `json:"model,omitempty"`
	Stages             []StageTransition `json:"stages"`
	DegradedUnits      []string          `json:"degraded_units"`
	MissingAssessments []string          `json:"missing_assessments"`
	Diagnostics        []Diagnostic      `json:"diagnostics"`
}

func NewGenerationReport(requestID string) *GenerationReport {
	return &GenerationReport{
		RequestID:          requestID,
		Stages:             []StageTransition{},
		DegradedUnits:      []string{},
		MissingAssessments: []string{},
		Diagnostics:        []Diagnostic{},
	}
}

// Enter appends a stage transition.
func (r *GenerationReport) Enter(stage Stage) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Stages = append(r.Stages, StageTransition{Stage: stage, At: time.Now().UTC()})
}

// Current returns the latest stage, or "" before the first transition.
func (r *GenerationReport) Current() Stage {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.Stages) == 0 {
		return ""
	}
	return r.Stages[len(r.Stages)-1].Stage
}

// DegradeUnit records a unit that received fallback content.
func (r *GenerationReport) DegradeUnit(unitID string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.DegradedUnits = append(r.DegradedUnits, unitID)
	r.Diagnostics = append(r.Diagnostics, Diagnostic{Code: ErrUnitEnrichmentFailure, Subject: unitID, Message: errorText(err)})
}

// MissAssessment records an assessment that could not be produced.
func (r *GenerationReport) MissAssessment(title string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.MissingAssessments = append(r.MissingAssessments, title)
	r.Diagnostics = append(r.Diagnostics, Diagnostic{Code: ErrAssessmentGenerationFailure, Subject: title, Message: errorText(err)})
}

// Note records any other non-fatal problem.
func (r *GenerationReport) Note(code ErrorCode, subject string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Diagnostics = append(r.Diagnostics, Diagnostic{Code: code, Subject: subject, Message: errorText(err)})
}

// Degraded reports whether any step fell back.
func (r *GenerationReport) Degraded() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.DegradedUnits) > 0 || len(r.MissingAssessments) > 0
}

func errorText(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
