package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cast"
	"go.uber.org/zap"

	"github.com/ManojPokuru/course-creator-plugin/internal/domain"
	"github.com/ManojPokuru/course-creator-plugin/internal/prompt"
)

const (
	assessmentTemperature   = 0.7
	sectionAssessmentTokens = 2000
	finalAssessmentTokens   = 3000
	questionTokens          = 5000

	sectionTimeLimit    = 20
	sectionPassingScore = 70
	finalTimeLimit      = 60
	finalPassingScore   = 75
)

var errNoQuestions = errors.New("response contained no usable questions")

// AssessmentSynthesizer builds section and final assessments. Every call
// either returns a complete assessment or an AssessmentGenerationFailure.
type AssessmentSynthesizer struct {
	gen    domain.ContentGenerator
	logger *zap.Logger
}

func NewAssessmentSynthesizer(gen domain.ContentGenerator, logger *zap.Logger) *AssessmentSynthesizer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AssessmentSynthesizer{gen: gen, logger: logger}
}

var _ domain.QuestionService = (*AssessmentSynthesizer)(nil)

// SectionTitle is the title given to a section's assessment.
func SectionTitle(section string) string { return section + " - Assessment" }

// FinalTitle is the title given to the course's final assessment.
func FinalTitle(course string) string { return course + " - Final Assessment" }

// ForSection generates the quiz attached to one section.
func (s *AssessmentSynthesizer) ForSection(ctx context.Context, course *domain.Course, section *domain.Section, kinds []string) (*domain.Assessment, error) {
	title := SectionTitle(section.Title)
	questions, err := s.questions(ctx, prompt.SectionAssessment(course.Title, section.Title, kinds), sectionAssessmentTokens)
	if err != nil {
		return nil, domain.NewAssessmentGenerationFailure(title, err)
	}

	a := domain.NewAssessment(title, domain.AssessmentMixed)
	a.Questions = questions
	a.SectionID = section.ID
	a.TimeLimit = sectionTimeLimit
	a.PassingScore = sectionPassingScore
	return a, nil
}

// Final generates the course-wide exam over every section title.
func (s *AssessmentSynthesizer) Final(ctx context.Context, course *domain.Course, kinds []string) (*domain.Assessment, error) {
	title := FinalTitle(course.Title)
	sections := make([]string, 0, len(course.Sections))
	for _, sec := range course.Sections {
		sections = append(sections, sec.Title)
	}

	questions, err := s.questions(ctx, prompt.FinalAssessment(course.Title, sections, kinds), finalAssessmentTokens)
	if err != nil {
		return nil, domain.NewAssessmentGenerationFailure(title, err)
	}

	a := domain.NewAssessment(title, domain.AssessmentFinalExam)
	a.Questions = questions
	a.TimeLimit = finalTimeLimit
	a.PassingScore = finalPassingScore
	return a, nil
}

// GenerateQuestion produces a single standalone question.
func (s *AssessmentSynthesizer) GenerateQuestion(ctx context.Context, kind, topic, difficulty string) (map[string]any, error) {
	if strings.TrimSpace(topic) == "" {
		return nil, domain.NewInvalidInputError("topic is required")
	}
	raw, err := s.gen.GenerateStructuredJSON(ctx, prompt.SingleQuestion(kind, topic, difficulty), questionTokens, assessmentTemperature)
	if err != nil {
		return nil, domain.NewAssessmentGenerationFailure(fmt.Sprintf("%s question about %s", kind, topic), err)
	}
	q, ok := raw.(map[string]any)
	if !ok {
		if list := FilterQuestions(raw); len(list) > 0 {
			q = list[0]
		} else {
			return nil, domain.NewAssessmentGenerationFailure(fmt.Sprintf("%s question about %s", kind, topic), errNoQuestions)
		}
	}
	if _, ok := q["type"]; !ok && kind != "" {
		q["type"] = kind
	}
	return q, nil
}

func (s *AssessmentSynthesizer) questions(ctx context.Context, instructions string, maxTokens int) ([]map[string]any, error) {
	raw, err := s.gen.GenerateStructuredJSON(ctx, instructions, maxTokens, assessmentTemperature)
	if err != nil {
		return nil, err
	}
	questions := FilterQuestions(raw)
	if len(questions) == 0 {
		return nil, errNoQuestions
	}
	return questions, nil
}

// FilterQuestions reads questions from a {"questions": [...]} object or a
// bare array. Non-object entries are dropped, as are entries of a known
// question kind that carry no question text. Missing ids become q1, q2, ...
func FilterQuestions(raw any) []map[string]any {
	var items []any
	switch v := raw.(type) {
	case map[string]any:
		items, _ = v["questions"].([]any)
	case []any:
		items = v
	}

	out := make([]map[string]any, 0, len(items))
	for _, item := range items {
		q, ok := item.(map[string]any)
		if !ok {
			continue
		}
		kind := cast.ToString(q["type"])
		if slices.Contains(prompt.QuestionKinds, kind) && strings.TrimSpace(cast.ToString(q["question"])) == "" {
			continue
		}
		if cast.ToString(q["id"]) == "" {
			q["id"] = fmt.Sprintf("q%d", len(out)+1)
		}
		out = append(out, q)
	}
	return out
}
