package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ManojPokuru/course-creator-plugin/internal/domain"
)

func TestAssessmentSynthesizer_ForSection(t *testing.T) {
	gen := new(MockContentGenerator)
	gen.On("GenerateStructuredJSON", mock.Anything, mock.MatchedBy(func(p string) bool {
		return containsAll(p, "Course: Python Basics", "Section: Variables", "Assessment Types: checkbox")
	}), sectionAssessmentTokens, assessmentTemperature).Return(map[string]any{
		"questions": []any{
			map[string]any{"type": "checkbox", "question": "<p>Pick two</p>"},
			"not a question",
			map[string]any{"type": "multiple-choice", "question": ""},
			map[string]any{"type": "essay", "prompt": "unknown kind passes through"},
		},
	}, nil)

	course := domain.NewCourse("Python Basics", "beginner", domain.DurationShort)
	section := domain.NewSection("Variables", "")
	course.AddSection(section)

	a, err := NewAssessmentSynthesizer(gen, zap.NewNop()).ForSection(context.Background(), course, section, []string{"checkbox"})
	require.NoError(t, err)
	assert.Equal(t, "Variables - Assessment", a.Title)
	assert.Equal(t, domain.AssessmentMixed, a.AssessmentType)
	assert.Equal(t, section.ID, a.SectionID)
	assert.Equal(t, 20, a.TimeLimit)
	assert.Equal(t, 70, a.PassingScore)
	require.Len(t, a.Questions, 2)
	assert.Equal(t, "q1", a.Questions[0]["id"])
	assert.Equal(t, "essay", a.Questions[1]["type"])
	gen.AssertExpectations(t)
}

func TestAssessmentSynthesizer_Final(t *testing.T) {
	gen := new(MockContentGenerator)
	gen.On("GenerateStructuredJSON", mock.Anything, mock.MatchedBy(func(p string) bool {
		return containsAll(p, "Sections Covered: Intro, Loops")
	}), finalAssessmentTokens, assessmentTemperature).Return([]any{
		map[string]any{"id": "final-1", "type": "numerical", "question": "<p>1+1?</p>"},
	}, nil)

	course := domain.NewCourse("Python Basics", "beginner", domain.DurationShort)
	course.AddSection(domain.NewSection("Intro", ""))
	course.AddSection(domain.NewSection("Loops", ""))

	a, err := NewAssessmentSynthesizer(gen, nil).Final(context.Background(), course, nil)
	require.NoError(t, err)
	assert.Equal(t, "Python Basics - Final Assessment", a.Title)
	assert.Equal(t, domain.AssessmentFinalExam, a.AssessmentType)
	assert.Empty(t, a.SectionID)
	assert.Equal(t, 60, a.TimeLimit)
	assert.Equal(t, 75, a.PassingScore)
	assert.Equal(t, "final-1", a.Questions[0]["id"])
}

func TestAssessmentSynthesizer_Failures(t *testing.T) {
	tests := []struct {
		name     string
		response any
		err      error
	}{
		{"generation failure", nil, domain.NewGenerationFailure("unparseable", errors.New("bad json"))},
		{"no questions key", map[string]any{"quiz": []any{}}, nil},
		{"only junk entries", map[string]any{"questions": []any{1, "two"}}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := new(MockContentGenerator)
			gen.On("GenerateStructuredJSON", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(tt.response, tt.err)
			course := domain.NewCourse("C", "beginner", domain.DurationShort)
			section := domain.NewSection("S", "")
			course.AddSection(section)

			a, err := NewAssessmentSynthesizer(gen, nil).ForSection(context.Background(), course, section, nil)
			assert.Nil(t, a)
			assert.True(t, domain.HasCode(err, domain.ErrAssessmentGenerationFailure))
		})
	}
}

func TestAssessmentSynthesizer_GenerateQuestion(t *testing.T) {
	gen := new(MockContentGenerator)
	gen.On("GenerateStructuredJSON", mock.Anything, mock.MatchedBy(func(p string) bool {
		return containsAll(p, "hard difficulty dropdown question about recursion")
	}), questionTokens, assessmentTemperature).Return(map[string]any{"question": "<p>Base case?</p>"}, nil)

	s := NewAssessmentSynthesizer(gen, nil)
	q, err := s.GenerateQuestion(context.Background(), "dropdown", "recursion", "hard")
	require.NoError(t, err)
	assert.Equal(t, "dropdown", q["type"])

	_, err = s.GenerateQuestion(context.Background(), "dropdown", "  ", "")
	assert.True(t, domain.HasCode(err, domain.ErrInvalidInput))
}
