package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ManojPokuru/course-creator-plugin/internal/domain"
)

func skeletonFor(t *testing.T, gen *fakeGenerator) *domain.Course {
	t.Helper()
	course, err := NewStructureSynthesizer(gen, 0, nil).Synthesize(context.Background(), domain.CourseRequest{
		Title: "Python Basics", Audience: "beginner", Duration: domain.DurationShort,
	})
	require.NoError(t, err)
	return course
}

func TestReadingTime(t *testing.T) {
	tests := []struct {
		words int
		want  int
	}{
		{0, 3}, {200, 3}, {799, 3}, {800, 4}, {2000, 10}, {3000, 15}, {10000, 15},
	}
	for _, tt := range tests {
		content := ""
		for i := 0; i < tt.words; i++ {
			content += "w "
		}
		assert.Equal(t, tt.want, ReadingTime(content), "words=%d", tt.words)
	}
}

func TestContentEnricher_Enrich(t *testing.T) {
	gen := newFakeGenerator(2, 2, 2)
	course := skeletonFor(t, gen)
	before := course.EstimatedTotalTime()
	report := domain.NewGenerationReport("r")

	e := NewContentEnricher(gen, EnrichOptions{}, zap.NewNop())
	fixed := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	e.now = func() time.Time { return fixed }

	outcomes := e.Enrich(context.Background(), course, report)
	require.Len(t, outcomes, 8)
	for i, ref := range course.Units() {
		assert.Equal(t, ref.Unit.ID, outcomes[i].UnitID, "outcomes follow document order")
		assert.True(t, outcomes[i].Generated)
		assert.Nil(t, outcomes[i].Diagnostic)
		assert.NotEmpty(t, ref.Unit.Content)
		assert.Equal(t, 4, ref.Unit.ReadingTime)
		require.Len(t, ref.Unit.Resources, 1)
		assert.Equal(t, map[string]any{
			"type":              "generated_content",
			"content_structure": "text_video_card",
			"generated_at":      "2026-01-02T03:04:05Z",
		}, ref.Unit.Resources[0])
	}
	assert.Equal(t, 8*5, before)
	assert.Equal(t, 8*4, course.EstimatedTotalTime(), "rollups follow enriched reading times")
	assert.False(t, report.Degraded())
}

func TestContentEnricher_UnitFailureFallsBack(t *testing.T) {
	gen := newFakeGenerator(1, 1, 3)
	gen.failUnit = "Unit 1.1.2"
	course := skeletonFor(t, gen)
	report := domain.NewGenerationReport("r")

	outcomes := NewContentEnricher(gen, EnrichOptions{Concurrency: 3}, nil).Enrich(context.Background(), course, report)

	units := course.Sections[0].SubSections[0].Units
	assert.Equal(t, "<p><strong>Unit 1.1.2</strong> - covering key concepts and practical applications.</p>", units[1].Content)
	assert.Equal(t, 5, units[1].ReadingTime)
	assert.Equal(t, "fallback_content", units[1].Resources[0]["type"])
	assert.Contains(t, units[0].Content, "Overview")
	assert.Contains(t, units[2].Content, "Overview")

	require.NotNil(t, outcomes[1].Diagnostic)
	assert.Equal(t, domain.ErrUnitEnrichmentFailure, outcomes[1].Diagnostic.Code)
	assert.Equal(t, []string{units[1].ID}, report.DegradedUnits)
	assert.Equal(t, 4+5+4, course.Sections[0].EstimatedTime())
}

func TestFallbackContent_EscapesTitle(t *testing.T) {
	got := FallbackContent("<script>alert(1)</script> & Co")
	assert.Contains(t, got, "<strong>&lt;script&gt;alert(1)&lt;/script&gt; &amp; Co</strong>")
	assert.NotContains(t, got, "<script>")
}

func TestContentEnricher_Concurrent(t *testing.T) {
	gen := newFakeGenerator(5, 3, 3)
	course := skeletonFor(t, gen)

	outcomes := NewContentEnricher(gen, EnrichOptions{Concurrency: 8}, nil).Enrich(context.Background(), course, nil)
	assert.Len(t, outcomes, 45)
	assert.Equal(t, 45, gen.textCalls)
	for _, ref := range course.Units() {
		assert.NotEmpty(t, ref.Unit.Content)
	}
}

func TestContentEnricher_ObjectivesAndExercises(t *testing.T) {
	gen := new(MockContentGenerator)
	course := domain.NewCourse("Python Basics", "beginner", domain.DurationShort)
	section := domain.NewSection("Intro", "")
	sub := domain.NewSubSection("Setup", "")
	sub.AddUnit(domain.NewUnit("Install", domain.ContentText))
	section.AddSubSection(sub)
	course.AddSection(section)

	gen.On("GenerateText", mock.Anything, mock.Anything, unitMaxTokens, unitTemperature).Return("<p>Install Python from python.org.</p>", nil).Once()
	gen.On("GenerateText", mock.Anything, mock.MatchedBy(func(p string) bool { return containsAll(p, "Create 2-3 practical exercises") }), exercisesMaxTokens, exercisesTemperature).
		Return("Exercise one: install.\n\nExercise two: run REPL.\n\n\n\nExercise three.\n\nExercise four.", nil).Once()
	gen.On("GenerateText", mock.Anything, mock.MatchedBy(func(p string) bool { return containsAll(p, "learning objectives") }), objectivesMaxTokens, objectivesTemperature).
		Return("<ul>\n<li>By the end of this unit, students will be able to install Python</li>\n<li>Students will run scripts</li>\n</ul>", nil).Once()

	e := NewContentEnricher(gen, EnrichOptions{LearningObjectives: true, PracticalExercises: true}, nil)
	e.Enrich(context.Background(), course, nil)

	unit := sub.Units[0]
	require.Len(t, unit.Exercises, 3)
	assert.Equal(t, "exercise_1", unit.Exercises[0]["id"])
	assert.Equal(t, "Exercise 3", unit.Exercises[2]["title"])
	assert.Equal(t, "Exercise three.", unit.Exercises[2]["description"])
	assert.Equal(t, []string{
		"By the end of this unit, students will be able to install Python",
		"Students will run scripts",
	}, sub.LearningObjectives)
	gen.AssertExpectations(t)
}

func TestContentEnricher_ObjectivesFallback(t *testing.T) {
	gen := new(MockContentGenerator)
	course := domain.NewCourse("C", "beginner", domain.DurationShort)
	section := domain.NewSection("S", "")
	section.AddSubSection(domain.NewSubSection("Loops", ""))
	course.AddSection(section)

	gen.On("GenerateText", mock.Anything, mock.Anything, objectivesMaxTokens, objectivesTemperature).Return("", errors.New("quota"))

	NewContentEnricher(gen, EnrichOptions{LearningObjectives: true}, nil).Enrich(context.Background(), course, nil)
	assert.Equal(t, []string{"Understand key concepts related to Loops"}, section.SubSections[0].LearningObjectives)
}

func TestParseObjectives(t *testing.T) {
	text := "Here you go\n<li>You will learn A</li>\n<li>Able to do B</li>\n<li>Will C</li>\n<li>Will D</li>\n<li>Will E</li>"
	assert.Equal(t, []string{"You will learn A", "Able to do B", "Will C", "Will D"}, ParseObjectives(text))
	assert.Empty(t, ParseObjectives("<ul></ul>"))
}

func TestParseExercises(t *testing.T) {
	assert.Empty(t, ParseExercises("   \n\n  "))
	got := ParseExercises("Only one\r\nwith two lines")
	require.Len(t, got, 1)
	assert.Equal(t, "Only one\nwith two lines", got[0]["description"])
	assert.Equal(t, 15, got[0]["estimated_time"])
	assert.Equal(t, "practical", got[0]["type"])
}
