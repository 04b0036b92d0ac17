package service

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ManojPokuru/course-creator-plugin/internal/domain"
)

func exportCourse() *domain.Course {
	course := domain.NewCourse("Python Basics", "beginner", domain.DurationShort)
	course.Description = "A comprehensive course on Python Basics designed for beginner learners."

	section := domain.NewSection("Introduction", "<p>Start <strong>here</strong></p>")
	sub := domain.NewSubSection("Setup", "")
	sub.LearningObjectives = []string{"Students will install Python"}
	u1 := domain.NewUnit("Installing <Python>", domain.ContentTextVideo)
	u1.Content = "<p>Download the installer.</p>"
	u1.VideoURL = "https://www.youtube.com/embed/dQw4w9WgXcQ"
	u2 := domain.NewUnit("First Script", domain.ContentText)
	u2.Content = "<p>print('hi')</p>"
	sub.AddUnit(u1)
	sub.AddUnit(u2)
	section.AddSubSection(sub)
	course.AddSection(section)
	course.AddSection(domain.NewSection("Empty", ""))
	return course
}

func TestBuildComponentPlan(t *testing.T) {
	plan := BuildComponentPlan(exportCourse())

	assert.Equal(t, "Python Basics", plan.CourseTitle)
	assert.Equal(t, 2, plan.TotalModules)
	require.Len(t, plan.Components, 2)

	first := plan.Components[0]
	assert.Equal(t, "vertical", first.Type)
	assert.Equal(t, 1, first.ModuleNumber)
	require.Len(t, first.Blocks, 2)
	assert.Equal(t, "html", first.Blocks[0].Type)
	assert.Equal(t, "<p>Download the installer.</p>", first.Blocks[0].Content)
	assert.Equal(t, "10 min", first.Metadata.Duration)
	assert.Equal(t, []string{"Students will install Python"}, first.Metadata.LearningObjectives)

	empty := plan.Components[1]
	assert.Empty(t, empty.Blocks)
	assert.Equal(t, "", empty.Metadata.Duration)

	data, err := json.Marshal(plan)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"blocks":[]`)
}

func TestComponentHTML(t *testing.T) {
	html, err := ComponentHTML(ComponentView{
		Title:      "Loops & <Iteration>",
		Content:    "<p>for i in range(3)</p>",
		Objectives: []string{"Use <for> loops"},
		Duration:   "7 min",
	})
	require.NoError(t, err)
	assert.Contains(t, html, "<h2>Loops &amp; &lt;Iteration&gt;</h2>")
	assert.Contains(t, html, "<p>for i in range(3)</p>")
	assert.Contains(t, html, "<li>Use &lt;for&gt; loops</li>")
	assert.Contains(t, html, "<strong>Estimated Time:</strong> 7 min")
	assert.NotContains(t, html, "module-video")
	assert.NotContains(t, html, "module-description")
}

func TestBuildOLX(t *testing.T) {
	olx, err := BuildOLX(exportCourse())
	require.NoError(t, err)

	assert.Equal(t, "Python Basics", olx.DisplayName)
	require.Len(t, olx.Chapters, 2)
	chapter := olx.Chapters[0]
	assert.Equal(t, "chapter_1", chapter.URLName)
	require.Len(t, chapter.Sequentials, 1)
	verticals := chapter.Sequentials[0].Verticals
	require.Len(t, verticals, 2)
	assert.Equal(t, "vertical_1_1_1", verticals[0].URLName)
	assert.Equal(t, "Installing <Python> - Content", verticals[0].DisplayName)
	assert.Equal(t, "html_1_1_2", verticals[1].Components[0].URLName)
	assert.Contains(t, verticals[0].Components[0].Data, `src="https://www.youtube.com/embed/dQw4w9WgXcQ"`)
	assert.Empty(t, olx.Chapters[1].Sequentials)

	doc, err := olx.XML()
	require.NoError(t, err)
	text := string(doc)
	assert.True(t, strings.HasPrefix(text, "<?xml"))
	assert.Contains(t, text, `<course display_name="Python Basics">`)
	assert.Contains(t, text, `<chapter display_name="Introduction" url_name="chapter_1">`)
	assert.Contains(t, text, `<html display_name="First Script" url_name="html_1_1_2"><![CDATA[`)
	assert.Contains(t, text, `display_name="Installing &lt;Python&gt; - Content"`)
}
