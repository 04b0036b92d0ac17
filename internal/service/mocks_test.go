package service

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/stretchr/testify/mock"

	"github.com/ManojPokuru/course-creator-plugin/internal/domain"
)

// --- MockContentGenerator ---
type MockContentGenerator struct {
	mock.Mock
}

var _ domain.ContentGenerator = (*MockContentGenerator)(nil)

func (m *MockContentGenerator) GenerateStructuredJSON(ctx context.Context, instructions string, maxOutputTokens int, temperature float64) (any, error) {
	args := m.Called(ctx, instructions, maxOutputTokens, temperature)
	return args.Get(0), args.Error(1)
}

func (m *MockContentGenerator) GenerateText(ctx context.Context, instructions string, maxOutputTokens int, temperature float64) (string, error) {
	args := m.Called(ctx, instructions, maxOutputTokens, temperature)
	return args.String(0), args.Error(1)
}

func (m *MockContentGenerator) FindVideoForQuery(ctx context.Context, query string) string {
	args := m.Called(ctx, query)
	return args.String(0)
}

func (m *MockContentGenerator) ModelName() string {
	return "mock-model"
}

// --- fakeGenerator ---

// fakeGenerator answers by call shape: the token budget tells structure,
// assessment and unit calls apart.
type fakeGenerator struct {
	mu sync.Mutex

	sections, subsections, units int
	structureErr                 error
	assessmentErr                map[string]error // keyed by a substring of the prompt
	failUnit                     string           // unit title whose content call fails
	video                        string

	textCalls  int
	videoCalls []string
}

func newFakeGenerator(sections, subsections, units int) *fakeGenerator {
	return &fakeGenerator{sections: sections, subsections: subsections, units: units, assessmentErr: map[string]error{}}
}

func (f *fakeGenerator) GenerateStructuredJSON(_ context.Context, instructions string, maxOutputTokens int, _ float64) (any, error) {
	switch maxOutputTokens {
	case structureMaxTokens:
		if f.structureErr != nil {
			return nil, f.structureErr
		}
		return f.skeleton(), nil
	default:
		for marker, err := range f.assessmentErr {
			if strings.Contains(instructions, marker) {
				return nil, err
			}
		}
		return map[string]any{"questions": []any{
			map[string]any{"id": "q1", "type": "multiple-choice", "question": "<p>What is a variable?</p>", "options": []any{"a", "b"}, "correct_answer": "a"},
			map[string]any{"type": "numerical", "question": "<p>2 + 2?</p>", "correct_answer": "4"},
		}}, nil
	}
}

func (f *fakeGenerator) GenerateText(_ context.Context, instructions string, _ int, _ float64) (string, error) {
	f.mu.Lock()
	f.textCalls++
	f.mu.Unlock()
	if f.failUnit != "" && strings.Contains(instructions, "Unit: "+f.failUnit+"\n") {
		return "", domain.NewGenerationFailure("model timed out", context.DeadlineExceeded)
	}
	return "<h2>Overview</h2><p>" + strings.Repeat("word ", 900) + "</p>", nil
}

func (f *fakeGenerator) FindVideoForQuery(_ context.Context, query string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.videoCalls = append(f.videoCalls, query)
	return f.video
}

func (f *fakeGenerator) ModelName() string { return "fake-model" }

func (f *fakeGenerator) skeleton() map[string]any {
	sections := make([]any, 0, f.sections)
	for s := 1; s <= f.sections; s++ {
		subs := make([]any, 0, f.subsections)
		for ss := 1; ss <= f.subsections; ss++ {
			units := make([]any, 0, f.units)
			for u := 1; u <= f.units; u++ {
				units = append(units, map[string]any{
					"id":           "model-supplied-id",
					"title":        fmt.Sprintf("Unit %d.%d.%d", s, ss, u),
					"content_type": "text_video",
				})
			}
			subs = append(subs, map[string]any{
				"title":       fmt.Sprintf("Subsection %d.%d", s, ss),
				"description": "<p>Subsection description</p>",
				"units":       units,
			})
		}
		sections = append(sections, map[string]any{
			"title":       fmt.Sprintf("Section %d", s),
			"description": "<p>Section description</p>",
			"subsections": subs,
		})
	}
	return map[string]any{"sections": sections}
}
