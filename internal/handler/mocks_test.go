package handler_test

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/ManojPokuru/course-creator-plugin/internal/domain"
)

// --- Manual Mocks ---

type MockCourseService struct {
	GenerateFunc func(ctx context.Context, req domain.CourseRequest) (*domain.Course, *domain.GenerationReport, error)
}

func (m *MockCourseService) Generate(ctx context.Context, req domain.CourseRequest) (*domain.Course, *domain.GenerationReport, error) {
	if m.GenerateFunc != nil {
		return m.GenerateFunc(ctx, req)
	}
	panic("MockCourseService.GenerateFunc not implemented")
}

type MockResultStore struct {
	PutFunc func(ctx context.Context, requestID string, course *domain.Course, report *domain.GenerationReport) error
	GetFunc func(ctx context.Context, requestID string) (*domain.Course, *domain.GenerationReport, error)
}

func (m *MockResultStore) Put(ctx context.Context, requestID string, course *domain.Course, report *domain.GenerationReport) error {
	if m.PutFunc != nil {
		return m.PutFunc(ctx, requestID, course, report)
	}
	return nil
}

func (m *MockResultStore) Get(ctx context.Context, requestID string) (*domain.Course, *domain.GenerationReport, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, requestID)
	}
	return nil, nil, domain.NewNotFoundError("course result not found")
}

type MockQuestionService struct {
	GenerateQuestionFunc func(ctx context.Context, kind, topic, difficulty string) (map[string]any, error)
}

func (m *MockQuestionService) GenerateQuestion(ctx context.Context, kind, topic, difficulty string) (map[string]any, error) {
	if m.GenerateQuestionFunc != nil {
		return m.GenerateQuestionFunc(ctx, kind, topic, difficulty)
	}
	panic("MockQuestionService.GenerateQuestionFunc not implemented")
}

type MockExtractor struct {
	FromPDFFunc  func(r io.Reader) (string, error)
	FromTextFunc func(text string) (string, error)
}

func (m *MockExtractor) FromPDF(r io.Reader) (string, error) {
	if m.FromPDFFunc != nil {
		return m.FromPDFFunc(r)
	}
	return "", errors.New("FromPDFFunc not set")
}

func (m *MockExtractor) FromText(text string) (string, error) {
	if m.FromTextFunc != nil {
		return m.FromTextFunc(text)
	}
	return text, nil
}

// pingCache implements domain.Cache with only Ping wired.
type pingCache struct {
	domain.Cache
	err error
}

func (p pingCache) Ping(context.Context) error { return p.err }

var _ domain.Cache = pingCache{}

func testCourse() *domain.Course {
	course := domain.NewCourse("Python Basics", "beginner", domain.DurationShort)
	section := domain.NewSection("Introduction", "")
	sub := domain.NewSubSection("Setup", "")
	for _, title := range []string{"Installing Python", "First Script", "Variables"} {
		u := domain.NewUnit(title, domain.ContentText)
		u.Content = "<p>" + title + "</p>"
		sub.AddUnit(u)
	}
	section.AddSubSection(sub)
	course.AddSection(section)
	course.CreatedAt = time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	return course
}
