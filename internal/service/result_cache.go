package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/ManojPokuru/course-creator-plugin/internal/cache"
	"github.com/ManojPokuru/course-creator-plugin/internal/domain"
)

const (
	fieldCourse = "course"
	fieldReport = "report"
)

// resultCache stores finished courses in a hash keyed by request id with the
// course and its report as separate fields.
type resultCache struct {
	cache  domain.Cache
	ttl    time.Duration
	logger *zap.Logger
}

// NewCourseResultStore returns a cache-backed store, or a no-op store when
// no cache is configured.
func NewCourseResultStore(c domain.Cache, ttl time.Duration, logger *zap.Logger) domain.CourseResultStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	if c == nil {
		logger.Warn("CourseResultStore initialized with nil cache. Results will not be retrievable.")
		return &noopResultCache{}
	}
	return &resultCache{cache: c, ttl: ttl, logger: logger}
}

func (s *resultCache) Put(ctx context.Context, requestID string, course *domain.Course, report *domain.GenerationReport) error {
	if course == nil {
		return domain.NewInvalidInputError("cannot cache nil course")
	}
	key := cache.CourseResultKey(requestID)

	courseJSON, err := json.Marshal(course)
	if err != nil {
		return domain.NewInternalError("failed to marshal course for caching", err)
	}
	if err := s.cache.HSet(ctx, key, fieldCourse, string(courseJSON)); err != nil {
		return domain.NewInternalError(fmt.Sprintf("failed to cache course for key %s", key), err)
	}

	if report != nil {
		reportJSON, err := json.Marshal(report)
		if err != nil {
			return domain.NewInternalError("failed to marshal generation report", err)
		}
		if err := s.cache.HSet(ctx, key, fieldReport, string(reportJSON)); err != nil {
			return domain.NewInternalError(fmt.Sprintf("failed to cache report for key %s", key), err)
		}
	}

	if s.ttl > 0 {
		if err := s.cache.Expire(ctx, key, s.ttl); err != nil {
			return domain.NewInternalError(fmt.Sprintf("failed to set expiry for key %s", key), err)
		}
	}
	s.logger.Debug("Cached course result", zap.String("key", key), zap.Duration("ttl", s.ttl))
	return nil
}

func (s *resultCache) Get(ctx context.Context, requestID string) (*domain.Course, *domain.GenerationReport, error) {
	key := cache.CourseResultKey(requestID)
	fields, err := s.cache.HGetAll(ctx, key)
	if err != nil {
		if errors.Is(err, domain.ErrCacheMiss) {
			return nil, nil, notFound(requestID)
		}
		return nil, nil, domain.NewInternalError(fmt.Sprintf("failed to read course result for key %s", key), err)
	}

	courseJSON, ok := fields[fieldCourse]
	if !ok || courseJSON == "" {
		return nil, nil, notFound(requestID)
	}

	var course domain.Course
	if err := json.Unmarshal([]byte(courseJSON), &course); err != nil {
		return nil, nil, domain.NewInternalError(fmt.Sprintf("failed to unmarshal course for key %s", key), err)
	}

	var report *domain.GenerationReport
	if raw := fields[fieldReport]; raw != "" {
		report = &domain.GenerationReport{}
		if err := json.Unmarshal([]byte(raw), report); err != nil {
			s.logger.Warn("Discarding unreadable generation report", zap.String("key", key), zap.Error(err))
			report = nil
		}
	}
	return &course, report, nil
}

func notFound(requestID string) error {
	return domain.NewNotFoundError(fmt.Sprintf("no course found for request %s", requestID))
}

// noopResultCache is used when no cache is configured.
type noopResultCache struct{}

func (noopResultCache) Put(context.Context, string, *domain.Course, *domain.GenerationReport) error {
	return nil
}

func (noopResultCache) Get(_ context.Context, requestID string) (*domain.Course, *domain.GenerationReport, error) {
	return nil, nil, notFound(requestID)
}
