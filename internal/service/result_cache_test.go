package service_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ManojPokuru/course-creator-plugin/internal/domain"
	"github.com/ManojPokuru/course-creator-plugin/internal/service"
)

// ManualMockCache for domain.Cache interface
type ManualMockCache struct {
	GetFunc     func(ctx context.Context, key string) (string, error)
	SetFunc     func(ctx context.Context, key string, value string, ttl time.Duration) error
	HSetFunc    func(ctx context.Context, key string, field string, value string) error
	HGetAllFunc func(ctx context.Context, key string) (map[string]string, error)
	ExpireFunc  func(ctx context.Context, key string, expiration time.Duration) error
	PingFunc    func(ctx context.Context) error
}

var _ domain.Cache = (*ManualMockCache)(nil)

func (m *ManualMockCache) Get(ctx context.Context, key string) (string, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, key)
	}
	return "", errors.New("GetFunc not set")
}

func (m *ManualMockCache) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	if m.SetFunc != nil {
		return m.SetFunc(ctx, key, value, ttl)
	}
	return errors.New("SetFunc not set")
}

func (m *ManualMockCache) HSet(ctx context.Context, key string, field string, value string) error {
	if m.HSetFunc != nil {
		return m.HSetFunc(ctx, key, field, value)
	}
	return errors.New("HSetFunc not set")
}

func (m *ManualMockCache) HGetAll(ctx context.Context, key string) (map[string]string, error) {
	if m.HGetAllFunc != nil {
		return m.HGetAllFunc(ctx, key)
	}
	return nil, errors.New("HGetAllFunc not set")
}

func (m *ManualMockCache) Expire(ctx context.Context, key string, expiration time.Duration) error {
	if m.ExpireFunc != nil {
		return m.ExpireFunc(ctx, key, expiration)
	}
	return errors.New("ExpireFunc not set")
}

func (m *ManualMockCache) Ping(ctx context.Context) error {
	if m.PingFunc != nil {
		return m.PingFunc(ctx)
	}
	return errors.New("PingFunc not set")
}

func sampleCourse() *domain.Course {
	course := domain.NewCourse("Python Basics", "beginner", domain.DurationShort)
	section := domain.NewSection("Introduction", "<p>Start here</p>")
	sub := domain.NewSubSection("Setup", "")
	sub.AddUnit(domain.NewUnit("Installing Python", domain.ContentText))
	section.AddSubSection(sub)
	course.AddSection(section)
	return course
}

func TestCourseResultStore_PutAndGet(t *testing.T) {
	stored := map[string]string{}
	var expiredKey string
	var expiredTTL time.Duration

	mockCache := &ManualMockCache{
		HSetFunc: func(_ context.Context, key, field, value string) error {
			assert.Equal(t, "coursecreator:course:result:req123", key)
			stored[field] = value
			return nil
		},
		ExpireFunc: func(_ context.Context, key string, ttl time.Duration) error {
			expiredKey, expiredTTL = key, ttl
			return nil
		},
		HGetAllFunc: func(_ context.Context, key string) (map[string]string, error) {
			assert.Equal(t, "coursecreator:course:result:req123", key)
			return stored, nil
		},
	}
	store := service.NewCourseResultStore(mockCache, time.Hour, zap.NewNop())
	ctx := context.Background()

	course := sampleCourse()
	report := domain.NewGenerationReport("req123")
	report.Enter(domain.StageDone)

	require.NoError(t, store.Put(ctx, "req123", course, report))
	assert.Contains(t, stored, "course")
	assert.Contains(t, stored, "report")
	assert.Equal(t, "coursecreator:course:result:req123", expiredKey)
	assert.Equal(t, time.Hour, expiredTTL)

	gotCourse, gotReport, err := store.Get(ctx, "req123")
	require.NoError(t, err)
	want, _ := json.Marshal(course)
	got, _ := json.Marshal(gotCourse)
	assert.JSONEq(t, string(want), string(got))
	require.NotNil(t, gotReport)
	assert.Equal(t, domain.StageDone, gotReport.Current())
}

func TestCourseResultStore_Get(t *testing.T) {
	ctx := context.Background()

	t.Run("Cache Miss", func(t *testing.T) {
		store := service.NewCourseResultStore(&ManualMockCache{
			HGetAllFunc: func(context.Context, string) (map[string]string, error) { return map[string]string{}, nil },
		}, time.Hour, nil)
		course, _, err := store.Get(ctx, "missing")
		assert.Nil(t, course)
		assert.True(t, domain.HasCode(err, domain.ErrNotFound))
	})

	t.Run("Cache Error", func(t *testing.T) {
		expectedErr := errors.New("some cache system error")
		store := service.NewCourseResultStore(&ManualMockCache{
			HGetAllFunc: func(context.Context, string) (map[string]string, error) { return nil, expectedErr },
		}, time.Hour, nil)
		_, _, err := store.Get(ctx, "req")
		assert.True(t, domain.HasCode(err, domain.ErrInternal))
		assert.ErrorIs(t, err, expectedErr)
	})

	t.Run("Deserialization Error", func(t *testing.T) {
		store := service.NewCourseResultStore(&ManualMockCache{
			HGetAllFunc: func(context.Context, string) (map[string]string, error) {
				return map[string]string{"course": "{title: 'bad json'"}, nil
			},
		}, time.Hour, nil)
		_, _, err := store.Get(ctx, "req")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to unmarshal course")
	})

	t.Run("Unreadable report is dropped", func(t *testing.T) {
		data, _ := json.Marshal(sampleCourse())
		store := service.NewCourseResultStore(&ManualMockCache{
			HGetAllFunc: func(context.Context, string) (map[string]string, error) {
				return map[string]string{"course": string(data), "report": "nope"}, nil
			},
		}, time.Hour, nil)
		course, report, err := store.Get(ctx, "req")
		require.NoError(t, err)
		assert.Equal(t, "Python Basics", course.Title)
		assert.Nil(t, report)
	})
}

func TestCourseResultStore_PutErrors(t *testing.T) {
	ctx := context.Background()
	store := service.NewCourseResultStore(&ManualMockCache{
		HSetFunc: func(context.Context, string, string, string) error { return errors.New("READONLY") },
	}, time.Hour, nil)

	assert.True(t, domain.HasCode(store.Put(ctx, "req", nil, nil), domain.ErrInvalidInput))
	assert.True(t, domain.HasCode(store.Put(ctx, "req", sampleCourse(), nil), domain.ErrInternal))
}

func TestNewCourseResultStore_NilCache(t *testing.T) {
	store := service.NewCourseResultStore(nil, time.Hour, zap.NewNop())
	ctx := context.Background()

	assert.NoError(t, store.Put(ctx, "reqNoCache", sampleCourse(), nil))
	course, report, err := store.Get(ctx, "reqNoCache")
	assert.Nil(t, course)
	assert.Nil(t, report)
	assert.True(t, domain.HasCode(err, domain.ErrNotFound))
}
