package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/enare-prep-api/internal/models"
	appErrors "github.com/noah-isme/enare-prep-api/pkg/errors"
)

type fakeSessionReader struct {
	sessions []models.StudySession
	err      error
}

func (f *fakeSessionReader) ReadAll(_ context.Context) ([]models.StudySession, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.sessions, nil
}

type stubCacheRepo struct {
	values map[string][]byte
	gets   int
	sets   int
}

func newStubCacheRepo() *stubCacheRepo {
	return &stubCacheRepo{values: make(map[string][]byte)}
}

func (s *stubCacheRepo) Get(_ context.Context, key string, dest interface{}) error {
	s.gets++
	raw, ok := s.values[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	return json.Unmarshal(raw, dest)
}

func (s *stubCacheRepo) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	s.sets++
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	s.values[key] = raw
	return nil
}

func (s *stubCacheRepo) DeleteByPattern(_ context.Context, pattern string) error {
	prefix := strings.TrimSuffix(pattern, "*")
	for key := range s.values {
		if strings.HasPrefix(key, prefix) {
			delete(s.values, key)
		}
	}
	return nil
}

func session(id int64, subject string, correct, total int, date models.Date) models.StudySession {
	percentage := Percentage(correct, total)
	tier := Classify(percentage)
	return models.StudySession{
		ID:          id,
		SubjectID:   1,
		SubjectName: subject,
		Topic:       "Geral",
		Correct:     correct,
		Total:       total,
		Percentage:  percentage,
		Date:        date,
		Performance: tier,
		NextReview:  NextReviewDate(date, tier),
	}
}

func TestDashboardSummaryEmptyStore(t *testing.T) {
	svc := NewDashboardService(&fakeSessionReader{}, nil, time.Minute, zap.NewNop())

	summary, hit, err := svc.Summary(context.Background())
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Equal(t, 0, summary.Totals.Sessions)
	assert.Equal(t, 0, summary.Totals.AveragePercentage)
	assert.Equal(t, "-", summary.BestSubject)
	assert.Empty(t, summary.SubjectSeries)
	assert.Empty(t, summary.Evolution)
}

func TestDashboardSummaryAggregates(t *testing.T) {
	reader := &fakeSessionReader{sessions: []models.StudySession{
		session(2, "Pneumologia", 9, 10, models.NewDate(2024, time.January, 2)),
		session(1, "Cardiologia", 8, 10, models.NewDate(2024, time.January, 1)),
	}}
	svc := NewDashboardService(reader, nil, time.Minute, zap.NewNop())

	summary, hit, err := svc.Summary(context.Background())
	require.NoError(t, err)
	assert.False(t, hit)

	assert.Equal(t, 2, summary.Totals.Sessions)
	assert.Equal(t, 20, summary.Totals.Questions)
	assert.Equal(t, 17, summary.Totals.Correct)
	assert.Equal(t, 85, summary.Totals.AveragePercentage)
	assert.Equal(t, "Pneumologia", summary.BestSubject)

	// Subject series keeps first-seen order.
	require.Len(t, summary.SubjectSeries, 2)
	assert.Equal(t, "Pneumologia", summary.SubjectSeries[0].SubjectName)
	assert.Equal(t, 90, summary.SubjectSeries[0].Percentage)
	assert.Equal(t, "Cardiologia", summary.SubjectSeries[1].SubjectName)
	assert.Equal(t, 80, summary.SubjectSeries[1].Percentage)

	// Evolution is chronological regardless of storage order.
	require.Len(t, summary.Evolution, 2)
	assert.Equal(t, "01/01/2024", summary.Evolution[0].Date)
	assert.Equal(t, 80, summary.Evolution[0].Percentage)
	assert.Equal(t, "02/01/2024", summary.Evolution[1].Date)
	assert.Equal(t, 90, summary.Evolution[1].Percentage)
}

func TestDashboardBestSubjectTieKeepsFirstSeen(t *testing.T) {
	reader := &fakeSessionReader{sessions: []models.StudySession{
		session(1, "Cardiologia", 8, 10, models.NewDate(2024, time.January, 1)),
		session(2, "Pneumologia", 8, 10, models.NewDate(2024, time.January, 2)),
	}}
	svc := NewDashboardService(reader, nil, time.Minute, zap.NewNop())

	summary, _, err := svc.Summary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Cardiologia", summary.BestSubject)
}

func TestDashboardSummaryUsesCache(t *testing.T) {
	reader := &fakeSessionReader{sessions: []models.StudySession{
		session(1, "Cardiologia", 8, 10, models.NewDate(2024, time.January, 1)),
	}}
	cacheRepo := newStubCacheRepo()
	cacheSvc := NewCacheService(cacheRepo, nil, time.Minute, zap.NewNop(), true)
	svc := NewDashboardService(reader, cacheSvc, time.Minute, zap.NewNop())

	first, hit, err := svc.Summary(context.Background())
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Equal(t, 1, cacheRepo.sets)

	second, hit, err := svc.Summary(context.Background())
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, first.Totals, second.Totals)
	assert.Equal(t, first.BestSubject, second.BestSubject)

	// Invalidation forces a recompute on the next call.
	svc.Invalidate(context.Background())
	_, hit, err = svc.Summary(context.Background())
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Equal(t, 2, cacheRepo.sets)
}

func TestDashboardSummaryPropagatesReadError(t *testing.T) {
	reader := &fakeSessionReader{err: errors.New("disk gone")}
	svc := NewDashboardService(reader, nil, time.Minute, zap.NewNop())

	_, _, err := svc.Summary(context.Background())
	assert.Error(t, err)
}
