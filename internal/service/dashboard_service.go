package service

import (
	"context"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/enare-prep-api/internal/dto"
	"github.com/noah-isme/enare-prep-api/internal/models"
)

const (
	dashboardCacheKey     = "dash:summary"
	dashboardCachePattern = "dash:*"

	// chartDateLayout matches the dd/mm/yyyy rendering of the legacy app.
	chartDateLayout = "02/01/2006"
)

type sessionReader interface {
	ReadAll(ctx context.Context) ([]models.StudySession, error)
}

// DashboardService derives aggregate performance views from the full session
// collection.
type DashboardService struct {
	sessions sessionReader
	cache    *CacheService
	logger   *zap.Logger
	cacheTTL time.Duration
}

// NewDashboardService constructs a DashboardService.
func NewDashboardService(sessions sessionReader, cache *CacheService, cacheTTL time.Duration, logger *zap.Logger) *DashboardService {
	if cacheTTL <= 0 {
		cacheTTL = 5 * time.Minute
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardService{sessions: sessions, cache: cache, cacheTTL: cacheTTL, logger: logger}
}

// Summary returns the dashboard payload and whether it came from cache.
func (s *DashboardService) Summary(ctx context.Context) (*dto.DashboardResponse, bool, error) {
	if s.cache.Enabled() {
		var cached dto.DashboardResponse
		hit, err := s.cache.Get(ctx, dashboardCacheKey, &cached)
		if err == nil && hit {
			return &cached, true, nil
		}
	}

	sessions, err := s.sessions.ReadAll(ctx)
	if err != nil {
		return nil, false, err
	}

	summary := s.compose(sessions)
	if s.cache.Enabled() {
		if err := s.cache.Set(ctx, dashboardCacheKey, summary, s.cacheTTL); err != nil {
			s.logger.Warn("dashboard cache write failed", zap.Error(err))
		}
	}
	return summary, false, nil
}

// Invalidate drops cached dashboard payloads after a write.
func (s *DashboardService) Invalidate(ctx context.Context) {
	if s.cache.Enabled() {
		_ = s.cache.Invalidate(ctx, dashboardCachePattern)
	}
}

func (s *DashboardService) compose(sessions []models.StudySession) *dto.DashboardResponse {
	summary := &dto.DashboardResponse{
		BestSubject:   "-",
		SubjectSeries: []dto.SubjectScore{},
		Evolution:     []dto.EvolutionPoint{},
	}

	var totalQuestions, totalCorrect int
	type acc struct {
		correct int
		total   int
	}
	groups := make(map[string]*acc)
	order := make([]string, 0)

	for _, session := range sessions {
		totalQuestions += session.Total
		totalCorrect += session.Correct

		group, ok := groups[session.SubjectName]
		if !ok {
			group = &acc{}
			groups[session.SubjectName] = group
			order = append(order, session.SubjectName)
		}
		group.correct += session.Correct
		group.total += session.Total
	}

	summary.Totals = dto.DashboardTotals{
		Sessions:  len(sessions),
		Questions: totalQuestions,
		Correct:   totalCorrect,
	}
	if totalQuestions > 0 {
		summary.Totals.AveragePercentage = Percentage(totalCorrect, totalQuestions)
	}

	// Best subject: strictly highest ratio wins; ties keep the subject seen
	// first in insertion order.
	bestScore := 0.0
	for _, name := range order {
		group := groups[name]
		score := float64(group.correct) / float64(group.total) * 100
		if score > bestScore {
			bestScore = score
			summary.BestSubject = name
		}
		summary.SubjectSeries = append(summary.SubjectSeries, dto.SubjectScore{
			SubjectName: name,
			Percentage:  Percentage(group.correct, group.total),
		})
	}

	chronological := append([]models.StudySession(nil), sessions...)
	sort.SliceStable(chronological, func(i, j int) bool {
		return chronological[i].Date.Before(chronological[j].Date)
	})
	for _, session := range chronological {
		summary.Evolution = append(summary.Evolution, dto.EvolutionPoint{
			Date:       session.Date.Time().Format(chartDateLayout),
			Percentage: session.Percentage,
		})
	}

	return summary
}
