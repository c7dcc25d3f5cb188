package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/enare-prep-api/internal/models"
	appErrors "github.com/noah-isme/enare-prep-api/pkg/errors"
)

// TopicOther is the sentinel topic value meaning "free text topic". The
// literal is inherited from the legacy form.
const TopicOther = "outros"

type studyRepository interface {
	ReadAll(ctx context.Context) ([]models.StudySession, error)
	Append(ctx context.Context, session models.StudySession) error
}

type subjectFinder interface {
	FindByID(ctx context.Context, id int) (*models.Subject, error)
}

// RecordStudyRequest captures a study-session submission.
type RecordStudyRequest struct {
	SubjectID    int    `json:"subjectId" validate:"required,gt=0"`
	Topic        string `json:"topic" validate:"required"`
	CustomTopic  string `json:"customTopic"`
	Correct      int    `json:"correct" validate:"min=0"`
	Total        int    `json:"total" validate:"required,min=1"`
	Date         string `json:"date" validate:"required"`
	Observations string `json:"observations"`
}

// HistoryFilter narrows the history listing. Matches are exact against the
// denormalized values stored on each session.
type HistoryFilter struct {
	Subject  string
	Topic    string
	Page     int
	PageSize int
}

// StudyService records sessions and serves the browsable history.
type StudyService struct {
	repo      studyRepository
	catalog   subjectFinder
	cache     *CacheService
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewStudyService creates a new study service.
func NewStudyService(repo studyRepository, catalog subjectFinder, cache *CacheService, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger) *StudyService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StudyService{
		repo:      repo,
		catalog:   catalog,
		cache:     cache,
		metrics:   metrics,
		validator: validate,
		logger:    logger,
		now:       time.Now,
	}
}

// Record validates the submission, derives score, tier and next review, and
// appends the immutable session record.
func (s *StudyService) Record(ctx context.Context, req RecordStudyRequest) (*models.StudySession, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid study payload")
	}
	if req.Correct > req.Total {
		return nil, appErrors.Clone(appErrors.ErrValidation, "correct answers cannot exceed total questions")
	}

	date, err := models.ParseDate(req.Date)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid session date")
	}

	subject, err := s.catalog.FindByID(ctx, req.SubjectID)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown subject")
	}

	topic := strings.TrimSpace(req.Topic)
	if topic == TopicOther {
		topic = strings.TrimSpace(req.CustomTopic)
		if topic == "" {
			return nil, appErrors.Clone(appErrors.ErrValidation, "custom topic is required")
		}
	}

	percentage := Percentage(req.Correct, req.Total)
	tier := Classify(percentage)

	session := models.StudySession{
		ID:           s.now().UnixMilli(),
		SubjectID:    subject.ID,
		SubjectName:  subject.Name,
		Topic:        topic,
		Correct:      req.Correct,
		Total:        req.Total,
		Percentage:   percentage,
		Date:         date,
		Performance:  tier,
		NextReview:   NextReviewDate(date, tier),
		Observations: strings.TrimSpace(req.Observations),
	}

	if err := s.repo.Append(ctx, session); err != nil {
		return nil, err
	}
	s.metrics.RecordSession()
	if s.cache.Enabled() {
		_ = s.cache.Invalidate(ctx, dashboardCachePattern)
	}
	s.logger.Info("study session recorded",
		zap.Int64("id", session.ID),
		zap.String("subject", session.SubjectName),
		zap.String("topic", session.Topic),
		zap.Int("percentage", session.Percentage),
		zap.String("performance", string(session.Performance)),
	)
	return &session, nil
}

// History lists sessions newest first with optional subject/topic filters.
func (s *StudyService) History(ctx context.Context, filter HistoryFilter) ([]models.StudySession, *models.Pagination, error) {
	sessions, err := s.repo.ReadAll(ctx)
	if err != nil {
		return nil, nil, err
	}

	filtered := make([]models.StudySession, 0, len(sessions))
	for _, session := range sessions {
		if filter.Subject != "" && session.SubjectName != filter.Subject {
			continue
		}
		if filter.Topic != "" && session.Topic != filter.Topic {
			continue
		}
		filtered = append(filtered, session)
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].Date.After(filtered[j].Date)
	})

	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 {
		size = 20
	}
	pagination := &models.Pagination{Page: page, PageSize: size, TotalCount: len(filtered)}

	start := (page - 1) * size
	if start >= len(filtered) {
		return []models.StudySession{}, pagination, nil
	}
	end := start + size
	if end > len(filtered) {
		end = len(filtered)
	}
	return filtered[start:end], pagination, nil
}
