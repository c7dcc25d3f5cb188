package service

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/enare-prep-api/internal/models"
	appErrors "github.com/noah-isme/enare-prep-api/pkg/errors"
)

type customSubjectRepository interface {
	ReadAll(ctx context.Context) ([]models.Subject, error)
	Append(ctx context.Context, subject models.Subject) error
	Delete(ctx context.Context, id int) error
}

// AddSubjectRequest captures fields for creating a custom subject. Topics is
// a comma-separated list, as typed in the legacy form.
type AddSubjectRequest struct {
	Name      string `json:"name" validate:"required"`
	Specialty string `json:"specialty" validate:"required"`
	Topics    string `json:"topics" validate:"required"`
}

// CatalogService manages the combined catalog of built-in and custom
// subjects. Built-ins are immutable; only customs are persisted.
type CatalogService struct {
	repo      customSubjectRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewCatalogService creates a new catalog service.
func NewCatalogService(repo customSubjectRepository, validate *validator.Validate, logger *zap.Logger) *CatalogService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CatalogService{repo: repo, validator: validate, logger: logger}
}

// List returns built-in subjects followed by custom ones.
func (s *CatalogService) List(ctx context.Context) ([]models.Subject, error) {
	customs, err := s.repo.ReadAll(ctx)
	if err != nil {
		return nil, err
	}
	return append(models.BuiltinSubjects(), customs...), nil
}

// FindByID looks up one subject across the combined catalog.
func (s *CatalogService) FindByID(ctx context.Context, id int) (*models.Subject, error) {
	subjects, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range subjects {
		if subjects[i].ID == id {
			return &subjects[i], nil
		}
	}
	return nil, appErrors.Clone(appErrors.ErrNotFound, "subject not found")
}

// AddCustom creates a custom subject. Names must be unique case-insensitively
// across the combined catalog; ids are max(existing)+1.
func (s *CatalogService) AddCustom(ctx context.Context, req AddSubjectRequest) (*models.Subject, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid subject payload")
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "subject name is required")
	}

	topics := parseTopics(req.Topics)
	if len(topics) == 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "at least one topic is required")
	}

	subjects, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	maxID := 0
	for _, existing := range subjects {
		if strings.EqualFold(existing.Name, name) {
			return nil, appErrors.Clone(appErrors.ErrDuplicateName, "")
		}
		if existing.ID > maxID {
			maxID = existing.ID
		}
	}

	subject := models.Subject{
		ID:        maxID + 1,
		Name:      name,
		Specialty: strings.TrimSpace(req.Specialty),
		Topics:    topics,
		IsCustom:  true,
	}

	if err := s.repo.Append(ctx, subject); err != nil {
		return nil, err
	}
	s.logger.Info("custom subject added", zap.Int("id", subject.ID), zap.String("name", subject.Name))
	return &subject, nil
}

// DeleteCustom removes a custom subject. Unknown or built-in ids are a
// no-op; historical sessions keep their denormalized subject name either way.
func (s *CatalogService) DeleteCustom(ctx context.Context, id int) error {
	return s.repo.Delete(ctx, id)
}

func parseTopics(raw string) []string {
	parts := strings.Split(raw, ",")
	topics := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			topics = append(topics, trimmed)
		}
	}
	return topics
}
