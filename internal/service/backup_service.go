package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/enare-prep-api/internal/models"
	appErrors "github.com/noah-isme/enare-prep-api/pkg/errors"
)

type sessionStore interface {
	ReadAll(ctx context.Context) ([]models.StudySession, error)
	ReplaceAll(ctx context.Context, sessions []models.StudySession) error
}

type customSubjectStore interface {
	ReadAll(ctx context.Context) ([]models.Subject, error)
	ReplaceAll(ctx context.Context, subjects []models.Subject) error
}

// ImportSummary reports what an accepted import applied.
type ImportSummary struct {
	Sessions       int  `json:"sessions"`
	CustomSubjects int  `json:"customSubjects"`
	LegacyFormat   bool `json:"legacyFormat"`
}

// BackupService moves the full persisted state in and out of the backup
// document format, including the legacy bare-array variant.
type BackupService struct {
	sessions sessionStore
	subjects customSubjectStore
	cache    *CacheService
	logger   *zap.Logger
	now      func() time.Time
}

// NewBackupService constructs a BackupService.
func NewBackupService(sessions sessionStore, subjects customSubjectStore, cache *CacheService, logger *zap.Logger) *BackupService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BackupService{sessions: sessions, subjects: subjects, cache: cache, logger: logger, now: time.Now}
}

// Export snapshots the full state into a backup document plus its
// conventional download filename.
func (s *BackupService) Export(ctx context.Context) (*models.BackupDocument, string, error) {
	sessions, err := s.sessions.ReadAll(ctx)
	if err != nil {
		return nil, "", err
	}
	subjects, err := s.subjects.ReadAll(ctx)
	if err != nil {
		return nil, "", err
	}

	exportedAt := s.now().UTC()
	doc := &models.BackupDocument{
		Studies:        sessions,
		CustomSubjects: subjects,
		ExportDate:     exportedAt,
	}
	filename := fmt.Sprintf("enare_backup_%s.json", exportedAt.Format(models.DateLayout))
	return doc, filename, nil
}

// Import replaces the persisted state from a backup file. It accepts either
// the backup document or the legacy bare session array. Nothing is written
// until the whole document decodes, so a rejected import leaves the store
// untouched.
func (s *BackupService) Import(ctx context.Context, raw []byte) (*ImportSummary, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, appErrors.Clone(appErrors.ErrImportFormat, "empty backup file")
	}

	summary := &ImportSummary{}
	var sessions []models.StudySession
	var subjects []models.Subject
	replaceSubjects := false

	if trimmed[0] == '[' {
		// Legacy format: a bare array of sessions, no custom subjects.
		if err := json.Unmarshal(trimmed, &sessions); err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrImportFormat.Code, appErrors.ErrImportFormat.Status, "decode legacy backup")
		}
		summary.LegacyFormat = true
	} else {
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(trimmed, &fields); err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrImportFormat.Code, appErrors.ErrImportFormat.Status, "decode backup document")
		}
		studiesRaw, ok := fields["studies"]
		if !ok {
			return nil, appErrors.Clone(appErrors.ErrImportFormat, "backup document has no studies field")
		}
		if err := json.Unmarshal(studiesRaw, &sessions); err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrImportFormat.Code, appErrors.ErrImportFormat.Status, "decode backup studies")
		}
		if subjectsRaw, ok := fields["customSubjects"]; ok {
			if err := json.Unmarshal(subjectsRaw, &subjects); err != nil {
				return nil, appErrors.Wrap(err, appErrors.ErrImportFormat.Code, appErrors.ErrImportFormat.Status, "decode backup custom subjects")
			}
			replaceSubjects = true
		}
	}

	if err := s.sessions.ReplaceAll(ctx, sessions); err != nil {
		return nil, err
	}
	summary.Sessions = len(sessions)

	if replaceSubjects {
		for i := range subjects {
			subjects[i].IsCustom = true
		}
		if err := s.subjects.ReplaceAll(ctx, subjects); err != nil {
			return nil, err
		}
		summary.CustomSubjects = len(subjects)
	}

	if s.cache.Enabled() {
		_ = s.cache.Invalidate(ctx, dashboardCachePattern)
	}
	s.logger.Info("backup imported",
		zap.Int("sessions", summary.Sessions),
		zap.Int("custom_subjects", summary.CustomSubjects),
		zap.Bool("legacy_format", summary.LegacyFormat),
	)
	return summary, nil
}

// SeedSampleData writes the legacy starter sessions when the store is empty.
// Mirrors the first-boot behaviour of the original application.
func (s *BackupService) SeedSampleData(ctx context.Context) error {
	existing, err := s.sessions.ReadAll(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}
	return s.sessions.ReplaceAll(ctx, sampleSessions())
}

func sampleSessions() []models.StudySession {
	return []models.StudySession{
		{
			ID:           1640995200000,
			SubjectID:    1,
			SubjectName:  "Cardiologia",
			Topic:        "Arritmias",
			Correct:      8,
			Total:        10,
			Percentage:   80,
			Date:         models.NewDate(2024, time.January, 1),
			Performance:  models.TierGood,
			NextReview:   models.NewDate(2024, time.January, 8),
			Observations: "Tive dificuldade com os casos de FA com RVR, preciso revisar os critérios de anticoagulação.",
		},
		{
			ID:          1641081600000,
			SubjectID:   2,
			SubjectName: "Pneumologia",
			Topic:       "Pneumonias",
			Correct:     9,
			Total:       10,
			Percentage:  90,
			Date:        models.NewDate(2024, time.January, 2),
			Performance: models.TierExcellent,
			NextReview:  models.NewDate(2024, time.January, 16),
		},
	}
}
