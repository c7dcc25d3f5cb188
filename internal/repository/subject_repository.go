package repository

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/noah-isme/enare-prep-api/internal/models"
	appErrors "github.com/noah-isme/enare-prep-api/pkg/errors"
)

// SubjectRepository owns the persisted custom-subject collection. Built-in
// subjects never touch storage; only user-created ones are written here.
type SubjectRepository struct {
	kv     KVStore
	logger *zap.Logger
	mu     sync.Mutex
}

// NewSubjectRepository constructs the repository.
func NewSubjectRepository(kv KVStore, logger *zap.Logger) *SubjectRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SubjectRepository{kv: kv, logger: logger}
}

// ReadAll returns the stored custom subjects in insertion order, skipping
// malformed records.
func (r *SubjectRepository) ReadAll(ctx context.Context) ([]models.Subject, error) {
	raw, err := r.kv.Get(ctx, KeyCustomSubjects)
	if err != nil {
		if errors.Is(err, appErrors.ErrKeyNotFound) {
			return []models.Subject{}, nil
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "read custom subjects")
	}

	var decoded []models.Subject
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "decode custom subjects")
	}

	subjects := make([]models.Subject, 0, len(decoded))
	for _, subject := range decoded {
		if err := subject.Validate(); err != nil {
			r.logger.Warn("quarantined malformed custom subject", zap.Int("id", subject.ID), zap.Error(err))
			continue
		}
		subject.IsCustom = true
		subjects = append(subjects, subject)
	}
	return subjects, nil
}

// Append adds one custom subject.
func (r *SubjectRepository) Append(ctx context.Context, subject models.Subject) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	subjects, err := r.ReadAll(ctx)
	if err != nil {
		return err
	}
	subjects = append(subjects, subject)
	return r.write(ctx, subjects)
}

// Delete removes the custom subject with the given id. Unknown ids are a
// no-op: deleting an already-absent entity is idempotent.
func (r *SubjectRepository) Delete(ctx context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	subjects, err := r.ReadAll(ctx)
	if err != nil {
		return err
	}
	filtered := make([]models.Subject, 0, len(subjects))
	for _, subject := range subjects {
		if subject.ID != id {
			filtered = append(filtered, subject)
		}
	}
	if len(filtered) == len(subjects) {
		return nil
	}
	return r.write(ctx, filtered)
}

// ReplaceAll overwrites the collection wholesale. Used by backup import.
func (r *SubjectRepository) ReplaceAll(ctx context.Context, subjects []models.Subject) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.write(ctx, subjects)
}

func (r *SubjectRepository) write(ctx context.Context, subjects []models.Subject) error {
	if subjects == nil {
		subjects = []models.Subject{}
	}
	raw, err := json.Marshal(subjects)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "encode custom subjects")
	}
	if err := r.kv.Set(ctx, KeyCustomSubjects, raw); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "write custom subjects")
	}
	return nil
}
