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

// StudyRepository owns the persisted study-session collection. The whole
// collection lives as one JSON blob under a fixed key; Append and ReplaceAll
// are read-modify-write sequences, so they serialise on a mutex to avoid
// lost updates between concurrent requests.
type StudyRepository struct {
	kv     KVStore
	logger *zap.Logger
	mu     sync.Mutex
}

// NewStudyRepository constructs the repository.
func NewStudyRepository(kv KVStore, logger *zap.Logger) *StudyRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StudyRepository{kv: kv, logger: logger}
}

// ReadAll returns every stored session in insertion order. An absent key is
// an empty collection (first run). Records that fail validation are skipped
// and logged rather than propagated.
func (r *StudyRepository) ReadAll(ctx context.Context) ([]models.StudySession, error) {
	raw, err := r.kv.Get(ctx, KeyStudies)
	if err != nil {
		if errors.Is(err, appErrors.ErrKeyNotFound) {
			return []models.StudySession{}, nil
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "read study sessions")
	}

	var decoded []models.StudySession
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "decode study sessions")
	}

	sessions := make([]models.StudySession, 0, len(decoded))
	quarantined := 0
	for _, session := range decoded {
		if err := session.Validate(); err != nil {
			quarantined++
			r.logger.Warn("quarantined malformed study session", zap.Int64("id", session.ID), zap.Error(err))
			continue
		}
		sessions = append(sessions, session)
	}
	if quarantined > 0 {
		r.logger.Warn("skipped malformed study sessions", zap.Int("count", quarantined))
	}
	return sessions, nil
}

// Append adds one session to the end of the collection.
func (r *StudyRepository) Append(ctx context.Context, session models.StudySession) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	sessions, err := r.ReadAll(ctx)
	if err != nil {
		return err
	}
	sessions = append(sessions, session)
	return r.write(ctx, sessions)
}

// ReplaceAll overwrites the collection wholesale. Used by backup import.
func (r *StudyRepository) ReplaceAll(ctx context.Context, sessions []models.StudySession) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.write(ctx, sessions)
}

func (r *StudyRepository) write(ctx context.Context, sessions []models.StudySession) error {
	if sessions == nil {
		sessions = []models.StudySession{}
	}
	raw, err := json.Marshal(sessions)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "encode study sessions")
	}
	if err := r.kv.Set(ctx, KeyStudies, raw); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "write study sessions")
	}
	return nil
}
