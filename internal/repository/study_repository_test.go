package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/enare-prep-api/internal/models"
)

func testSession(id int64, subject string, date models.Date) models.StudySession {
	return models.StudySession{
		ID:          id,
		SubjectID:   1,
		SubjectName: subject,
		Topic:       "Geral",
		Correct:     8,
		Total:       10,
		Percentage:  80,
		Date:        date,
		Performance: models.TierGood,
		NextReview:  date.AddDays(7),
	}
}

func TestStudyRepositoryFirstRunIsEmpty(t *testing.T) {
	repo := NewStudyRepository(NewMemoryStore(), zap.NewNop())

	sessions, err := repo.ReadAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, sessions)
}

func TestStudyRepositoryAppendPreservesOrder(t *testing.T) {
	repo := NewStudyRepository(NewMemoryStore(), zap.NewNop())
	ctx := context.Background()

	require.NoError(t, repo.Append(ctx, testSession(1, "Cardiologia", models.NewDate(2024, time.January, 1))))
	require.NoError(t, repo.Append(ctx, testSession(2, "Pneumologia", models.NewDate(2024, time.January, 2))))
	require.NoError(t, repo.Append(ctx, testSession(3, "Nefrologia", models.NewDate(2024, time.January, 3))))

	sessions, err := repo.ReadAll(ctx)
	require.NoError(t, err)
	require.Len(t, sessions, 3)
	assert.Equal(t, int64(1), sessions[0].ID)
	assert.Equal(t, int64(2), sessions[1].ID)
	assert.Equal(t, int64(3), sessions[2].ID)
}

func TestStudyRepositoryReplaceAll(t *testing.T) {
	repo := NewStudyRepository(NewMemoryStore(), zap.NewNop())
	ctx := context.Background()

	require.NoError(t, repo.Append(ctx, testSession(1, "Cardiologia", models.NewDate(2024, time.January, 1))))
	require.NoError(t, repo.ReplaceAll(ctx, []models.StudySession{
		testSession(9, "Pediatria", models.NewDate(2024, time.February, 1)),
	}))

	sessions, err := repo.ReadAll(ctx)
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Equal(t, int64(9), sessions[0].ID)

	// Replacing with nil clears the collection rather than erroring.
	require.NoError(t, repo.ReplaceAll(ctx, nil))
	sessions, err = repo.ReadAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, sessions)
}

func TestStudyRepositoryQuarantinesMalformedRecords(t *testing.T) {
	kv := NewMemoryStore()
	ctx := context.Background()

	// Simulate a hand-edited data file: one good record, one with an
	// impossible score, one missing its review date.
	raw := `[
		{"id":1,"subjectId":1,"subjectName":"Cardiologia","topic":"Arritmias","correct":8,"total":10,"percentage":80,"date":"2024-01-01","performance":"good","nextReview":"2024-01-08"},
		{"id":2,"subjectId":1,"subjectName":"Cardiologia","topic":"Arritmias","correct":15,"total":10,"percentage":150,"date":"2024-01-02","performance":"good","nextReview":"2024-01-09"},
		{"id":3,"subjectId":1,"subjectName":"Cardiologia","topic":"Arritmias","correct":8,"total":10,"percentage":80,"date":"2024-01-03","performance":"good"}
	]`
	require.NoError(t, kv.Set(ctx, KeyStudies, []byte(raw)))

	repo := NewStudyRepository(kv, zap.NewNop())
	sessions, err := repo.ReadAll(ctx)
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Equal(t, int64(1), sessions[0].ID)
}

func TestStudyRepositoryRejectsCorruptBlob(t *testing.T) {
	kv := NewMemoryStore()
	ctx := context.Background()
	require.NoError(t, kv.Set(ctx, KeyStudies, []byte("{not json")))

	repo := NewStudyRepository(kv, zap.NewNop())
	_, err := repo.ReadAll(ctx)
	assert.Error(t, err)
}
