package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/enare-prep-api/internal/models"
	appErrors "github.com/noah-isme/enare-prep-api/pkg/errors"
)

type fakeSubjectRepo struct {
	subjects []models.Subject
	deleted  []int
}

func (f *fakeSubjectRepo) ReadAll(_ context.Context) ([]models.Subject, error) {
	return f.subjects, nil
}

func (f *fakeSubjectRepo) Append(_ context.Context, subject models.Subject) error {
	f.subjects = append(f.subjects, subject)
	return nil
}

func (f *fakeSubjectRepo) Delete(_ context.Context, id int) error {
	f.deleted = append(f.deleted, id)
	kept := f.subjects[:0]
	for _, subject := range f.subjects {
		if subject.ID != id {
			kept = append(kept, subject)
		}
	}
	f.subjects = kept
	return nil
}

func TestCatalogListCombinesBuiltinsAndCustoms(t *testing.T) {
	repo := &fakeSubjectRepo{subjects: []models.Subject{
		{ID: 11, Name: "Dermatologia", Specialty: "Clínica", Topics: []string{"Psoríase"}, IsCustom: true},
	}}
	svc := NewCatalogService(repo, nil, zap.NewNop())

	subjects, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, subjects, 11)
	assert.Equal(t, "Cardiologia", subjects[0].Name)
	assert.False(t, subjects[0].IsCustom)
	assert.Equal(t, "Dermatologia", subjects[10].Name)
	assert.True(t, subjects[10].IsCustom)
}

func TestCatalogFindByID(t *testing.T) {
	svc := NewCatalogService(&fakeSubjectRepo{}, nil, zap.NewNop())

	subject, err := svc.FindByID(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, "Pneumologia", subject.Name)

	_, err = svc.FindByID(context.Background(), 999)
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErr.Code)
}

func TestCatalogAddCustomAssignsNextID(t *testing.T) {
	repo := &fakeSubjectRepo{}
	svc := NewCatalogService(repo, nil, zap.NewNop())

	subject, err := svc.AddCustom(context.Background(), AddSubjectRequest{
		Name:      "  Dermatologia ",
		Specialty: "Clínica Médica",
		Topics:    "Psoríase, Melanoma , ",
	})
	require.NoError(t, err)
	assert.Equal(t, 11, subject.ID)
	assert.Equal(t, "Dermatologia", subject.Name)
	assert.Equal(t, []string{"Psoríase", "Melanoma"}, subject.Topics)
	assert.True(t, subject.IsCustom)
	require.Len(t, repo.subjects, 1)

	// Next custom subject continues from the new max.
	second, err := svc.AddCustom(context.Background(), AddSubjectRequest{
		Name:      "Reumatologia",
		Specialty: "Clínica Médica",
		Topics:    "Lúpus",
	})
	require.NoError(t, err)
	assert.Equal(t, 12, second.ID)
}

func TestCatalogAddCustomRejectsDuplicateNameAnyCase(t *testing.T) {
	repo := &fakeSubjectRepo{}
	svc := NewCatalogService(repo, nil, zap.NewNop())

	_, err := svc.AddCustom(context.Background(), AddSubjectRequest{
		Name:      "cardiologia",
		Specialty: "Clínica Médica",
		Topics:    "Arritmias",
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrDuplicateName.Code, appErrors.FromError(err).Code)
	assert.Empty(t, repo.subjects)
}

func TestCatalogAddCustomValidation(t *testing.T) {
	svc := NewCatalogService(&fakeSubjectRepo{}, nil, zap.NewNop())

	cases := []AddSubjectRequest{
		{Name: "", Specialty: "Clínica", Topics: "A"},
		{Name: "   ", Specialty: "Clínica", Topics: "A"},
		{Name: "Nova", Specialty: "", Topics: "A"},
		{Name: "Nova", Specialty: "Clínica", Topics: " , , "},
	}
	for _, req := range cases {
		_, err := svc.AddCustom(context.Background(), req)
		require.Error(t, err, "request %+v", req)
		assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
	}
}

func TestCatalogDeleteCustomIsIdempotent(t *testing.T) {
	repo := &fakeSubjectRepo{subjects: []models.Subject{
		{ID: 11, Name: "Dermatologia", Specialty: "Clínica", Topics: []string{"Psoríase"}, IsCustom: true},
	}}
	svc := NewCatalogService(repo, nil, zap.NewNop())

	require.NoError(t, svc.DeleteCustom(context.Background(), 11))
	assert.Empty(t, repo.subjects)

	// Deleting again, or a built-in id, stays a no-op.
	require.NoError(t, svc.DeleteCustom(context.Background(), 11))
	require.NoError(t, svc.DeleteCustom(context.Background(), 1))

	subjects, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, subjects, 10)
}
