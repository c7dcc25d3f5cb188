package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/noah-isme/enare-prep-api/pkg/errors"
)

func TestFileStoreRoundTrip(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	_, err = store.Get(ctx, KeyStudies)
	assert.True(t, errors.Is(err, appErrors.ErrKeyNotFound))

	require.NoError(t, store.Set(ctx, KeyStudies, []byte(`[{"id":1}]`)))
	value, err := store.Get(ctx, KeyStudies)
	require.NoError(t, err)
	assert.Equal(t, []byte(`[{"id":1}]`), value)

	// Overwrites replace the previous blob.
	require.NoError(t, store.Set(ctx, KeyStudies, []byte("[]")))
	value, err = store.Get(ctx, KeyStudies)
	require.NoError(t, err)
	assert.Equal(t, []byte("[]"), value)
}

func TestMemoryStoreCopiesValues(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	original := []byte("abc")
	require.NoError(t, store.Set(ctx, "k", original))
	original[0] = 'x'

	value, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), value)

	// Mutating the returned slice does not poison the store either.
	value[0] = 'z'
	again, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), again)
}
