package repository

import (
	"context"

	appErrors "github.com/noah-isme/enare-prep-api/pkg/errors"
	"github.com/noah-isme/enare-prep-api/pkg/storage"
)

// FileStore persists each key as a JSON file inside a local data directory.
// This is the default driver for single-machine installs.
type FileStore struct {
	local *storage.LocalStorage
}

// NewFileStore builds a FileStore rooted at the given directory.
func NewFileStore(dataDir string) (*FileStore, error) {
	local, err := storage.NewLocalStorage(dataDir)
	if err != nil {
		return nil, err
	}
	return &FileStore{local: local}, nil
}

// Get reads the file backing key.
func (s *FileStore) Get(_ context.Context, key string) ([]byte, error) {
	data, found, err := s.local.Read(key + ".json")
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "read storage key "+key)
	}
	if !found {
		return nil, appErrors.ErrKeyNotFound
	}
	return data, nil
}

// Set writes the file backing key.
func (s *FileStore) Set(_ context.Context, key string, value []byte) error {
	if _, err := s.local.Save(key+".json", value); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "write storage key "+key)
	}
	return nil
}
