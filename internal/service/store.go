package service

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/kapu/hsr-banner-tracker-go/internal/domain"
	"github.com/kapu/hsr-banner-tracker-go/pkg/errors"
	"go.uber.org/zap"
)

// FileStore persists the result payload as one indented JSON document.
// Writes go through a temp file in the same directory and a rename, so a
// concurrent reader never sees a half-written file.
type FileStore struct {
	path   string
	logger *zap.Logger
}

func NewFileStore(path string, logger *zap.Logger) *FileStore {
	return &FileStore{path: path, logger: logger}
}

func (s *FileStore) Path() string {
	return s.path
}

// Load reads the cached payload. A missing file returns (nil, nil); an
// unreadable or corrupt file is an error the caller may fall back from.
func (s *FileStore) Load() (*domain.ResultPayload, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.NewPersistenceError("failed to read cache file", "read", s.path, err)
	}

	var payload domain.ResultPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, errors.NewPersistenceError("cache file corrupt", "decode", s.path, err)
	}

	return &payload, nil
}

// LoadRaw returns the cache file bytes untouched, for serving verbatim. The
// bytes are validated as JSON so a corrupt file is not passed to clients.
func (s *FileStore) LoadRaw() ([]byte, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.NewPersistenceError("failed to read cache file", "read", s.path, err)
	}

	if !json.Valid(data) {
		return nil, errors.NewPersistenceError("cache file corrupt", "decode", s.path, nil)
	}

	return data, nil
}

// Save overwrites the whole document.
func (s *FileStore) Save(payload *domain.ResultPayload) error {
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return errors.NewPersistenceError("failed to encode payload", "encode", s.path, err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return errors.NewPersistenceError("failed to create temp file", "write", s.path, err)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return errors.NewPersistenceError("failed to write temp file", "write", s.path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return errors.NewPersistenceError("failed to close temp file", "write", s.path, err)
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return errors.NewPersistenceError("failed to replace cache file", "rename", s.path, err)
	}

	s.logger.Info("Payload saved",
		zap.String("path", s.path),
		zap.Int("bytes", len(data)))

	return nil
}
