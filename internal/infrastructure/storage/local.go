package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/shopfront/storefront/internal/core/domain"
)

// LocalStore writes images below root and returns "/uploads/<name>" paths,
// which the HTTP layer serves statically.
type LocalStore struct {
	root string
}

func NewLocalStore(root string) *LocalStore {
	if root == "" {
		root = "public"
	}
	if !filepath.IsAbs(root) {
		if cwd, err := os.Getwd(); err == nil {
			root = filepath.Join(cwd, root)
		}
	}
	return &LocalStore{root: root}
}

// Dir is the directory holding the uploaded files.
func (s *LocalStore) Dir() string {
	return filepath.Join(s.root, UploadDir)
}

func (s *LocalStore) Save(_ context.Context, filename string, r io.Reader) (string, error) {
	key := newKey(filename)
	full := s.abs(key)
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", fmt.Errorf("storage/local: mkdir: %w", err)
	}

	f, err := os.Create(full)
	if err != nil {
		return "", fmt.Errorf("storage/local: create %s: %w", key, err)
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		_ = os.Remove(full)
		return "", fmt.Errorf("storage/local: write %s: %w", key, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("storage/local: close %s: %w", key, err)
	}
	return "/" + key, nil
}

func (s *LocalStore) Delete(_ context.Context, ref string) error {
	key, ok := keyFromPath(ref)
	if !ok {
		return domain.ErrImageNotFound
	}
	if err := os.Remove(s.abs(key)); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return domain.ErrImageNotFound
		}
		return fmt.Errorf("storage/local: delete %s: %w", key, err)
	}
	return nil
}

func (s *LocalStore) abs(key string) string {
	return filepath.Join(s.root, filepath.FromSlash(key))
}
