package media

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/spf13/afero"
)

// FileStore holds the bytes of uploaded assets.
type FileStore interface {
	// Save writes at most limit bytes. It returns ErrFileTooLarge, leaving no
	// file behind, when the reader holds more.
	Save(ctx context.Context, name string, body io.Reader, limit int64) (int64, error)
	// Remove deletes the named file. Missing files are not an error.
	Remove(ctx context.Context, name string) error
}

type fsStore struct {
	fs afero.Fs
}

// NewDiskStore stores files under dir, creating it when missing.
func NewDiskStore(dir string) (FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("media: create upload dir: %w", err)
	}
	return NewFileStore(afero.NewBasePathFs(afero.NewOsFs(), dir)), nil
}

// NewFileStore wraps an afero filesystem rooted at the upload directory.
func NewFileStore(filesystem afero.Fs) FileStore {
	return &fsStore{fs: filesystem}
}

func (s *fsStore) Save(ctx context.Context, name string, body io.Reader, limit int64) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	file, err := s.fs.OpenFile(name, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return 0, fmt.Errorf("media: open %s: %w", name, err)
	}

	reader := body
	if limit > 0 {
		reader = io.LimitReader(body, limit+1)
	}
	written, copyErr := io.Copy(file, reader)
	closeErr := file.Close()

	switch {
	case copyErr != nil:
		_ = s.fs.Remove(name)
		return 0, fmt.Errorf("media: write %s: %w", name, copyErr)
	case limit > 0 && written > limit:
		_ = s.fs.Remove(name)
		return 0, ErrFileTooLarge
	case closeErr != nil:
		_ = s.fs.Remove(name)
		return 0, fmt.Errorf("media: close %s: %w", name, closeErr)
	}
	return written, nil
}

func (s *fsStore) Remove(_ context.Context, name string) error {
	err := s.fs.Remove(name)
	if err == nil || errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return fmt.Errorf("media: remove %s: %w", name, err)
}
