package filestorage

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// LocalStorage keeps assets as flat files in one directory. This is the
// default provider; the record row holds the generated file name and the
// directory is served statically.
type LocalStorage struct {
	dir    string
	prefix func() string
}

func NewLocalStorage(dir string) (*LocalStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &LocalStorage{
		dir:    dir,
		prefix: uuid.NewString,
	}, nil
}

// WithPrefixSource replaces the generated-name prefix source. Tests inject a
// fixed source to get reproducible names.
func (f *LocalStorage) WithPrefixSource(fn func() string) *LocalStorage {
	f.prefix = fn
	return f
}

// NameWithPrefix derives a storage name that cannot collide with earlier
// uploads of the same original file.
func (f *LocalStorage) NameWithPrefix(original string) string {
	return f.prefix() + "_" + filepath.Base(original)
}

// Save writes the upload under name. Names are unique, so an existing file
// means a caller bug; creation is exclusive and never truncates what is
// already there.
func (f *LocalStorage) Save(ctx context.Context, name string, r io.Reader) error {
	if name == "" {
		return errors.New("empty asset name")
	}

	dst, err := os.OpenFile(filepath.Join(f.dir, filepath.Base(name)), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return err
	}

	if _, err := io.Copy(dst, r); err != nil {
		dst.Close()
		os.Remove(dst.Name())
		return err
	}
	return dst.Close()
}

// Delete removes the named file. Empty and already-removed names are fine;
// callers delete speculatively.
func (f *LocalStorage) Delete(ctx context.Context, name string) error {
	if name == "" {
		return nil
	}

	err := os.Remove(filepath.Join(f.dir, filepath.Base(name)))
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

// List returns the names of stored files last modified more than olderThan
// ago.
func (f *LocalStorage) List(ctx context.Context, olderThan time.Duration) ([]string, error) {
	entries, err := os.ReadDir(f.dir)
	if err != nil {
		return nil, err
	}

	cutoff := time.Now().Add(-olderThan)
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		info, err := e.Info()
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, err
		}
		if info.ModTime().After(cutoff) {
			continue
		}
		names = append(names, e.Name())
	}
	return names, nil
}
