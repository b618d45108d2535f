package storage

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/gofrs/flock"
)

const (
	lockFile = ".lock"
	fileExt  = ".dat"
)

// Dir stores each key as one file in a directory. Writes are atomic and a
// lock file serializes access between processes sharing the directory.
type Dir struct {
	root string
	lock *flock.Flock
}

// NewDir opens (creating if needed) a directory store rooted at root.
func NewDir(root string) (*Dir, error) {
	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, fmt.Errorf("create store directory: %w", err)
	}
	return &Dir{
		root: root,
		lock: flock.New(filepath.Join(root, lockFile)),
	}, nil
}

// Root returns the directory holding the store.
func (d *Dir) Root() string {
	return d.root
}

func (d *Dir) path(key string) string {
	return filepath.Join(d.root, url.PathEscape(key)+fileExt)
}

// Load reads the value stored at key.
func (d *Dir) Load(key string) ([]byte, bool, error) {
	if err := d.lock.RLock(); err != nil {
		return nil, false, fmt.Errorf("lock store: %w", err)
	}
	defer d.lock.Unlock()

	v, err := os.ReadFile(d.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return v, true, nil
}

// Save writes value at key, replacing any previous value atomically.
func (d *Dir) Save(key string, value []byte) error {
	if err := d.lock.Lock(); err != nil {
		return fmt.Errorf("lock store: %w", err)
	}
	defer d.lock.Unlock()

	tmp, err := os.CreateTemp(d.root, ".tmp-*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(value); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	if err := os.Rename(tmp.Name(), d.path(key)); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return nil
}

// Delete removes key. Deleting a missing key is not an error.
func (d *Dir) Delete(key string) error {
	if err := d.lock.Lock(); err != nil {
		return fmt.Errorf("lock store: %w", err)
	}
	defer d.lock.Unlock()

	err := os.Remove(d.path(key))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// Keys returns the stored keys in sorted order.
func (d *Dir) Keys() ([]string, error) {
	entries, err := os.ReadDir(d.root)
	if err != nil {
		return nil, err
	}
	var keys []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, fileExt) {
			continue
		}
		key, err := url.PathUnescape(strings.TrimSuffix(name, fileExt))
		if err != nil {
			continue
		}
		keys = append(keys, key)
	}
	slices.Sort(keys)
	return keys, nil
}
