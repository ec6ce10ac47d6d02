package file

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/pkg/errors"
	"github.com/sparkify/starlake"
)

// Store is a starlake.ObjectStore backed by a directory on the local
// filesystem. Keys are slash-separated paths relative to the root.
type Store struct {
	root string
}

// NewStore returns a Store rooted at the given directory.
func NewStore(root string) *Store {
	return &Store{root: root}
}

func (s *Store) path(key string) string {
	return filepath.Join(s.root, filepath.FromSlash(key))
}

// List returns the keys of all files under prefix, sorted. A prefix naming a
// single file lists just that file; a prefix that doesn't exist is an error.
func (s *Store) List(prefix string) ([]string, error) {
	base := s.path(prefix)
	info, err := os.Stat(base)
	if err != nil {
		return nil, errors.Wrapf(err, "statting %s", base)
	}
	if !info.IsDir() {
		return []string{prefix}, nil
	}
	var keys []string
	err = filepath.WalkDir(base, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(s.root, p)
		if err != nil {
			return err
		}
		keys = append(keys, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "walking %s", base)
	}
	sort.Strings(keys)
	return keys, nil
}

type namedFile struct {
	*os.File
	key string
}

func (f *namedFile) Name() string { return f.key }

// Open opens the file at key for reading.
func (s *Store) Open(key string) (starlake.NamedReadCloser, error) {
	f, err := os.Open(s.path(key))
	if err != nil {
		return nil, errors.Wrapf(err, "opening %s", key)
	}
	return &namedFile{File: f, key: key}, nil
}

// Put writes body to key, creating parent directories as needed.
func (s *Store) Put(key string, body []byte) error {
	p := s.path(key)
	if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
		return errors.Wrapf(err, "making directories for %s", key)
	}
	return errors.Wrapf(os.WriteFile(p, body, 0644), "writing %s", key)
}

// RemoveAll deletes everything under prefix. A prefix which doesn't exist is
// not an error.
func (s *Store) RemoveAll(prefix string) error {
	return errors.Wrapf(os.RemoveAll(s.path(prefix)), "removing %s", prefix)
}
