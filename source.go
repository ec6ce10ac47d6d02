package starlake

import (
	"io"
	"sync/atomic"

	"github.com/pkg/errors"
)

// Source is the interface for getting raw records one at a time.
// Implementations of Source should be thread safe. Record returns io.EOF
// when the underlying data is exhausted.
type Source interface {
	Record() (map[string]interface{}, error)
}

// NamedReadCloser is a reader which knows the name of the object it reads.
type NamedReadCloser interface {
	io.ReadCloser
	Name() string
}

// RawSource hands out a reader per underlying object, returning io.EOF once
// every object has been handed out.
type RawSource interface {
	NextReader() (NamedReadCloser, error)
}

// ObjectStore is the storage seam for the whole pipeline. Keys are
// slash-separated paths relative to the store's root. List returns keys in
// sorted order so that reruns over identical data see it in the same order.
type ObjectStore interface {
	List(prefix string) ([]string, error)
	Open(key string) (NamedReadCloser, error)
	Put(key string, body []byte) error
	RemoveAll(prefix string) error
}

// NewRawSource returns a RawSource over every object under prefix in the
// store. An unreachable or empty prefix is an error: a misconfigured input
// path must abort the run rather than produce empty tables.
func NewRawSource(store ObjectStore, prefix string) (RawSource, error) {
	keys, err := store.List(prefix)
	if err != nil {
		return nil, errors.Wrapf(err, "listing %q", prefix)
	}
	if len(keys) == 0 {
		return nil, errors.Errorf("no objects under %q", prefix)
	}
	idx := uint64(0)
	return &storeRawSource{store: store, keys: keys, idx: &idx}, nil
}

type storeRawSource struct {
	store ObjectStore
	keys  []string
	idx   *uint64
}

func (s *storeRawSource) NextReader() (NamedReadCloser, error) {
	idx := atomic.AddUint64(s.idx, 1) - 1
	if int(idx) >= len(s.keys) {
		return nil, io.EOF
	}
	r, err := s.store.Open(s.keys[idx])
	if err != nil {
		return nil, errors.Wrapf(err, "opening %s", s.keys[idx])
	}
	return r, nil
}
