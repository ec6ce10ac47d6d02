package lake

import (
	"bytes"
	"io"
	"path"

	"github.com/parquet-go/parquet-go"
	"github.com/pkg/errors"
	"github.com/sparkify/starlake"
)

// ReadTable reads every part file of a table directory back into rows.
// Files are read in sorted key order, so the row order is stable for a
// given table. Partition values are stored in the part files themselves, so
// nothing is reconstructed from directory names.
func ReadTable[T any](store starlake.ObjectStore, dir string) ([]T, error) {
	keys, err := store.List(dir)
	if err != nil {
		return nil, errors.Wrapf(err, "listing %s", dir)
	}
	var rows []T
	for _, key := range keys {
		if path.Ext(key) != ".parquet" {
			continue
		}
		part, err := readPart[T](store, key)
		if err != nil {
			return nil, err
		}
		rows = append(rows, part...)
	}
	return rows, nil
}

func readPart[T any](store starlake.ObjectStore, key string) ([]T, error) {
	rc, err := store.Open(key)
	if err != nil {
		return nil, errors.Wrapf(err, "opening %s", key)
	}
	defer rc.Close()
	buf, err := io.ReadAll(rc)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", key)
	}
	rows, err := parquet.Read[T](bytes.NewReader(buf), int64(len(buf)))
	if err != nil {
		return nil, errors.Wrapf(err, "decoding %s", key)
	}
	return rows, nil
}
