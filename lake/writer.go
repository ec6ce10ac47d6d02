package lake

import (
	"bytes"
	"net/url"
	"path"
	"strconv"

	"github.com/parquet-go/parquet-go"
	"github.com/pkg/errors"
	"github.com/sparkify/starlake"
)

// NullPartition is the directory name used when a partition value is null.
const NullPartition = "__HIVE_DEFAULT_PARTITION__"

// Partition is one key=value path component of a table partition.
type Partition struct {
	Key   string
	Value *string
}

// StringPartition makes a Partition from a nullable string column.
func StringPartition(key string, v *string) Partition {
	return Partition{Key: key, Value: v}
}

// Int32Partition makes a Partition from an int32 column.
func Int32Partition(key string, v int32) Partition {
	s := strconv.FormatInt(int64(v), 10)
	return Partition{Key: key, Value: &s}
}

// NullableInt32Partition makes a Partition from a nullable int32 column.
func NullableInt32Partition(key string, v *int32) Partition {
	if v == nil {
		return Partition{Key: key}
	}
	return Int32Partition(key, *v)
}

// Writer buffers the rows of one table and writes them to the store as
// parquet on Close, one part file per partition, hive style key=value
// directories, as a full overwrite of the table path. Nothing touches the
// store before Close, so a failed build leaves the previous table intact.
type Writer[T any] struct {
	store       starlake.ObjectStore
	dir         string
	partitionBy func(T) []Partition

	order  []string
	groups map[string][]T
}

// WriterOption is a functional option for a Writer.
type WriterOption[T any] func(w *Writer[T])

// OptPartitionBy sets the partition scheme for the table. Rows map to
// partition directories in first-seen order; without this option the table
// is a single unpartitioned part file.
func OptPartitionBy[T any](fn func(T) []Partition) WriterOption[T] {
	return func(w *Writer[T]) {
		w.partitionBy = fn
	}
}

// NewWriter returns a Writer for the table directory dir in the store.
func NewWriter[T any](store starlake.ObjectStore, dir string, opts ...WriterOption[T]) *Writer[T] {
	w := &Writer[T]{
		store:  store,
		dir:    dir,
		groups: make(map[string][]T),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Write buffers rows for the table, preserving their order within each
// partition.
func (w *Writer[T]) Write(rows ...T) {
	for _, row := range rows {
		rel := ""
		if w.partitionBy != nil {
			rel = partitionPath(w.partitionBy(row))
		}
		if _, ok := w.groups[rel]; !ok {
			w.order = append(w.order, rel)
		}
		w.groups[rel] = append(w.groups[rel], row)
	}
}

// Close overwrites the table path with the buffered rows. An unpartitioned
// table with no rows still gets a schema-only part file so the table
// exists; a partitioned one writes no partitions.
func (w *Writer[T]) Close() error {
	if err := w.store.RemoveAll(w.dir); err != nil {
		return errors.Wrapf(err, "clearing %s", w.dir)
	}
	order := w.order
	if len(order) == 0 && w.partitionBy == nil {
		order = []string{""}
	}
	for _, rel := range order {
		buf := &bytes.Buffer{}
		pw := parquet.NewGenericWriter[T](buf)
		if rows := w.groups[rel]; len(rows) > 0 {
			if _, err := pw.Write(rows); err != nil {
				return errors.Wrapf(err, "encoding partition %q", rel)
			}
		}
		if err := pw.Close(); err != nil {
			return errors.Wrapf(err, "closing partition %q", rel)
		}
		key := path.Join(w.dir, rel, "part-00000.parquet")
		if err := w.store.Put(key, buf.Bytes()); err != nil {
			return errors.Wrapf(err, "writing %s", key)
		}
	}
	return nil
}

func partitionPath(parts []Partition) string {
	segs := make([]string, len(parts))
	for i, p := range parts {
		val := NullPartition
		if p.Value != nil {
			val = url.PathEscape(*p.Value)
		}
		segs[i] = p.Key + "=" + val
	}
	return path.Join(segs...)
}
