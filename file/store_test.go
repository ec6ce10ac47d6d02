package file_test

import (
	"io"
	"reflect"
	"testing"

	"github.com/sparkify/starlake/file"
)

func TestStoreRoundTrip(t *testing.T) {
	s := file.NewStore(t.TempDir())

	if err := s.Put("tables/t/part-00000.parquet", []byte("one")); err != nil {
		t.Fatalf("putting: %v", err)
	}
	if err := s.Put("tables/t/year=2018/part-00000.parquet", []byte("two")); err != nil {
		t.Fatalf("putting nested: %v", err)
	}

	keys, err := s.List("tables/t")
	if err != nil {
		t.Fatalf("listing: %v", err)
	}
	want := []string{"tables/t/part-00000.parquet", "tables/t/year=2018/part-00000.parquet"}
	if !reflect.DeepEqual(keys, want) {
		t.Fatalf("wrong keys: %v", keys)
	}

	r, err := s.Open(keys[1])
	if err != nil {
		t.Fatalf("opening: %v", err)
	}
	defer r.Close()
	if r.Name() != keys[1] {
		t.Fatalf("wrong reader name: %s", r.Name())
	}
	body, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("reading: %v", err)
	}
	if string(body) != "two" {
		t.Fatalf("wrong body: %q", body)
	}
}

func TestStoreListMissing(t *testing.T) {
	s := file.NewStore(t.TempDir())
	if _, err := s.List("no/such/prefix"); err == nil {
		t.Fatal("expected an error for a missing prefix")
	}
}

func TestStoreListSingleFile(t *testing.T) {
	s := file.NewStore(t.TempDir())
	if err := s.Put("events.json", []byte("{}")); err != nil {
		t.Fatalf("putting: %v", err)
	}
	keys, err := s.List("events.json")
	if err != nil {
		t.Fatalf("listing: %v", err)
	}
	if len(keys) != 1 || keys[0] != "events.json" {
		t.Fatalf("wrong keys: %v", keys)
	}
}

func TestStoreRemoveAll(t *testing.T) {
	s := file.NewStore(t.TempDir())
	if err := s.Put("t/year=2018/part-00000.parquet", []byte("x")); err != nil {
		t.Fatalf("putting: %v", err)
	}
	if err := s.RemoveAll("t"); err != nil {
		t.Fatalf("removing: %v", err)
	}
	if _, err := s.List("t"); err == nil {
		t.Fatal("expected listing removed prefix to fail")
	}
	// removing what's already gone is fine
	if err := s.RemoveAll("t"); err != nil {
		t.Fatalf("removing again: %v", err)
	}
}
