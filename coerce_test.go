package starlake_test

import (
	"encoding/json"
	"testing"

	"github.com/sparkify/starlake"
)

func mustRecord(t *testing.T, raw string) map[string]interface{} {
	t.Helper()
	var rec map[string]interface{}
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		t.Fatalf("decoding record: %v", err)
	}
	return rec
}

func TestStringField(t *testing.T) {
	rec := mustRecord(t, `{"title": "Song A", "year": 2000, "null": null}`)
	if v := starlake.StringField(rec, "title"); v == nil || *v != "Song A" {
		t.Fatalf("expected Song A, got %v", v)
	}
	if v := starlake.StringField(rec, "year"); v != nil {
		t.Fatalf("expected nil for number-typed field, got %q", *v)
	}
	if v := starlake.StringField(rec, "null"); v != nil {
		t.Fatalf("expected nil for null field, got %q", *v)
	}
	if v := starlake.StringField(rec, "missing"); v != nil {
		t.Fatalf("expected nil for missing field, got %q", *v)
	}
}

func TestIntField(t *testing.T) {
	rec := mustRecord(t, `{"year": 2000, "duration": 200.5, "id": "8"}`)
	if v := starlake.IntField(rec, "year"); v == nil || *v != 2000 {
		t.Fatalf("expected 2000, got %v", v)
	}
	if v := starlake.IntField(rec, "duration"); v != nil {
		t.Fatalf("expected nil for fractional value, got %d", *v)
	}
	if v := starlake.IntField(rec, "id"); v != nil {
		t.Fatalf("expected nil for string-typed field, got %d", *v)
	}
}

func TestLongField(t *testing.T) {
	rec := mustRecord(t, `{"ts": 1541121934796}`)
	if v := starlake.LongField(rec, "ts"); v == nil || *v != 1541121934796 {
		t.Fatalf("expected 1541121934796, got %v", v)
	}
}

func TestFloatField(t *testing.T) {
	rec := mustRecord(t, `{"duration": 200.5, "title": "x"}`)
	if v := starlake.FloatField(rec, "duration"); v == nil || *v != 200.5 {
		t.Fatalf("expected 200.5, got %v", v)
	}
	if v := starlake.FloatField(rec, "title"); v != nil {
		t.Fatalf("expected nil for string-typed field, got %f", *v)
	}
}
