package catalog_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/sparkify/starlake/catalog"
	"github.com/sparkify/starlake/file"
	"github.com/sparkify/starlake/lake"
)

func mustRecords(t *testing.T, raws ...string) []map[string]interface{} {
	t.Helper()
	recs := make([]map[string]interface{}, len(raws))
	for i, raw := range raws {
		if err := json.Unmarshal([]byte(raw), &recs[i]); err != nil {
			t.Fatalf("decoding record %d: %v", i, err)
		}
	}
	return recs
}

func TestSongsDedup(t *testing.T) {
	recs := mustRecords(t,
		`{"song_id": "S1", "artist_id": "A1", "title": "Song A", "year": 2000, "duration": 200.5}`,
		`{"song_id": "S1", "artist_id": "A1", "title": "Song A again", "year": 2001, "duration": 1}`,
		`{"song_id": "S1", "artist_id": "A2", "title": "Same song, other artist", "year": 2002, "duration": 2}`,
		`{"song_id": "S2", "artist_id": "A1", "title": "Song B"}`,
	)
	songs := catalog.Songs(recs)
	if len(songs) != 3 {
		t.Fatalf("expected 3 songs, got %d", len(songs))
	}
	// first-seen row wins
	if *songs[0].Title != "Song A" || *songs[0].Year != 2000 {
		t.Fatalf("wrong retained row: %+v", songs[0])
	}
	// missing fields are null, not zero
	if songs[2].Year != nil || songs[2].Duration != nil {
		t.Fatalf("expected null year and duration: %+v", songs[2])
	}

	keys := make(map[[2]string]struct{})
	for _, s := range songs {
		k := [2]string{*s.SongID, *s.ArtistID}
		if _, ok := keys[k]; ok {
			t.Fatalf("duplicate key %v", k)
		}
		keys[k] = struct{}{}
	}
}

func TestSongsCoercesBadTypes(t *testing.T) {
	recs := mustRecords(t,
		`{"song_id": "S1", "artist_id": "A1", "title": 7, "year": "2000", "duration": "200"}`,
	)
	songs := catalog.Songs(recs)
	if len(songs) != 1 {
		t.Fatalf("expected 1 song, got %d", len(songs))
	}
	s := songs[0]
	if s.Title != nil || s.Year != nil || s.Duration != nil {
		t.Fatalf("expected mistyped fields to coerce to null: %+v", s)
	}
}

func TestArtists(t *testing.T) {
	recs := mustRecords(t,
		`{"artist_id": "A2", "artist_name": "Zed", "num_songs": 1}`,
		`{"artist_id": "A1", "artist_name": "First", "artist_location": "Home", "artist_latitude": 1.5, "artist_longitude": -2.5}`,
		`{"artist_id": "A1", "artist_name": "Dupe"}`,
	)
	artists := catalog.Artists(recs)
	if len(artists) != 2 {
		t.Fatalf("expected 2 artists, got %d", len(artists))
	}
	if *artists[0].ArtistID != "A1" || *artists[1].ArtistID != "A2" {
		t.Fatalf("expected artist_id sort order: %+v", artists)
	}
	if *artists[0].Name != "First" {
		t.Fatalf("expected first-seen row for A1, got %+v", artists[0])
	}
	if *artists[0].Latitude != 1.5 || *artists[0].Longitude != -2.5 {
		t.Fatalf("wrong coordinates: %+v", artists[0])
	}
}

func TestMainRun(t *testing.T) {
	inDir, outDir := t.TempDir(), t.TempDir()
	if err := os.MkdirAll(filepath.Join(inDir, "song_data"), 0755); err != nil {
		t.Fatalf("making song_data: %v", err)
	}
	data := `{"song_id": "S1", "artist_id": "A1", "title": "Song A", "year": 2000, "duration": 200.5, "artist_name": "Art", "num_songs": 1}
{"song_id": "S2", "artist_id": "A1", "title": "Song B", "year": 0, "duration": 100.25, "artist_name": "Art", "num_songs": 1}`
	if err := os.WriteFile(filepath.Join(inDir, "song_data", "songs.json"), []byte(data), 0644); err != nil {
		t.Fatalf("writing song data: %v", err)
	}

	m := catalog.NewMain()
	m.InputRoot = inDir
	m.OutputRoot = outDir
	if err := m.Run(); err != nil {
		t.Fatalf("running catalog phase: %v", err)
	}

	out := file.NewStore(outDir)
	songs, err := lake.ReadTable[catalog.SongRow](out, catalog.SongsTable)
	if err != nil {
		t.Fatalf("reading songs table: %v", err)
	}
	if len(songs) != 2 {
		t.Fatalf("expected 2 songs, got %d", len(songs))
	}
	artists, err := lake.ReadTable[catalog.ArtistRow](out, catalog.ArtistsTable)
	if err != nil {
		t.Fatalf("reading artists table: %v", err)
	}
	if len(artists) != 1 {
		t.Fatalf("expected 1 artist, got %d", len(artists))
	}

	keys, err := out.List(catalog.SongsTable)
	if err != nil {
		t.Fatalf("listing songs table: %v", err)
	}
	want := map[string]struct{}{
		"songs.parquet/year=0/artist_id=A1/part-00000.parquet":    {},
		"songs.parquet/year=2000/artist_id=A1/part-00000.parquet": {},
	}
	for _, k := range keys {
		if _, ok := want[k]; !ok {
			t.Fatalf("unexpected part file %s", k)
		}
		delete(want, k)
	}
	if len(want) != 0 {
		t.Fatalf("missing part files: %v", want)
	}
}

func TestMainRunBadPath(t *testing.T) {
	m := catalog.NewMain()
	m.InputRoot = t.TempDir()
	m.OutputRoot = t.TempDir()
	if err := m.Run(); err == nil {
		t.Fatal("expected a missing song_data path to be fatal")
	}
}
