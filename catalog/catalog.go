package catalog

import (
	"sort"

	"github.com/sparkify/starlake"
)

// SongRow is one row of the songs dimension table, keyed by
// (song_id, artist_id).
type SongRow struct {
	SongID   *string  `parquet:"song_id,optional"`
	ArtistID *string  `parquet:"artist_id,optional"`
	Title    *string  `parquet:"title,optional"`
	Year     *int32   `parquet:"year,optional"`
	Duration *float64 `parquet:"duration,optional"`
}

// ArtistRow is one row of the artists dimension table, keyed by artist_id.
type ArtistRow struct {
	ArtistID  *string  `parquet:"artist_id,optional"`
	Name      *string  `parquet:"artist_name,optional"`
	Location  *string  `parquet:"artist_location,optional"`
	Latitude  *float64 `parquet:"artist_latitude,optional"`
	Longitude *float64 `parquet:"artist_longitude,optional"`
	NumSongs  *int32   `parquet:"num_songs,optional"`
}

type songKey struct {
	songID, artistID     string
	songNull, artistNull bool
}

func keyPart(s *string) (string, bool) {
	if s == nil {
		return "", true
	}
	return *s, false
}

// Songs projects catalog records onto the songs table and deduplicates on
// (song_id, artist_id). The first-seen row wins, which is deterministic
// because records arrive in lexical object key order.
func Songs(recs []map[string]interface{}) []SongRow {
	seen := make(map[songKey]struct{})
	rows := make([]SongRow, 0, len(recs))
	for _, rec := range recs {
		row := SongRow{
			SongID:   starlake.StringField(rec, "song_id"),
			ArtistID: starlake.StringField(rec, "artist_id"),
			Title:    starlake.StringField(rec, "title"),
			Year:     starlake.IntField(rec, "year"),
			Duration: starlake.FloatField(rec, "duration"),
		}
		var k songKey
		k.songID, k.songNull = keyPart(row.SongID)
		k.artistID, k.artistNull = keyPart(row.ArtistID)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		rows = append(rows, row)
	}
	return rows
}

// Artists projects catalog records onto the artists table, sorts by
// artist_id (nulls first), and deduplicates on artist_id. The sort is
// stable, so the retained row among duplicates is the first-seen one.
func Artists(recs []map[string]interface{}) []ArtistRow {
	rows := make([]ArtistRow, 0, len(recs))
	for _, rec := range recs {
		rows = append(rows, ArtistRow{
			ArtistID:  starlake.StringField(rec, "artist_id"),
			Name:      starlake.StringField(rec, "artist_name"),
			Location:  starlake.StringField(rec, "artist_location"),
			Latitude:  starlake.FloatField(rec, "artist_latitude"),
			Longitude: starlake.FloatField(rec, "artist_longitude"),
			NumSongs:  starlake.IntField(rec, "num_songs"),
		})
	}
	sort.SliceStable(rows, func(i, j int) bool {
		a, aNull := keyPart(rows[i].ArtistID)
		b, bNull := keyPart(rows[j].ArtistID)
		if aNull != bNull {
			return aNull
		}
		return a < b
	})
	type artistKey struct {
		id   string
		null bool
	}
	seen := make(map[artistKey]struct{})
	deduped := rows[:0]
	for _, row := range rows {
		var k artistKey
		k.id, k.null = keyPart(row.ArtistID)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		deduped = append(deduped, row)
	}
	return deduped
}
