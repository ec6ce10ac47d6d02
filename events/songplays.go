package events

import (
	"github.com/sparkify/starlake"
	"github.com/sparkify/starlake/catalog"
)

// SongplayRow is one row of the songplays fact table.
type SongplayRow struct {
	SongplayID int64   `parquet:"songplay_id"`
	StartTime  int64   `parquet:"start_time"`
	UserID     *int32  `parquet:"user_id,optional"`
	Level      *string `parquet:"level,optional"`
	SongID     *string `parquet:"song_id,optional"`
	ArtistID   *string `parquet:"artist_id,optional"`
	SessionID  *int32  `parquet:"session_id,optional"`
	Location   *string `parquet:"location,optional"`
	UserAgent  *string `parquet:"user_agent,optional"`
	Year       int32   `parquet:"year"`
	Month      int32   `parquet:"month"`
}

// Songplays assembles the fact table from playback events, the songs table
// read back from storage, and the time table.
//
// The legacy join compares the event's free-text song name against the
// catalog's song_id column, so it matches almost nothing and nearly every
// row carries null song_id/artist_id. That predicate is kept as-is for
// parity with the tables downstream already has; matchOnTitle switches the
// comparison to the catalog title column instead.
//
// Events left-join the catalog (no match keeps the event with null ids, a
// multi-match multiplies it), take an id from ids, then inner-join the time
// table on ts: an event whose ts is absent from the time table is silently
// dropped, its id spent. Ids are strictly increasing with gaps and carry no
// meaning across runs.
func Songplays(events []LogEvent, songs []catalog.SongRow, times []TimeRow, ids *starlake.Nexter, matchOnTitle bool) []SongplayRow {
	index := make(map[string][]catalog.SongRow, len(songs))
	for _, s := range songs {
		k := s.SongID
		if matchOnTitle {
			k = s.Title
		}
		if k == nil {
			continue
		}
		index[*k] = append(index[*k], s)
	}

	timeByTS := make(map[int64]TimeRow, len(times))
	for _, tr := range times {
		timeByTS[tr.TS] = tr
	}

	var rows []SongplayRow
	for _, e := range events {
		matches := []catalog.SongRow{{}}
		if e.Song != nil {
			if ms, ok := index[*e.Song]; ok {
				matches = ms
			}
		}
		for _, m := range matches {
			id := int64(ids.Next())
			if e.TS == nil {
				continue
			}
			tr, ok := timeByTS[*e.TS]
			if !ok {
				continue
			}
			rows = append(rows, SongplayRow{
				SongplayID: id,
				StartTime:  *e.TS,
				UserID:     e.UserID,
				Level:      e.Level,
				SongID:     m.SongID,
				ArtistID:   m.ArtistID,
				SessionID:  e.SessionID,
				Location:   e.Location,
				UserAgent:  e.UserAgent,
				Year:       tr.Year,
				Month:      tr.Month,
			})
		}
	}
	return rows
}
