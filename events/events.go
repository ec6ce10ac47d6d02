package events

import (
	"io"

	"github.com/pkg/errors"
	"github.com/sparkify/starlake"
)

// NextSongPage marks an actual playback event in the activity log; every
// output table of this phase derives from NextSong events only.
const NextSongPage = "NextSong"

// LogEvent is one decoded activity log record. All fields are nullable:
// the log schema is fixed but the data is not trusted to match it.
type LogEvent struct {
	Artist        *string
	Auth          *string
	FirstName     *string
	Gender        *string
	ItemInSession *int32
	LastName      *string
	Level         *string
	Location      *string
	Method        *string
	Page          *string
	Registration  *int64
	SessionID     *int32
	Song          *string
	Status        *int32
	TS            *int64
	UserAgent     *string
	UserID        *int32
}

func eventFromRecord(rec map[string]interface{}) LogEvent {
	return LogEvent{
		Artist:        starlake.StringField(rec, "artist"),
		Auth:          starlake.StringField(rec, "auth"),
		FirstName:     starlake.StringField(rec, "firstName"),
		Gender:        starlake.StringField(rec, "gender"),
		ItemInSession: starlake.IntField(rec, "itemInSession"),
		LastName:      starlake.StringField(rec, "lastName"),
		Level:         starlake.StringField(rec, "level"),
		Location:      starlake.StringField(rec, "location"),
		Method:        starlake.StringField(rec, "method"),
		Page:          starlake.StringField(rec, "page"),
		Registration:  starlake.LongField(rec, "registration"),
		SessionID:     starlake.IntField(rec, "sessionId"),
		Song:          starlake.StringField(rec, "song"),
		Status:        starlake.IntField(rec, "status"),
		TS:            starlake.LongField(rec, "ts"),
		UserAgent:     starlake.StringField(rec, "userAgent"),
		UserID:        starlake.IntField(rec, "userId"),
	}
}

// ReadEvents decodes every record of a log source.
func ReadEvents(src starlake.Source) ([]LogEvent, error) {
	var events []LogEvent
	for {
		rec, err := src.Record()
		if err == io.EOF {
			return events, nil
		} else if err != nil {
			return nil, errors.Wrap(err, "reading log data")
		}
		events = append(events, eventFromRecord(rec))
	}
}

// FilterNextSong keeps only playback events.
func FilterNextSong(events []LogEvent) []LogEvent {
	kept := make([]LogEvent, 0, len(events))
	for _, e := range events {
		if e.Page != nil && *e.Page == NextSongPage {
			kept = append(kept, e)
		}
	}
	return kept
}

// UserRow is one row of the users dimension table, keyed by userId.
type UserRow struct {
	UserID    *int32  `parquet:"userId,optional"`
	FirstName *string `parquet:"firstName,optional"`
	LastName  *string `parquet:"lastName,optional"`
	Gender    *string `parquet:"gender,optional"`
	Level     *string `parquet:"level,optional"`
}

// Users projects playback events onto the users table and deduplicates on
// userId, first-seen row wins. Note this keeps the user's level as of their
// earliest event in the batch, not their latest.
func Users(events []LogEvent) []UserRow {
	type userKey struct {
		id   int32
		null bool
	}
	seen := make(map[userKey]struct{})
	var rows []UserRow
	for _, e := range events {
		var k userKey
		if e.UserID == nil {
			k.null = true
		} else {
			k.id = *e.UserID
		}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		rows = append(rows, UserRow{
			UserID:    e.UserID,
			FirstName: e.FirstName,
			LastName:  e.LastName,
			Gender:    e.Gender,
			Level:     e.Level,
		})
	}
	return rows
}
