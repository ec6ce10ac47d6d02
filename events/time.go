package events

import "time"

// TimeRow is one row of the time dimension table, keyed by the raw epoch
// millisecond timestamp.
type TimeRow struct {
	TS       int64     `parquet:"ts"`
	Datetime time.Time `parquet:"datetime"`
	Hour     int32     `parquet:"hour"`
	Day      int32     `parquet:"day"`
	Week     int32     `parquet:"week"`
	Month    int32     `parquet:"month"`
	Year     int32     `parquet:"year"`
	Weekday  int32     `parquet:"weekday"`
}

// EpochMillisToLocalTime converts an epoch milliseconds value to a wall
// clock timestamp in the local timezone.
func EpochMillisToLocalTime(ms int64) time.Time {
	return time.UnixMilli(ms)
}

// TimeTable builds one row per distinct non-null ts among playback events,
// in first-seen order. Dedup happens before derivation. Week is the ISO
// 8601 week number; weekday is Go's ordinal, Sunday=0.
func TimeTable(events []LogEvent) []TimeRow {
	seen := make(map[int64]struct{})
	var rows []TimeRow
	for _, e := range events {
		if e.TS == nil {
			continue
		}
		if _, ok := seen[*e.TS]; ok {
			continue
		}
		seen[*e.TS] = struct{}{}
		rows = append(rows, timeRow(*e.TS))
	}
	return rows
}

func timeRow(ts int64) TimeRow {
	t := EpochMillisToLocalTime(ts)
	_, week := t.ISOWeek()
	return TimeRow{
		TS:       ts,
		Datetime: t,
		Hour:     int32(t.Hour()),
		Day:      int32(t.Day()),
		Week:     int32(week),
		Month:    int32(t.Month()),
		Year:     int32(t.Year()),
		Weekday:  int32(t.Weekday()),
	}
}
