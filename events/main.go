package events

import (
	"log"

	"github.com/pkg/errors"
	"github.com/sparkify/starlake"
	"github.com/sparkify/starlake/catalog"
	"github.com/sparkify/starlake/json"
	"github.com/sparkify/starlake/lake"
	"github.com/sparkify/starlake/store"
)

// Table directory names under the output root.
const (
	UsersTable     = "users.parquet"
	TimeTableName  = "time.parquet"
	SongplaysTable = "songplays.parquet"
)

// Main contains the configuration for the events phase, which reads the
// activity log and writes the users and time dimensions and the songplays
// fact table. The catalog phase must have written the songs table first;
// this phase reads it back from the output root for the songplays join.
type Main struct {
	AWSAccessKeyID     string `flag:"aws-access-key-id" help:"AWS access key id for S3 roots. Empty uses the SDK default credential chain."`
	AWSSecretAccessKey string `flag:"aws-secret-access-key" help:"AWS secret access key paired with aws-access-key-id."`
	Region             string `help:"AWS region for S3 roots."`
	LogData            string `flag:"log-data" help:"Path to the activity log data, relative to input-root."`
	InputRoot          string `flag:"input-root" help:"Base location to read from. A local directory or s3://bucket/prefix."`
	OutputRoot         string `flag:"output-root" help:"Base location to write tables under. A local directory or s3://bucket/prefix."`
	MatchOnTitle       bool   `flag:"match-on-title" help:"Join songplays to the catalog on song title instead of the legacy song_id comparison."`
}

// NewMain gets a new Main with the default configuration.
func NewMain() *Main {
	return &Main{
		Region:  "us-west-2",
		LogData: "log_data",
	}
}

// Config assembles the phase's explicit configuration object.
func (m *Main) Config() *starlake.Config {
	return &starlake.Config{
		AWSAccessKeyID:     m.AWSAccessKeyID,
		AWSSecretAccessKey: m.AWSSecretAccessKey,
		Region:             m.Region,
		LogData:            m.LogData,
		InputRoot:          m.InputRoot,
		OutputRoot:         m.OutputRoot,
	}
}

// Run reads the activity log and writes the users, time, and songplays
// tables, in that order.
func (m *Main) Run() error {
	cfg := m.Config()
	if err := cfg.Validate(); err != nil {
		return errors.Wrap(err, "validating config")
	}
	if cfg.LogData == "" {
		return errors.New("log-data is required")
	}

	in, err := store.ForRoot(cfg.InputRoot, cfg)
	if err != nil {
		return errors.Wrap(err, "opening input root")
	}
	out, err := store.ForRoot(cfg.OutputRoot, cfg)
	if err != nil {
		return errors.Wrap(err, "opening output root")
	}

	raw, err := starlake.NewRawSource(in, cfg.LogData)
	if err != nil {
		return errors.Wrap(err, "opening log data")
	}
	all, err := ReadEvents(json.NewSourceFromRawSource(raw))
	if err != nil {
		return err
	}
	plays := FilterNextSong(all)
	log.Printf("read %d log records from %s, %d are %s", len(all), cfg.LogData, len(plays), NextSongPage)

	users := Users(plays)
	uw := lake.NewWriter[UserRow](out, UsersTable)
	uw.Write(users...)
	if err := uw.Close(); err != nil {
		return errors.Wrap(err, "writing users table")
	}
	log.Printf("wrote %d rows to %s", len(users), UsersTable)

	times := TimeTable(plays)
	tw := lake.NewWriter(out, TimeTableName, lake.OptPartitionBy(timePartitions))
	tw.Write(times...)
	if err := tw.Close(); err != nil {
		return errors.Wrap(err, "writing time table")
	}
	log.Printf("wrote %d rows to %s", len(times), TimeTableName)

	songs, err := lake.ReadTable[catalog.SongRow](out, catalog.SongsTable)
	if err != nil {
		return errors.Wrap(err, "reading songs table (run the catalog phase first)")
	}
	rows := Songplays(plays, songs, times, starlake.NewNexter(), m.MatchOnTitle)
	sw := lake.NewWriter(out, SongplaysTable, lake.OptPartitionBy(songplayPartitions))
	sw.Write(rows...)
	if err := sw.Close(); err != nil {
		return errors.Wrap(err, "writing songplays table")
	}
	log.Printf("wrote %d rows to %s", len(rows), SongplaysTable)
	return nil
}

func timePartitions(r TimeRow) []lake.Partition {
	return []lake.Partition{
		lake.Int32Partition("year", r.Year),
		lake.Int32Partition("month", r.Month),
	}
}

func songplayPartitions(r SongplayRow) []lake.Partition {
	return []lake.Partition{
		lake.Int32Partition("year", r.Year),
		lake.Int32Partition("month", r.Month),
	}
}
