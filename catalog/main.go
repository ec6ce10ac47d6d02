package catalog

import (
	"io"
	"log"

	"github.com/pkg/errors"
	"github.com/sparkify/starlake"
	"github.com/sparkify/starlake/json"
	"github.com/sparkify/starlake/lake"
	"github.com/sparkify/starlake/store"
)

// Table directory names under the output root.
const (
	SongsTable   = "songs.parquet"
	ArtistsTable = "artists.parquet"
)

// Main contains the configuration for the catalog phase, which reads the
// song catalog and writes the songs and artists dimension tables.
type Main struct {
	AWSAccessKeyID     string `flag:"aws-access-key-id" help:"AWS access key id for S3 roots. Empty uses the SDK default credential chain."`
	AWSSecretAccessKey string `flag:"aws-secret-access-key" help:"AWS secret access key paired with aws-access-key-id."`
	Region             string `help:"AWS region for S3 roots."`
	SongData           string `flag:"song-data" help:"Path to the song catalog data, relative to input-root."`
	InputRoot          string `flag:"input-root" help:"Base location to read from. A local directory or s3://bucket/prefix."`
	OutputRoot         string `flag:"output-root" help:"Base location to write tables under. A local directory or s3://bucket/prefix."`
}

// NewMain gets a new Main with the default configuration.
func NewMain() *Main {
	return &Main{
		Region:   "us-west-2",
		SongData: "song_data",
	}
}

// Config assembles the phase's explicit configuration object.
func (m *Main) Config() *starlake.Config {
	return &starlake.Config{
		AWSAccessKeyID:     m.AWSAccessKeyID,
		AWSSecretAccessKey: m.AWSSecretAccessKey,
		Region:             m.Region,
		SongData:           m.SongData,
		InputRoot:          m.InputRoot,
		OutputRoot:         m.OutputRoot,
	}
}

// Run reads the catalog and writes the songs and artists tables. Nothing is
// written unless the whole catalog reads cleanly.
func (m *Main) Run() error {
	cfg := m.Config()
	if err := cfg.Validate(); err != nil {
		return errors.Wrap(err, "validating config")
	}
	if cfg.SongData == "" {
		return errors.New("song-data is required")
	}

	in, err := store.ForRoot(cfg.InputRoot, cfg)
	if err != nil {
		return errors.Wrap(err, "opening input root")
	}
	out, err := store.ForRoot(cfg.OutputRoot, cfg)
	if err != nil {
		return errors.Wrap(err, "opening output root")
	}

	recs, err := readCatalog(in, cfg.SongData)
	if err != nil {
		return err
	}
	log.Printf("read %d catalog records from %s", len(recs), cfg.SongData)

	songs := Songs(recs)
	w := lake.NewWriter(out, SongsTable, lake.OptPartitionBy(songPartitions))
	w.Write(songs...)
	if err := w.Close(); err != nil {
		return errors.Wrap(err, "writing songs table")
	}
	log.Printf("wrote %d rows to %s", len(songs), SongsTable)

	artists := Artists(recs)
	aw := lake.NewWriter[ArtistRow](out, ArtistsTable)
	aw.Write(artists...)
	if err := aw.Close(); err != nil {
		return errors.Wrap(err, "writing artists table")
	}
	log.Printf("wrote %d rows to %s", len(artists), ArtistsTable)
	return nil
}

func readCatalog(in starlake.ObjectStore, prefix string) ([]map[string]interface{}, error) {
	raw, err := starlake.NewRawSource(in, prefix)
	if err != nil {
		return nil, errors.Wrap(err, "opening song data")
	}
	src := json.NewSourceFromRawSource(raw)
	var recs []map[string]interface{}
	for {
		rec, err := src.Record()
		if err == io.EOF {
			return recs, nil
		} else if err != nil {
			return nil, errors.Wrap(err, "reading song data")
		}
		recs = append(recs, rec)
	}
}

// songPartitions matches the songs table layout: year, then artist_id.
func songPartitions(r SongRow) []lake.Partition {
	return []lake.Partition{
		lake.NullableInt32Partition("year", r.Year),
		lake.StringPartition("artist_id", r.ArtistID),
	}
}
