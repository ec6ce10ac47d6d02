package pipeline

import (
	"github.com/pkg/errors"
	"github.com/sparkify/starlake/catalog"
	"github.com/sparkify/starlake/events"
)

// Main contains the configuration for a whole pipeline run: the catalog
// phase followed by the events phase. The ordering is a hard dependency -
// the events phase reads the songs table the catalog phase wrote.
type Main struct {
	AWSAccessKeyID     string `flag:"aws-access-key-id" help:"AWS access key id for S3 roots. Empty uses the SDK default credential chain."`
	AWSSecretAccessKey string `flag:"aws-secret-access-key" help:"AWS secret access key paired with aws-access-key-id."`
	Region             string `help:"AWS region for S3 roots."`
	SongData           string `flag:"song-data" help:"Path to the song catalog data, relative to input-root."`
	LogData            string `flag:"log-data" help:"Path to the activity log data, relative to input-root."`
	InputRoot          string `flag:"input-root" help:"Base location to read from. A local directory or s3://bucket/prefix."`
	OutputRoot         string `flag:"output-root" help:"Base location to write tables under. A local directory or s3://bucket/prefix."`
	MatchOnTitle       bool   `flag:"match-on-title" help:"Join songplays to the catalog on song title instead of the legacy song_id comparison."`
}

// NewMain gets a new Main with the default configuration.
func NewMain() *Main {
	return &Main{
		Region:   "us-west-2",
		SongData: "song_data",
		LogData:  "log_data",
	}
}

// Run runs both phases against the same configuration.
func (m *Main) Run() error {
	cat := catalog.NewMain()
	cat.AWSAccessKeyID = m.AWSAccessKeyID
	cat.AWSSecretAccessKey = m.AWSSecretAccessKey
	cat.Region = m.Region
	cat.SongData = m.SongData
	cat.InputRoot = m.InputRoot
	cat.OutputRoot = m.OutputRoot
	if err := cat.Run(); err != nil {
		return errors.Wrap(err, "catalog phase")
	}

	ev := events.NewMain()
	ev.AWSAccessKeyID = m.AWSAccessKeyID
	ev.AWSSecretAccessKey = m.AWSSecretAccessKey
	ev.Region = m.Region
	ev.LogData = m.LogData
	ev.InputRoot = m.InputRoot
	ev.OutputRoot = m.OutputRoot
	ev.MatchOnTitle = m.MatchOnTitle
	return errors.Wrap(ev.Run(), "events phase")
}
