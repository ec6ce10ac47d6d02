package starlake

import "github.com/pkg/errors"

// Config carries everything a pipeline run needs: credentials and the four
// locations. It is constructed once at startup and passed by reference into
// whichever stores perform reads and writes; nothing in this repository
// mutates the process environment to smuggle credentials around.
type Config struct {
	AWSAccessKeyID     string `flag:"aws-access-key-id" help:"AWS access key id for S3 roots. Empty uses the SDK default credential chain."`
	AWSSecretAccessKey string `flag:"aws-secret-access-key" help:"AWS secret access key paired with aws-access-key-id."`
	Region             string `help:"AWS region for S3 roots."`
	SongData           string `flag:"song-data" help:"Path to the song catalog data, relative to input-root."`
	LogData            string `flag:"log-data" help:"Path to the activity log data, relative to input-root."`
	InputRoot          string `flag:"input-root" help:"Base location to read from. A local directory or s3://bucket/prefix."`
	OutputRoot         string `flag:"output-root" help:"Base location to write tables under. A local directory or s3://bucket/prefix."`
}

// Validate checks the parts of the config every phase needs. The per-phase
// relative paths are checked by the phase that uses them.
func (c *Config) Validate() error {
	if c.InputRoot == "" {
		return errors.New("input-root is required")
	}
	if c.OutputRoot == "" {
		return errors.New("output-root is required")
	}
	if (c.AWSAccessKeyID == "") != (c.AWSSecretAccessKey == "") {
		return errors.New("aws-access-key-id and aws-secret-access-key must be set together")
	}
	return nil
}
