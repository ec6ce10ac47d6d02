package store

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/sparkify/starlake"
	"github.com/sparkify/starlake/aws/s3"
	"github.com/sparkify/starlake/file"
)

// ForRoot returns an ObjectStore for a root location. Roots beginning with
// s3:// or s3a:// are S3 buckets; anything else is a local directory. The
// config supplies credentials for the S3 case and is never mutated.
func ForRoot(root string, cfg *starlake.Config) (starlake.ObjectStore, error) {
	if strings.HasPrefix(root, "s3://") || strings.HasPrefix(root, "s3a://") {
		bucket, prefix, err := s3.ParseURL(root)
		if err != nil {
			return nil, errors.Wrap(err, "parsing s3 root")
		}
		return s3.NewStore(cfg, bucket, prefix)
	}
	return file.NewStore(root), nil
}
