// Copyright 2018 Sparkify Corp.
//
// Redistribution and use in source and binary forms, with or without
// modification, are permitted provided that the following conditions
// are met:
//
// 1. Redistributions of source code must retain the above copyright
// notice, this list of conditions and the following disclaimer.
//
// 2. Redistributions in binary form must reproduce the above copyright
// notice, this list of conditions and the following disclaimer in the
// documentation and/or other materials provided with the distribution.
//
// 3. Neither the name of the copyright holder nor the names of its
// contributors may be used to endorse or promote products derived
// from this software without specific prior written permission.
//
// THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND
// CONTRIBUTORS "AS IS" AND ANY EXPRESS OR IMPLIED WARRANTIES,
// INCLUDING, BUT NOT LIMITED TO, THE IMPLIED WARRANTIES OF
// MERCHANTABILITY AND FITNESS FOR A PARTICULAR PURPOSE ARE
// DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT HOLDER OR
// CONTRIBUTORS BE LIABLE FOR ANY DIRECT, INDIRECT, INCIDENTAL,
// SPECIAL, EXEMPLARY, OR CONSEQUENTIAL DAMAGES (INCLUDING,
// BUT NOT LIMITED TO, PROCUREMENT OF SUBSTITUTE GOODS OR
// SERVICES; LOSS OF USE, DATA, OR PROFITS; OR BUSINESS
// INTERRUPTION) HOWEVER CAUSED AND ON ANY THEORY OF LIABILITY,
// WHETHER IN CONTRACT, STRICT LIABILITY, OR TORT (INCLUDING
// NEGLIGENCE OR OTHERWISE) ARISING IN ANY WAY OUT OF THE USE
// OF THIS SOFTWARE, EVEN IF ADVISED OF THE POSSIBILITY OF SUCH
// DAMAGE.

package s3

import (
	"bytes"
	"io"
	"sort"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/pkg/errors"
	"github.com/sparkify/starlake"
)

// deleteBatchSize is the DeleteObjects request limit.
const deleteBatchSize = 1000

// Store is a starlake.ObjectStore backed by an S3 bucket, optionally rooted
// at a prefix within the bucket. Credentials come from the Config; when the
// Config carries none, the SDK default chain applies.
type Store struct {
	bucket string
	prefix string
	s3     *s3.S3
}

// NewStore returns a Store for the bucket, rooted at prefix.
func NewStore(cfg *starlake.Config, bucket, prefix string) (*Store, error) {
	awsCfg := &aws.Config{Region: aws.String(cfg.Region)}
	if cfg.AWSAccessKeyID != "" {
		awsCfg.Credentials = credentials.NewStaticCredentials(cfg.AWSAccessKeyID, cfg.AWSSecretAccessKey, "")
	}
	sess, err := session.NewSession(awsCfg)
	if err != nil {
		return nil, errors.Wrap(err, "getting aws session")
	}
	return &Store{
		bucket: bucket,
		prefix: strings.Trim(prefix, "/"),
		s3:     s3.New(sess),
	}, nil
}

// ParseURL splits an s3://bucket/prefix (or s3a://) root into bucket and
// prefix.
func ParseURL(raw string) (bucket, prefix string, err error) {
	rest := raw
	switch {
	case strings.HasPrefix(raw, "s3://"):
		rest = strings.TrimPrefix(raw, "s3://")
	case strings.HasPrefix(raw, "s3a://"):
		rest = strings.TrimPrefix(raw, "s3a://")
	default:
		return "", "", errors.Errorf("not an s3 url: %q", raw)
	}
	bucket, prefix, _ = strings.Cut(rest, "/")
	if bucket == "" {
		return "", "", errors.Errorf("no bucket in s3 url: %q", raw)
	}
	return bucket, strings.Trim(prefix, "/"), nil
}

// fullKey maps a store-relative key to the bucket key.
func (s *Store) fullKey(key string) string {
	if s.prefix == "" {
		return key
	}
	if key == "" {
		return s.prefix
	}
	return s.prefix + "/" + key
}

// relKey maps a bucket key back to a store-relative key.
func (s *Store) relKey(full string) string {
	if s.prefix == "" {
		return full
	}
	return strings.TrimPrefix(full, s.prefix+"/")
}

// List returns the store-relative keys of all objects under prefix, sorted.
func (s *Store) List(prefix string) ([]string, error) {
	var keys []string
	input := &s3.ListObjectsV2Input{
		Bucket: aws.String(s.bucket),
		Prefix: aws.String(s.fullKey(prefix)),
	}
	err := s.s3.ListObjectsV2Pages(input, func(page *s3.ListObjectsV2Output, last bool) bool {
		for _, obj := range page.Contents {
			keys = append(keys, s.relKey(*obj.Key))
		}
		return true
	})
	if err != nil {
		return nil, errors.Wrapf(err, "listing s3://%s/%s", s.bucket, s.fullKey(prefix))
	}
	sort.Strings(keys)
	return keys, nil
}

type objReader struct {
	name string
	body io.ReadCloser
}

func (o *objReader) Read(buf []byte) (n int, err error) { return o.body.Read(buf) }
func (o *objReader) Close() error                       { return o.body.Close() }
func (o *objReader) Name() string                       { return o.name }

// Open fetches the object at key.
func (s *Store) Open(key string) (starlake.NamedReadCloser, error) {
	result, err := s.s3.GetObject(&s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.fullKey(key)),
	})
	if err != nil {
		return nil, errors.Wrapf(err, "fetching %v", key)
	}
	return &objReader{name: key, body: result.Body}, nil
}

// Put uploads body to key.
func (s *Store) Put(key string, body []byte) error {
	_, err := s.s3.PutObject(&s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.fullKey(key)),
		Body:   bytes.NewReader(body),
	})
	return errors.Wrapf(err, "putting %v", key)
}

// RemoveAll deletes every object under prefix, in batches.
func (s *Store) RemoveAll(prefix string) error {
	keys, err := s.List(prefix)
	if err != nil {
		return errors.Wrap(err, "listing objects to delete")
	}
	for len(keys) > 0 {
		batch := keys
		if len(batch) > deleteBatchSize {
			batch = batch[:deleteBatchSize]
		}
		keys = keys[len(batch):]

		objects := make([]*s3.ObjectIdentifier, len(batch))
		for i, key := range batch {
			objects[i] = &s3.ObjectIdentifier{Key: aws.String(s.fullKey(key))}
		}
		_, err = s.s3.DeleteObjects(&s3.DeleteObjectsInput{
			Bucket: aws.String(s.bucket),
			Delete: &s3.Delete{Objects: objects, Quiet: aws.Bool(true)},
		})
		if err != nil {
			return errors.Wrapf(err, "deleting %d objects under %v", len(batch), prefix)
		}
	}
	return nil
}
