package json

import (
	"encoding/json"
	"io"

	"github.com/pkg/errors"
	"github.com/sparkify/starlake"
)

// Source is a starlake.Source for reading line separated json records.
type Source struct {
	dec *json.Decoder
}

// NewSource gets a new json source which will decode from the given reader.
func NewSource(r io.Reader) *Source {
	return &Source{
		dec: json.NewDecoder(r),
	}
}

// Record returns the next json object decoded from the reader. A record
// which is not a json object at all is an error; loose typing inside the
// object is the row builders' problem, not ours.
func (s *Source) Record() (map[string]interface{}, error) {
	var rec map[string]interface{}
	if err := s.dec.Decode(&rec); err != nil {
		return nil, err
	}
	return rec, nil
}

type rawSourceSource struct {
	rs  starlake.RawSource
	cur starlake.NamedReadCloser

	s *Source
}

// NewSourceFromRawSource chains the objects of a RawSource into a single
// record stream, moving to the next object when the current one runs out.
func NewSourceFromRawSource(rs starlake.RawSource) starlake.Source {
	return &rawSourceSource{rs: rs}
}

func (r *rawSourceSource) Record() (map[string]interface{}, error) {
	if r.s == nil {
		reader, err := r.rs.NextReader()
		if err == io.EOF {
			return nil, err
		} else if err != nil {
			return nil, errors.Wrap(err, "getting next reader")
		}
		r.cur = reader
		r.s = NewSource(reader)
	}
	rec, err := r.s.Record()
	if err == io.EOF {
		r.cur.Close()
		r.s = nil
		return r.Record()
	} else if err != nil {
		return nil, errors.Wrapf(err, "decoding json from %s", r.cur.Name())
	}
	return rec, nil
}
