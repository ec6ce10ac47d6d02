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

import "testing"

func TestParseURL(t *testing.T) {
	tests := []struct {
		raw    string
		bucket string
		prefix string
		ok     bool
	}{
		{"s3://udacity-dend", "udacity-dend", "", true},
		{"s3://udacity-dend/song_data", "udacity-dend", "song_data", true},
		{"s3a://udacity-dend/log_data/2018/", "udacity-dend", "log_data/2018", true},
		{"/local/path", "", "", false},
		{"s3://", "", "", false},
	}
	for _, test := range tests {
		bucket, prefix, err := ParseURL(test.raw)
		if test.ok && err != nil {
			t.Fatalf("parsing %q: %v", test.raw, err)
		}
		if !test.ok {
			if err == nil {
				t.Fatalf("expected error parsing %q", test.raw)
			}
			continue
		}
		if bucket != test.bucket || prefix != test.prefix {
			t.Fatalf("parsing %q: got %q %q", test.raw, bucket, prefix)
		}
	}
}

func TestKeyMapping(t *testing.T) {
	s := &Store{bucket: "b", prefix: "warehouse"}
	if got := s.fullKey("songs.parquet/part-00000.parquet"); got != "warehouse/songs.parquet/part-00000.parquet" {
		t.Fatalf("wrong full key: %s", got)
	}
	if got := s.relKey("warehouse/songs.parquet/part-00000.parquet"); got != "songs.parquet/part-00000.parquet" {
		t.Fatalf("wrong rel key: %s", got)
	}
	unrooted := &Store{bucket: "b"}
	if got := unrooted.fullKey("x"); got != "x" {
		t.Fatalf("wrong unrooted key: %s", got)
	}
}
