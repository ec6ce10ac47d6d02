// starlake turns Sparkify's raw JSON catalog and event dumps into a small
// star schema of parquet tables. It is a plain batch job: read everything,
// reshape it, write it back out. No daemon, no incremental state.
//
// The moving parts, from the outside in:
//
// 1. ObjectStore
//
//    Everything the pipeline reads or writes lives in an object store - a
//    local directory while developing, an S3 bucket in production. The
//    ObjectStore interface in this package is the whole seam: List, Open,
//    Put, RemoveAll. Implementations live in the file and aws/s3
//    subpackages, and store.ForRoot picks one from a root string.
//
// 2. Source
//
//    A Source hands back one decoded record at a time as a
//    map[string]interface{}, returning io.EOF when the data is exhausted.
//    The json subpackage decodes line separated JSON objects, either from a
//    single reader or from a RawSource that walks every object under a
//    prefix in lexical key order.
//
// 3. Row building
//
//    The catalog and events packages turn raw records into typed rows using
//    the null coercing field readers in this package: a missing field or a
//    field of the wrong type becomes a null column, never an error. These
//    two packages hold the dedup, join, and calendar derivation rules that
//    define the five output tables.
//
// 4. Lake
//
//    The lake package writes a slice of rows as a parquet table directory,
//    hive partitioned (year=2018/month=11/...) where the table calls for
//    it, always as a full overwrite of whatever was there before. It also
//    reads a table directory back, which is how the songplays join gets the
//    songs table written by the catalog phase.
//
// The pipeline package strings the two phases together, and cmd wires
// everything into the starlake binary.
package starlake
