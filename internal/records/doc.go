// Package records decodes the two input file formats.
//
// A catalog file holds one JSON object describing a song and its artist.
// An activity file holds listening events, either as a JSON array or as one
// object per line. Numbers are kept as decimal text until they are turned
// into pgtype.Numeric, so durations and coordinates reach PostgreSQL exactly.
package records
