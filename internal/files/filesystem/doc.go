// Package filesystem abstracts the data trees the loader reads so that
// discovery and parsing can run against an in-memory tree in tests.
//
// OSFileSystem backs production runs; MemoryFileSystem backs unit tests.
package filesystem
