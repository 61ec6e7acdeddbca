// Package scanner discovers the *.json data files below a root directory.
//
// Results are sorted by slash-separated relative path so that every run
// visits files in the same order regardless of the underlying filesystem.
package scanner
