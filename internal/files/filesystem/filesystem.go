package filesystem

import (
	"io/fs"
)

// FileInfo is fs.FileInfo under a local name.
type FileInfo = fs.FileInfo

// File is one entry produced by Directory.Walk.
type File interface {
	// Path returns the absolute path to the file
	Path() string

	// RelativePath returns the slash-separated path relative to the walked root
	RelativePath() string

	Info() FileInfo
}

// Directory is a tree that can be walked.
type Directory interface {
	Path() string

	// Walk visits every file and directory below the root, including the root.
	// Returning an error from fn stops the walk.
	Walk(fn func(File, error) error) error
}

// FileSystemProvider opens trees and reads files.
type FileSystemProvider interface {
	Open(path string) (Directory, error)
	ReadFile(path string) ([]byte, error)
	Stat(path string) (FileInfo, error)
}
