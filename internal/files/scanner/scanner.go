package scanner

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/vvka-141/sparkify/internal/files/filesystem"
	"github.com/vvka-141/sparkify/pkg/sparkify"
)

// Scanner implements sparkify.FileScanner. It is safe for concurrent use
// when the filesystem provider is.
type Scanner struct {
	fsProvider filesystem.FileSystemProvider
}

// NewScanner creates a scanner over the OS filesystem.
func NewScanner() *Scanner {
	return &Scanner{fsProvider: filesystem.NewOSFileSystem()}
}

// NewScannerWithFS creates a scanner over fsProvider.
// Panics if fsProvider is nil.
func NewScannerWithFS(fsProvider filesystem.FileSystemProvider) *Scanner {
	if fsProvider == nil {
		panic("fsProvider cannot be nil")
	}
	return &Scanner{fsProvider: fsProvider}
}

// ScanDirectory returns every regular file below root whose name ends in
// ".json", at any depth. A missing or unreadable root is an error; an empty
// tree is not.
func (s *Scanner) ScanDirectory(root string) (sparkify.FileScanResult, error) {
	dir, err := s.fsProvider.Open(root)
	if err != nil {
		return sparkify.FileScanResult{}, fmt.Errorf("failed to open directory %s: %w", root, err)
	}

	var files []sparkify.FileMetadata
	err = dir.Walk(func(file filesystem.File, err error) error {
		if err != nil {
			return fmt.Errorf("error walking %s: %w", root, err)
		}
		info := file.Info()
		if info.IsDir() || !strings.HasSuffix(info.Name(), sparkify.DataFileExtension) {
			return nil
		}

		files = append(files, describe(file))
		return nil
	})
	if err != nil {
		return sparkify.FileScanResult{}, err
	}

	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })

	return sparkify.FileScanResult{Root: dir.Path(), Files: files}, nil
}

// describe builds metadata with a "./"-prefixed slash path relative to the root.
func describe(file filesystem.File) sparkify.FileMetadata {
	unixPath := filepath.ToSlash(file.RelativePath())
	if !strings.HasPrefix(unixPath, "./") {
		unixPath = "./" + unixPath
	}

	directory := unixPath[:strings.LastIndex(unixPath, "/")+1]
	info := file.Info()

	return sparkify.FileMetadata{
		Path:       unixPath,
		AbsPath:    file.Path(),
		Name:       info.Name(),
		Directory:  directory,
		Depth:      strings.Count(directory, "/") - 1,
		SizeBytes:  info.Size(),
		ModifiedAt: info.ModTime(),
	}
}

var _ sparkify.FileScanner = (*Scanner)(nil)
