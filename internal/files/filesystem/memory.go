package filesystem

import (
	"fmt"
	"io/fs"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

type memoryFileInfo struct {
	name    string
	size    int64
	modTime time.Time
	isDir   bool
}

func (f *memoryFileInfo) Name() string       { return f.name }
func (f *memoryFileInfo) Size() int64        { return f.size }
func (f *memoryFileInfo) ModTime() time.Time { return f.modTime }
func (f *memoryFileInfo) IsDir() bool        { return f.isDir }
func (f *memoryFileInfo) Sys() interface{}   { return nil }

func (f *memoryFileInfo) Mode() fs.FileMode {
	if f.isDir {
		return 0755 | fs.ModeDir
	}
	return 0644
}

type memoryEntry struct {
	absPath string
	relPath string
	content []byte
	info    *memoryFileInfo
}

func (e *memoryEntry) Path() string         { return e.absPath }
func (e *memoryEntry) RelativePath() string { return e.relPath }
func (e *memoryEntry) Info() FileInfo       { return e.info }

type memoryDirectory struct {
	absPath string
	fs      *MemoryFileSystem
}

func (d *memoryDirectory) Path() string { return d.absPath }

// Walk visits entries in lexical path order with paths relative to d.
func (d *memoryDirectory) Walk(fn func(File, error) error) error {
	var paths []string
	for p := range d.fs.entries {
		if p == d.absPath || strings.HasPrefix(p, strings.TrimSuffix(d.absPath, "/")+"/") {
			paths = append(paths, p)
		}
	}
	sort.Strings(paths)

	for _, p := range paths {
		entry := d.fs.entries[p]
		rel := strings.TrimPrefix(strings.TrimPrefix(p, d.absPath), "/")
		if rel == "" {
			rel = "."
		}

		var callbackErr error
		func() {
			defer func() {
				if r := recover(); r != nil {
					callbackErr = fmt.Errorf("walk callback panicked at %s: %v", p, r)
				}
			}()
			callbackErr = fn(&memoryEntry{absPath: p, relPath: rel, content: entry.content, info: entry.info}, nil)
		}()
		if callbackErr != nil {
			return callbackErr
		}
	}
	return nil
}

// MemoryFileSystem is an in-memory tree rooted at a virtual absolute path.
// It is not safe for concurrent mutation.
type MemoryFileSystem struct {
	entries map[string]*memoryEntry
	root    string
}

func NewMemoryFileSystem(root string) *MemoryFileSystem {
	root = path.Clean(filepath.ToSlash(root))
	mfs := &MemoryFileSystem{
		entries: make(map[string]*memoryEntry),
		root:    root,
	}
	mfs.addDir(root)
	return mfs
}

// AddFile adds a file; relative paths are resolved against the root.
func (mfs *MemoryFileSystem) AddFile(filePath, content string) {
	mfs.AddFileWithTime(filePath, content, time.Now())
}

func (mfs *MemoryFileSystem) AddFileWithTime(filePath, content string, modTime time.Time) {
	absPath := mfs.resolve(filePath)
	data := []byte(content)
	mfs.entries[absPath] = &memoryEntry{
		absPath: absPath,
		content: data,
		info: &memoryFileInfo{
			name:    path.Base(absPath),
			size:    int64(len(data)),
			modTime: modTime,
		},
	}

	for dir := path.Dir(absPath); dir != "/" && dir != "."; dir = path.Dir(dir) {
		if _, ok := mfs.entries[dir]; ok {
			break
		}
		mfs.addDir(dir)
	}
}

func (mfs *MemoryFileSystem) addDir(dir string) {
	mfs.entries[dir] = &memoryEntry{
		absPath: dir,
		info:    &memoryFileInfo{name: path.Base(dir), modTime: time.Now(), isDir: true},
	}
}

func (mfs *MemoryFileSystem) resolve(p string) string {
	p = filepath.ToSlash(p)
	switch {
	case p == "" || p == ".":
		return mfs.root
	case path.IsAbs(p):
		return path.Clean(p)
	default:
		return path.Join(mfs.root, p)
	}
}

func (mfs *MemoryFileSystem) Open(openPath string) (Directory, error) {
	absPath := mfs.resolve(openPath)
	entry, ok := mfs.entries[absPath]
	if !ok {
		return nil, fmt.Errorf("failed to access path: %w", &fs.PathError{Op: "open", Path: openPath, Err: fs.ErrNotExist})
	}
	if !entry.info.IsDir() {
		return nil, fmt.Errorf("path is not a directory: %s", openPath)
	}
	return &memoryDirectory{absPath: absPath, fs: mfs}, nil
}

func (mfs *MemoryFileSystem) ReadFile(filePath string) ([]byte, error) {
	entry, ok := mfs.entries[mfs.resolve(filePath)]
	if !ok {
		return nil, &fs.PathError{Op: "read", Path: filePath, Err: fs.ErrNotExist}
	}
	if entry.info.IsDir() {
		return nil, fmt.Errorf("path is a directory, not a file: %s", filePath)
	}
	return entry.content, nil
}

func (mfs *MemoryFileSystem) Stat(statPath string) (FileInfo, error) {
	entry, ok := mfs.entries[mfs.resolve(statPath)]
	if !ok {
		return nil, &fs.PathError{Op: "stat", Path: statPath, Err: fs.ErrNotExist}
	}
	return entry.info, nil
}
