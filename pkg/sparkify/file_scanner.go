package sparkify

// FileScanner discovers the data files of one load phase.
// Implementations must be safe for concurrent use by multiple goroutines.
type FileScanner interface {
	// ScanDirectory recursively scans root and returns the data files in
	// lexical path order, the order in which they are loaded.
	ScanDirectory(root string) (FileScanResult, error)
}
