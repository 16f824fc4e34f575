package filedupes

import (
	"errors"
	"fmt"
	"io/fs"
)

// Sentinel errors for startup validation and cancellation
var (
	// ErrInvalidDirectory indicates the scan root does not exist or is not
	// a directory. Reported before any traversal happens.
	ErrInvalidDirectory = errors.New("invalid directory")

	// ErrInterrupted indicates the scan was stopped by a shutdown request.
	// Partial results are discarded.
	ErrInterrupted = errors.New("scan interrupted by shutdown")
)

// UnsupportedAlgorithmError indicates the requested hash algorithm is not
// in the supported set. Checked once at startup, never per file.
type UnsupportedAlgorithmError struct {
	Name string
}

func (e *UnsupportedAlgorithmError) Error() string {
	return fmt.Sprintf("unsupported hash algorithm: %s", e.Name)
}

// ReadError indicates a single file could not be opened or read. The scan
// recovers from it locally; the file is excluded from all hash groups.
type ReadError struct {
	Path string
	Err  error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("error reading file: %s (%s)", e.Path, e.Reason())
}

func (e *ReadError) Unwrap() error {
	return e.Err
}

// Reason returns the OS-level reason without the path prefix that
// fs.PathError repeats
func (e *ReadError) Reason() string {
	var pathErr *fs.PathError
	if errors.As(e.Err, &pathErr) {
		return pathErr.Err.Error()
	}
	return e.Err.Error()
}
