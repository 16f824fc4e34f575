package filedupes

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"golang.org/x/sys/unix"
)

// devIno identifies a file by device and inode so the same file reached
// twice (overlapping symlinks, bind mounts) is only hashed once
type devIno struct {
	dev uint64
	ino uint64
}

// Walker enumerates regular files under a root directory, pruning excluded
// directory names at any depth. Traversal is top-down and lexicographic
// within each directory, so a walk over an unchanged tree always yields
// the same order.
type Walker struct {
	root     string
	excludes map[string]struct{}
	patterns *PatternSet
	visited  map[devIno]struct{}
}

// NewWalker validates that root exists and is a directory and builds a
// Walker over it. The root is resolved to an absolute path so yielded file
// paths are absolute. excludes are directory base names (exact,
// case-sensitive match); patterns may be nil.
func NewWalker(root string, excludes []string, patterns *PatternSet) (*Walker, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidDirectory, root)
	}
	absRoot = filepath.Clean(absRoot)

	info, err := os.Stat(absRoot)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidDirectory, root)
	}

	excludeMap := make(map[string]struct{}, len(excludes))
	for _, name := range excludes {
		excludeMap[name] = struct{}{}
	}

	return &Walker{
		root:     absRoot,
		excludes: excludeMap,
		patterns: patterns,
		visited:  make(map[devIno]struct{}),
	}, nil
}

// Root returns the absolute scan root
func (w *Walker) Root() string {
	return w.root
}

// Walk streams absolute file paths over resultChan, closing it when the
// traversal ends. A closed shutdownChan stops the walk promptly and returns
// ErrInterrupted. Directory symlinks are never followed; symlinks to
// regular files are yielded so their target content gets hashed.
func (w *Walker) Walk(resultChan chan<- string, shutdownChan <-chan struct{}) error {
	defer close(resultChan)
	return w.walkDir(w.root, resultChan, shutdownChan)
}

func (w *Walker) walkDir(dir string, resultChan chan<- string, shutdownChan <-chan struct{}) error {
	select {
	case <-shutdownChan:
		if IsDebugEnabled("scan") {
			fmt.Fprintf(os.Stderr, "[SCAN] Filesystem walk interrupted by shutdown\n")
		}
		return ErrInterrupted
	default:
	}

	// os.ReadDir returns entries sorted by name, which keeps the
	// traversal deterministic
	entries, err := os.ReadDir(dir)
	if err != nil {
		// Unreadable directory: skip the subtree, keep scanning.
		VerboseLog(2, "skipping unreadable directory %s: %v", dir, err)
		return nil
	}

	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())

		if entry.IsDir() {
			if _, excluded := w.excludes[entry.Name()]; excluded {
				if IsDebugEnabled("scan") {
					fmt.Fprintf(os.Stderr, "[SCAN] Pruned excluded directory: %s\n", path)
				}
				continue
			}
			if w.matchesPattern(path) {
				continue
			}
			if err := w.walkDir(path, resultChan, shutdownChan); err != nil {
				return err
			}
			continue
		}

		yield, ok := w.resolveEntry(path, entry)
		if !ok {
			continue
		}
		if w.matchesPattern(yield) {
			continue
		}

		if IsDebugEnabled("scan") {
			fmt.Fprintf(os.Stderr, "[SCAN] Found file: %s\n", yield)
		}

		select {
		case resultChan <- yield:
		case <-shutdownChan:
			return ErrInterrupted
		}
	}

	return nil
}

// resolveEntry decides whether a non-directory entry should be yielded.
// Regular files and symlinks to regular files are yielded once per
// (device, inode); directory symlinks, broken symlinks, and special files
// (fifos, sockets, devices) are skipped.
func (w *Walker) resolveEntry(path string, entry fs.DirEntry) (string, bool) {
	entryType := entry.Type()

	if entryType&fs.ModeSymlink != 0 {
		targetInfo, err := os.Stat(path)
		if err != nil {
			// Broken symlink
			VerboseLog(2, "skipping broken symlink %s: %v", path, err)
			return "", false
		}
		if targetInfo.IsDir() {
			// Never follow directory symlinks (avoids cycles)
			if IsDebugEnabled("scan") {
				fmt.Fprintf(os.Stderr, "[SCAN] Skipped directory symlink: %s\n", path)
			}
			return "", false
		}
		if !targetInfo.Mode().IsRegular() {
			return "", false
		}
	} else if !entryType.IsRegular() {
		return "", false
	}

	return path, w.markVisited(path)
}

// markVisited records the (device, inode) pair behind path and reports
// whether it was seen for the first time. A failed stat does not suppress
// the file: the hasher will surface the real read error.
func (w *Walker) markVisited(path string) bool {
	var stat unix.Stat_t
	if err := unix.Stat(path, &stat); err != nil {
		return true
	}
	id := devIno{dev: uint64(stat.Dev), ino: uint64(stat.Ino)}
	if _, seen := w.visited[id]; seen {
		if IsDebugEnabled("scan") {
			fmt.Fprintf(os.Stderr, "[SCAN] Skipped already-visited file: %s\n", path)
		}
		return false
	}
	w.visited[id] = struct{}{}
	return true
}

func (w *Walker) matchesPattern(path string) bool {
	if w.patterns.Empty() {
		return false
	}
	relPath, err := filepath.Rel(w.root, path)
	if err != nil {
		return false
	}
	return w.patterns.Match(relPath)
}
