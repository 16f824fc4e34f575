package filedupes

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"sync"
	"sync/atomic"
	"time"
)

// ScanState tracks where a Finder is in its lifecycle
type ScanState int32

const (
	StateIdle      ScanState = iota // No scan started
	StateScanning                   // Walker active, hasher invoked per file
	StateFiltering                  // Post-pass over the completed index
	StateDone                       // Result produced
)

func (s ScanState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateScanning:
		return "scanning"
	case StateFiltering:
		return "filtering"
	case StateDone:
		return "done"
	default:
		return "unknown"
	}
}

// Options configures a Finder. Zero values fall back to the package
// defaults, so Options{} is a valid sequential sha256 scan.
type Options struct {
	// Algorithm is the hash algorithm name (default: DefaultAlgorithm).
	// Validated once at construction.
	Algorithm string

	// Excludes are directory base names pruned from traversal at any
	// depth (default: DefaultExcludes). An explicit empty, non-nil slice
	// disables exclusion.
	Excludes []string

	// ExcludePatterns are regex patterns matched against root-relative
	// paths; matches are skipped.
	ExcludePatterns []string

	// Workers is the number of concurrent hash workers. Values <= 1 hash
	// files sequentially in traversal order. Either way the result is
	// identical for an unchanged tree.
	Workers int

	// OnReadError is invoked for each file that could not be read. The
	// default prints the path and OS reason to stderr. The scan always
	// continues past read errors.
	OnReadError func(*ReadError)

	// OnFileHashed is invoked after each successfully hashed file, e.g.
	// to drive a progress indicator. May be nil.
	OnFileHashed func(path string)
}

// DuplicateGroup represents a group of files with the same digest.
// Files are in discovery order.
type DuplicateGroup struct {
	Hash  string   `json:"hash"`
	Files []string `json:"files"`
	Count int      `json:"count"`
}

// Result is the outcome of a completed scan
type Result struct {
	Groups       []DuplicateGroup // Groups with >= 2 paths, discovery order
	TotalFiles   int64            // Files visited (including read failures)
	ReadFailures int64            // Files skipped due to read errors
	Duration     time.Duration    // Wall time of the scan
}

// Finder drives the Walker and Hasher and accumulates the digest index.
// Configuration is injected at construction; a Finder performs one scan
// at a time.
type Finder struct {
	hasher       *Hasher
	excludes     []string
	patterns     *PatternSet
	workers      int
	onReadError  func(*ReadError)
	onFileHashed func(string)
	state        atomic.Int32
}

// NewFinder validates the options (algorithm name, exclude patterns) and
// returns a Finder. Validation failures happen here, before any
// filesystem traversal.
func NewFinder(opts Options) (*Finder, error) {
	algorithm := opts.Algorithm
	if algorithm == "" {
		algorithm = DefaultAlgorithm
	}
	hasher, err := NewHasher(algorithm)
	if err != nil {
		return nil, err
	}

	patterns, err := NewPatternSet(opts.ExcludePatterns)
	if err != nil {
		return nil, err
	}

	excludes := opts.Excludes
	if excludes == nil {
		excludes = DefaultExcludes()
	}

	workers := opts.Workers
	if workers < 1 {
		workers = DefaultHashWorkers
	}

	onReadError := opts.OnReadError
	if onReadError == nil {
		onReadError = func(readErr *ReadError) {
			fmt.Fprintf(os.Stderr, "Error reading file: %s (%s)\n", readErr.Path, readErr.Reason())
		}
	}

	return &Finder{
		hasher:       hasher,
		excludes:     excludes,
		patterns:     patterns,
		workers:      workers,
		onReadError:  onReadError,
		onFileHashed: opts.OnFileHashed,
	}, nil
}

// State returns the current scan state
func (f *Finder) State() ScanState {
	return ScanState(f.state.Load())
}

func (f *Finder) setState(s ScanState) {
	f.state.Store(int32(s))
}

// Find scans root and returns the duplicate groups. A nil shutdownChan
// means the scan cannot be interrupted; a closed one stops traversal
// promptly and Find returns ErrInterrupted with no partial result.
func (f *Finder) Find(root string, shutdownChan <-chan struct{}) (*Result, error) {
	walker, err := NewWalker(root, f.excludes, f.patterns)
	if err != nil {
		return nil, err
	}
	if shutdownChan == nil {
		shutdownChan = make(chan struct{})
	}

	start := time.Now()
	f.setState(StateScanning)

	index := newHashIndex()

	pathChan := make(chan string, 64)
	walkErrChan := make(chan error, 1)
	go func() {
		walkErrChan <- walker.Walk(pathChan, shutdownChan)
	}()

	var totalFiles, readFailures int64
	if f.workers <= 1 {
		totalFiles, readFailures = f.hashSequential(pathChan, index)
	} else {
		totalFiles, readFailures = f.hashConcurrent(pathChan, index)
	}

	if err := <-walkErrChan; err != nil {
		f.setState(StateIdle)
		return nil, err
	}
	// The walker may have finished normally just before the shutdown
	// request; still discard the partial result.
	select {
	case <-shutdownChan:
		f.setState(StateIdle)
		return nil, ErrInterrupted
	default:
	}

	f.setState(StateFiltering)
	result := &Result{
		Groups:       index.filter(),
		TotalFiles:   totalFiles,
		ReadFailures: readFailures,
		Duration:     time.Since(start),
	}
	f.setState(StateDone)
	return result, nil
}

// hashSequential is the baseline single-threaded path: one file at a time,
// in traversal order
func (f *Finder) hashSequential(pathChan <-chan string, index *hashIndex) (totalFiles, readFailures int64) {
	for path := range pathChan {
		totalFiles++
		digest, err := f.hasher.HashFile(path)
		if err != nil {
			readFailures++
			f.reportReadError(err)
			continue
		}
		index.add(digest, path)
		if f.onFileHashed != nil {
			f.onFileHashed(path)
		}
	}
	return totalFiles, readFailures
}

type hashJob struct {
	seq  int
	path string
}

type hashResult struct {
	seq    int
	path   string
	digest string
	err    error
}

// hashConcurrent fans paths out to a worker pool over a bounded queue.
// Results carry the walk sequence number and are folded into the index in
// discovery order after the pool drains, so the grouping and per-group
// path order match the sequential run exactly.
func (f *Finder) hashConcurrent(pathChan <-chan string, index *hashIndex) (totalFiles, readFailures int64) {
	jobs := make(chan hashJob, f.workers*2)
	results := make(chan hashResult, f.workers*2)

	var wg sync.WaitGroup
	for i := 0; i < f.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range jobs {
				digest, err := f.hasher.HashFile(job.path)
				results <- hashResult{seq: job.seq, path: job.path, digest: digest, err: err}
			}
		}()
	}

	go func() {
		seq := 0
		for path := range pathChan {
			jobs <- hashJob{seq: seq, path: path}
			seq++
		}
		close(jobs)
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	// Single collector: index mutation never happens concurrently.
	var collected []hashResult
	for res := range results {
		totalFiles++
		if res.err != nil {
			readFailures++
			f.reportReadError(res.err)
			continue
		}
		if f.onFileHashed != nil {
			f.onFileHashed(res.path)
		}
		collected = append(collected, res)
	}

	sort.Slice(collected, func(i, j int) bool {
		return collected[i].seq < collected[j].seq
	})
	for _, res := range collected {
		index.add(res.digest, res.path)
	}
	return totalFiles, readFailures
}

func (f *Finder) reportReadError(err error) {
	var readErr *ReadError
	if errors.As(err, &readErr) {
		f.onReadError(readErr)
		return
	}
	f.onReadError(&ReadError{Err: err})
}

// hashIndex maps digest -> paths in discovery order. Built incrementally
// during the scan, filtered once at the end, never mutated afterwards.
type hashIndex struct {
	order []string
	paths map[string][]string
}

func newHashIndex() *hashIndex {
	return &hashIndex{
		paths: make(map[string][]string),
	}
}

func (ix *hashIndex) add(digest, path string) {
	if _, exists := ix.paths[digest]; !exists {
		ix.order = append(ix.order, digest)
	}
	ix.paths[digest] = append(ix.paths[digest], path)
}

// filter returns the entries with more than one path, preserving both the
// first-seen digest order and the per-digest path insertion order
func (ix *hashIndex) filter() []DuplicateGroup {
	groups := make([]DuplicateGroup, 0)
	for _, digest := range ix.order {
		files := ix.paths[digest]
		if len(files) > 1 {
			groups = append(groups, DuplicateGroup{
				Hash:  digest,
				Files: files,
				Count: len(files),
			})
		}
	}
	return groups
}
