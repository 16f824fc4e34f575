package filedupes

// Default configuration values
const (
	// DefaultAlgorithm is the hash algorithm used when none is configured
	DefaultAlgorithm = "sha256"

	// DefaultHashWorkers is the number of concurrent hash workers.
	// 1 means files are hashed sequentially in traversal order.
	DefaultHashWorkers = 1

	// HashBufferSize is the chunk size for streaming file hashing (64 KiB)
	HashBufferSize = 64 * 1024
)

// defaultExcludes are the directory base names pruned from traversal when
// no exclusion set is configured. These are the usual version-control and
// tooling directories.
var defaultExcludes = []string{
	"RCS",
	"CVS",
	"tags",
	".git",
	".venv",
	".hg",
	".bzr",
	"_darcs",
	"__pycache__",
}

// DefaultExcludes returns a copy of the default exclusion set
func DefaultExcludes() []string {
	excludes := make([]string, len(defaultExcludes))
	copy(excludes, defaultExcludes)
	return excludes
}
