package filedupes

import (
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"hash"
	"sort"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// algorithms maps algorithm names to digest constructors. The set is fixed
// at build time; lookups happen once at startup, never per file.
//
// xxh64 is non-cryptographic but fast, useful for large trees where
// adversarial collisions are not a concern.
var algorithms = map[string]func() hash.Hash{
	"md5":        md5.New,
	"sha1":       sha1.New,
	"sha224":     sha256.New224,
	"sha256":     sha256.New,
	"sha384":     sha512.New384,
	"sha512":     sha512.New,
	"sha512-224": sha512.New512_224,
	"sha512-256": sha512.New512_256,
	"xxh64":      func() hash.Hash { return xxhash.New() },
}

// newDigest returns the constructor for the named algorithm
// (case-insensitive), or false if the name is not supported
func newDigest(name string) (func() hash.Hash, bool) {
	constructor, ok := algorithms[strings.ToLower(name)]
	return constructor, ok
}

// IsSupportedAlgorithm reports whether the named algorithm is available
func IsSupportedAlgorithm(name string) bool {
	_, ok := newDigest(name)
	return ok
}

// SupportedAlgorithms returns the sorted list of supported algorithm names
func SupportedAlgorithms() []string {
	names := make([]string, 0, len(algorithms))
	for name := range algorithms {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
