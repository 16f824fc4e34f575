package filedupes

import (
	"encoding/hex"
	"hash"
	"io"
	"os"
	"sync"
)

// hashBufPool reuses read buffers across files so concurrent workers don't
// allocate a fresh chunk buffer per file
var hashBufPool = sync.Pool{
	New: func() any {
		b := make([]byte, HashBufferSize)
		return &b
	},
}

// Hasher computes file digests with a fixed algorithm. The algorithm is
// validated once at construction; a Hasher is safe for concurrent use.
type Hasher struct {
	algorithm string
	newHash   func() hash.Hash
}

// NewHasher validates the algorithm name against the supported set and
// returns a Hasher for it. Unknown names fail with UnsupportedAlgorithmError.
func NewHasher(algorithm string) (*Hasher, error) {
	constructor, ok := newDigest(algorithm)
	if !ok {
		return nil, &UnsupportedAlgorithmError{Name: algorithm}
	}
	return &Hasher{
		algorithm: algorithm,
		newHash:   constructor,
	}, nil
}

// Algorithm returns the algorithm name this Hasher was built with
func (h *Hasher) Algorithm() string {
	return h.algorithm
}

// HashFile reads the file in HashBufferSize chunks, folds them through the
// digest, and returns the lowercase hex digest string. The whole file is
// never held in memory. Open or read failures come back as *ReadError
// wrapping the OS-level cause.
func (h *Hasher) HashFile(path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", &ReadError{Path: path, Err: err}
	}
	defer file.Close()

	digest := h.newHash()

	bufPtr := hashBufPool.Get().(*[]byte)
	defer hashBufPool.Put(bufPtr)

	if _, err := io.CopyBuffer(digest, file, *bufPtr); err != nil {
		return "", &ReadError{Path: path, Err: err}
	}

	return hex.EncodeToString(digest.Sum(nil)), nil
}
