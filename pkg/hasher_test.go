package filedupes

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/cespare/xxhash/v2"
)

// sha256 digest of the string "hi"
const sha256Hi = "8f434346648f6b96df89dda901c5176b10a6d83961dd3c1ac88b59b2dc327aa4"

func writeTestFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("Failed to create directory for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write %s: %v", path, err)
	}
	return path
}

func TestNewHasher_UnsupportedAlgorithm(t *testing.T) {
	_, err := NewHasher("rot13")
	if err == nil {
		t.Fatal("Expected error for unsupported algorithm")
	}

	var unsupported *UnsupportedAlgorithmError
	if !errors.As(err, &unsupported) {
		t.Fatalf("Expected UnsupportedAlgorithmError, got %T: %v", err, err)
	}
	if unsupported.Name != "rot13" {
		t.Errorf("Expected algorithm name 'rot13', got %q", unsupported.Name)
	}
}

func TestHasher_KnownDigest(t *testing.T) {
	tempDir := t.TempDir()
	path := writeTestFile(t, tempDir, "hi.txt", "hi")

	hasher, err := NewHasher("sha256")
	if err != nil {
		t.Fatalf("NewHasher failed: %v", err)
	}

	digest, err := hasher.HashFile(path)
	if err != nil {
		t.Fatalf("HashFile failed: %v", err)
	}
	if digest != sha256Hi {
		t.Errorf("Expected digest %s, got %s", sha256Hi, digest)
	}
}

func TestHasher_LowercaseHexLength(t *testing.T) {
	tempDir := t.TempDir()
	path := writeTestFile(t, tempDir, "data.bin", "FILEDUPES")

	lengths := map[string]int{
		"md5":    32,
		"sha1":   40,
		"sha256": 64,
		"sha512": 128,
		"xxh64":  16,
	}
	hexPattern := regexp.MustCompile(`^[0-9a-f]+$`)

	for algorithm, length := range lengths {
		t.Run(algorithm, func(t *testing.T) {
			hasher, err := NewHasher(algorithm)
			if err != nil {
				t.Fatalf("NewHasher(%s) failed: %v", algorithm, err)
			}
			digest, err := hasher.HashFile(path)
			if err != nil {
				t.Fatalf("HashFile failed: %v", err)
			}
			if len(digest) != length {
				t.Errorf("Expected %d hex chars for %s, got %d", length, algorithm, len(digest))
			}
			if !hexPattern.MatchString(digest) {
				t.Errorf("Expected lowercase hex digest, got %q", digest)
			}
		})
	}
}

func TestHasher_StreamingMatchesOneShot(t *testing.T) {
	// Content larger than the chunk buffer so multiple reads happen
	data := bytes.Repeat([]byte("0123456789abcdef"), 20*1024) // 320 KiB
	tempDir := t.TempDir()
	path := filepath.Join(tempDir, "large.bin")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("Failed to write large file: %v", err)
	}

	hasher, err := NewHasher("sha256")
	if err != nil {
		t.Fatalf("NewHasher failed: %v", err)
	}
	digest, err := hasher.HashFile(path)
	if err != nil {
		t.Fatalf("HashFile failed: %v", err)
	}

	sum := sha256.Sum256(data)
	if expected := hex.EncodeToString(sum[:]); digest != expected {
		t.Errorf("Streaming digest %s does not match one-shot digest %s", digest, expected)
	}
}

func TestHasher_XXH64MatchesSum64(t *testing.T) {
	content := "duplicate detection test content"
	tempDir := t.TempDir()
	path := writeTestFile(t, tempDir, "x.txt", content)

	hasher, err := NewHasher("xxh64")
	if err != nil {
		t.Fatalf("NewHasher failed: %v", err)
	}
	digest, err := hasher.HashFile(path)
	if err != nil {
		t.Fatalf("HashFile failed: %v", err)
	}

	if expected := fmt.Sprintf("%016x", xxhash.Sum64String(content)); digest != expected {
		t.Errorf("Expected xxh64 digest %s, got %s", expected, digest)
	}
}

func TestHasher_IdenticalAndDifferingContent(t *testing.T) {
	tempDir := t.TempDir()
	first := writeTestFile(t, tempDir, "first.txt", "same content")
	second := writeTestFile(t, tempDir, "second.txt", "same content")
	third := writeTestFile(t, tempDir, "third.txt", "same conten!") // same length, different bytes

	hasher, err := NewHasher("sha256")
	if err != nil {
		t.Fatalf("NewHasher failed: %v", err)
	}

	digestFirst, err := hasher.HashFile(first)
	if err != nil {
		t.Fatalf("HashFile failed: %v", err)
	}
	digestSecond, err := hasher.HashFile(second)
	if err != nil {
		t.Fatalf("HashFile failed: %v", err)
	}
	digestThird, err := hasher.HashFile(third)
	if err != nil {
		t.Fatalf("HashFile failed: %v", err)
	}

	if digestFirst != digestSecond {
		t.Errorf("Identical content produced different digests: %s vs %s", digestFirst, digestSecond)
	}
	if digestFirst == digestThird {
		t.Errorf("Differing content produced identical digest: %s", digestFirst)
	}
}

func TestHasher_MissingFile(t *testing.T) {
	hasher, err := NewHasher("sha256")
	if err != nil {
		t.Fatalf("NewHasher failed: %v", err)
	}

	missing := filepath.Join(t.TempDir(), "does-not-exist.txt")
	_, err = hasher.HashFile(missing)
	if err == nil {
		t.Fatal("Expected error for missing file")
	}

	var readErr *ReadError
	if !errors.As(err, &readErr) {
		t.Fatalf("Expected ReadError, got %T: %v", err, err)
	}
	if readErr.Path != missing {
		t.Errorf("Expected path %s in ReadError, got %s", missing, readErr.Path)
	}
	// The OS-level cause must survive the wrapping
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("Expected wrapped fs.ErrNotExist, got %v", err)
	}
	if readErr.Reason() == "" {
		t.Error("Expected non-empty OS reason")
	}
}
