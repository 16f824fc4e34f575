package filedupes

import (
	"sort"
	"testing"
)

func TestSupportedAlgorithms(t *testing.T) {
	names := SupportedAlgorithms()

	if len(names) == 0 {
		t.Fatal("Expected at least one supported algorithm")
	}

	if !sort.StringsAreSorted(names) {
		t.Errorf("Expected sorted algorithm names, got %v", names)
	}

	expected := []string{"md5", "sha1", "sha256", "sha512", "xxh64"}
	for _, name := range expected {
		found := false
		for _, got := range names {
			if got == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("Expected %s in supported algorithms, got %v", name, names)
		}
	}
}

func TestIsSupportedAlgorithm(t *testing.T) {
	tests := []struct {
		name      string
		supported bool
	}{
		{"sha256", true},
		{"SHA256", true}, // case-insensitive
		{"Sha512-256", true},
		{"xxh64", true},
		{"rot13", false},
		{"", false},
		{"sha", false},
	}

	for _, tt := range tests {
		if got := IsSupportedAlgorithm(tt.name); got != tt.supported {
			t.Errorf("IsSupportedAlgorithm(%q) = %v, expected %v", tt.name, got, tt.supported)
		}
	}
}

func TestNewDigest_FreshInstances(t *testing.T) {
	constructor, ok := newDigest("sha256")
	if !ok {
		t.Fatal("Expected sha256 to be supported")
	}

	first := constructor()
	first.Write([]byte("some data"))
	second := constructor()

	// A new digest must start empty regardless of earlier use
	if string(first.Sum(nil)) == string(second.Sum(nil)) {
		t.Error("Expected independent digest instances from constructor")
	}
}
