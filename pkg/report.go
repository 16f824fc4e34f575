package filedupes

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// WriteReport writes the line-oriented duplicate report. The format is a
// stable contract for scripting: each group is the digest on its own line,
// each member path indented by two spaces, a blank line after the group,
// and the summary line last.
//
//	<digest>
//	  <path1>
//	  <path2>
//
//	Found <N> duplicate hashes in <T.TT> seconds.
func WriteReport(w io.Writer, result *Result) error {
	for _, group := range result.Groups {
		if _, err := fmt.Fprintf(w, "%s\n", group.Hash); err != nil {
			return err
		}
		for _, file := range group.Files {
			if _, err := fmt.Fprintf(w, "  %s\n", file); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "Found %d duplicate hashes in %.2f seconds.\n",
		len(result.Groups), result.Duration.Seconds())
	return err
}

// jsonReport is the machine-readable report shape
type jsonReport struct {
	Summary jsonSummary      `json:"summary"`
	Groups  []DuplicateGroup `json:"groups"`
}

type jsonSummary struct {
	DuplicateHashes int     `json:"duplicate_hashes"`
	TotalFiles      int64   `json:"total_files_scanned"`
	ReadFailures    int64   `json:"read_failures"`
	DurationSeconds float64 `json:"duration_seconds"`
}

// WriteJSONReport writes the scan result as indented JSON
func WriteJSONReport(w io.Writer, result *Result) error {
	groups := result.Groups
	if groups == nil {
		groups = []DuplicateGroup{}
	}
	report := jsonReport{
		Summary: jsonSummary{
			DuplicateHashes: len(result.Groups),
			TotalFiles:      result.TotalFiles,
			ReadFailures:    result.ReadFailures,
			DurationSeconds: result.Duration.Seconds(),
		},
		Groups: groups,
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(report)
}

// FormatSupportedAlgorithms returns the supported algorithm names as a
// comma-separated list wrapped to roughly 70 columns, for usage messages
func FormatSupportedAlgorithms() string {
	return wrapText(strings.Join(SupportedAlgorithms(), ", "), 70)
}

// wrapText greedily wraps space-separated words to the given width
func wrapText(text string, width int) string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return ""
	}

	var b strings.Builder
	lineLen := 0
	for i, word := range words {
		if i == 0 {
			b.WriteString(word)
			lineLen = len(word)
			continue
		}
		if lineLen+1+len(word) > width {
			b.WriteString("\n")
			b.WriteString(word)
			lineLen = len(word)
		} else {
			b.WriteString(" ")
			b.WriteString(word)
			lineLen += 1 + len(word)
		}
	}
	return b.String()
}
