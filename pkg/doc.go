// Package filedupes provides directory scanning, streaming file hashing,
// and duplicate detection by content digest.
//
// # Core API
//
// The main entry point is Finder, which scans a directory tree and groups
// files by hash:
//
//	finder, err := filedupes.NewFinder(filedupes.Options{Algorithm: "sha256"})
//	if err != nil {
//		log.Fatal(err)
//	}
//	result, err := finder.Find("/path/to/dir", nil)
//	if err != nil {
//		log.Fatal(err)
//	}
//	for _, group := range result.Groups {
//		fmt.Printf("Hash %s: %v\n", group.Hash, group.Files)
//	}
//
// Files are read in fixed-size chunks, so arbitrarily large files are
// supported without loading them into memory. A file that cannot be read is
// reported through Options.OnReadError and skipped; it never aborts the
// scan. No action is ever taken on duplicates; the package only reports
// groups.
//
// # Output
//
// WriteReport produces the line-oriented text report (one digest per group,
// member paths indented, summary line last). WriteJSONReport produces the
// same data as indented JSON.
//
// # Configuration
//
// Defaults (hash algorithm, excluded directory names, worker count) can be
// loaded from an ini-style config file:
//
//	cfg, err := filedupes.LoadConfig("")
//
// Enable debug output:
//
//	filedupes.SetDebugFlags("scan")
//	filedupes.SetVerboseLevel(2)
package filedupes
