package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	filedupes "github.com/mattkeenan/filedupes/pkg"
)

var (
	flagAlgorithm string
	flagExcludes  []string
	flagPatterns  []string
	flagWorkers   int
	flagJSON      bool
	flagProgress  bool
	flagVerbose   int
	flagDebug     string
	flagConfig    string
)

var rootCmd = &cobra.Command{
	Use:   "filedupes [flags] directory",
	Short: "Find duplicate files by comparing checksums",
	Long: `filedupes recursively scans a directory tree, hashes every file, and
reports groups of files whose content is identical. Directories named in
the exclusion set are pruned at any depth. No files are modified; the
tool only reports.`,
	Args:          cobra.ExactArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

func init() {
	flags := rootCmd.Flags()
	flags.StringVarP(&flagAlgorithm, "algorithm", "a", filedupes.DefaultAlgorithm,
		"hash algorithm")
	flags.StringSliceVarP(&flagExcludes, "exclude", "e", filedupes.DefaultExcludes(),
		"directory names to prune")
	flags.StringArrayVar(&flagPatterns, "exclude-pattern", nil,
		"regex for root-relative paths to skip (repeatable)")
	flags.IntVarP(&flagWorkers, "workers", "w", filedupes.DefaultHashWorkers,
		"number of concurrent hash workers")
	flags.BoolVar(&flagJSON, "json", false, "write the report as JSON")
	flags.BoolVar(&flagProgress, "progress", false, "show hashing progress on stderr")
	flags.IntVarP(&flagVerbose, "verbose", "v", 0, "verbose level (0-3)")
	flags.StringVar(&flagDebug, "debug", "", "comma-separated debug flags (e.g. scan)")
	flags.StringVar(&flagConfig, "config", "", "config file path")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		if errors.Is(err, filedupes.ErrInterrupted) {
			fmt.Fprintln(os.Stderr, "Aborted.")
			os.Exit(130)
		}
		fmt.Fprintf(os.Stderr, "filedupes: %v\n", err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := filedupes.LoadConfig(flagConfig)
	if err != nil {
		return err
	}
	mergeFlags(cmd, cfg)

	filedupes.SetVerboseLevel(cfg.VerboseLevel)
	filedupes.SetDebugFlags(cfg.DebugFlags)

	opts := filedupes.Options{
		Algorithm:       cfg.Algorithm,
		Excludes:        cfg.Excludes,
		ExcludePatterns: cfg.ExcludePatterns,
		Workers:         cfg.HashWorkers,
	}

	var bar *progressbar.ProgressBar
	if flagProgress && cfg.OutputFormat != "json" {
		bar = progressbar.NewOptions(-1,
			progressbar.OptionSetDescription("Hashing files..."),
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionShowCount(),
			progressbar.OptionSpinnerType(14),
		)
		opts.OnFileHashed = func(string) {
			_ = bar.Add(1)
		}
	}

	// Algorithm and pattern validation happens here, before any traversal.
	finder, err := filedupes.NewFinder(opts)
	if err != nil {
		var unsupported *filedupes.UnsupportedAlgorithmError
		if errors.As(err, &unsupported) {
			return fmt.Errorf("invalid algorithm: %s. List of supported algorithms:\n\n%s",
				unsupported.Name, filedupes.FormatSupportedAlgorithms())
		}
		return err
	}

	shutdownChan := setupSignalHandler()

	if cfg.OutputFormat != "json" {
		fmt.Println("Searching for duplicates. This may take a while...")
	}

	result, err := finder.Find(args[0], shutdownChan)
	if err != nil {
		// ErrInterrupted gets its exit code in main
		return err
	}

	if bar != nil {
		_ = bar.Finish()
		fmt.Fprintln(os.Stderr)
	}

	if cfg.OutputFormat == "json" {
		return filedupes.WriteJSONReport(os.Stdout, result)
	}
	fmt.Println()
	return filedupes.WriteReport(os.Stdout, result)
}

// mergeFlags applies explicitly-set flags over the loaded config
func mergeFlags(cmd *cobra.Command, cfg *filedupes.Config) {
	flags := cmd.Flags()
	if flags.Changed("algorithm") {
		cfg.Algorithm = flagAlgorithm
	}
	if flags.Changed("exclude") {
		cfg.Excludes = flagExcludes
	}
	if flags.Changed("exclude-pattern") {
		cfg.ExcludePatterns = flagPatterns
	}
	if flags.Changed("workers") {
		cfg.HashWorkers = flagWorkers
	}
	if flags.Changed("verbose") {
		cfg.VerboseLevel = flagVerbose
	}
	if flags.Changed("debug") {
		cfg.DebugFlags = flagDebug
	}
	if flagJSON {
		cfg.OutputFormat = "json"
	}
}
