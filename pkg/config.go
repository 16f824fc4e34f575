package filedupes

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-ini/ini"
)

// Config holds the scan defaults normally supplied by the config file.
// CLI flags override whatever is loaded here.
type Config struct {
	Algorithm       string   // [filehash] default
	Excludes        []string // [exclude] dirs (comma-separated)
	ExcludePatterns []string // [exclude] patterns (comma-separated regexes)
	HashWorkers     int      // [performance] hash_workers
	VerboseLevel    int      // [verbose] level
	DebugFlags      string   // [verbose] debug
	OutputFormat    string   // [output] format: human, json
}

// DefaultConfig returns the built-in defaults
func DefaultConfig() *Config {
	return &Config{
		Algorithm:    DefaultAlgorithm,
		Excludes:     DefaultExcludes(),
		HashWorkers:  DefaultHashWorkers,
		VerboseLevel: 0,
		OutputFormat: "human",
	}
}

// LoadConfig loads configuration from an ini file. An empty path means the
// user-level config (defaultConfigPath); a missing file is not an error and
// yields the defaults. An explicitly named file that cannot be read is an
// error.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	explicit := path != ""
	if !explicit {
		path = defaultConfigPath()
	}
	if path == "" {
		return cfg, nil
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		if explicit {
			return nil, fmt.Errorf("config file not found: %s", path)
		}
		return cfg, nil
	}

	iniFile, err := ini.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
	}

	fileHash := iniFile.Section("filehash")
	if fileHash.HasKey("default") {
		cfg.Algorithm = fileHash.Key("default").String()
	}

	exclude := iniFile.Section("exclude")
	if exclude.HasKey("dirs") {
		cfg.Excludes = splitList(exclude.Key("dirs").String())
	}
	if exclude.HasKey("patterns") {
		cfg.ExcludePatterns = splitList(exclude.Key("patterns").String())
	}

	performance := iniFile.Section("performance")
	if performance.HasKey("hash_workers") {
		workers, err := performance.Key("hash_workers").Int()
		if err != nil || workers < 1 {
			return nil, fmt.Errorf("invalid hash_workers value in %s: %s",
				path, performance.Key("hash_workers").String())
		}
		cfg.HashWorkers = workers
	}

	verbose := iniFile.Section("verbose")
	if verbose.HasKey("level") {
		level, err := verbose.Key("level").Int()
		if err != nil || level < 0 {
			return nil, fmt.Errorf("invalid verbose level in %s: %s",
				path, verbose.Key("level").String())
		}
		cfg.VerboseLevel = level
	}
	if verbose.HasKey("debug") {
		cfg.DebugFlags = verbose.Key("debug").String()
	}

	output := iniFile.Section("output")
	if output.HasKey("format") {
		format := strings.ToLower(output.Key("format").String())
		if format != "human" && format != "json" {
			return nil, fmt.Errorf("invalid output format in %s: %s", path, format)
		}
		cfg.OutputFormat = format
	}

	return cfg, nil
}

// defaultConfigPath returns the user-level config file location,
// $XDG_CONFIG_HOME/filedupes/config or ~/.config/filedupes/config
func defaultConfigPath() string {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configDir = filepath.Join(home, ".config")
	}
	return filepath.Join(configDir, "filedupes", "config")
}

func splitList(value string) []string {
	var items []string
	for _, item := range strings.Split(value, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			items = append(items, item)
		}
	}
	if items == nil {
		return []string{}
	}
	return items
}
