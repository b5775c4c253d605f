package lint

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/gnolang/pycheck/scanner"
)

// DefaultConfigFile is the configuration file looked up when none is given.
const DefaultConfigFile = ".pycheck.yaml"

// Config controls which files are analyzed. Rules are always all enabled.
type Config struct {
	Name        string   `yaml:"name"`
	Extensions  []string `yaml:"extensions"`
	IgnorePaths []string `yaml:"ignore-paths,omitempty"`
	Recursive   bool     `yaml:"recursive"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() Config {
	return Config{
		Name:       "pycheck",
		Extensions: []string{".py"},
	}
}

// LoadConfig reads a YAML configuration file. Fields absent from the file
// keep their default values.
func LoadConfig(configurationPath string) (Config, error) {
	config := DefaultConfig()

	f, err := os.Open(configurationPath)
	if err != nil {
		return config, err
	}
	defer f.Close()

	decoder := yaml.NewDecoder(f)
	decoder.KnownFields(true)
	// an empty file is a valid configuration
	if err := decoder.Decode(&config); err != nil && !errors.Is(err, io.EOF) {
		return config, fmt.Errorf("error parsing %s: %w", configurationPath, err)
	}

	if len(config.Extensions) == 0 {
		config.Extensions = DefaultConfig().Extensions
	}
	return config, nil
}

// WriteConfig writes config as YAML to path, replacing any existing file.
func WriteConfig(path string, config Config) error {
	d, err := yaml.Marshal(config)
	if err != nil {
		return err
	}
	return os.WriteFile(path, d, 0o644)
}

// NewScanner builds the file scanner described by the configuration.
func (c Config) NewScanner() *scanner.Scanner {
	return scanner.New(c.Extensions,
		scanner.WithRecursive(c.Recursive),
		scanner.WithIgnore(c.IgnorePaths...),
	)
}
