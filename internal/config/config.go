// Package config holds the settings shared by the repolint commands.
//
// Every setting has a built-in default that reproduces the behavior CI
// expects with no configuration at all. A project may override them with a
// YAML file at the repository root (.repolint.yaml) or a file passed with
// --config.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

const (
	// ProjectConfigFile is the project-level config file name, looked up
	// in the repository root.
	ProjectConfigFile = ".repolint.yaml"

	// DefaultWordList is the cspell configuration at the repository root.
	DefaultWordList = "cspell.json"

	// DefaultLocale is the collation locale used by the order checker.
	DefaultLocale = "en"
)

// DefaultIgnoredExtensions lists extensions of tracked files that are not
// text and are skipped by the whitespace checker.
var DefaultIgnoredExtensions = []string{".ico", ".png", ".desc"}

// Config is the merged configuration.
type Config struct {
	// IgnoredExtensions are file suffixes (including the dot) the
	// whitespace checker never reads.
	IgnoredExtensions []string `yaml:"ignoredExtensions"`

	// WordLists are configuration documents, relative to the repository
	// root, whose `words` field is checked and formatted.
	WordLists []string `yaml:"wordLists"`

	// Locale is a BCP 47 tag selecting the collation order for the
	// order checker.
	Locale string `yaml:"locale"`

	// Concurrency bounds the number of files read at once. Zero means
	// runtime.NumCPU().
	Concurrency int `yaml:"concurrency"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		IgnoredExtensions: append([]string(nil), DefaultIgnoredExtensions...),
		WordLists:         []string{DefaultWordList},
		Locale:            DefaultLocale,
		Concurrency:       runtime.NumCPU(),
	}
}

// Loader loads configuration from defaults and an optional YAML file.
type Loader struct {
	projectRoot string
	path        string
}

// NewLoader creates a new config loader.
func NewLoader() *Loader {
	return &Loader{}
}

// WithProjectRoot sets the directory searched for ProjectConfigFile.
func (l *Loader) WithProjectRoot(root string) *Loader {
	l.projectRoot = root
	return l
}

// WithPath sets an explicit config file. Unlike the project file, an
// explicit file must exist.
func (l *Loader) WithPath(path string) *Loader {
	l.path = path
	return l
}

// Load returns the defaults merged with the explicit file if one was set,
// otherwise with the project file if it exists.
func (l *Loader) Load() (*Config, error) {
	cfg := Default()

	path := l.path
	explicit := path != ""
	if !explicit {
		if l.projectRoot == "" {
			return cfg, nil
		}
		path = filepath.Join(l.projectRoot, ProjectConfigFile)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	fileCfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	mergeConfig(cfg, fileCfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes a YAML config document. Unknown keys are rejected so a
// misspelt setting does not silently fall back to its default.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if len(bytes.TrimSpace(data)) == 0 {
		return &cfg, nil
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// mergeConfig overlays the non-zero fields of src onto dst. A list set in
// the file replaces the default list rather than extending it.
func mergeConfig(dst, src *Config) {
	if src.IgnoredExtensions != nil {
		dst.IgnoredExtensions = src.IgnoredExtensions
	}
	if len(src.WordLists) > 0 {
		dst.WordLists = src.WordLists
	}
	if src.Locale != "" {
		dst.Locale = src.Locale
	}
	if src.Concurrency != 0 {
		dst.Concurrency = src.Concurrency
	}
}

// Validate checks the merged configuration.
func (c *Config) Validate() error {
	for _, ext := range c.IgnoredExtensions {
		if !strings.HasPrefix(ext, ".") {
			return fmt.Errorf("ignoredExtensions: %q must start with a dot", ext)
		}
	}
	for _, wl := range c.WordLists {
		if strings.TrimSpace(wl) == "" {
			return fmt.Errorf("wordLists: empty path")
		}
	}
	if _, err := language.Parse(c.Locale); err != nil {
		return fmt.Errorf("locale: %w", err)
	}
	if c.Concurrency < 0 {
		return fmt.Errorf("concurrency: must not be negative, got %d", c.Concurrency)
	}
	return nil
}

// LanguageTag returns the parsed collation locale, falling back to
// DefaultLocale when the configured value does not parse.
func (c *Config) LanguageTag() language.Tag {
	tag, err := language.Parse(c.Locale)
	if err != nil {
		return language.MustParse(DefaultLocale)
	}
	return tag
}

// ResolveWordLists returns the configured word lists as paths joined to
// root. Absolute entries are kept as they are.
func (c *Config) ResolveWordLists(root string) []string {
	paths := make([]string, 0, len(c.WordLists))
	for _, wl := range c.WordLists {
		paths = append(paths, ResolvePath(root, wl))
	}
	return paths
}

// ResolvePath joins a slash-separated, root-relative path onto root.
func ResolvePath(root, path string) string {
	native := filepath.FromSlash(path)
	if filepath.IsAbs(native) || root == "" {
		return native
	}
	return filepath.Join(root, native)
}
