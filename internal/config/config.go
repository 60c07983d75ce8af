package config

import (
	"errors"
	"fmt"
	"net/url"
	"path/filepath"
	"runtime"

	"github.com/adrg/xdg"
)

const (
	// AppName is the application name used for XDG directory paths.
	AppName = "richdoc"

	// DefaultImportURL is the import service address.
	DefaultImportURL = "http://127.0.0.1:8000"
)

// DefaultConcurrency is the number of files exported in parallel.
var DefaultConcurrency = runtime.NumCPU()

// Config holds the command-line settings.
type Config struct {
	// DefaultTitle is used when no --title flag is given.
	DefaultTitle string `yaml:"default_title"`

	// DefaultAuthor is used when no --author flag is given.
	DefaultAuthor string `yaml:"default_author"`

	// ImportURL is the base URL of the remote import service. Empty means
	// DOCX files are imported in-process.
	ImportURL string `yaml:"import_url"`

	// Concurrency bounds how many files a batch export processes at once.
	Concurrency int `yaml:"concurrency"`

	// OutputDir receives exported files. Empty means next to each input.
	OutputDir string `yaml:"output_dir"`
}

// NewConfig returns a Config with default values.
func NewConfig() *Config {
	return &Config{
		Concurrency: DefaultConcurrency,
	}
}

// Validate checks the configuration and returns every problem found.
func (c *Config) Validate() error {
	var errs []error
	if c.Concurrency <= 0 {
		errs = append(errs, ErrInvalidConcurrency)
	}
	if c.ImportURL != "" {
		u, err := url.Parse(c.ImportURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			errs = append(errs, fmt.Errorf("%w: %q", ErrInvalidImportURL, c.ImportURL))
		}
	}
	return errors.Join(errs...)
}

// XDGConfigFile returns the per-user configuration file path.
// On Linux: ~/.config/richdoc/config.yaml
func XDGConfigFile() string {
	return filepath.Join(xdg.ConfigHome, AppName, "config.yaml")
}
