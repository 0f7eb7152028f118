// handles publish.yaml and the directory defaults
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// DefaultFile is read from the working directory when --config is not given,
// then from its parent so runs inside a drafts or posts directory see it too.
const DefaultFile = "publish.yaml"

// ErrInvalid marks a configuration file that exists but cannot be used.
var ErrInvalid = errors.New("invalid configuration")

// Config contains the tunable naming parameters.
// These can be overridden via publish.yaml
type Config struct {
	WritingDir   string `yaml:"writingDir"`   // drafts directory name (default: writing_posts)
	PublishedDir string `yaml:"publishedDir"` // posts directory name (default: _posts)
	DateFormat   string `yaml:"dateFormat"`   // Go layout for the date prefix (default: 2006-01-02)
	Extension    string `yaml:"extension"`    // markdown suffix (default: .md)
}

// Default returns the configuration used when no publish.yaml exists
func Default() *Config {
	return &Config{
		WritingDir:   "writing_posts",
		PublishedDir: "_posts",
		DateFormat:   "2006-01-02",
		Extension:    ".md",
	}
}

// Load reads path from fsys on top of the defaults. An empty path searches
// DefaultFile in the working directory and then in its parent.
// A missing file is only an error when required is set (an explicit --config).
func Load(fsys afero.Fs, path string, required bool) (*Config, error) {
	cfg := Default()
	candidates := []string{path}
	if path == "" {
		candidates = []string{DefaultFile, filepath.Join("..", DefaultFile)}
	}

	var data []byte
	found := false
	for _, candidate := range candidates {
		b, err := afero.ReadFile(fsys, candidate)
		if err == nil {
			data, path, found = b, candidate, true
			break
		}
		if !errors.Is(err, fs.ErrNotExist) || required {
			return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
		}
	}
	if !found {
		return cfg, nil
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalid, path, err)
	}

	// Empty keys in the file fall back to defaults
	def := Default()
	if cfg.WritingDir == "" {
		cfg.WritingDir = def.WritingDir
	}
	if cfg.PublishedDir == "" {
		cfg.PublishedDir = def.PublishedDir
	}
	if cfg.DateFormat == "" {
		cfg.DateFormat = def.DateFormat
	}
	if cfg.Extension == "" {
		cfg.Extension = def.Extension
	}
	if !strings.HasPrefix(cfg.Extension, ".") {
		cfg.Extension = "." + cfg.Extension
	}
	if cfg.WritingDir == cfg.PublishedDir {
		return nil, fmt.Errorf("%w: writingDir and publishedDir are both %q", ErrInvalid, cfg.WritingDir)
	}
	return cfg, nil
}

// DefaultDirs picks the (from, to) directories for a working directory.
// Only the final path segment of cwd is looked at.
func (c *Config) DefaultDirs(cwd string) (string, string) {
	switch filepath.Base(cwd) {
	case c.WritingDir:
		return "./", "../" + c.PublishedDir + "/"
	case c.PublishedDir:
		return "../" + c.WritingDir + "/", "./"
	default:
		return "./" + c.WritingDir + "/", "./" + c.PublishedDir + "/"
	}
}
