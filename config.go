package xlate

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"gopkg.in/yaml.v3"

	"github.com/kolkov/xlate/internal/storage"
)

// Config holds configuration options for translation.
type Config struct {
	// IndentWidth is the number of spaces per nesting level in generated
	// code (default: 4).
	IndentWidth int `yaml:"indentWidth"`

	// JavaClassName names the public class that wraps free functions
	// and top-level statements in Java output (default: "Main").
	// A Java source's own entry class keeps its name.
	JavaClassName string `yaml:"javaClassName"`

	// Verify re-parses generated code with an independent tree-sitter
	// grammar. Problems found become warnings at stage "verify".
	Verify bool `yaml:"verify"`

	// StrictPython reports undefined Python names as errors.
	// By default they are warnings, since they may resolve at run time.
	StrictPython bool `yaml:"strictPython"`

	// Logger receives one debug record per pipeline stage.
	// If nil, nothing is logged.
	Logger *slog.Logger `yaml:"-"`
}

// applyDefaults fills in default values for unset Config fields.
func (c *Config) applyDefaults() {
	if c.IndentWidth <= 0 {
		c.IndentWidth = 4
	}
	if c.JavaClassName == "" {
		c.JavaClassName = "Main"
	}
	if c.Logger == nil {
		c.Logger = slog.New(slog.DiscardHandler)
	}
}

// LoadConfig reads a YAML configuration from url, a path or any location
// afs understands. Unknown keys are rejected.
//
// Example file:
//
//	indentWidth: 2
//	javaClassName: Program
//	verify: true
func LoadConfig(ctx context.Context, url string) (*Config, error) {
	data, err := storage.New().Load(ctx, url)
	if err != nil {
		return nil, err
	}
	return ParseConfig(data)
}

// ParseConfig decodes a YAML configuration.
func ParseConfig(data []byte) (*Config, error) {
	cfg := &Config{}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config: %w", err)
	}
	if cfg.IndentWidth < 0 {
		return nil, fmt.Errorf("config: indentWidth must not be negative, got %d", cfg.IndentWidth)
	}
	return cfg, nil
}
