// Package config loads batch job files for the command line tool.
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v2"

	"github.com/anas-shakeel/bmp-smooth/internal/logging"
)

// Mode selects what happens to an image between decode and encode.
type Mode string

const (
	ModeSmooth        Mode = "smooth"         // 3x3 smoothing filter
	ModeCopy          Mode = "copy"           // decode and re-encode unchanged
	ModeInvert        Mode = "invert"         // negate every channel
	ModeGrayscale     Mode = "grayscale"      // average the colour channels
	ModeGrayscaleLuma Mode = "grayscale-luma" // ITU-R 601-2 luma
	ModeRed           Mode = "red"            // keep only the red channel
	ModeGreen         Mode = "green"          // keep only the green channel
	ModeBlue          Mode = "blue"           // keep only the blue channel
)

// Modes lists every accepted mode, in the order the CLI shows them.
var Modes = []Mode{
	ModeSmooth, ModeCopy, ModeInvert, ModeGrayscale, ModeGrayscaleLuma,
	ModeRed, ModeGreen, ModeBlue,
}

// ParseMode accepts a mode name in any case. An empty name is ModeSmooth.
func ParseMode(s string) (Mode, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return ModeSmooth, nil
	}
	for _, m := range Modes {
		if string(m) == s {
			return m, nil
		}
	}
	return "", fmt.Errorf("unknown mode %q (want one of %s)", s, ModeNames())
}

// ModeNames returns the accepted modes joined with "|".
func ModeNames() string {
	names := make([]string, len(Modes))
	for i, m := range Modes {
		names[i] = string(m)
	}
	return strings.Join(names, "|")
}

// Job is one input → output transform.
type Job struct {
	Input  string `yaml:"input"`
	Output string `yaml:"output"`
	Mode   Mode   `yaml:"mode,omitempty"`
}

// Config is the root of a job file.
type Config struct {
	LogLevel string `yaml:"log_level,omitempty"`
	Verify   bool   `yaml:"verify,omitempty"`
	Jobs     []Job  `yaml:"jobs"`
}

// Load reads and validates a YAML job file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read job file '%s': %w", path, err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("job file '%s': %w", path, err)
	}
	return cfg, nil
}

// Parse decodes and validates job file contents. Jobs without a mode get
// ModeSmooth.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.UnmarshalStrict(data, &cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling YAML: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate normalises modes in place and checks every job names both paths.
func (c *Config) Validate() error {
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	if len(c.Jobs) == 0 {
		return fmt.Errorf("no jobs defined")
	}

	for i := range c.Jobs {
		job := &c.Jobs[i]
		if strings.TrimSpace(job.Input) == "" {
			return fmt.Errorf("job %d: missing input", i+1)
		}
		if strings.TrimSpace(job.Output) == "" {
			return fmt.Errorf("job %d: missing output", i+1)
		}
		mode, err := ParseMode(string(job.Mode))
		if err != nil {
			return fmt.Errorf("job %d: %w", i+1, err)
		}
		job.Mode = mode
	}
	return nil
}
