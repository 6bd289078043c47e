// Copyright 2025 The Athena Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package config loads the athena.yaml file that configures the command
// line tools.
//
// A configuration file looks like this; every key is optional.
//
//	entry: file        # entry point used for files with no explicit one
//	color: auto        # auto, always or never
//	log_level: info    # debug, info, warn or error
//	jobs: 8            # files parsed concurrently by `athena check`
//	include:           # globs checked when `athena check` has no arguments
//	  - "**/*.ath"
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/mattn/go-isatty"
	"gopkg.in/yaml.v3"

	"github.com/athena-lang/athena/internal/logging"
	"github.com/athena-lang/athena/parser"
)

// FileName is the name of the configuration file searched for by [Find].
const FileName = "athena.yaml"

// Color modes.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Config is the contents of a configuration file.
type Config struct {
	Entry    string   `yaml:"entry"`
	Color    string   `yaml:"color"`
	LogLevel string   `yaml:"log_level"`
	Jobs     int      `yaml:"jobs"`
	Include  []string `yaml:"include"`
}

// Default returns the configuration used when there is no file.
func Default() Config {
	return Config{
		Entry:    parser.SourceFile.String(),
		Color:    ColorAuto,
		LogLevel: "info",
		Jobs:     runtime.GOMAXPROCS(0),
		Include:  []string{"**/*.ath"},
	}
}

// Parse parses a configuration file. Keys missing from data keep their
// [Default] values; unknown keys are an error.
func Parse(data []byte) (Config, error) {
	cfg := Default()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("parse yaml: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Load reads and parses the configuration file at path.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Find searches dir and its parents for a [FileName]. Returns the empty
// string if there is none.
func Find(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("find config: %w", err)
	}

	for {
		path := filepath.Join(dir, FileName)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("find config: %w", err)
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

// Validate checks that every field has a meaningful value.
func (c Config) Validate() error {
	var errs []error
	if _, ok := parser.LookupEntryPoint(c.Entry); !ok {
		errs = append(errs, fmt.Errorf("entry: unknown entry point %q", c.Entry))
	}
	switch c.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		errs = append(errs, fmt.Errorf("color: expected auto, always or never, got %q", c.Color))
	}
	if _, ok := logging.ParseLevel(c.LogLevel); !ok {
		errs = append(errs, fmt.Errorf("log_level: unknown level %q", c.LogLevel))
	}
	if c.Jobs < 0 {
		errs = append(errs, fmt.Errorf("jobs: must not be negative, got %d", c.Jobs))
	}
	for _, glob := range c.Include {
		if !doublestar.ValidatePattern(glob) {
			errs = append(errs, fmt.Errorf("include: invalid glob %q", glob))
		}
	}
	return errors.Join(errs...)
}

// Colorize returns whether output written to w should be colorized.
//
// In auto mode, color is enabled only if w is a terminal and NO_COLOR is not
// set.
func (c Config) Colorize(w io.Writer) bool {
	switch c.Color {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	}

	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if f, ok := w.(*os.File); ok {
		return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	return false
}
