/*
 * Copyright (c) 2026 Firefly Software Solutions Inc.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

/*
Package config provides configuration management for flyparse.

Configuration Sources:
======================

Values are resolved in this order, later sources winning:

 1. Built-in defaults (DefaultConfig)
 2. Configuration file (TOML, or YAML for .yaml/.yml files)
 3. Environment variables (FLYPARSE_*)
 4. Command-line flags, applied by the caller

Configuration File Example:
===========================

	# flyparse configuration
	log_level = "info"
	log_json = false
	strict_lexer = true
	max_input_bytes = 1048576
	output = "text"
	compression = "zstd"
	history_file = "/home/me/.flyparse_history"
	color = true
	workers = 0

Hot Reload:
===========

Manager.Reload re-reads the file the configuration was loaded from,
re-applies the environment when it had been applied before, and notifies
the callbacks registered with OnReload.
*/
package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	ferrors "flyparse/internal/errors"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Environment variable names.
const (
	EnvLogLevel      = "FLYPARSE_LOG_LEVEL"
	EnvLogJSON       = "FLYPARSE_LOG_JSON"
	EnvStrictLexer   = "FLYPARSE_STRICT_LEXER"
	EnvMaxInputBytes = "FLYPARSE_MAX_INPUT_BYTES"
	EnvOutput        = "FLYPARSE_OUTPUT"
	EnvCompression   = "FLYPARSE_COMPRESSION"
	EnvHistoryFile   = "FLYPARSE_HISTORY_FILE"
	EnvColor         = "FLYPARSE_COLOR"
	EnvWorkers       = "FLYPARSE_WORKERS"
	EnvConfigFile    = "FLYPARSE_CONFIG"
)

// Output formats.
const (
	OutputText = "text"
	OutputJSON = "json"
	OutputTree = "tree"
)

// DefaultMaxInputBytes bounds the size of a single input accepted by the
// front end.
const DefaultMaxInputBytes = 1 << 20

var (
	validLevels       = []string{"debug", "info", "warn", "error"}
	validOutputs      = []string{OutputText, OutputJSON, OutputTree}
	validCompressions = []string{"none", "gzip", "lz4", "snappy", "zstd"}
)

// Config holds all configuration options.
type Config struct {
	LogLevel      string `toml:"log_level" yaml:"log_level"`
	LogJSON       bool   `toml:"log_json" yaml:"log_json"`
	StrictLexer   bool   `toml:"strict_lexer" yaml:"strict_lexer"`
	MaxInputBytes int    `toml:"max_input_bytes" yaml:"max_input_bytes"`
	Output        string `toml:"output" yaml:"output"`
	Compression   string `toml:"compression" yaml:"compression"`
	HistoryFile   string `toml:"history_file" yaml:"history_file"`
	Color         bool   `toml:"color" yaml:"color"`
	Workers       int    `toml:"workers" yaml:"workers"`

	// ConfigFile is the file the configuration was loaded from.
	ConfigFile string `toml:"-" yaml:"-"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		LogLevel:      "info",
		LogJSON:       false,
		StrictLexer:   true,
		MaxInputBytes: DefaultMaxInputBytes,
		Output:        OutputText,
		Compression:   "zstd",
		HistoryFile:   defaultHistoryFile(),
		Color:         true,
		Workers:       0,
	}
}

func defaultHistoryFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".flyparse_history"
	}
	return filepath.Join(home, ".flyparse_history")
}

// DefaultConfigPath returns the per-user configuration file location.
func DefaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "flyparse.toml"
	}
	return filepath.Join(dir, "flyparse", "config.toml")
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if !oneOf(strings.ToLower(c.LogLevel), validLevels) {
		return ferrors.ConfigInvalid("log_level",
			fmt.Sprintf("%q is not one of %s", c.LogLevel, strings.Join(validLevels, ", ")))
	}
	if c.MaxInputBytes <= 0 {
		return ferrors.ConfigInvalid("max_input_bytes", "must be positive")
	}
	if !oneOf(c.Output, validOutputs) {
		return ferrors.ConfigInvalid("output",
			fmt.Sprintf("%q is not one of %s", c.Output, strings.Join(validOutputs, ", ")))
	}
	if !oneOf(strings.ToLower(c.Compression), validCompressions) {
		return ferrors.ConfigInvalid("compression",
			fmt.Sprintf("%q is not one of %s", c.Compression, strings.Join(validCompressions, ", ")))
	}
	if c.Workers < 0 {
		return ferrors.ConfigInvalid("workers", "must not be negative")
	}
	return nil
}

func oneOf(s string, options []string) bool {
	for _, o := range options {
		if s == o {
			return true
		}
	}
	return false
}

// ToTOML renders the configuration as a TOML document.
func (c *Config) ToTOML() string {
	var buf bytes.Buffer
	buf.WriteString("# flyparse configuration\n")
	buf.WriteString("# Environment variables (FLYPARSE_*) override these values.\n\n")
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		// Every field is a plain scalar, so encoding cannot fail.
		panic(err)
	}
	return buf.String()
}

// SaveToFile writes the configuration as TOML, creating parent directories.
func (c *Config) SaveToFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return ferrors.IOError("create directory", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(c.ToTOML()), 0644); err != nil {
		return ferrors.IOError("write", path, err)
	}
	return nil
}

// String returns a human-readable summary of the configuration.
func (c *Config) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "LogLevel: %s\n", c.LogLevel)
	fmt.Fprintf(&b, "LogJSON: %v\n", c.LogJSON)
	fmt.Fprintf(&b, "StrictLexer: %v\n", c.StrictLexer)
	fmt.Fprintf(&b, "MaxInputBytes: %d\n", c.MaxInputBytes)
	fmt.Fprintf(&b, "Output: %s\n", c.Output)
	fmt.Fprintf(&b, "Compression: %s\n", c.Compression)
	fmt.Fprintf(&b, "HistoryFile: %s\n", c.HistoryFile)
	fmt.Fprintf(&b, "Color: %v\n", c.Color)
	fmt.Fprintf(&b, "Workers: %d\n", c.Workers)
	if c.ConfigFile != "" {
		fmt.Fprintf(&b, "ConfigFile: %s\n", c.ConfigFile)
	}
	return b.String()
}

func (c *Config) clone() *Config {
	cp := *c
	return &cp
}

// decodeFile decodes path on top of c. Keys missing from the file keep
// their current value.
func decodeFile(path string, c *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return ferrors.ConfigFile(path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, c); err != nil {
			return ferrors.ConfigFile(path, err).WithDetail("YAML parse error")
		}
	default:
		if _, err := toml.Decode(string(data), c); err != nil {
			return ferrors.ConfigFile(path, err).WithDetail("TOML parse error")
		}
	}
	return nil
}

// applyEnv overrides fields of c from the environment.
func applyEnv(c *Config) error {
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.LogLevel = strings.ToLower(v)
	}
	if v := os.Getenv(EnvOutput); v != "" {
		c.Output = strings.ToLower(v)
	}
	if v := os.Getenv(EnvCompression); v != "" {
		c.Compression = strings.ToLower(v)
	}
	if v := os.Getenv(EnvHistoryFile); v != "" {
		c.HistoryFile = v
	}

	bools := []struct {
		env string
		dst *bool
	}{
		{EnvLogJSON, &c.LogJSON},
		{EnvStrictLexer, &c.StrictLexer},
		{EnvColor, &c.Color},
	}
	for _, b := range bools {
		v := os.Getenv(b.env)
		if v == "" {
			continue
		}
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			return ferrors.ConfigInvalid(b.env, fmt.Sprintf("%q is not a boolean", v))
		}
		*b.dst = parsed
	}

	ints := []struct {
		env string
		dst *int
	}{
		{EnvMaxInputBytes, &c.MaxInputBytes},
		{EnvWorkers, &c.Workers},
	}
	for _, i := range ints {
		v := os.Getenv(i.env)
		if v == "" {
			continue
		}
		parsed, err := strconv.Atoi(v)
		if err != nil {
			return ferrors.ConfigInvalid(i.env, fmt.Sprintf("%q is not an integer", v))
		}
		*i.dst = parsed
	}
	return nil
}

// Manager owns the active configuration and notifies listeners when it is
// reloaded.
type Manager struct {
	mu         sync.RWMutex
	config     *Config
	envApplied bool
	callbacks  []func(*Config)
}

// NewManager creates a Manager holding the default configuration.
func NewManager() *Manager {
	return &Manager{config: DefaultConfig()}
}

var (
	globalManager *Manager
	globalOnce    sync.Once
)

// Global returns the process-wide Manager.
func Global() *Manager {
	globalOnce.Do(func() {
		globalManager = NewManager()
	})
	return globalManager
}

// Get returns a copy of the current configuration.
func (m *Manager) Get() *Config {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.config.clone()
}

// Set replaces the current configuration.
func (m *Manager) Set(c *Config) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.config = c.clone()
}

// LoadFromFile decodes path on top of the current configuration.
func (m *Manager) LoadFromFile(path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	next := m.config.clone()
	if err := decodeFile(path, next); err != nil {
		return err
	}
	next.ConfigFile = path
	m.config = next
	return nil
}

// LoadFromEnv applies FLYPARSE_* environment variables on top of the
// current configuration.
func (m *Manager) LoadFromEnv() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	next := m.config.clone()
	if err := applyEnv(next); err != nil {
		return err
	}
	m.config = next
	m.envApplied = true
	return nil
}

// Load resolves defaults, the file at path (skipped when path is empty)
// and the environment, then validates the result.
func (m *Manager) Load(path string) (*Config, error) {
	if path != "" {
		if err := m.LoadFromFile(path); err != nil {
			return nil, err
		}
	}
	if err := m.LoadFromEnv(); err != nil {
		return nil, err
	}
	cfg := m.Get()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// OnReload registers a callback run after every successful Reload.
func (m *Manager) OnReload(fn func(*Config)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.callbacks = append(m.callbacks, fn)
}

// Reload rebuilds the configuration from defaults, the original file and,
// if it was applied before, the environment. The new configuration must
// validate; otherwise the current one is kept.
func (m *Manager) Reload() error {
	m.mu.Lock()
	path := m.config.ConfigFile
	withEnv := m.envApplied
	m.mu.Unlock()

	if path == "" {
		return ferrors.NewConfigError("no configuration file to reload")
	}

	next := DefaultConfig()
	if err := decodeFile(path, next); err != nil {
		return err
	}
	next.ConfigFile = path
	if withEnv {
		if err := applyEnv(next); err != nil {
			return err
		}
	}
	if err := next.Validate(); err != nil {
		return err
	}

	m.mu.Lock()
	m.config = next
	callbacks := append([]func(*Config){}, m.callbacks...)
	m.mu.Unlock()

	for _, fn := range callbacks {
		fn(next.clone())
	}
	return nil
}
