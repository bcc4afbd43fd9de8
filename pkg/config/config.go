// Package config provides a JSON-backed, validated configuration object
// for building a rear-coded dictionary.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/vinciguerra/rcdict/pkg/rcd"
)

const (
	// DefaultManifestFileName is the conventional name for a saved
	// build configuration.
	DefaultManifestFileName = "rcdict.json"
	// CurrentConfigVersion is incremented whenever the Config shape
	// changes in a way that breaks older saved manifests.
	CurrentConfigVersion = 1
)

var (
	// ErrInvalidConfig is returned by Validate when a field fails its
	// constraint.
	ErrInvalidConfig = errors.New("rcdict/config: invalid configuration")
	// ErrManifestNotFound is returned by Load when the named file does
	// not exist.
	ErrManifestNotFound = errors.New("rcdict/config: manifest not found")
	// ErrInvalidManifest is returned by Load when the file cannot be
	// parsed as a Config.
	ErrInvalidManifest = errors.New("rcdict/config: invalid manifest")
)

// Config is the set of build-time parameters for a dictionary:
// block_bytes (spec §3), the offset width capacity check (spec §9),
// and whether to reject embedded-NUL input strings (spec §9's open
// question; rejection is the default).
type Config struct {
	Version int `json:"version"`

	BlockBytes  int  `json:"block_bytes"`
	OffsetWidth int  `json:"offset_width"` // 32 or 64
	RejectNUL   bool `json:"reject_nul"`

	mu sync.RWMutex
}

// NewDefaultConfig returns a Config with the recommended defaults: a
// 4KB block size, 64-bit offsets (spec §9's recommendation), and NUL
// rejection enabled.
func NewDefaultConfig() *Config {
	return &Config{
		Version:     CurrentConfigVersion,
		BlockBytes:  4096,
		OffsetWidth: 64,
		RejectNUL:   true,
	}
}

// Validate checks that the configuration's fields are within their
// documented constraints.
func (c *Config) Validate() error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.Version <= 0 {
		return fmt.Errorf("%w: invalid version %d", ErrInvalidConfig, c.Version)
	}
	if c.BlockBytes < 1 {
		return fmt.Errorf("%w: block_bytes must be >= 1", ErrInvalidConfig)
	}
	if c.OffsetWidth != 32 && c.OffsetWidth != 64 {
		return fmt.Errorf("%w: offset_width must be 32 or 64, got %d", ErrInvalidConfig, c.OffsetWidth)
	}
	return nil
}

// BuildOptions translates the configuration into rcd.BuildOptions.
func (c *Config) BuildOptions() rcd.BuildOptions {
	c.mu.RLock()
	defer c.mu.RUnlock()

	width := rcd.OffsetWidth64
	if c.OffsetWidth == 32 {
		width = rcd.OffsetWidth32
	}
	return rcd.BuildOptions{
		BlockBytes:  c.BlockBytes,
		OffsetWidth: width,
		RejectNUL:   c.RejectNUL,
	}
}

// Load reads a Config previously written by Save.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrManifestNotFound
		}
		return nil, fmt.Errorf("rcdict/config: failed to read manifest: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidManifest, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Save persists the configuration to path, writing to a temp file and
// renaming into place so a reader never observes a partial write.
func (c *Config) Save(path string) error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if err := c.Validate(); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("rcdict/config: failed to marshal config: %w", err)
	}

	tempPath := path + ".tmp"
	if err := os.WriteFile(tempPath, data, 0644); err != nil {
		return fmt.Errorf("rcdict/config: failed to write manifest: %w", err)
	}
	if err := os.Rename(tempPath, path); err != nil {
		return fmt.Errorf("rcdict/config: failed to rename manifest: %w", err)
	}
	return nil
}

// Update applies fn to the configuration under the write lock.
func (c *Config) Update(fn func(*Config)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fn(c)
}
