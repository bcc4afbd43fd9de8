package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/vinciguerra/rcdict/pkg/rcd"
)

func TestNewDefaultConfig(t *testing.T) {
	cfg := NewDefaultConfig()

	if cfg.Version != CurrentConfigVersion {
		t.Errorf("expected version %d, got %d", CurrentConfigVersion, cfg.Version)
	}
	if cfg.BlockBytes != 4096 {
		t.Errorf("expected block_bytes 4096, got %d", cfg.BlockBytes)
	}
	if cfg.OffsetWidth != 64 {
		t.Errorf("expected offset_width 64, got %d", cfg.OffsetWidth)
	}
	if !cfg.RejectNUL {
		t.Errorf("expected reject_nul true by default")
	}
}

func TestConfigValidate(t *testing.T) {
	cfg := NewDefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Errorf("expected valid config, got error: %v", err)
	}

	testCases := []struct {
		name     string
		mutate   func(*Config)
		expected string
	}{
		{
			name: "invalid version",
			mutate: func(c *Config) {
				c.Version = 0
			},
			expected: "rcdict/config: invalid configuration: invalid version 0",
		},
		{
			name: "zero block_bytes",
			mutate: func(c *Config) {
				c.BlockBytes = 0
			},
			expected: "rcdict/config: invalid configuration: block_bytes must be >= 1",
		},
		{
			name: "bad offset width",
			mutate: func(c *Config) {
				c.OffsetWidth = 16
			},
			expected: "rcdict/config: invalid configuration: offset_width must be 32 or 64, got 16",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := NewDefaultConfig()
			tc.mutate(cfg)

			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if err.Error() != tc.expected {
				t.Errorf("expected error %q, got %q", tc.expected, err.Error())
			}
		})
	}
}

func TestConfigBuildOptions(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.OffsetWidth = 32
	cfg.BlockBytes = 128

	opts := cfg.BuildOptions()
	if opts.OffsetWidth != rcd.OffsetWidth32 {
		t.Errorf("expected 32-bit offset width, got %v", opts.OffsetWidth)
	}
	if opts.BlockBytes != 128 {
		t.Errorf("expected block bytes 128, got %d", opts.BlockBytes)
	}
	if !opts.RejectNUL {
		t.Errorf("expected RejectNUL true")
	}
}

func TestConfigSaveLoad(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "config_test")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tempDir)

	cfg := NewDefaultConfig()
	cfg.BlockBytes = 8192
	cfg.OffsetWidth = 32

	path := filepath.Join(tempDir, DefaultManifestFileName)
	if err := cfg.Save(path); err != nil {
		t.Fatalf("failed to save config: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if loaded.BlockBytes != cfg.BlockBytes {
		t.Errorf("expected block_bytes %d, got %d", cfg.BlockBytes, loaded.BlockBytes)
	}
	if loaded.OffsetWidth != cfg.OffsetWidth {
		t.Errorf("expected offset_width %d, got %d", cfg.OffsetWidth, loaded.OffsetWidth)
	}

	_, err = Load(filepath.Join(tempDir, "nonexistent.json"))
	if err != ErrManifestNotFound {
		t.Errorf("expected ErrManifestNotFound, got %v", err)
	}
}

func TestConfigUpdate(t *testing.T) {
	cfg := NewDefaultConfig()

	cfg.Update(func(c *Config) {
		c.BlockBytes = 2048
		c.RejectNUL = false
	})

	if cfg.BlockBytes != 2048 {
		t.Errorf("expected block_bytes 2048, got %d", cfg.BlockBytes)
	}
	if cfg.RejectNUL {
		t.Errorf("expected reject_nul false after update")
	}
}
