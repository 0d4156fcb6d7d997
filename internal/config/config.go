// Package config provides configuration for the geosync tool.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	geoerrors "github.com/geosync/geosync/internal/errors"
)

// Pair maps one map-service layer to its target in the working root. The
// target is "Container.Name" or a bare "Name".
type Pair struct {
	Source string `json:"source" yaml:"source"`
	Target string `json:"target" yaml:"target"`
}

// Config holds the configuration for one sync run. Pairs are processed in
// list order.
type Config struct {
	// Workspace is the path to the geodatabase file (the working root).
	Workspace string `json:"workspace" yaml:"workspace"`

	// Pairs lists the source/target mappings in processing order.
	Pairs []Pair `json:"pairs" yaml:"pairs"`

	// AllowedExtraInTarget lists target-only field names tolerated by
	// the schema guard (case-insensitive).
	AllowedExtraInTarget []string `json:"allowed_extra_in_target" yaml:"allowed_extra_in_target"`

	// Filter is an optional attribute filter applied to every row
	// export, e.g. "Status='Active'".
	Filter string `json:"filter" yaml:"filter"`

	// HTTP configuration for the map-service client
	HTTP HTTPConfig `json:"http" yaml:"http"`

	// Archive configuration for run-report archival
	Archive ArchiveConfig `json:"archive" yaml:"archive"`
}

// HTTPConfig holds map-service client configuration.
type HTTPConfig struct {
	// Timeout is the per-request timeout
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// PageSize is the number of features requested per query page
	PageSize int `json:"page_size" yaml:"page_size"`
}

// ArchiveConfig holds run-report archival configuration.
type ArchiveConfig struct {
	// Enabled controls whether run reports are archived
	Enabled bool `json:"enabled" yaml:"enabled"`

	// Type is the archive backend: local, s3
	Type string `json:"type" yaml:"type"`

	// Path is the local archive directory (for local type)
	Path string `json:"path" yaml:"path"`

	// Prefix is the object path prefix for archived reports
	Prefix string `json:"prefix" yaml:"prefix"`

	// S3 configuration (for s3 type)
	S3 S3Config `json:"s3" yaml:"s3"`
}

// S3Config holds S3 archive configuration.
type S3Config struct {
	// Bucket is the S3 bucket name
	Bucket string `json:"bucket" yaml:"bucket"`

	// Region is the AWS region
	Region string `json:"region" yaml:"region"`

	// Endpoint is the S3 endpoint (for S3-compatible storage)
	Endpoint string `json:"endpoint" yaml:"endpoint"`

	// UsePathStyle enables path-style addressing (for MinIO)
	UsePathStyle bool `json:"use_path_style" yaml:"use_path_style"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Workspace: "./data/geosync.db",
		HTTP: HTTPConfig{
			Timeout:  60 * time.Second,
			PageSize: 1000,
		},
		Archive: ArchiveConfig{
			Enabled: false,
			Type:    "local",
			Prefix:  "reports",
		},
	}
}

// Resolve resolves defaults derived from other settings.
func (c *Config) Resolve() {
	if c.Workspace == "" {
		c.Workspace = "./data/geosync.db"
	}
	if c.Archive.Path == "" {
		c.Archive.Path = filepath.Join(filepath.Dir(c.Workspace), "archive")
	}
	if c.Archive.Prefix == "" {
		c.Archive.Prefix = "reports"
	}
}

// Validate validates the configuration. Violations are fatal to the whole
// run and surfaced before any pair is processed.
func (c *Config) Validate() error {
	if c.Workspace == "" {
		return geoerrors.NewConfigError(geoerrors.CodeMappingInvalid, "workspace is required")
	}

	if len(c.Pairs) == 0 {
		return geoerrors.NewConfigError(geoerrors.CodeMappingMissing, "pairs must be a non-empty list")
	}
	for i, p := range c.Pairs {
		if strings.TrimSpace(p.Source) == "" {
			return geoerrors.NewConfigError(geoerrors.CodeMappingInvalid,
				fmt.Sprintf("pair %d: source is required", i))
		}
		if strings.TrimSpace(p.Target) == "" {
			return geoerrors.NewConfigError(geoerrors.CodeMappingInvalid,
				fmt.Sprintf("pair %d: target is required", i))
		}
	}

	if c.Archive.Enabled {
		if c.Archive.Type != "local" && c.Archive.Type != "s3" {
			return geoerrors.NewConfigError(geoerrors.CodeMappingInvalid,
				fmt.Sprintf("invalid archive type: %s (must be local or s3)", c.Archive.Type))
		}
		if c.Archive.Type == "s3" && c.Archive.S3.Bucket == "" {
			return geoerrors.NewConfigError(geoerrors.CodeMappingInvalid,
				"archive.s3.bucket is required when archive type is s3")
		}
	}

	return nil
}

// LoadFromFile loads configuration from a YAML or JSON file.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, geoerrors.Wrap(geoerrors.ErrCategoryConfig, geoerrors.CodeMappingInvalid,
			"failed to read config file", err)
	}

	cfg := DefaultConfig()

	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, geoerrors.Wrap(geoerrors.ErrCategoryConfig, geoerrors.CodeMappingInvalid,
				"failed to parse YAML config", err)
		}
	case ".json":
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, geoerrors.Wrap(geoerrors.ErrCategoryConfig, geoerrors.CodeMappingInvalid,
				"failed to parse JSON config", err)
		}
	default:
		return nil, geoerrors.NewConfigError(geoerrors.CodeMappingInvalid,
			fmt.Sprintf("unsupported config file format: %s", ext))
	}

	return cfg, nil
}

// LoadFromEnv loads configuration from environment variables.
// Environment variables use the GEOSYNC_ prefix.
func LoadFromEnv(cfg *Config) {
	if v := os.Getenv("GEOSYNC_WORKSPACE"); v != "" {
		cfg.Workspace = v
	}
	if v := os.Getenv("GEOSYNC_FILTER"); v != "" {
		cfg.Filter = v
	}

	// HTTP configuration
	if v := os.Getenv("GEOSYNC_HTTP_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.HTTP.Timeout = d
		}
	}
	if v := os.Getenv("GEOSYNC_HTTP_PAGE_SIZE"); v != "" {
		fmt.Sscanf(v, "%d", &cfg.HTTP.PageSize)
	}

	// Archive configuration
	if v := os.Getenv("GEOSYNC_ARCHIVE_ENABLED"); v != "" {
		cfg.Archive.Enabled = v == "true" || v == "1"
	}
	if v := os.Getenv("GEOSYNC_ARCHIVE_TYPE"); v != "" {
		cfg.Archive.Type = v
	}
	if v := os.Getenv("GEOSYNC_ARCHIVE_PATH"); v != "" {
		cfg.Archive.Path = v
	}
	if v := os.Getenv("GEOSYNC_S3_BUCKET"); v != "" {
		cfg.Archive.S3.Bucket = v
	}
	if v := os.Getenv("GEOSYNC_S3_REGION"); v != "" {
		cfg.Archive.S3.Region = v
	}
	if v := os.Getenv("GEOSYNC_S3_ENDPOINT"); v != "" {
		cfg.Archive.S3.Endpoint = v
	}
}
