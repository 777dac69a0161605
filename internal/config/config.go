package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/ligustah/qdfetch/internal/progress"
	"gopkg.in/yaml.v3"
)

// Defaults for the public Quick, Draw! dataset.
const (
	DefaultBucket       = "gs://quickdraw_dataset"
	DefaultPrefix       = "full/simplified"
	DefaultRoot         = "https://storage.googleapis.com/quickdraw_dataset/full/raw"
	DefaultPreviewBytes = 100000
	DefaultDataDir      = "data"
	DefaultManifest     = "public/labels.json"
)

// Config defines configuration for the qdfetch CLI.
type Config struct {
	Bucket       string     `yaml:"bucket"`
	Prefix       string     `yaml:"prefix"`
	Root         string     `yaml:"root"`
	PreviewBytes int64      `yaml:"preview_bytes"`
	Full         bool       `yaml:"full"`
	DataDir      string     `yaml:"data_dir"`
	Manifest     string     `yaml:"manifest"`
	Anonymous    bool       `yaml:"anonymous"`
	LogFile      string     `yaml:"log_file"`
	Verbose      bool       `yaml:"verbose"`
	HTTP         HTTPConfig `yaml:"http"`
}

// HTTPConfig defines HTTP client behavior.
type HTTPConfig struct {
	Timeout   time.Duration `yaml:"timeout"`
	UserAgent string        `yaml:"user_agent"`
}

// Default returns a Config with sensible defaults.
func Default() Config {
	return Config{
		Bucket:       DefaultBucket,
		Prefix:       DefaultPrefix,
		Root:         DefaultRoot,
		PreviewBytes: DefaultPreviewBytes,
		DataDir:      DefaultDataDir,
		Manifest:     DefaultManifest,
	}
}

// yamlConfig is used for YAML unmarshaling with string sizes and durations.
type yamlConfig struct {
	Bucket       string         `yaml:"bucket"`
	Prefix       string         `yaml:"prefix"`
	Root         string         `yaml:"root"`
	PreviewBytes string         `yaml:"preview_bytes"`
	Full         bool           `yaml:"full"`
	DataDir      string         `yaml:"data_dir"`
	Manifest     string         `yaml:"manifest"`
	Anonymous    bool           `yaml:"anonymous"`
	LogFile      string         `yaml:"log_file"`
	Verbose      bool           `yaml:"verbose"`
	HTTP         yamlHTTPConfig `yaml:"http"`
}

type yamlHTTPConfig struct {
	Timeout   string `yaml:"timeout"`
	UserAgent string `yaml:"user_agent"`
}

// LoadFromFile loads configuration from a YAML file.
func LoadFromFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config file: %w", err)
	}

	var yc yamlConfig
	if err := yaml.Unmarshal(data, &yc); err != nil {
		return Config{}, fmt.Errorf("parse config file: %w", err)
	}

	cfg := Default()

	if yc.Bucket != "" {
		cfg.Bucket = yc.Bucket
	}
	if yc.Prefix != "" {
		cfg.Prefix = yc.Prefix
	}
	if yc.Root != "" {
		cfg.Root = yc.Root
	}
	if yc.PreviewBytes != "" {
		size, err := progress.ParseBytes(yc.PreviewBytes)
		if err != nil {
			return Config{}, fmt.Errorf("parse preview_bytes: %w", err)
		}
		cfg.PreviewBytes = size
	}
	if yc.DataDir != "" {
		cfg.DataDir = yc.DataDir
	}
	if yc.Manifest != "" {
		cfg.Manifest = yc.Manifest
	}
	cfg.Full = yc.Full
	cfg.Anonymous = yc.Anonymous
	cfg.Verbose = yc.Verbose
	cfg.LogFile = yc.LogFile
	if yc.HTTP.Timeout != "" {
		d, err := time.ParseDuration(yc.HTTP.Timeout)
		if err != nil {
			return Config{}, fmt.Errorf("parse http.timeout: %w", err)
		}
		cfg.HTTP.Timeout = d
	}
	cfg.HTTP.UserAgent = yc.HTTP.UserAgent

	return cfg, nil
}

// LoadFromEnv loads configuration from environment variables.
// Environment variables use the QDFETCH_ prefix.
func (c *Config) LoadFromEnv() error {
	if v := os.Getenv("QDFETCH_BUCKET"); v != "" {
		c.Bucket = v
	}
	if v := os.Getenv("QDFETCH_PREFIX"); v != "" {
		c.Prefix = v
	}
	if v := os.Getenv("QDFETCH_ROOT"); v != "" {
		c.Root = v
	}
	if v := os.Getenv("QDFETCH_PREVIEW_BYTES"); v != "" {
		size, err := progress.ParseBytes(v)
		if err != nil {
			return fmt.Errorf("parse QDFETCH_PREVIEW_BYTES: %w", err)
		}
		c.PreviewBytes = size
	}
	if v := os.Getenv("QDFETCH_FULL"); v != "" {
		c.Full = v == "true" || v == "1"
	}
	if v := os.Getenv("QDFETCH_DATA_DIR"); v != "" {
		c.DataDir = v
	}
	if v := os.Getenv("QDFETCH_MANIFEST"); v != "" {
		c.Manifest = v
	}
	if v := os.Getenv("QDFETCH_ANONYMOUS"); v != "" {
		c.Anonymous = v == "true" || v == "1"
	}
	if v := os.Getenv("QDFETCH_LOG_FILE"); v != "" {
		c.LogFile = v
	}
	if v := os.Getenv("QDFETCH_VERBOSE"); v != "" {
		c.Verbose = v == "true" || v == "1"
	}
	if v := os.Getenv("QDFETCH_HTTP_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("parse QDFETCH_HTTP_TIMEOUT: %w", err)
		}
		c.HTTP.Timeout = d
	}
	if v := os.Getenv("QDFETCH_HTTP_USER_AGENT"); v != "" {
		c.HTTP.UserAgent = v
	}

	return nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Bucket == "" {
		return errors.New("config: bucket is required")
	}
	if c.Root == "" {
		return errors.New("config: root is required")
	}
	u, err := url.Parse(c.Root)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("config: root must be an http(s) URL, got %q", c.Root)
	}
	if c.PreviewBytes <= 0 {
		return errors.New("config: preview_bytes must be positive")
	}
	if c.DataDir == "" {
		return errors.New("config: data_dir is required")
	}
	if c.Manifest == "" {
		return errors.New("config: manifest is required")
	}
	if c.HTTP.Timeout < 0 {
		return errors.New("config: http.timeout must not be negative")
	}
	return nil
}

// Merge merges override values into c, returning a new Config.
// Zero values in override are ignored.
func (c Config) Merge(override Config) Config {
	if override.Bucket != "" {
		c.Bucket = override.Bucket
	}
	if override.Prefix != "" {
		c.Prefix = override.Prefix
	}
	if override.Root != "" {
		c.Root = override.Root
	}
	if override.PreviewBytes != 0 {
		c.PreviewBytes = override.PreviewBytes
	}
	if override.Full {
		c.Full = override.Full
	}
	if override.DataDir != "" {
		c.DataDir = override.DataDir
	}
	if override.Manifest != "" {
		c.Manifest = override.Manifest
	}
	if override.Anonymous {
		c.Anonymous = override.Anonymous
	}
	if override.LogFile != "" {
		c.LogFile = override.LogFile
	}
	if override.Verbose {
		c.Verbose = override.Verbose
	}
	if override.HTTP.Timeout != 0 {
		c.HTTP.Timeout = override.HTTP.Timeout
	}
	if override.HTTP.UserAgent != "" {
		c.HTTP.UserAgent = override.HTTP.UserAgent
	}
	return c
}
