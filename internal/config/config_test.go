package config

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := Default()

	if cfg.Bucket != "gs://quickdraw_dataset" {
		t.Errorf("expected default bucket gs://quickdraw_dataset, got %s", cfg.Bucket)
	}
	if cfg.Prefix != "full/simplified" {
		t.Errorf("expected default prefix full/simplified, got %s", cfg.Prefix)
	}
	if cfg.Root != "https://storage.googleapis.com/quickdraw_dataset/full/raw" {
		t.Errorf("unexpected default root %s", cfg.Root)
	}
	if cfg.PreviewBytes != 100000 {
		t.Errorf("expected default preview bytes 100000, got %d", cfg.PreviewBytes)
	}
	if cfg.DataDir != "data" {
		t.Errorf("expected default data dir 'data', got %s", cfg.DataDir)
	}
	if cfg.Manifest != "public/labels.json" {
		t.Errorf("expected default manifest public/labels.json, got %s", cfg.Manifest)
	}
	if cfg.Full || cfg.Anonymous || cfg.Verbose {
		t.Error("expected boolean options to default to false")
	}
	if cfg.HTTP.Timeout != 0 {
		t.Errorf("expected no default http timeout, got %v", cfg.HTTP.Timeout)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoadFromYAML(t *testing.T) {
	yamlContent := `
bucket: s3://mirror?region=us-east-1
prefix: sketches
root: https://mirror.example.com/raw
preview_bytes: 64KiB
full: true
data_dir: out/data
manifest: out/labels.json
anonymous: true
verbose: true
log_file: qdfetch.log
http:
  timeout: 45s
  user_agent: qdfetch-test
`
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("write config file: %v", err)
	}

	cfg, err := LoadFromFile(configPath)
	if err != nil {
		t.Fatalf("LoadFromFile: %v", err)
	}

	if cfg.Bucket != "s3://mirror?region=us-east-1" {
		t.Errorf("expected bucket override, got %s", cfg.Bucket)
	}
	if cfg.Prefix != "sketches" {
		t.Errorf("expected prefix sketches, got %s", cfg.Prefix)
	}
	if cfg.Root != "https://mirror.example.com/raw" {
		t.Errorf("expected root override, got %s", cfg.Root)
	}
	if cfg.PreviewBytes != 64*1024 {
		t.Errorf("expected preview bytes 64KiB, got %d", cfg.PreviewBytes)
	}
	if !cfg.Full || !cfg.Anonymous || !cfg.Verbose {
		t.Error("expected boolean options true")
	}
	if cfg.DataDir != "out/data" || cfg.Manifest != "out/labels.json" {
		t.Errorf("expected output paths override, got %s %s", cfg.DataDir, cfg.Manifest)
	}
	if cfg.LogFile != "qdfetch.log" {
		t.Errorf("expected log file, got %s", cfg.LogFile)
	}
	if cfg.HTTP.Timeout != 45*time.Second {
		t.Errorf("expected http timeout 45s, got %v", cfg.HTTP.Timeout)
	}
	if cfg.HTTP.UserAgent != "qdfetch-test" {
		t.Errorf("expected user agent, got %s", cfg.HTTP.UserAgent)
	}
}

func TestLoadFromYAMLKeepsDefaults(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, []byte("preview_bytes: 100KB\n"), 0644); err != nil {
		t.Fatalf("write config file: %v", err)
	}

	cfg, err := LoadFromFile(configPath)
	if err != nil {
		t.Fatalf("LoadFromFile: %v", err)
	}
	if cfg.PreviewBytes != 100000 {
		t.Errorf("expected 100KB = 100000, got %d", cfg.PreviewBytes)
	}
	if cfg.Bucket != DefaultBucket || cfg.Root != DefaultRoot {
		t.Errorf("expected defaults preserved, got %s %s", cfg.Bucket, cfg.Root)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("QDFETCH_BUCKET", "file:///srv/quickdraw")
	t.Setenv("QDFETCH_PREFIX", "full/simplified/")
	t.Setenv("QDFETCH_PREVIEW_BYTES", "1MB")
	t.Setenv("QDFETCH_FULL", "1")
	t.Setenv("QDFETCH_ANONYMOUS", "true")
	t.Setenv("QDFETCH_DATA_DIR", "/tmp/data")
	t.Setenv("QDFETCH_HTTP_TIMEOUT", "10s")

	cfg := Default()
	if err := cfg.LoadFromEnv(); err != nil {
		t.Fatalf("LoadFromEnv: %v", err)
	}

	if cfg.Bucket != "file:///srv/quickdraw" {
		t.Errorf("expected bucket from env, got %s", cfg.Bucket)
	}
	if cfg.Prefix != "full/simplified/" {
		t.Errorf("expected prefix from env, got %s", cfg.Prefix)
	}
	if cfg.PreviewBytes != 1000*1000 {
		t.Errorf("expected preview bytes 1MB, got %d", cfg.PreviewBytes)
	}
	if !cfg.Full || !cfg.Anonymous {
		t.Error("expected full and anonymous from env")
	}
	if cfg.DataDir != "/tmp/data" {
		t.Errorf("expected data dir from env, got %s", cfg.DataDir)
	}
	if cfg.HTTP.Timeout != 10*time.Second {
		t.Errorf("expected http timeout 10s, got %v", cfg.HTTP.Timeout)
	}
	if cfg.Manifest != DefaultManifest {
		t.Errorf("expected manifest default preserved, got %s", cfg.Manifest)
	}
}

func TestLoadFromEnvInvalid(t *testing.T) {
	t.Setenv("QDFETCH_HTTP_TIMEOUT", "soon")

	cfg := Default()
	if err := cfg.LoadFromEnv(); err == nil {
		t.Error("expected error for invalid duration")
	}
}

func TestValidate(t *testing.T) {
	valid := Default()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid config", func(c *Config) {}, false},
		{"missing bucket", func(c *Config) { c.Bucket = "" }, true},
		{"missing root", func(c *Config) { c.Root = "" }, true},
		{"non-http root", func(c *Config) { c.Root = "gs://quickdraw_dataset/full/raw" }, true},
		{"zero preview bytes", func(c *Config) { c.PreviewBytes = 0 }, true},
		{"missing data dir", func(c *Config) { c.DataDir = "" }, true},
		{"missing manifest", func(c *Config) { c.Manifest = "" }, true},
		{"negative timeout", func(c *Config) { c.HTTP.Timeout = -time.Second }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestMerge(t *testing.T) {
	base := Default()
	base.DataDir = "custom"

	override := Config{
		PreviewBytes: 5000,
		Full:         true,
	}

	merged := base.Merge(override)

	if merged.DataDir != "custom" {
		t.Errorf("expected DataDir preserved, got %s", merged.DataDir)
	}
	if merged.Bucket != DefaultBucket {
		t.Errorf("expected Bucket preserved, got %s", merged.Bucket)
	}
	if merged.PreviewBytes != 5000 {
		t.Errorf("expected PreviewBytes overridden to 5000, got %d", merged.PreviewBytes)
	}
	if !merged.Full {
		t.Error("expected Full overridden to true")
	}
}

func TestLoadYAMLFileNotFound(t *testing.T) {
	_, err := LoadFromFile("/nonexistent/path/config.yaml")
	if err == nil {
		t.Error("expected error for nonexistent file")
	}
}

func TestLoadYAMLInvalid(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte("invalid: [yaml: content"), 0644); err != nil {
		t.Fatalf("write config file: %v", err)
	}

	_, err := LoadFromFile(configPath)
	if err == nil {
		t.Error("expected error for invalid YAML")
	}
}

func TestSetupLoggerStderrOnly(t *testing.T) {
	var stderr bytes.Buffer
	logger, cleanup := SetupLogger(&stderr, "", LogLevel(false))
	defer cleanup()

	logger.Debug("hidden")
	logger.Info("Found 3 labels.")

	out := stderr.String()
	if strings.Contains(out, "hidden") {
		t.Error("debug message should be filtered at info level")
	}
	if !strings.Contains(out, "Found 3 labels.") {
		t.Errorf("expected info message, got %q", out)
	}
}

func TestSetupLoggerWithFile(t *testing.T) {
	var stderr bytes.Buffer
	logFile := filepath.Join(t.TempDir(), "qdfetch.log")

	logger, cleanup := SetupLogger(&stderr, logFile, LogLevel(true))
	logger.Debug("received range", "label", "cat")
	if err := cleanup(); err != nil {
		t.Fatalf("cleanup: %v", err)
	}

	if !strings.Contains(stderr.String(), "received range") {
		t.Errorf("expected text output on stderr, got %q", stderr.String())
	}

	data, err := os.ReadFile(logFile)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	var entry map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(data), &entry); err != nil {
		t.Fatalf("expected JSON log line, got %q: %v", data, err)
	}
	if entry["msg"] != "received range" || entry["label"] != "cat" || entry["level"] != slog.LevelDebug.String() {
		t.Errorf("unexpected log entry %v", entry)
	}
}
