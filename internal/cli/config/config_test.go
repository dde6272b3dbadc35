package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	tmpDir := t.TempDir()
	oldWd, _ := os.Getwd()
	os.Chdir(tmpDir)
	defer os.Chdir(oldWd)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("expected no error loading defaults, got %v", err)
	}

	if cfg.Model.File != "model.yaml" {
		t.Errorf("expected default model file 'model.yaml', got %s", cfg.Model.File)
	}
	if cfg.Server.Port != 8089 {
		t.Errorf("expected default port 8089, got %d", cfg.Server.Port)
	}
	if cfg.Server.Addr() != "localhost:8089" {
		t.Errorf("expected addr localhost:8089, got %s", cfg.Server.Addr())
	}
	if cfg.Log.Level != "info" {
		t.Errorf("expected default log level 'info', got %s", cfg.Log.Level)
	}
	if cfg.Output.Format != "text" {
		t.Errorf("expected default format 'text', got %s", cfg.Output.Format)
	}
	if cfg.Server.Cache.Backend != "memory" || cfg.Server.Cache.TTL != time.Minute {
		t.Errorf("unexpected cache defaults: %+v", cfg.Server.Cache)
	}
	if cfg.Server.ReadTimeout != 15*time.Second {
		t.Errorf("expected read timeout 15s, got %s", cfg.Server.ReadTimeout)
	}
}

func TestLoadWithConfigFile(t *testing.T) {
	tmpDir := t.TempDir()
	oldWd, _ := os.Getwd()
	os.Chdir(tmpDir)
	defer os.Chdir(oldWd)

	configContent := `
model:
  file: defs/library.yaml
  name: lib
log:
  level: debug
  development: true
server:
  port: 9090
  watch: true
  cache:
    backend: redis
    redis_url: redis://localhost:6379/0
    ttl: 30s
  auth:
    secret: s3cret
output:
  format: json
`
	if err := os.WriteFile("metamodel.yml", []byte(configContent), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if cfg.Model.File != "defs/library.yaml" || cfg.Model.Name != "lib" {
		t.Errorf("unexpected model config: %+v", cfg.Model)
	}
	if cfg.Log.Level != "debug" || !cfg.Log.Development {
		t.Errorf("unexpected log config: %+v", cfg.Log)
	}
	if cfg.Server.Port != 9090 || !cfg.Server.Watch {
		t.Errorf("unexpected server config: %+v", cfg.Server)
	}
	if cfg.Server.Cache.Backend != "redis" || cfg.Server.Cache.TTL != 30*time.Second {
		t.Errorf("unexpected cache config: %+v", cfg.Server.Cache)
	}
	if cfg.Server.Auth.Secret != "s3cret" || cfg.Server.Auth.Issuer != "metamodel" {
		t.Errorf("unexpected auth config: %+v", cfg.Server.Auth)
	}
	if cfg.Output.Format != "json" {
		t.Errorf("expected format 'json', got %s", cfg.Output.Format)
	}
}

func TestLoadExplicitFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	if err := os.WriteFile(path, []byte("server:\n  host: 0.0.0.0\n"), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("expected host 0.0.0.0, got %s", cfg.Server.Host)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing explicit config file")
	}
}

func TestLoadEnvironmentOverride(t *testing.T) {
	tmpDir := t.TempDir()
	oldWd, _ := os.Getwd()
	os.Chdir(tmpDir)
	defer os.Chdir(oldWd)

	t.Setenv("METAMODEL_SERVER_PORT", "7000")
	t.Setenv("METAMODEL_MODEL_FILE", "env.yaml")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cfg.Server.Port != 7000 {
		t.Errorf("expected port 7000 from env, got %d", cfg.Server.Port)
	}
	if cfg.Model.File != "env.yaml" {
		t.Errorf("expected model file from env, got %s", cfg.Model.File)
	}
}

func TestValidateConfig(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Log:    LogConfig{Level: "info"},
			Server: ServerConfig{Port: 8089, Cache: CacheConfig{Backend: "memory"}},
			Output: OutputConfig{Format: "text"},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(*Config) {}, false},
		{"port zero", func(c *Config) { c.Server.Port = 0 }, true},
		{"port too large", func(c *Config) { c.Server.Port = 70000 }, true},
		{"bad format", func(c *Config) { c.Output.Format = "yaml" }, true},
		{"bad level", func(c *Config) { c.Log.Level = "loud" }, true},
		{"bad backend", func(c *Config) { c.Server.Cache.Backend = "disk" }, true},
		{"redis without url", func(c *Config) { c.Server.Cache.Backend = "redis" }, true},
		{"redis with url", func(c *Config) {
			c.Server.Cache.Backend = "redis"
			c.Server.Cache.RedisURL = "redis://localhost:6379"
		}, false},
		{"no cache", func(c *Config) { c.Server.Cache.Backend = "none" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := validateConfig(cfg)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateConfig() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
