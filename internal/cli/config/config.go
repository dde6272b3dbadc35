package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"
)

// Config represents the metamodel tool configuration
type Config struct {
	Model  ModelConfig  `mapstructure:"model"`
	Log    LogConfig    `mapstructure:"log"`
	Server ServerConfig `mapstructure:"server"`
	Output OutputConfig `mapstructure:"output"`
}

// ModelConfig locates the model definition
type ModelConfig struct {
	File string `mapstructure:"file"`
	Name string `mapstructure:"name"`
}

// LogConfig represents logging configuration
type LogConfig struct {
	Level       string `mapstructure:"level"`
	Development bool   `mapstructure:"development"`
}

// ServerConfig represents introspection server configuration
type ServerConfig struct {
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Watch        bool          `mapstructure:"watch"`
	Cache        CacheConfig   `mapstructure:"cache"`
	Auth         AuthConfig    `mapstructure:"auth"`
}

// CacheConfig selects the response cache backend
type CacheConfig struct {
	Backend  string        `mapstructure:"backend"`
	TTL      time.Duration `mapstructure:"ttl"`
	RedisURL string        `mapstructure:"redis_url"`
}

// AuthConfig enables bearer token authentication when Secret is set
type AuthConfig struct {
	Secret string `mapstructure:"secret"`
	Issuer string `mapstructure:"issuer"`
}

// OutputConfig represents CLI output configuration
type OutputConfig struct {
	Format  string `mapstructure:"format"`
	NoColor bool   `mapstructure:"no_color"`
}

// Addr returns the server listen address
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// Load loads the configuration. An empty configFile searches for
// metamodel.yml or metamodel.yaml in the working directory; a missing file
// leaves the defaults in place. METAMODEL_* environment variables override
// file values, with "." in keys replaced by "_".
func Load(configFile string) (*Config, error) {
	v := viper.New()

	v.SetDefault("model.file", "model.yaml")
	v.SetDefault("model.name", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.development", false)
	v.SetDefault("server.host", "localhost")
	v.SetDefault("server.port", 8089)
	v.SetDefault("server.read_timeout", 15*time.Second)
	v.SetDefault("server.write_timeout", 15*time.Second)
	v.SetDefault("server.watch", false)
	v.SetDefault("server.cache.backend", "memory")
	v.SetDefault("server.cache.ttl", time.Minute)
	v.SetDefault("server.cache.redis_url", "")
	v.SetDefault("server.auth.secret", "")
	v.SetDefault("server.auth.issuer", "metamodel")
	v.SetDefault("output.format", "text")
	v.SetDefault("output.no_color", false)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("metamodel")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("METAMODEL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// validateConfig validates the configuration
func validateConfig(cfg *Config) error {
	if cfg.Server.Port < 1 || cfg.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535, got: %d", cfg.Server.Port)
	}
	switch cfg.Output.Format {
	case "text", "json":
	default:
		return fmt.Errorf("output.format must be 'text' or 'json', got: %s", cfg.Output.Format)
	}
	if _, err := zapcore.ParseLevel(cfg.Log.Level); err != nil {
		return fmt.Errorf("log.level is invalid: %w", err)
	}
	switch cfg.Server.Cache.Backend {
	case "none", "memory":
	case "redis":
		if cfg.Server.Cache.RedisURL == "" {
			return fmt.Errorf("server.cache.redis_url is required for the redis backend")
		}
	default:
		return fmt.Errorf("server.cache.backend must be 'none', 'memory' or 'redis', got: %s", cfg.Server.Cache.Backend)
	}
	return nil
}
