// Package config loads and validates alphawork configuration from a yaml
// file, with environment overrides, via viper.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/alphawork/alphawork/internal/log"
)

// Config holds all configuration options for the server.
type Config struct {
	LogLevel string         `mapstructure:"log_level" yaml:"log_level"`
	Server   ServerConfig   `mapstructure:"server" yaml:"server"`
	Database DatabaseConfig `mapstructure:"database" yaml:"database"`
	Audit    AuditConfig    `mapstructure:"audit" yaml:"audit"`
	Tracing  TracingConfig  `mapstructure:"tracing" yaml:"tracing"`
}

// ServerConfig holds HTTP listener options.
type ServerConfig struct {
	Addr            string        `mapstructure:"addr" yaml:"addr"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" yaml:"shutdown_timeout"`
}

// DatabaseConfig holds entity-store options.
type DatabaseConfig struct {
	Path string `mapstructure:"path" yaml:"path"`
}

// AuditConfig holds audit recorder options.
type AuditConfig struct {
	// SnapshotMaxBytes bounds serialized before/after snapshots; longer
	// snapshots are truncated with a visible marker.
	SnapshotMaxBytes int `mapstructure:"snapshot_max_bytes" yaml:"snapshot_max_bytes"`
}

// TracingConfig holds OpenTelemetry exporter options.
type TracingConfig struct {
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`
	// OTLPEndpoint, when set, exports spans over OTLP/gRPC; otherwise the
	// stdout exporter is used.
	OTLPEndpoint string `mapstructure:"otlp_endpoint" yaml:"otlp_endpoint"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		LogLevel: "info",
		Server: ServerConfig{
			Addr:            ":8080",
			ShutdownTimeout: 10 * time.Second,
		},
		Database: DatabaseConfig{
			Path: defaultDBPath(),
		},
		Audit: AuditConfig{
			SnapshotMaxBytes: 2000,
		},
		Tracing: TracingConfig{},
	}
}

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "alphawork.db"
	}
	return filepath.Join(home, ".alphawork", "alphawork.db")
}

// Load reads configuration from path (optional) and the environment.
// Environment variables use the ALPHAWORK_ prefix with underscores, e.g.
// ALPHAWORK_SERVER_ADDR.
func Load(path string) (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("ALPHAWORK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	def := Default()
	v.SetDefault("log_level", def.LogLevel)
	v.SetDefault("server.addr", def.Server.Addr)
	v.SetDefault("server.shutdown_timeout", def.Server.ShutdownTimeout)
	v.SetDefault("database.path", def.Database.Path)
	v.SetDefault("audit.snapshot_max_bytes", def.Audit.SnapshotMaxBytes)
	v.SetDefault("tracing.enabled", def.Tracing.Enabled)
	v.SetDefault("tracing.otlp_endpoint", def.Tracing.OTLPEndpoint)
}

// Validate checks configuration for errors.
func (c Config) Validate() error {
	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr is required")
	}
	if c.Database.Path == "" {
		return fmt.Errorf("database.path is required")
	}
	if c.Audit.SnapshotMaxBytes <= 0 {
		return fmt.Errorf("audit.snapshot_max_bytes must be positive")
	}
	return nil
}

// Watch reloads configuration whenever the file at path changes and calls
// onChange with the new value. Invalid edits are logged and skipped.
func Watch(path string, onChange func(Config)) error {
	v := viper.New()
	setDefaults(v)
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}

	v.OnConfigChange(func(e fsnotify.Event) {
		log.Info(log.CatConfig, "Config file changed", "path", e.Name, "op", e.Op.String())
		cfg, err := Load(path)
		if err != nil {
			log.ErrorErr(log.CatConfig, "Ignoring invalid config change", err, "path", path)
			return
		}
		onChange(cfg)
	})
	v.WatchConfig()
	return nil
}

// WriteDefault renders the default configuration as yaml to path. It
// refuses to overwrite an existing file.
func WriteDefault(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists: %s", path)
	}
	data, err := yaml.Marshal(Default())
	if err != nil {
		return fmt.Errorf("marshal default config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	return os.WriteFile(path, data, 0600)
}
