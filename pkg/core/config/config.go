package config

import (
	"fmt"
	"net"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	mdwerror "github.com/msto63/sfl/foundation/core/error"
	mdwlog "github.com/msto63/sfl/foundation/core/log"
	"github.com/msto63/sfl/foundation/sfl/lexer"
)

// EnvConfigPath names the environment variable holding the config path
const EnvConfigPath = "SFL_CONFIG"

// Config holds the complete application configuration
type Config struct {
	General GeneralConfig `toml:"general" yaml:"general"`
	Checker CheckerConfig `toml:"checker" yaml:"checker"`
	Server  ServerConfig  `toml:"server" yaml:"server"`
	Batch   BatchConfig   `toml:"batch" yaml:"batch"`
	Watch   WatchConfig   `toml:"watch" yaml:"watch"`
}

// GeneralConfig holds general application settings
type GeneralConfig struct {
	Name      string `toml:"name" yaml:"name"`
	LogLevel  string `toml:"log_level" yaml:"log_level"`
	LogFormat string `toml:"log_format" yaml:"log_format"`
}

// CheckerConfig holds engine settings
type CheckerConfig struct {
	LexerMode      string `toml:"lexer_mode" yaml:"lexer_mode"`
	MaxSourceBytes int    `toml:"max_source_bytes" yaml:"max_source_bytes"`
}

// ServerConfig holds gRPC check service settings
type ServerConfig struct {
	Host             string   `toml:"host" yaml:"host"`
	Port             int      `toml:"port" yaml:"port"`
	EnableReflection bool     `toml:"enable_reflection" yaml:"enable_reflection"`
	ShutdownTimeout  Duration `toml:"shutdown_timeout" yaml:"shutdown_timeout"`

	// CacheSize bounds the verdict cache; negative disables it
	CacheSize int      `toml:"cache_size" yaml:"cache_size"`
	CacheTTL  Duration `toml:"cache_ttl" yaml:"cache_ttl"`
}

// BatchConfig holds settings for checking many files at once
type BatchConfig struct {
	Workers int `toml:"workers" yaml:"workers"`
}

// WatchConfig holds file watcher settings
type WatchConfig struct {
	Debounce Duration `toml:"debounce" yaml:"debounce"`
}

// Duration wraps time.Duration for TOML and YAML parsing
type Duration struct {
	time.Duration
}

// UnmarshalText parses a duration string
func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

// MarshalText formats the duration as a string
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// UnmarshalYAML parses a duration scalar
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	return d.UnmarshalText([]byte(s))
}

// MarshalYAML formats the duration as a string
func (d Duration) MarshalYAML() (interface{}, error) {
	return d.Duration.String(), nil
}

// Default returns the configuration used when no file exists
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load loads configuration from a TOML or YAML file, chosen by extension
func Load(path string) (*Config, error) {
	// Expand environment variables in path
	path = os.ExpandEnv(path)

	content, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, mdwerror.New(fmt.Sprintf("config file not found: %s", path)).
			WithCode(mdwerror.CodeNotFound).
			WithOperation("config.Load").
			WithDetail("path", path)
	}
	if err != nil {
		return nil, mdwerror.Wrap(err, "failed to read config").
			WithCode(mdwerror.CodeConfigError).
			WithOperation("config.Load").
			WithDetail("path", path)
	}

	var cfg Config
	if err := decode(content, path, &cfg); err != nil {
		return nil, err
	}

	// Apply defaults
	cfg.applyDefaults()

	cfg.expandEnvVars()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// LoadFromEnv loads configuration from the SFL_CONFIG environment variable
// or the first default location that exists. Without any file it returns
// Default().
func LoadFromEnv() (*Config, error) {
	path := os.Getenv(EnvConfigPath)
	if path == "" {
		// Try default locations
		defaultPaths := []string{
			"./configs/sfl.toml",
			"./sfl.toml",
			"./sfl.yaml",
			filepath.Join(os.Getenv("HOME"), ".config/sfl/config.toml"),
		}
		for _, p := range defaultPaths {
			if _, err := os.Stat(p); err == nil {
				path = p
				break
			}
		}
	}

	if path == "" {
		return Default(), nil
	}

	return Load(path)
}

// Resolve loads path when it is set, otherwise falls back to LoadFromEnv
func Resolve(path string) (*Config, error) {
	if path != "" {
		return Load(path)
	}
	return LoadFromEnv()
}

// decode parses content according to the file extension of path
func decode(content []byte, path string, cfg *Config) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(content, cfg); err != nil {
			return mdwerror.Wrap(err, "YAML parse error").
				WithCode(mdwerror.CodeInvalidConfig).
				WithOperation("config.decode").
				WithDetail("path", path)
		}
	default:
		if err := toml.Unmarshal(content, cfg); err != nil {
			return mdwerror.Wrap(err, "TOML parse error").
				WithCode(mdwerror.CodeInvalidConfig).
				WithOperation("config.decode").
				WithDetail("path", path)
		}
	}
	return nil
}

// applyDefaults sets default values for missing configuration
func (c *Config) applyDefaults() {
	// General
	if c.General.Name == "" {
		c.General.Name = "sfl"
	}
	if c.General.LogLevel == "" {
		c.General.LogLevel = "warn"
	}
	if c.General.LogFormat == "" {
		c.General.LogFormat = "text"
	}

	// Checker
	if c.Checker.LexerMode == "" {
		c.Checker.LexerMode = lexer.ModeLegacy.String()
	}
	if c.Checker.MaxSourceBytes == 0 {
		c.Checker.MaxSourceBytes = 1 << 20
	}

	// Server
	if c.Server.Host == "" {
		c.Server.Host = "127.0.0.1"
	}
	if c.Server.Port == 0 {
		c.Server.Port = 9310
	}
	if c.Server.ShutdownTimeout.Duration == 0 {
		c.Server.ShutdownTimeout.Duration = 10 * time.Second
	}
	if c.Server.CacheSize == 0 {
		c.Server.CacheSize = 1024
	}
	if c.Server.CacheTTL.Duration == 0 {
		c.Server.CacheTTL.Duration = 10 * time.Minute
	}

	// Batch
	if c.Batch.Workers == 0 {
		c.Batch.Workers = runtime.NumCPU()
	}

	// Watch
	if c.Watch.Debounce.Duration == 0 {
		c.Watch.Debounce.Duration = 100 * time.Millisecond
	}
}

// expandEnvVars expands environment variables in configuration values
func (c *Config) expandEnvVars() {
	c.Server.Host = os.ExpandEnv(c.Server.Host)
}

// Validate reports the first invalid setting
func (c *Config) Validate() error {
	invalid := func(field string, value interface{}, reason string) error {
		return mdwerror.New(fmt.Sprintf("invalid %s: %s", field, reason)).
			WithCode(mdwerror.CodeInvalidConfig).
			WithOperation("config.Validate").
			WithDetail("field", field).
			WithDetail("value", value)
	}

	if _, err := mdwlog.ParseLevel(c.General.LogLevel); err != nil {
		return invalid("general.log_level", c.General.LogLevel, err.Error())
	}
	if _, err := mdwlog.ParseFormat(c.General.LogFormat); err != nil {
		return invalid("general.log_format", c.General.LogFormat, err.Error())
	}
	if _, err := lexer.ParseMode(c.Checker.LexerMode); err != nil {
		return invalid("checker.lexer_mode", c.Checker.LexerMode, err.Error())
	}
	if c.Checker.MaxSourceBytes < 0 {
		return invalid("checker.max_source_bytes", c.Checker.MaxSourceBytes, "must not be negative")
	}
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return invalid("server.port", c.Server.Port, "must be between 1 and 65535")
	}
	if c.Server.ShutdownTimeout.Duration < 0 {
		return invalid("server.shutdown_timeout", c.Server.ShutdownTimeout.String(), "must not be negative")
	}
	if c.Server.CacheTTL.Duration < 0 {
		return invalid("server.cache_ttl", c.Server.CacheTTL.String(), "must not be negative")
	}
	if c.Batch.Workers < 0 {
		return invalid("batch.workers", c.Batch.Workers, "must not be negative")
	}
	if c.Watch.Debounce.Duration < 0 {
		return invalid("watch.debounce", c.Watch.Debounce.String(), "must not be negative")
	}
	return nil
}

// LexerMode returns the parsed checker.lexer_mode
func (c *Config) LexerMode() lexer.Mode {
	mode, _ := lexer.ParseMode(c.Checker.LexerMode)
	return mode
}

// ServerAddress returns the host:port the check service listens on
func (c *Config) ServerAddress() string {
	return net.JoinHostPort(c.Server.Host, strconv.Itoa(c.Server.Port))
}
