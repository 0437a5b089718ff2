// Package config loads boggled settings using Viper: defaults, an optional
// YAML file (.boggle.yml), BOGGLE_ environment variables and command-line
// flags, in increasing order of precedence.
package config

import (
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// EnvPrefix is the prefix of environment overrides, e.g. BOGGLE_SERVER_PORT.
const EnvPrefix = "BOGGLE"

type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Dictionary DictionaryConfig `mapstructure:"dictionary"`
	Log        LogConfig        `mapstructure:"log"`
}

type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	MaxRequestBytes int           `mapstructure:"max_request_bytes"`
}

// Addr returns host:port.
func (s ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

type DictionaryConfig struct {
	// Path is the word list, one lowercase word per line.
	Path string `mapstructure:"path"`

	// Snapshot, when set, is a compiled trie that is loaded instead of
	// building from Path.
	Snapshot string `mapstructure:"snapshot"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // "json" or "console"
}

// SetDefaults registers the default value of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "127.0.0.1")
	v.SetDefault("server.port", 8000)
	v.SetDefault("server.read_timeout", 5*time.Second)
	v.SetDefault("server.max_request_bytes", 8<<10)
	v.SetDefault("dictionary.path", "word-list.txt")
	v.SetDefault("dictionary.snapshot", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
}

// Init points v at its sources. An explicit file wins over the default
// .boggle.yml in the working directory.
func Init(v *viper.Viper, file string) {
	SetDefaults(v)

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.AddConfigPath(".")
		v.SetConfigType("yaml")
		v.SetConfigName(".boggle")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

// Read loads the config file if there is one. A missing default file is
// not an error; a missing explicit file is.
func Read(v *viper.Viper) error {
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}
	return nil
}

// Load decodes and validates the configuration held by v.
func Load(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks every section.
func (c *Config) Validate() error {
	if err := validateServerConfig(&c.Server); err != nil {
		return fmt.Errorf("server config: %w", err)
	}
	if err := validateDictionaryConfig(&c.Dictionary); err != nil {
		return fmt.Errorf("dictionary config: %w", err)
	}
	if err := validateLogConfig(&c.Log); err != nil {
		return fmt.Errorf("log config: %w", err)
	}
	return nil
}

func validateServerConfig(config *ServerConfig) error {
	// 0 lets the system pick a port
	if config.Port < 0 || config.Port > 65535 {
		return fmt.Errorf("port %d is not in valid range 0-65535", config.Port)
	}
	if strings.ContainsAny(config.Host, " \t\r\n/") {
		return fmt.Errorf("host %q is not a host name or address", config.Host)
	}
	if config.ReadTimeout <= 0 {
		return fmt.Errorf("read_timeout must be positive, got %s", config.ReadTimeout)
	}
	if config.MaxRequestBytes < 64 {
		return fmt.Errorf("max_request_bytes must be at least 64, got %d", config.MaxRequestBytes)
	}
	return nil
}

func validateDictionaryConfig(config *DictionaryConfig) error {
	if config.Path == "" && config.Snapshot == "" {
		return fmt.Errorf("one of path or snapshot is required")
	}
	return nil
}

func validateLogConfig(config *LogConfig) error {
	if _, err := zapcore.ParseLevel(config.Level); err != nil {
		return err
	}
	switch config.Format {
	case "json", "console":
		return nil
	default:
		return fmt.Errorf("unknown format %q, want json or console", config.Format)
	}
}

// NewLogger builds the logger described by c.
func (c LogConfig) NewLogger() (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(c.Level)
	if err != nil {
		return nil, err
	}

	zc := zap.NewProductionConfig()
	if c.Format == "console" {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	return zc.Build()
}
