// Package config loads grocer settings with Viper.
//
// Precedence, highest first: environment (GROCER_ prefix, dots become
// underscores, e.g. GROCER_STORAGE_PATH), config file, defaults.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Storage drivers.
const (
	DriverSQLite = "sqlite"
	DriverMemory = "memory"
)

// Config keys.
const (
	KeyServerAddress = "server.address"
	KeyStorageDriver = "storage.driver"
	KeyStoragePath   = "storage.path"
	KeyLogLevel      = "log.level"
	KeyLogFormat     = "log.format"
)

const envPrefix = "GROCER"

// Config is the resolved runtime configuration.
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Storage StorageConfig `mapstructure:"storage"`
	Log     LogConfig     `mapstructure:"log"`
}

type ServerConfig struct {
	Address string `mapstructure:"address"`
}

type StorageConfig struct {
	Driver string `mapstructure:"driver"`
	Path   string `mapstructure:"path"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// New returns a Viper instance with grocer defaults and environment binding.
func New() *viper.Viper {
	v := viper.New()
	v.SetDefault(KeyServerAddress, ":8080")
	v.SetDefault(KeyStorageDriver, DriverSQLite)
	v.SetDefault(KeyStoragePath, "./data/grocer.db")
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFormat, "text")

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads configFile (if non-empty) into v and decodes the result.
// Without an explicit file, a grocer.yaml in the working directory is used
// when present; a missing file is not an error.
func Load(v *viper.Viper, configFile string) (*Config, error) {
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("grocer")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the settings that have a closed set of values.
func (c *Config) Validate() error {
	switch c.Storage.Driver {
	case DriverSQLite:
		if c.Storage.Path == "" {
			return errors.New("storage.path is required for the sqlite driver")
		}
	case DriverMemory:
	default:
		return fmt.Errorf("unknown storage driver %q", c.Storage.Driver)
	}
	if c.Server.Address == "" {
		return errors.New("server.address is required")
	}
	return nil
}
