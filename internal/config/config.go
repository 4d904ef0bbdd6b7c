// Package config loads the graphar CLI configuration file.
//
// The file is TOML and optional. It lives at
// $XDG_CONFIG_HOME/graphar/config.toml (~/.config/graphar/config.toml when
// XDG_CONFIG_HOME is unset) unless --config names another one:
//
//	[log]
//	level = "debug"
//
//	[storage]
//	root = "gs://my-bucket/archives"
//	redis_key_prefix = "graphar:"
//	mongo_database = "graphar"
//	mongo_collection = "files"
//
//	[cache]
//	dir = "/var/cache/graphar"
//	ttl = "1h"
//
//	[render]
//	format = "svg"
//	detailed = true
//
//	[server]
//	addr = ":8080"
//	read_timeout = "5s"
//
// Flags given on the command line override file values.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
	"github.com/go-playground/validator/v10"

	"github.com/matzehuels/graphar/pkg/storage"
)

const (
	appName  = "graphar"
	fileName = "config.toml"
)

// Config is the decoded configuration file.
type Config struct {
	Log     LogConfig     `toml:"log"`
	Storage StorageConfig `toml:"storage"`
	Cache   CacheConfig   `toml:"cache"`
	Render  RenderConfig  `toml:"render"`
	Server  ServerConfig  `toml:"server"`
}

// LogConfig configures the CLI logger.
type LogConfig struct {
	Level string `toml:"level" validate:"omitempty,oneof=debug info warn error"`
}

// StorageConfig configures how archives are opened.
type StorageConfig struct {
	// Root is a storage URI that archive-relative names resolve against.
	// Empty means the directory of the graph file on local disk.
	Root            string `toml:"root"`
	RedisKeyPrefix  string `toml:"redis_key_prefix"`
	MongoDatabase   string `toml:"mongo_database"`
	MongoCollection string `toml:"mongo_collection"`
}

// CacheConfig configures the count file cache used when walking chunks of
// remote archives.
type CacheConfig struct {
	// Dir holds cache entries. Empty means $XDG_CACHE_HOME/graphar.
	Dir string        `toml:"dir"`
	TTL time.Duration `toml:"ttl" validate:"gte=0"`
}

// RenderConfig holds defaults for the render command.
type RenderConfig struct {
	Format   string `toml:"format" validate:"omitempty,oneof=dot svg png"`
	Detailed bool   `toml:"detailed"`
}

// ServerConfig holds defaults for the serve command.
type ServerConfig struct {
	Addr        string        `toml:"addr" validate:"required"`
	ReadTimeout time.Duration `toml:"read_timeout" validate:"gte=0"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Log:    LogConfig{Level: "info"},
		Cache:  CacheConfig{TTL: time.Hour},
		Render: RenderConfig{Format: "svg"},
		Server: ServerConfig{Addr: ":8080", ReadTimeout: 10 * time.Second},
	}
}

// DefaultPath returns the config file location following the XDG standard.
func DefaultPath() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, appName, fileName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, fileName), nil
}

// Load reads the file at path over [Default]. An empty path loads the file
// at [DefaultPath] if there is one; an explicit path must exist.
func Load(path string) (Config, error) {
	cfg := Default()
	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return cfg, nil
		}
		path = p
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := cfg.decode(string(data)); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) decode(data string) error {
	md, err := toml.Decode(data, c)
	if err != nil {
		return err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		slices.Sort(keys)
		return fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))
	}
	return c.Validate()
}

var configValidator = validator.New()

// Validate checks value ranges.
func (c Config) Validate() error {
	if err := configValidator.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// LogLevel returns the configured level.
func (c Config) LogLevel() log.Level {
	level, err := log.ParseLevel(c.Log.Level)
	if err != nil {
		return log.InfoLevel
	}
	return level
}

// StorageOptions returns the backend options for storage.Open.
func (c Config) StorageOptions(logger *log.Logger) []storage.Option {
	opts := []storage.Option{storage.WithLogger(logger)}
	if c.Storage.RedisKeyPrefix != "" {
		opts = append(opts, storage.WithRedisKeyPrefix(c.Storage.RedisKeyPrefix))
	}
	if c.Storage.MongoDatabase != "" || c.Storage.MongoCollection != "" {
		opts = append(opts, storage.WithMongoCollection(c.Storage.MongoDatabase, c.Storage.MongoCollection))
	}
	return opts
}

// Encode renders c as TOML.
func (c Config) Encode() (string, error) {
	var b strings.Builder
	if err := toml.NewEncoder(&b).Encode(c); err != nil {
		return "", err
	}
	return b.String(), nil
}
