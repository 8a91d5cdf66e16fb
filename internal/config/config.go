// Package config loads refgraph CLI and server configuration from TOML.
//
// Configuration selects and parameterizes the snapshot store backend:
//
//	[store]
//	backend = "redis"
//
//	[store.redis]
//	addr = "localhost:6379"
//	db = 1
//	ttl_seconds = 3600
//
// Everything has a working default: with no config file the CLI uses a file
// store in the user's data directory.
package config

import (
	"context"
	"fmt"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/refgraph/refgraph/pkg/errors"
	"github.com/refgraph/refgraph/pkg/store"
)

// Config is the top-level configuration document.
type Config struct {
	Store StoreConfig `toml:"store"`
}

// StoreConfig selects the snapshot store backend and its parameters.
type StoreConfig struct {
	Backend string      `toml:"backend"`
	File    FileConfig  `toml:"file"`
	Redis   RedisConfig `toml:"redis"`
	Mongo   MongoConfig `toml:"mongo"`
}

// FileConfig parameterizes the file backend.
type FileConfig struct {
	Dir string `toml:"dir"` // empty means the per-user default directory
}

// RedisConfig parameterizes the redis backend.
type RedisConfig struct {
	Addr       string `toml:"addr"`
	Password   string `toml:"password"`
	DB         int    `toml:"db"`
	Prefix     string `toml:"prefix"`
	TTLSeconds int    `toml:"ttl_seconds"` // 0 means snapshots never expire
}

// MongoConfig parameterizes the mongo backend.
type MongoConfig struct {
	URI        string `toml:"uri"`
	Database   string `toml:"database"`
	Collection string `toml:"collection"`
}

// Default returns the configuration used when no config file is given:
// a file store in the per-user default directory.
func Default() Config {
	return Config{Store: StoreConfig{Backend: store.BackendFile}}
}

// Load reads and validates a TOML configuration file.
func Load(path string) (Config, error) {
	cfg := Default()
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "load %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks that the selected backend is known and has the parameters
// it cannot run without.
func (c Config) Validate() error {
	switch c.Store.Backend {
	case store.BackendFile, store.BackendNull:
		return nil
	case store.BackendRedis:
		if c.Store.Redis.Addr == "" {
			return errors.New(errors.ErrCodeInvalidConfig, "redis backend needs store.redis.addr")
		}
		return nil
	case store.BackendMongo:
		if c.Store.Mongo.URI == "" {
			return errors.New(errors.ErrCodeInvalidConfig, "mongo backend needs store.mongo.uri")
		}
		return nil
	}
	return errors.New(errors.ErrCodeInvalidConfig,
		"unknown store backend %q: use file, redis, mongo, or null", c.Store.Backend)
}

// OpenStore creates the snapshot store selected by the configuration.
// The caller owns the returned store and must Close it.
func OpenStore(ctx context.Context, cfg StoreConfig) (store.Store, error) {
	switch cfg.Backend {
	case store.BackendFile:
		return store.NewFileStore(cfg.File.Dir)
	case store.BackendNull:
		return store.NewNullStore(), nil
	case store.BackendRedis:
		return store.NewRedisStore(ctx, store.RedisConfig{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			Prefix:   cfg.Redis.Prefix,
			TTL:      time.Duration(cfg.Redis.TTLSeconds) * time.Second,
		})
	case store.BackendMongo:
		return store.NewMongoStore(ctx, store.MongoConfig{
			URI:        cfg.Mongo.URI,
			Database:   cfg.Mongo.Database,
			Collection: cfg.Mongo.Collection,
		})
	}
	return nil, errors.New(errors.ErrCodeInvalidConfig, "unknown store backend %q", cfg.Backend)
}
