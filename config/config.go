// Package config loads tool configuration from environment variables.
package config

import (
	"strings"

	jlconfig "github.com/JeremyLoy/config"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"

	"pkg.world.dev/world-engine/entitystore/log"
)

const (
	DefaultRedisAddress      = "localhost:6379"
	DefaultSnapshotNamespace = "entitystore"
	DefaultLogLevel          = "info"
)

type Config struct {
	RedisAddress      string `config:"REDIS_ADDRESS"`
	RedisPassword     string `config:"REDIS_PASSWORD"`
	SnapshotNamespace string `config:"SNAPSHOT_NAMESPACE"`
	LogLevel          string `config:"LOG_LEVEL"`
	LogPretty         bool   `config:"LOG_PRETTY"`
	// StatsdAddress is empty when metrics are disabled.
	StatsdAddress string `config:"STATSD_ADDRESS"`
	// StatsdTags is a comma separated list such as "env:dev,region:eu".
	StatsdTags string `config:"STATSD_TAGS"`
}

func Default() Config {
	return Config{
		RedisAddress:      DefaultRedisAddress,
		SnapshotNamespace: DefaultSnapshotNamespace,
		LogLevel:          DefaultLogLevel,
	}
}

// Load reads the environment over the defaults and validates the result.
func Load() (Config, error) {
	cfg := Default()
	if err := jlconfig.FromEnv().To(&cfg); err != nil {
		return Config{}, eris.Wrap(err, "loading config from environment")
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.RedisAddress == "" {
		return eris.Wrap(ErrInvalidConfig, "REDIS_ADDRESS must not be empty")
	}
	if c.SnapshotNamespace == "" || strings.Contains(c.SnapshotNamespace, ":") {
		return eris.Wrapf(ErrInvalidConfig, "SNAPSHOT_NAMESPACE %q must be non-empty and must not contain ':'",
			c.SnapshotNamespace)
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return eris.Wrapf(ErrInvalidConfig, "LOG_LEVEL: %v", err)
	}
	return nil
}

func (c Config) Level() zerolog.Level {
	level, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return zerolog.InfoLevel
	}
	return level
}

// Tags splits StatsdTags, dropping empty entries.
func (c Config) Tags() []string {
	var tags []string
	for _, tag := range strings.Split(c.StatsdTags, ",") {
		if tag = strings.TrimSpace(tag); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}
