// Package config loads the service configuration from an optional YAML
// file, a .env file and the process environment, in increasing order of
// precedence.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

const (
	EnvDatabaseURL   = "STATICNET_DATABASE_URL"
	EnvListenAddress = "STATICNET_LISTEN_ADDRESS"
	EnvCacheTTL      = "STATICNET_CACHE_TTL"
	EnvAutoMigrate   = "STATICNET_AUTO_MIGRATE"
)

type Config struct {
	DatabaseURL   string        `yaml:"database_url"`
	ListenAddress string        `yaml:"listen_address"`
	CacheTTL      time.Duration `yaml:"cache_ttl"`
	AutoMigrate   bool          `yaml:"auto_migrate"`
	Debug         bool          `yaml:"debug"`
}

func Default() Config {
	return Config{
		ListenAddress: ":8080",
		CacheTTL:      5 * time.Minute,
	}
}

// Load builds the configuration. path may be empty, in which case only the
// defaults and the environment are used. envFiles must exist; the implicit
// .env in the working directory is optional. Variables already set win over
// both, and envFiles win over .env.
func Load(path string, envFiles ...string) (Config, error) {
	cfg := Default()

	if len(envFiles) > 0 {
		if err := godotenv.Load(envFiles...); err != nil {
			return cfg, errors.Wrap(err, "could not load env file")
		}
	}
	if err := godotenv.Load(); err != nil && !os.IsNotExist(errors.Cause(err)) {
		return cfg, errors.Wrap(err, "could not load .env file")
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, errors.Wrapf(err, "could not read configuration file %s", path)
		}
		if err := yaml.UnmarshalStrict(data, &cfg); err != nil {
			return cfg, errors.Wrapf(err, "could not parse configuration file %s", path)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

func (c *Config) applyEnv() error {
	if v, ok := os.LookupEnv(EnvDatabaseURL); ok {
		c.DatabaseURL = v
	}
	if v, ok := os.LookupEnv(EnvListenAddress); ok {
		c.ListenAddress = v
	}
	if v, ok := os.LookupEnv(EnvCacheTTL); ok {
		ttl, err := time.ParseDuration(v)
		if err != nil {
			return errors.Wrapf(err, "invalid %s", EnvCacheTTL)
		}
		c.CacheTTL = ttl
	}
	if v, ok := os.LookupEnv(EnvAutoMigrate); ok {
		migrate, err := strconv.ParseBool(v)
		if err != nil {
			return errors.Wrapf(err, "invalid %s", EnvAutoMigrate)
		}
		c.AutoMigrate = migrate
	}
	return nil
}

func (c Config) Validate() error {
	if c.DatabaseURL == "" {
		return errors.Errorf("database_url is required (or set %s)", EnvDatabaseURL)
	}
	if c.ListenAddress == "" {
		return errors.New("listen_address is required")
	}
	if c.CacheTTL <= 0 {
		return errors.New("cache_ttl must be positive")
	}
	return nil
}
