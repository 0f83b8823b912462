// Package config loads the bimapper CLI configuration.
//
// Values come from a YAML file, then BIMAPPER_* environment variables (a .env
// file in the working directory is loaded first), and unset fields are filled
// from Default.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"dario.cat/mergo"
	"github.com/joho/godotenv"
	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"

	"bimapper/accessor"
	"bimapper/mapper"
	"bimapper/meta"
	"bimapper/primitive"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "BIMAPPER_"

var ErrInvalid = errors.New("invalid configuration")

type Config struct {
	CacheCapacity int      `yaml:"cache_capacity"`
	LogLevel      string   `yaml:"log_level"`
	Coercions     []string `yaml:"coercions"`
	ScalarPolicy  string   `yaml:"scalar_policy"`
	Declarations  string   `yaml:"declarations"`
}

// Default returns the configuration used for everything left unset. An empty
// coercion list counts as unset; use "none" to disable coercion.
func Default() Config {
	return Config{
		CacheCapacity: meta.DefaultCacheCapacity,
		LogLevel:      "info",
		Coercions:     []string{"default"},
		ScalarPolicy:  mapper.ScalarStrict.String(),
	}
}

// Load reads path, applies environment overrides and fills defaults. An
// empty path skips the file.
func Load(path string) (*Config, error) {
	var cfg Config

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}

		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}

	if err := mergo.Merge(&cfg, Default()); err != nil {
		return nil, fmt.Errorf("failed to apply defaults: %w", err)
	}

	return &cfg, nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvPrefix + "CACHE_CAPACITY"); ok {
		n, err := cast.ToIntE(v)
		if err != nil {
			return fmt.Errorf("%w: %sCACHE_CAPACITY: %w", ErrInvalid, EnvPrefix, err)
		}

		c.CacheCapacity = n
	}

	if v, ok := lookup(EnvPrefix + "LOG_LEVEL"); ok {
		c.LogLevel = v
	}

	if v, ok := lookup(EnvPrefix + "COERCIONS"); ok {
		c.Coercions = strings.Split(v, ",")
	}

	if v, ok := lookup(EnvPrefix + "SCALAR_POLICY"); ok {
		c.ScalarPolicy = v
	}

	if v, ok := lookup(EnvPrefix + "DECLARATIONS"); ok {
		c.Declarations = v
	}

	return nil
}

// MapperOptions turns the configuration into mapper options.
func (c *Config) MapperOptions() ([]mapper.Option, error) {
	cats, ok := primitive.ParseCategories(c.Coercions)
	if !ok {
		return nil, fmt.Errorf("%w: unknown coercion in %v", ErrInvalid, c.Coercions)
	}

	policy, err := mapper.ParseScalarPolicy(c.ScalarPolicy)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalid, err)
	}

	if c.CacheCapacity < 1 {
		return nil, fmt.Errorf("%w: cache_capacity must be positive, got %d", ErrInvalid, c.CacheCapacity)
	}

	return []mapper.Option{
		mapper.WithCacheCapacity(c.CacheCapacity),
		mapper.WithAccessor(accessor.New(cats)),
		mapper.WithScalarPolicy(policy),
	}, nil
}
