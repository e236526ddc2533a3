// Package config loads server settings from defaults, an optional config file,
// an optional .env file and TUTORBOOK_* environment variables, in increasing
// order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/mmynk/tutorbook/internal/repository"
)

// EnvPrefix is prepended to every environment variable, e.g. TUTORBOOK_MONGO_URI.
const EnvPrefix = "TUTORBOOK"

// DevJWTSecret is the fallback signing key. Never use it in production.
const DevJWTSecret = "tutorbook-dev-secret-change-me"

// Store and cache backend names.
const (
	StoreMongo  = "mongo"
	StoreMemory = "memory"

	CacheSQLite = "sqlite"
	CacheRedis  = "redis"
	CacheNone   = "none"
)

// Config is the resolved server configuration.
type Config struct {
	HTTPPort   int
	StaticPath string

	StoreBackend  string
	MongoURI      string
	MongoDatabase string

	CacheBackend    string
	CacheSQLitePath string
	CacheRedisAddr  string
	SyncPolicy      repository.SyncPolicy

	JWTSecret string
	JWTTTL    time.Duration

	LogLevel  string
	LogFormat string

	FlatRate float64
}

// UsesDevSecret reports whether the JWT secret was left at its fallback.
func (c *Config) UsesDevSecret() bool {
	return c.JWTSecret == DevJWTSecret
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("http.port", 8080)
	v.SetDefault("static.path", "./web")
	v.SetDefault("store.backend", StoreMongo)
	v.SetDefault("mongo.uri", "mongodb://localhost:27017")
	v.SetDefault("mongo.database", "lesson-tracker")
	v.SetDefault("cache.backend", CacheSQLite)
	v.SetDefault("cache.sqlite_path", "./data/cache.db")
	v.SetDefault("cache.redis_addr", "localhost:6379")
	v.SetDefault("sync.policy", string(repository.PolicyRemoteFirst))
	v.SetDefault("jwt.secret", DevJWTSecret)
	v.SetDefault("jwt.ttl", 30*24*time.Hour)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("pricing.flat_rate", 5.0)
}

// Load resolves the configuration. configFile and dotEnv may be empty; a
// missing .env file is ignored.
func Load(configFile, dotEnv string) (*Config, error) {
	if dotEnv != "" {
		if _, err := os.Stat(dotEnv); err == nil {
			if err := godotenv.Load(dotEnv); err != nil {
				return nil, fmt.Errorf("failed to load %s: %w", dotEnv, err)
			}
		} else if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to stat %s: %w", dotEnv, err)
		}
	}

	v := viper.New()
	v.SetTypeByDefaultValue(true)
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	policy, err := repository.ParsePolicy(v.GetString("sync.policy"))
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		HTTPPort:        v.GetInt("http.port"),
		StaticPath:      v.GetString("static.path"),
		StoreBackend:    strings.ToLower(v.GetString("store.backend")),
		MongoURI:        v.GetString("mongo.uri"),
		MongoDatabase:   v.GetString("mongo.database"),
		CacheBackend:    strings.ToLower(v.GetString("cache.backend")),
		CacheSQLitePath: v.GetString("cache.sqlite_path"),
		CacheRedisAddr:  v.GetString("cache.redis_addr"),
		SyncPolicy:      policy,
		JWTSecret:       v.GetString("jwt.secret"),
		JWTTTL:          v.GetDuration("jwt.ttl"),
		LogLevel:        v.GetString("log.level"),
		LogFormat:       v.GetString("log.format"),
		FlatRate:        v.GetFloat64("pricing.flat_rate"),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.StoreBackend {
	case StoreMongo, StoreMemory:
	default:
		return fmt.Errorf("unknown store backend %q", c.StoreBackend)
	}
	switch c.CacheBackend {
	case CacheSQLite, CacheRedis, CacheNone:
	default:
		return fmt.Errorf("unknown cache backend %q", c.CacheBackend)
	}
	if c.HTTPPort <= 0 || c.HTTPPort > 65535 {
		return fmt.Errorf("invalid http port %d", c.HTTPPort)
	}
	if c.JWTSecret == "" {
		return errors.New("jwt secret must not be empty")
	}
	if c.FlatRate < 0 {
		return fmt.Errorf("invalid flat rate %v", c.FlatRate)
	}
	return nil
}
