package config

import (
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/matzehuels/techradar/pkg/errors"
)

// ServerEnv holds deployment overrides read by `techradar serve`.
type ServerEnv struct {
	Addr           string        `env:"TECHRADAR_ADDR"`
	BaseURL        string        `env:"TECHRADAR_BASE_URL"`
	RedisAddr      string        `env:"TECHRADAR_REDIS_ADDR"`
	MongoURI       string        `env:"TECHRADAR_MONGO_URI"`
	StoreLocation  string        `env:"TECHRADAR_STORE"`
	DefaultDataset string        `env:"TECHRADAR_DEFAULT_DATASET"`
	ReadTimeout    time.Duration `env:"TECHRADAR_READ_TIMEOUT" envDefault:"10s"`
	WriteTimeout   time.Duration `env:"TECHRADAR_WRITE_TIMEOUT" envDefault:"60s"`
	ShutdownGrace  time.Duration `env:"TECHRADAR_SHUTDOWN_GRACE" envDefault:"10s"`
}

// ParseServerEnv loads ServerEnv from the process environment.
func ParseServerEnv() (ServerEnv, error) {
	var e ServerEnv
	if err := env.Parse(&e); err != nil {
		return ServerEnv{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse env")
	}
	return e, nil
}

// Apply overrides the settings in c with the non-empty values of e.
// A Mongo URI takes precedence over TECHRADAR_STORE; a Redis address
// switches the cache backend to redis.
func (e ServerEnv) Apply(c *Config) {
	if e.Addr != "" {
		c.Server.Addr = e.Addr
	}
	if e.BaseURL != "" {
		c.Server.BaseURL = e.BaseURL
	}
	if e.StoreLocation != "" {
		c.Store.Location = e.StoreLocation
	}
	if e.MongoURI != "" {
		c.Store.Location = e.MongoURI
	}
	if e.DefaultDataset != "" {
		c.Store.DefaultDataset = e.DefaultDataset
	}
	if e.RedisAddr != "" {
		c.Cache.Backend = CacheRedis
		c.Cache.RedisAddr = e.RedisAddr
	}
}
