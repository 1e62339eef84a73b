package config

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-yaml/yaml"
	"github.com/joho/godotenv"

	"github.com/ahashem12/LaunchpadX-sub001/internal/domain"
)

type Config struct {
	Site    domain.Config `yaml:"site"`
	Server  Server        `yaml:"server"`
	Auth    Auth          `yaml:"auth"`
	Logging Logging       `yaml:"logging"`
}

type Server struct {
	ListenAddr    string   `yaml:"listenAddr" env:"LPX_LISTEN_ADDR"`
	PostgresDsn   string   `yaml:"postgresDsn" env:"LPX_POSTGRES_DSN"`
	RedisAddr     string   `yaml:"redisAddr" env:"LPX_REDIS_ADDR"`
	RedisPassword string   `yaml:"redisPassword" env:"LPX_REDIS_PASSWORD"`
	RedisDB       int      `yaml:"redisDB" env:"LPX_REDIS_DB"`
	MemcachedAddr string   `yaml:"memcachedAddr" env:"LPX_MEMCACHED_ADDR"`
	EnableTrace   bool     `yaml:"enableTrace" env:"LPX_ENABLE_TRACE"`
	TraceEndpoint string   `yaml:"traceEndpoint" env:"LPX_TRACE_ENDPOINT"`
	AllowOrigins  []string `yaml:"allowOrigins" env:"LPX_ALLOW_ORIGINS" envSeparator:","`
}

type Auth struct {
	JWTSecret string        `yaml:"jwtSecret" env:"LPX_JWT_SECRET"`
	Audience  string        `yaml:"audience" env:"LPX_JWT_AUDIENCE"`
	CacheTTL  time.Duration `yaml:"cacheTTL" env:"LPX_AUTH_CACHE_TTL"`
}

type Logging struct {
	Level  string `yaml:"level" env:"LPX_LOG_LEVEL"`
	Format string `yaml:"format" env:"LPX_LOG_FORMAT"`
}

// Load reads the optional YAML file at path, then a .env file if present, then
// the process environment. Later sources win.
func Load(path string) (Config, error) {
	var config Config

	if path != "" {
		file, err := os.Open(path)
		if err != nil {
			return Config{}, err
		}
		defer file.Close()

		err = yaml.NewDecoder(file).Decode(&config)
		if err != nil {
			return Config{}, fmt.Errorf("decode %s: %w", path, err)
		}
	}

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	if err := env.Parse(&config); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	applyDefaults(&config)

	if err := validate(config); err != nil {
		return Config{}, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

func applyDefaults(c *Config) {
	if c.Server.ListenAddr == "" {
		c.Server.ListenAddr = ":8000"
	}
	if c.Server.PostgresDsn == "" {
		c.Server.PostgresDsn = "host=db user=postgres password=postgres dbname=postgres port=5432 sslmode=disable"
	}
	if c.Server.RedisAddr == "" {
		c.Server.RedisAddr = "redis:6379"
	}
	if c.Auth.Audience == "" {
		c.Auth.Audience = "authenticated"
	}
	if c.Auth.CacheTTL == 0 {
		c.Auth.CacheTTL = 5 * time.Minute
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "json"
	}
	if c.Site.SiteName == "" {
		c.Site.SiteName = "LaunchpadX"
	}
	if c.Site.Features == nil {
		c.Site.Features = map[string]bool{}
	}
	if _, ok := c.Site.Features[domain.FeatureAgreements]; !ok {
		c.Site.Features[domain.FeatureAgreements] = true
	}
}

func validate(c Config) error {
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("auth.jwtSecret (LPX_JWT_SECRET) is required")
	}
	if c.Server.EnableTrace && c.Server.TraceEndpoint == "" {
		return fmt.Errorf("server.traceEndpoint is required when tracing is enabled")
	}
	return nil
}
