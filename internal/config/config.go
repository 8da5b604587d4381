package config

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Environment string
	Host        string `toml:"host"`
	Port        int    `toml:"port"`
	// logging
	LogLevel      string `toml:"log_level"`
	LogsPath      string `toml:"logs_path"`
	LogToStdout   bool   `toml:"log_to_stdout"`
	SentryEnabled bool   `toml:"sentry_enabled"`
	// metrics
	PrometheusMetricsHost string `toml:"prometheus_metrics_host"`
	PrometheusMetricsPort string `toml:"prometheus_metrics_port"`
	// persistence: "file" or "redis"
	StorageBackend string `toml:"storage_backend"`
	DataRootPath   string `toml:"data_root_path"`
	RedisHost      string `toml:"redis_host"`
	RedisPort      string `toml:"redis_port"`
	// advisory text generation
	AdvisorEndpoint           string `toml:"advisor_endpoint"`
	AdvisorModel              string `toml:"advisor_model"`
	AdvisorCacheSizeMegabytes int    `toml:"advisor_cache_size_megabytes"`
	AdvisorRateLimitPerMin    int    `toml:"advisor_rate_limit_per_min"`
}

const (
	StorageBackendFile  = "file"
	StorageBackendRedis = "redis"
)

type Toml struct {
	Development *Config
	Production  *Config
}

func (t *Toml) Get(env string) (*Config, error) {
	switch strings.ToLower(env) {
	case "dev", "development":
		return t.Development, nil
	case "prod", "production":
		return t.Production, nil
	default:
		return nil, fmt.Errorf("unknown env: %s", env)
	}
}

func Load(env, path string) (*Config, error) {
	var tomlFile Toml
	if _, err := toml.DecodeFile(path, &tomlFile); err != nil {
		return nil, fmt.Errorf("decode config file [%s]: %w", path, err)
	}

	cfg, err := tomlFile.Get(env)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		return nil, fmt.Errorf("config file [%s] has no section for env: %s", path, env)
	}

	cfg.Environment = strings.ToLower(env)
	return cfg, nil
}
