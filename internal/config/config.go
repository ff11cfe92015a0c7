package config

import (
	"fmt"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	FactsBackendFile  = "file"
	FactsBackendRedis = "redis"
)

type Config struct {
	LogLevel string  `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	HTTPPort string  `yaml:"http-port" env:"HTTP_PORT" env-default:"9090"`
	Discord  Discord `yaml:"discord"`
	Facts    Facts   `yaml:"facts"`
	Redis    Redis   `yaml:"redis"`
}

type Discord struct {
	Token  string `yaml:"token" env:"DISCORD_TOKEN" env-required:"true"`
	Prefix string `yaml:"prefix" env-default:"~"`
}

type Facts struct {
	Dir     string `yaml:"dir" env:"FACTS_DIR" env-default:"./facts"`
	Backend string `yaml:"backend" env:"FACTS_BACKEND" env-default:"file"`
}

type Redis struct {
	Host     string `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port     string `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
	Password string `yaml:"password" env:"REDIS_PASSWORD"`
	DB       int    `yaml:"db" env-default:"0"`
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(err)
	}

	return config
}

// Load - reads path and the environment, the environment wins.
func Load(path string) (*Config, error) {
	config := &Config{}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		return nil, fmt.Errorf("unable to load config file: %w", err)
	}

	if config.Facts.Backend != FactsBackendFile && config.Facts.Backend != FactsBackendRedis {
		return nil, fmt.Errorf("unknown facts backend %q", config.Facts.Backend)
	}

	return config, nil
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
