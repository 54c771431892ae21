package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// ServerConfig holds settings for `arcade serve`. Values come from an
// optional YAML file, then ARCADE_* environment variables, then defaults.
type ServerConfig struct {
	SSHAddr     string        `yaml:"ssh_addr" env:"ARCADE_SSH_ADDR" env-default:":23234" validate:"required"`
	HostKeyPath string        `yaml:"host_key" env:"ARCADE_HOST_KEY" env-default:""`
	Store       string        `yaml:"store" env:"ARCADE_STORE" env-default:"sqlite" validate:"oneof=sqlite redis"`
	DBPath      string        `yaml:"db_path" env:"ARCADE_DB_PATH" env-default:"~/.arcade/arcade.db"`
	RedisURL    string        `yaml:"redis_url" env:"ARCADE_REDIS_URL" env-default:"redis://localhost:6379/0"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env:"ARCADE_IDLE_TIMEOUT" env-default:"30m" validate:"min=0"`
	LogLevel    string        `yaml:"log_level" env:"ARCADE_LOG_LEVEL" env-default:"info" validate:"oneof=debug info warn error"`
}

// LoadServer reads the server configuration. path may be empty.
func LoadServer(path string) (ServerConfig, error) {
	var cfg ServerConfig

	var err error
	if path != "" {
		err = cleanenv.ReadConfig(path, &cfg)
	} else {
		err = cleanenv.ReadEnv(&cfg)
	}
	if err != nil {
		return cfg, fmt.Errorf("config: cannot load server config: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return cfg, fmt.Errorf("config: invalid server config: %w", err)
	}
	return cfg, nil
}
