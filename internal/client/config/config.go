package config

import (
	"fmt"
	"time"
)

// Config holds runtime settings for the notevault CLI.
type Config struct {
	ServerEndpointAddr string        `env:"SERVER"`
	Email              string        `env:"EMAIL"`
	Password           string        `env:"PASSWORD"`
	Passphrase         string        `env:"PASSPHRASE"`
	Timeout            time.Duration `env:"TIMEOUT"`
}

// Flags lists the global flags consumed by the config loader. Everything
// else on the command line is the subcommand and its operands.
var Flags = []string{"-a", "-u", "-t", "-c", "-config", "-env-file"}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = "127.0.0.1:50051"
	c.Timeout = 10 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON, the environment and command-line flags. Later sources take
// precedence over earlier ones.
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseJson(cfg); err != nil {
		return nil, fmt.Errorf("json config: %w", err)
	}
	if err := parseEnv(cfg); err != nil {
		return nil, fmt.Errorf("env config: %w", err)
	}
	if err := parseFlags(cfg); err != nil {
		return nil, fmt.Errorf("flags: %w", err)
	}
	return cfg, nil
}
