package config

import (
	"github.com/caarlos0/env/v11"
	"github.com/dmitrijs2005/notevault/internal/flagx"
	"github.com/joho/godotenv"
)

func parseEnv(cfg *Config) error {
	if path := flagx.EnvFileFlags(); path != "" {
		if err := godotenv.Load(path); err != nil {
			return err
		}
	}
	return env.ParseWithOptions(cfg, env.Options{Prefix: "NOTEVAULT_"})
}
