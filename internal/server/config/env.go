package config

import (
	"github.com/caarlos0/env/v11"
	"github.com/dmitrijs2005/notevault/internal/flagx"
	"github.com/joho/godotenv"
)

const envPrefix = "NOTEVAULT_"

// parseEnv overlays NOTEVAULT_* environment variables. A dotenv file named by
// -env-file is loaded first; variables already present in the environment
// win over the file.
func parseEnv(config *Config) error {
	if path := flagx.EnvFileFlags(); path != "" {
		if err := godotenv.Load(path); err != nil {
			return err
		}
	}
	return env.ParseWithOptions(config, env.Options{Prefix: envPrefix})
}
