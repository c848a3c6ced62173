package config

import (
	"log/slog"

	"github.com/subosito/gotenv"
)

// LoadEnv loads the env file for the given APP_ENV into the process
// environment. Missing files are not fatal so deployments can rely on the
// OS environment alone.
func LoadEnv(env string) {
	envFile := "config/envs/.env." + env
	if err := gotenv.Load(envFile); err != nil {
		slog.Warn("No .env file found, using OS environment")
	}
}
