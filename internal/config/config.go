package config

import "github.com/joho/godotenv"

// Config holds runtime configuration for the schedule builder.
type Config struct {
	Port      string          `koanf:"port"`
	Service   ServiceConfig   `koanf:"service"`
	Defaults  SelectionConfig `koanf:"defaults"`
	ExportDir string          `koanf:"export_dir"`
	// AdminToken guards /admin routes; empty disables them.
	AdminToken string        `koanf:"admin_token"`
	Logging    LoggingConfig `koanf:"logging"`
	Metrics    MetricsConfig `koanf:"metrics"`
}

// Load reads configuration from environment variables with sensible defaults.
// A .env file in the working directory is loaded first when present; real
// environment variables always win over it.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		Port:       envOrDefault(envPort, defaultPort),
		Service:    loadService(),
		Defaults:   loadSelection(),
		ExportDir:  envOrDefault(envExportDir, defaultExportDir),
		AdminToken: envOrDefault(envAdminToken, ""),
		Logging:    loadLogging(),
		Metrics:    loadMetrics(),
	}
}
