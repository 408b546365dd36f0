package config

import "time"

// ServiceConfig controls how we reach the remote scheduling service.
type ServiceConfig struct {
	BaseURL string        `koanf:"base_url"`
	APIKey  string        `koanf:"api_key"`
	Timeout time.Duration `koanf:"timeout"`
}

// SelectionConfig seeds the initial sport/conference/season selection.
type SelectionConfig struct {
	Sport      string `koanf:"sport"`
	Conference string `koanf:"conference"`
	Season     string `koanf:"season"`
}

// LoggingConfig controls log level and handler format.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

func loadService() ServiceConfig {
	return ServiceConfig{
		BaseURL: envOrDefault(envServiceURL, defaultServiceURL),
		APIKey:  envOrDefault(envServiceAPIKey, ""),
		Timeout: durationEnvOrDefault(envServiceTimeout, defaultServiceTimeout),
	}
}

func loadSelection() SelectionConfig {
	return SelectionConfig{
		Sport:      selectionEnvOrDefault(envDefaultSport, defaultSport),
		Conference: selectionEnvOrDefault(envDefaultConf, defaultConference),
		Season:     envOrDefault(envDefaultSeason, ""),
	}
}

func loadLogging() LoggingConfig {
	return LoggingConfig{
		Level:  envOrDefault(envLogLevel, defaultLogLevel),
		Format: envOrDefault(envLogFormat, defaultLogFormat),
	}
}
