package config

import "time"

const (
	envPort            = "PORT"
	envServiceURL      = "SCHEDULING_SERVICE_URL"
	envServiceAPIKey   = "SCHEDULING_SERVICE_API_KEY"
	envServiceTimeout  = "SCHEDULING_SERVICE_TIMEOUT"
	envDefaultSport    = "DEFAULT_SPORT"
	envDefaultConf     = "DEFAULT_CONFERENCE"
	envDefaultSeason   = "DEFAULT_SEASON"
	envExportDir       = "EXPORT_DIR"
	envAdminToken      = "ADMIN_TOKEN"
	envLogLevel        = "LOG_LEVEL"
	envLogFormat       = "LOG_FORMAT"
	envMetricsPort     = "METRICS_PORT"
	envMetricsOn       = "METRICS_ENABLED"
	envOtelEndpoint    = "OTEL_EXPORTER_OTLP_ENDPOINT"
	envOtelService     = "OTEL_SERVICE_NAME"
	envOtelInsecure    = "OTEL_EXPORTER_OTLP_INSECURE"
	envFileOverridePfx = "SCHED_"

	defaultPort       = "4000"
	defaultServiceURL = "http://localhost:3001"
	// Generation and optimization calls can run long on the service side.
	defaultServiceTimeout = 60 * time.Second
	defaultSport          = "football"
	defaultConference     = "big12"
	defaultExportDir      = "exports"
	defaultLogLevel       = "info"
	defaultLogFormat      = "text"
	defaultMetricsPort    = "9090"
	defaultServiceName    = "schedule-builder"
)
