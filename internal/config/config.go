package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/cnfl/fantasy-cricket/internal/platform/logging"
)

// Config stores runtime configuration for the service.
type Config struct {
	AppEnv                  string
	ServiceName             string
	ServiceVersion          string
	HTTPAddr                string
	ReadTimeout             time.Duration
	WriteTimeout            time.Duration
	CORSAllowedOrigins      []string
	LogLevel                logging.Level
	CacheEnabled            bool
	CacheTTL                time.Duration
	PprofEnabled            bool
	PprofAddr               string
	DBURL                   string
	DBDisablePreparedBinary bool
	ArchiveWorkers          int
	UptraceEnabled          bool
	UptraceDSN              string
	PyroscopeEnabled        bool
	PyroscopeServerAddress  string
	PyroscopeAppName        string
	PyroscopeAuthToken      string
	PyroscopeUploadRate     time.Duration
	WebhookEnabled          bool
	WebhookEndpointURL      string
	WebhookToken            string
	WebhookRetries          int
	WebhookTimeout          time.Duration
	WebhookBreakerThreshold int
	WebhookBreakerCooldown  time.Duration
}

// ArchiveEnabled reports whether a durable archive database is configured.
// Without one the service still runs; archiving endpoints return 503.
func (c Config) ArchiveEnabled() bool {
	return strings.TrimSpace(c.DBURL) != ""
}

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	readTimeout, err := time.ParseDuration(getEnv("APP_READ_TIMEOUT", "10s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APP_READ_TIMEOUT: %w", err)
	}

	writeTimeout, err := time.ParseDuration(getEnv("APP_WRITE_TIMEOUT", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APP_WRITE_TIMEOUT: %w", err)
	}

	cacheEnabled, err := strconv.ParseBool(getEnv("CACHE_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse CACHE_ENABLED: %w", err)
	}
	cacheTTL, err := time.ParseDuration(getEnv("CACHE_TTL", "60s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse CACHE_TTL: %w", err)
	}
	if cacheTTL <= 0 {
		return Config{}, fmt.Errorf("CACHE_TTL must be > 0")
	}

	pprofEnabled, err := strconv.ParseBool(getEnv("PPROF_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PPROF_ENABLED: %w", err)
	}
	pprofAddr := strings.TrimSpace(getEnv("PPROF_ADDR", ":6060"))
	if pprofEnabled && pprofAddr == "" {
		return Config{}, fmt.Errorf("PPROF_ADDR is required when PPROF_ENABLED=true")
	}

	dbDisablePreparedBinary, err := strconv.ParseBool(getEnv("DB_DISABLE_PREPARED_BINARY_RESULT", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse DB_DISABLE_PREPARED_BINARY_RESULT: %w", err)
	}

	archiveWorkers, err := getEnvAsInt("ARCHIVE_WORKERS", 4)
	if err != nil {
		return Config{}, fmt.Errorf("parse ARCHIVE_WORKERS: %w", err)
	}
	if archiveWorkers < 1 {
		return Config{}, fmt.Errorf("ARCHIVE_WORKERS must be >= 1")
	}

	uptraceEnabled, err := strconv.ParseBool(getEnv("UPTRACE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_ENABLED: %w", err)
	}
	uptraceDSN := strings.TrimSpace(getEnv("UPTRACE_DSN", ""))
	if uptraceEnabled && uptraceDSN == "" {
		return Config{}, fmt.Errorf("UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	}

	pyroscopeEnabled, err := strconv.ParseBool(getEnv("PYROSCOPE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_ENABLED: %w", err)
	}
	pyroscopeServerAddress := strings.TrimSpace(getEnv("PYROSCOPE_SERVER_ADDRESS", ""))
	if pyroscopeEnabled && pyroscopeServerAddress == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_SERVER_ADDRESS is required when PYROSCOPE_ENABLED=true")
	}
	pyroscopeUploadRate, err := time.ParseDuration(getEnv("PYROSCOPE_UPLOAD_RATE", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_UPLOAD_RATE: %w", err)
	}
	if pyroscopeUploadRate <= 0 {
		return Config{}, fmt.Errorf("PYROSCOPE_UPLOAD_RATE must be > 0")
	}

	webhookEnabled, err := strconv.ParseBool(getEnv("NOTIFY_WEBHOOK_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse NOTIFY_WEBHOOK_ENABLED: %w", err)
	}
	webhookEndpointURL := strings.TrimSpace(getEnv("NOTIFY_WEBHOOK_URL", ""))
	if webhookEnabled && webhookEndpointURL == "" {
		return Config{}, fmt.Errorf("NOTIFY_WEBHOOK_URL is required when NOTIFY_WEBHOOK_ENABLED=true")
	}
	webhookRetries, err := getEnvAsInt("NOTIFY_WEBHOOK_RETRIES", 2)
	if err != nil {
		return Config{}, fmt.Errorf("parse NOTIFY_WEBHOOK_RETRIES: %w", err)
	}
	if webhookRetries < 0 {
		return Config{}, fmt.Errorf("NOTIFY_WEBHOOK_RETRIES must be >= 0")
	}
	webhookTimeout, err := time.ParseDuration(getEnv("NOTIFY_WEBHOOK_TIMEOUT", "5s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse NOTIFY_WEBHOOK_TIMEOUT: %w", err)
	}
	if webhookTimeout <= 0 {
		return Config{}, fmt.Errorf("NOTIFY_WEBHOOK_TIMEOUT must be > 0")
	}
	webhookBreakerThreshold, err := getEnvAsInt("NOTIFY_WEBHOOK_BREAKER_FAILURE_COUNT", 5)
	if err != nil {
		return Config{}, fmt.Errorf("parse NOTIFY_WEBHOOK_BREAKER_FAILURE_COUNT: %w", err)
	}
	if webhookBreakerThreshold < 1 {
		return Config{}, fmt.Errorf("NOTIFY_WEBHOOK_BREAKER_FAILURE_COUNT must be >= 1")
	}
	webhookBreakerCooldown, err := time.ParseDuration(getEnv("NOTIFY_WEBHOOK_BREAKER_OPEN_TIMEOUT", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse NOTIFY_WEBHOOK_BREAKER_OPEN_TIMEOUT: %w", err)
	}
	if webhookBreakerCooldown <= 0 {
		return Config{}, fmt.Errorf("NOTIFY_WEBHOOK_BREAKER_OPEN_TIMEOUT must be > 0")
	}

	cfg := Config{
		AppEnv:                  appEnv,
		ServiceName:             getEnv("APP_SERVICE_NAME", "fantasy-cricket-api"),
		ServiceVersion:          getEnv("APP_SERVICE_VERSION", "dev"),
		HTTPAddr:                getEnv("APP_HTTP_ADDR", ":8080"),
		ReadTimeout:             readTimeout,
		WriteTimeout:            writeTimeout,
		CORSAllowedOrigins:      splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		LogLevel:                parseLogLevel(getEnv("APP_LOG_LEVEL", "info")),
		CacheEnabled:            cacheEnabled,
		CacheTTL:                cacheTTL,
		PprofEnabled:            pprofEnabled,
		PprofAddr:               pprofAddr,
		DBURL:                   strings.TrimSpace(getEnv("DB_URL", "")),
		DBDisablePreparedBinary: dbDisablePreparedBinary,
		ArchiveWorkers:          archiveWorkers,
		UptraceEnabled:          uptraceEnabled,
		UptraceDSN:              uptraceDSN,
		PyroscopeEnabled:        pyroscopeEnabled,
		PyroscopeServerAddress:  pyroscopeServerAddress,
		PyroscopeAuthToken:      strings.TrimSpace(getEnv("PYROSCOPE_AUTH_TOKEN", "")),
		PyroscopeUploadRate:     pyroscopeUploadRate,
		WebhookEnabled:          webhookEnabled,
		WebhookEndpointURL:      webhookEndpointURL,
		WebhookToken:            strings.TrimSpace(getEnv("NOTIFY_WEBHOOK_TOKEN", "")),
		WebhookRetries:          webhookRetries,
		WebhookTimeout:          webhookTimeout,
		WebhookBreakerThreshold: webhookBreakerThreshold,
		WebhookBreakerCooldown:  webhookBreakerCooldown,
	}
	cfg.PyroscopeAppName = strings.TrimSpace(getEnv("PYROSCOPE_APP_NAME", cfg.ServiceName))
	if cfg.PyroscopeEnabled && cfg.PyroscopeAppName == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_APP_NAME cannot be empty when PYROSCOPE_ENABLED=true")
	}
	if len(cfg.CORSAllowedOrigins) == 0 {
		return Config{}, fmt.Errorf("CORS_ALLOWED_ORIGINS cannot be empty")
	}

	return cfg, nil
}

func parseLogLevel(v string) logging.Level {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "debug":
		return logging.LevelDebug
	case "warn", "warning":
		return logging.LevelWarn
	case "error":
		return logging.LevelError
	default:
		return logging.LevelInfo
	}
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return fallback
	}

	return value
}

func getEnvAsInt(key string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}

	return out, nil
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item == "" {
			continue
		}
		out = append(out, item)
	}

	return out
}

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

func parseAppEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvDev, EnvStage, EnvProd:
		return value, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
	}
}
