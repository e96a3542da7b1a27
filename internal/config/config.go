package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/riskibarqy/club-manager/internal/platform/logging"
)

const (
	ArchiveDriverMemory   = "memory"
	ArchiveDriverPostgres = "postgres"
)

// Config stores runtime configuration for the service.
type Config struct {
	AppEnv                         string
	ServiceName                    string
	ServiceVersion                 string
	HTTPAddr                       string
	CORSAllowedOrigins             []string
	ReadTimeout                    time.Duration
	WriteTimeout                   time.Duration
	ShutdownTimeout                time.Duration
	GameStartingBudget             float64
	GameHomeClubID                 string
	GameWorkerPoolSize             int
	GeneratorEnabled               bool
	GeneratorBaseURL               string
	GeneratorAPIKey                string
	GeneratorModel                 string
	GeneratorTimeout               time.Duration
	GeneratorMaxRetries            int
	GeneratorRetryBackoff          time.Duration
	GeneratorCircuitEnabled        bool
	GeneratorCircuitFailureCount   int
	GeneratorCircuitOpenTimeout    time.Duration
	GeneratorCircuitHalfOpenMaxReq int
	ArchiveDriver                  string
	DBURL                          string
	PprofEnabled                   bool
	PprofAddr                      string
	UptraceEnabled                 bool
	UptraceDSN                     string
	PyroscopeEnabled               bool
	PyroscopeServerAddress         string
	PyroscopeAppName               string
	PyroscopeAuthToken             string
	PyroscopeBasicAuthUser         string
	PyroscopeBasicAuthPassword     string
	PyroscopeUploadRate            time.Duration
	LogLevel                       logging.Level
}

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	uptraceEnabled, err := strconv.ParseBool(getEnv("UPTRACE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_ENABLED: %w", err)
	}

	uptraceDSN := strings.TrimSpace(getEnv("UPTRACE_DSN", ""))
	if uptraceDSN == "" {
		uptraceDSN = parseUptraceDSNFromOTLPHeaders(getEnv("OTEL_EXPORTER_OTLP_HEADERS", ""))
	}
	if uptraceEnabled && uptraceDSN == "" {
		return Config{}, fmt.Errorf("UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	}

	pprofEnabled, err := strconv.ParseBool(getEnv("PPROF_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PPROF_ENABLED: %w", err)
	}
	pprofAddr := strings.TrimSpace(getEnv("PPROF_ADDR", ":6060"))
	if pprofEnabled && pprofAddr == "" {
		return Config{}, fmt.Errorf("PPROF_ADDR is required when PPROF_ENABLED=true")
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

	startingBudget, err := strconv.ParseFloat(strings.TrimSpace(getEnv("GAME_STARTING_BUDGET", "50")), 64)
	if err != nil {
		return Config{}, fmt.Errorf("parse GAME_STARTING_BUDGET: %w", err)
	}
	if startingBudget < 0 {
		return Config{}, fmt.Errorf("GAME_STARTING_BUDGET must be >= 0")
	}
	homeClubID := strings.ToLower(strings.TrimSpace(getEnv("GAME_HOME_CLUB_ID", "vas")))
	workerPoolSize, err := getEnvAsInt("GAME_WORKER_POOL_SIZE", 4)
	if err != nil {
		return Config{}, fmt.Errorf("parse GAME_WORKER_POOL_SIZE: %w", err)
	}
	if workerPoolSize < 1 {
		return Config{}, fmt.Errorf("GAME_WORKER_POOL_SIZE must be >= 1")
	}

	generatorEnabled, err := strconv.ParseBool(getEnv("GENERATOR_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse GENERATOR_ENABLED: %w", err)
	}
	generatorTimeout, err := time.ParseDuration(getEnv("GENERATOR_TIMEOUT", "30s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse GENERATOR_TIMEOUT: %w", err)
	}
	if generatorTimeout <= 0 {
		return Config{}, fmt.Errorf("GENERATOR_TIMEOUT must be > 0")
	}
	generatorMaxRetries, err := getEnvAsInt("GENERATOR_MAX_RETRIES", 1)
	if err != nil {
		return Config{}, fmt.Errorf("parse GENERATOR_MAX_RETRIES: %w", err)
	}
	if generatorMaxRetries < 0 {
		return Config{}, fmt.Errorf("GENERATOR_MAX_RETRIES must be >= 0")
	}
	generatorRetryBackoff, err := time.ParseDuration(getEnv("GENERATOR_RETRY_BACKOFF", "500ms"))
	if err != nil {
		return Config{}, fmt.Errorf("parse GENERATOR_RETRY_BACKOFF: %w", err)
	}
	if generatorRetryBackoff < 0 {
		return Config{}, fmt.Errorf("GENERATOR_RETRY_BACKOFF must be >= 0")
	}
	generatorCircuitEnabled, err := strconv.ParseBool(getEnv("GENERATOR_CIRCUIT_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse GENERATOR_CIRCUIT_ENABLED: %w", err)
	}
	generatorCircuitFailureCount, err := getEnvAsInt("GENERATOR_CIRCUIT_FAILURE_COUNT", 5)
	if err != nil {
		return Config{}, fmt.Errorf("parse GENERATOR_CIRCUIT_FAILURE_COUNT: %w", err)
	}
	if generatorCircuitFailureCount < 1 {
		return Config{}, fmt.Errorf("GENERATOR_CIRCUIT_FAILURE_COUNT must be >= 1")
	}
	generatorCircuitOpenTimeout, err := time.ParseDuration(getEnv("GENERATOR_CIRCUIT_OPEN_TIMEOUT", "30s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse GENERATOR_CIRCUIT_OPEN_TIMEOUT: %w", err)
	}
	if generatorCircuitOpenTimeout <= 0 {
		return Config{}, fmt.Errorf("GENERATOR_CIRCUIT_OPEN_TIMEOUT must be > 0")
	}
	generatorCircuitHalfOpenMaxReq, err := getEnvAsInt("GENERATOR_CIRCUIT_HALF_OPEN_MAX_REQ", 1)
	if err != nil {
		return Config{}, fmt.Errorf("parse GENERATOR_CIRCUIT_HALF_OPEN_MAX_REQ: %w", err)
	}
	if generatorCircuitHalfOpenMaxReq < 1 {
		return Config{}, fmt.Errorf("GENERATOR_CIRCUIT_HALF_OPEN_MAX_REQ must be >= 1")
	}
	generatorAPIKey := strings.TrimSpace(getEnv("GENERATOR_API_KEY", ""))
	if generatorEnabled && generatorAPIKey == "" {
		return Config{}, fmt.Errorf("GENERATOR_API_KEY is required when GENERATOR_ENABLED=true")
	}

	archiveDriver, err := parseArchiveDriver(getEnv("ARCHIVE_DRIVER", ArchiveDriverMemory))
	if err != nil {
		return Config{}, err
	}
	dbURL := strings.TrimSpace(getEnv("DB_URL", ""))
	if archiveDriver == ArchiveDriverPostgres && dbURL == "" {
		return Config{}, fmt.Errorf("DB_URL is required when ARCHIVE_DRIVER=postgres")
	}

	readTimeout, err := time.ParseDuration(getEnv("APP_READ_TIMEOUT", "10s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APP_READ_TIMEOUT: %w", err)
	}

	writeTimeout, err := time.ParseDuration(getEnv("APP_WRITE_TIMEOUT", "60s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APP_WRITE_TIMEOUT: %w", err)
	}

	shutdownTimeout, err := time.ParseDuration(getEnv("APP_SHUTDOWN_TIMEOUT", "10s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APP_SHUTDOWN_TIMEOUT: %w", err)
	}
	if shutdownTimeout <= 0 {
		return Config{}, fmt.Errorf("APP_SHUTDOWN_TIMEOUT must be > 0")
	}

	cfg := Config{
		AppEnv:                         appEnv,
		ServiceName:                    getEnv("APP_SERVICE_NAME", "club-manager-api"),
		ServiceVersion:                 getEnv("APP_SERVICE_VERSION", "dev"),
		HTTPAddr:                       getEnv("APP_HTTP_ADDR", ":8080"),
		CORSAllowedOrigins:             splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		ReadTimeout:                    readTimeout,
		WriteTimeout:                   writeTimeout,
		ShutdownTimeout:                shutdownTimeout,
		GameStartingBudget:             startingBudget,
		GameHomeClubID:                 homeClubID,
		GameWorkerPoolSize:             workerPoolSize,
		GeneratorEnabled:               generatorEnabled,
		GeneratorBaseURL:               strings.TrimSpace(getEnv("GENERATOR_BASE_URL", "https://generativelanguage.googleapis.com")),
		GeneratorAPIKey:                generatorAPIKey,
		GeneratorModel:                 strings.TrimSpace(getEnv("GENERATOR_MODEL", "gemini-2.5-flash")),
		GeneratorTimeout:               generatorTimeout,
		GeneratorMaxRetries:            generatorMaxRetries,
		GeneratorRetryBackoff:          generatorRetryBackoff,
		GeneratorCircuitEnabled:        generatorCircuitEnabled,
		GeneratorCircuitFailureCount:   generatorCircuitFailureCount,
		GeneratorCircuitOpenTimeout:    generatorCircuitOpenTimeout,
		GeneratorCircuitHalfOpenMaxReq: generatorCircuitHalfOpenMaxReq,
		ArchiveDriver:                  archiveDriver,
		DBURL:                          dbURL,
		PprofEnabled:                   pprofEnabled,
		PprofAddr:                      pprofAddr,
		UptraceEnabled:                 uptraceEnabled,
		UptraceDSN:                     uptraceDSN,
		PyroscopeEnabled:               pyroscopeEnabled,
		PyroscopeServerAddress:         pyroscopeServerAddress,
		PyroscopeAuthToken:             strings.TrimSpace(getEnv("PYROSCOPE_AUTH_TOKEN", "")),
		PyroscopeBasicAuthUser:         strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_USER", "")),
		PyroscopeBasicAuthPassword:     strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_PASSWORD", "")),
		PyroscopeUploadRate:            pyroscopeUploadRate,
		LogLevel:                       parseLogLevel(getEnv("APP_LOG_LEVEL", "info")),
	}
	cfg.PyroscopeAppName = strings.TrimSpace(getEnv("PYROSCOPE_APP_NAME", cfg.ServiceName))
	if cfg.PyroscopeEnabled && cfg.PyroscopeAppName == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_APP_NAME cannot be empty when PYROSCOPE_ENABLED=true")
	}
	if len(cfg.CORSAllowedOrigins) == 0 {
		return Config{}, fmt.Errorf("CORS_ALLOWED_ORIGINS cannot be empty")
	}
	if cfg.GameHomeClubID == "" {
		return Config{}, fmt.Errorf("GAME_HOME_CLUB_ID cannot be empty")
	}
	if cfg.GeneratorEnabled && cfg.GeneratorModel == "" {
		return Config{}, fmt.Errorf("GENERATOR_MODEL cannot be empty when GENERATOR_ENABLED=true")
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

func parseArchiveDriver(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case ArchiveDriverMemory, ArchiveDriverPostgres:
		return value, nil
	default:
		return "", fmt.Errorf("invalid ARCHIVE_DRIVER %q: valid values are %s, %s", v, ArchiveDriverMemory, ArchiveDriverPostgres)
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

func parseUptraceDSNFromOTLPHeaders(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}

	items := strings.Split(raw, ",")
	for _, item := range items {
		parts := strings.SplitN(strings.TrimSpace(item), "=", 2)
		if len(parts) != 2 {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(parts[0]), "uptrace-dsn") {
			value := strings.TrimSpace(parts[1])
			return strings.Trim(value, "\"'")
		}
	}

	return ""
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
