package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/fplhq/companion/internal/platform/logging"
)

// Config stores runtime configuration for the service.
type Config struct {
	AppEnv             string
	ServiceName        string
	ServiceVersion     string
	HTTPAddr           string
	ReadTimeout        time.Duration
	WriteTimeout       time.Duration
	LogLevel           logging.Level
	CORSAllowedOrigins []string

	FPLBaseURL               string
	FPLUserAgent             string
	FPLTimeout               time.Duration
	FPLMaxRetries            int
	FPLCircuitEnabled        bool
	FPLCircuitFailureCount   int
	FPLCircuitOpenTimeout    time.Duration
	FPLCircuitHalfOpenMaxReq int

	StatsEnabled bool
	StatsBaseURL string
	StatsTimeout time.Duration

	CacheEnabled      bool
	CacheTTLBootstrap time.Duration
	CacheTTLFixtures  time.Duration
	CacheTTLLive      time.Duration
	CacheTTLPicks     time.Duration
	CacheTTLDefault   time.Duration

	PollLiveInterval   time.Duration
	PollWatchedEntries []int
	PollMaxWorkers     int

	FormationMinDefenders  int
	FormationMinMidfield   int
	FormationMinForwards   int
	FormationMaxDefenders  int
	FormationMaxMidfield   int
	FormationMaxForwards   int

	PprofEnabled bool
	PprofAddr    string

	PyroscopeEnabled           bool
	PyroscopeServerAddress     string
	PyroscopeAppName           string
	PyroscopeAuthToken         string
	PyroscopeBasicAuthUser     string
	PyroscopeBasicAuthPassword string
	PyroscopeUploadRate        time.Duration

	UptraceEnabled bool
	UptraceDSN     string
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

	fplTimeout, err := time.ParseDuration(getEnv("FPL_TIMEOUT", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse FPL_TIMEOUT: %w", err)
	}
	if fplTimeout <= 0 {
		return Config{}, fmt.Errorf("FPL_TIMEOUT must be > 0")
	}
	fplMaxRetries, err := getEnvAsInt("FPL_MAX_RETRIES", 2)
	if err != nil {
		return Config{}, fmt.Errorf("parse FPL_MAX_RETRIES: %w", err)
	}
	if fplMaxRetries < 0 {
		return Config{}, fmt.Errorf("FPL_MAX_RETRIES must be >= 0")
	}
	fplCircuitEnabled, err := strconv.ParseBool(getEnv("FPL_CIRCUIT_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse FPL_CIRCUIT_ENABLED: %w", err)
	}
	fplCircuitFailureCount, err := getEnvAsInt("FPL_CIRCUIT_FAILURE_COUNT", 5)
	if err != nil {
		return Config{}, fmt.Errorf("parse FPL_CIRCUIT_FAILURE_COUNT: %w", err)
	}
	if fplCircuitFailureCount < 1 {
		return Config{}, fmt.Errorf("FPL_CIRCUIT_FAILURE_COUNT must be >= 1")
	}
	fplCircuitOpenTimeout, err := time.ParseDuration(getEnv("FPL_CIRCUIT_OPEN_TIMEOUT", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse FPL_CIRCUIT_OPEN_TIMEOUT: %w", err)
	}
	if fplCircuitOpenTimeout <= 0 {
		return Config{}, fmt.Errorf("FPL_CIRCUIT_OPEN_TIMEOUT must be > 0")
	}
	fplCircuitHalfOpenMaxReq, err := getEnvAsInt("FPL_CIRCUIT_HALF_OPEN_MAX_REQ", 2)
	if err != nil {
		return Config{}, fmt.Errorf("parse FPL_CIRCUIT_HALF_OPEN_MAX_REQ: %w", err)
	}
	if fplCircuitHalfOpenMaxReq < 1 {
		return Config{}, fmt.Errorf("FPL_CIRCUIT_HALF_OPEN_MAX_REQ must be >= 1")
	}

	statsEnabled, err := strconv.ParseBool(getEnv("STATS_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse STATS_ENABLED: %w", err)
	}
	statsBaseURL := strings.TrimSpace(getEnv("STATS_BASE_URL", ""))
	if statsEnabled && statsBaseURL == "" {
		return Config{}, fmt.Errorf("STATS_BASE_URL is required when STATS_ENABLED=true")
	}
	statsTimeout, err := time.ParseDuration(getEnv("STATS_TIMEOUT", "5s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse STATS_TIMEOUT: %w", err)
	}
	if statsTimeout <= 0 {
		return Config{}, fmt.Errorf("STATS_TIMEOUT must be > 0")
	}

	cacheEnabled, err := strconv.ParseBool(getEnv("CACHE_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse CACHE_ENABLED: %w", err)
	}
	cacheTTLBootstrap, err := getEnvAsDuration("CACHE_TTL_BOOTSTRAP", 4*time.Hour)
	if err != nil {
		return Config{}, err
	}
	cacheTTLFixtures, err := getEnvAsDuration("CACHE_TTL_FIXTURES", 20*time.Minute)
	if err != nil {
		return Config{}, err
	}
	cacheTTLLive, err := getEnvAsDuration("CACHE_TTL_LIVE", 90*time.Second)
	if err != nil {
		return Config{}, err
	}
	cacheTTLPicks, err := getEnvAsDuration("CACHE_TTL_PICKS", time.Hour)
	if err != nil {
		return Config{}, err
	}
	cacheTTLDefault, err := getEnvAsDuration("CACHE_TTL_DEFAULT", 5*time.Minute)
	if err != nil {
		return Config{}, err
	}

	pollLiveInterval, err := getEnvAsDuration("POLL_LIVE_INTERVAL", time.Minute)
	if err != nil {
		return Config{}, err
	}
	pollWatchedEntries, err := parseIntList(getEnv("POLL_WATCHED_ENTRIES", ""))
	if err != nil {
		return Config{}, fmt.Errorf("parse POLL_WATCHED_ENTRIES: %w", err)
	}
	pollMaxWorkers, err := getEnvAsInt("POLL_MAX_WORKERS", 4)
	if err != nil {
		return Config{}, fmt.Errorf("parse POLL_MAX_WORKERS: %w", err)
	}
	if pollMaxWorkers < 1 {
		return Config{}, fmt.Errorf("POLL_MAX_WORKERS must be >= 1")
	}

	formationMinDef, err := getEnvAsInt("FORMATION_MIN_DEF", 3)
	if err != nil {
		return Config{}, fmt.Errorf("parse FORMATION_MIN_DEF: %w", err)
	}
	formationMinMid, err := getEnvAsInt("FORMATION_MIN_MID", 2)
	if err != nil {
		return Config{}, fmt.Errorf("parse FORMATION_MIN_MID: %w", err)
	}
	formationMinFwd, err := getEnvAsInt("FORMATION_MIN_FWD", 1)
	if err != nil {
		return Config{}, fmt.Errorf("parse FORMATION_MIN_FWD: %w", err)
	}
	formationMaxDef, err := getEnvAsInt("FORMATION_MAX_DEF", 5)
	if err != nil {
		return Config{}, fmt.Errorf("parse FORMATION_MAX_DEF: %w", err)
	}
	formationMaxMid, err := getEnvAsInt("FORMATION_MAX_MID", 5)
	if err != nil {
		return Config{}, fmt.Errorf("parse FORMATION_MAX_MID: %w", err)
	}
	formationMaxFwd, err := getEnvAsInt("FORMATION_MAX_FWD", 3)
	if err != nil {
		return Config{}, fmt.Errorf("parse FORMATION_MAX_FWD: %w", err)
	}
	if formationMinDef < 0 || formationMinMid < 0 || formationMinFwd < 0 {
		return Config{}, fmt.Errorf("FORMATION_MIN_* must be >= 0")
	}
	if formationMaxDef < formationMinDef || formationMaxMid < formationMinMid || formationMaxFwd < formationMinFwd {
		return Config{}, fmt.Errorf("FORMATION_MAX_* must be >= the matching FORMATION_MIN_*")
	}
	// 1 goalkeeper plus the outfield minimums must fit in a starting eleven.
	if 1+formationMinDef+formationMinMid+formationMinFwd > 11 {
		return Config{}, fmt.Errorf("FORMATION_MIN_* must leave room for a starting eleven")
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

	cfg := Config{
		AppEnv:             appEnv,
		ServiceName:        getEnv("APP_SERVICE_NAME", "fpl-companion-api"),
		ServiceVersion:     getEnv("APP_SERVICE_VERSION", "dev"),
		HTTPAddr:           getEnv("APP_HTTP_ADDR", ":8080"),
		ReadTimeout:        readTimeout,
		WriteTimeout:       writeTimeout,
		LogLevel:           parseLogLevel(getEnv("APP_LOG_LEVEL", "info")),
		CORSAllowedOrigins: splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "*")),

		FPLBaseURL:               strings.TrimSpace(getEnv("FPL_BASE_URL", "https://fantasy.premierleague.com/api")),
		FPLUserAgent:             strings.TrimSpace(getEnv("FPL_USER_AGENT", "fpl-companion/1.0")),
		FPLTimeout:               fplTimeout,
		FPLMaxRetries:            fplMaxRetries,
		FPLCircuitEnabled:        fplCircuitEnabled,
		FPLCircuitFailureCount:   fplCircuitFailureCount,
		FPLCircuitOpenTimeout:    fplCircuitOpenTimeout,
		FPLCircuitHalfOpenMaxReq: fplCircuitHalfOpenMaxReq,

		StatsEnabled: statsEnabled,
		StatsBaseURL: statsBaseURL,
		StatsTimeout: statsTimeout,

		CacheEnabled:      cacheEnabled,
		CacheTTLBootstrap: cacheTTLBootstrap,
		CacheTTLFixtures:  cacheTTLFixtures,
		CacheTTLLive:      cacheTTLLive,
		CacheTTLPicks:     cacheTTLPicks,
		CacheTTLDefault:   cacheTTLDefault,

		PollLiveInterval:   pollLiveInterval,
		PollWatchedEntries: pollWatchedEntries,
		PollMaxWorkers:     pollMaxWorkers,

		FormationMinDefenders: formationMinDef,
		FormationMinMidfield:  formationMinMid,
		FormationMinForwards:  formationMinFwd,
		FormationMaxDefenders: formationMaxDef,
		FormationMaxMidfield:  formationMaxMid,
		FormationMaxForwards:  formationMaxFwd,

		PprofEnabled: pprofEnabled,
		PprofAddr:    pprofAddr,

		PyroscopeEnabled:           pyroscopeEnabled,
		PyroscopeServerAddress:     pyroscopeServerAddress,
		PyroscopeAuthToken:         strings.TrimSpace(getEnv("PYROSCOPE_AUTH_TOKEN", "")),
		PyroscopeBasicAuthUser:     strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_USER", "")),
		PyroscopeBasicAuthPassword: strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_PASSWORD", "")),
		PyroscopeUploadRate:        pyroscopeUploadRate,

		UptraceEnabled: uptraceEnabled,
		UptraceDSN:     uptraceDSN,
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

func getEnvAsDuration(key string, fallback time.Duration) (time.Duration, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	if out <= 0 {
		return 0, fmt.Errorf("%s must be > 0", key)
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

func parseIntList(raw string) ([]int, error) {
	items := splitCSV(raw)
	out := make([]int, 0, len(items))
	for _, item := range items {
		value, err := strconv.Atoi(item)
		if err != nil {
			return nil, fmt.Errorf("invalid entry id %q: %w", item, err)
		}
		if value <= 0 {
			return nil, fmt.Errorf("entry id must be > 0 in item %q", item)
		}
		out = append(out, value)
	}
	return out, nil
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
