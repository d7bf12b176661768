package app

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/aussiebroadwan/downloadgate/pkg/captcha"
	"github.com/aussiebroadwan/downloadgate/pkg/gatetoken"
)

// Environment keys that must be set for the gate and telemetry endpoints.
const (
	EnvGateSecret     = "DOWNLOAD_GATE_SECRET"
	EnvDatabaseDriver = "DATABASE_DRIVER"
	EnvDatabaseDSN    = "DATABASE_DSN"
)

// Config is read once at startup and never mutated afterwards.
type Config struct {
	GateSecret       string        // Required: HMAC secret for gate tokens
	CaptchaSecret    string        // Optional: reCAPTCHA shared secret
	CaptchaBypass    bool          // Optional: skip the captcha check entirely (default: false)
	CaptchaVerifyURL string        // Optional: siteverify endpoint (default: Google)
	DatabaseDriver   string        // Required: sqlite or postgres
	DatabaseDSN      string        // Required: driver specific DSN
	RedisURL         string        // Optional: redis:// URL for the atomic download counter
	IPHashSalt       string        // Optional: key for IP anonymization
	GateTokenTTL     time.Duration // Optional: gate token lifetime (default: 10m)
	UpstreamTimeout  time.Duration // Optional: captcha and catalog call bound (default: 5s)

	Env                 string        // Environment (dev, staging, prod) (default: dev)
	LogLevel            string        // Log level (debug, info, warn, error) (default: info)
	LogFormat           string        // Log format (json, text) (default: json)
	Port                int           // HTTP server port (default: 8080)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)
}

// LoadConfig reads the environment, after loading a .env file from the
// working directory when one exists. Variables already set in the
// environment win over the file.
func LoadConfig() Config {
	_ = godotenv.Load()

	return Config{
		GateSecret:       os.Getenv(EnvGateSecret),
		CaptchaSecret:    os.Getenv("RECAPTCHA_SECRET_KEY"),
		CaptchaBypass:    isEnvTrue(os.Getenv("ALLOW_RECAPTCHA_BYPASS")),
		CaptchaVerifyURL: getEnvOrDefault("RECAPTCHA_VERIFY_URL", captcha.DefaultVerifyURL),
		DatabaseDriver:   strings.ToLower(strings.TrimSpace(os.Getenv(EnvDatabaseDriver))),
		DatabaseDSN:      os.Getenv(EnvDatabaseDSN),
		RedisURL:         os.Getenv("REDIS_URL"),
		IPHashSalt:       os.Getenv("IP_HASH_SALT"),
		GateTokenTTL:     getEnvDurationOrDefault("GATE_TOKEN_TTL", gatetoken.DefaultTTL),
		UpstreamTimeout:  getEnvDurationOrDefault("UPSTREAM_TIMEOUT", 5*time.Second),

		Env:                 getEnvOrDefault("ENV", "dev"),
		LogLevel:            getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:           getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod: getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
	}
}

// Missing lists the absent required keys in a stable order.
func (c Config) Missing() []string {
	missing := []string{}
	if c.GateSecret == "" {
		missing = append(missing, EnvGateSecret)
	}
	return append(missing, c.StoreMissing()...)
}

// StoreMissing lists the absent data store keys.
func (c Config) StoreMissing() []string {
	missing := []string{}
	if c.DatabaseDriver == "" {
		missing = append(missing, EnvDatabaseDriver)
	}
	if c.DatabaseDSN == "" {
		missing = append(missing, EnvDatabaseDSN)
	}
	return missing
}

// isEnvTrue accepts true, 1 and yes in any case, ignoring surrounding
// whitespace and double quotes.
func isEnvTrue(value string) bool {
	v := strings.ToLower(strings.Trim(strings.TrimSpace(value), `"`))
	return v == "true" || v == "1" || v == "yes"
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	// Try parsing as duration (e.g., "1h", "30m", "90s")
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Bare integers are seconds
	if seconds, err := strconv.Atoi(value); err == nil {
		return time.Duration(seconds) * time.Second
	}

	return defaultValue
}
