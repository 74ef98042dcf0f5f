package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"

	"resume-builder/internal/shared/telemetry"
)

const (
	DefaultPort          = "5000"
	DefaultOpenAIModel   = "gpt-3.5-turbo"
	DefaultOpenAIBaseURL = "https://api.openai.com/v1"
	DefaultMaxTokens     = 300
	DefaultStaticDir     = "dist"
	DefaultBodyLimit     = 100 << 10
)

// Config holds application configuration.
type Config struct {
	Port            string        `validate:"required"`
	Env             string        `validate:"oneof=dev local staging production"`
	StoreURI        string
	CORSAllowOrigin []string      `validate:"dive,required"`
	StaticDir       string        `validate:"required"`
	BodyLimitBytes  int64         `validate:"gt=0"`
	ShutdownTimeout time.Duration `validate:"gt=0"`

	OpenAIAPIKey    string
	OpenAIModel     string        `validate:"required"`
	OpenAIBaseURL   string        `validate:"required,url"`
	OpenAIMaxTokens int           `validate:"gte=1"`
	OpenAITimeout   time.Duration `validate:"gte=0"`

	SuggestRateLimit float64 `validate:"gte=0"`
	SuggestRateBurst int     `validate:"gte=0"`
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	// Best-effort load of local env files for dev convenience.
	loadEnvFiles(".env", "cmd/.env")

	storeURI := strings.TrimSpace(os.Getenv("MONGO_URI"))
	if storeURI == "" {
		storeURI = strings.TrimSpace(os.Getenv("DATABASE_URL"))
	}

	return Config{
		Port:             getEnv("PORT", DefaultPort),
		Env:              normalizeEnv(getEnv("ENV", "dev")),
		StoreURI:         storeURI,
		CORSAllowOrigin:  splitAndTrim(getEnv("CORS_ALLOW_ORIGINS", "*")),
		StaticDir:        getEnv("STATIC_DIR", DefaultStaticDir),
		BodyLimitBytes:   int64(getEnvInt("BODY_LIMIT_BYTES", DefaultBodyLimit)),
		ShutdownTimeout:  getEnvDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
		OpenAIAPIKey:     strings.TrimSpace(os.Getenv("OPENAI_API_KEY")),
		OpenAIModel:      getEnv("OPENAI_MODEL", DefaultOpenAIModel),
		OpenAIBaseURL:    getEnv("OPENAI_BASE_URL", DefaultOpenAIBaseURL),
		OpenAIMaxTokens:  getEnvInt("OPENAI_MAX_TOKENS", DefaultMaxTokens),
		OpenAITimeout:    time.Duration(getEnvInt("OPENAI_TIMEOUT_SECONDS", 0)) * time.Second,
		SuggestRateLimit: getEnvFloat("RATE_LIMIT_SUGGEST_RPS", 0),
		SuggestRateBurst: getEnvInt("RATE_LIMIT_SUGGEST_BURST", 0),
	}
}

// Validate checks field constraints and returns a readable error.
func (c Config) Validate() error {
	v := validator.New()
	if err := v.Struct(c); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s failed %q", fe.Namespace(), fe.Tag()))
			}
			return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
		}
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// AIEnabled reports whether a credential for the suggestion service is configured.
func (c Config) AIEnabled() bool {
	return c.OpenAIAPIKey != ""
}

func loadEnvFiles(paths ...string) {
	for _, path := range paths {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		// Load never overrides variables already present in the environment.
		if err := godotenv.Load(path); err != nil {
			telemetry.Warn("config.env_file_invalid", map[string]any{"path": path, "error": err})
		}
	}
}

func getEnv(key, def string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return def
}

func getEnvInt(key string, def int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	val, err := strconv.Atoi(raw)
	if err != nil {
		telemetry.Warn("config.invalid_int", map[string]any{"key": key, "value": raw})
		return def
	}
	return val
}

func getEnvFloat(key string, def float64) float64 {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	val, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		telemetry.Warn("config.invalid_float", map[string]any{"key": key, "value": raw})
		return def
	}
	return val
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	val, err := time.ParseDuration(raw)
	if err != nil {
		telemetry.Warn("config.invalid_duration", map[string]any{"key": key, "value": raw})
		return def
	}
	return val
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	var out []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	case "local":
		return "local"
	default:
		return "dev"
	}
}
