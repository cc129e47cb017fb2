package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/fx"

	"github.com/tachyon322/yookassa-go/pkg/yookassa"
)

// Config holds the runtime settings for the webhook receiver. Credentials are
// intentionally allowed to be empty at startup: the client fails fast on the
// first call instead, so a receiver can boot before secrets are provisioned.
type Config struct {
	Environment string
	ListenAddr  string

	APIBaseURL string
	ShopID     string
	SecretKey  string

	DatabaseDSN string

	TracingEnabled   bool
	OTLPEndpoint     string
	OTLPProtocol     string
	SamplingRatio    float64
	ShutdownTimeout  time.Duration
	WebhookRateLimit int
}

// Load reads configuration from the environment. A .env file is applied
// first when present so local runs match the container setup.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		Environment:      getEnv("ENVIRONMENT", "development"),
		ListenAddr:       getEnv("LISTEN_ADDR", ":8080"),
		APIBaseURL:       getEnv("YOOKASSA_API_URL", yookassa.DefaultBaseURL),
		ShopID:           getEnv("YOOKASSA_SHOP_ID", ""),
		SecretKey:        getEnv("YOOKASSA_SECRET_KEY", ""),
		DatabaseDSN:      getEnv("DATABASE_DSN", "file:yookassa.db?_journal_mode=WAL"),
		TracingEnabled:   getEnvBool("TRACING_ENABLED", false),
		OTLPEndpoint:     getEnv("OTLP_ENDPOINT", ""),
		OTLPProtocol:     getEnv("OTLP_PROTOCOL", "grpc"),
		SamplingRatio:    getEnvFloat("TRACING_SAMPLING_RATIO", 0.1),
		ShutdownTimeout:  getEnvDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
		WebhookRateLimit: getEnvInt("WEBHOOK_RATE_LIMIT", 120),
	}
}

// ClientConfig builds the payment API client configuration.
func (c Config) ClientConfig() yookassa.Config {
	return yookassa.Config{
		BaseURL:   c.APIBaseURL,
		ShopID:    c.ShopID,
		SecretKey: c.SecretKey,
	}
}

func (c Config) IsProduction() bool {
	return strings.EqualFold(c.Environment, "production")
}

var Module = fx.Module("config",
	fx.Provide(Load),
)

func getEnv(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return fallback
	}
	return value
}

func getEnvInt(key string, fallback int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}

func getEnvFloat(key string, fallback float64) float64 {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fallback
	}
	return value
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	value, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}
	return value
}
