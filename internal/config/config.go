package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ServiceName string
	ServerPort  int
	LogLevel    string

	DBDriver    string
	DatabaseURL string

	JWTSecret   []byte
	JWTIssuer   string
	JWTAudience string
	JWTTTL      time.Duration
	RefreshTTL  time.Duration

	StripeSecretKey   string
	StripeAPIURL      string
	PaymentSuccessURL string
	PaymentCancelURL  string
	PaymentTimeout    time.Duration

	RedisAddr      string
	RedisPassword  string
	IdempotencyTTL time.Duration

	KafkaBrokers []string

	ESURL      string
	ESUser     string
	ESPassword string
	ESIndex    string
}

// Load reads the configuration from the environment. A .env file in the
// working directory is loaded first when present.
func Load() Config {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("notice: .env file not found: %v. Using system environment variables", err)
	}

	return Config{
		ServiceName: EnvDefault("SERVICE_NAME", "ecommerce"),
		ServerPort:  EnvIntDefault("SERVER_PORT", 8080),
		LogLevel:    EnvDefault("LOG_LEVEL", "info"),

		DBDriver:    EnvDefault("DB_DRIVER", "postgres"),
		DatabaseURL: os.Getenv("DATABASE_URL"),

		JWTSecret:   []byte(os.Getenv("JWT_SECRET")),
		JWTIssuer:   EnvDefault("JWT_ISSUER", "ecommerce"),
		JWTAudience: EnvDefault("JWT_AUDIENCE", "ecommerce"),
		JWTTTL:      EnvDurationDefault("JWT_TTL", 2*time.Hour),
		RefreshTTL:  EnvDurationDefault("REFRESH_TTL", 7*24*time.Hour),

		StripeSecretKey:   os.Getenv("STRIPE_SECRET_KEY"),
		StripeAPIURL:      os.Getenv("STRIPE_API_URL"),
		PaymentSuccessURL: EnvDefault("PAYMENT_SUCCESS_URL", "https://localhost:7025/payment-success"),
		PaymentCancelURL:  EnvDefault("PAYMENT_CANCEL_URL", "https://localhost:7025/payment-cancel"),
		PaymentTimeout:    EnvDurationDefault("PAYMENT_TIMEOUT", 15*time.Second),

		RedisAddr:      os.Getenv("REDIS_ADDR"),
		RedisPassword:  os.Getenv("REDIS_PASSWORD"),
		IdempotencyTTL: EnvDurationDefault("IDEMPOTENCY_TTL", 24*time.Hour),

		KafkaBrokers: CSV(os.Getenv("KAFKA_BROKERS")),

		ESURL:      os.Getenv("ES_URL"),
		ESUser:     os.Getenv("ES_USER"),
		ESPassword: os.Getenv("ES_PASSWORD"),
		ESIndex:    EnvDefault("ES_INDEX", "products"),
	}
}

// MustLoad is Load plus the checks for settings the service cannot start without.
func MustLoad() Config {
	cfg := Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}
	return cfg
}

func CSV(v string) []string {
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func EnvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func EnvIntDefault(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func EnvDurationDefault(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}
