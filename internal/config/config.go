package config

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// SecretFetcher reads a named secret. *aws.SecretsClient satisfies it.
type SecretFetcher interface {
	GetSecret(ctx context.Context, name string) (string, error)
}

type Config struct {
	Port        string
	Environment string

	MongoURL string
	DBName   string

	JWTSecret  string
	JWTExpiry  time.Duration
	AdminEmail string

	StripeAPIKey        string
	StripeWebhookSecret string
	CheckoutCurrency    string

	EmailProvider  string
	SendGridAPIKey string
	SenderEmail    string
	SenderName     string
	SMTPHost       string
	SMTPPort       string
	SMTPUser       string
	SMTPPassword   string
	EmailQueueURL  string

	OutboxPollInterval time.Duration
	OutboxMaxAttempts  int
	OutboxBaseBackoff  time.Duration
	OutboxBatchSize    int

	CORSOrigins []string

	RedisURL string
	CacheTTL time.Duration

	RateLimitRPS   float64
	RateLimitBurst int

	UseAWSSecrets       bool
	SecretsPrefix       string
	S3Bucket            string
	S3Prefix            string
	CloudFrontDomain    string
	OrderEventsTopicARN string
	CloudWatchEnabled   bool
	CloudWatchNamespace string
	CloudWatchLogGroup  string
}

// LoadConfig reads .env (if present) and the process environment.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:        getEnv("PORT", "8000"),
		Environment: getEnv("ENVIRONMENT", "development"),

		MongoURL: os.Getenv("MONGO_URL"),
		DBName:   os.Getenv("DB_NAME"),

		JWTSecret:  os.Getenv("JWT_SECRET"),
		JWTExpiry:  getDuration("JWT_EXPIRY", 30*time.Minute),
		AdminEmail: getEnv("ADMIN_EMAIL", "admin@urbanthreads.com"),

		StripeAPIKey:        os.Getenv("STRIPE_API_KEY"),
		StripeWebhookSecret: os.Getenv("STRIPE_WEBHOOK_SECRET"),
		CheckoutCurrency:    getEnv("CHECKOUT_CURRENCY", "brl"),

		EmailProvider:  strings.ToLower(getEnv("EMAIL_PROVIDER", "log")),
		SendGridAPIKey: os.Getenv("SENDGRID_API_KEY"),
		SenderEmail:    getEnv("SENDER_EMAIL", "noreply@urbanthreads.com"),
		SenderName:     getEnv("SENDER_NAME", "Urban Threads"),
		SMTPHost:       os.Getenv("SMTP_HOST"),
		SMTPPort:       getEnv("SMTP_PORT", "587"),
		SMTPUser:       os.Getenv("SMTP_USER"),
		SMTPPassword:   os.Getenv("SMTP_PASSWORD"),
		EmailQueueURL:  os.Getenv("EMAIL_QUEUE_URL"),

		OutboxPollInterval: getDuration("OUTBOX_POLL_INTERVAL", 5*time.Second),
		OutboxMaxAttempts:  getInt("OUTBOX_MAX_ATTEMPTS", 5),
		OutboxBaseBackoff:  getDuration("OUTBOX_BASE_BACKOFF", 30*time.Second),
		OutboxBatchSize:    getInt("OUTBOX_BATCH_SIZE", 20),

		CORSOrigins: splitOrigins(getEnv("CORS_ORIGINS", "*")),

		RedisURL: os.Getenv("REDIS_URL"),
		CacheTTL: getDuration("CACHE_TTL", 5*time.Minute),

		RateLimitRPS:   getFloat("RATE_LIMIT_RPS", 10),
		RateLimitBurst: getInt("RATE_LIMIT_BURST", 20),

		UseAWSSecrets:       os.Getenv("AWS_USE_SECRETS") == "true",
		SecretsPrefix:       getEnv("AWS_SECRETS_PREFIX", "storefront/"),
		S3Bucket:            os.Getenv("AWS_S3_BUCKET"),
		S3Prefix:            getEnv("AWS_S3_PREFIX", "products/"),
		CloudFrontDomain:    os.Getenv("AWS_CLOUDFRONT_DOMAIN"),
		OrderEventsTopicARN: os.Getenv("ORDER_EVENTS_TOPIC_ARN"),
		CloudWatchEnabled:   os.Getenv("CLOUDWATCH_ENABLED") == "true",
		CloudWatchNamespace: getEnv("CLOUDWATCH_NAMESPACE", "Storefront"),
		CloudWatchLogGroup:  getEnv("CLOUDWATCH_LOG_GROUP", "/storefront/api"),
	}

	return cfg, nil
}

// ApplySecrets overrides sensitive values with Secrets Manager entries.
// Missing or unreadable secrets keep the environment value.
func (c *Config) ApplySecrets(ctx context.Context, sm SecretFetcher, logger *zap.Logger) {
	if sm == nil {
		return
	}
	targets := map[string]*string{
		"JWT_SECRET":            &c.JWTSecret,
		"STRIPE_API_KEY":        &c.StripeAPIKey,
		"STRIPE_WEBHOOK_SECRET": &c.StripeWebhookSecret,
		"SENDGRID_API_KEY":      &c.SendGridAPIKey,
	}
	for name, dst := range targets {
		v, err := sm.GetSecret(ctx, c.SecretsPrefix+name)
		if err != nil || v == "" {
			logger.Warn("secret not loaded, using environment value", zap.String("secret", name), zap.Error(err))
			continue
		}
		*dst = v
	}
}

// Validate checks the settings the server cannot start without.
func (c *Config) Validate() error {
	required := map[string]string{
		"MONGO_URL":      c.MongoURL,
		"DB_NAME":        c.DBName,
		"JWT_SECRET":     c.JWTSecret,
		"STRIPE_API_KEY": c.StripeAPIKey,
	}
	for _, key := range []string{"MONGO_URL", "DB_NAME", "JWT_SECRET", "STRIPE_API_KEY"} {
		if required[key] == "" {
			return fmt.Errorf("%s is required", key)
		}
	}

	switch c.EmailProvider {
	case "log":
	case "sendgrid":
		if c.SendGridAPIKey == "" {
			return fmt.Errorf("SENDGRID_API_KEY is required for EMAIL_PROVIDER=sendgrid")
		}
	case "smtp":
		if c.SMTPHost == "" {
			return fmt.Errorf("SMTP_HOST is required for EMAIL_PROVIDER=smtp")
		}
	case "sqs":
		if c.EmailQueueURL == "" {
			return fmt.Errorf("EMAIL_QUEUE_URL is required for EMAIL_PROVIDER=sqs")
		}
	default:
		return fmt.Errorf("unknown EMAIL_PROVIDER %q", c.EmailProvider)
	}

	if c.OutboxMaxAttempts < 1 {
		return fmt.Errorf("OUTBOX_MAX_ATTEMPTS must be at least 1")
	}
	return nil
}

// UsesAWS reports whether any AWS-backed feature is switched on.
func (c *Config) UsesAWS() bool {
	return c.UseAWSSecrets || c.S3Bucket != "" || c.OrderEventsTopicARN != "" ||
		c.CloudWatchEnabled || c.EmailProvider == "sqs"
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func splitOrigins(raw string) []string {
	var origins []string
	for _, o := range strings.Split(raw, ",") {
		o = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(o), "/"))
		if o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}
