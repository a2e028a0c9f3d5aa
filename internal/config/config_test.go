package config

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeSecrets map[string]string

func (f fakeSecrets) GetSecret(_ context.Context, name string) (string, error) {
	if v, ok := f[name]; ok {
		return v, nil
	}
	return "", errors.New("secret not found")
}

func setRequired(t *testing.T) {
	t.Setenv("MONGO_URL", "mongodb://localhost:27017")
	t.Setenv("DB_NAME", "storefront")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("STRIPE_API_KEY", "sk_test_123")
}

func TestLoadConfigDefaults(t *testing.T) {
	setRequired(t)
	for _, key := range []string{"PORT", "JWT_EXPIRY", "EMAIL_PROVIDER", "CORS_ORIGINS", "OUTBOX_MAX_ATTEMPTS", "CHECKOUT_CURRENCY", "ADMIN_EMAIL"} {
		t.Setenv(key, "")
	}

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "8000", cfg.Port)
	assert.Equal(t, 30*time.Minute, cfg.JWTExpiry)
	assert.Equal(t, "log", cfg.EmailProvider)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	assert.Equal(t, 5, cfg.OutboxMaxAttempts)
	assert.Equal(t, "brl", cfg.CheckoutCurrency)
	assert.Equal(t, "admin@urbanthreads.com", cfg.AdminEmail)
}

func TestLoadConfigOverrides(t *testing.T) {
	setRequired(t)
	t.Setenv("JWT_EXPIRY", "1h")
	t.Setenv("CORS_ORIGINS", "http://localhost:3000/, https://shop.example.com")
	t.Setenv("OUTBOX_BATCH_SIZE", "7")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, time.Hour, cfg.JWTExpiry)
	assert.Equal(t, []string{"http://localhost:3000", "https://shop.example.com"}, cfg.CORSOrigins)
	assert.Equal(t, 7, cfg.OutboxBatchSize)
}

func TestValidate(t *testing.T) {
	t.Run("missing required key", func(t *testing.T) {
		cfg := &Config{MongoURL: "mongodb://x", DBName: "db", StripeAPIKey: "sk", EmailProvider: "log", OutboxMaxAttempts: 1}
		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "JWT_SECRET")
	})

	t.Run("sendgrid without key", func(t *testing.T) {
		cfg := &Config{MongoURL: "mongodb://x", DBName: "db", JWTSecret: "s", StripeAPIKey: "sk", EmailProvider: "sendgrid", OutboxMaxAttempts: 1}
		assert.Error(t, cfg.Validate())
	})

	t.Run("unknown provider", func(t *testing.T) {
		cfg := &Config{MongoURL: "mongodb://x", DBName: "db", JWTSecret: "s", StripeAPIKey: "sk", EmailProvider: "pigeon", OutboxMaxAttempts: 1}
		assert.Error(t, cfg.Validate())
	})
}

func TestApplySecrets(t *testing.T) {
	cfg := &Config{JWTSecret: "from-env", StripeAPIKey: "sk_env", SecretsPrefix: "storefront/"}
	sm := fakeSecrets{"storefront/JWT_SECRET": "from-secrets"}

	cfg.ApplySecrets(context.Background(), sm, zap.NewNop())

	assert.Equal(t, "from-secrets", cfg.JWTSecret)
	assert.Equal(t, "sk_env", cfg.StripeAPIKey)
}
