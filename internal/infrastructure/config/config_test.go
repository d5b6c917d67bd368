package config

import (
	"context"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFrom_Defaults(t *testing.T) {
	cfg, err := LoadFrom(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET": "s3cret",
	}))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.True(t, cfg.IsDevelopment())
	assert.Equal(t, 24*time.Hour, cfg.JWT.TokenTTL)
	assert.Equal(t, "storefront", cfg.Mongo.Database)
	assert.Equal(t, 10*time.Minute, cfg.Redis.CategoryTTL)
	assert.Equal(t, 10, cfg.Redis.PoolSize)
	assert.False(t, cfg.Redis.TLS)
	assert.Empty(t, cfg.Redis.Password)
	assert.EqualValues(t, 50, cfg.Mongo.MaxPoolSize)
	assert.Equal(t, "local", cfg.Storage.Driver)
	assert.Equal(t, "usd", cfg.Stripe.Currency)
}

func TestLoadFrom_Overrides(t *testing.T) {
	cfg, err := LoadFrom(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET":          "s3cret",
		"ENV":                 "production",
		"JWT_TTL":             "2h",
		"STORAGE_DRIVER":      "s3",
		"S3_BUCKET":           "images",
		"BASE_URL":            "https://shop.example.com",
		"REDIS_PASSWORD":      "hunter2",
		"REDIS_TLS":           "true",
		"REDIS_POOL_SIZE":     "25",
		"MONGO_MIN_POOL_SIZE": "5",
	}))
	require.NoError(t, err)

	assert.False(t, cfg.IsDevelopment())
	assert.Equal(t, 2*time.Hour, cfg.JWT.TokenTTL)
	assert.Equal(t, "s3", cfg.Storage.Driver)
	assert.Equal(t, "images", cfg.Storage.S3Bucket)
	assert.Equal(t, "https://shop.example.com", cfg.BaseURL)
	assert.Equal(t, "hunter2", cfg.Redis.Password)
	assert.True(t, cfg.Redis.TLS)
	assert.Equal(t, 25, cfg.Redis.PoolSize)
	assert.EqualValues(t, 5, cfg.Mongo.MinPoolSize)
}

func TestLoadFrom_RequiresJWTSecret(t *testing.T) {
	_, err := LoadFrom(context.Background(), envconfig.MapLookuper(map[string]string{}))
	assert.Error(t, err)
}
