package config

import (
	"context"
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`
	// BaseURL is the public storefront origin (checkout redirects).
	BaseURL string `env:"BASE_URL,  default=http://localhost:3000"`

	JWT     JWTConfig
	Mongo   MongoConfig
	Redis   RedisConfig
	Storage StorageConfig
	Stripe  StripeConfig
}

type JWTConfig struct {
	Secret   string        `env:"JWT_SECRET, required"`
	TokenTTL time.Duration `env:"JWT_TTL,    default=24h"`
}

type MongoConfig struct {
	URI         string `env:"MONGO_URI,           default=mongodb://localhost:27017"`
	Database    string `env:"MONGO_DB,            default=storefront"`
	MaxPoolSize uint64 `env:"MONGO_MAX_POOL_SIZE, default=50"`
	MinPoolSize uint64 `env:"MONGO_MIN_POOL_SIZE, default=0"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR,      default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,        default=0"`
	PoolSize int    `env:"REDIS_POOL_SIZE, default=10"`
	TLS      bool   `env:"REDIS_TLS,       default=false"`
	// CategoryTTL bounds how long the category listing is cached.
	CategoryTTL time.Duration `env:"REDIS_CATEGORY_TTL, default=10m"`
}

type StorageConfig struct {
	Driver    string `env:"STORAGE_DRIVER,     default=local"`
	LocalRoot string `env:"STORAGE_LOCAL_ROOT, default=public"`

	S3Bucket   string `env:"S3_BUCKET"`
	S3Region   string `env:"S3_REGION,   default=us-east-1"`
	S3Endpoint string `env:"S3_ENDPOINT"`
	S3Key      string `env:"S3_KEY"`
	S3Secret   string `env:"S3_SECRET"`
	S3URL      string `env:"S3_URL"`
}

type StripeConfig struct {
	SecretKey     string `env:"STRIPE_SECRET_KEY"`
	WebhookSecret string `env:"STRIPE_WEBHOOK_SECRET"`
	Currency      string `env:"STRIPE_CURRENCY, default=usd"`
}

// IsDevelopment reports whether the process runs in local development mode.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// Load reads a .env file when present, then configuration from environment
// variables using go-envconfig. It panics on invalid configuration.
func Load() *Config {
	_ = godotenv.Load()

	cfg, err := LoadFrom(context.Background(), envconfig.OsLookuper())
	if err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return cfg
}

// LoadFrom resolves the configuration from an explicit lookuper.
func LoadFrom(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: lookuper,
	}); err != nil {
		return nil, err
	}
	return &cfg, nil
}
