package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	// CORSOrigins is the comma-separated allow list. The default mirrors the
	// original deployment: any origin.
	CORSOrigins []string `env:"CORS_ORIGINS, default=*"`

	JWT   JWTConfig
	Mongo MongoConfig
	Redis RedisConfig
}

type JWTConfig struct {
	Secret    string `env:"JWT_SECRET"`
	Algorithm string `env:"JWT_ALGORITHM, default=HS256"`
	// TokenTTL is the issuer default applied when a caller does not request
	// an explicit lifetime.
	TokenTTL time.Duration `env:"TOKEN_TTL, default=15m"`
	// LoginTokenTTL is the lifetime the login flow explicitly requests.
	LoginTokenTTL time.Duration `env:"LOGIN_TOKEN_TTL, default=30m"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=college"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR, default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,   default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
