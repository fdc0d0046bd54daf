package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string `env:"PORT,      default=8080"`
	Env       string `env:"ENV,       default=development"`
	JWTSecret string `env:"JWT_SECRET"`
	LogLevel  string `env:"LOG_LEVEL, default=info"`

	// TokenTTL bounds the lifetime of issued session tokens.
	TokenTTL time.Duration `env:"TOKEN_TTL, default=24h"`
	// AdminUsername is granted the admin role at signup.
	AdminUsername string `env:"ADMIN_USERNAME, default=admin"`

	OTP       OTPConfig
	Login     LoginConfig
	Artifacts ArtifactsConfig
	Store     StoreConfig
	Redis     RedisConfig
}

// OTPConfig bounds the one-time-passcode flow.
type OTPConfig struct {
	TTL         time.Duration `env:"OTP_TTL,          default=5m"`
	MaxAttempts int           `env:"OTP_MAX_ATTEMPTS, default=5"`
}

// LoginConfig bounds failed password checks per username.
type LoginConfig struct {
	MaxFailures   int           `env:"LOGIN_MAX_FAILURES,   default=5"`
	FailureWindow time.Duration `env:"LOGIN_FAILURE_WINDOW, default=15m"`
}

// ArtifactsConfig points at the trained model and its column schema.
type ArtifactsConfig struct {
	ColumnsPath string `env:"COLUMNS_PATH, default=column.json"`
	ModelPath   string `env:"MODEL_PATH,   default=maharashtra_region_model.json"`
}

// StoreConfig selects the user-store backend: "file" (default) or "mongo".
type StoreConfig struct {
	Backend   string `env:"STORE_BACKEND, default=file"`
	UsersFile string `env:"USERS_FILE,    default=users.json"`

	Mongo MongoConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=house_price"`
}

// RedisConfig is optional: with no address set, the login attempt limiter
// falls back to process memory.
type RedisConfig struct {
	Addr string `env:"REDIS_ADDR"`
	DB   int    `env:"REDIS_DB, default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
