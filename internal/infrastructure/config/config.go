package config

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// MinSecretBytes is the shortest JWT_SECRET accepted for HS256.
const MinSecretBytes = 32

const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
	BackendMongo  = "mongo"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	Auth    AuthConfig
	Storage StorageConfig
	HTTP    HTTPConfig
	Mongo   MongoConfig
	Redis   RedisConfig
}

type AuthConfig struct {
	JWTSecret      string        `env:"JWT_SECRET, required"`
	JWTIssuer      string        `env:"JWT_ISSUER, default=uuid-resolver"`
	TokenTTL       time.Duration `env:"TOKEN_TTL, default=30m"`
	PasswordHasher string        `env:"PASSWORD_HASHER, default=bcrypt"`
	BcryptCost     int           `env:"BCRYPT_COST, default=10"`
	SeedFile       string        `env:"SEED_FILE"`
}

type StorageConfig struct {
	Backend string `env:"MAPPING_BACKEND, default=memory"`
}

type HTTPConfig struct {
	ReadTimeout     time.Duration `env:"HTTP_READ_TIMEOUT, default=15s"`
	WriteTimeout    time.Duration `env:"HTTP_WRITE_TIMEOUT, default=15s"`
	ShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT, default=10s"`
	BodyLimit       string        `env:"HTTP_BODY_LIMIT, default=1M"`
	SwaggerEnabled  bool          `env:"SWAGGER_ENABLED, default=false"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=uuid_resolver"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR,     default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,       default=0"`
}

// Load reads configuration from the process environment.
func Load(ctx context.Context) (*Config, error) {
	return LoadFrom(ctx, envconfig.OsLookuper())
}

// LoadFrom reads configuration through l and validates it.
func LoadFrom(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}

// Validate checks cross-field constraints envconfig cannot express.
func (c *Config) Validate() error {
	var errs []error

	if len(c.Auth.JWTSecret) < MinSecretBytes {
		errs = append(errs, fmt.Errorf("JWT_SECRET must be at least %d bytes", MinSecretBytes))
	}
	if c.Auth.TokenTTL <= 0 {
		errs = append(errs, errors.New("TOKEN_TTL must be positive"))
	}
	switch strings.ToLower(c.Auth.PasswordHasher) {
	case "bcrypt", "argon2id":
	default:
		errs = append(errs, fmt.Errorf("PASSWORD_HASHER %q is not one of bcrypt, argon2id", c.Auth.PasswordHasher))
	}
	switch c.Storage.Backend {
	case BackendMemory, BackendRedis, BackendMongo:
	default:
		errs = append(errs, fmt.Errorf("MAPPING_BACKEND %q is not one of memory, redis, mongo", c.Storage.Backend))
	}

	return errors.Join(errs...)
}

// IsDevelopment reports whether ENV selects the developer profile.
func (c *Config) IsDevelopment() bool {
	return strings.EqualFold(c.Env, "development")
}

// Addr is the listen address derived from Port.
func (c *Config) Addr() string {
	return ":" + c.Port
}
