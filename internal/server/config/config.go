// Package config handles configuration for the server component,
// including defaults, JSON overlay, environment and command-line flags.
package config

import (
	"fmt"
	"time"

	"github.com/dmitrijs2005/notevault/internal/common"
	"github.com/dmitrijs2005/notevault/internal/dbx"
	"github.com/dmitrijs2005/notevault/internal/server/payloads"
)

const (
	HasherArgon2id = "argon2id"
	HasherBcrypt   = "bcrypt"
)

// Config holds runtime settings for the notevault server.
//
// TrustchainPrivateKey, when set, is a base64 Ed25519 seed or key and selects
// EdDSA tokens; otherwise tokens are HS256-signed with SecretKey.
type Config struct {
	EndpointAddrGRPC string `env:"GRPC_ADDR"`

	StorageDriver string `env:"STORAGE_DRIVER"`
	DatabaseDSN   string `env:"DATABASE_DSN"`
	SQLitePath    string `env:"SQLITE_PATH"`

	PayloadBackend string `env:"PAYLOAD_BACKEND"`
	S3AccessKey    string `env:"S3_ACCESS_KEY"`
	S3SecretKey    string `env:"S3_SECRET_KEY"`
	S3Bucket       string `env:"S3_BUCKET"`
	S3Region       string `env:"S3_REGION"`
	S3BaseEndpoint string `env:"S3_ENDPOINT"`
	S3Prefix       string `env:"S3_PREFIX"`

	TrustchainID         string `env:"TRUSTCHAIN_ID"`
	TrustchainPrivateKey string `env:"TRUSTCHAIN_PRIVATE_KEY"`
	SecretKey            string `env:"SECRET_KEY"`

	Hasher     string `env:"HASHER"`
	BcryptCost int    `env:"BCRYPT_COST"`

	OTLPEndpoint    string        `env:"OTLP_ENDPOINT"`
	LogLevel        string        `env:"LOG_LEVEL"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT"`
}

// LoadDefaults populates Config with development defaults.
// SecretKey is insecure and must be overridden outside development.
func (c *Config) LoadDefaults() {
	c.EndpointAddrGRPC = ":50051"
	c.StorageDriver = string(dbx.SQLite)
	c.SQLitePath = "notevault.db"
	c.PayloadBackend = payloads.BackendDB
	c.S3Bucket = "notevault"
	c.S3Region = "us-east-1"
	c.S3Prefix = "payloads"
	c.TrustchainID = "notevault-dev"
	c.SecretKey = "secretKey"
	c.Hasher = HasherArgon2id
	c.LogLevel = "info"
	c.ShutdownTimeout = 10 * time.Second
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file, the environment and finally command-line flags.
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseJson(cfg); err != nil {
		return nil, fmt.Errorf("json config: %w", err)
	}
	if err := parseEnv(cfg); err != nil {
		return nil, fmt.Errorf("env config: %w", err)
	}
	if err := parseFlags(cfg); err != nil {
		return nil, fmt.Errorf("flags: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects unknown enum values and missing storage targets.
func (c *Config) Validate() error {
	invalid := func(format string, args ...any) error {
		return fmt.Errorf("%w: %s", common.ErrorInvalidInput, fmt.Sprintf(format, args...))
	}

	if c.EndpointAddrGRPC == "" {
		return invalid("grpc address is empty")
	}

	switch dbx.Dialect(c.StorageDriver) {
	case dbx.Postgres:
		if c.DatabaseDSN == "" {
			return invalid("database dsn is required for %s", c.StorageDriver)
		}
	case dbx.SQLite:
		if c.SQLitePath == "" {
			return invalid("sqlite path is required for %s", c.StorageDriver)
		}
	default:
		return invalid("unknown storage driver %q", c.StorageDriver)
	}

	switch c.PayloadBackend {
	case payloads.BackendDB:
	case payloads.BackendS3:
		if c.S3Bucket == "" {
			return invalid("s3 bucket is required for the s3 payload backend")
		}
	default:
		return invalid("unknown payload backend %q", c.PayloadBackend)
	}

	switch c.Hasher {
	case "", HasherArgon2id:
	case HasherBcrypt:
		if c.BcryptCost != 0 && (c.BcryptCost < 4 || c.BcryptCost > 31) {
			return invalid("bcrypt cost %d out of range", c.BcryptCost)
		}
	default:
		return invalid("unknown hasher %q", c.Hasher)
	}

	if c.ShutdownTimeout <= 0 {
		return invalid("shutdown timeout must be positive")
	}

	if c.TrustchainID == "" {
		return invalid("trustchain id is empty")
	}
	if c.TrustchainPrivateKey == "" && c.SecretKey == "" {
		return invalid("either a trustchain private key or a secret key is required")
	}
	return nil
}

// SQLTarget returns the DSN or file path for the configured storage driver.
func (c *Config) SQLTarget() string {
	if dbx.Dialect(c.StorageDriver) == dbx.SQLite {
		return c.SQLitePath
	}
	return c.DatabaseDSN
}

func (c *Config) S3() payloads.S3Config {
	return payloads.S3Config{
		Endpoint:  c.S3BaseEndpoint,
		Region:    c.S3Region,
		Bucket:    c.S3Bucket,
		AccessKey: c.S3AccessKey,
		SecretKey: c.S3SecretKey,
		Prefix:    c.S3Prefix,
	}
}
