package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/notevault/internal/flagx"
	"github.com/dmitrijs2005/notevault/internal/timex"
)

// JsonConfig is the on-disk shape of the config file. Durations accept both
// strings such as "5s" and integer nanoseconds. Fields left out of the file
// keep their current value.
type JsonConfig struct {
	EndpointAddrGRPC     string         `json:"endpoint_addr_grpc"`
	StorageDriver        string         `json:"storage_driver"`
	DatabaseDSN          string         `json:"database_dsn"`
	SQLitePath           string         `json:"sqlite_path"`
	PayloadBackend       string         `json:"payload_backend"`
	S3AccessKey          string         `json:"s3_access_key"`
	S3SecretKey          string         `json:"s3_secret_key"`
	S3Bucket             string         `json:"s3_bucket"`
	S3Region             string         `json:"s3_region"`
	S3BaseEndpoint       string         `json:"s3_base_endpoint"`
	S3Prefix             string         `json:"s3_prefix"`
	TrustchainID         string         `json:"trustchain_id"`
	TrustchainPrivateKey string         `json:"trustchain_private_key"`
	SecretKey            string         `json:"secret_key"`
	Hasher               string         `json:"hasher"`
	BcryptCost           int            `json:"bcrypt_cost"`
	OTLPEndpoint         string         `json:"otlp_endpoint"`
	LogLevel             string         `json:"log_level"`
	ShutdownTimeout      timex.Duration `json:"shutdown_timeout"`
}

// parseJson loads the file named by -c / -config, if any, over config.
func parseJson(config *Config) error {
	path := flagx.JsonConfigFlags()
	if path == "" {
		return nil
	}

	file, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		return err
	}

	set(&config.EndpointAddrGRPC, c.EndpointAddrGRPC)
	set(&config.StorageDriver, c.StorageDriver)
	set(&config.DatabaseDSN, c.DatabaseDSN)
	set(&config.SQLitePath, c.SQLitePath)
	set(&config.PayloadBackend, c.PayloadBackend)
	set(&config.S3AccessKey, c.S3AccessKey)
	set(&config.S3SecretKey, c.S3SecretKey)
	set(&config.S3Bucket, c.S3Bucket)
	set(&config.S3Region, c.S3Region)
	set(&config.S3BaseEndpoint, c.S3BaseEndpoint)
	set(&config.S3Prefix, c.S3Prefix)
	set(&config.TrustchainID, c.TrustchainID)
	set(&config.TrustchainPrivateKey, c.TrustchainPrivateKey)
	set(&config.SecretKey, c.SecretKey)
	set(&config.Hasher, c.Hasher)
	set(&config.BcryptCost, c.BcryptCost)
	set(&config.OTLPEndpoint, c.OTLPEndpoint)
	set(&config.LogLevel, c.LogLevel)
	set(&config.ShutdownTimeout, c.ShutdownTimeout.Duration)

	return nil
}

func set[T comparable](dst *T, v T) {
	var zero T
	if v != zero {
		*dst = v
	}
}
