package config

import (
	"flag"
	"io"
	"os"

	"github.com/dmitrijs2005/notevault/internal/flagx"
)

var serverFlags = []string{
	"-a", "-D", "-d", "-f", "-P", "-u", "-p", "-b", "-g", "-e",
	"-i", "-k", "-s", "-H", "-o", "-v",
}

// parseFlags populates Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   gRPC bind address (e.g., ":50051")
//	-D string   storage driver: postgres or sqlite
//	-d string   PostgreSQL DSN
//	-f string   SQLite database file
//	-P string   payload backend: db or s3
//	-u string   S3 access key
//	-p string   S3 secret key
//	-b string   S3 bucket name
//	-g string   S3 region
//	-e string   S3 base endpoint (e.g., "http://127.0.0.1:9000/")
//	-i string   trustchain id
//	-k string   trustchain private key (base64 Ed25519)
//	-s string   HMAC secret key for HS256 tokens
//	-H string   password hasher: argon2id or bcrypt
//	-o string   OTLP/HTTP trace endpoint
//	-v string   log level
//
// Arguments not in this list are filtered out with flagx.FilterArgs first.
func parseFlags(config *Config) error {
	args := flagx.FilterArgs(os.Args[1:], serverFlags)

	fs := flag.NewFlagSet("main", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&config.EndpointAddrGRPC, "a", config.EndpointAddrGRPC, "address and port to run server")
	fs.StringVar(&config.StorageDriver, "D", config.StorageDriver, "storage driver")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SQLitePath, "f", config.SQLitePath, "sqlite database file")
	fs.StringVar(&config.PayloadBackend, "P", config.PayloadBackend, "payload backend")
	fs.StringVar(&config.S3AccessKey, "u", config.S3AccessKey, "S3 access key")
	fs.StringVar(&config.S3SecretKey, "p", config.S3SecretKey, "S3 secret key")
	fs.StringVar(&config.S3Bucket, "b", config.S3Bucket, "S3 bucket")
	fs.StringVar(&config.S3Region, "g", config.S3Region, "S3 region")
	fs.StringVar(&config.S3BaseEndpoint, "e", config.S3BaseEndpoint, "S3 base endpoint")
	fs.StringVar(&config.TrustchainID, "i", config.TrustchainID, "trustchain id")
	fs.StringVar(&config.TrustchainPrivateKey, "k", config.TrustchainPrivateKey, "trustchain private key")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")
	fs.StringVar(&config.Hasher, "H", config.Hasher, "password hasher")
	fs.StringVar(&config.OTLPEndpoint, "o", config.OTLPEndpoint, "OTLP trace endpoint")
	fs.StringVar(&config.LogLevel, "v", config.LogLevel, "log level")

	return fs.Parse(args)
}
