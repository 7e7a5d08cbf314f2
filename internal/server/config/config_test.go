package config

import (
	"os"
	"testing"
	"time"

	"github.com/dmitrijs2005/notevault/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, ":50051", c.EndpointAddrGRPC)
	assert.Equal(t, "sqlite", c.StorageDriver)
	assert.Equal(t, "notevault.db", c.SQLitePath)
	assert.Equal(t, "db", c.PayloadBackend)
	assert.Equal(t, "notevault-dev", c.TrustchainID)
	assert.Equal(t, HasherArgon2id, c.Hasher)
	assert.Equal(t, 10*time.Second, c.ShutdownTimeout)
	require.NoError(t, c.Validate())
}

func TestLoadConfig_UsesDefaultsBeforeParsing(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	os.Args = []string{"testbin"}

	c, err := LoadConfig()
	require.NoError(t, err)

	var want Config
	want.LoadDefaults()
	assert.Equal(t, &want, c)
}

func TestLoadConfig_Precedence(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	path := writeTempJSON(t, "", "", map[string]any{
		"endpoint_addr_grpc": ":1111",
		"trustchain_id":      "from-json",
		"log_level":          "debug",
	})
	t.Setenv("NOTEVAULT_TRUSTCHAIN_ID", "from-env")
	t.Setenv("NOTEVAULT_GRPC_ADDR", ":2222")
	os.Args = []string{"testbin", "-c", path, "-a", ":3333"}

	c, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, ":3333", c.EndpointAddrGRPC)
	assert.Equal(t, "from-env", c.TrustchainID)
	assert.Equal(t, "debug", c.LogLevel)
}

func TestLoadConfig_InvalidResult(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	os.Args = []string{"testbin", "-D", "mysql"}

	_, err := LoadConfig()
	require.ErrorIs(t, err, common.ErrorInvalidInput)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{"defaults", func(c *Config) {}, false},
		{"postgres with dsn", func(c *Config) { c.StorageDriver = "postgres"; c.DatabaseDSN = "postgres://x" }, false},
		{"postgres without dsn", func(c *Config) { c.StorageDriver = "postgres" }, true},
		{"sqlite without path", func(c *Config) { c.SQLitePath = "" }, true},
		{"unknown driver", func(c *Config) { c.StorageDriver = "mysql" }, true},
		{"s3 backend", func(c *Config) { c.PayloadBackend = "s3" }, false},
		{"s3 without bucket", func(c *Config) { c.PayloadBackend = "s3"; c.S3Bucket = "" }, true},
		{"unknown backend", func(c *Config) { c.PayloadBackend = "ftp" }, true},
		{"bcrypt default cost", func(c *Config) { c.Hasher = HasherBcrypt }, false},
		{"bcrypt bad cost", func(c *Config) { c.Hasher = HasherBcrypt; c.BcryptCost = 40 }, true},
		{"unknown hasher", func(c *Config) { c.Hasher = "md5" }, true},
		{"no trustchain", func(c *Config) { c.TrustchainID = "" }, true},
		{"no signing key", func(c *Config) { c.SecretKey = "" }, true},
		{"private key only", func(c *Config) { c.SecretKey = ""; c.TrustchainPrivateKey = "key" }, false},
		{"zero shutdown timeout", func(c *Config) { c.ShutdownTimeout = 0 }, true},
		{"no address", func(c *Config) { c.EndpointAddrGRPC = "" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var c Config
			c.LoadDefaults()
			tt.mutate(&c)

			err := c.Validate()
			if tt.wantErr {
				require.ErrorIs(t, err, common.ErrorInvalidInput)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestSQLTargetAndS3(t *testing.T) {
	var c Config
	c.LoadDefaults()
	c.DatabaseDSN = "postgres://x"
	assert.Equal(t, "notevault.db", c.SQLTarget())

	c.StorageDriver = "postgres"
	assert.Equal(t, "postgres://x", c.SQLTarget())

	c.S3AccessKey = "ak"
	s3 := c.S3()
	assert.Equal(t, "notevault", s3.Bucket)
	assert.Equal(t, "ak", s3.AccessKey)
	assert.Equal(t, "payloads", s3.Prefix)
}
