// Package config loads runtime configuration for the notevault CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected via -c or -config.
//  3. NOTEVAULT_* environment variables.
//  4. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-a string   address:port of the server gRPC endpoint
//	-u string   account email
//	-t string   per-call timeout (e.g. "5s")
//
// # JSON schema
//
//	{
//	  "server_endpoint_addr": "127.0.0.1:50051",
//	  "email": "alice@example.com",
//	  "timeout": "5s"
//	}
//
// The password is never read from the config file. It comes from
// NOTEVAULT_PASSWORD or an interactive prompt. NOTEVAULT_PASSPHRASE, when
// set, seals payloads on put and opens them on get.
package config
