// Package client is the CLI side of the notevault gRPC API.
//
// GRPCClient owns the connection, attaches the account credentials to every
// call through a unary interceptor and maps gRPC status codes to the
// sentinel errors below, so callers can match them with errors.Is.
package client
