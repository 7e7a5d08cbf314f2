// Package cli implements the notevault command-line client.
//
// Each invocation runs one subcommand against the server:
//
//	notevault [-a addr] [-u email] <command> [args]
//
// Commands that act on an account send the email and password with the
// call. The password comes from NOTEVAULT_PASSWORD or is prompted for
// without echo.
package cli
