package config

import (
	"flag"
	"io"
	"os"

	"github.com/dmitrijs2005/notevault/internal/flagx"
)

func parseFlags(cfg *Config) error {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-u", "-t"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.ServerEndpointAddr, "a", cfg.ServerEndpointAddr, "address and port to access server")
	fs.StringVar(&cfg.Email, "u", cfg.Email, "account email")
	fs.DurationVar(&cfg.Timeout, "t", cfg.Timeout, "per-call timeout")

	return fs.Parse(args)
}
