// Package main issues signer tokens for the crowdfund host.
//
// Usage: signer [address ...]
//
// Addresses given as arguments are appended to SIGNER_ADDRESSES. The token
// is printed to stdout. SECURITY_SIGNING_SECRET must match the server's.
//
// Import Path: ezcrow.dev/crowdfund/cmd/signer
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/caarlos0/env/v11"

	"ezcrow.dev/crowdfund/internal/api/middleware"
	"ezcrow.dev/crowdfund/internal/campaign"
)

type signerEnv struct {
	Secret    string        `env:"SECURITY_SIGNING_SECRET,required"`
	Issuer    string        `env:"SECURITY_TOKEN_ISSUER" envDefault:"crowdfund"`
	TTL       time.Duration `env:"SECURITY_TOKEN_TTL" envDefault:"24h"`
	Subject   string        `env:"SIGNER_SUBJECT" envDefault:"cli"`
	Addresses []string      `env:"SIGNER_ADDRESSES" envSeparator:","`
	Roles     []string      `env:"SIGNER_ROLES" envSeparator:","`
}

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "signer error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, out io.Writer) error {
	var cfg signerEnv
	if err := env.Parse(&cfg); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return issue(cfg, args, out)
}

func issue(cfg signerEnv, args []string, out io.Writer) error {
	addrs := append(cfg.Addresses, args...)
	if len(addrs) == 0 && len(cfg.Roles) == 0 {
		return errors.New("no addresses or roles to sign for")
	}
	for _, a := range addrs {
		if _, err := campaign.ParseAddress(a); err != nil {
			return fmt.Errorf("address %q: %w", a, err)
		}
	}

	key, err := middleware.DeriveSigningKey(cfg.Secret)
	if err != nil {
		return err
	}
	token, expiresAt, err := middleware.GenerateToken(middleware.JWTConfig{
		SigningKey: key,
		Issuer:     cfg.Issuer,
		ExpiresIn:  cfg.TTL,
	}, cfg.Subject, addrs, cfg.Roles)
	if err != nil {
		return fmt.Errorf("generate token: %w", err)
	}

	fmt.Fprintln(out, token)
	fmt.Fprintf(os.Stderr, "expires at %s\n", expiresAt.UTC().Format(time.RFC3339))
	return nil
}
