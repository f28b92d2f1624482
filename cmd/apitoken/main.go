// apitoken mints bearer tokens for local development and scripted tests,
// signed with the same secret the server verifies with.
//
//	go run ./cmd/apitoken --config=config/local.yaml --email=phtcon@ucsb.edu --role=ROLE_ADMIN
//
// The token is printed on stdout; pass it as "Authorization: Bearer <token>".
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/ucsb-cs156/campus-api/internal/auth"
	"github.com/ucsb-cs156/campus-api/internal/config"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

type options struct {
	configPath string
	email      string
	name       string
	roles      []string
	ttl        time.Duration
}

func newRootCmd() *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:   "apitoken",
		Short: "Mint a bearer token for the campus API",
		Long: `Signs an access token with the jwt_secret and issuer from the server's
config file. Every token grants ROLE_USER; add --role=ROLE_ADMIN for admin
access, or list the e-mail under auth.admin_emails in the config.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.configPath, "config", os.Getenv("CONFIG_PATH"), "path to the configuration YAML file")
	flags.StringVar(&opts.email, "email", "", "e-mail the token is issued to")
	flags.StringVar(&opts.name, "name", "", "display name carried in the token")
	flags.StringArrayVar(&opts.roles, "role", nil, "extra role to grant, e.g. ROLE_ADMIN (repeatable)")
	flags.DurationVar(&opts.ttl, "ttl", 24*time.Hour, "how long the token stays valid")
	_ = cmd.MarkFlagRequired("email")

	return cmd
}

func run(cmd *cobra.Command, opts options) error {
	if opts.configPath == "" {
		return fmt.Errorf("config path is not set: use --config flag or CONFIG_PATH env var")
	}

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}

	token, err := auth.NewSigner(cfg.Auth.JWTSecret, cfg.Auth.Issuer).
		Sign(opts.email, opts.name, opts.roles, opts.ttl)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), token)
	return nil
}
