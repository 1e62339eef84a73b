// Command lpxctl is a small terminal client for the LaunchpadX API.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ahashem12/LaunchpadX-sub001/client"
	"github.com/ahashem12/LaunchpadX-sub001/internal/logger"
)

type globalOptions struct {
	apiURL  string
	token   string
	timeout time.Duration
	verbose bool
}

func (o *globalOptions) client() (*client.Client, error) {
	return client.New(o.apiURL,
		client.WithToken(o.token),
		client.WithTimeout(o.timeout),
		client.WithUserAgent("lpxctl"),
	)
}

func (o *globalOptions) logger() *zap.Logger {
	level := "warn"
	if o.verbose {
		level = "debug"
	}
	log, err := logger.New(level, "console")
	if err != nil {
		return zap.NewNop()
	}
	return log
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}

	root := &cobra.Command{
		Use:           "lpxctl",
		Short:         "Work with LaunchpadX projects from the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.apiURL, "api", envOr("LPX_API_URL", "http://localhost:8000"), "API base URL (LPX_API_URL)")
	root.PersistentFlags().StringVar(&opts.token, "token", os.Getenv("LPX_TOKEN"), "bearer token of the signed in user (LPX_TOKEN)")
	root.PersistentFlags().DurationVar(&opts.timeout, "timeout", 10*time.Second, "per request timeout")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "log debug output")

	root.AddCommand(newRolesCmd(opts))
	root.AddCommand(newAgreementCmd(opts))
	return root
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
