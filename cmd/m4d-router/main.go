package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "m4d-router",
		Short: "A client-side URL router for server-driven Go web apps",
		Long: `m4d-router maps URL patterns to handlers and reacts to browser
navigation: history changes, hash changes, and link clicks.

The demo server wires a route table to a real browser page over the
WebSocket bridge, so navigation in the page drives Go handlers without
full reloads.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		serveCmd(),
		versionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "\033[31mError:\033[0m %s\n", err)
		os.Exit(1)
	}
}
