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
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "formbind",
		Short: "Render and validate declarative forms",
		Long: `formbind renders form definitions (native YAML/JSON or OpenAPI request
bodies) as HTML or as an interactive terminal session, and validates
values against their rules.

Configuration is read from formbind.yaml, FORMBIND_* environment
variables and flags, in increasing order of precedence.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.load(cmd)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "config file (default formbind.yaml, or $FORMBIND_CONFIG)")
	flags.String("locale", "en", "locale for labels and actions")
	flags.String("renderer", "tui", "renderer: tui or html")
	flags.String("output", "json", "tui output format: json, form or pretty")
	flags.String("flow", "menu", "tui flow: menu or linear")
	flags.String("mode", "", "validation mode override: onChange, onBlur, onTouched, onSubmit or all")
	flags.String("catalog", "", "directory of translation catalogs")
	flags.String("theme", "", "theme name")
	flags.String("theme-variant", "", "theme variant (e.g. dark)")
	flags.String("theme-file", "", "theme manifest file (YAML or JSON)")
	flags.String("log-level", "warn", "log level: debug, info, warn or error")
	flags.String("log-format", "text", "log format: text or json")

	rootCmd.AddCommand(
		accountCmd(a),
		renderCmd(a),
		validateCmd(a),
		versionCmd(),
	)
	return rootCmd
}
