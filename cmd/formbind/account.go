package main

import (
	"github.com/goliatone/go-formbind/pkg/account"
	"github.com/spf13/cobra"
)

func accountCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "account",
		Short: "Run the account creation screen",
		Long: `Run the built-in account creation screen (username, email, password and
confirmation) with the configured renderer. With the tui renderer the
session is interactive and the submitted values are printed on exit;
with the html renderer the initial screen is printed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			mode, err := a.mode()
			if err != nil {
				return err
			}
			s, err := account.New(
				account.WithNotifier(a.notifier(cmd)),
				account.WithLogger(a.logger),
				account.WithMode(mode),
			)
			if err != nil {
				return err
			}

			registry, err := a.registry(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			renderer, err := registry.Get(a.cfg.Renderer)
			if err != nil {
				return err
			}
			opts, err := a.renderOptions()
			if err != nil {
				return err
			}

			out, err := renderer.Render(cmd.Context(), s, opts)
			if err != nil {
				return err
			}
			return writeOutput(cmd.OutOrStdout(), out)
		},
	}
}
