package main

import (
	"os"

	"github.com/goliatone/go-formbind/pkg/form"
	"github.com/goliatone/go-formbind/pkg/orchestrator"
	"github.com/goliatone/go-formbind/pkg/schema"
	"github.com/spf13/cobra"
)

func renderCmd(a *app) *cobra.Command {
	var (
		id     string
		preset string
		values map[string]string
	)

	cmd := &cobra.Command{
		Use:   "render <definition>",
		Short: "Render a form definition",
		Long: `Render a native form definition or an OpenAPI document with the
configured renderer.

Examples:
  formbind render signup.yaml --renderer html
  formbind render api.yaml --id createAccount --set username=ab
  formbind render signup.yaml --preset overrides.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			gen, err := a.orchestrator(cmd, preset)
			if err != nil {
				return err
			}
			opts, err := a.renderOptions()
			if err != nil {
				return err
			}

			out, err := gen.Generate(cmd.Context(), orchestrator.Request{
				Source:        schema.SourceFromFile(args[0]),
				DefinitionID:  id,
				Renderer:      a.cfg.Renderer,
				Values:        values,
				RenderOptions: opts,
			})
			if err != nil {
				return err
			}
			return writeOutput(cmd.OutOrStdout(), out)
		},
	}

	cmd.Flags().StringVar(&id, "id", "", "definition or operation id")
	cmd.Flags().StringVar(&preset, "preset", "", "YAML/JSON preset overriding titles, labels and defaults")
	cmd.Flags().StringToStringVar(&values, "set", nil, "field values applied before rendering (name=value)")

	return cmd
}

func (a *app) orchestrator(cmd *cobra.Command, preset string) (*orchestrator.Orchestrator, error) {
	mode, err := a.mode()
	if err != nil {
		return nil, err
	}
	registry, err := a.registry(cmd.ErrOrStderr())
	if err != nil {
		return nil, err
	}

	options := []orchestrator.Option{
		orchestrator.WithRegistry(registry),
		orchestrator.WithDefaultRenderer(a.cfg.Renderer),
		orchestrator.WithNotifier(a.notifier(cmd)),
		orchestrator.WithLogger(a.logger),
	}
	if a.cfg.Mode != "" {
		options = append(options, orchestrator.WithBuildOptions(schema.WithFormOptions(form.WithMode(mode))))
	}
	if preset != "" {
		data, err := os.ReadFile(preset)
		if err != nil {
			return nil, err
		}
		t, err := orchestrator.NewPresetTransformer(data)
		if err != nil {
			return nil, err
		}
		options = append(options, orchestrator.WithTransformer(t))
	}
	return orchestrator.New(options...), nil
}
