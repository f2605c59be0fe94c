package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/goliatone/go-formbind/pkg/orchestrator"
	"github.com/goliatone/go-formbind/pkg/schema"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var errInvalid = errors.New("form is invalid")

func validateCmd(a *app) *cobra.Command {
	var (
		id         string
		valuesFile string
		values     map[string]string
	)

	cmd := &cobra.Command{
		Use:   "validate <definition>",
		Short: "Validate values against a form definition",
		Long: `Evaluate every field of a definition against the given values and
print the first failing rule per field. Fields without a value keep their
defaults. Exits non-zero when any field is invalid.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := make(map[string]string)
			if valuesFile != "" {
				data, err := os.ReadFile(valuesFile)
				if err != nil {
					return err
				}
				if err := yaml.Unmarshal(data, &input); err != nil {
					return fmt.Errorf("values file: %w", err)
				}
			}
			for name, value := range values {
				input[name] = value
			}

			gen, err := a.orchestrator(cmd, "")
			if err != nil {
				return err
			}
			def, err := gen.Definition(cmd.Context(), orchestrator.Request{
				Source:       schema.SourceFromFile(args[0]),
				DefinitionID: id,
			})
			if err != nil {
				return err
			}
			results, err := def.Evaluate(input)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			valid := true
			for _, result := range results {
				if result.Valid {
					fmt.Fprintf(out, "%s: ok\n", result.Field)
					continue
				}
				valid = false
				fmt.Fprintf(out, "%s: %s (%s)\n", result.Field, result.Message, result.Kind)
			}
			if !valid {
				return errInvalid
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&id, "id", "", "definition or operation id")
	cmd.Flags().StringVarP(&valuesFile, "values", "f", "", "YAML/JSON file of field values")
	cmd.Flags().StringToStringVar(&values, "set", nil, "field values (name=value), applied after --values")

	return cmd
}
