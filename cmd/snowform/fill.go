package main

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-snowform/pkg/prompt"
)

func (c *cli) fillCmd() *cobra.Command {
	var (
		valuesPath  string
		maxAttempts int
	)
	cmd := &cobra.Command{
		Use:   "fill",
		Short: "Fill the form interactively",
		Long: `Fill prompts for every field in the terminal, validates the answers and asks
again for the invalid ones. The values are printed as JSON.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			res, err := c.loadResources(ctx)
			if err != nil {
				return err
			}
			form, err := c.form(res, c.cfg.DefaultLocale)
			if err != nil {
				return err
			}

			var defaults map[string]any
			if valuesPath != "" {
				if defaults, err = readJSONObject(valuesPath); err != nil {
					return err
				}
			}

			filler, err := prompt.New(form.Resolver(),
				prompt.WithOutput(cmd.ErrOrStderr()),
				prompt.WithMaxAttempts(maxAttempts),
			)
			if err != nil {
				return err
			}
			values, err := filler.Fill(ctx, form.Schema, form.Overrides, defaults)
			if err != nil {
				return err
			}

			encoder := json.NewEncoder(c.out)
			encoder.SetIndent("", "  ")
			return encoder.Encode(values)
		},
	}
	cmd.Flags().StringVar(&valuesPath, "values", "", "JSON file with default answers")
	cmd.Flags().IntVar(&maxAttempts, "max-attempts", 3, "validation rounds before giving up")
	return cmd
}
