package main

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-snowform"
)

// report is the JSON written by the validate command.
type report struct {
	Valid bool `json:"valid"`
	snowform.ErrorPayload
}

func (c *cli) validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <payload.json|->",
		Short: "Validate a JSON payload against the form schema",
		Long: `Validate reads a JSON object and prints the field errors, translated and
resolved the same way the rendered form shows them. The command exits with
status 1 when the payload is invalid.`,
		Args: cobra.ExactArgs(1),
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
			values, err := readJSONObject(args[0])
			if err != nil {
				return err
			}
			result, err := form.Submit(ctx, values)
			if err != nil {
				return err
			}

			out := report{Valid: result.Valid(), ErrorPayload: form.ErrorMessages(result)}
			encoder := json.NewEncoder(c.out)
			encoder.SetIndent("", "  ")
			if err := encoder.Encode(out); err != nil {
				return err
			}
			if !out.Valid {
				return errInvalid
			}
			return nil
		},
	}
}
