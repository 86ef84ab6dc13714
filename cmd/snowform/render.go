package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-snowform"
)

func (c *cli) renderCmd() *cobra.Command {
	var (
		output     string
		valuesPath string
		validate   bool
		action     string
	)
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the form as HTML",
		Long: `Render writes the form markup to stdout or --output.

With --values the form is pre-filled from a JSON object. Adding --validate
also runs validation and renders the errors and the error behavior.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			res, err := c.loadResources(ctx)
			if err != nil {
				return err
			}
			form, err := c.form(res, c.cfg.DefaultLocale, snowform.WithAction(action))
			if err != nil {
				return err
			}

			opts := snowform.RenderOptions{}
			if valuesPath != "" {
				values, err := readJSONObject(valuesPath)
				if err != nil {
					return err
				}
				opts.Values = values
				if validate {
					result, err := form.Submit(ctx, values)
					if err != nil {
						return err
					}
					opts = result.RenderOptions()
				}
			}

			body, err := form.Render(ctx, opts)
			if err != nil {
				return err
			}
			if output == "" || output == "-" {
				_, err = c.out.Write(body)
				return err
			}
			if err := os.WriteFile(output, body, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", output, err)
			}
			c.logger.Info("form rendered", zap.String("output", output), zap.Int("bytes", len(body)))
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().StringVar(&valuesPath, "values", "", "JSON file with field values ('-' for stdin)")
	cmd.Flags().BoolVar(&validate, "validate", false, "validate --values and render the errors")
	cmd.Flags().StringVar(&action, "action", "", "form action URL")
	return cmd
}

func readJSONObject(path string) (map[string]any, error) {
	var r io.Reader = os.Stdin
	if path != "-" {
		file, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer file.Close()
		r = file
	}
	var values map[string]any
	if err := json.NewDecoder(r).Decode(&values); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return values, nil
}
