package main

import (
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-formschema/pkg/orchestrator"
	"github.com/goliatone/go-formschema/pkg/validation"
)

var errInvalid = errors.New("data is invalid")

var validateCmd = &cobra.Command{
	Use:   "validate <schema>",
	Short: "Validate form data against a schema",
	Long: `Checks the data against the rules of the fields that are visible for it.
Exits with a non-zero status when any rule fails.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup(cmd, cmd.ErrOrStderr())
		if err != nil {
			return err
		}

		dataPath, _ := cmd.Flags().GetString("data")
		data, err := readData(dataPath, cmd.InOrStdin())
		if err != nil {
			return err
		}

		result, err := e.orch.Validate(cmd.Context(), orchestrator.ValidateRequest{
			Schema: args[0],
			Data:   data,
			Locale: e.cfg.Locale,
		})
		if err != nil {
			return err
		}

		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			if err := writeJSON(cmd.OutOrStdout(), result); err != nil {
				return err
			}
		} else {
			printResult(cmd.OutOrStdout(), args[0], result)
		}
		if !result.Valid {
			return errInvalid
		}
		return nil
	},
}

func printResult(w io.Writer, name string, result validation.Result) {
	if result.Valid {
		color.New(color.FgGreen, color.Bold).Fprintf(w, "✓ %s: data is valid\n", name)
		return
	}

	color.New(color.FgRed, color.Bold).Fprintf(w, "✗ %s: %d field(s) failed\n", name, len(result.Errors))
	keys := make([]string, 0, len(result.Errors))
	for key := range result.Errors {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	field := color.New(color.FgYellow)
	for _, key := range keys {
		field.Fprintf(w, "  %s\n", key)
		for _, msg := range result.Errors[key] {
			fmt.Fprintf(w, "    - %s\n", msg)
		}
	}
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().String("data", "", "JSON or YAML file with form data ('-' for stdin)")
	validateCmd.Flags().Bool("json", false, "Print the result as JSON")
}
