package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formschema/pkg/prompt"
)

var fillCmd = &cobra.Command{
	Use:   "fill <schema>",
	Short: "Fill a schema interactively in the terminal",
	Long: `Asks for every visible field in order, re-evaluating visibility and
running callbacks after each answer, then prints the data as JSON.`,
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

		s, err := e.orch.Schema(cmd.Context(), args[0], e.cfg.Locale)
		if err != nil {
			return err
		}

		filler := prompt.New(
			prompt.WithDriver(prompt.NewSurveyDriver(os.Stderr)),
			prompt.WithValidator(e.validator),
		)
		out, err := filler.Fill(cmd.Context(), s, data)
		if errors.Is(err, prompt.ErrAborted) {
			fmt.Fprintln(cmd.ErrOrStderr(), "aborted")
			return nil
		}
		if err != nil {
			return err
		}
		return writeJSON(cmd.OutOrStdout(), out)
	},
}

func init() {
	rootCmd.AddCommand(fillCmd)

	fillCmd.Flags().String("data", "", "JSON or YAML file with initial data")
}
