package main

import (
	"github.com/spf13/cobra"

	"github.com/goliatone/go-formschema/pkg/orchestrator"
	"github.com/goliatone/go-formschema/pkg/schema"
)

var renderCmd = &cobra.Command{
	Use:   "render <schema>",
	Short: "Print the props of a schema",
	Long: `Fills the schema with the given data and prints the props, the resulting
data and a merge patch of what the callbacks changed.`,
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

		req := orchestrator.RenderRequest{Schema: args[0], Data: data, Locale: e.cfg.Locale}
		changed, _ := cmd.Flags().GetString("changed")
		if repeater, _ := cmd.Flags().GetString("repeater"); repeater != "" {
			index, _ := cmd.Flags().GetInt("index")
			req.Repeater = &schema.RepeaterChange{Repeater: repeater, Index: index, Field: changed}
		} else {
			req.ChangedField = changed
		}

		result, err := e.orch.Render(cmd.Context(), req)
		if err != nil {
			return err
		}
		return writeJSON(cmd.OutOrStdout(), result)
	},
}

func init() {
	rootCmd.AddCommand(renderCmd)

	renderCmd.Flags().String("data", "", "JSON or YAML file with form data ('-' for stdin)")
	renderCmd.Flags().String("changed", "", "Field whose afterStateUpdated callback runs first")
	renderCmd.Flags().String("repeater", "", "Repeater holding the changed field")
	renderCmd.Flags().Int("index", 0, "Item index inside the repeater")
}
