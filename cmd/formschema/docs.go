package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-formschema/pkg/docs"
)

var docsCmd = &cobra.Command{
	Use:   "docs <query>",
	Short: "Search the schema documentation",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		query := strings.Join(args, " ")
		report := docs.Markdown(query, docs.Search(docs.Files(), query))

		if plain, _ := cmd.Flags().GetBool("plain"); plain {
			_, err := fmt.Fprint(cmd.OutOrStdout(), report)
			return err
		}

		renderer, err := glamour.NewTermRenderer(glamour.WithAutoStyle())
		if err != nil {
			return fmt.Errorf("create renderer: %w", err)
		}
		out, err := renderer.Render(report)
		if err != nil {
			return fmt.Errorf("render markdown: %w", err)
		}
		_, err = fmt.Fprint(cmd.OutOrStdout(), out)
		return err
	},
}

func init() {
	rootCmd.AddCommand(docsCmd)

	docsCmd.Flags().Bool("plain", false, "Print raw markdown")
}
