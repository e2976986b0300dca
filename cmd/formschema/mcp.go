package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formschema/pkg/adapters/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the Model Context Protocol (MCP) server",
	Long: `Starts an MCP server on standard input and output so agents can list,
render and validate schemas and search the documentation.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Stdout carries JSON-RPC; logs go to stderr.
		e, err := setup(cmd, os.Stderr)
		if err != nil {
			return err
		}
		log.SetOutput(os.Stderr)

		srv := mcp.NewServer(e.orch, e.cfg.MCP.Name, e.cfg.MCP.Version)
		e.logger.Info("starting MCP server (stdio)", "name", e.cfg.MCP.Name, "schemas", len(e.orch.Schemas()))
		return srv.ServeStdio()
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
