package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formschema/internal/logging"
	"github.com/goliatone/go-formschema/pkg/jsonschema"
	"github.com/goliatone/go-formschema/pkg/loader"
	"github.com/goliatone/go-formschema/pkg/openapi"
)

var importCmd = &cobra.Command{
	Use:   "import <openapi document>",
	Short: "Generate schema definitions from an OpenAPI or JSON Schema document",
	Long: `Reads an OpenAPI 3 document from a file or URL and writes one schema per
operation with an object request body, as a YAML document the loader accepts.
With --jsonschema the document is read as a single JSON Schema instead.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		level, _ := cmd.Flags().GetString("log-level")
		if level == "" {
			level = "info"
		}
		logger, err := logging.New(level, cmd.ErrOrStderr())
		if err != nil {
			return err
		}

		timeout, _ := cmd.Flags().GetDuration("timeout")
		raw, err := openapi.Fetch(cmd.Context(), args[0], openapi.FetchOptions{AllowHTTP: true, Timeout: timeout})
		if err != nil {
			return err
		}

		var defs map[string]loader.Definition
		if name, _ := cmd.Flags().GetString("jsonschema"); name != "" {
			def, err := jsonschema.Import(raw, name, jsonschema.WithSource(args[0]))
			if err != nil {
				return err
			}
			defs = map[string]loader.Definition{name: def}
		} else {
			operations, _ := cmd.Flags().GetStringSlice("operation")
			resolve, _ := cmd.Flags().GetBool("resolve")
			defs, err = openapi.Import(cmd.Context(), raw,
				openapi.WithOperations(operations...),
				openapi.WithReferenceResolution(resolve),
			)
			if err != nil {
				return err
			}
		}
		logger.Info("imported operations", "source", args[0], "count", len(defs))

		out, err := loader.MarshalYAML(defs)
		if err != nil {
			return err
		}

		path, _ := cmd.Flags().GetString("out")
		if path == "" {
			_, err = cmd.OutOrStdout().Write(out)
			return err
		}
		if err := os.WriteFile(path, out, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		logger.Info("schemas written", "path", path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(importCmd)

	importCmd.Flags().StringSlice("operation", nil, "Only import these operations (repeatable)")
	importCmd.Flags().Bool("resolve", true, "Resolve and validate references before importing")
	importCmd.Flags().String("jsonschema", "", "Read a JSON Schema document and name the schema")
	importCmd.Flags().String("out", "", "Output file (stdout if empty)")
	importCmd.Flags().Duration("timeout", 10*time.Second, "Timeout for remote documents")
}
