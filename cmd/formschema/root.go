package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-formschema/components/timezones"
	"github.com/goliatone/go-formschema/internal/config"
	"github.com/goliatone/go-formschema/internal/logging"
	"github.com/goliatone/go-formschema/pkg/i18n"
	"github.com/goliatone/go-formschema/pkg/loader"
	"github.com/goliatone/go-formschema/pkg/observability"
	"github.com/goliatone/go-formschema/pkg/orchestrator"
	"github.com/goliatone/go-formschema/pkg/schema"
	"github.com/goliatone/go-formschema/pkg/validation"
)

var rootCmd = &cobra.Command{
	Use:   "formschema",
	Short: "Build, render and validate declarative form schemas",
	Long: `formschema loads form schema definitions from YAML or JSON files and
serializes them to props, extracts their validation rules, fills them
interactively or serves them over HTTP and MCP.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "TOML configuration file")
	rootCmd.PersistentFlags().String("dir", "", "Directory containing schema definitions (overrides config)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn or error (overrides config)")
	rootCmd.PersistentFlags().String("locale", "", "Locale used for labels and messages (overrides config)")
}

// env is what every command needs once flags and config are resolved.
type env struct {
	cfg       config.Config
	logger    *slog.Logger
	orch      *orchestrator.Orchestrator
	validator *validation.Validator
	registry  *prometheus.Registry
}

func setup(cmd *cobra.Command, logOut io.Writer) (*env, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if dir, _ := cmd.Flags().GetString("dir"); dir != "" {
		cfg.SchemasDir = dir
	}
	if level, _ := cmd.Flags().GetString("log-level"); level != "" {
		cfg.LogLevel = level
	}
	if locale, _ := cmd.Flags().GetString("locale"); locale != "" {
		cfg.Locale = locale
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger, err := logging.New(cfg.LogLevel, logOut)
	if err != nil {
		return nil, err
	}
	slog.SetDefault(logger)

	catalog, err := i18n.Default()
	if err != nil {
		return nil, fmt.Errorf("load translations: %w", err)
	}

	store, err := loader.LoadDir(cfg.SchemasDir,
		loader.WithSchemaOptions(schema.WithTranslator(catalog), schema.WithLocale(cfg.Locale)),
	)
	if err != nil {
		return nil, err
	}

	sinks := []observability.Sink{observability.NewSlogSink(logger)}
	var registry *prometheus.Registry
	if cfg.Metrics {
		registry = prometheus.NewRegistry()
		metrics, err := observability.NewPrometheusSink(registry)
		if err != nil {
			return nil, fmt.Errorf("register metrics: %w", err)
		}
		sinks = append(sinks, metrics)
	}

	validator := validation.New(validation.WithTranslator(catalog, cfg.Locale), timezones.Rule())
	orch := orchestrator.New(
		orchestrator.WithStore(store),
		orchestrator.WithValidator(validator),
		orchestrator.WithSink(observability.Multi(sinks...)),
	)
	logger.Debug("schemas loaded", "dir", cfg.SchemasDir, "count", len(orch.Schemas()))

	return &env{cfg: cfg, logger: logger, orch: orch, validator: validator, registry: registry}, nil
}
