package config

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/goliatone/go-formschema/internal/logging"
)

// Config drives the server and the command-line tools.
type Config struct {
	Addr        string    `toml:"addr"`
	SchemasDir  string    `toml:"schemas_dir"`
	LogLevel    string    `toml:"log_level"`
	Locale      string    `toml:"locale"`
	Metrics     bool      `toml:"metrics"`
	CORSOrigins []string  `toml:"cors_origins"`
	MCP         MCPConfig `toml:"mcp"`
}

// MCPConfig names the MCP server.
type MCPConfig struct {
	Name    string `toml:"name"`
	Version string `toml:"version"`
}

func Default() Config {
	return Config{
		Addr:       ":8080",
		SchemasDir: "schemas",
		LogLevel:   "info",
		Locale:     "en",
		Metrics:    true,
		MCP: MCPConfig{
			Name:    "formschema",
			Version: "0.1.0",
		},
	}
}

// Load reads a TOML file over the defaults. An empty path returns the
// defaults. Unknown keys are rejected.
func Load(path string) (Config, error) {
	cfg := Default()
	if strings.TrimSpace(path) == "" {
		return cfg, nil
	}

	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("config: load %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, key := range undecoded {
			keys[i] = key.String()
		}
		sort.Strings(keys)
		return Config{}, fmt.Errorf("config: %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}

	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) normalize() {
	c.Addr = strings.TrimSpace(c.Addr)
	c.SchemasDir = strings.TrimSpace(c.SchemasDir)
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	c.Locale = strings.TrimSpace(c.Locale)

	origins := make([]string, 0, len(c.CORSOrigins))
	for _, origin := range c.CORSOrigins {
		if v := strings.TrimSpace(origin); v != "" {
			origins = append(origins, v)
		}
	}
	c.CORSOrigins = origins
}

// Validate reports every invalid setting at once.
func (c Config) Validate() error {
	var errs []error
	if c.Addr == "" {
		errs = append(errs, errors.New("addr is required"))
	}
	if c.SchemasDir == "" {
		errs = append(errs, errors.New("schemas_dir is required"))
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	if c.Locale == "" {
		errs = append(errs, errors.New("locale is required"))
	}
	if strings.TrimSpace(c.MCP.Name) == "" {
		errs = append(errs, errors.New("mcp.name is required"))
	}
	return errors.Join(errs...)
}
