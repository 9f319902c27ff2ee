package config

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"text/tabwriter"
)

const envConfigPath = "HYPELIST_CONFIG_PATH"

type envVar struct {
	name  string
	desc  string
	apply func(*Config, string) error
}

var supportedEnvVars = []envVar{
	{
		// Only here for documentation purposes.  Does not override any values in the config as this environment variable
		// points to where the config should be loaded.  It is handled prior to loading the config.
		name:  envConfigPath,
		desc:  "Sets the path to the config file.  Default: OS-specific config directory",
		apply: func(c *Config, s string) error { return nil }, // Special case, no-op
	},
	{
		name:  "HYPELIST_CONFIG_BACKEND_TYPE",
		desc:  "Sets where the collection is stored.  One of: remote, jsonfile, bolt.  Default: jsonfile",
		apply: func(c *Config, s string) error { c.Backend.Type = s; return nil },
	},
	{
		name:  "HYPELIST_CONFIG_BACKEND_URL",
		desc:  "Sets the collection URL used by the remote backend.  Default: None",
		apply: func(c *Config, s string) error { c.Backend.URL = s; return nil },
	},
	{
		name:  "HYPELIST_CONFIG_BACKEND_FILE_PATH",
		desc:  "Sets the JSON file used by the jsonfile backend.  Default: OS-specific data directory",
		apply: func(c *Config, s string) error { c.Backend.FilePath = s; return nil },
	},
	{
		name:  "HYPELIST_CONFIG_BACKEND_BOLT_PATH",
		desc:  "Sets the database file used by the bolt backend.  Default: OS-specific data directory",
		apply: func(c *Config, s string) error { c.Backend.BoltPath = s; return nil },
	},
	{
		name:  "HYPELIST_CONFIG_BACKEND_TIMEOUT_SECONDS",
		desc:  "Sets the per-request timeout of the remote backend in seconds.  Default: 10",
		apply: func(c *Config, s string) error { return setInt(&c.Backend.TimeoutSeconds, s) },
	},
	{
		name:  "HYPELIST_CONFIG_SERVER_ADDR",
		desc:  "Sets the listen address of the serve command.  Default: 127.0.0.1:3000",
		apply: func(c *Config, s string) error { c.Server.Addr = s; return nil },
	},
	{
		name:  "HYPELIST_CONFIG_UI_TITLE_WIDTH",
		desc:  "Sets the maximum width of titles in the list view.  Default: 50",
		apply: func(c *Config, s string) error { return setInt(&c.UI.TitleWidth, s) },
	},
	{
		name:  "HYPELIST_CONFIG_LOGGING_LEVEL",
		desc:  "Sets the logging level.  One of: trace, debug, info, warn, error.  Default: info",
		apply: func(c *Config, s string) error { c.Logging.Level = s; return nil },
	},
	{
		name:  "HYPELIST_CONFIG_LOGGING_FILE_PATH",
		desc:  "Sets the logging file path.  Default: OS-specific",
		apply: func(c *Config, s string) error { c.Logging.FilePath = s; return nil },
	},
}

func applyEnvVarOverrides(c *Config) error {
	for _, envVar := range supportedEnvVars {
		if value := os.Getenv(envVar.name); value != "" {
			if err := envVar.apply(c, value); err != nil {
				return fmt.Errorf("invalid value for %s: %w", envVar.name, err)
			}
		}
	}
	return nil
}

func setInt(target *int, s string) error {
	n, err := strconv.Atoi(s)
	if err != nil {
		return err
	}
	*target = n
	return nil
}

// PrintEnvVars writes the table of supported environment variables, used by the CLI help
func PrintEnvVars(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, envVar := range supportedEnvVars {
		if _, err := fmt.Fprintf(tw, "%s\t%s\n", envVar.name, envVar.desc); err != nil {
			return err
		}
	}
	return tw.Flush()
}
