package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"time"

	"dario.cat/mergo"
	"gopkg.in/yaml.v3"
)

// Backend types understood by the repository factory
const (
	BackendRemote   = "remote"
	BackendJSONFile = "jsonfile"
	BackendBolt     = "bolt"
)

// Config represents the application configuration
type Config struct {
	Backend BackendConfig `yaml:"backend,omitempty"`
	Server  ServerConfig  `yaml:"server,omitempty"`
	UI      UIConfig      `yaml:"ui,omitempty"`
	Logging LoggingConfig `yaml:"logging,omitempty"`
}

// BackendConfig selects where the anime collection lives
type BackendConfig struct {
	Type           string `yaml:"type,omitempty"`      // "remote", "jsonfile", "bolt"
	URL            string `yaml:"url,omitempty"`       // Collection URL for the remote backend
	FilePath       string `yaml:"file_path,omitempty"` // JSON array file for the jsonfile backend
	BoltPath       string `yaml:"bolt_path,omitempty"`
	TimeoutSeconds int    `yaml:"timeout_seconds,omitempty"`
}

// Timeout is the per-request timeout for the remote backend
func (b BackendConfig) Timeout() time.Duration {
	return time.Duration(b.TimeoutSeconds) * time.Second
}

// ServerConfig contains settings for the local REST server
type ServerConfig struct {
	Addr string `yaml:"addr,omitempty"`
}

// UIConfig contains UI display preferences
type UIConfig struct {
	TitleWidth int `yaml:"title_width,omitempty"`
}

// LoggingConfig contains log related settings
type LoggingConfig struct {
	Level    string `yaml:"level,omitempty"`
	FilePath string `yaml:"file_path,omitempty"`
}

// Load builds a configuration struct from multiple sources using these steps:
// 1. Create a base config with default values
// 2. If no config file exists on disk, save the default config to that location
// 3. Apply 'dynamic' properties.  Dynamic properties are those that are determined at runtime, for example the log
// file and data file locations which are different per OS.
// 4. Load & merge the config file, overwriting any defaults with user-specified values
// 5. Apply environment variable overrides
// 6. Validate the result
func Load() (*Config, error) {
	// 1. Start with base defaults
	cfg := createBaseDefaultConfig()

	configPath, err := getConfigPath()
	if err != nil {
		return nil, fmt.Errorf("unable to determine config file path: %w", err)
	}

	// 2. If no config file exists on disk, then write a default one
	if _, err := os.Stat(configPath); errors.Is(err, os.ErrNotExist) {
		// If there is an error saving the default config, then still let the application startup using the defaults.
		_ = save(cfg, configPath)
	}

	// 3. Apply dynamic defaults
	applyDynamicDefaults(cfg)

	// 4. Load the config from disk and merge it into the base defaults
	fileConfig, err := loadFromDisk(configPath)
	if err != nil {
		return nil, err
	}
	if err = mergo.Merge(cfg, fileConfig, mergo.WithOverride); err != nil {
		return nil, fmt.Errorf("error merging config loaded from disk: %w", err)
	}

	// 5. Apply the environment variable overrides which take precedence
	if err := applyEnvVarOverrides(cfg); err != nil {
		return nil, err
	}

	// 6. Reject configs that cannot work rather than failing on first use
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the values that have a fixed set of options
func (c *Config) Validate() error {
	backends := []string{BackendRemote, BackendJSONFile, BackendBolt}
	if !slices.Contains(backends, c.Backend.Type) {
		return fmt.Errorf("invalid backend type %q, must be one of %v", c.Backend.Type, backends)
	}
	if c.Backend.Type == BackendRemote && c.Backend.URL == "" {
		return errors.New("backend.url must be set when using the remote backend")
	}
	if c.Backend.TimeoutSeconds <= 0 {
		return fmt.Errorf("backend.timeout_seconds must be positive, got %d", c.Backend.TimeoutSeconds)
	}
	return nil
}

// applyDynamicDefaults sets runtime-determined default values.  Unlike static defaults, these values might change
// between runs based on the environment, so they are never written to the default config file.
func applyDynamicDefaults(cfg *Config) {
	cfg.Logging.FilePath = defaultLogFilePath()
	cfg.Backend.FilePath = filepath.Join(defaultDataDir(), "anime.json")
	cfg.Backend.BoltPath = filepath.Join(defaultDataDir(), "anime.db")
}

// loadFromDisk loads the YAML config from disk and returns the unmarshalled Config
func loadFromDisk(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("unable to read config file: %w", err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("unable to parse config file: %w", err)
	}

	return cfg, nil
}

func save(cfg *Config, configPath string) error {
	if err := os.MkdirAll(filepath.Dir(configPath), 0700); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	return os.WriteFile(configPath, data, 0600)
}

// UpdateConfig reads the existing config, applies the update function, and saves it back to disk
func UpdateConfig(updateFn func(*Config)) error {
	configPath, err := getConfigPath()
	if err != nil {
		return fmt.Errorf("unable to determine config file path: %w", err)
	}

	cfg, err := loadFromDisk(configPath)
	if err != nil {
		return fmt.Errorf("error loading config file from disk: %w", err)
	}

	updateFn(cfg)

	return save(cfg, configPath)
}

// getConfigPath returns the path to the config file.  Uses the environment variable override if present, else tries
// to use OS config location defaults.
func getConfigPath() (string, error) {
	if configPath := os.Getenv(envConfigPath); configPath != "" {
		return configPath, nil
	}

	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(configDir, "hypelist", "config.yaml"), nil
}

// createBaseDefaultConfig creates a config with all static default values
func createBaseDefaultConfig() *Config {
	return &Config{
		Backend: BackendConfig{
			Type:           BackendJSONFile,
			TimeoutSeconds: 10,
		},
		Server: ServerConfig{
			Addr: "127.0.0.1:3000",
		},
		UI: UIConfig{
			TitleWidth: 50,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// defaultDataDir returns the directory local backends keep their data in.  Follows XDG_DATA_HOME on Linux/BSD.
func defaultDataDir() string {
	homedir, err := os.UserHomeDir()
	if err != nil {
		return "."
	}

	switch runtime.GOOS {
	case "windows":
		if appData := os.Getenv("LOCALAPPDATA"); appData != "" {
			return filepath.Join(appData, "hypelist", "data")
		}
		return filepath.Join(homedir, "AppData", "local", "hypelist", "data")
	case "darwin":
		return filepath.Join(homedir, "Library", "Application Support", "hypelist")
	default:
		if xdgData := os.Getenv("XDG_DATA_HOME"); xdgData != "" {
			return filepath.Join(xdgData, "hypelist")
		}
		return filepath.Join(homedir, ".local", "share", "hypelist")
	}
}

// defaultLogFilePath returns the path to the log file.  Tries to use expected OS location defaults.
func defaultLogFilePath() string {
	var basePath string
	homedir, err := os.UserHomeDir()
	if err != nil {
		// Fallback to logging in the current directory if home directory cannot be determined
		return filepath.Join(".", "hypelist.log")
	}

	switch runtime.GOOS {
	case "windows":
		// Windows:  %LOCALAPPDATA%\hypelist\logs
		if appData := os.Getenv("LOCALAPPDATA"); appData != "" {
			basePath = filepath.Join(appData, "hypelist", "logs")
		} else {
			basePath = filepath.Join(homedir, "AppData", "local", "hypelist", "logs")
		}
	case "darwin":
		// macOS:  ~/Library/Logs/hypelist
		basePath = filepath.Join(homedir, "Library", "Logs", "hypelist")
	default:
		// Linux/BSD:  XDG_STATE_HOME
		if xdgState := os.Getenv("XDG_STATE_HOME"); xdgState != "" {
			basePath = filepath.Join(xdgState, "hypelist", "logs")
		} else {
			basePath = filepath.Join(homedir, ".local", "state", "hypelist", "logs")
		}
	}

	return filepath.Join(basePath, "hypelist.log")
}
