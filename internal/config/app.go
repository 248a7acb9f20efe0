package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const (
	defaultDirName = ".storefront"
	configFileName = "config.yaml"
	envConfigPath  = "STOREFRONT_CONFIG_PATH"
	envPrefix      = "STOREFRONT"
)

// App is the application configuration. Environment variables
// (STOREFRONT_MEDIA_BASE_URL, ...) take precedence over the config file.
type App struct {
	MediaBaseURL    string `mapstructure:"media-base-url" yaml:"media-base-url"`
	DocstoreBaseURL string `mapstructure:"docstore-base-url" yaml:"docstore-base-url"`
	Locale          string `mapstructure:"locale" yaml:"locale"`
	LogLevel        string `mapstructure:"log-level" yaml:"log-level"`
}

var requiredFields = []string{
	"media-base-url",
	"docstore-base-url",
}

// field: default value
var optionalFields = map[string]any{
	"locale":    "de-DE",
	"log-level": "WARNING",
}

// AppPath resolves the config file location, honoring the env override.
func AppPath() (string, error) {
	if path := os.Getenv(envConfigPath); path != "" {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, defaultDirName, configFileName), nil
}

// InitApp reads configuration from the config file and environment
// variables and validates the required fields.
func InitApp() (*App, error) {
	path, err := AppPath()
	if err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	for _, field := range requiredFields {
		if err := v.BindEnv(field); err != nil {
			return nil, fmt.Errorf("bind env for %s: %w", field, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		// A missing file is fine when the environment provides everything.
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("could not read config: %w", err)
		}
	}

	for _, field := range requiredFields {
		if strings.TrimSpace(v.GetString(field)) == "" {
			return nil, fmt.Errorf("missing required config field: %s", field)
		}
	}
	for optField, defaultValue := range optionalFields {
		v.SetDefault(optField, defaultValue)
	}

	var cfg App
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("could not unmarshal config: %w", err)
	}
	return &cfg, nil
}

// WriteApp persists an application configuration payload.
func WriteApp(cfg App) error {
	path, err := AppPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	payload, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
