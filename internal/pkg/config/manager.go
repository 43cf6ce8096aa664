package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

const (
	// DefaultConfigDirName is the directory under the home directory that
	// holds the config file.
	DefaultConfigDirName = ".codesage"
	// DefaultConfigFileExt is the default config file extension.
	DefaultConfigFileExt = "yaml"
)

// ViperManager implements the Manager interface using Viper.
type ViperManager struct {
	v          *viper.Viper
	configPath string
}

// NewManager creates a new configuration manager.
// If configPath is empty, it uses the default path (~/.codesage/config.yaml).
func NewManager(configPath string) (*ViperManager, error) {
	v := viper.New()

	v.SetConfigType(DefaultConfigFileExt)

	if configPath == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		configPath = filepath.Join(homeDir, DefaultConfigDirName, "config.yaml")
	}

	v.SetConfigFile(configPath)

	v.SetEnvPrefix("CODESAGE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults must be set before env binding for nested keys to resolve
	setDefaults(v)
	bindEnvVars(v)

	return &ViperManager{
		v:          v,
		configPath: configPath,
	}, nil
}

// bindEnvVars explicitly binds environment variables for all config keys.
// Viper's AutomaticEnv does not handle nested keys reliably.
func bindEnvVars(v *viper.Viper) {
	// Provider settings
	_ = v.BindEnv("provider.model", "CODESAGE_PROVIDER_MODEL")
	_ = v.BindEnv("provider.endpoint", "CODESAGE_PROVIDER_ENDPOINT")
	_ = v.BindEnv("provider.temperature", "CODESAGE_PROVIDER_TEMPERATURE")
	_ = v.BindEnv("provider.max_tokens", "CODESAGE_PROVIDER_MAX_TOKENS")
	_ = v.BindEnv("provider.timeout_seconds", "CODESAGE_PROVIDER_TIMEOUT_SECONDS")

	// Annotate settings
	_ = v.BindEnv("annotate.mode", "CODESAGE_ANNOTATE_MODE")
	_ = v.BindEnv("annotate.marker", "CODESAGE_ANNOTATE_MARKER")

	// UI settings
	_ = v.BindEnv("ui.color_enabled", "CODESAGE_UI_COLOR_ENABLED")
	_ = v.BindEnv("ui.spinner_style", "CODESAGE_UI_SPINNER_STYLE")

	// History settings
	_ = v.BindEnv("history.enabled", "CODESAGE_HISTORY_ENABLED")
	_ = v.BindEnv("history.max_entries", "CODESAGE_HISTORY_MAX_ENTRIES")
	_ = v.BindEnv("history.file_path", "CODESAGE_HISTORY_FILE_PATH")

	// Security settings
	_ = v.BindEnv("security.warning_acknowledged", "CODESAGE_SECURITY_WARNING_ACKNOWLEDGED")
}

// setDefaults sets the default configuration values.
func setDefaults(v *viper.Viper) {
	// Provider defaults
	v.SetDefault("provider.model", "gpt-4o-mini")
	v.SetDefault("provider.endpoint", "")
	v.SetDefault("provider.temperature", 0.2)
	v.SetDefault("provider.max_tokens", 1024)
	v.SetDefault("provider.timeout_seconds", 30)

	// Annotate defaults
	v.SetDefault("annotate.mode", "line")
	v.SetDefault("annotate.marker", "")

	// UI defaults
	v.SetDefault("ui.color_enabled", true)
	v.SetDefault("ui.spinner_style", "dots")

	// History defaults
	v.SetDefault("history.enabled", true)
	v.SetDefault("history.max_entries", 1000)
	homeDir, _ := os.UserHomeDir()
	v.SetDefault("history.file_path", filepath.Join(homeDir, DefaultConfigDirName, "history.json"))

	// Security defaults
	v.SetDefault("security.warning_acknowledged", false)
}

// GetConfigPath returns the path to the configuration file.
func (m *ViperManager) GetConfigPath() string {
	return m.configPath
}

// Load loads the configuration from file, environment, and defaults.
// Priority: flags > env > file > defaults
func (m *ViperManager) Load() (*Config, error) {
	if err := m.v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := m.v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// Init creates a new configuration file with default values.
// Sets file permissions to 0600 for security.
func (m *ViperManager) Init() error {
	if _, err := os.Stat(m.configPath); err == nil {
		return fmt.Errorf("config file already exists at %s", m.configPath)
	}

	dir := filepath.Dir(m.configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := m.v.WriteConfigAs(m.configPath); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	if err := os.Chmod(m.configPath, 0600); err != nil {
		return fmt.Errorf("failed to set config file permissions: %w", err)
	}

	return nil
}

// Save saves the configuration to file.
func (m *ViperManager) Save(config *Config) error {
	m.v.Set("provider", config.Provider)
	m.v.Set("annotate", config.Annotate)
	m.v.Set("ui", config.UI)
	m.v.Set("history", config.History)
	m.v.Set("security", config.Security)

	if err := m.v.WriteConfig(); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Set sets a configuration value by key.
// Supports nested keys using dot notation (e.g., "provider.model").
func (m *ViperManager) Set(key string, value string) error {
	if err := m.v.ReadInConfig(); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to read config file: %w", err)
		}
	}

	existingValue := m.v.Get(key)
	convertedValue, err := convertValue(value, existingValue)
	if err != nil {
		return fmt.Errorf("failed to convert value for key %s: %w", key, err)
	}

	m.v.Set(key, convertedValue)

	if err := m.v.WriteConfig(); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// convertValue converts a string value to the appropriate type based on the existing value type.
func convertValue(value string, existingValue interface{}) (interface{}, error) {
	if existingValue == nil {
		return value, nil
	}

	switch existingValue.(type) {
	case bool:
		return strconv.ParseBool(value)
	case int, int64:
		return strconv.ParseInt(value, 10, 64)
	case float32, float64:
		return strconv.ParseFloat(value, 64)
	case []interface{}, []string:
		return strings.Split(value, ","), nil
	default:
		return value, nil
	}
}

// Get retrieves a configuration value by key.
func (m *ViperManager) Get(key string) (string, error) {
	if err := m.v.ReadInConfig(); err != nil {
		if !os.IsNotExist(err) {
			return "", fmt.Errorf("failed to read config file: %w", err)
		}
	}

	value := m.v.Get(key)
	if value == nil {
		return "", fmt.Errorf("key not found: %s", key)
	}

	return fmt.Sprintf("%v", value), nil
}

// List returns all configuration values as a map.
func (m *ViperManager) List() map[string]interface{} {
	_ = m.v.ReadInConfig()
	return m.v.AllSettings()
}

// SetOverride sets a temporary override for a configuration key.
// This is used for command-line flag overrides that shouldn't persist.
func (m *ViperManager) SetOverride(key string, value interface{}) {
	m.v.Set(key, value)
}

// ConfigExists checks if the configuration file exists.
func (m *ViperManager) ConfigExists() bool {
	_, err := os.Stat(m.configPath)
	return err == nil
}

// AcknowledgeSecurityWarning marks the security warning as acknowledged.
// If the config file doesn't exist yet, it is created first.
func (m *ViperManager) AcknowledgeSecurityWarning() error {
	dir := filepath.Dir(m.configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if _, err := os.Stat(m.configPath); os.IsNotExist(err) {
		f, err := os.OpenFile(m.configPath, os.O_CREATE|os.O_WRONLY, 0600)
		if err != nil {
			return fmt.Errorf("failed to create config file: %w", err)
		}
		f.Close()
	}

	return m.Set("security.warning_acknowledged", "true")
}

// IsSecurityWarningAcknowledged checks if the security warning has been acknowledged.
func (m *ViperManager) IsSecurityWarningAcknowledged() bool {
	_ = m.v.ReadInConfig()
	return m.v.GetBool("security.warning_acknowledged")
}
