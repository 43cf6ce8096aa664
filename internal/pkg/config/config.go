// Package config provides configuration management for CodeSage.
package config

// Config represents the complete CodeSage configuration.
//
// The API key is intentionally absent: it lives in the OS keychain
// (internal/pkg/secrets), never in the config file.
type Config struct {
	Provider ProviderConfig `mapstructure:"provider"`
	Annotate AnnotateConfig `mapstructure:"annotate"`
	UI       UIConfig       `mapstructure:"ui"`
	History  HistoryConfig  `mapstructure:"history"`
	Security SecurityConfig `mapstructure:"security"`
}

// ProviderConfig contains chat-completion endpoint settings.
type ProviderConfig struct {
	Model          string  `mapstructure:"model"`
	Endpoint       string  `mapstructure:"endpoint"`
	Temperature    float32 `mapstructure:"temperature"`
	MaxTokens      int     `mapstructure:"max_tokens"`
	TimeoutSeconds int     `mapstructure:"timeout_seconds"`
}

// AnnotateConfig contains annotation behavior settings.
type AnnotateConfig struct {
	// Mode is the default annotation mode: "line" or "block".
	Mode string `mapstructure:"mode"`
	// Marker overrides the canonical comment marker. Empty means
	// detect from the file extension.
	Marker string `mapstructure:"marker"`
}

// UIConfig contains UI-related settings.
type UIConfig struct {
	ColorEnabled bool   `mapstructure:"color_enabled"`
	SpinnerStyle string `mapstructure:"spinner_style"`
}

// HistoryConfig contains history-related settings.
type HistoryConfig struct {
	Enabled    bool   `mapstructure:"enabled"`
	MaxEntries int    `mapstructure:"max_entries"`
	FilePath   string `mapstructure:"file_path"`
}

// SecurityConfig contains security-related settings.
type SecurityConfig struct {
	// WarningAcknowledged indicates if the user has acknowledged the first-use security warning.
	WarningAcknowledged bool `mapstructure:"warning_acknowledged"`
}

// Manager defines the interface for configuration management.
type Manager interface {
	Load() (*Config, error)
	Save(config *Config) error
	Set(key string, value string) error
	Get(key string) (string, error)
	Init() error
	List() map[string]interface{}
	GetConfigPath() string
}
