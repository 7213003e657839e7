// Package config loads boardnotifier settings with Viper from, in rising
// precedence: defaults, an XDG config file, a .env file in the working
// directory, and environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// WhatsAppConfig holds the recipient and WhatsApp Cloud API credentials.
type WhatsAppConfig struct {
	Number        string `mapstructure:"number"`          // digest recipient
	Token         string `mapstructure:"token"`           // Cloud API access token
	PhoneNumberID string `mapstructure:"phone_number_id"` // sending business number
	APIVersion    string `mapstructure:"api_version"`
}

// PropertyConfig names the Notion database properties tasks are read from.
type PropertyConfig struct {
	Task     string `mapstructure:"task"`
	Status   string `mapstructure:"status"`
	Assignee string `mapstructure:"assignee"`
	Date     string `mapstructure:"date"`
	Epic     string `mapstructure:"epic"`
}

// StatusConfig lists the status values each digest selects.
type StatusConfig struct {
	Assigned   []string `mapstructure:"assigned"`
	Unassigned []string `mapstructure:"unassigned"`
}

// Config holds the complete boardnotifier configuration.
type Config struct {
	NotionToken   string         `mapstructure:"notion_token"`
	DatabaseID    string         `mapstructure:"database_id"`
	NotionVersion string         `mapstructure:"notion_version"`
	WhatsApp      WhatsAppConfig `mapstructure:"whatsapp"`
	Properties    PropertyConfig `mapstructure:"properties"`
	Statuses      StatusConfig   `mapstructure:"statuses"`
	LogFile       string         `mapstructure:"log_file"`
}

// envBindings maps config keys to the environment variables that set them.
var envBindings = []struct {
	key string
	env string
}{
	{"notion_token", "NOTION_TOKEN"},
	{"database_id", "DATABASE_ID"},
	{"whatsapp.number", "WHATSAPP_NUMBER"},
	{"whatsapp.token", "WHATSAPP_TOKEN"},
	{"whatsapp.phone_number_id", "WHATSAPP_PHONE_NUMBER_ID"},
	{"log_file", "BOARDNOTIFIER_LOG_FILE"},
}

// dotEnvFile is the .env file read by Load. Tests point it elsewhere.
var dotEnvFile = ".env"

// Load reads the configuration. Call it once at startup and pass the result
// to the components that need it.
func Load() (*Config, error) {
	v := newFileViper()

	for _, b := range envBindings {
		_ = v.BindEnv(b.key, b.env)
	}

	v.SetDefault("notion_version", "2022-06-28")
	v.SetDefault("whatsapp.api_version", "v21.0")
	v.SetDefault("properties.task", "Task")
	v.SetDefault("properties.status", "Status")
	v.SetDefault("properties.assignee", "Assign")
	v.SetDefault("properties.date", "Start Date")
	v.SetDefault("properties.epic", "Epica")
	v.SetDefault("statuses.assigned", []string{"In progress", "Assigned"})
	v.SetDefault("statuses.unassigned", []string{"Not started"})

	if err := readConfigFile(v); err != nil {
		return nil, err
	}

	if err := applyDotEnv(v); err != nil {
		return nil, err
	}
	return unmarshal(v)
}

// LoadFile reads the config file alone, without defaults, .env or the
// environment. A missing file yields an empty Config.
func LoadFile() (*Config, error) {
	v := newFileViper()
	if err := readConfigFile(v); err != nil {
		return nil, err
	}
	return unmarshal(v)
}

func newFileViper() *viper.Viper {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(configDir())
	return v
}

func readConfigFile(v *viper.Viper) error {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("reading config: %w", err)
		}
	}
	return nil
}

func unmarshal(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

// applyDotEnv copies values from the .env file into v for every bound
// variable that is not present in the real environment.
func applyDotEnv(v *viper.Viper) error {
	dot := viper.New()
	dot.SetConfigFile(dotEnvFile)
	dot.SetConfigType("env")
	if err := dot.ReadInConfig(); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("reading %s: %w", dotEnvFile, err)
	}

	for _, b := range envBindings {
		if _, inEnv := os.LookupEnv(b.env); inEnv {
			continue
		}
		if dot.IsSet(b.env) {
			v.Set(b.key, dot.GetString(b.env))
		}
	}
	return nil
}

// Write persists cfg to the config file, creating the directory if needed.
// Empty optional values are left out. The file is readable by the owner
// only since it holds API tokens.
func Write(cfg *Config) error {
	dir := configDir()
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	v := viper.New()
	v.SetConfigType("yaml")

	v.Set("notion_token", cfg.NotionToken)
	v.Set("database_id", cfg.DatabaseID)
	setIfNotEmpty(v, "notion_version", cfg.NotionVersion)
	setIfNotEmpty(v, "whatsapp.number", cfg.WhatsApp.Number)
	setIfNotEmpty(v, "whatsapp.token", cfg.WhatsApp.Token)
	setIfNotEmpty(v, "whatsapp.phone_number_id", cfg.WhatsApp.PhoneNumberID)
	setIfNotEmpty(v, "whatsapp.api_version", cfg.WhatsApp.APIVersion)
	setIfNotEmpty(v, "properties.task", cfg.Properties.Task)
	setIfNotEmpty(v, "properties.status", cfg.Properties.Status)
	setIfNotEmpty(v, "properties.assignee", cfg.Properties.Assignee)
	setIfNotEmpty(v, "properties.date", cfg.Properties.Date)
	setIfNotEmpty(v, "properties.epic", cfg.Properties.Epic)
	if len(cfg.Statuses.Assigned) > 0 {
		v.Set("statuses.assigned", cfg.Statuses.Assigned)
	}
	if len(cfg.Statuses.Unassigned) > 0 {
		v.Set("statuses.unassigned", cfg.Statuses.Unassigned)
	}
	setIfNotEmpty(v, "log_file", cfg.LogFile)

	path := Path()
	if err := v.WriteConfigAs(path); err != nil {
		return err
	}
	return os.Chmod(path, 0o600)
}

func setIfNotEmpty(v *viper.Viper, key, value string) {
	if value != "" {
		v.Set(key, value)
	}
}

// configDir returns the XDG-compliant config directory for boardnotifier.
func configDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "boardnotifier")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "boardnotifier")
}

// Path returns the config file path written by Write.
func Path() string {
	return filepath.Join(configDir(), "config.yml")
}
