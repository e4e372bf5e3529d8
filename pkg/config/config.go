package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed config.toml.sample
var configTemplate string

// Config holds the service configuration loaded from the TOML config file.
type Config struct {
	// DataDir is where the admin database lives.
	DataDir string `toml:"data_dir"`

	// ListenAddr is the address the HTTP API binds to.
	ListenAddr string `toml:"listen_addr"`

	// AdminURL is the base path of the host admin panel, used when
	// composing result links (e.g. "/admin").
	AdminURL string `toml:"admin_url"`

	// SiteURL is the base path of the public site, used for view-link
	// fallbacks on unpublished-but-viewable documents.
	SiteURL string `toml:"site_url"`

	// MinQueryLength is the minimum query length the API accepts before
	// running providers. Shorter queries return an empty batch.
	MinQueryLength int `toml:"min_query_length"`
}

func GetDefaultConfig() (*Config, error) {
	dataDir, err := GetDefaultDataDir()
	if err != nil {
		return nil, fmt.Errorf("getting default data directory: %w", err)
	}
	return &Config{
		DataDir:        dataDir,
		ListenAddr:     "localhost:8972",
		AdminURL:       "/admin",
		SiteURL:        "/",
		MinQueryLength: 2,
	}, nil
}

func LoadConfig(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return GetDefaultConfig()
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var config Config
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if config.DataDir == "" {
		dataDir, err := GetDefaultDataDir()
		if err != nil {
			return nil, fmt.Errorf("getting default data directory: %w", err)
		}
		config.DataDir = dataDir
	}
	if config.ListenAddr == "" {
		config.ListenAddr = "localhost:8972"
	}
	if config.AdminURL == "" {
		config.AdminURL = "/admin"
	}
	if config.SiteURL == "" {
		config.SiteURL = "/"
	}
	if config.MinQueryLength <= 0 {
		config.MinQueryLength = 2
	}

	return &config, nil
}

func (c *Config) SaveConfig(configPath string) error {
	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	return os.WriteFile(configPath, data, 0644)
}

// SaveTemplateConfig writes the annotated sample configuration, with the
// data_dir placeholder replaced by the resolved default path.
func (c *Config) SaveTemplateConfig(configPath string) error {
	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	dataDir := c.DataDir
	if dataDir == "" {
		var err error
		dataDir, err = GetDefaultDataDir()
		if err != nil {
			return fmt.Errorf("getting default data directory: %w", err)
		}
	}

	// Replace the placeholder data_dir with the actual path
	template := strings.Replace(configTemplate, "/home/user/.local/share/dashsearch", dataDir, 1)
	return os.WriteFile(configPath, []byte(template), 0644)
}

// GetDefaultDataDir returns the default directory for the admin database.
func GetDefaultDataDir() (string, error) {
	// Use XDG_DATA_HOME if set, otherwise use ~/.local/share
	dataDir := os.Getenv("XDG_DATA_HOME")
	if dataDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("getting user home directory: %w", err)
		}
		dataDir = filepath.Join(homeDir, ".local", "share")
	}

	appDir := filepath.Join(dataDir, "dashsearch")

	if err := os.MkdirAll(appDir, 0755); err != nil {
		return "", fmt.Errorf("creating data directory %s: %w", appDir, err)
	}

	return appDir, nil
}

// GetConfigDir returns the configuration directory for dashsearch.
func GetConfigDir() (string, error) {
	// Use XDG_CONFIG_HOME if set, otherwise use ~/.config
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("getting user home directory: %w", err)
		}
		configDir = filepath.Join(homeDir, ".config")
	}

	appConfigDir := filepath.Join(configDir, "dashsearch")

	if err := os.MkdirAll(appConfigDir, 0755); err != nil {
		return "", fmt.Errorf("creating config directory %s: %w", appConfigDir, err)
	}

	return appConfigDir, nil
}

// GetDefaultConfigPath returns the default configuration file path.
func GetDefaultConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.toml"), nil
}

// DBPath returns the path of the admin database under the data directory.
func (c *Config) DBPath() string {
	return filepath.Join(c.DataDir, "admin.db")
}
