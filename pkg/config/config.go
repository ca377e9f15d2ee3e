package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const ConfigFileName = ".jira-mcp.yml"

// Environment variables that override file-based credentials.
const (
	EnvJiraURL      = "JIRA_URL"
	EnvJiraUsername = "JIRA_USERNAME"
	EnvJiraAPIToken = "JIRA_API_TOKEN"
)

// Config represents the jira-mcp configuration
type Config struct {
	Jira     JiraConfig     `yaml:"jira"`
	Defaults DefaultsConfig `yaml:"defaults"`
	Server   ServerConfig   `yaml:"server,omitempty"`
	Logging  LoggingConfig  `yaml:"logging,omitempty"`
}

// JiraConfig represents the Jira instance connection settings
type JiraConfig struct {
	URL      string `yaml:"url"`
	Username string `yaml:"username,omitempty"`
	APIToken string `yaml:"api_token,omitempty"`
}

// DefaultsConfig represents default values applied to operations
type DefaultsConfig struct {
	// Project is the project key commands fall back to when no
	// project flag is given. Batch items still name their own project.
	Project          string `yaml:"project,omitempty"`
	IssueType        string `yaml:"issue_type"`
	MaxSearchResults int    `yaml:"max_search_results"`
}

// ServerConfig represents MCP server settings
type ServerConfig struct {
	Name         string `yaml:"name,omitempty"`
	HTTPAddr     string `yaml:"http_addr,omitempty"`
	EndpointPath string `yaml:"endpoint_path,omitempty"`
}

// LoggingConfig represents logging settings
type LoggingConfig struct {
	Level string `yaml:"level,omitempty"`
}

// DefaultConfig returns a default configuration
func DefaultConfig() *Config {
	return &Config{
		Jira: JiraConfig{},
		Defaults: DefaultsConfig{
			IssueType:        "Task",
			MaxSearchResults: 20,
		},
		Server: ServerConfig{
			Name:         "jira-mcp",
			HTTPAddr:     "localhost:8080",
			EndpointPath: "/mcp",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load loads configuration from the nearest config file, then applies
// environment overrides so credentials never have to live on disk.
func Load() (*Config, error) {
	configPath := findConfigFile()
	if configPath == "" {
		// No file is fine as long as the environment carries the connection.
		cfg := DefaultConfig()
		cfg.applyEnv()
		return cfg, nil
	}
	return LoadFrom(configPath)
}

// LoadFrom loads configuration from a specific file path
func LoadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file at %s: %w", path, err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.applyEnv()
	return cfg, nil
}

// Save writes the configuration to path. The API token is stripped first;
// credentials stay in the environment, never on disk.
func (c *Config) Save(path string) error {
	redacted := *c
	redacted.Jira.APIToken = ""

	data, err := yaml.Marshal(&redacted)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// applyEnv overrides connection settings from the environment
func (c *Config) applyEnv() {
	if v := os.Getenv(EnvJiraURL); v != "" {
		c.Jira.URL = v
	}
	if v := os.Getenv(EnvJiraUsername); v != "" {
		c.Jira.Username = v
	}
	if v := os.Getenv(EnvJiraAPIToken); v != "" {
		c.Jira.APIToken = v
	}
}

// findConfigFile searches for config file in current and parent directories
func findConfigFile() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		configPath := filepath.Join(dir, ConfigFileName)
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return ""
}

// Exists checks if configuration file exists
func Exists() bool {
	return findConfigFile() != ""
}

// FindConfigPath returns the path to the configuration file
func FindConfigPath() string {
	return findConfigFile()
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Jira.URL == "" {
		return fmt.Errorf("jira url is required (set jira.url or %s)", EnvJiraURL)
	}

	u, err := url.Parse(c.Jira.URL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid jira url '%s': must start with http:// or https://", c.Jira.URL)
	}

	if c.Jira.APIToken == "" {
		return fmt.Errorf("jira api token is required (set jira.api_token or %s)", EnvJiraAPIToken)
	}

	// Jira Cloud basic auth wants the account email as the username.
	if c.Jira.Username != "" && !isValidEmail(c.Jira.Username) {
		return fmt.Errorf("invalid jira username '%s': must be an email address", c.Jira.Username)
	}

	if c.Defaults.MaxSearchResults <= 0 {
		return fmt.Errorf("max_search_results must be positive, got %d", c.Defaults.MaxSearchResults)
	}

	return nil
}

// isValidEmail checks if a username looks like an email address
func isValidEmail(s string) bool {
	at := strings.Index(s, "@")
	if at <= 0 || at == len(s)-1 {
		return false
	}
	return strings.Contains(s[at+1:], ".")
}
