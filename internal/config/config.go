package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

const (
	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "filament.json"

	// DefaultPort is the default development server port.
	DefaultPort = 3000

	// DefaultHost is the default development server host.
	DefaultHost = "localhost"
)

// Config represents the complete filament.json configuration.
type Config struct {
	// Name is the project name.
	Name string `json:"name,omitempty"`

	// Version is the project version.
	Version string `json:"version,omitempty"`

	// Server contains development server configuration.
	Server ServerConfig `json:"server,omitempty"`

	// Page contains defaults for the rendered HTML document.
	Page PageConfig `json:"page,omitempty"`

	// Session contains live-session configuration.
	Session SessionConfig `json:"session,omitempty"`

	// Publish contains static publishing configuration.
	Publish PublishConfig `json:"publish,omitempty"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// ServerConfig contains development server settings.
type ServerConfig struct {
	// Port is the port to run the dev server on.
	Port int `json:"port,omitempty"`

	// Host is the host to bind to.
	Host string `json:"host,omitempty"`

	// MetricsEnabled exposes Prometheus metrics on /metrics.
	MetricsEnabled bool `json:"metrics,omitempty"`

	// Pretty enables pretty-printed HTML from the page handler.
	Pretty bool `json:"pretty,omitempty"`
}

// PageConfig contains defaults for rendered documents.
type PageConfig struct {
	// Title is the default page title.
	Title string `json:"title,omitempty"`

	// Lang is the html element language attribute.
	Lang string `json:"lang,omitempty"`

	// StyleSheets are stylesheet paths injected into every page.
	StyleSheets []string `json:"stylesheets,omitempty"`

	// ClientScript overrides the thin client script path.
	ClientScript string `json:"clientScript,omitempty"`
}

// SessionConfig contains live-session settings.
type SessionConfig struct {
	// PingInterval is how often the server pings idle sockets (e.g. "30s").
	PingInterval string `json:"pingInterval,omitempty"`

	// WriteTimeout bounds a single socket write (e.g. "10s").
	WriteTimeout string `json:"writeTimeout,omitempty"`
}

// PublishConfig contains settings for publishing a static render.
type PublishConfig struct {
	// Bucket is the S3 bucket to publish to.
	Bucket string `json:"bucket,omitempty"`

	// Prefix is the object key prefix inside the bucket.
	Prefix string `json:"prefix,omitempty"`

	// Region overrides the AWS region from the environment.
	Region string `json:"region,omitempty"`
}

// New creates a new Config with default values.
func New() *Config {
	return &Config{
		Version: "0.1.0",
		Server: ServerConfig{
			Port:           DefaultPort,
			Host:           DefaultHost,
			MetricsEnabled: true,
		},
		Page: PageConfig{
			Title: "Filament App",
			Lang:  "en",
		},
		Session: SessionConfig{
			PingInterval: "30s",
			WriteTimeout: "10s",
		},
	}
}

// Load reads configuration from the specified directory.
// It looks for filament.json in the directory. A missing file yields the
// defaults with environment overrides applied, not an error.
func Load(dir string) (*Config, error) {
	path := filepath.Join(dir, ConfigFileName)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		cfg := New()
		cfg.applyEnv()
		return cfg, nil
	}
	return LoadFile(path)
}

// LoadFile reads configuration from the specified file path. Values from
// the file override the defaults; FILAMENT_* environment variables
// override both.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}

	cfg := New()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}

	cfg.configPath = path
	cfg.applyDefaults()
	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration to the file it was loaded from.
func (c *Config) Save() error {
	if c.configPath == "" {
		return fmt.Errorf("config: no config path set")
	}
	return c.SaveTo(c.configPath)
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("config: encoding: %w", err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("config: writing %s: %w", path, err)
	}
	c.configPath = path
	return nil
}

// Path returns the path where the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

// applyDefaults fills in default values for empty fields.
func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = DefaultPort
	}
	if c.Server.Host == "" {
		c.Server.Host = DefaultHost
	}
	if c.Page.Title == "" {
		c.Page.Title = "Filament App"
	}
	if c.Page.Lang == "" {
		c.Page.Lang = "en"
	}
	if c.Session.PingInterval == "" {
		c.Session.PingInterval = "30s"
	}
	if c.Session.WriteTimeout == "" {
		c.Session.WriteTimeout = "10s"
	}
}

// applyEnv applies FILAMENT_* environment overrides.
func (c *Config) applyEnv() {
	if v := os.Getenv("FILAMENT_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.Server.Port = port
		}
	}
	if v := os.Getenv("FILAMENT_HOST"); v != "" {
		c.Server.Host = v
	}
	if v := os.Getenv("FILAMENT_BUCKET"); v != "" {
		c.Publish.Bucket = v
	}
	if v := os.Getenv("FILAMENT_REGION"); v != "" {
		c.Publish.Region = v
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("config: port %d out of range", c.Server.Port)
	}
	if _, err := c.Session.PingIntervalDuration(); err != nil {
		return fmt.Errorf("config: pingInterval: %w", err)
	}
	if _, err := c.Session.WriteTimeoutDuration(); err != nil {
		return fmt.Errorf("config: writeTimeout: %w", err)
	}
	return nil
}

// PingIntervalDuration parses the ping interval.
func (s SessionConfig) PingIntervalDuration() (time.Duration, error) {
	if s.PingInterval == "" {
		return 30 * time.Second, nil
	}
	return time.ParseDuration(s.PingInterval)
}

// WriteTimeoutDuration parses the write timeout.
func (s SessionConfig) WriteTimeoutDuration() (time.Duration, error) {
	if s.WriteTimeout == "" {
		return 10 * time.Second, nil
	}
	return time.ParseDuration(s.WriteTimeout)
}

// Address returns the listen address for the dev server.
func (c *Config) Address() string {
	return c.Server.Host + ":" + strconv.Itoa(c.Server.Port)
}

// URL returns the full URL for the dev server.
func (c *Config) URL() string {
	return "http://" + c.Address()
}

// Exists checks if a config file exists in the given directory.
func Exists(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, ConfigFileName))
	return err == nil
}

// FindProjectRoot walks up directories to find the project root.
// Returns the directory containing filament.json, or an error if not found.
func FindProjectRoot(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	for {
		if Exists(dir) {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("config: no %s found in %s or any parent directory", ConfigFileName, startDir)
		}
		dir = parent
	}
}
