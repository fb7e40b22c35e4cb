package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration options for lcstats
type Config struct {
	// LeetCode API settings
	LeetCode LeetCodeConfig `yaml:"leetcode" json:"leetcode"`

	// Input spreadsheet layout
	Input InputConfig `yaml:"input" json:"input"`

	// Export settings
	Output OutputConfig `yaml:"output" json:"output"`

	// Web UI settings
	Server ServerConfig `yaml:"server" json:"server"`

	// Logging configuration
	Logging LoggingConfig `yaml:"logging" json:"logging"`
}

// LeetCodeConfig holds settings for the GraphQL endpoint
type LeetCodeConfig struct {
	Endpoint  string `yaml:"endpoint" json:"endpoint"`
	BaseURL   string `yaml:"base_url" json:"base_url"`
	UserAgent string `yaml:"user_agent" json:"user_agent"`
	// RequestTimeout of 0 keeps the transport default (no timeout)
	RequestTimeout time.Duration `yaml:"request_timeout" json:"request_timeout"`
}

// InputConfig describes where roll numbers and profile links live
type InputConfig struct {
	Sheet         string `yaml:"sheet" json:"sheet"`
	RollColumn    string `yaml:"roll_column" json:"roll_column"`
	ProfileColumn string `yaml:"profile_column" json:"profile_column"`
	ProfileMarker string `yaml:"profile_marker" json:"profile_marker"`
}

// OutputConfig holds export configuration
type OutputConfig struct {
	Directory string `yaml:"directory" json:"directory"`
	FileName  string `yaml:"file_name" json:"file_name"`
	Format    string `yaml:"format" json:"format"`
}

// ServerConfig holds web UI configuration
type ServerConfig struct {
	Addr         string        `yaml:"addr" json:"addr"`
	MaxUploadMB  int64         `yaml:"max_upload_mb" json:"max_upload_mb"`
	ReadTimeout  time.Duration `yaml:"read_timeout" json:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout" json:"write_timeout"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level string `yaml:"level" json:"level"`
	File  string `yaml:"file" json:"file"`
}

// DefaultConfig returns a Config instance with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		LeetCode: LeetCodeConfig{
			Endpoint:       "https://leetcode.com/graphql",
			BaseURL:        "https://leetcode.com",
			UserAgent:      "Mozilla/5.0",
			RequestTimeout: 0,
		},
		Input: InputConfig{
			Sheet:         "",
			RollColumn:    "roll_number",
			ProfileColumn: "leetcode_profile",
			ProfileMarker: "leetcode.com",
		},
		Output: OutputConfig{
			Directory: ".",
			FileName:  "leetcode_results.csv",
			Format:    "csv",
		},
		Server: ServerConfig{
			Addr:        ":8501",
			MaxUploadMB: 10,
			ReadTimeout: 30 * time.Second,
			// Lookups are sequential, so a large class can take minutes
			WriteTimeout: 15 * time.Minute,
		},
		Logging: LoggingConfig{
			Level: "info",
			File:  "",
		},
	}
}

// LoadFromEnv loads configuration from environment variables
func (c *Config) LoadFromEnv() error {
	if endpoint := os.Getenv("LCSTATS_ENDPOINT"); endpoint != "" {
		c.LeetCode.Endpoint = endpoint
	}
	if userAgent := os.Getenv("LCSTATS_USER_AGENT"); userAgent != "" {
		c.LeetCode.UserAgent = userAgent
	}
	if timeout := os.Getenv("LCSTATS_REQUEST_TIMEOUT"); timeout != "" {
		d, err := time.ParseDuration(timeout)
		if err != nil {
			return fmt.Errorf("invalid LCSTATS_REQUEST_TIMEOUT: %w", err)
		}
		c.LeetCode.RequestTimeout = d
	}

	if sheet := os.Getenv("LCSTATS_SHEET"); sheet != "" {
		c.Input.Sheet = sheet
	}

	if outputDir := os.Getenv("LCSTATS_OUTPUT_DIR"); outputDir != "" {
		c.Output.Directory = outputDir
	}
	if format := os.Getenv("LCSTATS_OUTPUT_FORMAT"); format != "" {
		c.Output.Format = strings.ToLower(format)
	}

	if addr := os.Getenv("LCSTATS_ADDR"); addr != "" {
		c.Server.Addr = addr
	}
	if maxUpload := os.Getenv("LCSTATS_MAX_UPLOAD_MB"); maxUpload != "" {
		val, err := strconv.ParseInt(maxUpload, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid LCSTATS_MAX_UPLOAD_MB: %w", err)
		}
		c.Server.MaxUploadMB = val
	}

	if logLevel := os.Getenv("LCSTATS_LOG_LEVEL"); logLevel != "" {
		c.Logging.Level = logLevel
	}
	if logFile := os.Getenv("LCSTATS_LOG_FILE"); logFile != "" {
		c.Logging.File = logFile
	}

	return nil
}

// LoadFromFile loads configuration from a YAML file
func (c *Config) LoadFromFile(path string) error {
	// If path is empty, try default locations
	if path == "" {
		path = c.findConfigFile()
		if path == "" {
			return nil // No config file found, not an error
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	return nil
}

// findConfigFile searches for config file in standard locations
func (c *Config) findConfigFile() string {
	home := os.Getenv("HOME")
	locations := []string{
		".lcstats.yaml",
		".lcstats.yml",
		filepath.Join(home, ".config", "lcstats", "config.yaml"),
		filepath.Join(home, ".config", "lcstats", "config.yml"),
		filepath.Join(home, ".lcstats.yaml"),
	}

	for _, loc := range locations {
		if _, err := os.Stat(loc); err == nil {
			return loc
		}
	}

	return ""
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	var errs []error

	if c.LeetCode.Endpoint == "" {
		errs = append(errs, errors.New("leetcode endpoint is required"))
	}
	if c.LeetCode.BaseURL == "" {
		errs = append(errs, errors.New("leetcode base url is required"))
	}
	if c.LeetCode.RequestTimeout < 0 {
		errs = append(errs, errors.New("request timeout cannot be negative"))
	}

	if strings.TrimSpace(c.Input.RollColumn) == "" {
		errs = append(errs, errors.New("roll number column is required"))
	}
	if strings.TrimSpace(c.Input.ProfileColumn) == "" {
		errs = append(errs, errors.New("profile column is required"))
	}
	if c.Input.ProfileMarker == "" {
		errs = append(errs, errors.New("profile marker is required"))
	}

	if c.Output.FileName == "" {
		errs = append(errs, errors.New("output file name is required"))
	}
	validFormats := map[string]bool{"csv": true, "xlsx": true}
	if !validFormats[strings.ToLower(c.Output.Format)] {
		errs = append(errs, fmt.Errorf("invalid output format %q", c.Output.Format))
	}

	if c.Server.MaxUploadMB <= 0 {
		errs = append(errs, errors.New("max upload size must be positive"))
	}

	validLogLevels := map[string]bool{
		"debug": true, "info": true, "warn": true, "error": true, "disabled": true,
	}
	if !validLogLevels[strings.ToLower(c.Logging.Level)] {
		errs = append(errs, errors.New("invalid log level"))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	return nil
}

// Save saves the configuration to a file
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// MergeCommandLineFlags merges command line flags into the configuration.
// Keys match the cobra flag names; zero values are ignored.
func (c *Config) MergeCommandLineFlags(flags map[string]interface{}) {
	if endpoint, ok := flags["endpoint"].(string); ok && endpoint != "" {
		c.LeetCode.Endpoint = endpoint
	}
	if timeout, ok := flags["timeout"].(time.Duration); ok && timeout > 0 {
		c.LeetCode.RequestTimeout = timeout
	}
	if sheet, ok := flags["sheet"].(string); ok && sheet != "" {
		c.Input.Sheet = sheet
	}
	if outputDir, ok := flags["output"].(string); ok && outputDir != "" {
		c.Output.Directory = outputDir
	}
	if fileName, ok := flags["file-name"].(string); ok && fileName != "" {
		c.Output.FileName = fileName
	}
	if format, ok := flags["format"].(string); ok && format != "" {
		c.Output.Format = strings.ToLower(format)
	}
	if addr, ok := flags["addr"].(string); ok && addr != "" {
		c.Server.Addr = addr
	}
	if logLevel, ok := flags["log-level"].(string); ok && logLevel != "" {
		c.Logging.Level = logLevel
	}
}

// Load loads configuration from all sources with proper precedence
// Precedence order: Command line flags > Environment variables > .env file > Config file > Defaults
func Load(configPath string, flags map[string]interface{}) (*Config, error) {
	// Missing .env files are fine
	_ = godotenv.Load(".env")
	_ = godotenv.Load(filepath.Join(os.Getenv("HOME"), ".lcstats.env"))

	config := DefaultConfig()

	if err := config.LoadFromFile(configPath); err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}

	if err := config.LoadFromEnv(); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	config.MergeCommandLineFlags(flags)

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}
