// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

const (
	// DefaultAPIURL is the backend used when API_URL is unset.
	DefaultAPIURL = "http://localhost:5000"
	// DefaultJobID is the placeholder job identifier sent with every upload
	// until job postings can be selected.
	DefaultJobID = "60d5ecb86d1f2e2d8c8b4567"
	// DefaultTimeoutSeconds bounds every backend request.
	DefaultTimeoutSeconds = 30
	// DefaultMaxFileSizeMB is the largest resume accepted into the queue.
	DefaultMaxFileSizeMB = 10
)

// DefaultAllowedExtensions mirrors the accept filter of the resume picker.
var DefaultAllowedExtensions = []string{".pdf", ".docx"}

// Config represents the CLI configuration that can be loaded from a JSON file.
// All fields are optional; missing values use environment values or defaults.
type Config struct {
	// Backend
	APIURL         string `json:"api_url,omitempty"`         // Base URL of the hiring-assistant API
	TimeoutSeconds int    `json:"timeout_seconds,omitempty"` // Per-request timeout
	JobID          string `json:"job_id,omitempty"`          // Job identifier sent with uploads

	// Local state
	StorageFile string `json:"storage_file,omitempty"` // Durable key-value file holding the session

	// Resume intake
	AllowedExtensions []string `json:"allowed_extensions,omitempty"` // Accepted resume extensions
	MaxFileSizeMB     int      `json:"max_file_size_mb,omitempty"`   // Largest accepted resume
	Permissive        bool     `json:"permissive,omitempty"`         // Skip type and size checks
	ProbeFiles        bool     `json:"probe_files,omitempty"`        // Open documents locally before queueing

	// Behavior
	UseBrowser bool `json:"use_browser,omitempty"` // Render job-description URLs in a headless browser
	Verbose    bool `json:"verbose,omitempty"`     // Print detailed debug information
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		APIURL:            DefaultAPIURL,
		TimeoutSeconds:    DefaultTimeoutSeconds,
		JobID:             DefaultJobID,
		AllowedExtensions: append([]string(nil), DefaultAllowedExtensions...),
		MaxFileSizeMB:     DefaultMaxFileSizeMB,
	}
}

// FromEnv reads API_URL, HIREASSIST_STORAGE_FILE and HTTP_TIMEOUT_SECONDS.
// Unset variables leave the corresponding field empty.
func FromEnv() (Config, error) {
	cfg := Config{
		APIURL:      strings.TrimSpace(os.Getenv("API_URL")),
		StorageFile: strings.TrimSpace(os.Getenv("HIREASSIST_STORAGE_FILE")),
	}

	if timeoutStr := os.Getenv("HTTP_TIMEOUT_SECONDS"); timeoutStr != "" {
		timeout, err := strconv.Atoi(timeoutStr)
		if err != nil {
			return Config{}, fmt.Errorf("invalid HTTP_TIMEOUT_SECONDS: %v", err)
		}
		cfg.TimeoutSeconds = timeout
	}

	return cfg, nil
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if c.APIURL != "" {
		parsed, err := url.Parse(c.APIURL)
		if err != nil || parsed.Scheme == "" || parsed.Host == "" {
			return fmt.Errorf("config error: 'api_url' must be an absolute URL, got %q", c.APIURL)
		}
		if parsed.Scheme != "http" && parsed.Scheme != "https" {
			return fmt.Errorf("config error: 'api_url' scheme must be http or https, got %q", parsed.Scheme)
		}
	}

	if c.TimeoutSeconds < 0 {
		return fmt.Errorf("config error: 'timeout_seconds' must be non-negative")
	}
	if c.MaxFileSizeMB < 0 {
		return fmt.Errorf("config error: 'max_file_size_mb' must be non-negative")
	}

	for _, ext := range c.AllowedExtensions {
		if !strings.HasPrefix(ext, ".") {
			return fmt.Errorf("config error: allowed extension %q must start with a dot", ext)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.APIURL == "" {
		result.APIURL = defaults.APIURL
	}
	if result.JobID == "" {
		result.JobID = defaults.JobID
	}
	if result.StorageFile == "" {
		result.StorageFile = defaults.StorageFile
	}
	if result.TimeoutSeconds == 0 {
		result.TimeoutSeconds = defaults.TimeoutSeconds
	}
	if result.MaxFileSizeMB == 0 {
		result.MaxFileSizeMB = defaults.MaxFileSizeMB
	}
	if len(result.AllowedExtensions) == 0 {
		result.AllowedExtensions = append([]string(nil), defaults.AllowedExtensions...)
	}

	// Bool fields: cannot distinguish unset from false, so a true anywhere wins
	result.Permissive = result.Permissive || defaults.Permissive
	result.ProbeFiles = result.ProbeFiles || defaults.ProbeFiles
	result.UseBrowser = result.UseBrowser || defaults.UseBrowser
	result.Verbose = result.Verbose || defaults.Verbose

	return result
}

// Timeout returns the per-request timeout.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// MaxFileSize returns the size limit in bytes.
func (c *Config) MaxFileSize() int64 {
	return int64(c.MaxFileSizeMB) << 20
}

// APIBase returns the API URL without a trailing slash.
func (c *Config) APIBase() string {
	return strings.TrimRight(c.APIURL, "/")
}

// DefaultStorageFile returns the durable storage location under the user config directory.
func DefaultStorageFile() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate user config directory: %w", err)
	}
	return filepath.Join(dir, "hiring-assistant", "storage.json"), nil
}
