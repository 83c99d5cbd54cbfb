package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_ValidJSON(t *testing.T) {
	content := `{
		"api_url": "https://hiring.example.com",
		"timeout_seconds": 10,
		"job_id": "job-42",
		"allowed_extensions": [".pdf"],
		"verbose": true
	}`

	tmpFile := filepath.Join(t.TempDir(), "config.json")
	err := os.WriteFile(tmpFile, []byte(content), 0644)
	require.NoError(t, err)

	cfg, err := LoadConfig(tmpFile)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "https://hiring.example.com", cfg.APIURL)
	assert.Equal(t, 10, cfg.TimeoutSeconds)
	assert.Equal(t, "job-42", cfg.JobID)
	assert.Equal(t, []string{".pdf"}, cfg.AllowedExtensions)
	assert.True(t, cfg.Verbose)
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "config.json")
	err := os.WriteFile(tmpFile, []byte(`{ invalid json }`), 0644)
	require.NoError(t, err)

	cfg, err := LoadConfig(tmpFile)
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to parse config JSON")
}

func TestLoadConfig_FileNotFound(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/path/config.json")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadConfig_EmptyPath(t *testing.T) {
	cfg, err := LoadConfig("")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "config path is empty")
}

func TestFromEnv(t *testing.T) {
	t.Setenv("API_URL", " http://api.internal:5000 ")
	t.Setenv("HIREASSIST_STORAGE_FILE", "/tmp/storage.json")
	t.Setenv("HTTP_TIMEOUT_SECONDS", "5")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, "http://api.internal:5000", cfg.APIURL)
	assert.Equal(t, "/tmp/storage.json", cfg.StorageFile)
	assert.Equal(t, 5, cfg.TimeoutSeconds)
}

func TestFromEnv_Unset(t *testing.T) {
	t.Setenv("API_URL", "")
	t.Setenv("HIREASSIST_STORAGE_FILE", "")
	t.Setenv("HTTP_TIMEOUT_SECONDS", "")

	cfg, err := FromEnv()
	require.NoError(t, err)
	merged := cfg.MergeWithDefaults(Defaults())
	assert.Equal(t, DefaultAPIURL, merged.APIURL)
	assert.Equal(t, DefaultJobID, merged.JobID)
	assert.Equal(t, 30*time.Second, merged.Timeout())
}

func TestFromEnv_InvalidTimeout(t *testing.T) {
	t.Setenv("HTTP_TIMEOUT_SECONDS", "soon")

	_, err := FromEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP_TIMEOUT_SECONDS")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{name: "defaults", cfg: Defaults()},
		{name: "empty", cfg: Config{}},
		{name: "relative url", cfg: Config{APIURL: "localhost:5000"}, wantErr: "api_url"},
		{name: "bad scheme", cfg: Config{APIURL: "ftp://example.com"}, wantErr: "scheme"},
		{name: "negative timeout", cfg: Config{TimeoutSeconds: -1}, wantErr: "timeout_seconds"},
		{name: "negative size", cfg: Config{MaxFileSizeMB: -1}, wantErr: "max_file_size_mb"},
		{name: "extension without dot", cfg: Config{AllowedExtensions: []string{"pdf"}}, wantErr: "start with a dot"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestMergeWithDefaults(t *testing.T) {
	partial := Config{
		APIURL:  "https://custom.example.com",
		Verbose: true,
	}

	merged := partial.MergeWithDefaults(Defaults())

	// Custom values should be preserved
	assert.Equal(t, "https://custom.example.com", merged.APIURL)
	assert.True(t, merged.Verbose)

	// Default values should fill in empty fields
	assert.Equal(t, DefaultJobID, merged.JobID)
	assert.Equal(t, DefaultTimeoutSeconds, merged.TimeoutSeconds)
	assert.Equal(t, DefaultAllowedExtensions, merged.AllowedExtensions)
	assert.Equal(t, int64(10<<20), merged.MaxFileSize())
}

func TestMergeWithDefaults_DoesNotAliasExtensions(t *testing.T) {
	defaults := Defaults()
	var cfg Config
	merged := cfg.MergeWithDefaults(defaults)
	merged.AllowedExtensions[0] = ".txt"

	assert.Equal(t, ".pdf", defaults.AllowedExtensions[0])
}

func TestAPIBase(t *testing.T) {
	cfg := Config{APIURL: "http://localhost:5000/"}
	assert.Equal(t, "http://localhost:5000", cfg.APIBase())
}

func TestDefaultStorageFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())

	path, err := DefaultStorageFile()
	require.NoError(t, err)
	assert.Equal(t, "storage.json", filepath.Base(path))
	assert.Equal(t, "hiring-assistant", filepath.Base(filepath.Dir(path)))
}
