package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jonathan/hiring-assistant/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resolve(t *testing.T, args ...string) (config.Config, error) {
	t.Helper()
	root := newRootCmd()
	cmd, rest, err := root.Find(append([]string{"whoami"}, args...))
	require.NoError(t, err)
	require.NoError(t, cmd.ParseFlags(rest))

	opts := &rootOptions{}
	opts.configPath, _ = cmd.Flags().GetString("config")
	opts.verbose, _ = cmd.Flags().GetBool("verbose")
	opts.apiURL, _ = cmd.Flags().GetString("api-url")
	opts.storageFile, _ = cmd.Flags().GetString("storage-file")
	return opts.resolveConfig(cmd)
}

func TestResolveConfig_Defaults(t *testing.T) {
	clearClientEnv(t)
	t.Setenv("HIREASSIST_STORAGE_FILE", filepath.Join(t.TempDir(), "s.json"))

	cfg, err := resolve(t)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultAPIURL, cfg.APIURL)
	assert.Equal(t, config.DefaultJobID, cfg.JobID)
	assert.Equal(t, config.DefaultTimeoutSeconds, cfg.TimeoutSeconds)
	assert.Equal(t, []string{".pdf", ".docx"}, cfg.AllowedExtensions)
	assert.False(t, cfg.Verbose)
}

func TestResolveConfig_Precedence(t *testing.T) {
	clearClientEnv(t)
	dir := t.TempDir()
	t.Setenv("API_URL", "http://env.example:1")
	t.Setenv("HTTP_TIMEOUT_SECONDS", "7")
	t.Setenv("HIREASSIST_STORAGE_FILE", filepath.Join(dir, "env.json"))

	cfgPath := filepath.Join(dir, "config.json")
	require.NoError(t, os.WriteFile(cfgPath, []byte(`{"api_url":"http://file.example:2","job_id":"job-file"}`), 0o644))

	cfg, err := resolve(t, "--config", cfgPath)
	require.NoError(t, err)
	assert.Equal(t, "http://file.example:2", cfg.APIURL)
	assert.Equal(t, "job-file", cfg.JobID)
	assert.Equal(t, 7, cfg.TimeoutSeconds)
	assert.Equal(t, filepath.Join(dir, "env.json"), cfg.StorageFile)

	cfg, err = resolve(t, "--config", cfgPath, "--api-url", "http://flag.example:3", "--verbose")
	require.NoError(t, err)
	assert.Equal(t, "http://flag.example:3", cfg.APIURL)
	assert.True(t, cfg.Verbose)
}

func TestResolveConfig_Invalid(t *testing.T) {
	clearClientEnv(t)
	t.Setenv("HIREASSIST_STORAGE_FILE", filepath.Join(t.TempDir(), "s.json"))

	_, err := resolve(t, "--api-url", "ftp://nope")
	assert.ErrorContains(t, err, "scheme must be http or https")

	t.Setenv("HTTP_TIMEOUT_SECONDS", "soon")
	_, err = resolve(t)
	assert.ErrorContains(t, err, "invalid HTTP_TIMEOUT_SECONDS")
}
