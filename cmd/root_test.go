package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oshokin/flickr-mirror/internal/config"
	"github.com/oshokin/flickr-mirror/internal/constants"
	"github.com/oshokin/flickr-mirror/internal/version"
)

const testBaseConfigContent = `
api_key: "config_key"
user_id: "11111111@N01"
output_path: "/config/output"
download_speed_limit: "500KB"
log_level: "info"
page_size: 500
download_pause: "1s"
max_download_attempts: 0
retry_attempts_count: 3
min_retry_pause: "1s"
max_retry_pause: "3s"
max_request_pause: "2s"
`

// newTestRootFlags creates a command with the same flags as the root command.
func newTestRootFlags() *cobra.Command {
	testCmd := &cobra.Command{Use: "test"}

	testCmd.Flags().StringP("output", "o", "", "output directory")
	testCmd.Flags().StringP("user", "u", "", "user ID")
	testCmd.Flags().StringP("speed-limit", "s", "", "download speed limit")
	testCmd.Flags().Int64P("max-attempts", "m", 0, "attempt limit")
	testCmd.Flags().Bool("dry-run", false, "dry run")

	return testCmd
}

// TestFlagOverrides tests that command-line flags correctly override configuration file values.
//
//nolint:funlen // It's a comprehensive table test.
func TestFlagOverrides(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		flags          map[string]string
		expectedConfig func(*testing.T, *config.Config)
	}{
		{
			name:  "no flags - use config values",
			flags: map[string]string{},
			expectedConfig: func(t *testing.T, cfg *config.Config) {
				t.Helper()
				assert.Equal(t, "/config/output", cfg.OutputPath)
				assert.Equal(t, "11111111@N01", cfg.UserID)
				assert.Equal(t, "500KB", cfg.DownloadSpeedLimit)
				assert.Equal(t, int64(500*1000), cfg.ParsedDownloadSpeedLimit)
				assert.Zero(t, cfg.MaxDownloadAttempts)
				assert.False(t, cfg.DryRun)
			},
		},
		{
			name:  "output flag only - override output path and log file",
			flags: map[string]string{"output": "/flag/output"},
			expectedConfig: func(t *testing.T, cfg *config.Config) {
				t.Helper()
				assert.Equal(t, "/flag/output", cfg.OutputPath)
				assert.Equal(t, filepath.Join("/flag/output", constants.DefaultLogFilename), cfg.LogFile)
			},
		},
		{
			name:  "user flag only - override user ID",
			flags: map[string]string{"user": "22222222@N02"},
			expectedConfig: func(t *testing.T, cfg *config.Config) {
				t.Helper()
				assert.Equal(t, "22222222@N02", cfg.UserID)
				assert.Equal(t, "/config/output", cfg.OutputPath)
			},
		},
		{
			name:  "speed-limit flag only - override speed limit",
			flags: map[string]string{"speed-limit": "1MB"},
			expectedConfig: func(t *testing.T, cfg *config.Config) {
				t.Helper()
				assert.Equal(t, "1MB", cfg.DownloadSpeedLimit)
				assert.Equal(t, int64(1000*1000), cfg.ParsedDownloadSpeedLimit)
			},
		},
		{
			name:  "max-attempts flag only - cap retries",
			flags: map[string]string{"max-attempts": "5"},
			expectedConfig: func(t *testing.T, cfg *config.Config) {
				t.Helper()
				assert.Equal(t, int64(5), cfg.MaxDownloadAttempts)
			},
		},
		{
			name:  "dry-run flag only",
			flags: map[string]string{"dry-run": "true"},
			expectedConfig: func(t *testing.T, cfg *config.Config) {
				t.Helper()
				assert.True(t, cfg.DryRun)
			},
		},
		{
			name: "all flags - override everything",
			flags: map[string]string{
				"output":       "/all/flags/output",
				"user":         "33333333@N03",
				"speed-limit":  "2MB",
				"max-attempts": "1",
				"dry-run":      "true",
			},
			expectedConfig: func(t *testing.T, cfg *config.Config) {
				t.Helper()
				assert.Equal(t, "/all/flags/output", cfg.OutputPath)
				assert.Equal(t, "33333333@N03", cfg.UserID)
				assert.Equal(t, "2MB", cfg.DownloadSpeedLimit)
				assert.Equal(t, int64(1), cfg.MaxDownloadAttempts)
				assert.True(t, cfg.DryRun)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			configPath := filepath.Join(t.TempDir(), "test-config.yaml")

			err := os.WriteFile(configPath, []byte(testBaseConfigContent), constants.DefaultFilePermissions)
			require.NoError(t, err)

			cfg, err := config.LoadConfig(configPath)
			require.NoError(t, err)

			testCmd := newTestRootFlags()
			for flagName, flagValue := range tt.flags {
				require.NoError(t, testCmd.Flags().Set(flagName, flagValue), "failed to set flag %s", flagName)
			}

			err = bindFlagsToConfig(testCmd.Flags(), cfg)
			require.NoError(t, err)

			tt.expectedConfig(t, cfg)
		})
	}
}

// TestFlagOverrides_Invalid tests that invalid flag values fail validation.
func TestFlagOverrides_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		flags   map[string]string
		wantErr error
	}{
		{"negative attempts", map[string]string{"max-attempts": "-1"}, config.ErrInvalidMaxDownloadAttempts},
		{"blank user", map[string]string{"user": "  "}, config.ErrEmptyUserID},
		{"blank output", map[string]string{"output": ""}, config.ErrEmptyOutputPath},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			configPath := filepath.Join(t.TempDir(), "test-config.yaml")
			require.NoError(t, os.WriteFile(configPath, []byte(testBaseConfigContent), constants.DefaultFilePermissions))

			cfg, err := config.LoadConfig(configPath)
			require.NoError(t, err)

			testCmd := newTestRootFlags()
			for flagName, flagValue := range tt.flags {
				require.NoError(t, testCmd.Flags().Set(flagName, flagValue))
			}

			require.ErrorIs(t, bindFlagsToConfig(testCmd.Flags(), cfg), tt.wantErr)
		})
	}
}

// TestVersionCommand tests the version subcommand output.
func TestVersionCommand(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer

	versionCmd.SetOut(&out)
	require.NoError(t, versionCmd.RunE(versionCmd, nil))
	assert.Equal(t, version.Full()+"\n", out.String())
}

// TestConfigInitCommand tests that config init writes a loadable file once.
//
//nolint:paralleltest // Mutates the global config flag.
func TestConfigInitCommand(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "generated.yaml")

	previous := configFilenameFromFlag
	configFilenameFromFlag = configPath

	t.Cleanup(func() {
		configFilenameFromFlag = previous
	})

	var out bytes.Buffer

	configInitCmd.SetOut(&out)
	require.NoError(t, configInitCmd.RunE(configInitCmd, nil))
	assert.Contains(t, out.String(), configPath)

	cfg, err := config.LoadConfig(configPath)
	require.NoError(t, err)
	assert.Equal(t, int64(config.MaxPageSize), cfg.PageSize)

	err = configInitCmd.RunE(configInitCmd, nil)
	require.ErrorIs(t, err, config.ErrConfigFileExists)
}
