package cmd_test

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	// testBinaryName is the name of the test binary for E2E tests.
	testBinaryName = "flickr-mirror-test"
)

// TestMain builds the binary before running E2E tests.
func TestMain(m *testing.M) {
	// Build the binary for testing.
	//nolint:noctx // TestMain doesn't have access to context, and build is needed before tests run.
	buildCmd := exec.Command("go", "build", "-o", testBinaryName, "../.")
	if err := buildCmd.Run(); err != nil {
		os.Exit(1)
	}

	// Run tests.
	code := m.Run()

	// Cleanup.
	_ = os.Remove(testBinaryName)

	os.Exit(code)
}

// runBinary runs the test binary and returns its combined output.
func runBinary(t *testing.T, args ...string) (string, error) {
	t.Helper()

	//nolint:gosec,noctx // Test binary name is a constant, not user input. No context available in test.
	cmd := exec.Command("./"+testBinaryName, args...)
	output, err := cmd.CombinedOutput()

	return string(output), err
}

// TestE2E_FlagOverrides_InvalidValues tests that invalid configuration is rejected before any request.
func TestE2E_FlagOverrides_InvalidValues(t *testing.T) {
	t.Parallel()

	baseConfig := `
api_key: "test_key"
user_id: "12345678@N01"
output_path: "/tmp/flickr-mirror-e2e"
log_level: "info"
retry_attempts_count: 3
min_retry_pause: "1s"
max_retry_pause: "3s"
`

	tests := []struct {
		name             string
		flags            []string
		expectedErrorMsg string
	}{
		{
			name:             "invalid speed limit",
			flags:            []string{"--speed-limit", "invalid-speed"},
			expectedErrorMsg: "failed to parse download speed limit",
		},
		{
			name:             "negative max attempts",
			flags:            []string{"--max-attempts", "-1"},
			expectedErrorMsg: "max_download_attempts cannot be negative",
		},
		{
			name:             "blank user",
			flags:            []string{"--user", " "},
			expectedErrorMsg: "user_id cannot be empty",
		},
		{
			name:             "unexpected argument",
			flags:            []string{"https://www.flickr.com/photos/someone/albums"},
			expectedErrorMsg: "unknown command",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			configPath := filepath.Join(t.TempDir(), "test-config.yaml")
			err := os.WriteFile(configPath, []byte(baseConfig), 0o644) //nolint:gosec // It's a test file.
			require.NoError(t, err)

			args := append([]string{"--config", configPath}, tt.flags...)

			output, err := runBinary(t, args...)
			require.Error(t, err)

			assert.Contains(t, strings.ToLower(output), strings.ToLower(tt.expectedErrorMsg),
				"Expected error message about '%s' but got: %s", tt.expectedErrorMsg, output)
		})
	}
}

// TestE2E_MissingConfig tests that a missing config file is reported.
func TestE2E_MissingConfig(t *testing.T) {
	t.Parallel()

	output, err := runBinary(t, "--config", filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.Contains(t, output, "Failed to load configuration")
}

// TestE2E_ConfigInit tests that config init writes a file and refuses to overwrite it.
func TestE2E_ConfigInit(t *testing.T) {
	t.Parallel()

	configPath := filepath.Join(t.TempDir(), "generated.yaml")

	output, err := runBinary(t, "config", "init", "--config", configPath)
	require.NoError(t, err, output)
	assert.FileExists(t, configPath)

	content, err := os.ReadFile(configPath)
	require.NoError(t, err)
	assert.Contains(t, string(content), "api_key:")
	assert.Contains(t, string(content), "max_download_attempts:")

	output, err = runBinary(t, "config", "init", "--config", configPath)
	require.Error(t, err)
	assert.Contains(t, output, "config file already exists")
}

// TestE2E_Version tests the version subcommand.
func TestE2E_Version(t *testing.T) {
	t.Parallel()

	output, err := runBinary(t, "version")
	require.NoError(t, err)
	assert.Contains(t, output, "version: ")
	assert.Contains(t, output, "commit: ")
}
