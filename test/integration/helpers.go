//go:build integration

package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/twelvelabs-go/pkg/tlclient"
	"github.com/fivetwenty-io/twelvelabs-go/pkg/twelvelabs"
)

// TestConfig holds configuration for integration tests
type TestConfig struct {
	APIKey     string
	BaseURL    string
	VideoURL   string
	BinaryPath string
	Verbose    bool
}

// LoadTestConfig loads configuration from environment variables
func LoadTestConfig() *TestConfig {
	return &TestConfig{
		APIKey:     os.Getenv("TWELVELABS_API_KEY"),
		BaseURL:    os.Getenv("TWELVELABS_BASE_URL"),
		VideoURL:   os.Getenv("TWELVELABS_TEST_VIDEO_URL"),
		BinaryPath: getBinaryPath(),
		Verbose:    os.Getenv("TWELVELABS_VERBOSE") == "true",
	}
}

// getBinaryPath determines the path to the twelvelabs binary
func getBinaryPath() string {
	if path := os.Getenv("TWELVELABS_BINARY_PATH"); path != "" {
		return path
	}

	candidates := []string{
		"../../twelvelabs",
		"./twelvelabs",
		"../twelvelabs",
	}

	for _, candidate := range candidates {
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}

	return "twelvelabs"
}

// SkipIfMissingConfig skips test if required config is missing
func (config *TestConfig) SkipIfMissingConfig(t *testing.T) {
	t.Helper()

	if config.APIKey == "" {
		t.Skip("TWELVELABS_API_KEY not set, skipping integration test")
	}
}

// SkipIfMissingBinary skips CLI tests when the binary has not been built
func (config *TestConfig) SkipIfMissingBinary(t *testing.T) {
	t.Helper()

	if _, err := exec.LookPath(config.BinaryPath); err != nil {
		t.Skipf("twelvelabs binary not found at %s, skipping CLI test", config.BinaryPath)
	}
}

// SkipIfMissingVideo skips tests that upload a video
func (config *TestConfig) SkipIfMissingVideo(t *testing.T) {
	t.Helper()

	if config.VideoURL == "" {
		t.Skip("TWELVELABS_TEST_VIDEO_URL not set, skipping upload test")
	}
}

// NewClient creates a library client from the test configuration
func (config *TestConfig) NewClient(t *testing.T) twelvelabs.Client {
	t.Helper()

	client, err := tlclient.New(&twelvelabs.Config{
		APIKey:   config.APIKey,
		BaseURL:  config.BaseURL,
		RetryMax: 2,
	})
	require.NoError(t, err)

	return client
}

// CommandRunner provides utilities for running twelvelabs commands
type CommandRunner struct {
	config *TestConfig
	t      *testing.T
}

// NewCommandRunner creates a new command runner
func NewCommandRunner(config *TestConfig, t *testing.T) *CommandRunner {
	return &CommandRunner{
		config: config,
		t:      t,
	}
}

// Run executes a twelvelabs command and returns output
func (runner *CommandRunner) Run(args ...string) (stdout, stderr string, err error) {
	cmd := exec.Command(runner.config.BinaryPath, args...)
	cmd.Env = append(os.Environ(), "TWELVELABS_API_KEY="+runner.config.APIKey)

	if runner.config.BaseURL != "" {
		cmd.Env = append(cmd.Env, "TWELVELABS_BASE_URL="+runner.config.BaseURL)
	}

	var stdoutBuf, stderrBuf bytes.Buffer

	cmd.Stdout = &stdoutBuf
	cmd.Stderr = &stderrBuf

	if runner.config.Verbose {
		runner.t.Logf("Running: %s %s", runner.config.BinaryPath, strings.Join(args, " "))
	}

	err = cmd.Run()
	stdout = stdoutBuf.String()
	stderr = stderrBuf.String()

	if runner.config.Verbose && err != nil {
		runner.t.Logf("Command failed: %v\nStdout: %s\nStderr: %s", err, stdout, stderr)
	}

	return stdout, stderr, err
}

// CleanupIndex attempts to delete a test index
func (runner *CommandRunner) CleanupIndex(indexID string) {
	stdout, stderr, err := runner.Run("indexes", "delete", indexID)
	if err != nil && runner.config.Verbose {
		runner.t.Logf("Cleanup warning for index %s: %s\nStderr: %s", indexID, stdout, stderr)
	}
}

// GenerateTestName creates a unique test resource name
func GenerateTestName(prefix string) string {
	return fmt.Sprintf("%s-%s", prefix, uuid.NewString()[:8])
}

// DecodeJSONOutput verifies command output is JSON and decodes it into target
func DecodeJSONOutput(t *testing.T, output string, target interface{}) {
	t.Helper()

	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(output)), target), "Output is not JSON: %s", output)
}
