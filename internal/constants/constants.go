package constants

import "time"

// File and directory permissions.
const (
	// ConfigDirPerm is the permission for configuration directories.
	ConfigDirPerm = 0750

	// ConfigFilePerm is the permission for configuration files.
	ConfigFilePerm = 0600
)

// API endpoint defaults.
const (
	// DefaultBaseURL is the platform endpoint used when none is configured.
	DefaultBaseURL = "https://api.twelvelabs.io/v1.2"

	// DefaultUserAgent is sent when Config.UserAgent is empty.
	DefaultUserAgent = "twelvelabs-go/1.0"

	// APIKeyHeader carries the static API key on every request.
	APIKeyHeader = "x-api-key"

	// RequestIDHeader carries a per-request identifier for support tickets.
	RequestIDHeader = "X-Request-Id"
)

// API paths.
const (
	APIPathIndexes   = "/indexes"
	APIPathTasks     = "/tasks"
	APIPathSearch    = "/search"
	APIPathGenerate  = "/generate"
	APIPathSummarize = "/summarize"
	APIPathGist      = "/gist"
)

// HTTP and network timeouts.
const (
	// DefaultHTTPTimeout is the default timeout for HTTP requests.
	DefaultHTTPTimeout = 30 * time.Second

	// UploadHTTPTimeout is used when a task is created from a local file.
	UploadHTTPTimeout = 10 * time.Minute

	// ShortHTTPTimeout is used for quick operations.
	ShortHTTPTimeout = 10 * time.Second
)

// Retry limits for the transport. Retries are opt-in: RetryMax 0 sends each
// request exactly once.
const (
	// DefaultRetryWaitMin is the minimum wait between transport retries.
	DefaultRetryWaitMin = 1 * time.Second

	// DefaultRetryWaitMax is the maximum wait time between retries.
	DefaultRetryWaitMax = 10 * time.Second

	// ExtendedRetryWaitMax is used for operations that need longer waits.
	ExtendedRetryWaitMax = 30 * time.Second
)

// Client-side rate limiting.
const (
	// DefaultRateBurst is used when a rate limit is set without a burst.
	DefaultRateBurst = 1
)

// Time intervals and delays.
const (
	// DefaultPollInterval is used for task polling.
	DefaultPollInterval = 5 * time.Second

	// QuickPollInterval is used for fast polling in tests.
	QuickPollInterval = 10 * time.Millisecond

	// DefaultPollAttempts bounds a wait when neither MaxAttempts nor MaxWait is set.
	DefaultPollAttempts = 360
)

// Pagination limits.
const (
	// DefaultPageSize is the default number of items per page.
	DefaultPageSize = 10

	// MaxPageSize is the largest page the platform serves.
	MaxPageSize = 50

	// MaxListPages bounds how many pages a list command walks.
	MaxListPages = 1000
)

// Error body handling.
const (
	// MaxErrorBodyLogBytes truncates error bodies written to logs.
	MaxErrorBodyLogBytes = 512
)

// CLI display.
const (
	// TimeFormat is used for timestamps in table output.
	TimeFormat = "2006-01-02 15:04:05"

	// ScoreFormat renders clip scores.
	ScoreFormat = "%.2f"
)

// Output formats.
const (
	FormatTable = "table"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
)

// CLI configuration.
const (
	// ConfigDirName is the directory under $HOME holding the CLI config.
	ConfigDirName = ".twelvelabs"

	// ConfigFileName is the config file inside ConfigDirName.
	ConfigFileName = "config.yml"

	// EnvPrefix namespaces environment overrides, e.g. TWELVELABS_API_KEY.
	EnvPrefix = "TWELVELABS"

	// MinimumArgumentCount is the argument count of KEY VALUE commands.
	MinimumArgumentCount = 2

	// MaskVisibleChars is how many trailing characters of a secret stay visible.
	MaskVisibleChars = 4
)
