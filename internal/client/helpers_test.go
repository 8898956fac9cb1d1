package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/twelvelabs-go/internal/constants"
	internalhttp "github.com/fivetwenty-io/twelvelabs-go/internal/http"
	"github.com/fivetwenty-io/twelvelabs-go/pkg/twelvelabs"
)

const testAPIKey = "tlk_test_key"

// NewTestClient creates a client against baseURL with polling sped up.
func NewTestClient(baseURL string) *Client {
	httpClient := internalhttp.NewClient(baseURL, testAPIKey)

	client := NewWithHTTPClient(httpClient, nil)
	client.baseURL = baseURL

	if tasks, ok := client.tasks.(*TasksClient); ok {
		tasks.pollInterval = constants.QuickPollInterval
	}

	return client
}

// newTestServer starts a server that is closed with the test.
func newTestServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return server
}

func writeJSON(t *testing.T, writer http.ResponseWriter, status int, body interface{}) {
	t.Helper()

	writer.Header().Set("Content-Type", "application/json")
	writer.WriteHeader(status)

	if body != nil {
		require.NoError(t, json.NewEncoder(writer).Encode(body))
	}
}

func writeAPIError(t *testing.T, writer http.ResponseWriter, status int, code string) {
	t.Helper()

	writeJSON(t, writer, status, map[string]string{
		"code":    code,
		"message": code + " occurred",
	})
}

// TestGetOperation represents a generic get operation test case.
type TestGetOperation[TResponse any] struct {
	Name         string
	ID           string
	ExpectedPath string
	StatusCode   int
	Response     *TResponse
	WantErr      error
}

// RunGetTests runs a series of get operation tests.
func RunGetTests[TResponse any](
	t *testing.T,
	tests []TestGetOperation[TResponse],
	getFunc func(*Client) func(context.Context, string) (*TResponse, error),
) {
	t.Helper()

	for _, testCase := range tests {
		t.Run(testCase.Name, func(t *testing.T) {
			t.Parallel()

			server := newTestServer(t, func(writer http.ResponseWriter, request *http.Request) {
				assert.Equal(t, testCase.ExpectedPath, request.URL.Path)
				assert.Equal(t, http.MethodGet, request.Method)
				assert.Equal(t, testAPIKey, request.Header.Get(constants.APIKeyHeader))

				if testCase.StatusCode >= http.StatusBadRequest {
					writeAPIError(t, writer, testCase.StatusCode, "resource_not_exists")

					return
				}

				writeJSON(t, writer, testCase.StatusCode, testCase.Response)
			})

			client := NewTestClient(server.URL)

			result, err := getFunc(client)(context.Background(), testCase.ID)

			if testCase.WantErr != nil {
				require.ErrorIs(t, err, testCase.WantErr)
				assert.Nil(t, result)

				return
			}

			require.NoError(t, err)
			require.NotNil(t, result)
			assert.Equal(t, testCase.Response, result)
		})
	}
}

// recordingLogger captures log messages.
type recordingLogger struct {
	mu       sync.Mutex
	messages []string
}

func (l *recordingLogger) record(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.messages = append(l.messages, msg)
}

func (l *recordingLogger) Debug(msg string, _ map[string]interface{}) { l.record(msg) }
func (l *recordingLogger) Info(msg string, _ map[string]interface{})  { l.record(msg) }
func (l *recordingLogger) Warn(msg string, _ map[string]interface{})  { l.record(msg) }
func (l *recordingLogger) Error(msg string, _ map[string]interface{}) { l.record(msg) }

func (l *recordingLogger) Messages() []string {
	l.mu.Lock()
	defer l.mu.Unlock()

	return append([]string(nil), l.messages...)
}

var _ twelvelabs.Logger = (*recordingLogger)(nil)
