package client

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/twelvelabs-go/pkg/twelvelabs"
)

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("requires config", func(t *testing.T) {
		t.Parallel()

		_, err := New(nil)
		require.ErrorIs(t, err, twelvelabs.ErrConfigRequired)
	})

	t.Run("requires base URL", func(t *testing.T) {
		t.Parallel()

		_, err := New(&twelvelabs.Config{APIKey: "key"})
		require.ErrorIs(t, err, ErrBaseURLRequired)
	})

	t.Run("initializes resource clients", func(t *testing.T) {
		t.Parallel()

		client, err := New(&twelvelabs.Config{
			APIKey:      "key",
			BaseURL:     "https://api.example.com/v1.2",
			HTTPTimeout: time.Second,
			RetryMax:    2,
			RateLimit:   5,
		})
		require.NoError(t, err)

		assert.NotNil(t, client.Indexes())
		assert.NotNil(t, client.Tasks())
		assert.NotNil(t, client.Search())
		assert.NotNil(t, client.Generate())
		assert.NotNil(t, client.Videos())
	})
}

func TestCreateHTTPClientOptions(t *testing.T) {
	t.Parallel()

	assert.Empty(t, createHTTPClientOptions(&twelvelabs.Config{}))

	opts := createHTTPClientOptions(&twelvelabs.Config{
		Logger:      &recordingLogger{},
		Debug:       true,
		UserAgent:   "test/1.0",
		HTTPTimeout: time.Second,
		RetryMax:    1,
		RateLimit:   10,
	})
	assert.Len(t, opts, 6)
}

func TestClient_DebugLogging(t *testing.T) {
	t.Parallel()

	server := newTestServer(t, func(writer http.ResponseWriter, _ *http.Request) {
		writeJSON(t, writer, http.StatusOK, map[string]string{"_id": "idx1"})
	})

	logger := &recordingLogger{}

	client, err := New(&twelvelabs.Config{
		APIKey:  "key",
		BaseURL: server.URL,
		Debug:   true,
		Logger:  logger,
	})
	require.NoError(t, err)

	_, err = client.Indexes().Get(context.Background(), "idx1")
	require.NoError(t, err)

	assert.Equal(t, []string{"HTTP Request", "HTTP Response"}, logger.Messages())
}

func TestEscapeID(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "idx1", escapeID("idx1"))
	assert.Equal(t, "a%2Fb", escapeID("a/b"))
	assert.Equal(t, "%20idx1%20", escapeID(" idx1 "))
	assert.Equal(t, "abc=", escapeID("abc="))
}
