package commands

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/twelvelabs-go/internal/constants"
)

func TestGenerateTextCommand(t *testing.T) {
	server := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/generate", r.URL.Path)

		var body map[string]interface{}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "vid-1", body["video_id"])
		assert.Equal(t, "Describe the cat", body["prompt"])
		assert.Equal(t, false, body["stream"])
		assert.InDelta(t, 0.2, body["temperature"], 0.0001)

		writeJSON(t, w, http.StatusOK, map[string]string{"id": "gen-1", "data": "A cat sleeps."})
	})
	setupTestViper(t, server.URL, constants.FormatTable)

	stdout, _, err := executeCommand(newGenerateTextCommand(), "vid-1", "--prompt", "Describe the cat", "--temperature", "0.2")
	require.NoError(t, err)
	assert.Equal(t, "A cat sleeps.\n", stdout)
}

func TestGenerateSummarizeCommand(t *testing.T) {
	server := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/summarize", r.URL.Path)

		writeJSON(t, w, http.StatusOK, map[string]interface{}{
			"id": "sum-1",
			"chapters": []map[string]interface{}{
				{"chapter_number": 1, "start": 0, "end": 30, "chapter_title": "Intro", "chapter_summary": "Opening"},
				{"chapter_number": 2, "start": 30, "end": 95, "chapter_title": "Chase", "chapter_summary": "The cat runs"},
			},
		})
	})
	setupTestViper(t, server.URL, constants.FormatTable)

	stdout, _, err := executeCommand(newGenerateSummarizeCommand(), "vid-1", "--type", "chapter")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Intro")
	assert.Contains(t, stdout, "Chase")
	assert.Contains(t, stdout, "1m35s")
}

func TestGenerateGistCommand(t *testing.T) {
	server := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		var body map[string]interface{}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, []interface{}{"title", "hashtag"}, body["types"])

		writeJSON(t, w, http.StatusOK, map[string]interface{}{
			"id":       "gist-1",
			"title":    "Cat nap",
			"hashtags": []string{"#cat", "#nap"},
		})
	})
	setupTestViper(t, server.URL, constants.FormatTable)

	stdout, _, err := executeCommand(newGenerateGistCommand(), "vid-1", "--type", "title,hashtag")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Cat nap")
	assert.Contains(t, stdout, "#cat #nap")
	assert.Contains(t, stdout, NotAvailable)
}
