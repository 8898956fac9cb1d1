package client

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/twelvelabs-go/pkg/twelvelabs"
)

func TestGenerateClient_Text(t *testing.T) {
	t.Parallel()

	server := newTestServer(t, func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/generate", request.URL.Path)

		var body map[string]interface{}
		assert.NoError(t, json.NewDecoder(request.Body).Decode(&body))
		assert.Equal(t, "vid1", body["video_id"])
		assert.Equal(t, "Describe the cat", body["prompt"])
		assert.Equal(t, false, body["stream"])

		writeJSON(t, writer, http.StatusOK, map[string]string{"id": "gen1", "data": "A cat jumps."})
	})

	request := &twelvelabs.GenerateRequest{VideoID: "vid1", Prompt: "Describe the cat", Stream: true}

	result, err := NewTestClient(server.URL).Generate().Text(context.Background(), request)
	require.NoError(t, err)
	assert.Equal(t, "A cat jumps.", result.Data)
	assert.True(t, request.Stream, "caller's request must not be modified")
}

func TestGenerateClient_Summarize(t *testing.T) {
	t.Parallel()

	server := newTestServer(t, func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/summarize", request.URL.Path)

		writeJSON(t, writer, http.StatusOK, map[string]interface{}{
			"id": "sum1",
			"chapters": []map[string]interface{}{
				{"chapter_number": 1, "start": 0, "end": 10, "chapter_title": "Intro", "chapter_summary": "A cat appears."},
			},
		})
	})

	result, err := NewTestClient(server.URL).Generate().Summarize(context.Background(), &twelvelabs.SummarizeRequest{
		VideoID: "vid1",
		Type:    twelvelabs.SummaryTypeChapter,
	})
	require.NoError(t, err)
	require.Len(t, result.Chapters, 1)
	assert.Equal(t, "Intro", result.Chapters[0].Title)
}

func TestGenerateClient_Gist(t *testing.T) {
	t.Parallel()

	server := newTestServer(t, func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/gist", request.URL.Path)

		var body map[string]interface{}
		assert.NoError(t, json.NewDecoder(request.Body).Decode(&body))
		assert.Equal(t, []interface{}{"title", "hashtag"}, body["types"])

		writeJSON(t, writer, http.StatusOK, map[string]interface{}{
			"id":       "gist1",
			"title":    "Cat Jump",
			"hashtags": []string{"cat", "jump"},
		})
	})

	result, err := NewTestClient(server.URL).Generate().Gist(context.Background(), &twelvelabs.GistRequest{
		VideoID: "vid1",
		Types:   []twelvelabs.GistType{twelvelabs.GistTypeTitle, twelvelabs.GistTypeHashtag},
	})
	require.NoError(t, err)
	assert.Equal(t, "Cat Jump", result.Title)
	assert.Equal(t, []string{"cat", "jump"}, result.Hashtags)
}

func TestGenerateClient_Validation(t *testing.T) {
	t.Parallel()

	generate := NewTestClient("http://127.0.0.1:0").Generate()
	ctx := context.Background()

	_, err := generate.Text(ctx, &twelvelabs.GenerateRequest{Prompt: "x"})
	require.ErrorIs(t, err, twelvelabs.ErrVideoIDRequired)

	_, err = generate.Text(ctx, &twelvelabs.GenerateRequest{VideoID: "vid1"})
	require.ErrorIs(t, err, twelvelabs.ErrPromptRequired)

	_, err = generate.Summarize(ctx, &twelvelabs.SummarizeRequest{VideoID: "vid1"})
	require.ErrorIs(t, err, twelvelabs.ErrSummaryTypeRequired)

	_, err = generate.Gist(ctx, &twelvelabs.GistRequest{VideoID: "vid1"})
	require.ErrorIs(t, err, twelvelabs.ErrGistTypesRequired)

	_, err = generate.Gist(ctx, nil)
	require.ErrorIs(t, err, twelvelabs.ErrRequestRequired)
}

func TestGenerateClient_UnprocessableVideo(t *testing.T) {
	t.Parallel()

	server := newTestServer(t, func(writer http.ResponseWriter, _ *http.Request) {
		writeAPIError(t, writer, http.StatusUnprocessableEntity, "video_not_ready")
	})

	_, err := NewTestClient(server.URL).Generate().Text(context.Background(),
		&twelvelabs.GenerateRequest{VideoID: "vid1", Prompt: "Describe"})
	require.ErrorIs(t, err, twelvelabs.ErrUnprocessableEntity)
}
