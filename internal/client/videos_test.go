package client

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/twelvelabs-go/pkg/twelvelabs"
)

func TestVideosClient(t *testing.T) {
	t.Parallel()

	server := newTestServer(t, func(writer http.ResponseWriter, request *http.Request) {
		switch request.Method + " " + request.URL.Path {
		case "GET /indexes/idx1/videos/vid1":
			writeJSON(t, writer, http.StatusOK, map[string]interface{}{
				"_id":      "vid1",
				"metadata": map[string]interface{}{"filename": "cat.mp4", "duration": 12.5, "width": 1280, "height": 720},
			})
		case "GET /indexes/idx1/videos":
			writeJSON(t, writer, http.StatusOK, map[string]interface{}{
				"data":      []map[string]string{{"_id": "vid1"}, {"_id": "vid2"}},
				"page_info": map[string]int{"page": 1, "total_page": 1},
			})
		case "DELETE /indexes/idx1/videos/vid1":
			writer.WriteHeader(http.StatusNoContent)
		default:
			writeAPIError(t, writer, http.StatusNotFound, "video_not_exists")
		}
	})

	videos := NewTestClient(server.URL).Videos()

	t.Run("get", func(t *testing.T) {
		t.Parallel()

		video, err := videos.Get(context.Background(), "idx1", "vid1")
		require.NoError(t, err)
		assert.Equal(t, "vid1", video.ID)
		require.NotNil(t, video.Metadata)
		assert.Equal(t, "cat.mp4", video.Metadata.Filename)
		assert.Equal(t, 720, video.Metadata.Height)
	})

	t.Run("get missing", func(t *testing.T) {
		t.Parallel()

		_, err := videos.Get(context.Background(), "idx1", "vid9")
		require.ErrorIs(t, err, twelvelabs.ErrNotFound)
	})

	t.Run("list", func(t *testing.T) {
		t.Parallel()

		list, err := videos.List(context.Background(), "idx1", nil)
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, "vid2", list[1].ID)
	})

	t.Run("list page", func(t *testing.T) {
		t.Parallel()

		page, err := videos.ListPage(context.Background(), "idx1", twelvelabs.NewListParams())
		require.NoError(t, err)
		require.Len(t, page.Data, 2)
		assert.Equal(t, 1, page.PageInfo.TotalPage)
		assert.False(t, page.HasMore())
	})

	t.Run("delete", func(t *testing.T) {
		t.Parallel()

		require.NoError(t, videos.Delete(context.Background(), "idx1", "vid1"))
	})

	t.Run("validation", func(t *testing.T) {
		t.Parallel()

		_, err := videos.Get(context.Background(), "", "vid1")
		require.ErrorIs(t, err, twelvelabs.ErrIndexIDRequired)

		_, err = videos.Get(context.Background(), "idx1", "")
		require.ErrorIs(t, err, twelvelabs.ErrVideoIDRequired)

		_, err = videos.List(context.Background(), "", nil)
		require.ErrorIs(t, err, twelvelabs.ErrIndexIDRequired)

		_, err = videos.ListPage(context.Background(), "", nil)
		require.ErrorIs(t, err, twelvelabs.ErrIndexIDRequired)
	})
}
