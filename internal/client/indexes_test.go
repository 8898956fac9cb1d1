package client

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/twelvelabs-go/pkg/twelvelabs"
)

func TestIndexesClient_Create(t *testing.T) {
	t.Parallel()

	server := newTestServer(t, func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/indexes", request.URL.Path)
		assert.Equal(t, http.MethodPost, request.Method)
		assert.Equal(t, "application/json", request.Header.Get("Content-Type"))

		var body twelvelabs.IndexCreateRequest
		assert.NoError(t, json.NewDecoder(request.Body).Decode(&body))
		assert.Equal(t, "movies", body.Name)
		require.Len(t, body.Engines, 1)
		assert.Equal(t, []twelvelabs.EngineOption{"visual", "conversation"}, body.Engines[0].Options)

		writeJSON(t, writer, http.StatusCreated, map[string]string{"_id": "idx1"})
	})

	engines := []twelvelabs.Engine{{
		Name:    "marengo2.6",
		Options: []twelvelabs.EngineOption{twelvelabs.EngineOptionVisual, twelvelabs.EngineOptionConversation},
	}}

	index, err := NewTestClient(server.URL).Indexes().Create(context.Background(), &twelvelabs.IndexCreateRequest{
		Name:    "movies",
		Engines: engines,
	})
	require.NoError(t, err)

	assert.Equal(t, "idx1", index.ID)
	assert.Equal(t, "movies", index.Name)
	assert.Equal(t, engines, index.Engines)
}

func TestIndexesClient_CreateValidation(t *testing.T) {
	t.Parallel()

	indexes := NewTestClient("http://127.0.0.1:0").Indexes()

	_, err := indexes.Create(context.Background(), nil)
	require.ErrorIs(t, err, twelvelabs.ErrRequestRequired)

	_, err = indexes.Create(context.Background(), &twelvelabs.IndexCreateRequest{
		Engines: []twelvelabs.Engine{{Name: "marengo2.6"}},
	})
	require.ErrorIs(t, err, twelvelabs.ErrIndexNameRequired)

	_, err = indexes.Create(context.Background(), &twelvelabs.IndexCreateRequest{Name: "movies"})
	require.ErrorIs(t, err, twelvelabs.ErrEnginesRequired)
}

func TestIndexesClient_CreateConflict(t *testing.T) {
	t.Parallel()

	server := newTestServer(t, func(writer http.ResponseWriter, _ *http.Request) {
		writeAPIError(t, writer, http.StatusConflict, "index_name_already_exists")
	})

	_, err := NewTestClient(server.URL).Indexes().Create(context.Background(), &twelvelabs.IndexCreateRequest{
		Name:    "movies",
		Engines: []twelvelabs.Engine{{Name: "marengo2.6", Options: []twelvelabs.EngineOption{"visual"}}},
	})
	require.ErrorIs(t, err, twelvelabs.ErrConflict)
	assert.Contains(t, err.Error(), "creating index")
}

func TestIndexesClient_Get(t *testing.T) {
	t.Parallel()

	RunGetTests(t, []TestGetOperation[twelvelabs.Index]{
		{
			Name:         "existing index",
			ID:           "idx1",
			ExpectedPath: "/indexes/idx1",
			StatusCode:   http.StatusOK,
			Response: &twelvelabs.Index{
				ID:         "idx1",
				Name:       "movies",
				VideoCount: 3,
				Engines: []twelvelabs.Engine{{
					Name:    "marengo2.6",
					Options: []twelvelabs.EngineOption{twelvelabs.EngineOptionVisual},
				}},
			},
		},
		{
			Name:         "missing index",
			ID:           "missing",
			ExpectedPath: "/indexes/missing",
			StatusCode:   http.StatusNotFound,
			WantErr:      twelvelabs.ErrNotFound,
		},
		{
			Name:         "forbidden index",
			ID:           "other",
			ExpectedPath: "/indexes/other",
			StatusCode:   http.StatusForbidden,
			WantErr:      twelvelabs.ErrPermissionDenied,
		},
	}, func(c *Client) func(context.Context, string) (*twelvelabs.Index, error) {
		return c.Indexes().Get
	})
}

// indexPages serves two pages of two and one indexes.
func indexPages(t *testing.T) (*Client, *atomic.Int32) {
	t.Helper()

	var calls atomic.Int32

	server := newTestServer(t, func(writer http.ResponseWriter, request *http.Request) {
		calls.Add(1)
		assert.Equal(t, "/indexes", request.URL.Path)
		assert.Equal(t, "2", request.URL.Query().Get("page_limit"))

		page := 1

		if raw := request.URL.Query().Get("page"); raw != "" {
			var err error

			page, err = strconv.Atoi(raw)
			assert.NoError(t, err)
		}

		data := map[int][]map[string]string{
			1: {{"_id": "idx1"}, {"_id": "idx2"}},
			2: {{"_id": "idx3"}},
		}

		writeJSON(t, writer, http.StatusOK, map[string]interface{}{
			"data":      data[page],
			"page_info": map[string]int{"page": page, "total_page": 2, "limit_per_page": 2, "total_results": 3},
		})
	})

	return NewTestClient(server.URL), &calls
}

func TestIndexesClient_List(t *testing.T) {
	t.Parallel()

	client, calls := indexPages(t)

	indexes, err := client.Indexes().List(context.Background(), twelvelabs.NewListParams().WithPageLimit(2))
	require.NoError(t, err)
	require.Len(t, indexes, 2)
	assert.Equal(t, "idx2", indexes[1].ID)
	assert.Equal(t, int32(1), calls.Load())
}

func TestIndexesClient_ListPage(t *testing.T) {
	t.Parallel()

	client, calls := indexPages(t)

	first, err := client.Indexes().ListPage(context.Background(), twelvelabs.NewListParams().WithPageLimit(2))
	require.NoError(t, err)
	assert.True(t, first.HasMore())
	assert.Equal(t, 3, first.PageInfo.TotalResults)

	last, err := client.Indexes().ListPage(context.Background(), twelvelabs.NewListParams().WithPageLimit(2).WithPage(2))
	require.NoError(t, err)
	require.Len(t, last.Data, 1)
	assert.Equal(t, "idx3", last.Data[0].ID)
	assert.Equal(t, 2, last.PageInfo.Page)
	assert.False(t, last.HasMore())
	assert.Equal(t, int32(2), calls.Load())
}

func TestIndexesClient_Delete(t *testing.T) {
	t.Parallel()

	server := newTestServer(t, func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, http.MethodDelete, request.Method)

		if request.URL.Path != "/indexes/idx1" {
			writeAPIError(t, writer, http.StatusNotFound, "index_not_exists")

			return
		}

		writer.WriteHeader(http.StatusNoContent)
	})

	indexes := NewTestClient(server.URL).Indexes()

	require.NoError(t, indexes.Delete(context.Background(), "idx1"))
	require.ErrorIs(t, indexes.Delete(context.Background(), "idx2"), twelvelabs.ErrNotFound)
	require.ErrorIs(t, indexes.Delete(context.Background(), ""), twelvelabs.ErrIndexIDRequired)
}
