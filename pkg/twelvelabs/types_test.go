package twelvelabs_test

import (
	"encoding/json"
	"testing"

	"github.com/fivetwenty-io/twelvelabs-go/pkg/twelvelabs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTaskStatus_Terminal(t *testing.T) {
	t.Parallel()

	terminal := map[twelvelabs.TaskStatus]bool{
		twelvelabs.TaskStatusValidating: false,
		twelvelabs.TaskStatusPending:    false,
		twelvelabs.TaskStatusQueued:     false,
		twelvelabs.TaskStatusIndexing:   false,
		twelvelabs.TaskStatusReady:      true,
		twelvelabs.TaskStatusFailed:     true,
		"reticulating":                  false,
	}

	for status, want := range terminal {
		assert.Equal(t, want, status.Terminal(), string(status))
	}

	assert.False(t, twelvelabs.TaskStatus("reticulating").Known())
	assert.True(t, twelvelabs.TaskStatusQueued.Known())
}

func TestTask_Normalize(t *testing.T) {
	t.Parallel()

	indexing := &twelvelabs.Task{Status: twelvelabs.TaskStatusIndexing, VideoID: "vid"}
	indexing.Normalize()
	assert.Empty(t, indexing.VideoID)

	ready := &twelvelabs.Task{Status: twelvelabs.TaskStatusReady, VideoID: "vid"}
	ready.Normalize()
	assert.Equal(t, "vid", ready.VideoID)
}

func TestUnknownVariantsDecode(t *testing.T) {
	t.Parallel()

	var index twelvelabs.Index

	err := json.Unmarshal([]byte(`{
		"_id": "idx1",
		"index_name": "clips",
		"engines": [{"engine_name": "marengo2.6", "engine_options": ["visual", "audio"]}]
	}`), &index)
	require.NoError(t, err)

	require.Len(t, index.Engines, 1)
	options := index.Engines[0].Options
	require.Len(t, options, 2)
	assert.True(t, options[0].Known())
	assert.False(t, options[1].Known())
	assert.Equal(t, twelvelabs.EngineOption("audio"), options[1])

	var clip twelvelabs.Clip

	err = json.Unmarshal([]byte(`{"video_id":"v1","score":83.2,"start":1.5,"end":4,"confidence":"very_high"}`), &clip)
	require.NoError(t, err)
	assert.False(t, clip.Confidence.Known())
	assert.InDelta(t, 83.2, clip.Score, 0.001)
}

func TestListParams_ToValues(t *testing.T) {
	t.Parallel()

	params := twelvelabs.NewListParams().WithPageLimit(20).WithFilter("index_name", "movies")
	params.Page = 3

	values := params.ToValues()
	assert.Equal(t, "3", values.Get("page"))
	assert.Equal(t, "20", values.Get("page_limit"))
	assert.Equal(t, "movies", values.Get("index_name"))

	var nilParams *twelvelabs.ListParams
	assert.Empty(t, nilParams.ToValues())
}
