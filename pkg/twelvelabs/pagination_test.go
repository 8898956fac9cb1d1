package twelvelabs_test

import (
	"context"
	"errors"
	"testing"

	"github.com/fivetwenty-io/twelvelabs-go/pkg/twelvelabs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MockSearchPager serves pages by token and counts calls.
type MockSearchPager struct {
	pages  map[string]*twelvelabs.SearchResultPage
	errs   map[string]error
	tokens []string
}

func (m *MockSearchPager) ByPageToken(ctx context.Context, pageToken string) (*twelvelabs.SearchResultPage, error) {
	m.tokens = append(m.tokens, pageToken)

	if err, ok := m.errs[pageToken]; ok {
		delete(m.errs, pageToken)

		return nil, err
	}

	page, ok := m.pages[pageToken]
	if !ok {
		return nil, twelvelabs.MapError(400, []byte(`{"code":"token_expired"}`))
	}

	return page, nil
}

func clipsFor(ids ...string) []twelvelabs.Clip {
	clips := make([]twelvelabs.Clip, 0, len(ids))
	for _, id := range ids {
		clips = append(clips, twelvelabs.Clip{VideoID: id})
	}

	return clips
}

func pageOf(next string, ids ...string) *twelvelabs.SearchResultPage {
	return &twelvelabs.SearchResultPage{
		Clips:    clipsFor(ids...),
		PageInfo: twelvelabs.SearchPageInfo{NextPageToken: next},
	}
}

func videoIDs(clips []twelvelabs.Clip) []string {
	ids := make([]string, 0, len(clips))
	for _, clip := range clips {
		ids = append(ids, clip.VideoID)
	}

	return ids
}

func TestSearchCursor_WalksPagesInOrder(t *testing.T) {
	t.Parallel()

	pager := &MockSearchPager{
		pages: map[string]*twelvelabs.SearchResultPage{
			"tok1": pageOf("tok2", "v3", "v4"),
			"tok2": pageOf("tok3", "v5"),
			"tok3": pageOf("", "v6"),
		},
	}

	cursor := twelvelabs.NewSearchCursor(pager, pageOf("tok1", "v1", "v2"))
	assert.Equal(t, []string{"v1", "v2"}, videoIDs(cursor.Page().Clips))

	var got [][]string

	for range 3 {
		page, ok, err := cursor.Next(context.Background())
		require.NoError(t, err)
		require.True(t, ok)

		got = append(got, videoIDs(page.Clips))
	}

	assert.Equal(t, [][]string{{"v3", "v4"}, {"v5"}, {"v6"}}, got)
	assert.Equal(t, []string{"tok1", "tok2", "tok3"}, pager.tokens)
	assert.Equal(t, 4, cursor.PagesFetched())

	page, ok, err := cursor.Next(context.Background())
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, page)
	assert.Len(t, pager.tokens, 3, "exhausted cursor must not fetch")
}

func TestSearchCursor_ExhaustionIsIdempotent(t *testing.T) {
	t.Parallel()

	pager := &MockSearchPager{
		pages: map[string]*twelvelabs.SearchResultPage{
			"tok1": pageOf("", "v2"),
		},
	}

	cursor := twelvelabs.NewSearchCursor(pager, pageOf("tok1", "v1"))

	_, ok, err := cursor.Next(context.Background())
	require.NoError(t, err)
	require.True(t, ok)

	for range 5 {
		page, ok, err := cursor.Next(context.Background())
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Nil(t, page)
		assert.False(t, cursor.HasNext())
	}

	assert.Len(t, pager.tokens, 1)
}

func TestSearchCursor_EmptyResult(t *testing.T) {
	t.Parallel()

	pager := &MockSearchPager{}
	cursor := twelvelabs.NewSearchCursor(pager, &twelvelabs.SearchResultPage{})

	assert.Empty(t, cursor.Page().Clips)
	assert.False(t, cursor.HasNext())

	page, ok, err := cursor.Next(context.Background())
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, page)
	assert.Empty(t, pager.tokens)
}

func TestSearchCursor_RejectedTokenIsAnError(t *testing.T) {
	t.Parallel()

	pager := &MockSearchPager{}
	cursor := twelvelabs.NewSearchCursor(pager, pageOf("expired", "v1"))

	page, ok, err := cursor.Next(context.Background())
	require.Error(t, err)
	assert.False(t, ok)
	assert.Nil(t, page)
	require.ErrorIs(t, err, twelvelabs.ErrBadRequest)

	// The cursor keeps its position after a failed fetch.
	assert.True(t, cursor.HasNext())
	assert.Equal(t, []string{"v1"}, videoIDs(cursor.Page().Clips))
}

func TestSearchCursor_RetryAfterTransientFailure(t *testing.T) {
	t.Parallel()

	pager := &MockSearchPager{
		pages: map[string]*twelvelabs.SearchResultPage{
			"tok1": pageOf("", "v2"),
		},
		errs: map[string]error{
			"tok1": twelvelabs.MapError(503, nil),
		},
	}

	cursor := twelvelabs.NewSearchCursor(pager, pageOf("tok1", "v1"))

	_, _, err := cursor.Next(context.Background())
	require.ErrorIs(t, err, twelvelabs.ErrInternalServer)

	page, ok, err := cursor.Next(context.Background())
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []string{"v2"}, videoIDs(page.Clips))
}

func TestSearchCursor_All(t *testing.T) {
	t.Parallel()

	pager := &MockSearchPager{
		pages: map[string]*twelvelabs.SearchResultPage{
			"tok1": pageOf("tok2", "v3", "v4"),
			"tok2": pageOf("", "v5"),
		},
	}

	cursor := twelvelabs.NewSearchCursor(pager, pageOf("tok1", "v1", "v2"))

	clips, err := cursor.All(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"v1", "v2", "v3", "v4", "v5"}, videoIDs(clips))
	assert.False(t, cursor.HasNext())
}

func TestSearchCursor_ForEachStopsOnError(t *testing.T) {
	t.Parallel()

	errStop := errors.New("stop")
	pager := &MockSearchPager{
		pages: map[string]*twelvelabs.SearchResultPage{
			"tok1": pageOf("", "v3"),
		},
	}

	cursor := twelvelabs.NewSearchCursor(pager, pageOf("tok1", "v1", "v2"))

	var seen []string

	err := cursor.ForEach(context.Background(), func(clip twelvelabs.Clip) error {
		seen = append(seen, clip.VideoID)
		if clip.VideoID == "v2" {
			return errStop
		}

		return nil
	})

	require.ErrorIs(t, err, errStop)
	assert.Equal(t, []string{"v1", "v2"}, seen)
	assert.Empty(t, pager.tokens)
}

func TestSearchCursor_NilFirstPage(t *testing.T) {
	t.Parallel()

	cursor := twelvelabs.NewSearchCursor(&MockSearchPager{}, nil)

	require.NotNil(t, cursor.Page())
	assert.False(t, cursor.HasNext())
}
