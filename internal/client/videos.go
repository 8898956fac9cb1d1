package client

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/fivetwenty-io/twelvelabs-go/internal/constants"
	"github.com/fivetwenty-io/twelvelabs-go/internal/http"
	"github.com/fivetwenty-io/twelvelabs-go/pkg/twelvelabs"
)

// VideosClient implements twelvelabs.VideosClient.
type VideosClient struct {
	httpClient *http.Client
}

// NewVideosClient creates a new videos client.
func NewVideosClient(httpClient *http.Client) *VideosClient {
	return &VideosClient{
		httpClient: httpClient,
	}
}

func videosPath(indexID string) string {
	return constants.APIPathIndexes + "/" + escapeID(indexID) + "/videos"
}

// Get retrieves a video of an index.
func (c *VideosClient) Get(ctx context.Context, indexID, videoID string) (*twelvelabs.Video, error) {
	if indexID == "" {
		return nil, twelvelabs.ErrIndexIDRequired
	}

	if videoID == "" {
		return nil, twelvelabs.ErrVideoIDRequired
	}

	resp, err := c.httpClient.Get(ctx, videosPath(indexID)+"/"+escapeID(videoID), nil)
	if err != nil {
		return nil, fmt.Errorf("getting video: %w", err)
	}

	var video twelvelabs.Video

	err = json.Unmarshal(resp.Body, &video)
	if err != nil {
		return nil, fmt.Errorf("parsing video response: %w", err)
	}

	return &video, nil
}

// List returns the videos of an index on the page selected by params.
func (c *VideosClient) List(ctx context.Context, indexID string, params *twelvelabs.ListParams) ([]twelvelabs.Video, error) {
	page, err := c.ListPage(ctx, indexID, params)
	if err != nil {
		return nil, err
	}

	return page.Data, nil
}

// ListPage returns one page of an index's videos together with its page info.
func (c *VideosClient) ListPage(ctx context.Context, indexID string, params *twelvelabs.ListParams) (*twelvelabs.ListResponse[twelvelabs.Video], error) {
	if indexID == "" {
		return nil, twelvelabs.ErrIndexIDRequired
	}

	return listPage[twelvelabs.Video](ctx, c.httpClient, videosPath(indexID), params, "videos")
}

// Delete removes a video from an index.
func (c *VideosClient) Delete(ctx context.Context, indexID, videoID string) error {
	if indexID == "" {
		return twelvelabs.ErrIndexIDRequired
	}

	if videoID == "" {
		return twelvelabs.ErrVideoIDRequired
	}

	_, err := c.httpClient.Delete(ctx, videosPath(indexID)+"/"+escapeID(videoID))
	if err != nil {
		return fmt.Errorf("deleting video: %w", err)
	}

	return nil
}
