package client

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/fivetwenty-io/twelvelabs-go/internal/constants"
	"github.com/fivetwenty-io/twelvelabs-go/internal/http"
	"github.com/fivetwenty-io/twelvelabs-go/pkg/twelvelabs"
)

// IndexesClient implements twelvelabs.IndexesClient.
type IndexesClient struct {
	httpClient *http.Client
}

// NewIndexesClient creates a new indexes client.
func NewIndexesClient(httpClient *http.Client) *IndexesClient {
	return &IndexesClient{
		httpClient: httpClient,
	}
}

// Create creates an index and returns it as the platform reports it.
func (c *IndexesClient) Create(ctx context.Context, request *twelvelabs.IndexCreateRequest) (*twelvelabs.Index, error) {
	if request == nil {
		return nil, twelvelabs.ErrRequestRequired
	}

	if request.Name == "" {
		return nil, twelvelabs.ErrIndexNameRequired
	}

	if len(request.Engines) == 0 {
		return nil, twelvelabs.ErrEnginesRequired
	}

	resp, err := c.httpClient.Post(ctx, constants.APIPathIndexes, request)
	if err != nil {
		return nil, fmt.Errorf("creating index: %w", err)
	}

	var created twelvelabs.IndexCreateResponse

	err = json.Unmarshal(resp.Body, &created)
	if err != nil {
		return nil, fmt.Errorf("parsing index create response: %w", err)
	}

	return &twelvelabs.Index{
		ID:      created.ID,
		Name:    request.Name,
		Engines: request.Engines,
	}, nil
}

// Get retrieves an index.
func (c *IndexesClient) Get(ctx context.Context, indexID string) (*twelvelabs.Index, error) {
	if indexID == "" {
		return nil, twelvelabs.ErrIndexIDRequired
	}

	path := constants.APIPathIndexes + "/" + escapeID(indexID)

	resp, err := c.httpClient.Get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("getting index: %w", err)
	}

	var index twelvelabs.Index

	err = json.Unmarshal(resp.Body, &index)
	if err != nil {
		return nil, fmt.Errorf("parsing index response: %w", err)
	}

	return &index, nil
}

// List returns the indexes on the page selected by params.
func (c *IndexesClient) List(ctx context.Context, params *twelvelabs.ListParams) ([]twelvelabs.Index, error) {
	page, err := c.ListPage(ctx, params)
	if err != nil {
		return nil, err
	}

	return page.Data, nil
}

// ListPage returns one page of indexes together with its page info.
func (c *IndexesClient) ListPage(ctx context.Context, params *twelvelabs.ListParams) (*twelvelabs.ListResponse[twelvelabs.Index], error) {
	return listPage[twelvelabs.Index](ctx, c.httpClient, constants.APIPathIndexes, params, "indexes")
}

// Delete deletes an index and every video in it.
func (c *IndexesClient) Delete(ctx context.Context, indexID string) error {
	if indexID == "" {
		return twelvelabs.ErrIndexIDRequired
	}

	path := constants.APIPathIndexes + "/" + escapeID(indexID)

	_, err := c.httpClient.Delete(ctx, path)
	if err != nil {
		return fmt.Errorf("deleting index: %w", err)
	}

	return nil
}
