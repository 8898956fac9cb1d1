package client

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/fivetwenty-io/twelvelabs-go/internal/constants"
	"github.com/fivetwenty-io/twelvelabs-go/internal/http"
	"github.com/fivetwenty-io/twelvelabs-go/pkg/twelvelabs"
)

// SearchClient implements twelvelabs.SearchClient.
type SearchClient struct {
	httpClient *http.Client
}

// NewSearchClient creates a new search client.
func NewSearchClient(httpClient *http.Client) *SearchClient {
	return &SearchClient{
		httpClient: httpClient,
	}
}

// Query runs a search and returns a cursor positioned on the first page.
// Search options are not checked against the index's engines; the platform
// rejects unsupported ones.
func (c *SearchClient) Query(ctx context.Context, request *twelvelabs.SearchRequest) (*twelvelabs.SearchCursor, error) {
	if request == nil {
		return nil, twelvelabs.ErrRequestRequired
	}

	if request.IndexID == "" {
		return nil, twelvelabs.ErrIndexIDRequired
	}

	if request.Query == "" && len(request.Filter) == 0 {
		return nil, twelvelabs.ErrQueryRequired
	}

	if len(request.Options) == 0 {
		return nil, twelvelabs.ErrOptionsRequired
	}

	resp, err := c.httpClient.Post(ctx, constants.APIPathSearch, request)
	if err != nil {
		return nil, fmt.Errorf("searching index: %w", err)
	}

	page, err := parseSearchPage(resp.Body)
	if err != nil {
		return nil, err
	}

	return twelvelabs.NewSearchCursor(c, page), nil
}

// ByPageToken fetches the result page a continuation token points to.
func (c *SearchClient) ByPageToken(ctx context.Context, pageToken string) (*twelvelabs.SearchResultPage, error) {
	if pageToken == "" {
		return nil, twelvelabs.ErrPageTokenRequired
	}

	resp, err := c.httpClient.Get(ctx, constants.APIPathSearch+"/"+escapeID(pageToken), nil)
	if err != nil {
		return nil, fmt.Errorf("getting search page: %w", err)
	}

	return parseSearchPage(resp.Body)
}

func parseSearchPage(body []byte) (*twelvelabs.SearchResultPage, error) {
	var page twelvelabs.SearchResultPage

	err := json.Unmarshal(body, &page)
	if err != nil {
		return nil, fmt.Errorf("parsing search response: %w", err)
	}

	return &page, nil
}
