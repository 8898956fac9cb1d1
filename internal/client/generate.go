package client

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/fivetwenty-io/twelvelabs-go/internal/constants"
	"github.com/fivetwenty-io/twelvelabs-go/internal/http"
	"github.com/fivetwenty-io/twelvelabs-go/pkg/twelvelabs"
)

// GenerateClient implements twelvelabs.GenerateClient.
type GenerateClient struct {
	httpClient *http.Client
}

// NewGenerateClient creates a new generate client.
func NewGenerateClient(httpClient *http.Client) *GenerateClient {
	return &GenerateClient{
		httpClient: httpClient,
	}
}

// Text generates open-ended text from a prompt. Streaming is not supported;
// the request is always sent with stream disabled.
func (c *GenerateClient) Text(ctx context.Context, request *twelvelabs.GenerateRequest) (*twelvelabs.GenerateResult, error) {
	if request == nil {
		return nil, twelvelabs.ErrRequestRequired
	}

	if request.VideoID == "" {
		return nil, twelvelabs.ErrVideoIDRequired
	}

	if request.Prompt == "" {
		return nil, twelvelabs.ErrPromptRequired
	}

	body := *request
	body.Stream = false

	var result twelvelabs.GenerateResult

	err := c.post(ctx, constants.APIPathGenerate, &body, &result, "generating text")
	if err != nil {
		return nil, err
	}

	return &result, nil
}

// Summarize produces a summary, chapters or highlights.
func (c *GenerateClient) Summarize(ctx context.Context, request *twelvelabs.SummarizeRequest) (*twelvelabs.SummarizeResult, error) {
	if request == nil {
		return nil, twelvelabs.ErrRequestRequired
	}

	if request.VideoID == "" {
		return nil, twelvelabs.ErrVideoIDRequired
	}

	if request.Type == "" {
		return nil, twelvelabs.ErrSummaryTypeRequired
	}

	var result twelvelabs.SummarizeResult

	err := c.post(ctx, constants.APIPathSummarize, request, &result, "summarizing video")
	if err != nil {
		return nil, err
	}

	return &result, nil
}

// Gist produces a title, topics and hashtags.
func (c *GenerateClient) Gist(ctx context.Context, request *twelvelabs.GistRequest) (*twelvelabs.GistResult, error) {
	if request == nil {
		return nil, twelvelabs.ErrRequestRequired
	}

	if request.VideoID == "" {
		return nil, twelvelabs.ErrVideoIDRequired
	}

	if len(request.Types) == 0 {
		return nil, twelvelabs.ErrGistTypesRequired
	}

	var result twelvelabs.GistResult

	err := c.post(ctx, constants.APIPathGist, request, &result, "generating gist")
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (c *GenerateClient) post(ctx context.Context, path string, request, result interface{}, action string) error {
	resp, err := c.httpClient.Post(ctx, path, request)
	if err != nil {
		return fmt.Errorf("%s: %w", action, err)
	}

	err = json.Unmarshal(resp.Body, result)
	if err != nil {
		return fmt.Errorf("parsing %s response: %w", path, err)
	}

	return nil
}
