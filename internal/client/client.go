package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"

	"github.com/fivetwenty-io/twelvelabs-go/internal/constants"
	"github.com/fivetwenty-io/twelvelabs-go/internal/http"
	"github.com/fivetwenty-io/twelvelabs-go/pkg/twelvelabs"
)

// Static errors for err113 compliance.
var (
	ErrBaseURLRequired = errors.New("base URL is required")
)

// Client implements the twelvelabs.Client interface.
type Client struct {
	httpClient *http.Client
	baseURL    string
	logger     twelvelabs.Logger

	// Resource clients
	indexes  twelvelabs.IndexesClient
	tasks    twelvelabs.TasksClient
	search   twelvelabs.SearchClient
	generate twelvelabs.GenerateClient
	videos   twelvelabs.VideosClient
}

// createHTTPClientOptions builds HTTP client options from config.
func createHTTPClientOptions(config *twelvelabs.Config) []http.Option {
	var httpOpts []http.Option

	if config.Logger != nil {
		httpOpts = append(httpOpts, http.WithLogger(&loggerAdapter{logger: config.Logger}))
	}

	if config.Debug {
		httpOpts = append(httpOpts, http.WithDebug(true))
	}

	if config.UserAgent != "" {
		httpOpts = append(httpOpts, http.WithUserAgent(config.UserAgent))
	}

	if config.HTTPTimeout > 0 {
		httpOpts = append(httpOpts, http.WithTimeout(config.HTTPTimeout))
	}

	if config.RetryMax > 0 {
		retryWaitMin := constants.DefaultRetryWaitMin
		retryWaitMax := constants.ExtendedRetryWaitMax

		if config.RetryWaitMin > 0 {
			retryWaitMin = config.RetryWaitMin
		}

		if config.RetryWaitMax > 0 {
			retryWaitMax = config.RetryWaitMax
		}

		httpOpts = append(httpOpts, http.WithRetryConfig(config.RetryMax, retryWaitMin, retryWaitMax))
	}

	if config.RateLimit > 0 {
		httpOpts = append(httpOpts, http.WithRateLimit(config.RateLimit, config.RateBurst))
	}

	return httpOpts
}

// New creates a new API client. The config is expected to be normalized by
// tlclient.New; only the base URL is checked here.
func New(config *twelvelabs.Config) (*Client, error) {
	if config == nil {
		return nil, twelvelabs.ErrConfigRequired
	}

	if config.BaseURL == "" {
		return nil, ErrBaseURLRequired
	}

	httpClient := http.NewClient(config.BaseURL, config.APIKey, createHTTPClientOptions(config)...)

	client := NewWithHTTPClient(httpClient, config.Logger)
	client.baseURL = config.BaseURL

	return client, nil
}

// NewWithHTTPClient creates a client over an existing transport.
func NewWithHTTPClient(httpClient *http.Client, logger twelvelabs.Logger) *Client {
	client := &Client{
		httpClient: httpClient,
		logger:     logger,
	}

	client.initializeResourceClients()

	return client
}

// Indexes implements twelvelabs.Client.Indexes.
func (c *Client) Indexes() twelvelabs.IndexesClient {
	return c.indexes
}

// Tasks implements twelvelabs.Client.Tasks.
func (c *Client) Tasks() twelvelabs.TasksClient {
	return c.tasks
}

// Search implements twelvelabs.Client.Search.
func (c *Client) Search() twelvelabs.SearchClient {
	return c.search
}

// Generate implements twelvelabs.Client.Generate.
func (c *Client) Generate() twelvelabs.GenerateClient {
	return c.generate
}

// Videos implements twelvelabs.Client.Videos.
func (c *Client) Videos() twelvelabs.VideosClient {
	return c.videos
}

// initializeResourceClients initializes all resource-specific clients.
func (c *Client) initializeResourceClients() {
	c.indexes = NewIndexesClient(c.httpClient)
	c.tasks = NewTasksClient(c.httpClient, c.logger)
	c.search = NewSearchClient(c.httpClient)
	c.generate = NewGenerateClient(c.httpClient)
	c.videos = NewVideosClient(c.httpClient)
}

// listPage fetches one page of a numbered list endpoint.
func listPage[T any](ctx context.Context, httpClient *http.Client, path string, params *twelvelabs.ListParams, resource string) (*twelvelabs.ListResponse[T], error) {
	resp, err := httpClient.Get(ctx, path, params.ToValues())
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", resource, err)
	}

	var page twelvelabs.ListResponse[T]

	err = json.Unmarshal(resp.Body, &page)
	if err != nil {
		return nil, fmt.Errorf("parsing %s list response: %w", resource, err)
	}

	return &page, nil
}

// escapeID keeps an identifier within a single path segment.
func escapeID(id string) string {
	return url.PathEscape(id)
}

// loggerAdapter adapts twelvelabs.Logger to http.Logger.
type loggerAdapter struct {
	logger twelvelabs.Logger
}

func (l *loggerAdapter) Debug(msg string, fields map[string]interface{}) {
	l.logger.Debug(msg, fields)
}

func (l *loggerAdapter) Info(msg string, fields map[string]interface{}) {
	l.logger.Info(msg, fields)
}

func (l *loggerAdapter) Warn(msg string, fields map[string]interface{}) {
	l.logger.Warn(msg, fields)
}

func (l *loggerAdapter) Error(msg string, fields map[string]interface{}) {
	l.logger.Error(msg, fields)
}
