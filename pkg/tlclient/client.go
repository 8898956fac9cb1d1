// Package tlclient provides the main entry point for creating Twelve Labs API clients
package tlclient

import (
	"fmt"
	"strings"

	"github.com/fivetwenty-io/twelvelabs-go/internal/client"
	"github.com/fivetwenty-io/twelvelabs-go/internal/constants"
	"github.com/fivetwenty-io/twelvelabs-go/pkg/twelvelabs"
)

// New creates a new Twelve Labs API client. The config is normalized in place:
// the base URL defaults to the public endpoint, gets an https scheme when none
// is given, and loses any trailing slash.
func New(config *twelvelabs.Config) (twelvelabs.Client, error) {
	if config == nil {
		return nil, twelvelabs.ErrConfigRequired
	}

	if strings.TrimSpace(config.APIKey) == "" {
		return nil, twelvelabs.ErrAPIKeyRequired
	}

	config.BaseURL = normalizeBaseURL(config.BaseURL)

	c, err := client.New(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create new client: %w", err)
	}

	return c, nil
}

// NewWithAPIKey creates a client for the public endpoint.
func NewWithAPIKey(apiKey string) (twelvelabs.Client, error) {
	return New(&twelvelabs.Config{
		APIKey: apiKey,
	})
}

// NewWithEndpoint creates a client for a custom endpoint.
func NewWithEndpoint(endpoint, apiKey string) (twelvelabs.Client, error) {
	return New(&twelvelabs.Config{
		APIKey:  apiKey,
		BaseURL: endpoint,
	})
}

func normalizeBaseURL(baseURL string) string {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return constants.DefaultBaseURL
	}

	baseURL = strings.TrimSuffix(baseURL, "/")
	if !strings.HasPrefix(baseURL, "http://") && !strings.HasPrefix(baseURL, "https://") {
		baseURL = "https://" + baseURL
	}

	return baseURL
}
