package twelvelabs

import (
	"context"
	"time"
)

// IndexesClient manages indexes.
type IndexesClient interface {
	Create(ctx context.Context, request *IndexCreateRequest) (*Index, error)
	Get(ctx context.Context, indexID string) (*Index, error)
	List(ctx context.Context, params *ListParams) ([]Index, error)
	ListPage(ctx context.Context, params *ListParams) (*ListResponse[Index], error)
	Delete(ctx context.Context, indexID string) error
}

// TasksClient manages video ingestion tasks.
type TasksClient interface {
	Create(ctx context.Context, request *TaskCreateRequest) (*Task, error)
	Get(ctx context.Context, taskID string) (*Task, error)
	List(ctx context.Context, params *ListParams) ([]Task, error)
	ListPage(ctx context.Context, params *ListParams) (*ListResponse[Task], error)
	Delete(ctx context.Context, taskID string) error
	// WaitForDone polls a task until it reaches a terminal status. Both ready
	// and failed are returned without error; inspect Task.Status.
	WaitForDone(ctx context.Context, taskID string, options *WaitOptions) (*Task, error)
}

// SearchClient runs searches.
type SearchClient interface {
	SearchPager
	Query(ctx context.Context, request *SearchRequest) (*SearchCursor, error)
}

// GenerateClient produces text from videos.
type GenerateClient interface {
	Text(ctx context.Context, request *GenerateRequest) (*GenerateResult, error)
	Summarize(ctx context.Context, request *SummarizeRequest) (*SummarizeResult, error)
	Gist(ctx context.Context, request *GistRequest) (*GistResult, error)
}

// VideosClient reads and removes indexed videos.
type VideosClient interface {
	Get(ctx context.Context, indexID, videoID string) (*Video, error)
	List(ctx context.Context, indexID string, params *ListParams) ([]Video, error)
	ListPage(ctx context.Context, indexID string, params *ListParams) (*ListResponse[Video], error)
	Delete(ctx context.Context, indexID, videoID string) error
}

// Client provides access to every resource client.
type Client interface {
	Indexes() IndexesClient
	Tasks() TasksClient
	Search() SearchClient
	Generate() GenerateClient
	Videos() VideosClient
}

// Logger interface for logging.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// Config represents client configuration.
//
// The API key is attached to every request as the x-api-key header. Per-call
// deadlines should be set on the context passed to each method; HTTPTimeout
// only bounds a single HTTP exchange.
type Config struct {
	// APIKey authenticates every request. Required.
	APIKey string
	// BaseURL is the API root including the version segment. Defaults to
	// https://api.twelvelabs.io/v1.2.
	BaseURL string

	// HTTPTimeout bounds one HTTP exchange. Defaults to 30s.
	HTTPTimeout time.Duration
	// RetryMax enables transport-level retries of 429, 5xx and connection
	// errors. Zero sends each request once.
	RetryMax int
	// RetryWaitMin is the minimum backoff between transport retries.
	RetryWaitMin time.Duration
	// RetryWaitMax is the maximum backoff between transport retries.
	RetryWaitMax time.Duration
	// RateLimit caps outgoing requests per second. Zero disables pacing.
	RateLimit float64
	// RateBurst is the burst allowed by RateLimit. Defaults to 1.
	RateBurst int
	// Debug enables request/response logging when a Logger is provided.
	Debug bool
	// Logger is an optional structured logger.
	Logger Logger
	// UserAgent overrides the default User-Agent header.
	UserAgent string
}
