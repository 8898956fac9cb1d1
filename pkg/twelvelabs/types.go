package twelvelabs

import (
	"time"
)

// EngineOption is a capability enabled on an index engine.
type EngineOption string

// Known engine options. Values the platform adds later still decode; Known
// reports false for them.
const (
	EngineOptionVisual       EngineOption = "visual"
	EngineOptionConversation EngineOption = "conversation"
	EngineOptionTextInVideo  EngineOption = "text_in_video"
	EngineOptionLogo         EngineOption = "logo"
)

// Known reports whether the option is part of the vocabulary this client was built against.
func (o EngineOption) Known() bool {
	switch o {
	case EngineOptionVisual, EngineOptionConversation, EngineOptionTextInVideo, EngineOptionLogo:
		return true
	default:
		return false
	}
}

// Engine is a named model capability enabled on an index.
type Engine struct {
	Name    string         `json:"engine_name"      yaml:"engine_name"`
	Options []EngineOption `json:"engine_options"   yaml:"engine_options"`
	Addons  []string       `json:"addons,omitempty" yaml:"addons,omitempty"`
}

// Index is a container for videos searchable with a fixed set of engines.
type Index struct {
	ID            string     `json:"_id"                      yaml:"id"`
	Name          string     `json:"index_name"               yaml:"index_name"`
	Engines       []Engine   `json:"engines"                  yaml:"engines"`
	VideoCount    int        `json:"video_count"              yaml:"video_count"`
	TotalDuration float64    `json:"total_duration"           yaml:"total_duration"`
	CreatedAt     time.Time  `json:"created_at"               yaml:"created_at"`
	UpdatedAt     *time.Time `json:"updated_at,omitempty"     yaml:"updated_at,omitempty"`
	ExpiresAt     *time.Time `json:"expires_at,omitempty"     yaml:"expires_at,omitempty"`
}

// IndexCreateRequest creates an index.
type IndexCreateRequest struct {
	Name    string   `json:"index_name"       yaml:"index_name"`
	Engines []Engine `json:"engines"          yaml:"engines"`
	Addons  []string `json:"addons,omitempty" yaml:"addons,omitempty"`
}

// IndexCreateResponse is returned by the index create endpoint.
type IndexCreateResponse struct {
	ID string `json:"_id" yaml:"id"`
}

// TaskStatus is the platform-reported state of an ingestion task.
type TaskStatus string

// Known task statuses.
const (
	TaskStatusValidating TaskStatus = "validating"
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusQueued     TaskStatus = "queued"
	TaskStatusIndexing   TaskStatus = "indexing"
	TaskStatusReady      TaskStatus = "ready"
	TaskStatusFailed     TaskStatus = "failed"
)

// Known reports whether the status is part of the vocabulary this client was built against.
func (s TaskStatus) Known() bool {
	switch s {
	case TaskStatusValidating, TaskStatusPending, TaskStatusQueued,
		TaskStatusIndexing, TaskStatusReady, TaskStatusFailed:
		return true
	default:
		return false
	}
}

// Terminal reports whether no further transition will happen.
func (s TaskStatus) Terminal() bool {
	return s == TaskStatusReady || s == TaskStatusFailed
}

// TaskProcess reports upload and indexing progress.
type TaskProcess struct {
	Percentage    float64 `json:"percentage"     yaml:"percentage"`
	RemainSeconds float64 `json:"remain_seconds" yaml:"remain_seconds"`
}

// Task is an asynchronous video ingestion job.
type Task struct {
	ID            string       `json:"_id"                      yaml:"id"`
	IndexID       string       `json:"index_id"                 yaml:"index_id"`
	VideoID       string       `json:"video_id,omitempty"       yaml:"video_id,omitempty"`
	Status        TaskStatus   `json:"status"                   yaml:"status"`
	EstimatedTime *time.Time   `json:"estimated_time,omitempty" yaml:"estimated_time,omitempty"`
	Process       *TaskProcess `json:"process,omitempty"        yaml:"process,omitempty"`
	CreatedAt     time.Time    `json:"created_at"               yaml:"created_at"`
	UpdatedAt     *time.Time   `json:"updated_at,omitempty"     yaml:"updated_at,omitempty"`
}

// Done reports whether the task reached a terminal status.
func (t *Task) Done() bool {
	return t.Status.Terminal()
}

// Normalize clears VideoID unless the task is ready, so that a video
// identifier is only ever observed for a successfully indexed video.
func (t *Task) Normalize() {
	if t.Status != TaskStatusReady {
		t.VideoID = ""
	}
}

// TaskCreateRequest uploads a video into an index. Exactly one of VideoFile or
// VideoURL must be set.
type TaskCreateRequest struct {
	IndexID           string
	VideoFile         []byte
	VideoFileName     string
	VideoURL          string
	Language          string
	EnableVideoStream *bool
}

// TaskCreateResponse is returned by the task create endpoint.
type TaskCreateResponse struct {
	ID      string `json:"_id"                yaml:"id"`
	VideoID string `json:"video_id,omitempty" yaml:"video_id,omitempty"`
}

// WaitOptions controls Tasks().WaitForDone.
//
// The poller sleeps for a fixed Interval between fetches, including after a
// rate-limited or failed fetch. It applies no backoff.
type WaitOptions struct {
	// Interval between fetches. Defaults to 5s.
	Interval time.Duration
	// MaxAttempts bounds the number of status fetches, retried ones included.
	MaxAttempts int
	// MaxWait bounds the whole wait. When MaxAttempts is zero it also sets the
	// attempt count to MaxWait/Interval.
	MaxWait time.Duration
	// Callback receives every freshly fetched state. Returning an error stops the wait.
	Callback func(task *Task) error
}

// Video is an indexed video.
type Video struct {
	ID        string         `json:"_id"                  yaml:"id"`
	Metadata  *VideoMetadata `json:"metadata,omitempty"   yaml:"metadata,omitempty"`
	CreatedAt time.Time      `json:"created_at"           yaml:"created_at"`
	UpdatedAt *time.Time     `json:"updated_at,omitempty" yaml:"updated_at,omitempty"`
	IndexedAt *time.Time     `json:"indexed_at,omitempty" yaml:"indexed_at,omitempty"`
	HLS       *VideoHLS      `json:"hls,omitempty"        yaml:"hls,omitempty"`
}

// VideoMetadata describes the source file.
type VideoMetadata struct {
	Filename string  `json:"filename" yaml:"filename"`
	Duration float64 `json:"duration" yaml:"duration"`
	FPS      float64 `json:"fps"      yaml:"fps"`
	Width    int     `json:"width"    yaml:"width"`
	Height   int     `json:"height"   yaml:"height"`
	Size     int64   `json:"size"     yaml:"size"`
}

// VideoHLS is the streaming rendition, when enabled.
type VideoHLS struct {
	VideoURL      string   `json:"video_url"      yaml:"video_url"`
	ThumbnailURLs []string `json:"thumbnail_urls" yaml:"thumbnail_urls"`
	Status        string   `json:"status"         yaml:"status"`
}

// PageInfo describes a numbered list page.
type PageInfo struct {
	Page          int `json:"page"            yaml:"page"`
	LimitPerPage  int `json:"limit_per_page"  yaml:"limit_per_page"`
	TotalPage     int `json:"total_page"      yaml:"total_page"`
	TotalResults  int `json:"total_results"   yaml:"total_results"`
	TotalDuration int `json:"total_duration"  yaml:"total_duration"`
}

// ListResponse is a numbered list page.
type ListResponse[T any] struct {
	Data     []T      `json:"data"      yaml:"data"`
	PageInfo PageInfo `json:"page_info" yaml:"page_info"`
}

// HasMore reports whether a later page exists.
func (r *ListResponse[T]) HasMore() bool {
	return len(r.Data) > 0 && r.PageInfo.Page < r.PageInfo.TotalPage
}
