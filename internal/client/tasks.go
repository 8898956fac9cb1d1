package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"strconv"
	"time"

	"github.com/fivetwenty-io/twelvelabs-go/internal/constants"
	"github.com/fivetwenty-io/twelvelabs-go/internal/http"
	"github.com/fivetwenty-io/twelvelabs-go/pkg/twelvelabs"
)

// TasksClient implements twelvelabs.TasksClient.
type TasksClient struct {
	httpClient   *http.Client
	logger       twelvelabs.Logger
	pollInterval time.Duration
}

// NewTasksClient creates a new tasks client.
func NewTasksClient(httpClient *http.Client, logger twelvelabs.Logger) *TasksClient {
	return &TasksClient{
		httpClient:   httpClient,
		logger:       logger,
		pollInterval: constants.DefaultPollInterval,
	}
}

// Create uploads a video file or registers a video URL for indexing. The
// returned task is pending; use Get or WaitForDone to observe progress.
func (c *TasksClient) Create(ctx context.Context, request *twelvelabs.TaskCreateRequest) (*twelvelabs.Task, error) {
	if request == nil {
		return nil, twelvelabs.ErrRequestRequired
	}

	if request.IndexID == "" {
		return nil, twelvelabs.ErrIndexIDRequired
	}

	if (len(request.VideoFile) == 0) == (request.VideoURL == "") {
		return nil, twelvelabs.ErrVideoSourceRequired
	}

	body, contentType, err := encodeTaskForm(request)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.PostRaw(ctx, constants.APIPathTasks, body, contentType)
	if err != nil {
		return nil, fmt.Errorf("creating task: %w", err)
	}

	var created twelvelabs.TaskCreateResponse

	err = json.Unmarshal(resp.Body, &created)
	if err != nil {
		return nil, fmt.Errorf("parsing task create response: %w", err)
	}

	return &twelvelabs.Task{
		ID:      created.ID,
		IndexID: request.IndexID,
		Status:  twelvelabs.TaskStatusPending,
	}, nil
}

// Get retrieves the current state of a task.
func (c *TasksClient) Get(ctx context.Context, taskID string) (*twelvelabs.Task, error) {
	if taskID == "" {
		return nil, twelvelabs.ErrTaskIDRequired
	}

	path := constants.APIPathTasks + "/" + escapeID(taskID)

	resp, err := c.httpClient.Get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("getting task: %w", err)
	}

	var task twelvelabs.Task

	err = json.Unmarshal(resp.Body, &task)
	if err != nil {
		return nil, fmt.Errorf("parsing task: %w", err)
	}

	task.Normalize()

	return &task, nil
}

// List returns the tasks on the page selected by params.
func (c *TasksClient) List(ctx context.Context, params *twelvelabs.ListParams) ([]twelvelabs.Task, error) {
	page, err := c.ListPage(ctx, params)
	if err != nil {
		return nil, err
	}

	return page.Data, nil
}

// ListPage returns one page of tasks together with its page info.
func (c *TasksClient) ListPage(ctx context.Context, params *twelvelabs.ListParams) (*twelvelabs.ListResponse[twelvelabs.Task], error) {
	page, err := listPage[twelvelabs.Task](ctx, c.httpClient, constants.APIPathTasks, params, "tasks")
	if err != nil {
		return nil, err
	}

	for i := range page.Data {
		page.Data[i].Normalize()
	}

	return page, nil
}

// Delete deletes a task that has not started indexing.
func (c *TasksClient) Delete(ctx context.Context, taskID string) error {
	if taskID == "" {
		return twelvelabs.ErrTaskIDRequired
	}

	path := constants.APIPathTasks + "/" + escapeID(taskID)

	_, err := c.httpClient.Delete(ctx, path)
	if err != nil {
		return fmt.Errorf("deleting task: %w", err)
	}

	return nil
}

// WaitForDone implements twelvelabs.TasksClient.WaitForDone.
// It fetches the task, reports it to the callback, and returns as soon as the
// status is terminal. Between fetches it sleeps for the fixed interval.
// Rate limits, 5xx and transport failures use up one attempt and are retried;
// any other error is returned at once.
func (c *TasksClient) WaitForDone(ctx context.Context, taskID string, options *twelvelabs.WaitOptions) (*twelvelabs.Task, error) {
	if taskID == "" {
		return nil, twelvelabs.ErrTaskIDRequired
	}

	interval, attempts := c.waitBudget(options)

	if options != nil && options.MaxWait > 0 {
		var cancel context.CancelFunc

		ctx, cancel = context.WithTimeout(ctx, options.MaxWait)
		defer cancel()
	}

	var (
		lastTask *twelvelabs.Task
		lastErr  error
	)

	for attempt := 1; attempt <= attempts; attempt++ {
		err := ctx.Err()
		if err != nil {
			return lastTask, waitAborted(taskID, attempt-1, lastTask, err)
		}

		task, err := c.Get(ctx, taskID)

		switch {
		case err != nil && ctx.Err() != nil:
			return lastTask, waitAborted(taskID, attempt, lastTask, ctx.Err())
		case errors.Is(err, context.DeadlineExceeded) && !twelvelabs.IsTransient(err):
			return lastTask, waitAborted(taskID, attempt, lastTask, err)
		case err != nil && !twelvelabs.IsTransient(err):
			return lastTask, fmt.Errorf("polling task %s: %w", taskID, err)
		case err != nil:
			lastErr = err

			c.log().Warn("task poll failed, retrying", map[string]interface{}{
				"task_id": taskID,
				"attempt": attempt,
				"error":   err.Error(),
			})
		default:
			lastTask, lastErr = task, nil

			c.log().Debug("task polled", map[string]interface{}{
				"task_id": taskID,
				"attempt": attempt,
				"status":  string(task.Status),
			})

			if options != nil && options.Callback != nil {
				cbErr := options.Callback(task)
				if cbErr != nil {
					return task, fmt.Errorf("task progress callback: %w", cbErr)
				}
			}

			if task.Done() {
				return task, nil
			}
		}

		if attempt == attempts {
			break
		}

		err = sleep(ctx, interval)
		if err != nil {
			return lastTask, waitAborted(taskID, attempt, lastTask, err)
		}
	}

	return lastTask, &twelvelabs.TimeoutError{
		TaskID:   taskID,
		Attempts: attempts,
		Last:     lastErr,
		LastTask: lastTask,
	}
}

// waitBudget resolves the interval and the number of fetches allowed.
func (c *TasksClient) waitBudget(options *twelvelabs.WaitOptions) (time.Duration, int) {
	interval := c.pollInterval
	attempts := constants.DefaultPollAttempts

	if options == nil {
		return interval, attempts
	}

	if options.Interval > 0 {
		interval = options.Interval
	}

	switch {
	case options.MaxAttempts > 0:
		attempts = options.MaxAttempts
	case options.MaxWait > 0:
		attempts = max(1, int(options.MaxWait/interval))
	}

	return interval, attempts
}

// waitAborted reports a wait ended by its context. A passed deadline counts as
// a timeout; cancellation is returned as is.
func waitAborted(taskID string, attempts int, lastTask *twelvelabs.Task, err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return &twelvelabs.TimeoutError{
			TaskID:   taskID,
			Attempts: attempts,
			Last:     err,
			LastTask: lastTask,
		}
	}

	return fmt.Errorf("waiting for task %s: %w", taskID, err)
}

// sleep suspends for d or until ctx is done.
func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (c *TasksClient) log() twelvelabs.Logger {
	if c.logger == nil {
		return noopLogger{}
	}

	return c.logger
}

// encodeTaskForm builds the multipart body of a task create request.
func encodeTaskForm(request *twelvelabs.TaskCreateRequest) ([]byte, string, error) {
	var buf bytes.Buffer

	writer := multipart.NewWriter(&buf)

	fields := map[string]string{
		"index_id": request.IndexID,
	}

	if request.VideoURL != "" {
		fields["video_url"] = request.VideoURL
	}

	if request.Language != "" {
		fields["language"] = request.Language
	}

	if request.EnableVideoStream != nil {
		fields["enable_video_stream"] = strconv.FormatBool(*request.EnableVideoStream)
	}

	for name, value := range fields {
		err := writer.WriteField(name, value)
		if err != nil {
			return nil, "", fmt.Errorf("writing form field %s: %w", name, err)
		}
	}

	if len(request.VideoFile) > 0 {
		filename := request.VideoFileName
		if filename == "" {
			filename = "video.mp4"
		}

		part, err := writer.CreateFormFile("video_file", filename)
		if err != nil {
			return nil, "", fmt.Errorf("creating form file: %w", err)
		}

		_, err = part.Write(request.VideoFile)
		if err != nil {
			return nil, "", fmt.Errorf("writing file to form: %w", err)
		}
	}

	err := writer.Close()
	if err != nil {
		return nil, "", fmt.Errorf("closing multipart writer: %w", err)
	}

	return buf.Bytes(), writer.FormDataContentType(), nil
}

type noopLogger struct{}

func (noopLogger) Debug(string, map[string]interface{}) {}
func (noopLogger) Info(string, map[string]interface{})  {}
func (noopLogger) Warn(string, map[string]interface{})  {}
func (noopLogger) Error(string, map[string]interface{}) {}
