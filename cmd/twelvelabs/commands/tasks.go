package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/twelvelabs-go/internal/constants"
	"github.com/fivetwenty-io/twelvelabs-go/internal/progress"
	"github.com/fivetwenty-io/twelvelabs-go/pkg/twelvelabs"
)

// NewTasksCommand creates the tasks command group.
func NewTasksCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "tasks",
		Aliases: []string{"task"},
		Short:   "Manage video ingestion tasks",
		Long:    "Upload videos into indexes and follow their ingestion",
	}

	cmd.AddCommand(newTasksCreateCommand())
	cmd.AddCommand(newTasksGetCommand())
	cmd.AddCommand(newTasksListCommand())
	cmd.AddCommand(newTasksDeleteCommand())
	cmd.AddCommand(newTasksWaitCommand())

	return cmd
}

// waitFlags are shared by "tasks create --wait" and "tasks wait".
type waitFlags struct {
	interval    time.Duration
	maxAttempts int
	maxWait     time.Duration
	concurrency int
	natsURL     string
	natsSubject string
}

func (f *waitFlags) register(cmd *cobra.Command) {
	cmd.Flags().DurationVar(&f.interval, "interval", constants.DefaultPollInterval, "time between status checks")
	cmd.Flags().IntVar(&f.maxAttempts, "max-attempts", 0, "maximum status checks per task (default 360)")
	cmd.Flags().DurationVar(&f.maxWait, "max-wait", 0, "maximum wait per task, converted to attempts")
	cmd.Flags().IntVar(&f.concurrency, "concurrency", twelvelabs.DefaultBatchConcurrency, "tasks polled at once")
	cmd.Flags().StringVar(&f.natsURL, "nats-url", "", "publish progress events to this NATS server")
	cmd.Flags().StringVar(&f.natsSubject, "nats-subject", progress.DefaultSubjectPrefix, "subject prefix for progress events")
}

// waitForTasks waits on every task, printing progress to stderr, and renders
// the outcomes. It fails unless every task became ready.
func waitForTasks(cmd *cobra.Command, client twelvelabs.Client, taskIDs []string, flags *waitFlags) error {
	var (
		mu       sync.Mutex
		stderr   = cmd.ErrOrStderr()
		callback = func(task *twelvelabs.Task) error {
			mu.Lock()
			defer mu.Unlock()

			line := fmt.Sprintf("task %s: %s", task.ID, formatStatus(task.Status))
			if task.Process != nil && !task.Done() {
				line += fmt.Sprintf(" (%.0f%%)", task.Process.Percentage)
			}

			_, _ = fmt.Fprintln(stderr, line)

			return nil
		}
	)

	if flags.natsURL != "" {
		conn, err := progress.Connect(flags.natsURL)
		if err != nil {
			return err
		}

		defer conn.Close()

		reporter, err := progress.NewReporter(conn, flags.natsSubject, newStderrLogger(stderr))
		if err != nil {
			return err
		}

		callback = reporter.Callback(callback)

		defer func() { _ = conn.Flush() }()
	}

	options := &twelvelabs.WaitOptions{
		Interval:    flags.interval,
		MaxAttempts: flags.maxAttempts,
		MaxWait:     flags.maxWait,
		Callback:    callback,
	}

	waiter := twelvelabs.NewBatchWaiter(client.Tasks(), flags.concurrency)
	results := waiter.Wait(cmd.Context(), taskIDs, options, nil)

	renderer := &OutputRenderer[[]twelvelabs.WaitResult]{
		RenderTable: func(w io.Writer, results []twelvelabs.WaitResult) error {
			rows := make([][]string, 0, len(results))

			for _, result := range results {
				status, videoID, errText := NotAvailable, NotAvailable, ""
				if result.Task != nil {
					status = formatStatus(result.Task.Status)
					videoID = valueOrNA(result.Task.VideoID)
				}

				if result.Err != nil {
					errText = result.Err.Error()
				}

				rows = append(rows, []string{
					result.TaskID,
					status,
					videoID,
					result.Duration.Round(time.Second).String(),
					errText,
				})
			}

			return renderTable(w, []string{"Task", "Status", "Video", "Waited", "Error"}, rows)
		},
	}

	err := renderer.Render(cmd.OutOrStdout(), results)
	if err != nil {
		return err
	}

	for i := range results {
		if !results[i].Ready() {
			return constants.ErrSomeTasksFailed
		}
	}

	return nil
}

func newTasksCreateCommand() *cobra.Command {
	var (
		indexID  string
		file     string
		videoURL string
		lang     string
		stream   bool
		wait     bool
		flags    waitFlags
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Upload a video",
		Long:  "Create an ingestion task from a local file or a public URL",
		RunE: func(cmd *cobra.Command, args []string) error {
			if (file == "") == (videoURL == "") {
				return constants.ErrVideoSourceFlags
			}

			request := &twelvelabs.TaskCreateRequest{
				IndexID:  indexID,
				VideoURL: videoURL,
				Language: lang,
			}

			if cmd.Flags().Changed("stream") {
				request.EnableVideoStream = &stream
			}

			timeout := time.Duration(0)

			if file != "" {
				data, err := os.ReadFile(filepath.Clean(file))
				if err != nil {
					return fmt.Errorf("failed to read video file: %w", err)
				}

				request.VideoFile = data
				request.VideoFileName = filepath.Base(file)
				timeout = constants.UploadHTTPTimeout
			}

			client, err := createClientWithTimeout(cmd, timeout)
			if err != nil {
				return err
			}

			task, err := client.Tasks().Create(cmd.Context(), request)
			if err != nil {
				return fmt.Errorf("failed to create task: %w", err)
			}

			if wait {
				_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Created task %s, waiting for indexing\n", task.ID)

				return waitForTasks(cmd, client, []string{task.ID}, &flags)
			}

			return renderTask(cmd.OutOrStdout(), task)
		},
	}

	cmd.Flags().StringVarP(&indexID, "index", "i", "", "index to upload into")
	cmd.Flags().StringVarP(&file, "file", "f", "", "local video file")
	cmd.Flags().StringVarP(&videoURL, "url", "u", "", "public video URL")
	cmd.Flags().StringVar(&lang, "language", "", "spoken language, e.g. en")
	cmd.Flags().BoolVar(&stream, "stream", false, "enable HLS streaming of the indexed video")
	cmd.Flags().BoolVarP(&wait, "wait", "w", false, "wait until the task is ready or failed")
	flags.register(cmd)

	_ = cmd.MarkFlagRequired("index")

	return cmd
}

func renderTask(w io.Writer, task *twelvelabs.Task) error {
	renderer := &OutputRenderer[*twelvelabs.Task]{
		RenderTable: func(w io.Writer, task *twelvelabs.Task) error {
			properties := [][]string{
				{"ID", task.ID},
				{"Index", valueOrNA(task.IndexID)},
				{"Status", formatStatus(task.Status)},
				{"Video", valueOrNA(task.VideoID)},
				{"Created", formatTime(&task.CreatedAt)},
				{"Updated", formatTime(task.UpdatedAt)},
			}

			if task.Process != nil {
				properties = append(properties,
					[]string{"Progress", fmt.Sprintf("%.0f%%", task.Process.Percentage)},
					[]string{"Remaining", formatSeconds(task.Process.RemainSeconds)},
				)
			}

			return renderProperties(w, properties)
		},
	}

	return renderer.Render(w, task)
}

func newTasksGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get TASK_ID",
		Short: "Get task details",
		Long:  "Display the current state of an ingestion task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient(cmd)
			if err != nil {
				return err
			}

			task, err := client.Tasks().Get(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("failed to get task: %w", err)
			}

			return renderTask(cmd.OutOrStdout(), task)
		},
	}
}

func newTasksListCommand() *cobra.Command {
	var (
		indexID  string
		status   []string
		pageSize int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks",
		Long:  "List ingestion tasks, optionally for one index or status",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient(cmd)
			if err != nil {
				return err
			}

			params := twelvelabs.NewListParams().WithPageLimit(pageSize)
			if indexID != "" {
				params.WithFilter("index_id", indexID)
			}

			if len(status) > 0 {
				params.WithFilter("status", strings.Join(status, ","))
			}

			tasks, err := collectPages(cmd.Context(), params, client.Tasks().ListPage)
			if err != nil {
				return fmt.Errorf("failed to list tasks: %w", err)
			}

			renderer := &OutputRenderer[[]twelvelabs.Task]{
				RenderTable: func(w io.Writer, tasks []twelvelabs.Task) error {
					if len(tasks) == 0 {
						_, _ = fmt.Fprintln(w, "No tasks found")

						return nil
					}

					rows := make([][]string, 0, len(tasks))
					for i := range tasks {
						rows = append(rows, []string{
							tasks[i].ID,
							tasks[i].IndexID,
							formatStatus(tasks[i].Status),
							valueOrNA(tasks[i].VideoID),
							formatTime(&tasks[i].CreatedAt),
						})
					}

					return renderTable(w, []string{"ID", "Index", "Status", "Video", "Created"}, rows)
				},
			}

			return renderer.Render(cmd.OutOrStdout(), tasks)
		},
	}

	cmd.Flags().StringVarP(&indexID, "index", "i", "", "filter by index")
	cmd.Flags().StringSliceVar(&status, "status", nil, "filter by status")
	cmd.Flags().IntVar(&pageSize, "page-size", constants.MaxPageSize, "results fetched per request")

	return cmd
}

func newTasksDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete TASK_ID",
		Short: "Delete a task",
		Long:  "Delete a task that has not started indexing",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient(cmd)
			if err != nil {
				return err
			}

			err = client.Tasks().Delete(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("failed to delete task: %w", err)
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Deleted task %s\n", args[0])

			return nil
		},
	}
}

func newTasksWaitCommand() *cobra.Command {
	var flags waitFlags

	cmd := &cobra.Command{
		Use:   "wait TASK_ID...",
		Short: "Wait for tasks to finish",
		Long:  "Poll one or more tasks until each is ready or failed",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient(cmd)
			if err != nil {
				return err
			}

			err = waitForTasks(cmd, client, args, &flags)
			if errors.Is(err, context.Canceled) {
				return fmt.Errorf("wait interrupted: %w", err)
			}

			return err
		},
	}

	flags.register(cmd)

	return cmd
}
