// Package progress publishes task poll observations to NATS so that other
// processes can follow an ingestion without polling the API themselves.
package progress

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/fivetwenty-io/twelvelabs-go/pkg/twelvelabs"
)

// DefaultSubjectPrefix is prepended to the task ID to form the subject.
const DefaultSubjectPrefix = "twelvelabs.tasks"

// Static errors for err113 compliance.
var (
	ErrPublisherRequired = errors.New("publisher is required")
)

// Publisher is the subset of *nats.Conn used by Reporter.
type Publisher interface {
	Publish(subject string, data []byte) error
}

// Event is the message published for every fetched task state.
type Event struct {
	TaskID     string                `json:"task_id"`
	IndexID    string                `json:"index_id,omitempty"`
	VideoID    string                `json:"video_id,omitempty"`
	Status     twelvelabs.TaskStatus `json:"status"`
	Done       bool                  `json:"done"`
	Percentage float64               `json:"percentage,omitempty"`
	ObservedAt time.Time             `json:"observed_at"`
}

// Reporter turns task states into NATS messages.
type Reporter struct {
	publisher Publisher
	prefix    string
	logger    twelvelabs.Logger
	now       func() time.Time
}

// NewReporter creates a reporter publishing under prefix. An empty prefix uses
// DefaultSubjectPrefix.
func NewReporter(publisher Publisher, prefix string, logger twelvelabs.Logger) (*Reporter, error) {
	if publisher == nil {
		return nil, ErrPublisherRequired
	}

	prefix = strings.TrimSuffix(strings.TrimSpace(prefix), ".")
	if prefix == "" {
		prefix = DefaultSubjectPrefix
	}

	return &Reporter{
		publisher: publisher,
		prefix:    prefix,
		logger:    logger,
		now:       time.Now,
	}, nil
}

// Connect dials a NATS server for a Reporter.
func Connect(url string) (*nats.Conn, error) {
	conn, err := nats.Connect(url,
		nats.Name("twelvelabs-go"),
		nats.Timeout(5*time.Second),
		nats.MaxReconnects(3),
	)
	if err != nil {
		return nil, fmt.Errorf("connecting to NATS at %s: %w", url, err)
	}

	return conn, nil
}

// Subject returns the subject events for taskID are published on.
func (r *Reporter) Subject(taskID string) string {
	return r.prefix + "." + taskID
}

// Publish sends one event for task.
func (r *Reporter) Publish(task *twelvelabs.Task) error {
	event := Event{
		TaskID:     task.ID,
		IndexID:    task.IndexID,
		VideoID:    task.VideoID,
		Status:     task.Status,
		Done:       task.Done(),
		ObservedAt: r.now().UTC(),
	}

	if task.Process != nil {
		event.Percentage = task.Process.Percentage
	}

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encoding progress event: %w", err)
	}

	err = r.publisher.Publish(r.Subject(task.ID), data)
	if err != nil {
		return fmt.Errorf("publishing progress for task %s: %w", task.ID, err)
	}

	return nil
}

// Callback returns a WaitOptions callback that publishes every state and then
// calls next. A failed publish is logged and does not stop the wait; an error
// from next does.
func (r *Reporter) Callback(next func(*twelvelabs.Task) error) func(*twelvelabs.Task) error {
	return func(task *twelvelabs.Task) error {
		err := r.Publish(task)
		if err != nil && r.logger != nil {
			r.logger.Warn("progress publish failed", map[string]interface{}{
				"task_id": task.ID,
				"error":   err.Error(),
			})
		}

		if next != nil {
			return next(task)
		}

		return nil
	}
}
