package twelvelabs

import (
	"context"
	"sync"
	"time"
)

// DefaultBatchConcurrency bounds the number of tasks polled at once.
const DefaultBatchConcurrency = 5

// WaitResult is the outcome of waiting on one task of a batch.
type WaitResult struct {
	TaskID   string
	Task     *Task
	Err      error
	Duration time.Duration
}

// Ready reports whether the task finished indexing successfully.
func (r *WaitResult) Ready() bool {
	return r.Err == nil && r.Task != nil && r.Task.Status == TaskStatusReady
}

// BatchWaiter waits on several ingestion tasks concurrently.
type BatchWaiter struct {
	tasks       TasksClient
	concurrency int
}

// NewBatchWaiter creates a batch waiter.
func NewBatchWaiter(tasks TasksClient, concurrency int) *BatchWaiter {
	if concurrency <= 0 {
		concurrency = DefaultBatchConcurrency
	}

	return &BatchWaiter{
		tasks:       tasks,
		concurrency: concurrency,
	}
}

// Wait runs WaitForDone for every task ID and returns the results in input
// order. Each wait gets its own attempt budget from options. onResult, if set,
// is called as each wait finishes and may be called from several goroutines.
func (b *BatchWaiter) Wait(ctx context.Context, taskIDs []string, options *WaitOptions, onResult func(*WaitResult)) []WaitResult {
	results := make([]WaitResult, len(taskIDs))

	var waitGroup sync.WaitGroup

	semaphore := make(chan struct{}, b.concurrency)

	for index, taskID := range taskIDs {
		waitGroup.Add(1)

		go func(index int, taskID string) {
			defer waitGroup.Done()

			semaphore <- struct{}{}

			defer func() { <-semaphore }()

			start := time.Now()
			task, err := b.tasks.WaitForDone(ctx, taskID, options)

			results[index] = WaitResult{
				TaskID:   taskID,
				Task:     task,
				Err:      err,
				Duration: time.Since(start),
			}

			if onResult != nil {
				onResult(&results[index])
			}
		}(index, taskID)
	}

	waitGroup.Wait()

	return results
}
