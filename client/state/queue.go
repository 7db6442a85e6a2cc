package state

import (
	"context"
	"sync"
)

// saveJob is one remote write. Returning false reports failure.
type saveJob func(ctx context.Context) bool

// writeQueue flushes remote writes for one category in strict FIFO
// order. Failures hit the callback and are otherwise dropped; there is
// no retry and no rollback of the local write that spawned the job.
type writeQueue struct {
	category  string
	jobs      chan saveJob
	done      chan struct{}
	closeOnce sync.Once
	onFailure func(category string)
}

func newWriteQueue(category string, onFailure func(category string)) *writeQueue {
	q := &writeQueue{
		category:  category,
		jobs:      make(chan saveJob, 64),
		done:      make(chan struct{}),
		onFailure: onFailure,
	}
	go q.run()
	return q
}

func (q *writeQueue) run() {
	defer close(q.done)
	for job := range q.jobs {
		if !job(context.Background()) && q.onFailure != nil {
			q.onFailure(q.category)
		}
	}
}

// enqueue adds a job behind every previously queued write for this
// category. Blocks only when the buffer is full.
func (q *writeQueue) enqueue(job saveJob) {
	q.jobs <- job
}

// close drains pending jobs and stops the worker.
func (q *writeQueue) close() {
	q.closeOnce.Do(func() { close(q.jobs) })
	<-q.done
}
