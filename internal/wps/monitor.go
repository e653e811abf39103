// SPDX-License-Identifier: MPL-2.0

package wps

import (
	"context"
	"fmt"
	"time"
)

// Monitor drives a job to a terminal state. Status observations are
// delivered on the returned update channel, which is closed once monitoring
// ends; the error channel yields exactly one value (nil on success) and is
// then closed. A job that is already terminal (the synchronous path) gets
// its single terminal update without any polling.
//
// A failed job yields a ServiceError preserving the service's failure
// message. There is no retry: failure is terminal, and whether to resubmit
// is the caller's decision.
func (c *Client) Monitor(ctx context.Context, job *Job) (<-chan StatusUpdate, <-chan error) {
	updates := make(chan StatusUpdate, 16)
	done := make(chan error, 1)

	go func() {
		defer close(updates)
		defer close(done)
		done <- c.monitor(ctx, job, updates)
	}()

	return updates, done
}

// monitor is the polling loop. Updates are sent without blocking so a
// caller that stops reading cannot stall the poll.
func (c *Client) monitor(ctx context.Context, job *Job, updates chan<- StatusUpdate) error {
	status := job.Status
	emit(updates, status)

	for !status.State.Terminal() {
		select {
		case <-ctx.Done():
			return fmt.Errorf("monitoring job %s: %w", job.ID, ctx.Err())
		case <-time.After(c.pollInterval):
		}

		var err error
		status, err = c.Status(ctx, job)
		if err != nil {
			return err
		}
		emit(updates, status)
	}

	if status.State == StateFailed {
		return &ServiceError{Message: status.Message}
	}
	return nil
}

// emit performs a non-blocking send, dropping the update when the channel
// buffer is full. Progress observations are advisory; the terminal outcome
// travels on the error channel.
func emit(updates chan<- StatusUpdate, u StatusUpdate) {
	select {
	case updates <- u:
	default:
	}
}
